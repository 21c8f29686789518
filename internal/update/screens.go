package update

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/flowo/internal/app"
	"github.com/sandeepkv93/flowo/internal/model"
	"github.com/sandeepkv93/flowo/internal/views"
)

const completionStep = 10

func (m Model) handleLoginKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	if msg.String() != "enter" || m.signingIn {
		return m, nil
	}
	m.signingIn = true
	m.Status = StatusBar{Text: "signing in"}
	return m, m.signInCmd()
}

func (m Model) handleHomeKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	tasks := m.app.HomeTasks()
	props := m.app.Properties()
	keyStr := msg.String()

	switch keyStr {
	case "j", "down":
		if m.homeCursor < len(tasks)-1 {
			m.homeCursor++
		}
	case "k", "up":
		if m.homeCursor > 0 {
			m.homeCursor--
		}
	case "h", "left", "l", "right":
		if len(props) == 0 {
			return m, nil
		}
		step := 1
		if keyStr == "h" || keyStr == "left" {
			step = -1
		}
		idx := (m.propertyCursor + step + len(props)) % len(props)
		p := props[idx]
		m.app.Navigate(app.ScreenHome, app.NavigationPayload{Property: &p})
	case "d":
		if p, ok := m.app.SelectedProperty(); ok {
			m.app.Navigate(app.ScreenDetails, app.NavigationPayload{Property: &p})
		} else {
			m.Status = StatusBar{Text: "add a property first", IsError: true}
		}
	case "enter":
		if m.homeCursor < len(tasks) {
			m.openTask(tasks[m.homeCursor])
		}
	case "a":
		m.app.Navigate(app.ScreenAdd, app.NavigationPayload{})
	case "n":
		m.app.Navigate(app.ScreenAddProperty, app.NavigationPayload{})
	case "p":
		m.app.Navigate(app.ScreenProfile, app.NavigationPayload{})
	default:
		if c, ok := quickCategory(keyStr); ok {
			m.app.Navigate(app.ScreenAdd, app.NavigationPayload{Category: &c})
		}
	}
	return m, nil
}

// quickCategory maps the digit row onto the category list: 1 is the first
// category and 0 the tenth.
func quickCategory(keyStr string) (model.Category, bool) {
	if len(keyStr) != 1 || keyStr[0] < '0' || keyStr[0] > '9' {
		return "", false
	}
	idx := int(keyStr[0]-'0') - 1
	if idx < 0 {
		idx = 9
	}
	cats := model.Categories()
	if idx >= len(cats) {
		return "", false
	}
	return cats[idx], true
}

func quickKey(idx int) string {
	if idx == 9 {
		return "0"
	}
	return fmt.Sprintf("%d", idx+1)
}

func (m Model) openTask(task model.MaintenanceTask) {
	payload := app.NavigationPayload{TaskID: task.ID}
	if p, ok := m.app.Property(task.PropertyID); ok {
		payload.Property = &p
	}
	m.app.Navigate(app.ScreenTaskDetails, payload)
}

func (m Model) handleDetailsKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	prop, ok := m.app.SelectedProperty()
	if !ok {
		return m, nil
	}
	tasks := m.app.PropertyTasks(prop.ID)
	switch msg.String() {
	case "j", "down":
		if m.detailsCursor < len(tasks)-1 {
			m.detailsCursor++
		}
	case "k", "up":
		if m.detailsCursor > 0 {
			m.detailsCursor--
		}
	case "enter":
		if m.detailsCursor < len(tasks) {
			m.openTask(tasks[m.detailsCursor])
		}
	case "a":
		m.app.Navigate(app.ScreenAdd, app.NavigationPayload{})
	}
	return m, nil
}

func (m Model) handleTaskDetailsKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	task, _, ok := m.app.SelectedTask()
	if !ok {
		return m, nil
	}
	switch msg.String() {
	case "+", "=", "right", "l":
		return m.setCompletion(task, task.CompletionPercentage+completionStep), nil
	case "-", "left", "h":
		return m.setCompletion(task, task.CompletionPercentage-completionStep), nil
	case "r":
		res, err := m.toggleEmailReminder(task.ID)
		if err != nil {
			m.LastError = err
			m.Status = StatusBar{Text: err.Error(), IsError: true}
			return m, nil
		}
		m.Status = StatusBar{Text: res.Message}
	}
	return m, nil
}

func (m Model) setCompletion(task model.MaintenanceTask, pct int) Model {
	if err := m.app.SetCompletion(m.ctx, task.ID, pct); err != nil {
		m.LastError = err
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		return m
	}
	m.Status = StatusBar{Text: fmt.Sprintf("%s is %d%% complete", task.Name, model.ClampPercentage(pct))}
	return m
}

func dueKind(status model.DueStatus) string {
	return strings.ToLower(string(status.Kind))
}

func (m Model) renderSplash() string {
	return views.RenderSplash(views.SplashData{
		AppName: appName,
		Spinner: m.splashSpinner.View(),
	})
}

func (m Model) renderLogin() string {
	return views.RenderLogin(views.LoginData{
		AppName: appName,
		Backend: m.cfg.AuthBackend,
		Busy:    m.signingIn,
	})
}

func (m Model) renderHome() string {
	now := m.app.Now()
	u, _ := m.app.User()
	selected, _ := m.app.SelectedProperty()

	data := views.HomeData{Greeting: u.Greeting()}
	for _, p := range m.app.Properties() {
		data.Properties = append(data.Properties, views.PropertyItemData{
			Name:      p.Name,
			Address:   p.Address,
			TaskCount: len(m.app.PropertyTasks(p.ID)),
			Selected:  p.ID == selected.ID,
		})
	}
	for i, t := range m.app.HomeTasks() {
		status := model.ClassifyDue(t.NextDue, now)
		data.Tasks = append(data.Tasks, views.TaskItemData{
			Icon:            t.Category.Icon(),
			Name:            t.Name,
			PropertyName:    m.propertyName(t.PropertyID),
			DueText:         status.String(),
			DueKind:         dueKind(status),
			Completion:      t.CompletionPercentage,
			ReminderEnabled: t.ReminderEnabled,
			Selected:        i == m.homeCursor,
		})
	}
	if next, ok := m.app.NextDueTask(); ok {
		status := model.ClassifyDue(next.NextDue, now)
		urgency := model.DueUrgency(model.DaysRemaining(next.NextDue, now))
		data.NextDue = &views.NextDueData{
			Icon:        next.Category.Icon(),
			Name:        next.Name,
			DueText:     status.String(),
			DueKind:     dueKind(status),
			UrgencyView: m.urgencyBar.ViewAs(float64(urgency) / 100),
		}
	}
	for i, c := range model.Categories() {
		data.Categories = append(data.Categories, views.CategoryChipData{
			Key:  quickKey(i),
			Icon: c.Icon(),
			Name: string(c),
		})
	}
	return views.RenderHome(data)
}

func (m Model) propertyName(id string) string {
	if p, ok := m.app.Property(id); ok {
		return p.Name
	}
	return "Unknown property"
}

func (m Model) renderDetails() string {
	prop, ok := m.app.SelectedProperty()
	if !ok {
		return ""
	}
	tasks := m.app.PropertyTasks(prop.ID)
	counts := model.CountByCategory(tasks)
	data := views.DetailsData{
		Name:      prop.Name,
		Address:   prop.Address,
		TableView: m.detailsTable.View(),
		Empty:     len(tasks) == 0,
	}
	for _, c := range model.Categories() {
		data.Counts = append(data.Counts, views.CategoryCountData{Icon: c.Icon(), Name: string(c), Count: counts[c]})
	}
	return views.RenderDetails(data)
}

func (m Model) renderTaskDetails() string {
	task, prop, ok := m.app.SelectedTask()
	if !ok {
		return ""
	}
	return views.RenderTaskDetails(views.TaskDetailsData{
		MarkdownView:    views.RenderMarkdown(taskMarkdown(task, prop, m.app.Now())),
		ProgressView:    m.completionBar.ViewAs(float64(task.CompletionPercentage) / 100),
		Completion:      task.CompletionPercentage,
		ReminderEnabled: task.ReminderEnabled,
	})
}

func taskMarkdown(task model.MaintenanceTask, prop model.Property, now time.Time) string {
	reminder := "not set"
	if task.NotificationsEnabled && task.ReminderAt != nil {
		reminder = task.ReminderAt.In(now.Location()).Format("Jan 2, 2006 15:04")
	}
	var b strings.Builder
	fmt.Fprintf(&b, "# %s %s\n\n", task.Category.Icon(), task.Name)
	fmt.Fprintf(&b, "**%s** at %s\n\n", prop.Name, prop.Address)
	fmt.Fprintf(&b, "- **Category:** %s\n", task.Category)
	fmt.Fprintf(&b, "- **Last completed:** %s\n", task.LastCompleted.Display())
	fmt.Fprintf(&b, "- **Next due:** %s (%s)\n", task.NextDue.Display(), model.ClassifyDue(task.NextDue, now))
	fmt.Fprintf(&b, "- **Notification:** %s\n", reminder)
	fmt.Fprintf(&b, "- **Last billed amount:** %s\n", views.FormatCurrency(task.LastBilledAmount))
	return b.String()
}
