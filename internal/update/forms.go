package update

import (
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/flowo/internal/app"
	"github.com/sandeepkv93/flowo/internal/model"
	"github.com/sandeepkv93/flowo/internal/notify"
	"github.com/sandeepkv93/flowo/internal/views"
)

type fieldKind int

const (
	fieldText fieldKind = iota
	fieldChoice
	fieldToggle
)

const (
	keyName          = "name"
	keyCategory      = "category"
	keyProperty      = "property"
	keyLastCompleted = "lastCompleted"
	keyNextDue       = "nextDue"
	keyNotifications = "notifications"
	keyReminderAt    = "reminderAt"
	keyBilled        = "lastBilledAmount"
	keyAddress       = "address"
	keyDisplayName   = "displayName"
	keyEmail         = "email"
	keyPassword      = "password"
	keyConfirm       = "confirmPassword"
)

type formField struct {
	key     string
	label   string
	kind    fieldKind
	input   textinput.Model
	choices []string
	values  []string
	choice  int
	on      bool
}

func (f formField) Value() string {
	switch f.kind {
	case fieldChoice:
		if f.choice >= 0 && f.choice < len(f.values) {
			return f.values[f.choice]
		}
		return ""
	case fieldToggle:
		if f.on {
			return "true"
		}
		return "false"
	default:
		return f.input.Value()
	}
}

func (f formField) view() string {
	switch f.kind {
	case fieldChoice:
		if len(f.choices) == 0 {
			return "(none)"
		}
		return "< " + f.choices[f.choice] + " >"
	case fieldToggle:
		if f.on {
			return "[x] on"
		}
		return "[ ] off"
	default:
		return f.input.View()
	}
}

// formState backs the three input screens. It is rebuilt each time one of
// them becomes active.
type formState struct {
	screen app.Screen
	title  string
	fields []formField
	focus  int
	err    string
}

func (f *formState) field(key string) *formField {
	for i := range f.fields {
		if f.fields[i].key == key {
			return &f.fields[i]
		}
	}
	return nil
}

func (f *formState) value(key string) string {
	if fld := f.field(key); fld != nil {
		return strings.TrimSpace(fld.Value())
	}
	return ""
}

func (f *formState) setFocus(i int) {
	if len(f.fields) == 0 {
		return
	}
	n := len(f.fields)
	f.focus = ((i % n) + n) % n
	for j := range f.fields {
		if j == f.focus && f.fields[j].kind == fieldText {
			f.fields[j].input.Focus()
		} else {
			f.fields[j].input.Blur()
		}
	}
}

func textField(key, label, placeholder, value string) formField {
	in := textinput.New()
	in.Prompt = ""
	in.Placeholder = placeholder
	in.CharLimit = 128
	in.Width = 40
	in.SetValue(value)
	return formField{key: key, label: label, kind: fieldText, input: in}
}

func passwordField(key, label string) formField {
	f := textField(key, label, "", "")
	f.input.EchoMode = textinput.EchoPassword
	f.input.EchoCharacter = '*'
	return f
}

func newTaskForm(a *app.App) formState {
	now := a.Now()
	nav := a.Navigation()

	cats := model.Categories()
	category := formField{key: keyCategory, label: "Category", kind: fieldChoice}
	for i, c := range cats {
		category.choices = append(category.choices, c.Icon()+" "+string(c))
		category.values = append(category.values, string(c))
		if nav.PreselectedCategory != nil && *nav.PreselectedCategory == c {
			category.choice = i
		}
	}

	property := formField{key: keyProperty, label: "Property", kind: fieldChoice}
	selected, _ := a.SelectedProperty()
	for i, p := range a.Properties() {
		property.choices = append(property.choices, p.Name)
		property.values = append(property.values, p.ID)
		if p.ID == selected.ID {
			property.choice = i
		}
	}

	today := model.DateOf(now).String()
	f := formState{
		screen: app.ScreenAdd,
		title:  "Add maintenance task",
		fields: []formField{
			textField(keyName, "Task name", "e.g. Change water filter", ""),
			category,
			property,
			textField(keyLastCompleted, "Last completed", model.DateLayout, today),
			textField(keyNextDue, "Next due", model.DateLayout, today),
			{key: keyNotifications, label: "Enable notifications", kind: fieldToggle},
			textField(keyReminderAt, "Reminder", model.ReminderLayout, ""),
			textField(keyBilled, "Last billed amount", "optional, e.g. 49.99", ""),
		},
	}
	f.setFocus(0)
	return f
}

func newPropertyForm() formState {
	f := formState{
		screen: app.ScreenAddProperty,
		title:  "Add property",
		fields: []formField{
			textField(keyName, "Property name", "e.g. Main Residence", ""),
			textField(keyAddress, "Address", "e.g. 123 Main St", ""),
		},
	}
	f.setFocus(0)
	return f
}

func newProfileForm(u model.User) formState {
	f := formState{
		screen: app.ScreenProfile,
		title:  "Profile",
		fields: []formField{
			textField(keyDisplayName, "Display name", "", model.Deref(u.DisplayName)),
			textField(keyEmail, "Email", "", model.Deref(u.Email)),
			passwordField(keyPassword, "New password"),
			passwordField(keyConfirm, "Confirm new password"),
		},
	}
	f.setFocus(0)
	return f
}

func isFormScreen(s app.Screen) bool {
	return s == app.ScreenAdd || s == app.ScreenAddProperty || s == app.ScreenProfile
}

// syncForm rebuilds the form when an input screen becomes active and drops
// it when the user leaves.
func (m *Model) syncForm() {
	screen := m.app.ActiveScreen()
	if !isFormScreen(screen) {
		m.form = formState{}
		m.permissionPending = false
		return
	}
	if m.form.screen == screen {
		return
	}
	switch screen {
	case app.ScreenAdd:
		m.form = newTaskForm(m.app)
	case app.ScreenAddProperty:
		m.form = newPropertyForm()
	case app.ScreenProfile:
		u, _ := m.app.User()
		m.form = newProfileForm(u)
	}
}

func (m Model) handleFormKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	f := &m.form
	if len(f.fields) == 0 {
		return m, nil
	}
	cur := &f.fields[f.focus]

	switch msg.String() {
	case "esc":
		m.app.Back()
		return m, nil
	case "tab", "down":
		f.setFocus(f.focus + 1)
		return m, nil
	case "shift+tab", "up":
		f.setFocus(f.focus - 1)
		return m, nil
	case "ctrl+s":
		return m.submitForm()
	case "ctrl+o":
		if f.screen == app.ScreenProfile {
			return m, m.signOutCmd()
		}
		return m, nil
	case "enter":
		if f.focus == len(f.fields)-1 {
			return m.submitForm()
		}
		f.setFocus(f.focus + 1)
		return m, nil
	}

	switch cur.kind {
	case fieldChoice:
		switch msg.String() {
		case "left", "h":
			if len(cur.choices) > 0 {
				cur.choice = (cur.choice - 1 + len(cur.choices)) % len(cur.choices)
			}
		case "right", "l", " ", "space":
			if len(cur.choices) > 0 {
				cur.choice = (cur.choice + 1) % len(cur.choices)
			}
		}
		return m, nil
	case fieldToggle:
		switch msg.String() {
		case " ", "space", "left", "right":
			return m.toggleNotifications()
		}
		return m, nil
	}

	if msg.Type == tea.KeyRunes || msg.Type == tea.KeySpace {
		cur.input.SetValue(cur.input.Value() + string(msg.Runes))
		if msg.Type == tea.KeySpace && len(msg.Runes) == 0 {
			cur.input.SetValue(cur.input.Value() + " ")
		}
		f.err = ""
		return m, nil
	}
	var cmd tea.Cmd
	cur.input, cmd = cur.input.Update(msg)
	return m, cmd
}

// toggleNotifications turns the reminder off directly; turning it on waits
// for the platform permission first.
func (m Model) toggleNotifications() (Model, tea.Cmd) {
	fld := m.form.field(keyNotifications)
	if fld == nil {
		return m, nil
	}
	if fld.on {
		fld.on = false
		if r := m.form.field(keyReminderAt); r != nil {
			r.input.SetValue("")
		}
		return m, nil
	}
	if m.permissionPending {
		return m, nil
	}
	fld.on = true
	m.permissionPending = true
	m.Status = StatusBar{Text: "requesting notification permission"}
	return m, acquirePermissionCmd(m.ctx, m.platform)
}

func (m Model) applyPermissionResult(err error) Model {
	m.permissionPending = false
	if m.form.screen != app.ScreenAdd {
		return m
	}
	fld := m.form.field(keyNotifications)
	reminder := m.form.field(keyReminderAt)
	if err != nil {
		fld.on = false
		reminder.input.SetValue("")
		m.Status = StatusBar{Text: notify.Explain(err), IsError: true}
		return m
	}
	if strings.TrimSpace(reminder.input.Value()) == "" {
		due, _ := model.ParseDate(m.form.value(keyNextDue))
		reminder.input.SetValue(model.DefaultReminderAt(due, m.app.Now()).Format(model.ReminderLayout))
	}
	m.Status = StatusBar{Text: "notifications enabled"}
	return m
}

func (m Model) submitForm() (Model, tea.Cmd) {
	switch m.form.screen {
	case app.ScreenAdd:
		return m.submitTask()
	case app.ScreenAddProperty:
		return m.submitProperty()
	case app.ScreenProfile:
		return m.submitProfile()
	}
	return m, nil
}

const permissionWaitMessage = "waiting for notification permission"

func (m Model) submitTask() (Model, tea.Cmd) {
	if m.permissionPending {
		m.form.err = permissionWaitMessage
		m.Status = StatusBar{Text: permissionWaitMessage, IsError: true}
		return m, nil
	}
	f := &m.form
	in := app.TaskInput{
		Name:                 f.value(keyName),
		Category:             model.Category(f.value(keyCategory)),
		PropertyID:           f.value(keyProperty),
		LastCompleted:        f.value(keyLastCompleted),
		NextDue:              f.value(keyNextDue),
		NotificationsEnabled: f.value(keyNotifications) == "true",
		ReminderAt:           f.value(keyReminderAt),
		LastBilledAmount:     f.value(keyBilled),
	}
	task, err := m.app.AddTask(m.ctx, in)
	if err != nil {
		return m.formError(err), nil
	}
	m.Status = StatusBar{Text: "added task: " + task.Name}
	return m, nil
}

func (m Model) submitProperty() (Model, tea.Cmd) {
	p, err := m.app.AddProperty(m.ctx, app.PropertyInput{
		Name:    m.form.value(keyName),
		Address: m.form.value(keyAddress),
	})
	if err != nil {
		return m.formError(err), nil
	}
	m.Status = StatusBar{Text: "added property: " + p.Name}
	return m, nil
}

func (m Model) submitProfile() (Model, tea.Cmd) {
	f := &m.form
	change, err := m.app.PlanProfileUpdate(app.ProfileInput{
		DisplayName:     f.value(keyDisplayName),
		Email:           f.value(keyEmail),
		Password:        f.field(keyPassword).input.Value(),
		ConfirmPassword: f.field(keyConfirm).input.Value(),
	})
	if err != nil {
		return m.formError(err), nil
	}
	f.err = ""
	m.Status = StatusBar{Text: "updating profile"}
	return m, applyProfileCmd(m.ctx, m.provider(), change)
}

func (m Model) applyProfileResult(msg ProfileResultMsg) Model {
	m.app.UpdateUser(msg.Patch)
	if msg.Err != nil {
		m.LastError = msg.Err
		m.logger.Printf("[Profile] Update failed: %v", msg.Err)
		m.Status = StatusBar{Text: explainAuth(msg.Err), IsError: true}
		if m.form.screen == app.ScreenProfile {
			m.form.err = explainAuth(msg.Err)
		}
		return m
	}
	if m.form.screen == app.ScreenProfile {
		for _, key := range []string{keyPassword, keyConfirm} {
			m.form.field(key).input.SetValue("")
		}
	}
	m.Status = StatusBar{Text: app.ProfileUpdatedMessage}
	return m
}

func (m Model) formError(err error) Model {
	var verr *app.ValidationError
	if errors.As(err, &verr) {
		m.form.err = verr.Message
		m.Status = StatusBar{Text: verr.Message, IsError: true}
		return m
	}
	m.LastError = err
	m.form.err = explainAuth(err)
	m.Status = StatusBar{Text: m.form.err, IsError: true}
	return m
}

func (m Model) renderForm() string {
	fields := make([]views.FormFieldData, 0, len(m.form.fields))
	for i, f := range m.form.fields {
		fields = append(fields, views.FormFieldData{
			Label:   f.label,
			View:    f.view(),
			Focused: i == m.form.focus,
		})
	}
	hint := "[tab]next [enter]next/submit [ctrl+s]submit [esc]back"
	if m.form.screen == app.ScreenAdd {
		hint = "[tab]next [left/right]choose [space]toggle [ctrl+s]submit [esc]back"
	}
	if m.form.screen == app.ScreenProfile {
		hint += " [ctrl+o]sign out"
	}
	data := views.FormData{
		Title:  m.form.title,
		Fields: fields,
		Error:  m.form.err,
		Hint:   hint,
	}
	if m.permissionPending {
		data.Notice = "waiting for notification permission"
	}
	if m.form.screen == app.ScreenProfile {
		u, _ := m.app.User()
		return views.RenderProfile(views.ProfileData{
			Form:     data,
			UID:      u.UID,
			PhotoURL: model.Deref(u.PhotoURL),
		})
	}
	return views.RenderForm(data)
}
