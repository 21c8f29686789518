package update

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/flowo/internal/notify"
	"github.com/sandeepkv93/flowo/internal/scheduler"
	"github.com/sandeepkv93/flowo/internal/views"
)

const reminderLogLimit = 20

func waitForReminderCmd(ch <-chan scheduler.ReminderEvent) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		ev, ok := <-ch
		if !ok {
			return nil
		}
		return ReminderDueMsg{Event: ev}
	}
}

// acquirePermissionCmd may block on a system prompt, so it runs off the
// update loop.
func acquirePermissionCmd(ctx context.Context, p notify.Platform) tea.Cmd {
	return func() tea.Msg {
		if p == nil {
			return PermissionResultMsg{Err: notify.ErrNotificationsUnsupported}
		}
		return PermissionResultMsg{Err: notify.AcquirePermission(ctx, p)}
	}
}

func (m Model) applyReminder(ev scheduler.ReminderEvent) Model {
	m.ReminderLog = append(m.ReminderLog, ev)
	if len(m.ReminderLog) > reminderLogLimit {
		m.ReminderLog = m.ReminderLog[len(m.ReminderLog)-reminderLogLimit:]
	}
	if m.reminders == nil {
		m.Status = StatusBar{Text: "reminder: " + ev.Body}
		return m
	}
	if err := m.reminders.Deliver(ev); err != nil {
		m.LastError = err
		m.Status = StatusBar{Text: notify.Explain(err), IsError: true}
		return m
	}
	m.Status = StatusBar{Text: "reminder: " + ev.Body}
	return m
}

func (m Model) renderLastReminder() string {
	if len(m.ReminderLog) == 0 {
		return ""
	}
	last := m.ReminderLog[len(m.ReminderLog)-1]
	return views.RenderNotification(last.Title, last.Body+" ("+last.TriggerAt.Format("15:04")+")")
}
