package update

import (
	"fmt"

	"github.com/charmbracelet/bubbles/table"

	"github.com/sandeepkv93/flowo/internal/model"
)

// syncSelection keeps cursors inside the lists they index and aligns the
// property cursor with the app's selection.
func (m *Model) syncSelection() {
	m.homeCursor = clampIndex(m.homeCursor, len(m.app.HomeTasks()))
	props := m.app.Properties()
	m.propertyCursor = 0
	if sel, ok := m.app.SelectedProperty(); ok {
		for i, p := range props {
			if p.ID == sel.ID {
				m.propertyCursor = i
				break
			}
		}
		m.detailsCursor = clampIndex(m.detailsCursor, len(m.app.PropertyTasks(sel.ID)))
	} else {
		m.detailsCursor = 0
	}
}

func (m *Model) syncBubbleData() {
	var rows []table.Row
	if sel, ok := m.app.SelectedProperty(); ok {
		now := m.app.Now()
		for _, t := range m.app.PropertyTasks(sel.ID) {
			rows = append(rows, table.Row{
				t.Category.Icon() + " " + t.Name,
				string(t.Category),
				t.NextDue.String(),
				model.ClassifyDue(t.NextDue, now).String(),
				fmt.Sprintf("%d%%", t.CompletionPercentage),
			})
		}
	}
	m.detailsTable.SetRows(rows)
	if len(rows) > 0 {
		m.detailsTable.SetCursor(m.detailsCursor)
	}
	if m.Palette.Active {
		m.commandInput.Focus()
	}
}

func clampIndex(i, n int) int {
	if n <= 0 || i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}
