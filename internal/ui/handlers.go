package ui

import (
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/nvm/sysinspect/internal/events"
	"github.com/nvm/sysinspect/internal/sysview"
)

func (m model) handleMainViewKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	ui := m.ui
	v := ui.current()

	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit

	case "tab", "right":
		ui.switchTab(1)

	case "shift+tab", "left":
		ui.switchTab(-1)

	case "up", "k":
		ui.moveSelection(-1)

	case "down", "j":
		ui.moveSelection(1)

	case "home", "g":
		v.Select(0)

	case "end", "G":
		v.Select(len(v.Rows()) - 1)

	case "f5", "ctrl+r", "r":
		ui.inspector.Refresh()
		ui.setStatus("Values refreshed")

	case "enter", "d":
		ui.showDetails()

	case "i":
		ui.viewMode = ViewModeAbout

	case "s":
		ui.input = []rune(ui.opts.SaveFile)
		ui.status = ""
		ui.viewMode = ViewModeSave

	case "c":
		row, ok := ui.selectedRow()
		if !ok {
			ui.setError("No row selected")
			return m, nil
		}
		return m, copyCmd(ui.opts.Clipboard, "selected row", strings.Join(row.Cells, ui.opts.Separator))

	case "C":
		lines := ui.inspector.Values(ui.opts.Separator)
		return m, copyCmd(ui.opts.Clipboard, "all values", strings.Join(lines, "\n"))

	case "x":
		ui.inspector.ClearLog()
		ui.setStatus("Log cleared")

	case "[":
		ui.resizeValueColumns(-ColumnWidthStep)

	case "]":
		ui.resizeValueColumns(ColumnWidthStep)
	}

	return m, nil
}

func (m model) handleModalKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "esc", "enter", "q":
		m.ui.viewMode = ViewModeMain
		m.ui.detail = sysview.Detail{}
	}
	return m, nil
}

func (m model) handleSaveKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	ui := m.ui

	switch msg.Type {
	case tea.KeyCtrlC:
		return m, tea.Quit

	case tea.KeyEsc:
		ui.viewMode = ViewModeMain
		ui.input = nil
		return m, nil

	case tea.KeyEnter:
		path := expandSavePath(string(ui.input))
		if path == "" {
			ui.setError("Enter a file name")
			return m, nil
		}
		ui.viewMode = ViewModeMain
		ui.input = nil
		return m, saveCmd(path, ui.inspector.Values(ui.opts.Separator))

	case tea.KeyBackspace:
		if len(ui.input) > 0 {
			ui.input = ui.input[:len(ui.input)-1]
		}

	case tea.KeyCtrlU:
		ui.input = nil

	case tea.KeySpace:
		ui.input = append(ui.input, ' ')

	case tea.KeyRunes:
		ui.input = append(ui.input, msg.Runes...)
	}

	return m, nil
}

func (m model) handleSaved(msg savedMsg) (tea.Model, tea.Cmd) {
	ui := m.ui
	if msg.err != nil {
		ui.log.Error(msg.err, "cannot save values", "path", msg.path)
		ui.inspector.Log(fmt.Sprintf("Cannot save values: %v", msg.err))
		ui.setError("Save failed")
		return m, nil
	}

	ui.inspector.Log(fmt.Sprintf("System values were saved to %s.", msg.path))
	ui.setStatus("Saved to " + truncatePath(msg.path))
	if ui.opts.Bus != nil {
		ui.opts.Bus.PublishAsync(events.NewSavedEvent(msg.path, msg.lines))
	}
	return m, nil
}

func (m model) handleCopied(msg copiedMsg) (tea.Model, tea.Cmd) {
	ui := m.ui
	if msg.err != nil {
		ui.log.Error(msg.err, "cannot copy to the clipboard")
		ui.setError(fmt.Sprintf("Cannot copy %s: %v", msg.what, msg.err))
		return m, nil
	}
	ui.setStatus(fmt.Sprintf("Copied %s to the clipboard", msg.what))
	return m, nil
}

// switchTab moves to the next or previous tab, wrapping around
func (ui *UI) switchTab(delta int) {
	n := len(ui.inspector.Views())
	ui.tab = ((ui.tab+delta)%n + n) % n
	ui.status = ""
}

// moveSelection moves the selection up or down
func (ui *UI) moveSelection(delta int) {
	v := ui.current()
	if len(v.Rows()) == 0 {
		return
	}
	i := v.Selected() + delta
	if v.Selected() < 0 {
		i = 0
	}
	v.Select(i)
}

func (ui *UI) selectedRow() (sysview.Row, bool) {
	v := ui.current()
	rows := v.Rows()
	i := v.Selected()
	if i < 0 || i >= len(rows) {
		return sysview.Row{}, false
	}
	return rows[i], true
}

func (ui *UI) showDetails() {
	v := ui.current()
	if !v.CanShowDetails() {
		ui.setError(v.Title() + " has no detailed information")
		return
	}
	d, err := v.Details()
	switch {
	case errors.Is(err, sysview.ErrNoSelection):
		ui.setError("No row selected")
	case err != nil:
		ui.setError(err.Error())
	default:
		ui.detail = d
		ui.viewMode = ViewModeDetails
	}
}

// resizeValueColumns narrows or widens every column after the name column.
func (ui *UI) resizeValueColumns(delta int) {
	v := ui.current()
	for col := 1; col < len(v.Columns()); col++ {
		w := columnWidth(v, col) + delta
		v.SetColumnWidth(col, min(max(w, MinColumnWidth), MaxColumnWidth))
	}
}

// columnWidth returns the override of col or its default width.
func columnWidth(v sysview.View, col int) int {
	if w, ok := v.ColumnWidth(col); ok {
		return w
	}
	if col == 0 {
		return DefaultNameWidth
	}
	return DefaultValueWidth
}
