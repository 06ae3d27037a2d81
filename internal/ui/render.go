package ui

import (
	"fmt"
	"runtime"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/mattn/go-runewidth"
	"github.com/nvm/sysinspect/internal/inspector"
	"github.com/nvm/sysinspect/internal/sysview"
)

func (m model) renderMainView() string {
	ui := m.ui
	in := ui.inspector
	_, termHeight := m.dimensions()

	var b strings.Builder

	// Title with version
	title := fmt.Sprintf("sysinspect v%s - System Inspector", ui.opts.Version)
	b.WriteString(titleStyle.Render(title))
	if !in.AutoRefresh() {
		b.WriteString(mutedStyle.Render("  auto-refresh off"))
	} else if in.State() == inspector.StatePendingRefresh {
		b.WriteString(warningStyle.Render("  ◐ refresh pending"))
	}
	b.WriteString("\n\n")

	b.WriteString(m.renderTabs())
	b.WriteString("\n")

	v := ui.current()
	bodyHeight := max(termHeight-chromeHeight-LogPaneHeight, 1)
	if len(v.Rows()) == 0 {
		b.WriteString(mutedStyle.Render("  No values available"))
		b.WriteString("\n")
	} else {
		b.WriteString(renderTable(v, bodyHeight))
		b.WriteString("\n")
	}

	b.WriteString(m.renderLog())

	// Status line
	b.WriteString("\n")
	if ui.status != "" {
		if ui.statusError {
			b.WriteString(errorStyle.Render(ui.status))
		} else {
			b.WriteString(successStyle.Render(ui.status))
		}
	}

	// Fill space to push footer to bottom (reserve 2 lines: 1 for spacing, 1 for footer)
	currentLines := strings.Count(b.String(), "\n") + 1
	if remaining := termHeight - currentLines - 2; remaining > 0 {
		b.WriteString(strings.Repeat("\n", remaining))
	}

	b.WriteString("\n")
	b.WriteString(m.renderFooter())

	return b.String()
}

func (m model) renderTabs() string {
	views := m.ui.inspector.Views()
	tabs := make([]string, len(views))
	for i, v := range views {
		if i == m.ui.tab {
			tabs[i] = activeTabStyle.Render(v.Title())
		} else {
			tabs[i] = inactiveTabStyle.Render(v.Title())
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

// renderTable draws at most height rows of v, scrolled so the selected row
// is visible.
func renderTable(v sysview.View, height int) string {
	columns := v.Columns()
	all := v.Rows()
	start, end := visibleRange(v.Selected(), len(all), height)
	visible := all[start:end]

	hasSwatches := false
	for _, r := range all {
		if r.Swatch != nil {
			hasSwatches = true
			break
		}
	}

	headers := make([]string, 0, len(columns)+1)
	if hasSwatches {
		headers = append(headers, "")
	}
	headers = append(headers, columns...)

	rows := make([][]string, len(visible))
	for i, r := range visible {
		cells := make([]string, 0, len(headers))
		if hasSwatches {
			cells = append(cells, "  ")
		}
		for col := range columns {
			text := ""
			if col < len(r.Cells) {
				text = r.Cells[col]
			}
			cells = append(cells, runewidth.Truncate(text, columnWidth(v, col), "…"))
		}
		rows[i] = cells
	}

	offset := 0
	if hasSwatches {
		offset = 1
	}

	t := table.New().
		Border(lipgloss.HiddenBorder()).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			// Header row
			if row == table.HeaderRow {
				return headerStyle
			}

			baseStyle := lipgloss.NewStyle().Padding(0, 1)
			if row < 0 || row >= len(visible) {
				return baseStyle
			}
			r := visible[row]

			// Swatch column is filled with the row's colour
			if hasSwatches && col == 0 {
				if r.Swatch == nil {
					return baseStyle
				}
				return lipgloss.NewStyle().
					Margin(0, 1).
					Background(lipgloss.Color(r.Swatch.Hex()))
			}

			// Selected row gets background highlight
			if start+row == v.Selected() {
				return baseStyle.
					Background(selectedBg).
					Foreground(selectedFg)
			}

			if c := col - offset; c > 0 && c < len(r.Cells) && isSentinel(r.Cells[c]) {
				return baseStyle.Foreground(mutedColor).Italic(true)
			}
			return baseStyle
		})

	return t.Render()
}

// visibleRange returns the window of rows to draw so that selected lies
// within it.
func visibleRange(selected, total, height int) (int, int) {
	if height <= 0 || total <= height {
		return 0, total
	}
	start := 0
	if selected >= height {
		start = selected - height + 1
	}
	return start, start + height
}

func isSentinel(s string) bool {
	switch s {
	case sysview.SentinelInvalid, sysview.SentinelNotSet, sysview.SentinelNotDefined,
		sysview.SentinelDefined, sysview.SentinelUnknown, sysview.SentinelEvaluating:
		return true
	}
	return false
}

func (m model) renderLog() string {
	var b strings.Builder
	b.WriteString(labelStyle.Render("Log"))
	b.WriteString("\n")

	lines := m.ui.inspector.LogLines()
	if len(lines) > LogPaneHeight {
		lines = lines[len(lines)-LogPaneHeight:]
	}
	termWidth, _ := m.dimensions()
	for _, l := range lines {
		b.WriteString(mutedStyle.Render(runewidth.Truncate(l, termWidth-2, "…")))
		b.WriteString("\n")
	}
	return b.String()
}

func (m model) renderFooter() string {
	footer := fmt.Sprintf("%s: Tabs  %s/%s: Navigate  %s: Refresh  %s: Details  %s: Save  %s: Copy  %s: Width  %s: Clear log  %s: About  %s: Quit",
		keyStyle.Render("Tab"),
		keyStyle.Render("↑↓"),
		keyStyle.Render("jk"),
		keyStyle.Render("F5"),
		m.detailsKey(),
		keyStyle.Render("s"),
		keyStyle.Render("c/C"),
		keyStyle.Render("[ ]"),
		keyStyle.Render("x"),
		keyStyle.Render("i"),
		keyStyle.Render("q"))
	return mutedStyle.Render(footer)
}

// detailsKey greys out the details key on views without details.
func (m model) detailsKey() string {
	if m.ui.current().CanShowDetails() {
		return keyStyle.Render("Enter")
	}
	return mutedStyle.Strikethrough(true).Render("Enter")
}

func (m model) renderDetails() string {
	d := m.ui.detail
	var b strings.Builder

	b.WriteString(modalHeaderStyle.Render(d.Title))
	b.WriteString("\n\n")

	body := strings.Join(d.Lines, "\n")
	if d.Swatch != nil {
		body = lipgloss.JoinHorizontal(lipgloss.Top, swatch(*d.Swatch, 8, 4), "  ", body)
	}
	b.WriteString(body)

	b.WriteString("\n\n")
	b.WriteString(helpStyle.Render("Esc/Enter: Close"))

	return modalBoxStyle.Render(b.String())
}

func (m model) renderAbout() string {
	in := m.ui.inspector
	var b strings.Builder

	b.WriteString(modalHeaderStyle.Render("About sysinspect"))
	b.WriteString("\n\n")
	b.WriteString("Shows read-only snapshots of desktop, display\nand runtime configuration values.\n\n")

	autoRefresh := "off"
	if in.AutoRefresh() {
		autoRefresh = fmt.Sprintf("on, after %s", in.RefreshDelay())
	}
	rows := [][2]string{
		{"Version", m.ui.opts.Version},
		{"Go", runtime.Version()},
		{"Platform", runtime.GOOS + "/" + runtime.GOARCH},
		{"Views", fmt.Sprintf("%d", len(in.Views()))},
		{"Auto refresh", autoRefresh},
		{"Refreshes", fmt.Sprintf("%d", in.Refreshes())},
	}
	for _, r := range rows {
		b.WriteString(labelStyle.Render(fmt.Sprintf("%-13s", r[0])))
		b.WriteString(r[1])
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(helpStyle.Render("Esc/Enter: Close"))

	return modalBoxStyle.Render(b.String())
}

func (m model) renderSavePrompt() string {
	var b strings.Builder

	b.WriteString(modalHeaderStyle.Render("Save Values"))
	b.WriteString("\n\n")
	b.WriteString("File name:\n")
	b.WriteString(inputStyle.Width(MaxPathWidth).Render(string(m.ui.input) + "▌"))
	b.WriteString("\n")
	if m.ui.statusError && m.ui.status != "" {
		b.WriteString(errorStyle.Render(m.ui.status))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(helpStyle.Render("Enter: Save  Esc: Cancel  Ctrl+U: Clear"))

	return modalBoxStyle.Render(b.String())
}
