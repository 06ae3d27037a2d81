package sysview

import (
	"fmt"
	"slices"
	"strings"
	"unicode"

	"github.com/go-logr/logr"
	"github.com/nvm/sysinspect/internal/platform"
)

// ListView stores the rows, column titles, selection and user column widths
// of a view.
type ListView struct {
	log      logr.Logger
	category Category
	columns  []string
	rows     []Row
	// widths holds user overrides by column index. They survive refreshes
	// and column rebuilds but are never persisted.
	widths   map[int]int
	selected int
}

func newListView(c Category, log logr.Logger, columns ...string) *ListView {
	return &ListView{
		log:      log.WithName(c.Title()),
		category: c,
		columns:  columns,
		widths:   make(map[int]int),
		selected: -1,
	}
}

func (l *ListView) Category() Category { return l.category }

func (l *ListView) Title() string { return l.category.Title() }

func (l *ListView) Columns() []string { return slices.Clone(l.columns) }

// Rows returns a copy of the rows.
func (l *ListView) Rows() []Row {
	rows := make([]Row, len(l.rows))
	for i, r := range l.rows {
		rows[i] = Row{ID: r.ID, Cells: slices.Clone(r.Cells), Swatch: r.Swatch}
	}
	return rows
}

// setColumns replaces the column titles and resizes every row to match,
// keeping the name cell.
func (l *ListView) setColumns(columns ...string) {
	l.columns = columns
	for i := range l.rows {
		cells := make([]string, len(columns))
		copy(cells, l.rows[i].Cells)
		l.rows[i].Cells = cells
	}
}

// appendRow adds a row and returns its index. A row whose id is already
// present is logged and skipped with index -1.
func (l *ListView) appendRow(id int, cells ...string) int {
	if l.rowIndex(id) >= 0 {
		name := ""
		if len(cells) > 0 {
			name = cells[0]
		}
		l.log.Error(nil, "could not insert row", "label", name, "id", id)
		return -1
	}
	row := Row{ID: id, Cells: make([]string, len(l.columns))}
	for i := range min(len(cells), len(row.Cells)) {
		row.Cells[i] = escapeControl(cells[i])
	}
	l.rows = append(l.rows, row)
	return len(l.rows) - 1
}

func (l *ListView) clearRows() {
	l.rows = l.rows[:0]
}

func (l *ListView) rowIndex(id int) int {
	for i, r := range l.rows {
		if r.ID == id {
			return i
		}
	}
	return -1
}

func (l *ListView) setCell(row, col int, text string) {
	if row < 0 || row >= len(l.rows) || col < 0 || col >= len(l.rows[row].Cells) {
		return
	}
	l.rows[row].Cells[col] = escapeControl(text)
}

// escapeControl keeps a cell on one line. Newlines, tabs and other control
// characters are written as Go escapes so that the table and the exported
// lines agree.
func escapeControl(s string) string {
	if !strings.ContainsFunc(s, unicode.IsControl) {
		return s
	}
	var b strings.Builder
	for _, r := range s {
		switch r {
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		default:
			if unicode.IsControl(r) {
				fmt.Fprintf(&b, `\x%02x`, r)
			} else {
				b.WriteRune(r)
			}
		}
	}
	return b.String()
}

func (l *ListView) cell(row, col int) string {
	if row < 0 || row >= len(l.rows) || col < 0 || col >= len(l.rows[row].Cells) {
		return ""
	}
	return l.rows[row].Cells[col]
}

func (l *ListView) setSwatch(row int, c platform.Colour) {
	if row >= 0 && row < len(l.rows) {
		l.rows[row].Swatch = &c
	}
}

// Selected returns the selected row index or -1.
func (l *ListView) Selected() int { return l.selected }

// Select selects a row, clamping to the valid range. A negative index
// clears the selection.
func (l *ListView) Select(i int) {
	switch {
	case i < 0 || len(l.rows) == 0:
		l.selected = -1
	case i >= len(l.rows):
		l.selected = len(l.rows) - 1
	default:
		l.selected = i
	}
}

// SetColumnWidth records a user width for a column. A width of zero or less
// removes the override.
func (l *ListView) SetColumnWidth(col, width int) {
	if width <= 0 {
		delete(l.widths, col)
		return
	}
	l.widths[col] = width
}

func (l *ListView) ColumnWidth(col int) (int, bool) {
	w, ok := l.widths[col]
	return w, ok
}

// finishRefresh ends every refresh: an out of range selection is dropped
// and the first row is selected when nothing is.
func (l *ListView) finishRefresh() {
	if l.selected >= len(l.rows) {
		l.selected = -1
	}
	if l.selected == -1 && len(l.rows) > 0 {
		l.selected = 0
	}
}

// nameValueLines renders the first two columns as "Name<sep>Value" lines.
func (l *ListView) nameValueLines(sep string) []string {
	lines := make([]string, 0, len(l.rows)+1)
	lines = append(lines, "Name"+sep+"Value")
	for _, r := range l.rows {
		lines = append(lines, r.Cells[0]+sep+r.Cells[1])
	}
	return lines
}

// allColumnLines renders every column, headed by the column titles.
func (l *ListView) allColumnLines(sep string) []string {
	lines := make([]string, 0, len(l.rows)+1)
	lines = append(lines, strings.Join(l.columns, sep))
	for _, r := range l.rows {
		lines = append(lines, strings.Join(r.Cells, sep))
	}
	return lines
}

func (l *ListView) CanShowDetails() bool { return false }

func (l *ListView) Details() (Detail, error) { return Detail{}, ErrNoDetails }

func (l *ListView) Close() {}
