package ui

// Terminal dimension constants
const (
	// DefaultTermWidth is the fallback terminal width when not detected
	DefaultTermWidth = 120

	// DefaultTermHeight is the fallback terminal height when not detected
	DefaultTermHeight = 40
)

// Table column constants
const (
	// DefaultNameWidth truncates the name column when no override is set
	DefaultNameWidth = 32

	// DefaultValueWidth truncates value columns when no override is set
	DefaultValueWidth = 60

	// MinColumnWidth and MaxColumnWidth bound the [ and ] keys
	MinColumnWidth = 8
	MaxColumnWidth = 240

	// ColumnWidthStep is how much one key press narrows or widens a column
	ColumnWidthStep = 4
)

// Layout constants
const (
	// LogPaneHeight is the number of log lines shown below the table
	LogPaneHeight = 6

	// chromeHeight counts the title, tab bar, table header, log header,
	// status and footer lines around the table body
	chromeHeight = 11

	// MaxPathWidth is the maximum width for displaying file paths
	MaxPathWidth = 48
)
