// Package ui is the interactive terminal front end. It draws the views of
// an inspector.Inspector as tabs, shows the window log below the table and
// offers details, about and save modals.
//
// The Inspector is only touched from the bubbletea update loop. Background
// work reaches it through a Relay.
package ui

import (
	"fmt"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/go-logr/logr"
	"github.com/nvm/sysinspect/internal/events"
	"github.com/nvm/sysinspect/internal/inspector"
	"github.com/nvm/sysinspect/internal/notify"
	"github.com/nvm/sysinspect/internal/report"
	"github.com/nvm/sysinspect/internal/sysview"
)

// ViewMode selects what the screen shows on top of the main view.
type ViewMode int

const (
	ViewModeMain ViewMode = iota
	ViewModeDetails
	ViewModeAbout
	ViewModeSave
)

// refreshDeadlineMsg fires when the debounce delay of a notification ran out.
type refreshDeadlineMsg struct {
	seq uint64
}

// savedMsg reports the outcome of writing the values to a file.
type savedMsg struct {
	path  string
	lines int
	err   error
}

// copiedMsg reports the outcome of a clipboard copy.
type copiedMsg struct {
	what string
	err  error
}

// Options configure the UI.
type Options struct {
	Version string
	// Separator joins columns in saved and copied values.
	Separator string
	// SaveFile is the file name proposed by the save prompt.
	SaveFile  string
	Clipboard Clipboard
	Bus       *events.Bus
	Log       logr.Logger
}

// UI is the bubbletea front end of an Inspector.
type UI struct {
	inspector *inspector.Inspector
	relay     *Relay
	opts      Options
	log       logr.Logger
	program   *tea.Program

	tab      int
	viewMode ViewMode
	detail   sysview.Detail
	input    []rune

	status      string
	statusError bool
}

// bubbletea model
type model struct {
	ui         *UI
	termWidth  int
	termHeight int
}

// New creates the UI. relay must be the relay whose Post was given to the
// inspector as its Poster.
func New(in *inspector.Inspector, relay *Relay, opts Options) *UI {
	if opts.Separator == "" {
		opts.Separator = "\t"
	}
	if opts.Clipboard == nil {
		opts.Clipboard = SystemClipboard{}
	}
	if opts.Log.GetSink() == nil {
		opts.Log = logr.Discard()
	}
	return &UI{
		inspector: in,
		relay:     relay,
		opts:      opts,
		log:       opts.Log.WithName("ui"),
	}
}

// Start runs the program until the user quits
func (ui *UI) Start() error {
	m := model{ui: ui}
	ui.program = tea.NewProgram(m, tea.WithAltScreen())
	_, err := ui.program.Run()
	return err
}

// Stop stops the application
func (ui *UI) Stop() {
	if ui.program != nil {
		ui.program.Quit()
	}
}

// current returns the view of the active tab.
func (ui *UI) current() sysview.View {
	return ui.inspector.Views()[ui.tab]
}

func (ui *UI) setStatus(msg string) {
	ui.status = msg
	ui.statusError = false
}

func (ui *UI) setError(msg string) {
	ui.status = msg
	ui.statusError = true
}

// Bubble Tea Model Implementation

func (m model) Init() tea.Cmd {
	if m.ui.relay == nil {
		return nil
	}
	return m.ui.relay.wait()
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		// Update terminal dimensions on resize
		m.termWidth = msg.Width
		m.termHeight = msg.Height
		return m, nil

	case tea.KeyMsg:
		// Route based on current view mode
		switch m.ui.viewMode {
		case ViewModeMain:
			return m.handleMainViewKeys(msg)
		case ViewModeDetails, ViewModeAbout:
			return m.handleModalKeys(msg)
		case ViewModeSave:
			return m.handleSaveKeys(msg)
		}

	case relayedMsg:
		cmd := m.handleBackground(msg.msg)
		return m, tea.Batch(cmd, m.ui.relay.wait())

	case refreshDeadlineMsg:
		m.ui.inspector.DeadlineReached(msg.seq)
		return m, nil

	case savedMsg:
		return m.handleSaved(msg)

	case copiedMsg:
		return m.handleCopied(msg)
	}

	return m, nil
}

// handleBackground applies a message posted by a background goroutine.
func (m model) handleBackground(msg any) tea.Cmd {
	in := m.ui.inspector

	switch msg := msg.(type) {
	case NotificationMsg:
		seq, armed := in.Notify(msg.Notification)
		if !armed {
			return nil
		}
		return tea.Tick(in.RefreshDelay(), func(time.Time) tea.Msg {
			return refreshDeadlineMsg{seq: seq}
		})

	case ConfigReloadedMsg:
		in.SetAutoRefresh(msg.AutoRefresh)
		in.SetRefreshDelay(msg.RefreshDelay)
		in.Log(fmt.Sprintf("Configuration was reloaded from %s.", truncatePath(msg.Path)))
		if len(msg.Restart) > 0 {
			in.Log(fmt.Sprintf("Restart to apply changed settings: %s.", strings.Join(msg.Restart, ", ")))
		}
		return nil

	default:
		if !in.ApplyAsync(msg) {
			m.ui.log.V(1).Info("ignoring background message", "type", fmt.Sprintf("%T", msg))
		}
		return nil
	}
}

func (m model) View() string {
	// Always render main view as base
	mainView := m.renderMainView()

	termWidth, termHeight := m.dimensions()

	switch m.ui.viewMode {
	case ViewModeDetails:
		return overlayContent(mainView, m.renderDetails(), termWidth, termHeight)
	case ViewModeAbout:
		return overlayContent(mainView, m.renderAbout(), termWidth, termHeight)
	case ViewModeSave:
		return overlayContent(mainView, m.renderSavePrompt(), termWidth, termHeight)
	default:
		return mainView
	}
}

// dimensions returns the terminal size, falling back to defaults until the
// first resize message arrives.
func (m model) dimensions() (int, int) {
	w, h := m.termWidth, m.termHeight
	if w == 0 {
		w = DefaultTermWidth
	}
	if h == 0 {
		h = DefaultTermHeight
	}
	return w, h
}

// saveCmd writes lines to path off the update loop.
func saveCmd(path string, lines []string) tea.Cmd {
	return func() tea.Msg {
		return savedMsg{path: path, lines: len(lines), err: report.Save(path, lines)}
	}
}

// copyCmd writes text to the clipboard off the update loop.
func copyCmd(cb Clipboard, what, text string) tea.Cmd {
	return func() tea.Msg {
		return copiedMsg{what: what, err: cb.WriteText(text)}
	}
}

// truncatePath shortens long paths from the left.
func truncatePath(path string) string {
	r := []rune(path)
	if len(r) <= MaxPathWidth {
		return path
	}
	return "…" + string(r[len(r)-MaxPathWidth+1:])
}

// expandSavePath resolves a save file name typed by the user.
func expandSavePath(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return ""
	}
	name = notify.ExpandHome(name)
	return os.ExpandEnv(name)
}
