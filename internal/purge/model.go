package purge

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/lakshaymaurya-felt/nmkill/internal/core"
	"github.com/lakshaymaurya-felt/nmkill/internal/logging"
	"github.com/lakshaymaurya-felt/nmkill/internal/pipeline"
	"github.com/lakshaymaurya-felt/nmkill/internal/record"
	"github.com/lakshaymaurya-felt/nmkill/internal/ui"
)

// ScanFunc produces the record list. It runs once, off the UI goroutine.
type ScanFunc func(ctx context.Context) (pipeline.Result, error)

// DeleteFunc removes one target directory.
type DeleteFunc func(path string) error

// SpaceFunc reports free space on the scanned volume.
type SpaceFunc func() (core.DiskSpace, error)

// Options configures a Model.
type Options struct {
	Version string
	Host    string
	Scan    ScanFunc
	Delete  DeleteFunc
	Space   SpaceFunc // optional; hides the free-space line when nil
	DryRun  bool
	Logger  *logging.Logger
}

// ─── Messages ────────────────────────────────────────────────────────────────

type scanDoneMsg struct {
	result pipeline.Result
	err    error
}

type deleteResultMsg struct {
	index int
	err   error
}

type spaceMsg struct {
	space core.DiskSpace
	err   error
}

// ─── Model ───────────────────────────────────────────────────────────────────

// Model is the bubbletea Model for the scan-then-delete session.
type Model struct {
	opts   Options
	ctx    context.Context
	cancel context.CancelFunc

	spinner spinner.Model
	help    help.Model
	keys    keyMap

	scanning bool
	records  *record.Collection
	stats    pipeline.Stats
	state    State
	cursor   int  // list position; Len() is the Exit item
	yes      bool // confirmation toggle: true is Yap
	pending  map[int]bool

	width  int
	height int
	offset int

	space    *core.DiskSpace
	notice   string
	noticeOK bool
	err      error
	quitting bool
}

// New creates a Model. The scan starts from Init.
func New(ctx context.Context, opts Options) Model {
	if opts.Logger == nil {
		opts.Logger = logging.Nop()
	}
	ctx, cancel := context.WithCancel(ctx)

	sp := spinner.New(
		spinner.WithSpinner(spinner.Dot),
		spinner.WithStyle(lipgloss.NewStyle().Foreground(ui.ColorPrimary)),
	)

	h := help.New()
	h.Styles.ShortKey = lipgloss.NewStyle().Foreground(ui.ColorTextDim)
	h.Styles.ShortDesc = ui.HintBarStyle()
	h.Styles.ShortSeparator = ui.HintBarStyle()
	h.ShortSeparator = " " + ui.IconPipe + " "

	return Model{
		opts:     opts,
		ctx:      ctx,
		cancel:   cancel,
		spinner:  sp,
		help:     h,
		keys:     defaultKeys(),
		scanning: true,
		pending:  make(map[int]bool),
		width:    80,
		height:   24,
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.runScan())
}

func (m Model) runScan() tea.Cmd {
	ctx, scan := m.ctx, m.opts.Scan
	return func() tea.Msg {
		if scan == nil {
			return scanDoneMsg{err: fmt.Errorf("purge: no scan configured")}
		}
		res, err := scan(ctx)
		return scanDoneMsg{result: res, err: err}
	}
}

func (m Model) refreshSpace() tea.Cmd {
	fn := m.opts.Space
	if fn == nil {
		return nil
	}
	return func() tea.Msg {
		s, err := fn()
		return spaceMsg{space: s, err: err}
	}
}

func (m Model) deleteRecord(i int, r record.Record) tea.Cmd {
	del := m.opts.Delete
	return func() tea.Msg {
		if del == nil {
			return deleteResultMsg{index: i, err: fmt.Errorf("purge: no deleter configured")}
		}
		return deleteResultMsg{index: i, err: del(r.TargetDir)}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.ensureVisible()
		return m, nil

	case spinner.TickMsg:
		if !m.scanning {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case scanDoneMsg:
		m.scanning = false
		if msg.err != nil {
			m.err = msg.err
			m.opts.Logger.Error("scan failed: %v", msg.err)
			return m.quit()
		}
		m.records = record.NewCollection(msg.result.Records)
		m.stats = msg.result.Stats
		m.opts.Logger.Info("scan found %d projects in %s", m.records.Len(), m.stats.Elapsed)
		return m, m.refreshSpace()

	case spaceMsg:
		if msg.err != nil {
			m.opts.Logger.Warn("free space: %v", msg.err)
			return m, nil
		}
		s := msg.space
		m.space = &s
		return m, nil

	case deleteResultMsg:
		delete(m.pending, msg.index)
		m.state, _ = Step(m.state, Deleted{Index: msg.index, Err: msg.err}, m.records)
		r, _ := m.records.At(msg.index)
		if msg.err != nil {
			m.opts.Logger.Error("delete %s: %v", r.TargetDir, msg.err)
			m.setNotice(msg.err.Error(), false)
			return m, nil
		}
		verb := "Removed"
		if m.opts.DryRun {
			verb = "Would remove"
		}
		m.opts.Logger.Info("%s %s (%s MB)", verb, r.TargetDir, r.SizeMB)
		m.setNotice(fmt.Sprintf("%s %s (%s)", verb, r.DisplayName, core.FormatSize(r.Bytes)), true)
		return m, m.refreshSpace()

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Abort) {
		return m.quit()
	}
	if m.scanning {
		if key.Matches(msg, m.keys.Quit) {
			return m.quit()
		}
		return m, nil
	}

	switch m.state.Mode {
	case ConfirmingDeletion:
		switch {
		case key.Matches(msg, m.keys.Toggle):
			m.yes = !m.yes
		case key.Matches(msg, m.keys.Yes):
			return m.answer(true)
		case key.Matches(msg, m.keys.No), key.Matches(msg, m.keys.Back):
			return m.answer(false)
		case key.Matches(msg, m.keys.Select):
			return m.answer(m.yes)
		}
		return m, nil

	default:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m.quit()
		case key.Matches(msg, m.keys.Up):
			if m.cursor > 0 {
				m.cursor--
				m.ensureVisible()
			}
		case key.Matches(msg, m.keys.Down):
			if m.cursor < m.records.Len() {
				m.cursor++
				m.ensureVisible()
			}
		case key.Matches(msg, m.keys.Select):
			if m.cursor == m.records.Len() {
				return m.quit()
			}
			// One removal at a time.
			if len(m.pending) > 0 {
				return m, nil
			}
			m.state, _ = Step(m.state, Select{Index: m.cursor}, m.records)
			m.yes = false
			m.notice = ""
		}
		return m, nil
	}
}

func (m Model) answer(yes bool) (tea.Model, tea.Cmd) {
	var act Action
	m.state, act = Step(m.state, Answer{Yes: yes}, m.records)
	if !act.Delete {
		return m, nil
	}
	r, ok := m.records.At(act.Index)
	if !ok {
		return m, nil
	}
	m.pending[act.Index] = true
	return m, m.deleteRecord(act.Index, r)
}

func (m Model) quit() (tea.Model, tea.Cmd) {
	m.state, _ = Step(m.state, Exit{}, m.records)
	m.quitting = true
	m.cancel()
	return m, tea.Quit
}

func (m *Model) setNotice(text string, ok bool) {
	m.notice = text
	m.noticeOK = ok
}

// View delegates to view.go renderView.
func (m Model) View() string {
	return m.renderView()
}

// ─── Accessors ───────────────────────────────────────────────────────────────

// Err returns the error that ended the session, if any.
func (m Model) Err() error {
	return m.err
}

// Records returns the session's records with their current active flags.
func (m Model) Records() []record.Record {
	return m.records.Records()
}

// Mode reports the current loop mode.
func (m Model) Mode() Mode {
	return m.state.Mode
}

// ─── Helpers ─────────────────────────────────────────────────────────────────

func (m *Model) ensureVisible() {
	vh := m.viewportHeight()
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+vh {
		m.offset = m.cursor - vh + 1
	}
}

func (m *Model) viewportHeight() int {
	h := m.height - 8 // header (3) + footer (4) + padding
	if h < 1 {
		h = 1
	}
	return h
}
