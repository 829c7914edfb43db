// Package tui provides the Bubble Tea typing interface.
package tui

import (
	"context"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/timer"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/verte-zerg/typee/internal/mint"
	"github.com/verte-zerg/typee/internal/model"
	"github.com/verte-zerg/typee/internal/render"
	"github.com/verte-zerg/typee/internal/session"
)

type view int

const (
	viewGame view = iota
	viewResult
	viewMinted
	viewHistory
)

// Options configures the typing UI.
type Options struct {
	VisibleLines   int
	ExplorerURL    string
	Network        string
	MintTimeout    time.Duration
	HistoryTimeout time.Duration
	Logger         *zap.Logger
	// Copy writes to the system clipboard; defaults to clipboard.WriteAll.
	Copy func(string) error
}

// Model implements the Bubble Tea typing UI.
type Model struct {
	session *session.Session
	mint    *mint.Service
	opts    Options
	logger  *zap.Logger

	width  int
	height int
	view   view

	input        textinput.Model
	countdown    timer.Model
	countdownOn  bool
	restartArmed bool

	spinner        spinner.Model
	minting        bool
	receipt        model.Receipt
	copied         bool
	notice         string
	loadingHistory bool
	records        []model.ScoreRecord
	history        table.Model
}

// messages reporting ledger calls back to the event loop.
type mintResultMsg struct {
	receipt model.Receipt
	err     error
}

type historyMsg struct {
	records []model.ScoreRecord
	err     error
}

// NewModel constructs a typing TUI model over a fresh session.
func NewModel(sess *session.Session, svc *mint.Service, opts Options) *Model {
	if opts.VisibleLines <= 0 {
		opts.VisibleLines = render.DefaultRows
	}
	if opts.Copy == nil {
		opts.Copy = clipboard.WriteAll
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	input := textinput.New()
	input.Prompt = ""
	input.CharLimit = len(sess.Target())
	input.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = accentStyle

	return &Model{
		session: sess,
		mint:    svc,
		opts:    opts,
		logger:  logger,
		view:    viewGame,
		input:   input,
		spinner: sp,
		history: newHistoryTable(),
	}
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resizeHistory()
		return m, nil
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		switch m.view {
		case viewGame:
			return m, m.handleGameKey(msg)
		case viewResult:
			return m, m.handleResultKey(msg)
		case viewMinted:
			return m, m.handleMintedKey(msg)
		case viewHistory:
			return m, m.handleHistoryKey(msg)
		}
		return m, nil
	case timer.TickMsg:
		return m, m.handleTick(msg)
	case spinner.TickMsg:
		if !m.minting && !m.loadingHistory {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case mintResultMsg:
		m.handleMintResult(msg)
		return m, nil
	case historyMsg:
		m.handleHistory(msg)
		return m, nil
	default:
		if m.view != viewGame {
			return m, nil
		}
		// caret blink
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
}

func (m *Model) handleGameKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.Type {
	case tea.KeyTab:
		m.restartArmed = true
		return nil
	case tea.KeyEnter:
		if m.restartArmed {
			return m.restart()
		}
		return nil
	case tea.KeyEsc:
		return m.restart()
	}
	m.restartArmed = false
	if m.session.State() == session.Finished {
		return nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if m.session.SetInput(m.input.Value()) {
		return tea.Batch(cmd, m.startCountdown())
	}
	return cmd
}

func (m *Model) startCountdown() tea.Cmd {
	limit := time.Duration(m.session.TimeLimit()) * time.Second
	m.countdown = timer.NewWithInterval(limit, time.Second)
	m.countdownOn = true
	m.logger.Debug("countdown started",
		zap.Int("id", m.countdown.ID()),
		zap.Uint64("generation", m.session.Generation()))
	return m.countdown.Init()
}

// handleTick drops ticks of any countdown other than the live one.
func (m *Model) handleTick(msg timer.TickMsg) tea.Cmd {
	if !m.countdownOn || msg.ID != m.countdown.ID() {
		return nil
	}
	var cmd tea.Cmd
	m.countdown, cmd = m.countdown.Update(msg)
	if m.session.Tick() {
		m.finish()
		return nil
	}
	return cmd
}

func (m *Model) finish() {
	m.countdownOn = false
	m.restartArmed = false
	m.input.Blur()
	m.notice = ""
	m.view = viewResult
	stats := m.session.Stats()
	m.logger.Info("test finished",
		zap.Int("wpm", stats.WPM),
		zap.Int("accuracy", stats.Accuracy),
		zap.Int("typed", len(m.session.Input())))
}

func (m *Model) restart() tea.Cmd {
	if err := m.session.Restart(); err != nil {
		m.logger.Error("restart failed", zap.Error(err))
		m.notice = err.Error()
		return nil
	}
	m.countdown = timer.Model{}
	m.countdownOn = false
	m.restartArmed = false
	m.notice = ""
	m.copied = false
	m.view = viewGame
	m.input.Reset()
	m.input.CharLimit = len(m.session.Target())
	return m.input.Focus()
}

// caretVisible reports the blink phase of the input cursor.
func (m *Model) caretVisible() bool {
	return !m.input.Cursor.Blink
}

func (m *Model) handleResultKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "enter", "r", "esc":
		if m.minting {
			return nil
		}
		return m.restart()
	case "m":
		return m.startMint()
	case "h":
		if m.minting {
			return nil
		}
		return m.openHistory()
	}
	return nil
}

func (m *Model) handleMintedKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "c":
		if err := m.opts.Copy(m.receipt.ObjectID); err != nil {
			m.logger.Warn("copy to clipboard failed", zap.Error(err))
			m.notice = "Could not copy to clipboard."
			return nil
		}
		m.copied = true
	case "h":
		return m.openHistory()
	case "n", "enter", "esc":
		return m.restart()
	}
	return nil
}

func (m *Model) handleHistoryKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "esc", "b":
		return m.restart()
	}
	var cmd tea.Cmd
	m.history, cmd = m.history.Update(msg)
	return cmd
}

func (m *Model) startMint() tea.Cmd {
	if m.mint == nil || !m.mint.Connected() || m.minting || m.mint.InFlight() {
		return nil
	}
	m.minting = true
	m.notice = ""
	return tea.Batch(m.spinner.Tick, mintCmd(m.mint, m.session.Stats(), m.opts.MintTimeout))
}

func (m *Model) handleMintResult(msg mintResultMsg) {
	m.minting = false
	if msg.err != nil {
		m.logger.Warn("mint failed", zap.Error(msg.err))
		m.notice = mint.UserMessage(msg.err)
		return
	}
	m.receipt = msg.receipt
	m.copied = false
	m.notice = ""
	m.view = viewMinted
}

func (m *Model) openHistory() tea.Cmd {
	m.view = viewHistory
	m.notice = ""
	m.records = nil
	m.setHistoryRows()
	if m.mint == nil || !m.mint.Connected() {
		return nil
	}
	m.loadingHistory = true
	return tea.Batch(m.spinner.Tick, historyCmd(m.mint, m.opts.HistoryTimeout))
}

func (m *Model) handleHistory(msg historyMsg) {
	m.loadingHistory = false
	if m.view != viewHistory {
		if msg.err != nil {
			m.logger.Debug("discarding history result", zap.Error(msg.err))
		}
		return
	}
	if msg.err != nil {
		m.logger.Warn("history unavailable", zap.Error(msg.err))
		m.notice = mint.UserMessage(msg.err)
		m.records = nil
	} else {
		m.records = msg.records
	}
	m.setHistoryRows()
}

func mintCmd(svc *mint.Service, stats model.Stats, timeout time.Duration) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := withTimeout(timeout)
		defer cancel()
		receipt, err := svc.Mint(ctx, stats)
		return mintResultMsg{receipt: receipt, err: err}
	}
}

func historyCmd(svc *mint.Service, timeout time.Duration) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := withTimeout(timeout)
		defer cancel()
		records, err := svc.History(ctx)
		return historyMsg{records: records, err: err}
	}
}

func withTimeout(timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout <= 0 {
		return context.WithCancel(context.Background())
	}
	return context.WithTimeout(context.Background(), timeout)
}

func newHistoryTable() table.Model {
	t := table.New(
		table.WithColumns(historyColumns(idColumnWidth)),
		table.WithFocused(true),
		table.WithHeight(10),
	)
	t.SetStyles(historyTableStyles())
	return t
}

func historyTableStyles() table.Styles {
	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		Border(lipgloss.NormalBorder(), false, false, true, false).
		BorderForeground(lipgloss.Color("#4A4A4A")).
		Foreground(lipgloss.Color("#C0C0C0")).
		Bold(true).
		Padding(0, 1).
		PaddingLeft(0)
	styles.Cell = styles.Cell.
		Padding(0, 1).
		PaddingLeft(0)
	styles.Selected = styles.Cell.
		Foreground(lipgloss.Color("#F0F0F0")).
		Bold(true)
	return styles
}
