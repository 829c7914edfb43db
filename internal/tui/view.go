package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/verte-zerg/typee/internal/ledger"
	"github.com/verte-zerg/typee/internal/render"
	"github.com/verte-zerg/typee/internal/session"
	statsPkg "github.com/verte-zerg/typee/internal/stats"
)

const idColumnWidth = 20

var (
	titleStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A")).Bold(true)
	accentStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A"))
	footerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	scoreStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Bold(true)
	noticeStyle = incorrectStyle
)

// View implements tea.Model.
func (m *Model) View() string {
	var body, footer string
	switch m.view {
	case viewResult:
		body, footer = m.resultView(), "[enter/r] restart  [m] mint  [h] history  [ctrl+c] quit"
	case viewMinted:
		body, footer = m.mintedView(), "[c] copy id  [h] history  [n] new test  [ctrl+c] quit"
	case viewHistory:
		body, footer = m.historyView(), "[↑/↓] scroll  [esc/b] back  [ctrl+c] quit"
	default:
		body, footer = m.gameView(), "[tab+enter/esc] restart  [ctrl+c] quit"
	}
	header := m.renderHeader()
	footer = footerStyle.Render(footer)

	if m.width == 0 || m.height < 3 {
		return header + "\n\n" + body + "\n\n" + footer
	}
	bodyHeight := m.height - 2
	return lipgloss.Place(m.width, 1, lipgloss.Center, lipgloss.Top, header) + "\n" +
		lipgloss.Place(m.width, bodyHeight, lipgloss.Center, lipgloss.Center, body) + "\n" +
		lipgloss.Place(m.width, 1, lipgloss.Center, lipgloss.Bottom, footer)
}

func (m *Model) renderHeader() string {
	segments := []string{titleStyle.Render("typee")}
	if m.view == viewGame && m.session.State() != session.Finished {
		segments = append(segments, accentStyle.Render(fmt.Sprintf("%ds", m.session.Remaining())))
	}
	segments = append(segments, footerStyle.Render(m.identityLabel()))
	return strings.Join(segments, "  ")
}

func (m *Model) identityLabel() string {
	if m.mint == nil || !m.mint.Connected() {
		return "not connected"
	}
	return ledger.ShortAddress(m.mint.Address())
}

func (m *Model) gameView() string {
	running := m.session.State() == session.Running
	rows := render.Window(m.session.Lines(), m.session.Input(), running, m.opts.VisibleLines)
	text := renderRows(rows, m.caretVisible())
	progress := render.Progress(m.session.Target(), m.session.Input())
	status := fmt.Sprintf("Progress %d%%", progress)
	if m.session.State() == session.Idle {
		status = "Start typing to begin"
	}
	parts := []string{text, "", footerStyle.Render(status)}
	if m.notice != "" {
		parts = append(parts, noticeStyle.Render(m.notice))
	}
	return strings.Join(parts, "\n")
}

func (m *Model) resultView() string {
	stats := m.session.Stats()
	lines := []string{
		titleStyle.Render("Time's up!"),
		"",
		scoreStyle.Render(fmt.Sprintf("%d WPM", stats.WPM)) + "  " + scoreStyle.Render(fmt.Sprintf("%d%% accuracy", stats.Accuracy)),
		"",
	}
	switch {
	case m.minting:
		lines = append(lines, m.spinner.View()+" Minting...")
	case m.mint == nil || !m.mint.Connected():
		lines = append(lines, footerStyle.Render("Connect a wallet to mint your score."))
	default:
		lines = append(lines, accentStyle.Render("Press m to mint this score."))
	}
	if m.notice != "" {
		lines = append(lines, noticeStyle.Render(m.notice))
	}
	return strings.Join(lines, "\n")
}

func (m *Model) mintedView() string {
	id := m.receipt.ObjectID
	lines := []string{
		titleStyle.Render("Score minted!"),
		"",
		"Object " + scoreStyle.Render(id),
		footerStyle.Render(ledger.ExplorerURL(m.opts.ExplorerURL, m.opts.Network, id)),
	}
	if m.copied {
		lines = append(lines, "", accentStyle.Render("Copied object id to clipboard."))
	}
	if m.notice != "" {
		lines = append(lines, "", noticeStyle.Render(m.notice))
	}
	return strings.Join(lines, "\n")
}

func (m *Model) historyView() string {
	lines := []string{titleStyle.Render("Minted scores"), ""}
	switch {
	case m.mint == nil || !m.mint.Connected():
		lines = append(lines, footerStyle.Render("Connect a wallet to see your scores."))
	case m.loadingHistory:
		lines = append(lines, m.spinner.View()+" Loading scores...")
	case len(m.records) == 0:
		lines = append(lines, footerStyle.Render("No scores minted yet."))
	default:
		s := statsPkg.Summarize(m.records)
		lines = append(lines,
			footerStyle.Render(fmt.Sprintf("%d scores  avg %.1f WPM  best %d WPM  avg %.1f%%", s.Count, s.AvgWPM, s.BestWPM, s.AvgAccuracy)),
			"",
			m.history.View())
		if selected := m.history.Cursor(); selected >= 0 && selected < len(m.records) {
			lines = append(lines, "", footerStyle.Render(ledger.ExplorerURL(m.opts.ExplorerURL, m.opts.Network, m.records[selected].ID)))
		}
	}
	if m.notice != "" {
		lines = append(lines, noticeStyle.Render(m.notice))
	}
	return strings.Join(lines, "\n")
}

func historyColumns(idWidth int) []table.Column {
	return []table.Column{
		{Title: "Object", Width: idWidth},
		{Title: "WPM", Width: 5},
		{Title: "Accuracy", Width: 8},
	}
}

func (m *Model) setHistoryRows() {
	rows := make([]table.Row, 0, len(m.records))
	for _, rec := range m.records {
		rows = append(rows, table.Row{
			runewidth.Truncate(rec.ID, idColumnWidth, "..."),
			strconv.Itoa(rec.WPM),
			strconv.Itoa(rec.Accuracy) + "%",
		})
	}
	m.history.SetRows(rows)
	m.history.SetCursor(0)
}

func (m *Model) resizeHistory() {
	if m.height <= 0 {
		return
	}
	height := m.height - 10
	if height < 3 {
		height = 3
	}
	m.history.SetHeight(height)
}
