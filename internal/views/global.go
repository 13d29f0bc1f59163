package views

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/bitdesk/bitdesk/internal/domain"
	"github.com/bitdesk/bitdesk/internal/poll"
	"github.com/bitdesk/bitdesk/pkg/pager"
)

// globalModel lists recent matches across the whole platform.
type globalModel struct {
	matches []domain.GlobalMatch
	errMsg  string
	seen    bool

	page    int
	perPage int
	window  int
}

func newGlobalModel(perPage, window int) globalModel {
	return globalModel{page: 1, perPage: perPage, window: window}
}

func (m *globalModel) apply(snap poll.Snapshot[[]domain.GlobalMatch]) {
	m.matches = snap.Value
	m.seen = true
	if snap.Err != nil {
		m.errMsg = snap.Err.Error()
	} else {
		m.errMsg = ""
	}
	m.page = pager.Clamp(m.page, m.totalPages())
}

func (m *globalModel) reset() {
	*m = newGlobalModel(m.perPage, m.window)
}

func (m *globalModel) totalPages() int {
	return pager.TotalPages(len(m.matches), m.perPage)
}

func (m *globalModel) handleKey(msg tea.KeyMsg) {
	switch msg.String() {
	case "left", "h":
		m.page = pager.Clamp(m.page-1, m.totalPages())
	case "right", "l":
		m.page = pager.Clamp(m.page+1, m.totalPages())
	}
}

func (m *globalModel) view(width int) string {
	var lines []string
	lines = append(lines, titleStyle.Render("Global Matches"))
	lines = append(lines, strings.Repeat("─", min(width-4, 60)))

	if !m.seen {
		lines = append(lines, dimStyle.Render("Loading global matches..."))
	} else if len(m.matches) == 0 {
		lines = append(lines, dimStyle.Render("No matches yet"))
	} else {
		lines = append(lines, dimStyle.Render("Volume       Price            Time"))
		for _, match := range pager.Slice(m.matches, m.page, m.perPage) {
			price := match.FormattedPrice
			if price == "" {
				price = domain.FormatUSD(match.Price)
			}
			volume := match.FormattedVolume
			if volume == "" {
				volume = domain.FormatBTC(match.Volume)
			}
			row := padRight(volume, 13) +
				padRight(price, 17) +
				match.CreatedAt.Format("01-02 15:04:05")
			lines = append(lines, row)
		}
		if strip := renderPager(m.page, m.totalPages(), m.window); strip != "" {
			lines = append(lines, "")
			lines = append(lines, strip)
		}
	}

	if m.errMsg != "" {
		lines = append(lines, "")
		lines = append(lines, errStyle.Render(m.errMsg))
	}
	return strings.Join(lines, "\n")
}
