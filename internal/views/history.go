package views

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/bitdesk/bitdesk/internal/domain"
	"github.com/bitdesk/bitdesk/internal/poll"
	"github.com/bitdesk/bitdesk/pkg/pager"
)

// historyModel lists the user's executed matches. The backend ships
// preformatted price and volume strings; they are used as-is when
// present.
type historyModel struct {
	matches []domain.Match
	errMsg  string
	seen    bool

	page    int
	perPage int
	window  int
}

func newHistoryModel(perPage, window int) historyModel {
	return historyModel{page: 1, perPage: perPage, window: window}
}

func (m *historyModel) apply(snap poll.Snapshot[[]domain.Match]) {
	m.matches = snap.Value
	m.seen = true
	if snap.Err != nil {
		m.errMsg = snap.Err.Error()
	} else {
		m.errMsg = ""
	}
	m.page = pager.Clamp(m.page, m.totalPages())
}

func (m *historyModel) reset() {
	*m = newHistoryModel(m.perPage, m.window)
}

func (m *historyModel) totalPages() int {
	return pager.TotalPages(len(m.matches), m.perPage)
}

func (m *historyModel) handleKey(msg tea.KeyMsg) {
	switch msg.String() {
	case "left", "h":
		m.page = pager.Clamp(m.page-1, m.totalPages())
	case "right", "l":
		m.page = pager.Clamp(m.page+1, m.totalPages())
	}
}

func (m *historyModel) view(width int) string {
	var lines []string
	lines = append(lines, titleStyle.Render("Match History"))
	lines = append(lines, strings.Repeat("─", min(width-4, 60)))

	if !m.seen {
		lines = append(lines, dimStyle.Render("Loading match history..."))
	} else if len(m.matches) == 0 {
		lines = append(lines, dimStyle.Render("No matches yet"))
	} else {
		lines = append(lines, dimStyle.Render("Side  Volume       Price            Time"))
		for _, match := range pager.Slice(m.matches, m.page, m.perPage) {
			style := bidStyle
			if match.Side == domain.SideSell {
				style = askStyle
			}
			price := match.FormattedPrice
			if price == "" {
				price = domain.FormatUSD(match.Price)
			}
			volume := match.FormattedVolume
			if volume == "" {
				volume = domain.FormatBTC(match.Volume)
			}
			row := padRight(string(match.Side), 6) +
				padRight(volume, 13) +
				padRight(price, 17) +
				match.Timestamp.Format("01-02 15:04:05")
			lines = append(lines, style.Render(row))
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
