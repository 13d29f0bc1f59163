package views

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/bitdesk/bitdesk/internal/domain"
	"github.com/bitdesk/bitdesk/internal/poll"
	"github.com/bitdesk/bitdesk/pkg/pager"
)

// bookModel shows one side of the aggregated order book at a time.
// Switching sides resets the page to 1.
type bookModel struct {
	book   domain.OrderBook
	errMsg string
	seen   bool

	side    domain.BookSide
	page    int
	perPage int
	window  int
}

func newBookModel(perPage, window int) bookModel {
	return bookModel{side: domain.BookBid, page: 1, perPage: perPage, window: window}
}

func (m *bookModel) apply(snap poll.Snapshot[domain.OrderBook]) {
	m.book = snap.Value
	m.seen = true
	if snap.Err != nil {
		m.errMsg = snap.Err.Error()
	} else {
		m.errMsg = ""
	}
	m.page = pager.Clamp(m.page, m.totalPages())
}

func (m *bookModel) reset() {
	*m = newBookModel(m.perPage, m.window)
}

func (m *bookModel) levels() []domain.BookLevel {
	return m.book.Levels(m.side)
}

func (m *bookModel) totalPages() int {
	return pager.TotalPages(len(m.levels()), m.perPage)
}

func (m *bookModel) setSide(side domain.BookSide) {
	if m.side == side {
		return
	}
	m.side = side
	m.page = 1
}

func (m *bookModel) handleKey(msg tea.KeyMsg) {
	switch msg.String() {
	case "b":
		m.setSide(domain.BookBid)
	case "a":
		m.setSide(domain.BookAsk)
	case "left", "h":
		m.page = pager.Clamp(m.page-1, m.totalPages())
	case "right", "l":
		m.page = pager.Clamp(m.page+1, m.totalPages())
	}
}

func (m *bookModel) view(width int) string {
	var lines []string

	bidTab := " Bids "
	askTab := " Asks "
	if m.side == domain.BookBid {
		bidTab = tabActiveStyle.Render(bidTab)
		askTab = tabInactiveStyle.Render(askTab)
	} else {
		bidTab = tabInactiveStyle.Render(bidTab)
		askTab = tabActiveStyle.Render(askTab)
	}
	lines = append(lines, titleStyle.Render("Order Book")+"  "+bidTab+askTab+dimStyle.Render("  (b/a to switch)"))
	lines = append(lines, strings.Repeat("─", min(width-4, 50)))

	levels := m.levels()
	if !m.seen {
		lines = append(lines, dimStyle.Render("Loading order book..."))
	} else if len(levels) == 0 {
		if m.side == domain.BookBid {
			lines = append(lines, dimStyle.Render("No bids available"))
		} else {
			lines = append(lines, dimStyle.Render("No asks available"))
		}
	} else {
		style := bidStyle
		if m.side == domain.BookAsk {
			style = askStyle
		}
		lines = append(lines, dimStyle.Render("Price            Amount"))
		for _, lvl := range pager.Slice(levels, m.page, m.perPage) {
			row := padRight(domain.FormatUSD(lvl.Price), 17) + domain.FormatBTC(lvl.Volume)
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

func padRight(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}
