package views

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/bitdesk/bitdesk/internal/domain"
	"github.com/bitdesk/bitdesk/internal/poll"
	"github.com/bitdesk/bitdesk/pkg/pager"
)

// ordersModel lists the user's open orders with row selection and
// cancellation. A row is dropped only after the backend confirms the
// cancel; until then it stays put, and a failed cancel keeps the row and
// shows the error.
type ordersModel struct {
	orders []domain.Order
	errMsg string
	seen   bool

	page    int
	cursor  int
	perPage int
	window  int

	cancelling string
	cancelErr  string
}

func newOrdersModel(perPage, window int) ordersModel {
	return ordersModel{page: 1, perPage: perPage, window: window}
}

func (m *ordersModel) apply(snap poll.Snapshot[[]domain.Order]) {
	m.orders = snap.Value
	m.seen = true
	if snap.Err != nil {
		m.errMsg = snap.Err.Error()
	} else {
		m.errMsg = ""
	}
	m.clampCursor()
}

func (m *ordersModel) reset() {
	*m = newOrdersModel(m.perPage, m.window)
}

func (m *ordersModel) totalPages() int {
	return pager.TotalPages(len(m.orders), m.perPage)
}

func (m *ordersModel) pageItems() []domain.Order {
	return pager.Slice(m.orders, m.page, m.perPage)
}

func (m *ordersModel) clampCursor() {
	m.page = pager.Clamp(m.page, m.totalPages())
	n := len(m.pageItems())
	if n == 0 {
		m.cursor = 0
	} else if m.cursor >= n {
		m.cursor = n - 1
	}
}

func (m *ordersModel) handleKey(msg tea.KeyMsg, cancel func(id string) tea.Cmd) tea.Cmd {
	switch msg.String() {
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.pageItems())-1 {
			m.cursor++
		}
	case "left", "h":
		m.page = pager.Clamp(m.page-1, m.totalPages())
		m.clampCursor()
	case "right", "l":
		m.page = pager.Clamp(m.page+1, m.totalPages())
		m.clampCursor()
	case "c", "x":
		items := m.pageItems()
		if m.cancelling == "" && m.cursor < len(items) {
			order := items[m.cursor]
			m.cancelling = order.ID
			m.cancelErr = ""
			return cancel(order.ID)
		}
	}
	return nil
}

func (m *ordersModel) finishCancel(msg cancelDoneMsg) {
	m.cancelling = ""
	if msg.err != nil {
		m.cancelErr = msg.err.Error()
		return
	}
	m.cancelErr = ""
	kept := m.orders[:0]
	for _, o := range m.orders {
		if o.ID != msg.id {
			kept = append(kept, o)
		}
	}
	m.orders = kept
	m.clampCursor()
}

func (m *ordersModel) view(width int) string {
	var lines []string
	lines = append(lines, titleStyle.Render("Active Orders")+dimStyle.Render("  (↑/↓ select, c cancel)"))
	lines = append(lines, strings.Repeat("─", min(width-4, 60)))

	if !m.seen {
		lines = append(lines, dimStyle.Render("Loading orders..."))
	} else if len(m.orders) == 0 {
		lines = append(lines, dimStyle.Render("No active orders"))
	} else {
		lines = append(lines, dimStyle.Render("Side  Amount       Price            Created"))
		for i, o := range m.pageItems() {
			side := string(o.Side)
			style := bidStyle
			if o.Side == domain.SideSell {
				style = askStyle
			}
			row := padRight(side, 6) +
				padRight(domain.FormatBTC(o.Amount), 13) +
				padRight(domain.FormatUSD(o.Price), 17) +
				o.CreatedAt.Format("01-02 15:04:05")
			if i == m.cursor {
				row = cursorStyle.Render("> ") + style.Render(row)
			} else {
				row = "  " + style.Render(row)
			}
			if o.ID == m.cancelling {
				row += dimStyle.Render("  cancelling...")
			}
			lines = append(lines, row)
		}
		if strip := renderPager(m.page, m.totalPages(), m.window); strip != "" {
			lines = append(lines, "")
			lines = append(lines, strip)
		}
	}

	if m.cancelErr != "" {
		lines = append(lines, "")
		lines = append(lines, errStyle.Render(m.cancelErr))
	}
	if m.errMsg != "" {
		lines = append(lines, "")
		lines = append(lines, errStyle.Render(m.errMsg))
	}
	return strings.Join(lines, "\n")
}
