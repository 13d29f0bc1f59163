package views

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"

	"github.com/bitdesk/bitdesk/internal/domain"
)

const (
	fieldNone = iota - 1
	fieldAmount
	fieldPrice
)

// orderFormModel is the order entry panel: side toggle, amount and
// price fields, live total. A successful submit clears the fields.
type orderFormModel struct {
	side   domain.Side
	amount []rune
	price  []rune
	focus  int

	submitting bool
	errMsg     string
	okMsg      string
}

func newOrderFormModel() orderFormModel {
	return orderFormModel{side: domain.SideBuy, focus: fieldNone}
}

func (m *orderFormModel) reset() {
	*m = newOrderFormModel()
}

// editing reports whether a text field has focus, in which case the app
// must not treat keystrokes as navigation.
func (m *orderFormModel) editing() bool {
	return m.focus != fieldNone
}

type submitFunc func(side domain.Side, amount, price string) tea.Cmd

func (m *orderFormModel) handleKey(msg tea.KeyMsg, submit submitFunc) tea.Cmd {
	if m.editing() {
		return m.handleEditKey(msg, submit)
	}

	switch msg.String() {
	case "b":
		m.side = domain.SideBuy
	case "s":
		m.side = domain.SideSell
	case "i", "enter":
		m.focus = fieldAmount
	}
	return nil
}

func (m *orderFormModel) handleEditKey(msg tea.KeyMsg, submit submitFunc) tea.Cmd {
	switch msg.Type {
	case tea.KeyEsc:
		m.focus = fieldNone
		return nil
	case tea.KeyTab, tea.KeyDown:
		m.focus = (m.focus + 1) % 2
		return nil
	case tea.KeyUp, tea.KeyShiftTab:
		m.focus = (m.focus - 1 + 2) % 2
		return nil
	case tea.KeyEnter:
		if m.submitting {
			return nil
		}
		m.submitting = true
		m.errMsg = ""
		m.okMsg = ""
		return submit(m.side, string(m.amount), string(m.price))
	case tea.KeyBackspace:
		field := m.field()
		if len(*field) > 0 {
			*field = (*field)[:len(*field)-1]
		}
		return nil
	case tea.KeyRunes:
		field := m.field()
		for _, r := range msg.Runes {
			if (r >= '0' && r <= '9') || r == '.' {
				*field = append(*field, r)
			}
		}
		return nil
	}
	return nil
}

func (m *orderFormModel) field() *[]rune {
	if m.focus == fieldPrice {
		return &m.price
	}
	return &m.amount
}

func (m *orderFormModel) finishSubmit(msg createDoneMsg) {
	m.submitting = false
	if msg.err != nil {
		m.errMsg = msg.err.Error()
		return
	}
	m.amount = nil
	m.price = nil
	m.okMsg = "Order placed"
}

// total computes amount*price for display; empty until both fields
// parse.
func (m *orderFormModel) total() string {
	amt, price, err := parseOrderInput(string(m.amount), string(m.price))
	if err != nil {
		return "-"
	}
	return domain.FormatUSD(amt.Mul(price))
}

func (m *orderFormModel) view(width int) string {
	var lines []string
	lines = append(lines, titleStyle.Render("Place Order")+dimStyle.Render("  (b buy, s sell, enter edit/submit, esc done)"))
	lines = append(lines, strings.Repeat("─", min(width-4, 50)))

	sideLabel := "BUY"
	sideStyle := bidStyle
	if m.side == domain.SideSell {
		sideLabel = "SELL"
		sideStyle = askStyle
	}
	lines = append(lines, "Side:    "+sideStyle.Render(sideLabel))
	lines = append(lines, renderField("Amount", string(m.amount), "BTC", m.focus == fieldAmount))
	lines = append(lines, renderField("Price", string(m.price), "USD", m.focus == fieldPrice))
	lines = append(lines, "Total:   "+m.total())

	if m.submitting {
		lines = append(lines, dimStyle.Render("Submitting..."))
	}
	if m.okMsg != "" {
		lines = append(lines, okStyle.Render(m.okMsg))
	}
	if m.errMsg != "" {
		lines = append(lines, errStyle.Render(m.errMsg))
	}
	return strings.Join(lines, "\n")
}

func renderField(label, value, unit string, focused bool) string {
	line := padRight(label+":", 9) + value
	if focused {
		line += cursorStyle.Render("█")
	}
	return line + " " + dimStyle.Render(unit)
}

// parseOrderInput validates the two text fields. Both must be positive
// decimals.
func parseOrderInput(amount, price string) (decimal.Decimal, decimal.Decimal, error) {
	amt, err := decimal.NewFromString(strings.TrimSpace(amount))
	if err != nil || amt.Sign() <= 0 {
		return decimal.Zero, decimal.Zero, errors.New("amount must be a positive number")
	}
	p, err := decimal.NewFromString(strings.TrimSpace(price))
	if err != nil || p.Sign() <= 0 {
		return decimal.Zero, decimal.Zero, errors.New("price must be a positive number")
	}
	return amt, p, nil
}
