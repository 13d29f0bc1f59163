package views

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/bitdesk/bitdesk/internal/session"
)

// loginModel is a single-field username prompt. The backend issues a
// token for any known username; there is no password.
type loginModel struct {
	input   []rune
	loading bool
	errMsg  string
}

func newLoginModel() loginModel {
	return loginModel{}
}

func (m *loginModel) value() string {
	return strings.TrimSpace(string(m.input))
}

func (m *loginModel) applySession(s session.State) {
	m.loading = s.Loading
	m.errMsg = s.Err
}

func (m *loginModel) handleKey(msg tea.KeyMsg) {
	if m.loading {
		return
	}
	switch msg.Type {
	case tea.KeyBackspace:
		if len(m.input) > 0 {
			m.input = m.input[:len(m.input)-1]
		}
	case tea.KeyRunes:
		m.input = append(m.input, msg.Runes...)
	case tea.KeySpace:
		m.input = append(m.input, ' ')
	}
}

func (m *loginModel) view(width int) string {
	if width < 40 {
		width = 40
	}

	var lines []string
	lines = append(lines, titleStyle.Render("bitdesk login"))
	lines = append(lines, strings.Repeat("─", 30))
	lines = append(lines, "Username: "+string(m.input)+cursorStyle.Render("█"))
	if m.loading {
		lines = append(lines, dimStyle.Render("Signing in..."))
	} else {
		lines = append(lines, dimStyle.Render("Press enter to sign in"))
	}
	if m.errMsg != "" {
		lines = append(lines, errStyle.Render(m.errMsg))
	}

	box := paneStyle.Width(40).Render(strings.Join(lines, "\n"))
	return lipgloss.Place(width, 12, lipgloss.Center, lipgloss.Center, box)
}
