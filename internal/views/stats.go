package views

import (
	"strings"

	"github.com/bitdesk/bitdesk/internal/domain"
	"github.com/bitdesk/bitdesk/internal/poll"
)

// statsModel shows the 24h market snapshot next to the user's balances.
type statsModel struct {
	stats  domain.Statistics
	user   *domain.User
	errMsg string
	seen   bool
}

func newStatsModel() statsModel {
	return statsModel{}
}

func (m *statsModel) apply(snap poll.Snapshot[domain.Statistics]) {
	m.stats = snap.Value
	m.seen = true
	if snap.Err != nil {
		m.errMsg = snap.Err.Error()
	} else {
		m.errMsg = ""
	}
}

func (m *statsModel) reset() {
	*m = statsModel{user: m.user}
}

func (m *statsModel) view(width int) string {
	var lines []string
	lines = append(lines, titleStyle.Render("Market Statistics (24h)"))
	lines = append(lines, strings.Repeat("─", min(width-4, 50)))

	if !m.seen {
		lines = append(lines, dimStyle.Render("Loading statistics..."))
	} else {
		s := m.stats
		lines = append(lines, "Last Price:  "+domain.FormatUSDFixed(s.LastPrice))
		lines = append(lines, "High:        "+domain.FormatUSDFixed(s.High))
		lines = append(lines, "Low:         "+domain.FormatUSDFixed(s.Low))
		lines = append(lines, "BTC Volume:  "+domain.FormatBTCSuffix(s.BTCVolume))
		lines = append(lines, "USD Volume:  "+domain.FormatUSDFixed(s.USDVolume))
		if !s.Timestamp.IsZero() {
			lines = append(lines, dimStyle.Render("As of "+s.Timestamp.Format("15:04:05")))
		}
	}

	lines = append(lines, "")
	lines = append(lines, titleStyle.Render("Balances"))
	lines = append(lines, strings.Repeat("─", min(width-4, 50)))
	if m.user != nil {
		lines = append(lines, "USD:  "+domain.FormatUSD(m.user.USDBalance))
		lines = append(lines, "BTC:  "+domain.FormatBTC(m.user.BTCBalance))
	} else {
		lines = append(lines, dimStyle.Render("No profile loaded"))
	}

	if m.errMsg != "" {
		lines = append(lines, "")
		lines = append(lines, errStyle.Render(m.errMsg))
	}
	return strings.Join(lines, "\n")
}
