package views

import (
	"github.com/bitdesk/bitdesk/internal/domain"
	"github.com/bitdesk/bitdesk/internal/poll"
	"github.com/bitdesk/bitdesk/internal/session"
)

type sessionMsg session.State

type navigateMsg session.Route

type bookMsg poll.Snapshot[domain.OrderBook]

type ordersMsg poll.Snapshot[[]domain.Order]

type historyMsg poll.Snapshot[[]domain.Match]

type globalMsg poll.Snapshot[[]domain.GlobalMatch]

type statsMsg poll.Snapshot[domain.Statistics]

type loginDoneMsg struct {
	err error
}

type cancelDoneMsg struct {
	id  string
	err error
}

type createDoneMsg struct {
	order domain.Order
	err   error
}
