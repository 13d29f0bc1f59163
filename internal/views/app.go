// Package views holds the terminal UI. The root App model routes
// between the login screen and the trading desk; the desk is split into
// one sub-model per panel, each fed by its own poller.
package views

import (
	"context"
	"fmt"
	"os"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/bitdesk/bitdesk/internal/domain"
	"github.com/bitdesk/bitdesk/internal/poll"
	"github.com/bitdesk/bitdesk/internal/services"
	"github.com/bitdesk/bitdesk/internal/session"
	"github.com/bitdesk/bitdesk/pkg/config"
)

// Deps wires the UI to the rest of the client.
type Deps struct {
	Session *session.Manager
	Orders  *services.OrderService
	Trades  *services.TradeService
	Matches *services.MatchService
	Cfg     *config.Config

	// Nav receives forced navigation from the session manager (login
	// redirect on 401, desk redirect after login).
	Nav <-chan session.Route
}

type tab int

const (
	tabBook tab = iota
	tabOrders
	tabTrade
	tabHistory
	tabGlobal
	tabStats
	tabCount
)

var tabNames = [tabCount]string{"Book", "Orders", "Trade", "History", "Global", "Stats"}

type pollers struct {
	book    *poll.Poller[domain.OrderBook]
	orders  *poll.Poller[[]domain.Order]
	history *poll.Poller[[]domain.Match]
	global  *poll.Poller[[]domain.GlobalMatch]
	stats   *poll.Poller[domain.Statistics]
}

// App is the root model.
type App struct {
	ctx  context.Context
	deps Deps

	route  session.Route
	active tab
	sess   session.State

	login   loginModel
	book    bookModel
	orders  ordersModel
	history historyModel
	global  globalModel
	stats   statsModel
	form    orderFormModel

	polls *pollers

	width  int
	height int
}

func NewApp(ctx context.Context, deps Deps) *App {
	perPage := deps.Cfg.ItemsPerPage
	window := deps.Cfg.PageWindow
	return &App{
		ctx:     ctx,
		deps:    deps,
		route:   session.RouteLogin,
		login:   newLoginModel(),
		book:    newBookModel(perPage, window),
		orders:  newOrdersModel(perPage, window),
		history: newHistoryModel(perPage, window),
		global:  newGlobalModel(perPage, window),
		stats:   newStatsModel(),
		form:    newOrderFormModel(),
	}
}

func (a *App) Init() tea.Cmd {
	return tea.Batch(a.waitForNavigate(), a.waitForSession())
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		return a, nil

	case tea.KeyMsg:
		return a.handleKey(msg)

	case navigateMsg:
		cmds := []tea.Cmd{a.waitForNavigate()}
		a.route = session.Route(msg)
		if a.route == session.RouteDesk {
			// Post-login landing view is the user's open orders.
			a.active = tabOrders
			cmds = append(cmds, a.enterDesk()...)
		} else {
			a.leaveDesk()
		}
		return a, tea.Batch(cmds...)

	case sessionMsg:
		a.sess = session.State(msg)
		a.login.applySession(a.sess)
		a.stats.user = a.sess.User
		return a, a.waitForSession()

	case loginDoneMsg:
		// Session state updates carry the outcome; nothing extra here.
		return a, nil

	case bookMsg:
		a.book.apply(poll.Snapshot[domain.OrderBook](msg))
		return a, a.waitForBook()
	case ordersMsg:
		a.orders.apply(poll.Snapshot[[]domain.Order](msg))
		return a, a.waitForOrders()
	case historyMsg:
		a.history.apply(poll.Snapshot[[]domain.Match](msg))
		return a, a.waitForHistory()
	case globalMsg:
		a.global.apply(poll.Snapshot[[]domain.GlobalMatch](msg))
		return a, a.waitForGlobal()
	case statsMsg:
		a.stats.apply(poll.Snapshot[domain.Statistics](msg))
		return a, a.waitForStats()

	case cancelDoneMsg:
		a.orders.finishCancel(msg)
		if msg.err == nil && a.polls != nil {
			a.polls.orders.Refresh()
		}
		return a, nil

	case createDoneMsg:
		a.form.finishSubmit(msg)
		if msg.err == nil {
			if a.polls != nil {
				a.polls.orders.Refresh()
				a.polls.book.Refresh()
			}
			return a, a.refreshProfile()
		}
		return a, nil
	}
	return a, nil
}

func (a *App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		// Route the exit through the process signal handler so shutdown
		// hooks run once, in order.
		_ = syscall.Kill(os.Getpid(), syscall.SIGINT)
		return a, tea.Quit
	}

	if a.route == session.RouteLogin {
		return a.handleLoginKey(msg)
	}

	// Text entry on the trade tab swallows most keys.
	if a.active == tabTrade && a.form.editing() {
		cmd := a.form.handleKey(msg, a.submitOrder)
		return a, cmd
	}

	switch msg.String() {
	case "q":
		_ = syscall.Kill(os.Getpid(), syscall.SIGINT)
		return a, tea.Quit
	case "ctrl+l":
		a.deps.Session.Logout()
		return a, nil
	case "tab":
		a.active = (a.active + 1) % tabCount
		return a, nil
	case "shift+tab":
		a.active = (a.active + tabCount - 1) % tabCount
		return a, nil
	case "1", "2", "3", "4", "5", "6":
		a.active = tab(msg.String()[0] - '1')
		return a, nil
	}

	switch a.active {
	case tabBook:
		a.book.handleKey(msg)
	case tabOrders:
		cmd := a.orders.handleKey(msg, a.cancelOrder)
		return a, cmd
	case tabTrade:
		cmd := a.form.handleKey(msg, a.submitOrder)
		return a, cmd
	case tabHistory:
		a.history.handleKey(msg)
	case tabGlobal:
		a.global.handleKey(msg)
	}
	return a, nil
}

func (a *App) handleLoginKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		username := a.login.value()
		if username == "" || a.sess.Loading {
			return a, nil
		}
		return a, a.doLogin(username)
	default:
		a.login.handleKey(msg)
	}
	return a, nil
}

func (a *App) View() string {
	if a.route == session.RouteLogin {
		return a.login.view(a.width)
	}

	var body string
	switch a.active {
	case tabBook:
		body = a.book.view(a.contentWidth())
	case tabOrders:
		body = a.orders.view(a.contentWidth())
	case tabTrade:
		body = a.form.view(a.contentWidth())
	case tabHistory:
		body = a.history.view(a.contentWidth())
	case tabGlobal:
		body = a.global.view(a.contentWidth())
	case tabStats:
		body = a.stats.view(a.contentWidth())
	}

	header := a.renderHeader()
	pane := paneStyle.Width(a.contentWidth()).Render(body)
	help := dimStyle.Render("tab/1-6 switch · ←/→ page · ctrl+l logout · q quit")
	return lipgloss.JoinVertical(lipgloss.Left, header, pane, help)
}

func (a *App) contentWidth() int {
	w := a.width - 4
	if w < 60 {
		w = 60
	}
	return w
}

func (a *App) renderHeader() string {
	user := ""
	if a.sess.User != nil {
		user = " | " + a.sess.User.Username
	}
	tabs := ""
	for i := tab(0); i < tabCount; i++ {
		label := fmt.Sprintf(" %d:%s ", i+1, tabNames[i])
		if i == a.active {
			tabs += tabActiveStyle.Render(label)
		} else {
			tabs += tabInactiveStyle.Render(label)
		}
	}
	return headerStyle.Render("bitdesk"+user) + " " + tabs
}

// enterDesk builds fresh pollers and starts them. A new set per login
// keeps the loop lifecycle simple: pollers never restart.
func (a *App) enterDesk() []tea.Cmd {
	if a.polls != nil {
		return nil
	}
	cfg := a.deps.Cfg
	p := &pollers{
		book:    poll.New("book", cfg.BookInterval, a.deps.Orders.Book),
		orders:  poll.New("orders", cfg.OrdersInterval, a.deps.Orders.ActiveOrders),
		history: poll.New("history", cfg.HistoryInterval, a.deps.Matches.History),
		global:  poll.New("global-matches", cfg.MatchesInterval, a.deps.Matches.GlobalMatches),
		stats:   poll.New("statistics", cfg.StatsInterval, a.deps.Trades.Statistics),
	}
	p.book.Start(a.ctx)
	p.orders.Start(a.ctx)
	p.history.Start(a.ctx)
	p.global.Start(a.ctx)
	p.stats.Start(a.ctx)
	a.polls = p
	return []tea.Cmd{
		a.waitForBook(), a.waitForOrders(), a.waitForHistory(),
		a.waitForGlobal(), a.waitForStats(),
	}
}

func (a *App) leaveDesk() {
	if a.polls == nil {
		return
	}
	a.polls.book.Stop()
	a.polls.orders.Stop()
	a.polls.history.Stop()
	a.polls.global.Stop()
	a.polls.stats.Stop()
	a.polls = nil
	a.book.reset()
	a.orders.reset()
	a.history.reset()
	a.global.reset()
	a.stats.reset()
	a.form.reset()
}

func (a *App) waitForNavigate() tea.Cmd {
	return func() tea.Msg {
		route, ok := <-a.deps.Nav
		if !ok {
			return nil
		}
		return navigateMsg(route)
	}
}

func (a *App) waitForSession() tea.Cmd {
	updates := a.deps.Session.Updates()
	return func() tea.Msg {
		state := <-updates
		for {
			select {
			case latest := <-updates:
				state = latest
			default:
				return sessionMsg(state)
			}
		}
	}
}

func (a *App) waitForBook() tea.Cmd {
	p := a.polls
	if p == nil {
		return nil
	}
	return func() tea.Msg {
		snap, ok := <-p.book.Updates()
		if !ok {
			return nil
		}
		return bookMsg(snap)
	}
}

func (a *App) waitForOrders() tea.Cmd {
	p := a.polls
	if p == nil {
		return nil
	}
	return func() tea.Msg {
		snap, ok := <-p.orders.Updates()
		if !ok {
			return nil
		}
		return ordersMsg(snap)
	}
}

func (a *App) waitForHistory() tea.Cmd {
	p := a.polls
	if p == nil {
		return nil
	}
	return func() tea.Msg {
		snap, ok := <-p.history.Updates()
		if !ok {
			return nil
		}
		return historyMsg(snap)
	}
}

func (a *App) waitForGlobal() tea.Cmd {
	p := a.polls
	if p == nil {
		return nil
	}
	return func() tea.Msg {
		snap, ok := <-p.global.Updates()
		if !ok {
			return nil
		}
		return globalMsg(snap)
	}
}

func (a *App) waitForStats() tea.Cmd {
	p := a.polls
	if p == nil {
		return nil
	}
	return func() tea.Msg {
		snap, ok := <-p.stats.Updates()
		if !ok {
			return nil
		}
		return statsMsg(snap)
	}
}

func (a *App) doLogin(username string) tea.Cmd {
	return func() tea.Msg {
		err := a.deps.Session.Login(a.ctx, username)
		return loginDoneMsg{err: err}
	}
}

func (a *App) cancelOrder(id string) tea.Cmd {
	return func() tea.Msg {
		err := a.deps.Orders.CancelOrder(a.ctx, id)
		return cancelDoneMsg{id: id, err: err}
	}
}

func (a *App) submitOrder(side domain.Side, amount, price string) tea.Cmd {
	return func() tea.Msg {
		amt, price, err := parseOrderInput(amount, price)
		if err != nil {
			return createDoneMsg{err: err}
		}
		order, err := a.deps.Orders.CreateOrder(a.ctx, side, amt, price)
		return createDoneMsg{order: order, err: err}
	}
}

func (a *App) refreshProfile() tea.Cmd {
	return func() tea.Msg {
		a.deps.Session.RefreshUserProfile(a.ctx)
		return nil
	}
}
