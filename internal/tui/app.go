package tui

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/jask/orderdesk/internal/config"
	"github.com/jask/orderdesk/internal/exchange"
	"github.com/jask/orderdesk/internal/logging"
	"github.com/jask/orderdesk/internal/session"
)

// Tab labels. The selected tab lives in the session store so it survives
// every re-render of the page.
const (
	TabSubmit = session.DefaultTab
	TabLookup = "Order Lookup"
)

var tabOrder = []string{TabSubmit, TabLookup}

// Order entry form rows, top to bottom. The price row only exists while the
// order type is LIMIT.
const (
	rowTicker = iota
	rowType
	rowSide
	rowSize
	rowPrice
)

// App is the whole page: the order entry form, the lookup panel and the log
// pane underneath both. View is a pure projection of this state; every user
// action arrives as a message and is applied in Update.
type App struct {
	ctx     context.Context
	cfg     config.Config
	session *session.Session
	client  exchange.Client
	sink    *logging.CaptureSink
	logger  *logrus.Entry

	// order entry form
	ticker    textinput.Model
	size      textinput.Model
	price     textinput.Model
	orderType exchange.OrderType
	side      exchange.MarketSide
	focus     int

	// order lookup
	orderID  textinput.Model
	result   *exchange.Order
	notFound bool

	status string
	width  int
	height int
}

func New(ctx context.Context, cfg config.Config, sess *session.Session) *App {
	logger := logrus.WithField("session_id", sess.ID)

	client := sess.Exchange(func() exchange.Client {
		return exchange.NewHTTPClient(cfg.Exchange.BaseURL, cfg.Exchange.Timeout, logger)
	})
	sink := sess.LogSink(func() *logging.CaptureSink {
		return logging.NewCaptureSink(cfg.Logging.MaxLines)
	})

	ticker := textinput.New()
	ticker.Placeholder = "MSFT"
	ticker.CharLimit = 12
	ticker.Width = 16
	ticker.Focus()

	size := textinput.New()
	size.Placeholder = "1"
	size.SetValue("1")
	size.CharLimit = 9
	size.Width = 16

	price := textinput.New()
	price.Placeholder = "0.01"
	price.CharLimit = 12
	price.Width = 16

	orderID := textinput.New()
	orderID.Placeholder = "order id"
	orderID.CharLimit = 48
	orderID.Width = 40

	return &App{
		ctx:       ctx,
		cfg:       cfg,
		session:   sess,
		client:    client,
		sink:      sink,
		logger:    logger,
		ticker:    ticker,
		size:      size,
		price:     price,
		orderType: exchange.OrderTypeLimit,
		side:      exchange.SideBuy,
		orderID:   orderID,
		width:     100,
		height:    32,
	}
}

func (a *App) Init() tea.Cmd {
	return textinput.Blink
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch m := msg.(type) {
	case tea.WindowSizeMsg:
		a.width, a.height = m.Width, m.Height
		return a, nil
	case submitDoneMsg:
		a.status = fmt.Sprintf("order %s accepted (%s)", m.resp.OrderID, m.resp.Status)
		return a, nil
	case lookupDoneMsg:
		a.result = m.order
		a.notFound = m.order == nil
		a.status = ""
		return a, nil
	case errMsg:
		a.status = "error: " + m.Error()
		return a, nil
	case statusMsg:
		a.status = string(m)
		return a, nil
	case tea.KeyMsg:
		switch m.String() {
		case "ctrl+c":
			return a, tea.Quit
		case "tab":
			a.switchTab(a.neighborTab(1))
			return a, nil
		case "shift+tab":
			a.switchTab(a.neighborTab(-1))
			return a, nil
		}
		if a.session.SelectedTab() == TabLookup {
			return a.handleLookupKey(m)
		}
		return a.handleSubmitKey(m)
	}
	return a, nil
}

func (a *App) neighborTab(delta int) string {
	current := a.session.SelectedTab()
	for i, tab := range tabOrder {
		if tab == current {
			return tabOrder[(i+delta+len(tabOrder))%len(tabOrder)]
		}
	}
	return tabOrder[0]
}

// switchTab is the navigation transition: store the new tab and discard the
// in-flight, unsubmitted state of the tab being left. Bubble Tea renders the
// view right after this Update returns, so the switch is visible on the very
// next frame.
func (a *App) switchTab(tab string) {
	current := a.session.SelectedTab()
	if tab == current {
		return
	}
	switch current {
	case TabSubmit:
		a.resetOrderForm()
	case TabLookup:
		a.resetLookup()
	}
	a.session.SetSelectedTab(tab)
	a.status = ""
}

func (a *App) resetOrderForm() {
	a.ticker.SetValue("")
	a.size.SetValue("1")
	a.price.SetValue("")
	a.orderType = exchange.OrderTypeLimit
	a.side = exchange.SideBuy
	a.setFocus(rowTicker)
}

func (a *App) resetLookup() {
	a.orderID.SetValue("")
	a.result = nil
	a.notFound = false
}

func (a *App) lastRow() int {
	if a.orderType == exchange.OrderTypeLimit {
		return rowPrice
	}
	return rowSize
}

func (a *App) setFocus(row int) {
	last := a.lastRow()
	if row < rowTicker {
		row = last
	}
	if row > last {
		row = rowTicker
	}
	a.focus = row
	a.ticker.Blur()
	a.size.Blur()
	a.price.Blur()
	switch row {
	case rowTicker:
		a.ticker.Focus()
	case rowSize:
		a.size.Focus()
	case rowPrice:
		a.price.Focus()
	}
}

func (a *App) handleSubmitKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.String() {
	case "up":
		a.setFocus(a.focus - 1)
		return a, nil
	case "down":
		a.setFocus(a.focus + 1)
		return a, nil
	case "enter":
		return a.submitOrder()
	case "left", "right":
		switch a.focus {
		case rowType:
			if a.orderType == exchange.OrderTypeLimit {
				a.orderType = exchange.OrderTypeMarket
				a.price.SetValue("")
			} else {
				a.orderType = exchange.OrderTypeLimit
			}
			return a, nil
		case rowSide:
			if a.side == exchange.SideBuy {
				a.side = exchange.SideSell
			} else {
				a.side = exchange.SideBuy
			}
			return a, nil
		}
	}

	var cmd tea.Cmd
	switch a.focus {
	case rowTicker:
		a.ticker, cmd = a.ticker.Update(m)
	case rowSize:
		a.size, cmd = a.size.Update(m)
	case rowPrice:
		a.price, cmd = a.price.Update(m)
	}
	return a, cmd
}

// submitOrder translates the form into an Order value and fires one engine
// call. Every press submits again; there is no idempotency key and no retry.
func (a *App) submitOrder() (tea.Model, tea.Cmd) {
	ticker := strings.ToUpper(strings.TrimSpace(a.ticker.Value()))

	size, err := strconv.ParseInt(strings.TrimSpace(a.size.Value()), 10, 64)
	if err != nil || size < 1 {
		a.status = "size must be a whole number of at least 1"
		return a, nil
	}

	var order *exchange.Order
	if a.orderType == exchange.OrderTypeLimit {
		price, perr := decimal.NewFromString(strings.TrimSpace(a.price.Value()))
		if perr != nil {
			a.status = "enter a limit price of at least 0.01"
			return a, nil
		}
		order, err = exchange.NewLimitOrder(ticker, a.side, size, price)
	} else {
		order, err = exchange.NewMarketOrder(ticker, a.side, size)
	}
	if err != nil {
		a.status = err.Error()
		return a, nil
	}

	a.logger.WithFields(logrus.Fields{
		"ticker": order.Ticker,
		"type":   order.Type,
		"side":   order.Side,
		"size":   order.Size,
	}).Info("submitting order")
	a.status = "submitting..."
	return a, a.submitCmd(order)
}

func (a *App) submitCmd(order *exchange.Order) tea.Cmd {
	return func() tea.Msg {
		resp, err := a.client.SubmitOrder(a.ctx, order)
		if err != nil {
			return errMsg{err}
		}
		return submitDoneMsg{resp: resp}
	}
}

func (a *App) handleLookupKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.String() == "enter" {
		id := strings.TrimSpace(a.orderID.Value())
		a.logger.WithField("order_id", id).Info("looking up order")
		a.status = "looking up..."
		return a, a.lookupCmd(id)
	}
	var cmd tea.Cmd
	a.orderID, cmd = a.orderID.Update(m)
	return a, cmd
}

// lookupCmd queries the engine fresh on every trigger; results are never
// cached between presses.
func (a *App) lookupCmd(id string) tea.Cmd {
	return func() tea.Msg {
		order, err := a.client.GetOrder(a.ctx, id)
		if err != nil {
			return errMsg{err}
		}
		return lookupDoneMsg{order: order}
	}
}

// messages
type submitDoneMsg struct {
	resp *exchange.SubmitResponse
}

type lookupDoneMsg struct {
	order *exchange.Order
}

type statusMsg string

type errMsg struct{ error }
