package tui

import (
	"context"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/shopspring/decimal"

	"github.com/jask/orderdesk/internal/config"
	"github.com/jask/orderdesk/internal/exchange"
	"github.com/jask/orderdesk/internal/session"
)

type fakeClient struct {
	submitted []*exchange.Order
	orders    map[string]*exchange.Order
	submitErr error
}

func (f *fakeClient) SubmitOrder(ctx context.Context, order *exchange.Order) (*exchange.SubmitResponse, error) {
	if f.submitErr != nil {
		return nil, f.submitErr
	}
	f.submitted = append(f.submitted, order)
	return &exchange.SubmitResponse{OrderID: "ord-1", Status: exchange.StatusNew}, nil
}

func (f *fakeClient) GetOrder(ctx context.Context, id string) (*exchange.Order, error) {
	return f.orders[id], nil
}

func newTestApp(t *testing.T, fake *fakeClient) *App {
	t.Helper()
	sess := session.New()
	// seed the session so New picks up the fake instead of an HTTP client
	sess.Exchange(func() exchange.Client { return fake })
	cfg := config.Config{}
	cfg.UI.LogPaneHeight = 12
	return New(context.Background(), cfg, sess)
}

// drive feeds messages through Update, executing any returned command
// synchronously and feeding its result back, the way the runtime would.
func drive(t *testing.T, a *App, msgs ...tea.Msg) {
	t.Helper()
	for _, msg := range msgs {
		_, cmd := a.Update(msg)
		if cmd == nil {
			continue
		}
		if result := cmd(); result != nil {
			_, _ = a.Update(result)
		}
	}
}

func keyEnter() tea.Msg { return tea.KeyMsg{Type: tea.KeyEnter} }
func keyTab() tea.Msg   { return tea.KeyMsg{Type: tea.KeyTab} }

func TestLimitSubmitCarriesEnteredPrice(t *testing.T) {
	fake := &fakeClient{}
	app := newTestApp(t, fake)

	app.ticker.SetValue("msft")
	app.size.SetValue("100")
	app.price.SetValue("350.25")

	drive(t, app, keyEnter())

	if len(fake.submitted) != 1 {
		t.Fatalf("submitted %d orders, want 1", len(fake.submitted))
	}
	order := fake.submitted[0]
	if order.Ticker != "MSFT" {
		t.Fatalf("ticker = %q, want uppercased MSFT", order.Ticker)
	}
	if order.Type != exchange.OrderTypeLimit || order.Side != exchange.SideBuy {
		t.Fatalf("type/side = %s/%s", order.Type, order.Side)
	}
	if order.Size != 100 {
		t.Fatalf("size = %d", order.Size)
	}
	if order.Price == nil || !order.Price.Equal(decimal.RequireFromString("350.25")) {
		t.Fatalf("price = %v, want 350.25", order.Price)
	}
}

func TestMarketSubmitOmitsPrice(t *testing.T) {
	fake := &fakeClient{}
	app := newTestApp(t, fake)

	app.orderType = exchange.OrderTypeMarket
	app.side = exchange.SideSell
	app.ticker.SetValue("MSFT")
	app.size.SetValue("50")

	drive(t, app, keyEnter())

	if len(fake.submitted) != 1 {
		t.Fatalf("submitted %d orders, want 1", len(fake.submitted))
	}
	order := fake.submitted[0]
	if order.Type != exchange.OrderTypeMarket || order.Side != exchange.SideSell || order.Size != 50 {
		t.Fatalf("order = %+v", order)
	}
	if order.Price != nil {
		t.Fatalf("market order carries price %v", order.Price)
	}
}

func TestDoubleSubmitSendsTwoOrders(t *testing.T) {
	fake := &fakeClient{}
	app := newTestApp(t, fake)

	app.ticker.SetValue("MSFT")
	app.size.SetValue("10")
	app.price.SetValue("99.50")

	drive(t, app, keyEnter(), keyEnter())

	if len(fake.submitted) != 2 {
		t.Fatalf("submitted %d orders, want 2 (no dedup)", len(fake.submitted))
	}
}

func TestInvalidSizeBlocksSubmission(t *testing.T) {
	fake := &fakeClient{}
	app := newTestApp(t, fake)

	app.ticker.SetValue("MSFT")
	app.size.SetValue("zero")
	app.price.SetValue("10")

	drive(t, app, keyEnter())

	if len(fake.submitted) != 0 {
		t.Fatalf("invalid size still submitted %d orders", len(fake.submitted))
	}
	if app.status == "" {
		t.Fatal("expected a status message for invalid size")
	}
}

func TestSubmitErrorSurfacesInStatus(t *testing.T) {
	fake := &fakeClient{submitErr: context.DeadlineExceeded}
	app := newTestApp(t, fake)

	app.ticker.SetValue("MSFT")
	app.size.SetValue("1")
	app.price.SetValue("10")

	drive(t, app, keyEnter())

	if !strings.HasPrefix(app.status, "error:") {
		t.Fatalf("status = %q, want engine failure surfaced", app.status)
	}
}

func TestTabSwitchShowsLookupOnNextRender(t *testing.T) {
	app := newTestApp(t, &fakeClient{})

	drive(t, app, keyTab())

	if got := app.session.SelectedTab(); got != TabLookup {
		t.Fatalf("selected tab = %q", got)
	}
	view := app.View()
	if !strings.Contains(view, "Enter Order ID") {
		t.Fatal("lookup panel not visible immediately after switching")
	}
	if strings.Contains(view, "Order Form") {
		t.Fatal("order form still rendered after switching tabs")
	}
}

func TestTabSwitchDiscardsLookupState(t *testing.T) {
	fake := &fakeClient{orders: map[string]*exchange.Order{
		"ord-9": {ID: "ord-9", Ticker: "MSFT", Type: exchange.OrderTypeMarket, Side: exchange.SideBuy, Size: 5, Status: exchange.StatusFilled},
	}}
	app := newTestApp(t, fake)

	drive(t, app, keyTab())
	app.orderID.SetValue("ord-9")
	drive(t, app, keyEnter())
	if app.result == nil {
		t.Fatal("lookup result missing")
	}

	// away and back again
	drive(t, app, keyTab(), keyTab())

	if app.orderID.Value() != "" {
		t.Fatalf("lookup id survived tab switch: %q", app.orderID.Value())
	}
	if app.result != nil || app.notFound {
		t.Fatal("lookup result survived tab switch")
	}
}

func TestLookupNotFoundRendersLiteralMessage(t *testing.T) {
	app := newTestApp(t, &fakeClient{orders: map[string]*exchange.Order{}})

	drive(t, app, keyTab())
	app.orderID.SetValue("missing-id")
	drive(t, app, keyEnter())

	view := app.View()
	if !strings.Contains(view, "Order not found.") {
		t.Fatal("negative lookup must render literal message")
	}
	if strings.Contains(view, "Order Details:") {
		t.Fatal("no field summary expected for a negative lookup")
	}
}

func TestLookupFoundRendersAllFields(t *testing.T) {
	price := decimal.RequireFromString("350.25")
	fake := &fakeClient{orders: map[string]*exchange.Order{
		"ord-7": {
			ID:           "ord-7",
			Ticker:       "MSFT",
			Type:         exchange.OrderTypeLimit,
			Side:         exchange.SideBuy,
			Size:         100,
			Price:        &price,
			Status:       exchange.StatusPartiallyFilled,
			ResidualSize: 40,
			AvgFillPrice: decimal.NewFromInt(10),
			Matches:      []exchange.Match{{Size: 60, Price: decimal.RequireFromString("350.1")}},
		},
	}}
	app := newTestApp(t, fake)

	drive(t, app, keyTab())
	app.orderID.SetValue("ord-7")
	drive(t, app, keyEnter())

	view := app.View()
	for _, want := range []string{
		"Order Status:", "PARTIALLY_FILLED",
		"Order ID:", "ord-7",
		"Ticker:", "MSFT",
		"Order Type:", "LIMIT",
		"Side:", "BUY",
		"Size:", "100",
		"Price:", "350.25",
		"Residual size:", "40",
		"Avg. Fill Price:", "10.00",
		"Matches:", "60@350.1",
	} {
		if !strings.Contains(view, want) {
			t.Fatalf("lookup view missing %q:\n%s", want, view)
		}
	}
}

func TestLogPaneAccumulatesAcrossActions(t *testing.T) {
	app := newTestApp(t, &fakeClient{})

	_, _ = app.sink.Write([]byte("action one\n"))
	first := app.View()
	if !strings.Contains(first, "action one") {
		t.Fatal("first log line not displayed")
	}

	_, _ = app.sink.Write([]byte("action two\n"))
	second := app.View()
	oneIdx := strings.Index(second, "action one")
	twoIdx := strings.Index(second, "action two")
	if oneIdx < 0 || twoIdx < 0 {
		t.Fatalf("log pane lost lines:\n%s", second)
	}
	if oneIdx > twoIdx {
		t.Fatal("log lines out of emission order")
	}
}
