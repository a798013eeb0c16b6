package exchange

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type OrderType string

type MarketSide string

const (
	OrderTypeLimit  OrderType = "LIMIT"
	OrderTypeMarket OrderType = "MARKET"

	SideBuy  MarketSide = "BUY"
	SideSell MarketSide = "SELL"
)

// OrderStatus is assigned and mutated by the engine; the console only reads it.
type OrderStatus string

const (
	StatusNew             OrderStatus = "NEW"
	StatusPartiallyFilled OrderStatus = "PARTIALLY_FILLED"
	StatusFilled          OrderStatus = "FILLED"
	StatusCancelled       OrderStatus = "CANCELLED"
	StatusRejected        OrderStatus = "REJECTED"
)

// MinLimitPrice is the smallest price the entry form accepts for limit orders.
var MinLimitPrice = decimal.NewFromFloat(0.01)

// Order is built by the console and owned by the engine after submission.
// Price is nil for market orders. ID, Status, ResidualSize, AvgFillPrice and
// Matches are engine-assigned and never written on this side.
type Order struct {
	ID           string           `json:"id"`
	Ticker       string           `json:"ticker"`
	Type         OrderType        `json:"type"`
	Side         MarketSide       `json:"side"`
	Size         int64            `json:"size"`
	Price        *decimal.Decimal `json:"price,omitempty"`
	Status       OrderStatus      `json:"status"`
	ResidualSize int64            `json:"residual_size"`
	AvgFillPrice decimal.Decimal  `json:"avg_fill_price"`
	Matches      []Match          `json:"matches"`
}

// Match is a single fill recorded by the engine.
type Match struct {
	Size     int64           `json:"size"`
	Price    decimal.Decimal `json:"price"`
	TradedAt time.Time       `json:"traded_at"`
}

// NewLimitOrder builds a limit order for submission. The price must be at
// least MinLimitPrice and the size at least one share.
func NewLimitOrder(ticker string, side MarketSide, size int64, price decimal.Decimal) (*Order, error) {
	if size < 1 {
		return nil, fmt.Errorf("order size must be at least 1, got %d", size)
	}
	if price.LessThan(MinLimitPrice) {
		return nil, fmt.Errorf("limit price must be at least %s, got %s", MinLimitPrice, price)
	}
	return &Order{
		Ticker: strings.ToUpper(strings.TrimSpace(ticker)),
		Type:   OrderTypeLimit,
		Side:   side,
		Size:   size,
		Price:  &price,
	}, nil
}

// NewMarketOrder builds a market order for submission. Market orders carry no
// price; the engine fills against available liquidity.
func NewMarketOrder(ticker string, side MarketSide, size int64) (*Order, error) {
	if size < 1 {
		return nil, fmt.Errorf("order size must be at least 1, got %d", size)
	}
	return &Order{
		Ticker: strings.ToUpper(strings.TrimSpace(ticker)),
		Type:   OrderTypeMarket,
		Side:   side,
		Size:   size,
	}, nil
}
