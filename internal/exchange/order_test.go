package exchange

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestNewLimitOrder(t *testing.T) {
	t.Parallel()

	price := decimal.RequireFromString("350.25")
	order, err := NewLimitOrder("msft", SideBuy, 100, price)
	require.NoError(t, err)

	require.Equal(t, "MSFT", order.Ticker)
	require.Equal(t, OrderTypeLimit, order.Type)
	require.Equal(t, SideBuy, order.Side)
	require.EqualValues(t, 100, order.Size)
	require.NotNil(t, order.Price)
	require.True(t, order.Price.Equal(price))
	require.Empty(t, order.ID, "id is assigned by the engine, never by the console")
}

func TestNewMarketOrderOmitsPrice(t *testing.T) {
	t.Parallel()

	order, err := NewMarketOrder("aapl", SideSell, 50)
	require.NoError(t, err)

	require.Equal(t, "AAPL", order.Ticker)
	require.Equal(t, OrderTypeMarket, order.Type)
	require.Equal(t, SideSell, order.Side)
	require.EqualValues(t, 50, order.Size)
	require.Nil(t, order.Price)
}

func TestNewOrderRejectsBadInputs(t *testing.T) {
	t.Parallel()

	_, err := NewMarketOrder("MSFT", SideBuy, 0)
	require.Error(t, err)

	_, err = NewLimitOrder("MSFT", SideBuy, 10, decimal.RequireFromString("0.001"))
	require.Error(t, err)

	_, err = NewLimitOrder("MSFT", SideBuy, -5, decimal.RequireFromString("10"))
	require.Error(t, err)
}
