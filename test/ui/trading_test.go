package ui

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NehaShanbhag53/qa-assessment-neha-shanbhag/internal/orders"
	"github.com/NehaShanbhag53/qa-assessment-neha-shanbhag/internal/pages"
)

func TestMarketOrderLifecycle(t *testing.T) {
	utc := NewUITestContext(t)
	defer utc.Cleanup()

	utc.OpenTrade()

	before, err := utc.WorkingOrders.GetOrderCount()
	require.NoError(t, err)

	err = utc.Trade.PlaceOrder(pages.TradeRequest{
		Exchange:  "Binance COIN-M",
		OrderType: pages.OrderTypeMarket,
		Symbol:    "BTC-USD_PERP",
		Quantity:  "1",
		Side:      orders.SideBuy,
	})
	require.NoError(t, err, "market order should submit")
	utc.Screenshot("market_order_placed")

	require.NoError(t, utc.WorkingOrders.Open())
	all, err := utc.WorkingOrders.GetAllOrders()
	require.NoError(t, err)
	utc.Log("Orders before: %d, after: %d", before, len(all))
	require.NotEmpty(t, all, "blotter should show the new order")

	// The newest order carries the submitted identity.
	latest := all[0]
	assert.NoError(t, latest.Validate())
	assert.Equal(t, "BTC-USD_PERP", latest.Symbol)
	assert.Equal(t, string(orders.SideBuy), latest.Side)
}

func TestLimitOrderTicket(t *testing.T) {
	utc := NewUITestContext(t)
	defer utc.Cleanup()

	utc.OpenTrade()

	err := utc.Trade.PlaceOrder(pages.TradeRequest{
		Exchange:  "OKX",
		OrderType: pages.OrderTypeLimit,
		Symbol:    "BTC-AUD",
		Quantity:  "0.01",
		Price:     "495",
		Side:      orders.SideBuy,
	})
	require.NoError(t, err, "limit order should submit")
	utc.Screenshot("limit_order_placed")
}

func TestTWAPEdgeOrderTicket(t *testing.T) {
	utc := NewUITestContext(t)
	defer utc.Cleanup()

	utc.OpenTrade()

	err := utc.Trade.PlaceOrder(pages.TradeRequest{
		OrderType: pages.OrderTypeTWAPEdge,
		Symbol:    "BTC-USD",
		Quantity:  "0.02",
		Duration:  "10",
		Interval:  "30",
		Decay:     "0.5",
		Side:      orders.SideBuy,
	})
	require.NoError(t, err, "TWAP-Edge order should submit")
	utc.Screenshot("twap_edge_placed")
}

func TestInvalidSideNeverTouchesUI(t *testing.T) {
	utc := NewUITestContext(t)
	defer utc.Cleanup()

	utc.OpenTrade()
	url, err := utc.Session.CurrentURL()
	require.NoError(t, err)

	placeErr := utc.Trade.PlaceOrder(pages.TradeRequest{
		OrderType: pages.OrderTypeMarket,
		Symbol:    "BTC-USD",
		Quantity:  "1",
		Side:      "Hold",
	})
	assert.ErrorContains(t, placeErr, "invalid order side")

	// The rejected request must not have driven the browser anywhere.
	after, err := utc.Session.CurrentURL()
	require.NoError(t, err)
	assert.Equal(t, url, after)
}

func TestNetAssetValueRenders(t *testing.T) {
	utc := NewUITestContext(t)
	defer utc.Cleanup()

	utc.OpenTrade()

	nav := utc.Trade.NetAssetValue()
	utc.Log("NAV readout: %q", nav)
	assert.NotEmpty(t, nav, "ticket header should show a NAV figure")
}
