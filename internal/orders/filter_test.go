package orders

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func historyFixture() []HistoryOrder {
	return []HistoryOrder{
		{
			Order: Order{
				Venue: "Binance COIN-M", AlgorithmID: "318_001",
				Status: "In Progress", Type: "Market",
				Symbol: "BTC-USD_PERP", DateTime: "2025-11-14 09:30:12",
				Side: "Buy",
			},
			Metadata: Metadata{Quantity: "Quantity: 100 Contracts"},
		},
		{
			Order: Order{
				Venue: "OKX", AlgorithmID: "669_183",
				Status: "Error", Type: "Limit",
				Symbol: "DOT-USD", DateTime: "2025-11-13 17:02:45",
				Side: "Sell", Action: "Order Rejected",
			},
			Metadata: Metadata{Price: "Price: 3.1 USD"},
		},
		{
			Order: Order{
				Venue: "Edge", AlgorithmID: "400_188",
				Status: "Completed", Type: "TWAP",
				Symbol: "BTC-USD", DateTime: "2025-11-10 11:15:00",
				Side: "Buy",
			},
			Metadata: Metadata{Duration: "Duration: 10m", Interval: "Interval: 30s"},
		},
		{
			Order: Order{
				Venue: "Edge", AlgorithmID: "695_034",
				Status: "Cancelled", Type: "Limit",
				Symbol: "ETH-USD", DateTime: "not a date",
				Side: "Sell",
			},
		},
	}
}

func algoIDs(list []HistoryOrder) []string {
	ids := make([]string, 0, len(list))
	for _, o := range list {
		ids = append(ids, o.AlgorithmID)
	}
	return ids
}

func TestFilterByVenue(t *testing.T) {
	got := FilterByVenue(historyFixture(), "Edge")
	assert.Equal(t, []string{"400_188", "695_034"}, algoIDs(got))

	assert.Empty(t, FilterByVenue(historyFixture(), "Kraken"))
}

func TestFilterBySymbol(t *testing.T) {
	// Substring match: "BTC-USD" also covers the perp symbol.
	got := FilterBySymbol(historyFixture(), "BTC-USD")
	assert.Equal(t, []string{"318_001", "400_188"}, algoIDs(got))
}

func TestFilterBySide(t *testing.T) {
	assert.Equal(t, []string{"318_001", "400_188"},
		algoIDs(FilterBySide(historyFixture(), SideBuy)))
	assert.Equal(t, []string{"669_183", "695_034"},
		algoIDs(FilterBySide(historyFixture(), SideSell)))
}

func TestFilterByType(t *testing.T) {
	got := FilterByType(historyFixture(), "Limit")
	assert.Equal(t, []string{"669_183", "695_034"}, algoIDs(got))
}

func TestFilterByStatus(t *testing.T) {
	got := FilterByStatus(historyFixture(), "Progress")
	require.Len(t, got, 1)
	assert.Equal(t, "318_001", got[0].AlgorithmID)

	assert.Equal(t, 1, CountByStatus(historyFixture(), "Cancelled"))
	assert.Equal(t, 0, CountByStatus(historyFixture(), "Paused"))
}

func TestFilterByDateRange(t *testing.T) {
	start := time.Date(2025, 11, 12, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 11, 15, 0, 0, 0, 0, time.UTC)

	got := FilterByDateRange(historyFixture(), start, end)
	// The unparseable row is excluded, not guessed into the range.
	assert.Equal(t, []string{"318_001", "669_183"}, algoIDs(got))
}

func TestFilterWithMetadata(t *testing.T) {
	got := FilterWithMetadata(historyFixture(), LabelDuration)
	require.Len(t, got, 1)
	assert.Equal(t, "400_188", got[0].AlgorithmID)

	assert.Empty(t, FilterWithMetadata(historyFixture(), LabelThreshold))
}

func TestTypes(t *testing.T) {
	assert.Equal(t, []string{"Market", "Limit", "TWAP"}, Types(historyFixture()))
}
