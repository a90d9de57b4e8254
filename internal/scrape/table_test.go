package scrape

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NehaShanbhag53/qa-assessment-neha-shanbhag/internal/orders"
)

const historyHead = `<thead><tr>
	<th><button>Venue</button></th>
	<th>Account</th>
	<th>Algorithm ID</th>
	<th>Status</th>
	<th>Type</th>
	<th>Symbol</th>
	<th>Date Time (UTC)</th>
	<th>Side</th>
	<th>Avg Fill Price</th>
	<th>Fill Quantity</th>
	<th>Fill Value</th>
	<th>Fill Progress</th>
	<th>Actions</th>
</tr></thead>`

const historyRow = `<tr>
	<td><img src="/icons/binance-coinm.svg" alt="Binance COIN-M"></td>
	<td>Binance COINM Account</td>
	<td> 318_001 </td>
	<td><span>In Progress</span></td>
	<td>Market
		<div><span>Quantity: 100 Contracts</span><span>Instrument Type: PERP</span></div>
	</td>
	<td>BTC-USD_PERP</td>
	<td>2025-11-14 09:30:12</td>
	<td>Buy</td>
	<td>-</td>
	<td>-</td>
	<td>-</td>
	<td>0%</td>
	<td><button>Cancel</button></td>
</tr>`

func TestHeaderIndex(t *testing.T) {
	cols, err := HeaderIndex(historyHead)
	require.NoError(t, err)

	assert.NotContains(t, cols, "")
	assert.Equal(t, 0, cols[HeaderVenue])
	assert.Equal(t, 1, cols[HeaderAccount])
	assert.Equal(t, 2, cols[HeaderAlgorithmID])
	assert.Equal(t, 6, cols[HeaderDateTime])
	assert.Equal(t, 11, cols[HeaderFillProgress])
	assert.Equal(t, 12, cols[HeaderActions])
}

func TestHeaderIndexReordered(t *testing.T) {
	cols, err := HeaderIndex(`<tr><th>Status</th><th><button>Venue</button></th>
	<th>Algorithm ID</th></tr>`)
	require.NoError(t, err)
	assert.Equal(t, 0, cols[HeaderStatus])
	assert.Equal(t, 1, cols[HeaderAlgorithmID])
}

func TestHeaderIndexEmpty(t *testing.T) {
	_, err := HeaderIndex(`<thead><tr></tr></thead>`)
	assert.Error(t, err)
}

func TestCells(t *testing.T) {
	cells, err := Cells(historyRow)
	require.NoError(t, err)
	require.Len(t, cells, 13)

	// Icon-only venue cell reads as the image alt text.
	assert.Equal(t, "Binance COIN-M", cells[0])
	assert.Equal(t, "Binance COINM Account", cells[1])
	// Cell text is trimmed.
	assert.Equal(t, "318_001", cells[2])
	assert.Equal(t, "In Progress", cells[3])
	assert.Equal(t, "2025-11-14 09:30:12", cells[6])
}

func TestCellsNoRow(t *testing.T) {
	_, err := Cells(`<div>not a table row</div>`)
	assert.Error(t, err)
}

// The browser layer hands over bare <thead>/<tr> fragments with no enclosing
// <table>; the HTML5 parser would otherwise discard their tags wholesale.
func TestBareFragmentsParse(t *testing.T) {
	cells, err := Cells(`<tr><td>OKX</td><td> 318_001 </td><td>Buy</td></tr>`)
	require.NoError(t, err)
	assert.Equal(t, []string{"OKX", "318_001", "Buy"}, cells)

	cols, err := HeaderIndex(`<thead><tr><th>Venue</th><th>Algorithm ID</th></tr></thead>`)
	require.NoError(t, err)
	assert.Equal(t, 0, cols[HeaderVenue])
	assert.Equal(t, 1, cols[HeaderAlgorithmID])
}

func TestFragmentWithTableContext(t *testing.T) {
	cols, err := HeaderIndex(`<table><thead><tr><th>Venue</th><th>Status</th></tr></thead></table>`)
	require.NoError(t, err)
	assert.Equal(t, 1, cols[HeaderStatus])
}

func TestBadges(t *testing.T) {
	badges, err := Badges(historyRow)
	require.NoError(t, err)

	assert.Equal(t, "Quantity: 100 Contracts", badges[orders.LabelQuantity])
	assert.Equal(t, "Instrument Type: PERP", badges[orders.LabelInstrumentType])
	assert.NotContains(t, badges, orders.LabelDuration)
}

func TestOrderFromCells(t *testing.T) {
	cols, err := HeaderIndex(historyHead)
	require.NoError(t, err)
	cells, err := Cells(historyRow)
	require.NoError(t, err)

	o := OrderFromCells(cells, cols)
	assert.Equal(t, "Binance COIN-M", o.Venue)
	assert.Equal(t, "318_001", o.AlgorithmID)
	assert.Equal(t, "In Progress", o.Status)
	assert.Equal(t, "BTC-USD_PERP", o.Symbol)
	assert.Equal(t, "Buy", o.Side)
	assert.Equal(t, "0%", o.FillProgress)
	assert.NoError(t, o.Validate())
}

func TestOrderFromCellsShortRow(t *testing.T) {
	cols := map[string]int{HeaderAccount: 1, HeaderAlgorithmID: 5}
	o := OrderFromCells([]string{"OKX", "OKX Account - Neha"}, cols)

	assert.Equal(t, "OKX", o.Venue)
	assert.Equal(t, "OKX Account - Neha", o.Account)
	// Columns beyond the row read as empty instead of panicking.
	assert.Empty(t, o.AlgorithmID)
}

func TestHistoryOrderFromRow(t *testing.T) {
	cols, err := HeaderIndex(historyHead)
	require.NoError(t, err)

	ho, err := HistoryOrderFromRow(historyRow, cols)
	require.NoError(t, err)

	assert.Equal(t, "318_001", ho.AlgorithmID)
	assert.True(t, ho.Metadata.Has(orders.LabelQuantity))

	q, ok := orders.ParseQuantity(ho.Metadata.Quantity)
	require.True(t, ok)
	assert.InDelta(t, 100, q.Value, 1e-9)
	assert.Equal(t, "Contracts", q.Unit)
}

func TestMatchAlgorithmID(t *testing.T) {
	assert.True(t, MatchAlgorithmID(" 318_001 ", "318_001"))
	assert.False(t, MatchAlgorithmID("318_0011", "318_001"))
	assert.False(t, MatchAlgorithmID("318_001", "318_0011"))
	assert.False(t, MatchAlgorithmID("", "318_001"))
}
