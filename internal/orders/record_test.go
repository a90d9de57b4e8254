package orders

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func validOrder() Order {
	return Order{
		Venue:        "Binance COIN-M",
		Account:      "Binance COINM Account",
		AlgorithmID:  "318_001",
		Status:       "In Progress",
		Type:         "Market",
		Symbol:       "BTC-USD_PERP",
		DateTime:     "2025-11-14 09:30:12",
		Side:         "Buy",
		AvgFillPrice: "-",
		FillQuantity: "-",
		FillValue:    "-",
		FillProgress: "0%",
	}
}

func TestOrderValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Order)
		wantErr bool
	}{
		{
			name:   "valid record",
			mutate: func(o *Order) {},
		},
		{
			name:    "side outside Buy/Sell",
			mutate:  func(o *Order) { o.Side = "Hold" },
			wantErr: true,
		},
		{
			name:   "sell side",
			mutate: func(o *Order) { o.Side = "Sell" },
		},
		{
			name:    "no date in DateTime",
			mutate:  func(o *Order) { o.DateTime = "yesterday" },
			wantErr: true,
		},
		{
			name:   "date without time of day still valid",
			mutate: func(o *Order) { o.DateTime = "2025-11-14" },
		},
		{
			name:    "fill progress without percent sign",
			mutate:  func(o *Order) { o.FillProgress = "42" },
			wantErr: true,
		},
		{
			name:    "missing algorithm id",
			mutate:  func(o *Order) { o.AlgorithmID = "" },
			wantErr: true,
		},
		{
			name:    "missing status",
			mutate:  func(o *Order) { o.Status = "" },
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := validOrder()
			tt.mutate(&o)
			err := o.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestOrderHasTimeOfDay(t *testing.T) {
	o := validOrder()
	assert.True(t, o.HasTimeOfDay())

	o.DateTime = "2025-11-14"
	assert.False(t, o.HasTimeOfDay())
}

func TestOrderComplete(t *testing.T) {
	o := validOrder()
	assert.True(t, o.Complete())

	// Blank fill columns do not make a record incomplete.
	o.AvgFillPrice = ""
	o.FillQuantity = ""
	o.FillValue = ""
	assert.True(t, o.Complete())

	o.Symbol = "   "
	assert.False(t, o.Complete())
}
