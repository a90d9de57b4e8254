// Package orders holds the typed projections scraped out of the GoTrade
// order tables, plus the parsing and filtering helpers that operate on them.
// Records are ephemeral read projections: recomputed from live DOM state on
// every extraction, never stored.
package orders

import (
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Side is the order direction as rendered in the Side column.
type Side string

const (
	SideBuy  Side = "Buy"
	SideSell Side = "Sell"
)

// Order is one scraped row from the Working Orders or Order History table.
// Action is only populated for the history variant.
type Order struct {
	Venue        string `validate:"-"`
	Account      string `validate:"-"`
	AlgorithmID  string `validate:"required"`
	Status       string `validate:"required"`
	Type         string `validate:"-"`
	Symbol       string `validate:"-"`
	DateTime     string `validate:"required,orderdate"`
	Side         string `validate:"required,oneof=Buy Sell"`
	AvgFillPrice string `validate:"-"`
	FillQuantity string `validate:"-"`
	FillValue    string `validate:"-"`
	FillProgress string `validate:"required,fillprogress"`
	Action       string `validate:"-"`
}

// Metadata holds the optional "<Label>: <value>" badges embedded in a history
// row. Empty string means the badge was not rendered for that order.
type Metadata struct {
	Quantity       string
	InstrumentType string
	Duration       string
	Interval       string
	Price          string
	DecayFactor    string
	Threshold      string
}

// HistoryOrder pairs a history-table row with its badge metadata.
type HistoryOrder struct {
	Order
	Metadata Metadata
}

var (
	dateTimePattern     = regexp.MustCompile(`\d{4}-\d{2}-\d{2}`)
	timeOfDayPattern    = regexp.MustCompile(`\d{2}:\d{2}:\d{2}`)
	fillProgressPattern = regexp.MustCompile(`\d+%`)

	validate = newValidator()
)

func newValidator() *validator.Validate {
	v := validator.New()
	// Registration only fails for empty tags or nil funcs, neither applies.
	_ = v.RegisterValidation("orderdate", func(fl validator.FieldLevel) bool {
		return dateTimePattern.MatchString(fl.Field().String())
	})
	_ = v.RegisterValidation("fillprogress", func(fl validator.FieldLevel) bool {
		return fillProgressPattern.MatchString(fl.Field().String())
	})
	return v
}

// Validate checks the record against the data-quality invariants of the order
// tables: a Side other than Buy/Sell, a malformed date or a missing progress
// percentage is a defect to surface, not a value to silently accept.
func (o *Order) Validate() error {
	return validate.Struct(o)
}

// HasTimeOfDay reports whether the DateTime column carries an HH:MM:SS part
// in addition to the date. Working-order rows sometimes render date only.
func (o *Order) HasTimeOfDay() bool {
	return timeOfDayPattern.MatchString(o.DateTime)
}

// Complete reports whether every identity field a downstream assertion relies
// on is populated. Fill columns are excluded: a 0-fill order legitimately
// renders blanks there.
func (o *Order) Complete() bool {
	for _, f := range []string{
		o.Venue, o.Account, o.AlgorithmID, o.Status,
		o.Type, o.Symbol, o.DateTime, o.Side,
	} {
		if strings.TrimSpace(f) == "" {
			return false
		}
	}
	return true
}

// Has reports whether the named metadata badge was present on the row.
func (m Metadata) Has(label string) bool {
	switch label {
	case LabelQuantity:
		return m.Quantity != ""
	case LabelInstrumentType:
		return m.InstrumentType != ""
	case LabelDuration:
		return m.Duration != ""
	case LabelInterval:
		return m.Interval != ""
	case LabelPrice:
		return m.Price != ""
	case LabelDecayFactor:
		return m.DecayFactor != ""
	case LabelThreshold:
		return m.Threshold != ""
	}
	return false
}
