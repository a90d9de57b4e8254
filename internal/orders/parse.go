package orders

import (
	"fmt"
	"regexp"
	"strconv"
)

// Metadata badge labels as rendered in the order-history rows.
const (
	LabelQuantity       = "Quantity"
	LabelInstrumentType = "Instrument Type"
	LabelDuration       = "Duration"
	LabelInterval       = "Interval"
	LabelPrice          = "Price"
	LabelDecayFactor    = "Decay Factor"
	LabelThreshold      = "Threshold"
)

// MetadataLabels lists every recognized badge label.
var MetadataLabels = []string{
	LabelQuantity,
	LabelInstrumentType,
	LabelDuration,
	LabelInterval,
	LabelPrice,
	LabelDecayFactor,
	LabelThreshold,
}

// Quantity is a parsed "<Label>: <value> <unit>" badge, e.g.
// "Quantity: 0.020000 BTC" or "Price: 495 AUD". The unit token doubles as a
// currency code for price badges.
type Quantity struct {
	Value float64
	Unit  string
}

var (
	// "Quantity: 100 Contracts" / "Price: 495 AUD", space before the unit.
	spacedBadgePattern = `%s:\s*([\d.]+)\s*(\w+)`
	// "Duration: 10m", unit glued to the number.
	gluedBadgePattern = `%s:\s*([\d.]+)(\w+)`

	progressPattern = regexp.MustCompile(`(\d+)%`)
)

func parseBadge(pattern, label, raw string) (Quantity, bool) {
	re := regexp.MustCompile(fmt.Sprintf(pattern, regexp.QuoteMeta(label)))
	m := re.FindStringSubmatch(raw)
	if m == nil {
		return Quantity{}, false
	}
	value, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return Quantity{}, false
	}
	return Quantity{Value: value, Unit: m[2]}, true
}

// ParseQuantity extracts (value, unit) from a "Quantity: ..." badge.
func ParseQuantity(raw string) (Quantity, bool) {
	return parseBadge(spacedBadgePattern, LabelQuantity, raw)
}

// ParsePrice extracts (value, currency) from a "Price: ..." badge.
func ParsePrice(raw string) (Quantity, bool) {
	return parseBadge(spacedBadgePattern, LabelPrice, raw)
}

// ParseDuration extracts (value, unit) from a "Duration: ..." badge. Unlike
// quantity and price the unit follows the number without a space.
func ParseDuration(raw string) (Quantity, bool) {
	return parseBadge(gluedBadgePattern, LabelDuration, raw)
}

// ParseFillProgress extracts the integer percentage from a Fill Progress cell.
// Absence of a match means the order has not filled at all and reads as 0.
func ParseFillProgress(raw string) int {
	m := progressPattern.FindStringSubmatch(raw)
	if m == nil {
		return 0
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0
	}
	return n
}

// MetadataFromBadges assembles a Metadata record from raw badge texts keyed by
// label. Unrecognized labels are ignored.
func MetadataFromBadges(badges map[string]string) Metadata {
	return Metadata{
		Quantity:       badges[LabelQuantity],
		InstrumentType: badges[LabelInstrumentType],
		Duration:       badges[LabelDuration],
		Interval:       badges[LabelInterval],
		Price:          badges[LabelPrice],
		DecayFactor:    badges[LabelDecayFactor],
		Threshold:      badges[LabelThreshold],
	}
}
