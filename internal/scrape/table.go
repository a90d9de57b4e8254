// Package scrape turns raw HTML fragments lifted out of the browser into
// plain data: header label maps, trimmed cell texts and metadata badges.
// Everything here is pure; the browser layer hands it strings.
package scrape

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/NehaShanbhag53/qa-assessment-neha-shanbhag/internal/orders"
)

// Canonical column headers of the GoTrade order tables.
const (
	HeaderVenue        = "Venue"
	HeaderAccount      = "Account"
	HeaderAlgorithmID  = "Algorithm ID"
	HeaderStatus       = "Status"
	HeaderType         = "Type"
	HeaderSymbol       = "Symbol"
	HeaderDateTime     = "Date Time (UTC)"
	HeaderSide         = "Side"
	HeaderAvgFillPrice = "Avg Fill Price"
	HeaderFillQuantity = "Fill Quantity"
	HeaderFillValue    = "Fill Value"
	HeaderFillProgress = "Fill Progress"
	HeaderActions      = "Actions"
)

// OrderColumns lists the headers of the working-orders and order-history
// tables in render order, used to verify table shape.
var OrderColumns = []string{
	HeaderVenue, HeaderAccount, HeaderAlgorithmID, HeaderStatus, HeaderType,
	HeaderSymbol, HeaderDateTime, HeaderSide, HeaderAvgFillPrice,
	HeaderFillQuantity, HeaderFillValue, HeaderFillProgress, HeaderActions,
}

// fragmentDoc parses a table fragment. The HTML5 parse algorithm discards
// thead/tr/th/td tags that appear outside a <table>, and the browser layer
// hands us bare fragments, so restore the table context before parsing.
func fragmentDoc(fragment string) (*goquery.Document, error) {
	return goquery.NewDocumentFromReader(
		strings.NewReader("<table>" + fragment + "</table>"))
}

// HeaderIndex parses a <thead> fragment into a header-label -> column-index
// map. Columns are located by label so a reordered or inserted column does
// not silently shift every assertion onto the wrong cell. Headers with no
// text are left out of the map.
func HeaderIndex(theadHTML string) (map[string]int, error) {
	doc, err := fragmentDoc(theadHTML)
	if err != nil {
		return nil, fmt.Errorf("parsing table header: %w", err)
	}

	index := make(map[string]int)
	doc.Find("th").Each(func(i int, s *goquery.Selection) {
		label := strings.TrimSpace(s.Text())
		if label == "" {
			return
		}
		if _, exists := index[label]; !exists {
			index[label] = i
		}
	})
	if len(index) == 0 {
		return nil, fmt.Errorf("no header cells found in %q", truncate(theadHTML, 80))
	}
	return index, nil
}

// Cells parses a <tr> fragment into its trimmed cell texts. A cell with no
// text but an image (the venue column) reads as the image's alt text.
func Cells(rowHTML string) ([]string, error) {
	doc, err := fragmentDoc(rowHTML)
	if err != nil {
		return nil, fmt.Errorf("parsing table row: %w", err)
	}

	var cells []string
	doc.Find("td").Each(func(_ int, s *goquery.Selection) {
		text := strings.TrimSpace(s.Text())
		if text == "" {
			if alt, ok := s.Find("img").Attr("alt"); ok {
				text = strings.TrimSpace(alt)
			}
		}
		cells = append(cells, text)
	})
	if cells == nil {
		return nil, fmt.Errorf("no cells found in %q", truncate(rowHTML, 80))
	}
	return cells, nil
}

// Badges scans a row fragment for "<Label>: value" metadata badges and
// returns the raw badge text per recognized label. Only the labels the
// history table actually renders are considered.
func Badges(rowHTML string) (map[string]string, error) {
	doc, err := fragmentDoc(rowHTML)
	if err != nil {
		return nil, fmt.Errorf("parsing row badges: %w", err)
	}

	badges := make(map[string]string)
	doc.Find("span, div").Each(func(_ int, s *goquery.Selection) {
		if s.Children().Length() > 0 {
			return
		}
		text := strings.TrimSpace(s.Text())
		for _, label := range orders.MetadataLabels {
			if _, seen := badges[label]; seen {
				continue
			}
			if strings.HasPrefix(text, label+":") {
				badges[label] = text
			}
		}
	})
	return badges, nil
}

// OrderFromCells maps a row's cells onto an Order using the header index.
// The venue column renders an exchange icon, so when its header is missing
// from the map it falls back to the first cell. Every other column missing
// from the map or beyond the row reads as empty rather than shifting
// neighboring values.
func OrderFromCells(cells []string, cols map[string]int) orders.Order {
	at := func(i int) string {
		if i < 0 || i >= len(cells) {
			return ""
		}
		return cells[i]
	}
	col := func(label string) string {
		i, ok := cols[label]
		if !ok {
			return ""
		}
		return at(i)
	}
	venue := col(HeaderVenue)
	if venue == "" {
		venue = at(0)
	}
	return orders.Order{
		Venue:        venue,
		Account:      col(HeaderAccount),
		AlgorithmID:  col(HeaderAlgorithmID),
		Status:       col(HeaderStatus),
		Type:         col(HeaderType),
		Symbol:       col(HeaderSymbol),
		DateTime:     col(HeaderDateTime),
		Side:         col(HeaderSide),
		AvgFillPrice: col(HeaderAvgFillPrice),
		FillQuantity: col(HeaderFillQuantity),
		FillValue:    col(HeaderFillValue),
		FillProgress: col(HeaderFillProgress),
		Action:       col(HeaderActions),
	}
}

// HistoryOrderFromRow combines cell extraction and badge scanning for one
// order-history row fragment.
func HistoryOrderFromRow(rowHTML string, cols map[string]int) (orders.HistoryOrder, error) {
	cells, err := Cells(rowHTML)
	if err != nil {
		return orders.HistoryOrder{}, err
	}
	badges, err := Badges(rowHTML)
	if err != nil {
		return orders.HistoryOrder{}, err
	}
	return orders.HistoryOrder{
		Order:    OrderFromCells(cells, cols),
		Metadata: orders.MetadataFromBadges(badges),
	}, nil
}

// MatchAlgorithmID reports whether a cell holds exactly the given algorithm
// id after trimming. Exact equality keeps "318_001" from matching a row for
// "318_0011".
func MatchAlgorithmID(cell, algorithmID string) bool {
	return strings.TrimSpace(cell) == strings.TrimSpace(algorithmID)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
