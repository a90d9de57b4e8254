package pages

import (
	"fmt"
	"strings"
	"time"

	"github.com/NehaShanbhag53/qa-assessment-neha-shanbhag/internal/browser"
	"github.com/NehaShanbhag53/qa-assessment-neha-shanbhag/internal/common"
	"github.com/NehaShanbhag53/qa-assessment-neha-shanbhag/internal/orders"
	"github.com/NehaShanbhag53/qa-assessment-neha-shanbhag/internal/scrape"
)

// Shared locators of the working-orders and order-history tables.
const (
	ordersTableHead = `table thead`
	ordersTableRows = `table tbody tr`
)

// VerifyStatusRetries and VerifyStatusDelay bound the status re-check loop.
const (
	VerifyStatusRetries = 3
	VerifyStatusDelay   = time.Second
)

// OrderNotFoundError reports an algorithm id that matched no row.
type OrderNotFoundError struct {
	AlgorithmID string
}

func (e *OrderNotFoundError) Error() string {
	return fmt.Sprintf("order %q not found in table", e.AlgorithmID)
}

// ordersTable is the row extractor and polling verifier shared by the
// working-orders and order-history pages. Rows are located by exact trimmed
// equality on the Algorithm ID cell, and cells are read through a header
// label to column index map bound once per table load.
type ordersTable struct {
	s   *browser.Session
	cfg *common.Config

	cols map[string]int
}

// columns returns the header map, reading the thead on first use. The map is
// dropped on tab navigation and page reload so a re-rendered table cannot be
// read through stale indices.
func (t *ordersTable) columns() (map[string]int, error) {
	if t.cols != nil {
		return t.cols, nil
	}
	if err := t.s.WaitVisible(ordersTableHead); err != nil {
		return nil, err
	}
	html, err := t.s.OuterHTML(ordersTableHead)
	if err != nil {
		return nil, err
	}
	cols, err := scrape.HeaderIndex(html)
	if err != nil {
		return nil, err
	}
	t.cols = cols
	return cols, nil
}

func (t *ordersTable) invalidateColumns() {
	t.cols = nil
}

// rowHTML finds the row whose Algorithm ID cell equals the id, after
// trimming. Returns found=false when no row matches; a degenerate or
// mid-render row never panics the read.
func (t *ordersTable) rowHTML(algorithmID string) (string, bool, error) {
	cols, err := t.columns()
	if err != nil {
		return "", false, err
	}
	idCol, ok := cols[scrape.HeaderAlgorithmID]
	if !ok {
		return "", false, fmt.Errorf("table has no %q column", scrape.HeaderAlgorithmID)
	}

	fragments, err := t.s.OuterHTMLAll(ordersTableRows)
	if err != nil {
		return "", false, err
	}
	for _, html := range fragments {
		cells, err := scrape.Cells(html)
		if err != nil {
			continue
		}
		if idCol >= len(cells) {
			continue
		}
		if scrape.MatchAlgorithmID(cells[idCol], algorithmID) {
			return html, true, nil
		}
	}
	return "", false, nil
}

// GetOrderDetails reads the row for the algorithm id into an Order. A
// missing row is an OrderNotFoundError.
func (t *ordersTable) GetOrderDetails(algorithmID string) (orders.Order, error) {
	html, found, err := t.rowHTML(algorithmID)
	if err != nil {
		return orders.Order{}, err
	}
	if !found {
		return orders.Order{}, &OrderNotFoundError{AlgorithmID: algorithmID}
	}
	cells, err := scrape.Cells(html)
	if err != nil {
		return orders.Order{}, err
	}
	cols, err := t.columns()
	if err != nil {
		return orders.Order{}, err
	}
	return scrape.OrderFromCells(cells, cols), nil
}

// GetOrderStatus returns the Status cell for the order.
func (t *ordersTable) GetOrderStatus(algorithmID string) (string, error) {
	o, err := t.GetOrderDetails(algorithmID)
	if err != nil {
		return "", err
	}
	return o.Status, nil
}

// IsOrderPresent reports whether a row exists for the algorithm id. Zero
// matches is an answer, not an error.
func (t *ordersTable) IsOrderPresent(algorithmID string) (bool, error) {
	_, found, err := t.rowHTML(algorithmID)
	return found, err
}

// GetOrderCount returns the number of rows currently rendered.
func (t *ordersTable) GetOrderCount() (int, error) {
	return t.s.Count(ordersTableRows)
}

// algorithmIDs enumerates the id column of every row, skipping rows that are
// mid-render.
func (t *ordersTable) algorithmIDs() ([]string, error) {
	cols, err := t.columns()
	if err != nil {
		return nil, err
	}
	idCol, ok := cols[scrape.HeaderAlgorithmID]
	if !ok {
		return nil, fmt.Errorf("table has no %q column", scrape.HeaderAlgorithmID)
	}
	fragments, err := t.s.OuterHTMLAll(ordersTableRows)
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(fragments))
	for _, html := range fragments {
		cells, err := scrape.Cells(html)
		if err != nil || idCol >= len(cells) {
			continue
		}
		if id := cells[idCol]; id != "" {
			ids = append(ids, id)
		}
	}
	return ids, nil
}

// GetAllOrders extracts every row. Two passes: the id column is enumerated
// first, then each row is re-located by id for the detail read, so reordering
// between passes yields stale-but-consistent records rather than torn ones.
// An id that disappears between passes is skipped.
func (t *ordersTable) GetAllOrders() ([]orders.Order, error) {
	ids, err := t.algorithmIDs()
	if err != nil {
		return nil, err
	}
	out := make([]orders.Order, 0, len(ids))
	for _, id := range ids {
		o, err := t.GetOrderDetails(id)
		if err != nil {
			if _, gone := err.(*OrderNotFoundError); gone {
				continue
			}
			return nil, err
		}
		out = append(out, o)
	}
	return out, nil
}

// waitExpr is the DOM predicate for "a row with this exact algorithm id
// exists", bound to the current id column.
func (t *ordersTable) waitExpr(algorithmID string, present bool) (string, error) {
	cols, err := t.columns()
	if err != nil {
		return "", err
	}
	idCol, ok := cols[scrape.HeaderAlgorithmID]
	if !ok {
		return "", fmt.Errorf("table has no %q column", scrape.HeaderAlgorithmID)
	}
	return fmt.Sprintf(`(() => {
		const rows = document.querySelectorAll(%q);
		const hit = Array.from(rows).some(r => {
			const cell = r.cells[%d];
			return cell && cell.textContent.trim() === %q;
		});
		return hit === %t;
	})()`, ordersTableRows, idCol, algorithmID, present), nil
}

// WaitForOrder blocks until a row for the algorithm id appears. Timeout is a
// hard failure.
func (t *ordersTable) WaitForOrder(algorithmID string, timeout time.Duration) error {
	expr, err := t.waitExpr(algorithmID, true)
	if err != nil {
		return err
	}
	return t.s.PollUntil(expr, fmt.Sprintf("order %s to appear", algorithmID), timeout)
}

// WaitForOrderGone blocks until no row for the algorithm id remains.
func (t *ordersTable) WaitForOrderGone(algorithmID string, timeout time.Duration) error {
	expr, err := t.waitExpr(algorithmID, false)
	if err != nil {
		return err
	}
	return t.s.PollUntil(expr, fmt.Sprintf("order %s to disappear", algorithmID), timeout)
}

// VerifyOrderStatus re-reads the order's status up to VerifyStatusRetries
// times, a second apart, and reports whether it ever contained want. A false
// result is a soft outcome for the caller to assert on; only a broken read
// is an error.
func (t *ordersTable) VerifyOrderStatus(algorithmID, want string) (bool, error) {
	return browser.Retry(VerifyStatusRetries, VerifyStatusDelay, func() (bool, error) {
		status, err := t.GetOrderStatus(algorithmID)
		if err != nil {
			if _, notFound := err.(*OrderNotFoundError); notFound {
				// The row may not have rendered yet; that's a retry, not
				// a failure.
				return false, nil
			}
			return false, err
		}
		return strings.Contains(status, want), nil
	})
}

// VerifyColumns checks that every expected order-table header is visible.
func (t *ordersTable) VerifyColumns() error {
	cols, err := t.columns()
	if err != nil {
		return err
	}
	for _, want := range scrape.OrderColumns {
		if _, ok := cols[want]; !ok {
			return fmt.Errorf("column %q missing from table header", want)
		}
	}
	return nil
}
