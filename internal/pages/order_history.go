package pages

import (
	"fmt"
	"time"

	"github.com/NehaShanbhag53/qa-assessment-neha-shanbhag/internal/browser"
	"github.com/NehaShanbhag53/qa-assessment-neha-shanbhag/internal/common"
	"github.com/NehaShanbhag53/qa-assessment-neha-shanbhag/internal/orders"
	"github.com/NehaShanbhag53/qa-assessment-neha-shanbhag/internal/scrape"
)

// Order-history specific locators.
const (
	rejectionModal       = `//div[@role='dialog'][contains(.,'Order Rejected')]`
	rejectionModalReason = `//div[@role='dialog'][contains(.,'Order Rejected')]//p`
	rejectionModalClose  = `//div[@role='dialog'][contains(.,'Order Rejected')]//button[@aria-label='Close' or normalize-space()='Close']`
	exportButton         = `//button[normalize-space()='Export']`
)

// OrderHistoryPage drives the order-history blotter: the same table surface
// as working orders plus metadata badges, the Action column and the
// rejection modal.
type OrderHistoryPage struct {
	ordersTable
}

func NewOrderHistoryPage(s *browser.Session, cfg *common.Config) *OrderHistoryPage {
	return &OrderHistoryPage{ordersTable: ordersTable{s: s, cfg: cfg}}
}

// Open switches the blotter to the Order History tab and rebinds the column
// map.
func (p *OrderHistoryPage) Open() error {
	if err := p.s.Click(orderHistoryTab); err != nil {
		return err
	}
	p.invalidateColumns()
	return p.s.WaitVisible(ordersTableHead)
}

// GetOrderMetadata extracts the badge metadata of the order's row. Badges
// the row does not render stay empty.
func (p *OrderHistoryPage) GetOrderMetadata(algorithmID string) (orders.Metadata, error) {
	html, found, err := p.rowHTML(algorithmID)
	if err != nil {
		return orders.Metadata{}, err
	}
	if !found {
		return orders.Metadata{}, &OrderNotFoundError{AlgorithmID: algorithmID}
	}
	badges, err := scrape.Badges(html)
	if err != nil {
		return orders.Metadata{}, err
	}
	return orders.MetadataFromBadges(badges), nil
}

// GetCompleteOrder reads the row's cells and badges in one pass.
func (p *OrderHistoryPage) GetCompleteOrder(algorithmID string) (orders.HistoryOrder, error) {
	html, found, err := p.rowHTML(algorithmID)
	if err != nil {
		return orders.HistoryOrder{}, err
	}
	if !found {
		return orders.HistoryOrder{}, &OrderNotFoundError{AlgorithmID: algorithmID}
	}
	cols, err := p.columns()
	if err != nil {
		return orders.HistoryOrder{}, err
	}
	return scrape.HistoryOrderFromRow(html, cols)
}

// GetAllCompleteOrders extracts every history row with metadata, two-pass
// like GetAllOrders.
func (p *OrderHistoryPage) GetAllCompleteOrders() ([]orders.HistoryOrder, error) {
	ids, err := p.algorithmIDs()
	if err != nil {
		return nil, err
	}
	out := make([]orders.HistoryOrder, 0, len(ids))
	for _, id := range ids {
		ho, err := p.GetCompleteOrder(id)
		if err != nil {
			if _, gone := err.(*OrderNotFoundError); gone {
				continue
			}
			return nil, err
		}
		out = append(out, ho)
	}
	return out, nil
}

// GetActionText returns the Action cell of the order, e.g. "Order Rejected".
func (p *OrderHistoryPage) GetActionText(algorithmID string) (string, error) {
	o, err := p.GetOrderDetails(algorithmID)
	if err != nil {
		return "", err
	}
	return o.Action, nil
}

// ClickOrderRejected opens the rejection modal from the order's Action cell.
func (p *OrderHistoryPage) ClickOrderRejected(algorithmID string) error {
	sel := fmt.Sprintf(
		`//tr[td[normalize-space()=%q]]//*[normalize-space()='Order Rejected']`, algorithmID)
	return p.s.Click(sel)
}

// GetRejectionReason waits for the rejection modal and reads its message.
func (p *OrderHistoryPage) GetRejectionReason() (string, error) {
	if err := p.s.WaitVisibleFor(rejectionModal, 5*time.Second); err != nil {
		return "", fmt.Errorf("rejection modal did not open: %w", err)
	}
	return p.s.Text(rejectionModalReason)
}

// CloseRejectionModal dismisses the modal and waits for it to leave.
func (p *OrderHistoryPage) CloseRejectionModal() error {
	if err := p.s.Click(rejectionModalClose); err != nil {
		return err
	}
	return p.s.WaitGone(rejectionModal, 5*time.Second)
}

// IsRejectionModalVisible reports whether the modal is showing.
func (p *OrderHistoryPage) IsRejectionModalVisible() (bool, error) {
	return p.s.IsVisible(rejectionModal)
}

// CancelOrder clicks Cancel on a still-cancellable history row.
func (p *OrderHistoryPage) CancelOrder(algorithmID string) error {
	return p.s.Click(rowButton(algorithmID, "Cancel"))
}

// SortByColumn clicks the named column header.
func (p *OrderHistoryPage) SortByColumn(label string) error {
	sel := fmt.Sprintf(`//th[contains(normalize-space(),%q)]`, label)
	return p.s.Click(sel)
}

// Export clicks the export button.
func (p *OrderHistoryPage) Export() error {
	return p.s.Click(exportButton)
}

// Refresh reloads the page and rebinds the column map.
func (p *OrderHistoryPage) Refresh() error {
	url, err := p.s.CurrentURL()
	if err != nil {
		return err
	}
	if err := p.s.Navigate(url); err != nil {
		return err
	}
	p.invalidateColumns()
	return p.s.WaitVisible(ordersTableHead)
}

// GetOrdersByStatus filters the full extraction by status substring.
func (p *OrderHistoryPage) GetOrdersByStatus(status string) ([]orders.HistoryOrder, error) {
	all, err := p.GetAllCompleteOrders()
	if err != nil {
		return nil, err
	}
	return orders.FilterByStatus(all, status), nil
}

// GetOrdersInDateRange filters the full extraction to [start, end].
func (p *OrderHistoryPage) GetOrdersInDateRange(start, end time.Time) ([]orders.HistoryOrder, error) {
	all, err := p.GetAllCompleteOrders()
	if err != nil {
		return nil, err
	}
	return orders.FilterByDateRange(all, start, end), nil
}

// ValidateOrderCompleteness reports whether every identity field of the row
// is populated.
func (p *OrderHistoryPage) ValidateOrderCompleteness(algorithmID string) (bool, error) {
	o, err := p.GetOrderDetails(algorithmID)
	if err != nil {
		return false, err
	}
	return o.Complete(), nil
}
