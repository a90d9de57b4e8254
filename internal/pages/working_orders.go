package pages

import (
	"fmt"

	"github.com/NehaShanbhag53/qa-assessment-neha-shanbhag/internal/browser"
	"github.com/NehaShanbhag53/qa-assessment-neha-shanbhag/internal/common"
)

// Blotter tab and bulk-action locators, shared across the order tables.
const (
	workingOrdersTab   = `//button[normalize-space()='Working Orders']`
	orderHistoryTab    = `//button[normalize-space()='Order History']`
	openPositionsTab   = `//button[normalize-space()='Open Positions']`
	assetsTab          = `//button[normalize-space()='Assets']`
	cancelWorkingAllBtn = `//button[normalize-space()='Cancel Working Orders']`
	killEdgeBtn         = `//button[contains(normalize-space(),'Kill-Edge')]`
	liquidateBtn        = `//button[contains(normalize-space(),'Liquidate Positions')]`
)

// rowButton targets a button inside the row whose Algorithm ID cell equals
// the id exactly.
func rowButton(algorithmID, buttonText string) string {
	return fmt.Sprintf(`//tr[td[normalize-space()=%q]]//button[normalize-space()=%q]`,
		algorithmID, buttonText)
}

// WorkingOrdersPage drives the working-orders blotter on the trade screen.
type WorkingOrdersPage struct {
	ordersTable
}

func NewWorkingOrdersPage(s *browser.Session, cfg *common.Config) *WorkingOrdersPage {
	return &WorkingOrdersPage{ordersTable: ordersTable{s: s, cfg: cfg}}
}

// Open switches the blotter to the Working Orders tab and waits for the
// table header. The column map is rebound after the switch.
func (p *WorkingOrdersPage) Open() error {
	if err := p.s.Click(workingOrdersTab); err != nil {
		return err
	}
	p.invalidateColumns()
	return p.s.WaitVisible(ordersTableHead)
}

// CancelOrder clicks Cancel on the order's row.
func (p *WorkingOrdersPage) CancelOrder(algorithmID string) error {
	return p.s.Click(rowButton(algorithmID, "Cancel"))
}

// ModifyOrder opens the modify dialog for the order's row.
func (p *WorkingOrdersPage) ModifyOrder(algorithmID string) error {
	sel := fmt.Sprintf(
		`//tr[td[normalize-space()=%q]]//button[contains(@aria-label,'modify') or contains(@title,'modify')]`,
		algorithmID)
	return p.s.Click(sel)
}

// CancelAllWorkingOrders clicks the blotter-wide cancel button.
func (p *WorkingOrdersPage) CancelAllWorkingOrders() error {
	return p.s.Click(cancelWorkingAllBtn)
}

// KillEdge clicks the Kill-Edge button.
func (p *WorkingOrdersPage) KillEdge() error {
	return p.s.Click(killEdgeBtn)
}

// LiquidatePositions clicks the Liquidate Positions button.
func (p *WorkingOrdersPage) LiquidatePositions() error {
	return p.s.Click(liquidateBtn)
}

// OpenOrderHistory switches to the Order History tab.
func (p *WorkingOrdersPage) OpenOrderHistory() error {
	p.invalidateColumns()
	return p.s.Click(orderHistoryTab)
}

// OpenPositions switches to the Open Positions tab.
func (p *WorkingOrdersPage) OpenPositions() error {
	p.invalidateColumns()
	return p.s.Click(openPositionsTab)
}

// OpenAssets switches to the Assets tab.
func (p *WorkingOrdersPage) OpenAssets() error {
	p.invalidateColumns()
	return p.s.Click(assetsTab)
}
