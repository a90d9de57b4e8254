package pages

import (
	"fmt"
	"strings"

	"github.com/NehaShanbhag53/qa-assessment-neha-shanbhag/internal/browser"
	"github.com/NehaShanbhag53/qa-assessment-neha-shanbhag/internal/common"
)

// Account table locators. The venues table keys identity cells by style
// classes; the typed cells carry data-testids.
const (
	venuesTable        = `table.w-full`
	accountRowsCSS     = `table.w-full tbody tr`
	accountNameCells   = `//div[@class='font-inter text-xsm 4k:text-[16px] flex min-h-max min-w-max items-center justify-start']`
	accountKeyCells    = `//p[@class='font-inter text-xsm 4k:text-[16px] flex min-h-max min-w-max items-center justify-start']`
	accountVenueCells  = `//div[@class='flex flex-row items-center']`
	maskedKeyIndicator = "*****"
)

// AccountNotFoundError reports a name lookup that matched no row.
type AccountNotFoundError struct {
	Name string
}

func (e *AccountNotFoundError) Error() string {
	return fmt.Sprintf("account %q not found in table", e.Name)
}

// AccountRow is one row of the venues table.
type AccountRow struct {
	Venue       string
	AccountName string
	AccountKey  string
	AccountType string
}

// AccountTablePage reads the venues table on the admin screen.
type AccountTablePage struct {
	s   *browser.Session
	cfg *common.Config
}

func NewAccountTablePage(s *browser.Session, cfg *common.Config) *AccountTablePage {
	return &AccountTablePage{s: s, cfg: cfg}
}

// WaitForTable blocks until the venues table renders.
func (p *AccountTablePage) WaitForTable() error {
	return p.s.WaitVisible(venuesTable)
}

// IsTableVisible reports whether the venues table is on screen.
func (p *AccountTablePage) IsTableVisible() (bool, error) {
	return p.s.IsVisible(venuesTable)
}

// RowCount returns the number of account rows.
func (p *AccountTablePage) RowCount() (int, error) {
	return p.s.Count(accountRowsCSS)
}

// AccountNames returns every account name in row order.
func (p *AccountTablePage) AccountNames() ([]string, error) {
	fragments, err := p.s.OuterHTMLAll(accountNameCells)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(fragments))
	for _, html := range fragments {
		names = append(names, stripTags(html))
	}
	return names, nil
}

// FindRowIndexByAccountName returns the zero-based row of the account, or -1
// when no row's trimmed name equals it.
func (p *AccountTablePage) FindRowIndexByAccountName(name string) (int, error) {
	names, err := p.AccountNames()
	if err != nil {
		return -1, err
	}
	for i, n := range names {
		if strings.TrimSpace(n) == name {
			return i, nil
		}
	}
	return -1, nil
}

// IsAccountDisplayed reports whether an account with the exact name exists.
func (p *AccountTablePage) IsAccountDisplayed(name string) (bool, error) {
	i, err := p.FindRowIndexByAccountName(name)
	return i != -1, err
}

// Row reads the identity cells of one row by index.
func (p *AccountTablePage) Row(index int) (AccountRow, error) {
	venue, err := p.nthText(accountVenueCells, index)
	if err != nil {
		return AccountRow{}, err
	}
	name, err := p.nthText(accountNameCells, index)
	if err != nil {
		return AccountRow{}, err
	}
	key, err := p.nthText(accountKeyCells, index)
	if err != nil {
		return AccountRow{}, err
	}
	accType, err := p.s.Text(fmt.Sprintf(`td[data-testid='venues-table-cell-%d-is_testnet']`, index))
	if err != nil {
		// Older builds only testid the first row; a missing cell is not
		// worth failing the identity read over.
		accType = ""
	}
	return AccountRow{
		Venue:       strings.TrimSpace(venue),
		AccountName: strings.TrimSpace(name),
		AccountKey:  strings.TrimSpace(key),
		AccountType: strings.TrimSpace(accType),
	}, nil
}

// RowByName finds the account's row by exact name. A missing account is an
// AccountNotFoundError, not a panic or a zero row.
func (p *AccountTablePage) RowByName(name string) (AccountRow, error) {
	index, err := p.FindRowIndexByAccountName(name)
	if err != nil {
		return AccountRow{}, err
	}
	if index == -1 {
		return AccountRow{}, &AccountNotFoundError{Name: name}
	}
	return p.Row(index)
}

// KeyMasked reports whether the row's API key renders masked.
func (r AccountRow) KeyMasked() bool {
	return strings.Contains(r.AccountKey, maskedKeyIndicator)
}

// AllKeysMasked verifies no row leaks a raw API key.
func (p *AccountTablePage) AllKeysMasked() (bool, error) {
	fragments, err := p.s.OuterHTMLAll(accountKeyCells)
	if err != nil {
		return false, err
	}
	for _, html := range fragments {
		if !strings.Contains(stripTags(html), maskedKeyIndicator) {
			return false, nil
		}
	}
	return true, nil
}

// ClickModify opens the modify dialog for the row.
func (p *AccountTablePage) ClickModify(index int) error {
	sel := fmt.Sprintf(`//td[@data-testid='venues-table-cell-%d-accountAction']//button[normalize-space()='Modify']`, index)
	return p.s.Click(sel)
}

// ClickDelete clicks the row's delete button.
func (p *AccountTablePage) ClickDelete(index int) error {
	sel := fmt.Sprintf(`//td[@data-testid='venues-table-cell-%d-accountAction']//button[normalize-space()='Delete']`, index)
	return p.s.Click(sel)
}

func (p *AccountTablePage) nthText(selector string, index int) (string, error) {
	fragments, err := p.s.OuterHTMLAll(selector)
	if err != nil {
		return "", err
	}
	if index < 0 || index >= len(fragments) {
		return "", fmt.Errorf("row %d out of range, table has %d rows", index, len(fragments))
	}
	return stripTags(fragments[index]), nil
}
