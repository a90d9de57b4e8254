package pages

import (
	"fmt"
	"time"

	"github.com/NehaShanbhag53/qa-assessment-neha-shanbhag/internal/browser"
	"github.com/NehaShanbhag53/qa-assessment-neha-shanbhag/internal/common"
)

// Exchange identifies a venue supported by the add-account dialog.
type Exchange string

const (
	ExchangeOKX          Exchange = "OKX"
	ExchangeBinanceUSDM  Exchange = "Binance USDS-M"
	ExchangeBinanceCOINM Exchange = "Binance COIN-M"
)

// Add-account dialog locators.
const (
	accountsNavItem  = `//span[normalize-space()='Accounts']`
	adminNavItem     = `//span[normalize-space()='Manage trading accounts & groups']`
	addAccountButton = `//button[normalize-space()='Add Account']`
	accountDialog    = `//div[@role='dialog']`
	exchangeCombobox = `//button[@role='combobox']`
	dialogSubmit     = `//div[@role='dialog']//button[@type='submit']`
	dialogClose      = `button[aria-label='Close']`
	accountNameField = `input[name='accountName']`

	// The app assigns every exchange form the same switch testid; the
	// auto-generated radix ids are not stable across renders.
	testModeSwitch = `button[data-testid='test-mode-switch']`
)

func exchangeOption(e Exchange) string {
	switch e {
	case ExchangeOKX:
		return `div[data-testid='exchange-option-OKX']`
	case ExchangeBinanceUSDM:
		return `div[data-testid='exchange-option-BINANCEUSDM']`
	case ExchangeBinanceCOINM:
		return `div[data-testid='exchange-option-BINANCECOINM']`
	}
	return ""
}

// credentialPlaceholders returns the input placeholders the dialog renders
// for the exchange, in fill order: account name, API key, secret key, then
// passphrase for venues that require one.
func credentialPlaceholders(e Exchange) []string {
	switch e {
	case ExchangeOKX:
		return []string{
			"Enter your OKX Account Name",
			"Enter your OKX API Key",
			"Enter your OKX secret key",
			"Enter your OKX passphrase",
		}
	case ExchangeBinanceUSDM:
		return []string{
			"Enter your Binance USDⓈ-M Account Name",
			"Enter your Binance USDⓈ-M API Key",
			"Enter your Binance USDⓈ-M secret key",
		}
	case ExchangeBinanceCOINM:
		return []string{
			"Enter your Binance COIN-M Account Name",
			"Enter your Binance COIN-M API Key",
			"Enter your Binance COIN-M secret key",
		}
	}
	return nil
}

// AccountCredentials is the input to the add-account flow. Passphrase is
// only consumed by venues that take one.
type AccountCredentials struct {
	Name       string
	APIKey     string
	SecretKey  string
	Passphrase string
	TestMode   bool
}

// AddAccountDialog drives the account creation and modification dialogs on
// the admin page.
type AddAccountDialog struct {
	s   *browser.Session
	cfg *common.Config
}

func NewAddAccountDialog(s *browser.Session, cfg *common.Config) *AddAccountDialog {
	return &AddAccountDialog{s: s, cfg: cfg}
}

// NavigateToAccounts opens the Accounts section from the sidebar.
func (d *AddAccountDialog) NavigateToAccounts() error {
	return d.s.Click(accountsNavItem)
}

// NavigateToAdmin opens the trading accounts admin screen.
func (d *AddAccountDialog) NavigateToAdmin() error {
	return d.s.Click(adminNavItem)
}

// Open clicks Add Account and waits for the dialog.
func (d *AddAccountDialog) Open() error {
	if err := d.s.Click(addAccountButton); err != nil {
		return err
	}
	return d.s.WaitVisible(accountDialog)
}

// SelectExchange picks the venue from the combobox. An exchange the dialog
// does not offer is rejected before any UI interaction.
func (d *AddAccountDialog) SelectExchange(e Exchange) error {
	option := exchangeOption(e)
	if option == "" {
		return fmt.Errorf("unsupported exchange: %q", e)
	}
	if err := d.s.Click(exchangeCombobox); err != nil {
		return err
	}
	return d.s.Click(option)
}

// Fill selects the exchange and enters the credentials, clearing each field
// first. The test-mode switch is driven to the requested state rather than
// blindly clicked.
func (d *AddAccountDialog) Fill(e Exchange, creds AccountCredentials) error {
	if err := d.SelectExchange(e); err != nil {
		return err
	}

	placeholders := credentialPlaceholders(e)
	values := []string{creds.Name, creds.APIKey, creds.SecretKey, creds.Passphrase}
	for i, placeholder := range placeholders {
		sel := fmt.Sprintf(`input[placeholder='%s']`, placeholder)
		if err := d.s.Fill(sel, values[i]); err != nil {
			return err
		}
	}

	return d.s.SetToggle(testModeSwitch, creds.TestMode)
}

// Add runs the complete flow: fill, submit, and confirm the dialog closed.
func (d *AddAccountDialog) Add(e Exchange, creds AccountCredentials) error {
	if err := d.Fill(e, creds); err != nil {
		return err
	}
	if err := d.Submit(); err != nil {
		return err
	}
	return d.VerifyClosed()
}

// Submit clicks the dialog's submit button.
func (d *AddAccountDialog) Submit() error {
	return d.s.Click(dialogSubmit)
}

// VerifyClosed waits for the dialog to leave the DOM. The app closes it only
// after the account is accepted, so this doubles as the success check.
func (d *AddAccountDialog) VerifyClosed() error {
	return d.s.WaitGone(accountDialog, d.cfg.ElementTimeout())
}

// Close dismisses the dialog without submitting.
func (d *AddAccountDialog) Close() error {
	if err := d.s.Click(dialogClose); err != nil {
		return err
	}
	return d.VerifyClosed()
}

// IsOpen reports whether the dialog is currently showing.
func (d *AddAccountDialog) IsOpen() (bool, error) {
	return d.s.IsVisible(accountDialog)
}

// ModifyAccountName renames the account in an already-open modify dialog
// and submits.
func (d *AddAccountDialog) ModifyAccountName(newName string) error {
	if err := d.s.Fill(accountNameField, newName); err != nil {
		return err
	}
	if err := d.Submit(); err != nil {
		return err
	}
	return d.VerifyClosed()
}

// VerifyModifySucceeded waits for the success notification after a rename.
func (d *AddAccountDialog) VerifyModifySucceeded() error {
	sel := `//div[contains(@class,'notification')]//span[contains(text(),'successfully')]`
	if err := d.s.WaitVisibleFor(sel, 5*time.Second); err != nil {
		return fmt.Errorf("no success notification after modify: %w", err)
	}
	return nil
}
