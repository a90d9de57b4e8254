package pages

import (
	"fmt"
	"strings"

	"github.com/NehaShanbhag53/qa-assessment-neha-shanbhag/internal/browser"
	"github.com/NehaShanbhag53/qa-assessment-neha-shanbhag/internal/common"
	"github.com/NehaShanbhag53/qa-assessment-neha-shanbhag/internal/orders"
)

// OrderType is the algorithm variant of a trade ticket.
type OrderType string

const (
	OrderTypeMarket    OrderType = "Market"
	OrderTypeLimit     OrderType = "Limit"
	OrderTypeTWAP      OrderType = "TWAP"
	OrderTypeMarketEdge OrderType = "Market-Edge"
	OrderTypeLimitEdge  OrderType = "Limit-Edge"
	OrderTypeTWAPEdge   OrderType = "TWAP-Edge"
)

// Trade ticket locators.
const (
	exchangeSelectorTrigger = `button[data-testid='exchange-selector-trigger']`
	exchangeSearchInput     = `input[placeholder*='Search by exchange']`
	exchangeResultRow       = `//div[@class='flex w-full items-center']`
	orderTypeMoreDropdown   = `div[data-testid='GOTRADE_ORDERTYPE_MORE']`
	symbolsDropdown         = `button[data-testid='symbols-dropdown']`
	symbolSearchInput       = `input[placeholder='Search symbol...']`
	quantityInput           = `input[data-testid='quantity']`
	priceInput              = `input[data-testid='price']`
	durationInput           = `input[data-testid='duration']`
	intervalInput           = `input[data-testid='interval']`
	decayInput              = `input[placeholder='Enter decay factor']`
	thresholdInput          = `input[placeholder='Enter threshold']`
	buyButton               = `button[data-testid='long-button']`
	sellButton              = `button[data-testid='short-button']`
	tradeButton             = `button[data-testid='trade-button']`

	navLabel = `//p[contains(@class,'header-nav')]`
)

func orderTypeOption(ot OrderType) string {
	switch ot {
	case OrderTypeMarket:
		return `div[data-testid='GOTRADE_ORDERTYPE_MARKET']`
	case OrderTypeLimit:
		return `div[data-testid='GOTRADE_ORDERTYPE_LIMIT']`
	case OrderTypeTWAP:
		return `div[data-testid='GOTRADE_ORDERTYPE_TWAP']`
	case OrderTypeMarketEdge, OrderTypeLimitEdge, OrderTypeTWAPEdge:
		// The Edge variants are picked from the ticket's tab strip.
		return fmt.Sprintf(`//span[normalize-space()=%q]`, string(ot))
	}
	return ""
}

// TradeRequest describes one order to place through a ticket. Zero-valued
// fields are skipped, matching what each variant's form renders: price for
// limit tickets, duration/interval/decay for TWAP, threshold for Edge.
type TradeRequest struct {
	Exchange  string
	OrderType OrderType
	Symbol    string
	Quantity  string
	Price     string
	Duration  string
	Interval  string
	Decay     string
	Threshold string
	Side      orders.Side
}

func (r TradeRequest) validate() error {
	if r.Side != orders.SideBuy && r.Side != orders.SideSell {
		return fmt.Errorf("invalid order side %q, must be %q or %q",
			r.Side, orders.SideBuy, orders.SideSell)
	}
	if r.OrderType != "" && orderTypeOption(r.OrderType) == "" {
		return fmt.Errorf("unsupported order type %q", r.OrderType)
	}
	return nil
}

// TradePage drives the GoTrade ticket pane.
type TradePage struct {
	s   *browser.Session
	cfg *common.Config
}

func NewTradePage(s *browser.Session, cfg *common.Config) *TradePage {
	return &TradePage{s: s, cfg: cfg}
}

// Open navigates to the trade screen and waits for the ticket.
func (p *TradePage) Open() error {
	if err := p.s.Navigate(p.cfg.TradeURL()); err != nil {
		return err
	}
	return p.s.WaitVisible(exchangeSelectorTrigger)
}

// SelectExchange searches the exchange selector and picks the first result.
func (p *TradePage) SelectExchange(name string) error {
	if err := p.s.Click(exchangeSelectorTrigger); err != nil {
		return err
	}
	if err := p.s.Fill(exchangeSearchInput, name); err != nil {
		return err
	}
	if err := p.s.Click(exchangeResultRow); err != nil {
		return fmt.Errorf("no exchange matched %q: %w", name, err)
	}
	// The ticket re-renders for the venue; wait for it to settle on the
	// quantity field rather than sleeping.
	return p.s.WaitVisible(quantityInput)
}

// SelectOrderType switches the ticket to the given algorithm variant.
func (p *TradePage) SelectOrderType(ot OrderType) error {
	option := orderTypeOption(ot)
	if option == "" {
		return fmt.Errorf("unsupported order type %q", ot)
	}
	switch ot {
	case OrderTypeMarketEdge, OrderTypeLimitEdge, OrderTypeTWAPEdge:
		return p.s.Click(option)
	default:
		if err := p.s.Click(orderTypeMoreDropdown); err != nil {
			return err
		}
		return p.s.Click(option)
	}
}

// SelectSymbol opens the symbols dropdown, searches, and picks the symbol by
// its option testid.
func (p *TradePage) SelectSymbol(symbol string) error {
	if err := p.s.Click(symbolsDropdown); err != nil {
		return err
	}
	if err := p.s.Fill(symbolSearchInput, symbol); err != nil {
		return err
	}
	option := fmt.Sprintf(`div[data-testid='symbol-option-%s']`, symbol)
	if err := p.s.Click(option); err != nil {
		return fmt.Errorf("symbol %q not offered: %w", symbol, err)
	}
	return nil
}

// SelectSide presses the buy or sell button. Side is validated by
// TradeRequest before this is reached, but direct callers get the same
// guard.
func (p *TradePage) SelectSide(side orders.Side) error {
	switch side {
	case orders.SideBuy:
		return p.s.Click(buyButton)
	case orders.SideSell:
		return p.s.Click(sellButton)
	}
	return fmt.Errorf("invalid order side %q, must be %q or %q",
		side, orders.SideBuy, orders.SideSell)
}

// Execute clicks the trade button.
func (p *TradePage) Execute() error {
	return p.s.Click(tradeButton)
}

// PlaceOrder runs the whole ticket flow for the request. The request is
// validated before the UI is touched; a bad side or order type never spends
// browser time.
func (p *TradePage) PlaceOrder(r TradeRequest) error {
	if err := r.validate(); err != nil {
		return err
	}
	if r.Exchange != "" {
		if err := p.SelectExchange(r.Exchange); err != nil {
			return err
		}
	}
	if r.OrderType != "" {
		if err := p.SelectOrderType(r.OrderType); err != nil {
			return err
		}
	}
	if r.Symbol != "" {
		if err := p.SelectSymbol(r.Symbol); err != nil {
			return err
		}
	}

	fields := []struct {
		selector string
		value    string
	}{
		{quantityInput, r.Quantity},
		{priceInput, r.Price},
		{durationInput, r.Duration},
		{intervalInput, r.Interval},
		{decayInput, r.Decay},
		{thresholdInput, r.Threshold},
	}
	for _, f := range fields {
		if f.value == "" {
			continue
		}
		if err := p.s.Fill(f.selector, f.value); err != nil {
			return err
		}
	}

	if err := p.SelectSide(r.Side); err != nil {
		return err
	}
	return p.Execute()
}

// NetAssetValue reads the NAV figure from the ticket header, "" when the
// header does not render one.
func (p *TradePage) NetAssetValue() string {
	text, err := p.s.Text(navLabel)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(text)
}
