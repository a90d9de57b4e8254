package pages

import (
	"fmt"
	"strings"

	"github.com/NehaShanbhag53/qa-assessment-neha-shanbhag/internal/browser"
	"github.com/NehaShanbhag53/qa-assessment-neha-shanbhag/internal/common"
)

// ChartType selects the GoMarket chart rendering.
type ChartType string

const (
	ChartCandle ChartType = "Candle"
	ChartLine   ChartType = "Line"
)

// Timeframes the chart offers.
var Timeframes = []string{"1m", "5m", "15m", "1h"}

// GoMarket page locators.
const (
	marketChartCanvas    = `canvas`
	marketSymbolDropdown = `//button[@data-testid='symbol-dropdown']`
	marketDiscoveryToggle = `//button[@role='switch'][ancestor::*[contains(.,'Discovery Mode')]]`
	marketSymbolSearch   = `input[placeholder*='symbol']`
	marketPriceTab       = `//button[normalize-space()='Price']`
	marketTradesTab      = `//button[normalize-space()='Trades']`
	marketAddSymbolBtn   = `//button[normalize-space()='+']`
	marketModal          = `//div[contains(.,'Add Symbol')][@role='dialog']`
	marketModalSearch    = `//div[@role='dialog']//input[contains(@placeholder,'earch')]`
	marketModalClose     = `//div[@role='dialog']//button[@aria-label='Close']`
	marketNextPage       = `//button[normalize-space()='Next']`
	marketPrevPage       = `//button[normalize-space()='Previous']`
	marketPageInfo       = `//*[contains(normalize-space(),'Page ') and contains(normalize-space(),' of ')]`
)

// GoMarketPage drives the GoMarket chart screen: chart type, timeframes,
// moving-average overlays, discovery mode and the symbol comparison modal.
type GoMarketPage struct {
	s   *browser.Session
	cfg *common.Config
}

func NewGoMarketPage(s *browser.Session, cfg *common.Config) *GoMarketPage {
	return &GoMarketPage{s: s, cfg: cfg}
}

// Open navigates to /gomarket and waits for the chart canvas.
func (p *GoMarketPage) Open() error {
	if err := p.s.Navigate(p.cfg.Target.BaseURL + "/gomarket"); err != nil {
		return err
	}
	return p.WaitForChart()
}

// WaitForChart blocks until the chart canvas renders.
func (p *GoMarketPage) WaitForChart() error {
	return p.s.WaitVisible(marketChartCanvas)
}

// IsChartVisible reports whether the chart is on screen.
func (p *GoMarketPage) IsChartVisible() (bool, error) {
	return p.s.IsVisible(marketChartCanvas)
}

// SelectChartType switches between candle and line rendering.
func (p *GoMarketPage) SelectChartType(ct ChartType) error {
	switch ct {
	case ChartCandle, ChartLine:
		return p.s.Click(fmt.Sprintf(`//button[normalize-space()=%q]`, string(ct)))
	}
	return fmt.Errorf("unsupported chart type %q", ct)
}

// SelectTimeframe picks one of the offered candle timeframes.
func (p *GoMarketPage) SelectTimeframe(tf string) error {
	for _, known := range Timeframes {
		if tf == known {
			return p.s.Click(fmt.Sprintf(`//span[normalize-space()=%q]`, tf))
		}
	}
	return fmt.Errorf("unsupported timeframe %q", tf)
}

// SwitchToPriceTab shows the price panel.
func (p *GoMarketPage) SwitchToPriceTab() error {
	return p.s.Click(marketPriceTab)
}

// SwitchToTradesTab shows the trades panel.
func (p *GoMarketPage) SwitchToTradesTab() error {
	return p.s.Click(marketTradesTab)
}

// MovingAveragesVisible reports whether all four MA overlays render.
func (p *GoMarketPage) MovingAveragesVisible() (bool, error) {
	for _, ma := range []string{"MA5", "MA10", "MA20", "MA30"} {
		visible, err := p.s.IsVisible(fmt.Sprintf(`//*[normalize-space()=%q]`, ma))
		if err != nil {
			return false, err
		}
		if !visible {
			return false, nil
		}
	}
	return true, nil
}

// ToggleDiscoveryMode flips discovery mode.
func (p *GoMarketPage) ToggleDiscoveryMode() error {
	return p.s.Click(marketDiscoveryToggle)
}

// SearchSymbol types into the chart's symbol search.
func (p *GoMarketPage) SearchSymbol(symbol string) error {
	return p.s.Fill(marketSymbolSearch, symbol)
}

// IsSymbolVisible reports whether a comparison chip for the symbol renders.
func (p *GoMarketPage) IsSymbolVisible(symbol string) (bool, error) {
	return p.s.IsVisible(fmt.Sprintf(`//*[normalize-space()=%q]`, symbol))
}

// VisibleSymbols filters the candidates down to those currently rendered.
func (p *GoMarketPage) VisibleSymbols(candidates []string) ([]string, error) {
	var out []string
	for _, sym := range candidates {
		visible, err := p.IsSymbolVisible(sym)
		if err != nil {
			return nil, err
		}
		if visible {
			out = append(out, sym)
		}
	}
	return out, nil
}

// RemoveSymbol clicks the remove control on the symbol's comparison chip.
func (p *GoMarketPage) RemoveSymbol(symbol string) error {
	sel := fmt.Sprintf(`//*[normalize-space()=%q]/..//button`, symbol)
	return p.s.Click(sel)
}

// OpenAddSymbolModal opens the symbol picker.
func (p *GoMarketPage) OpenAddSymbolModal() error {
	if err := p.s.Click(marketAddSymbolBtn); err != nil {
		return err
	}
	return p.s.WaitVisible(marketModal)
}

// IsModalVisible reports whether the picker is showing.
func (p *GoMarketPage) IsModalVisible() (bool, error) {
	return p.s.IsVisible(marketModal)
}

// SelectExchangeTab switches the picker to the named venue tab.
func (p *GoMarketPage) SelectExchangeTab(exchange string) error {
	sel := fmt.Sprintf(`//div[@role='dialog']//button[normalize-space()=%q]`,
		strings.ToUpper(exchange))
	return p.s.Click(sel)
}

// SearchInModal types into the picker's search field.
func (p *GoMarketPage) SearchInModal(term string) error {
	return p.s.Fill(marketModalSearch, term)
}

// SelectSymbolFromModal clicks a symbol entry inside the picker.
func (p *GoMarketPage) SelectSymbolFromModal(symbol string) error {
	sel := fmt.Sprintf(`//div[@role='dialog']//*[normalize-space()=%q]`, symbol)
	return p.s.Click(sel)
}

// CloseModal dismisses the picker.
func (p *GoMarketPage) CloseModal() error {
	if err := p.s.Click(marketModalClose); err != nil {
		return err
	}
	return p.s.WaitGone(marketModal, p.cfg.ElementTimeout())
}

// AddSymbol opens the picker, picks the symbol on the venue tab, and closes
// the picker.
func (p *GoMarketPage) AddSymbol(exchange, symbol string) error {
	if err := p.OpenAddSymbolModal(); err != nil {
		return err
	}
	if err := p.SelectExchangeTab(exchange); err != nil {
		return err
	}
	if err := p.SelectSymbolFromModal(symbol); err != nil {
		return err
	}
	return p.CloseModal()
}

// NextPage advances the picker's symbol list when possible.
func (p *GoMarketPage) NextPage() error {
	return p.s.Click(marketNextPage)
}

// PreviousPage pages the picker's symbol list back.
func (p *GoMarketPage) PreviousPage() error {
	return p.s.Click(marketPrevPage)
}

// PageInfo reads the "Page X of Y" label, "" when pagination is absent.
func (p *GoMarketPage) PageInfo() string {
	text, err := p.s.Text(marketPageInfo)
	if err != nil {
		return ""
	}
	return text
}
