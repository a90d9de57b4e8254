package pages

import (
	"fmt"
	"strings"

	"github.com/NehaShanbhag53/qa-assessment-neha-shanbhag/internal/browser"
	"github.com/NehaShanbhag53/qa-assessment-neha-shanbhag/internal/common"
)

// Settings page locators.
const (
	settingsNavItem     = `//span[normalize-space()='Settings']`
	shortcutsTab        = `//button[normalize-space()='Shortcuts']`
	soundsTab           = `//button[normalize-space()='Sounds']`
	navigationAccordion = `//button[contains(@aria-controls,'navigation')]`
	tradingAccordion    = `//button[contains(@aria-controls,'trading')]`
	shortcutsToggle     = `//button[@role='switch']`
	shortcutsActiveNote = `//p[@class='text-muted-foreground text-sm']`
	shortcutFocusArea   = `//div[@class='p-4 py-1 pb-6 pt-2']`
)

// Shortcut is one Alt+key navigation binding.
type Shortcut struct {
	Label string
	Key   string
	Path  string
}

// Shortcuts lists the keyboard navigation bindings the settings page
// documents.
var Shortcuts = []Shortcut{
	{Label: "GoOps", Key: "J", Path: "/goops"},
	{Label: "GoRisk", Key: "R", Path: "/gorisk"},
	{Label: "GoCredit", Key: "C", Path: "/gocredit"},
	{Label: "GoMarket", Key: "M", Path: "/gomarket"},
	{Label: "Application Settings", Key: "S", Path: "/settings"},
	{Label: "Admin", Key: "A", Path: "/admin"},
	{Label: "GoTrade and start a new trade", Key: "T", Path: "/gotrade"},
	{Label: "Post Trade Analytics", Key: "P", Path: "/post-trade-analytics"},
}

// SettingsPage drives the application settings screen, in particular the
// keyboard shortcuts section.
type SettingsPage struct {
	s   *browser.Session
	cfg *common.Config
}

func NewSettingsPage(s *browser.Session, cfg *common.Config) *SettingsPage {
	return &SettingsPage{s: s, cfg: cfg}
}

// Open navigates to settings from the sidebar.
func (p *SettingsPage) Open() error {
	return p.s.Click(settingsNavItem)
}

// OpenShortcutsTab switches the settings screen to the Shortcuts section.
func (p *SettingsPage) OpenShortcutsTab() error {
	return p.s.Click(shortcutsTab)
}

// OpenSoundsTab switches to the Sounds section.
func (p *SettingsPage) OpenSoundsTab() error {
	return p.s.Click(soundsTab)
}

// ExpandNavigation opens the navigation shortcuts accordion.
func (p *SettingsPage) ExpandNavigation() error {
	return p.s.Click(navigationAccordion)
}

// ExpandTrading opens the trading shortcuts accordion.
func (p *SettingsPage) ExpandTrading() error {
	return p.s.Click(tradingAccordion)
}

// EnableShortcuts drives the keyboard shortcuts switch on, clicking only if
// it is currently off.
func (p *SettingsPage) EnableShortcuts() error {
	return p.s.SetToggle(shortcutsToggle, true)
}

// DisableShortcuts drives the switch off.
func (p *SettingsPage) DisableShortcuts() error {
	return p.s.SetToggle(shortcutsToggle, false)
}

// ShortcutsEnabled reads the switch state.
func (p *SettingsPage) ShortcutsEnabled() (bool, error) {
	return p.s.ToggleState(shortcutsToggle)
}

// VerifyShortcutsActiveMessage checks the confirmation line under the
// toggle.
func (p *SettingsPage) VerifyShortcutsActiveMessage() error {
	text, err := p.s.Text(shortcutsActiveNote)
	if err != nil {
		return err
	}
	if !strings.Contains(text, "Keyboard shortcuts are active") {
		return fmt.Errorf("shortcut note reads %q, expected the active confirmation", text)
	}
	return nil
}

// IsShortcutListed reports whether the named shortcut row renders.
func (p *SettingsPage) IsShortcutListed(label string) (bool, error) {
	sel := fmt.Sprintf(`//div[normalize-space()=%q]`, label)
	return p.s.IsVisible(sel)
}

// Press fires the shortcut's Alt chord. The page body is clicked first so
// the chord lands on the document, not a focused form control.
func (p *SettingsPage) Press(sc Shortcut) error {
	p.s.ClickIfPresent(shortcutFocusArea, p.cfg.ElementTimeout())
	return p.s.PressAlt(sc.Key)
}

// VerifyNavigation polls until the location lands on the shortcut's path.
func (p *SettingsPage) VerifyNavigation(sc Shortcut) error {
	expr := fmt.Sprintf(`window.location.pathname === %q`, sc.Path)
	return p.s.PollUntil(expr, fmt.Sprintf("navigation to %s", sc.Path), p.cfg.ElementTimeout())
}

// PressAndVerify fires the chord and confirms the app navigated.
func (p *SettingsPage) PressAndVerify(sc Shortcut) error {
	if err := p.Press(sc); err != nil {
		return err
	}
	return p.VerifyNavigation(sc)
}

// VerifyHeading checks the current page's h1 contains the text, used after
// shortcut navigation.
func (p *SettingsPage) VerifyHeading(heading string) error {
	sel := fmt.Sprintf(`//h1[contains(text(),%q)]`, heading)
	return p.s.WaitVisible(sel)
}
