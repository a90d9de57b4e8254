// Package pages holds the GoTrade page objects. Each page wraps its locators
// and the interactions a test needs, on top of the browser session. Locators
// follow what the app renders: data-testid where the app provides one, text
// XPath otherwise.
package pages

import (
	"fmt"
	"strings"
	"time"

	"github.com/NehaShanbhag53/qa-assessment-neha-shanbhag/internal/browser"
	"github.com/NehaShanbhag53/qa-assessment-neha-shanbhag/internal/common"
)

// Login page locators.
const (
	loginEmailInput     = `input[placeholder='Enter your email address']`
	loginPasswordInput  = `input[placeholder='Enter your password']`
	loginSubmitButton   = `button[type='submit']`
	loginErrorAlert     = `//div[@role='alert']/div`
	loginUserIDLabel    = `//span[@class='text-muted-foreground truncate']`
	loginValidationText = `//div[@class='text-sm [&_p]:leading-relaxed']`
	loginFieldError     = `//p[contains(@id,'-form-item-message')]`
	logoutMenuItem      = `//div[@role='menuitem']`

	welcomePopupText   = `//h2[contains(text(),'Welcome to GoTrade')]`
	welcomeGetStarted  = `//button[normalize-space()='Get Started']`
	welcomeCloseButton = `//span[@class='hover:text-primary text-base text-green-400']`
)

// LoginPage drives the /auth/login screen.
type LoginPage struct {
	s   *browser.Session
	cfg *common.Config
}

func NewLoginPage(s *browser.Session, cfg *common.Config) *LoginPage {
	return &LoginPage{s: s, cfg: cfg}
}

// Open navigates to the login screen and waits for the email field.
func (p *LoginPage) Open() error {
	if err := p.s.Navigate(p.cfg.LoginURL()); err != nil {
		return err
	}
	return p.s.WaitVisible(loginEmailInput)
}

// Submit fills the credential form and clicks the submit button without
// waiting for the outcome. Used by tests that assert on rejection.
func (p *LoginPage) Submit(email, password string) error {
	if email != "" {
		if err := p.s.Fill(loginEmailInput, email); err != nil {
			return err
		}
	}
	if password != "" {
		if err := p.s.Fill(loginPasswordInput, password); err != nil {
			return err
		}
	}
	return p.s.Click(loginSubmitButton)
}

// Login submits the credential form and waits for the post-login shell to
// render. The welcome popup, when the app shows one, is dismissed.
func (p *LoginPage) Login(email, password string) error {
	if err := p.Submit(email, password); err != nil {
		return err
	}
	if err := p.s.WaitVisibleFor(loginUserIDLabel, p.cfg.NavigationTimeout()); err != nil {
		return fmt.Errorf("login did not reach the application shell: %w", err)
	}
	p.DismissWelcome()
	return nil
}

// DismissWelcome closes the first-login welcome popup if it is showing.
// Best effort: absence is the common case on repeat logins.
func (p *LoginPage) DismissWelcome() {
	if p.s.ClickIfPresent(welcomeGetStarted, 3*time.Second) {
		return
	}
	p.s.ClickIfPresent(welcomeCloseButton, 2*time.Second)
}

// ErrorMessage returns the text of the login error alert, or "" when no
// alert appears within the element timeout.
func (p *LoginPage) ErrorMessage() string {
	text, err := p.s.Text(loginErrorAlert)
	if err != nil {
		return ""
	}
	return text
}

// VerifyErrorMessage fails unless the alert contains the expected text.
func (p *LoginPage) VerifyErrorMessage(expected string) error {
	text, err := p.s.Text(loginErrorAlert)
	if err != nil {
		return fmt.Errorf("error alert did not appear: %w", err)
	}
	if !strings.Contains(text, expected) {
		return fmt.Errorf("error alert reads %q, expected it to contain %q", text, expected)
	}
	return nil
}

// EmailValidationMessage returns the inline validation text shown for a bad
// email, "" when none renders.
func (p *LoginPage) EmailValidationMessage() string {
	text, err := p.s.Text(loginValidationText)
	if err != nil {
		return ""
	}
	return text
}

// FieldError returns the form-item error below an empty required field.
func (p *LoginPage) FieldError() string {
	text, err := p.s.Text(loginFieldError)
	if err != nil {
		return ""
	}
	return text
}

// Username returns the signed-in identity shown in the sidebar.
func (p *LoginPage) Username() (string, error) {
	return p.s.Text(loginUserIDLabel)
}

// Logout opens the user menu and signs out, waiting until the login form is
// back.
func (p *LoginPage) Logout() error {
	if err := p.s.Click(loginUserIDLabel); err != nil {
		return err
	}
	if err := p.s.Click(logoutMenuItem); err != nil {
		return err
	}
	if err := p.s.WaitVisibleFor(loginEmailInput, p.cfg.NavigationTimeout()); err != nil {
		return fmt.Errorf("logout did not return to the login screen: %w", err)
	}
	return nil
}
