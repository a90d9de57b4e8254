// testcontext_test.go - Shared UI test context and helpers for the GoTrade suite.
// This provides UITestContext and helper functions used by all UI tests.

package ui

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/NehaShanbhag53/qa-assessment-neha-shanbhag/internal/browser"
	"github.com/NehaShanbhag53/qa-assessment-neha-shanbhag/internal/common"
	"github.com/NehaShanbhag53/qa-assessment-neha-shanbhag/internal/pages"
)

// UITestContext holds shared state for UI tests: the loaded config, the
// browser session, a per-test results directory and a test log file.
type UITestContext struct {
	T       *testing.T
	Cfg     *common.Config
	Session *browser.Session

	ResultsDir string
	RunID      string

	// Page objects, constructed once per context.
	Login         *pages.LoginPage
	AddAccount    *pages.AddAccountDialog
	AccountTable  *pages.AccountTablePage
	Trade         *pages.TradePage
	WorkingOrders *pages.WorkingOrdersPage
	OrderHistory  *pages.OrderHistoryPage
	Settings      *pages.SettingsPage
	GoMarket      *pages.GoMarketPage

	testLog       *os.File
	cleanup       []func()
	screenshotNum int
}

// NewUITestContext creates the test environment: results directory, test log,
// and a fresh browser session. Tests that cannot reach the target are skipped
// in TestMain before this runs.
func NewUITestContext(t *testing.T) *UITestContext {
	requireTarget(t)

	cfg := suiteConfig
	runID := uuid.NewString()[:8]
	timestamp := time.Now().Format("20060102-150405")
	resultsDir := filepath.Join(cfg.Output.ResultsBaseDir,
		fmt.Sprintf("%s-%s-%s", t.Name(), timestamp, runID))
	if err := os.MkdirAll(resultsDir, 0755); err != nil {
		t.Fatalf("Failed to create results directory: %v", err)
	}

	testLog, err := os.Create(filepath.Join(resultsDir, "test.log"))
	if err != nil {
		t.Fatalf("Failed to create test log: %v", err)
	}

	ctx, cancelTimeout := context.WithTimeout(context.Background(), cfg.TestTimeout())
	session, err := browser.NewSession(ctx, cfg)
	if err != nil {
		cancelTimeout()
		testLog.Close()
		t.Fatalf("Failed to launch browser: %v", err)
	}

	utc := &UITestContext{
		T:          t,
		Cfg:        cfg,
		Session:    session,
		ResultsDir: resultsDir,
		RunID:      runID,
		testLog:    testLog,

		Login:         pages.NewLoginPage(session, cfg),
		AddAccount:    pages.NewAddAccountDialog(session, cfg),
		AccountTable:  pages.NewAccountTablePage(session, cfg),
		Trade:         pages.NewTradePage(session, cfg),
		WorkingOrders: pages.NewWorkingOrdersPage(session, cfg),
		OrderHistory:  pages.NewOrderHistoryPage(session, cfg),
		Settings:      pages.NewSettingsPage(session, cfg),
		GoMarket:      pages.NewGoMarketPage(session, cfg),
	}

	// Cleanup in reverse order (LIFO).
	utc.cleanup = append(utc.cleanup, func() { testLog.Close() })
	utc.cleanup = append(utc.cleanup, cancelTimeout)
	utc.cleanup = append(utc.cleanup, session.Close)

	return utc
}

// Cleanup releases all resources. Call this with defer.
func (utc *UITestContext) Cleanup() {
	if utc.T.Failed() {
		utc.Log("=== TEST RESULT: FAIL ===")
		utc.Screenshot("failure")
	} else {
		utc.Log("=== TEST RESULT: PASS ===")
	}
	for i := len(utc.cleanup) - 1; i >= 0; i-- {
		utc.cleanup[i]()
	}
}

// Log writes a message to the test log and the test output.
func (utc *UITestContext) Log(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintf(utc.testLog, "[%s] %s\n", time.Now().Format("15:04:05.000"), msg)
	utc.T.Log(msg)
}

// Screenshot captures the page into the results dir with a sequential number
// prefix. Failures are logged, not fatal.
func (utc *UITestContext) Screenshot(name string) {
	utc.screenshotNum++
	fullName := fmt.Sprintf("%02d_%s", utc.screenshotNum, name)
	if err := utc.Session.Screenshot(utc.ResultsDir, fullName); err != nil {
		utc.Log("Warning: screenshot %s failed: %v", fullName, err)
	}
}

// SignIn opens the login page and signs in with the configured credentials,
// skipping the test when none are set.
func (utc *UITestContext) SignIn() {
	if utc.Cfg.Target.Email == "" || utc.Cfg.Target.Password == "" {
		utc.T.Skip("GOTRADE_EMAIL / GOTRADE_PASSWORD not set")
	}
	utc.Log("Signing in as %s", utc.Cfg.Target.Email)
	if err := utc.Login.Open(); err != nil {
		utc.T.Fatalf("Failed to open login page: %v", err)
	}
	if err := utc.Login.Login(utc.Cfg.Target.Email, utc.Cfg.Target.Password); err != nil {
		utc.Screenshot("login_failed")
		utc.T.Fatalf("Login failed: %v", err)
	}
	utc.Screenshot("signed_in")
}

// OpenTrade signs in and navigates to the GoTrade screen.
func (utc *UITestContext) OpenTrade() {
	utc.SignIn()
	if err := utc.Trade.Open(); err != nil {
		utc.T.Fatalf("Failed to open trade screen: %v", err)
	}
	utc.Screenshot("trade_screen")
}

// UniqueName appends the run id to a base name so repeat runs against the
// same deployment don't collide.
func (utc *UITestContext) UniqueName(base string) string {
	return fmt.Sprintf("%s %s", base, utc.RunID)
}
