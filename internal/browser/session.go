// Package browser wraps chromedp with the small set of scoped operations the
// page objects need: navigation, clicks, typed input, toggles, text and HTML
// extraction, screenshots and keyboard shortcuts. Actions are paced by a rate
// limiter instead of fixed sleeps so tests run as fast as the app allows.
package browser

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/chromedp/cdproto/input"
	"github.com/chromedp/cdproto/runtime"
	"github.com/chromedp/chromedp"
	"golang.org/x/time/rate"

	"github.com/NehaShanbhag53/qa-assessment-neha-shanbhag/internal/common"
)

// Session is one Chrome instance bound to a test. Not safe for concurrent
// use; each test gets its own.
type Session struct {
	ctx     context.Context
	cfg     *common.Config
	limiter *rate.Limiter
	cleanup []func()

	mu            sync.Mutex
	consoleErrors []string
}

// NewSession launches headless Chrome configured per cfg and begins capturing
// console errors for later assertion.
func NewSession(parent context.Context, cfg *common.Config) (*Session, error) {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", cfg.Browser.Headless),
		chromedp.Flag("disable-gpu", true),
		chromedp.WindowSize(cfg.Browser.WindowWidth, cfg.Browser.WindowHeight),
	)
	allocCtx, cancelAlloc := chromedp.NewExecAllocator(parent, opts...)
	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx)

	s := &Session{
		ctx:     browserCtx,
		cfg:     cfg,
		limiter: rate.NewLimiter(rate.Every(cfg.ActionInterval()), 1),
	}
	s.cleanup = append(s.cleanup, cancelAlloc, cancelBrowser, func() {
		if err := chromedp.Cancel(browserCtx); err != nil {
			common.GetLogger().Warn().Err(err).Msg("browser cancel returned error")
		}
	})

	chromedp.ListenTarget(browserCtx, func(ev interface{}) {
		switch e := ev.(type) {
		case *runtime.EventConsoleAPICalled:
			if e.Type != runtime.APITypeError {
				return
			}
			parts := make([]string, 0, len(e.Args))
			for _, arg := range e.Args {
				if arg.Value != nil {
					parts = append(parts, string(arg.Value))
				} else if arg.Description != "" {
					parts = append(parts, arg.Description)
				}
			}
			s.recordConsoleError(strings.Join(parts, " "))
		case *runtime.EventExceptionThrown:
			s.recordConsoleError(e.ExceptionDetails.Error())
		}
	})

	// Force a known viewport regardless of window chrome.
	if err := chromedp.Run(browserCtx,
		chromedp.EmulateViewport(int64(cfg.Browser.WindowWidth), int64(cfg.Browser.WindowHeight)),
	); err != nil {
		s.Close()
		return nil, fmt.Errorf("launching browser: %w", err)
	}
	return s, nil
}

// Close tears the browser down. Safe to defer immediately after NewSession.
func (s *Session) Close() {
	for i := len(s.cleanup) - 1; i >= 0; i-- {
		s.cleanup[i]()
	}
	s.cleanup = nil
}

// Context exposes the underlying chromedp context for callers composing their
// own action lists.
func (s *Session) Context() context.Context {
	return s.ctx
}

func (s *Session) recordConsoleError(msg string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.consoleErrors = append(s.consoleErrors, msg)
}

// ConsoleErrors returns the console errors captured so far.
func (s *Session) ConsoleErrors() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.consoleErrors))
	copy(out, s.consoleErrors)
	return out
}

// ResetConsoleErrors clears captured console errors, typically after
// navigation to scope assertions to one page.
func (s *Session) ResetConsoleErrors() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.consoleErrors = nil
}

// Run executes chromedp actions after waiting out the action pacing interval.
func (s *Session) Run(actions ...chromedp.Action) error {
	if err := s.limiter.Wait(s.ctx); err != nil {
		return fmt.Errorf("action pacing interrupted: %w", err)
	}
	return chromedp.Run(s.ctx, actions...)
}

// Navigate loads a URL and waits for the document to be interactive.
func (s *Session) Navigate(url string) error {
	ctx, cancel := context.WithTimeout(s.ctx, s.cfg.NavigationTimeout())
	defer cancel()
	if err := chromedp.Run(ctx,
		chromedp.Navigate(url),
		chromedp.WaitReady("body", chromedp.BySearch),
	); err != nil {
		return fmt.Errorf("navigating to %s: %w", url, err)
	}
	return nil
}

// CurrentURL returns the page's current location.
func (s *Session) CurrentURL() (string, error) {
	var url string
	if err := s.Run(chromedp.Location(&url)); err != nil {
		return "", fmt.Errorf("reading location: %w", err)
	}
	return url, nil
}

// Click waits for the element and clicks it.
func (s *Session) Click(selector string) error {
	ctx, cancel := context.WithTimeout(s.ctx, s.cfg.ElementTimeout())
	defer cancel()
	if err := s.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("action pacing interrupted: %w", err)
	}
	if err := chromedp.Run(ctx,
		chromedp.WaitVisible(selector, chromedp.BySearch),
		chromedp.Click(selector, chromedp.BySearch),
	); err != nil {
		return fmt.Errorf("clicking %s: %w", selector, err)
	}
	return nil
}

// ClickIfPresent clicks the element if it is currently on the page and
// reports whether it did. Used for best-effort dismissal of optional popups.
func (s *Session) ClickIfPresent(selector string, within time.Duration) bool {
	ctx, cancel := context.WithTimeout(s.ctx, within)
	defer cancel()
	err := chromedp.Run(ctx,
		chromedp.WaitVisible(selector, chromedp.BySearch),
		chromedp.Click(selector, chromedp.BySearch),
	)
	return err == nil
}

// Fill clears a field and types the value into it.
func (s *Session) Fill(selector, value string) error {
	ctx, cancel := context.WithTimeout(s.ctx, s.cfg.ElementTimeout())
	defer cancel()
	if err := s.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("action pacing interrupted: %w", err)
	}
	if err := chromedp.Run(ctx,
		chromedp.WaitVisible(selector, chromedp.BySearch),
		chromedp.Clear(selector, chromedp.BySearch),
		chromedp.SendKeys(selector, value, chromedp.BySearch),
	); err != nil {
		return fmt.Errorf("filling %s: %w", selector, err)
	}
	return nil
}

// SelectOption picks an option from a native <select> by its visible text.
func (s *Session) SelectOption(selector, option string) error {
	ctx, cancel := context.WithTimeout(s.ctx, s.cfg.ElementTimeout())
	defer cancel()
	if err := chromedp.Run(ctx,
		chromedp.WaitVisible(selector, chromedp.BySearch),
		chromedp.SendKeys(selector, option, chromedp.BySearch),
	); err != nil {
		return fmt.Errorf("selecting %q in %s: %w", option, selector, err)
	}
	return nil
}

// Text returns the trimmed text content of the first matching element.
func (s *Session) Text(selector string) (string, error) {
	ctx, cancel := context.WithTimeout(s.ctx, s.cfg.ElementTimeout())
	defer cancel()
	var text string
	if err := chromedp.Run(ctx,
		chromedp.WaitVisible(selector, chromedp.BySearch),
		chromedp.Text(selector, &text, chromedp.BySearch),
	); err != nil {
		return "", fmt.Errorf("reading text of %s: %w", selector, err)
	}
	return strings.TrimSpace(text), nil
}

// Value returns the current value of an input element.
func (s *Session) Value(selector string) (string, error) {
	ctx, cancel := context.WithTimeout(s.ctx, s.cfg.ElementTimeout())
	defer cancel()
	var value string
	if err := chromedp.Run(ctx,
		chromedp.WaitVisible(selector, chromedp.BySearch),
		chromedp.Value(selector, &value, chromedp.BySearch),
	); err != nil {
		return "", fmt.Errorf("reading value of %s: %w", selector, err)
	}
	return value, nil
}

// Attribute returns the named attribute of the first matching element. The
// bool reports whether the attribute exists.
func (s *Session) Attribute(selector, name string) (string, bool, error) {
	ctx, cancel := context.WithTimeout(s.ctx, s.cfg.ElementTimeout())
	defer cancel()
	var value string
	var ok bool
	if err := chromedp.Run(ctx,
		chromedp.WaitVisible(selector, chromedp.BySearch),
		chromedp.AttributeValue(selector, name, &value, &ok, chromedp.BySearch),
	); err != nil {
		return "", false, fmt.Errorf("reading %s of %s: %w", name, selector, err)
	}
	return value, ok, nil
}

// jsQueryAll resolves a selector inside the page. Selectors starting with
// "//" or "(" are evaluated as XPath, everything else as CSS, mirroring what
// the chromedp BySearch option accepts.
const jsQueryAll = `function __q(sel) {
	if (sel.startsWith("//") || sel.startsWith("(")) {
		const it = document.evaluate(sel, document, null, XPathResult.ORDERED_NODE_SNAPSHOT_TYPE, null);
		const out = [];
		for (let i = 0; i < it.snapshotLength; i++) out.push(it.snapshotItem(i));
		return out;
	}
	return Array.from(document.querySelectorAll(sel));
}`

// Count returns how many elements currently match the selector, without
// waiting for any to appear.
func (s *Session) Count(selector string) (int, error) {
	var n int
	if err := s.Run(chromedp.Evaluate(
		fmt.Sprintf(`(() => { %s; return __q(%q).length; })()`, jsQueryAll, selector), &n,
	)); err != nil {
		return 0, fmt.Errorf("counting %s: %w", selector, err)
	}
	return n, nil
}

// IsVisible reports whether the selector is visible right now.
func (s *Session) IsVisible(selector string) (bool, error) {
	var visible bool
	err := s.Run(chromedp.Evaluate(fmt.Sprintf(`(() => {
		%s;
		const el = __q(%q)[0];
		if (!el) return false;
		const r = el.getBoundingClientRect();
		return r.width > 0 && r.height > 0;
	})()`, jsQueryAll, selector), &visible))
	if err != nil {
		return false, fmt.Errorf("checking visibility of %s: %w", selector, err)
	}
	return visible, nil
}

// OuterHTML returns the outerHTML of the first matching element.
func (s *Session) OuterHTML(selector string) (string, error) {
	ctx, cancel := context.WithTimeout(s.ctx, s.cfg.ElementTimeout())
	defer cancel()
	var html string
	if err := chromedp.Run(ctx,
		chromedp.WaitReady(selector, chromedp.BySearch),
		chromedp.OuterHTML(selector, &html, chromedp.BySearch),
	); err != nil {
		return "", fmt.Errorf("reading HTML of %s: %w", selector, err)
	}
	return html, nil
}

// OuterHTMLAll returns the outerHTML of every matching element, in document
// order. An empty slice is not an error; tables legitimately render zero rows.
func (s *Session) OuterHTMLAll(selector string) ([]string, error) {
	var fragments []string
	if err := s.Run(chromedp.Evaluate(fmt.Sprintf(
		`(() => { %s; return __q(%q).map(el => el.outerHTML); })()`, jsQueryAll, selector,
	), &fragments)); err != nil {
		return nil, fmt.Errorf("reading HTML of %s: %w", selector, err)
	}
	return fragments, nil
}

// WaitVisible blocks until the selector is visible or the element timeout
// elapses.
func (s *Session) WaitVisible(selector string) error {
	return s.WaitVisibleFor(selector, s.cfg.ElementTimeout())
}

// WaitVisibleFor is WaitVisible with an explicit deadline.
func (s *Session) WaitVisibleFor(selector string, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(s.ctx, timeout)
	defer cancel()
	if err := chromedp.Run(ctx, chromedp.WaitVisible(selector, chromedp.BySearch)); err != nil {
		return fmt.Errorf("waiting for %s: %w", selector, err)
	}
	return nil
}

// SetToggle drives a switch control to the requested state. It reads the
// current state first so re-running a test against dirty app state cannot
// flip the toggle the wrong way.
func (s *Session) SetToggle(selector string, on bool) error {
	state, err := s.toggleState(selector)
	if err != nil {
		return err
	}
	if state == on {
		return nil
	}
	if err := s.Click(selector); err != nil {
		return err
	}
	state, err = s.toggleState(selector)
	if err != nil {
		return err
	}
	if state != on {
		return fmt.Errorf("toggle %s did not reach state %v", selector, on)
	}
	return nil
}

// ToggleState reads whether a switch control is currently on.
func (s *Session) ToggleState(selector string) (bool, error) {
	return s.toggleState(selector)
}

func (s *Session) toggleState(selector string) (bool, error) {
	var on bool
	err := s.Run(chromedp.Evaluate(fmt.Sprintf(`(() => {
		%s;
		const el = __q(%q)[0];
		if (!el) throw new Error("toggle not found");
		if (el.hasAttribute("aria-checked")) return el.getAttribute("aria-checked") === "true";
		if (el.hasAttribute("data-state")) return el.getAttribute("data-state") === "checked";
		return !!el.checked;
	})()`, jsQueryAll, selector), &on))
	if err != nil {
		return false, fmt.Errorf("reading toggle %s: %w", selector, err)
	}
	return on, nil
}

// PressAlt sends an Alt+key chord to the page.
func (s *Session) PressAlt(key string) error {
	if err := s.Run(chromedp.KeyEvent(key, chromedp.KeyModifiers(input.ModifierAlt))); err != nil {
		return fmt.Errorf("pressing Alt+%s: %w", key, err)
	}
	return nil
}

// Screenshot captures the full page into dir under name.png.
func (s *Session) Screenshot(dir, name string) error {
	var buf []byte
	if err := chromedp.Run(s.ctx, chromedp.CaptureScreenshot(&buf)); err != nil {
		return fmt.Errorf("capturing screenshot %s: %w", name, err)
	}
	path := filepath.Join(dir, name+".png")
	if err := os.WriteFile(path, buf, 0644); err != nil {
		return fmt.Errorf("writing screenshot %s: %w", path, err)
	}
	return nil
}
