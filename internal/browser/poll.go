package browser

import (
	"fmt"
	"time"

	"github.com/chromedp/chromedp"
)

const pollInterval = 500 * time.Millisecond

// PollUntil evaluates the JavaScript expression until it returns true or the
// timeout elapses. desc names the condition in the error.
func (s *Session) PollUntil(expr, desc string, timeout time.Duration) error {
	var ok bool
	err := chromedp.Run(s.ctx, chromedp.Poll(expr, &ok,
		chromedp.WithPollingTimeout(timeout),
		chromedp.WithPollingInterval(pollInterval),
	))
	if err != nil {
		return fmt.Errorf("waiting for %s (timeout %v): %w", desc, timeout, err)
	}
	return nil
}

// WaitGone blocks until no element matches the selector. The inverse of
// WaitVisible, used to confirm a cancelled order's row has been removed.
func (s *Session) WaitGone(selector string, timeout time.Duration) error {
	expr := fmt.Sprintf(`(() => { %s; return __q(%q).length === 0; })()`, jsQueryAll, selector)
	return s.PollUntil(expr, fmt.Sprintf("%s to disappear", selector), timeout)
}

// Retry runs check up to attempts times, sleeping delay between attempts. It
// returns true as soon as a check passes. A check error aborts immediately;
// exhausting attempts without a pass is not an error, the caller decides what
// a false result means.
func Retry(attempts int, delay time.Duration, check func() (bool, error)) (bool, error) {
	for i := 0; i < attempts; i++ {
		if i > 0 {
			time.Sleep(delay)
		}
		ok, err := check()
		if err != nil {
			return false, err
		}
		if ok {
			return true, nil
		}
	}
	return false, nil
}
