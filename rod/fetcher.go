// Package rod fetches classification pages through a headless browser, for
// hosts that build their tables with JavaScript.
package rod

import (
	"context"
	"fmt"
	"time"

	"github.com/fwojciec/gridiron"
	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
)

// DefaultWaitTimeout bounds how long Fetch waits for the wait selector.
const DefaultWaitTimeout = 10 * time.Second

// Ensure Fetcher implements gridiron.Fetcher at compile time.
var _ gridiron.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves rendered HTML from URLs using Chrome browser automation.
// Fetcher is safe for concurrent use by multiple goroutines.
type Fetcher struct {
	browser      *rod.Browser
	launcher     *launcher.Launcher
	waitSelector string
	waitTimeout  time.Duration
}

// FetcherOption configures a Fetcher.
type FetcherOption func(*Fetcher)

// WithWaitSelector makes Fetch wait until an element matching selector is
// present before reading the page. Empty disables the wait.
func WithWaitSelector(selector string) FetcherOption {
	return func(f *Fetcher) {
		f.waitSelector = selector
	}
}

// WithWaitTimeout sets how long Fetch waits for the wait selector.
func WithWaitTimeout(d time.Duration) FetcherOption {
	return func(f *Fetcher) {
		f.waitTimeout = d
	}
}

// NewFetcher launches a headless Chrome browser. By default Fetch waits for
// a table element to appear. Close must be called when the Fetcher is no
// longer needed.
//
// Returns an error if Chrome/Chromium cannot be found or launched.
func NewFetcher(opts ...FetcherOption) (*Fetcher, error) {
	f := &Fetcher{waitSelector: "table", waitTimeout: DefaultWaitTimeout}
	for _, opt := range opts {
		opt(f)
	}

	l := launcher.New().Headless(true)
	u, err := l.Launch()
	if err != nil {
		return nil, fmt.Errorf("launching browser: %w", err)
	}

	browser := rod.New().ControlURL(u)
	if err := browser.Connect(); err != nil {
		l.Kill()
		return nil, fmt.Errorf("connecting to browser: %w", err)
	}

	f.browser = browser
	f.launcher = l
	return f, nil
}

// Fetch navigates to the URL and returns the rendered HTML. A page on which
// the wait selector never appears is still returned; it simply yields no
// tables to the parser.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	page, err := f.browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		return "", err
	}
	defer page.Close()

	page = page.Context(ctx)

	if err := page.Navigate(url); err != nil {
		return "", err
	}
	if err := page.WaitLoad(); err != nil {
		return "", err
	}

	if f.waitSelector != "" {
		if _, err := page.Timeout(f.waitTimeout).Element(f.waitSelector); err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return "", ctxErr
			}
		}
	}

	return page.HTML()
}

// LauncherPID returns the PID of the launched browser process.
func (f *Fetcher) LauncherPID() int {
	return f.launcher.PID()
}

// Close releases browser resources and terminates the browser process.
func (f *Fetcher) Close() error {
	err := f.browser.Close()
	f.launcher.Kill()
	return err
}
