// Package browser owns the lifecycle of a headless rendering context and
// exposes the page primitives the execution engine consumes. One Session is
// acquired per run, used exclusively by that run, and released on every exit
// path.
package browser

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/playwright-community/playwright-go"

	"github.com/kuitang/portalcheck/internal/errs"
	"github.com/kuitang/portalcheck/internal/obs"
)

// Viewport is a fixed page size in CSS pixels.
type Viewport struct {
	Width  int
	Height int
}

// Config controls session acquisition. Construction is explicit: nothing in
// this package reads the process environment.
type Config struct {
	// Headed opens a visible browser window. The zero value is headless,
	// which is the default for unattended runs.
	Headed   bool
	Viewport Viewport
}

// DefaultConfig is the configuration used when fields are left zero.
var DefaultConfig = Config{
	Viewport: Viewport{Width: 1280, Height: 720},
}

func (c Config) withDefaults() Config {
	if c.Viewport.Width <= 0 {
		c.Viewport.Width = DefaultConfig.Viewport.Width
	}
	if c.Viewport.Height <= 0 {
		c.Viewport.Height = DefaultConfig.Viewport.Height
	}
	return c
}

// Session is a live browser process plus one page context.
type Session struct {
	pw      *playwright.Playwright
	browser playwright.Browser
	page    playwright.Page

	releaseOnce sync.Once
}

// Acquire launches an isolated Chromium process and opens a single page with
// the configured viewport. The caller must Release the session when done.
func Acquire(cfg Config) (*Session, error) {
	cfg = cfg.withDefaults()
	log := obs.Pkg("browser")

	pw, err := playwright.Run()
	if err != nil {
		return nil, errs.Wrap(errs.SessionFatal, "start playwright driver", err)
	}

	b, err := pw.Chromium.Launch(playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(!cfg.Headed),
	})
	if err != nil {
		_ = pw.Stop()
		return nil, errs.Wrap(errs.SessionFatal, "launch chromium", err)
	}

	page, err := b.NewPage(playwright.BrowserNewPageOptions{
		Viewport: &playwright.Size{
			Width:  cfg.Viewport.Width,
			Height: cfg.Viewport.Height,
		},
	})
	if err != nil {
		_ = b.Close()
		_ = pw.Stop()
		return nil, errs.Wrap(errs.SessionFatal, "open page", err)
	}

	log.Info("session acquired",
		"headless", !cfg.Headed,
		"viewport_width", cfg.Viewport.Width,
		"viewport_height", cfg.Viewport.Height)

	return &Session{pw: pw, browser: b, page: page}, nil
}

// Release tears down the page, the browser process, and the driver.
// Safe to call more than once; only the first call does work.
func (s *Session) Release() {
	s.releaseOnce.Do(func() {
		log := obs.Pkg("browser")
		if s.page != nil {
			if err := s.page.Close(); err != nil {
				log.Warn("close page", "error", err)
			}
		}
		if s.browser != nil {
			if err := s.browser.Close(); err != nil {
				log.Warn("close browser", "error", err)
			}
		}
		if s.pw != nil {
			if err := s.pw.Stop(); err != nil {
				log.Warn("stop playwright driver", "error", err)
			}
		}
		log.Info("session released")
	})
}

// Navigate loads the document and suspends until the DOM is parsed.
// Timeout and network failures surface as navigation errors; a dead browser
// process surfaces as a session-fatal error.
func (s *Session) Navigate(url string, timeout time.Duration) error {
	_, err := s.page.Goto(url, playwright.PageGotoOptions{
		WaitUntil: playwright.WaitUntilStateDomcontentloaded,
		Timeout:   playwright.Float(float64(timeout.Milliseconds())),
	})
	if err != nil {
		return s.classify(fmt.Sprintf("navigate to %s", url), err, errs.Navigation)
	}
	return nil
}

// Resolve reports whether the selector matches at least one element.
func (s *Session) Resolve(selector string) (bool, error) {
	count, err := s.page.Locator(selector).Count()
	if err != nil {
		return false, s.classify("resolve "+selector, err, errs.Internal)
	}
	return count > 0, nil
}

// ComputedStyle reads the computed value of a CSS property on the first
// element matching the selector.
func (s *Session) ComputedStyle(selector, property string) (string, error) {
	value, err := s.page.Locator(selector).First().Evaluate(
		"(el, prop) => getComputedStyle(el).getPropertyValue(prop)", property)
	if err != nil {
		return "", s.classify("read computed style of "+selector, err, errs.Internal)
	}
	text, ok := value.(string)
	if !ok {
		return "", errs.New(errs.Internal, fmt.Sprintf("computed style of %s is not a string", selector))
	}
	return text, nil
}

// TextContent reads the text content of the first matching element.
func (s *Session) TextContent(selector string) (string, error) {
	text, err := s.page.Locator(selector).First().TextContent()
	if err != nil {
		return "", s.classify("read text of "+selector, err, errs.Internal)
	}
	return text, nil
}

// Click clicks the first matching element.
func (s *Session) Click(selector string) error {
	if err := s.page.Locator(selector).First().Click(); err != nil {
		return s.classify("click "+selector, err, errs.Internal)
	}
	return nil
}

// Hover hovers the first matching element.
func (s *Session) Hover(selector string) error {
	if err := s.page.Locator(selector).First().Hover(); err != nil {
		return s.classify("hover "+selector, err, errs.Internal)
	}
	return nil
}

// Fill types a value into the first matching element.
func (s *Session) Fill(selector, value string) error {
	if err := s.page.Locator(selector).First().Fill(value); err != nil {
		return s.classify("fill "+selector, err, errs.Internal)
	}
	return nil
}

// Screenshot captures the current page as PNG bytes.
func (s *Session) Screenshot() ([]byte, error) {
	data, err := s.page.Screenshot()
	if err != nil {
		return nil, s.classify("capture screenshot", err, errs.Internal)
	}
	return data, nil
}

// classify wraps a driver error, upgrading it to session-fatal when the
// browser process itself is gone. Everything else keeps the provided
// scenario-local code.
func (s *Session) classify(op string, err error, code errs.Code) error {
	if s.browser != nil && !s.browser.IsConnected() {
		return errs.Wrap(errs.SessionFatal, "browser process lost during "+op, err)
	}
	if looksLikeCrash(err) {
		return errs.Wrap(errs.SessionFatal, "browser process lost during "+op, err)
	}
	return errs.Wrap(code, op+" failed", err)
}

func looksLikeCrash(err error) bool {
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "target closed") ||
		strings.Contains(msg, "browser has been closed") ||
		strings.Contains(msg, "connection closed")
}
