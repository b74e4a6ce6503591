// Package browser provides shared fixtures for end-to-end engine tests that
// drive a real headless Chromium against a local portal server. Tests skip
// when Playwright is not installed.
package browser

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	browsersession "github.com/kuitang/portalcheck/internal/browser"
	"github.com/kuitang/portalcheck/internal/engine"
	"github.com/kuitang/portalcheck/internal/scenario"
)

const portalHTML = `<!DOCTYPE html>
<html>
<head>
<title>Demo Portal</title>
<style>
  #btn { color: rgb(10, 20, 30); }
  #banner { font-weight: 700; }
</style>
</head>
<body>
  <h1 id="title">Demo Portal</h1>
  <button id="btn" style="background-color: yellow">Buy now</button>
  <div id="banner">Welcome back, friend</div>
  <input id="email" type="text">
  <button id="reveal"
    onclick="var d=document.createElement('div');d.id='revealed';d.textContent='surprise';document.body.appendChild(d)">
    Reveal
  </button>
  <a id="pricing-link" href="/pricing">Pricing</a>
</body>
</html>`

const pricingHTML = `<!DOCTYPE html>
<html>
<head><title>Pricing</title></head>
<body><h1 id="plans">Plans</h1></body>
</html>`

// StartPortal serves the fixture portal pages for one test.
func StartPortal(t *testing.T) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("GET /", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write([]byte(portalHTML))
	})
	mux.HandleFunc("GET /pricing", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write([]byte(pricingHTML))
	})

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

var (
	playwrightOnce  sync.Once
	playwrightError error
)

// RequirePlaywright skips the test when a browser session cannot be acquired
// (Playwright driver or Chromium not installed on this machine).
func RequirePlaywright(t *testing.T) {
	t.Helper()

	playwrightOnce.Do(func() {
		sess, err := browsersession.Acquire(browsersession.DefaultConfig)
		if err != nil {
			playwrightError = err
			return
		}
		sess.Release()
	})
	if playwrightError != nil {
		t.Skip("Playwright not available:", playwrightError)
	}
}

// RunScenarios runs the scenarios against the portal with a real browser and
// short settle delays.
func RunScenarios(t *testing.T, portalURL string, scenarios []scenario.TestScenario) (*engine.Report, error) {
	t.Helper()

	eng := engine.New(func() (engine.Session, error) {
		return browsersession.Acquire(browsersession.DefaultConfig)
	}, engine.Options{
		NavigationTimeout: 15 * time.Second,
		Settle: engine.FixedSettle{
			Interact: 50 * time.Millisecond,
			Navigate: 100 * time.Millisecond,
		},
	})
	return eng.Run(context.Background(), portalURL, scenarios)
}
