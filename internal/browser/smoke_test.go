//go:build integration

package browser_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"noirpad/internal/browser"
	"noirpad/internal/config"
)

// startHarness launches a harness with config-driven settings and registers
// cleanup.
func startHarness(t *testing.T, ctx context.Context) *browser.Harness {
	t.Helper()

	cfg := browser.DefaultConfig()
	cfg.NavigationTimeoutMs = 10000
	cfg.ReadyTimeoutMs = 10000
	cfg.ActionSettleMs = 500

	h := browser.NewHarness(cfg, nil)
	t.Cleanup(func() {
		if err := h.Shutdown(context.Background()); err != nil {
			t.Logf("shutdown: %v", err)
		}
	})
	require.NoError(t, h.Start(ctx), "failed to start browser")
	return h
}

func TestHarness_CapturesConsoleErrors(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		fmt.Fprintln(w, `
			<html><body>
				<div class="cm-editor">fn main(x: Field) {}</div>
				<button class="compile" onclick="console.error('WebAssembly.instantiate failed: magic header mismatch')">Compile</button>
			</body></html>
		`)
	}))
	defer ts.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	h := startHarness(t, ctx)
	require.NoError(t, h.Open(ctx, ts.URL))
	require.NoError(t, h.WaitVisible(ctx, ".cm-editor"))

	// Nothing bad yet.
	require.Empty(t, h.ErrorsContaining(browser.WASMFailureSubstrings...))

	require.NoError(t, h.Click(ctx, "button.compile"))

	require.Eventually(t, func() bool {
		return len(h.ErrorsContaining(browser.WASMFailureSubstrings...)) > 0
	}, 5*time.Second, 100*time.Millisecond, "expected the injected wasm failure to be captured")
}

func TestHarness_CleanPageHasNoWASMFailures(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		fmt.Fprintln(w, `
			<html><body>
				<div class="cm-editor">fn main(x: Field) {}</div>
				<button class="compile" onclick="console.log('compiled ok')">Compile</button>
			</body></html>
		`)
	}))
	defer ts.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	h := startHarness(t, ctx)
	require.NoError(t, h.Open(ctx, ts.URL))
	require.NoError(t, h.WaitVisible(ctx, ".cm-editor"))
	require.Empty(t, h.ErrorsContaining(browser.WASMFailureSubstrings...))

	require.NoError(t, h.Click(ctx, "button.compile"))
	time.Sleep(500 * time.Millisecond)
	require.Empty(t, h.ErrorsContaining(browser.WASMFailureSubstrings...))
}

// TestSmoke_Playground runs the full smoke pass against a deployed
// playground. Skipped unless NOIRPAD_APP_URL points at a reachable
// instance.
func TestSmoke_Playground(t *testing.T) {
	cfg, err := config.Load("")
	require.NoError(t, err)
	if cfg.App.URL == "https://noir-playground.app" {
		t.Skip("set NOIRPAD_APP_URL to run the deployed-instance smoke test")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 90*time.Second)
	defer cancel()

	bcfg := browser.Config{
		Headless:            cfg.Browser.Headless,
		ViewportWidth:       cfg.Browser.ViewportWidth,
		ViewportHeight:      cfg.Browser.ViewportHeight,
		NavigationTimeoutMs: cfg.Browser.NavigationTimeoutMs,
		ReadyTimeoutMs:      cfg.Browser.ReadyTimeoutMs,
		ActionSettleMs:      cfg.Browser.ActionSettleMs,
	}

	h := browser.NewHarness(bcfg, nil)
	t.Cleanup(func() {
		if err := h.Shutdown(context.Background()); err != nil {
			t.Logf("shutdown: %v", err)
		}
	})
	require.NoError(t, h.Start(ctx), "failed to start browser")
	require.NoError(t, h.Open(ctx, cfg.App.URL))

	// The editor surface must come up within the bounded wait.
	require.NoError(t, h.WaitVisible(ctx, cfg.Browser.EditorSelector),
		"editor surface did not become visible")

	// No wasm instantiation failure during startup.
	require.Empty(t, h.ErrorsContaining(browser.WASMFailureSubstrings...),
		"wasm failure during startup; console: %v", h.ConsoleMessages())

	// Invoke the primary action and recheck after the settle delay.
	require.NoError(t, h.Click(ctx, cfg.Browser.ActionSelector))
	time.Sleep(bcfg.ActionSettle())
	require.Empty(t, h.ErrorsContaining(browser.WASMFailureSubstrings...),
		"wasm failure after primary action; console: %v", h.ConsoleMessages())
}
