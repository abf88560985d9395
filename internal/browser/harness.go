// Package browser drives a live playground instance for black-box smoke
// checks: element visibility and captured console output, nothing
// structural.
package browser

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// WASMFailureSubstrings are the console error fragments that indicate the
// compiler/executor module failed to come up in the page. The smoke tests
// assert none of these appear.
var WASMFailureSubstrings = []string{
	"WebAssembly.instantiate",
	"wasm-bindgen",
	"failed to fetch wasm",
	"RuntimeError: unreachable",
}

// Config holds harness settings.
type Config struct {
	Headless            bool
	ViewportWidth       int
	ViewportHeight      int
	NavigationTimeoutMs int
	ReadyTimeoutMs      int
	ActionSettleMs      int
}

// DefaultConfig returns settings suitable for CI.
func DefaultConfig() Config {
	return Config{
		Headless:            true,
		ViewportWidth:       1920,
		ViewportHeight:      1080,
		NavigationTimeoutMs: 30000,
		ReadyTimeoutMs:      15000,
		ActionSettleMs:      3000,
	}
}

// NavigationTimeout returns the navigation timeout as a duration.
func (c Config) NavigationTimeout() time.Duration {
	if c.NavigationTimeoutMs <= 0 {
		return 30 * time.Second
	}
	return time.Duration(c.NavigationTimeoutMs) * time.Millisecond
}

// ReadyTimeout is the bounded wait for the editor surface.
func (c Config) ReadyTimeout() time.Duration {
	if c.ReadyTimeoutMs <= 0 {
		return 15 * time.Second
	}
	return time.Duration(c.ReadyTimeoutMs) * time.Millisecond
}

// ActionSettle is the fixed delay after invoking the primary action before
// console output is rechecked.
func (c Config) ActionSettle() time.Duration {
	if c.ActionSettleMs <= 0 {
		return 3 * time.Second
	}
	return time.Duration(c.ActionSettleMs) * time.Millisecond
}

// ConsoleMessage is one captured console entry.
type ConsoleMessage struct {
	Type string
	Text string
}

// Harness owns one browser and one page against the application under test.
type Harness struct {
	id     string
	cfg    Config
	logger *zap.Logger

	launcher *launcher.Launcher
	browser  *rod.Browser
	page     *rod.Page

	mu      sync.Mutex
	console []ConsoleMessage
}

// NewHarness creates an unstarted harness.
func NewHarness(cfg Config, logger *zap.Logger) *Harness {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Harness{
		id:     uuid.NewString(),
		cfg:    cfg,
		logger: logger,
	}
}

// Start launches the browser and connects to it.
func (h *Harness) Start(ctx context.Context) error {
	h.launcher = launcher.New().Headless(h.cfg.Headless)
	controlURL, err := h.launcher.Launch()
	if err != nil {
		return fmt.Errorf("launch browser: %w", err)
	}

	browser := rod.New().ControlURL(controlURL).Context(ctx)
	if err := browser.Connect(); err != nil {
		return fmt.Errorf("connect browser: %w", err)
	}
	h.browser = browser

	h.logger.Debug("browser started", zap.String("harness", h.id))
	return nil
}

// Open navigates a fresh page to url, waits for the load event, and starts
// capturing console output and page exceptions.
func (h *Harness) Open(ctx context.Context, url string) error {
	if h.browser == nil {
		return errors.New("harness not started")
	}

	page, err := h.browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		return fmt.Errorf("create page: %w", err)
	}
	h.page = page

	if err := (proto.EmulationSetDeviceMetricsOverride{
		Width:             h.cfg.ViewportWidth,
		Height:            h.cfg.ViewportHeight,
		DeviceScaleFactor: 1.0,
	}).Call(page); err != nil {
		h.logger.Warn("set viewport", zap.Error(err))
	}

	// Attach console capture before navigating so early startup errors
	// (wasm fetch/instantiation) are not missed.
	go page.EachEvent(
		func(ev *proto.RuntimeConsoleAPICalled) {
			h.record(string(ev.Type), stringifyConsoleArgs(ev.Args))
		},
		func(ev *proto.RuntimeExceptionThrown) {
			if ev.ExceptionDetails == nil {
				return
			}
			text := ev.ExceptionDetails.Text
			if ev.ExceptionDetails.Exception != nil && ev.ExceptionDetails.Exception.Description != "" {
				text = ev.ExceptionDetails.Exception.Description
			}
			h.record("error", text)
		},
	)()

	if err := page.Context(ctx).Timeout(h.cfg.NavigationTimeout()).Navigate(url); err != nil {
		return fmt.Errorf("navigate %s: %w", url, err)
	}
	if err := page.Context(ctx).Timeout(h.cfg.NavigationTimeout()).WaitLoad(); err != nil {
		return fmt.Errorf("wait load: %w", err)
	}
	return nil
}

// WaitVisible blocks until the element matching selector is visible, up to
// the ready timeout.
func (h *Harness) WaitVisible(ctx context.Context, selector string) error {
	if h.page == nil {
		return errors.New("no page open")
	}
	el, err := h.page.Context(ctx).Timeout(h.cfg.ReadyTimeout()).Element(selector)
	if err != nil {
		return fmt.Errorf("element %q: %w", selector, err)
	}
	if err := el.WaitVisible(); err != nil {
		return fmt.Errorf("element %q not visible: %w", selector, err)
	}
	return nil
}

// Click clicks the first element matching selector.
func (h *Harness) Click(ctx context.Context, selector string) error {
	if h.page == nil {
		return errors.New("no page open")
	}
	el, err := h.page.Context(ctx).Element(selector)
	if err != nil {
		return fmt.Errorf("element %q: %w", selector, err)
	}
	return el.Click(proto.InputMouseButtonLeft, 1)
}

// ConsoleMessages returns a copy of everything captured so far.
func (h *Harness) ConsoleMessages() []ConsoleMessage {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]ConsoleMessage, len(h.console))
	copy(out, h.console)
	return out
}

// ErrorsContaining returns captured error-level messages whose text
// contains any of the given substrings.
func (h *Harness) ErrorsContaining(substrings ...string) []ConsoleMessage {
	var matches []ConsoleMessage
	for _, msg := range h.ConsoleMessages() {
		if msg.Type != "error" {
			continue
		}
		for _, substr := range substrings {
			if strings.Contains(msg.Text, substr) {
				matches = append(matches, msg)
				break
			}
		}
	}
	return matches
}

// Shutdown closes the page, the browser, and the launched process.
func (h *Harness) Shutdown(ctx context.Context) error {
	var errs []error
	if h.page != nil {
		if err := h.page.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close page: %w", err))
		}
		h.page = nil
	}
	if h.browser != nil {
		if err := h.browser.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close browser: %w", err))
		}
		h.browser = nil
	}
	if h.launcher != nil {
		h.launcher.Cleanup()
		h.launcher = nil
	}
	h.logger.Debug("harness shut down", zap.String("harness", h.id))
	return errors.Join(errs...)
}

func (h *Harness) record(msgType, text string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.console = append(h.console, ConsoleMessage{Type: msgType, Text: text})
}

func stringifyConsoleArgs(args []*proto.RuntimeRemoteObject) string {
	parts := make([]string, 0, len(args))
	for _, a := range args {
		if a == nil {
			continue
		}
		if !a.Value.Nil() {
			parts = append(parts, a.Value.String())
			continue
		}
		if a.Description != "" {
			parts = append(parts, a.Description)
		}
	}
	return strings.Join(parts, " ")
}
