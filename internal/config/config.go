// Package config loads playground configuration from a YAML file with
// environment variable overrides.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the root playground configuration.
type Config struct {
	App     AppConfig     `yaml:"app"`
	Eval    EvalConfig    `yaml:"eval"`
	Browser BrowserConfig `yaml:"browser"`
}

// AppConfig covers the hosted front-end.
type AppConfig struct {
	// URL is the public address of the playground, used by the sitemap
	// emitter and the smoke tests.
	URL string `yaml:"url"`
	// SitemapPath is where the build step writes the sitemap.
	SitemapPath string `yaml:"sitemap_path"`
}

// EvalConfig covers the expression evaluator.
type EvalConfig struct {
	// WASMPath locates the compiled evaluator module. Empty disables
	// evaluation; expression fields then report the evaluator as missing.
	WASMPath string `yaml:"wasm_path"`
	// SourcePath is the circuit source whose main signature defines the
	// input fields, watched for changes.
	SourcePath string `yaml:"source_path"`
	// TimeoutMs bounds one evaluation request. Zero means unbounded.
	TimeoutMs int `yaml:"timeout_ms"`
}

// BrowserConfig covers the smoke-test harness.
type BrowserConfig struct {
	Headless            bool   `yaml:"headless"`
	ViewportWidth       int    `yaml:"viewport_width"`
	ViewportHeight      int    `yaml:"viewport_height"`
	NavigationTimeoutMs int    `yaml:"navigation_timeout_ms"`
	ReadyTimeoutMs      int    `yaml:"ready_timeout_ms"`
	ActionSettleMs      int    `yaml:"action_settle_ms"`
	EditorSelector      string `yaml:"editor_selector"`
	ActionSelector      string `yaml:"action_selector"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		App: AppConfig{
			URL:         "https://noir-playground.app",
			SitemapPath: "public/sitemap.xml",
		},
		Eval: EvalConfig{
			SourcePath: "circuit/main.nr",
		},
		Browser: BrowserConfig{
			Headless:            true,
			ViewportWidth:       1920,
			ViewportHeight:      1080,
			NavigationTimeoutMs: 30000,
			ReadyTimeoutMs:      15000,
			ActionSettleMs:      3000,
			EditorSelector:      ".cm-editor",
			ActionSelector:      "button.compile",
		},
	}
}

// Load reads the config at path over the defaults, then applies environment
// overrides. A missing file is not an error; defaults apply.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			cfg.applyEnv()
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config: %w", err)
	}

	cfg.applyEnv()
	return cfg, nil
}

// applyEnv overrides selected settings from NOIRPAD_* variables. Only the
// knobs that vary between local runs and CI are exposed this way.
func (c *Config) applyEnv() {
	if v := os.Getenv("NOIRPAD_APP_URL"); v != "" {
		c.App.URL = v
	}
	if v := os.Getenv("NOIRPAD_WASM_PATH"); v != "" {
		c.Eval.WASMPath = v
	}
	if v := os.Getenv("NOIRPAD_SOURCE_PATH"); v != "" {
		c.Eval.SourcePath = v
	}
	if v := os.Getenv("NOIRPAD_HEADLESS"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			c.Browser.Headless = b
		}
	}
	if v := os.Getenv("NOIRPAD_EVAL_TIMEOUT_MS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			c.Eval.TimeoutMs = n
		}
	}
}

// EvalTimeout returns the evaluation timeout as a duration, zero when
// unbounded.
func (c Config) EvalTimeout() time.Duration {
	return time.Duration(c.Eval.TimeoutMs) * time.Millisecond
}
