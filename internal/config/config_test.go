package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.App.URL != "https://noir-playground.app" {
		t.Errorf("URL = %q", cfg.App.URL)
	}
	if cfg.App.SitemapPath != "public/sitemap.xml" {
		t.Errorf("SitemapPath = %q", cfg.App.SitemapPath)
	}
	if cfg.EvalTimeout() != 0 {
		t.Errorf("EvalTimeout = %v, want unbounded", cfg.EvalTimeout())
	}
	if !cfg.Browser.Headless {
		t.Error("expected headless by default")
	}
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "noirpad.yaml")
	content := `
app:
  url: http://localhost:3000
eval:
  wasm_path: build/evaluator.wasm
  timeout_ms: 2500
browser:
  headless: false
  editor_selector: "#editor"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.App.URL != "http://localhost:3000" {
		t.Errorf("URL = %q", cfg.App.URL)
	}
	if cfg.Eval.WASMPath != "build/evaluator.wasm" {
		t.Errorf("WASMPath = %q", cfg.Eval.WASMPath)
	}
	if cfg.EvalTimeout() != 2500*time.Millisecond {
		t.Errorf("EvalTimeout = %v", cfg.EvalTimeout())
	}
	if cfg.Browser.Headless {
		t.Error("headless should be overridden to false")
	}
	if cfg.Browser.EditorSelector != "#editor" {
		t.Errorf("EditorSelector = %q", cfg.Browser.EditorSelector)
	}
	// Untouched settings keep defaults.
	if cfg.Browser.ViewportWidth != 1920 {
		t.Errorf("ViewportWidth = %d", cfg.Browser.ViewportWidth)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("NOIRPAD_APP_URL", "http://127.0.0.1:8080")
	t.Setenv("NOIRPAD_HEADLESS", "false")
	t.Setenv("NOIRPAD_EVAL_TIMEOUT_MS", "100")

	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.App.URL != "http://127.0.0.1:8080" {
		t.Errorf("URL = %q", cfg.App.URL)
	}
	if cfg.Browser.Headless {
		t.Error("headless env override ignored")
	}
	if cfg.EvalTimeout() != 100*time.Millisecond {
		t.Errorf("EvalTimeout = %v", cfg.EvalTimeout())
	}
}

func TestLoad_MalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("app: ["), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(path); err == nil {
		t.Error("expected error for malformed YAML")
	}
}
