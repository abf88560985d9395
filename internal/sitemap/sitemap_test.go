package sitemap

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

const golden = `<?xml version="1.0" encoding="UTF-8"?>
<urlset xmlns="http://www.sitemaps.org/schemas/sitemap/0.9">
  <url>
    <loc>https://noir-playground.app</loc>
    <lastmod>2024-01-01</lastmod>
    <changefreq>weekly</changefreq>
    <priority>1</priority>
  </url>
</urlset>
`

func TestGenerate_FixedDate(t *testing.T) {
	date := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	data, err := Generate(date)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if string(data) != golden {
		t.Errorf("sitemap mismatch:\ngot:\n%s\nwant:\n%s", data, golden)
	}
}

func TestGenerate_Deterministic(t *testing.T) {
	date := time.Date(2025, 6, 15, 12, 30, 0, 0, time.UTC)

	a, err := Generate(date)
	if err != nil {
		t.Fatal(err)
	}
	b, err := Generate(date)
	if err != nil {
		t.Fatal(err)
	}
	if string(a) != string(b) {
		t.Error("same date produced different bytes")
	}
}

func TestWrite_CreatesDirectories(t *testing.T) {
	path := filepath.Join(t.TempDir(), "public", "sitemap.xml")
	date := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	if err := Write(path, date); err != nil {
		t.Fatalf("Write: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if string(data) != golden {
		t.Error("written file differs from generated document")
	}
}

func TestWrite_FailsOnUnwritablePath(t *testing.T) {
	dir := t.TempDir()
	// A file where a directory is needed forces the MkdirAll to fail.
	blocker := filepath.Join(dir, "public")
	if err := os.WriteFile(blocker, []byte("not a directory"), 0o644); err != nil {
		t.Fatal(err)
	}

	err := Write(filepath.Join(blocker, "sitemap.xml"), time.Now())
	if err == nil {
		t.Error("expected error writing beneath a regular file")
	}
}
