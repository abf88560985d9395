// Package sitemap emits the playground's sitemap: a single-entry document
// for the hosted front-end, regenerated at build time.
package sitemap

import (
	"encoding/xml"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// SiteURL is the one location the sitemap lists.
const SiteURL = "https://noir-playground.app"

const xmlns = "http://www.sitemaps.org/schemas/sitemap/0.9"

type urlEntry struct {
	Loc        string `xml:"loc"`
	LastMod    string `xml:"lastmod"`
	ChangeFreq string `xml:"changefreq"`
	Priority   string `xml:"priority"`
}

type urlSet struct {
	XMLName xml.Name   `xml:"urlset"`
	Xmlns   string     `xml:"xmlns,attr"`
	URLs    []urlEntry `xml:"url"`
}

// Generate renders the sitemap document for the given date. Output is
// deterministic: the same date always yields identical bytes.
func Generate(date time.Time) ([]byte, error) {
	doc := urlSet{
		Xmlns: xmlns,
		URLs: []urlEntry{{
			Loc:        SiteURL,
			LastMod:    date.Format("2006-01-02"),
			ChangeFreq: "weekly",
			Priority:   "1",
		}},
	}

	body, err := xml.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal sitemap: %w", err)
	}
	return append([]byte(xml.Header), append(body, '\n')...), nil
}

// Write generates the sitemap for date and writes it to path, creating
// parent directories as needed.
func Write(path string, date time.Time) error {
	data, err := Generate(date)
	if err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output directory: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write sitemap: %w", err)
	}
	return nil
}
