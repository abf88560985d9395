// Command sitemap regenerates the playground's sitemap as a build step.
//
// Usage: go run ./cmd/tools/sitemap [-out public/sitemap.xml]
//
// The document lists the single playground URL with today's date; a write
// failure terminates the build with a non-zero status.
package main

import (
	"flag"
	"time"

	"go.uber.org/zap"

	"noirpad/internal/sitemap"
)

func main() {
	out := flag.String("out", "public/sitemap.xml", "output path for the sitemap")
	flag.Parse()

	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer logger.Sync() //nolint:errcheck

	if err := sitemap.Write(*out, time.Now()); err != nil {
		logger.Fatal("sitemap generation failed", zap.Error(err))
	}
	logger.Info("sitemap written",
		zap.String("path", *out),
		zap.String("loc", sitemap.SiteURL))
}
