// Command crawl runs one discovery pass against a single site and writes the
// sorted enrollment URLs to a JSON file. Any failure exits non-zero so an
// external scheduler can see it.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"

	"github.com/jessevdk/go-flags"

	"github.com/dkoval/linktrack/app/crawl"
)

type options struct {
	SiteURL   string `long:"site-url" env:"SITE_URL" description:"Listing page URL to crawl"`
	SitesDir  string `long:"sites-dir" env:"SITES_DIR" default:"./sites" description:"Directory containing site configuration files"`
	Site      string `long:"site" env:"SITE" description:"Named site configuration to crawl (alternative to --site-url)"`
	Output    string `long:"output" env:"OUTPUT" default:"enrollLinks.json" description:"Output JSON file"`
	UserAgent string `long:"user-agent" env:"USER_AGENT" default:"LinkTrack/1.0" description:"User agent string for HTTP requests"`
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	var opts options

	parser := flags.NewParser(&opts, flags.Default)
	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		return fmt.Errorf("failed to parse configuration: %w", err)
	}

	siteConfig, err := resolveSiteConfig(&opts)
	if err != nil {
		return err
	}

	crawler := crawl.NewCrawler(&http.Client{}, opts.UserAgent)

	enrollURLs, err := crawler.Run(context.Background(), siteConfig)
	if err != nil {
		return fmt.Errorf("crawl failed: %w", err)
	}

	data, err := json.MarshalIndent(enrollURLs, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode results: %w", err)
	}

	if err := os.WriteFile(opts.Output, append(data, '\n'), 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", opts.Output, err)
	}

	fmt.Printf("Enroll links: %d (written to %s)\n", len(enrollURLs), opts.Output)
	return nil
}

func resolveSiteConfig(opts *options) (*crawl.Config, error) {
	switch {
	case opts.Site != "":
		configCache := crawl.NewConfigCache(opts.SitesDir)
		siteConfig, err := configCache.LoadConfig(opts.Site)
		if err != nil {
			return nil, fmt.Errorf("failed to load site config: %w", err)
		}
		return siteConfig, nil
	case opts.SiteURL != "":
		return crawl.DefaultConfig("cli", opts.SiteURL), nil
	default:
		return nil, fmt.Errorf("either --site-url or --site is required")
	}
}
