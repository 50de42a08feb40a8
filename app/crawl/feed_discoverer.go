package crawl

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"time"

	"github.com/mmcdole/gofeed"
)

// FeedDiscoverer reads a site's RSS/Atom feed and keeps item links that look
// like course detail pages. It is a second discovery net alongside the
// listing page crawl.
type FeedDiscoverer struct {
	client       *http.Client
	userAgent    string
	gofeedParser *gofeed.Parser
}

func NewFeedDiscoverer(client *http.Client, userAgent string) *FeedDiscoverer {
	return &FeedDiscoverer{
		client:       client,
		userAgent:    userAgent,
		gofeedParser: gofeed.NewParser(),
	}
}

func (d *FeedDiscoverer) Run(ctx context.Context, siteConfig *Config) ([]string, error) {
	data, err := d.fetchFeed(ctx, siteConfig.FeedURL, siteConfig.Settings.Timeout)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch feed: %w", err)
	}

	feed, err := d.gofeedParser.Parse(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to parse feed: %w", err)
	}

	seen := make(map[string]bool)
	var courseURLs []string

	for _, item := range feed.Items {
		if item == nil || item.Link == "" {
			continue
		}

		parsed, err := url.Parse(item.Link)
		if err != nil || !parsed.IsAbs() {
			continue
		}
		if !isCourseDetailURL(parsed, siteConfig.Course) {
			continue
		}

		canonical := canonicalizeDetailURL(parsed)
		if !seen[canonical] {
			seen[canonical] = true
			courseURLs = append(courseURLs, canonical)
		}
	}

	sort.Strings(courseURLs)
	return courseURLs, nil
}

func (d *FeedDiscoverer) fetchFeed(ctx context.Context, feedURL string, timeout int) ([]byte, error) {
	timeoutCtx, cancel := context.WithTimeout(ctx, time.Duration(timeout)*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(timeoutCtx, "GET", feedURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("User-Agent", d.userAgent)

	resp, err := d.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch feed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP error: %d %s", resp.StatusCode, resp.Status)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	return data, nil
}
