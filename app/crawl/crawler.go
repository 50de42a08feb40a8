package crawl

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

// Crawler discovers enrollment URLs in two sequential stages: listing page to
// course detail pages, detail pages to platform enrollment links. Fetches are
// strictly sequential, one page at a time.
type Crawler struct {
	client    *http.Client
	userAgent string
	feeds     *FeedDiscoverer
}

func NewCrawler(client *http.Client, userAgent string) *Crawler {
	return &Crawler{
		client:    client,
		userAgent: userAgent,
		feeds:     NewFeedDiscoverer(client, userAgent),
	}
}

// Run performs a full crawl of one site and returns the deduplicated sorted
// set of enrollment URLs.
func (c *Crawler) Run(ctx context.Context, siteConfig *Config) ([]string, error) {
	courseURLs, err := c.DiscoverCourseURLs(ctx, siteConfig)
	if err != nil {
		return nil, err
	}

	return c.DiscoverEnrollURLs(ctx, siteConfig, courseURLs)
}

// DiscoverCourseURLs is stage one: fetch the listing page, locate the content
// container, and collect course detail URLs from it plus the list-widget net.
// A feed URL, when configured, contributes additional detail URLs; a feed
// failure only loses that extra net, so it is logged and skipped. A listing
// fetch or parse failure aborts the run.
func (c *Crawler) DiscoverCourseURLs(ctx context.Context, siteConfig *Config) ([]string, error) {
	doc, err := c.fetchDocument(ctx, siteConfig.URL, siteConfig.Settings.Timeout)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch listing page: %w", err)
	}

	locator := NewLocator(siteConfig.Selectors.Content)
	container, err := locator.Run(doc)
	if err != nil {
		return nil, fmt.Errorf("failed to locate content container: %w", err)
	}

	base, err := url.Parse(siteConfig.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse site URL: %w", err)
	}

	seen := make(map[string]bool)
	var courseURLs []string

	collect := func(_ int, anchor *goquery.Selection) {
		href, ok := anchor.Attr("href")
		if !ok {
			return
		}

		resolved, err := base.Parse(href)
		if err != nil {
			return
		}
		if !isCourseDetailURL(resolved, siteConfig.Course) {
			return
		}

		canonical := canonicalizeDetailURL(resolved)
		if !seen[canonical] {
			seen[canonical] = true
			courseURLs = append(courseURLs, canonical)
		}
	}

	container.Find("a[href]").Each(collect)
	doc.Find(siteConfig.Selectors.Widget + " a[href]").Each(collect)

	if siteConfig.FeedURL != "" {
		feedURLs, err := c.feeds.Run(ctx, siteConfig)
		if err != nil {
			slog.Warn("Feed discovery failed, continuing with listing results", "site", siteConfig.Name, "error", err)
		} else {
			for _, u := range feedURLs {
				if !seen[u] {
					seen[u] = true
					courseURLs = append(courseURLs, u)
				}
			}
		}
	}

	sort.Strings(courseURLs)
	return courseURLs, nil
}

// DiscoverEnrollURLs is stage two: fetch each detail page in sorted order and
// collect enrollment links restricted to the platform host. A single detail
// page failing is skipped with a warning rather than discarding the results
// of every page already fetched; this job runs unattended.
func (c *Crawler) DiscoverEnrollURLs(ctx context.Context, siteConfig *Config, courseURLs []string) ([]string, error) {
	host := strings.ToLower(siteConfig.Course.Host)
	seen := make(map[string]bool)
	var enrollURLs []string

	for _, pageURL := range courseURLs {
		doc, err := c.fetchDocument(ctx, pageURL, siteConfig.Settings.Timeout)
		if err != nil {
			slog.Warn("Skipping detail page", "site", siteConfig.Name, "url", pageURL, "error", err)
			continue
		}

		pageBase, err := url.Parse(pageURL)
		if err != nil {
			slog.Warn("Skipping unparseable detail page URL", "site", siteConfig.Name, "url", pageURL, "error", err)
			continue
		}

		doc.Find(siteConfig.Selectors.Enroll + "[href]").Each(func(_ int, anchor *goquery.Selection) {
			href, ok := anchor.Attr("href")
			if !ok {
				return
			}

			resolved, err := pageBase.Parse(href)
			if err != nil {
				return
			}

			hostname := strings.ToLower(resolved.Hostname())
			if hostname != host && !strings.HasSuffix(hostname, "."+host) {
				return
			}

			resolved.Fragment = ""
			enrollURL := resolved.String()
			if !seen[enrollURL] {
				seen[enrollURL] = true
				enrollURLs = append(enrollURLs, enrollURL)
			}
		})
	}

	sort.Strings(enrollURLs)
	return enrollURLs, nil
}

func (c *Crawler) fetchDocument(ctx context.Context, pageURL string, timeout int) (*goquery.Document, error) {
	timeoutCtx, cancel := context.WithTimeout(ctx, time.Duration(timeout)*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(timeoutCtx, "GET", pageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP error: %d %s", resp.StatusCode, resp.Status)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}

	return doc, nil
}

// isCourseDetailURL reports whether a resolved URL looks like a course detail
// page: first path segment equals the course segment and a second segment is
// present and is not the excluded (author listing) segment.
func isCourseDetailURL(u *url.URL, course ConfigCourse) bool {
	var segments []string
	for _, segment := range strings.Split(u.Path, "/") {
		if segment != "" {
			segments = append(segments, segment)
		}
	}

	if len(segments) < 2 {
		return false
	}
	return segments[0] == course.PathSegment && segments[1] != course.ExcludeSegment
}

// canonicalizeDetailURL strips the fragment and a trailing slash.
func canonicalizeDetailURL(u *url.URL) string {
	u.Fragment = ""
	return strings.TrimSuffix(u.String(), "/")
}
