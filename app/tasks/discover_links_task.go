package tasks

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/dkoval/linktrack/app/crawl"
	"github.com/dkoval/linktrack/app/links"
	"github.com/dkoval/linktrack/app/mail"
)

// DiscoverLinksTask runs one full pipeline pass for a site: crawl the listing
// to enrollment URLs, reconcile them into the store, and notify the
// configured recipient. The crawl inside one task is strictly sequential.
type DiscoverLinksTask struct {
	Task
	SiteConfig  *crawl.Config
	crawler     *crawl.Crawler
	tracker     *links.Tracker
	mailer      mail.Sender
	notifyEmail string
}

func NewDiscoverLinksTask(siteName string, siteConfig *crawl.Config, crawler *crawl.Crawler,
	tracker *links.Tracker, mailer mail.Sender, notifyEmail string) *DiscoverLinksTask {
	return &DiscoverLinksTask{
		Task:        NewTask(TaskTypeDiscoverLinks, siteName),
		SiteConfig:  siteConfig,
		crawler:     crawler,
		tracker:     tracker,
		mailer:      mailer,
		notifyEmail: notifyEmail,
	}
}

func (t *DiscoverLinksTask) Execute(ctx context.Context) error {

	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	if !t.SiteConfig.Settings.Enabled {
		slog.Debug("Site disabled, skipping", "site", t.SiteName)
		return nil
	}

	enrollURLs, err := t.crawler.Run(ctx, t.SiteConfig)
	if err != nil {
		return fmt.Errorf("failed to crawl site: %w", err)
	}

	result, err := t.tracker.Run(enrollURLs, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("failed to reconcile links: %w", err)
	}

	if t.notifyEmail != "" && t.mailer != nil {
		summary := links.FormatSummary(result.Added, result.Pending)
		if err := t.mailer.Send(t.notifyEmail, summary.Subject, summary.Body); err != nil {
			slog.Error("Notification failed", "site", t.SiteName, "to", t.notifyEmail, "error", err)
		}
	}

	slog.Info("Task completed",
		"type", "DiscoverLinks",
		"site", t.SiteName,
		"duration", t.GetDuration(),
		"discovered", len(enrollURLs),
		"new", len(result.Added),
		"pending", len(result.Pending))

	return nil
}
