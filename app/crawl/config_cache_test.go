package crawl

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func writeSiteConfig(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name+".yml"), []byte(content), 0644); err != nil {
		t.Fatalf("Expected no error writing config, got: %v", err)
	}
}

func TestConfigCacheLoadsSites(t *testing.T) {
	dir := t.TempDir()
	writeSiteConfig(t, dir, "coursesite", `
url: "https://coursesite.example"
feed_url: "https://coursesite.example/feed"
settings:
  enabled: true
  refresh_interval: 1800
  timeout: 10
`)
	writeSiteConfig(t, dir, "quietsite", `
url: "https://quietsite.example"
settings:
  enabled: false
`)

	cache := NewConfigCache(dir)
	if err := cache.Run(); err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	if cache.GetConfigCount() != 2 {
		t.Errorf("Expected 2 configs, got %d", cache.GetConfigCount())
	}

	siteConfig, err := cache.GetConfig("coursesite")
	if err != nil {
		t.Fatalf("Expected config to be cached, got: %v", err)
	}
	if siteConfig.Name != "coursesite" {
		t.Errorf("Expected name from filename, got %s", siteConfig.Name)
	}
	if siteConfig.FeedURL != "https://coursesite.example/feed" {
		t.Errorf("Expected feed URL, got %s", siteConfig.FeedURL)
	}
	if siteConfig.Settings.RefreshInterval != 1800 {
		t.Errorf("Expected refresh interval 1800, got %d", siteConfig.Settings.RefreshInterval)
	}

	enabled := cache.GetEnabledConfigs()
	if len(enabled) != 1 {
		t.Errorf("Expected 1 enabled config, got %d", len(enabled))
	}
	if _, ok := enabled["coursesite"]; !ok {
		t.Error("Expected coursesite to be enabled")
	}
}

func TestConfigCacheAppliesDefaults(t *testing.T) {
	dir := t.TempDir()
	writeSiteConfig(t, dir, "minimal", `
url: "https://minimal.example"
settings:
  enabled: true
`)

	cache := NewConfigCache(dir)
	if err := cache.Run(); err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	siteConfig, err := cache.GetConfig("minimal")
	if err != nil {
		t.Fatalf("Expected config to be cached, got: %v", err)
	}

	if siteConfig.Settings.RefreshInterval != 3600 {
		t.Errorf("Expected default refresh interval 3600, got %d", siteConfig.Settings.RefreshInterval)
	}
	if siteConfig.Settings.Timeout != 30 {
		t.Errorf("Expected default timeout 30, got %d", siteConfig.Settings.Timeout)
	}

	expectedChain := []string{
		"#content-wap > #primary.content-area",
		"#primary.content-area",
		"#primary",
	}
	if !reflect.DeepEqual(siteConfig.Selectors.Content, expectedChain) {
		t.Errorf("Expected default content chain %v, got %v", expectedChain, siteConfig.Selectors.Content)
	}
	if siteConfig.Selectors.Widget != "ul li.srpw-li.srpw-clearfix" {
		t.Errorf("Expected default widget selector, got %s", siteConfig.Selectors.Widget)
	}
	if siteConfig.Selectors.Enroll != "a.enroll_btn" {
		t.Errorf("Expected default enroll selector, got %s", siteConfig.Selectors.Enroll)
	}
	if siteConfig.Course.PathSegment != "course" || siteConfig.Course.ExcludeSegment != "author" {
		t.Errorf("Expected default course segments, got %s / %s", siteConfig.Course.PathSegment, siteConfig.Course.ExcludeSegment)
	}
	if siteConfig.Course.Host != "udemy.com" {
		t.Errorf("Expected default course host, got %s", siteConfig.Course.Host)
	}
}

func TestConfigCacheRejectsMissingURL(t *testing.T) {
	dir := t.TempDir()
	writeSiteConfig(t, dir, "broken", `
settings:
  enabled: true
`)

	cache := NewConfigCache(dir)
	if err := cache.Run(); err == nil {
		t.Error("Expected validation error for missing URL")
	}
}

func TestConfigCacheMissingDirIsNoop(t *testing.T) {
	cache := NewConfigCache(filepath.Join(t.TempDir(), "does-not-exist"))
	if err := cache.Run(); err != nil {
		t.Errorf("Expected missing sites dir to be a no-op, got: %v", err)
	}
	if cache.GetConfigCount() != 0 {
		t.Errorf("Expected empty cache, got %d", cache.GetConfigCount())
	}
}

func TestDefaultConfigIsValid(t *testing.T) {
	siteConfig := DefaultConfig("adhoc", "https://adhoc.example/")

	if !siteConfig.Settings.Enabled {
		t.Error("Expected ad-hoc config to be enabled")
	}
	if siteConfig.Settings.Timeout != 30 {
		t.Errorf("Expected default timeout, got %d", siteConfig.Settings.Timeout)
	}
	if siteConfig.Course.Host != "udemy.com" {
		t.Errorf("Expected default course host, got %s", siteConfig.Course.Host)
	}
}
