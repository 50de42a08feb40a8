package crawl

// Configuration types for crawled sites, one YAML file per site.

type Config struct {
	Name      string          // Derived from filename (without .yml extension)
	URL       string          `yaml:"url"`
	FeedURL   string          `yaml:"feed_url"`
	Settings  ConfigSettings  `yaml:"settings"`
	Selectors ConfigSelectors `yaml:"selectors"`
	Course    ConfigCourse    `yaml:"course"`
}

type ConfigSettings struct {
	Enabled         bool `yaml:"enabled"`
	RefreshInterval int  `yaml:"refresh_interval"` // seconds
	Timeout         int  `yaml:"timeout"`          // seconds, per fetch
}

type ConfigSelectors struct {
	// Content is an ordered fallback chain for the listing page's primary
	// content container; the first selector that matches wins.
	Content []string `yaml:"content"`
	// Widget is a second, wider net for a specific list-widget markup
	// pattern anywhere in the document.
	Widget string `yaml:"widget"`
	// Enroll marks the outbound enrollment anchor on a detail page.
	Enroll string `yaml:"enroll"`
}

type ConfigCourse struct {
	PathSegment    string `yaml:"path_segment"`    // first path segment of a detail page
	ExcludeSegment string `yaml:"exclude_segment"` // second segment that disqualifies (author listings)
	Host           string `yaml:"host"`            // enrollment platform apex domain
}
