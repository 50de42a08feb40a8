package crawl

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

type ConfigCache struct {
	sitesDir string
	cache    map[string]*Config
	mu       sync.RWMutex
}

func NewConfigCache(sitesDir string) *ConfigCache {
	return &ConfigCache{
		sitesDir: sitesDir,
		cache:    make(map[string]*Config),
	}
}

func (cc *ConfigCache) Run() error {
	if _, err := os.Stat(cc.sitesDir); os.IsNotExist(err) {
		return nil
	}

	files, err := filepath.Glob(filepath.Join(cc.sitesDir, "*.yml"))
	if err != nil {
		return fmt.Errorf("failed to find YML files: %w", err)
	}

	for _, file := range files {
		siteName := strings.TrimSuffix(filepath.Base(file), ".yml")

		config, err := cc.LoadConfig(siteName)
		if err != nil {
			return fmt.Errorf("error loading %s: %w", file, err)
		}

		slog.Debug("Site configuration loaded", "site", siteName, "enabled", config.Settings.Enabled, "refresh_interval", config.Settings.RefreshInterval)
	}

	return nil
}

func (cc *ConfigCache) LoadConfig(siteName string) (*Config, error) {
	configFile := cc.getConfigFilePath(siteName)
	siteConfig, err := cc.parseConfig(configFile)
	if err != nil {
		return nil, err
	}

	siteConfig.Name = siteName

	if err := cc.validateConfig(siteConfig); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", configFile, err)
	}

	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.cache[siteConfig.Name] = siteConfig

	return siteConfig, nil
}

func (cc *ConfigCache) GetConfig(siteName string) (*Config, error) {
	cc.mu.RLock()
	defer cc.mu.RUnlock()

	siteConfig, ok := cc.cache[siteName]
	if !ok {
		return nil, fmt.Errorf("site config with name '%s' not found", siteName)
	}
	return siteConfig, nil
}

func (cc *ConfigCache) GetConfigs() map[string]*Config {
	cc.mu.RLock()
	defer cc.mu.RUnlock()

	configsCopy := make(map[string]*Config, len(cc.cache))
	for k, v := range cc.cache {
		configsCopy[k] = v
	}
	return configsCopy
}

func (cc *ConfigCache) GetEnabledConfigs() map[string]*Config {
	cc.mu.RLock()
	defer cc.mu.RUnlock()

	enabledConfigs := make(map[string]*Config)
	for k, v := range cc.cache {
		if v.Settings.Enabled {
			enabledConfigs[k] = v
		}
	}
	return enabledConfigs
}

func (cc *ConfigCache) GetConfigCount() int {
	cc.mu.RLock()
	defer cc.mu.RUnlock()
	return len(cc.cache)
}

func (cc *ConfigCache) parseConfig(configFile string) (*Config, error) {
	data, err := os.ReadFile(configFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	var siteConfig Config
	if err := yaml.Unmarshal(data, &siteConfig); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	applyDefaults(&siteConfig)

	return &siteConfig, nil
}

// DefaultConfig builds an enabled site config for one URL with all defaults
// applied, for one-shot use outside the sites directory.
func DefaultConfig(name, siteURL string) *Config {
	siteConfig := &Config{
		Name:     name,
		URL:      siteURL,
		Settings: ConfigSettings{Enabled: true},
	}
	applyDefaults(siteConfig)
	return siteConfig
}

func applyDefaults(siteConfig *Config) {
	if siteConfig.Settings.RefreshInterval == 0 {
		siteConfig.Settings.RefreshInterval = 3600
	}
	if siteConfig.Settings.Timeout == 0 {
		siteConfig.Settings.Timeout = 30
	}
	if len(siteConfig.Selectors.Content) == 0 {
		siteConfig.Selectors.Content = []string{
			"#content-wap > #primary.content-area",
			"#primary.content-area",
			"#primary",
		}
	}
	if siteConfig.Selectors.Widget == "" {
		siteConfig.Selectors.Widget = "ul li.srpw-li.srpw-clearfix"
	}
	if siteConfig.Selectors.Enroll == "" {
		siteConfig.Selectors.Enroll = "a.enroll_btn"
	}
	if siteConfig.Course.PathSegment == "" {
		siteConfig.Course.PathSegment = "course"
	}
	if siteConfig.Course.ExcludeSegment == "" {
		siteConfig.Course.ExcludeSegment = "author"
	}
	if siteConfig.Course.Host == "" {
		siteConfig.Course.Host = "udemy.com"
	}
}

func (cc *ConfigCache) validateConfig(siteConfig *Config) error {
	if siteConfig == nil {
		return fmt.Errorf("siteConfig is nil")
	}

	requiredFields := map[string]string{
		"site name": siteConfig.Name,
		"site URL":  siteConfig.URL,
	}

	for fieldName, fieldValue := range requiredFields {
		if fieldValue == "" {
			return fmt.Errorf("%s is required", fieldName)
		}
	}

	nonNegativeFields := map[string]int{
		"refresh interval": siteConfig.Settings.RefreshInterval,
		"timeout":          siteConfig.Settings.Timeout,
	}

	for fieldName, fieldValue := range nonNegativeFields {
		if fieldValue < 0 {
			return fmt.Errorf("%s must be non-negative", fieldName)
		}
	}

	return nil
}

func (cc *ConfigCache) getConfigFilePath(siteName string) string {
	return filepath.Join(cc.sitesDir, siteName+".yml")
}
