package cfg

import (
	"cmp"
	"fmt"
	"time"

	"github.com/jessevdk/go-flags"
)

// Version is set at build time via -ldflags
var Version = "dev"

func GetVersion() string {
	return cmp.Or(Version, "unknown")
}

type rawCfg struct {
	// Persistence
	DBPath string `long:"db-path" env:"DB_PATH" default:"./links.db" description:"Path to the SQLite database file"`

	// Application configuration
	SitesDir          string `long:"sites-dir" env:"SITES_DIR" default:"./sites" description:"Directory containing site configuration files"`
	Port              string `long:"port" env:"PORT" default:"8080" description:"HTTP server port"`
	APIToken          string `long:"api-token" env:"API_TOKEN" description:"Bearer token required by the inbound endpoint (required for submissions)"`
	NotifyEmail       string `long:"notify-email" env:"NOTIFY_EMAIL" description:"Default recipient for link update notifications (optional)"`
	CourseHost        string `long:"course-host" env:"COURSE_HOST" default:"udemy.com" description:"Enrollment platform apex domain accepted by the submission endpoint"`
	WorkerCount       int    `long:"worker-count" env:"WORKER_COUNT" default:"2" description:"Number of background workers for discovery tasks"`
	SchedulerInterval int    `long:"scheduler-interval" env:"SCHEDULER_INTERVAL" default:"60" description:"Scheduler interval in seconds"`

	// Outbound mail (optional; notifications are skipped when unset)
	SMTPHost  string `long:"smtp-host" env:"SMTP_HOST" description:"SMTP server host"`
	SMTPPort  int    `long:"smtp-port" env:"SMTP_PORT" default:"587" description:"SMTP server port"`
	SMTPUser  string `long:"smtp-user" env:"SMTP_USER" description:"SMTP username"`
	SMTPPass  string `long:"smtp-pass" env:"SMTP_PASS" description:"SMTP password"`
	FromEmail string `long:"from-email" env:"FROM_EMAIL" description:"Sender address for notifications (defaults to SMTP user)"`

	// Application metadata
	UserAgent string `long:"user-agent" env:"USER_AGENT" default:"LinkTrack/1.0" description:"User agent string for HTTP requests"`
	Timezone  string `long:"timezone" env:"TZ" default:"UTC" description:"Timezone for timestamps (e.g., UTC, America/New_York)"`
	Debug     bool   `long:"debug" env:"DEBUG" description:"Enable debug logging"`
}

var globalCfg *Cfg

func Load() (*Cfg, error) {
	var raw rawCfg

	parser := flags.NewParser(&raw, flags.Default)

	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok {
			if flagsErr.Type == flags.ErrHelp {
				return nil, nil
			}
		}
		return nil, fmt.Errorf("failed to parse configuration: %w", err)
	}

	cfg := &Cfg{
		DBPath:            raw.DBPath,
		SitesDir:          raw.SitesDir,
		Port:              raw.Port,
		APIToken:          raw.APIToken,
		NotifyEmail:       raw.NotifyEmail,
		CourseHost:        raw.CourseHost,
		WorkerCount:       raw.WorkerCount,
		SchedulerInterval: raw.SchedulerInterval,
		SMTPHost:          raw.SMTPHost,
		SMTPPort:          raw.SMTPPort,
		SMTPUser:          raw.SMTPUser,
		SMTPPass:          raw.SMTPPass,
		FromEmail:         cmp.Or(raw.FromEmail, raw.SMTPUser),
		UserAgent:         raw.UserAgent,
		Timezone:          raw.Timezone,
		Debug:             raw.Debug,
		Version:           GetVersion(),
	}

	if err := applyTimezone(cfg.Timezone); err != nil {
		fmt.Printf("Warning: Invalid timezone '%s', using system default: %v\n", cfg.Timezone, err)
	}

	globalCfg = cfg

	return cfg, nil
}

func Get() *Cfg {
	if globalCfg == nil {
		panic("configuration not loaded - call cfg.Load() first")
	}
	return globalCfg
}

func applyTimezone(timezone string) error {
	if timezone != "" {
		if loc, err := time.LoadLocation(timezone); err != nil {
			return err
		} else {
			time.Local = loc
		}
	}
	return nil
}
