package cfg

import (
	"testing"
)

func TestGetVersion(t *testing.T) {
	if GetVersion() == "" {
		t.Error("GetVersion should never return empty string")
	}
}

func TestConfigFields(t *testing.T) {
	cfg := &Cfg{
		DBPath:            "./test.db",
		SitesDir:          "./sites",
		Port:              "8080",
		APIToken:          "secret",
		NotifyEmail:       "ops@example.com",
		WorkerCount:       2,
		SchedulerInterval: 60,
		SMTPHost:          "smtp.example.com",
		SMTPPort:          587,
		SMTPUser:          "mailer",
		SMTPPass:          "hunter2",
		FromEmail:         "mailer@example.com",
		UserAgent:         "Test Agent",
		Timezone:          "UTC",
		Debug:             true,
		Version:           "test-version",
	}

	if cfg.DBPath != "./test.db" {
		t.Errorf("Expected DB path './test.db', got '%s'", cfg.DBPath)
	}
	if cfg.Port != "8080" {
		t.Errorf("Expected port '8080', got '%s'", cfg.Port)
	}
	if cfg.APIToken != "secret" {
		t.Errorf("Expected API token 'secret', got '%s'", cfg.APIToken)
	}
	if cfg.NotifyEmail != "ops@example.com" {
		t.Errorf("Expected notify email 'ops@example.com', got '%s'", cfg.NotifyEmail)
	}
	if cfg.WorkerCount != 2 {
		t.Errorf("Expected worker count 2, got %d", cfg.WorkerCount)
	}
	if cfg.SchedulerInterval != 60 {
		t.Errorf("Expected scheduler interval 60, got %d", cfg.SchedulerInterval)
	}
	if cfg.SMTPPort != 587 {
		t.Errorf("Expected SMTP port 587, got %d", cfg.SMTPPort)
	}
	if !cfg.Debug {
		t.Error("Expected debug to be enabled")
	}
}
