package config

import "testing"

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	if cfg.Server.Port != 8080 {
		t.Errorf("expected default port 8080, got %d", cfg.Server.Port)
	}
	if cfg.Classifier.Enabled() {
		t.Error("classifier must be disabled without a credential")
	}
	if cfg.AMQP.Queue != "followup_dispatch" {
		t.Errorf("unexpected default queue name %q", cfg.AMQP.Queue)
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv(classifierKeyEnv, "test-key")
	t.Setenv(databaseURLEnv, "postgres://elsewhere/db")
	t.Setenv(smtpPortEnv, "465")

	cfg := Load()

	if !cfg.Classifier.Enabled() {
		t.Error("classifier should be enabled once a credential is set")
	}
	if cfg.Database.DSN != "postgres://elsewhere/db" {
		t.Errorf("DSN override not applied: %s", cfg.Database.DSN)
	}
	if cfg.SMTP.Port != 465 {
		t.Errorf("SMTP port override not applied: %d", cfg.SMTP.Port)
	}
}

func TestBadNumericEnvIsIgnored(t *testing.T) {
	t.Setenv(smtpPortEnv, "not-a-port")

	cfg := Load()

	if cfg.SMTP.Port != 587 {
		t.Errorf("expected default SMTP port on bad override, got %d", cfg.SMTP.Port)
	}
}
