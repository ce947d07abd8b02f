package config

import "testing"

func TestLoadDefaults(t *testing.T) {
	for _, k := range []string{"PORT", "DB_PATH", "CONTACT_RELAY", "SMTP_HOST", "ADMIN_USERNAME", "ADMIN_PASSWORD"} {
		t.Setenv(k, "")
	}
	c := Load()
	if c.Port != "8080" || c.DBPath != "portfolio.db" || c.Relay != "web3forms" {
		t.Fatalf("defaults %+v", c)
	}
	if c.SMTPHost != "smtp.gmail.com" || c.AdminUsername != "admin" {
		t.Fatalf("defaults %+v", c)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("CONTACT_RELAY", "SMTP")
	t.Setenv("ADMIN_PASSWORD", "s3cret")
	t.Setenv("GIN_MODE", "release")
	c := Load()
	if c.Port != "9000" || c.Relay != "smtp" || c.AdminPassword != "s3cret" || c.Debug {
		t.Fatalf("overrides %+v", c)
	}
}
