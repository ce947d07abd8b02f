// Package config reads the server's settings from the environment. A .env
// file in the working directory is loaded first when present.
package config

import (
	"log"
	"os"
	"strings"

	_ "github.com/joho/godotenv/autoload"
)

type Config struct {
	Port   string
	DBPath string

	// Relay is "web3forms" or "smtp".
	Relay        string
	Web3FormsURL string
	Web3FormsKey string

	SMTPHost string
	SMTPPort string
	SMTPUser string
	SMTPPass string
	ToEmail  string

	AdminUsername string
	AdminPassword string

	Debug bool
}

// Load reads the environment, filling development defaults for anything
// unset.
func Load() Config {
	c := Config{
		Port:          getenv("PORT", "8080"),
		DBPath:        getenv("DB_PATH", "portfolio.db"),
		Relay:         strings.ToLower(getenv("CONTACT_RELAY", "web3forms")),
		Web3FormsURL:  os.Getenv("WEB3FORMS_URL"),
		Web3FormsKey:  os.Getenv("WEB3FORMS_ACCESS_KEY"),
		SMTPHost:      getenv("SMTP_HOST", "smtp.gmail.com"),
		SMTPPort:      getenv("SMTP_PORT", "587"),
		SMTPUser:      os.Getenv("SMTP_USER"),
		SMTPPass:      os.Getenv("SMTP_PASS"),
		ToEmail:       os.Getenv("TO_EMAIL"),
		AdminUsername: os.Getenv("ADMIN_USERNAME"),
		AdminPassword: os.Getenv("ADMIN_PASSWORD"),
		Debug:         os.Getenv("GIN_MODE") != "release",
	}

	// Default credentials for development (set both in production)
	if c.AdminUsername == "" {
		c.AdminUsername = "admin"
		if c.Debug {
			log.Println("WARNING: Using default admin username. Set ADMIN_USERNAME environment variable.")
		}
	}
	if c.AdminPassword == "" {
		c.AdminPassword = "admin123"
		if c.Debug {
			log.Println("WARNING: Using default admin password. Set ADMIN_PASSWORD environment variable.")
		}
	}
	if c.Relay == "web3forms" && c.Web3FormsKey == "" {
		log.Println("WARNING: WEB3FORMS_ACCESS_KEY is not set; contact submissions will be rejected.")
	}
	return c
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
