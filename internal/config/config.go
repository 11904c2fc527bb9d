package config

import (
	"os"
	"strconv"
)

// Config holds all runtime settings, read once at startup and passed
// explicitly to the services that need them. In particular the
// anonymization toggle lives here so the display path and the search
// query builder can never disagree about it.
type Config struct {
	Port          string
	SiteURL       string
	SessionSecret string

	// DatabaseURL selects PostgreSQL when set; otherwise a local
	// SQLite file at SQLitePath is used.
	DatabaseURL string
	SQLitePath  string

	// Dataset and downloadable resources.
	DatasetPath  string
	ResourcesDir string

	AnonymizeContributors bool
	VotingEnabled         bool

	// SMTP settings for confirmation mail.
	SMTPHost string
	SMTPPort string
	SMTPUser string
	SMTPPass string
	SMTPFrom string

	// OpenAI-compatible chat completion API for the analyse panel.
	LLMBaseURL string
	LLMToken   string
	LLMModel   string
}

// Load builds a Config from environment variables with local-dev defaults.
func Load() *Config {
	return &Config{
		Port:          getenv("PORT", "8080"),
		SiteURL:       getenv("SITE_URL", "http://localhost:8080"),
		SessionSecret: getenv("SESSION_SECRET", "secret_key_change_me"),

		DatabaseURL: os.Getenv("DATABASE_URL"),
		SQLitePath:  getenv("SQLITE_PATH", "database/verbatims.db"),

		DatasetPath:  getenv("DATASET_PATH", "resources/verbatims/contributions.json"),
		ResourcesDir: getenv("RESOURCES_DIR", "resources/verbatims"),

		AnonymizeContributors: getenvBool("ANONYMIZE_CONTRIBUTORS", true),
		VotingEnabled:         getenvBool("VOTING_ENABLED", false),

		SMTPHost: os.Getenv("SMTP_HOST"),
		SMTPPort: os.Getenv("SMTP_PORT"),
		SMTPUser: os.Getenv("SMTP_USER"),
		SMTPPass: os.Getenv("SMTP_PASS"),
		SMTPFrom: os.Getenv("SMTP_FROM"),

		LLMBaseURL: os.Getenv("LLM_BASE_URL"),
		LLMToken:   os.Getenv("LLM_TOKEN"),
		LLMModel:   getenv("LLM_MODEL", "gpt-4o-mini"),
	}
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getenvBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}
