package config

import "os"

type ChatwootConfig struct {
	BaseURL   string
	APIToken  string
	AccountID string
}

// Configured reports whether every credential the vendor API needs is set.
func (c ChatwootConfig) Configured() bool {
	return c.BaseURL != "" && c.APIToken != "" && c.AccountID != ""
}

type Config struct {
	Port        string
	DatabaseURL string
	MediaDir    string
	LogFile     string
	Chatwoot    ChatwootConfig
}

func Load() Config {
	return Config{
		Port:        getEnv("PORT", "3000"),
		DatabaseURL: os.Getenv("DATABASE_URL"),
		MediaDir:    getEnv("MEDIA_DIR", "./uploads"),
		LogFile:     os.Getenv("LOG_FILE"),
		Chatwoot: ChatwootConfig{
			BaseURL:   os.Getenv("CHATWOOT_BASE_URL"),
			APIToken:  os.Getenv("CHATWOOT_API_TOKEN"),
			AccountID: os.Getenv("CHATWOOT_ACCOUNT_ID"),
		},
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
