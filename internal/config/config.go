package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all configuration for the application
type Config struct {
	// Server configuration
	Port  string
	Debug bool

	// Default analysis profile used for scheduled runs
	BrandName      string
	Industry       string
	CustomIndustry bool
	Location       string
	Competitors    []string
	PromptCount    int
	Platforms      []string

	// Prompt generation
	CompetitorPrompts bool

	// Platform credentials and models
	OpenAIAPIKey     string
	OpenAIModel      string
	AnthropicAPIKey  string
	AnthropicModel   string
	GeminiAPIKey     string
	GeminiModel      string
	PerplexityAPIKey string
	PerplexityModel  string

	// Query behavior
	QueryTimeout time.Duration

	// Schedule configuration
	Schedule       string // "daily" or "weekly"
	AlertThreshold float64

	// Storage configuration
	StorageBackend   string // "azure" or "local"
	StorageAccount   string
	StorageContainer string
	LocalStorageDir  string

	// Notification configuration
	NotificationMethod string // "teams", "email" or "none"
	TeamsWebhookURL    string
	SMTPHost           string
	SMTPPort           int
	SMTPUsername       string
	SMTPPassword       string
	EmailTo            string
	EmailFrom          string
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		Port:  getEnv("PORT", "8080"),
		Debug: getBoolEnv("DEBUG", false),

		BrandName:      getEnv("BRAND_NAME", ""),
		Industry:       getEnv("INDUSTRY", ""),
		CustomIndustry: getBoolEnv("CUSTOM_INDUSTRY", false),
		Location:       getEnv("LOCATION", ""),
		Competitors:    getSliceEnv("COMPETITORS", []string{}),
		PromptCount:    getIntEnv("PROMPT_COUNT", 20),
		Platforms: getSliceEnv("PLATFORMS", []string{
			"openai",
			"anthropic",
			"gemini",
			"perplexity",
		}),

		CompetitorPrompts: getBoolEnv("COMPETITOR_PROMPTS", false),

		OpenAIAPIKey:     getEnv("OPENAI_API_KEY", ""),
		OpenAIModel:      getEnv("OPENAI_MODEL", "gpt-4o"),
		AnthropicAPIKey:  getEnv("ANTHROPIC_API_KEY", ""),
		AnthropicModel:   getEnv("ANTHROPIC_MODEL", "claude-sonnet-4-20250514"),
		GeminiAPIKey:     getEnv("GEMINI_API_KEY", ""),
		GeminiModel:      getEnv("GEMINI_MODEL", "gemini-2.5-flash"),
		PerplexityAPIKey: getEnv("PERPLEXITY_API_KEY", ""),
		PerplexityModel:  getEnv("PERPLEXITY_MODEL", "llama-3.1-sonar-small-128k-online"),

		QueryTimeout: time.Duration(getIntEnv("QUERY_TIMEOUT_SECONDS", 30)) * time.Second,

		Schedule:       getEnv("SCHEDULE", "weekly"),
		AlertThreshold: getFloatEnv("ALERT_THRESHOLD", 40),

		StorageBackend:   getEnv("STORAGE_BACKEND", "local"),
		StorageAccount:   getEnv("STORAGE_ACCOUNT", ""),
		StorageContainer: getEnv("STORAGE_CONTAINER", "analysis-results"),
		LocalStorageDir:  getEnv("LOCAL_STORAGE_DIR", "./results"),

		NotificationMethod: getEnv("NOTIFICATION_METHOD", "none"),
		TeamsWebhookURL:    getEnv("TEAMS_WEBHOOK_URL", ""),
		SMTPHost:           getEnv("SMTP_HOST", ""),
		SMTPPort:           getIntEnv("SMTP_PORT", 587),
		SMTPUsername:       getEnv("SMTP_USERNAME", ""),
		SMTPPassword:       getEnv("SMTP_PASSWORD", ""),
		EmailTo:            getEnv("EMAIL_TO", ""),
		EmailFrom:          getEnv("EMAIL_FROM", ""),
	}

	// Validate required configuration
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

func (c *Config) validate() error {
	if c.Schedule != "daily" && c.Schedule != "weekly" {
		return fmt.Errorf("SCHEDULE must be 'daily' or 'weekly'")
	}

	if c.StorageBackend != "azure" && c.StorageBackend != "local" {
		return fmt.Errorf("STORAGE_BACKEND must be 'azure' or 'local'")
	}
	if c.StorageBackend == "azure" && c.StorageAccount == "" {
		return fmt.Errorf("STORAGE_ACCOUNT is required when STORAGE_BACKEND is 'azure'")
	}

	switch c.NotificationMethod {
	case "none":
	case "teams":
		if c.TeamsWebhookURL == "" {
			return fmt.Errorf("TEAMS_WEBHOOK_URL is required when NOTIFICATION_METHOD is 'teams'")
		}
	case "email":
		if c.SMTPHost == "" || c.SMTPUsername == "" || c.SMTPPassword == "" {
			return fmt.Errorf("SMTP configuration is required when NOTIFICATION_METHOD is 'email'")
		}
		if c.EmailTo == "" {
			return fmt.Errorf("EMAIL_TO is required when NOTIFICATION_METHOD is 'email'")
		}
	default:
		return fmt.Errorf("NOTIFICATION_METHOD must be 'teams', 'email' or 'none'")
	}

	if c.PromptCount < 10 || c.PromptCount > 50 {
		return fmt.Errorf("PROMPT_COUNT must be between 10 and 50")
	}

	if len(c.Competitors) > 10 {
		return fmt.Errorf("COMPETITORS supports at most 10 entries")
	}

	return nil
}

// Helper functions for environment variable parsing
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getBoolEnv(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getFloatEnv(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseFloat(value, 64); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getSliceEnv(key string, defaultValue []string) []string {
	if value := os.Getenv(key); value != "" {
		parts := strings.Split(value, ",")
		cleaned := make([]string, 0, len(parts))
		for _, part := range parts {
			if trimmed := strings.TrimSpace(part); trimmed != "" {
				cleaned = append(cleaned, trimmed)
			}
		}
		return cleaned
	}
	return defaultValue
}
