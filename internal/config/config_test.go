package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// clearEnv blanks every variable Load reads so a test starts from defaults
// regardless of the surrounding environment.
func clearEnv(t *testing.T) {
	t.Helper()
	keys := []string{
		"PORT", "DEBUG",
		"BRAND_NAME", "INDUSTRY", "CUSTOM_INDUSTRY", "LOCATION",
		"COMPETITORS", "PROMPT_COUNT", "PLATFORMS", "COMPETITOR_PROMPTS",
		"OPENAI_API_KEY", "OPENAI_MODEL",
		"ANTHROPIC_API_KEY", "ANTHROPIC_MODEL",
		"GEMINI_API_KEY", "GEMINI_MODEL",
		"PERPLEXITY_API_KEY", "PERPLEXITY_MODEL",
		"QUERY_TIMEOUT_SECONDS",
		"SCHEDULE", "ALERT_THRESHOLD",
		"STORAGE_BACKEND", "STORAGE_ACCOUNT", "STORAGE_CONTAINER", "LOCAL_STORAGE_DIR",
		"NOTIFICATION_METHOD", "TEAMS_WEBHOOK_URL",
		"SMTP_HOST", "SMTP_PORT", "SMTP_USERNAME", "SMTP_PASSWORD",
		"EMAIL_TO", "EMAIL_FROM",
	}
	for _, key := range keys {
		t.Setenv(key, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.False(t, cfg.Debug)
	assert.Empty(t, cfg.Competitors)
	assert.Equal(t, 20, cfg.PromptCount)
	assert.Equal(t, []string{"openai", "anthropic", "gemini", "perplexity"}, cfg.Platforms)
	assert.False(t, cfg.CompetitorPrompts)
	assert.Equal(t, "gpt-4o", cfg.OpenAIModel)
	assert.Equal(t, "claude-sonnet-4-20250514", cfg.AnthropicModel)
	assert.Equal(t, "gemini-2.5-flash", cfg.GeminiModel)
	assert.Equal(t, "llama-3.1-sonar-small-128k-online", cfg.PerplexityModel)
	assert.Equal(t, 30*time.Second, cfg.QueryTimeout)
	assert.Equal(t, "weekly", cfg.Schedule)
	assert.Equal(t, 40.0, cfg.AlertThreshold)
	assert.Equal(t, "local", cfg.StorageBackend)
	assert.Equal(t, "analysis-results", cfg.StorageContainer)
	assert.Equal(t, "./results", cfg.LocalStorageDir)
	assert.Equal(t, "none", cfg.NotificationMethod)
	assert.Equal(t, 587, cfg.SMTPPort)
}

func TestLoadOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "9090")
	t.Setenv("DEBUG", "true")
	t.Setenv("BRAND_NAME", "Acme Corp")
	t.Setenv("INDUSTRY", "fintech")
	t.Setenv("PROMPT_COUNT", "15")
	t.Setenv("PLATFORMS", "openai,gemini")
	t.Setenv("COMPETITOR_PROMPTS", "true")
	t.Setenv("QUERY_TIMEOUT_SECONDS", "5")
	t.Setenv("SCHEDULE", "daily")
	t.Setenv("ALERT_THRESHOLD", "55.5")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Port)
	assert.True(t, cfg.Debug)
	assert.Equal(t, "Acme Corp", cfg.BrandName)
	assert.Equal(t, "fintech", cfg.Industry)
	assert.Equal(t, 15, cfg.PromptCount)
	assert.Equal(t, []string{"openai", "gemini"}, cfg.Platforms)
	assert.True(t, cfg.CompetitorPrompts)
	assert.Equal(t, 5*time.Second, cfg.QueryTimeout)
	assert.Equal(t, "daily", cfg.Schedule)
	assert.Equal(t, 55.5, cfg.AlertThreshold)
}

func TestLoadTrimsListEntries(t *testing.T) {
	clearEnv(t)
	t.Setenv("COMPETITORS", " Zenith Labs , Nimbus AI ,,TechFlow ")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, []string{"Zenith Labs", "Nimbus AI", "TechFlow"}, cfg.Competitors)
}

func TestLoadIgnoresUnparseableValues(t *testing.T) {
	clearEnv(t)
	t.Setenv("PROMPT_COUNT", "not-a-number")
	t.Setenv("DEBUG", "sometimes")
	t.Setenv("ALERT_THRESHOLD", "high")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 20, cfg.PromptCount)
	assert.False(t, cfg.Debug)
	assert.Equal(t, 40.0, cfg.AlertThreshold)
}

func TestLoadValidation(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		wantErr string
	}{
		{
			name:    "rejects unknown schedule",
			env:     map[string]string{"SCHEDULE": "monthly"},
			wantErr: "SCHEDULE must be 'daily' or 'weekly'",
		},
		{
			name:    "rejects unknown storage backend",
			env:     map[string]string{"STORAGE_BACKEND": "s3"},
			wantErr: "STORAGE_BACKEND must be 'azure' or 'local'",
		},
		{
			name:    "azure storage requires an account",
			env:     map[string]string{"STORAGE_BACKEND": "azure"},
			wantErr: "STORAGE_ACCOUNT is required",
		},
		{
			name:    "teams notifications require a webhook",
			env:     map[string]string{"NOTIFICATION_METHOD": "teams"},
			wantErr: "TEAMS_WEBHOOK_URL is required",
		},
		{
			name: "email notifications require smtp settings",
			env: map[string]string{
				"NOTIFICATION_METHOD": "email",
				"EMAIL_TO":            "team@example.com",
			},
			wantErr: "SMTP configuration is required",
		},
		{
			name: "email notifications require a recipient",
			env: map[string]string{
				"NOTIFICATION_METHOD": "email",
				"SMTP_HOST":           "smtp.example.com",
				"SMTP_USERNAME":       "bot",
				"SMTP_PASSWORD":       "secret",
			},
			wantErr: "EMAIL_TO is required",
		},
		{
			name:    "rejects unknown notification method",
			env:     map[string]string{"NOTIFICATION_METHOD": "pager"},
			wantErr: "NOTIFICATION_METHOD must be 'teams', 'email' or 'none'",
		},
		{
			name:    "rejects prompt count below range",
			env:     map[string]string{"PROMPT_COUNT": "5"},
			wantErr: "PROMPT_COUNT must be between 10 and 50",
		},
		{
			name:    "rejects prompt count above range",
			env:     map[string]string{"PROMPT_COUNT": "80"},
			wantErr: "PROMPT_COUNT must be between 10 and 50",
		},
		{
			name:    "rejects oversized competitor list",
			env:     map[string]string{"COMPETITORS": "a,b,c,d,e,f,g,h,i,j,k"},
			wantErr: "COMPETITORS supports at most 10 entries",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			for key, value := range tt.env {
				t.Setenv(key, value)
			}

			_, err := Load()
			require.Error(t, err)
			assert.ErrorContains(t, err, "configuration validation failed")
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}
