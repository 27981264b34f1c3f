package notifications

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brandscope/visibility-bot/internal/config"
	"github.com/brandscope/visibility-bot/internal/models"
)

func sampleBundle() *models.ResultBundle {
	rank := 1
	avgRank := 1.5
	return &models.ResultBundle{
		RunID: "run-123",
		Profile: models.BrandProfile{
			BrandName:   "Acme Corp",
			Industry:    "fintech",
			Competitors: []string{"Zenith Labs", "Nimbus AI"},
			PromptCount: 10,
			Platforms:   []string{"openai", "gemini"},
		},
		Prompts: []string{"What is the best invoicing platform?"},
		BrandAnalysis: models.EntityAnalysis{
			Entity:           "Acme Corp",
			TotalMentions:    12,
			PlatformMentions: map[string]int{"openai": 8, "gemini": 4},
			Platforms: map[string]*models.PlatformAnalysis{
				"openai": {Mentions: 8, Responses: 10, MentionRate: 0.8, AverageRank: &avgRank},
				"gemini": {Mentions: 4, Responses: 10, MentionRate: 0.4},
			},
			Records: []models.MentionRecord{
				{
					Entity:    "Acme Corp",
					Platform:  "openai",
					Prompt:    "What is the best invoicing platform?",
					Matched:   "Acme Corp",
					Context:   "...businesses pick Acme Corp for invoicing...",
					Rank:      &rank,
					Sentiment: "positive",
					Counted:   true,
				},
			},
			OverallSentiment: models.SentimentTally{Positive: 10, Neutral: 2},
		},
		CompetitorAnalysis: models.CompetitiveReport{
			MarketRank: 1,
			Competitors: []models.EntityAnalysis{
				{Entity: "Zenith Labs", TotalMentions: 6},
				{Entity: "Nimbus AI", TotalMentions: 3},
			},
		},
		VisibilityScore: models.VisibilityScore{
			OverallScore: 72.5,
			Components:   map[string]float64{"mention_frequency": 80},
			Breakdown: map[string]models.ScoreBreakdownEntry{
				"mention_frequency": {Score: 80, Weight: 0.30, Description: "Excellent mention frequency across platforms"},
			},
			Insights: []string{"OPENAI is your strongest platform with 8 mentions"},
			Recommendations: []string{
				"Regularly monitor AI platform responses to track visibility changes",
				"Create AI-friendly content that answers common industry questions",
			},
		},
		Timestamp: time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC),
	}
}

func TestSendReportToTeams(t *testing.T) {
	var captured []byte
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		captured = body
	}))
	defer server.Close()

	svc := NewService(&config.Config{
		NotificationMethod: "teams",
		TeamsWebhookURL:    server.URL,
	})

	require.NoError(t, svc.SendReport(sampleBundle()))

	var message TeamsMessage
	require.NoError(t, json.Unmarshal(captured, &message))

	assert.Equal(t, "MessageCard", message.Type)
	assert.Equal(t, "AI Visibility Report - Acme Corp", message.Title)
	assert.Contains(t, message.Text, "72.5/100")

	require.NotEmpty(t, message.Sections)
	facts := map[string]string{}
	for _, fact := range message.Sections[0].Facts {
		facts[fact.Name] = fact.Value
	}
	assert.Equal(t, "Acme Corp", facts["Brand"])
	assert.Equal(t, "72.5 / 100", facts["Overall Score"])
	assert.Equal(t, "Strong Competitor", facts["Market Position"])
	assert.Equal(t, "#1 of 3", facts["Market Rank"])
	assert.Equal(t, "12", facts["Total Mentions"])
	assert.Equal(t, "8", facts["OPENAI Mentions"])
	assert.Equal(t, "4", facts["GEMINI Mentions"])

	require.Len(t, message.Sections, 2)
	assert.Equal(t, "Top Recommendations", message.Sections[1].ActivityTitle)
	assert.Contains(t, message.Sections[1].ActivityText, "Regularly monitor AI platform responses")
}

func TestSendReportTeamsFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	svc := NewService(&config.Config{
		NotificationMethod: "teams",
		TeamsWebhookURL:    server.URL,
	})

	err := svc.SendReport(sampleBundle())
	assert.ErrorContains(t, err, "Teams webhook returned status 500")
}

func TestSendReportDisabled(t *testing.T) {
	svc := NewService(&config.Config{NotificationMethod: "none"})
	assert.NoError(t, svc.SendReport(sampleBundle()))
}

func TestSendAlertToTeams(t *testing.T) {
	var captured []byte
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		captured = body
	}))
	defer server.Close()

	svc := NewService(&config.Config{
		NotificationMethod: "teams",
		TeamsWebhookURL:    server.URL,
	})

	require.NoError(t, svc.SendAlert("Visibility Alert - Acme Corp", "Overall score 32.5 fell below the alert threshold 40.0"))

	var message TeamsMessage
	require.NoError(t, json.Unmarshal(captured, &message))
	assert.Equal(t, "Visibility Alert - Acme Corp", message.Title)
	assert.Contains(t, message.Text, "fell below the alert threshold")
	assert.Empty(t, message.Sections)
}

func TestSendAlertDisabled(t *testing.T) {
	svc := NewService(&config.Config{NotificationMethod: "none"})
	assert.NoError(t, svc.SendAlert("subject", "message"))
}

func TestBuildEmailHTML(t *testing.T) {
	svc := NewService(&config.Config{NotificationMethod: "email"})

	html, err := svc.buildEmailHTML(sampleBundle())
	require.NoError(t, err)

	assert.Contains(t, html, "AI Visibility Report - Acme Corp")
	assert.Contains(t, html, "72.5")
	assert.Contains(t, html, "Mention Frequency")
	assert.Contains(t, html, "weight 30.0%")
	assert.Contains(t, html, "80.0% of responses")
	assert.Contains(t, html, "OPENAI is your strongest platform with 8 mentions")
	assert.Contains(t, html, "Create AI-friendly content that answers common industry questions")
	assert.Contains(t, html, "rank 1")
	assert.Contains(t, html, "businesses pick Acme Corp for invoicing")
}

func TestBuildEmailText(t *testing.T) {
	svc := NewService(&config.Config{NotificationMethod: "email"})

	text := svc.buildEmailText(sampleBundle())

	assert.Contains(t, text, "AI Visibility Report - Acme Corp")
	assert.Contains(t, text, "72.5 / 100 (Strong Competitor)")
	assert.Contains(t, text, "Market Rank: #1")
	assert.Contains(t, text, "Mention Frequency: 80.0 (weight 30%)")
	assert.Contains(t, text, "- OPENAI is your strongest platform with 8 mentions")
	assert.Contains(t, text, "1. Regularly monitor AI platform responses to track visibility changes")
}

func TestComponentLabel(t *testing.T) {
	assert.Equal(t, "Mention Frequency", componentLabel("mention_frequency"))
	assert.Equal(t, "Competitive Position", componentLabel("competitive_position"))
}
