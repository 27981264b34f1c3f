package notifications

import (
	"bytes"
	"fmt"
	"html/template"
	"sort"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/sirupsen/logrus"
	"gopkg.in/gomail.v2"

	"github.com/brandscope/visibility-bot/internal/config"
	"github.com/brandscope/visibility-bot/internal/models"
	"github.com/brandscope/visibility-bot/internal/scoring"
)

// Service sends visibility reports and alerts via the configured channel
type Service struct {
	config *config.Config
	client *resty.Client
}

// Ensure Service implements Interface
var _ Interface = (*Service)(nil)

// TeamsMessage represents a Microsoft Teams message
type TeamsMessage struct {
	Type     string         `json:"@type"`
	Context  string         `json:"@context"`
	Title    string         `json:"title"`
	Text     string         `json:"text"`
	Sections []TeamsSection `json:"sections,omitempty"`
}

type TeamsSection struct {
	ActivityTitle    string      `json:"activityTitle,omitempty"`
	ActivitySubtitle string      `json:"activitySubtitle,omitempty"`
	ActivityText     string      `json:"activityText,omitempty"`
	Facts            []TeamsFact `json:"facts,omitempty"`
	Markdown         bool        `json:"markdown,omitempty"`
}

type TeamsFact struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// NewService creates a new notification service
func NewService(cfg *config.Config) *Service {
	return &Service{
		config: cfg,
		client: resty.New().SetTimeout(30 * time.Second),
	}
}

// SendReport sends a completed analysis via the configured notification channel
func (s *Service) SendReport(bundle *models.ResultBundle) error {
	switch s.config.NotificationMethod {
	case "teams":
		if err := s.sendToTeams(bundle); err != nil {
			logrus.Errorf("Failed to send Teams notification: %v", err)
			return fmt.Errorf("failed to send Teams notification: %w", err)
		}
		logrus.Info("Successfully sent report to Teams")
	case "email":
		if err := s.sendEmail(bundle); err != nil {
			logrus.Errorf("Failed to send email notification: %v", err)
			return fmt.Errorf("failed to send email notification: %w", err)
		}
		logrus.Info("Successfully sent report via email")
	default:
		logrus.Infof("Notifications disabled, skipping report for %s", bundle.Profile.BrandName)
	}

	return nil
}

// SendAlert sends an urgent notification outside the regular report cycle
func (s *Service) SendAlert(subject, message string) error {
	switch s.config.NotificationMethod {
	case "teams":
		alert := &TeamsMessage{
			Type:    "MessageCard",
			Context: "https://schema.org/extensions",
			Title:   subject,
			Text:    message,
		}

		resp, err := s.client.R().
			SetHeader("Content-Type", "application/json").
			SetBody(alert).
			Post(s.config.TeamsWebhookURL)
		if err != nil {
			return fmt.Errorf("failed to send Teams alert: %w", err)
		}
		if resp.StatusCode() != 200 {
			return fmt.Errorf("Teams webhook returned status %d: %s", resp.StatusCode(), string(resp.Body()))
		}
	case "email":
		m := gomail.NewMessage()
		m.SetHeader("From", s.fromAddress())
		m.SetHeader("To", s.config.EmailTo)
		m.SetHeader("Subject", subject)
		m.SetBody("text/plain", message)

		d := gomail.NewDialer(s.config.SMTPHost, s.config.SMTPPort, s.config.SMTPUsername, s.config.SMTPPassword)
		if err := d.DialAndSend(m); err != nil {
			return fmt.Errorf("failed to send alert email: %w", err)
		}
	default:
		logrus.Infof("Alert suppressed, notifications disabled: %s - %s", subject, message)
	}

	return nil
}

func (s *Service) sendToTeams(bundle *models.ResultBundle) error {
	message := s.buildTeamsMessage(bundle)

	resp, err := s.client.R().
		SetHeader("Content-Type", "application/json").
		SetBody(message).
		Post(s.config.TeamsWebhookURL)
	if err != nil {
		return fmt.Errorf("failed to send Teams message: %w", err)
	}

	if resp.StatusCode() != 200 {
		return fmt.Errorf("Teams webhook returned status %d: %s", resp.StatusCode(), string(resp.Body()))
	}

	return nil
}

func (s *Service) buildTeamsMessage(bundle *models.ResultBundle) *TeamsMessage {
	score := bundle.VisibilityScore.OverallScore

	message := &TeamsMessage{
		Type:    "MessageCard",
		Context: "https://schema.org/extensions",
		Title:   fmt.Sprintf("AI Visibility Report - %s", bundle.Profile.BrandName),
		Text:    fmt.Sprintf("Overall visibility score: %.1f/100 (%s)", score, scoring.PositionLabel(score)),
	}

	facts := []TeamsFact{
		{Name: "Brand", Value: bundle.Profile.BrandName},
		{Name: "Overall Score", Value: fmt.Sprintf("%.1f / 100", score)},
		{Name: "Market Position", Value: scoring.PositionLabel(score)},
		{Name: "Market Rank", Value: fmt.Sprintf("#%d of %d", bundle.CompetitorAnalysis.MarketRank, len(bundle.CompetitorAnalysis.Competitors)+1)},
		{Name: "Total Mentions", Value: fmt.Sprintf("%d", bundle.BrandAnalysis.TotalMentions)},
		{Name: "Generated", Value: bundle.Timestamp.Format("2006-01-02 15:04:05 UTC")},
	}

	for _, platform := range sortedPlatformKeys(bundle.BrandAnalysis.PlatformMentions) {
		facts = append(facts, TeamsFact{
			Name:  fmt.Sprintf("%s Mentions", strings.ToUpper(platform)),
			Value: fmt.Sprintf("%d", bundle.BrandAnalysis.PlatformMentions[platform]),
		})
	}

	message.Sections = append(message.Sections, TeamsSection{
		ActivityTitle: "Summary",
		Facts:         facts,
		Markdown:      true,
	})

	if len(bundle.VisibilityScore.Recommendations) > 0 {
		limit := 3
		if len(bundle.VisibilityScore.Recommendations) < limit {
			limit = len(bundle.VisibilityScore.Recommendations)
		}

		var lines []string
		for _, rec := range bundle.VisibilityScore.Recommendations[:limit] {
			lines = append(lines, fmt.Sprintf("- %s", rec))
		}

		message.Sections = append(message.Sections, TeamsSection{
			ActivityTitle: "Top Recommendations",
			ActivityText:  strings.Join(lines, "\n\n"),
			Markdown:      true,
		})
	}

	return message
}

func (s *Service) sendEmail(bundle *models.ResultBundle) error {
	subject := fmt.Sprintf("AI Visibility Report - %s (score %.1f)",
		bundle.Profile.BrandName, bundle.VisibilityScore.OverallScore)

	htmlBody, err := s.buildEmailHTML(bundle)
	if err != nil {
		return fmt.Errorf("failed to build email HTML: %w", err)
	}

	textBody := s.buildEmailText(bundle)

	m := gomail.NewMessage()
	m.SetHeader("From", s.fromAddress())
	m.SetHeader("To", s.config.EmailTo)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", textBody)
	m.AddAlternative("text/html", htmlBody)

	d := gomail.NewDialer(s.config.SMTPHost, s.config.SMTPPort, s.config.SMTPUsername, s.config.SMTPPassword)

	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	return nil
}

func (s *Service) fromAddress() string {
	if s.config.EmailFrom != "" {
		return s.config.EmailFrom
	}
	return s.config.SMTPUsername
}

func (s *Service) buildEmailHTML(bundle *models.ResultBundle) (string, error) {
	tmpl := `
<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <title>AI Visibility Report</title>
    <style>
        body { font-family: Arial, sans-serif; margin: 20px; }
        .header { background-color: #0078d4; color: white; padding: 20px; border-radius: 5px; }
        .score { font-size: 2em; font-weight: bold; margin: 5px 0; }
        .summary { background-color: #f5f5f5; padding: 15px; margin: 20px 0; border-radius: 5px; }
        .component { border-left: 4px solid #0078d4; padding: 10px; margin: 10px 0; background-color: #fafafa; }
        .insight { border-left: 4px solid #107c10; padding: 10px; margin: 10px 0; background-color: #fafafa; }
        .recommendation { border-left: 4px solid #605e5c; padding: 10px; margin: 10px 0; background-color: #fafafa; }
        .meta { color: #666; font-size: 0.9em; }
    </style>
</head>
<body>
    <div class="header">
        <h1>AI Visibility Report - {{.Profile.BrandName}}</h1>
        <p class="score">{{printf "%.1f" .VisibilityScore.OverallScore}} / 100</p>
        <p>Report generated on {{.Timestamp.Format "January 2, 2006 at 3:04 PM UTC"}}</p>
    </div>

    <div class="summary">
        <h2>Summary</h2>
        <p><strong>Total Mentions:</strong> {{.BrandAnalysis.TotalMentions}}</p>
        <p><strong>Market Rank:</strong> #{{.CompetitorAnalysis.MarketRank}}</p>
        {{range $platform, $analysis := .BrandAnalysis.Platforms}}
        <p><strong>{{$platform | upper}}:</strong> {{$analysis.Mentions}} mentions ({{pct $analysis.MentionRate}} of responses)</p>
        {{end}}
    </div>

    <h2>Score Breakdown</h2>
    {{range $name, $entry := .VisibilityScore.Breakdown}}
    <div class="component">
        <strong>{{label $name}}:</strong> {{printf "%.1f" $entry.Score}} (weight {{pct $entry.Weight}})
        <p class="meta">{{$entry.Description}}</p>
    </div>
    {{end}}

    {{if .VisibilityScore.Insights}}
    <h2>Key Insights</h2>
    {{range .VisibilityScore.Insights}}
    <div class="insight">{{.}}</div>
    {{end}}
    {{end}}

    {{if .VisibilityScore.Recommendations}}
    <h2>Recommendations</h2>
    {{range .VisibilityScore.Recommendations}}
    <div class="recommendation">{{.}}</div>
    {{end}}
    {{end}}

    {{if .BrandAnalysis.Records}}
    <h2>Sample Mentions</h2>
    {{range $index, $record := .BrandAnalysis.Records}}
        {{if lt $index 10}}
        <div class="component">
            <div class="meta">{{$record.Platform | upper}} | {{$record.Sentiment}}{{if $record.Rank}} | rank {{$record.Rank}}{{end}}</div>
            <p>{{$record.Context}}</p>
            <p class="meta">Prompt: {{truncate $record.Prompt 120}}</p>
        </div>
        {{end}}
    {{end}}
    {{end}}

    <hr>
    <p><small>This report was generated automatically by the Brand Visibility Bot.</small></p>
</body>
</html>
`

	t := template.New("email").Funcs(template.FuncMap{
		"upper": strings.ToUpper,
		"label": componentLabel,
		"truncate": func(s string, length int) string {
			if len(s) <= length {
				return s
			}
			return s[:length] + "..."
		},
		"pct": func(v float64) string {
			return fmt.Sprintf("%.1f%%", v*100)
		},
	})

	t, err := t.Parse(tmpl)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := t.Execute(&buf, bundle); err != nil {
		return "", err
	}

	return buf.String(), nil
}

func (s *Service) buildEmailText(bundle *models.ResultBundle) string {
	var text strings.Builder
	score := bundle.VisibilityScore

	text.WriteString(fmt.Sprintf("AI Visibility Report - %s\n", bundle.Profile.BrandName))
	text.WriteString(fmt.Sprintf("Generated: %s\n\n", bundle.Timestamp.Format("2006-01-02 15:04:05 UTC")))

	text.WriteString("OVERALL SCORE\n")
	text.WriteString("=============\n")
	text.WriteString(fmt.Sprintf("%.1f / 100 (%s)\n", score.OverallScore, scoring.PositionLabel(score.OverallScore)))
	text.WriteString(fmt.Sprintf("Market Rank: #%d\n", bundle.CompetitorAnalysis.MarketRank))
	text.WriteString(fmt.Sprintf("Total Mentions: %d\n", bundle.BrandAnalysis.TotalMentions))

	if len(score.Breakdown) > 0 {
		text.WriteString("\nSCORE BREAKDOWN\n")
		text.WriteString("===============\n")
		for _, name := range sortedBreakdownKeys(score.Breakdown) {
			entry := score.Breakdown[name]
			text.WriteString(fmt.Sprintf("%s: %.1f (weight %.0f%%)\n", componentLabel(name), entry.Score, entry.Weight*100))
		}
	}

	if len(score.Insights) > 0 {
		text.WriteString("\nKEY INSIGHTS\n")
		text.WriteString("============\n")
		for _, insight := range score.Insights {
			text.WriteString(fmt.Sprintf("- %s\n", insight))
		}
	}

	if len(score.Recommendations) > 0 {
		text.WriteString("\nRECOMMENDATIONS\n")
		text.WriteString("===============\n")
		for i, rec := range score.Recommendations {
			text.WriteString(fmt.Sprintf("%d. %s\n", i+1, rec))
		}
	}

	text.WriteString("\n---\nThis report was generated automatically by the Brand Visibility Bot.\n")

	return text.String()
}

// componentLabel turns a score component key like "mention_frequency" into a
// display name
func componentLabel(name string) string {
	return strings.Title(strings.ReplaceAll(name, "_", " "))
}

func sortedPlatformKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

func sortedBreakdownKeys(m map[string]models.ScoreBreakdownEntry) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
