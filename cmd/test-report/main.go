package main

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/brandscope/visibility-bot/internal/analysis"
	"github.com/brandscope/visibility-bot/internal/config"
	"github.com/brandscope/visibility-bot/internal/models"
	"github.com/brandscope/visibility-bot/internal/notifications"
	"github.com/brandscope/visibility-bot/internal/scoring"
	"github.com/joho/godotenv"
)

func main() {
	fmt.Println("🤖 Brand Visibility Bot - Test Report Generator")
	fmt.Println("===============================================")

	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	// Sample responses as the AI platforms would return them
	responses := models.PlatformResponses{
		"openai": {
			{
				Prompt: "What are the best payment processing platforms for small businesses?",
				Response: "Here are the leading options:\n" +
					"1. NovaPay - strong automation and excellent customer support.\n" +
					"2. Stripe - powerful developer tooling.\n" +
					"3. Square - good for in-person sales.",
			},
			{
				Prompt:   "Which payment provider has the lowest fees?",
				Response: "Square and Stripe both publish transparent pricing. NovaPay offers competitive rates for recurring billing.",
			},
		},
		"anthropic": {
			{
				Prompt:   "Recommend a payment platform for a subscription business.",
				Response: "For subscriptions, NovaPay is a popular choice thanks to reliable recurring billing. Stripe is another excellent option.",
			},
			{
				Prompt:   "What should I look for in a payment processor?",
				Response: "Look for transparent pricing, good documentation, and fraud protection.",
			},
		},
		"gemini": {
			{
				Prompt:   "Compare payment processors for online stores.",
				Response: "Stripe leads on integrations. Square bundles hardware. NovaPay focuses on invoicing workflows.",
			},
		},
	}

	brandName := "NovaPay"
	competitors := []string{"Stripe", "Square"}

	fmt.Printf("\n📊 Analyzing %d sample responses for %s...\n", countResponses(responses), brandName)

	// Run the analysis stages the pipeline would run
	analyzer := analysis.NewAnalyzer(nil)
	aggregator := analysis.NewAggregator(analyzer)
	scorer := scoring.NewScorer()

	brand := analyzer.AnalyzeMentions(responses, brandName)
	competitorAnalyses := aggregator.AnalyzeCompetitors(responses, competitors)
	report := aggregator.BuildReport(brand, competitorAnalyses)
	score := scorer.Score(brand, competitorAnalyses)

	bundle := &models.ResultBundle{
		RunID: "test-report",
		Profile: models.BrandProfile{
			BrandName:   brandName,
			Industry:    "FinTech",
			Competitors: competitors,
			PromptCount: 10,
			Platforms:   []string{"openai", "anthropic", "gemini"},
		},
		Responses:          responses,
		BrandAnalysis:      brand,
		CompetitorAnalysis: report,
		VisibilityScore:    score,
		Timestamp:          time.Now().UTC(),
	}

	printReport(bundle)

	if err := saveReportToFile(bundle); err != nil {
		fmt.Printf("\n⚠️  Warning: Could not save to file: %v\n", err)
	}

	sendConfiguredNotification(bundle)

	fmt.Println("\n✅ Test report generation completed!")
	fmt.Println("\n💡 Next steps:")
	fmt.Println("   • Check the 'test_output' directory for the saved JSON bundle")
	fmt.Println("   • Run 'go test ./internal/... -v' for more detailed tests")
	fmt.Println("   • Configure real API keys and run the full bot with 'go run cmd/bot/main.go'")
}

func printReport(bundle *models.ResultBundle) {
	score := bundle.VisibilityScore

	fmt.Println("\n" + strings.Repeat("=", 70))
	fmt.Println("📊 BRAND VISIBILITY REPORT")
	fmt.Println(strings.Repeat("=", 70))
	fmt.Printf("🏷️  Brand: %s\n", bundle.Profile.BrandName)
	fmt.Printf("🕒 Generated: %s\n", bundle.Timestamp.Format("2006-01-02 15:04:05 UTC"))
	fmt.Printf("📈 Overall Score: %.1f/100 (%s)\n", score.OverallScore, scoring.PositionLabel(score.OverallScore))
	fmt.Printf("🏁 Market Rank: #%d of %d\n", bundle.CompetitorAnalysis.MarketRank, len(bundle.CompetitorAnalysis.Competitors)+1)
	fmt.Printf("💬 Total Mentions: %d\n", bundle.BrandAnalysis.TotalMentions)

	fmt.Println("\n📍 Platforms:")
	for platform, count := range bundle.BrandAnalysis.PlatformMentions {
		fmt.Printf("   • %-12s %d mentions\n", platform+":", count)
	}

	sentiment := bundle.BrandAnalysis.OverallSentiment
	fmt.Println("\n💭 Sentiment Analysis:")
	fmt.Printf("   😊 positive:  %d\n", sentiment.Positive)
	fmt.Printf("   😐 neutral:   %d\n", sentiment.Neutral)
	fmt.Printf("   😞 negative:  %d\n", sentiment.Negative)

	fmt.Println("\n🧮 Score Breakdown:")
	for component, entry := range score.Breakdown {
		fmt.Printf("   • %-22s %.1f (weight %.0f%%)\n", component+":", entry.Score, entry.Weight*100)
	}

	fmt.Println("\n📝 Sample Mentions:")
	for i, record := range bundle.BrandAnalysis.Records {
		if i >= 5 {
			fmt.Printf("   ... and %d more mentions\n", len(bundle.BrandAnalysis.Records)-5)
			break
		}
		fmt.Printf("\n   %d. [%s] %s\n", i+1, record.Platform, record.Context)
		if record.Rank != nil {
			fmt.Printf("      ⭐ Rank: %d\n", *record.Rank)
		}
		fmt.Printf("      💭 Sentiment: %s\n", record.Sentiment)
	}

	if len(score.Recommendations) > 0 {
		fmt.Println("\n💡 Recommendations:")
		for i, recommendation := range score.Recommendations {
			fmt.Printf("   %d. %s\n", i+1, recommendation)
		}
	}

	fmt.Println("\n" + strings.Repeat("=", 70))
}

func saveReportToFile(bundle *models.ResultBundle) error {
	dir := "test_output"
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	timestamp := bundle.Timestamp.Format("2006-01-02_15-04-05")
	filename := filepath.Join(dir, fmt.Sprintf("visibility_report_%s.json", timestamp))

	data, err := json.MarshalIndent(bundle, "", "  ")
	if err != nil {
		return err
	}

	if err := os.WriteFile(filename, data, 0644); err != nil {
		return err
	}

	fmt.Printf("\n💾 Report saved to: %s\n", filename)
	return nil
}

// sendConfiguredNotification pushes the bundle through the configured channel
// so Teams card and email formatting can be checked against real delivery.
func sendConfiguredNotification(bundle *models.ResultBundle) {
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("\n📭 Skipping notification delivery: %v\n", err)
		return
	}
	if cfg.NotificationMethod == "none" {
		fmt.Println("\n📭 NOTIFICATION_METHOD is none, skipping delivery")
		return
	}

	fmt.Printf("\n📤 Sending report via %s...\n", cfg.NotificationMethod)
	if err := notifications.NewService(cfg).SendReport(bundle); err != nil {
		fmt.Printf("❌ Notification delivery failed: %v\n", err)
		return
	}
	fmt.Println("✉️  Report delivered!")
}

func countResponses(responses models.PlatformResponses) int {
	total := 0
	for _, list := range responses {
		total += len(list)
	}
	return total
}
