package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/brandscope/visibility-bot/internal/config"
	"github.com/brandscope/visibility-bot/internal/models"
	"github.com/brandscope/visibility-bot/internal/pipeline"
	"github.com/brandscope/visibility-bot/internal/platforms"
	"github.com/brandscope/visibility-bot/internal/scoring"
	"github.com/brandscope/visibility-bot/internal/storage"
)

// cannedPlatform replays a scripted response so the pipeline can run
// without any API keys
type cannedPlatform struct {
	name     string
	response string
}

func (p *cannedPlatform) GetName() string        { return p.name }
func (p *cannedPlatform) GetDisplayName() string { return strings.ToUpper(p.name) }
func (p *cannedPlatform) IsEnabled() bool        { return true }

func (p *cannedPlatform) Query(ctx context.Context, prompt string) (string, error) {
	return p.response, nil
}

// ConsoleNotification prints the report instead of delivering it
type ConsoleNotification struct{}

func (c *ConsoleNotification) SendReport(bundle *models.ResultBundle) error {
	score := bundle.VisibilityScore

	fmt.Println("\n🎉 REPORT GENERATED!")
	fmt.Printf("📊 Overall Score: %.1f/100 (%s)\n", score.OverallScore, scoring.PositionLabel(score.OverallScore))
	fmt.Printf("🏁 Market Rank: #%d of %d\n", bundle.CompetitorAnalysis.MarketRank, len(bundle.CompetitorAnalysis.Competitors)+1)
	fmt.Printf("💬 Total Mentions: %d\n", bundle.BrandAnalysis.TotalMentions)

	fmt.Println("📍 Platforms:")
	for platform, count := range bundle.BrandAnalysis.PlatformMentions {
		fmt.Printf("   • %s: %d mentions\n", platform, count)
	}

	if len(score.Insights) > 0 {
		fmt.Println("💡 Insights:")
		for _, insight := range score.Insights {
			fmt.Printf("   • %s\n", insight)
		}
	}

	if len(score.Recommendations) > 0 {
		fmt.Println("📝 Recommendations:")
		for i, recommendation := range score.Recommendations {
			if i >= 3 {
				break
			}
			fmt.Printf("   %d. %s\n", i+1, recommendation)
		}
	}

	return nil
}

func (c *ConsoleNotification) SendAlert(subject, message string) error {
	fmt.Printf("🚨 ALERT: %s - %s\n", subject, message)
	return nil
}

func main() {
	fmt.Println("🧪 Brand Visibility Bot - Local Pipeline Test")
	fmt.Println("=============================================")

	// Canned platforms, so no API keys are needed
	registry := platforms.NewRegistryOf(
		&cannedPlatform{
			name: "openai",
			response: "Here are the best invoicing platforms:\n" +
				"1. Acme Payments - excellent automation and reliable support.\n" +
				"2. Zenith Labs - solid option for startups.\n" +
				"3. BillFlow - affordable plans for small teams.",
		},
		&cannedPlatform{
			name:     "gemini",
			response: "Zenith Labs has gained traction recently, but Acme Payments remains a reliable choice for invoicing.",
		},
	)
	gateway := platforms.NewGateway(registry, 10*time.Second, nil)

	// Results land in a temp directory for inspection
	dir, err := os.MkdirTemp("", "visibility-test-")
	if err != nil {
		log.Fatalf("Failed to create temp directory: %v", err)
	}

	store, err := storage.NewLocalStorage(dir)
	if err != nil {
		log.Fatalf("Failed to initialize storage: %v", err)
	}

	cfg := &config.Config{
		AlertThreshold: 40,
	}

	service := pipeline.NewService(cfg, gateway, store, &ConsoleNotification{}, nil)

	profile := models.BrandProfile{
		BrandName:   "Acme Payments",
		Industry:    "FinTech",
		Competitors: []string{"Zenith Labs", "BillFlow"},
		PromptCount: 10,
		Platforms:   []string{"openai", "gemini"},
	}

	fmt.Printf("🔍 Running full analysis for %s (%s)...\n", profile.BrandName, profile.Industry)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	bundle, err := service.Run(ctx, profile)
	if err != nil {
		log.Fatalf("Pipeline run failed: %v", err)
	}

	fmt.Printf("\n📦 Run %s published\n", bundle.RunID)
	fmt.Printf("   • %d prompts across %d platforms\n", len(bundle.Prompts), len(bundle.Responses))

	names, err := store.List(ctx, "analysis-")
	if err == nil {
		for _, name := range names {
			fmt.Printf("   • Stored: %s/%s\n", dir, name)
		}
	}

	fmt.Println("\n✅ Local pipeline test completed!")
	fmt.Println("\n🚀 Ready for real runs:")
	fmt.Println("   • Add AI platform API keys to .env")
	fmt.Println("   • Start the bot with: make run")
	fmt.Println("   • Trigger an analysis with: curl -X POST localhost:8080/trigger")
}
