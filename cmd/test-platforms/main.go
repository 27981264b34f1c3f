package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/brandscope/visibility-bot/internal/config"
	"github.com/brandscope/visibility-bot/internal/platforms"
	"github.com/joho/godotenv"
)

func main() {
	fmt.Println("🔍 Brand Visibility Bot - Platform Connectivity Test")
	fmt.Println("====================================================")

	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	registry := platforms.NewRegistry(cfg)
	gateway := platforms.NewGateway(registry, cfg.QueryTimeout, nil)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	fmt.Println("\n📡 Testing AI Platforms...")
	fmt.Println(strings.Repeat("-", 40))

	reachable := 0
	for _, id := range registry.Names() {
		if testPlatform(ctx, gateway, id) {
			reachable++
		}
	}

	if reachable == 0 {
		fmt.Println("\n❌ No platforms are reachable. Configure at least one API key in .env.")
		os.Exit(1)
	}

	fmt.Println("\n✅ Platform connectivity test completed!")
	fmt.Println("\n💡 Next steps:")
	fmt.Println("   • Configure missing API keys in .env file")
	fmt.Println("   • Run the full bot with: make run")
	fmt.Println("   • Trigger an analysis with: curl -X POST localhost:8080/trigger")
}

func testPlatform(ctx context.Context, gateway *platforms.Gateway, id string) bool {
	platform, ok := gateway.Registry().Get(id)
	if !ok {
		return false
	}

	fmt.Printf("🔸 Testing %s... ", platform.GetDisplayName())

	if !platform.IsEnabled() {
		fmt.Printf("⚠️  DISABLED (missing API key)\n")
		return false
	}

	response := gateway.Query(ctx, id, "Hello, this is a test message.")
	if gateway.IsErrorResponse(response) {
		fmt.Printf("❌ ERROR: %s\n", response)
		return false
	}

	fmt.Printf("✅ SUCCESS\n")
	fmt.Printf("   📝 Sample: %q\n", truncate(response, 80))
	return true
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
