package analysis

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/brandscope/visibility-bot/internal/models"
)

// maxCompetitorWorkers bounds the per-competitor analysis pool
const maxCompetitorWorkers = 5

// Aggregator runs the mention analyzer over every competitor and derives
// the brand's competitive picture from the combined rollups.
type Aggregator struct {
	analyzer *Analyzer
}

// NewAggregator creates an aggregator; a nil analyzer gets the default
// keyword-sentiment analyzer.
func NewAggregator(analyzer *Analyzer) *Aggregator {
	if analyzer == nil {
		analyzer = NewAnalyzer(nil)
	}
	return &Aggregator{analyzer: analyzer}
}

// AnalyzeCompetitors analyzes every competitor concurrently. Results come
// back in input order regardless of completion order. A competitor whose
// analysis panics is logged and replaced with an empty rollup so one bad
// competitor never sinks the run.
func (ag *Aggregator) AnalyzeCompetitors(responses models.PlatformResponses, competitors []string) []models.EntityAnalysis {
	results := make([]models.EntityAnalysis, len(competitors))
	if len(competitors) == 0 {
		return results
	}

	workers := len(competitors)
	if workers > maxCompetitorWorkers {
		workers = maxCompetitorWorkers
	}

	jobs := make(chan int, len(competitors))
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobs {
				results[idx] = ag.analyzeOne(responses, competitors[idx])
			}
		}()
	}

	for i := range competitors {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	return results
}

func (ag *Aggregator) analyzeOne(responses models.PlatformResponses, name string) (result models.EntityAnalysis) {
	defer func() {
		if r := recover(); r != nil {
			logrus.Errorf("Error analyzing competitor %s: %v", name, r)
			result = emptyAnalysis(name)
		}
	}()
	return ag.analyzer.AnalyzeMentions(responses, name)
}

func emptyAnalysis(name string) models.EntityAnalysis {
	return models.EntityAnalysis{
		Entity:           name,
		PlatformMentions: make(map[string]int),
		Platforms:        make(map[string]*models.PlatformAnalysis),
	}
}

// BuildReport derives the competitive signals from the brand's completed
// analysis and the competitor rollups
func (ag *Aggregator) BuildReport(brand models.EntityAnalysis, competitors []models.EntityAnalysis) models.CompetitiveReport {
	return models.CompetitiveReport{
		Brand:               brand,
		Competitors:         competitors,
		MarketPosition:      marketPosition(brand, competitors),
		PlatformPerformance: platformPerformance(brand, competitors),
		Opportunities:       identifyOpportunities(brand, competitors),
		Threats:             identifyThreats(brand, competitors),
		Recommendations:     competitiveRecommendations(brand, competitors),
		MarketRank:          marketRank(brand, competitors),
	}
}

func marketPosition(brand models.EntityAnalysis, competitors []models.EntityAnalysis) models.MarketPosition {
	brandRank := rankOrWorst(brand.AverageRank)

	var betterThan, worseThan float64
	for _, comp := range competitors {
		switch {
		case brand.TotalMentions > comp.TotalMentions:
			betterThan++
		case brand.TotalMentions < comp.TotalMentions:
			worseThan++
		}

		compRank := rankOrWorst(comp.AverageRank)
		switch {
		case brandRank < compRank:
			betterThan += 0.5
		case brandRank > compRank:
			worseThan += 0.5
		}
	}

	score := 0.0
	if len(competitors) > 0 {
		score = round1(betterThan / (float64(len(competitors)) * 1.5) * 100)
	}

	return models.MarketPosition{
		Score:      score,
		BetterThan: int(betterThan),
		WorseThan:  int(worseThan),
	}
}

// rankOrWorst treats a missing average rank as infinitely bad so ranked
// entities always beat unranked ones
func rankOrWorst(rank *int) float64 {
	if rank == nil {
		return math.Inf(1)
	}
	return float64(*rank)
}

func platformPerformance(brand models.EntityAnalysis, competitors []models.EntityAnalysis) map[string]models.PlatformComparison {
	performance := make(map[string]models.PlatformComparison, len(brand.PlatformMentions))
	if len(competitors) == 0 {
		return performance
	}

	for platform, brandMentions := range brand.PlatformMentions {
		sum := 0
		for _, comp := range competitors {
			sum += comp.PlatformMentions[platform]
		}
		avg := float64(sum) / float64(len(competitors))

		ratio := 0.0
		if avg > 0 {
			ratio = float64(brandMentions) / avg
		}

		performance[platform] = models.PlatformComparison{
			BrandMentions:         brandMentions,
			AvgCompetitorMentions: avg,
			Ratio:                 ratio,
			Standing:              standing(ratio),
		}
	}

	return performance
}

func standing(ratio float64) string {
	switch {
	case ratio > 1.2:
		return "leading"
	case ratio > 0.8:
		return "competitive"
	default:
		return "lagging"
	}
}

func identifyOpportunities(brand models.EntityAnalysis, competitors []models.EntityAnalysis) []string {
	var opportunities []string

	if len(competitors) > 0 {
		for _, platform := range sortedPlatforms(brand.PlatformMentions) {
			maxMentions := 0
			for _, comp := range competitors {
				if m := comp.PlatformMentions[platform]; m > maxMentions {
					maxMentions = m
				}
			}
			if float64(brand.PlatformMentions[platform]) < float64(maxMentions)*0.7 {
				opportunities = append(opportunities, fmt.Sprintf(
					"Improve presence on %s - competitors are performing significantly better",
					strings.ToUpper(platform)))
			}
		}
	}

	if brand.AverageRank != nil && *brand.AverageRank > 3 {
		opportunities = append(opportunities, "Focus on improving search result rankings - currently not in top 3")
	}

	if brand.OverallSentiment.Negative > 0 {
		opportunities = append(opportunities, "Address negative sentiment in AI responses")
	}

	return opportunities
}

func identifyThreats(brand models.EntityAnalysis, competitors []models.EntityAnalysis) []string {
	var threats []string

	for _, comp := range competitors {
		if float64(comp.TotalMentions) > float64(brand.TotalMentions)*1.5 {
			threats = append(threats, fmt.Sprintf("%s has significantly higher mention frequency", comp.Entity))
		}
		if comp.AverageRank != nil && brand.AverageRank != nil && *comp.AverageRank < *brand.AverageRank-1 {
			threats = append(threats, fmt.Sprintf("%s consistently ranks higher in AI responses", comp.Entity))
		}
	}

	if brand.TotalMentions == 0 {
		threats = append(threats, "No brand mentions found - complete lack of AI visibility")
	}

	return threats
}

// competitiveRecommendations turns the comparison into actions: shore up the
// weakest platform, study the leading competitor, lift rankings past 2, and
// repair messaging when under 60% of classified sentiment is positive.
func competitiveRecommendations(brand models.EntityAnalysis, competitors []models.EntityAnalysis) []string {
	var recommendations []string

	if len(brand.PlatformMentions) > 0 {
		weakest := ""
		for _, platform := range sortedPlatforms(brand.PlatformMentions) {
			if weakest == "" || brand.PlatformMentions[platform] < brand.PlatformMentions[weakest] {
				weakest = platform
			}
		}
		recommendations = append(recommendations, fmt.Sprintf("Prioritize content strategy for %s platform", strings.ToUpper(weakest)))
	}

	if len(competitors) > 0 {
		top := competitors[0]
		for _, comp := range competitors[1:] {
			if comp.TotalMentions > top.TotalMentions {
				top = comp
			}
		}
		recommendations = append(recommendations, fmt.Sprintf("Study %s's content strategy and positioning", top.Entity))
	}

	if brand.AverageRank != nil && *brand.AverageRank > 2 {
		recommendations = append(recommendations, "Optimize content for AI training data to improve ranking positions")
	}

	if total := brand.OverallSentiment.Total(); total > 0 {
		positiveRatio := float64(brand.OverallSentiment.Positive) / float64(total)
		if positiveRatio < 0.6 {
			recommendations = append(recommendations, "Improve brand messaging to increase positive sentiment in AI responses")
		}
	}

	return recommendations
}

// marketRank is the brand's 1-based position when brand and competitors are
// ordered by total mentions, descending. The brand wins ties.
func marketRank(brand models.EntityAnalysis, competitors []models.EntityAnalysis) int {
	rank := 1
	for _, comp := range competitors {
		if comp.TotalMentions > brand.TotalMentions {
			rank++
		}
	}
	return rank
}

func sortedPlatforms(mentions map[string]int) []string {
	platforms := make([]string, 0, len(mentions))
	for platform := range mentions {
		platforms = append(platforms, platform)
	}
	sort.Strings(platforms)
	return platforms
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
