package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brandscope/visibility-bot/internal/models"
)

func intPtr(n int) *int {
	return &n
}

func analysisFixture(name string, total int, platformMentions map[string]int, avgRank *int) models.EntityAnalysis {
	return models.EntityAnalysis{
		Entity:           name,
		TotalMentions:    total,
		PlatformMentions: platformMentions,
		Platforms:        map[string]*models.PlatformAnalysis{},
		AverageRank:      avgRank,
	}
}

func TestAnalyzeCompetitorsPreservesOrder(t *testing.T) {
	agg := NewAggregator(nil)

	responses := models.PlatformResponses{
		"openai": {
			{Prompt: "p1", Response: "Zenith and Acme Corp both show up."},
			{Prompt: "p2", Response: "Zenith once more."},
		},
	}

	competitors := []string{"Zenith", "Nimbus", "Orbita", "Quanta", "Vertex", "Kappa"}
	results := agg.AnalyzeCompetitors(responses, competitors)

	require.Len(t, results, len(competitors))
	for i, name := range competitors {
		assert.Equal(t, name, results[i].Entity)
	}
	assert.Equal(t, 2, results[0].TotalMentions)
	assert.Zero(t, results[1].TotalMentions)
}

type panickingStrategy struct{}

func (panickingStrategy) Classify(text, entity string) string {
	panic("classifier exploded")
}

func TestAnalyzeCompetitorsRecoversPerCompetitor(t *testing.T) {
	agg := NewAggregator(NewAnalyzer(panickingStrategy{}))

	responses := models.PlatformResponses{
		"openai": {{Prompt: "p", Response: "Zenith leads here."}},
	}

	results := agg.AnalyzeCompetitors(responses, []string{"Zenith", "Nimbus"})

	require.Len(t, results, 2)
	assert.Equal(t, "Zenith", results[0].Entity)
	assert.Zero(t, results[0].TotalMentions)
	assert.NotNil(t, results[0].PlatformMentions)

	// Nimbus never occurs in the text, so its classifier never runs
	assert.Equal(t, "Nimbus", results[1].Entity)
	assert.Zero(t, results[1].TotalMentions)
}

func TestBuildReportMarketRank(t *testing.T) {
	agg := NewAggregator(nil)

	brand := analysisFixture("Acme Corp", 10, map[string]int{"openai": 10}, nil)
	competitors := []models.EntityAnalysis{
		analysisFixture("Zenith", 15, map[string]int{"openai": 15}, nil),
		analysisFixture("Nimbus", 5, map[string]int{"openai": 5}, nil),
	}

	report := agg.BuildReport(brand, competitors)

	assert.Equal(t, 2, report.MarketRank)
}

func TestMarketRankBrandWinsTies(t *testing.T) {
	agg := NewAggregator(nil)

	brand := analysisFixture("Acme Corp", 5, map[string]int{}, nil)
	competitors := []models.EntityAnalysis{
		analysisFixture("Zenith", 5, map[string]int{}, nil),
		analysisFixture("Nimbus", 9, map[string]int{}, nil),
	}

	report := agg.BuildReport(brand, competitors)

	assert.Equal(t, 2, report.MarketRank)
}

func TestMarketPositionScoring(t *testing.T) {
	agg := NewAggregator(nil)

	brand := analysisFixture("Acme Corp", 12, map[string]int{"openai": 12}, intPtr(2))
	competitors := []models.EntityAnalysis{
		analysisFixture("Zenith", 8, map[string]int{"openai": 8}, intPtr(4)),
		analysisFixture("Nimbus", 15, map[string]int{"openai": 15}, nil),
	}

	report := agg.BuildReport(brand, competitors)

	// +1 mentions vs Zenith, +0.5 rank vs Zenith, +0.5 rank vs unranked Nimbus
	assert.InDelta(t, 66.7, report.MarketPosition.Score, 1e-9)
	assert.Equal(t, 2, report.MarketPosition.BetterThan)
	assert.Equal(t, 1, report.MarketPosition.WorseThan)
}

func TestMarketPositionWithoutCompetitors(t *testing.T) {
	agg := NewAggregator(nil)

	report := agg.BuildReport(analysisFixture("Acme Corp", 3, map[string]int{}, nil), nil)

	assert.Zero(t, report.MarketPosition.Score)
	assert.Zero(t, report.MarketPosition.BetterThan)
	assert.Empty(t, report.PlatformPerformance)
	assert.Equal(t, 1, report.MarketRank)
}

func TestPlatformPerformanceStandings(t *testing.T) {
	agg := NewAggregator(nil)

	brand := analysisFixture("Acme Corp", 25, map[string]int{"openai": 13, "gemini": 10, "perplexity": 2}, nil)
	competitors := []models.EntityAnalysis{
		analysisFixture("Zenith", 26, map[string]int{"openai": 8, "gemini": 12, "perplexity": 6}, nil),
		analysisFixture("Nimbus", 24, map[string]int{"openai": 12, "gemini": 8, "perplexity": 4}, nil),
	}

	report := agg.BuildReport(brand, competitors)

	openai := report.PlatformPerformance["openai"]
	assert.Equal(t, 13, openai.BrandMentions)
	assert.InDelta(t, 10, openai.AvgCompetitorMentions, 1e-9)
	assert.InDelta(t, 1.3, openai.Ratio, 1e-9)
	assert.Equal(t, "leading", openai.Standing)

	assert.Equal(t, "competitive", report.PlatformPerformance["gemini"].Standing)
	assert.Equal(t, "lagging", report.PlatformPerformance["perplexity"].Standing)
}

func TestPlatformPerformanceZeroCompetitorAverage(t *testing.T) {
	agg := NewAggregator(nil)

	brand := analysisFixture("Acme Corp", 5, map[string]int{"openai": 5}, nil)
	competitors := []models.EntityAnalysis{
		analysisFixture("Zenith", 0, map[string]int{}, nil),
	}

	report := agg.BuildReport(brand, competitors)

	perf := report.PlatformPerformance["openai"]
	assert.Zero(t, perf.Ratio)
	assert.Equal(t, "lagging", perf.Standing)
}

func TestIdentifyOpportunities(t *testing.T) {
	agg := NewAggregator(nil)

	brand := analysisFixture("Acme Corp", 3, map[string]int{"openai": 3}, intPtr(5))
	brand.OverallSentiment.Negative = 2
	competitors := []models.EntityAnalysis{
		analysisFixture("Zenith", 10, map[string]int{"openai": 10}, nil),
	}

	report := agg.BuildReport(brand, competitors)

	assert.Equal(t, []string{
		"Improve presence on OPENAI - competitors are performing significantly better",
		"Focus on improving search result rankings - currently not in top 3",
		"Address negative sentiment in AI responses",
	}, report.Opportunities)
}

func TestOpportunitiesAbsentWhenLeading(t *testing.T) {
	agg := NewAggregator(nil)

	brand := analysisFixture("Acme Corp", 10, map[string]int{"openai": 10}, intPtr(1))
	competitors := []models.EntityAnalysis{
		analysisFixture("Zenith", 4, map[string]int{"openai": 4}, intPtr(3)),
	}

	report := agg.BuildReport(brand, competitors)

	assert.Empty(t, report.Opportunities)
}

func TestIdentifyThreats(t *testing.T) {
	agg := NewAggregator(nil)

	brand := analysisFixture("Acme Corp", 4, map[string]int{"openai": 4}, intPtr(4))
	competitors := []models.EntityAnalysis{
		analysisFixture("Zenith", 7, map[string]int{"openai": 7}, intPtr(2)),
		analysisFixture("Nimbus", 2, map[string]int{"openai": 2}, nil),
	}

	report := agg.BuildReport(brand, competitors)

	assert.Equal(t, []string{
		"Zenith has significantly higher mention frequency",
		"Zenith consistently ranks higher in AI responses",
	}, report.Threats)
}

func TestThreatsFlagZeroVisibility(t *testing.T) {
	agg := NewAggregator(nil)

	brand := analysisFixture("Acme Corp", 0, map[string]int{"openai": 0}, nil)
	competitors := []models.EntityAnalysis{
		analysisFixture("Zenith", 1, map[string]int{"openai": 1}, nil),
	}

	report := agg.BuildReport(brand, competitors)

	require.Len(t, report.Threats, 2)
	assert.Equal(t, "Zenith has significantly higher mention frequency", report.Threats[0])
	assert.Equal(t, "No brand mentions found - complete lack of AI visibility", report.Threats[1])
}

func TestCompetitiveRecommendations(t *testing.T) {
	agg := NewAggregator(nil)

	brand := analysisFixture("Acme Corp", 6, map[string]int{"openai": 5, "gemini": 1}, intPtr(4))
	brand.OverallSentiment.Positive = 1
	brand.OverallSentiment.Negative = 2
	competitors := []models.EntityAnalysis{
		analysisFixture("Zenith", 3, map[string]int{"openai": 3}, nil),
		analysisFixture("Nimbus", 10, map[string]int{"openai": 10}, nil),
	}

	report := agg.BuildReport(brand, competitors)

	assert.Equal(t, []string{
		"Prioritize content strategy for GEMINI platform",
		"Study Nimbus's content strategy and positioning",
		"Optimize content for AI training data to improve ranking positions",
		"Improve brand messaging to increase positive sentiment in AI responses",
	}, report.Recommendations)
}

func TestRecommendationsBreakTiesDeterministically(t *testing.T) {
	agg := NewAggregator(nil)

	// gemini and openai tie for weakest; Zenith and Nimbus tie on mentions.
	brand := analysisFixture("Acme Corp", 4, map[string]int{"openai": 2, "gemini": 2}, intPtr(1))
	brand.OverallSentiment.Positive = 3
	competitors := []models.EntityAnalysis{
		analysisFixture("Zenith", 7, map[string]int{"openai": 7}, nil),
		analysisFixture("Nimbus", 7, map[string]int{"openai": 7}, nil),
	}

	report := agg.BuildReport(brand, competitors)

	assert.Equal(t, []string{
		"Prioritize content strategy for GEMINI platform",
		"Study Zenith's content strategy and positioning",
	}, report.Recommendations)
}

func TestRecommendationsQuietWithoutSignals(t *testing.T) {
	agg := NewAggregator(nil)

	brand := analysisFixture("Acme Corp", 0, map[string]int{}, nil)

	report := agg.BuildReport(brand, nil)

	assert.Empty(t, report.Recommendations)
}
