package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brandscope/visibility-bot/internal/models"
)

func intPtr(n int) *int {
	return &n
}

// brandWith builds a consistent rollup where every platform saw the same
// number of responses
func brandWith(mentions map[string]int, responsesPerPlatform int, avgRank *int, tally models.SentimentTally) models.EntityAnalysis {
	brand := models.EntityAnalysis{
		Entity:           "Acme Corp",
		PlatformMentions: mentions,
		Platforms:        map[string]*models.PlatformAnalysis{},
		OverallSentiment: tally,
		AverageRank:      avgRank,
	}
	for platform, count := range mentions {
		brand.TotalMentions += count
		brand.Platforms[platform] = &models.PlatformAnalysis{
			Mentions:  count,
			Responses: responsesPerPlatform,
		}
	}
	return brand
}

func competitorWith(name string, total int) models.EntityAnalysis {
	return models.EntityAnalysis{Entity: name, TotalMentions: total}
}

func TestScoreZeroVisibility(t *testing.T) {
	brand := brandWith(map[string]int{"openai": 0, "anthropic": 0, "gemini": 0}, 10, nil, models.SentimentTally{})
	competitors := []models.EntityAnalysis{competitorWith("Zenith", 0)}

	score := NewScorer().Score(brand, competitors)

	assert.Zero(t, score.Components["mention_frequency"])
	assert.Zero(t, score.Components["ranking_position"])
	assert.Zero(t, score.Components["platform_coverage"])
	assert.Less(t, score.OverallScore, 20.0)
	require.NotEmpty(t, score.Insights)
	assert.Equal(t, "No brand mentions found across AI platforms - this indicates zero AI visibility", score.Insights[0])
}

func TestScoreKnownComponentValues(t *testing.T) {
	brand := brandWith(map[string]int{"openai": 4, "anthropic": 4}, 10, intPtr(2), models.SentimentTally{Positive: 6, Neutral: 2})
	competitors := []models.EntityAnalysis{competitorWith("Zenith", 3)}

	score := NewScorer().Score(brand, competitors)

	assert.InDelta(t, 80.0, score.Components["mention_frequency"], 1e-9)
	assert.InDelta(t, 85.0, score.Components["ranking_position"], 1e-9)
	assert.InDelta(t, 100.0, score.Components["platform_coverage"], 1e-9)
	assert.InDelta(t, 75.0, score.Components["sentiment_quality"], 1e-9)
	assert.InDelta(t, 100.0, score.Components["competitive_position"], 1e-9)
	assert.InDelta(t, 86.5, score.OverallScore, 1e-9)
}

func TestScorePartialMentionRate(t *testing.T) {
	brand := brandWith(map[string]int{"openai": 4, "gemini": 2}, 10, intPtr(2), models.SentimentTally{Positive: 4, Neutral: 2})

	score := NewScorer().Score(brand, nil)

	// 6 mentions across 20 responses
	assert.InDelta(t, 60.0, score.Components["mention_frequency"], 1e-9)
	assert.InDelta(t, 85.0, score.Components["ranking_position"], 1e-9)
}

func TestScoreStaysWithinBounds(t *testing.T) {
	saturated := brandWith(map[string]int{"openai": 10}, 10, intPtr(1), models.SentimentTally{Positive: 10})
	score := NewScorer().Score(saturated, []models.EntityAnalysis{competitorWith("Zenith", 0)})
	assert.InDelta(t, 100.0, score.Components["mention_frequency"], 1e-9)
	assert.LessOrEqual(t, score.OverallScore, 100.0)

	empty := NewScorer().Score(models.EntityAnalysis{}, nil)
	assert.GreaterOrEqual(t, empty.OverallScore, 0.0)
}

func TestRankingScoreSteps(t *testing.T) {
	tests := []struct {
		name string
		rank *int
		want float64
	}{
		{"undefined", nil, 0},
		{"top", intPtr(1), 100},
		{"second", intPtr(2), 85},
		{"third", intPtr(3), 70},
		{"fifth", intPtr(5), 50},
		{"tenth", intPtr(10), 25},
		{"below tenth", intPtr(12), 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := rankingScore(models.EntityAnalysis{AverageRank: tt.rank})
			if got != tt.want {
				t.Errorf("rankingScore() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestPlatformScore(t *testing.T) {
	t.Run("no platforms", func(t *testing.T) {
		got := platformScore(models.EntityAnalysis{PlatformMentions: map[string]int{}})
		assert.Zero(t, got)
	})

	t.Run("partial coverage without bonus", func(t *testing.T) {
		got := platformScore(models.EntityAnalysis{
			PlatformMentions: map[string]int{"openai": 3, "gemini": 0},
		})
		assert.InDelta(t, 50.0, got, 1e-9)
	})

	t.Run("consistency bonus on even spread", func(t *testing.T) {
		got := platformScore(models.EntityAnalysis{
			PlatformMentions: map[string]int{"openai": 6, "gemini": 2, "perplexity": 0},
		})
		// coverage 66.67 plus a bonus of 10 for cv = 0.5
		assert.InDelta(t, 76.666666, got, 1e-4)
	})

	t.Run("clamped at 100", func(t *testing.T) {
		got := platformScore(models.EntityAnalysis{
			PlatformMentions: map[string]int{"openai": 5, "gemini": 5},
		})
		assert.InDelta(t, 100.0, got, 1e-9)
	})
}

func TestSentimentScore(t *testing.T) {
	t.Run("neutral baseline without data", func(t *testing.T) {
		got := sentimentScore(models.EntityAnalysis{})
		assert.InDelta(t, 50.0, got, 1e-9)
	})

	t.Run("all positive", func(t *testing.T) {
		got := sentimentScore(models.EntityAnalysis{OverallSentiment: models.SentimentTally{Positive: 4}})
		assert.InDelta(t, 100.0, got, 1e-9)
	})

	t.Run("negative clamped at zero", func(t *testing.T) {
		got := sentimentScore(models.EntityAnalysis{OverallSentiment: models.SentimentTally{Neutral: 1, Negative: 3}})
		assert.Zero(t, got)
	})

	t.Run("mixed", func(t *testing.T) {
		got := sentimentScore(models.EntityAnalysis{OverallSentiment: models.SentimentTally{Positive: 2, Negative: 2}})
		assert.InDelta(t, 25.0, got, 1e-9)
	})
}

func TestCompetitiveScore(t *testing.T) {
	brand := models.EntityAnalysis{TotalMentions: 5}

	t.Run("neutral without competitors", func(t *testing.T) {
		assert.InDelta(t, 50.0, competitiveScore(brand, nil), 1e-9)
	})

	t.Run("ties count half", func(t *testing.T) {
		competitors := []models.EntityAnalysis{
			competitorWith("Zenith", 3),
			competitorWith("Nimbus", 5),
			competitorWith("Orbita", 9),
		}
		assert.InDelta(t, 50.0, competitiveScore(brand, competitors), 1e-9)
	})

	t.Run("split field", func(t *testing.T) {
		outpaced := models.EntityAnalysis{TotalMentions: 10}
		competitors := []models.EntityAnalysis{
			competitorWith("Zenith", 15),
			competitorWith("Nimbus", 5),
		}
		assert.InDelta(t, 50.0, competitiveScore(outpaced, competitors), 1e-9)
	})
}

func TestScoreInsights(t *testing.T) {
	brand := brandWith(map[string]int{"openai": 20, "gemini": 5}, 25, intPtr(2), models.SentimentTally{Positive: 10, Neutral: 15})
	competitors := []models.EntityAnalysis{competitorWith("Zenith", 30)}

	score := NewScorer().Score(brand, competitors)

	assert.Equal(t, []string{
		"Strong brand mention frequency indicates good AI platform visibility",
		"OPENAI is your strongest platform with 20 mentions",
		"GEMINI shows significant room for improvement",
		"Zenith leads in AI visibility with 30 mentions",
		"Excellent ranking position - typically appearing in top 2 results",
	}, score.Insights)
}

func TestScoreRecommendations(t *testing.T) {
	brand := brandWith(map[string]int{"openai": 5, "gemini": 1}, 10, intPtr(4), models.SentimentTally{Positive: 2, Neutral: 3, Negative: 1})
	competitors := []models.EntityAnalysis{competitorWith("Zenith", 9)}

	score := NewScorer().Score(brand, competitors)

	assert.Equal(t, []string{
		"Develop targeted content strategy for GEMINI to improve visibility",
		"Increase content production and SEO efforts to improve AI platform indexing",
		"Optimize content for featured snippets and AI-friendly formats",
		"Analyze Zenith's content strategy and digital presence",
		"Address negative sentiment through improved brand messaging and PR",
		"Regularly monitor AI platform responses to track visibility changes",
		"Create AI-friendly content that answers common industry questions",
	}, score.Recommendations)
}

func TestScoreBreakdown(t *testing.T) {
	brand := brandWith(map[string]int{"openai": 4, "anthropic": 4}, 10, intPtr(2), models.SentimentTally{Positive: 6, Neutral: 2})
	score := NewScorer().Score(brand, []models.EntityAnalysis{competitorWith("Zenith", 3)})

	require.Len(t, score.Breakdown, 5)

	weightSum := 0.0
	for _, entry := range score.Breakdown {
		weightSum += entry.Weight
	}
	assert.InDelta(t, 1.0, weightSum, 1e-9)

	assert.Equal(t, "Excellent mention frequency across platforms", score.Breakdown["mention_frequency"].Description)
	assert.Equal(t, "Leading competitive position", score.Breakdown["competitive_position"].Description)
}

func TestScoreDeterministic(t *testing.T) {
	brand := brandWith(map[string]int{"openai": 7, "anthropic": 3}, 12, intPtr(3), models.SentimentTally{Positive: 5, Neutral: 4, Negative: 1})
	competitors := []models.EntityAnalysis{
		competitorWith("Zenith", 11),
		competitorWith("Nimbus", 2),
	}

	scorer := NewScorer()
	first := scorer.Score(brand, competitors)
	second := scorer.Score(brand, competitors)

	assert.Equal(t, first, second)
}

func TestPositionLabel(t *testing.T) {
	tests := []struct {
		score float64
		want  string
	}{
		{92.3, "Market Leader"},
		{80.0, "Market Leader"},
		{65.1, "Strong Competitor"},
		{45.0, "Emerging Player"},
		{12.5, "Niche Presence"},
	}

	for _, tt := range tests {
		if got := PositionLabel(tt.score); got != tt.want {
			t.Errorf("PositionLabel(%v) = %q, want %q", tt.score, got, tt.want)
		}
	}
}
