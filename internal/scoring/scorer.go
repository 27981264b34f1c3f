package scoring

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/brandscope/visibility-bot/internal/models"
)

// Component weights. They sum to 1.0 and are not configurable at run time.
const (
	mentionWeight     = 0.30
	rankingWeight     = 0.25
	platformWeight    = 0.20
	sentimentWeight   = 0.15
	competitiveWeight = 0.10
)

// Scorer turns mention rollups into one weighted visibility score with
// human-readable insights and recommendations. Scoring is deterministic:
// identical inputs always produce the identical VisibilityScore.
type Scorer struct{}

// NewScorer returns a scorer with the fixed component weights
func NewScorer() *Scorer {
	return &Scorer{}
}

// Score computes the weighted overall score from the brand analysis and the
// per-competitor rollups
func (s *Scorer) Score(brand models.EntityAnalysis, competitors []models.EntityAnalysis) models.VisibilityScore {
	mention := mentionScore(brand)
	ranking := rankingScore(brand)
	platform := platformScore(brand)
	sentiment := sentimentScore(brand)
	competitive := competitiveScore(brand, competitors)

	overall := mention*mentionWeight +
		ranking*rankingWeight +
		platform*platformWeight +
		sentiment*sentimentWeight +
		competitive*competitiveWeight

	return models.VisibilityScore{
		OverallScore: round1(overall),
		Components: map[string]float64{
			"mention_frequency":    round1(mention),
			"ranking_position":     round1(ranking),
			"platform_coverage":    round1(platform),
			"sentiment_quality":    round1(sentiment),
			"competitive_position": round1(competitive),
		},
		Breakdown:       scoreBreakdown(mention, ranking, platform, sentiment, competitive),
		Insights:        generateInsights(brand, competitors),
		Recommendations: generateRecommendations(brand, competitors),
	}
}

// mentionScore scales the overall mention rate onto [0,100]; a 50% mention
// rate already scores full marks
func mentionScore(brand models.EntityAnalysis) float64 {
	totalQueries := 0
	for _, pa := range brand.Platforms {
		totalQueries += pa.Responses
	}
	if totalQueries == 0 {
		return 0
	}

	rate := float64(brand.TotalMentions) / float64(totalQueries)
	return math.Min(100, rate*100*2)
}

// rankingScore maps the average rank onto a step scale; an undefined
// average rank scores 0
func rankingScore(brand models.EntityAnalysis) float64 {
	if brand.AverageRank == nil {
		return 0
	}

	switch rank := *brand.AverageRank; {
	case rank <= 1:
		return 100
	case rank <= 2:
		return 85
	case rank <= 3:
		return 70
	case rank <= 5:
		return 50
	case rank <= 10:
		return 25
	default:
		return 10
	}
}

// platformScore is coverage (platforms with at least one mention over total
// platforms) plus a consistency bonus of up to 20 for low variation across
// the active platforms, clamped to 100
func platformScore(brand models.EntityAnalysis) float64 {
	total := len(brand.PlatformMentions)
	if total == 0 {
		return 0
	}

	var active []float64
	for _, mentions := range brand.PlatformMentions {
		if mentions > 0 {
			active = append(active, float64(mentions))
		}
	}

	coverage := float64(len(active)) / float64(total) * 100

	if len(active) > 1 {
		mean := 0.0
		for _, v := range active {
			mean += v
		}
		mean /= float64(len(active))

		variance := 0.0
		for _, v := range active {
			variance += (v - mean) * (v - mean)
		}
		stdDev := math.Sqrt(variance / float64(len(active)))

		cv := 0.0
		if mean > 0 {
			cv = stdDev / mean
		}
		coverage = math.Min(100, coverage+math.Max(0, 20-cv*20))
	}

	return coverage
}

// sentimentScore rewards positive classifications and penalizes negative
// ones at half weight; with no classified responses it sits at the neutral
// baseline of 50
func sentimentScore(brand models.EntityAnalysis) float64 {
	total := brand.OverallSentiment.Total()
	if total == 0 {
		return 50
	}

	positiveRatio := float64(brand.OverallSentiment.Positive) / float64(total)
	negativeRatio := float64(brand.OverallSentiment.Negative) / float64(total)

	score := positiveRatio*100 - negativeRatio*50
	return math.Max(0, math.Min(100, score))
}

// competitiveScore is the fraction of competitors the brand strictly beats
// on total mentions, ties counting half; 50 when there are no competitors
func competitiveScore(brand models.EntityAnalysis, competitors []models.EntityAnalysis) float64 {
	if len(competitors) == 0 {
		return 50
	}

	better := 0.0
	for _, comp := range competitors {
		switch {
		case brand.TotalMentions > comp.TotalMentions:
			better++
		case brand.TotalMentions == comp.TotalMentions:
			better += 0.5
		}
	}

	return better / float64(len(competitors)) * 100
}

func generateInsights(brand models.EntityAnalysis, competitors []models.EntityAnalysis) []string {
	var insights []string

	switch {
	case brand.TotalMentions == 0:
		insights = append(insights, "No brand mentions found across AI platforms - this indicates zero AI visibility")
	case brand.TotalMentions < 5:
		insights = append(insights, "Low brand mention frequency suggests limited AI platform visibility")
	case brand.TotalMentions >= 20:
		insights = append(insights, "Strong brand mention frequency indicates good AI platform visibility")
	}

	if len(brand.PlatformMentions) > 0 {
		best, worst := extremePlatforms(brand.PlatformMentions)
		insights = append(insights, fmt.Sprintf("%s is your strongest platform with %d mentions",
			strings.ToUpper(best), brand.PlatformMentions[best]))
		if float64(brand.PlatformMentions[worst]) < float64(brand.PlatformMentions[best])*0.5 {
			insights = append(insights, fmt.Sprintf("%s shows significant room for improvement", strings.ToUpper(worst)))
		}
	}

	if top, ok := topCompetitor(competitors); ok && top.TotalMentions > brand.TotalMentions {
		insights = append(insights, fmt.Sprintf("%s leads in AI visibility with %d mentions", top.Entity, top.TotalMentions))
	}

	if brand.AverageRank != nil {
		switch rank := *brand.AverageRank; {
		case rank <= 2:
			insights = append(insights, "Excellent ranking position - typically appearing in top 2 results")
		case rank <= 5:
			insights = append(insights, "Good ranking position but opportunity to reach top 3")
		default:
			insights = append(insights, "Low ranking position - focus needed on improving search result placement")
		}
	}

	return insights
}

func generateRecommendations(brand models.EntityAnalysis, competitors []models.EntityAnalysis) []string {
	var recommendations []string

	if len(brand.PlatformMentions) > 0 {
		best, worst := extremePlatforms(brand.PlatformMentions)
		if float64(brand.PlatformMentions[worst]) < float64(brand.PlatformMentions[best])*0.5 {
			recommendations = append(recommendations, fmt.Sprintf("Develop targeted content strategy for %s to improve visibility",
				strings.ToUpper(worst)))
		}
	}

	if brand.TotalMentions < 10 {
		recommendations = append(recommendations, "Increase content production and SEO efforts to improve AI platform indexing")
	}

	if brand.AverageRank != nil && *brand.AverageRank > 3 {
		recommendations = append(recommendations, "Optimize content for featured snippets and AI-friendly formats")
	}

	if top, ok := topCompetitor(competitors); ok && top.TotalMentions > brand.TotalMentions {
		recommendations = append(recommendations, fmt.Sprintf("Analyze %s's content strategy and digital presence", top.Entity))
	}

	if brand.OverallSentiment.Negative > 0 {
		recommendations = append(recommendations, "Address negative sentiment through improved brand messaging and PR")
	}

	recommendations = append(recommendations,
		"Regularly monitor AI platform responses to track visibility changes",
		"Create AI-friendly content that answers common industry questions",
	)

	return recommendations
}

// extremePlatforms returns the strongest and weakest platforms by mention
// count; ties go to the alphabetically first platform
func extremePlatforms(mentions map[string]int) (best, worst string) {
	platforms := make([]string, 0, len(mentions))
	for platform := range mentions {
		platforms = append(platforms, platform)
	}
	sort.Strings(platforms)

	best, worst = platforms[0], platforms[0]
	for _, platform := range platforms[1:] {
		if mentions[platform] > mentions[best] {
			best = platform
		}
		if mentions[platform] < mentions[worst] {
			worst = platform
		}
	}
	return best, worst
}

// topCompetitor returns the competitor with the most total mentions; ties
// go to the earliest in the list
func topCompetitor(competitors []models.EntityAnalysis) (models.EntityAnalysis, bool) {
	if len(competitors) == 0 {
		return models.EntityAnalysis{}, false
	}

	top := competitors[0]
	for _, comp := range competitors[1:] {
		if comp.TotalMentions > top.TotalMentions {
			top = comp
		}
	}
	return top, true
}

func scoreBreakdown(mention, ranking, platform, sentiment, competitive float64) map[string]models.ScoreBreakdownEntry {
	return map[string]models.ScoreBreakdownEntry{
		"mention_frequency": {
			Score:       round1(mention),
			Weight:      mentionWeight,
			Description: describeMention(mention),
		},
		"ranking_position": {
			Score:       round1(ranking),
			Weight:      rankingWeight,
			Description: describeRanking(ranking),
		},
		"platform_coverage": {
			Score:       round1(platform),
			Weight:      platformWeight,
			Description: describePlatform(platform),
		},
		"sentiment_quality": {
			Score:       round1(sentiment),
			Weight:      sentimentWeight,
			Description: describeSentiment(sentiment),
		},
		"competitive_position": {
			Score:       round1(competitive),
			Weight:      competitiveWeight,
			Description: describeCompetitive(competitive),
		},
	}
}

func describeMention(score float64) string {
	switch {
	case score >= 80:
		return "Excellent mention frequency across platforms"
	case score >= 60:
		return "Good mention frequency with room for improvement"
	case score >= 40:
		return "Moderate mention frequency - needs attention"
	default:
		return "Low mention frequency - immediate action required"
	}
}

func describeRanking(score float64) string {
	switch {
	case score >= 80:
		return "Excellent ranking positions in AI responses"
	case score >= 60:
		return "Good ranking positions with improvement potential"
	default:
		return "Poor ranking positions - focus on SEO optimization"
	}
}

func describePlatform(score float64) string {
	switch {
	case score >= 80:
		return "Strong presence across multiple AI platforms"
	case score >= 60:
		return "Good platform coverage with some gaps"
	default:
		return "Limited platform coverage - expand presence"
	}
}

func describeSentiment(score float64) string {
	switch {
	case score >= 70:
		return "Positive sentiment in AI responses"
	case score >= 50:
		return "Neutral sentiment - opportunity for improvement"
	default:
		return "Negative sentiment - address messaging issues"
	}
}

func describeCompetitive(score float64) string {
	switch {
	case score >= 70:
		return "Leading competitive position"
	case score >= 50:
		return "Competitive position with room for growth"
	default:
		return "Lagging behind competitors - strategic focus needed"
	}
}

// PositionLabel maps an overall score onto the market position wording used
// in reports and notifications
func PositionLabel(score float64) string {
	switch {
	case score >= 80:
		return "Market Leader"
	case score >= 60:
		return "Strong Competitor"
	case score >= 40:
		return "Emerging Player"
	default:
		return "Niche Presence"
	}
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
