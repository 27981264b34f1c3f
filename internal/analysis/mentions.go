package analysis

import (
	"math"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/brandscope/visibility-bot/internal/models"
)

const (
	contextRadius = 50
	maxSamples    = 5
)

// Analyzer extracts entity mentions, ranks and sentiment from platform
// responses. Analysis is pure: the same responses always produce the same
// EntityAnalysis.
type Analyzer struct {
	sentiment SentimentStrategy
}

// NewAnalyzer creates an analyzer; a nil strategy falls back to the keyword
// heuristic.
func NewAnalyzer(strategy SentimentStrategy) *Analyzer {
	if strategy == nil {
		strategy = NewKeywordSentiment()
	}
	return &Analyzer{sentiment: strategy}
}

// AnalyzeMentions builds the full mention rollup for one entity across all
// platform responses
func (a *Analyzer) AnalyzeMentions(responses models.PlatformResponses, entity string) models.EntityAnalysis {
	result := models.EntityAnalysis{
		Entity:           entity,
		PlatformMentions: make(map[string]int),
		Platforms:        make(map[string]*models.PlatformAnalysis),
	}

	// platforms in sorted order so record ordering is deterministic
	platformIDs := make([]string, 0, len(responses))
	for platform := range responses {
		platformIDs = append(platformIDs, platform)
	}
	sort.Strings(platformIDs)

	var allRanks []int
	for _, platform := range platformIDs {
		pa, records := a.analyzePlatform(platform, responses[platform], entity)

		result.PlatformMentions[platform] = pa.Mentions
		result.Platforms[platform] = pa
		result.TotalMentions += pa.Mentions
		result.Records = append(result.Records, records...)
		allRanks = append(allRanks, pa.Rankings...)

		result.OverallSentiment.Positive += pa.Sentiment.Positive
		result.OverallSentiment.Neutral += pa.Sentiment.Neutral
		result.OverallSentiment.Negative += pa.Sentiment.Negative
	}

	if len(allRanks) > 0 {
		sum := 0
		for _, rank := range allRanks {
			sum += rank
		}
		avg := int(math.Round(float64(sum) / float64(len(allRanks))))
		result.AverageRank = &avg
	}

	return result
}

func (a *Analyzer) analyzePlatform(platform string, responses []models.PromptResponse, entity string) (*models.PlatformAnalysis, []models.MentionRecord) {
	pa := &models.PlatformAnalysis{Responses: len(responses)}
	variants := nameVariants(entity)

	var records []models.MentionRecord
	for _, pr := range responses {
		occurrences := findOccurrences(pr.Response, variants)
		if len(occurrences) == 0 {
			continue
		}

		// one mention per response no matter how often the name occurs
		pa.Mentions++

		var rank *int
		if r, ok := extractRank(pr.Response, entity); ok {
			pa.Rankings = append(pa.Rankings, r)
			rank = &r
		}

		sentiment := a.sentiment.Classify(pr.Response, entity)
		switch sentiment {
		case "positive":
			pa.Sentiment.Positive++
		case "negative":
			pa.Sentiment.Negative++
		default:
			pa.Sentiment.Neutral++
		}

		for i, occ := range occurrences {
			record := models.MentionRecord{
				Entity:    entity,
				Platform:  platform,
				Prompt:    pr.Prompt,
				Matched:   occ.surface,
				Context:   contextWindow(pr.Response, occ.index, len(occ.surface)),
				Sentiment: sentiment,
				Counted:   i == 0,
			}
			if i == 0 {
				record.Rank = rank
			}
			pa.Contexts = append(pa.Contexts, record.Context)
			records = append(records, record)
		}

		if len(pa.Samples) < maxSamples {
			pa.Samples = append(pa.Samples, models.Sample{
				Prompt:   pr.Prompt,
				Response: pr.Response,
			})
		}
	}

	if len(responses) > 0 {
		pa.MentionRate = float64(pa.Mentions) / float64(len(responses))
	}
	if len(pa.Rankings) > 0 {
		sum := 0
		for _, rank := range pa.Rankings {
			sum += rank
		}
		avg := float64(sum) / float64(len(pa.Rankings))
		pa.AverageRank = &avg
	}

	return pa, records
}

var leadingNumber = regexp.MustCompile(`^(\d+)\.`)

var ordinalPatterns = []*regexp.Regexp{
	regexp.MustCompile(`first|#1|number one`),
	regexp.MustCompile(`second|#2|number two`),
	regexp.MustCompile(`third|#3|number three`),
	regexp.MustCompile(`fourth|#4|number four`),
	regexp.MustCompile(`fifth|#5|number five`),
}

// extractRank reads a rank off the first line naming the entity: a leading
// "N." list marker wins, then ordinal words or #N symbols for 1..5. A line
// that names the entity but carries no rank signal means no rank for the
// whole response.
func extractRank(text, entity string) (int, bool) {
	needle := strings.ToLower(entity)

	for _, line := range strings.Split(text, "\n") {
		lower := strings.ToLower(line)
		if !strings.Contains(lower, needle) {
			continue
		}

		if m := leadingNumber.FindStringSubmatch(strings.TrimSpace(line)); m != nil {
			if rank, err := strconv.Atoi(m[1]); err == nil && rank >= 1 {
				return rank, true
			}
			// A zero-indexed list marker is not a rank, and the marker
			// settles the line before any ordinal words on it.
			return 0, false
		}

		for i, pattern := range ordinalPatterns {
			if pattern.MatchString(lower) {
				return i + 1, true
			}
		}

		return 0, false
	}

	return 0, false
}

// contextWindow cuts up to contextRadius characters either side of a match,
// marking truncated edges with an ellipsis
func contextWindow(text string, index, length int) string {
	start := index - contextRadius
	if start < 0 {
		start = 0
	}
	end := index + length + contextRadius
	if end > len(text) {
		end = len(text)
	}

	window := strings.TrimSpace(text[start:end])
	if start > 0 {
		window = "..." + window
	}
	if end < len(text) {
		window = window + "..."
	}
	return window
}
