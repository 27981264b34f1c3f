package models

import "time"

// BrandProfile describes the brand under analysis and the scope of a run
type BrandProfile struct {
	BrandName      string   `json:"brand_name" validate:"required"`
	Industry       string   `json:"industry" validate:"required"`
	CustomIndustry bool     `json:"is_custom_industry"`
	Location       string   `json:"location,omitempty"`
	Competitors    []string `json:"competitors" validate:"min=1,max=10,dive,required"`
	PromptCount    int      `json:"prompt_count" validate:"min=10,max=50"`
	Platforms      []string `json:"platforms" validate:"min=1"` // registry ids: "openai", "anthropic", "gemini", "perplexity"
}

// PromptResponse pairs a prompt with the response one platform gave it.
// PromptIndex is the prompt's position in the generated list; it keeps
// duplicate prompt texts ordered and never serializes.
type PromptResponse struct {
	Prompt      string `json:"prompt"`
	Response    string `json:"response"`
	PromptIndex int    `json:"-"`
}

// PlatformResponses holds every response keyed by platform id
type PlatformResponses map[string][]PromptResponse

// MentionRecord is a single occurrence of an entity inside a response
type MentionRecord struct {
	Entity    string `json:"entity"`
	Platform  string `json:"platform"`
	Prompt    string `json:"prompt"`
	Matched   string `json:"matched"` // literal surface form as it appeared
	Context   string `json:"context"` // surrounding text, ellipsized when truncated
	Rank      *int   `json:"rank,omitempty"`
	Sentiment string `json:"sentiment"` // "positive", "negative", "neutral"
	Counted   bool   `json:"counted"`   // true on exactly one record per mentioning response
}

// Sample is a raw prompt/response snapshot that mentioned the entity
type Sample struct {
	Prompt   string `json:"prompt"`
	Response string `json:"response"`
}

// SentimentTally counts mention occurrences by sentiment class
type SentimentTally struct {
	Positive int `json:"positive"`
	Neutral  int `json:"neutral"`
	Negative int `json:"negative"`
}

// Total returns the number of classified occurrences
func (t SentimentTally) Total() int {
	return t.Positive + t.Neutral + t.Negative
}

// PlatformAnalysis aggregates mention findings for one platform
type PlatformAnalysis struct {
	Mentions    int            `json:"mentions"` // responses that mentioned the entity, one per response
	Responses   int            `json:"responses"`
	Rankings    []int          `json:"rankings"`
	Contexts    []string       `json:"mention_contexts"`
	Sentiment   SentimentTally `json:"sentiment"`
	MentionRate float64        `json:"mention_rate"` // mentioning responses / total responses
	AverageRank *float64       `json:"average_ranking"`
	Samples     []Sample       `json:"sample_mentions"` // capped at 5
}

// EntityAnalysis is the full mention picture for one entity (brand or competitor)
type EntityAnalysis struct {
	Entity           string                       `json:"entity"`
	TotalMentions    int                          `json:"total_mentions"`
	PlatformMentions map[string]int               `json:"platform_mentions"`
	Platforms        map[string]*PlatformAnalysis `json:"platforms"`
	Records          []MentionRecord              `json:"mention_records"`
	OverallSentiment SentimentTally               `json:"overall_sentiment"`
	AverageRank      *int                         `json:"average_ranking"` // nil when no rank was observed
}

// MarketPosition places the brand among its competitors. A competitor
// counts 1 toward better/worse on total mentions and 0.5 on average rank.
type MarketPosition struct {
	Score      float64 `json:"position_score"`
	BetterThan int     `json:"better_than_count"`
	WorseThan  int     `json:"worse_than_count"`
}

// PlatformComparison compares brand mentions to the competitor average on one platform
type PlatformComparison struct {
	BrandMentions         int     `json:"brand_mentions"`
	AvgCompetitorMentions float64 `json:"avg_competitor_mentions"`
	Ratio                 float64 `json:"ratio"`
	Standing              string  `json:"standing"` // "leading", "competitive", "lagging"
}

// CompetitiveReport is the output of the competitive aggregator
type CompetitiveReport struct {
	Brand               EntityAnalysis                `json:"brand"`
	Competitors         []EntityAnalysis              `json:"competitors"`
	MarketPosition      MarketPosition                `json:"market_position"`
	PlatformPerformance map[string]PlatformComparison `json:"platform_performance"`
	Opportunities       []string                      `json:"opportunities"`
	Threats             []string                      `json:"threats"`
	Recommendations     []string                      `json:"recommendations"`
	MarketRank          int                           `json:"market_rank"` // 1-based among brand + competitors
}

// ScoreBreakdownEntry explains one score component
type ScoreBreakdownEntry struct {
	Score       float64 `json:"score"`
	Weight      float64 `json:"weight"`
	Description string  `json:"description"`
}

// VisibilityScore is the weighted overall result with its explanation
type VisibilityScore struct {
	OverallScore    float64                        `json:"overall_score"`
	Components      map[string]float64             `json:"components"`
	Breakdown       map[string]ScoreBreakdownEntry `json:"score_breakdown"`
	Insights        []string                       `json:"insights"`
	Recommendations []string                       `json:"recommendations"`
}

// ResultBundle is the complete, atomically published output of one run
type ResultBundle struct {
	RunID              string            `json:"run_id"`
	Profile            BrandProfile      `json:"profile"`
	Prompts            []string          `json:"prompts"`
	Responses          PlatformResponses `json:"responses"`
	BrandAnalysis      EntityAnalysis    `json:"brand_analysis"`
	CompetitorAnalysis CompetitiveReport `json:"competitor_analysis"`
	VisibilityScore    VisibilityScore   `json:"visibility_score"`
	Timestamp          time.Time         `json:"timestamp"`
}

// RunSummary is the compact last-run view served on /status
type RunSummary struct {
	RunID         string         `json:"run_id"`
	Brand         string         `json:"brand"`
	OverallScore  float64        `json:"overall_score"`
	TotalMentions int            `json:"total_mentions"`
	Platforms     map[string]int `json:"platform_mentions"`
	StartedAt     time.Time      `json:"started_at"`
	Duration      string         `json:"duration"`
}
