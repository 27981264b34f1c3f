package analysis

import "strings"

// SentimentStrategy classifies how a response talks about an entity.
// Implementations return "positive", "negative" or "neutral" for the
// response as a whole.
type SentimentStrategy interface {
	Classify(text, entity string) string
}

// KeywordSentiment scores sentiment by counting opinion keywords near each
// occurrence of the entity and summing the signal across occurrences. It is
// a bounded proximity heuristic, not a trained model.
type KeywordSentiment struct {
	radius int
}

// NewKeywordSentiment returns the default strategy with a ±100 character window
func NewKeywordSentiment() *KeywordSentiment {
	return &KeywordSentiment{radius: 100}
}

var positiveKeywords = []string{
	"best", "excellent", "great", "amazing", "outstanding", "superior",
	"top", "leading", "recommended", "popular", "reliable", "trusted",
	"innovative", "effective", "efficient", "quality", "premium",
	"love", "like", "prefer", "choose", "select", "winner",
}

var negativeKeywords = []string{
	"worst", "terrible", "bad", "awful", "poor", "inferior",
	"avoid", "problem", "issue", "complaint", "expensive",
	"slow", "difficult", "complicated", "limited", "lacking",
	"hate", "dislike", "disappointed", "frustrating", "annoying",
}

func (s *KeywordSentiment) Classify(text, entity string) string {
	occurrences := findOccurrences(text, nameVariants(entity))
	if len(occurrences) == 0 {
		return "neutral"
	}

	score := 0
	for _, occ := range occurrences {
		start := occ.index - s.radius
		if start < 0 {
			start = 0
		}
		end := occ.index + len(occ.surface) + s.radius
		if end > len(text) {
			end = len(text)
		}
		window := strings.ToLower(text[start:end])

		for _, keyword := range positiveKeywords {
			if strings.Contains(window, keyword) {
				score++
			}
		}
		for _, keyword := range negativeKeywords {
			if strings.Contains(window, keyword) {
				score--
			}
		}
	}

	switch {
	case score > 0:
		return "positive"
	case score < 0:
		return "negative"
	default:
		return "neutral"
	}
}
