package prompts

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/brandscope/visibility-bot/internal/industries"
)

// Prompt categories in generation order
var categories = []string{
	"direct_comparison",
	"recommendation",
	"problem_solving",
	"feature_specific",
	"buying_journey",
}

// Templates used when a location is part of the profile
var locationTemplates = map[string][]string{
	"direct_comparison": {
		"What are the best {industry} companies in {region}?",
		"Which {industry} platforms should I choose in {region}?",
		"Compare the top {industry} services available in {region}",
		"List the leading {industry} providers in {region}",
	},
	"recommendation": {
		"I need recommendations for {industry} solutions in {region}",
		"What {industry} service would you recommend for a {business_type} in {region}?",
		"Help me choose the right {industry} platform in {region}",
		"Which {industry} company offers the best value in {region}?",
	},
	"problem_solving": {
		"How can I solve {pain_point} using {industry} services in {region}?",
		"What's the best way to {action} in {industry} in {region}?",
		"I'm looking for {industry} solutions in {region} that can help with {need}",
		"How do I choose the right {industry} provider for {use_case} in {region}?",
	},
	"feature_specific": {
		"Which {industry} companies in {region} offer {feature}?",
		"What {industry} platforms in {region} have the best {capability}?",
		"Compare {feature} across different {industry} providers in {region}",
		"Find {industry} services in {region} with strong {benefit}",
	},
	"buying_journey": {
		"How do I get started with {industry} services in {region}?",
		"What should I look for when choosing {industry} providers in {region}?",
		"Steps to implement {industry} solutions in my business in {region}",
		"Beginner's guide to {industry} platforms in {region}",
	},
}

// Templates used when no location is given
var genericTemplates = map[string][]string{
	"direct_comparison": {
		"What are the best {industry} companies?",
		"Which {industry} platforms should I choose?",
		"Compare the top {industry} services available today",
		"List the leading {industry} providers",
	},
	"recommendation": {
		"I need recommendations for {industry} solutions",
		"What {industry} service would you recommend for a {business_type}?",
		"Help me choose the right {industry} platform",
		"Which {industry} company offers the best value?",
	},
	"problem_solving": {
		"How can I solve {pain_point} using {industry} services?",
		"What's the best way to {action} in {industry}?",
		"I'm looking for {industry} solutions that can help with {need}",
		"How do I choose the right {industry} provider for {use_case}?",
	},
	"feature_specific": {
		"Which {industry} companies offer {feature}?",
		"What {industry} platforms have the best {capability}?",
		"Compare {feature} across different {industry} providers",
		"Find {industry} services with strong {benefit}",
	},
	"buying_journey": {
		"How do I get started with {industry} services?",
		"What should I look for when choosing {industry} providers?",
		"Steps to implement {industry} solutions in my business",
		"Beginner's guide to {industry} platforms",
	},
}

// Generator produces industry-specific prompts for visibility analysis
type Generator struct {
	rng *rand.Rand
}

// NewGenerator returns a generator seeded from the clock
func NewGenerator() *Generator {
	return NewSeededGenerator(time.Now().UnixNano())
}

// NewSeededGenerator returns a generator with a fixed seed, for reproducible runs
func NewSeededGenerator(seed int64) *Generator {
	return &Generator{rng: rand.New(rand.NewSource(seed))}
}

// Generate builds exactly count prompts for the industry. Prompts are spread
// evenly across the categories, topped up from random categories, and every
// prompt carries the location when one is given. Custom industries use a
// synthesized vocabulary; unknown non-custom industries are an error.
func (g *Generator) Generate(industry string, count int, location string, custom bool) ([]string, error) {
	vocab, err := resolveVocabulary(industry, location, custom)
	if err != nil {
		return nil, err
	}

	templates := genericTemplates
	if location != "" {
		templates = locationTemplates
	}

	perCategory := count / len(categories)
	if perCategory < 1 {
		perCategory = 1
	}

	prompts := make([]string, 0, count+len(categories))
	for _, category := range categories {
		for i := 0; i < perCategory; i++ {
			prompts = append(prompts, g.fill(g.pick(templates[category]), vocab))
		}
	}
	for len(prompts) < count {
		category := categories[g.rng.Intn(len(categories))]
		prompts = append(prompts, g.fill(g.pick(templates[category]), vocab))
	}

	final := make([]string, 0, count)
	for _, prompt := range prompts[:count] {
		final = append(final, ensureLocation(prompt, location))
	}
	return final, nil
}

// CompetitorPrompts builds head-to-head prompts naming the brand against each
// competitor: direct comparisons, feature matchups on the industry's top
// three features, and advantage questions for the first two competitors.
func (g *Generator) CompetitorPrompts(industry, brand string, competitors []string, location string) []string {
	vocab, ok := industries.Lookup(industry)
	if !ok {
		vocab = industries.Synthesize(industry, location)
	}

	suffix := ""
	if location != "" {
		suffix = " in " + location
	}

	prompts := make([]string, 0, len(competitors)+5)
	for _, competitor := range competitors {
		prompts = append(prompts, fmt.Sprintf("Compare %s vs %s%s", brand, competitor, suffix))
	}

	if len(competitors) > 0 {
		features := vocab.Features
		if len(features) > 3 {
			features = features[:3]
		}
		for _, feature := range features {
			rival := competitors[g.rng.Intn(len(competitors))]
			prompt := fmt.Sprintf("Which is better for %s: %s or %s?", feature, brand, rival)
			if location != "" {
				prompt = strings.TrimSuffix(prompt, "?") + suffix + "?"
			}
			prompts = append(prompts, prompt)
		}
	}

	top := competitors
	if len(top) > 2 {
		top = top[:2]
	}
	for _, competitor := range top {
		prompts = append(prompts, fmt.Sprintf("What are the advantages of %s over %s%s?", brand, competitor, suffix))
	}

	return prompts
}

// ValidatePrompts drops blank prompts, prompts with unfilled placeholders,
// and duplicates, keeping first-seen order.
func ValidatePrompts(prompts []string) []string {
	seen := make(map[string]struct{}, len(prompts))
	valid := make([]string, 0, len(prompts))
	for _, prompt := range prompts {
		if strings.TrimSpace(prompt) == "" {
			continue
		}
		if strings.ContainsAny(prompt, "{}") {
			continue
		}
		if _, dup := seen[prompt]; dup {
			continue
		}
		seen[prompt] = struct{}{}
		valid = append(valid, prompt)
	}
	return valid
}

func resolveVocabulary(industry, location string, custom bool) (industries.Industry, error) {
	if custom {
		return industries.Synthesize(industry, location), nil
	}

	vocab, ok := industries.Lookup(industry)
	if !ok {
		return industries.Industry{}, fmt.Errorf("industry %s is not supported: %w", industry, industries.ErrUnsupported)
	}
	if location != "" {
		regions := make([]string, 0, len(vocab.Regions)+1)
		regions = append(regions, location)
		for _, region := range vocab.Regions {
			if region != location {
				regions = append(regions, region)
			}
		}
		vocab.Regions = regions
	}
	return vocab, nil
}

func (g *Generator) fill(template string, vocab industries.Industry) string {
	replacements := []struct {
		placeholder string
		options     []string
	}{
		{"{industry}", vocab.Terms},
		{"{region}", vocab.Regions},
		{"{business_type}", vocab.BusinessTypes},
		{"{pain_point}", vocab.PainPoints},
		{"{action}", vocab.Actions},
		{"{need}", vocab.Needs},
		{"{use_case}", vocab.UseCases},
		{"{feature}", vocab.Features},
		{"{capability}", vocab.Capabilities},
		{"{benefit}", vocab.Benefits},
	}

	out := template
	for _, r := range replacements {
		if strings.Contains(out, r.placeholder) {
			out = strings.ReplaceAll(out, r.placeholder, g.pick(r.options))
		}
	}
	return out
}

func (g *Generator) pick(options []string) string {
	return options[g.rng.Intn(len(options))]
}

// ensureLocation appends the location to a prompt that lost it during
// template fill, keeping a trailing question mark in place.
func ensureLocation(prompt, location string) string {
	if location == "" || strings.Contains(prompt, location) {
		return prompt
	}
	if strings.HasSuffix(prompt, "?") {
		return strings.TrimSuffix(prompt, "?") + " in " + location + "?"
	}
	return prompt + " in " + location
}
