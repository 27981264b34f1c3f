package analysis

import (
	"regexp"
	"sort"
	"strings"
	"unicode"
)

// occurrence is one case-insensitive match of an entity variant in a text
type occurrence struct {
	surface string // the matched text as it appeared
	index   int    // byte offset of the match
}

var camelBoundary = regexp.MustCompile(`([a-z])([A-Z])`)

// nameVariants returns the literal name plus generated variants: the name
// with a space inserted at each camel-case boundary, and the initial-letter
// acronym for multi-word names.
func nameVariants(name string) []string {
	variants := []string{name}

	spaced := camelBoundary.ReplaceAllString(name, "$1 $2")
	if spaced != name {
		variants = append(variants, spaced)
	}

	words := strings.Fields(name)
	if len(words) > 1 {
		var initials strings.Builder
		for _, word := range words {
			initials.WriteRune(unicode.ToUpper([]rune(word)[0]))
		}
		variants = append(variants, initials.String())
	}

	return variants
}

// findOccurrences locates every occurrence of the entity's variants,
// matching case-insensitively. Offsets and surfaces always come from the
// original text, including around runes whose case conversion changes
// their byte length. Matches are merged across variants in text order:
// when spans overlap, the longest match starting earliest wins, so an
// acronym inside the full name is one occurrence, not two.
func findOccurrences(text string, variants []string) []occurrence {
	type span struct {
		start, end int
	}
	var candidates []span
	for _, variant := range variants {
		if variant == "" {
			continue
		}
		pattern := regexp.MustCompile(`(?i)` + regexp.QuoteMeta(variant))
		for _, m := range pattern.FindAllStringIndex(text, -1) {
			candidates = append(candidates, span{start: m[0], end: m[1]})
		}
	}

	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].start != candidates[j].start {
			return candidates[i].start < candidates[j].start
		}
		return candidates[i].end > candidates[j].end
	})

	var found []occurrence
	lastEnd := -1
	for _, c := range candidates {
		if c.start < lastEnd {
			continue
		}
		found = append(found, occurrence{
			surface: text[c.start:c.end],
			index:   c.start,
		})
		lastEnd = c.end
	}
	return found
}
