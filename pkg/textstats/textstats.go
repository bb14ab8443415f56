// Package textstats computes word statistics over extracted article text.
package textstats

import (
	"fmt"
	"sort"
	"strings"
)

// maxTextLength bounds how much text the word counter will look at.
// A safety valve for pathological pages, not something readers of normal
// articles will ever hit.
const maxTextLength = 1_000_000

// WordCount returns the number of whitespace-delimited tokens in text,
// computed over at most maxTextLength characters.
func WordCount(text string) int {
	if len(text) > maxTextLength {
		text = text[:maxTextLength]
	}
	return len(strings.Fields(text))
}

// stopwords are excluded from keyword frequency analysis.
var stopwords = map[string]struct{}{
	"a": {}, "about": {}, "after": {}, "all": {}, "also": {}, "an": {},
	"and": {}, "any": {}, "are": {}, "as": {}, "at": {}, "be": {},
	"because": {}, "been": {}, "before": {}, "but": {}, "by": {},
	"can": {}, "could": {}, "did": {}, "do": {}, "does": {}, "for": {},
	"from": {}, "had": {}, "has": {}, "have": {}, "he": {}, "her": {},
	"here": {}, "his": {}, "how": {}, "i": {}, "if": {}, "in": {},
	"into": {}, "is": {}, "it": {}, "its": {}, "just": {}, "like": {},
	"more": {}, "most": {}, "my": {}, "no": {}, "not": {}, "now": {},
	"of": {}, "on": {}, "one": {}, "only": {}, "or": {}, "other": {},
	"our": {}, "out": {}, "over": {}, "she": {}, "so": {}, "some": {},
	"such": {}, "than": {}, "that": {}, "the": {}, "their": {}, "them": {},
	"then": {}, "there": {}, "these": {}, "they": {}, "this": {}, "those": {},
	"through": {}, "to": {}, "up": {}, "was": {}, "we": {}, "were": {},
	"what": {}, "when": {}, "where": {}, "which": {}, "while": {}, "who": {},
	"will": {}, "with": {}, "would": {}, "you": {}, "your": {},
}

// WordFrequency builds a frequency map over the lowercased, punctuation
// trimmed tokens of text, skipping stopwords.
func WordFrequency(text string) map[string]int {
	frequencies := make(map[string]int)
	for _, word := range strings.Fields(strings.ToLower(text)) {
		word = strings.TrimFunc(word, func(r rune) bool {
			return ('a' > r || r > 'z') && ('0' > r || r > '9')
		})
		if word == "" {
			continue
		}
		if _, skip := stopwords[word]; skip {
			continue
		}
		frequencies[word]++
	}
	return frequencies
}

// TopKeywords returns the n most frequent words, formatted "word:count",
// ordered by descending count with ties broken alphabetically so output
// is stable.
func TopKeywords(frequencies map[string]int, n int) []string {
	type kv struct {
		word  string
		count int
	}

	sorted := make([]kv, 0, len(frequencies))
	for word, count := range frequencies {
		sorted = append(sorted, kv{word, count})
	}
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].count != sorted[j].count {
			return sorted[i].count > sorted[j].count
		}
		return sorted[i].word < sorted[j].word
	})

	if n > len(sorted) {
		n = len(sorted)
	}
	if n < 0 {
		n = 0
	}

	keywords := make([]string, n)
	for i := 0; i < n; i++ {
		keywords[i] = fmt.Sprintf("%s:%d", sorted[i].word, sorted[i].count)
	}
	return keywords
}
