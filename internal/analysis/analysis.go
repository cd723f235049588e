// Package analysis counts segmented words and ranks them by frequency.
package analysis

import (
	"sort"
	"strings"
	"unicode/utf8"

	"wordcharts/internal/segment"
)

// DefaultTopN is the most words a ranking ever keeps.
const DefaultTopN = 20

// WordCount pairs a word with its number of occurrences.
type WordCount struct {
	Word  string `json:"word" yaml:"word"`
	Count int    `json:"count" yaml:"count"`
}

// TokenCount maps words to counts. Entries are unique and kept in the order
// words were first seen, which makes tie-breaking in Rank deterministic.
type TokenCount []WordCount

// RankedWords is a frequency table sorted by descending count.
type RankedWords []WordCount

// Len returns the number of distinct words.
func (tc TokenCount) Len() int { return len(tc) }

// MaxCount returns the highest count, or 0 for an empty table.
func (tc TokenCount) MaxCount() int {
	max := 0
	for _, wc := range tc {
		if wc.Count > max {
			max = wc.Count
		}
	}
	return max
}

// Total returns the number of counted tokens.
func (tc TokenCount) Total() int {
	total := 0
	for _, wc := range tc {
		total += wc.Count
	}
	return total
}

// Get returns the count for word.
func (tc TokenCount) Get(word string) (int, bool) {
	for _, wc := range tc {
		if wc.Word == word {
			return wc.Count, true
		}
	}
	return 0, false
}

// Aggregator segments text and counts the resulting words.
type Aggregator struct {
	seg       segment.Segmenter
	stopwords map[string]struct{}
}

// NewAggregator creates an aggregator. stopwords may be nil.
func NewAggregator(seg segment.Segmenter, stopwords map[string]struct{}) *Aggregator {
	return &Aggregator{seg: seg, stopwords: stopwords}
}

// Process segments text and counts every word longer than one character.
// Empty input yields an empty table.
func (a *Aggregator) Process(text string) TokenCount {
	if text == "" {
		return TokenCount{}
	}
	return Count(a.seg.Segment(text), a.stopwords)
}

// Count tallies words, dropping any whose trimmed form is a single character
// or is listed in stopwords.
func Count(words []string, stopwords map[string]struct{}) TokenCount {
	counts := TokenCount{}
	index := make(map[string]int)

	for _, w := range words {
		w = strings.TrimSpace(w)
		if utf8.RuneCountInString(w) <= 1 {
			continue
		}
		if _, stop := stopwords[w]; stop {
			continue
		}
		if i, ok := index[w]; ok {
			counts[i].Count++
			continue
		}
		index[w] = len(counts)
		counts = append(counts, WordCount{Word: w, Count: 1})
	}

	return counts
}

// Rank keeps entries with count >= minFreq, sorts them by descending count
// and truncates to n. n outside [1, DefaultTopN] means DefaultTopN. Ties keep
// discovery order.
func Rank(counts TokenCount, minFreq, n int) RankedWords {
	if n <= 0 || n > DefaultTopN {
		n = DefaultTopN
	}

	ranked := RankedWords{}
	for _, wc := range counts {
		if wc.Count >= minFreq {
			ranked = append(ranked, wc)
		}
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Count > ranked[j].Count
	})

	if len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}

// ResolveMinFreq picks the slider value: requested when set, otherwise def,
// clamped to [1, max]. With no data (max < 1) it returns 1.
func ResolveMinFreq(requested, def, max int) int {
	v := requested
	if v <= 0 {
		v = def
	}
	if v > max {
		v = max
	}
	if v < 1 {
		v = 1
	}
	return v
}
