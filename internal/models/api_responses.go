package models

import (
	"wordcharts/internal/analysis"
	"wordcharts/internal/language"
)

// WordFrequencyResponse is the ranked word list for one page.
type WordFrequencyResponse struct {
	URL         string               `json:"url" yaml:"url"`
	MinFreq     int                  `json:"min_freq" yaml:"min_freq"`
	MaxCount    int                  `json:"max_count" yaml:"max_count"`
	TotalTokens int                  `json:"total_tokens" yaml:"total_tokens"`
	Distinct    int                  `json:"distinct" yaml:"distinct"`
	Language    *language.Result     `json:"language,omitempty" yaml:"language,omitempty"`
	Words       []analysis.WordCount `json:"words" yaml:"words"`
}

// NewWordFrequencyResponse builds a response from counts and their ranking.
func NewWordFrequencyResponse(url string, counts analysis.TokenCount, ranked analysis.RankedWords, minFreq int, lang *language.Result) WordFrequencyResponse {
	words := make([]analysis.WordCount, len(ranked))
	copy(words, ranked)
	return WordFrequencyResponse{
		URL:         url,
		MinFreq:     minFreq,
		MaxCount:    counts.MaxCount(),
		TotalTokens: counts.Total(),
		Distinct:    counts.Len(),
		Language:    lang,
		Words:       words,
	}
}
