// Package language reports the dominant language of extracted text.
package language

import (
	"strings"

	"github.com/pemistahl/lingua-go"
)

// Result is a detected language with its confidence in [0, 1].
type Result struct {
	Name       string  `json:"name" yaml:"name"`
	Code       string  `json:"code" yaml:"code"`
	Confidence float64 `json:"confidence" yaml:"confidence"`
}

// Detector distinguishes Chinese from the languages most often mixed into
// Chinese pages.
type Detector struct {
	detector lingua.LanguageDetector
}

// NewDetector builds a detector for Chinese, Japanese, Korean and English.
func NewDetector() *Detector {
	return &Detector{
		detector: lingua.NewLanguageDetectorBuilder().
			FromLanguages(lingua.Chinese, lingua.Japanese, lingua.Korean, lingua.English).
			Build(),
	}
}

// Detect returns the most likely language of text, or nil when it cannot
// tell.
func (d *Detector) Detect(text string) *Result {
	if d == nil || strings.TrimSpace(text) == "" {
		return nil
	}
	lang, ok := d.detector.DetectLanguageOf(text)
	if !ok {
		return nil
	}
	return &Result{
		Name:       lang.String(),
		Code:       strings.ToLower(lang.IsoCode639_1().String()),
		Confidence: d.detector.ComputeLanguageConfidence(text, lang),
	}
}
