// Package segment splits unspaced Chinese text into word tokens.
package segment

import (
	"fmt"

	bleveunicode "github.com/blevesearch/bleve/v2/analysis/tokenizer/unicode"
	"github.com/blevesearch/bleve/v2/analysis/lang/cjk"
	"github.com/go-ego/gse"
)

// Segmenter splits text into a sequence of words.
type Segmenter interface {
	Segment(text string) []string
}

// Names accepted by New.
const (
	KindGSE    = "gse"
	KindBigram = "bigram"
)

// New builds the segmenter named by kind. userWords are only honoured by the
// dictionary segmenter.
func New(kind string, userWords []string) (Segmenter, error) {
	switch kind {
	case "", KindGSE:
		return NewDictionary(userWords)
	case KindBigram:
		return NewBigram(), nil
	default:
		return nil, fmt.Errorf("unknown segmenter %q", kind)
	}
}

// Dictionary is a dictionary/HMM segmenter backed by gse's embedded
// Chinese dictionary.
type Dictionary struct {
	seg gse.Segmenter
}

// NewDictionary loads the embedded dictionary and adds userWords with a high
// frequency so they are never split.
func NewDictionary(userWords []string) (*Dictionary, error) {
	d := &Dictionary{}
	d.seg.SkipLog = true
	if err := d.seg.LoadDictEmbed(); err != nil {
		return nil, fmt.Errorf("failed to load dictionary: %w", err)
	}
	for _, w := range userWords {
		if err := d.seg.AddToken(w, 1000); err != nil {
			return nil, fmt.Errorf("failed to add user word %q: %w", w, err)
		}
	}
	return d, nil
}

// Segment cuts text in HMM mode so out-of-dictionary words are still joined.
func (d *Dictionary) Segment(text string) []string {
	if text == "" {
		return nil
	}
	return d.seg.Cut(text, true)
}

// Bigram emits overlapping two-character tokens for runs of ideographs, the
// way bleve's CJK analyzer indexes text. It needs no dictionary.
type Bigram struct {
	tokenizer *bleveunicode.UnicodeTokenizer
	width     *cjk.CJKWidthFilter
	bigram    *cjk.CJKBigramFilter
}

// NewBigram creates a bigram segmenter.
func NewBigram() *Bigram {
	return &Bigram{
		tokenizer: bleveunicode.NewUnicodeTokenizer(),
		width:     cjk.NewCJKWidthFilter(),
		bigram:    cjk.NewCJKBigramFilter(false),
	}
}

// Segment implements Segmenter.
func (b *Bigram) Segment(text string) []string {
	stream := b.bigram.Filter(b.width.Filter(b.tokenizer.Tokenize([]byte(text))))
	words := make([]string, 0, len(stream))
	for _, tok := range stream {
		words = append(words, string(tok.Term))
	}
	return words
}
