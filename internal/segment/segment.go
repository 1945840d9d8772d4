// Package segment splits extracted document text into sentences and word
// tokens and provides the case folding and stopword sets used for matching.
package segment

import (
	"fmt"
	"strings"

	"github.com/jdkato/prose/v3"
	"golang.org/x/text/cases"
)

// SegmentationError reports text the tokenizer could not process.
type SegmentationError struct {
	Err error
}

func (e *SegmentationError) Error() string {
	return fmt.Sprintf("segmentation failed: %v", e.Err)
}

func (e *SegmentationError) Unwrap() error {
	return e.Err
}

// PDF text often breaks words across lines with a trailing hyphen.
var dehyphenate = strings.NewReplacer("-\n", "")

// ProseSegmenter implements sentence and word segmentation on top of prose.
// It holds no mutable state and is safe for concurrent use.
type ProseSegmenter struct{}

func NewProseSegmenter() *ProseSegmenter {
	return &ProseSegmenter{}
}

func newTokenizer() prose.Tokenizer {
	return prose.NewIterTokenizer(prose.UsingSanitizer(dehyphenate))
}

func (s *ProseSegmenter) SplitSentences(text string) (sentences []string, err error) {
	if strings.TrimSpace(text) == "" {
		return nil, nil
	}

	defer func() {
		if r := recover(); r != nil {
			sentences = nil
			err = &SegmentationError{Err: fmt.Errorf("%v", r)}
		}
	}()

	doc, err := prose.NewDocument(text,
		prose.UsingTokenizer(newTokenizer()),
		prose.WithTagging(false),
		prose.WithExtraction(false),
	)
	if err != nil {
		return nil, &SegmentationError{Err: err}
	}

	for _, sent := range doc.Sentences() {
		if strings.TrimSpace(sent.Text) == "" {
			continue
		}
		sentences = append(sentences, sent.Text)
	}
	return sentences, nil
}

func (s *ProseSegmenter) TokenizeWords(text string) (words []string, err error) {
	if strings.TrimSpace(text) == "" {
		return nil, nil
	}

	defer func() {
		if r := recover(); r != nil {
			words = nil
			err = &SegmentationError{Err: fmt.Errorf("%v", r)}
		}
	}()

	for _, tok := range newTokenizer().Tokenize(text) {
		if tok.Text == "" {
			continue
		}
		words = append(words, tok.Text)
	}
	return words, nil
}

// Fold returns the Unicode case-folded form of s. A Caser is not safe for
// concurrent use, so one is built per call.
func (s *ProseSegmenter) Fold(text string) string {
	return cases.Fold().String(text)
}

func (s *ProseSegmenter) Stopwords(language string) (map[string]struct{}, error) {
	return Stopwords(language)
}
