package analyzer

import (
	"unicode"
)

const DefaultKeywordCount = 5

type KeywordExtractor struct {
	seg       Segmenter
	stopwords map[string]struct{}
}

func NewKeywordExtractor(seg Segmenter, language string) (*KeywordExtractor, error) {
	stopwords, err := seg.Stopwords(language)
	if err != nil {
		return nil, err
	}
	return &KeywordExtractor{seg: seg, stopwords: stopwords}, nil
}

// Extract returns up to n distinct alphabetic non-stopword tokens, most
// frequent first. n <= 0 means DefaultKeywordCount.
func (e *KeywordExtractor) Extract(text string, n int) ([]string, error) {
	if n <= 0 {
		n = DefaultKeywordCount
	}

	words, err := e.seg.TokenizeWords(e.seg.Fold(text))
	if err != nil {
		return nil, err
	}

	filtered := words[:0:0]
	for _, w := range words {
		if !isAlpha(w) {
			continue
		}
		if _, stop := e.stopwords[w]; stop {
			continue
		}
		filtered = append(filtered, w)
	}

	top := BuildFrequencyTable(filtered).MostCommon(n)
	keywords := make([]string, len(top))
	for i, tc := range top {
		keywords[i] = tc.Token
	}
	return keywords, nil
}

func isAlpha(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return true
}
