package analyzer

import (
	"strings"
	"testing"

	"github.com/BerylCAtieno/pdf-summary-pipeline/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSummarizeSelectsHighestScoringSentences(t *testing.T) {
	s := NewSummarizer(simpleSegmenter{})

	// "." occurs three times and counts toward every sentence:
	// cats 8, dogs 9, birds 6.
	got, err := s.Summarize("Cats are great. Dogs are great too. Birds fly high.", models.CategoryShort)
	require.NoError(t, err)
	assert.Equal(t, "Dogs are great too. Cats are great.", got)
}

func TestSummarizeReturnsShortTextUnchanged(t *testing.T) {
	s := NewSummarizer(simpleSegmenter{})

	tests := []struct {
		category models.Category
		text     string
	}{
		{models.CategoryShort, "Only one sentence here."},
		{models.CategoryShort, "First line.  Second   line."},
		{models.CategoryMedium, "One. Two. Three. Four."},
		{models.CategoryLong, "A. B. C. D. E. F. G."},
		{"", "One. Two. Three."},
	}

	for _, tt := range tests {
		got, err := s.Summarize(tt.text, tt.category)
		require.NoError(t, err)
		assert.Equal(t, tt.text, got, "category=%q", tt.category)
	}
}

func TestSummarizeEmptyText(t *testing.T) {
	s := NewSummarizer(simpleSegmenter{})

	got, err := s.Summarize("", models.CategoryLong)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestSummarizeBreaksTiesByDocumentOrder(t *testing.T) {
	s := NewSummarizer(simpleSegmenter{})

	got, err := s.Summarize("Alpha beta. Gamma delta. Epsilon zeta. Eta theta.", models.CategoryShort)
	require.NoError(t, err)
	assert.Equal(t, "Alpha beta. Gamma delta.", got)
}

func TestSummarizeCollapsesDuplicateSentences(t *testing.T) {
	s := NewSummarizer(simpleSegmenter{})

	got, err := s.Summarize("Red fish. Red fish. Blue sky. Green tree.", models.CategoryShort)
	require.NoError(t, err)
	assert.Equal(t, "Red fish. Blue sky.", got)
}

func TestSummarizeUsesCategoryTarget(t *testing.T) {
	s := NewSummarizer(simpleSegmenter{})

	var parts []string
	for _, w := range []string{"one", "two", "three", "four", "five", "six", "seven", "eight", "nine", "ten"} {
		parts = append(parts, "Word "+w+".")
	}
	text := strings.Join(parts, " ")

	for category, want := range map[models.Category]int{
		models.CategoryShort:  2,
		models.CategoryMedium: 4,
		models.CategoryLong:   7,
		"unknown":             3,
	} {
		got, err := s.Summarize(text, category)
		require.NoError(t, err)
		assert.Equal(t, want, strings.Count(got, "."), "category=%q", category)
	}
}

// scriptedSegmenter returns fixed sentences and lets individual sentences
// tokenize to words missing from the full-text table.
type scriptedSegmenter struct {
	simpleSegmenter
	sentences []string
	tokens    map[string][]string
}

func (s scriptedSegmenter) SplitSentences(string) ([]string, error) {
	return s.sentences, nil
}

func (s scriptedSegmenter) TokenizeWords(text string) ([]string, error) {
	if toks, ok := s.tokens[text]; ok {
		return toks, nil
	}
	return s.simpleSegmenter.TokenizeWords(text)
}

func TestSummarizeOmitsSentencesWithoutRecognizedTokens(t *testing.T) {
	text := "kept. ghost one. ghost two. ghost three."
	seg := scriptedSegmenter{
		sentences: []string{"kept.", "ghost one.", "ghost two.", "ghost three."},
		tokens: map[string][]string{
			text:           {"kept", "."},
			"ghost one.":   {"zzz"},
			"ghost two.":   {"yyy"},
			"ghost three.": {},
		},
	}
	s := NewSummarizer(seg)

	got, err := s.Summarize(text, "")
	require.NoError(t, err)
	assert.Equal(t, "kept.", got)
}
