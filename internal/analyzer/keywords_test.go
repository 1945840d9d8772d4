package analyzer

import (
	"testing"

	"github.com/BerylCAtieno/pdf-summary-pipeline/internal/segment"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractKeywordsExcludesStopwords(t *testing.T) {
	e, err := NewKeywordExtractor(segment.NewProseSegmenter(), segment.DefaultLanguage)
	require.NoError(t, err)

	got, err := e.Extract("the the the cat cat dog", 2)
	require.NoError(t, err)
	assert.Equal(t, []string{"cat", "dog"}, got)
}

func TestExtractKeywordsProperties(t *testing.T) {
	e, err := NewKeywordExtractor(simpleSegmenter{}, segment.DefaultLanguage)
	require.NoError(t, err)
	stop, err := segment.Stopwords(segment.DefaultLanguage)
	require.NoError(t, err)

	text := "In 2024 the Ledger, the ledger and 42 LEDGERS were audited. Audit rules: audit, audit! Money-laundering rules apply."
	for _, n := range []int{1, 3, 5, 50} {
		got, err := e.Extract(text, n)
		require.NoError(t, err)
		assert.LessOrEqual(t, len(got), n)

		seen := map[string]bool{}
		for _, kw := range got {
			assert.False(t, seen[kw], "duplicate %q", kw)
			seen[kw] = true
			assert.NotContains(t, stop, kw)
			assert.True(t, isAlpha(kw), "non-alphabetic %q", kw)
		}
	}
}

func TestExtractKeywordsRanksByCountThenFirstSeen(t *testing.T) {
	e, err := NewKeywordExtractor(simpleSegmenter{}, segment.DefaultLanguage)
	require.NoError(t, err)

	got, err := e.Extract("Zebra apple apple mango zebra kiwi", 3)
	require.NoError(t, err)
	assert.Equal(t, []string{"zebra", "apple", "mango"}, got)
}

func TestExtractKeywordsDoesNotPad(t *testing.T) {
	e, err := NewKeywordExtractor(simpleSegmenter{}, segment.DefaultLanguage)
	require.NoError(t, err)

	got, err := e.Extract("the and of rivers", 5)
	require.NoError(t, err)
	assert.Equal(t, []string{"rivers"}, got)

	got, err = e.Extract("", 5)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestExtractKeywordsDefaultCount(t *testing.T) {
	e, err := NewKeywordExtractor(simpleSegmenter{}, segment.DefaultLanguage)
	require.NoError(t, err)

	got, err := e.Extract("alpha bravo charlie delta echo foxtrot golf", 0)
	require.NoError(t, err)
	assert.Len(t, got, DefaultKeywordCount)
}
