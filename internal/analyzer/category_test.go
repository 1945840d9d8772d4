package analyzer

import (
	"testing"

	"github.com/BerylCAtieno/pdf-summary-pipeline/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestClassifyBoundaries(t *testing.T) {
	tests := []struct {
		pages int
		want  models.Category
	}{
		{0, models.CategoryShort},
		{1, models.CategoryShort},
		{10, models.CategoryShort},
		{11, models.CategoryMedium},
		{30, models.CategoryMedium},
		{31, models.CategoryLong},
		{500, models.CategoryLong},
		{-3, models.CategoryShort},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Classify(tt.pages), "pages=%d", tt.pages)
	}
}

func TestClassifyIsTotal(t *testing.T) {
	for p := 0; p <= 200; p++ {
		got := Classify(p)
		switch {
		case p <= 10:
			assert.Equal(t, models.CategoryShort, got, "pages=%d", p)
		case p <= 30:
			assert.Equal(t, models.CategoryMedium, got, "pages=%d", p)
		default:
			assert.Equal(t, models.CategoryLong, got, "pages=%d", p)
		}
	}
}

func TestSentenceTarget(t *testing.T) {
	assert.Equal(t, 2, SentenceTarget(models.CategoryShort))
	assert.Equal(t, 4, SentenceTarget(models.CategoryMedium))
	assert.Equal(t, 7, SentenceTarget(models.CategoryLong))
	assert.Equal(t, 3, SentenceTarget(""))
	assert.Equal(t, 3, SentenceTarget("huge"))
}
