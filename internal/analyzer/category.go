package analyzer

import "github.com/BerylCAtieno/pdf-summary-pipeline/internal/models"

const (
	shortMaxPages  = 10
	mediumMaxPages = 30
)

// Classify maps a page count to a length category. Negative counts are
// treated as zero.
func Classify(pages int) models.Category {
	switch {
	case pages <= shortMaxPages:
		return models.CategoryShort
	case pages <= mediumMaxPages:
		return models.CategoryMedium
	default:
		return models.CategoryLong
	}
}

// SentenceTarget is the number of sentences a summary keeps for category.
func SentenceTarget(category models.Category) int {
	switch category {
	case models.CategoryShort:
		return 2
	case models.CategoryMedium:
		return 4
	case models.CategoryLong:
		return 7
	default:
		return 3
	}
}
