package analyzer

import (
	"github.com/BerylCAtieno/pdf-summary-pipeline/internal/models"
)

// Segmenter splits text into sentences and word tokens.
type Segmenter interface {
	SplitSentences(text string) ([]string, error)
	TokenizeWords(text string) ([]string, error)
	Fold(text string) string
	Stopwords(language string) (map[string]struct{}, error)
}

type Analyzer interface {
	Summarize(text string, category models.Category) (string, error)
	Keywords(text string) ([]string, error)
	Analyze(text string, category models.Category) (*models.AnalysisResult, error)
}

type frequencyAnalyzer struct {
	summarizer   *Summarizer
	keywords     *KeywordExtractor
	keywordCount int
}

// NewFrequencyAnalyzer combines the summarizer and keyword extractor over a
// shared segmenter.
func NewFrequencyAnalyzer(seg Segmenter, language string, keywordCount int) (Analyzer, error) {
	extractor, err := NewKeywordExtractor(seg, language)
	if err != nil {
		return nil, err
	}
	if keywordCount <= 0 {
		keywordCount = DefaultKeywordCount
	}

	return &frequencyAnalyzer{
		summarizer:   NewSummarizer(seg),
		keywords:     extractor,
		keywordCount: keywordCount,
	}, nil
}

func (a *frequencyAnalyzer) Summarize(text string, category models.Category) (string, error) {
	return a.summarizer.Summarize(text, category)
}

func (a *frequencyAnalyzer) Keywords(text string) ([]string, error) {
	return a.keywords.Extract(text, a.keywordCount)
}

func (a *frequencyAnalyzer) Analyze(text string, category models.Category) (*models.AnalysisResult, error) {
	summary, err := a.Summarize(text, category)
	if err != nil {
		return nil, err
	}

	keywords, err := a.Keywords(text)
	if err != nil {
		return nil, err
	}

	return &models.AnalysisResult{
		Category: category,
		Summary:  summary,
		Keywords: keywords,
	}, nil
}
