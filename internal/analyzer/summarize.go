package analyzer

import (
	"sort"
	"strings"

	"github.com/BerylCAtieno/pdf-summary-pipeline/internal/models"
)

type Summarizer struct {
	seg Segmenter
}

func NewSummarizer(seg Segmenter) *Summarizer {
	return &Summarizer{seg: seg}
}

type scoredSentence struct {
	text     string
	score    int
	position int
}

// Summarize selects the highest scoring sentences of text. A sentence scores
// the sum of whole-document counts of its tokens, stopwords included. Equal
// scores keep document order. Texts that already fit the target are returned
// unchanged.
func (s *Summarizer) Summarize(text string, category models.Category) (string, error) {
	sentences, err := s.seg.SplitSentences(text)
	if err != nil {
		return "", err
	}

	k := SentenceTarget(category)
	if len(sentences) <= k {
		return text, nil
	}

	words, err := s.seg.TokenizeWords(s.seg.Fold(text))
	if err != nil {
		return "", err
	}
	freq := BuildFrequencyTable(words)

	// Keyed by sentence text, so repeated sentences collapse to one entry.
	scores := make(map[string]*scoredSentence, len(sentences))
	for i, sentence := range sentences {
		tokens, err := s.seg.TokenizeWords(s.seg.Fold(sentence))
		if err != nil {
			return "", err
		}

		score, recognized := 0, false
		for _, tok := range tokens {
			if n, ok := freq.Count(tok); ok {
				score += n
				recognized = true
			}
		}
		if !recognized {
			continue
		}

		if entry, ok := scores[sentence]; ok {
			entry.score = score
			continue
		}
		scores[sentence] = &scoredSentence{text: sentence, score: score, position: i}
	}

	ranked := make([]*scoredSentence, 0, len(scores))
	for _, entry := range scores {
		ranked = append(ranked, entry)
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].score != ranked[j].score {
			return ranked[i].score > ranked[j].score
		}
		return ranked[i].position < ranked[j].position
	})
	if len(ranked) > k {
		ranked = ranked[:k]
	}

	selected := make([]string, len(ranked))
	for i, entry := range ranked {
		selected[i] = entry.text
	}
	return strings.Join(selected, " "), nil
}
