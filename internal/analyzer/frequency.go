package analyzer

import "sort"

type TokenCount struct {
	Token string
	Count int
}

// FrequencyTable counts token occurrences and remembers the order in which
// each distinct token was first seen.
type FrequencyTable struct {
	counts map[string]int
	order  []string
}

// BuildFrequencyTable counts tokens as given. Callers case-fold and filter
// beforehand.
func BuildFrequencyTable(tokens []string) *FrequencyTable {
	t := &FrequencyTable{counts: make(map[string]int, len(tokens))}
	for _, tok := range tokens {
		if _, ok := t.counts[tok]; !ok {
			t.order = append(t.order, tok)
		}
		t.counts[tok]++
	}
	return t
}

func (t *FrequencyTable) Count(token string) (int, bool) {
	n, ok := t.counts[token]
	return n, ok
}

func (t *FrequencyTable) Len() int {
	return len(t.order)
}

// MostCommon returns up to n entries by descending count, ties in
// first-seen order. A negative n returns every entry.
func (t *FrequencyTable) MostCommon(n int) []TokenCount {
	ranked := make([]TokenCount, 0, len(t.order))
	for _, tok := range t.order {
		ranked = append(ranked, TokenCount{Token: tok, Count: t.counts[tok]})
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Count > ranked[j].Count
	})
	if n >= 0 && n < len(ranked) {
		ranked = ranked[:n]
	}
	return ranked
}
