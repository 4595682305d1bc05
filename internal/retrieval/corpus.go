package retrieval

import (
	"context"
	"sort"
	"strings"
)

// Corpus is an in-process document collection that can serve both ranked
// providers for fixture-backed deployments: keyword ranking by stopword-
// filtered token overlap, and lexical ranking by character-bigram
// similarity as a lightweight stand-in where no vector index is deployed.
// Documents are opaque text blobs; the corpus is immutable after creation.
type Corpus struct {
	docs    []string
	tokens  [][]string
	bigrams []map[string]int
}

// NewCorpus indexes the given documents.
func NewCorpus(docs []string) *Corpus {
	c := &Corpus{
		docs:    docs,
		tokens:  make([][]string, len(docs)),
		bigrams: make([]map[string]int, len(docs)),
	}
	for i, d := range docs {
		c.tokens[i] = tokenize(d)
		c.bigrams[i] = bigramProfile(d)
	}
	return c
}

// KeywordSource returns the token-overlap ranked provider.
func (c *Corpus) KeywordSource() RankedSource {
	return SourceFunc(func(_ context.Context, query string, k int) ([]string, error) {
		queryTokens := tokenize(query)
		return c.rank(k, func(i int) float64 {
			return overlapScore(queryTokens, c.tokens[i])
		}), nil
	})
}

// LexicalSource returns the bigram-similarity ranked provider.
func (c *Corpus) LexicalSource() RankedSource {
	return SourceFunc(func(_ context.Context, query string, k int) ([]string, error) {
		queryProfile := bigramProfile(query)
		return c.rank(k, func(i int) float64 {
			return diceCoefficient(queryProfile, c.bigrams[i])
		}), nil
	})
}

// rank scores every document, drops zero scores, and returns the top k
// texts in descending score order. Ties keep corpus order so ranking stays
// deterministic.
func (c *Corpus) rank(k int, score func(i int) float64) []string {
	type scored struct {
		idx   int
		score float64
	}
	var hits []scored
	for i := range c.docs {
		if s := score(i); s > 0 {
			hits = append(hits, scored{idx: i, score: s})
		}
	}
	sort.SliceStable(hits, func(a, b int) bool { return hits[a].score > hits[b].score })

	if k > 0 && len(hits) > k {
		hits = hits[:k]
	}
	out := make([]string, len(hits))
	for i, h := range hits {
		out[i] = c.docs[h.idx]
	}
	return out
}

// overlapScore counts query tokens present in the document's token set.
func overlapScore(query, doc []string) float64 {
	if len(query) == 0 || len(doc) == 0 {
		return 0
	}
	set := make(map[string]bool, len(doc))
	for _, t := range doc {
		set[t] = true
	}
	matches := 0
	for _, t := range query {
		if set[t] {
			matches++
		}
	}
	return float64(matches)
}

// bigramProfile counts lowercase character bigrams, skipping whitespace
// boundaries.
func bigramProfile(text string) map[string]int {
	profile := make(map[string]int)
	runes := []rune(strings.ToLower(text))
	for i := 0; i+1 < len(runes); i++ {
		if runes[i] == ' ' || runes[i+1] == ' ' {
			continue
		}
		profile[string(runes[i:i+2])]++
	}
	return profile
}

// diceCoefficient computes 2*|A∩B| / (|A|+|B|) over bigram multisets.
func diceCoefficient(a, b map[string]int) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	var sizeA, sizeB, shared int
	for _, n := range a {
		sizeA += n
	}
	for _, n := range b {
		sizeB += n
	}
	for g, n := range a {
		if m, ok := b[g]; ok {
			shared += min(n, m)
		}
	}
	return 2 * float64(shared) / float64(sizeA+sizeB)
}
