// Package retrieval implements hybrid evidence retrieval: two independently
// ranked candidate lists (semantic and keyword) merged into one deduplicated
// list with a completeness-derived confidence score, plus the workflow step
// that drives the confidence-gated retry loop.
package retrieval

const (
	// DefaultTopK is the bounded size K of each candidate list and of the
	// merged result.
	DefaultTopK = 5

	// dedupePrefixLen is the number of leading characters used as the
	// document equality key. Chunked documents share long boilerplate
	// suffixes, so a generous prefix is the cheapest stable identity.
	dedupePrefixLen = 100
)

// Merge combines semantic and keyword candidates into a single ranked list
// of at most k documents plus a confidence score.
//
// Semantic results are given priority on ties: candidates are concatenated
// semantic-first, deduplicated on their leading 100 characters preserving
// first-seen order, then truncated to k. Confidence is the fraction of the
// requested count actually returned: a completeness proxy used as the
// retry-loop termination signal, not a relevance score.
func Merge(semantic, keyword []string, k int) ([]string, float64) {
	if k <= 0 {
		k = DefaultTopK
	}

	seen := make(map[string]struct{}, len(semantic)+len(keyword))
	merged := make([]string, 0, k)

	for _, lists := range [][]string{semantic, keyword} {
		for _, doc := range lists {
			key := contentKey(doc)
			if _, dup := seen[key]; dup {
				continue
			}
			seen[key] = struct{}{}
			merged = append(merged, doc)
			if len(merged) == k {
				return merged, confidence(len(merged), k)
			}
		}
	}

	return merged, confidence(len(merged), k)
}

// contentKey returns the document's leading characters as its equality key.
// Runes, not bytes, so multibyte text never splits mid-character.
func contentKey(doc string) string {
	runes := []rune(doc)
	if len(runes) > dedupePrefixLen {
		return string(runes[:dedupePrefixLen])
	}
	return doc
}

func confidence(returned, k int) float64 {
	return float64(returned) / float64(k)
}
