package retrieval

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// padDoc builds a document whose identity prefix is distinct while the
// remainder is shared boilerplate, mimicking chunked manuals.
func padDoc(prefix string) string {
	return prefix + strings.Repeat(" standard maintenance boilerplate", 10)
}

func TestMergeDeduplicatesByPrefix(t *testing.T) {
	shared := padDoc("bearing wear exceeds tolerance on spindle assembly")
	semantic := []string{shared, padDoc("torque spike recorded during cold start")}
	keyword := []string{shared, padDoc("lubrication schedule for high-load lines")}

	docs, conf := Merge(semantic, keyword, 5)

	require.Len(t, docs, 3)
	assert.Equal(t, semantic[0], docs[0], "semantic position wins for duplicates")
	assert.Equal(t, semantic[1], docs[1])
	assert.Equal(t, keyword[1], docs[2])
	assert.InDelta(t, 0.6, conf, 1e-9)

	seen := map[string]bool{}
	for _, d := range docs {
		key := string([]rune(d)[:dedupePrefixLen])
		assert.False(t, seen[key], "no two entries may share a 100-char prefix")
		seen[key] = true
	}
}

func TestMergeDistinguishesBeyondSharedShortPrefix(t *testing.T) {
	// Documents differing only after 100 characters collapse to one entry.
	base := strings.Repeat("x", dedupePrefixLen)
	docs, conf := Merge([]string{base + "alpha"}, []string{base + "beta"}, 5)

	require.Len(t, docs, 1)
	assert.Equal(t, base+"alpha", docs[0])
	assert.InDelta(t, 0.2, conf, 1e-9)
}

func TestMergeTruncatesToK(t *testing.T) {
	var semantic, keyword []string
	for _, p := range []string{"a", "b", "c", "d", "e"} {
		semantic = append(semantic, padDoc("sem "+p))
		keyword = append(keyword, padDoc("key "+p))
	}

	docs, conf := Merge(semantic, keyword, 5)

	require.Len(t, docs, 5)
	assert.Equal(t, semantic, docs, "semantic list fills the result before keyword entries")
	assert.Equal(t, 1.0, conf)
}

func TestMergeEmptyInputs(t *testing.T) {
	docs, conf := Merge(nil, nil, 5)
	assert.Empty(t, docs)
	assert.Zero(t, conf, "empty inputs force maximal retry")
}

func TestMergeConfidenceIsExactFraction(t *testing.T) {
	for n := 0; n <= 5; n++ {
		var semantic []string
		for i := 0; i < n; i++ {
			semantic = append(semantic, padDoc(strings.Repeat("q", i+1)))
		}
		docs, conf := Merge(semantic, nil, 5)
		require.Len(t, docs, n)
		assert.InDelta(t, float64(n)/5.0, conf, 1e-9)
	}
}

func TestMergeShortDocuments(t *testing.T) {
	// Documents shorter than the prefix length dedupe on full content.
	docs, conf := Merge([]string{"TWF", "HDF"}, []string{"TWF", "PWF"}, 5)
	assert.Equal(t, []string{"TWF", "HDF", "PWF"}, docs)
	assert.InDelta(t, 0.6, conf, 1e-9)
}

func TestMergeMultibytePrefix(t *testing.T) {
	// Rune-based prefixing must not split multibyte characters.
	doc := strings.Repeat("ü", 150)
	docs, _ := Merge([]string{doc}, []string{doc}, 5)
	require.Len(t, docs, 1)
}
