package retrieval

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixtureDocs = []string{
	"Machine M001 bearing failure log: high torque readings preceded spindle bearing wear.",
	"Hydraulic pressure drop on line 4 traced to a worn seal in the pump housing.",
	"Preventive maintenance schedule for CNC mills: lubricate spindle bearings weekly.",
	"Operator note: coolant temperature alarm on M007 cleared after filter replacement.",
}

func TestKeywordSourceRanksByTokenOverlap(t *testing.T) {
	corpus := NewCorpus(fixtureDocs)
	src := corpus.KeywordSource()

	docs, err := src.Search(context.Background(), "Why is machine M001 showing bearing failure with high torque?", 5)
	require.NoError(t, err)
	require.NotEmpty(t, docs)
	assert.Equal(t, fixtureDocs[0], docs[0], "best token overlap ranks first")
}

func TestKeywordSourceExcludesZeroScores(t *testing.T) {
	corpus := NewCorpus(fixtureDocs)
	src := corpus.KeywordSource()

	docs, err := src.Search(context.Background(), "completely unrelated zebra question", 5)
	require.NoError(t, err)
	assert.Empty(t, docs)
}

func TestLexicalSourceFindsExactTerms(t *testing.T) {
	corpus := NewCorpus(fixtureDocs)
	src := corpus.LexicalSource()

	docs, err := src.Search(context.Background(), "hydraulic pressure pump seal", 5)
	require.NoError(t, err)
	require.NotEmpty(t, docs)
	assert.Equal(t, fixtureDocs[1], docs[0])
}

func TestCorpusSourcesRespectK(t *testing.T) {
	corpus := NewCorpus(fixtureDocs)
	docs, err := corpus.LexicalSource().Search(context.Background(), "maintenance machine bearing", 2)
	require.NoError(t, err)
	assert.LessOrEqual(t, len(docs), 2)
}

func TestTokenize(t *testing.T) {
	tokens := tokenize("Why is machine M001 showing bearing failure?")
	assert.Contains(t, tokens, "machine")
	assert.Contains(t, tokens, "m001")
	assert.Contains(t, tokens, "bearing")
	assert.Contains(t, tokens, "failure")
	assert.NotContains(t, tokens, "is", "stopwords are filtered")
	assert.NotContains(t, tokens, "why")
}
