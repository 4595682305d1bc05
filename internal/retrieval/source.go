package retrieval

import "context"

// RankedSource produces an ordered sequence of document texts for a query.
// The semantic and keyword providers both satisfy this contract; how either
// ranking is produced is the source's own business.
type RankedSource interface {
	Search(ctx context.Context, query string, k int) ([]string, error)
}

// SourceFunc adapts a function to the RankedSource interface.
type SourceFunc func(ctx context.Context, query string, k int) ([]string, error)

// Search implements RankedSource.
func (f SourceFunc) Search(ctx context.Context, query string, k int) ([]string, error) {
	return f(ctx, query, k)
}
