package semantic

import (
	"context"
	"fmt"

	"clinic-assistant-be/internal/repository/contract"
	"clinic-assistant-be/internal/repository/unitofwork"
	"clinic-assistant-be/pkg/embedding"
)

// Index answers vector-similarity queries by embedding the query text
// and delegating the nearest-neighbour search to the chunk store.
type Index struct {
	repoFactory unitofwork.RepositoryFactory
	provider    embedding.EmbeddingProvider
}

func NewIndex(repoFactory unitofwork.RepositoryFactory, provider embedding.EmbeddingProvider) *Index {
	return &Index{
		repoFactory: repoFactory,
		provider:    provider,
	}
}

// Search embeds the query and returns the k most similar chunks,
// best first, with cosine similarity scores.
func (x *Index) Search(ctx context.Context, query string, k int) ([]*contract.ScoredCorpusChunk, error) {
	res, err := x.provider.Generate(query, "RETRIEVAL_QUERY")
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}

	uow := x.repoFactory.NewUnitOfWork(ctx)
	return uow.CorpusChunkRepository().SearchSimilarWithScore(ctx, res.Embedding.Values, k)
}
