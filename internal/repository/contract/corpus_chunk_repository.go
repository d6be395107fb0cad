package contract

import (
	"context"

	"clinic-assistant-be/internal/entity"
	"clinic-assistant-be/internal/repository/specification"
)

// ScoredCorpusChunk wraps CorpusChunk with its similarity score
type ScoredCorpusChunk struct {
	Chunk      *entity.CorpusChunk
	Similarity float64 // 0.0 to 1.0 (1.0 = identical)
}

type CorpusChunkRepository interface {
	Create(ctx context.Context, chunk *entity.CorpusChunk) error
	CreateBulk(ctx context.Context, chunks []*entity.CorpusChunk) error
	DeleteBySourceName(ctx context.Context, sourceName string) error
	DeleteAll(ctx context.Context) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.CorpusChunk, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.CorpusChunk, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
	// SearchSimilarWithScore returns the nearest chunks by cosine similarity,
	// best first, together with their scores.
	SearchSimilarWithScore(ctx context.Context, embedding []float32, limit int) ([]*ScoredCorpusChunk, error)
}
