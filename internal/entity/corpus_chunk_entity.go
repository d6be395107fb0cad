package entity

import (
	"time"

	"github.com/google/uuid"
)

// Source types a chunk can originate from. Web pages are crawled clinic
// pages, documents are ingested local files (prefixed doc__ on disk).
const (
	SourceTypeWeb      = "web"
	SourceTypeDocument = "document"
)

type CorpusChunk struct {
	Id             uuid.UUID
	Document       string
	SourceName     string
	SourceType     string
	ChunkIndex     int
	Metadata       map[string]interface{}
	EmbeddingValue []float32
	CreatedAt      time.Time
	UpdatedAt      *time.Time
}
