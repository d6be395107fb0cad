package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
	"gorm.io/datatypes"
)

type CorpusChunk struct {
	Id             uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Document       string          `gorm:"type:text;not null"`
	SourceName     string          `gorm:"type:varchar(255);not null;index"`
	SourceType     string          `gorm:"type:varchar(32);not null;index"` // "web" or "document"
	ChunkIndex     int             `gorm:"default:0"`                       // 0-based index for ordering
	Metadata       datatypes.JSON  `gorm:"type:jsonb"`
	EmbeddingValue pgvector.Vector `gorm:"type:vector(768)"` // nomic-embed-text uses 768 dimensions
	CreatedAt      time.Time       `gorm:"autoCreateTime"`
	UpdatedAt      time.Time       `gorm:"autoUpdateTime"`
}

func (CorpusChunk) TableName() string {
	return "corpus_chunks"
}
