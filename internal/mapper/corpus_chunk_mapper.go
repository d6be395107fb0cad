package mapper

import (
	"encoding/json"
	"time"

	"clinic-assistant-be/internal/entity"
	"clinic-assistant-be/internal/model"

	"github.com/pgvector/pgvector-go"
	"gorm.io/datatypes"
)

type CorpusChunkMapper struct{}

func NewCorpusChunkMapper() *CorpusChunkMapper {
	return &CorpusChunkMapper{}
}

func (m *CorpusChunkMapper) ToEntity(c *model.CorpusChunk) *entity.CorpusChunk {
	if c == nil {
		return nil
	}

	var updatedAt *time.Time
	if !c.UpdatedAt.IsZero() {
		t := c.UpdatedAt
		updatedAt = &t
	}

	var metadata map[string]interface{}
	if len(c.Metadata) > 0 {
		_ = json.Unmarshal(c.Metadata, &metadata)
	}

	return &entity.CorpusChunk{
		Id:             c.Id,
		Document:       c.Document,
		SourceName:     c.SourceName,
		SourceType:     c.SourceType,
		ChunkIndex:     c.ChunkIndex,
		Metadata:       metadata,
		EmbeddingValue: c.EmbeddingValue.Slice(),
		CreatedAt:      c.CreatedAt,
		UpdatedAt:      updatedAt,
	}
}

func (m *CorpusChunkMapper) ToModel(c *entity.CorpusChunk) *model.CorpusChunk {
	if c == nil {
		return nil
	}

	var updatedAt time.Time
	if c.UpdatedAt != nil {
		updatedAt = *c.UpdatedAt
	}

	var metadata datatypes.JSON
	if c.Metadata != nil {
		raw, err := json.Marshal(c.Metadata)
		if err == nil {
			metadata = datatypes.JSON(raw)
		}
	}

	return &model.CorpusChunk{
		Id:             c.Id,
		Document:       c.Document,
		SourceName:     c.SourceName,
		SourceType:     c.SourceType,
		ChunkIndex:     c.ChunkIndex,
		Metadata:       metadata,
		EmbeddingValue: pgvector.NewVector(c.EmbeddingValue),
		CreatedAt:      c.CreatedAt,
		UpdatedAt:      updatedAt,
	}
}

func (m *CorpusChunkMapper) ToEntities(chunks []*model.CorpusChunk) []*entity.CorpusChunk {
	entities := make([]*entity.CorpusChunk, len(chunks))
	for i, c := range chunks {
		entities[i] = m.ToEntity(c)
	}
	return entities
}

func (m *CorpusChunkMapper) ToModels(chunks []*entity.CorpusChunk) []*model.CorpusChunk {
	models := make([]*model.CorpusChunk, len(chunks))
	for i, c := range chunks {
		models[i] = m.ToModel(c)
	}
	return models
}
