package service

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"clinic-assistant-be/internal/dto"
	"clinic-assistant-be/internal/entity"
	"clinic-assistant-be/internal/repository/unitofwork"
	"clinic-assistant-be/pkg/embedding"
	"clinic-assistant-be/pkg/events"
	pktNats "clinic-assistant-be/pkg/nats"
	"clinic-assistant-be/pkg/retrieval/lexical"
	"clinic-assistant-be/pkg/splitter"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

type consumerService struct {
	pubSub            *gochannel.GoChannel
	topicName         string
	uowFactory        unitofwork.RepositoryFactory
	embeddingProvider embedding.EmbeddingProvider
	textSplitter      *splitter.Splitter
	lexicalIndex      *lexical.Index
	eventPublisher    *pktNats.Publisher
}

func NewConsumerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	uowFactory unitofwork.RepositoryFactory,
	embeddingProvider embedding.EmbeddingProvider,
	textSplitter *splitter.Splitter,
	lexicalIndex *lexical.Index,
	eventPublisher *pktNats.Publisher,
) IConsumerService {
	return &consumerService{
		pubSub:            pubSub,
		topicName:         topicName,
		uowFactory:        uowFactory,
		embeddingProvider: embeddingProvider,
		textSplitter:      textSplitter,
		lexicalIndex:      lexicalIndex,
		eventPublisher:    eventPublisher,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.pubSub.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (cs *consumerService) processMessage(ctx context.Context, msg *message.Message) {
	var payload dto.IngestSourceMessage
	err := json.Unmarshal(msg.Payload, &payload)
	if err != nil {
		log.Printf("[ERROR] Failed to unmarshal message: %v", err)
		msg.Ack() // Ack invalid messages to prevent infinite retry
		return
	}

	log.Printf("[INFO] Processing corpus source: %s (%s, %d chars)",
		payload.SourceName, payload.SourceType, len(payload.Content))

	chunks := cs.textSplitter.Split(payload.Content)
	log.Printf("[INFO] Source %s split into %d chunks", payload.SourceName, len(chunks))

	var newChunks []*entity.CorpusChunk
	for i, chunk := range chunks {
		res, err := cs.embeddingProvider.Generate(chunk, "RETRIEVAL_DOCUMENT")
		if err != nil {
			log.Printf("[ERROR] Failed to generate embedding for chunk %d of %s: %v", i, payload.SourceName, err)
			msg.Nack()
			return
		}

		newChunks = append(newChunks, &entity.CorpusChunk{
			Id:             uuid.New(),
			Document:       chunk,
			SourceName:     payload.SourceName,
			SourceType:     payload.SourceType,
			ChunkIndex:     i,
			EmbeddingValue: res.Embedding.Values,
			CreatedAt:      time.Now(),
		})
	}

	uow := cs.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		log.Printf("[ERROR] Failed to begin transaction: %v", err)
		msg.Nack()
		return
	}
	defer uow.Rollback()

	if err := uow.CorpusChunkRepository().DeleteBySourceName(ctx, payload.SourceName); err != nil {
		log.Printf("[ERROR] Failed to delete old chunks for %s: %v", payload.SourceName, err)
		msg.Nack()
		return
	}

	if len(newChunks) > 0 {
		if err := uow.CorpusChunkRepository().CreateBulk(ctx, newChunks); err != nil {
			log.Printf("[ERROR] Failed to create chunks for %s: %v", payload.SourceName, err)
			msg.Nack()
			return
		}
	}

	if err := uow.Commit(); err != nil {
		log.Printf("[ERROR] Failed to commit transaction: %v", err)
		msg.Nack()
		return
	}

	// Keyword search must reflect the new rows. The rebuild swaps the
	// whole index in one step so searches never see a half-built state.
	if err := cs.rebuildLexicalIndex(ctx); err != nil {
		log.Printf("[WARN] Lexical index rebuild failed after ingest of %s: %v", payload.SourceName, err)
	}

	log.Printf("[SUCCESS] Source processed: %d chunks for %s", len(newChunks), payload.SourceName)
	msg.Ack()
}

func (cs *consumerService) rebuildLexicalIndex(ctx context.Context) error {
	uow := cs.uowFactory.NewUnitOfWork(ctx)
	all, err := uow.CorpusChunkRepository().FindAll(ctx)
	if err != nil {
		return err
	}

	cs.lexicalIndex.Rebuild(all)

	if cs.eventPublisher != nil {
		sources := map[string]struct{}{}
		for _, c := range all {
			sources[c.SourceName] = struct{}{}
		}
		evt := events.NewCorpusRebuilt(len(all), len(sources))
		if err := cs.eventPublisher.Publish(ctx, evt); err != nil {
			log.Printf("[WARN] Failed to publish corpus rebuilt event: %v", err)
		}
	}
	return nil
}
