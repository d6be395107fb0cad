package service

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"clinic-assistant-be/internal/dto"
	"clinic-assistant-be/internal/entity"
	"clinic-assistant-be/internal/pkg/logger"
)

type IIngestService interface {
	// IngestDirectory queues every .txt file in the corpus directory for
	// re-embedding. Returns how many sources were queued.
	IngestDirectory(ctx context.Context) (int, error)
}

type ingestService struct {
	corpusDir        string
	publisherService IPublisherService
	log              logger.ILogger
}

func NewIngestService(corpusDir string, publisherService IPublisherService, log logger.ILogger) IIngestService {
	return &ingestService{
		corpusDir:        corpusDir,
		publisherService: publisherService,
		log:              log,
	}
}

func (s *ingestService) IngestDirectory(ctx context.Context) (int, error) {
	entries, err := os.ReadDir(s.corpusDir)
	if err != nil {
		return 0, fmt.Errorf("failed to read corpus directory %s: %w", s.corpusDir, err)
	}

	queued := 0
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".txt") {
			continue
		}

		content, err := os.ReadFile(filepath.Join(s.corpusDir, e.Name()))
		if err != nil {
			s.log.Error("INGEST", "failed to read corpus file", map[string]interface{}{
				"file":  e.Name(),
				"error": err.Error(),
			})
			continue
		}
		if len(strings.TrimSpace(string(content))) == 0 {
			continue
		}

		sourceName := strings.TrimSuffix(e.Name(), ".txt")
		sourceType := entity.SourceTypeWeb
		if strings.HasPrefix(sourceName, "doc__") {
			sourceType = entity.SourceTypeDocument
		}

		payload, err := json.Marshal(dto.IngestSourceMessage{
			SourceName: sourceName,
			SourceType: sourceType,
			Content:    string(content),
		})
		if err != nil {
			return queued, err
		}

		if err := s.publisherService.Publish(ctx, payload); err != nil {
			return queued, fmt.Errorf("failed to queue source %s: %w", sourceName, err)
		}
		queued++
	}

	s.log.Info("INGEST", "corpus sources queued", map[string]interface{}{
		"dir":    s.corpusDir,
		"queued": queued,
	})
	return queued, nil
}
