package bootstrap

import (
	"context"
	"log"
	"time"

	"clinic-assistant-be/internal/config"
	"clinic-assistant-be/internal/controller"
	"clinic-assistant-be/internal/pkg/logger"
	"clinic-assistant-be/internal/pkg/mailer"
	"clinic-assistant-be/internal/repository/memory"
	"clinic-assistant-be/internal/repository/unitofwork"
	"clinic-assistant-be/internal/service"
	"clinic-assistant-be/internal/websocket"
	"clinic-assistant-be/pkg/composer"
	"clinic-assistant-be/pkg/dialog"
	"clinic-assistant-be/pkg/embedding"
	"clinic-assistant-be/pkg/llm/factory"
	"clinic-assistant-be/pkg/retrieval"
	"clinic-assistant-be/pkg/retrieval/lexical"
	"clinic-assistant-be/pkg/retrieval/rerank"
	"clinic-assistant-be/pkg/retrieval/semantic"
	"clinic-assistant-be/pkg/splitter"

	pktNats "clinic-assistant-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	AssistantController controller.IAssistantController
	AdminController     controller.IAdminController

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService
	IngestService   service.IIngestService

	// Shared infrastructure
	WebSocketHub *websocket.Hub
	LexicalIndex *lexical.Index
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	emailService := mailer.NewEmailService(
		cfg.SMTP.Host,
		cfg.SMTP.Port,
		cfg.SMTP.Email,
		cfg.SMTP.Password,
		cfg.SMTP.SenderName,
	)

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// 3. AI Providers
	embeddingProvider := embedding.NewOllamaProvider(
		cfg.Ai.OllamaBaseURL,
		cfg.Ai.EmbeddingModel,
	)
	log.Printf("[INFO] Using Embedding Provider: OLLAMA (%s)", cfg.Ai.EmbeddingModel)

	llmProvider, err := factory.NewLLMProvider(
		cfg.Ai.LLMProvider,
		cfg.Ai.LLMModel,
		cfg.Ai.OllamaBaseURL,
	)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize LLM Provider: %v", err)
	}
	log.Printf("[INFO] Using LLM Provider: %s (%s)", cfg.Ai.LLMProvider, cfg.Ai.LLMModel)

	// 3.5 Infrastructure
	// NATS
	natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
	}

	// Redis
	opt, err := redis.ParseURL(cfg.App.RedisURL)
	if err != nil {
		log.Printf("[WARN] Failed to parse Redis URL: %v. Using direct Addr", err)
		opt = &redis.Options{
			Addr: cfg.App.RedisURL,
		}
	}
	rdb := redis.NewClient(opt)
	if _, err := rdb.Ping(context.Background()).Result(); err != nil {
		log.Printf("[WARN] Failed to connect to Redis: %v", err)
	}

	// WebSocket Hub
	wsLogger := logger.NewIsolatedLogger("logs/websocket.log")
	wsHub := websocket.NewHub(rdb, wsLogger)
	go wsHub.Run()

	// 4. Retrieval Pipeline
	lexicalIndex := lexical.NewIndex()
	warmLexicalIndex(uowFactory, lexicalIndex)

	semanticIndex := semantic.NewIndex(uowFactory, embeddingProvider)

	var scorer rerank.Scorer
	if cfg.Ai.RerankEnabled {
		scorer = rerank.NewCrossEncoderClient(cfg.Ai.RerankerURL)
		log.Printf("[INFO] Cross-encoder reranker enabled (%s)", cfg.Ai.RerankerURL)
	} else {
		log.Printf("[INFO] Cross-encoder reranker disabled, using heuristic ordering")
	}

	retriever := retrieval.NewRetriever(semanticIndex, lexicalIndex, scorer, retrieval.Config{
		RelevanceThreshold:  cfg.Retrieval.RelevanceThreshold,
		CandidateMultiplier: cfg.Retrieval.CandidateMultiplier,
	}, sysLogger)

	answerComposer := composer.NewComposer(retriever, llmProvider, cfg.Retrieval.FAQContextChunks, sysLogger)

	// 5. Dialogue
	if err := dialog.ValidateCatalogue(); err != nil {
		log.Fatalf("[FATAL] Message catalogue incomplete: %v", err)
	}
	sessionRepo := memory.NewSessionRepository(time.Duration(cfg.Booking.SessionIdleTTLMin) * time.Minute)
	bookingGateway := service.NewBookingGateway(uowFactory, emailService, natsPub, cfg.SMTP.StaffEmail, sysLogger)
	engine := dialog.NewEngine(answerComposer, bookingGateway, sysLogger)

	// 6. Services
	textSplitter := splitter.New(cfg.Retrieval.ChunkSize, cfg.Retrieval.ChunkOverlap)

	publisherService := service.NewPublisherService(cfg.App.IngestTopic, pubSub)
	consumerService := service.NewConsumerService(
		pubSub,
		cfg.App.IngestTopic,
		uowFactory,
		embeddingProvider,
		textSplitter,
		lexicalIndex,
		natsPub,
	)
	ingestService := service.NewIngestService(cfg.App.CorpusDir, publisherService, sysLogger)

	assistantService := service.NewAssistantService(sessionRepo, engine, sysLogger)
	bookingService := service.NewBookingService(uowFactory, emailService, natsPub, cfg.SMTP.StaffEmail, sysLogger)

	// 7. Controllers
	return &Container{
		AssistantController: controller.NewAssistantController(assistantService, wsHub, sysLogger),
		AdminController:     controller.NewAdminController(bookingService, ingestService),

		ConsumerService: consumerService,
		IngestService:   ingestService,

		WebSocketHub: wsHub,
		LexicalIndex: lexicalIndex,
	}
}

// warmLexicalIndex fills the keyword index from the existing corpus so
// searches work before the first ingest run.
func warmLexicalIndex(uowFactory unitofwork.RepositoryFactory, index *lexical.Index) {
	ctx := context.Background()
	uow := uowFactory.NewUnitOfWork(ctx)

	chunks, err := uow.CorpusChunkRepository().FindAll(ctx)
	if err != nil {
		log.Printf("[WARN] Failed to warm lexical index: %v", err)
		return
	}

	index.Rebuild(chunks)
	log.Printf("[INFO] Lexical index warmed with %d chunks", len(chunks))
}
