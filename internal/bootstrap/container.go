package bootstrap

import (
	"context"
	"log"

	"ai-health-assistant-be/internal/config"
	"ai-health-assistant-be/internal/controller"
	"ai-health-assistant-be/internal/pkg/logger"
	"ai-health-assistant-be/internal/repository/memory"
	"ai-health-assistant-be/internal/repository/unitofwork"
	"ai-health-assistant-be/internal/service"
	"ai-health-assistant-be/pkg/consultation"
	"ai-health-assistant-be/pkg/embedding"
	embeddingFactory "ai-health-assistant-be/pkg/embedding/factory"
	"ai-health-assistant-be/pkg/events"
	llmFactory "ai-health-assistant-be/pkg/llm/factory"
	"ai-health-assistant-be/pkg/progress"
	"ai-health-assistant-be/pkg/rag/index"
	"ai-health-assistant-be/pkg/rag/ingest"

	pktNats "ai-health-assistant-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	ConsultationController controller.IConsultationController
	ProgressController     controller.IProgressController
	RagController          controller.IRagController

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService
	AuditService    *service.AuditService

	// Exposed for the ingest CLI
	DocumentService service.IDocumentService

	Logger logger.ILogger

	closers []func()
}

// NewContainer wires every dependency. A nil db selects the in-memory store.
func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	ctx := context.Background()
	c := &Container{}

	// 1. Core Facades
	var uowFactory unitofwork.RepositoryFactory
	if db != nil {
		uowFactory = unitofwork.NewRepositoryFactory(db)
	} else {
		log.Printf("[WARN] Using in-memory store, data is lost on restart")
		uowFactory = memory.NewRepositoryFactory(memory.NewStore())
	}
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.IsProduction())
	c.Logger = sysLogger

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)
	c.closers = append(c.closers, func() { _ = pubSub.Close() })

	// 3. AI Providers
	llmProvider, err := llmFactory.NewLLMProvider(ctx, llmFactory.Config{
		Provider: cfg.Ai.LLMProvider,
		Model:    cfg.Ai.LLMModel,
		BaseURL:  llmBaseURL(cfg),
		APIKey:   cfg.LLMKey(),
		Timeout:  cfg.Ai.LLMTimeout,
	})
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize LLM Provider: %v", err)
	}
	log.Printf("[INFO] Using LLM Provider: %s (%s)", cfg.Ai.LLMProvider, cfg.Ai.LLMModel)

	embeddingProvider, err := embeddingFactory.NewEmbeddingProvider(ctx, embeddingFactory.Config{
		Provider: cfg.Ai.EmbeddingProvider,
		Model:    cfg.Ai.EmbeddingModel,
		BaseURL:  cfg.Ai.OllamaBaseURL,
		APIKey:   cfg.EmbeddingKey(),
		Timeout:  cfg.Ai.EmbeddingTimeout,
	})
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize Embedding Provider: %v", err)
	}
	log.Printf("[INFO] Using Embedding Provider: %s", cfg.Ai.EmbeddingProvider)

	embeddingProvider = c.withEmbeddingCache(ctx, cfg, embeddingProvider, sysLogger)

	// 4. Similarity Index
	var similarityIndex index.Index
	switch cfg.Rag.VectorIndex {
	case "chromem":
		chromemIndex, err := index.NewChromemIndex(cfg.Rag.ChromemPath, embeddingProvider)
		if err != nil {
			log.Fatalf("[FATAL] Failed to open chromem index at %s: %v", cfg.Rag.ChromemPath, err)
		}
		similarityIndex = chromemIndex
	default:
		similarityIndex = index.NewPgVectorIndex(uowFactory, embeddingProvider)
	}
	similarityIndex = index.WithTimeout(similarityIndex, cfg.Rag.IndexTimeout)
	log.Printf("[INFO] Using Similarity Index: %s", cfg.Rag.VectorIndex)

	// 5. NATS (optional)
	var eventPublisher events.Publisher
	natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Publisher: %v (domain events disabled)", err)
	} else {
		eventPublisher = natsPub
		c.closers = append(c.closers, natsPub.Close)
	}
	natsSub, err := pktNats.NewSubscriber(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Subscriber: %v", err)
	} else {
		c.AuditService = service.NewAuditService(natsSub, logger.NewIsolatedLogger(cfg.App.AuditLogFilePath))
		c.closers = append(c.closers, natsSub.Close)
	}

	// 6. Services
	pipeline := consultation.NewPipeline(llmProvider,
		consultation.WithTemperature(cfg.Ai.PipelineTemperature),
		consultation.WithParallel(cfg.Ai.PipelineParallel),
	)
	feedbackService := progress.NewFeedbackService(llmProvider, cfg.Ai.FeedbackTemperature)
	ingester := ingest.NewIngester(similarityIndex, embeddingProvider, cfg.Rag.ChunkSize, cfg.Rag.ChunkOverlap)

	publisherService := service.NewPublisherService(cfg.App.IngestTopic, pubSub)
	consultationService := service.NewConsultationService(uowFactory, pipeline, eventPublisher, sysLogger)
	progressService := service.NewProgressService(uowFactory, feedbackService, eventPublisher, sysLogger)
	ragService := service.NewRagService(uowFactory, similarityIndex, llmProvider, eventPublisher, sysLogger, service.RagOptions{
		TopK:        cfg.Rag.TopK,
		Temperature: cfg.Ai.GroundedTemperature,
	})
	documentService := service.NewDocumentService(ingester, publisherService, eventPublisher, sysLogger)

	c.DocumentService = documentService
	c.ConsumerService = service.NewConsumerService(pubSub, cfg.App.IngestTopic, documentService, sysLogger,
		service.RetryPolicy{
			MaxRetries:      cfg.App.IngestMaxRetries,
			InitialInterval: cfg.App.IngestRetryDelay,
		},
		watermillLogger,
	)

	// 7. Controllers
	c.ConsultationController = controller.NewConsultationController(consultationService)
	c.ProgressController = controller.NewProgressController(progressService)
	c.RagController = controller.NewRagController(ragService, documentService)

	return c
}

func (c *Container) withEmbeddingCache(ctx context.Context, cfg *config.Config, provider embedding.EmbeddingProvider, sysLogger logger.ILogger) embedding.EmbeddingProvider {
	namespace := cfg.Ai.EmbeddingProvider + ":" + cfg.Ai.EmbeddingModel

	switch cfg.Rag.EmbeddingCache {
	case "none":
		return provider
	case "redis":
		opt, err := redis.ParseURL(cfg.App.RedisURL)
		if err != nil {
			log.Printf("[WARN] Failed to parse Redis URL: %v. Using direct Addr", err)
			opt = &redis.Options{
				Addr: cfg.App.RedisURL,
			}
		}
		rdb := redis.NewClient(opt)
		if _, err := rdb.Ping(ctx).Result(); err != nil {
			log.Printf("[WARN] Failed to connect to Redis: %v (falling back to in-process embedding cache)", err)
			_ = rdb.Close()
			break
		}
		c.closers = append(c.closers, func() { _ = rdb.Close() })
		return embedding.NewCachedProvider(provider, memory.NewRedisEmbeddingCache(rdb, cfg.Rag.CacheTTL, sysLogger), namespace)
	}

	return embedding.NewCachedProvider(provider, memory.NewEmbeddingCache(cfg.Rag.CacheTTL), namespace)
}

func llmBaseURL(cfg *config.Config) string {
	if cfg.Ai.LLMBaseURL != "" {
		return cfg.Ai.LLMBaseURL
	}
	if cfg.Ai.LLMProvider == "ollama" {
		return cfg.Ai.OllamaBaseURL
	}
	return ""
}

// Close releases broker and cache connections in reverse order.
func (c *Container) Close() {
	for i := len(c.closers) - 1; i >= 0; i-- {
		c.closers[i]()
	}
}
