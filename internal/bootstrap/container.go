package bootstrap

import (
	"context"
	"log"

	"github.com/ArthurLoboLobo/projeto-estudos/internal/config"
	"github.com/ArthurLoboLobo/projeto-estudos/internal/controller"
	"github.com/ArthurLoboLobo/projeto-estudos/internal/pkg/logger"
	"github.com/ArthurLoboLobo/projeto-estudos/internal/repository/unitofwork"
	"github.com/ArthurLoboLobo/projeto-estudos/internal/service"
	"github.com/ArthurLoboLobo/projeto-estudos/internal/websocket"
	"github.com/ArthurLoboLobo/projeto-estudos/pkg/embedding"
	"github.com/ArthurLoboLobo/projeto-estudos/pkg/extractor"
	"github.com/ArthurLoboLobo/projeto-estudos/pkg/llm/factory"
	"github.com/ArthurLoboLobo/projeto-estudos/pkg/storage"

	pktNats "github.com/ArthurLoboLobo/projeto-estudos/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	AuthController     controller.IAuthController
	SessionController  controller.ISessionController
	DocumentController controller.IDocumentController
	PlanningController controller.IPlanningController
	TopicController    controller.ITopicController
	ChatController     controller.IChatController

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService

	// WebSocket push
	Hub *websocket.Hub
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	ctx := context.Background()

	// 1. Core Facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// 3. AI Providers
	var embeddingProvider embedding.EmbeddingProvider
	if cfg.Ai.EmbeddingProvider == "ollama" {
		embeddingProvider = embedding.NewOllamaProvider(
			cfg.Ai.OllamaBaseURL,
			cfg.Ai.EmbeddingModel,
		)
		log.Printf("[INFO] Using Embedding Provider: OLLAMA (%s)", cfg.Ai.EmbeddingModel)
	} else {
		embeddingProvider = embedding.NewGeminiProvider(cfg.Ai.GoogleGeminiKey)
		log.Printf("[INFO] Using Embedding Provider: GEMINI (%s)", cfg.Ai.EmbeddingModel)
	}

	aiSettings := factory.Settings{
		OpenRouterAPIKey:  cfg.Ai.OpenRouterAPIKey,
		OpenRouterBaseURL: cfg.Ai.OpenRouterBaseURL,
		GeminiAPIKey:      cfg.Ai.GoogleGeminiKey,
		OllamaBaseURL:     cfg.Ai.OllamaBaseURL,
	}
	llmProvider, err := factory.NewLLMProvider(ctx, cfg.Ai.LLMProvider, cfg.Ai.LLMModel, aiSettings)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize LLM Provider: %v", err)
	}
	log.Printf("[INFO] Using LLM Provider: %s (%s)", cfg.Ai.LLMProvider, cfg.Ai.LLMModel)

	visionProvider, err := factory.NewVisionProvider(ctx, cfg.Ai.LLMProvider, cfg.Ai.VisionModel, aiSettings)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize Vision Provider: %v", err)
	}
	pdfExtractor := extractor.NewPdfExtractor(visionProvider, cfg.Upload.RenderDPI)

	// 4. Infrastructure
	storageClient := storage.NewClient(cfg.Storage.BaseURL, cfg.Storage.ServiceKey, cfg.Storage.Bucket)

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
		rdb = nil
	}

	// WebSocket Hub
	wsLogger := logger.NewIsolatedLogger("logs/websocket.log")
	wsHub := websocket.NewHub(rdb, wsLogger)
	go wsHub.Run()

	// 5. Services
	publisherService := service.NewPublisherService(cfg.Ai.EmbeddingTopic, pubSub)
	consumerService := service.NewConsumerService(
		pubSub,
		cfg.Ai.EmbeddingTopic,
		uowFactory,
		storageClient,
		pdfExtractor,
		embeddingProvider,
		natsPub,
		wsHub,
		sysLogger,
	)

	authService := service.NewAuthService(uowFactory, cfg.Auth.TokenExpiresIn)
	sessionService := service.NewSessionService(uowFactory, storageClient, sysLogger)
	documentService := service.NewDocumentService(
		uowFactory,
		storageClient,
		publisherService,
		sysLogger,
		cfg.Upload.MaxFileSizeBytes,
		cfg.Storage.SignedUrlTTL,
	)
	chatService := service.NewChatService(uowFactory, llmProvider, embeddingProvider, sysLogger)
	planningService := service.NewPlanningService(uowFactory, llmProvider, chatService, sysLogger)
	topicService := service.NewTopicService(uowFactory)

	// 6. Controllers
	return &Container{
		AuthController:     controller.NewAuthController(authService),
		SessionController:  controller.NewSessionController(sessionService),
		DocumentController: controller.NewDocumentController(documentService),
		PlanningController: controller.NewPlanningController(planningService),
		TopicController:    controller.NewTopicController(topicService),
		ChatController:     controller.NewChatController(chatService),

		ConsumerService: consumerService,
		Hub:             wsHub,
	}
}
