package bootstrap

import (
	"context"
	"log"

	"ai-advisor-be/internal/config"
	"ai-advisor-be/internal/controller"
	"ai-advisor-be/internal/handler"
	"ai-advisor-be/internal/pkg/logger"
	"ai-advisor-be/internal/repository/memory"
	"ai-advisor-be/internal/repository/unitofwork"
	"ai-advisor-be/internal/service"
	"ai-advisor-be/internal/websocket"
	"ai-advisor-be/pkg/llm/factory"

	pktNats "ai-advisor-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	ChatController    controller.IChatController
	TopicController   controller.ITopicController
	ProfileController controller.IProfileController
	CatalogController controller.ICatalogController

	// Background Services (Exposed for main.go to run)
	ConsumerService     service.IConsumerService
	NotificationService *service.NotificationService

	// WebSockets & Notification
	NotificationHandler *handler.NotificationHandler
	WebSocketHub        *websocket.Hub
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	// 2. Event Bus (in-process, for async caption work)
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// 3. LLM Provider
	llmProvider, err := factory.NewLLMProvider(
		cfg.Ai.LLMProvider,
		cfg.Ai.LLMModel,
		cfg.Ai.BaseURL,
		cfg.Keys.DeepSeek,
	)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize LLM Provider: %v", err)
	}
	log.Printf("[INFO] Using LLM Provider: %s (%s)", cfg.Ai.LLMProvider, cfg.Ai.LLMModel)

	// In-memory profile cache
	profileCache := memory.NewProfileCache()

	// 4. Infrastructure
	// NATS
	natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
	}
	natsSub, err := pktNats.NewSubscriber(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Subscriber: %v", err)
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
	wsLogger := logger.NewIsolatedLogger("logs/notification.log")
	wsHub := websocket.NewHub(rdb, wsLogger)
	go wsHub.Run()

	// 5. Services
	publisherService := service.NewPublisherService(cfg.Keys.CaptionTopic, pubSub)
	consumerService := service.NewConsumerService(
		pubSub,
		cfg.Keys.CaptionTopic,
		uowFactory,
		llmProvider,
		natsPub,
	)

	chatService := service.NewChatService(uowFactory, profileCache, llmProvider, natsPub, sysLogger)
	topicService := service.NewTopicService(uowFactory, publisherService)
	profileService := service.NewProfileService(uowFactory, profileCache)
	catalogService := service.NewCatalogService(uowFactory)

	var notifService *service.NotificationService
	if natsSub != nil {
		notifService = service.NewNotificationService(natsSub, wsHub, wsLogger)
	}

	// 6. Controllers
	return &Container{
		ChatController:    controller.NewChatController(chatService, sysLogger),
		TopicController:   controller.NewTopicController(topicService),
		ProfileController: controller.NewProfileController(profileService),
		CatalogController: controller.NewCatalogController(catalogService),

		ConsumerService:     consumerService,
		NotificationService: notifService,

		NotificationHandler: handler.NewNotificationHandler(wsHub, wsLogger),
		WebSocketHub:        wsHub,
	}
}
