package bootstrap

import (
	"context"
	"log"
	"path/filepath"

	"notepad-be/internal/config"
	"notepad-be/internal/controller"
	"notepad-be/internal/handler"
	"notepad-be/internal/pkg/logger"
	"notepad-be/internal/repository/memory"
	"notepad-be/internal/repository/unitofwork"
	"notepad-be/internal/service"
	"notepad-be/internal/websocket"
	pktNats "notepad-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	FolderController controller.IFolderController
	NoteController   controller.INoteController
	LiveHandler      *handler.LiveHandler

	// Background workers, started by Start
	ConsumerService service.IConsumerService
	WebSocketHub    *websocket.Hub

	Logger logger.ILogger

	pubSub  *gochannel.GoChannel
	natsPub *pktNats.Publisher
	rdb     *redis.Client
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.IsProduction())
	overviewCache := memory.NewOverviewCache(cfg.Overview.CacheTTL)

	// 2. Event Bus
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermill.NewStdLogger(false, false),
	)

	var natsPub *pktNats.Publisher
	var eventPublisher service.EventPublisher
	if cfg.Events.NatsEnabled {
		pub, err := pktNats.NewPublisher(cfg.Events.NatsURL)
		if err != nil {
			log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
		} else {
			natsPub = pub
			eventPublisher = pub
		}
	}

	var rdb *redis.Client
	if cfg.Events.RedisEnabled {
		opt, err := redis.ParseURL(cfg.Events.RedisURL)
		if err != nil {
			log.Printf("[WARN] Failed to parse Redis URL: %v. Using direct Addr", err)
			opt = &redis.Options{Addr: cfg.Events.RedisURL}
		}
		rdb = redis.NewClient(opt)
		if _, err := rdb.Ping(context.Background()).Result(); err != nil {
			log.Printf("[WARN] Failed to connect to Redis: %v", err)
		}
	}

	// 3. Live updates
	wsLogger := logger.NewIsolatedLogger(filepath.Join(filepath.Dir(cfg.App.LogFilePath), "live.log"))
	wsHub := websocket.NewHub(rdb, wsLogger, overviewCache.Invalidate)

	// 4. Services
	publisherService := service.NewPublisherService(pubSub, cfg.Events.ChangeTopic)
	notifier := service.NewChangeNotifier(publisherService, overviewCache, sysLogger)

	folderService := service.NewFolderService(uowFactory, notifier, sysLogger, cfg.Database)
	noteService := service.NewNoteService(uowFactory, notifier, sysLogger, cfg.Database)
	overviewService := service.NewFolderOverviewService(uowFactory, overviewCache, cfg.Database, cfg.Overview)
	consumerService := service.NewConsumerService(pubSub, cfg.Events.ChangeTopic, overviewCache, wsHub, eventPublisher, sysLogger)

	return &Container{
		FolderController: controller.NewFolderController(folderService, overviewService),
		NoteController:   controller.NewNoteController(noteService),
		LiveHandler:      handler.NewLiveHandler(wsHub, wsLogger),
		ConsumerService:  consumerService,
		WebSocketHub:     wsHub,
		Logger:           sysLogger,
		pubSub:           pubSub,
		natsPub:          natsPub,
		rdb:              rdb,
	}
}

// Start runs the websocket hub and the change consumer until ctx is done.
func (c *Container) Start(ctx context.Context) error {
	go c.WebSocketHub.Run(ctx)
	return c.ConsumerService.Consume(ctx)
}

func (c *Container) Close() {
	if err := c.pubSub.Close(); err != nil {
		log.Printf("[WARN] Failed to close change bus: %v", err)
	}
	if c.natsPub != nil {
		c.natsPub.Close()
	}
	if c.rdb != nil {
		if err := c.rdb.Close(); err != nil {
			log.Printf("[WARN] Failed to close Redis client: %v", err)
		}
	}
	_ = c.Logger.Sync()
}
