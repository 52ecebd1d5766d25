package bootstrap

import (
	"context"
	"time"

	"promptito-be/internal/config"
	"promptito-be/internal/controller"
	"promptito-be/internal/handler"
	"promptito-be/internal/pkg/logger"
	"promptito-be/internal/pkg/mailer"
	"promptito-be/internal/repository/cache"
	"promptito-be/internal/repository/memory"
	"promptito-be/internal/repository/unitofwork"
	"promptito-be/internal/service"
	"promptito-be/internal/websocket"
	"promptito-be/pkg/builder/catalog"
	"promptito-be/pkg/i18n"
	pktNats "promptito-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	BuilderController    controller.IBuilderController
	GalleryController    controller.IGalleryController
	ModerationController controller.IModerationController
	CatalogController    controller.ICatalogController
	SkillPackController  controller.ISkillPackController
	AgentController      controller.IAgentController
	PreferenceController controller.IPreferenceController
	DashboardController  controller.IDashboardController

	// WebSockets & Notification
	NotificationHandler *handler.NotificationHandler
	WebSocketHub        *websocket.Hub

	// Background workers, started by Start
	ConsumerService     service.IConsumerService
	ViewFlushJob        *service.ViewFlushJob
	NotificationService *service.NotificationService

	DB     *gorm.DB
	Redis  *redis.Client
	Logger logger.ILogger

	pubSub  *gochannel.GoChannel
	natsPub *pktNats.Publisher
	natsSub *pktNats.Subscriber
}

// NewContainer wires every component. db, Redis and NATS are optional; the
// matching features degrade instead of failing startup.
func NewContainer(db *gorm.DB, cfg *config.Config, sysLogger *logger.ZapLogger) *Container {
	// 1. Core Facades
	var uowFactory unitofwork.RepositoryFactory
	if db != nil {
		uowFactory = unitofwork.NewRepositoryFactory(db)
	}

	var emailService mailer.IEmailService
	if cfg.SMTP.Enabled() {
		emailService = mailer.NewEmailService(
			cfg.SMTP.Host,
			cfg.SMTP.Port,
			cfg.SMTP.Email,
			cfg.SMTP.Password,
			cfg.SMTP.Email,
			cfg.SMTP.SenderName,
			sysLogger,
		)
	} else {
		emailService = mailer.NewNoopEmailService(sysLogger)
	}

	bundle := i18n.MustDefault()
	locales := controller.Locales{Bundle: bundle, Default: bundle.Match(cfg.App.DefaultLocale)}
	store := catalog.MustDefault()

	// 2. Event Bus
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{OutputChannelBuffer: 256},
		watermill.NewStdLogger(false, false),
	)

	// 3. Infrastructure
	rdb := connectRedis(cfg.App.RedisURL, sysLogger)

	var publisher service.EventPublisher
	var natsPub *pktNats.Publisher
	var natsSub *pktNats.Subscriber
	if nc, err := pktNats.Connect(cfg.App.NatsURL); err != nil {
		sysLogger.Warn("Bootstrap", "NATS unavailable, domain events are not published", map[string]interface{}{"error": err.Error()})
	} else {
		if natsPub, err = pktNats.NewPublisher(nc, sysLogger.Zap()); err != nil {
			sysLogger.Warn("Bootstrap", "Failed to create NATS publisher", map[string]interface{}{"error": err.Error()})
		} else {
			publisher = natsPub
		}
		if natsSub, err = pktNats.NewSubscriber(nc, sysLogger.Zap()); err != nil {
			sysLogger.Warn("Bootstrap", "Failed to create NATS subscriber", map[string]interface{}{"error": err.Error()})
		}
	}

	localDrafts := memory.NewLocalDraftRepository(cfg.Cache.LocalDraftTTL)
	galleryCache := cache.NewGalleryCache(rdb, cfg.Cache.GalleryTTL, sysLogger)
	viewCounter := cache.NewViewCounter(rdb)

	// WebSocket Hub
	wsLogger := logger.NewIsolatedLogger(cfg.App.HubLogFilePath)
	wsHub := websocket.NewHub(rdb, wsLogger)

	// 4. Services
	publisherService := service.NewPublisherService(service.TopicPromptViewed, pubSub)
	consumerService := service.NewConsumerService(pubSub, service.TopicPromptViewed, viewCounter, sysLogger)

	var flushJob *service.ViewFlushJob
	if uowFactory != nil {
		flushJob = service.NewViewFlushJob(cfg.App.ViewFlushCron, viewCounter, uowFactory, sysLogger)
	}

	builderService := service.NewPromptBuilderService(uowFactory, localDrafts, store, publisher, galleryCache, cfg.Features, sysLogger)
	galleryService := service.NewGalleryService(
		uowFactory,
		localDrafts,
		galleryCache,
		publisherService,
		publisher,
		emailService,
		cfg.Features,
		cfg.App.ClientURL,
		cfg.SMTP.ModeratorEmail,
		sysLogger,
	)
	moderationService := service.NewModerationService(uowFactory, galleryCache, publisher, emailService, sysLogger, cfg.Features.Moderation, sysLogger)
	catalogService := service.NewCatalogService(store)
	skillPackService := service.NewSkillPackService(uowFactory, sysLogger)
	agentService := service.NewAgentService(uowFactory, store, sysLogger)
	preferenceService := service.NewPreferenceService(uowFactory, localDrafts, sysLogger)
	dashboardService := service.NewDashboardService(uowFactory)

	// 5. Notification System
	var notifService *service.NotificationService
	var notifHandler *handler.NotificationHandler
	if uowFactory != nil {
		var subscriber service.EventSubscriber
		if natsSub != nil {
			subscriber = natsSub
		}
		notifService = service.NewNotificationService(uowFactory, subscriber, wsHub, wsLogger)
		notifHandler = handler.NewNotificationHandler(notifService, wsHub, wsLogger)
	}

	// 6. Controllers
	return &Container{
		BuilderController:    controller.NewBuilderController(builderService, locales),
		GalleryController:    controller.NewGalleryController(galleryService, locales),
		ModerationController: controller.NewModerationController(moderationService, locales),
		CatalogController:    controller.NewCatalogController(catalogService, locales),
		SkillPackController:  controller.NewSkillPackController(skillPackService, locales),
		AgentController:      controller.NewAgentController(agentService, locales),
		PreferenceController: controller.NewPreferenceController(preferenceService),
		DashboardController:  controller.NewDashboardController(dashboardService),

		NotificationHandler: notifHandler,
		WebSocketHub:        wsHub,

		ConsumerService:     consumerService,
		ViewFlushJob:        flushJob,
		NotificationService: notifService,

		DB:     db,
		Redis:  rdb,
		Logger: sysLogger,

		pubSub:  pubSub,
		natsPub: natsPub,
		natsSub: natsSub,
	}
}

// connectRedis returns nil when Redis is not reachable, which switches the
// caches and the hub to process-local mode.
func connectRedis(url string, log logger.ILogger) *redis.Client {
	if url == "" {
		return nil
	}
	opt, err := redis.ParseURL(url)
	if err != nil {
		log.Warn("Bootstrap", "Failed to parse Redis URL, using it as an address", map[string]interface{}{"error": err.Error()})
		opt = &redis.Options{Addr: url}
	}
	rdb := redis.NewClient(opt)

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Warn("Bootstrap", "Redis unavailable, falling back to in-process caches", map[string]interface{}{"error": err.Error()})
		_ = rdb.Close()
		return nil
	}
	return rdb
}

// Start launches the background workers on g. They stop when ctx is done.
func (c *Container) Start(ctx context.Context, g *errgroup.Group) {
	g.Go(func() error {
		c.WebSocketHub.Run(ctx)
		return nil
	})

	g.Go(func() error {
		c.Logger.Info("Bootstrap", "Starting view consumer", nil)
		return c.ConsumerService.Consume(ctx)
	})

	if c.ViewFlushJob != nil {
		if err := c.ViewFlushJob.Start(); err != nil {
			c.Logger.Error("Bootstrap", "Failed to schedule view flush", map[string]interface{}{"error": err.Error()})
		} else {
			g.Go(func() error {
				<-ctx.Done()
				c.ViewFlushJob.Stop()
				return nil
			})
		}
	}

	if c.NotificationService != nil && c.natsSub != nil {
		if err := c.NotificationService.Start(ctx); err != nil {
			c.Logger.Error("Bootstrap", "Failed to start notification worker", map[string]interface{}{"error": err.Error()})
		}
	}
}

// Close releases connections after the workers have stopped.
func (c *Container) Close() {
	if c.natsSub != nil {
		c.natsSub.Close()
	}
	if c.natsPub != nil {
		c.natsPub.Close()
	}
	if c.pubSub != nil {
		_ = c.pubSub.Close()
	}
	if c.Redis != nil {
		_ = c.Redis.Close()
	}
	_ = c.Logger.Sync()
}
