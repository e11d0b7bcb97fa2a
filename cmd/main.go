package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/sharath018/party-rsvp-backend/config"
	"github.com/sharath018/party-rsvp-backend/database"
	"github.com/sharath018/party-rsvp-backend/internal/auditlog"
	"github.com/sharath018/party-rsvp-backend/internal/livefeed"
	"github.com/sharath018/party-rsvp-backend/internal/notification"
	"github.com/sharath018/party-rsvp-backend/internal/party"
	"github.com/sharath018/party-rsvp-backend/internal/reports"
	"github.com/sharath018/party-rsvp-backend/internal/rsvp"
	"github.com/sharath018/party-rsvp-backend/routes"
	"github.com/sharath018/party-rsvp-backend/utils"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg := config.Load()
	logger := utils.NewLogger(cfg.Environment, cfg.LogLevel)
	log := utils.Component(logger, "main")

	if err := run(cfg, logger); err != nil {
		log.Fatal().Err(err).Msg("❌ server exited with error")
	}
	log.Info().Msg("👋 server stopped")
}

func run(cfg *config.Config, logger zerolog.Logger) error {
	log := utils.Component(logger, "main")
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Tracing
	shutdownTracing, err := utils.SetupTracing(ctx, cfg.ServiceName, cfg.OTLPEndpoint)
	if err != nil {
		return err
	}
	if cfg.OTLPEndpoint != "" {
		log.Info().Str("endpoint", cfg.OTLPEndpoint).Msg("✅ tracing enabled")
	}

	// Database
	db, err := database.Connect(cfg, logger)
	if err != nil {
		return err
	}
	log.Info().Str("driver", cfg.DatabaseDriver()).Msg("✅ database connected")

	log.Info().Msg("🔄 Running database migrations...")
	if err := db.AutoMigrate(
		&party.Party{},
		&rsvp.RSVP{},
		&notification.NotificationLog{},
		&auditlog.AuditLog{},
	); err != nil {
		return err
	}
	if err := party.NewRepository(db).EnsureSingleActiveIndex(ctx); err != nil {
		return err
	}
	log.Info().Msg("✅ Database migrations completed")

	// Redis (optional live feed)
	redisClient, err := utils.InitRedis(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	if err != nil {
		log.Warn().Err(err).Msg("⚠️ Redis unavailable, live feed disabled")
		redisClient = nil
	} else if redisClient != nil {
		log.Info().Str("addr", cfg.RedisAddr).Msg("✅ Redis connected")
	}

	// Services
	auditSvc := auditlog.NewService(auditlog.NewRepository(db))

	partySvc := party.NewService(party.NewRepository(db), cfg.Party, logger)
	if _, created, err := partySvc.EnsureDefault(ctx); err != nil {
		return err
	} else if created {
		log.Info().Msg("✅ Default party created!")
	}

	rsvpRepo := rsvp.NewRepository(db)

	mailer, err := notification.NewMailer(cfg, logger)
	if err != nil {
		return err
	}
	notifySvc := notification.NewService(
		mailer,
		rsvp.NewRosterSource(rsvpRepo, partySvc),
		notification.NewRepository(db),
		cfg.NotificationEmail,
		logger,
	)
	if cfg.NotificationEmail == "" {
		log.Warn().Msg("⚠️ NOTIFICATION_EMAIL not set, RSVP notifications will be skipped")
	}

	queue, err := newQueue(cfg, notifySvc, logger)
	if err != nil {
		return err
	}
	queue.Start()
	log.Info().Str("queue", queue.Name()).Str("mailer", mailer.Name()).Msg("✅ notification worker started")

	feed := livefeed.NewPublisher(redisClient, logger)
	rsvpSvc := rsvp.NewService(rsvpRepo, partySvc, queue, auditSvc, feed, logger)
	reportsSvc := reports.NewService(rsvpSvc, partySvc, reports.NewGuestExporter())

	// Router
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	routes.Setup(router, routes.Deps{
		Config:    cfg,
		Logger:    logger,
		DB:        db,
		Party:     party.NewHandler(partySvc),
		RSVP:      rsvp.NewHandler(rsvpSvc),
		Reports:   reports.NewHandler(reportsSvc),
		Audit:     auditlog.NewHandler(auditSvc),
		LiveFeed:  livefeed.NewHandler(redisClient, partySvc),
		QueueName: queue.Name(),
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.Port).Msg("🚀 Starting server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case <-ctx.Done():
		log.Info().Msg("🛑 shutdown signal received")
	case err := <-serveErr:
		if err != nil {
			log.Error().Err(err).Msg("❌ HTTP server failed")
		}
	}

	// Shutdown: HTTP, worker, Redis, tracer, database.
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	var errs []error
	if err := srv.Shutdown(shutdownCtx); err != nil {
		errs = append(errs, err)
	}
	if err := queue.Stop(); err != nil {
		errs = append(errs, err)
	}
	if redisClient != nil {
		if err := redisClient.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	if err := shutdownTracing(shutdownCtx); err != nil {
		errs = append(errs, err)
	}
	if err := database.Close(db); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

func newQueue(cfg *config.Config, d notification.Deliverer, logger zerolog.Logger) (notification.Queue, error) {
	switch cfg.NotifyQueue {
	case "kafka":
		return notification.NewKafkaQueue(cfg.KafkaBrokers, cfg.KafkaTopic, cfg.KafkaGroupID, d, logger)
	default:
		return notification.NewDispatcher(d, cfg.NotifyQueueSize, logger), nil
	}
}
