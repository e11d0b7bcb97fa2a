package routes

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"gorm.io/gorm"

	"github.com/sharath018/party-rsvp-backend/config"
	_ "github.com/sharath018/party-rsvp-backend/docs"
	"github.com/sharath018/party-rsvp-backend/internal/auditlog"
	"github.com/sharath018/party-rsvp-backend/internal/livefeed"
	"github.com/sharath018/party-rsvp-backend/internal/party"
	"github.com/sharath018/party-rsvp-backend/internal/reports"
	"github.com/sharath018/party-rsvp-backend/internal/rsvp"
	"github.com/sharath018/party-rsvp-backend/middleware"
)

// Deps carries everything the router needs; built in cmd/main.go.
type Deps struct {
	Config   *config.Config
	Logger   zerolog.Logger
	DB       *gorm.DB
	Party    *party.Handler
	RSVP     *rsvp.Handler
	Reports  *reports.Handler
	Audit    *auditlog.Handler
	LiveFeed *livefeed.Handler
	// QueueName is reported by /api/health ("memory" or "kafka").
	QueueName string
}

func Setup(r *gin.Engine, d Deps) {
	log := d.Logger.With().Str("component", "router").Logger()

	r.Use(middleware.RequestID())
	r.Use(middleware.AuditMiddleware())
	r.Use(middleware.RequestLogger(d.Logger))
	r.Use(gin.CustomRecovery(func(c *gin.Context, recovered any) {
		log.Error().Interface("panic", recovered).Str("path", c.Request.URL.Path).Msg("handler panicked")
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}))
	r.Use(otelgin.Middleware(d.Config.ServiceName))
	r.Use(cors.New(cors.Config{
		AllowOrigins:     d.Config.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Content-Length", "X-Requested-With", "Cache-Control", middleware.RequestIDHeader},
		ExposeHeaders:    []string{"Content-Length", "Content-Type", "Content-Disposition", middleware.RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := r.Group("/api")
	{
		api.GET("/health", healthHandler(d))

		api.GET("/party", d.Party.GetParty)
		api.GET("/party/stats", d.Party.GetStats)

		api.POST("/rsvp", d.RSVP.Submit)
		api.GET("/rsvp/:code", d.RSVP.GetByCode)

		api.GET("/guests", d.RSVP.List)
		api.GET("/guests/export", d.Reports.ExportGuests)
		api.GET("/guests/stream", d.LiveFeed.Stream)
		api.PUT("/guest/:code", d.RSVP.Update)
		api.DELETE("/guest/:code", d.RSVP.Delete)
		api.DELETE("/clear-guests", d.RSVP.Clear)

		api.GET("/audit-logs", d.Audit.GetAuditLogs)
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Route not found"})
	})
}

// healthHandler godoc
// @Summary  Service health
// @Tags     health
// @Produce  json
// @Success  200 {object} map[string]interface{}
// @Router   /api/health [get]
func healthHandler(d Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		dbStatus := "connected"
		if err := pingDB(c.Request.Context(), d.DB); err != nil {
			dbStatus = "unavailable"
		}
		c.JSON(http.StatusOK, gin.H{
			"status":                 "OK",
			"message":                "Birthday Party API is running",
			"version":                config.Version,
			"database":               dbStatus,
			"mail_configured":        d.Config.MailConfigured(),
			"notification_email_set": d.Config.NotificationEmail != "",
			"queue":                  d.QueueName,
		})
	}
}

func pingDB(ctx context.Context, db *gorm.DB) error {
	if db == nil {
		return gorm.ErrInvalidDB
	}
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return sqlDB.PingContext(ctx)
}
