// Package bootstrap wires configuration, logging, stores and the router
// for the development server.
package bootstrap

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/campushub/campushub/collection"
	appControllers "github.com/campushub/campushub/internal/app/controllers"
	appRoutes "github.com/campushub/campushub/internal/app/routes"
	"github.com/campushub/campushub/internal/app/stores"
	"github.com/campushub/campushub/internal/config"
	appMiddleware "github.com/campushub/campushub/internal/middleware"
	pkgAuth "github.com/campushub/campushub/internal/pkg/auth"
	"github.com/campushub/campushub/internal/pkg/filestorage"
	"github.com/campushub/campushub/internal/pkg/logger"
	"github.com/campushub/campushub/internal/seed"
	"github.com/campushub/campushub/models"
	"github.com/campushub/campushub/store/pgstore"
)

// Dependencies holds the wired application components.
type Dependencies struct {
	Stores         *stores.Stores
	JWTService     *pkgAuth.JWTService
	FileStorage    *filestorage.LocalStorage
	AuthMiddleware *appMiddleware.AuthMiddleware
	Controllers    appRoutes.Controllers
	Logger         zerolog.Logger
}

// LoadConfigAndSetupLogger loads configuration and configures the logger.
func LoadConfigAndSetupLogger() (*config.Config, zerolog.Logger, error) {
	configPath := filepath.Join("configs", "config.yaml")
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	logger.Configure(logger.Config{
		Level:  logger.LogLevel(strings.ToLower(cfg.Logging.Level)),
		Pretty: strings.ToLower(cfg.Logging.Format) == "text",
	})

	lgr := log.Logger
	lgr.Info().Str("logLevel", cfg.Logging.Level).Str("storeBackend", cfg.Store.Backend).
		Msg("Logger configured")
	return cfg, lgr, nil
}

// SetupStores builds the persistence backend selected by configuration.
func SetupStores(cfg *config.Config, lgr zerolog.Logger) (*stores.Stores, error) {
	switch cfg.Store.Backend {
	case "memory":
		return stores.NewMemory(), nil

	case "local":
		return stores.NewLocal(cfg.Store.LocalDir, cfg.Store.LocalQuota, lgr)

	case "redis":
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Store.Redis.Addr,
			Password: cfg.Store.Redis.Password,
			DB:       cfg.Store.Redis.DB,
		})
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := client.Ping(ctx).Err(); err != nil {
			return nil, fmt.Errorf("failed to reach redis at %s: %w", cfg.Store.Redis.Addr, err)
		}
		return stores.NewRedis(client, lgr), nil

	case "postgres":
		ctx := context.Background()
		pool, err := pgstore.NewPool(ctx, cfg.PostgresConnString(), cfg.Store.Postgres.MaxConns)
		if err != nil {
			return nil, err
		}
		if err := pgstore.EnsureSchema(ctx, pool); err != nil {
			pool.Close()
			return nil, err
		}
		return stores.NewPostgres(pool), nil

	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.Store.Backend)
	}
}

// BuildDependencies constructs services, middleware and controllers.
func BuildDependencies(cfg *config.Config, st *stores.Stores, lgr zerolog.Logger) (*Dependencies, error) {
	jwtService := pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:      cfg.JWT.Secret,
		AccessTokenExp: cfg.AccessTokenTTL(),
		TokenIssuer:    cfg.JWT.Issuer,
	})

	fileStorage, err := filestorage.NewLocalStorage(cfg.Server.StoragePath)
	if err != nil {
		return nil, err
	}

	deps := &Dependencies{
		Stores:         st,
		JWTService:     jwtService,
		FileStorage:    fileStorage,
		AuthMiddleware: appMiddleware.NewAuthMiddleware(jwtService),
		Logger:         lgr,
		Controllers: appRoutes.Controllers{
			Auth:         appControllers.NewAuthController(st, jwtService, lgr),
			Users:        appControllers.NewUserController(st, fileStorage, lgr),
			Events:       appControllers.NewEventController(st.Events, fileStorage),
			Blogs:        appControllers.NewBlogController(st.Blogs, fileStorage),
			StudyGroups:  appControllers.NewResourceController(st.StudyGroups),
			Universities: appControllers.NewResourceController(st.Universities),
			Cities:       appControllers.NewResourceController(st.Cities),
		},
	}

	if err := seed.Run(context.Background(), st, lgr); err != nil {
		return nil, err
	}
	return deps, nil
}

// SetupRouter builds the gin engine with CORS, health check and routes.
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) *gin.Engine {
	if cfg.Server.Mode == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestLogger(lgr))

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true
	corsConfig.AllowHeaders = append(corsConfig.AllowHeaders, "Authorization")
	router.Use(cors.New(corsConfig))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	router.Static("/uploads", cfg.Server.StoragePath)

	appRoutes.Setup(router, deps.Controllers, deps.AuthMiddleware)
	return router
}

// StartBackgroundPollers runs the devserver's periodic maintenance tasks:
// rolling past-dated events from Upcoming to Ongoing, and pruning read
// notifications. Both run until ctx is cancelled.
func StartBackgroundPollers(ctx context.Context, cfg *config.Config, st *stores.Stores, lgr zerolog.Logger) []*collection.Poller {
	events := collection.StartPoller(ctx, cfg.EventsPollInterval(), func(ctx context.Context) error {
		return rollEventStatuses(ctx, st, lgr)
	}, lgr.With().Str("component", "events-poller").Logger())

	notifications := collection.StartPoller(ctx, cfg.NotificationsPollInterval(), func(ctx context.Context) error {
		return pruneReadNotifications(ctx, st)
	}, lgr.With().Str("component", "notifications-poller").Logger())

	return []*collection.Poller{events, notifications}
}

// rollEventStatuses flips Upcoming events whose start time has passed to
// Ongoing. Completed and Cancelled events are left alone.
func rollEventStatuses(ctx context.Context, st *stores.Stores, lgr zerolog.Logger) error {
	events, err := st.Events.List(ctx)
	if err != nil {
		return err
	}
	now := time.Now()
	for _, event := range events {
		if event.Status != models.EventStatusUpcoming || event.DateTime.After(now) {
			continue
		}
		event.Status = models.EventStatusOngoing
		if _, err := st.Events.Update(ctx, event.ID, event); err != nil {
			return err
		}
		lgr.Debug().Str("event", event.Name).Msg("Event rolled to Ongoing")
	}
	return nil
}

// pruneReadNotifications drops notifications that have been read.
func pruneReadNotifications(ctx context.Context, st *stores.Stores) error {
	notifications, err := st.Notifications.List(ctx)
	if err != nil {
		return err
	}
	for _, notification := range notifications {
		if !notification.Read {
			continue
		}
		if err := st.Notifications.Remove(ctx, notification.ID); err != nil {
			return err
		}
	}
	return nil
}

// requestLogger logs each request with method, path, status and duration.
func requestLogger(lgr zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		lgr.Debug().
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", c.Writer.Status()).
			Dur("duration", time.Since(start)).
			Msg("Request handled")
	}
}
