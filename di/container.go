package di

import (
	"context"
	"fmt"
	"io"
	"time"

	"es-server/api"
	"es-server/api/predicthq"
	"es-server/config"
	"es-server/dao/redis"
	"es-server/db"
	"es-server/export"
	"es-server/server"
	"es-server/server/handlers"
	services "es-server/service"

	goredis "github.com/go-redis/redis/v8"
	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

const PROD_ENV = "prod"

// Container holds all application dependencies.
type Container struct {
	RedisClient          db.RedisClient
	RedisSessionDao      *redis.RedisSessionDAO
	PredictHQAPI         predicthq.PredictHQAPI
	LocationService      *services.LocationService
	SelectionService     *services.SelectionService
	DashboardService     *services.DashboardService
	ControlsHandler      *handlers.ControlsHandler
	DashboardHandler     *handlers.DashboardHandler
	MuxRouter            *mux.Router
	Router               *server.Router
	EventSpendHttpServer *server.EventSpendHttpServer
}

// NewContainer initializes and wires up all dependencies. Outside prod the
// events API is served from embedded fixtures and sessions live in memory.
func NewContainer(cfg *config.Config, logger *zap.Logger) (*Container, error) {
	logger.Info("[DI] Initializing container", zap.String("env", cfg.Env))

	var redisClient db.RedisClient
	if cfg.Env == PROD_ENV {
		goRedisClient := db.NewGoRedisClient(goredis.NewClient(&goredis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		}))
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := goRedisClient.Ping(ctx); err != nil {
			return nil, fmt.Errorf("failed to connect to Redis: %w", err)
		}
		redisClient = goRedisClient
	} else {
		logger.Info("[DI] Using in-memory session store")
		redisClient = db.NewMockRedisClient()
	}

	sessionDao := redis.NewRedisSessionDAO(redisClient, time.Duration(cfg.SessionTTLMinutes)*time.Minute)

	var predictHQApi predicthq.PredictHQAPI
	if cfg.Env != PROD_ENV {
		logger.Info("[DI] Using mock events api")
		predictHQApi = predicthq.NewPredictHQApiClientMock()
	} else {
		logger.Info("[DI] Using prod events api", zap.String("base_url", cfg.APIBaseURL))
		httpClient := api.NewHTTPClient(cfg.APIBaseURL, cfg.APIToken, time.Duration(cfg.HTTPTimeoutSeconds)*time.Second)
		predictHQApi = predicthq.NewPredictHQApiClient(httpClient, predicthq.Endpoints{
			SavedLocations: cfg.SavedLocationsPath,
			Events:         cfg.EventsPath,
			SpendTotal:     cfg.SpendTotalPath,
		})
		if !cfg.HasToken() {
			logger.Warn("[DI] No API token configured, dashboard requests will ask for one")
		}
	}

	var tzResolver services.TimezoneResolver
	tzfResolver, err := services.NewTZFResolver()
	if err != nil {
		logger.Warn("[DI] Timezone lookup unavailable, every location uses the default timezone",
			zap.String("timezone", cfg.DefaultTimezone), zap.Error(err))
		tzResolver = services.FixedTimezoneResolver(cfg.DefaultTimezone)
	} else {
		tzResolver = tzfResolver
	}

	locationService := services.NewLocationService(predictHQApi, tzResolver, cfg.PageSize, cfg.DefaultTimezone, logger)
	selectionService := services.NewSelectionService(sessionDao, locationService, cfg.DefaultTimezone, logger)
	dashboardService := services.NewDashboardService(predictHQApi, selectionService, services.NewQueryBuilder(cfg.EventLimit), logger)

	controlsHandler := handlers.NewControlsHandler(selectionService, logger)
	dashboardHandler := handlers.NewDashboardHandler(dashboardService, export.NewEventExporter(), logger)

	muxRouter := mux.NewRouter()
	router := server.NewRouter(controlsHandler, dashboardHandler, muxRouter)
	httpServer := server.NewEventSpendHttpServer(router, muxRouter, cfg.Listen, cfg.CORSAllowedOrigins, logger)

	return &Container{
		RedisClient:          redisClient,
		RedisSessionDao:      sessionDao,
		PredictHQAPI:         predictHQApi,
		LocationService:      locationService,
		SelectionService:     selectionService,
		DashboardService:     dashboardService,
		ControlsHandler:      controlsHandler,
		DashboardHandler:     dashboardHandler,
		MuxRouter:            muxRouter,
		Router:               router,
		EventSpendHttpServer: httpServer,
	}, nil
}

// Close releases the Redis connection when one was opened.
func (c *Container) Close() error {
	if closer, ok := c.RedisClient.(io.Closer); ok {
		return closer.Close()
	}
	return nil
}
