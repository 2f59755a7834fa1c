package api

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"

	"github.com/annel0/mmo-globe/internal/globe"
	"github.com/annel0/mmo-globe/internal/logging"
	"github.com/annel0/mmo-globe/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
)

// RestServer инспекционный REST API поверх глобуса
type RestServer struct {
	router   *gin.Engine
	http     *http.Server
	globe    *globe.Globe
	port     string
	metrics  *ServerMetrics
	resolver *ResolverMetrics
	logger   *logging.Logger
}

// Config содержит конфигурацию для REST сервера
type Config struct {
	Port     string                // порт для запуска сервера
	Globe    *globe.Globe          // глобус для запросов
	Registry prometheus.Registerer // регистр метрик (nil — дефолтный)
	Tracing  bool                  // включить otelgin
}

// NewRestServer создает новый REST API сервер
func NewRestServer(config Config) (*RestServer, error) {
	if config.Globe == nil {
		return nil, errors.New("rest server: globe is required")
	}
	if config.Port == "" {
		config.Port = ":8090"
	}

	gin.SetMode(gin.ReleaseMode)

	router := gin.New()        // без стандартного logger/recovery
	router.Use(gin.Recovery()) // добавим только recovery

	logger := logging.GetAPILogger()

	// === Observability middleware ===
	if config.Tracing {
		router.Use(otelgin.Middleware("globe_api"))
	}
	router.Use(middleware.NewRequestLogger(logger).Handler())

	promMw := middleware.NewPrometheusMiddleware("globe_api", config.Registry)
	router.Use(promMw.Handler())
	promMw.RegisterMetricsEndpoint(router)

	server := &RestServer{
		router:   router,
		globe:    config.Globe,
		port:     config.Port,
		metrics:  NewServerMetrics(),
		resolver: NewResolverMetrics(config.Registry),
		logger:   logger,
	}
	server.http = &http.Server{Addr: config.Port, Handler: router}

	server.setupRoutes()

	return server, nil
}

// setupRoutes настраивает маршруты REST API
func (rs *RestServer) setupRoutes() {
	api := rs.router.Group("/api")
	{
		api.GET("/spec", rs.handleSpec)
		api.GET("/classify", rs.handleClassify)
		api.GET("/equivalents", rs.handleEquivalents)
		api.GET("/cells", rs.handleCell)
		api.GET("/chunks", rs.handleChunks)
		api.GET("/stats", rs.handleStats)
	}

	rs.router.GET("/health", rs.handleHealth)
}

// Handler возвращает http.Handler сервера (для тестов и встраивания)
func (rs *RestServer) Handler() http.Handler {
	return rs.router
}

// Start открывает порт и обслуживает запросы в фоне
func (rs *RestServer) Start() error {
	ln, err := net.Listen("tcp", rs.port)
	if err != nil {
		return fmt.Errorf("rest server: %w", err)
	}

	go func() {
		if err := rs.http.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			rs.logger.Error("❌ REST API остановлен с ошибкой: %v", err)
		}
	}()

	rs.logger.Info("🌐 REST API слушает %s", ln.Addr())
	return nil
}

// Stop останавливает REST сервер, дожидаясь активных запросов
func (rs *RestServer) Stop(ctx context.Context) error {
	return rs.http.Shutdown(ctx)
}
