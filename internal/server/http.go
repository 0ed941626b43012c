package server

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lk2023060901/search-api/internal/auth/middleware"
	"github.com/lk2023060901/search-api/internal/conf"
	"github.com/lk2023060901/search-api/internal/hello"
	apperrors "github.com/lk2023060901/search-api/internal/pkg/errors"
	"github.com/lk2023060901/search-api/internal/pkg/logger"
	"github.com/lk2023060901/search-api/internal/pkg/response"
	"github.com/lk2023060901/search-api/internal/websearch/service"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

type HTTPServer struct {
	server *http.Server
	logger *logger.Logger
}

// NewRouter builds the gin engine. /health and /metrics bypass the token check;
// everything under the API prefix requires it.
func NewRouter(config *conf.Config, log *logger.Logger, searchService *service.SearchService, gatherer prometheus.Gatherer) *gin.Engine {
	if config.App.Debug {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(logger.GinLogger(log))

	router.NoRoute(func(c *gin.Context) {
		response.ErrorWithCode(c, apperrors.ErrNotFound)
	})

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy"})
	})
	if gatherer != nil {
		router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))
	}

	api := router.Group(config.Server.APIPrefix)
	api.Use(middleware.TokenAuth(config.Auth.Header, config.Auth.Token, log))
	hello.RegisterRoutes(api)
	searchService.RegisterRoutes(api)

	return router
}

func NewHTTPServer(config *conf.Config, log *logger.Logger, handler http.Handler) *HTTPServer {
	return &HTTPServer{
		server: &http.Server{
			Addr:    config.Server.Addr(),
			Handler: handler,
		},
		logger: log,
	}
}

func (s *HTTPServer) Start() error {
	s.logger.Info("starting HTTP server", zap.String("addr", s.server.Addr))

	if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}

func (s *HTTPServer) Stop(ctx context.Context) error {
	s.logger.Info("stopping HTTP server")
	return s.server.Shutdown(ctx)
}
