package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/lk2023060901/search-api/internal/conf"
	"github.com/lk2023060901/search-api/internal/pkg/logger"
	"github.com/lk2023060901/search-api/internal/server"
	"github.com/lk2023060901/search-api/internal/websearch/biz"
	"github.com/lk2023060901/search-api/internal/websearch/metrics"
	"github.com/lk2023060901/search-api/internal/websearch/provider"
	"github.com/lk2023060901/search-api/internal/websearch/service"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"
)

var (
	configFile = flag.String("config", "", "config file path (optional, environment variables always apply)")
)

func main() {
	flag.Parse()

	// Load configuration
	config, err := conf.LoadConfig(*configFile)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	logConfig := config.Log
	if config.App.Debug {
		logConfig.Level = "debug"
	}
	log, err := logger.New(&logConfig)
	if err != nil {
		panic("failed to initialize logger: " + err.Error())
	}
	defer log.Sync()
	logger.SetGlobal(log)

	log.Info("config loaded successfully",
		zap.String("app", config.App.Name),
		zap.String("version", config.App.Version))

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	collector, err := metrics.NewCollector(registry)
	if err != nil {
		log.Fatal("failed to register metrics", zap.Error(err))
	}

	providers, err := provider.NewSet(config.Search.ProviderConfigs(), provider.Deps{
		Logger:  log.Named("provider").Logger,
		Metrics: collector,
	})
	if err != nil {
		log.Fatal("failed to initialize search providers", zap.Error(err))
	}

	searchUseCase := biz.NewSearchUseCase(providers, collector, log.Named("search").Logger)
	searchService := service.NewSearchService(searchUseCase)

	router := server.NewRouter(config, log, searchService, registry)
	httpServer := server.NewHTTPServer(config, log, router)

	go func() {
		if err := httpServer.Start(); err != nil {
			log.Fatal("failed to start HTTP server", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), config.Server.ShutdownTimeout)
	defer cancel()

	if err := httpServer.Stop(ctx); err != nil {
		log.Error("HTTP server forced to shutdown", zap.Error(err))
	}

	log.Info("server exited")
}
