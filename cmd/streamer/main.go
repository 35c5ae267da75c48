package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/Aldo10012/StockTicker-DEMO/cmd/streamer/internal/quotes"
	"github.com/Aldo10012/StockTicker-DEMO/cmd/streamer/internal/selector"
	"github.com/Aldo10012/StockTicker-DEMO/cmd/streamer/internal/server"
	"github.com/Aldo10012/StockTicker-DEMO/pkg/config"
)

func main() {
	// 1. Initialize Zap Logger
	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	// 2. Load Config
	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Fatal("Failed to load config", zap.Error(err))
	}

	// 3. Process-wide random source, seeded once; shared safely by all
	// connection goroutines
	rnd := selector.NewLockedRand(time.Now().UnixNano())
	clock := selector.RealClock{}

	// 4. Optional latest-quote cache
	var store quotes.Store
	if cfg.Redis.Enabled {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		store = quotes.NewRedisStore(rdb)
		defer store.Close()
	}

	srv := &http.Server{
		Addr:    cfg.App.Port,
		Handler: server.New(logger, cfg, rnd, clock, store).Routes(),
	}

	go func() {
		logger.Info("Server Started",
			zap.String("port", cfg.App.Port),
			zap.Strings("tickers", cfg.Stream.Tickers),
			zap.Duration("interval", cfg.Stream.Interval))
		if err := srv.ListenAndServe(); err != http.ErrServerClosed {
			logger.Fatal("HTTP Error", zap.Error(err))
		}
	}()

	// 5. Wait for Shutdown Signal
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	srv.Shutdown(context.Background())
	logger.Info("Shutdown Complete")
}
