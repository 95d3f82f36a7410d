package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/avvvet/hangoutbot/internal/app"
	"github.com/avvvet/hangoutbot/internal/config"
	"github.com/avvvet/hangoutbot/internal/logger"
	"github.com/avvvet/hangoutbot/internal/transport"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

func main() {
	// Load .env file if it exists (for development)
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ Failed to load config: %v", err)
	}

	zapLog := logger.New(cfg.LogLevel, cfg.LogFormat)
	defer zapLog.Sync()

	zapLog.Info("🚀 Starting hangout chat service",
		zap.String("service", cfg.ServiceName),
		zap.String("nats_url", cfg.NatsURL),
		zap.String("scorer", cfg.ScorerStrategy),
		zap.String("sessions", cfg.SessionBackend),
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	bot, err := app.New(ctx, cfg, zapLog)
	if err != nil {
		zapLog.Fatal("❌ Failed to initialize", zap.Error(err))
	}

	var metricsServer *http.Server
	if cfg.MetricsAddr != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.Handler())
		mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
			w.Write([]byte("ok"))
		})
		metricsServer = &http.Server{Addr: cfg.MetricsAddr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

		go func() {
			zapLog.Info("📊 Metrics server listening", zap.String("addr", cfg.MetricsAddr))
			if err := metricsServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				zapLog.Error("Metrics server failed", zap.Error(err))
			}
		}()
	}

	natsTransport, err := transport.NewNATSTransport(cfg, bot.Handler, zapLog)
	if err != nil {
		zapLog.Fatal("❌ Failed to initialize NATS transport", zap.Error(err))
	}

	if err := natsTransport.Start(); err != nil {
		zapLog.Fatal("❌ Failed to start NATS transport", zap.Error(err))
	}

	zapLog.Info("✅ Hangout chat service is running", zap.String("subject", cfg.NatsRequestSubject))

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigChan
	zapLog.Info("🛑 Shutting down gracefully", zap.Stringer("signal", sig))

	if err := natsTransport.Close(); err != nil {
		zapLog.Warn("Error closing NATS transport", zap.Error(err))
	}

	if active, ok := bot.Sessions.ActiveSessions(); ok {
		zapLog.Info("Final session count", zap.Int("active", active))
	}
	cancel()

	if err := bot.Close(); err != nil {
		zapLog.Warn("Error closing session store", zap.Error(err))
	}

	if metricsServer != nil {
		shutdownCtx, stop := context.WithTimeout(context.Background(), 5*time.Second)
		defer stop()
		if err := metricsServer.Shutdown(shutdownCtx); err != nil {
			zapLog.Warn("Error stopping metrics server", zap.Error(err))
		}
	}

	zapLog.Info("👋 Hangout chat service stopped")
}
