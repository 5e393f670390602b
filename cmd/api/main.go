package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/BruksfildServices01/appointment-booking/internal/audit"
	"github.com/BruksfildServices01/appointment-booking/internal/config"
	"github.com/BruksfildServices01/appointment-booking/internal/handlers"
	"github.com/BruksfildServices01/appointment-booking/internal/logging"
	"github.com/BruksfildServices01/appointment-booking/internal/routes"
	"github.com/BruksfildServices01/appointment-booking/internal/telemetry"
	ucBooking "github.com/BruksfildServices01/appointment-booking/internal/usecase/booking"
)

const serviceName = "appointment-booking"

func main() {
	if err := run(); err != nil {
		slog.Error("fatal", slog.Any("err", err))
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	log := logging.NewLogger(serviceName, cfg.LogLevel)
	slog.SetDefault(log)
	gin.SetMode(cfg.GinMode)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := telemetry.Setup(ctx, telemetry.Config{
		Enabled:      cfg.OTelEnabled,
		ServiceName:  serviceName,
		OTLPEndpoint: cfg.OTelEndpoint,
		SampleRatio:  cfg.OTelSamplingRate,
	})
	if err != nil {
		return err
	}

	be, err := openBackend(ctx, cfg, log)
	if err != nil {
		return err
	}
	log.Info("document store ready", slog.String("driver", cfg.DocstoreDriver))

	// ======================================================
	// AUDIT
	// ======================================================
	sinks := []audit.Sink{audit.SlogSink(log)}
	if be.db != nil {
		sinks = append(sinks, audit.New(be.db))
	}
	var kafkaSink *audit.KafkaSink
	if len(cfg.KafkaBrokers) > 0 {
		kafkaSink = audit.NewKafkaSink(cfg.KafkaBrokers, cfg.KafkaTopic)
		sinks = append(sinks, kafkaSink)
	}
	dispatcher := audit.NewDispatcher(log, sinks...)

	// ======================================================
	// PROVIDER
	// ======================================================
	provider := ucBooking.NewProvider(be.store,
		ucBooking.WithTimeout(cfg.StoreTimeout),
		ucBooking.WithAuditor(dispatcher),
		ucBooking.WithLogger(log),
	)
	if err := provider.Load(ctx); err != nil {
		log.Error("initial load failed, starting with an empty cache", slog.Any("err", err))
	}

	// ======================================================
	// HTTP
	// ======================================================
	r := gin.New()
	r.Use(gin.Recovery())
	routes.RegisterRoutes(r, provider, be.db, cfg, log, handlers.ReadyCheck{
		Name:  "document_store",
		Check: be.store.Ping,
	})

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           otelhttp.NewHandler(r, "http.server"),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      cfg.StoreTimeout*2 + 5*time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("server running", slog.String("addr", cfg.Addr()))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case <-ctx.Done():
		log.Info("shutting down")
	case err := <-errCh:
		if err != nil {
			return err
		}
	}

	// ======================================================
	// SHUTDOWN
	// ======================================================
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("http shutdown", slog.Any("err", err))
	}
	if err := dispatcher.Close(shutdownCtx); err != nil {
		log.Error("audit drain", slog.Any("err", err))
	}
	if kafkaSink != nil {
		if err := kafkaSink.Close(); err != nil {
			log.Error("kafka writer close", slog.Any("err", err))
		}
	}
	if err := be.close(shutdownCtx); err != nil {
		log.Error("document store close", slog.Any("err", err))
	}
	if err := shutdownTracing(shutdownCtx); err != nil {
		log.Error("tracing shutdown", slog.Any("err", err))
	}

	log.Info("stopped")
	return nil
}
