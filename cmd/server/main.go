package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel"
	"golang.org/x/sync/errgroup"

	"chocolate/internal/contract"
	"chocolate/internal/contract/handler"
	jwttoken "chocolate/internal/jwt_token"
	"chocolate/internal/platform/config"
	"chocolate/internal/platform/crypto"
	"chocolate/internal/platform/httpserver"
	"chocolate/internal/platform/logger"
	"chocolate/internal/platform/metrics"
	"chocolate/internal/platform/tracing"
	"chocolate/pkg/platform/audit/publisher"
)

const shutdownTimeout = 10 * time.Second

// main wires dependencies, serves the registry over HTTP and shuts down on
// SIGINT/SIGTERM. Business logic lives in internal packages.
func main() {
	cfg, err := config.FromEnv()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(cfg.Env, cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Error("server exited", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config.Server, log *slog.Logger) error {
	shutdownTracing, err := tracing.Setup(ctx, cfg.OTLPEndpoint)
	if err != nil {
		return err
	}
	defer func() {
		sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := shutdownTracing(sctx); err != nil {
			log.Warn("tracer shutdown failed", "error", err)
		}
	}()

	res := &resources{}
	defer res.close(log)

	backend, err := openBackend(ctx, cfg, res)
	if err != nil {
		return err
	}
	sink, err := openAuditSink(ctx, cfg, res)
	if err != nil {
		return err
	}
	consumer, err := openAuditConsumer(ctx, cfg, res, log)
	if err != nil {
		return err
	}
	auditor := publisher.NewPublisher(sink,
		publisher.WithAsyncBuffer(cfg.AuditBuffer),
		publisher.WithLogger(log),
	)
	defer auditor.Close()

	hasher, err := crypto.NewHasher(cfg.Hash)
	if err != nil {
		return err
	}
	admin, err := cfg.Admin()
	if err != nil {
		return err
	}
	seeds, err := cfg.SeedAuthorizers()
	if err != nil {
		return err
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	host, err := contract.New(backend, admin,
		contract.WithLogger(log),
		contract.WithMetrics(contract.NewMetrics(registry)),
		contract.WithTracerProvider(otel.GetTracerProvider()),
		contract.WithAuditor(auditor),
		contract.WithHasher(hasher),
		contract.WithCallTimeout(cfg.CallTimeout),
	)
	if err != nil {
		return err
	}
	if err := host.SeedAuthorizers(ctx, seeds...); err != nil {
		return fmt.Errorf("seed authorizers: %w", err)
	}

	tokens := jwttoken.NewJWTService(cfg.JWT.SigningKey, cfg.JWT.Issuer, cfg.JWT.Audience)
	r := chi.NewRouter()
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	r.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{Registry: registry}))
	handler.New(host, jwttoken.NewJWTServiceAdapter(tokens), log, metrics.New(registry)).Register(r)

	srv := httpserver.New(cfg.Addr, otelhttp.NewHandler(r, "chocolate"))

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("starting chocolate", "addr", cfg.Addr, "store", cfg.Store, "hash", cfg.Hash, "admin", admin.String())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		log.Info("shutting down")
		return srv.Shutdown(sctx)
	})
	if consumer != nil {
		g.Go(func() error {
			return consumer.Run(gctx)
		})
	}
	return g.Wait()
}
