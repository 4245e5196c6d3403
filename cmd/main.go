package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"gitlab.ozon.dev/pupkingeorgij/fulfillment/internal/cache"
	"gitlab.ozon.dev/pupkingeorgij/fulfillment/internal/config"
	"gitlab.ozon.dev/pupkingeorgij/fulfillment/internal/db"
	"gitlab.ozon.dev/pupkingeorgij/fulfillment/internal/feed"
	"gitlab.ozon.dev/pupkingeorgij/fulfillment/internal/grpcserver"
	"gitlab.ozon.dev/pupkingeorgij/fulfillment/internal/kafka"
	"gitlab.ozon.dev/pupkingeorgij/fulfillment/internal/logger"
	"gitlab.ozon.dev/pupkingeorgij/fulfillment/internal/rabbitmq"
	"gitlab.ozon.dev/pupkingeorgij/fulfillment/internal/repository/postgresql"
	"gitlab.ozon.dev/pupkingeorgij/fulfillment/internal/server"
	"gitlab.ozon.dev/pupkingeorgij/fulfillment/internal/storage"
)

func main() {
	configPath := flag.String("config", config.Path(), "path to the YAML config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	l := logger.New(cfg.Log.Level)
	defer func() { _ = l.Sync() }()

	if err := run(cfg, l); err != nil {
		l.Fatal("Service stopped with error", zap.Error(err))
	}
	l.Info("Service gracefully stopped")
}

func run(cfg *config.Config, l *zap.Logger) error {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	database, err := db.NewDb(ctx, cfg.Postgres)
	if err != nil {
		return err
	}
	defer database.Close()

	userRepo := postgresql.NewUserRepo(database)
	if cfg.Auth.AdminUsername != "" {
		created, err := userRepo.EnsureUser(ctx, cfg.Auth.AdminUsername, cfg.Auth.AdminPassword)
		if err != nil {
			return fmt.Errorf("failed to ensure admin user: %w", err)
		}
		l.Info("Admin user checked", zap.String("username", cfg.Auth.AdminUsername), zap.Bool("created", created))
	}

	pricing, err := pricingConfig(cfg.Feed)
	if err != nil {
		return err
	}

	orderCache := cache.NewOrderCache(l)
	outboxRepo := postgresql.NewOutboxTaskRepo()
	stg := storage.NewStorage(
		database,
		postgresql.NewOrderRepo(database),
		postgresql.NewHistoryRepo(database),
		outboxRepo,
		orderCache,
		storage.Config{
			OrderTopic: cfg.Events.OrderTopic,
			AuditTopic: cfg.Events.AuditTopic,
			Pricing:    pricing,
		},
		l.Named("storage"),
	)
	if err := orderCache.LoadInitialData(ctx, stg); err != nil {
		return fmt.Errorf("failed to warm order cache: %w", err)
	}

	trackingFeed := feed.New(stg, cfg.Feed.PollInterval, l.Named("feed"))

	producer, err := newProducer(cfg.Events, l)
	if err != nil {
		return err
	}
	publisher := kafka.NewPublisher(database, outboxRepo, producer, cfg.Outbox, l)

	auditManager := server.NewAuditManager(cfg.Audit, stg, l)
	httpServer := server.New(stg, trackingFeed, userRepo, auditManager, cfg.HTTP, cfg.Auth.JWTSecret, l.Named("http"))
	grpcServer := grpcserver.NewServer(trackingFeed, stg, l.Named("grpc"))

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return httpServer.Run(gctx)
	})
	g.Go(func() error {
		return grpcServer.Run(gctx, cfg.GRPC.Port)
	})
	g.Go(func() error {
		return serveMetrics(gctx, cfg.Metrics.Port, l)
	})
	g.Go(func() error {
		publisher.Run(gctx)
		publisher.Shutdown()
		return nil
	})

	return g.Wait()
}

func pricingConfig(cfg config.FeedConfig) (storage.PricingConfig, error) {
	fee, err := decimal.NewFromString(cfg.DeliveryFee)
	if err != nil {
		return storage.PricingConfig{}, fmt.Errorf("invalid delivery fee %q: %w", cfg.DeliveryFee, err)
	}
	freeFrom, err := decimal.NewFromString(cfg.FreeDeliveryFrom)
	if err != nil {
		return storage.PricingConfig{}, fmt.Errorf("invalid free delivery threshold %q: %w", cfg.FreeDeliveryFrom, err)
	}
	return storage.PricingConfig{
		DeliveryFee:        fee,
		FreeDeliveryFrom:   freeFrom,
		DeliveryLegMinutes: cfg.DeliveryLegMinutes,
	}, nil
}

func newProducer(cfg config.EventsConfig, l *zap.Logger) (kafka.Producer, error) {
	switch cfg.Broker {
	case "kafka":
		l.Info("Publishing events to kafka", zap.Strings("brokers", cfg.KafkaBrokers))
		return kafka.NewKafkaProducer(cfg.KafkaBrokers, l.Named("kafka")), nil
	case "rabbitmq":
		p, err := rabbitmq.Dial(cfg.AMQPURL, cfg.Exchange, l.Named("rabbitmq"))
		if err != nil {
			return nil, err
		}
		return p, nil
	default:
		return kafka.NewConsoleProducer(l.Named("events")), nil
	}
}

func serveMetrics(ctx context.Context, port string, l *zap.Logger) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	srv := &http.Server{Addr: ":" + port, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	l.Info("Metrics server starting", zap.String("port", port))
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("metrics server: %w", err)
	}
	return nil
}
