package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"os/signal"
	"syscall"
	"time"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"gitlab.ozon.dev/pupkingeorgij/fulfillment/internal/config"
	"gitlab.ozon.dev/pupkingeorgij/fulfillment/internal/logger"
)

const groupID = "fulfillment-event-consumer-group"

func main() {
	configPath := flag.String("config", config.Path(), "path to the YAML config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	l := logger.New(cfg.Log.Level).Named("consumer")
	defer func() { _ = l.Sync() }()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	g, gctx := errgroup.WithContext(ctx)
	for _, topic := range []string{cfg.Events.OrderTopic, cfg.Events.AuditTopic} {
		topic := topic
		g.Go(func() error {
			return consume(gctx, cfg.Events.KafkaBrokers, topic, l.With(zap.String("topic", topic)))
		})
	}
	if err := g.Wait(); err != nil {
		l.Error("Consumer stopped with error", zap.Error(err))
	}
	l.Info("Consumer stopped")
}

func consume(ctx context.Context, brokers []string, topic string, l *zap.Logger) error {
	r := kafka.NewReader(kafka.ReaderConfig{
		Brokers:        brokers,
		GroupID:        groupID,
		Topic:          topic,
		MinBytes:       10e3,
		MaxBytes:       10e6,
		CommitInterval: time.Second,
		MaxWait:        3 * time.Second,
	})
	defer func() {
		if err := r.Close(); err != nil {
			l.Error("Error closing kafka reader", zap.Error(err))
		}
	}()

	l.Info("Consumer connected", zap.Strings("brokers", brokers))

	for {
		m, err := r.ReadMessage(ctx)
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, context.Canceled) {
				return nil
			}
			l.Error("Error reading message", zap.Error(err))
			select {
			case <-ctx.Done():
				return nil
			case <-time.After(5 * time.Second):
			}
			continue
		}

		l.Info("Event received",
			zap.Time("timestamp", m.Time),
			zap.Int("partition", m.Partition),
			zap.Int64("offset", m.Offset),
			zap.ByteString("key", m.Key),
			zap.ByteString("value", m.Value),
		)
	}
}
