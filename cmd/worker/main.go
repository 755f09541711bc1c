package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/Domenick1991/skybook/config"
	"github.com/Domenick1991/skybook/internal/email"
	"github.com/Domenick1991/skybook/internal/kafka"
	kafkaGo "github.com/segmentio/kafka-go"
	flag "github.com/spf13/pflag"
)

func main() {
	defaultPath := os.Getenv("CONFIG_PATH")
	if defaultPath == "" {
		defaultPath = "config.yaml"
	}
	cfgPath := flag.String("config", defaultPath, "path to the YAML config file")
	flag.Parse()

	cfg, err := config.LoadConfig(*cfgPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	if len(cfg.Kafka.Brokers) == 0 || cfg.Kafka.NotificationsTopic == "" {
		log.Fatalf("worker needs kafka.brokers and kafka.notifications_topic")
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.Log.SlogLevel()}))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	consumer := kafka.NewConsumer(cfg.Kafka.Brokers, cfg.Kafka.GroupID, cfg.Kafka.NotificationsTopic)
	defer consumer.Close()

	emailSender := email.NewSender(os.Stdout, logger)

	logger.Info("worker started", "topic", cfg.Kafka.NotificationsTopic, "group", cfg.Kafka.GroupID)
	err = consumer.Consume(ctx, func(ctx context.Context, msg kafkaGo.Message) error {
		event, err := kafka.DecodeTicketEvent(msg)
		if err != nil {
			logger.Warn("skipping undecodable event", "offset", msg.Offset, "error", err)
			return nil
		}
		return emailSender.Send(ctx, event)
	})
	if err != nil && !errors.Is(err, context.Canceled) {
		log.Fatalf("consumer stopped: %v", err)
	}
	logger.Info("worker stopped")
}
