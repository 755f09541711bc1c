package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Domenick1991/skybook/config"
	"github.com/Domenick1991/skybook/internal/auth"
	"github.com/Domenick1991/skybook/internal/bootstrap"
	"github.com/Domenick1991/skybook/internal/cache"
	"github.com/Domenick1991/skybook/internal/catalog"
	"github.com/Domenick1991/skybook/internal/kafka"
	"github.com/Domenick1991/skybook/internal/ledger"
	"github.com/Domenick1991/skybook/internal/repository"
	"github.com/Domenick1991/skybook/internal/service/booking"
	"github.com/Domenick1991/skybook/internal/service/flights"
	"github.com/Domenick1991/skybook/internal/ticketlog"
	"github.com/jackc/pgx/v5/pgxpool"
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

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.Log.SlogLevel()}))
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var redisCache *cache.RedisCache
	if cfg.Redis.Addr != "" {
		redisCache = cache.NewRedisCache(cfg.Redis, time.Duration(cfg.Catalog.CacheTTLSeconds)*time.Second)
		defer redisCache.Close()
		if err := redisCache.Ping(ctx); err != nil {
			log.Fatalf("connect redis: %v", err)
		}
	}

	var (
		flightRepo  repository.FlightRepository
		flightCache flights.FlightCache
	)
	switch cfg.Catalog.Source {
	case config.CatalogSourceSeed:
		flightRepo = repository.NewStaticFlightRepository(catalog.Seed())
	case config.CatalogSourceFile:
		rows, err := catalog.LoadFile(cfg.Catalog.File)
		if err != nil {
			log.Fatalf("load catalog file: %v", err)
		}
		flightRepo = repository.NewStaticFlightRepository(rows)
	case config.CatalogSourcePostgres:
		pool, err := pgxpool.New(ctx, cfg.Database.DSN())
		if err != nil {
			log.Fatalf("connect postgres: %v", err)
		}
		defer pool.Close()
		flightRepo = repository.NewFlightRepository(pool)
		if redisCache != nil {
			flightCache = redisCache
		}
	}

	flightService := flights.NewFlightService(flightRepo, flightCache, logger)
	flightCatalog, err := flightService.LoadCatalog(ctx)
	if err != nil {
		log.Fatalf("load catalog: %v", err)
	}

	ticketLog, err := ticketlog.Open(cfg.Ledger.LogPath, logger)
	if err != nil {
		log.Fatalf("open ticket log: %v", err)
	}
	defer ticketLog.Close()

	opts := []booking.BookingServiceOption{booking.WithLogger(logger)}
	if redisCache != nil {
		opts = append(opts, booking.WithRequestLock(redisCache, time.Duration(cfg.Booking.RequestLockTTLSeconds)*time.Second))
	}
	if len(cfg.Kafka.Brokers) > 0 {
		producer := kafka.NewProducer(cfg.Kafka.Brokers, logger)
		defer producer.Close()
		if err := producer.CheckConnection(ctx); err != nil {
			logger.Warn("kafka unavailable, events will be dropped until it recovers", "error", err)
		}
		opts = append(opts, booking.WithEvents(producer, cfg.Kafka.TicketTopic, cfg.Kafka.NotificationsTopic))
	}

	bookingService := booking.NewBookingService(flightCatalog, ledger.New(), ticketLog, opts...)
	restored, err := bookingService.Restore(ctx)
	if err != nil {
		log.Fatalf("restore tickets: %v", err)
	}
	logger.Info("tickets restored", "count", restored, "log", ticketLog.Path())

	directory, err := auth.NewDirectory(credentials(cfg.Operators))
	if err != nil {
		log.Fatalf("build operator directory: %v", err)
	}
	logger.Info("operators loaded", "usernames", directory.Usernames())

	if err := bootstrap.Run(ctx, cfg, bookingService, directory, logger); err != nil {
		log.Fatalf("server error: %v", err)
	}
}

func credentials(operators []config.OperatorConfig) []auth.Credentials {
	if len(operators) == 0 {
		return auth.DefaultCredentials()
	}
	creds := make([]auth.Credentials, 0, len(operators))
	for _, op := range operators {
		creds = append(creds, auth.Credentials{
			Username:     op.Username,
			Email:        op.Email,
			Password:     op.Password,
			PasswordHash: op.PasswordHash,
			Privileged:   op.Privileged,
		})
	}
	return creds
}
