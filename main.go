package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"dorm-booking/cmd"
	"dorm-booking/internal/data/repository"
	"dorm-booking/internal/usecase"
	"dorm-booking/internal/wire"
	"dorm-booking/pkg/cache"
	"dorm-booking/pkg/database"
	"dorm-booking/pkg/mq"
	"dorm-booking/pkg/utils"

	"go.uber.org/zap"
)

func main() {
	// Load config
	config, err := utils.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	logger, err := utils.InitLogger(config.App.LogPath, config.App.Debug)
	if err != nil {
		log.Printf("Failed to init logger: %v. Using standard log.", err)
		logger, _ = zap.NewProduction()
	}
	defer logger.Sync()

	logger.Info("Starting application",
		zap.String("app", config.App.Name),
		zap.String("port", config.App.Port),
		zap.Bool("debug", config.App.Debug),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Connect to database
	db, err := database.InitDB(config.Database)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	if err := database.Migrate(ctx, db); err != nil {
		logger.Fatal("Failed to apply schema", zap.Error(err))
	}

	logger.Info("Database connected successfully")

	repos := repository.NewRepository(db, logger)

	roomCache := initRoomCache(config, logger)

	publisher := initPublisher(config, logger)
	if p, ok := publisher.(*mq.Publisher); ok {
		defer p.Close()
	}

	app := wire.Wiring(repos, config, roomCache, publisher, logger)

	// `dorm-booking seed` fills an empty catalog and exits
	if len(os.Args) > 1 && os.Args[1] == "seed" {
		if _, err := app.Service.Seeder.Seed(ctx); err != nil {
			logger.Fatal("Failed to seed catalog", zap.Error(err))
		}
		return
	}

	if config.Catalog.SeedOnStart {
		if _, err := app.Service.Seeder.Seed(ctx); err != nil {
			logger.Fatal("Failed to seed catalog", zap.Error(err))
		}
	}

	logger.Info("Starting HTTP server", zap.String("port", config.App.Port))

	if err := cmd.APIServer(ctx, app.Router, config.App.Port, logger); err != nil {
		logger.Error("Server stopped", zap.Error(err))
	}
}

// initRoomCache returns nil when Redis is not configured or unreachable.
func initRoomCache(config *utils.Config, logger *zap.Logger) usecase.RoomCache {
	if config.Redis.Addr == "" {
		logger.Info("Redis not configured, room cache disabled")
		return nil
	}

	client, err := cache.NewRedisClient(config.Redis)
	if err != nil {
		logger.Warn("Redis unavailable, room cache disabled", zap.Error(err))
		return nil
	}

	logger.Info("Room cache enabled", zap.String("addr", config.Redis.Addr))
	return cache.NewRoomCache(client, time.Duration(config.Redis.TTLSeconds)*time.Second)
}

// initPublisher returns nil when AMQP is not configured or unreachable.
func initPublisher(config *utils.Config, logger *zap.Logger) usecase.ReservationPublisher {
	if config.AMQP.URL == "" {
		logger.Info("AMQP not configured, reservation events disabled")
		return nil
	}

	publisher, err := mq.NewPublisher(config.AMQP.URL, config.AMQP.Exchange)
	if err != nil {
		logger.Warn("RabbitMQ unavailable, reservation events disabled", zap.Error(err))
		return nil
	}

	logger.Info("Reservation events enabled", zap.String("exchange", config.AMQP.Exchange))
	return publisher
}
