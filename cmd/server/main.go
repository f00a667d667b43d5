package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shareit-rentals/service-booking/internal/application"
	"github.com/shareit-rentals/service-booking/internal/config"
	"github.com/shareit-rentals/service-booking/internal/directory"
	bookingDomain "github.com/shareit-rentals/service-booking/internal/domain/booking"
	commentDomain "github.com/shareit-rentals/service-booking/internal/domain/comment"
	itemDomain "github.com/shareit-rentals/service-booking/internal/domain/item"
	userDomain "github.com/shareit-rentals/service-booking/internal/domain/user"
	"github.com/shareit-rentals/service-booking/internal/events"
	"github.com/shareit-rentals/service-booking/internal/handler"
	"github.com/shareit-rentals/service-booking/internal/repository"
	"github.com/shareit-rentals/service-booking/internal/repository/memory"
	"github.com/shareit-rentals/service-booking/migrations"
	"github.com/shareit-rentals/service-booking/pkg/database"
	"github.com/shareit-rentals/service-booking/pkg/health"
	"github.com/shareit-rentals/service-booking/pkg/kafka"
	"github.com/shareit-rentals/service-booking/pkg/logger"
	"github.com/shareit-rentals/service-booking/pkg/middleware"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const serviceName = "service-booking"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", serviceName, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	serve := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API and event consumers",
		RunE:  func(cmd *cobra.Command, _ []string) error { return runServe(cmd.Context()) },
	}
	migrate := &cobra.Command{
		Use:   "migrate",
		Short: "Apply database migrations and exit",
		RunE:  func(*cobra.Command, []string) error { return runMigrate() },
	}

	root := &cobra.Command{
		Use:           serviceName,
		Short:         "ShareIt booking service",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          serve.RunE,
	}
	root.AddCommand(serve, migrate)
	return root
}

func setup() (*config.ServiceConfig, *zap.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}
	log, err := logger.NewNamed(cfg.AppEnv, serviceName)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create logger: %w", err)
	}
	return cfg, log, nil
}

func runMigrate() error {
	cfg, log, err := setup()
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	if cfg.Storage != config.StoragePostgres {
		return fmt.Errorf("migrations need %s storage, got %s", config.StoragePostgres, cfg.Storage)
	}
	return database.RunMigrations(cfg.DBConfig.DatabaseURL(), migrations.FS, log)
}

// repositories groups the storage backends the services are built on.
type repositories struct {
	bookings bookingDomain.BookingRepository
	users    userDomain.UserRepository
	items    itemDomain.ItemRepository
	comments commentDomain.CommentRepository
}

func openRepositories(cfg *config.ServiceConfig, log *zap.Logger) (repositories, *gorm.DB, error) {
	if cfg.Storage == config.StorageMemory {
		log.Warn("using in-memory storage, data is lost on restart")
		return repositories{
			bookings: memory.NewBookingRepository(),
			users:    memory.NewUserRepository(),
			items:    memory.NewItemRepository(),
			comments: memory.NewCommentRepository(),
		}, nil, nil
	}

	db, err := database.Connect(cfg.DBConfig, log)
	if err != nil {
		return repositories{}, nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := database.RunMigrations(cfg.DBConfig.DatabaseURL(), migrations.FS, log); err != nil {
		return repositories{}, nil, fmt.Errorf("failed to run migrations: %w", err)
	}
	return repositories{
		bookings: repository.NewGormBookingRepository(db),
		users:    repository.NewGormUserRepository(db),
		items:    repository.NewGormItemRepository(db),
		comments: repository.NewGormCommentRepository(db),
	}, db, nil
}

func runServe(ctx context.Context) error {
	cfg, log, err := setup()
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	log.Info("starting service-booking",
		zap.String("port", cfg.Port),
		zap.String("storage", cfg.Storage),
		zap.Bool("kafka", cfg.KafkaConfig.Enabled),
	)

	repos, db, err := openRepositories(cfg, log)
	if err != nil {
		return err
	}

	var publisher kafka.Publisher = kafka.DiscardPublisher{}
	if cfg.KafkaConfig.Enabled {
		producer := kafka.NewProducer(cfg.KafkaConfig.Brokers, log)
		defer func() { _ = producer.Close() }()
		publisher = producer
	}

	clock := bookingDomain.SystemClock{}
	users := directory.NewUsers(repos.users, cfg.UserCacheTTL, log)
	items := directory.NewItems(repos.items)

	bookingService := application.NewBookingService(repos.bookings, users, items, clock, publisher, log)
	userService := application.NewUserService(repos.users, users, clock, log)
	itemService := application.NewItemService(repos.items, repos.comments, repos.bookings, users, clock, log)

	ctx, cancel := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if cfg.KafkaConfig.Enabled {
		itemConsumer := events.NewItemEventConsumer(
			cfg.KafkaConfig.Brokers,
			cfg.ConsumerGroup("item-events"),
			itemService,
			log,
		)
		defer func() { _ = itemConsumer.Close() }()

		go func() {
			log.Info("starting item event consumer")
			if err := itemConsumer.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
				log.Error("item event consumer error", zap.Error(err))
			}
		}()
	}

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()

	router.Use(middleware.RecoveryMiddleware(log))
	router.Use(middleware.LoggerMiddleware(log))
	router.Use(middleware.RequestIDMiddleware())

	health.NewHandler(db, serviceName).RegisterRoutes(router)

	handler.NewUserHandler(userService).RegisterRoutes(router)
	handler.NewItemHandler(itemService).RegisterRoutes(router)
	handler.NewBookingHandler(bookingService, clock).RegisterRoutes(router)

	srv := &http.Server{
		Addr:         cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		log.Info("HTTP server starting", zap.String("addr", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
	}()

	select {
	case <-ctx.Done():
	case err := <-serveErr:
		return fmt.Errorf("HTTP server error: %w", err)
	}

	log.Info("shutting down service-booking...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server forced shutdown", zap.Error(err))
	}

	log.Info("service-booking stopped")
	return nil
}
