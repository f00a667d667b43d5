//go:build integration

package main_test

import (
	"context"
	"fmt"
	"net"
	"testing"
	"time"

	"github.com/google/uuid"
	kafkago "github.com/segmentio/kafka-go"
	"github.com/shareit-rentals/service-booking/internal/application"
	"github.com/shareit-rentals/service-booking/internal/directory"
	bookingDomain "github.com/shareit-rentals/service-booking/internal/domain/booking"
	itemDomain "github.com/shareit-rentals/service-booking/internal/domain/item"
	"github.com/shareit-rentals/service-booking/internal/events"
	"github.com/shareit-rentals/service-booking/internal/repository"
	"github.com/shareit-rentals/service-booking/migrations"
	"github.com/shareit-rentals/service-booking/pkg/config"
	"github.com/shareit-rentals/service-booking/pkg/database"
	"github.com/shareit-rentals/service-booking/pkg/kafka"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	kafkamodule "github.com/testcontainers/testcontainers-go/modules/kafka"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// testInfra holds shared test infrastructure.
type testInfra struct {
	DB           *gorm.DB
	KafkaBrokers []string
	Cleanup      func()
}

// serviceStack holds wired-up service components over the GORM repositories.
type serviceStack struct {
	Bookings        *application.BookingService
	Users           *application.UserService
	Items           *application.ItemService
	BookingRepo     *repository.GormBookingRepository
	ItemConsumer    *events.ItemEventConsumer
	CleanupProducer func()
}

// setupContainers starts PostgreSQL and Kafka testcontainers, applies the
// migrations and returns a connected GORM DB.
func setupContainers(t *testing.T) *testInfra {
	t.Helper()
	ctx := context.Background()
	log := zap.NewNop()

	pgReq := testcontainers.ContainerRequest{
		Image:        "postgres:16-alpine",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_USER":     "test",
			"POSTGRES_PASSWORD": "test",
			"POSTGRES_DB":       "test_booking",
		},
		WaitingFor: wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2).
			WithStartupTimeout(60 * time.Second),
	}
	pgContainer, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: pgReq,
		Started:          true,
	})
	require.NoError(t, err, "failed to start PostgreSQL container")

	pgHost, err := pgContainer.Host(ctx)
	require.NoError(t, err)
	pgPort, err := pgContainer.MappedPort(ctx, "5432")
	require.NoError(t, err)

	dbCfg := config.DatabaseConfig{
		Host:     pgHost,
		Port:     pgPort.Int(),
		User:     "test",
		Password: "test",
		DBName:   "test_booking",
		SSLMode:  "disable",
	}

	var db *gorm.DB
	require.Eventually(t, func() bool {
		var err error
		db, err = database.Connect(dbCfg, log)
		return err == nil
	}, 30*time.Second, time.Second, "PostgreSQL not ready for connections")

	require.NoError(t, database.RunMigrations(dbCfg.DatabaseURL(), migrations.FS, log))

	kafkaContainer, err := kafkamodule.Run(ctx, "confluentinc/confluent-local:7.5.0")
	require.NoError(t, err, "failed to start Kafka container")

	kafkaBrokers, err := kafkaContainer.Brokers(ctx)
	require.NoError(t, err, "failed to get Kafka brokers")

	createTopics(t, kafkaBrokers, bookingDomain.Topic, itemDomain.Topic)

	cleanup := func() {
		if err := kafkaContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate Kafka container: %v", err)
		}
		if err := pgContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate PostgreSQL container: %v", err)
		}
	}

	return &testInfra{
		DB:           db,
		KafkaBrokers: kafkaBrokers,
		Cleanup:      cleanup,
	}
}

// setupServiceStack wires the services the way the server does.
func setupServiceStack(t *testing.T, db *gorm.DB, brokers []string) *serviceStack {
	t.Helper()
	logger, _ := zap.NewDevelopment()
	clock := bookingDomain.SystemClock{}

	bookingRepo := repository.NewGormBookingRepository(db)
	userRepo := repository.NewGormUserRepository(db)
	itemRepo := repository.NewGormItemRepository(db)
	commentRepo := repository.NewGormCommentRepository(db)

	users := directory.NewUsers(userRepo, time.Minute, logger)
	items := directory.NewItems(itemRepo)
	producer := kafka.NewProducer(brokers, logger)

	itemSvc := application.NewItemService(itemRepo, commentRepo, bookingRepo, users, clock, logger)
	groupID := fmt.Sprintf("test-booking-%s", uuid.New().String()[:8])

	return &serviceStack{
		Bookings:        application.NewBookingService(bookingRepo, users, items, clock, producer, logger),
		Users:           application.NewUserService(userRepo, users, clock, logger),
		Items:           itemSvc,
		BookingRepo:     bookingRepo,
		ItemConsumer:    events.NewItemEventConsumer(brokers, groupID, itemSvc, logger),
		CleanupProducer: func() { _ = producer.Close() },
	}
}

// createUser registers a user with a unique email.
func createUser(t *testing.T, s *serviceStack, name string) uuid.UUID {
	t.Helper()
	u, err := s.Users.CreateUser(context.Background(), application.CreateUserRequest{
		Name:  name,
		Email: fmt.Sprintf("%s-%s@shareit.test", name, uuid.New().String()[:8]),
	})
	require.NoError(t, err)
	return u.ID
}

// createItem lists an available item for owner.
func createItem(t *testing.T, s *serviceStack, owner uuid.UUID, name string) uuid.UUID {
	t.Helper()
	available := true
	it, err := s.Items.CreateItem(context.Background(), owner, application.CreateItemRequest{
		Name:        name,
		Description: name + " for rent",
		Available:   &available,
	})
	require.NoError(t, err)
	return it.ID
}

// seedBooking stores a booking directly, bypassing the request-time checks
// so past periods can be created.
func seedBooking(t *testing.T, s *serviceStack, itemID, ownerID, bookerID uuid.UUID, start, end time.Time, status bookingDomain.Status) *bookingDomain.Booking {
	t.Helper()
	now := time.Now().UTC().Truncate(time.Second)
	bk := bookingDomain.Reconstruct(uuid.New(), itemID, ownerID, bookerID,
		start.UTC().Truncate(time.Second), end.UTC().Truncate(time.Second), status, 1, now, now)
	require.NoError(t, s.BookingRepo.Save(context.Background(), bk))
	return bk
}

// publishTestEvent publishes a CloudEvent to Kafka.
func publishTestEvent(t *testing.T, brokers []string, topic, source, eventType, subject string, data any) {
	t.Helper()
	logger, _ := zap.NewDevelopment()
	producer := kafka.NewProducer(brokers, logger)
	defer func() { _ = producer.Close() }()

	ce, err := kafka.NewCloudEvent(source, eventType, subject, data)
	require.NoError(t, err, "failed to create cloud event")

	err = producer.PublishEvent(context.Background(), topic, ce)
	require.NoError(t, err, "failed to publish event")
}

// consumeEvent reads from a Kafka topic until it finds an event of the
// expected type about subject.
func consumeEvent(t *testing.T, brokers []string, topic, expectedType, subject string, timeout time.Duration) kafka.CloudEvent {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	groupID := fmt.Sprintf("test-assert-%s", uuid.New().String()[:8])
	reader := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:     brokers,
		GroupID:     groupID,
		Topic:       topic,
		MinBytes:    1,
		MaxBytes:    10e6,
		StartOffset: kafkago.FirstOffset,
	})
	defer func() { _ = reader.Close() }()

	for {
		msg, err := reader.ReadMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				t.Fatalf("timed out waiting for event type %q on topic %q", expectedType, topic)
			}
			continue
		}
		ce, err := kafka.ParseCloudEvent(msg.Value)
		if err != nil {
			continue
		}
		if ce.Type == expectedType && ce.Subject == subject {
			return ce
		}
	}
}

// createTopics pre-creates Kafka topics so producers don't fail with "Unknown Topic".
func createTopics(t *testing.T, brokers []string, topics ...string) {
	t.Helper()
	conn, err := kafkago.Dial("tcp", brokers[0])
	require.NoError(t, err, "failed to dial Kafka for topic creation")
	defer conn.Close()

	controller, err := conn.Controller()
	require.NoError(t, err, "failed to get Kafka controller")

	controllerConn, err := kafkago.Dial("tcp", net.JoinHostPort(controller.Host, fmt.Sprintf("%d", controller.Port)))
	require.NoError(t, err, "failed to connect to Kafka controller")
	defer controllerConn.Close()

	topicConfigs := make([]kafkago.TopicConfig, len(topics))
	for i, topic := range topics {
		topicConfigs[i] = kafkago.TopicConfig{
			Topic:             topic,
			NumPartitions:     1,
			ReplicationFactor: 1,
		}
	}
	require.NoError(t, controllerConn.CreateTopics(topicConfigs...), "failed to create Kafka topics")

	time.Sleep(time.Second)
}
