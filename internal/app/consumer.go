package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go-roster/internal/audit"
	"go-roster/internal/coveragerule"
	"go-roster/internal/events"
	"go-roster/internal/messaging/kafka/consumer"
	"go-roster/internal/roster"
	"go-roster/internal/shared/connection"
	"go-roster/internal/tenant"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// RunConsumer warms and invalidates the coverage cache off the schedule
// week lifecycle topic.
func RunConsumer() error {
	logger := zap.L().Named("app.consumer")

	gormDB, err := connection.ConnectGORMWithRetry(
		os.Getenv("DB_HOST"),
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_NAME"),
		os.Getenv("DB_PORT"),
		os.Getenv("DB_SSLMODE"),
		5,
	)
	if err != nil {
		return err
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	redisClient, err := connection.ConnectRedisWithRetry(os.Getenv("REDIS_ADDR"), 5)
	if err != nil {
		return err
	}

	kafkaBroker := os.Getenv("KAFKA_BROKER")
	if kafkaBroker == "" {
		return fmt.Errorf("KAFKA_BROKER is required")
	}

	coverageCache := roster.NewCoverageCache(redisClient)
	auditSink := audit.NewGormSink(gormDB)
	scopeResolver := tenant.NewBoutiqueResolver(gormDB)

	coverageRuleRepo := coveragerule.NewRepository(gormDB)
	coverageRuleService := coveragerule.NewService(sqlDB, coverageRuleRepo, scopeResolver, auditSink, coverageCache)

	rosterRepo := roster.NewRepository(gormDB)
	rosterResolver := roster.NewResolver(rosterRepo, roster.StaticTeamShiftPolicy)
	coverageValidator := roster.NewValidator(rosterResolver, coverageRuleService, coverageCache)

	reader := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:        []string{kafkaBroker},
		Topic:          events.ScheduleWeekLifecycleTopic,
		GroupID:        "go-roster-coverage-warmer",
		CommitInterval: 0,
		StartOffset:    kafkago.FirstOffset,
	})
	defer reader.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go consumer.ConsumeScheduleWeekLifecycle(ctx, reader, coverageValidator, coverageCache, logger)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("consumer shutting down")
	cancel()

	return nil
}
