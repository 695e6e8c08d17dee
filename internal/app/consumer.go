package app

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"go-attendance/internal/bootstrap"
	"go-attendance/internal/config"
	"go-attendance/internal/events"
	"go-attendance/internal/messaging/kafka"
	"go-attendance/internal/messaging/kafka/consumer"
	"go-attendance/internal/shared/connection"
	"go-attendance/internal/timesheet"
	"go-attendance/internal/wfh"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

const consumerGroupID = "go-attendance"

// RunConsumer cleans up after deleted employees and audits attendance
// events until SIGINT/SIGTERM.
func RunConsumer(cfg config.Config) error {
	logger := zap.L().Named("app.consumer")

	if cfg.KafkaBroker == "" {
		return errors.New("KAFKA_BROKER is required")
	}

	gormDB, sqlDB, err := connectDatabase(cfg)
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	redisClient, err := connection.ConnectRedisWithRetry(cfg.RedisAddr, cfg.Database.MaxRetries)
	if err != nil {
		return err
	}
	defer redisClient.Close()

	outboxRepo := kafka.NewOutboxRepository(sqlDB)
	timesheetService := timesheet.NewService(sqlDB, timesheet.NewRepository(gormDB), outboxRepo, time.Now, cfg.Location, logger)
	wfhService := wfh.NewService(sqlDB, wfh.NewRepository(gormDB), outboxRepo, redisClient, logger)
	auditLogger := bootstrap.NewStdoutAuditLogger(logger)

	lifecycleReader := newReader(cfg.KafkaBroker, events.EmployeeLifecycleTopic, consumerGroupID+"-employee-lifecycle")
	defer lifecycleReader.Close()
	auditReader := newReader(cfg.KafkaBroker, events.AttendanceTopic, consumerGroupID+"-attendance-audit")
	defer auditReader.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		consumer.ConsumeEmployeeLifecycle(ctx, lifecycleReader, timesheetService, wfhService, auditLogger, logger)
	}()
	go func() {
		defer wg.Done()
		consumer.ConsumeAttendanceAudit(ctx, auditReader, auditLogger, logger)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("consumer shutting down")
	cancel()
	wg.Wait()

	return nil
}

func newReader(broker, topic, groupID string) *kafkago.Reader {
	return kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:        []string{broker},
		Topic:          topic,
		GroupID:        groupID,
		CommitInterval: 0,
		StartOffset:    kafkago.FirstOffset,
	})
}
