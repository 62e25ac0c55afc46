package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/jmorrow08/ClevelandCleanSolutionsProject-sub000/internal/employeerate"
	"github.com/jmorrow08/ClevelandCleanSolutionsProject-sub000/internal/ledger"
	"github.com/jmorrow08/ClevelandCleanSolutionsProject-sub000/internal/messaging/kafka"
	"github.com/jmorrow08/ClevelandCleanSolutionsProject-sub000/internal/occurrence"
	"github.com/jmorrow08/ClevelandCleanSolutionsProject-sub000/internal/payrollrun"
	"github.com/jmorrow08/ClevelandCleanSolutionsProject-sub000/internal/shared/connection"

	"go.uber.org/zap"
)

// RunConsumer executes payroll runs requested over Kafka until interrupted.
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

	kafkaBroker := os.Getenv("KAFKA_BROKER")
	if kafkaBroker == "" {
		return fmt.Errorf("KAFKA_BROKER is required")
	}

	occurrenceRepo := occurrence.NewRepository(gormDB)
	rateRepo := employeerate.NewRepository(gormDB)
	ledgerRepo := ledger.NewRepository(gormDB)
	outboxRepo := kafka.NewOutboxRepository(sqlDB)

	payrollRunService := payrollrun.NewService(sqlDB, occurrenceRepo, rateRepo, ledgerRepo, outboxRepo)

	consumer := payrollrun.NewRunRequestedConsumer(
		kafkaBroker,
		"cleveland-clean-payroll-run",
		payrollRunService,
		logger,
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	consumer.Start(ctx)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("consumer shutting down")
	cancel()

	return nil
}
