package app

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jmorrow08/ClevelandCleanSolutionsProject-sub000/internal/generation"
	"github.com/jmorrow08/ClevelandCleanSolutionsProject-sub000/internal/location"
	"github.com/jmorrow08/ClevelandCleanSolutionsProject-sub000/internal/messaging/kafka"
	"github.com/jmorrow08/ClevelandCleanSolutionsProject-sub000/internal/occurrence"
	"github.com/jmorrow08/ClevelandCleanSolutionsProject-sub000/internal/shared/connection"

	"go.uber.org/zap"
)

// generationHour is the local hour the daily pass fires at.
const generationHour = 5

// RunScheduler runs the occurrence generator every day at 05:00 in the
// operations timezone, and once immediately on startup so a restart never
// skips a day.
func RunScheduler() error {
	logger := zap.L().Named("app.scheduler")

	tzName := os.Getenv("OPS_TIMEZONE")
	if tzName == "" {
		tzName = "America/Chicago"
	}
	tz, err := time.LoadLocation(tzName)
	if err != nil {
		return err
	}

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

	locationRepo := location.NewRepository(gormDB)
	occurrenceRepo := occurrence.NewRepository(gormDB)
	outboxRepo := kafka.NewOutboxRepository(sqlDB)

	generationService := generation.NewService(sqlDB, locationRepo, occurrenceRepo, outboxRepo)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	runOnce := func() {
		summary, err := generationService.Run(ctx, time.Now().In(tz))
		if err != nil {
			logger.Error("generation pass failed", zap.Error(err))
			return
		}
		logger.Info("generation pass done",
			zap.Int("generated", summary.Generated),
			zap.Int("advanced", summary.Advanced),
			zap.Int("failed_chunks", summary.FailedChunks))
	}

	go func() {
		runOnce()
		for {
			timer := time.NewTimer(untilNextRun(time.Now().In(tz)))
			select {
			case <-ctx.Done():
				timer.Stop()
				return
			case <-timer.C:
				runOnce()
			}
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("scheduler shutting down")
	cancel()

	return nil
}

// untilNextRun returns the wait until the next local 05:00.
func untilNextRun(now time.Time) time.Duration {
	next := time.Date(now.Year(), now.Month(), now.Day(), generationHour, 0, 0, 0, now.Location())
	if !next.After(now) {
		next = next.AddDate(0, 0, 1)
	}
	return next.Sub(now)
}
