package jobs

import (
	"context"
	"fmt"
	"log/slog"

	"fulfillment/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// ShipmentAutoCloserJob manages the scheduled closing of expired shipment
// requests. Each tick ships every request past its delivery date and
// completes the orders linked to them.
type ShipmentAutoCloserJob struct {
	handler         commands.CloseExpiredShipmentsCommandHandler
	cron            *cron.Cron
	intervalSeconds int
	logger          *slog.Logger
}

// NewShipmentAutoCloserJob creates a new auto-closer running every
// intervalSeconds seconds.
func NewShipmentAutoCloserJob(
	handler commands.CloseExpiredShipmentsCommandHandler,
	intervalSeconds int,
	logger *slog.Logger,
) *ShipmentAutoCloserJob {
	return &ShipmentAutoCloserJob{
		handler:         handler,
		cron:            cron.New(cron.WithSeconds()),
		intervalSeconds: intervalSeconds,
		logger:          logger.With("component", "shipment_auto_closer_job"),
	}
}

// Start begins the periodic sweeps.
func (j *ShipmentAutoCloserJob) Start() error {
	schedule := fmt.Sprintf("@every %ds", j.intervalSeconds)
	_, err := j.cron.AddFunc(schedule, func() {
		ctx := context.Background()
		cmd := commands.NewCloseExpiredShipmentsCommand()

		shipped, handleErr := j.handler.Handle(ctx, cmd)
		if handleErr != nil {
			j.logger.ErrorContext(ctx, "Shipment auto-closer sweep failed", "error", handleErr)
			return
		}

		if shipped > 0 {
			j.logger.InfoContext(ctx, "Shipment auto-closer sweep finished", "shipped", shipped)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Shipment auto-closer started",
		"interval_seconds", j.intervalSeconds)
	return nil
}

// Stop stops the auto-closer job.
func (j *ShipmentAutoCloserJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Shipment auto-closer stopped")
}
