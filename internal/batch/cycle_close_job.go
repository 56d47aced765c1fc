package batch

import (
	"context"
	"dairycollect/internal/domain/milk"
	"dairycollect/internal/domain/payment"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"
)

// CycleCloseJob books pending payments for every farmer who delivered
// accepted milk in the cycle that just closed. It is scheduled shortly
// after each semi-monthly boundary (the 1st and the 16th).
type CycleCloseJob struct {
	milkRepo       milk.Repository
	paymentService payment.PaymentService
	logger         *slog.Logger
}

func NewCycleCloseJob(
	milkRepo milk.Repository,
	paymentSvc payment.PaymentService,
	logger *slog.Logger,
) *CycleCloseJob {
	if milkRepo == nil || paymentSvc == nil || logger == nil {
		panic("CycleCloseJob dependencies cannot be nil")
	}
	return &CycleCloseJob{
		milkRepo:       milkRepo,
		paymentService: paymentSvc,
		logger:         logger.With("job", "CycleClose"),
	}
}

func (j *CycleCloseJob) Run(ctx context.Context) error {
	startTime := time.Now()
	cycleStart, cycleEnd := payment.PreviousCycle(startTime)

	j.logger.InfoContext(ctx, "Starting cycle close payment job.",
		slog.Time("cycleStart", cycleStart),
		slog.Time("cycleEnd", cycleEnd))

	farmerIDs, err := j.milkRepo.FarmersWithAcceptedSubmissions(ctx, cycleStart, cycleEnd)
	if err != nil {
		j.logger.ErrorContext(ctx, "Failed to list farmers with accepted volume, aborting job.", slog.Any("error", err))
		return fmt.Errorf("cannot run job, failed to list farmers for cycle: %w", err)
	}
	j.logger.InfoContext(ctx, "Fetched farmers with accepted volume.", slog.Int("count", len(farmerIDs)))

	if len(farmerIDs) == 0 {
		j.logger.InfoContext(ctx, "No farmers delivered accepted milk in the closed cycle.",
			slog.Duration("duration", time.Since(startTime)))
		return nil
	}

	var wg sync.WaitGroup
	var bookedCount, skippedCount, errorCount int32

	for _, farmerID := range farmerIDs {
		wg.Add(1)
		go func(currentFarmerID int64) {
			defer wg.Done()

			logCtx := j.logger.With(slog.Int64("farmerID", currentFarmerID))

			p, bookErr := j.paymentService.BookCyclePayment(ctx, currentFarmerID, cycleStart, cycleEnd)
			if bookErr != nil {
				logCtx.ErrorContext(ctx, "Failed to book cycle payment", slog.Any("error", bookErr))
				atomic.AddInt32(&errorCount, 1)
				return
			}
			if p == nil {
				logCtx.DebugContext(ctx, "Cycle already booked or no accepted volume, skipping.")
				atomic.AddInt32(&skippedCount, 1)
				return
			}

			logCtx.InfoContext(ctx, "Cycle payment booked.",
				slog.Int64("paymentID", p.ID),
				slog.Float64("milkLiters", p.MilkLiters),
				slog.Float64("amount", p.Amount))
			atomic.AddInt32(&bookedCount, 1)
		}(farmerID)
	}

	wg.Wait()
	duration := time.Since(startTime)
	summaryLog := j.logger.With(
		slog.Duration("duration", duration),
		slog.Int("farmers_in_cycle", len(farmerIDs)),
		slog.Int("payments_booked", int(atomic.LoadInt32(&bookedCount))),
		slog.Int("farmers_skipped", int(atomic.LoadInt32(&skippedCount))),
		slog.Int("errors_encountered", int(atomic.LoadInt32(&errorCount))),
	)
	if errorCount > 0 {
		summaryLog.WarnContext(ctx, "Cycle close payment job finished with errors.")
		return fmt.Errorf("job completed with %d errors", atomic.LoadInt32(&errorCount))
	}
	summaryLog.InfoContext(ctx, "Cycle close payment job finished successfully.")
	return nil
}
