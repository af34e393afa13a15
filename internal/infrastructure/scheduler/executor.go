package scheduler

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/dishankgupta/milk-subs-sub005/internal/application/delivery"
	"github.com/dishankgupta/milk-subs-sub005/internal/domain/shared"
	"github.com/dishankgupta/milk-subs-sub005/internal/domain/shared/format"
)

// OrderGenerator generates the daily orders for a date
type OrderGenerator interface {
	GenerateOrders(ctx context.Context, req delivery.GenerateOrdersRequest) (*delivery.GenerateOrdersResponse, error)
}

// OrderGenerationExecutor runs order generation jobs against the
// delivery application service
type OrderGenerationExecutor struct {
	orders OrderGenerator
	logger *zap.Logger
}

// NewOrderGenerationExecutor creates a new executor
func NewOrderGenerationExecutor(orders OrderGenerator, logger *zap.Logger) *OrderGenerationExecutor {
	return &OrderGenerationExecutor{
		orders: orders,
		logger: logger,
	}
}

// Execute generates orders for the job's date. A date whose orders
// were already generated (by an earlier run or manually through the
// API) counts as success, not a failure to retry.
func (e *OrderGenerationExecutor) Execute(ctx context.Context, job *Job) error {
	resp, err := e.orders.GenerateOrders(ctx, delivery.GenerateOrdersRequest{
		Date:  format.Date(job.Date),
		Force: job.Force,
	})
	if err != nil {
		var domainErr *shared.DomainError
		if errors.As(err, &domainErr) && domainErr.Code == "ORDERS_EXIST" {
			e.logger.Info("Orders already generated for date",
				zap.Time("date", job.Date),
			)
			return nil
		}
		return err
	}

	e.logger.Info("Daily orders generated",
		zap.String("date", resp.Date),
		zap.Int("created", resp.OrdersCreated),
		zap.Int("skipped", resp.Skipped),
		zap.Int64("replaced", resp.Replaced),
	)
	return nil
}
