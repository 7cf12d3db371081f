package services

import (
	"context"
	"time"

	"github.com/sgaviria/finanzapp/internal/dto"
)

// BatchSvcFacade is the nightly accrual runner: for every tenant with linked
// storage and valid credentials, accrue every active debt whose cutoff day
// matches today. Per-tenant and per-debt failures are counted, never fatal.
type BatchSvcFacade interface {
	RunDailyAccrual(ctx context.Context, now time.Time) dto.BatchSummary
}
