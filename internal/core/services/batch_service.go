package services

import (
	"context"
	"log/slog"
	"time"

	portsrepo "github.com/sgaviria/finanzapp/internal/core/ports/repositories"
	portssvc "github.com/sgaviria/finanzapp/internal/core/ports/services"
	"github.com/sgaviria/finanzapp/internal/dto"
	"github.com/sgaviria/finanzapp/internal/middleware"
	"github.com/sgaviria/finanzapp/internal/utils/dates"
)

// batchService runs the nightly accrual across all tenants. Processing is
// strictly sequential to bound load on the spreadsheet API and to avoid
// concurrent accrual of the same debt.
type batchService struct {
	users   portsrepo.UserRepositoryFacade
	tenants portsrepo.TenantRepositoryFactory
	oauth   portssvc.GoogleOAuthSvcFacade
	accrual portssvc.AccrualSvcFacade
}

// NewBatchService creates the nightly accrual runner.
func NewBatchService(users portsrepo.UserRepositoryFacade, tenants portsrepo.TenantRepositoryFactory, oauth portssvc.GoogleOAuthSvcFacade, accrual portssvc.AccrualSvcFacade) portssvc.BatchSvcFacade {
	return &batchService{users: users, tenants: tenants, oauth: oauth, accrual: accrual}
}

var _ portssvc.BatchSvcFacade = (*batchService)(nil)

// RunDailyAccrual implements portssvc.BatchSvcFacade. Per-tenant and per-debt
// failures are logged and counted, never fatal to the batch.
func (s *batchService) RunDailyAccrual(ctx context.Context, now time.Time) dto.BatchSummary {
	logger := middleware.GetLoggerFromCtx(ctx)
	today := dates.Normalize(now)
	summary := dto.BatchSummary{}

	users, err := s.users.ListUsers(ctx)
	if err != nil {
		logger.Error("Batch aborted: cannot list users", slog.String("error", err.Error()))
		summary.Errored++
		return summary
	}

	for i := range users {
		user := users[i]
		summary.UsersTotal++
		userLogger := logger.With(slog.String("user_id", user.UserID))

		if !user.HasLinkedStorage() {
			summary.UsersSkipped++
			continue
		}

		// Credential probe: refresh when the cached access token is missing or
		// expired, and persist the refreshed credential.
		if user.GoogleAccessToken == "" || user.GoogleTokenExpiry == nil || !user.GoogleTokenExpiry.After(now) {
			token, err := s.oauth.RefreshAccessToken(ctx, user.GoogleRefreshToken)
			if err != nil {
				userLogger.Warn("Skipping user: credential refresh failed", slog.String("error", err.Error()))
				summary.UsersSkipped++
				summary.Errored++
				continue
			}
			user.GoogleAccessToken = token.AccessToken
			user.GoogleTokenExpiry = &token.Expiry
			if token.RefreshToken != "" {
				user.GoogleRefreshToken = token.RefreshToken
			}
			if err := s.users.UpdateUser(ctx, user); err != nil {
				userLogger.Warn("Failed to persist refreshed credential", slog.String("error", err.Error()))
				summary.Errored++
				// The in-memory token is still usable for this run.
			}
		}

		repos, err := s.tenants.ForUser(ctx, user)
		if err != nil {
			userLogger.Warn("Skipping user: tenant repositories unavailable", slog.String("error", err.Error()))
			summary.UsersSkipped++
			summary.Errored++
			continue
		}

		debts, err := repos.Debts.ListDebts(ctx)
		if err != nil {
			userLogger.Warn("Skipping user: cannot list debts", slog.String("error", err.Error()))
			summary.Errored++
			continue
		}

		for j := range debts {
			debt := debts[j]
			if !debt.Active || !debt.HasCutOffDay() {
				continue
			}
			if dates.ClampDayToMonth(today.Year(), today.Month(), debt.CutOffDay) != today.Day() {
				continue
			}

			result, err := s.accrual.AccrueForTenant(ctx, repos, debt.DebtID, dto.AccrueRequest{})
			if err != nil {
				userLogger.Warn("Accrual failed",
					slog.String("debt_id", debt.DebtID), slog.String("error", err.Error()))
				summary.Errored++
				continue
			}
			if result.Skipped {
				summary.Skipped++
			} else {
				summary.Processed++
			}
		}
	}

	logger.Info("Daily accrual batch finished",
		slog.Int("users_total", summary.UsersTotal),
		slog.Int("users_skipped", summary.UsersSkipped),
		slog.Int("processed", summary.Processed),
		slog.Int("skipped", summary.Skipped),
		slog.Int("errored", summary.Errored),
	)
	return summary
}
