package service

import (
	"context"
	"fmt"
	"log/slog"

	"assetmanagement/internal/domain"
	"assetmanagement/internal/domain/models"
	"assetmanagement/internal/domain/repositories"
	"assetmanagement/internal/domain/services"
	"assetmanagement/internal/metrics"
)

// quotaEnforcer implements the QuotaEnforcer interface against the account's plan
type quotaEnforcer struct {
	accounts     services.AccountDirectory
	assetRepo    repositories.AssetRepository
	categoryRepo repositories.CategoryRepository
	logger       *slog.Logger
}

// NewQuotaEnforcer creates a new plan-based quota enforcer
func NewQuotaEnforcer(
	accounts services.AccountDirectory,
	assetRepo repositories.AssetRepository,
	categoryRepo repositories.CategoryRepository,
	logger *slog.Logger,
) services.QuotaEnforcer {
	return &quotaEnforcer{
		accounts:     accounts,
		assetRepo:    assetRepo,
		categoryRepo: categoryRepo,
		logger:       logger,
	}
}

// WithinQuota reports whether one more resource fits: reaching the limit forbids the next one.
func WithinQuota(current, limit int) bool {
	return current < limit
}

// CurrentCount returns the stored number of resources of the kind
func (q *quotaEnforcer) CurrentCount(ctx context.Context, accountID int, kind models.ResourceKind) (int, error) {
	switch kind {
	case models.ResourceAsset:
		return q.assetRepo.CountByAccount(ctx, accountID)
	case models.ResourceCategory:
		return q.categoryRepo.CountByAccount(ctx, accountID)
	default:
		return 0, fmt.Errorf("unknown resource kind %q", kind)
	}
}

// MayCreate checks the pre-creation count against the plan limit.
// A limit that cannot be fetched forbids creation.
func (q *quotaEnforcer) MayCreate(ctx context.Context, accountID int, kind models.ResourceKind) error {
	limit, err := q.limit(ctx, accountID, kind)
	if err != nil {
		metrics.QuotaDecisions.WithLabelValues(string(kind), "unknown").Inc()
		q.logger.Warn("plan limit unavailable",
			"account_id", accountID,
			"resource", kind,
			"error", err,
		)
		return &domain.QuotaExceededError{AccountID: accountID, Resource: string(kind), Unknown: true}
	}

	current, err := q.CurrentCount(ctx, accountID, kind)
	if err != nil {
		return fmt.Errorf("count %s: %w", kind, err)
	}

	if !WithinQuota(current, limit) {
		metrics.QuotaDecisions.WithLabelValues(string(kind), "exceeded").Inc()
		q.logger.Info("quota exceeded",
			"account_id", accountID,
			"resource", kind,
			"current", current,
			"max", limit,
		)
		return &domain.QuotaExceededError{
			AccountID: accountID,
			Resource:  string(kind),
			Current:   current,
			Max:       limit,
		}
	}

	metrics.QuotaDecisions.WithLabelValues(string(kind), "allowed").Inc()
	return nil
}

func (q *quotaEnforcer) limit(ctx context.Context, accountID int, kind models.ResourceKind) (int, error) {
	switch kind {
	case models.ResourceAsset:
		return q.accounts.MaxAssets(ctx, accountID)
	case models.ResourceCategory:
		return q.accounts.MaxCategories(ctx, accountID)
	default:
		return 0, fmt.Errorf("unknown resource kind %q", kind)
	}
}
