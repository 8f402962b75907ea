package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"assetmanagement/internal/domain"
	"assetmanagement/internal/domain/models"
	"assetmanagement/internal/domain/repositories"
	"assetmanagement/internal/domain/services"
	"assetmanagement/internal/metrics"

	"golang.org/x/sync/errgroup"
)

// AccountAuthorizer implements ResourceAuthorizer using account membership.
// A principal can access a resource if it is one of the users the account
// service associates with the owning account, or if it holds the admin role.
//
// Membership is fetched on every call; nothing is cached.
type AccountAuthorizer struct {
	accounts  services.AccountDirectory
	assetRepo repositories.AssetRepository
	logger    *slog.Logger
}

// NewAccountAuthorizer creates a new membership-based authorizer
func NewAccountAuthorizer(
	accounts services.AccountDirectory,
	assetRepo repositories.AssetRepository,
	logger *slog.Logger,
) *AccountAuthorizer {
	return &AccountAuthorizer{
		accounts:  accounts,
		assetRepo: assetRepo,
		logger:    logger,
	}
}

// MayAccess is the access decision itself: membership or admin role.
func MayAccess(principal *models.Principal, members []string) bool {
	if principal == nil {
		return false
	}
	if principal.IsAdmin() {
		return true
	}
	for _, id := range members {
		if id == principal.ID {
			return true
		}
	}
	return false
}

// CanAccessAccount checks if the principal may act on resources of the account
func (a *AccountAuthorizer) CanAccessAccount(ctx context.Context, principal *models.Principal, accountID int) error {
	if principal == nil {
		return a.deny("unauthenticated", domain.ErrUnauthorized)
	}

	members, err := a.members(ctx, accountID)
	if err != nil {
		return a.deny("not_found", err)
	}

	if !MayAccess(principal, members) {
		a.logger.Debug("account access denied",
			"principal_id", principal.ID,
			"account_id", accountID,
		)
		return a.deny("forbidden", fmt.Errorf("access denied to account %d: %w", accountID, domain.ErrForbidden))
	}

	metrics.AuthorizationDecisions.WithLabelValues("granted").Inc()
	return nil
}

// CanAccessAsset checks if the principal may modify an asset (via its account)
func (a *AccountAuthorizer) CanAccessAsset(ctx context.Context, principal *models.Principal, assetID int) error {
	if principal == nil {
		return a.deny("unauthenticated", domain.ErrUnauthorized)
	}

	asset, err := a.assetRepo.GetByID(ctx, assetID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return a.deny("not_found", err)
		}
		return fmt.Errorf("get asset for auth: %w", err)
	}

	return a.CanAccessAccount(ctx, principal, asset.AccountID)
}

// CanAccessAnyAccount grants access when the principal is a member of at least one of
// the accounts, or is an admin. Every account must resolve; a single failed lookup
// is reported as not found.
func (a *AccountAuthorizer) CanAccessAnyAccount(ctx context.Context, principal *models.Principal, accountIDs []int) error {
	if principal == nil {
		return a.deny("unauthenticated", domain.ErrUnauthorized)
	}

	distinct := distinctIDs(accountIDs)
	memberLists := make([][]string, len(distinct))

	g, gctx := errgroup.WithContext(ctx)
	for i, accountID := range distinct {
		g.Go(func() error {
			members, err := a.members(gctx, accountID)
			if err != nil {
				return err
			}
			memberLists[i] = members
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return a.deny("not_found", err)
	}

	var union []string
	for _, members := range memberLists {
		union = append(union, members...)
	}

	if !MayAccess(principal, union) {
		return a.deny("forbidden", fmt.Errorf("access denied to accounts %v: %w", distinct, domain.ErrForbidden))
	}

	metrics.AuthorizationDecisions.WithLabelValues("granted").Inc()
	return nil
}

// members fetches the account's users. A failed lookup and an empty list both
// mean the account could not be resolved.
func (a *AccountAuthorizer) members(ctx context.Context, accountID int) ([]string, error) {
	members, err := a.accounts.UsersForAccount(ctx, accountID)
	if err != nil || len(members) == 0 {
		a.logger.Debug("account users unavailable", "account_id", accountID, "error", err)
		return nil, &domain.AccountNotFoundError{AccountID: accountID}
	}
	return members, nil
}

func (a *AccountAuthorizer) deny(result string, err error) error {
	metrics.AuthorizationDecisions.WithLabelValues(result).Inc()
	return err
}

func distinctIDs(ids []int) []int {
	seen := make(map[int]struct{}, len(ids))
	out := make([]int, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
