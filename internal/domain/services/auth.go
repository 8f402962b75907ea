package services

import (
	"context"

	"assetmanagement/internal/domain/models"
)

// ResourceAuthorizer checks whether a principal may act on account-scoped resources.
// Every method returns nil when access is granted, or an error matching
// domain.ErrUnauthorized (no principal), domain.ErrNotFound (resource or account
// unknown) or domain.ErrForbidden.
//
// Services call the authorizer before touching the store.
type ResourceAuthorizer interface {
	// CanAccessAccount checks membership of the principal in the account (or admin role)
	CanAccessAccount(ctx context.Context, principal *models.Principal, accountID int) error

	// CanAccessAsset checks access to the account that owns the asset
	CanAccessAsset(ctx context.Context, principal *models.Principal, assetID int) error

	// CanAccessAnyAccount grants access when the principal may access at least one of the accounts
	CanAccessAnyAccount(ctx context.Context, principal *models.Principal, accountIDs []int) error
}

// QuotaEnforcer decides whether an account may hold one more resource of a kind
type QuotaEnforcer interface {
	// CurrentCount returns the number of stored resources of the kind for the account
	CurrentCount(ctx context.Context, accountID int, kind models.ResourceKind) (int, error)

	// MayCreate returns an error matching domain.ErrForbidden when the quota is
	// exhausted or the plan limit cannot be fetched
	MayCreate(ctx context.Context, accountID int, kind models.ResourceKind) error
}
