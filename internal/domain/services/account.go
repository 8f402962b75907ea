package services

import "context"

// AccountDirectory is the remote account authority.
// A non-nil error means no value could be obtained; it never means "zero".
type AccountDirectory interface {
	// UsersForAccount returns the ids of the users associated with the account
	UsersForAccount(ctx context.Context, accountID int) ([]string, error)

	// MaxAssets returns the plan's maximum number of assets for the account
	MaxAssets(ctx context.Context, accountID int) (int, error)

	// MaxCategories returns the plan's maximum number of asset categories for the account
	MaxCategories(ctx context.Context, accountID int) (int, error)
}
