package repositories

import (
	"context"

	"assetmanagement/internal/domain/models"
)

// CategoryRepository defines data access operations for categories.
// The category side owns the asset/category relation, so link
// maintenance lives here.
type CategoryRepository interface {
	// Create inserts the category, assigning a new ID
	Create(ctx context.Context, category *models.Category) error

	// GetByID returns domain.ErrNotFound when the category does not exist.
	// AssetIDs is populated from the relation.
	GetByID(ctx context.Context, id int) (*models.Category, error)

	// Update overwrites the category name
	Update(ctx context.Context, category *models.Category) error

	// Delete removes the category
	Delete(ctx context.Context, id int) error

	// ListByAccount returns all categories of an account (empty slice if none)
	ListByAccount(ctx context.Context, accountID int) ([]models.Category, error)

	// CountByAccount returns the number of stored categories of an account
	CountByAccount(ctx context.Context, accountID int) (int, error)

	// LinkAsset adds the asset to the category's asset set. Linking twice is a no-op.
	LinkAsset(ctx context.Context, categoryID, assetID int) error

	// UnlinkAsset removes the asset from the category's asset set
	UnlinkAsset(ctx context.Context, categoryID, assetID int) error
}
