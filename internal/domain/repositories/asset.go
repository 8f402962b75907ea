package repositories

import (
	"context"

	"assetmanagement/internal/domain/models"
)

// AssetRepository defines data access operations for assets.
// Read operations populate ProductIDs and Categories (id and name).
type AssetRepository interface {
	// Create inserts the asset and its product ids, assigning a new ID.
	// Category links are not written here; see CategoryRepository.LinkAsset.
	Create(ctx context.Context, asset *models.Asset) error

	// GetByID returns domain.ErrNotFound when the asset does not exist
	GetByID(ctx context.Context, id int) (*models.Asset, error)

	// Update overwrites name, kind, size, url and product ids
	Update(ctx context.Context, asset *models.Asset) error

	// Delete removes the asset and its product ids
	Delete(ctx context.Context, id int) error

	// ListByAccount returns all assets of an account (empty slice if none)
	ListByAccount(ctx context.Context, accountID int) ([]models.Asset, error)

	// ListByCategory returns all assets linked to the category
	ListByCategory(ctx context.Context, categoryID int) ([]models.Asset, error)

	// ListByProduct returns all assets referencing the product id
	ListByProduct(ctx context.Context, productID int) ([]models.Asset, error)

	// CountByAccount returns the number of stored assets of an account
	CountByAccount(ctx context.Context, accountID int) (int, error)
}
