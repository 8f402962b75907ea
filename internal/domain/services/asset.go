package services

import (
	"context"

	"assetmanagement/internal/domain/models"
)

// CreateAssetRequest represents a request to create an asset.
// Size is a pointer so a missing value can be told apart from zero.
type CreateAssetRequest struct {
	Name        string  `json:"name"`
	Kind        *string `json:"kind,omitempty"`
	Size        *int    `json:"size"`
	URL         *string `json:"url,omitempty"`
	CategoryIDs []int   `json:"category_ids"`
	ProductIDs  []int   `json:"product_ids"`
}

// UpdateAssetRequest replaces the mutable fields of an asset
type UpdateAssetRequest struct {
	Name        string  `json:"name"`
	Kind        *string `json:"kind,omitempty"`
	Size        *int    `json:"size"`
	URL         *string `json:"url,omitempty"`
	CategoryIDs []int   `json:"category_ids"`
	ProductIDs  []int   `json:"product_ids"`
}

// AssetService defines business logic operations for assets
type AssetService interface {
	// CreateAsset creates an asset under the account and links it to the requested categories
	CreateAsset(ctx context.Context, principal *models.Principal, accountID int, req *CreateAssetRequest) (*models.Asset, error)

	// GetAsset retrieves an asset by ID
	GetAsset(ctx context.Context, principal *models.Principal, id int) (*models.Asset, error)

	// ListByAccount retrieves all assets of an account
	ListByAccount(ctx context.Context, principal *models.Principal, accountID int) ([]models.Asset, error)

	// ListByCategory retrieves all assets linked to a category
	ListByCategory(ctx context.Context, principal *models.Principal, categoryID int) ([]models.Asset, error)

	// ListByProduct retrieves all assets referencing a product
	ListByProduct(ctx context.Context, principal *models.Principal, productID int) ([]models.Asset, error)

	// UpdateAsset replaces an asset's fields, category set and product set
	UpdateAsset(ctx context.Context, principal *models.Principal, id int, req *UpdateAssetRequest) (*models.Asset, error)

	// DeleteAsset unlinks an asset from its categories and deletes it
	DeleteAsset(ctx context.Context, principal *models.Principal, id int) error
}
