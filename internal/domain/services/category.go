package services

import (
	"context"

	"assetmanagement/internal/domain/models"
)

// CreateCategoryRequest represents a request to create a category
type CreateCategoryRequest struct {
	Name     string `json:"name"`
	AssetIDs []int  `json:"asset_ids,omitempty"`
}

// UpdateCategoryRequest represents a request to rename a category
type UpdateCategoryRequest struct {
	Name string `json:"name"`
}

// CategoryService defines business logic operations for categories
type CategoryService interface {
	// CreateCategory creates a category under the account and links the requested assets
	CreateCategory(ctx context.Context, principal *models.Principal, accountID int, req *CreateCategoryRequest) (*models.Category, error)

	// GetCategory retrieves a category by ID
	GetCategory(ctx context.Context, principal *models.Principal, id int) (*models.Category, error)

	// ListByAccount retrieves all categories of an account
	ListByAccount(ctx context.Context, principal *models.Principal, accountID int) ([]models.Category, error)

	// UpdateCategory renames a category; account and assets are preserved
	UpdateCategory(ctx context.Context, principal *models.Principal, id int, req *UpdateCategoryRequest) (*models.Category, error)

	// DeleteCategory deletes a category that has no assets
	DeleteCategory(ctx context.Context, principal *models.Principal, id int) error
}
