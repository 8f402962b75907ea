package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"assetmanagement/internal/domain"
	"assetmanagement/internal/domain/models"
	"assetmanagement/internal/domain/repositories"
	"assetmanagement/internal/domain/services"
)

// categoryService implements the CategoryService interface
type categoryService struct {
	categoryRepo repositories.CategoryRepository
	assetRepo    repositories.AssetRepository
	txManager    repositories.TransactionManager
	authorizer   services.ResourceAuthorizer
	quota        services.QuotaEnforcer
	logger       *slog.Logger
}

// NewCategoryService creates a new category service
func NewCategoryService(
	categoryRepo repositories.CategoryRepository,
	assetRepo repositories.AssetRepository,
	txManager repositories.TransactionManager,
	authorizer services.ResourceAuthorizer,
	quota services.QuotaEnforcer,
	logger *slog.Logger,
) services.CategoryService {
	return &categoryService{
		categoryRepo: categoryRepo,
		assetRepo:    assetRepo,
		txManager:    txManager,
		authorizer:   authorizer,
		quota:        quota,
		logger:       logger,
	}
}

// CreateCategory creates a category and links the requested assets to it
func (s *categoryService) CreateCategory(ctx context.Context, principal *models.Principal, accountID int, req *services.CreateCategoryRequest) (*models.Category, error) {
	if err := validateCategoryName(req.Name); err != nil {
		return nil, err
	}

	if err := s.authorizer.CanAccessAccount(ctx, principal, accountID); err != nil {
		return nil, err
	}

	if err := s.quota.MayCreate(ctx, accountID, models.ResourceCategory); err != nil {
		return nil, err
	}

	category := &models.Category{
		Name:      strings.TrimSpace(req.Name),
		AccountID: accountID,
		AssetIDs:  []int{},
	}

	err := s.txManager.ExecTx(ctx, func(txCtx context.Context) error {
		if err := s.categoryRepo.Create(txCtx, category); err != nil {
			return err
		}

		for _, assetID := range distinct(req.AssetIDs) {
			asset, err := s.assetRepo.GetByID(txCtx, assetID)
			if err != nil {
				return err
			}
			if err := s.categoryRepo.LinkAsset(txCtx, category.ID, asset.ID); err != nil {
				return fmt.Errorf("link asset %d: %w", asset.ID, err)
			}
			category.AssetIDs = append(category.AssetIDs, asset.ID)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("category created",
		"id", category.ID,
		"name", category.Name,
		"account_id", accountID,
		"assets", len(category.AssetIDs),
		"principal_id", principal.ID,
	)

	return category, nil
}

// GetCategory retrieves a category by ID
func (s *categoryService) GetCategory(ctx context.Context, principal *models.Principal, id int) (*models.Category, error) {
	if principal == nil {
		return nil, domain.ErrUnauthorized
	}

	category, err := s.categoryRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.authorizer.CanAccessAccount(ctx, principal, category.AccountID); err != nil {
		return nil, err
	}

	return category, nil
}

// ListByAccount retrieves all categories of an account
func (s *categoryService) ListByAccount(ctx context.Context, principal *models.Principal, accountID int) ([]models.Category, error) {
	if err := s.authorizer.CanAccessAccount(ctx, principal, accountID); err != nil {
		return nil, err
	}

	return s.categoryRepo.ListByAccount(ctx, accountID)
}

// UpdateCategory renames a category
func (s *categoryService) UpdateCategory(ctx context.Context, principal *models.Principal, id int, req *services.UpdateCategoryRequest) (*models.Category, error) {
	if err := validateCategoryName(req.Name); err != nil {
		return nil, err
	}

	if principal == nil {
		return nil, domain.ErrUnauthorized
	}

	category, err := s.categoryRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.authorizer.CanAccessAccount(ctx, principal, category.AccountID); err != nil {
		return nil, err
	}

	// Only the name changes; account and asset set come from the stored category
	category.Name = strings.TrimSpace(req.Name)

	if err := s.categoryRepo.Update(ctx, category); err != nil {
		return nil, err
	}

	s.logger.Info("category updated",
		"id", category.ID,
		"name", category.Name,
		"principal_id", principal.ID,
	)

	return category, nil
}

// DeleteCategory deletes a category. Categories that still hold assets are kept.
func (s *categoryService) DeleteCategory(ctx context.Context, principal *models.Principal, id int) error {
	if principal == nil {
		return domain.ErrUnauthorized
	}

	category, err := s.categoryRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.authorizer.CanAccessAccount(ctx, principal, category.AccountID); err != nil {
		return err
	}

	if len(category.AssetIDs) > 0 {
		return fmt.Errorf("category %d still has %d assets: %w", id, len(category.AssetIDs), domain.ErrForbidden)
	}

	if err := s.categoryRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info("category deleted",
		"id", id,
		"account_id", category.AccountID,
		"principal_id", principal.ID,
	)

	return nil
}
