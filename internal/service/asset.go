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

// assetService implements the AssetService interface
type assetService struct {
	assetRepo    repositories.AssetRepository
	categoryRepo repositories.CategoryRepository
	txManager    repositories.TransactionManager
	authorizer   services.ResourceAuthorizer
	quota        services.QuotaEnforcer
	logger       *slog.Logger
}

// NewAssetService creates a new asset service
func NewAssetService(
	assetRepo repositories.AssetRepository,
	categoryRepo repositories.CategoryRepository,
	txManager repositories.TransactionManager,
	authorizer services.ResourceAuthorizer,
	quota services.QuotaEnforcer,
	logger *slog.Logger,
) services.AssetService {
	return &assetService{
		assetRepo:    assetRepo,
		categoryRepo: categoryRepo,
		txManager:    txManager,
		authorizer:   authorizer,
		quota:        quota,
		logger:       logger,
	}
}

// CreateAsset creates an asset and adds it to every requested category
func (s *assetService) CreateAsset(ctx context.Context, principal *models.Principal, accountID int, req *services.CreateAssetRequest) (*models.Asset, error) {
	if err := validateAssetFields(req.Name, req.Kind, req.Size, req.URL); err != nil {
		return nil, err
	}

	if err := s.authorizer.CanAccessAccount(ctx, principal, accountID); err != nil {
		return nil, err
	}

	// Quota is checked against the count before the insert
	if err := s.quota.MayCreate(ctx, accountID, models.ResourceAsset); err != nil {
		return nil, err
	}

	// ID is always assigned by the store
	asset := &models.Asset{
		Name:       strings.TrimSpace(req.Name),
		Kind:       req.Kind,
		Size:       *req.Size,
		URL:        req.URL,
		ProductIDs: distinct(req.ProductIDs),
		AccountID:  accountID,
	}

	err := s.txManager.ExecTx(ctx, func(txCtx context.Context) error {
		if err := s.assetRepo.Create(txCtx, asset); err != nil {
			return err
		}

		refs, err := s.linkCategories(txCtx, asset.ID, distinct(req.CategoryIDs))
		if err != nil {
			return err
		}
		asset.Categories = refs
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("asset created",
		"id", asset.ID,
		"account_id", accountID,
		"categories", len(asset.Categories),
		"principal_id", principal.ID,
	)

	return asset, nil
}

// GetAsset retrieves an asset by ID
func (s *assetService) GetAsset(ctx context.Context, principal *models.Principal, id int) (*models.Asset, error) {
	if principal == nil {
		return nil, domain.ErrUnauthorized
	}

	asset, err := s.assetRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.authorizer.CanAccessAccount(ctx, principal, asset.AccountID); err != nil {
		return nil, err
	}

	return asset, nil
}

// ListByAccount retrieves all assets of an account
func (s *assetService) ListByAccount(ctx context.Context, principal *models.Principal, accountID int) ([]models.Asset, error) {
	if err := s.authorizer.CanAccessAccount(ctx, principal, accountID); err != nil {
		return nil, err
	}

	return s.assetRepo.ListByAccount(ctx, accountID)
}

// ListByCategory retrieves all assets linked to a category.
// An empty result is reported as not found, whether or not the category exists.
func (s *assetService) ListByCategory(ctx context.Context, principal *models.Principal, categoryID int) ([]models.Asset, error) {
	if principal == nil {
		return nil, domain.ErrUnauthorized
	}

	assets, err := s.assetRepo.ListByCategory(ctx, categoryID)
	if err != nil {
		return nil, err
	}
	if len(assets) == 0 {
		return nil, fmt.Errorf("assets of category %d: %w", categoryID, domain.ErrNotFound)
	}

	if err := s.authorizer.CanAccessAnyAccount(ctx, principal, owningAccounts(assets)); err != nil {
		return nil, err
	}

	return assets, nil
}

// ListByProduct retrieves all assets referencing a product.
// An empty result is reported as not found.
func (s *assetService) ListByProduct(ctx context.Context, principal *models.Principal, productID int) ([]models.Asset, error) {
	if principal == nil {
		return nil, domain.ErrUnauthorized
	}

	assets, err := s.assetRepo.ListByProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	if len(assets) == 0 {
		return nil, fmt.Errorf("assets of product %d: %w", productID, domain.ErrNotFound)
	}

	if err := s.authorizer.CanAccessAnyAccount(ctx, principal, owningAccounts(assets)); err != nil {
		return nil, err
	}

	return assets, nil
}

// UpdateAsset replaces the asset's fields, its category set and its product set.
// The owning account never changes.
func (s *assetService) UpdateAsset(ctx context.Context, principal *models.Principal, id int, req *services.UpdateAssetRequest) (*models.Asset, error) {
	if err := validateAssetFields(req.Name, req.Kind, req.Size, req.URL); err != nil {
		return nil, err
	}

	if principal == nil {
		return nil, domain.ErrUnauthorized
	}

	asset, err := s.assetRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.authorizer.CanAccessAsset(ctx, principal, id); err != nil {
		return nil, err
	}

	asset.Name = strings.TrimSpace(req.Name)
	asset.Kind = req.Kind
	asset.Size = *req.Size
	asset.URL = req.URL
	asset.ProductIDs = distinct(req.ProductIDs)

	wanted := distinct(req.CategoryIDs)
	previous := asset.CategoryIDs()

	err = s.txManager.ExecTx(ctx, func(txCtx context.Context) error {
		if err := s.assetRepo.Update(txCtx, asset); err != nil {
			return err
		}

		for _, categoryID := range previous {
			if contains(wanted, categoryID) {
				continue
			}
			if err := s.categoryRepo.UnlinkAsset(txCtx, categoryID, asset.ID); err != nil {
				return fmt.Errorf("unlink asset from category %d: %w", categoryID, err)
			}
		}

		refs, err := s.linkCategories(txCtx, asset.ID, wanted)
		if err != nil {
			return err
		}
		asset.Categories = refs
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("asset updated",
		"id", asset.ID,
		"account_id", asset.AccountID,
		"categories", len(asset.Categories),
		"principal_id", principal.ID,
	)

	return asset, nil
}

// DeleteAsset removes the asset from each linked category, then deletes it
func (s *assetService) DeleteAsset(ctx context.Context, principal *models.Principal, id int) error {
	if principal == nil {
		return domain.ErrUnauthorized
	}

	asset, err := s.assetRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.authorizer.CanAccessAsset(ctx, principal, id); err != nil {
		return err
	}

	err = s.txManager.ExecTx(ctx, func(txCtx context.Context) error {
		for _, ref := range asset.Categories {
			// Reload the owning side before changing its asset set
			category, err := s.categoryRepo.GetByID(txCtx, ref.ID)
			if err != nil {
				return err
			}
			if err := s.categoryRepo.UnlinkAsset(txCtx, category.ID, asset.ID); err != nil {
				return fmt.Errorf("unlink asset from category %d: %w", category.ID, err)
			}
		}
		return s.assetRepo.Delete(txCtx, asset.ID)
	})
	if err != nil {
		return err
	}

	s.logger.Info("asset deleted",
		"id", id,
		"account_id", asset.AccountID,
		"principal_id", principal.ID,
	)

	return nil
}

// linkCategories loads each category from the store (the request only carries ids)
// and adds the asset to it. A missing category aborts with ErrNotFound.
func (s *assetService) linkCategories(ctx context.Context, assetID int, categoryIDs []int) ([]models.CategoryRef, error) {
	refs := make([]models.CategoryRef, 0, len(categoryIDs))
	for _, categoryID := range categoryIDs {
		category, err := s.categoryRepo.GetByID(ctx, categoryID)
		if err != nil {
			return nil, err
		}
		if err := s.categoryRepo.LinkAsset(ctx, category.ID, assetID); err != nil {
			return nil, fmt.Errorf("link asset to category %d: %w", category.ID, err)
		}
		refs = append(refs, category.Ref())
	}
	return refs, nil
}

// owningAccounts returns the distinct account ids of the assets
func owningAccounts(assets []models.Asset) []int {
	ids := make([]int, 0, len(assets))
	for _, a := range assets {
		ids = append(ids, a.AccountID)
	}
	return distinct(ids)
}

func contains(ids []int, id int) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}
