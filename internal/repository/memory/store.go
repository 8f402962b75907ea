// Package memory is an in-process resource store. It backs the tests and
// local runs without a database.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"assetmanagement/internal/domain"
	"assetmanagement/internal/domain/models"
	"assetmanagement/internal/domain/repositories"
)

type link struct {
	categoryID int
	assetID    int
}

type assetRow struct {
	name       string
	kind       *string
	size       int
	url        *string
	productIDs []int
	accountID  int
}

type categoryRow struct {
	name      string
	accountID int
}

// Store holds assets, categories and the asset/category relation.
// The relation is stored once as a set of links; both sides read from it.
type Store struct {
	mu             sync.RWMutex
	assets         map[int]*assetRow
	categories     map[int]*categoryRow
	links          map[link]struct{}
	nextAssetID    int
	nextCategoryID int
}

// NewStore creates an empty store
func NewStore() *Store {
	return &Store{
		assets:         make(map[int]*assetRow),
		categories:     make(map[int]*categoryRow),
		links:          make(map[link]struct{}),
		nextAssetID:    1,
		nextCategoryID: 1,
	}
}

// Assets returns the asset repository view of the store
func (s *Store) Assets() repositories.AssetRepository {
	return &assetRepository{s: s}
}

// Categories returns the category repository view of the store
func (s *Store) Categories() repositories.CategoryRepository {
	return &categoryRepository{s: s}
}

// ExecTx runs fn directly. Writes made before a failure are kept: the memory
// store gives no atomicity across calls.
func (s *Store) ExecTx(ctx context.Context, fn repositories.TxFn) error {
	return fn(ctx)
}

var _ repositories.TransactionManager = (*Store)(nil)

// assetLocked builds the asset model; caller holds the lock
func (s *Store) assetLocked(id int, row *assetRow) models.Asset {
	asset := models.Asset{
		ID:         id,
		Name:       row.name,
		Kind:       row.kind,
		Size:       row.size,
		URL:        row.url,
		ProductIDs: append([]int{}, row.productIDs...),
		AccountID:  row.accountID,
		Categories: []models.CategoryRef{},
	}
	for l := range s.links {
		if l.assetID != id {
			continue
		}
		if c, ok := s.categories[l.categoryID]; ok {
			asset.Categories = append(asset.Categories, models.CategoryRef{ID: l.categoryID, Name: c.name})
		}
	}
	sort.Slice(asset.Categories, func(i, j int) bool { return asset.Categories[i].ID < asset.Categories[j].ID })
	return asset
}

// categoryLocked builds the category model; caller holds the lock
func (s *Store) categoryLocked(id int, row *categoryRow) models.Category {
	category := models.Category{
		ID:        id,
		Name:      row.name,
		AccountID: row.accountID,
		AssetIDs:  []int{},
	}
	for l := range s.links {
		if l.categoryID == id {
			category.AssetIDs = append(category.AssetIDs, l.assetID)
		}
	}
	sort.Ints(category.AssetIDs)
	return category
}

// listAssetsLocked returns matching assets ordered by id; caller holds the lock
func (s *Store) listAssetsLocked(match func(id int, row *assetRow) bool) []models.Asset {
	ids := make([]int, 0)
	for id, row := range s.assets {
		if match(id, row) {
			ids = append(ids, id)
		}
	}
	sort.Ints(ids)

	assets := make([]models.Asset, 0, len(ids))
	for _, id := range ids {
		assets = append(assets, s.assetLocked(id, s.assets[id]))
	}
	return assets
}

type assetRepository struct {
	s *Store
}

func (r *assetRepository) Create(ctx context.Context, asset *models.Asset) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	id := r.s.nextAssetID
	r.s.nextAssetID++

	r.s.assets[id] = &assetRow{
		name:       asset.Name,
		kind:       asset.Kind,
		size:       asset.Size,
		url:        asset.URL,
		productIDs: append([]int{}, asset.ProductIDs...),
		accountID:  asset.AccountID,
	}
	asset.ID = id
	return nil
}

func (r *assetRepository) GetByID(ctx context.Context, id int) (*models.Asset, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	row, ok := r.s.assets[id]
	if !ok {
		return nil, fmt.Errorf("asset %d: %w", id, domain.ErrNotFound)
	}
	asset := r.s.assetLocked(id, row)
	return &asset, nil
}

func (r *assetRepository) Update(ctx context.Context, asset *models.Asset) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	row, ok := r.s.assets[asset.ID]
	if !ok {
		return fmt.Errorf("asset %d: %w", asset.ID, domain.ErrNotFound)
	}
	row.name = asset.Name
	row.kind = asset.Kind
	row.size = asset.Size
	row.url = asset.URL
	row.productIDs = append([]int{}, asset.ProductIDs...)
	return nil
}

func (r *assetRepository) Delete(ctx context.Context, id int) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.assets[id]; !ok {
		return fmt.Errorf("asset %d: %w", id, domain.ErrNotFound)
	}
	delete(r.s.assets, id)
	// Same as the ON DELETE CASCADE of the join table
	for l := range r.s.links {
		if l.assetID == id {
			delete(r.s.links, l)
		}
	}
	return nil
}

func (r *assetRepository) ListByAccount(ctx context.Context, accountID int) ([]models.Asset, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	return r.s.listAssetsLocked(func(_ int, row *assetRow) bool {
		return row.accountID == accountID
	}), nil
}

func (r *assetRepository) ListByCategory(ctx context.Context, categoryID int) ([]models.Asset, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	return r.s.listAssetsLocked(func(id int, _ *assetRow) bool {
		_, ok := r.s.links[link{categoryID: categoryID, assetID: id}]
		return ok
	}), nil
}

func (r *assetRepository) ListByProduct(ctx context.Context, productID int) ([]models.Asset, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	return r.s.listAssetsLocked(func(_ int, row *assetRow) bool {
		for _, p := range row.productIDs {
			if p == productID {
				return true
			}
		}
		return false
	}), nil
}

func (r *assetRepository) CountByAccount(ctx context.Context, accountID int) (int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	n := 0
	for _, row := range r.s.assets {
		if row.accountID == accountID {
			n++
		}
	}
	return n, nil
}

type categoryRepository struct {
	s *Store
}

func (r *categoryRepository) Create(ctx context.Context, category *models.Category) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	id := r.s.nextCategoryID
	r.s.nextCategoryID++

	r.s.categories[id] = &categoryRow{
		name:      category.Name,
		accountID: category.AccountID,
	}
	category.ID = id
	return nil
}

func (r *categoryRepository) GetByID(ctx context.Context, id int) (*models.Category, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	row, ok := r.s.categories[id]
	if !ok {
		return nil, fmt.Errorf("category %d: %w", id, domain.ErrNotFound)
	}
	category := r.s.categoryLocked(id, row)
	return &category, nil
}

func (r *categoryRepository) Update(ctx context.Context, category *models.Category) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	row, ok := r.s.categories[category.ID]
	if !ok {
		return fmt.Errorf("category %d: %w", category.ID, domain.ErrNotFound)
	}
	row.name = category.Name
	return nil
}

func (r *categoryRepository) Delete(ctx context.Context, id int) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.categories[id]; !ok {
		return fmt.Errorf("category %d: %w", id, domain.ErrNotFound)
	}
	// Same as the ON DELETE RESTRICT of the join table
	for l := range r.s.links {
		if l.categoryID == id {
			return &domain.ConflictError{
				Message:      fmt.Sprintf("category %d still has assets", id),
				ResourceType: "category",
				ResourceID:   id,
			}
		}
	}
	delete(r.s.categories, id)
	return nil
}

func (r *categoryRepository) ListByAccount(ctx context.Context, accountID int) ([]models.Category, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	ids := make([]int, 0)
	for id, row := range r.s.categories {
		if row.accountID == accountID {
			ids = append(ids, id)
		}
	}
	sort.Ints(ids)

	categories := make([]models.Category, 0, len(ids))
	for _, id := range ids {
		categories = append(categories, r.s.categoryLocked(id, r.s.categories[id]))
	}
	return categories, nil
}

func (r *categoryRepository) CountByAccount(ctx context.Context, accountID int) (int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	n := 0
	for _, row := range r.s.categories {
		if row.accountID == accountID {
			n++
		}
	}
	return n, nil
}

func (r *categoryRepository) LinkAsset(ctx context.Context, categoryID, assetID int) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.categories[categoryID]; !ok {
		return fmt.Errorf("category %d: %w", categoryID, domain.ErrNotFound)
	}
	if _, ok := r.s.assets[assetID]; !ok {
		return fmt.Errorf("asset %d: %w", assetID, domain.ErrNotFound)
	}
	r.s.links[link{categoryID: categoryID, assetID: assetID}] = struct{}{}
	return nil
}

func (r *categoryRepository) UnlinkAsset(ctx context.Context, categoryID, assetID int) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	delete(r.s.links, link{categoryID: categoryID, assetID: assetID})
	return nil
}
