package postgres

import (
	"context"
	"fmt"
	"log/slog"

	"assetmanagement/internal/domain"
	"assetmanagement/internal/domain/models"
	"assetmanagement/internal/domain/repositories"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresCategoryRepository implements the CategoryRepository interface.
// The asset/category relation lives only in the asset_categories join table.
type PostgresCategoryRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
	logger *slog.Logger
}

// NewCategoryRepository creates a new category repository
func NewCategoryRepository(config *RepositoryConfig) repositories.CategoryRepository {
	return &PostgresCategoryRepository{
		pool:   config.Pool,
		tables: config.Tables,
		logger: config.Logger,
	}
}

// Create inserts a category
func (r *PostgresCategoryRepository) Create(ctx context.Context, category *models.Category) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (name, account_id)
		VALUES ($1, $2)
		RETURNING id
	`, r.tables.Categories)

	executor := GetExecutor(ctx, r.pool)
	if err := executor.QueryRow(ctx, query, category.Name, category.AccountID).Scan(&category.ID); err != nil {
		return fmt.Errorf("create category: %w", err)
	}
	return nil
}

// GetByID retrieves a category and the ids of its assets
func (r *PostgresCategoryRepository) GetByID(ctx context.Context, id int) (*models.Category, error) {
	query := fmt.Sprintf(`
		SELECT id, name, account_id
		FROM %s
		WHERE id = $1
	`, r.tables.Categories)

	var category models.Category
	executor := GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query, id).Scan(
		&category.ID,
		&category.Name,
		&category.AccountID,
	)
	if err != nil {
		if IsPgNoRowsError(err) {
			return nil, fmt.Errorf("category %d: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get category: %w", err)
	}

	categories := []models.Category{category}
	if err := r.loadAssetIDs(ctx, categories); err != nil {
		return nil, err
	}
	return &categories[0], nil
}

// Update renames a category
func (r *PostgresCategoryRepository) Update(ctx context.Context, category *models.Category) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET name = $1
		WHERE id = $2
	`, r.tables.Categories)

	executor := GetExecutor(ctx, r.pool)
	result, err := executor.Exec(ctx, query, category.Name, category.ID)
	if err != nil {
		return fmt.Errorf("update category: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("category %d: %w", category.ID, domain.ErrNotFound)
	}
	return nil
}

// Delete removes a category. The join table restricts deleting categories with assets.
func (r *PostgresCategoryRepository) Delete(ctx context.Context, id int) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE id = $1`, r.tables.Categories)

	executor := GetExecutor(ctx, r.pool)
	result, err := executor.Exec(ctx, query, id)
	if err != nil {
		if IsPgForeignKeyError(err) {
			return &domain.ConflictError{
				Message:      fmt.Sprintf("category %d still has assets", id),
				ResourceType: "category",
				ResourceID:   id,
			}
		}
		return fmt.Errorf("delete category: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("category %d: %w", id, domain.ErrNotFound)
	}
	return nil
}

// ListByAccount retrieves all categories of an account ordered by id
func (r *PostgresCategoryRepository) ListByAccount(ctx context.Context, accountID int) ([]models.Category, error) {
	query := fmt.Sprintf(`
		SELECT id, name, account_id
		FROM %s
		WHERE account_id = $1
		ORDER BY id
	`, r.tables.Categories)

	executor := GetExecutor(ctx, r.pool)
	rows, err := executor.Query(ctx, query, accountID)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}

	categories, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.Category, error) {
		var c models.Category
		err := row.Scan(&c.ID, &c.Name, &c.AccountID)
		return c, err
	})
	if err != nil {
		return nil, fmt.Errorf("scan categories: %w", err)
	}

	if len(categories) == 0 {
		return categories, nil
	}
	if err := r.loadAssetIDs(ctx, categories); err != nil {
		return nil, err
	}
	return categories, nil
}

// CountByAccount returns the number of categories stored for an account
func (r *PostgresCategoryRepository) CountByAccount(ctx context.Context, accountID int) (int, error) {
	query := fmt.Sprintf(`SELECT COUNT(*) FROM %s WHERE account_id = $1`, r.tables.Categories)

	var count int
	executor := GetExecutor(ctx, r.pool)
	if err := executor.QueryRow(ctx, query, accountID).Scan(&count); err != nil {
		return 0, fmt.Errorf("count categories: %w", err)
	}
	return count, nil
}

// LinkAsset inserts a row in the join table; existing links are left alone
func (r *PostgresCategoryRepository) LinkAsset(ctx context.Context, categoryID, assetID int) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (category_id, asset_id)
		VALUES ($1, $2)
		ON CONFLICT DO NOTHING
	`, r.tables.AssetCategories)

	executor := GetExecutor(ctx, r.pool)
	if _, err := executor.Exec(ctx, query, categoryID, assetID); err != nil {
		if IsPgForeignKeyError(err) {
			return fmt.Errorf("link category %d to asset %d: %w", categoryID, assetID, domain.ErrNotFound)
		}
		return fmt.Errorf("link asset: %w", err)
	}
	return nil
}

// UnlinkAsset deletes a row from the join table
func (r *PostgresCategoryRepository) UnlinkAsset(ctx context.Context, categoryID, assetID int) error {
	query := fmt.Sprintf(`
		DELETE FROM %s
		WHERE category_id = $1 AND asset_id = $2
	`, r.tables.AssetCategories)

	executor := GetExecutor(ctx, r.pool)
	if _, err := executor.Exec(ctx, query, categoryID, assetID); err != nil {
		return fmt.Errorf("unlink asset: %w", err)
	}
	return nil
}

// loadAssetIDs fills AssetIDs for the given categories
func (r *PostgresCategoryRepository) loadAssetIDs(ctx context.Context, categories []models.Category) error {
	ids := make([]int, len(categories))
	index := make(map[int]int, len(categories))
	for i := range categories {
		categories[i].AssetIDs = []int{}
		ids[i] = categories[i].ID
		index[categories[i].ID] = i
	}

	query := fmt.Sprintf(`
		SELECT category_id, asset_id
		FROM %s
		WHERE category_id = ANY($1)
		ORDER BY category_id, asset_id
	`, r.tables.AssetCategories)

	executor := GetExecutor(ctx, r.pool)
	rows, err := executor.Query(ctx, query, ids)
	if err != nil {
		return fmt.Errorf("load category assets: %w", err)
	}

	links, err := pgx.CollectRows(rows, scanLink)
	if err != nil {
		return fmt.Errorf("scan category assets: %w", err)
	}
	for _, l := range links {
		i := index[l.ownerID]
		categories[i].AssetIDs = append(categories[i].AssetIDs, l.targetID)
	}
	return nil
}

// idPair is one row of a two-column id relation
type idPair struct {
	ownerID  int
	targetID int
}

func scanLink(row pgx.CollectableRow) (idPair, error) {
	var p idPair
	err := row.Scan(&p.ownerID, &p.targetID)
	return p, err
}
