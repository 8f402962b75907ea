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

// PostgresAssetRepository implements the AssetRepository interface
type PostgresAssetRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
	logger *slog.Logger
}

// NewAssetRepository creates a new asset repository
func NewAssetRepository(config *RepositoryConfig) repositories.AssetRepository {
	return &PostgresAssetRepository{
		pool:   config.Pool,
		tables: config.Tables,
		logger: config.Logger,
	}
}

const assetColumns = "a.id, a.name, a.kind, a.size, a.url, a.account_id"

// Create inserts the asset row and its product ids
func (r *PostgresAssetRepository) Create(ctx context.Context, asset *models.Asset) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (name, kind, size, url, account_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`, r.tables.Assets)

	executor := GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query,
		asset.Name,
		asset.Kind,
		asset.Size,
		asset.URL,
		asset.AccountID,
	).Scan(&asset.ID)
	if err != nil {
		return fmt.Errorf("create asset: %w", err)
	}

	if err := r.insertProducts(ctx, asset.ID, asset.ProductIDs); err != nil {
		return err
	}

	return nil
}

// GetByID retrieves an asset with its product ids and categories
func (r *PostgresAssetRepository) GetByID(ctx context.Context, id int) (*models.Asset, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s a
		WHERE a.id = $1
	`, assetColumns, r.tables.Assets)

	assets, err := r.queryAssets(ctx, query, id)
	if err != nil {
		return nil, fmt.Errorf("get asset: %w", err)
	}
	if len(assets) == 0 {
		return nil, fmt.Errorf("asset %d: %w", id, domain.ErrNotFound)
	}

	return &assets[0], nil
}

// Update overwrites the scalar fields and replaces the product ids
func (r *PostgresAssetRepository) Update(ctx context.Context, asset *models.Asset) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET name = $1, kind = $2, size = $3, url = $4
		WHERE id = $5
	`, r.tables.Assets)

	executor := GetExecutor(ctx, r.pool)
	result, err := executor.Exec(ctx, query,
		asset.Name,
		asset.Kind,
		asset.Size,
		asset.URL,
		asset.ID,
	)
	if err != nil {
		return fmt.Errorf("update asset: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("asset %d: %w", asset.ID, domain.ErrNotFound)
	}

	deleteQuery := fmt.Sprintf(`DELETE FROM %s WHERE asset_id = $1`, r.tables.AssetProducts)
	if _, err := executor.Exec(ctx, deleteQuery, asset.ID); err != nil {
		return fmt.Errorf("clear asset products: %w", err)
	}

	return r.insertProducts(ctx, asset.ID, asset.ProductIDs)
}

// Delete removes the asset; product ids and category links cascade
func (r *PostgresAssetRepository) Delete(ctx context.Context, id int) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE id = $1`, r.tables.Assets)

	executor := GetExecutor(ctx, r.pool)
	result, err := executor.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete asset: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("asset %d: %w", id, domain.ErrNotFound)
	}

	return nil
}

// ListByAccount retrieves all assets of an account ordered by id
func (r *PostgresAssetRepository) ListByAccount(ctx context.Context, accountID int) ([]models.Asset, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s a
		WHERE a.account_id = $1
		ORDER BY a.id
	`, assetColumns, r.tables.Assets)

	assets, err := r.queryAssets(ctx, query, accountID)
	if err != nil {
		return nil, fmt.Errorf("list assets by account: %w", err)
	}
	return assets, nil
}

// ListByCategory retrieves all assets linked to a category ordered by id
func (r *PostgresAssetRepository) ListByCategory(ctx context.Context, categoryID int) ([]models.Asset, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s a
		JOIN %s ac ON ac.asset_id = a.id
		WHERE ac.category_id = $1
		ORDER BY a.id
	`, assetColumns, r.tables.Assets, r.tables.AssetCategories)

	assets, err := r.queryAssets(ctx, query, categoryID)
	if err != nil {
		return nil, fmt.Errorf("list assets by category: %w", err)
	}
	return assets, nil
}

// ListByProduct retrieves all assets referencing a product ordered by id
func (r *PostgresAssetRepository) ListByProduct(ctx context.Context, productID int) ([]models.Asset, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s a
		JOIN %s ap ON ap.asset_id = a.id
		WHERE ap.product_id = $1
		ORDER BY a.id
	`, assetColumns, r.tables.Assets, r.tables.AssetProducts)

	assets, err := r.queryAssets(ctx, query, productID)
	if err != nil {
		return nil, fmt.Errorf("list assets by product: %w", err)
	}
	return assets, nil
}

// CountByAccount returns the number of assets stored for an account
func (r *PostgresAssetRepository) CountByAccount(ctx context.Context, accountID int) (int, error) {
	query := fmt.Sprintf(`SELECT COUNT(*) FROM %s WHERE account_id = $1`, r.tables.Assets)

	var count int
	executor := GetExecutor(ctx, r.pool)
	if err := executor.QueryRow(ctx, query, accountID).Scan(&count); err != nil {
		return 0, fmt.Errorf("count assets: %w", err)
	}
	return count, nil
}

func (r *PostgresAssetRepository) insertProducts(ctx context.Context, assetID int, productIDs []int) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (asset_id, product_id)
		VALUES ($1, $2)
		ON CONFLICT DO NOTHING
	`, r.tables.AssetProducts)

	executor := GetExecutor(ctx, r.pool)
	for _, productID := range productIDs {
		if _, err := executor.Exec(ctx, query, assetID, productID); err != nil {
			return fmt.Errorf("insert asset product: %w", err)
		}
	}
	return nil
}

// queryAssets runs an asset query and loads product ids and categories for the result
func (r *PostgresAssetRepository) queryAssets(ctx context.Context, query string, args ...interface{}) ([]models.Asset, error) {
	executor := GetExecutor(ctx, r.pool)
	rows, err := executor.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}

	assets, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.Asset, error) {
		var a models.Asset
		err := row.Scan(&a.ID, &a.Name, &a.Kind, &a.Size, &a.URL, &a.AccountID)
		a.ProductIDs = []int{}
		a.Categories = []models.CategoryRef{}
		return a, err
	})
	if err != nil {
		return nil, fmt.Errorf("scan assets: %w", err)
	}

	if len(assets) == 0 {
		return []models.Asset{}, nil
	}

	if err := r.loadRelations(ctx, assets); err != nil {
		return nil, err
	}
	return assets, nil
}

// loadRelations fills ProductIDs and Categories for the given assets
func (r *PostgresAssetRepository) loadRelations(ctx context.Context, assets []models.Asset) error {
	ids := make([]int, len(assets))
	index := make(map[int]int, len(assets))
	for i, a := range assets {
		ids[i] = a.ID
		index[a.ID] = i
	}

	executor := GetExecutor(ctx, r.pool)

	productQuery := fmt.Sprintf(`
		SELECT asset_id, product_id
		FROM %s
		WHERE asset_id = ANY($1)
		ORDER BY asset_id, product_id
	`, r.tables.AssetProducts)

	rows, err := executor.Query(ctx, productQuery, ids)
	if err != nil {
		return fmt.Errorf("load asset products: %w", err)
	}
	products, err := pgx.CollectRows(rows, scanLink)
	if err != nil {
		return fmt.Errorf("scan asset products: %w", err)
	}
	for _, p := range products {
		i := index[p.ownerID]
		assets[i].ProductIDs = append(assets[i].ProductIDs, p.targetID)
	}

	categoryQuery := fmt.Sprintf(`
		SELECT ac.asset_id, c.id, c.name
		FROM %s ac
		JOIN %s c ON c.id = ac.category_id
		WHERE ac.asset_id = ANY($1)
		ORDER BY ac.asset_id, c.id
	`, r.tables.AssetCategories, r.tables.Categories)

	rows, err = executor.Query(ctx, categoryQuery, ids)
	if err != nil {
		return fmt.Errorf("load asset categories: %w", err)
	}
	type assetCategory struct {
		assetID int
		ref     models.CategoryRef
	}
	linked, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (assetCategory, error) {
		var ac assetCategory
		err := row.Scan(&ac.assetID, &ac.ref.ID, &ac.ref.Name)
		return ac, err
	})
	if err != nil {
		return fmt.Errorf("scan asset categories: %w", err)
	}
	for _, ac := range linked {
		i := index[ac.assetID]
		assets[i].Categories = append(assets[i].Categories, ac.ref)
	}

	return nil
}
