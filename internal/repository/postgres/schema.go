package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// EnsureSchema creates the tables used by the repositories if they do not exist.
// Deleting an asset cascades to its products and category links; deleting a
// category that still has links fails with a foreign key violation.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool, tables *TableNames) error {
	statements := []string{
		fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				id SERIAL PRIMARY KEY,
				name VARCHAR(255) NOT NULL,
				kind VARCHAR(100),
				size INTEGER NOT NULL CHECK (size >= 0),
				url VARCHAR(2048),
				account_id INTEGER NOT NULL
			)`, tables.Assets),
		fmt.Sprintf(`CREATE INDEX IF NOT EXISTS %s_account_idx ON %s (account_id)`, tables.Assets, tables.Assets),
		fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				asset_id INTEGER NOT NULL REFERENCES %s(id) ON DELETE CASCADE,
				product_id INTEGER NOT NULL,
				PRIMARY KEY (asset_id, product_id)
			)`, tables.AssetProducts, tables.Assets),
		fmt.Sprintf(`CREATE INDEX IF NOT EXISTS %s_product_idx ON %s (product_id)`, tables.AssetProducts, tables.AssetProducts),
		fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				id SERIAL PRIMARY KEY,
				name VARCHAR(255) NOT NULL,
				account_id INTEGER NOT NULL
			)`, tables.Categories),
		fmt.Sprintf(`CREATE INDEX IF NOT EXISTS %s_account_idx ON %s (account_id)`, tables.Categories, tables.Categories),
		fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				category_id INTEGER NOT NULL REFERENCES %s(id) ON DELETE RESTRICT,
				asset_id INTEGER NOT NULL REFERENCES %s(id) ON DELETE CASCADE,
				PRIMARY KEY (category_id, asset_id)
			)`, tables.AssetCategories, tables.Categories, tables.Assets),
		fmt.Sprintf(`CREATE INDEX IF NOT EXISTS %s_asset_idx ON %s (asset_id)`, tables.AssetCategories, tables.AssetCategories),
	}

	for _, stmt := range statements {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}

// DropSchema drops all repository tables, join tables first
func DropSchema(ctx context.Context, pool *pgxpool.Pool, tables *TableNames) error {
	for _, table := range []string{tables.AssetCategories, tables.AssetProducts, tables.Categories, tables.Assets} {
		if _, err := pool.Exec(ctx, "DROP TABLE IF EXISTS "+table+" CASCADE"); err != nil {
			return fmt.Errorf("drop %s: %w", table, err)
		}
	}
	return nil
}
