package postgres

import (
	"context"
	"fmt"
	"log/slog"

	"assetmanagement/internal/domain/repositories"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// RepositoryConfig holds configuration for repository implementations
type RepositoryConfig struct {
	Pool   *pgxpool.Pool
	Tables *TableNames
	Logger *slog.Logger
}

// TableNames holds dynamically prefixed table names
type TableNames struct {
	Assets          string
	AssetProducts   string
	Categories      string
	AssetCategories string // join table, owned by the category side
}

// NewTableNames creates table names with the given prefix
func NewTableNames(prefix string) *TableNames {
	return &TableNames{
		Assets:          fmt.Sprintf("%sassets", prefix),
		AssetProducts:   fmt.Sprintf("%sasset_products", prefix),
		Categories:      fmt.Sprintf("%scategories", prefix),
		AssetCategories: fmt.Sprintf("%sasset_categories", prefix),
	}
}

// Pool sizing applied to every connection pool
const (
	DefaultMaxConns int32 = 25
	DefaultMinConns int32 = 5
)

// CreateConnectionPool creates a new pgx connection pool and pings the database
func CreateConnectionPool(ctx context.Context, databaseURL string) (*pgxpool.Pool, error) {
	config, err := NewPoolConfig(databaseURL)
	if err != nil {
		return nil, err
	}

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return pool, nil
}

// NewPoolConfig parses the connection string and applies the pool sizing.
//
// Behind PgBouncer in transaction pooling mode (port 6543) prepared statements
// are not available, so the pool switches to QueryExecModeCacheDescribe unless
// the connection string sets default_query_exec_mode explicitly.
func NewPoolConfig(databaseURL string) (*pgxpool.Config, error) {
	config, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse connection string: %w", err)
	}

	config.MaxConns = DefaultMaxConns
	config.MinConns = DefaultMinConns

	if config.ConnConfig.Port == 6543 && config.ConnConfig.DefaultQueryExecMode == pgx.QueryExecModeCacheStatement {
		config.ConnConfig.DefaultQueryExecMode = pgx.QueryExecModeCacheDescribe
		slog.Debug("auto-configured cache_describe mode for PgBouncer compatibility", "port", 6543)
	}

	return config, nil
}

// GetExecutor returns the transaction stored in the context, or the pool.
// Repositories use it so they join a transaction started by TransactionManager.
func GetExecutor(ctx context.Context, pool *pgxpool.Pool) repositories.DBTX {
	if tx := repositories.GetTx(ctx); tx != nil {
		return tx
	}
	return pool
}
