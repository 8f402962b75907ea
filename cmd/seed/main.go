package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"assetmanagement/internal/account"
	"assetmanagement/internal/config"
	"assetmanagement/internal/domain/models"
	"assetmanagement/internal/domain/services"
	"assetmanagement/internal/repository/postgres"
	"assetmanagement/internal/service"
	serviceAuth "assetmanagement/internal/service/auth"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
)

func main() {
	dropTables := flag.Bool("drop-tables", false, "Drop all tables before seeding (fresh start)")
	schemaOnly := flag.Bool("schema-only", false, "Only set up schema, don't seed data")
	clearData := flag.Bool("clear-data", false, "Delete the seeded account's assets and categories (keep schema)")
	accountID := flag.Int("account", 1, "Account the sample data belongs to")
	flag.Parse()

	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if cfg.Environment == "prod" && (*dropTables || *clearData) {
		log.Fatalf("BLOCKED: cannot run destructive operations (--drop-tables or --clear-data) in production environment")
	}
	if cfg.DatabaseURL == "" {
		log.Fatalf("DATABASE_URL is required")
	}

	logger, logCloser, err := config.NewLogger(cfg, os.Stdout)
	if err != nil {
		log.Fatalf("Failed to setup logging: %v", err)
	}
	defer logCloser.Close()

	ctx := context.Background()
	pool, err := postgres.CreateConnectionPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer pool.Close()

	tables := postgres.NewTableNames(cfg.TablePrefix)
	log.Printf("Seeding database (environment: %s, prefix: %s)", cfg.Environment, cfg.TablePrefix)

	if *dropTables {
		if err := postgres.DropSchema(ctx, pool, tables); err != nil {
			log.Fatalf("Failed to drop tables: %v", err)
		}
		log.Println("Tables dropped")
	}

	if err := postgres.EnsureSchema(ctx, pool, tables); err != nil {
		log.Fatalf("Failed to run schema: %v", err)
	}
	log.Println("Schema ready")

	if *schemaOnly {
		return
	}

	if err := clearAccountData(ctx, pool, tables, *accountID); err != nil {
		log.Fatalf("Failed to clear data: %v", err)
	}
	if *clearData {
		log.Printf("Data for account %d cleared", *accountID)
		return
	}

	repoConfig := &postgres.RepositoryConfig{
		Pool:   pool,
		Tables: tables,
		Logger: logger,
	}
	assetRepo := postgres.NewAssetRepository(repoConfig)
	categoryRepo := postgres.NewCategoryRepository(repoConfig)
	txManager := postgres.NewTransactionManager(pool, logger)

	// Seeding runs offline: membership and plan come from a local directory
	// and the seeder acts as an administrator.
	seeder := &models.Principal{ID: "seed", Roles: []models.Role{models.RoleAdmin}}
	directory := account.NewStaticDirectory().
		SetUsers(*accountID, seeder.ID).
		SetPlan(*accountID, 1000, 1000)

	authorizer := serviceAuth.NewAccountAuthorizer(directory, assetRepo, logger)
	quota := service.NewQuotaEnforcer(directory, assetRepo, categoryRepo, logger)
	assetService := service.NewAssetService(assetRepo, categoryRepo, txManager, authorizer, quota, logger)
	categoryService := service.NewCategoryService(categoryRepo, assetRepo, txManager, authorizer, quota, logger)

	categoryIDs := make(map[string]int)
	for _, name := range []string{"Images", "Manuals", "Videos"} {
		category, err := categoryService.CreateCategory(ctx, seeder, *accountID, &services.CreateCategoryRequest{Name: name})
		if err != nil {
			log.Fatalf("Failed to create category %q: %v", name, err)
		}
		categoryIDs[name] = category.ID
		log.Printf("Created category %s (ID: %d)", name, category.ID)
	}

	for i, seed := range getSeedAssets(categoryIDs) {
		asset, err := assetService.CreateAsset(ctx, seeder, *accountID, seed)
		if err != nil {
			log.Printf("Failed to create asset %q: %v", seed.Name, err)
			continue
		}
		log.Printf("Created asset %d: %s (ID: %d, categories: %d)", i+1, asset.Name, asset.ID, len(asset.Categories))
	}

	log.Println("Seeding complete")
}

// clearAccountData removes the account's links, assets and categories
func clearAccountData(ctx context.Context, pool *pgxpool.Pool, tables *postgres.TableNames, accountID int) error {
	statements := []string{
		fmt.Sprintf(`DELETE FROM %s WHERE category_id IN (SELECT id FROM %s WHERE account_id = $1)`, tables.AssetCategories, tables.Categories),
		fmt.Sprintf(`DELETE FROM %s WHERE account_id = $1`, tables.Assets),
		fmt.Sprintf(`DELETE FROM %s WHERE account_id = $1`, tables.Categories),
	}
	for _, stmt := range statements {
		if _, err := pool.Exec(ctx, stmt, accountID); err != nil {
			return err
		}
	}
	return nil
}

func getSeedAssets(categories map[string]int) []*services.CreateAssetRequest {
	return []*services.CreateAssetRequest{
		{
			Name:        "front-view.png",
			Kind:        stringPtr("image/png"),
			Size:        intPtr(204800),
			URL:         stringPtr("https://cdn.example.com/assets/front-view.png"),
			CategoryIDs: []int{categories["Images"]},
			ProductIDs:  []int{10, 11},
		},
		{
			Name:        "side-view.jpg",
			Kind:        stringPtr("image/jpeg"),
			Size:        intPtr(153600),
			URL:         stringPtr("https://cdn.example.com/assets/side-view.jpg"),
			CategoryIDs: []int{categories["Images"]},
			ProductIDs:  []int{10},
		},
		{
			Name:        "user-guide.pdf",
			Kind:        stringPtr("application/pdf"),
			Size:        intPtr(1048576),
			URL:         stringPtr("https://cdn.example.com/assets/user-guide.pdf"),
			CategoryIDs: []int{categories["Manuals"]},
			ProductIDs:  []int{10, 11, 12},
		},
		{
			Name:        "unboxing.mp4",
			Kind:        stringPtr("video/mp4"),
			Size:        intPtr(52428800),
			URL:         stringPtr("https://cdn.example.com/assets/unboxing.mp4"),
			CategoryIDs: []int{categories["Videos"], categories["Images"]},
			ProductIDs:  []int{12},
		},
		{
			Name: "placeholder",
			Size: intPtr(0),
		},
	}
}

func stringPtr(s string) *string { return &s }

func intPtr(i int) *int { return &i }
