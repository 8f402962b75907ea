package service

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"assetmanagement/internal/account"
	"assetmanagement/internal/domain/models"
	"assetmanagement/internal/domain/services"
	"assetmanagement/internal/repository/memory"
	serviceAuth "assetmanagement/internal/service/auth"

	"github.com/stretchr/testify/require"
)

const (
	accountOne = 1
	accountTwo = 2
)

var (
	alice = &models.Principal{ID: "10", Roles: []models.Role{models.RoleClient}}
	bob   = &models.Principal{ID: "20", Roles: []models.Role{models.RoleClient}}
	admin = &models.Principal{ID: "99", Roles: []models.Role{models.RoleAdmin}}
)

type fixture struct {
	store      *memory.Store
	directory  *account.StaticDirectory
	quota      services.QuotaEnforcer
	assets     services.AssetService
	categories services.CategoryService
}

// newFixture wires the services over the memory store. Alice belongs to account 1,
// Bob to account 2; both accounts allow 5 assets and 3 categories.
func newFixture(t *testing.T) *fixture {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	store := memory.NewStore()
	directory := account.NewStaticDirectory().
		SetUsers(accountOne, alice.ID).
		SetUsers(accountTwo, bob.ID).
		SetPlan(accountOne, 5, 3).
		SetPlan(accountTwo, 5, 3)

	authorizer := serviceAuth.NewAccountAuthorizer(directory, store.Assets(), logger)
	quota := NewQuotaEnforcer(directory, store.Assets(), store.Categories(), logger)

	return &fixture{
		store:      store,
		directory:  directory,
		quota:      quota,
		assets:     NewAssetService(store.Assets(), store.Categories(), store, authorizer, quota, logger),
		categories: NewCategoryService(store.Categories(), store.Assets(), store, authorizer, quota, logger),
	}
}

func (f *fixture) createCategory(t *testing.T, p *models.Principal, accountID int, name string) *models.Category {
	t.Helper()
	c, err := f.categories.CreateCategory(context.Background(), p, accountID, &services.CreateCategoryRequest{Name: name})
	require.NoError(t, err)
	return c
}

func (f *fixture) createAsset(t *testing.T, p *models.Principal, accountID int, name string, categoryIDs ...int) *models.Asset {
	t.Helper()
	a, err := f.assets.CreateAsset(context.Background(), p, accountID, assetRequest(name, categoryIDs...))
	require.NoError(t, err)
	return a
}

func assetRequest(name string, categoryIDs ...int) *services.CreateAssetRequest {
	return &services.CreateAssetRequest{
		Name:        name,
		Kind:        stringPtr("PDF"),
		Size:        intPtr(2),
		URL:         stringPtr("https://files.example.com/" + name),
		CategoryIDs: categoryIDs,
	}
}

func intPtr(i int) *int { return &i }

func stringPtr(s string) *string { return &s }
