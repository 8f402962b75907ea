package service

import (
	"context"
	"testing"

	"assetmanagement/internal/domain"
	"assetmanagement/internal/domain/models"
	"assetmanagement/internal/domain/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAssetService_CreateAsset(t *testing.T) {
	ctx := context.Background()

	t.Run("links the asset on both sides", func(t *testing.T) {
		f := newFixture(t)
		images := f.createCategory(t, alice, accountOne, "Images")
		docs := f.createCategory(t, alice, accountOne, "Docs")

		asset := f.createAsset(t, alice, accountOne, "manual.pdf", images.ID, docs.ID)

		assert.NotZero(t, asset.ID)
		assert.Equal(t, accountOne, asset.AccountID)
		assert.Equal(t, []models.CategoryRef{images.Ref(), docs.Ref()}, asset.Categories)

		for _, id := range []int{images.ID, docs.ID} {
			stored, err := f.store.Categories().GetByID(ctx, id)
			require.NoError(t, err)
			assert.Equal(t, []int{asset.ID}, stored.AssetIDs)
		}

		stored, err := f.store.Assets().GetByID(ctx, asset.ID)
		require.NoError(t, err)
		assert.Equal(t, []int{images.ID, docs.ID}, stored.CategoryIDs())
	})

	t.Run("ignores a client supplied id", func(t *testing.T) {
		f := newFixture(t)
		first := f.createAsset(t, alice, accountOne, "a1")
		second := f.createAsset(t, alice, accountOne, "a2")
		assert.NotEqual(t, first.ID, second.ID)
	})

	t.Run("duplicate category ids link once", func(t *testing.T) {
		f := newFixture(t)
		images := f.createCategory(t, alice, accountOne, "Images")

		asset := f.createAsset(t, alice, accountOne, "a1", images.ID, images.ID)
		assert.Len(t, asset.Categories, 1)
	})

	tests := []struct {
		name      string
		principal *models.Principal
		accountID int
		req       *services.CreateAssetRequest
		setup     func(f *fixture)
		wantErr   error
	}{
		{
			name:      "anonymous caller",
			principal: nil,
			accountID: accountOne,
			req:       assetRequest("a1"),
			wantErr:   domain.ErrUnauthorized,
		},
		{
			name:      "member of another account",
			principal: bob,
			accountID: accountOne,
			req:       assetRequest("a1"),
			wantErr:   domain.ErrForbidden,
		},
		{
			name:      "unknown account",
			principal: alice,
			accountID: 42,
			req:       assetRequest("a1"),
			wantErr:   domain.ErrNotFound,
		},
		{
			name:      "account without users",
			principal: alice,
			accountID: 3,
			req:       assetRequest("a1"),
			setup:     func(f *fixture) { f.directory.SetUsers(3).SetPlan(3, 5, 5) },
			wantErr:   domain.ErrNotFound,
		},
		{
			name:      "admin of an unknown account",
			principal: admin,
			accountID: 42,
			req:       assetRequest("a1"),
			wantErr:   domain.ErrNotFound,
		},
		{
			name:      "plan limit unavailable",
			principal: alice,
			accountID: 3,
			req:       assetRequest("a1"),
			setup:     func(f *fixture) { f.directory.SetUsers(3, alice.ID) },
			wantErr:   domain.ErrForbidden,
		},
		{
			name:      "missing size",
			principal: alice,
			accountID: accountOne,
			req:       &services.CreateAssetRequest{Name: "a1"},
			wantErr:   domain.ErrValidation,
		},
		{
			name:      "negative size",
			principal: alice,
			accountID: accountOne,
			req:       &services.CreateAssetRequest{Name: "a1", Size: intPtr(-1)},
			wantErr:   domain.ErrValidation,
		},
		{
			name:      "blank name",
			principal: alice,
			accountID: accountOne,
			req:       &services.CreateAssetRequest{Name: "   ", Size: intPtr(1)},
			wantErr:   domain.ErrValidation,
		},
		{
			name:      "unknown category",
			principal: alice,
			accountID: accountOne,
			req:       assetRequest("a1", 404),
			wantErr:   domain.ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			if tt.setup != nil {
				tt.setup(f)
			}

			asset, err := f.assets.CreateAsset(ctx, tt.principal, tt.accountID, tt.req)
			require.ErrorIs(t, err, tt.wantErr)
			assert.Nil(t, asset)
		})
	}

	t.Run("admin bypasses membership", func(t *testing.T) {
		f := newFixture(t)
		asset, err := f.assets.CreateAsset(ctx, admin, accountOne, assetRequest("a1"))
		require.NoError(t, err)
		assert.Equal(t, accountOne, asset.AccountID)
	})

	t.Run("quota of five allows five assets", func(t *testing.T) {
		f := newFixture(t)
		for i := 0; i < 5; i++ {
			f.createAsset(t, alice, accountOne, "a")
		}

		_, err := f.assets.CreateAsset(ctx, alice, accountOne, assetRequest("sixth"))
		require.ErrorIs(t, err, domain.ErrForbidden)

		n, err := f.store.Assets().CountByAccount(ctx, accountOne)
		require.NoError(t, err)
		assert.Equal(t, 5, n)
	})

	t.Run("memory store keeps the asset when a category is missing", func(t *testing.T) {
		// The memory store has no rollback; Postgres undoes the insert.
		f := newFixture(t)

		_, err := f.assets.CreateAsset(ctx, alice, accountOne, assetRequest("orphan", 404))
		require.ErrorIs(t, err, domain.ErrNotFound)

		n, err := f.store.Assets().CountByAccount(ctx, accountOne)
		require.NoError(t, err)
		assert.Equal(t, 1, n)
	})
}

func TestAssetService_GetAsset(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	asset := f.createAsset(t, alice, accountOne, "a1")

	got, err := f.assets.GetAsset(ctx, alice, asset.ID)
	require.NoError(t, err)
	assert.Equal(t, asset.Name, got.Name)

	_, err = f.assets.GetAsset(ctx, bob, asset.ID)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = f.assets.GetAsset(ctx, admin, asset.ID)
	assert.NoError(t, err)

	_, err = f.assets.GetAsset(ctx, alice, 999)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = f.assets.GetAsset(ctx, nil, asset.ID)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestAssetService_ListByAccount(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	assets, err := f.assets.ListByAccount(ctx, alice, accountOne)
	require.NoError(t, err)
	assert.Empty(t, assets)

	f.createAsset(t, alice, accountOne, "a1")
	f.createAsset(t, alice, accountOne, "a2")
	f.createAsset(t, bob, accountTwo, "b1")

	assets, err = f.assets.ListByAccount(ctx, alice, accountOne)
	require.NoError(t, err)
	require.Len(t, assets, 2)
	assert.Equal(t, "a1", assets[0].Name)
	assert.Equal(t, "a2", assets[1].Name)

	_, err = f.assets.ListByAccount(ctx, bob, accountOne)
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestAssetService_ListByCategory(t *testing.T) {
	ctx := context.Background()

	// Category of account 1 shared by assets of both accounts
	setup := func(t *testing.T) (*fixture, *models.Category) {
		f := newFixture(t)
		shared := f.createCategory(t, alice, accountOne, "Shared")
		f.createAsset(t, alice, accountOne, "a1", shared.ID)
		f.createAsset(t, admin, accountTwo, "b1", shared.ID)
		return f, shared
	}

	t.Run("member of one owning account sees the full set", func(t *testing.T) {
		f, shared := setup(t)

		assets, err := f.assets.ListByCategory(ctx, bob, shared.ID)
		require.NoError(t, err)
		assert.Len(t, assets, 2)
	})

	t.Run("outsider is forbidden", func(t *testing.T) {
		f, shared := setup(t)
		f.directory.SetUsers(3, "30")

		_, err := f.assets.ListByCategory(ctx, &models.Principal{ID: "30"}, shared.ID)
		assert.ErrorIs(t, err, domain.ErrForbidden)
	})

	t.Run("one unresolvable account is not found", func(t *testing.T) {
		f, shared := setup(t)
		f.directory.Forget(accountTwo)

		_, err := f.assets.ListByCategory(ctx, alice, shared.ID)
		assert.ErrorIs(t, err, domain.ErrNotFound)

		_, err = f.assets.ListByCategory(ctx, admin, shared.ID)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("empty category is not found", func(t *testing.T) {
		f := newFixture(t)
		empty := f.createCategory(t, alice, accountOne, "Empty")

		_, err := f.assets.ListByCategory(ctx, alice, empty.ID)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestAssetService_ListByProduct(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	req := assetRequest("a1")
	req.ProductIDs = []int{7, 8}
	_, err := f.assets.CreateAsset(ctx, alice, accountOne, req)
	require.NoError(t, err)

	assets, err := f.assets.ListByProduct(ctx, alice, 7)
	require.NoError(t, err)
	require.Len(t, assets, 1)
	assert.Equal(t, []int{7, 8}, assets[0].ProductIDs)

	_, err = f.assets.ListByProduct(ctx, bob, 7)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = f.assets.ListByProduct(ctx, alice, 9)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestAssetService_UpdateAsset(t *testing.T) {
	ctx := context.Background()

	t.Run("replaces fields and category set", func(t *testing.T) {
		f := newFixture(t)
		images := f.createCategory(t, alice, accountOne, "Images")
		docs := f.createCategory(t, alice, accountOne, "Docs")
		asset := f.createAsset(t, alice, accountOne, "a1", images.ID)

		updated, err := f.assets.UpdateAsset(ctx, alice, asset.ID, &services.UpdateAssetRequest{
			Name:        "renamed",
			Kind:        stringPtr("PNG"),
			Size:        intPtr(10),
			CategoryIDs: []int{docs.ID},
			ProductIDs:  []int{3},
		})
		require.NoError(t, err)

		assert.Equal(t, "renamed", updated.Name)
		assert.Equal(t, 10, updated.Size)
		assert.Nil(t, updated.URL)
		assert.Equal(t, accountOne, updated.AccountID)
		assert.Equal(t, []models.CategoryRef{docs.Ref()}, updated.Categories)

		oldSide, err := f.store.Categories().GetByID(ctx, images.ID)
		require.NoError(t, err)
		assert.Empty(t, oldSide.AssetIDs)

		newSide, err := f.store.Categories().GetByID(ctx, docs.ID)
		require.NoError(t, err)
		assert.Equal(t, []int{asset.ID}, newSide.AssetIDs)

		stored, err := f.store.Assets().GetByID(ctx, asset.ID)
		require.NoError(t, err)
		assert.Equal(t, []int{3}, stored.ProductIDs)
	})

	t.Run("errors", func(t *testing.T) {
		f := newFixture(t)
		asset := f.createAsset(t, alice, accountOne, "a1")
		valid := &services.UpdateAssetRequest{Name: "x", Size: intPtr(1)}

		_, err := f.assets.UpdateAsset(ctx, alice, 999, valid)
		assert.ErrorIs(t, err, domain.ErrNotFound)

		_, err = f.assets.UpdateAsset(ctx, bob, asset.ID, valid)
		assert.ErrorIs(t, err, domain.ErrForbidden)

		_, err = f.assets.UpdateAsset(ctx, alice, asset.ID, &services.UpdateAssetRequest{Name: "x", Size: intPtr(1), CategoryIDs: []int{404}})
		assert.ErrorIs(t, err, domain.ErrNotFound)

		_, err = f.assets.UpdateAsset(ctx, alice, asset.ID, &services.UpdateAssetRequest{Name: ""})
		assert.ErrorIs(t, err, domain.ErrValidation)
	})
}

func TestAssetService_DeleteAsset(t *testing.T) {
	ctx := context.Background()

	t.Run("unlinks from every category", func(t *testing.T) {
		f := newFixture(t)
		images := f.createCategory(t, alice, accountOne, "Images")
		docs := f.createCategory(t, alice, accountOne, "Docs")
		asset := f.createAsset(t, alice, accountOne, "a1", images.ID, docs.ID)

		require.NoError(t, f.assets.DeleteAsset(ctx, alice, asset.ID))

		_, err := f.store.Assets().GetByID(ctx, asset.ID)
		assert.ErrorIs(t, err, domain.ErrNotFound)

		for _, id := range []int{images.ID, docs.ID} {
			c, err := f.store.Categories().GetByID(ctx, id)
			require.NoError(t, err)
			assert.Empty(t, c.AssetIDs)
		}

		// Categories are deletable once empty
		assert.NoError(t, f.categories.DeleteCategory(ctx, alice, images.ID))
	})

	t.Run("errors", func(t *testing.T) {
		f := newFixture(t)
		asset := f.createAsset(t, alice, accountOne, "a1")

		assert.ErrorIs(t, f.assets.DeleteAsset(ctx, alice, 999), domain.ErrNotFound)
		assert.ErrorIs(t, f.assets.DeleteAsset(ctx, bob, asset.ID), domain.ErrForbidden)
		assert.ErrorIs(t, f.assets.DeleteAsset(ctx, nil, asset.ID), domain.ErrUnauthorized)

		_, err := f.store.Assets().GetByID(ctx, asset.ID)
		assert.NoError(t, err)
	})
}

func TestAssetService_MembershipIsNotCached(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	asset := f.createAsset(t, alice, accountOne, "a1")

	_, err := f.assets.GetAsset(ctx, alice, asset.ID)
	require.NoError(t, err)

	// Alice leaves the account between two reads
	f.directory.SetUsers(accountOne, "11")
	before := f.directory.UserLookups()

	_, err = f.assets.GetAsset(ctx, alice, asset.ID)
	assert.ErrorIs(t, err, domain.ErrForbidden)
	assert.Equal(t, before+1, f.directory.UserLookups())
}
