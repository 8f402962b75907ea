package service

import (
	"context"
	"errors"
	"testing"

	"assetmanagement/internal/domain"
	"assetmanagement/internal/domain/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWithinQuota(t *testing.T) {
	tests := []struct {
		name    string
		current int
		limit   int
		want    bool
	}{
		{name: "empty account", current: 0, limit: 5, want: true},
		{name: "one below limit", current: 4, limit: 5, want: true},
		{name: "at limit", current: 5, limit: 5, want: false},
		{name: "over limit", current: 7, limit: 5, want: false},
		{name: "zero limit", current: 0, limit: 0, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, WithinQuota(tt.current, tt.limit))
		})
	}
}

func TestQuotaEnforcer_MayCreate(t *testing.T) {
	ctx := context.Background()

	t.Run("allows up to the plan limit", func(t *testing.T) {
		f := newFixture(t)
		f.directory.SetPlan(accountOne, 2, 1)

		require.NoError(t, f.quota.MayCreate(ctx, accountOne, models.ResourceAsset))
		f.createAsset(t, alice, accountOne, "a1")
		require.NoError(t, f.quota.MayCreate(ctx, accountOne, models.ResourceAsset))
		f.createAsset(t, alice, accountOne, "a2")

		err := f.quota.MayCreate(ctx, accountOne, models.ResourceAsset)
		require.ErrorIs(t, err, domain.ErrForbidden)

		var quotaErr *domain.QuotaExceededError
		require.True(t, errors.As(err, &quotaErr))
		assert.Equal(t, 2, quotaErr.Current)
		assert.Equal(t, 2, quotaErr.Max)
		assert.False(t, quotaErr.Unknown)
	})

	t.Run("counts each resource kind separately", func(t *testing.T) {
		f := newFixture(t)
		f.directory.SetPlan(accountOne, 1, 1)

		f.createCategory(t, alice, accountOne, "c1")

		assert.NoError(t, f.quota.MayCreate(ctx, accountOne, models.ResourceAsset))
		assert.ErrorIs(t, f.quota.MayCreate(ctx, accountOne, models.ResourceCategory), domain.ErrForbidden)
	})

	t.Run("counts are per account", func(t *testing.T) {
		f := newFixture(t)
		f.directory.SetPlan(accountOne, 1, 3)

		f.createAsset(t, alice, accountOne, "a1")

		assert.ErrorIs(t, f.quota.MayCreate(ctx, accountOne, models.ResourceAsset), domain.ErrForbidden)
		assert.NoError(t, f.quota.MayCreate(ctx, accountTwo, models.ResourceAsset))
	})

	t.Run("unknown limit forbids creation", func(t *testing.T) {
		f := newFixture(t)
		f.directory.SetUsers(3, alice.ID)

		err := f.quota.MayCreate(ctx, 3, models.ResourceCategory)
		require.ErrorIs(t, err, domain.ErrForbidden)

		var quotaErr *domain.QuotaExceededError
		require.True(t, errors.As(err, &quotaErr))
		assert.True(t, quotaErr.Unknown)
	})
}

func TestQuotaEnforcer_CurrentCount(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	f.createAsset(t, alice, accountOne, "a1")
	f.createAsset(t, alice, accountOne, "a2")
	f.createCategory(t, alice, accountOne, "c1")
	f.createAsset(t, bob, accountTwo, "b1")

	n, err := f.quota.CurrentCount(ctx, accountOne, models.ResourceAsset)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	n, err = f.quota.CurrentCount(ctx, accountOne, models.ResourceCategory)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	_, err = f.quota.CurrentCount(ctx, accountOne, models.ResourceKind("product"))
	assert.Error(t, err)
}
