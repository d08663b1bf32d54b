package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/ratehub/ratehub/internal/domain"
	"github.com/ratehub/ratehub/internal/repository"
)

type mockStoreDirectory struct {
	mock.Mock
}

func (m *mockStoreDirectory) GetByID(ctx context.Context, id string) (domain.Store, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.Store), args.Error(1)
}

func (m *mockStoreDirectory) GetByOwner(ctx context.Context, ownerID string) (domain.Store, error) {
	args := m.Called(ctx, ownerID)
	return args.Get(0).(domain.Store), args.Error(1)
}

func (m *mockStoreDirectory) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockStoreDirectory) List(ctx context.Context, filters repository.StoreListFilters) ([]domain.StoreListing, error) {
	args := m.Called(ctx, filters)
	return args.Get(0).([]domain.StoreListing), args.Error(1)
}

func TestListStoresForcesOwnerProjectionByRole(t *testing.T) {
	tests := []struct {
		role             domain.Role
		callerAskedOwner bool
		wantIncludeOwner bool
	}{
		{domain.RoleAdmin, false, true},
		{domain.RoleAdmin, true, true},
		{domain.RoleUser, true, false},
		{domain.RoleUser, false, false},
		{domain.RoleStoreOwner, true, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.role), func(t *testing.T) {
			stores := new(mockStoreDirectory)
			svc := NewStoreService(stores, nil)

			var seen repository.StoreListFilters
			stores.On("List", mock.Anything, mock.Anything).
				Run(func(args mock.Arguments) {
					seen = args.Get(1).(repository.StoreListFilters)
				}).
				Return([]domain.StoreListing{}, nil)

			// Whatever the caller put in IncludeOwner must be overwritten.
			filters := repository.StoreListFilters{IncludeOwner: tt.callerAskedOwner}
			_, err := svc.ListStores(context.Background(), filters, tt.role)
			require.NoError(t, err)
			assert.Equal(t, tt.wantIncludeOwner, seen.IncludeOwner)
		})
	}
}

func TestListStoresKeepsCallerFilters(t *testing.T) {
	stores := new(mockStoreDirectory)
	svc := NewStoreService(stores, nil)

	name := "corner"
	var seen repository.StoreListFilters
	stores.On("List", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			seen = args.Get(1).(repository.StoreListFilters)
		}).
		Return([]domain.StoreListing{}, nil)

	filters := repository.StoreListFilters{Name: &name, SortField: "ratings", SortOrder: "DESC"}
	_, err := svc.ListStores(context.Background(), filters, domain.RoleUser)
	require.NoError(t, err)
	require.NotNil(t, seen.Name)
	assert.Equal(t, "corner", *seen.Name)
	assert.Equal(t, "ratings", seen.SortField)
	assert.Equal(t, "DESC", seen.SortOrder)
}

func TestDeleteStoreAuthorization(t *testing.T) {
	st := domain.Store{ID: "store-1", OwnerID: "owner-1"}

	t.Run("owner deletes own store", func(t *testing.T) {
		stores := new(mockStoreDirectory)
		svc := NewStoreService(stores, nil)
		stores.On("GetByID", mock.Anything, "store-1").Return(st, nil)
		stores.On("Delete", mock.Anything, "store-1").Return(nil)

		err := svc.DeleteStore(context.Background(), "store-1", "owner-1", domain.RoleStoreOwner)
		require.NoError(t, err)
		stores.AssertExpectations(t)
	})

	t.Run("stranger is forbidden", func(t *testing.T) {
		stores := new(mockStoreDirectory)
		svc := NewStoreService(stores, nil)
		stores.On("GetByID", mock.Anything, "store-1").Return(st, nil)

		err := svc.DeleteStore(context.Background(), "store-1", "owner-2", domain.RoleStoreOwner)
		assert.ErrorIs(t, err, ErrForbidden)
		stores.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})

	t.Run("admin deletes any store", func(t *testing.T) {
		stores := new(mockStoreDirectory)
		svc := NewStoreService(stores, nil)
		stores.On("GetByID", mock.Anything, "store-1").Return(st, nil)
		stores.On("Delete", mock.Anything, "store-1").Return(nil)

		err := svc.DeleteStore(context.Background(), "store-1", "admin-1", domain.RoleAdmin)
		require.NoError(t, err)
		stores.AssertExpectations(t)
	})

	t.Run("missing store", func(t *testing.T) {
		stores := new(mockStoreDirectory)
		svc := NewStoreService(stores, nil)
		stores.On("GetByID", mock.Anything, "store-x").Return(domain.Store{}, repository.ErrNotFound)

		err := svc.DeleteStore(context.Background(), "store-x", "admin-1", domain.RoleAdmin)
		assert.ErrorIs(t, err, repository.ErrNotFound)
	})
}
