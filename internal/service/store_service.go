package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/ratehub/ratehub/internal/domain"
	"github.com/ratehub/ratehub/internal/repository"
)

// StoreDirectory is the slice of the store repository the service needs.
type StoreDirectory interface {
	GetByID(ctx context.Context, id string) (domain.Store, error)
	GetByOwner(ctx context.Context, ownerID string) (domain.Store, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filters repository.StoreListFilters) ([]domain.StoreListing, error)
}

// StoreService handles store reads and removal.
type StoreService interface {
	ListStores(ctx context.Context, filters repository.StoreListFilters, role domain.Role) ([]domain.StoreListing, error)
	GetStore(ctx context.Context, id string) (domain.Store, error)
	StoreForOwner(ctx context.Context, ownerID string) (domain.Store, error)
	DeleteStore(ctx context.Context, id, requesterID string, role domain.Role) error
}

type storeService struct {
	stores StoreDirectory
	logger *zap.Logger
}

// NewStoreService creates a new store service.
func NewStoreService(stores StoreDirectory, logger *zap.Logger) StoreService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &storeService{stores: stores, logger: logger}
}

// ListStores answers the filtered store listing. The caller's role decides
// only the projection shape, never which rows come back; whatever the caller
// put in IncludeOwner is overwritten here so the policy has one home.
func (s *storeService) ListStores(ctx context.Context, filters repository.StoreListFilters, role domain.Role) ([]domain.StoreListing, error) {
	filters.IncludeOwner = role.IncludesOwnerProjection()
	return s.stores.List(ctx, filters)
}

// GetStore fetches a single store. A missing id surfaces as
// repository.ErrNotFound.
func (s *storeService) GetStore(ctx context.Context, id string) (domain.Store, error) {
	return s.stores.GetByID(ctx, id)
}

// StoreForOwner fetches the single store owned by the given user.
func (s *storeService) StoreForOwner(ctx context.Context, ownerID string) (domain.Store, error) {
	return s.stores.GetByOwner(ctx, ownerID)
}

// DeleteStore removes a store. Admins may delete any store; a store owner
// only their own.
func (s *storeService) DeleteStore(ctx context.Context, id, requesterID string, role domain.Role) error {
	st, err := s.stores.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if role != domain.RoleAdmin && st.OwnerID != requesterID {
		return ErrForbidden
	}
	if err := s.stores.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("store deleted", zap.String("store_id", id), zap.String("requester_id", requesterID))
	return nil
}
