package inmemory

import (
	"context"

	"github.com/tdex-network/tdex-escrow/internal/core/domain"
)

// RegistryRepositoryImpl represents an in memory storage
type RegistryRepositoryImpl struct {
	store *memStore
}

// newRegistryRepositoryImpl returns a new RegistryRepositoryImpl backed by
// the given store.
func newRegistryRepositoryImpl(store *memStore) *RegistryRepositoryImpl {
	return &RegistryRepositoryImpl{store}
}

func (r *RegistryRepositoryImpl) InitRegistry(
	_ context.Context, registry *domain.Registry,
) error {
	r.store.lock.Lock()
	defer r.store.lock.Unlock()

	if r.store.registry != nil {
		return domain.ErrAlreadyInitialized
	}
	r.store.registry = registry.Clone()
	return nil
}

func (r *RegistryRepositoryImpl) GetRegistry(
	_ context.Context,
) (*domain.Registry, error) {
	r.store.lock.RLock()
	defer r.store.lock.RUnlock()

	return r.getRegistry()
}

func (r *RegistryRepositoryImpl) UpdateRegistry(
	_ context.Context,
	updateFn func(r *domain.Registry) (*domain.Registry, error),
) error {
	r.store.lock.RLock()
	registry, err := r.getRegistry()
	r.store.lock.RUnlock()
	if err != nil {
		return err
	}

	updatedRegistry, err := updateFn(registry)
	if err != nil {
		return err
	}

	r.store.lock.Lock()
	defer r.store.lock.Unlock()

	r.store.registry = updatedRegistry.Clone()
	return nil
}

func (r *RegistryRepositoryImpl) getRegistry() (*domain.Registry, error) {
	if r.store.registry == nil {
		return nil, domain.ErrRegistryNotInitialized
	}
	return r.store.registry.Clone(), nil
}
