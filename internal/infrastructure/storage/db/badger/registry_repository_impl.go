package dbbadger

import (
	"context"
	"errors"

	"github.com/tdex-network/tdex-escrow/internal/core/domain"
	"github.com/timshannon/badgerhold/v4"
)

type registryRepositoryImpl struct {
	store txStore
}

func newRegistryRepositoryImpl(
	store *badgerhold.Store,
) domain.RegistryRepository {
	return registryRepositoryImpl{txStore{store}}
}

func (r registryRepositoryImpl) InitRegistry(
	ctx context.Context, registry *domain.Registry,
) error {
	if err := r.store.insert(
		ctx, registryKey, toInfraRegistry(*registry),
	); err != nil {
		if errors.Is(err, badgerhold.ErrKeyExists) {
			return domain.ErrAlreadyInitialized
		}
		return err
	}
	return nil
}

func (r registryRepositoryImpl) GetRegistry(
	ctx context.Context,
) (*domain.Registry, error) {
	var registry Registry
	if err := r.store.get(ctx, registryKey, &registry); err != nil {
		if errors.Is(err, badgerhold.ErrNotFound) {
			return nil, domain.ErrRegistryNotInitialized
		}
		return nil, err
	}
	return registry.toDomain(), nil
}

func (r registryRepositoryImpl) UpdateRegistry(
	ctx context.Context,
	updateFn func(r *domain.Registry) (*domain.Registry, error),
) error {
	registry, err := r.GetRegistry(ctx)
	if err != nil {
		return err
	}

	updatedRegistry, err := updateFn(registry)
	if err != nil {
		return err
	}

	return r.store.update(ctx, registryKey, toInfraRegistry(*updatedRegistry))
}
