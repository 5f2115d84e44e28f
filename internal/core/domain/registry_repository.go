package domain

import "context"

// RegistryRepository persists the singleton Registry.
type RegistryRepository interface {
	// InitRegistry stores the registry if not yet done, otherwise it returns
	// ErrAlreadyInitialized.
	InitRegistry(ctx context.Context, registry *Registry) error
	// GetRegistry returns the registry or ErrRegistryNotInitialized.
	GetRegistry(ctx context.Context) (*Registry, error)
	// UpdateRegistry allows to commit multiple changes to the registry in a
	// transactional way.
	UpdateRegistry(
		ctx context.Context,
		updateFn func(r *Registry) (*Registry, error),
	) error
}
