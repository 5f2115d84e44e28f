package operator

import (
	"context"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	log "github.com/sirupsen/logrus"
	"github.com/tdex-network/tdex-escrow/internal/core/domain"
	"github.com/tdex-network/tdex-escrow/internal/core/ports"
	"github.com/tdex-network/tdex-escrow/internal/storageutil/uow"
)

const (
	opInitialize        = "Initialize"
	opSetSupportedToken = "SetSupportedToken"
	opUpdateProtocolFee = "UpdateProtocolFee"
	opUpdateRoleAddress = "UpdateRoleAddress"
	opPause             = "Pause"
	opUnpause           = "Unpause"
)

// Service exposes the owner-gated operations over the registry.
type Service struct {
	repoManager ports.RepoManager
	unitOfWork  *uow.UnitOfWork
}

func NewService(
	repoManager ports.RepoManager, unitOfWork *uow.UnitOfWork,
) (*Service, error) {
	if repoManager == nil {
		return nil, fmt.Errorf("missing repo manager")
	}
	if unitOfWork == nil {
		return nil, fmt.Errorf("missing unit of work")
	}
	return &Service{repoManager, unitOfWork}, nil
}

// Initialize creates the registry owned by the given address. It can be
// called only once.
func (s *Service) Initialize(ctx context.Context, owner common.Address) error {
	_, err := s.unitOfWork.Run(
		ctx, opInitialize,
		func(ctx context.Context, _ *uow.Journal) (interface{}, error) {
			registry, err := domain.NewRegistry(owner)
			if err != nil {
				return nil, err
			}
			return nil, s.repoManager.RegistryRepository().InitRegistry(
				ctx, registry,
			)
		},
	)
	if err != nil {
		return err
	}

	log.Infof("registry initialized with owner %s", owner.Hex())
	return nil
}

// SetSupportedToken enables or disables the given token. The event is
// emitted only if the supported set actually changed.
func (s *Service) SetSupportedToken(
	ctx context.Context, caller, token common.Address, enable bool,
) error {
	return s.updateRegistry(
		ctx, opSetSupportedToken,
		func(r *domain.Registry) ([]domain.Event, error) {
			changed, err := r.SetSupportedToken(caller, token, enable)
			if err != nil || !changed {
				return nil, err
			}
			return []domain.Event{
				domain.TokenSupportUpdated{Token: token, Enabled: enable},
			}, nil
		},
	)
}

func (s *Service) UpdateProtocolFee(
	ctx context.Context, caller common.Address, percent uint64,
) error {
	return s.updateRegistry(
		ctx, opUpdateProtocolFee,
		func(r *domain.Registry) ([]domain.Event, error) {
			if err := r.UpdateProtocolFee(caller, percent); err != nil {
				return nil, err
			}
			return []domain.Event{
				domain.ProtocolFeeUpdated{ProtocolFee: percent},
			}, nil
		},
	)
}

func (s *Service) UpdateRoleAddress(
	ctx context.Context, caller common.Address,
	kind domain.RoleKind, addr common.Address,
) error {
	return s.updateRegistry(
		ctx, opUpdateRoleAddress,
		func(r *domain.Registry) ([]domain.Event, error) {
			if err := r.UpdateRoleAddress(caller, kind, addr); err != nil {
				return nil, err
			}
			return []domain.Event{
				domain.ProtocolAddressUpdated{What: kind.String(), Address: addr},
			}, nil
		},
	)
}

func (s *Service) Pause(ctx context.Context, caller common.Address) error {
	return s.updateRegistry(
		ctx, opPause,
		func(r *domain.Registry) ([]domain.Event, error) {
			if err := r.Pause(caller); err != nil {
				return nil, err
			}
			return []domain.Event{domain.Paused{Account: caller}}, nil
		},
	)
}

func (s *Service) Unpause(ctx context.Context, caller common.Address) error {
	return s.updateRegistry(
		ctx, opUnpause,
		func(r *domain.Registry) ([]domain.Event, error) {
			if err := r.Unpause(caller); err != nil {
				return nil, err
			}
			return []domain.Event{domain.Unpaused{Account: caller}}, nil
		},
	)
}

// GetRegistry returns a snapshot of the registry.
func (s *Service) GetRegistry(ctx context.Context) (*domain.Registry, error) {
	res, err := s.unitOfWork.Read(
		ctx, func(ctx context.Context) (interface{}, error) {
			return s.repoManager.RegistryRepository().GetRegistry(ctx)
		},
	)
	if err != nil {
		return nil, err
	}
	return res.(*domain.Registry), nil
}

func (s *Service) updateRegistry(
	ctx context.Context, operation string,
	updateFn func(r *domain.Registry) ([]domain.Event, error),
) error {
	_, err := s.unitOfWork.Run(
		ctx, operation,
		func(ctx context.Context, journal *uow.Journal) (interface{}, error) {
			return nil, s.repoManager.RegistryRepository().UpdateRegistry(
				ctx, func(r *domain.Registry) (*domain.Registry, error) {
					events, err := updateFn(r)
					if err != nil {
						return nil, err
					}
					journal.Record(events...)
					return r, nil
				},
			)
		},
	)
	if err != nil {
		return err
	}

	log.Debugf("registry updated: %s", operation)
	return nil
}
