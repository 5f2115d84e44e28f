package domain

import (
	"bytes"
	"fmt"
	"sort"
	"strings"

	"github.com/ethereum/go-ethereum/common"
)

// RoleKind identifies the role addresses that the owner can update.
type RoleKind int

func (k RoleKind) String() string {
	switch k {
	case RoleTreasury:
		return "treasury"
	case RoleAggregator:
		return "aggregator"
	default:
		return "unknown"
	}
}

// ParseRoleKind returns the RoleKind for the given name.
func ParseRoleKind(kind string) (RoleKind, error) {
	switch strings.ToLower(strings.TrimSpace(kind)) {
	case "treasury":
		return RoleTreasury, nil
	case "aggregator":
		return RoleAggregator, nil
	default:
		return -1, ErrInvalidRoleKind
	}
}

// Registry holds the owner-controlled settings of the ledger.
type Registry struct {
	Owner common.Address
	// PendingOwner is reserved for a two-step ownership transfer. No operation
	// writes it.
	PendingOwner common.Address
	// Aggregator is the only address allowed to settle and refund orders.
	Aggregator common.Address
	// Treasury receives protocol fees.
	Treasury common.Address
	// ProtocolFeePercent is expressed in basis points, see MaxBps.
	ProtocolFeePercent uint64
	Paused             bool
	SupportedTokens    map[common.Address]bool
}

// NewRegistry returns a new unpaused registry owned by the given address.
func NewRegistry(owner common.Address) (*Registry, error) {
	if isZeroAddress(owner) {
		return nil, ErrZeroAddress
	}
	return &Registry{
		Owner:           owner,
		SupportedTokens: make(map[common.Address]bool),
	}, nil
}

// OnlyOwner returns an error if the caller is not the owner.
func (r *Registry) OnlyOwner(caller common.Address) error {
	if caller != r.Owner {
		return ErrNotOwner
	}
	return nil
}

// OnlyAggregator returns an error if the caller is not the aggregator. A
// registry with unset aggregator rejects any caller.
func (r *Registry) OnlyAggregator(caller common.Address) error {
	if isZeroAddress(r.Aggregator) || caller != r.Aggregator {
		return ErrNotAggregator
	}
	return nil
}

// IsTokenSupported returns whether the token can be escrowed.
func (r *Registry) IsTokenSupported(token common.Address) bool {
	return r.SupportedTokens[token]
}

// SetSupportedToken adds or removes a token from the supported ones. It
// returns whether the set has actually changed.
func (r *Registry) SetSupportedToken(
	caller, token common.Address, enable bool,
) (bool, error) {
	if err := r.OnlyOwner(caller); err != nil {
		return false, err
	}
	if isZeroAddress(token) {
		return false, ErrZeroAddress
	}

	if r.SupportedTokens == nil {
		r.SupportedTokens = make(map[common.Address]bool)
	}
	if r.SupportedTokens[token] == enable {
		return false, nil
	}
	if enable {
		r.SupportedTokens[token] = true
	} else {
		delete(r.SupportedTokens, token)
	}
	return true, nil
}

// UpdateProtocolFee replaces the fee percentage applied to new orders.
func (r *Registry) UpdateProtocolFee(caller common.Address, percent uint64) error {
	if err := r.OnlyOwner(caller); err != nil {
		return err
	}
	r.ProtocolFeePercent = percent
	return nil
}

// UpdateRoleAddress sets either the treasury or the aggregator address.
func (r *Registry) UpdateRoleAddress(
	caller common.Address, kind RoleKind, addr common.Address,
) error {
	if err := r.OnlyOwner(caller); err != nil {
		return err
	}
	if isZeroAddress(addr) {
		return ErrZeroAddress
	}

	switch kind {
	case RoleTreasury:
		r.Treasury = addr
	case RoleAggregator:
		r.Aggregator = addr
	default:
		return ErrInvalidRoleKind
	}
	return nil
}

// Pause stops the creation of new orders.
func (r *Registry) Pause(caller common.Address) error {
	if err := r.OnlyOwner(caller); err != nil {
		return err
	}
	if r.Paused {
		return fmt.Errorf("%w: %w", ErrInvalidStatus, ErrPaused)
	}
	r.Paused = true
	return nil
}

// Unpause restores the creation of new orders.
func (r *Registry) Unpause(caller common.Address) error {
	if err := r.OnlyOwner(caller); err != nil {
		return err
	}
	if !r.Paused {
		return fmt.Errorf("%w: %w", ErrInvalidStatus, ErrNotPaused)
	}
	r.Paused = false
	return nil
}

// FeeConfig returns the protocol fee percentage and its basis points scale.
func (r *Registry) FeeConfig() (uint64, uint64) {
	return r.ProtocolFeePercent, MaxBps
}

// ListSupportedTokens returns the supported tokens sorted by address.
func (r *Registry) ListSupportedTokens() []common.Address {
	tokens := make([]common.Address, 0, len(r.SupportedTokens))
	for token, ok := range r.SupportedTokens {
		if ok {
			tokens = append(tokens, token)
		}
	}
	sort.Slice(tokens, func(i, j int) bool {
		return bytes.Compare(tokens[i][:], tokens[j][:]) < 0
	})
	return tokens
}

// Clone returns a deep copy of the registry.
func (r Registry) Clone() *Registry {
	tokens := make(map[common.Address]bool, len(r.SupportedTokens))
	for k, v := range r.SupportedTokens {
		tokens[k] = v
	}
	r.SupportedTokens = tokens
	return &r
}
