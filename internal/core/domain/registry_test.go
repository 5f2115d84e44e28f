package domain_test

import (
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/require"
	"github.com/tdex-network/tdex-escrow/internal/core/domain"
)

var (
	owner      = common.HexToAddress("0xa00000000000000000000000000000000000000a")
	aggregator = common.HexToAddress("0xb00000000000000000000000000000000000000b")
	treasury   = common.HexToAddress("0xc00000000000000000000000000000000000000c")
	stranger   = common.HexToAddress("0xd00000000000000000000000000000000000000d")
)

func TestNewRegistry(t *testing.T) {
	t.Parallel()

	r, err := domain.NewRegistry(owner)
	require.NoError(t, err)
	require.Equal(t, owner, r.Owner)
	require.Equal(t, common.Address{}, r.PendingOwner)
	require.False(t, r.Paused)
	require.Zero(t, r.ProtocolFeePercent)
	require.Empty(t, r.ListSupportedTokens())

	r, err = domain.NewRegistry(common.Address{})
	require.ErrorIs(t, err, domain.ErrZeroAddress)
	require.Nil(t, r)
}

func TestRegistrySetSupportedToken(t *testing.T) {
	t.Parallel()

	r := newTestRegistry(t)

	changed, err := r.SetSupportedToken(owner, token, true)
	require.NoError(t, err)
	require.True(t, changed)
	require.True(t, r.IsTokenSupported(token))

	// Idempotent add.
	changed, err = r.SetSupportedToken(owner, token, true)
	require.NoError(t, err)
	require.False(t, changed)
	require.Len(t, r.ListSupportedTokens(), 1)

	changed, err = r.SetSupportedToken(owner, token, false)
	require.NoError(t, err)
	require.True(t, changed)
	require.False(t, r.IsTokenSupported(token))

	// Idempotent remove.
	changed, err = r.SetSupportedToken(owner, token, false)
	require.NoError(t, err)
	require.False(t, changed)
}

func TestFailingRegistrySetSupportedToken(t *testing.T) {
	t.Parallel()

	r := newTestRegistry(t)

	_, err := r.SetSupportedToken(stranger, token, true)
	require.ErrorIs(t, err, domain.ErrUnauthorized)
	require.ErrorIs(t, err, domain.ErrNotOwner)

	_, err = r.SetSupportedToken(owner, common.Address{}, true)
	require.ErrorIs(t, err, domain.ErrZeroAddress)
}

func TestRegistryUpdateRoleAddress(t *testing.T) {
	t.Parallel()

	r := newTestRegistry(t)

	require.NoError(t, r.UpdateRoleAddress(owner, domain.RoleTreasury, treasury))
	require.NoError(t, r.UpdateRoleAddress(owner, domain.RoleAggregator, aggregator))
	require.Equal(t, treasury, r.Treasury)
	require.Equal(t, aggregator, r.Aggregator)
	require.NoError(t, r.OnlyAggregator(aggregator))

	tests := []struct {
		name          string
		caller        common.Address
		kind          domain.RoleKind
		addr          common.Address
		expectedError error
	}{
		{"not_owner", stranger, domain.RoleTreasury, treasury, domain.ErrNotOwner},
		{"zero_address", owner, domain.RoleAggregator, common.Address{}, domain.ErrZeroAddress},
		{"unknown_role", owner, domain.RoleKind(7), treasury, domain.ErrInvalidRoleKind},
	}

	for i := range tests {
		tt := tests[i]
		t.Run(tt.name, func(t *testing.T) {
			err := r.UpdateRoleAddress(tt.caller, tt.kind, tt.addr)
			require.ErrorIs(t, err, tt.expectedError)
			require.Equal(t, treasury, r.Treasury)
			require.Equal(t, aggregator, r.Aggregator)
		})
	}
}

func TestRegistryOnlyAggregator(t *testing.T) {
	t.Parallel()

	r := newTestRegistry(t)
	require.ErrorIs(t, r.OnlyAggregator(common.Address{}), domain.ErrNotAggregator)

	require.NoError(t, r.UpdateRoleAddress(owner, domain.RoleAggregator, aggregator))
	require.ErrorIs(t, r.OnlyAggregator(owner), domain.ErrUnauthorized)
}

func TestRegistryPause(t *testing.T) {
	t.Parallel()

	r := newTestRegistry(t)

	err := r.Unpause(owner)
	require.ErrorIs(t, err, domain.ErrInvalidStatus)
	require.ErrorIs(t, err, domain.ErrNotPaused)

	require.ErrorIs(t, r.Pause(stranger), domain.ErrNotOwner)
	require.NoError(t, r.Pause(owner))
	require.True(t, r.Paused)

	err = r.Pause(owner)
	require.ErrorIs(t, err, domain.ErrInvalidStatus)
	require.ErrorIs(t, err, domain.ErrPaused)
	require.Equal(t, "InvalidStatus", domain.ErrorKind(err))

	require.NoError(t, r.Unpause(owner))
	require.False(t, r.Paused)
}

func TestRegistryUpdateProtocolFee(t *testing.T) {
	t.Parallel()

	r := newTestRegistry(t)
	require.ErrorIs(t, r.UpdateProtocolFee(stranger, 1), domain.ErrNotOwner)

	require.NoError(t, r.UpdateProtocolFee(owner, 10000))
	fee, maxBps := r.FeeConfig()
	require.Equal(t, uint64(10000), fee)
	require.Equal(t, domain.MaxBps, maxBps)
}

func TestRegistryClone(t *testing.T) {
	t.Parallel()

	r := newTestRegistry(t)
	_, err := r.SetSupportedToken(owner, token, true)
	require.NoError(t, err)

	c := r.Clone()
	_, err = c.SetSupportedToken(owner, token, false)
	require.NoError(t, err)
	require.True(t, r.IsTokenSupported(token))
}

func TestParseRoleKind(t *testing.T) {
	t.Parallel()

	kind, err := domain.ParseRoleKind("Treasury")
	require.NoError(t, err)
	require.Equal(t, domain.RoleTreasury, kind)

	kind, err = domain.ParseRoleKind("aggregator")
	require.NoError(t, err)
	require.Equal(t, domain.RoleAggregator, kind)

	_, err = domain.ParseRoleKind("owner")
	require.ErrorIs(t, err, domain.ErrInvalidRoleKind)
}

func newTestRegistry(t *testing.T) *domain.Registry {
	r, err := domain.NewRegistry(owner)
	require.NoError(t, err)
	return r
}
