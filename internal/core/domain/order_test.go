package domain_test

import (
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"github.com/tdex-network/tdex-escrow/internal/core/domain"
)

var (
	sender        = common.HexToAddress("0x1000000000000000000000000000000000000001")
	token         = common.HexToAddress("0x2000000000000000000000000000000000000002")
	refundAddress = common.HexToAddress("0x3000000000000000000000000000000000000003")
	feeRecipient  = common.HexToAddress("0x4000000000000000000000000000000000000004")
	messageHash   = "QmTestMessageHash"
	rate          = decimal.RequireFromString("1500.25")
)

func TestNewOrder(t *testing.T) {
	t.Parallel()

	o, err := domain.NewOrder(
		sender, token, big.NewInt(1000000), rate, feeRecipient, big.NewInt(500),
		refundAddress, messageHash, 10000, 1, 1700000000,
	)
	require.NoError(t, err)
	require.NotNil(t, o)
	require.Equal(t, domain.DeriveOrderId(sender, 1), o.Id)
	require.Equal(t, int64(90909), o.ProtocolFee.Int64())
	require.Equal(t, int64(909091), o.Amount.Int64())
	require.Equal(t, int64(500), o.SenderFee.Int64())
	require.Equal(t, domain.MaxBps, o.CurrentBps)
	require.Equal(t, uint64(1), o.Nonce)
	require.True(t, o.IsActive())
	require.Equal(t, domain.OrderStatusActive, o.Status())

	escrowed, err := o.EscrowedAmount()
	require.NoError(t, err)
	require.Equal(t, int64(1000500), escrowed.Int64())
}

func TestFailingNewOrder(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name          string
		amount        *big.Int
		feeRecipient  common.Address
		senderFee     *big.Int
		refundAddress common.Address
		messageHash   string
		expectedError error
	}{
		{
			name:          "amount_zero",
			amount:        big.NewInt(0),
			refundAddress: refundAddress,
			messageHash:   messageHash,
			expectedError: domain.ErrAmountZero,
		},
		{
			name:          "amount_nil",
			refundAddress: refundAddress,
			messageHash:   messageHash,
			expectedError: domain.ErrAmountZero,
		},
		{
			name:          "zero_refund_address",
			amount:        big.NewInt(10),
			messageHash:   messageHash,
			expectedError: domain.ErrZeroAddress,
		},
		{
			name:          "sender_fee_without_recipient",
			amount:        big.NewInt(10),
			senderFee:     big.NewInt(1),
			refundAddress: refundAddress,
			messageHash:   messageHash,
			expectedError: domain.ErrZeroAddress,
		},
		{
			name:          "empty_message_hash",
			amount:        big.NewInt(10),
			refundAddress: refundAddress,
			expectedError: domain.ErrInvalidMessageHash,
		},
		{
			name:          "amount_zero_wins_over_other_failures",
			amount:        big.NewInt(0),
			expectedError: domain.ErrAmountZero,
		},
		{
			name:          "escrow_total_overflow",
			amount:        new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 256), big.NewInt(1)),
			feeRecipient:  feeRecipient,
			senderFee:     big.NewInt(1),
			refundAddress: refundAddress,
			messageHash:   messageHash,
			expectedError: domain.ErrArithmeticOverflow,
		},
	}

	for i := range tests {
		tt := tests[i]
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			o, err := domain.NewOrder(
				sender, token, tt.amount, rate, tt.feeRecipient, tt.senderFee,
				tt.refundAddress, tt.messageHash, 0, 1, 0,
			)
			require.ErrorIs(t, err, tt.expectedError)
			require.Nil(t, o)
		})
	}
}

func TestDeriveOrderId(t *testing.T) {
	t.Parallel()

	id := domain.DeriveOrderId(sender, 1)
	require.Equal(t, id, domain.DeriveOrderId(sender, 1))
	require.NotEqual(t, id, domain.DeriveOrderId(sender, 2))
	require.NotEqual(t, id, domain.DeriveOrderId(feeRecipient, 1))
	require.NotEqual(t, common.Hash{}, id)
}

func TestOrderSettle(t *testing.T) {
	t.Parallel()

	t.Run("single_settlement", func(t *testing.T) {
		t.Parallel()

		o := newTestOrder(t)
		s, err := o.Settle(domain.MaxBps)
		require.NoError(t, err)
		require.True(t, s.Fulfilled)
		require.Equal(t, int64(909091), s.ProviderAmount.Int64())
		require.Equal(t, int64(90909), s.ProtocolFee.Int64())
		require.Equal(t, int64(500), s.SenderFee.Int64())
		require.True(t, o.IsFulfilled)
		require.Zero(t, o.CurrentBps)
		require.Zero(t, o.Amount.Sign())
		require.Equal(t, domain.OrderStatusFulfilled, o.Status())
	})

	t.Run("split_settlements", func(t *testing.T) {
		t.Parallel()

		o := newTestOrder(t)
		paid := new(big.Int)
		for _, bps := range []uint64{33333, 33333, 33334} {
			s, err := o.Settle(bps)
			require.NoError(t, err)
			paid.Add(paid, s.ProviderAmount)
			paid.Add(paid, s.ProtocolFee)
			paid.Add(paid, s.SenderFee)
		}
		require.True(t, o.IsFulfilled)
		require.Equal(t, int64(1000500), paid.Int64())
	})

	t.Run("partial_settlement", func(t *testing.T) {
		t.Parallel()

		o := newTestOrder(t)
		s, err := o.Settle(60000)
		require.NoError(t, err)
		require.False(t, s.Fulfilled)
		require.Zero(t, s.ProtocolFee.Sign())
		require.Zero(t, s.SenderFee.Sign())
		require.Equal(t, int64(545454), s.ProviderAmount.Int64())
		require.Equal(t, uint64(40000), o.CurrentBps)
		require.Equal(t, int64(363637), o.Amount.Int64())
		require.True(t, o.IsActive())
	})
}

func TestFailingOrderSettle(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name          string
		order         func(t *testing.T) *domain.Order
		settleBps     uint64
		expectedError error
	}{
		{
			name: "settle_bps_above_remaining",
			order: func(t *testing.T) *domain.Order {
				o := newTestOrder(t)
				_, err := o.Settle(60000)
				require.NoError(t, err)
				return o
			},
			settleBps:     50000,
			expectedError: domain.ErrInvalidSettlePercent,
		},
		{
			name:          "zero_settle_bps",
			order:         newTestOrder,
			settleBps:     0,
			expectedError: domain.ErrInvalidSettlePercent,
		},
		{
			name: "already_fulfilled",
			order: func(t *testing.T) *domain.Order {
				o := newTestOrder(t)
				_, err := o.Settle(domain.MaxBps)
				require.NoError(t, err)
				return o
			},
			settleBps:     1,
			expectedError: domain.ErrOrderAlreadyFulfilled,
		},
		{
			name: "already_refunded",
			order: func(t *testing.T) *domain.Order {
				o := newTestOrder(t)
				_, err := o.Refund(big.NewInt(0))
				require.NoError(t, err)
				return o
			},
			settleBps:     1,
			expectedError: domain.ErrOrderAlreadyRefunded,
		},
	}

	for i := range tests {
		tt := tests[i]
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			o := tt.order(t)
			before := o.Clone()

			s, err := o.Settle(tt.settleBps)
			require.ErrorIs(t, err, tt.expectedError)
			require.Nil(t, s)
			require.Equal(t, before, o)
		})
	}
}

func TestOrderRefund(t *testing.T) {
	t.Parallel()

	t.Run("untouched_order", func(t *testing.T) {
		t.Parallel()

		o := newTestOrder(t)
		r, err := o.Refund(big.NewInt(1000))
		require.NoError(t, err)
		require.Equal(t, int64(1000), r.Fee.Int64())
		// 909091 + 90909 - 1000 + 500
		require.Equal(t, int64(999500), r.Amount.Int64())
		require.True(t, o.IsRefunded)
		require.Zero(t, o.CurrentBps)
		require.Equal(t, domain.OrderStatusRefunded, o.Status())
	})

	t.Run("partially_settled_order", func(t *testing.T) {
		t.Parallel()

		o := newTestOrder(t)
		s, err := o.Settle(60000)
		require.NoError(t, err)

		r, err := o.Refund(o.ProtocolFee)
		require.NoError(t, err)
		require.Equal(t, int64(90909), r.Fee.Int64())
		// remaining 363637 + sender fee 500
		require.Equal(t, int64(364137), r.Amount.Int64())

		tot := new(big.Int).Add(s.ProviderAmount, r.Amount)
		tot.Add(tot, r.Fee)
		require.Equal(t, int64(1000500), tot.Int64())
	})
}

func TestFailingOrderRefund(t *testing.T) {
	t.Parallel()

	o := newTestOrder(t)
	boundary := new(big.Int).Add(o.ProtocolFee, big.NewInt(1))

	r, err := o.Refund(boundary)
	require.ErrorIs(t, err, domain.ErrFeeExceedsProtocol)
	require.Nil(t, r)
	require.True(t, o.IsActive())

	_, err = o.Refund(o.ProtocolFee)
	require.NoError(t, err)

	_, err = o.Refund(big.NewInt(0))
	require.ErrorIs(t, err, domain.ErrOrderAlreadyRefunded)

	f := newTestOrder(t)
	_, err = f.Settle(domain.MaxBps)
	require.NoError(t, err)
	_, err = f.Refund(big.NewInt(0))
	require.ErrorIs(t, err, domain.ErrOrderAlreadyFulfilled)
}

func TestOrderClone(t *testing.T) {
	t.Parallel()

	o := newTestOrder(t)
	c := o.Clone()
	require.Equal(t, o, c)

	c.Amount.SetInt64(1)
	require.Equal(t, int64(909091), o.Amount.Int64())
}

func newTestOrder(t *testing.T) *domain.Order {
	o, err := domain.NewOrder(
		sender, token, big.NewInt(1000000), rate, feeRecipient, big.NewInt(500),
		refundAddress, messageHash, 10000, 1, 1700000000,
	)
	require.NoError(t, err)
	return o
}
