package domain

import (
	"encoding/binary"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/shopspring/decimal"
	"github.com/tdex-network/tdex-escrow/pkg/mathutil"
)

// OrderStatus is the status derived from the terminal flags of an order.
type OrderStatus int

func (s OrderStatus) String() string {
	switch s {
	case OrderStatusFulfilled:
		return "FULFILLED"
	case OrderStatusRefunded:
		return "REFUNDED"
	default:
		return "ACTIVE"
	}
}

// Order is the data structure representing an escrowed payment order.
type Order struct {
	// Id is derived from sender and nonce, see DeriveOrderId.
	Id                 common.Hash
	Sender             common.Address
	Token              common.Address
	SenderFeeRecipient common.Address
	SenderFee          *big.Int
	// ProtocolFee is owed to the treasury and is fixed at creation time.
	ProtocolFee   *big.Int
	IsFulfilled   bool
	IsRefunded    bool
	RefundAddress common.Address
	// CurrentBps are the basis points of the order not yet settled.
	CurrentBps uint64
	// Amount is the principal, net of protocol fee, still owed to liquidity
	// providers.
	Amount      *big.Int
	Nonce       uint64
	Rate        decimal.Decimal
	MessageHash string
	CreatedAt   int64
}

// Settlement holds the amounts to disburse as result of a settlement.
type Settlement struct {
	ProviderAmount *big.Int
	Fulfilled      bool
	// SenderFee and ProtocolFee are non zero only when the settlement fulfills
	// the order.
	SenderFee   *big.Int
	ProtocolFee *big.Int
}

// Refund holds the amounts to disburse as result of a refund.
type Refund struct {
	// Fee goes to the treasury.
	Fee *big.Int
	// Amount goes to the refund address and includes the sender fee.
	Amount *big.Int
}

// NewOrder returns a new active order after validating the given arguments.
// The protocol fee is extracted from the gross amount with the given fee
// percentage.
func NewOrder(
	sender, token common.Address, amount *big.Int, rate decimal.Decimal,
	senderFeeRecipient common.Address, senderFee *big.Int,
	refundAddress common.Address, messageHash string,
	protocolFeePercent, nonce uint64, timestamp int64,
) (*Order, error) {
	if mathutil.IsZero(amount) {
		return nil, ErrAmountZero
	}
	if isZeroAddress(refundAddress) {
		return nil, ErrZeroAddress
	}
	if senderFee == nil {
		senderFee = new(big.Int)
	}
	if senderFee.Sign() != 0 && isZeroAddress(senderFeeRecipient) {
		return nil, ErrZeroAddress
	}
	if len(messageHash) <= 0 {
		return nil, ErrInvalidMessageHash
	}

	protocolFee, err := mathutil.ProtocolFee(amount, protocolFeePercent)
	if err != nil {
		return nil, err
	}
	netAmount, err := mathutil.Sub(amount, protocolFee)
	if err != nil {
		return nil, err
	}
	// The whole escrowed value must be representable.
	if _, err := mathutil.Add(amount, senderFee); err != nil {
		return nil, err
	}

	return &Order{
		Id:                 DeriveOrderId(sender, nonce),
		Sender:             sender,
		Token:              token,
		SenderFeeRecipient: senderFeeRecipient,
		SenderFee:          new(big.Int).Set(senderFee),
		ProtocolFee:        protocolFee,
		RefundAddress:      refundAddress,
		CurrentBps:         MaxBps,
		Amount:             netAmount,
		Nonce:              nonce,
		Rate:               rate,
		MessageHash:        messageHash,
		CreatedAt:          timestamp,
	}, nil
}

// DeriveOrderId returns keccak256(sender ‖ uint256(nonce)).
func DeriveOrderId(sender common.Address, nonce uint64) common.Hash {
	n := make([]byte, 32)
	binary.BigEndian.PutUint64(n[24:], nonce)
	return crypto.Keccak256Hash(sender.Bytes(), n)
}

// Status returns the current status of the order.
func (o *Order) Status() OrderStatus {
	switch {
	case o.IsFulfilled:
		return OrderStatusFulfilled
	case o.IsRefunded:
		return OrderStatusRefunded
	default:
		return OrderStatusActive
	}
}

// IsActive returns whether the order can still be settled or refunded.
func (o *Order) IsActive() bool {
	return !o.IsFulfilled && !o.IsRefunded
}

// EscrowedAmount returns the value currently held in escrow for the order.
func (o *Order) EscrowedAmount() (*big.Int, error) {
	if !o.IsActive() {
		return new(big.Int), nil
	}
	return mathutil.Sum(o.Amount, o.ProtocolFee, o.SenderFee)
}

// Settle moves settleBps of the order to a liquidity provider. The provider
// share is proportional to the unsettled part of the order so that the
// settlement bringing CurrentBps to zero collects the whole remaining amount.
// On that last settlement the order is fulfilled and both fees are released.
func (o *Order) Settle(settleBps uint64) (*Settlement, error) {
	if err := o.validateActive(); err != nil {
		return nil, err
	}
	if settleBps == 0 || settleBps > o.CurrentBps {
		return nil, ErrInvalidSettlePercent
	}

	providerAmount, err := mathutil.ProviderShare(o.Amount, settleBps, o.CurrentBps)
	if err != nil {
		return nil, err
	}
	remaining, err := mathutil.Sub(o.Amount, providerAmount)
	if err != nil {
		return nil, err
	}

	o.CurrentBps -= settleBps
	o.Amount = remaining

	settlement := &Settlement{
		ProviderAmount: providerAmount,
		SenderFee:      new(big.Int),
		ProtocolFee:    new(big.Int),
	}
	if o.CurrentBps == 0 {
		o.IsFulfilled = true
		settlement.Fulfilled = true
		settlement.SenderFee = new(big.Int).Set(o.SenderFee)
		settlement.ProtocolFee = new(big.Int).Set(o.ProtocolFee)
	}
	return settlement, nil
}

// Refund closes the order returning what is still escrowed to the refund
// address, except for the given fee that is retained for the treasury.
func (o *Order) Refund(fee *big.Int) (*Refund, error) {
	if err := o.validateActive(); err != nil {
		return nil, err
	}
	if fee == nil {
		fee = new(big.Int)
	}
	if fee.Sign() < 0 {
		return nil, ErrArithmeticOverflow
	}
	if fee.Cmp(o.ProtocolFee) > 0 {
		return nil, ErrFeeExceedsProtocol
	}

	refundAmount, err := mathutil.Add(o.Amount, o.ProtocolFee)
	if err != nil {
		return nil, err
	}
	if refundAmount, err = mathutil.Sub(refundAmount, fee); err != nil {
		return nil, err
	}
	if refundAmount, err = mathutil.Add(refundAmount, o.SenderFee); err != nil {
		return nil, err
	}

	o.IsRefunded = true
	o.CurrentBps = 0

	return &Refund{
		Fee:    new(big.Int).Set(fee),
		Amount: refundAmount,
	}, nil
}

// Clone returns a deep copy of the order.
func (o Order) Clone() *Order {
	o.SenderFee = cloneAmount(o.SenderFee)
	o.ProtocolFee = cloneAmount(o.ProtocolFee)
	o.Amount = cloneAmount(o.Amount)
	return &o
}

func (o *Order) validateActive() error {
	if o.IsFulfilled {
		return ErrOrderAlreadyFulfilled
	}
	if o.IsRefunded {
		return ErrOrderAlreadyRefunded
	}
	return nil
}

func cloneAmount(x *big.Int) *big.Int {
	if x == nil {
		return new(big.Int)
	}
	return new(big.Int).Set(x)
}

func isZeroAddress(addr common.Address) bool {
	return addr == (common.Address{})
}
