package ledger

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/shopspring/decimal"
)

// CreateOrderArgs are the arguments of a new order. Amount is the gross
// amount, protocol fee included.
type CreateOrderArgs struct {
	Sender             common.Address
	Token              common.Address
	Amount             *big.Int
	Rate               decimal.Decimal
	SenderFeeRecipient common.Address
	SenderFee          *big.Int
	RefundAddress      common.Address
	MessageHash        string
}

// SettleArgs are the arguments of a settlement.
type SettleArgs struct {
	Caller            common.Address
	SplitOrderId      common.Hash
	OrderId           common.Hash
	LiquidityProvider common.Address
	SettleBps         uint64
}

// RefundArgs are the arguments of a refund.
type RefundArgs struct {
	Caller  common.Address
	Fee     *big.Int
	OrderId common.Hash
}

// FeeConfig is the protocol fee percentage and its basis points scale.
type FeeConfig struct {
	ProtocolFeePercent uint64
	MaxBps             uint64
}
