package domain

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/shopspring/decimal"
)

// Event is implemented by any state change notification emitted by the
// ledger.
type Event interface {
	Topic() string
}

type OrderCreated struct {
	Sender      common.Address  `json:"sender"`
	Token       common.Address  `json:"token"`
	Amount      *big.Int        `json:"amount"`
	ProtocolFee *big.Int        `json:"protocol_fee"`
	OrderId     common.Hash     `json:"order_id"`
	Rate        decimal.Decimal `json:"rate"`
	MessageHash string          `json:"message_hash"`
}

func (OrderCreated) Topic() string { return TopicOrderCreated }

type OrderSettled struct {
	SplitOrderId      common.Hash    `json:"split_order_id"`
	OrderId           common.Hash    `json:"order_id"`
	LiquidityProvider common.Address `json:"liquidity_provider"`
	SettlePercent     uint64         `json:"settle_percent"`
}

func (OrderSettled) Topic() string { return TopicOrderSettled }

type OrderRefunded struct {
	Fee     *big.Int    `json:"fee"`
	OrderId common.Hash `json:"order_id"`
}

func (OrderRefunded) Topic() string { return TopicOrderRefunded }

type SenderFeeTransferred struct {
	Recipient common.Address `json:"sender_fee_recipient"`
	Amount    *big.Int       `json:"amount"`
}

func (SenderFeeTransferred) Topic() string { return TopicSenderFeeTransferred }

type ProtocolFeeUpdated struct {
	ProtocolFee uint64 `json:"protocol_fee"`
}

func (ProtocolFeeUpdated) Topic() string { return TopicProtocolFeeUpdated }

type ProtocolAddressUpdated struct {
	What    string         `json:"what"`
	Address common.Address `json:"address"`
}

func (ProtocolAddressUpdated) Topic() string { return TopicProtocolAddressUpdated }

type TokenSupportUpdated struct {
	Token   common.Address `json:"token"`
	Enabled bool           `json:"enabled"`
}

func (TokenSupportUpdated) Topic() string { return TopicTokenSupportUpdated }

type Paused struct {
	Account common.Address `json:"account"`
}

func (Paused) Topic() string { return TopicPaused }

type Unpaused struct {
	Account common.Address `json:"account"`
}

func (Unpaused) Topic() string { return TopicUnpaused }
