package dbbadger

import (
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/shopspring/decimal"
	"github.com/tdex-network/tdex-escrow/internal/core/domain"
)

const (
	registryKey     = "registry"
	orderCounterKey = "orders"
)

// Order is the stored version of domain.Order. Amounts are base-10 strings
// and addresses hex strings.
type Order struct {
	Id                 string
	Seq                uint64
	Sender             string
	Token              string
	SenderFeeRecipient string
	SenderFee          string
	ProtocolFee        string
	IsFulfilled        bool
	IsRefunded         bool
	RefundAddress      string
	CurrentBps         uint64
	Amount             string
	Nonce              uint64
	Rate               string
	MessageHash        string
	CreatedAt          int64
}

type Registry struct {
	Owner              string
	PendingOwner       string
	Aggregator         string
	Treasury           string
	ProtocolFeePercent uint64
	Paused             bool
	SupportedTokens    []string
}

type Balance struct {
	Account string
	Asset   string
	Amount  string
}

type Nonce struct {
	Sender string
	Value  uint64
}

type Counter struct {
	Value uint64
}

func balanceKey(account, asset common.Address) string {
	return fmt.Sprintf("%s:%s", account.Hex(), asset.Hex())
}

func toInfraOrder(order domain.Order, seq uint64) *Order {
	return &Order{
		Id:                 order.Id.Hex(),
		Seq:                seq,
		Sender:             order.Sender.Hex(),
		Token:              order.Token.Hex(),
		SenderFeeRecipient: order.SenderFeeRecipient.Hex(),
		SenderFee:          amountString(order.SenderFee),
		ProtocolFee:        amountString(order.ProtocolFee),
		IsFulfilled:        order.IsFulfilled,
		IsRefunded:         order.IsRefunded,
		RefundAddress:      order.RefundAddress.Hex(),
		CurrentBps:         order.CurrentBps,
		Amount:             amountString(order.Amount),
		Nonce:              order.Nonce,
		Rate:               order.Rate.String(),
		MessageHash:        order.MessageHash,
		CreatedAt:          order.CreatedAt,
	}
}

func (o Order) toDomain() (*domain.Order, error) {
	senderFee, err := parseAmount(o.SenderFee)
	if err != nil {
		return nil, err
	}
	protocolFee, err := parseAmount(o.ProtocolFee)
	if err != nil {
		return nil, err
	}
	amount, err := parseAmount(o.Amount)
	if err != nil {
		return nil, err
	}
	rate, err := decimal.NewFromString(o.Rate)
	if err != nil {
		return nil, fmt.Errorf("invalid stored rate %s: %w", o.Rate, err)
	}

	return &domain.Order{
		Id:                 common.HexToHash(o.Id),
		Sender:             common.HexToAddress(o.Sender),
		Token:              common.HexToAddress(o.Token),
		SenderFeeRecipient: common.HexToAddress(o.SenderFeeRecipient),
		SenderFee:          senderFee,
		ProtocolFee:        protocolFee,
		IsFulfilled:        o.IsFulfilled,
		IsRefunded:         o.IsRefunded,
		RefundAddress:      common.HexToAddress(o.RefundAddress),
		CurrentBps:         o.CurrentBps,
		Amount:             amount,
		Nonce:              o.Nonce,
		Rate:               rate,
		MessageHash:        o.MessageHash,
		CreatedAt:          o.CreatedAt,
	}, nil
}

func toInfraRegistry(registry domain.Registry) *Registry {
	tokens := registry.ListSupportedTokens()
	supportedTokens := make([]string, 0, len(tokens))
	for _, token := range tokens {
		supportedTokens = append(supportedTokens, token.Hex())
	}

	return &Registry{
		Owner:              registry.Owner.Hex(),
		PendingOwner:       registry.PendingOwner.Hex(),
		Aggregator:         registry.Aggregator.Hex(),
		Treasury:           registry.Treasury.Hex(),
		ProtocolFeePercent: registry.ProtocolFeePercent,
		Paused:             registry.Paused,
		SupportedTokens:    supportedTokens,
	}
}

func (r Registry) toDomain() *domain.Registry {
	tokens := make(map[common.Address]bool, len(r.SupportedTokens))
	for _, token := range r.SupportedTokens {
		tokens[common.HexToAddress(token)] = true
	}

	return &domain.Registry{
		Owner:              common.HexToAddress(r.Owner),
		PendingOwner:       common.HexToAddress(r.PendingOwner),
		Aggregator:         common.HexToAddress(r.Aggregator),
		Treasury:           common.HexToAddress(r.Treasury),
		ProtocolFeePercent: r.ProtocolFeePercent,
		Paused:             r.Paused,
		SupportedTokens:    tokens,
	}
}

func amountString(amount *big.Int) string {
	if amount == nil {
		return "0"
	}
	return amount.String()
}

func parseAmount(s string) (*big.Int, error) {
	amount, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return nil, fmt.Errorf("invalid stored amount %s", s)
	}
	return amount, nil
}
