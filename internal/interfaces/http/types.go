package httpinterface

import (
	"github.com/tdex-network/tdex-escrow/internal/core/domain"
)

type initRegistryRequest struct {
	Owner string `json:"owner"`
}

type callerRequest struct {
	Caller string `json:"caller"`
}

type setSupportedTokenRequest struct {
	Caller  string `json:"caller"`
	Token   string `json:"token"`
	Enabled bool   `json:"enabled"`
}

type updateProtocolFeeRequest struct {
	Caller      string `json:"caller"`
	ProtocolFee uint64 `json:"protocol_fee"`
}

type updateRoleAddressRequest struct {
	Caller  string `json:"caller"`
	Role    string `json:"role"`
	Address string `json:"address"`
}

type createOrderRequest struct {
	Sender             string `json:"sender"`
	Token              string `json:"token"`
	Amount             string `json:"amount"`
	Rate               string `json:"rate"`
	SenderFeeRecipient string `json:"sender_fee_recipient"`
	SenderFee          string `json:"sender_fee"`
	RefundAddress      string `json:"refund_address"`
	MessageHash        string `json:"message_hash"`
}

type settleRequest struct {
	Caller            string `json:"caller"`
	SplitOrderId      string `json:"split_order_id"`
	LiquidityProvider string `json:"liquidity_provider"`
	SettleBps         uint64 `json:"settle_bps"`
}

type refundRequest struct {
	Caller string `json:"caller"`
	Fee    string `json:"fee"`
}

type depositRequest struct {
	Account string `json:"account"`
	Asset   string `json:"asset"`
	Amount  string `json:"amount"`
}

type addWebhookRequest struct {
	Event    string `json:"event"`
	Endpoint string `json:"endpoint"`
	Secret   string `json:"secret"`
}

type errorResponse struct {
	Error string `json:"error"`
	Kind  string `json:"kind"`
}

type orderResponse struct {
	Id                 string `json:"id"`
	Sender             string `json:"sender"`
	Token              string `json:"token"`
	Amount             string `json:"amount"`
	Rate               string `json:"rate"`
	SenderFeeRecipient string `json:"sender_fee_recipient"`
	SenderFee          string `json:"sender_fee"`
	ProtocolFee        string `json:"protocol_fee"`
	RefundAddress      string `json:"refund_address"`
	MessageHash        string `json:"message_hash"`
	CurrentBps         uint64 `json:"current_bps"`
	Nonce              uint64 `json:"nonce"`
	CreatedAt          int64  `json:"created_at"`
	Status             string `json:"status"`
	IsFulfilled        bool   `json:"is_fulfilled"`
	IsRefunded         bool   `json:"is_refunded"`
}

func newOrderResponse(o domain.Order) orderResponse {
	return orderResponse{
		Id:                 o.Id.Hex(),
		Sender:             o.Sender.Hex(),
		Token:              o.Token.Hex(),
		Amount:             amountString(o.Amount),
		Rate:               o.Rate.String(),
		SenderFeeRecipient: o.SenderFeeRecipient.Hex(),
		SenderFee:          amountString(o.SenderFee),
		ProtocolFee:        amountString(o.ProtocolFee),
		RefundAddress:      o.RefundAddress.Hex(),
		MessageHash:        o.MessageHash,
		CurrentBps:         o.CurrentBps,
		Nonce:              o.Nonce,
		CreatedAt:          o.CreatedAt,
		Status:             o.Status().String(),
		IsFulfilled:        o.IsFulfilled,
		IsRefunded:         o.IsRefunded,
	}
}

type registryResponse struct {
	Owner              string   `json:"owner"`
	PendingOwner       string   `json:"pending_owner"`
	Aggregator         string   `json:"aggregator"`
	Treasury           string   `json:"treasury"`
	ProtocolFeePercent uint64   `json:"protocol_fee_percent"`
	Paused             bool     `json:"paused"`
	SupportedTokens    []string `json:"supported_tokens"`
}

func newRegistryResponse(r *domain.Registry) registryResponse {
	tokens := make([]string, 0, len(r.SupportedTokens))
	for _, token := range r.ListSupportedTokens() {
		tokens = append(tokens, token.Hex())
	}
	return registryResponse{
		Owner:              r.Owner.Hex(),
		PendingOwner:       r.PendingOwner.Hex(),
		Aggregator:         r.Aggregator.Hex(),
		Treasury:           r.Treasury.Hex(),
		ProtocolFeePercent: r.ProtocolFeePercent,
		Paused:             r.Paused,
		SupportedTokens:    tokens,
	}
}

type settlementResponse struct {
	ProviderAmount string `json:"provider_amount"`
	Fulfilled      bool   `json:"fulfilled"`
	SenderFee      string `json:"sender_fee"`
	ProtocolFee    string `json:"protocol_fee"`
}

func newSettlementResponse(s *domain.Settlement) settlementResponse {
	return settlementResponse{
		ProviderAmount: amountString(s.ProviderAmount),
		Fulfilled:      s.Fulfilled,
		SenderFee:      amountString(s.SenderFee),
		ProtocolFee:    amountString(s.ProtocolFee),
	}
}

type refundResponse struct {
	Fee    string `json:"fee"`
	Amount string `json:"amount"`
}
