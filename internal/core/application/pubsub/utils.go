package pubsub

import (
	"math/big"

	"github.com/tdex-network/tdex-escrow/internal/core/domain"
)

func getEventPayload(event domain.Event) map[string]interface{} {
	switch e := event.(type) {
	case domain.OrderCreated:
		return map[string]interface{}{
			"order_id":     e.OrderId.Hex(),
			"sender":       e.Sender.Hex(),
			"token":        e.Token.Hex(),
			"amount":       amountString(e.Amount),
			"protocol_fee": amountString(e.ProtocolFee),
			"rate":         e.Rate.String(),
			"message_hash": e.MessageHash,
		}
	case domain.OrderSettled:
		return map[string]interface{}{
			"split_order_id":     e.SplitOrderId.Hex(),
			"order_id":           e.OrderId.Hex(),
			"liquidity_provider": e.LiquidityProvider.Hex(),
			"settle_percent":     e.SettlePercent,
		}
	case domain.OrderRefunded:
		return map[string]interface{}{
			"order_id": e.OrderId.Hex(),
			"fee":      amountString(e.Fee),
		}
	case domain.SenderFeeTransferred:
		return map[string]interface{}{
			"sender_fee_recipient": e.Recipient.Hex(),
			"amount":               amountString(e.Amount),
		}
	case domain.ProtocolFeeUpdated:
		return map[string]interface{}{
			"protocol_fee": e.ProtocolFee,
		}
	case domain.ProtocolAddressUpdated:
		return map[string]interface{}{
			"what":    e.What,
			"address": e.Address.Hex(),
		}
	case domain.TokenSupportUpdated:
		return map[string]interface{}{
			"token":   e.Token.Hex(),
			"enabled": e.Enabled,
		}
	case domain.Paused:
		return map[string]interface{}{"account": e.Account.Hex()}
	case domain.Unpaused:
		return map[string]interface{}{"account": e.Account.Hex()}
	default:
		return map[string]interface{}{}
	}
}

func amountString(amount *big.Int) string {
	if amount == nil {
		return "0"
	}
	return amount.String()
}
