package domain

import "github.com/tdex-network/tdex-escrow/pkg/mathutil"

const (
	// MaxBps is the basis points value of a whole order.
	MaxBps = mathutil.MaxBps
)

const (
	OrderStatusActive OrderStatus = iota
	OrderStatusFulfilled
	OrderStatusRefunded
)

const (
	RoleTreasury RoleKind = iota
	RoleAggregator
)

// Event topics.
const (
	TopicOrderCreated           = "ORDER_CREATED"
	TopicOrderSettled           = "ORDER_SETTLED"
	TopicOrderRefunded          = "ORDER_REFUNDED"
	TopicSenderFeeTransferred   = "SENDER_FEE_TRANSFERRED"
	TopicProtocolFeeUpdated     = "PROTOCOL_FEE_UPDATED"
	TopicProtocolAddressUpdated = "PROTOCOL_ADDRESS_UPDATED"
	TopicTokenSupportUpdated    = "TOKEN_SUPPORT_UPDATED"
	TopicPaused                 = "PAUSED"
	TopicUnpaused               = "UNPAUSED"
)

// Topics lists all the event topics, in no particular order.
var Topics = []string{
	TopicOrderCreated,
	TopicOrderSettled,
	TopicOrderRefunded,
	TopicSenderFeeTransferred,
	TopicProtocolFeeUpdated,
	TopicProtocolAddressUpdated,
	TopicTokenSupportUpdated,
	TopicPaused,
	TopicUnpaused,
}
