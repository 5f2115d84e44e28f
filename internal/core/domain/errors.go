package domain

import (
	"errors"
	"fmt"

	"github.com/tdex-network/tdex-escrow/pkg/mathutil"
)

var (
	// ErrZeroAddress is returned when a required address is the zero one.
	ErrZeroAddress = errors.New("address must not be zero")
	// ErrTokenNotSupported ...
	ErrTokenNotSupported = errors.New("token is not supported")
	// ErrAmountZero ...
	ErrAmountZero = errors.New("amount must not be zero")
	// ErrInvalidStatus is returned when an operation is not allowed in the
	// current status of the entity.
	ErrInvalidStatus = errors.New("invalid status")
	// ErrAlreadyInitialized ...
	ErrAlreadyInitialized = errors.New("registry is already initialized")
	// ErrRegistryNotInitialized ...
	ErrRegistryNotInitialized = errors.New("registry is not initialized")
	// ErrUnauthorized is the parent of any role check failure.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrNotOwner ...
	ErrNotOwner = fmt.Errorf("%w: caller is not the owner", ErrUnauthorized)
	// ErrNotAggregator ...
	ErrNotAggregator = fmt.Errorf("%w: caller is not the aggregator", ErrUnauthorized)
	// ErrOrderAlreadyFulfilled ...
	ErrOrderAlreadyFulfilled = errors.New("order is already fulfilled")
	// ErrOrderAlreadyRefunded ...
	ErrOrderAlreadyRefunded = errors.New("order is already refunded")
	// ErrFeeExceedsProtocol is returned when a refund fee is greater than the
	// protocol fee of the order.
	ErrFeeExceedsProtocol = errors.New("fee exceeds protocol fee")
	// ErrPaused ...
	ErrPaused = errors.New("registry is paused")
	// ErrNotPaused ...
	ErrNotPaused = errors.New("registry is not paused")
	// ErrInvalidMessageHash ...
	ErrInvalidMessageHash = errors.New("message hash must not be empty")
	// ErrOrderNotFound ...
	ErrOrderNotFound = errors.New("order not found")
	// ErrInvalidSettlePercent is returned when the settle basis points are
	// zero or exceed the unsettled ones of the order.
	ErrInvalidSettlePercent = errors.New("invalid settle percent")
	// ErrArithmeticOverflow ...
	ErrArithmeticOverflow = mathutil.ErrOverflow
	// ErrDuplicateOrderId ...
	ErrDuplicateOrderId = errors.New("order id already exists")
	// ErrInvalidRoleKind ...
	ErrInvalidRoleKind = errors.New("role must be either treasury or aggregator")
)

var errorKinds = []struct {
	err  error
	kind string
}{
	{ErrZeroAddress, "ZeroAddress"},
	{ErrTokenNotSupported, "TokenNotSupported"},
	{ErrAmountZero, "AmountZero"},
	{ErrInvalidStatus, "InvalidStatus"},
	{ErrPaused, "Paused"},
	{ErrNotPaused, "NotPaused"},
	{ErrAlreadyInitialized, "AlreadyInitialized"},
	{ErrRegistryNotInitialized, "NotInitialized"},
	{ErrUnauthorized, "Unauthorized"},
	{ErrOrderAlreadyFulfilled, "OrderAlreadyFulfilled"},
	{ErrOrderAlreadyRefunded, "OrderAlreadyRefunded"},
	{ErrFeeExceedsProtocol, "FeeExceedsProtocol"},
	{ErrInvalidMessageHash, "InvalidMessageHash"},
	{ErrOrderNotFound, "OrderNotFound"},
	{ErrInvalidSettlePercent, "InvalidSettlePercent"},
	{ErrArithmeticOverflow, "ArithmeticOverflow"},
	{ErrDuplicateOrderId, "DuplicateOrderId"},
	{ErrInvalidRoleKind, "InvalidRoleKind"},
	{ErrInsufficientBalance, "InsufficientBalance"},
}

// ErrorKind returns the name of the kind of the given error, or "Internal" if
// it's not a domain one.
func ErrorKind(err error) string {
	if err == nil {
		return ""
	}
	for _, k := range errorKinds {
		if errors.Is(err, k.err) {
			return k.kind
		}
	}
	return "Internal"
}
