package ledger

import "errors"

// ErrBalancesNotSupported is returned by GetBalance if the gateway doesn't
// keep balances.
var ErrBalancesNotSupported = errors.New("asset transfer gateway does not expose balances")
