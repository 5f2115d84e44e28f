package application

import "errors"

var (
	// ErrUnknownDBType ...
	ErrUnknownDBType = errors.New("unknown db type")
	// ErrMissingEscrowAccount ...
	ErrMissingEscrowAccount = errors.New("missing escrow account")
)
