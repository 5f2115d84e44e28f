package mathutil

import (
	"errors"
	"math/big"
	"strings"

	"github.com/holiman/uint256"
	"github.com/shopspring/decimal"
)

var (
	// ErrOverflow is returned when an operation exceeds the 256-bit unsigned
	// range, or would go below zero.
	ErrOverflow = errors.New("arithmetic overflow")
	// ErrInvalidBps ...
	ErrInvalidBps = errors.New("invalid basis points")
	// ErrInvalidAmount ...
	ErrInvalidAmount = errors.New("amount must be a base-10 unsigned integer")
)

// Add takes two amounts and sums them x + y. The result must fit 256 bits.
func Add(x, y *big.Int) (*big.Int, error) {
	X, err := toUint256(x)
	if err != nil {
		return nil, err
	}
	Y, err := toUint256(y)
	if err != nil {
		return nil, err
	}
	z, overflow := new(uint256.Int).AddOverflow(X, Y)
	if overflow {
		return nil, ErrOverflow
	}
	return z.ToBig(), nil
}

// Sub takes two amounts and subtracts them x - y. It fails if y > x.
func Sub(x, y *big.Int) (*big.Int, error) {
	X, err := toUint256(x)
	if err != nil {
		return nil, err
	}
	Y, err := toUint256(y)
	if err != nil {
		return nil, err
	}
	z, underflow := new(uint256.Int).SubOverflow(X, Y)
	if underflow {
		return nil, ErrOverflow
	}
	return z.ToBig(), nil
}

// Sum adds up all the given amounts.
func Sum(amounts ...*big.Int) (*big.Int, error) {
	tot := new(big.Int)
	for _, a := range amounts {
		var err error
		if tot, err = Add(tot, a); err != nil {
			return nil, err
		}
	}
	return tot, nil
}

// IsZero returns whether the given amount is nil or zero.
func IsZero(x *big.Int) bool {
	return x == nil || x.Sign() == 0
}

// ParseAmount parses a base-10 string into an amount in the uint256 range.
func ParseAmount(s string) (*big.Int, error) {
	s = strings.TrimSpace(s)
	if len(s) <= 0 {
		return nil, ErrInvalidAmount
	}
	n, err := uint256.FromDecimal(s)
	if err != nil {
		return nil, ErrInvalidAmount
	}
	return n.ToBig(), nil
}

// FormatAmount returns the human readable representation of an amount of an
// asset with the given precision, ie. 150000000 with precision 8 is "1.5".
func FormatAmount(amount *big.Int, precision int32) string {
	if amount == nil {
		return "0"
	}
	return decimal.NewFromBigInt(amount, -precision).String()
}

func toUint256(x *big.Int) (*uint256.Int, error) {
	if x == nil {
		return new(uint256.Int), nil
	}
	if x.Sign() < 0 {
		return nil, ErrOverflow
	}
	z, overflow := uint256.FromBig(x)
	if overflow {
		return nil, ErrOverflow
	}
	return z, nil
}
