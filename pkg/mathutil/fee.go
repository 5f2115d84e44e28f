package mathutil

import (
	"math/big"

	"github.com/holiman/uint256"
)

// MaxBps is the basis points value representing the 100% of an amount.
const MaxBps = uint64(100000)

// ProtocolFee extracts the fee from a gross amount given a fee expressed in
// basis points of the net amount (ie. 10000 = 10%), so that the returned
// fee plus the net amount always reconstructs the gross one:
//
//	fee = amount * feePercent / (MaxBps + feePercent)
func ProtocolFee(amount *big.Int, feePercent uint64) (*big.Int, error) {
	a, err := toUint256(amount)
	if err != nil {
		return nil, err
	}
	p := uint256.NewInt(feePercent)

	num, overflow := new(uint256.Int).MulOverflow(a, p)
	if overflow {
		return nil, ErrOverflow
	}
	den, overflow := new(uint256.Int).AddOverflow(uint256.NewInt(MaxBps), p)
	if overflow {
		return nil, ErrOverflow
	}

	return new(uint256.Int).Div(num, den).ToBig(), nil
}

// ProviderShare returns the portion of the remaining amount of an order that
// belongs to a settlement of settleBps when remainingBps are still unsettled:
//
//	share = remaining * settleBps / remainingBps
//
// For an untouched order (remainingBps = MaxBps) this is the plain basis point
// fraction of the amount. When settleBps equals remainingBps the whole
// remaining amount is returned, truncation dust included.
func ProviderShare(
	remaining *big.Int, settleBps, remainingBps uint64,
) (*big.Int, error) {
	if settleBps > remainingBps || remainingBps > MaxBps || remainingBps == 0 {
		return nil, ErrInvalidBps
	}
	r, err := toUint256(remaining)
	if err != nil {
		return nil, err
	}
	if settleBps == remainingBps {
		return r.ToBig(), nil
	}

	num, overflow := new(uint256.Int).MulOverflow(r, uint256.NewInt(settleBps))
	if overflow {
		return nil, ErrOverflow
	}

	return new(uint256.Int).Div(num, uint256.NewInt(remainingBps)).ToBig(), nil
}
