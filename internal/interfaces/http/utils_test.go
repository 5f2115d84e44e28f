package httpinterface_test

import "github.com/ethereum/go-ethereum/common"

func mustAddress(addr string) common.Address {
	if !common.IsHexAddress(addr) {
		panic("invalid address " + addr)
	}
	return common.HexToAddress(addr)
}
