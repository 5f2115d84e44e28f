package httpinterface

import (
	"encoding/json"
	"errors"
	"fmt"
	"math/big"
	"net/http"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/shopspring/decimal"
	"github.com/tdex-network/tdex-escrow/pkg/mathutil"
)

// errInvalidRequest marks malformed requests.
var errInvalidRequest = errors.New("invalid request")

func invalidRequest(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", errInvalidRequest, fmt.Sprintf(format, args...))
}

func decodeBody(r *http.Request, v interface{}) error {
	defer r.Body.Close()

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return invalidRequest("malformed body: %s", err)
	}
	return nil
}

// parseAddress parses a hex address. The zero address is accepted, domain
// checks reject it where not allowed.
func parseAddress(name, addr string) (common.Address, error) {
	addr = strings.TrimSpace(addr)
	if len(addr) <= 0 {
		return common.Address{}, nil
	}
	if !common.IsHexAddress(addr) {
		return common.Address{}, invalidRequest("invalid %s address", name)
	}
	return common.HexToAddress(addr), nil
}

func parseHash(name, hash string) (common.Hash, error) {
	hash = strings.TrimSpace(hash)
	if len(hash) <= 0 {
		return common.Hash{}, nil
	}
	buf, err := hexutil.Decode(hash)
	if err != nil || len(buf) != common.HashLength {
		return common.Hash{}, invalidRequest("invalid %s", name)
	}
	return common.BytesToHash(buf), nil
}

// parseOptionalAmount returns zero for an empty string.
func parseOptionalAmount(name, amount string) (*big.Int, error) {
	if len(strings.TrimSpace(amount)) <= 0 {
		return big.NewInt(0), nil
	}
	return parseAmount(name, amount)
}

func parseAmount(name, amount string) (*big.Int, error) {
	n, err := mathutil.ParseAmount(amount)
	if err != nil {
		return nil, invalidRequest("invalid %s: %s", name, err)
	}
	return n, nil
}

func parseRate(rate string) (decimal.Decimal, error) {
	if len(strings.TrimSpace(rate)) <= 0 {
		return decimal.Zero, nil
	}
	r, err := decimal.NewFromString(rate)
	if err != nil {
		return decimal.Zero, invalidRequest("invalid rate: %s", err)
	}
	return r, nil
}

func amountString(amount *big.Int) string {
	if amount == nil {
		return "0"
	}
	return amount.String()
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	//nolint
	json.NewEncoder(w).Encode(v)
}
