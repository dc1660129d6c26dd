// Package ethereum holds the few EVM conversions the console performs locally:
// address format checks for operator input and decoding of balance figures the
// backend already computed. Nothing here talks to a chain.
package ethereum

import (
	"errors"
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/shopspring/decimal"
)

// Errors
var (
	ErrInvalidAddress = errors.New("invalid ethereum address")
	ErrInvalidHex     = errors.New("invalid hex quantity")
	ErrInvalidAmount  = errors.New("failed to parse amount")
)

// IsAddress reports whether s is a 20-byte hex address, with or without the 0x prefix.
// Only a format check; the backend re-validates.
func IsAddress(s string) bool {
	return common.IsHexAddress(strings.TrimSpace(s))
}

// ChecksumAddress returns the EIP-55 form of s.
func ChecksumAddress(s string) (string, error) {
	s = strings.TrimSpace(s)
	if !common.IsHexAddress(s) {
		return "", fmt.Errorf("%w: %q", ErrInvalidAddress, s)
	}
	return common.HexToAddress(s).Hex(), nil
}

// ShortAddress renders 0x1234...abcd. Strings that are too short are returned unchanged.
func ShortAddress(s string) string {
	if len(s) <= 10 {
		return s
	}
	return s[:6] + "..." + s[len(s)-4:]
}

// DecodeWei decodes a 0x-prefixed hex quantity such as balanceInHex.
func DecodeWei(hex string) (*big.Int, error) {
	v, err := hexutil.DecodeBig(strings.TrimSpace(hex))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidHex, err)
	}
	return v, nil
}

// FromWei scales an integer amount down by decimals.
func FromWei(wei *big.Int, decimals int32) decimal.Decimal {
	if wei == nil {
		return decimal.Zero
	}
	return decimal.NewFromBigInt(wei, -decimals)
}

// ParseAmount parses a decimal amount typed by the operator. The amount must be
// strictly positive and carry at most maxDecimals fractional digits (0 disables the check).
func ParseAmount(s string, maxDecimals int32) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
	}
	if !d.IsPositive() {
		return decimal.Zero, fmt.Errorf("%w: %q must be greater than zero", ErrInvalidAmount, s)
	}
	if maxDecimals > 0 && -d.Exponent() > maxDecimals && !d.Equal(d.Truncate(maxDecimals)) {
		return decimal.Zero, fmt.Errorf("%w: %q has more than %d decimal places", ErrInvalidAmount, s, maxDecimals)
	}
	return d, nil
}
