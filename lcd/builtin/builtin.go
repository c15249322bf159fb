// Copyright (c) 2026 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package builtin binds the governance, vault and staking contracts: typed
// queries over an LCD gateway and builders for their execute messages.
package builtin

import (
	"context"
	"errors"
	"fmt"

	"github.com/holiman/uint256"
	"github.com/shopspring/decimal"

	"github.com/vechain/votesandwich/clause"
)

// ErrNoContract is returned when a contract address was not configured.
var ErrNoContract = errors.New("contract address not configured")

// SmartQuerier runs contract smart queries. lcd.Client implements it.
type SmartQuerier interface {
	SmartQuery(ctx context.Context, contract string, query any, out any) error
}

type binding struct {
	contract *clause.Contract
	client   SmartQuerier
}

func newBinding(client SmartQuerier, addr string) (binding, error) {
	contract, err := clause.NewContract(addr)
	if err != nil {
		return binding{}, err
	}
	return binding{contract: contract, client: client}, nil
}

func (b binding) query(ctx context.Context, method string, args any, out any) error {
	return b.client.SmartQuery(ctx, b.contract.Address(), map[string]any{method: args}, out)
}

// Address returns the bound contract address.
func (b binding) Address() string {
	return b.contract.Address()
}

const maxUint128Bits = 128

// ParseUint128 parses an on-chain Uint128 decimal string.
func ParseUint128(s string) (decimal.Decimal, error) {
	v, err := uint256.FromDecimal(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid uint128 %q: %w", s, err)
	}
	if v.BitLen() > maxUint128Bits {
		return decimal.Zero, fmt.Errorf("invalid uint128 %q: overflow", s)
	}
	return decimal.NewFromBigInt(v.ToBig(), 0), nil
}

// FormatUint128 renders a non-negative integral amount as a Uint128 string.
func FormatUint128(d decimal.Decimal) (string, error) {
	if d.IsNegative() || !d.IsInteger() {
		return "", fmt.Errorf("invalid uint128 %s", d)
	}
	v, overflow := uint256.FromBig(d.BigInt())
	if overflow || v.BitLen() > maxUint128Bits {
		return "", fmt.Errorf("invalid uint128 %s: overflow", d)
	}
	return v.Dec(), nil
}
