// Copyright (c) 2026 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package clause

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrEmptyAddress is returned when binding a contract without an address.
var ErrEmptyAddress = errors.New("empty contract address")

// Contract binds execute messages to a contract address.
type Contract struct {
	addr string
}

// NewContract creates a contract binding for addr.
func NewContract(addr string) (*Contract, error) {
	if addr == "" {
		return nil, ErrEmptyAddress
	}
	return &Contract{addr: addr}, nil
}

// Address returns the contract address.
func (c *Contract) Address() string {
	return c.addr
}

// Method starts building the execute message {"<method>": args}.
func (c *Contract) Method(method string, args any) *MethodBuilder {
	return &MethodBuilder{
		contract: c,
		method:   method,
		args:     args,
	}
}

// MethodBuilder collects the parts of an execute message.
type MethodBuilder struct {
	contract *Contract
	method   string
	args     any
	funds    []Coin
}

// WithFunds attaches native funds to the message.
func (b *MethodBuilder) WithFunds(funds ...Coin) *MethodBuilder {
	b.funds = append(b.funds, funds...)
	return b
}

// Clause encodes the execute message.
func (b *MethodBuilder) Clause() (*Clause, error) {
	if b.method == "" {
		return nil, errors.New("empty method name")
	}
	args := b.args
	if args == nil {
		args = struct{}{}
	}
	msg, err := json.Marshal(map[string]any{b.method: args})
	if err != nil {
		return nil, fmt.Errorf("failed to encode method (%s): %w", b.method, err)
	}
	c := New(b.contract.addr, msg)
	if len(b.funds) > 0 {
		c = c.WithFunds(b.funds...)
	}
	return c, nil
}

func (b *MethodBuilder) String() string {
	return fmt.Sprintf("contract=%s, method=%s, args=%+v", b.contract.addr, b.method, b.args)
}
