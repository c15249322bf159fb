// Copyright (c) 2026 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package clause defines the contract execute messages handed to a
// broadcaster, and builders producing them.
package clause

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Coin is an amount of a native denomination attached to a clause.
type Coin struct {
	Denom  string `json:"denom"`
	Amount string `json:"amount"`
}

// Clause is a single contract execute message. Msg is the JSON execute body;
// it is opaque to everything except the action classifier.
type Clause struct {
	Contract string          `json:"contract"`
	Msg      json.RawMessage `json:"msg"`
	Funds    []Coin          `json:"funds,omitempty"`
}

// New returns a clause executing msg on contract.
func New(contract string, msg json.RawMessage) *Clause {
	return &Clause{
		Contract: contract,
		Msg:      msg,
	}
}

// WithFunds returns a copy of the clause carrying funds.
func (c *Clause) WithFunds(funds ...Coin) *Clause {
	cpy := *c
	cpy.Funds = append([]Coin(nil), funds...)
	return &cpy
}

func (c *Clause) String() string {
	var b strings.Builder
	b.WriteString("contract=")
	b.WriteString(c.Contract)
	b.WriteString(", msg=")
	b.Write(c.Msg)
	if len(c.Funds) > 0 {
		b.WriteString(", funds=[")
		for i, f := range c.Funds {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(fmt.Sprintf("%s%s", f.Amount, f.Denom))
		}
		b.WriteString("]")
	}
	return b.String()
}
