// Copyright (c) 2026 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package power computes a user's governance voting power and the power a
// batch of capital actions would remove.
package power

import (
	"github.com/shopspring/decimal"

	"github.com/vechain/votesandwich/position"
)

// Current returns the total voting power held by the vault-backing and
// staking positions at now.
func Current(vault, stake []*position.Position, now int64) decimal.Decimal {
	total := decimal.Zero
	for _, list := range [][]*position.Position{vault, stake} {
		for _, p := range list {
			if p == nil {
				continue
			}
			total = total.Add(p.VotingPower(now))
		}
	}
	return total
}

// Remaining returns current-loss floored at zero.
func Remaining(current, loss decimal.Decimal) decimal.Decimal {
	post := current.Sub(loss)
	if post.IsNegative() {
		return decimal.Zero
	}
	return post
}
