// Copyright (c) 2026 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package position models the locked deposits backing a user's voting power.
package position

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// VaultKey identifies the vault a vault-backing deposit belongs to.
type VaultKey struct {
	Asset        string          `json:"asset"`
	MaxLTV       decimal.Decimal `json:"max_ltv"`
	MaxBorrowLTV decimal.Decimal `json:"max_borrow_ltv"`
}

// Matches reports whether k and other name the same vault. LTVs are compared
// numerically, so "0.5" and "0.50" match.
func (k VaultKey) Matches(other VaultKey) bool {
	return k.Asset == other.Asset &&
		k.MaxLTV.Equal(other.MaxLTV) &&
		k.MaxBorrowLTV.Equal(other.MaxBorrowLTV)
}

func (k VaultKey) String() string {
	return fmt.Sprintf("%s/%s/%s", k.Asset, k.MaxLTV, k.MaxBorrowLTV)
}

// Position is one unit of locked value backing either voting product.
type Position struct {
	Amount decimal.Decimal `json:"amount"`
	Lock   Lock            `json:"lock"`
	// Active is false once an unstake has been initiated. Vault positions
	// are always active.
	Active bool `json:"active"`
	// StakeOrder orders staking positions by time of entry.
	StakeOrder int64 `json:"stake_order,omitempty"`
	// Key is set for vault-backing positions only.
	Key *VaultKey `json:"key,omitempty"`
}

// NewVault returns an active vault-backing position.
func NewVault(key VaultKey, amount decimal.Decimal, lock Lock) *Position {
	return &Position{
		Amount: amount,
		Lock:   lock,
		Active: true,
		Key:    &key,
	}
}

// NewStake returns a staking position.
func NewStake(amount decimal.Decimal, lock Lock, stakeOrder int64, active bool) *Position {
	return &Position{
		Amount:     amount,
		Lock:       lock,
		Active:     active,
		StakeOrder: stakeOrder,
	}
}

// VotingPower returns amount times the lock multiplier at now, or zero for
// inactive or non-positive positions. It is never negative.
func (p *Position) VotingPower(now int64) decimal.Decimal {
	if !p.Active || !p.Amount.IsPositive() {
		return decimal.Zero
	}
	m := Multiplier(p.Lock, now)
	if m <= 0 {
		return decimal.Zero
	}
	return p.Amount.Mul(decimal.NewFromInt(m))
}
