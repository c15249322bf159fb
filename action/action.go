// Copyright (c) 2026 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package action recognizes the capital actions that reduce a user's locked
// stake among a batch of execute messages.
package action

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/vechain/votesandwich/position"
)

// Amount is either a partial amount or everything (Full).
type Amount struct {
	Value decimal.Decimal
	Full  bool
}

// FullAmount removes the entire balance.
func FullAmount() Amount {
	return Amount{Full: true}
}

// Partial removes v.
func Partial(v decimal.Decimal) Amount {
	return Amount{Value: v}
}

func (a Amount) String() string {
	if a.Full {
		return "full"
	}
	return a.Value.String()
}

// Action is a classified capital action: VaultWithdraw or StakeUnstake.
type Action interface {
	// Index is the position of the originating clause in its batch.
	Index() int
	fmt.Stringer

	sealed()
}

// VaultWithdraw withdraws from the vault-backing deposits matching Key.
type VaultWithdraw struct {
	Key    position.VaultKey
	Amount Amount

	index int
}

func (w *VaultWithdraw) Index() int { return w.index }
func (*VaultWithdraw) sealed()      {}

func (w *VaultWithdraw) String() string {
	return fmt.Sprintf("withdraw(%s, %s)", w.Key, w.Amount)
}

// StakeUnstake starts unstaking from the staking deposits, oldest first.
type StakeUnstake struct {
	Amount Amount

	index int
}

func (u *StakeUnstake) Index() int { return u.index }
func (*StakeUnstake) sealed()      {}

func (u *StakeUnstake) String() string {
	return fmt.Sprintf("unstake(%s)", u.Amount)
}
