// Copyright (c) 2026 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package builtin

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/vechain/votesandwich/action"
	"github.com/vechain/votesandwich/clause"
	"github.com/vechain/votesandwich/position"
)

// Vaults is the contract holding the vault-backing deposits.
type Vaults struct {
	binding
}

func NewVaults(client SmartQuerier, addr string) (*Vaults, error) {
	b, err := newBinding(client, addr)
	if err != nil {
		return nil, fmt.Errorf("failed to create vaults contract: %w", err)
	}
	return &Vaults{b}, nil
}

type VaultDeposit struct {
	Asset        string          `json:"asset"`
	MaxLTV       decimal.Decimal `json:"max_ltv"`
	MaxBorrowLTV decimal.Decimal `json:"max_borrow_ltv"`
	Amount       string          `json:"amount"`
	Lock         position.Lock   `json:"lock"`
}

// UserDeposits returns the raw deposits of user.
func (v *Vaults) UserDeposits(ctx context.Context, user string) ([]VaultDeposit, error) {
	var out []VaultDeposit
	if err := v.query(ctx, "user_deposits", userArgs{user}, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Positions returns the user's deposits as positions.
func (v *Vaults) Positions(ctx context.Context, user string) ([]*position.Position, error) {
	deposits, err := v.UserDeposits(ctx, user)
	if err != nil {
		return nil, err
	}
	positions := make([]*position.Position, 0, len(deposits))
	for i, d := range deposits {
		amount, err := ParseUint128(d.Amount)
		if err != nil {
			return nil, fmt.Errorf("deposit %d: %w", i, err)
		}
		key := position.VaultKey{Asset: d.Asset, MaxLTV: d.MaxLTV, MaxBorrowLTV: d.MaxBorrowLTV}
		positions = append(positions, position.NewVault(key, amount, d.Lock))
	}
	return positions, nil
}

// Withdraw builds a withdraw message. A full amount withdraws everything.
func (v *Vaults) Withdraw(key position.VaultKey, amount action.Amount) (*clause.Clause, error) {
	msg := action.WithdrawMsg{
		Asset:        &key.Asset,
		MaxLTV:       &key.MaxLTV,
		MaxBorrowLTV: &key.MaxBorrowLTV,
	}
	if !amount.Full {
		msg.Amount = &amount.Value
	}
	return v.contract.Method(action.MethodWithdraw, msg).Clause()
}
