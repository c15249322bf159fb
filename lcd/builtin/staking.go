// Copyright (c) 2026 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package builtin

import (
	"context"
	"fmt"

	"github.com/vechain/votesandwich/action"
	"github.com/vechain/votesandwich/clause"
	"github.com/vechain/votesandwich/position"
)

type Staking struct {
	binding
}

func NewStaking(client SmartQuerier, addr string) (*Staking, error) {
	b, err := newBinding(client, addr)
	if err != nil {
		return nil, fmt.Errorf("failed to create staking contract: %w", err)
	}
	return &Staking{b}, nil
}

type StakeDeposit struct {
	Amount    string `json:"amount"`
	StakeTime int64  `json:"stake_time"`
	// UnstakeStartTime is set once the deposit started unstaking.
	UnstakeStartTime *int64        `json:"unstake_start_time"`
	Lock             position.Lock `json:"lock"`
}

type StakerResponse struct {
	Staker      string         `json:"staker"`
	DepositList []StakeDeposit `json:"deposit_list"`
}

type stakerArgs struct {
	Staker string `json:"staker"`
}

// UserStake returns the raw staking deposits of user.
func (s *Staking) UserStake(ctx context.Context, user string) (*StakerResponse, error) {
	var out StakerResponse
	if err := s.query(ctx, "user_stake", stakerArgs{user}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Positions returns the user's deposits as positions ordered by stake time.
func (s *Staking) Positions(ctx context.Context, user string) ([]*position.Position, error) {
	res, err := s.UserStake(ctx, user)
	if err != nil {
		return nil, err
	}
	positions := make([]*position.Position, 0, len(res.DepositList))
	for i, d := range res.DepositList {
		amount, err := ParseUint128(d.Amount)
		if err != nil {
			return nil, fmt.Errorf("deposit %d: %w", i, err)
		}
		positions = append(positions, position.NewStake(amount, d.Lock, d.StakeTime, d.UnstakeStartTime == nil))
	}
	return positions, nil
}

// Unstake builds an unstake message. A full amount unstakes everything.
func (s *Staking) Unstake(amount action.Amount) (*clause.Clause, error) {
	var msg action.UnstakeMsg
	if !amount.Full {
		msg.Amount = &amount.Value
	}
	return s.contract.Method(action.MethodUnstake, msg).Clause()
}
