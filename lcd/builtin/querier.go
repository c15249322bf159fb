// Copyright (c) 2026 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package builtin

import (
	"context"

	"github.com/vechain/votesandwich/position"
	"github.com/vechain/votesandwich/sandwich"
)

// Addresses are the contract addresses the querier reads from.
type Addresses struct {
	Governance string `yaml:"governance"`
	Vaults     string `yaml:"vaults"`
	Staking    string `yaml:"staking"`
}

// Querier implements sandwich.Querier on top of the contract bindings.
// Contracts without a configured address answer with ErrNoContract.
type Querier struct {
	governance *Governance
	vaults     *Vaults
	staking    *Staking
}

var _ sandwich.Querier = (*Querier)(nil)

// NewQuerier binds every contract with a non-empty address.
func NewQuerier(client SmartQuerier, addrs Addresses) *Querier {
	q := &Querier{}
	if addrs.Governance != "" {
		q.governance, _ = NewGovernance(client, addrs.Governance)
	}
	if addrs.Vaults != "" {
		q.vaults, _ = NewVaults(client, addrs.Vaults)
	}
	if addrs.Staking != "" {
		q.staking, _ = NewStaking(client, addrs.Staking)
	}
	return q
}

// Voter returns the governance binding, or nil when it is not configured.
func (q *Querier) Voter() sandwich.Voter {
	if q.governance == nil {
		return nil
	}
	return q.governance
}

func (q *Querier) HasAnyVotes(ctx context.Context, user string) (bool, error) {
	if q.governance == nil {
		return false, ErrNoContract
	}
	return q.governance.HasVotes(ctx, user)
}

func (q *Querier) UserVotes(ctx context.Context, user string) ([]sandwich.Vote, error) {
	if q.governance == nil {
		return nil, ErrNoContract
	}
	return q.governance.UserVotes(ctx, user)
}

func (q *Querier) VaultPositions(ctx context.Context, user string) ([]*position.Position, error) {
	if q.vaults == nil {
		return nil, ErrNoContract
	}
	return q.vaults.Positions(ctx, user)
}

func (q *Querier) StakingPositions(ctx context.Context, user string) ([]*position.Position, error) {
	if q.staking == nil {
		return nil, ErrNoContract
	}
	return q.staking.Positions(ctx, user)
}
