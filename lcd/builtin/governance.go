// Copyright (c) 2026 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package builtin

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/vechain/votesandwich/clause"
	"github.com/vechain/votesandwich/sandwich"
)

type Governance struct {
	binding
}

func NewGovernance(client SmartQuerier, addr string) (*Governance, error) {
	b, err := newBinding(client, addr)
	if err != nil {
		return nil, fmt.Errorf("failed to create governance contract: %w", err)
	}
	return &Governance{b}, nil
}

type userArgs struct {
	User string `json:"user"`
}

// HasVotes reports whether user has any active vote.
func (g *Governance) HasVotes(ctx context.Context, user string) (bool, error) {
	var out bool
	if err := g.query(ctx, "has_votes", userArgs{user}, &out); err != nil {
		return false, err
	}
	return out, nil
}

// UserVotes returns the user's vote allocations in contract order.
func (g *Governance) UserVotes(ctx context.Context, user string) ([]sandwich.Vote, error) {
	var out []sandwich.Vote
	if err := g.query(ctx, "user_votes", userArgs{user}, &out); err != nil {
		return nil, err
	}
	return out, nil
}

type removeVoteArgs struct {
	GraphID string `json:"graph_id"`
}

type voteArgs struct {
	GraphID string          `json:"graph_id"`
	Weight  decimal.Decimal `json:"weight"`
}

func (g *Governance) RemoveVote(graphID string) (*clause.Clause, error) {
	return g.contract.Method("remove_vote", removeVoteArgs{graphID}).Clause()
}

func (g *Governance) Vote(graphID string, weight decimal.Decimal) (*clause.Clause, error) {
	return g.contract.Method("vote", voteArgs{graphID, weight}).Clause()
}
