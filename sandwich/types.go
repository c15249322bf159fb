// Copyright (c) 2026 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package sandwich

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/vechain/votesandwich/clause"
	"github.com/vechain/votesandwich/position"
)

// Vote is one governance target a user currently backs.
type Vote struct {
	GraphID string          `json:"graph_id"`
	Weight  decimal.Decimal `json:"weight"`
}

// Querier reads the user state the builder depends on.
type Querier interface {
	HasAnyVotes(ctx context.Context, user string) (bool, error)
	UserVotes(ctx context.Context, user string) ([]Vote, error)
	VaultPositions(ctx context.Context, user string) ([]*position.Position, error)
	StakingPositions(ctx context.Context, user string) ([]*position.Position, error)
}

// Voter builds the governance messages wrapped around capital actions.
type Voter interface {
	RemoveVote(graphID string) (*clause.Clause, error)
	Vote(graphID string, weight decimal.Decimal) (*clause.Clause, error)
}

// State is the terminal state a Build call reached.
type State string

const (
	StateNoVotes            State = "no_votes"
	StateNoAllocations      State = "no_allocations"
	StateSandwiched         State = "sandwiched"
	StateSandwichedNoRevote State = "sandwiched_no_revote"
	StateError              State = "error"
)

// Result is the outcome of a Build call.
type Result struct {
	Clauses  []*clause.Clause `json:"clauses"`
	HadVotes bool             `json:"hadVotes"`
	Votes    []Vote           `json:"votes"`
	State    State            `json:"state"`

	CurrentPower decimal.Decimal `json:"currentPower"`
	Loss         decimal.Decimal `json:"loss"`
	PostPower    decimal.Decimal `json:"postPower"`

	// Err holds the absorbed failure when State is StateError.
	Err error `json:"-"`
}
