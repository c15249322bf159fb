// Copyright (c) 2026 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package sandwich wraps stake-reducing capital actions between messages
// that retract and restore the user's governance votes.
//
// A contract that refuses to reduce a locked balance while its owner is
// voting would otherwise reject the action. Votes are restored only if the
// user still holds voting power once the actions execute, and always with
// the original weights.
package sandwich

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/vechain/votesandwich/action"
	"github.com/vechain/votesandwich/clause"
	"github.com/vechain/votesandwich/log"
	"github.com/vechain/votesandwich/metrics"
	"github.com/vechain/votesandwich/position"
	"github.com/vechain/votesandwich/power"
)

var (
	logger = log.WithContext("pkg", "sandwich")

	metricBuildCount    = metrics.CounterVec("build_count", []string{"state"})
	metricBuildDuration = metrics.Histogram("build_duration_ms", metrics.BucketQueries)
)

var (
	ErrNoUser    = errors.New("no user")
	ErrNoQuerier = errors.New("no querier")
	ErrNoVoter   = errors.New("no voter")
)

// Builder computes vote sandwiches. It holds no mutable state and is safe
// for concurrent use.
type Builder struct {
	querier Querier
	voter   Voter
	clock   func() time.Time
}

// Option configures a Builder.
type Option func(*Builder)

// WithClock overrides the wall clock used for lock multipliers.
func WithClock(clock func() time.Time) Option {
	return func(b *Builder) {
		b.clock = clock
	}
}

// New creates a Builder reading state through querier and building vote
// messages with voter.
func New(querier Querier, voter Voter, opts ...Option) *Builder {
	b := &Builder{
		querier: querier,
		voter:   voter,
		clock:   time.Now,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Build returns the message sequence to submit for clauses on behalf of user.
//
// When the user votes, the result is remove-votes, clauses, then re-votes if
// the user keeps any voting power after the clauses. Any failure leaves
// clauses untouched: Build never returns an error and never blocks the
// caller's action.
func (b *Builder) Build(ctx context.Context, user string, clauses []*clause.Clause) *Result {
	start := time.Now()
	res := b.build(ctx, user, clauses)
	if res.State == StateError {
		logger.Warn("vote sandwich skipped", "user", user, "err", res.Err)
	} else {
		logger.Debug("vote sandwich built",
			"user", user,
			"state", string(res.State),
			"votes", len(res.Votes),
			"clauses", len(res.Clauses),
			"power", res.CurrentPower,
			"loss", res.Loss,
		)
	}
	metricBuildCount.AddWithLabel(1, map[string]string{"state": string(res.State)})
	metricBuildDuration.Observe(time.Since(start).Milliseconds())
	return res
}

func passThrough(clauses []*clause.Clause, state State, hadVotes bool) *Result {
	return &Result{
		Clauses:      clauses,
		HadVotes:     hadVotes,
		Votes:        []Vote{},
		State:        state,
		CurrentPower: decimal.Zero,
		Loss:         decimal.Zero,
		PostPower:    decimal.Zero,
	}
}

func failOpen(clauses []*clause.Clause, hadVotes bool, err error) *Result {
	res := passThrough(clauses, StateError, hadVotes)
	res.Err = err
	return res
}

func (b *Builder) build(ctx context.Context, user string, clauses []*clause.Clause) *Result {
	switch {
	case b == nil || b.querier == nil:
		return failOpen(clauses, false, ErrNoQuerier)
	case b.voter == nil:
		return failOpen(clauses, false, ErrNoVoter)
	case user == "":
		return failOpen(clauses, false, ErrNoUser)
	}

	hasVotes, err := b.querier.HasAnyVotes(ctx, user)
	if err != nil {
		return failOpen(clauses, false, errors.WithMessage(err, "has any votes"))
	}
	if !hasVotes {
		return passThrough(clauses, StateNoVotes, false)
	}

	votes, err := b.querier.UserVotes(ctx, user)
	if err != nil {
		return failOpen(clauses, true, errors.WithMessage(err, "user votes"))
	}
	if len(votes) == 0 {
		return passThrough(clauses, StateNoAllocations, true)
	}

	vault, stake, err := b.positions(ctx, user)
	if err != nil {
		return failOpen(clauses, true, err)
	}

	now := b.clock().Unix()
	current := power.Current(vault, stake, now)
	loss := power.SimulateLoss(action.Classify(clauses), vault, stake, now)
	post := power.Remaining(current, loss)

	out := make([]*clause.Clause, 0, 2*len(votes)+len(clauses))
	for _, v := range votes {
		c, err := b.voter.RemoveVote(v.GraphID)
		if err != nil {
			return failOpen(clauses, true, errors.WithMessagef(err, "remove vote %s", v.GraphID))
		}
		out = append(out, c)
	}
	out = append(out, clauses...)

	res := &Result{
		HadVotes:     true,
		Votes:        votes,
		State:        StateSandwichedNoRevote,
		CurrentPower: current,
		Loss:         loss,
		PostPower:    post,
	}
	if post.IsPositive() {
		for _, v := range votes {
			c, err := b.voter.Vote(v.GraphID, v.Weight)
			if err != nil {
				return failOpen(clauses, true, errors.WithMessagef(err, "vote %s", v.GraphID))
			}
			out = append(out, c)
		}
		res.State = StateSandwiched
	}
	res.Clauses = out
	return res
}

// positions fetches both position collections concurrently.
func (b *Builder) positions(ctx context.Context, user string) (vault, stake []*position.Position, err error) {
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		vault, err = b.querier.VaultPositions(ctx, user)
		return errors.WithMessage(err, "vault positions")
	})
	g.Go(func() (err error) {
		stake, err = b.querier.StakingPositions(ctx, user)
		return errors.WithMessage(err, "staking positions")
	})
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return vault, stake, nil
}

// Power returns the user's current voting power.
func (b *Builder) Power(ctx context.Context, user string) (decimal.Decimal, error) {
	if b == nil || b.querier == nil {
		return decimal.Zero, ErrNoQuerier
	}
	if user == "" {
		return decimal.Zero, ErrNoUser
	}
	vault, stake, err := b.positions(ctx, user)
	if err != nil {
		return decimal.Zero, err
	}
	return power.Current(vault, stake, b.clock().Unix()), nil
}
