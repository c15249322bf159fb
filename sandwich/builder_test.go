// Copyright (c) 2026 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package sandwich

import (
	"context"
	"encoding/json"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vechain/votesandwich/clause"
	"github.com/vechain/votesandwich/position"
)

var (
	now    = time.Unix(1_700_000_000, 0)
	clock  = func() time.Time { return now }
	errRPC = errors.New("rpc unavailable")
)

type fakeQuerier struct {
	hasVotes bool
	votes    []Vote
	vault    []*position.Position
	stake    []*position.Position

	hasVotesErr error
	votesErr    error
	vaultErr    error
	stakeErr    error

	calls atomic.Int32
}

func (f *fakeQuerier) HasAnyVotes(context.Context, string) (bool, error) {
	f.calls.Add(1)
	return f.hasVotes, f.hasVotesErr
}

func (f *fakeQuerier) UserVotes(context.Context, string) ([]Vote, error) {
	f.calls.Add(1)
	return f.votes, f.votesErr
}

func (f *fakeQuerier) VaultPositions(context.Context, string) ([]*position.Position, error) {
	f.calls.Add(1)
	return f.vault, f.vaultErr
}

func (f *fakeQuerier) StakingPositions(context.Context, string) ([]*position.Position, error) {
	f.calls.Add(1)
	return f.stake, f.stakeErr
}

type fakeVoter struct {
	err error
}

func (f *fakeVoter) RemoveVote(graphID string) (*clause.Clause, error) {
	if f.err != nil {
		return nil, f.err
	}
	msg, _ := json.Marshal(map[string]any{"remove_vote": map[string]string{"graph_id": graphID}})
	return clause.New("osmo1gov", msg), nil
}

func (f *fakeVoter) Vote(graphID string, weight decimal.Decimal) (*clause.Clause, error) {
	if f.err != nil {
		return nil, f.err
	}
	msg, _ := json.Marshal(map[string]any{"vote": map[string]any{"graph_id": graphID, "weight": weight}})
	return clause.New("osmo1gov", msg), nil
}

func actions() []*clause.Clause {
	return []*clause.Clause{
		clause.New("osmo1staking", []byte(`{"unstake":{"amount":"50"}}`)),
		clause.New("osmo1other", []byte(`{"claim":{}}`)),
	}
}

func twoVotes() []Vote {
	return []Vote{
		{GraphID: "graph-b", Weight: decimal.RequireFromString("0.7")},
		{GraphID: "graph-a", Weight: decimal.RequireFromString("0.3")},
	}
}

func stakes(amounts ...int64) []*position.Position {
	var out []*position.Position
	for i, a := range amounts {
		out = append(out, position.NewStake(decimal.NewFromInt(a), position.Lock{}, int64(i+1), true))
	}
	return out
}

func decodeMsg(t *testing.T, c *clause.Clause) map[string]map[string]any {
	t.Helper()
	var out map[string]map[string]any
	require.NoError(t, json.Unmarshal(c.Msg, &out))
	return out
}

func TestBuildNoVotes(t *testing.T) {
	q := &fakeQuerier{hasVotes: false}
	in := actions()

	res := New(q, &fakeVoter{}, WithClock(clock)).Build(context.Background(), "osmo1user", in)

	assert.Equal(t, in, res.Clauses)
	assert.Equal(t, StateNoVotes, res.State)
	assert.False(t, res.HadVotes)
	assert.Empty(t, res.Votes)
	assert.Equal(t, int32(1), q.calls.Load())
}

func TestBuildNoAllocations(t *testing.T) {
	q := &fakeQuerier{hasVotes: true}
	in := actions()

	res := New(q, &fakeVoter{}, WithClock(clock)).Build(context.Background(), "osmo1user", in)

	assert.Equal(t, in, res.Clauses)
	assert.Equal(t, StateNoAllocations, res.State)
	assert.True(t, res.HadVotes)
	assert.Empty(t, res.Votes)
	assert.Equal(t, int32(2), q.calls.Load())
}

func TestBuildSandwiched(t *testing.T) {
	votes := twoVotes()
	q := &fakeQuerier{hasVotes: true, votes: votes, stake: stakes(100, 100)}
	in := actions()

	res := New(q, &fakeVoter{}, WithClock(clock)).Build(context.Background(), "osmo1user", in)

	require.Equal(t, StateSandwiched, res.State)
	require.Len(t, res.Clauses, 2+len(in)+2)
	assert.True(t, res.HadVotes)
	assert.Equal(t, votes, res.Votes)
	assert.True(t, decimal.NewFromInt(200).Equal(res.CurrentPower))
	assert.True(t, decimal.NewFromInt(50).Equal(res.Loss))
	assert.True(t, decimal.NewFromInt(150).Equal(res.PostPower))

	for i, v := range votes {
		rm := decodeMsg(t, res.Clauses[i])
		assert.Equal(t, v.GraphID, rm["remove_vote"]["graph_id"])

		rv := decodeMsg(t, res.Clauses[2+len(in)+i])
		assert.Equal(t, v.GraphID, rv["vote"]["graph_id"])
		assert.Equal(t, v.Weight.String(), rv["vote"]["weight"])
	}
	assert.Same(t, in[0], res.Clauses[2])
	assert.Same(t, in[1], res.Clauses[3])
}

func TestBuildSandwichedNoRevote(t *testing.T) {
	q := &fakeQuerier{hasVotes: true, votes: twoVotes(), stake: stakes(30, 20)}
	in := actions()

	res := New(q, &fakeVoter{}, WithClock(clock)).Build(context.Background(), "osmo1user", in)

	require.Equal(t, StateSandwichedNoRevote, res.State)
	require.Len(t, res.Clauses, 2+len(in))
	assert.True(t, res.PostPower.IsZero())
	for i := range 2 {
		assert.Contains(t, decodeMsg(t, res.Clauses[i]), "remove_vote")
	}
	assert.Equal(t, in, res.Clauses[2:])
}

func TestBuildNoPositions(t *testing.T) {
	// votes recorded but no locked power at all: nothing to restore
	q := &fakeQuerier{hasVotes: true, votes: twoVotes()}

	res := New(q, &fakeVoter{}, WithClock(clock)).Build(context.Background(), "osmo1user", nil)
	assert.Equal(t, StateSandwichedNoRevote, res.State)
	assert.Len(t, res.Clauses, 2)
}

func TestBuildFailOpen(t *testing.T) {
	tests := []struct {
		name     string
		querier  *fakeQuerier
		voter    Voter
		user     string
		hadVotes bool
	}{
		{"has votes error", &fakeQuerier{hasVotesErr: errRPC}, &fakeVoter{}, "osmo1user", false},
		{"user votes error", &fakeQuerier{hasVotes: true, votesErr: errRPC}, &fakeVoter{}, "osmo1user", true},
		{"vault error", &fakeQuerier{hasVotes: true, votes: twoVotes(), vaultErr: errRPC}, &fakeVoter{}, "osmo1user", true},
		{"staking error", &fakeQuerier{hasVotes: true, votes: twoVotes(), stakeErr: errRPC}, &fakeVoter{}, "osmo1user", true},
		{"voter error", &fakeQuerier{hasVotes: true, votes: twoVotes(), stake: stakes(100)}, &fakeVoter{err: errRPC}, "osmo1user", true},
		{"no user", &fakeQuerier{hasVotes: true}, &fakeVoter{}, "", false},
		{"no voter", &fakeQuerier{hasVotes: true}, nil, "osmo1user", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := actions()
			res := New(tt.querier, tt.voter, WithClock(clock)).Build(context.Background(), tt.user, in)

			assert.Equal(t, in, res.Clauses)
			assert.Equal(t, StateError, res.State)
			assert.Equal(t, tt.hadVotes, res.HadVotes)
			assert.Error(t, res.Err)
		})
	}

	res := New(nil, &fakeVoter{}).Build(context.Background(), "osmo1user", actions())
	assert.ErrorIs(t, res.Err, ErrNoQuerier)
	assert.Equal(t, actions(), res.Clauses)

	var nilBuilder *Builder
	res = nilBuilder.Build(context.Background(), "osmo1user", actions())
	assert.Equal(t, StateError, res.State)
}

func TestBuildErrorWrapsCause(t *testing.T) {
	q := &fakeQuerier{hasVotes: true, votes: twoVotes(), stakeErr: errRPC}
	res := New(q, &fakeVoter{}).Build(context.Background(), "osmo1user", actions())
	assert.ErrorIs(t, res.Err, errRPC)
	assert.Contains(t, res.Err.Error(), "staking positions")
}

func TestBuildUsesClock(t *testing.T) {
	q := &fakeQuerier{
		hasVotes: true,
		votes:    twoVotes(),
		stake: []*position.Position{
			position.NewStake(decimal.NewFromInt(10), position.Timed(now.Unix()+2*position.SecondsPerDay), 1, true),
		},
	}
	res := New(q, &fakeVoter{}, WithClock(clock)).Build(context.Background(), "osmo1user", nil)
	assert.True(t, decimal.NewFromInt(30).Equal(res.CurrentPower))

	later := func() time.Time { return now.Add(72 * time.Hour) }
	res = New(q, &fakeVoter{}, WithClock(later)).Build(context.Background(), "osmo1user", nil)
	assert.True(t, decimal.NewFromInt(10).Equal(res.CurrentPower))
}

func TestPower(t *testing.T) {
	q := &fakeQuerier{stake: stakes(10, 20)}
	b := New(q, nil, WithClock(clock))

	p, err := b.Power(context.Background(), "osmo1user")
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(30).Equal(p))

	_, err = b.Power(context.Background(), "")
	assert.ErrorIs(t, err, ErrNoUser)

	q.vaultErr = errRPC
	_, err = b.Power(context.Background(), "osmo1user")
	assert.ErrorIs(t, err, errRPC)
}

func TestBuildConcurrent(t *testing.T) {
	q := &fakeQuerier{hasVotes: true, votes: twoVotes(), stake: stakes(100)}
	b := New(q, &fakeVoter{}, WithClock(clock))

	done := make(chan *Result, 16)
	for range cap(done) {
		go func() { done <- b.Build(context.Background(), "osmo1user", actions()) }()
	}
	for range cap(done) {
		res := <-done
		assert.Equal(t, StateSandwiched, res.State)
		assert.Len(t, res.Clauses, 6)
	}
}
