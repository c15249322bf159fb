// Copyright (c) 2026 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package power

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/vechain/votesandwich/action"
	"github.com/vechain/votesandwich/position"
)

var one = decimal.NewFromInt(1)

// ledger tracks the fraction of each position already removed by earlier
// actions in the batch, so overlapping actions never remove more than a
// position holds.
type ledger struct {
	now     int64
	removed map[*position.Position]decimal.Decimal
}

func newLedger(now int64) *ledger {
	return &ledger{now: now, removed: make(map[*position.Position]decimal.Decimal)}
}

// left returns the fraction of p not yet removed.
func (l *ledger) left(p *position.Position) decimal.Decimal {
	return one.Sub(l.removed[p])
}

// remove takes up to fraction of p and returns the voting power it carried.
func (l *ledger) remove(p *position.Position, fraction decimal.Decimal) decimal.Decimal {
	if !p.Active || !p.Amount.IsPositive() || !fraction.IsPositive() {
		return decimal.Zero
	}
	fraction = decimal.Min(fraction, l.left(p))
	if !fraction.IsPositive() {
		return decimal.Zero
	}
	l.removed[p] = l.removed[p].Add(fraction)
	return p.VotingPower(l.now).Mul(fraction)
}

// SimulateLoss returns the voting power the actions would remove from the
// given positions at now. The result is not capped by the current power.
//
// Vault withdrawals reduce every matching position proportionally: a full
// withdrawal removes them entirely, a partial one removes min(1, X/amount) of
// each. Unstakes draw down active staking positions oldest first.
func SimulateLoss(actions []action.Action, vault, stake []*position.Position, now int64) decimal.Decimal {
	var (
		l     = newLedger(now)
		total = decimal.Zero
		fifo  []*position.Position
	)

	for _, a := range actions {
		switch a := a.(type) {
		case *action.VaultWithdraw:
			total = total.Add(withdrawLoss(l, a, vault))
		case *action.StakeUnstake:
			if fifo == nil {
				fifo = activeByStakeOrder(stake)
			}
			total = total.Add(unstakeLoss(l, a, fifo))
		}
	}
	return total
}

func withdrawLoss(l *ledger, w *action.VaultWithdraw, vault []*position.Position) decimal.Decimal {
	loss := decimal.Zero
	for _, p := range vault {
		if p == nil || p.Key == nil || !p.Key.Matches(w.Key) {
			continue
		}
		if w.Amount.Full {
			loss = loss.Add(l.remove(p, one))
			continue
		}
		if !p.Amount.IsPositive() {
			continue
		}
		proportion := decimal.Min(one, w.Amount.Value.Div(p.Amount))
		loss = loss.Add(l.remove(p, proportion))
	}
	return loss
}

func activeByStakeOrder(stake []*position.Position) []*position.Position {
	active := make([]*position.Position, 0, len(stake))
	for _, p := range stake {
		if p != nil && p.Active {
			active = append(active, p)
		}
	}
	sort.SliceStable(active, func(i, j int) bool {
		return active[i].StakeOrder < active[j].StakeOrder
	})
	return active
}

func unstakeLoss(l *ledger, u *action.StakeUnstake, fifo []*position.Position) decimal.Decimal {
	loss := decimal.Zero
	remaining := u.Amount.Value
	for _, p := range fifo {
		if !u.Amount.Full && !remaining.IsPositive() {
			break
		}
		if !p.Amount.IsPositive() {
			continue
		}
		available := p.Amount.Mul(l.left(p))
		if !available.IsPositive() {
			continue
		}
		take := available
		if !u.Amount.Full {
			take = decimal.Min(remaining, available)
			remaining = remaining.Sub(take)
		}
		loss = loss.Add(l.remove(p, take.Div(p.Amount)))
	}
	return loss
}
