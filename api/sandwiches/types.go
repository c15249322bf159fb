// Copyright (c) 2026 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package sandwiches

import (
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"

	"github.com/vechain/votesandwich/action"
	"github.com/vechain/votesandwich/clause"
	"github.com/vechain/votesandwich/sandwich"
)

// BuildRequest asks for the sandwich around clauses, submitted by user.
type BuildRequest struct {
	User    string           `json:"user"`
	Clauses []*clause.Clause `json:"clauses"`
}

// ClassifyRequest carries clauses to classify.
type ClassifyRequest struct {
	Clauses []*clause.Clause `json:"clauses"`
}

func validateClauses(clauses []*clause.Clause) error {
	for i, c := range clauses {
		if c == nil {
			return errors.Errorf("clauses[%d]: null", i)
		}
		if c.Contract == "" {
			return errors.Errorf("clauses[%d]: empty contract", i)
		}
		if len(c.Msg) == 0 {
			return errors.Errorf("clauses[%d]: empty msg", i)
		}
	}
	return nil
}

// BuildResponse is the builder result plus the absorbed failure, if any.
type BuildResponse struct {
	*sandwich.Result
	Error string `json:"error,omitempty"`
}

// NewBuildResponse wraps res, exposing its absorbed failure as text.
func NewBuildResponse(res *sandwich.Result) *BuildResponse {
	out := &BuildResponse{Result: res}
	if res.Err != nil {
		out.Error = res.Err.Error()
	}
	return out
}

// Action is the JSON view of a classified action.
type Action struct {
	Index        int              `json:"index"`
	Type         string           `json:"type"`
	Asset        string           `json:"asset,omitempty"`
	MaxLTV       *decimal.Decimal `json:"maxLtv,omitempty"`
	MaxBorrowLTV *decimal.Decimal `json:"maxBorrowLtv,omitempty"`
	Amount       *decimal.Decimal `json:"amount"`
	Full         bool             `json:"full"`
}

const (
	TypeVaultWithdraw = "vault_withdraw"
	TypeStakeUnstake  = "stake_unstake"
)

func convertAction(a action.Action) *Action {
	out := &Action{Index: a.Index()}
	var amount action.Amount
	switch a := a.(type) {
	case *action.VaultWithdraw:
		out.Type = TypeVaultWithdraw
		out.Asset = a.Key.Asset
		out.MaxLTV = &a.Key.MaxLTV
		out.MaxBorrowLTV = &a.Key.MaxBorrowLTV
		amount = a.Amount
	case *action.StakeUnstake:
		out.Type = TypeStakeUnstake
		amount = a.Amount
	}
	out.Full = amount.Full
	if !amount.Full {
		v := amount.Value
		out.Amount = &v
	}
	return out
}

// Power is the current voting power of a user.
type Power struct {
	User  string          `json:"user"`
	Power decimal.Decimal `json:"power"`
}
