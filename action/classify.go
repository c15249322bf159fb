// Copyright (c) 2026 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package action

import (
	"bytes"
	"encoding/json"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"

	"github.com/vechain/votesandwich/clause"
	"github.com/vechain/votesandwich/position"
)

// Execute message names.
const (
	MethodWithdraw = "withdraw"
	MethodUnstake  = "unstake"
)

var (
	errNotAnObject   = errors.New("message is not a single-key object")
	errUnknownMethod = errors.New("unknown method")
)

// WithdrawMsg is the body of a vault withdraw message.
type WithdrawMsg struct {
	Asset        *string          `json:"asset"`
	MaxLTV       *decimal.Decimal `json:"max_ltv"`
	MaxBorrowLTV *decimal.Decimal `json:"max_borrow_ltv"`
	Amount       *decimal.Decimal `json:"amount,omitempty"`
}

// UnstakeMsg is the body of a staking unstake message.
type UnstakeMsg struct {
	Amount *decimal.Decimal `json:"amount,omitempty"`
}

// Classify returns the capital actions found in clauses, in batch order.
// Clauses that are nil or cannot be decoded as a known action are skipped.
func Classify(clauses []*clause.Clause) []Action {
	var actions []Action
	for i, c := range clauses {
		if c == nil {
			continue
		}
		if a, err := DecodeMsg(c.Msg, i); err == nil {
			actions = append(actions, a)
		}
	}
	return actions
}

// DecodeMsg decodes a single execute message body. index is recorded as the
// action's batch position.
func DecodeMsg(msg []byte, index int) (Action, error) {
	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(msg, &envelope); err != nil {
		return nil, errors.Wrap(err, "decode envelope")
	}
	if len(envelope) != 1 {
		return nil, errNotAnObject
	}

	for method, body := range envelope {
		switch method {
		case MethodWithdraw:
			return decodeWithdraw(body, index)
		case MethodUnstake:
			return decodeUnstake(body, index)
		default:
			return nil, errors.WithMessage(errUnknownMethod, method)
		}
	}
	return nil, errNotAnObject
}

func decodeAmount(v *decimal.Decimal) (Amount, error) {
	if v == nil {
		return FullAmount(), nil
	}
	if v.IsNegative() {
		return Amount{}, errors.New("negative amount")
	}
	return Partial(*v), nil
}

func decodeBody(body json.RawMessage, out any) error {
	body = bytes.TrimSpace(body)
	if len(body) == 0 || body[0] != '{' {
		return errors.New("body is not an object")
	}
	return json.Unmarshal(body, out)
}

func decodeWithdraw(body json.RawMessage, index int) (Action, error) {
	var m WithdrawMsg
	if err := decodeBody(body, &m); err != nil {
		return nil, errors.Wrap(err, "decode withdraw")
	}
	if m.Asset == nil || m.MaxLTV == nil || m.MaxBorrowLTV == nil {
		return nil, errors.New("withdraw: missing vault key field")
	}
	amount, err := decodeAmount(m.Amount)
	if err != nil {
		return nil, errors.WithMessage(err, "withdraw")
	}
	return &VaultWithdraw{
		Key: position.VaultKey{
			Asset:        *m.Asset,
			MaxLTV:       *m.MaxLTV,
			MaxBorrowLTV: *m.MaxBorrowLTV,
		},
		Amount: amount,
		index:  index,
	}, nil
}

func decodeUnstake(body json.RawMessage, index int) (Action, error) {
	var m UnstakeMsg
	if err := decodeBody(body, &m); err != nil {
		return nil, errors.Wrap(err, "decode unstake")
	}
	amount, err := decodeAmount(m.Amount)
	if err != nil {
		return nil, errors.WithMessage(err, "unstake")
	}
	return &StakeUnstake{Amount: amount, index: index}, nil
}
