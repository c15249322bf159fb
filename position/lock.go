// Copyright (c) 2026 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package position

import (
	"encoding/json"
	"fmt"
)

// SecondsPerDay is the granularity of timed lock multipliers.
const SecondsPerDay = 86400

// LockKind identifies the variant held by a Lock.
type LockKind uint8

const (
	LockNone LockKind = iota
	LockPerpetual
	LockTimed
)

func (k LockKind) String() string {
	switch k {
	case LockPerpetual:
		return "perpetual"
	case LockTimed:
		return "timed"
	default:
		return "none"
	}
}

// Lock describes how a position is locked. The zero value is an absent lock.
type Lock struct {
	Kind LockKind
	// MultiplierBase is set for perpetual locks.
	MultiplierBase int64
	// UnlockTime is the unix time a timed lock expires.
	UnlockTime int64
}

// Perpetual returns a lock that never expires.
func Perpetual(base int64) Lock {
	return Lock{Kind: LockPerpetual, MultiplierBase: base}
}

// Timed returns a lock expiring at unlockTime (unix seconds).
func Timed(unlockTime int64) Lock {
	return Lock{Kind: LockTimed, UnlockTime: unlockTime}
}

// Multiplier returns the voting power multiplier of lock at now (unix seconds).
//
// Perpetual locks yield base+1. Timed locks still running yield the whole
// days remaining plus one, so a lock expiring within the current day is
// worth at least 1. Expired or absent locks yield 1.
func Multiplier(lock Lock, now int64) int64 {
	switch lock.Kind {
	case LockPerpetual:
		return lock.MultiplierBase + 1
	case LockTimed:
		if lock.UnlockTime > now {
			return (lock.UnlockTime-now)/SecondsPerDay + 1
		}
	}
	return 1
}

type perpetualJSON struct {
	MultiplierBase int64 `json:"multiplier_base"`
}

type timedJSON struct {
	UnlockTime int64 `json:"unlock_time"`
}

type lockJSON struct {
	Perpetual *perpetualJSON `json:"perpetual,omitempty"`
	Timed     *timedJSON     `json:"timed,omitempty"`
}

// MarshalJSON encodes the lock as {"perpetual":{...}}, {"timed":{...}} or null.
func (l Lock) MarshalJSON() ([]byte, error) {
	switch l.Kind {
	case LockPerpetual:
		return json.Marshal(lockJSON{Perpetual: &perpetualJSON{l.MultiplierBase}})
	case LockTimed:
		return json.Marshal(lockJSON{Timed: &timedJSON{l.UnlockTime}})
	default:
		return []byte("null"), nil
	}
}

// UnmarshalJSON implements json.Unmarshaler.
func (l *Lock) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*l = Lock{}
		return nil
	}
	var v lockJSON
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	switch {
	case v.Perpetual != nil && v.Timed != nil:
		return fmt.Errorf("ambiguous lock: both perpetual and timed set")
	case v.Perpetual != nil:
		*l = Perpetual(v.Perpetual.MultiplierBase)
	case v.Timed != nil:
		*l = Timed(v.Timed.UnlockTime)
	default:
		*l = Lock{}
	}
	return nil
}
