// Copyright (c) 2026 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package api

import (
	"context"
	"log/slog"

	"github.com/vechain/votesandwich/log"
)

type noopLogger struct{}

func (noopLogger) With(...any) log.Logger { return noopLogger{} }
func (noopLogger) New(...any) log.Logger { return noopLogger{} }
func (noopLogger) Trace(string, ...any) {}
func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any) {}
func (noopLogger) Warn(string, ...any) {}
func (noopLogger) Error(string, ...any) {}
func (noopLogger) Crit(string, ...any) {}
func (noopLogger) Enabled(context.Context, slog.Level) bool { return true }
func (noopLogger) Handler() slog.Handler { return log.DiscardHandler() }

func (r *recordingLogger) Info(_ string, ctx ...any) {
	r.infos = append(r.infos, ctx)
}
