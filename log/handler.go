// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package log

import (
	"context"
	"io"
	"log/slog"

	ethlog "github.com/ethereum/go-ethereum/log"
)

// levelHandler filters records by a level read on every call, so a
// *slog.LevelVar shared with the admin api takes effect immediately. The
// wrapped handler is built at max verbosity and never filters itself.
type levelHandler struct {
	lvl   slog.Leveler
	inner slog.Handler
}

func (h *levelHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return level >= h.lvl.Level() && h.inner.Enabled(ctx, level)
}

func (h *levelHandler) Handle(ctx context.Context, r slog.Record) error {
	return h.inner.Handle(ctx, r)
}

func (h *levelHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &levelHandler{h.lvl, h.inner.WithAttrs(attrs)}
}

func (h *levelHandler) WithGroup(name string) slog.Handler {
	return &levelHandler{h.lvl, h.inner.WithGroup(name)}
}

// NewTerminalHandler returns a human readable handler.
//
//	LEVEL [TIME] MESSAGE key=value key=value ...
//
// The level is read per record, so a *slog.LevelVar can be adjusted at runtime.
func NewTerminalHandler(w io.Writer, level slog.Leveler, useColor bool) slog.Handler {
	return &levelHandler{level, ethlog.NewTerminalHandler(w, useColor)}
}

// NewJSONHandler returns a handler writing one JSON object per record.
func NewJSONHandler(w io.Writer, level slog.Leveler) slog.Handler {
	return &levelHandler{level, ethlog.JSONHandler(w)}
}
