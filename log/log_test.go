// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package log

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	ethlog "github.com/ethereum/go-ethereum/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggerPicksUpLateHandler(t *testing.T) {
	prev := ethlog.Root()
	defer ethlog.SetDefault(prev)

	logger := WithContext("pkg", "test")

	var buf bytes.Buffer
	SetDefault(NewJSONHandler(&buf, FromVerbosity(4)))

	logger.With("vote", "abc").Info("validator deactivated", "epoch", 7)
	logger.Trace("hidden")

	var record map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	assert.Equal(t, "validator deactivated", record["msg"])
	assert.Equal(t, "test", record["pkg"])
	assert.Equal(t, "abc", record["vote"])
	assert.EqualValues(t, 7, record["epoch"])
}

func TestWithDoesNotShareContext(t *testing.T) {
	base := WithContext("pkg", "test").(*lazyLogger)
	a := base.With("a", 1).(*lazyLogger)
	b := base.With("b", 2).(*lazyLogger)
	assert.Equal(t, []any{"pkg", "test", "a", 1}, a.ctx)
	assert.Equal(t, []any{"pkg", "test", "b", 2}, b.ctx)
	assert.Len(t, base.ctx, 2)
}

func TestTerminalHandler(t *testing.T) {
	prev := ethlog.Root()
	defer ethlog.SetDefault(prev)

	var buf bytes.Buffer
	SetDefault(NewTerminalHandler(&buf, FromVerbosity(3), false))
	WithContext("pkg", "test").Debug("dropped")
	WithContext("pkg", "test").Warn("kept", "n", 1)

	assert.NotContains(t, buf.String(), "dropped")
	assert.Contains(t, buf.String(), "kept")
	assert.Contains(t, buf.String(), "pkg=test")
}

func TestLevelVarAppliesAtRuntime(t *testing.T) {
	prev := ethlog.Root()
	defer ethlog.SetDefault(prev)

	var (
		buf   bytes.Buffer
		level slog.LevelVar
	)
	level.Set(LevelInfo)
	SetDefault(NewTerminalHandler(&buf, &level, false))

	logger := WithContext("pkg", "test")
	logger.Debug("first")
	level.Set(LevelDebug)
	logger.Debug("second")

	assert.NotContains(t, buf.String(), "first")
	assert.Contains(t, buf.String(), "second")
	assert.Equal(t, LevelWarn, FromVerbosity(2))
}

func TestJSONHandlerLevelVarKeepsAttrs(t *testing.T) {
	prev := ethlog.Root()
	defer ethlog.SetDefault(prev)

	var (
		buf   bytes.Buffer
		level slog.LevelVar
	)
	level.Set(LevelWarn)
	SetDefault(NewJSONHandler(&buf, &level))

	logger := WithContext("pkg", "test").With("pool", "p1")
	logger.Info("skipped")
	assert.Zero(t, buf.Len())

	level.Set(LevelTrace)
	logger.Trace("traced")

	var record map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	assert.Equal(t, "traced", record["msg"])
	assert.Equal(t, "p1", record["pool"])
}
