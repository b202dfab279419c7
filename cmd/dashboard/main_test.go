package main

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

type syncCountingCore struct {
	zapcore.Core
	syncs *int
}

func (c syncCountingCore) With(fields []zapcore.Field) zapcore.Core {
	return syncCountingCore{Core: c.Core.With(fields), syncs: c.syncs}
}

func (c syncCountingCore) Check(e zapcore.Entry, ce *zapcore.CheckedEntry) *zapcore.CheckedEntry {
	if c.Enabled(e.Level) {
		return ce.AddCore(e, c)
	}
	return ce
}

func (c syncCountingCore) Sync() error {
	*c.syncs++
	return c.Core.Sync()
}

func TestFatal_SyncsBeforeExit(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	syncs := 0
	logger := zap.New(syncCountingCore{Core: core, syncs: &syncs})

	code := -1
	syncsAtExit := -1
	saved := exit
	t.Cleanup(func() { exit = saved })
	exit = func(c int) {
		code = c
		syncsAtExit = syncs
	}

	fatal(logger, "dashboard stopped", errors.New("address already in use"))

	assert.Equal(t, 1, code)
	assert.Equal(t, 1, syncsAtExit)
	entries := logs.FilterMessage("dashboard stopped").All()
	if assert.Len(t, entries, 1) {
		assert.Equal(t, zapcore.ErrorLevel, entries[0].Level)
		assert.Equal(t, "address already in use", entries[0].ContextMap()["error"])
	}
}
