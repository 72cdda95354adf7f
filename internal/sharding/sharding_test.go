package sharding_test

import (
	"context"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yelp/chemist/internal/chemtypes"
	"github.com/yelp/chemist/internal/sharding"
)

func TestLoggerRunLogsEveryCommandKind(t *testing.T) {
	log, hook := test.NewNullLogger()
	l := &sharding.Logger{Log: log}

	cmds := make(chan chemtypes.RepoCommand, 3)
	cmds <- chemtypes.NewMonitorCommand(chemtypes.Target{URI: "u1"})
	cmds <- chemtypes.NewTelemetryCommand(chemtypes.Flask{ID: "f1"})
	cmds <- chemtypes.NewReassignWorkCommand("f2")
	close(cmds)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	err := l.Run(ctx, cmds)
	require.NoError(t, err)
	assert.Len(t, hook.AllEntries(), 3)
}

func TestLoggerRunReturnsOnContextCancellation(t *testing.T) {
	log := logrus.New()
	l := &sharding.Logger{Log: log}

	cmds := make(chan chemtypes.RepoCommand)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := l.Run(ctx, cmds)
	assert.ErrorIs(t, err, context.Canceled)
}
