package logger

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLogger(t *testing.T) {
	logger := newLogger()

	assert.NotNil(t, logger)
	assert.IsType(t, &logrus.TextFormatter{}, logger.Formatter)

	formatter, ok := logger.Formatter.(*logrus.TextFormatter)
	require.True(t, ok)
	assert.Equal(t, time.RFC3339Nano, formatter.TimestampFormat)
	assert.True(t, formatter.FullTimestamp)
}

func TestWithLogger(t *testing.T) {
	ctx := context.Background()
	customLogger := logrus.NewEntry(logrus.New()).WithField("test", "value")

	ctxWithLogger := WithLogger(ctx, customLogger)

	retrieved := G(ctxWithLogger)
	assert.NotNil(t, retrieved)
	assert.Contains(t, retrieved.Data, "test")
	assert.Equal(t, "value", retrieved.Data["test"])
}

func TestGetLoggerWithoutContextLogger(t *testing.T) {
	retrieved := G(context.Background())

	assert.NotNil(t, retrieved)
	assert.Equal(t, L.Logger, retrieved.Logger)
}

func TestSetLogLevel(t *testing.T) {
	require.NoError(t, SetLogLevel("debug"))
	assert.Equal(t, logrus.DebugLevel, L.Logger.GetLevel())

	require.NoError(t, SetLogLevel("info"))
	assert.Equal(t, logrus.InfoLevel, L.Logger.GetLevel())

	require.Error(t, SetLogLevel("not-a-level"))
}

func TestSetLogFormat(t *testing.T) {
	SetLogFormat("json")
	assert.IsType(t, &logrus.JSONFormatter{}, L.Logger.Formatter)

	SetLogFormat("fmt")
	assert.IsType(t, &logrus.TextFormatter{}, L.Logger.Formatter)
}

func TestLoggerOutput(t *testing.T) {
	var buf bytes.Buffer

	l := logrus.New()
	l.SetOutput(&buf)
	l.SetLevel(logrus.DebugLevel)

	ctx := WithLogger(context.Background(), logrus.NewEntry(l))
	G(ctx).WithField("skill", "my-skill").Debug("installed")

	output := buf.String()
	assert.Contains(t, output, "installed")
	assert.Contains(t, output, "my-skill")
}
