package logger_test

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/jcpaschoal/partner-portal/foundation/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_InfoWritesServiceAndTraceID(t *testing.T) {
	var buf bytes.Buffer

	traceID := func(ctx context.Context) string { return "trace-1" }
	log := logger.New(&buf, logger.LevelInfo, "PORTAL", traceID)

	log.Info(context.Background(), "hello", "key", "value")

	var got map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))

	assert.Equal(t, "hello", got["msg"])
	assert.Equal(t, "PORTAL", got["service"])
	assert.Equal(t, "value", got["key"])
	assert.Equal(t, "trace-1", got["trace_id"])
}

func Test_DebugFilteredByLevel(t *testing.T) {
	var buf bytes.Buffer

	log := logger.New(&buf, logger.LevelInfo, "PORTAL", nil)
	log.Debug(context.Background(), "hidden")

	assert.Zero(t, buf.Len())
}

func Test_ErrorEventFires(t *testing.T) {
	var buf bytes.Buffer
	var fired string

	events := logger.Events{
		Error: func(ctx context.Context, r logger.Record) {
			fired = r.Message
		},
	}

	log := logger.NewWithEvents(&buf, logger.LevelInfo, "PORTAL", nil, events)
	log.Error(context.Background(), "boom")

	assert.Equal(t, "boom", fired)
}
