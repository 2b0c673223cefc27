package log

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, ParseLevel("DEBUG"))
	assert.Equal(t, slog.LevelWarn, ParseLevel(" warning "))
	assert.Equal(t, slog.LevelError, ParseLevel("error"))
	assert.Equal(t, slog.LevelInfo, ParseLevel(""))
	assert.Equal(t, slog.LevelInfo, ParseLevel("verbose"))
}

func TestJSONLoggerTagsComponent(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{Level: "info", Format: "json", Output: &buf}).WithComponent(ComponentExpense)

	logger.InfoContext(context.Background(), "expense added", FieldUserID, "u1")

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "expense added", rec["msg"])
	assert.Equal(t, ComponentExpense, rec[FieldComponent])
	assert.Equal(t, "u1", rec[FieldUserID])
}

func TestLevelFiltersRecords(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{Level: "warn", Output: &buf})

	logger.InfoContext(context.Background(), "hidden")
	assert.Zero(t, buf.Len())

	logger.WarnContext(context.Background(), "shown")
	assert.Contains(t, buf.String(), "shown")
}

func TestFromContext(t *testing.T) {
	logger := New(Config{Component: ComponentHTTP})
	ctx := WithContext(context.Background(), logger)

	assert.Same(t, logger, FromContext(ctx))
	assert.Equal(t, ComponentApp, FromContext(context.Background()).Component())
	assert.Equal(t, ComponentIncome, For(ctx, ComponentIncome).Component())
}

func TestFieldsBuilder(t *testing.T) {
	f := NewFields().WithComponent(ComponentHTTP).WithOperation(OpList).WithError(nil)
	assert.Len(t, f, 2)
	assert.Len(t, f.ToSlice(), 4)
}
