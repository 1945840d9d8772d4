package utils

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLoggerToWritesJSON(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLoggerTo(&buf, "info")

	logger.Debug("hidden")
	logger.Info("document processed", "file_name", "a.pdf")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "document processed", entry["msg"])
	assert.Equal(t, "a.pdf", entry["file_name"])
}

func TestUnknownLevelDefaultsToInfo(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLoggerTo(&buf, "verbose")

	logger.Debug("hidden")
	assert.Zero(t, buf.Len())

	logger.Info("shown")
	assert.NotZero(t, buf.Len())
}

func TestAppErrors(t *testing.T) {
	assert.Equal(t, 404, NewNotFoundError("missing").StatusCode)
	assert.Equal(t, 400, NewBadRequestError("bad").StatusCode)
	assert.Equal(t, "boom", NewInternalError("boom").Error())
	assert.NotEqual(t, GenerateID(), GenerateID())
}
