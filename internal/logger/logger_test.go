package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitLevelAndFormat(t *testing.T) {
	Init("debug", "json")
	assert.Equal(t, logrus.DebugLevel, Log.GetLevel())

	var buf bytes.Buffer
	Log.SetOutput(&buf)
	Log.WithField("gallery", "g1").Info("moved")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "moved", entry["msg"])
	assert.Equal(t, "g1", entry["gallery"])
}

func TestInitFallsBackToInfo(t *testing.T) {
	Init("loud", "text")
	assert.Equal(t, logrus.InfoLevel, Log.GetLevel())
	_, isText := Log.Formatter.(*logrus.TextFormatter)
	assert.True(t, isText)
}

func TestNewLeavesGlobalAlone(t *testing.T) {
	Init("info", "json")
	before := Log

	l := New("warn", "text")
	assert.Equal(t, logrus.WarnLevel, l.GetLevel())
	assert.Same(t, before, Log)
}
