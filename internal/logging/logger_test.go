package logging

import (
	"bytes"
	"encoding/json"
	"errors"
	"log"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func captureLog(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prevOut, prevFlags := log.Writer(), log.Flags()
	log.SetOutput(&buf)
	log.SetFlags(0)
	t.Cleanup(func() {
		log.SetOutput(prevOut)
		log.SetFlags(prevFlags)
	})
	return &buf
}

func decodeLine(t *testing.T, buf *bytes.Buffer) map[string]interface{} {
	t.Helper()
	var m map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(strings.TrimSpace(buf.String())), &m))
	return m
}

func TestInfoWritesJSONLine(t *testing.T) {
	buf := captureLog(t)
	Info("battle started", Fields{"battle_id": "abc"})

	m := decodeLine(t, buf)
	assert.Equal(t, "info", m["level"])
	assert.Equal(t, "battle started", m["msg"])
	assert.Equal(t, "abc", m["battle_id"])
	assert.NotEmpty(t, m["ts"])
}

func TestErrorIncludesErrorText(t *testing.T) {
	buf := captureLog(t)
	fields := Fields{"skin": "learning"}
	Error("store failed", errors.New("boom"), fields)

	m := decodeLine(t, buf)
	assert.Equal(t, "error", m["level"])
	assert.Equal(t, "boom", m["error"])
	_, mutated := fields["error"]
	assert.False(t, mutated, "caller fields must not be modified")
}

func TestDebugIsGated(t *testing.T) {
	buf := captureLog(t)
	SetDebug(false)
	Debug("hidden", nil)
	assert.Empty(t, buf.String())

	SetDebug(true)
	t.Cleanup(func() { SetDebug(false) })
	Debug("shown", nil)
	assert.Equal(t, "debug", decodeLine(t, buf)["level"])
}
