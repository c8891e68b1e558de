package debug

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInit_Disabled(t *testing.T) {
	Init(false)
	assert.False(t, Enabled())
	Debug("dropped", "sql", "SELECT 1")
}

func TestConfigure(t *testing.T) {
	var buf bytes.Buffer
	Configure(Config{Level: "debug", Output: &buf})
	t.Cleanup(func() { Init(false) })

	assert.True(t, Enabled())
	Debug("statement executed", "sql", "SELECT `id` FROM `people`", "args", 2)

	out := buf.String()
	assert.Contains(t, out, `"message":"statement executed"`)
	assert.Contains(t, out, `"sql":"SELECT `+"`id`"+` FROM `+"`people`"+`"`)
	assert.Contains(t, out, `"args":2`)
	assert.Contains(t, out, `"level":"debug"`)
}

func TestNew_Level(t *testing.T) {
	var buf bytes.Buffer
	l := New(Config{Level: "warn", Output: &buf})

	l.Debug().Msg("debug message")
	l.Info().Msg("info message")
	l.Warn().Msg("warn message")

	out := buf.String()
	assert.NotContains(t, out, "debug message")
	assert.NotContains(t, out, "info message")
	assert.Contains(t, out, "warn message")
}

func TestWith_Component(t *testing.T) {
	var buf bytes.Buffer
	Configure(Config{Output: &buf})
	t.Cleanup(func() { Init(false) })

	l := With("executor")
	l.Info().Msg("hello")
	assert.Contains(t, buf.String(), `"component":"executor"`)
}
