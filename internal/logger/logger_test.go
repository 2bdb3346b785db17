package logger

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestDebug_SilentByDefault tests that debug output requires verbose mode
func TestDebug_SilentByDefault(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	SetVerbose(false)

	Debug("hidden %s", "message")
	Info("also hidden")
	assert.Empty(t, buf.String())
}

// TestDebug_Verbose tests debug output in verbose mode
func TestDebug_Verbose(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	SetVerbose(true)
	defer SetVerbose(false)

	Debug("evaluating %d clauses", 8)
	assert.Contains(t, buf.String(), "[DEBUG] evaluating 8 clauses")
}

// TestWarn_AlwaysPrints tests that warnings ignore the verbose flag
func TestWarn_AlwaysPrints(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	SetVerbose(false)

	Warn("pattern %q skipped", "/bad(/")
	assert.Contains(t, buf.String(), "[WARN]")
}

// TestSection tests section headers in verbose mode
func TestSection(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	SetVerbose(true)
	defer SetVerbose(false)

	Section("Clause Evaluation")
	assert.Contains(t, buf.String(), "=== Clause Evaluation ===")
}
