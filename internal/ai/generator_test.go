package ai

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildPrompt(t *testing.T) {
	prompt := buildPrompt(0.5, 0.75, 8)
	assert.Contains(t, prompt, "Feature diameter: 0.5000 in")
	assert.Contains(t, prompt, "Total depth: 0.7500 in")
	assert.Contains(t, prompt, "Feed rate: 8.0 in/min")
}

func TestParseResult(t *testing.T) {
	reply := `{"program": "G20 G90\nM30\n", "checks": ["feed is positive", "ends with M30"], "passed": true}`
	res, err := parseResult(reply)
	require.NoError(t, err)
	assert.True(t, res.Passed)
	assert.Len(t, res.Checks, 2)
	assert.True(t, strings.HasSuffix(res.Program, "M30\n"))
}

func TestParseResult_CodeFence(t *testing.T) {
	reply := "```json\n{\"program\": \"M30\", \"checks\": [\"terminated\"], \"passed\": false}\n```"
	res, err := parseResult(reply)
	require.NoError(t, err)
	assert.False(t, res.Passed)
	assert.Equal(t, "M30", res.Program)
}

func TestParseResult_Malformed(t *testing.T) {
	_, err := parseResult("Sure! Here is your program: G00 X0")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "malformed reply")
}

func TestParseResult_MissingProgram(t *testing.T) {
	_, err := parseResult(`{"program": "", "checks": ["nothing to do"], "passed": true}`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no program")
}

func TestParseResult_MissingChecks(t *testing.T) {
	_, err := parseResult(`{"program": "M30", "checks": [], "passed": true}`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no checks")
}

func TestNewDefaultsModel(t *testing.T) {
	g := New("test-key", "")
	assert.Equal(t, DefaultModel, string(g.model))
}
