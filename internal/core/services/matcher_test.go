package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestCompileMatcher_Literal tests case-insensitive literal matching
func TestCompileMatcher_Literal(t *testing.T) {
	m, err := compileMatcher("Trade Secrets")
	require.NoError(t, err)

	assert.True(t, m.Matches("includes trade secrets and know-how"))
	assert.True(t, m.Matches("TRADE SECRETS"))
	assert.False(t, m.Matches("trademark"))
}

// TestCompileMatcher_LiteralEscapes tests that regex metacharacters are literal
func TestCompileMatcher_LiteralEscapes(t *testing.T) {
	m, err := compileMatcher("thirty-six (36) months")
	require.NoError(t, err)

	assert.True(t, m.Matches("in effect for thirty-six (36) months"))
}

// TestCompileMatcher_Regex tests slash-wrapped regex phrases
func TestCompileMatcher_Regex(t *testing.T) {
	m, err := compileMatcher(`/trade\s+secrets?/`)
	require.NoError(t, err)

	assert.True(t, m.Matches("a trade secret"))
	assert.True(t, m.Matches("trade  secrets"))
}

// TestCompileMatcher_BadRegex tests compile failure reporting
func TestCompileMatcher_BadRegex(t *testing.T) {
	_, err := compileMatcher("/trade(/")
	assert.Error(t, err)
}

// TestMatcherCache_Reuse tests that compiled matchers are shared
func TestMatcherCache_Reuse(t *testing.T) {
	c := newMatcherCache()

	first, err := c.get("confidential")
	require.NoError(t, err)
	second, err := c.get("confidential")
	require.NoError(t, err)

	assert.Same(t, first, second)
}

// TestMatcherCache_FailureNotCached tests that compile errors surface on each call
func TestMatcherCache_FailureNotCached(t *testing.T) {
	c := newMatcherCache()

	_, err := c.get("/bad(/")
	assert.Error(t, err)
	_, err = c.get("/bad(/")
	assert.Error(t, err)
	assert.Equal(t, 0, c.lru.Len())
}
