package logic

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ZaBrisket/ndareview/internal/analysis/lemma"
	"github.com/ZaBrisket/ndareview/internal/analysis/textnorm"
	"github.com/ZaBrisket/ndareview/internal/core/domain"
)

func lemmas(text string) []string {
	return lemma.Sequence(textnorm.Tokenize(text))
}

// TestCompile_UnknownOp tests fail-fast rejection of unknown node shapes
func TestCompile_UnknownOp(t *testing.T) {
	_, err := Compile(&domain.LogicNode{Op: "XOR", Terms: []string{"a", "b"}})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidLogic)
}

// TestCompile_MalformedNodes tests structural validation
func TestCompile_MalformedNodes(t *testing.T) {
	tests := []struct {
		name string
		node *domain.LogicNode
	}{
		{"nil", nil},
		{"empty ALL_OF", &domain.LogicNode{Op: domain.LogicAllOf}},
		{"empty ANY_OF", &domain.LogicNode{Op: domain.LogicAnyOf}},
		{"NOT without child", &domain.LogicNode{Op: domain.LogicNot}},
		{"NEAR missing term", &domain.LogicNode{Op: domain.LogicNear, TermA: "x", Distance: 5}},
		{"NEAR zero distance", &domain.LogicNode{Op: domain.LogicNear, TermA: "x", TermB: "y"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Compile(tt.node)
			assert.ErrorIs(t, err, domain.ErrInvalidLogic)
		})
	}
}

// TestEvaluate_AllOf tests conjunction over lemmas and synonyms
func TestEvaluate_AllOf(t *testing.T) {
	expr, err := Compile(&domain.LogicNode{
		Op:    domain.LogicAllOf,
		Terms: []string{"return", "destroy"},
	})
	require.NoError(t, err)

	synonyms := map[string][]string{"destroy": {"delete"}}

	// Both verbs present through inflection and synonym mapping.
	assert.True(t, expr.Evaluate(lemmas("Recipient shall return or delete all copies upon request"), synonyms))

	// Only one present.
	assert.False(t, expr.Evaluate(lemmas("Recipient shall return all copies"), synonyms))
}

// TestEvaluate_AnyOf tests disjunction with synonym mapping
func TestEvaluate_AnyOf(t *testing.T) {
	expr, err := Compile(&domain.LogicNode{
		Op:    domain.LogicAnyOf,
		Terms: []string{"return", "destroy"},
	})
	require.NoError(t, err)

	synonyms := map[string][]string{"destroy": {"delete"}}

	// "delete" satisfies "destroy" via the synonym table.
	assert.True(t, expr.Evaluate(lemmas("Recipient shall delete all copies upon request"), synonyms))
	assert.True(t, expr.Evaluate(lemmas("Recipient shall return all copies"), synonyms))
	assert.False(t, expr.Evaluate(lemmas("Recipient shall retain all copies"), synonyms))
}

// TestEvaluate_Not tests negation
func TestEvaluate_Not(t *testing.T) {
	expr, err := Compile(&domain.LogicNode{
		Op:    domain.LogicNot,
		Child: &domain.LogicNode{Op: domain.LogicAnyOf, Terms: []string{"perpetual"}},
	})
	require.NoError(t, err)

	assert.True(t, expr.Evaluate(lemmas("the term is two years"), nil))
	assert.False(t, expr.Evaluate(lemmas("the obligations are perpetual"), nil))
}

// TestEvaluate_NearSymmetry tests that NEAR ignores term order
func TestEvaluate_NearSymmetry(t *testing.T) {
	expr, err := Compile(&domain.LogicNode{
		Op:       domain.LogicNear,
		TermA:    "solicit",
		TermB:    "employee",
		Distance: 4,
	})
	require.NoError(t, err)

	// a before b and b before a, both within distance.
	assert.True(t, expr.Evaluate(lemmas("shall not solicit any employee of the company"), nil))
	assert.True(t, expr.Evaluate(lemmas("no employee may be solicited by recipient"), nil))

	// Terms too far apart.
	far := "solicit one two three four five six seven eight nine ten employee"
	assert.False(t, expr.Evaluate(lemmas(far), nil))
}

// TestEvaluate_NearInflection tests NEAR matching through lemmatization
func TestEvaluate_NearInflection(t *testing.T) {
	expr, err := Compile(&domain.LogicNode{
		Op:       domain.LogicNear,
		TermA:    "return",
		TermB:    "copy",
		Distance: 3,
	})
	require.NoError(t, err)

	assert.True(t, expr.Evaluate(lemmas("shall return all copies promptly"), nil))
}

// TestEvaluate_Deterministic tests repeatability
func TestEvaluate_Deterministic(t *testing.T) {
	expr, err := Compile(&domain.LogicNode{Op: domain.LogicAnyOf, Terms: []string{"injunction"}})
	require.NoError(t, err)

	seq := lemmas("entitled to seek an injunction")
	first := expr.Evaluate(seq, nil)
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, expr.Evaluate(seq, nil))
	}
}
