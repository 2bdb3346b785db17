// Package logic compiles and evaluates boolean/proximity expressions over
// lemmatized token sequences.
//
// Expressions are compiled once, at checklist load time. Compile rejects
// unknown node shapes outright: a malformed expression is a defect in the
// checklist definition, not a runtime condition, and must never be silently
// evaluated as false.
package logic

import (
	"fmt"
	"strings"

	"github.com/ZaBrisket/ndareview/internal/analysis/lemma"
	"github.com/ZaBrisket/ndareview/internal/core/domain"
)

// Expr is an immutable compiled logic expression.
type Expr struct {
	root evalNode
}

// evalNode is one compiled node of the expression tree.
type evalNode interface {
	eval(ctx *evalContext) bool
}

// evalContext carries the token sequence state for one evaluation.
type evalContext struct {
	positions map[string][]int
	synonyms  map[string][]string
}

// Compile validates a LogicNode tree and produces an immutable expression.
// Unknown operators, empty term lists and malformed NEAR nodes are load-time
// errors wrapping domain.ErrInvalidLogic.
func Compile(node *domain.LogicNode) (*Expr, error) {
	if node == nil {
		return nil, fmt.Errorf("%w: nil node", domain.ErrInvalidLogic)
	}
	root, err := compileNode(node)
	if err != nil {
		return nil, err
	}
	return &Expr{root: root}, nil
}

func compileNode(node *domain.LogicNode) (evalNode, error) {
	switch node.Op {
	case domain.LogicAllOf, domain.LogicAnyOf:
		if len(node.Terms) == 0 {
			return nil, fmt.Errorf("%w: %s requires at least one term", domain.ErrInvalidLogic, node.Op)
		}
		terms := make([]string, len(node.Terms))
		for i, t := range node.Terms {
			terms[i] = strings.ToLower(t)
		}
		return &termSetNode{terms: terms, all: node.Op == domain.LogicAllOf}, nil

	case domain.LogicNot:
		if node.Child == nil {
			return nil, fmt.Errorf("%w: NOT requires a child node", domain.ErrInvalidLogic)
		}
		child, err := compileNode(node.Child)
		if err != nil {
			return nil, err
		}
		return &notNode{child: child}, nil

	case domain.LogicNear:
		if node.TermA == "" || node.TermB == "" {
			return nil, fmt.Errorf("%w: NEAR requires two terms", domain.ErrInvalidLogic)
		}
		if node.Distance <= 0 {
			return nil, fmt.Errorf("%w: NEAR requires a positive distance", domain.ErrInvalidLogic)
		}
		return &nearNode{
			a:        strings.ToLower(node.TermA),
			b:        strings.ToLower(node.TermB),
			distance: node.Distance,
		}, nil

	default:
		return nil, fmt.Errorf("%w: unknown operator %q", domain.ErrInvalidLogic, node.Op)
	}
}

// Evaluate runs the expression against a lemmatized token sequence. The
// synonym table maps a term to alternates accepted in its place; both the
// term and its synonyms are matched by lemma.
func (e *Expr) Evaluate(lemmas []string, synonyms map[string][]string) bool {
	ctx := &evalContext{
		positions: make(map[string][]int, len(lemmas)),
		synonyms:  synonyms,
	}
	for i, l := range lemmas {
		ctx.positions[l] = append(ctx.positions[l], i)
	}
	return e.root.eval(ctx)
}

// termPositions returns every token position matching the term's lemma or
// any of its synonyms' lemmas.
func (ctx *evalContext) termPositions(term string) []int {
	var out []int
	out = append(out, ctx.lemmaPositions(lemma.Word(term))...)
	for _, alt := range ctx.synonyms[term] {
		out = append(out, ctx.lemmaPositions(lemma.Word(strings.ToLower(alt)))...)
	}
	return out
}

// lemmaPositions looks up a lemma, tolerating a trailing-e disagreement
// between the query-side and document-side lemmatization ("solicit" vs
// "solicite"). Suffix stripping cannot always decide whether the base form
// ends in e, so both spellings are accepted.
func (ctx *evalContext) lemmaPositions(lem string) []int {
	out := append([]int(nil), ctx.positions[lem]...)
	if strings.HasSuffix(lem, "e") {
		out = append(out, ctx.positions[strings.TrimSuffix(lem, "e")]...)
	} else {
		out = append(out, ctx.positions[lem+"e"]...)
	}
	return out
}

type termSetNode struct {
	terms []string
	all   bool
}

func (n *termSetNode) eval(ctx *evalContext) bool {
	for _, term := range n.terms {
		present := len(ctx.termPositions(term)) > 0
		if n.all && !present {
			return false
		}
		if !n.all && present {
			return true
		}
	}
	return n.all
}

type notNode struct {
	child evalNode
}

func (n *notNode) eval(ctx *evalContext) bool {
	return !n.child.eval(ctx)
}

type nearNode struct {
	a, b     string
	distance int
}

// eval is symmetric on token distance: order of a and b does not matter.
func (n *nearNode) eval(ctx *evalContext) bool {
	posA := ctx.termPositions(n.a)
	posB := ctx.termPositions(n.b)
	for _, pa := range posA {
		for _, pb := range posB {
			d := pa - pb
			if d < 0 {
				d = -d
			}
			if d <= n.distance {
				return true
			}
		}
	}
	return false
}
