// Copyright (C) 2026, AIZone Authors. All rights reserved.
// See the file LICENSE for licensing terms.

// Package parser implements the two recursive-descent entry points of
// §4.7: ConditionParser and TreeNodeParser, over the shared grammar
//
//	node     := Name params? children?
//	params   := '{' token (',' token)* '}'
//	children := '(' node (',' node)* ')'
//
// Both entry points tokenize with text/scanner and then build against the
// same registry.Registry, but interpret a node's children differently
// depending on its name and which table is being resolved: an ordinary
// node's children are more nodes of the same table; "Filter" condition
// nodes switch into the filter grammar for their children; "Steer" tree
// nodes switch into the steering grammar and read positional weights from
// their own params.
//
// The text grammar carries no syntax for a node's activating condition —
// the source attaches those through a separate factory-context argument
// outside any text surface, not through TreeNodeParser. Nodes built here
// always carry a nil activating condition; callers that need a conditioned
// node construct it directly against the registry instead of through text.
package parser

import (
	"fmt"
	"strconv"
	"strings"
	"text/scanner"

	"github.com/aizone/behaviortree/condition"
	"github.com/aizone/behaviortree/core"
	"github.com/aizone/behaviortree/filter"
	"github.com/aizone/behaviortree/registry"
	"github.com/aizone/behaviortree/steering"
)

// astNode is the table-agnostic parse tree: a name, its raw comma-joined
// params, and its child nodes (still unresolved against any registry).
type astNode struct {
	name     string
	params   string
	children []astNode
}

type tokenizer struct {
	sc  scanner.Scanner
	tok rune
}

func newTokenizer(text string) *tokenizer {
	t := &tokenizer{}
	t.sc.Init(strings.NewReader(text))
	t.sc.Mode = scanner.ScanIdents | scanner.ScanInts | scanner.ScanFloats
	t.sc.Error = func(*scanner.Scanner, string) {}
	t.tok = t.sc.Scan()
	return t
}

func (t *tokenizer) text() string { return t.sc.TokenText() }
func (t *tokenizer) advance()     { t.tok = t.sc.Scan() }

func (t *tokenizer) parseNode() (astNode, error) {
	if t.tok != scanner.Ident {
		return astNode{}, fmt.Errorf("expected a type name, got %q", t.text())
	}
	name := t.text()
	t.advance()

	params, err := t.parseParams(name)
	if err != nil {
		return astNode{}, err
	}
	children, err := t.parseChildren(name)
	if err != nil {
		return astNode{}, err
	}
	return astNode{name: name, params: params, children: children}, nil
}

func (t *tokenizer) parseParams(owner string) (string, error) {
	if t.tok != '{' {
		return "", nil
	}
	t.advance()
	var parts []string
	for {
		v, err := t.parseValue()
		if err != nil {
			return "", err
		}
		parts = append(parts, v)
		if t.tok == ',' {
			t.advance()
			continue
		}
		break
	}
	if t.tok != '}' {
		return "", fmt.Errorf("unbalanced brackets in params of %s", owner)
	}
	t.advance()
	return strings.Join(parts, ","), nil
}

func (t *tokenizer) parseValue() (string, error) {
	neg := false
	if t.tok == '-' {
		neg = true
		t.advance()
	}
	if t.tok == scanner.EOF {
		return "", fmt.Errorf("unexpected end of input in params")
	}
	v := t.text()
	t.advance()
	if neg {
		v = "-" + v
	}
	return v, nil
}

func (t *tokenizer) parseChildren(owner string) ([]astNode, error) {
	if t.tok != '(' {
		return nil, nil
	}
	t.advance()
	var children []astNode
	for {
		child, err := t.parseNode()
		if err != nil {
			return nil, err
		}
		children = append(children, child)
		if t.tok == ',' {
			t.advance()
			continue
		}
		break
	}
	if t.tok != ')' {
		return nil, fmt.Errorf("unbalanced brackets in children of %s", owner)
	}
	t.advance()
	return children, nil
}

func splitWeights(params string) ([]float64, error) {
	params = strings.TrimSpace(params)
	if params == "" {
		return nil, nil
	}
	parts := strings.Split(params, ",")
	weights := make([]float64, len(parts))
	for i, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid weight %q: %w", p, err)
		}
		weights[i] = v
	}
	return weights, nil
}

// ConditionParser parses text against the condition grammar and builds a
// core.Condition using reg's condition and (for "Filter" nodes) filter
// tables. On error it returns a nil Condition and a non-nil error, never a
// partial tree.
func ConditionParser(text string, reg *registry.Registry) (core.Condition, error) {
	t := newTokenizer(text)
	ast, err := t.parseNode()
	if err != nil {
		return nil, err
	}
	if t.tok != scanner.EOF {
		return nil, fmt.Errorf("unexpected trailing input %q", t.text())
	}
	return buildCondition(reg, ast)
}

// TreeNodeParser parses text against the tree-node grammar and builds a
// core.Node using reg's tree_node, steer_node and steering tables.
func TreeNodeParser(text string, reg *registry.Registry) (core.Node, error) {
	t := newTokenizer(text)
	ast, err := t.parseNode()
	if err != nil {
		return nil, err
	}
	if t.tok != scanner.EOF {
		return nil, fmt.Errorf("unexpected trailing input %q", t.text())
	}
	return buildTreeNode(reg, ast)
}

func buildCondition(reg *registry.Registry, n astNode) (core.Condition, error) {
	if n.name == "Filter" {
		if len(n.children) == 0 {
			return nil, core.ErrMissingFilterDetails
		}
		filters := make([]core.Filter, len(n.children))
		for i, c := range n.children {
			f, err := buildFilter(reg, c)
			if err != nil {
				return nil, err
			}
			filters[i] = f
		}
		var f core.Filter
		if len(filters) == 1 {
			f = filters[0]
		} else {
			f = filter.Chain{Children: filters}
		}
		return condition.Filter{F: f}, nil
	}

	factory, ok := reg.Condition(n.name)
	if !ok {
		return nil, fmt.Errorf("%w: %s", core.ErrUnknownType, n.name)
	}
	children := make([]core.Condition, len(n.children))
	for i, c := range n.children {
		built, err := buildCondition(reg, c)
		if err != nil {
			return nil, err
		}
		children[i] = built
	}
	return factory(n.params, children)
}

func buildFilter(reg *registry.Registry, n astNode) (core.Filter, error) {
	factory, ok := reg.Filter(n.name)
	if !ok {
		return nil, fmt.Errorf("%w: %s", core.ErrUnknownType, n.name)
	}
	children := make([]core.Filter, len(n.children))
	for i, c := range n.children {
		built, err := buildFilter(reg, c)
		if err != nil {
			return nil, err
		}
		children[i] = built
	}
	return factory(n.params, children)
}

func buildTreeNode(reg *registry.Registry, n astNode) (core.Node, error) {
	if n.name == "Steer" {
		return buildSteerNode(reg, n)
	}

	factory, ok := reg.TreeNode(n.name)
	if !ok {
		return nil, fmt.Errorf("%w: %s", core.ErrUnknownType, n.name)
	}
	children := make([]core.Node, len(n.children))
	for i, c := range n.children {
		built, err := buildTreeNode(reg, c)
		if err != nil {
			return nil, err
		}
		children[i] = built
	}
	return factory(n.name, n.params, nil, children)
}

// buildSteerNode resolves Steer's children against the steering table
// instead of the tree_node table, and pairs them with positional weights
// parsed from Steer's own params — defaulting every weight to 1.0 if
// omitted, per §4.7.
func buildSteerNode(reg *registry.Registry, n astNode) (core.Node, error) {
	weights, err := splitWeights(n.params)
	if err != nil {
		return nil, fmt.Errorf("Steer: %w", err)
	}
	if weights == nil {
		weights = make([]float64, len(n.children))
		for i := range weights {
			weights[i] = 1.0
		}
	}
	if len(weights) != len(n.children) {
		return nil, fmt.Errorf("Steer: %w: %d weights for %d children", core.ErrWeightCountMismatch, len(weights), len(n.children))
	}

	weighted := make([]steering.Weighted, len(n.children))
	for i, c := range n.children {
		sFactory, ok := reg.Steering(c.name)
		if !ok {
			return nil, fmt.Errorf("%w: %s", core.ErrUnknownType, c.name)
		}
		s, err := sFactory(c.params)
		if err != nil {
			return nil, err
		}
		weighted[i] = steering.Weighted{Steering: s, Weight: weights[i]}
	}

	factory, ok := reg.SteerNode("Steer")
	if !ok {
		return nil, fmt.Errorf("%w: Steer", core.ErrUnknownType)
	}
	return factory(n.name, n.params, nil, weighted)
}
