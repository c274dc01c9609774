// Package search implements the narrowing walk used to find tree nodes at
// a given level. A node at the wrong level is only descended into when it
// matches at least one requested field, so a non-matching ancestor hides
// everything below it.
package search

import (
	"fmt"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/caesium-cloud/slate/internal/dataset"
)

// Decision is a Visitor's verdict on one node.
type Decision struct {
	// Match collects the node into the result.
	Match bool
	// Descend visits the node's children.
	Descend bool
}

// Visitor decides, per node, whether to collect it and whether to go deeper.
type Visitor interface {
	Visit(node *dataset.TreeNode) Decision
}

// VisitorFunc adapts a function to the Visitor interface.
type VisitorFunc func(node *dataset.TreeNode) Decision

func (f VisitorFunc) Visit(node *dataset.TreeNode) Decision {
	return f(node)
}

// Walk visits the children of branch depth first, in declaration order, and
// returns the nodes the visitor matched. The branch itself is not visited.
func Walk(branch *dataset.TreeNode, v Visitor) []*dataset.TreeNode {
	var out []*dataset.TreeNode
	walk(branch, v, &out)
	return out
}

func walk(branch *dataset.TreeNode, v Visitor, out *[]*dataset.TreeNode) {
	for _, row := range branch.Rows {
		d := v.Visit(row)
		if d.Match {
			*out = append(*out, row)
		}
		if d.Descend {
			walk(row, v, out)
		}
	}
}

// Field is one (name, value) pair to match against a node's own fields.
// With Glob set, Value is a doublestar pattern matched against the field's
// string value.
type Field struct {
	Name  string `json:"field" yaml:"field"`
	Value any    `json:"value" yaml:"value"`
	Glob  bool   `json:"glob,omitempty" yaml:"glob,omitempty"`
}

// Matcher collects nodes at Level and descends through nodes matching at
// least one of Fields.
type Matcher struct {
	Level  dataset.Level
	Fields []Field
}

// NewMatcher validates the level and any glob patterns.
func NewMatcher(level dataset.Level, fields []Field) (*Matcher, error) {
	if !level.Valid() {
		return nil, &dataset.ValidationError{Field: "level", Reason: fmt.Sprintf("unknown level %q", level)}
	}
	for _, f := range fields {
		if !f.Glob {
			continue
		}
		pattern, ok := f.Value.(string)
		if !ok {
			return nil, &dataset.ValidationError{Field: f.Name, Reason: "glob value must be a string"}
		}
		if !doublestar.ValidatePattern(pattern) {
			return nil, &dataset.ValidationError{Field: f.Name, Reason: fmt.Sprintf("bad pattern %q", pattern)}
		}
	}
	return &Matcher{Level: level, Fields: fields}, nil
}

// Visit collects a node at the target level without descending; any other
// node is descended into only if it matched a field.
func (m *Matcher) Visit(node *dataset.TreeNode) Decision {
	if node.Level == m.Level {
		return Decision{Match: true}
	}
	return Decision{Descend: m.Count(node) > 0}
}

// Count returns how many of the matcher's fields the node carries with an
// equal value.
func (m *Matcher) Count(node *dataset.TreeNode) int {
	n := 0
	for _, f := range m.Fields {
		v, ok := node.Field(f.Name)
		if !ok {
			continue
		}
		if f.matches(v) {
			n++
		}
	}
	return n
}

func (f Field) matches(v any) bool {
	if !f.Glob {
		return dataset.Equal(v, f.Value)
	}
	pattern, _ := f.Value.(string)
	s, ok := v.(string)
	if !ok {
		return false
	}
	return doublestar.MatchUnvalidated(pattern, s)
}

// Search runs a Matcher from branch.
func Search(branch *dataset.TreeNode, level dataset.Level, fields []Field) ([]*dataset.TreeNode, error) {
	m, err := NewMatcher(level, fields)
	if err != nil {
		return nil, err
	}
	return Walk(branch, m), nil
}
