package chartparse

import (
	"iter"
	"strings"
)

// Node is a child of a Tree: either a *Tree or a Leaf.
type Node interface {
	node()
}

// Leaf is a terminal child holding exactly one input word.
type Leaf string

func (Leaf) node()  {}
func (*Tree) node() {}

// Tree is a parse tree node: a nonterminal label over ordered children.
// Trees returned by the parser are exclusively owned; no subtree is shared
// between two results.
type Tree struct {
	label    string
	children []Node
}

// NewTree builds a tree node. Children must be *Tree or Leaf values.
func NewTree(label string, children ...Node) *Tree {
	return &Tree{label: label, children: children}
}

// Label returns the nonterminal name of the node.
func (t *Tree) Label() string {
	return t.label
}

// Children returns the ordered children of the node.
func (t *Tree) Children() []Node {
	return append([]Node(nil), t.children...)
}

// Subtrees yields t and every descendant tree in depth-first pre-order.
// Each call starts a fresh traversal.
func (t *Tree) Subtrees() iter.Seq[*Tree] {
	return func(yield func(*Tree) bool) {
		t.walk(yield)
	}
}

// walk reports false once yield asks to stop.
func (t *Tree) walk(yield func(*Tree) bool) bool {
	if !yield(t) {
		return false
	}
	for _, c := range t.children {
		if sub, ok := c.(*Tree); ok {
			if !sub.walk(yield) {
				return false
			}
		}
	}
	return true
}

// Flatten returns the leaves of t read left to right.
func (t *Tree) Flatten() []string {
	var words []string
	t.appendLeaves(&words)
	return words
}

func (t *Tree) appendLeaves(words *[]string) {
	for _, c := range t.children {
		switch c := c.(type) {
		case Leaf:
			*words = append(*words, string(c))
		case *Tree:
			c.appendLeaves(words)
		}
	}
}

// Words joins the leaves of t with single spaces.
func Words(t *Tree) string {
	return strings.Join(t.Flatten(), " ")
}

// Equal reports whether t and o are structurally identical.
func (t *Tree) Equal(o *Tree) bool {
	if t == o {
		return true
	}
	if t == nil || o == nil || t.label != o.label || len(t.children) != len(o.children) {
		return false
	}
	for i, c := range t.children {
		switch c := c.(type) {
		case Leaf:
			if oc, ok := o.children[i].(Leaf); !ok || oc != c {
				return false
			}
		case *Tree:
			if oc, ok := o.children[i].(*Tree); !ok || !c.Equal(oc) {
				return false
			}
		}
	}
	return true
}

// Height is 1 for a node whose children are all leaves.
func (t *Tree) Height() int {
	h := 0
	for _, c := range t.children {
		if sub, ok := c.(*Tree); ok {
			h = max(h, sub.Height())
		}
	}
	return h + 1
}

// String renders t in bracketed form, e.g. (S (NP (N holmes)) (VP (V sat))).
func (t *Tree) String() string {
	var b strings.Builder
	t.writeBracketed(&b)
	return b.String()
}

func (t *Tree) writeBracketed(b *strings.Builder) {
	b.WriteByte('(')
	b.WriteString(t.label)
	for _, c := range t.children {
		b.WriteByte(' ')
		switch c := c.(type) {
		case Leaf:
			b.WriteString(string(c))
		case *Tree:
			c.writeBracketed(b)
		}
	}
	b.WriteByte(')')
}

// Pretty renders t as an indented outline, one node per line:
//
//	S
//	├── NP
//	│   └── N holmes
//	└── VP
//	    └── V sat
//
// A node whose only child is a leaf is printed on one line with its word.
func (t *Tree) Pretty() string {
	var b strings.Builder
	b.WriteString(t.prettyLabel())
	b.WriteByte('\n')
	t.writePrettyChildren(&b, "")
	return b.String()
}

func (t *Tree) prettyLabel() string {
	if len(t.children) == 1 {
		if w, ok := t.children[0].(Leaf); ok {
			return t.label + " " + string(w)
		}
	}
	return t.label
}

func (t *Tree) writePrettyChildren(b *strings.Builder, prefix string) {
	if len(t.children) == 1 {
		if _, ok := t.children[0].(Leaf); ok {
			return
		}
	}
	for i, c := range t.children {
		last := i == len(t.children)-1
		branch, indent := "├── ", "│   "
		if last {
			branch, indent = "└── ", "    "
		}
		b.WriteString(prefix)
		b.WriteString(branch)
		switch c := c.(type) {
		case Leaf:
			b.WriteString(string(c))
			b.WriteByte('\n')
		case *Tree:
			b.WriteString(c.prettyLabel())
			b.WriteByte('\n')
			c.writePrettyChildren(b, prefix+indent)
		}
	}
}
