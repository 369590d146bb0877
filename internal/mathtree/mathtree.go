// Package mathtree provides the parsed-tree surface the preview engine
// consumes: typed math nodes with half-open byte ranges into the document.
// The concrete provider parses $...$ and $$...$$ regions with goldmark, but
// consumers only see NodeSource.
package mathtree

import (
	"sort"
	"sync/atomic"
)

// NodeType tags a math node.
type NodeType uint8

const (
	// NodeInlineLatex is a single-line $...$ span.
	NodeInlineLatex NodeType = iota

	// NodeDisplayLatex is a $$...$$ span, possibly spanning lines.
	NodeDisplayLatex
)

func (t NodeType) String() string {
	switch t {
	case NodeInlineLatex:
		return "inline-latex"
	case NodeDisplayLatex:
		return "display-latex"
	default:
		return "unknown"
	}
}

// Node is a typed span in the document, delimiters included.
// From/To are half-open byte offsets.
type Node struct {
	Type NodeType
	From int
	To   int
}

// NodeSource yields math nodes intersecting a byte range in document order.
// Implemented by Tree; tests supply hand-built sources.
type NodeSource interface {
	NodesBetween(from, to int) []Node
}

// Tree is an immutable snapshot of the math nodes in a document.
// Each parse produces a tree with a fresh version, so consumers can detect
// tree identity changes without comparing node slices.
type Tree struct {
	nodes   []Node
	version uint64
}

var treeVersion atomic.Uint64

func newTree(nodes []Node) *Tree {
	sort.Slice(nodes, func(i, j int) bool { return nodes[i].From < nodes[j].From })
	return &Tree{
		nodes:   nodes,
		version: treeVersion.Add(1),
	}
}

// Version identifies this parse. Two trees with equal versions are the same
// snapshot.
func (t *Tree) Version() uint64 {
	return t.version
}

// Len returns the number of math nodes in the tree.
func (t *Tree) Len() int {
	return len(t.nodes)
}

// NodesBetween returns the nodes overlapping the half-open range [from, to)
// in document order.
func (t *Tree) NodesBetween(from, to int) []Node {
	var out []Node
	for _, n := range t.nodes {
		if n.From < to && n.To > from {
			out = append(out, n)
		}
	}
	return out
}
