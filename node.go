package ofximport

import (
	"bytes"
	"strings"
)

// Node is an element of a parsed OFX document.
// Tag names are lower-cased. Leaf nodes carry Text, nodes with children never do.
type Node struct {
	Name     string
	Children []*Node
	Text     string
}

// NewNode returns an empty node for the given tag name.
func NewNode(name string) *Node {
	return &Node{Name: strings.ToLower(name)}
}

// IsLeaf returns true if the node has no children.
func (n *Node) IsLeaf() bool {
	return len(n.Children) == 0
}

// IsEmpty returns true for a node with neither children nor text, e.g. the root of an
// unparsable document.
func (n *Node) IsEmpty() bool {
	return n.IsLeaf() && n.Text == ""
}

// Walk visits n and all its descendants depth first, in document order.
// Returning false from fn stops the walk.
func (n *Node) Walk(fn func(*Node) bool) bool {
	if !fn(n) {
		return false
	}
	for _, c := range n.Children {
		if !c.Walk(fn) {
			return false
		}
	}
	return true
}

// String renders the node and its subtree as well formed XML with upper-case tag names.
func (n *Node) String() string {
	var buff bytes.Buffer
	writeNode(n, &buff)
	return buff.String()
}

func (n *Node) addChild(c *Node) {
	n.Children = append(n.Children, c)
}
