// Package model defines the elaborated register-map address model.
//
// The model is produced by an upstream elaborator and consumed read-only by
// the code generation stages: a tree of addressable nodes with resolved
// absolute addresses, array dimensions and strides. Semantic validity of the
// model (no overlapping addresses, well-formed dimensions) is the
// elaborator's responsibility and is not re-checked here.
package model

import "fmt"

// Kind identifies the type of an address-model node.
type Kind int

// Node kinds of the address model.
const (
	KindAddrmap Kind = iota // container defining a contiguous addressable region
	KindRegfile             // grouping container below an address map
	KindReg                 // register leaf, owns one access strobe
	KindMem                 // memory leaf, owns one access strobe
	KindField               // bit field of a register, no independent strobe
)

// Property names of memory nodes.
const (
	PropertyMemEntries = "mementries"
	PropertyMemWidth   = "memwidth"
)

var kindNames = map[Kind]string{
	KindAddrmap: "addrmap",
	KindRegfile: "regfile",
	KindReg:     "reg",
	KindMem:     "mem",
	KindField:   "field",
}

func (k Kind) String() string {
	name, ok := kindNames[k]
	if !ok {
		return fmt.Sprintf("kind(%d)", int(k))
	}
	return name
}

// ParseKind converts a kind name from a model document into a Kind.
func ParseKind(name string) (Kind, error) {
	for kind, kindName := range kindNames {
		if kindName == name {
			return kind, nil
		}
	}
	return 0, fmt.Errorf("unknown node kind '%s'", name)
}

// Node is an addressable node of the elaborated register-map model.
// Nodes are immutable once the tree has been built.
type Node struct {
	Name            string
	Kind            Kind
	AbsoluteAddress uint64 // raw absolute byte address
	ArrayDimensions []int  // outermost first, empty when not an array
	ArrayStride     uint64 // byte distance between consecutive innermost elements
	Properties      map[string]uint64

	children []*Node
	parent   *Node
}

// New creates a new node.
func New(name string, kind Kind, address uint64) *Node {
	return &Node{
		Name:            name,
		Kind:            kind,
		AbsoluteAddress: address,
	}
}

// AddChild appends a child node and sets its parent link.
func (n *Node) AddChild(child *Node) {
	child.parent = n
	n.children = append(n.children, child)
}

// Children returns the child nodes in document order.
func (n *Node) Children() []*Node {
	return n.children
}

// Parent returns the parent node, nil for the root.
func (n *Node) Parent() *Node {
	return n.parent
}

// IsArray returns whether the node has array dimensions.
func (n *Node) IsArray() bool {
	return len(n.ArrayDimensions) > 0
}

// IsLeaf returns whether the node is a register or memory, the unit that
// owns an access strobe.
func (n *Node) IsLeaf() bool {
	return n.Kind == KindReg || n.Kind == KindMem
}

// Property returns a named property value of the node.
func (n *Node) Property(name string) (uint64, bool) {
	value, ok := n.Properties[name]
	return value, ok
}

// MemSpan returns the byte footprint of a memory node,
// ceil(memwidth/8) * mementries. A partial trailing byte of an entry is
// charged to the footprint.
func (n *Node) MemSpan() (uint64, error) {
	entries, ok := n.Property(PropertyMemEntries)
	if !ok {
		return 0, &MissingPropertyError{Node: n, Property: PropertyMemEntries}
	}
	width, ok := n.Property(PropertyMemWidth)
	if !ok {
		return 0, &MissingPropertyError{Node: n, Property: PropertyMemWidth}
	}
	bytesPerEntry := (width + 7) / 8
	return bytesPerEntry * entries, nil
}

// Find returns the first node with the given name in a pre-order depth-first
// search starting at and including n, nil if no node matches.
func (n *Node) Find(name string) *Node {
	if n.Name == name {
		return n
	}
	for _, child := range n.children {
		if found := child.Find(name); found != nil {
			return found
		}
	}
	return nil
}

// Walk traverses the subtree rooted at n depth-first in pre-order, calling
// enter before and exit after visiting a node's children. Children of
// register and memory nodes are not descended into, fields carry no
// independent address information. Both callbacks can be nil.
func (n *Node) Walk(enter, exit func(*Node) error) error {
	if enter != nil {
		if err := enter(n); err != nil {
			return err
		}
	}

	if !n.IsLeaf() {
		for _, child := range n.children {
			if err := child.Walk(enter, exit); err != nil {
				return err
			}
		}
	}

	if exit != nil {
		return exit(n)
	}
	return nil
}

// MissingPropertyError indicates a memory node that lacks a required
// property, the input model is malformed.
type MissingPropertyError struct {
	Node     *Node
	Property string
}

func (e *MissingPropertyError) Error() string {
	return fmt.Sprintf("node '%s' is missing required property '%s'", e.Node.Name, e.Property)
}
