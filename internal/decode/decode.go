// Package decode generates the address decode stage of a register block:
// the struct typedef mirroring the hierarchy's access strobes and the
// combinational logic that computes, for every register and memory, whether
// the current bus access targets it.
package decode

import (
	"errors"
	"fmt"

	"github.com/retroenv/regblockgen/internal/model"
	"github.com/retroenv/regblockgen/internal/output"
	"github.com/retroenv/regblockgen/internal/path"
)

// Signal names referenced by the generated logic, assumed to be in scope at
// the emission site.
const (
	StrobeType    = "decoded_reg_strb_t"
	strobePrefix  = "decoded_reg_strb."
	requestSignal = "cpuif_req_masked"
	addressSignal = "cpuif_addr"
)

// ErrEmptyModel indicates an address model without any registers or
// memories, a decode struct with no fields is meaningless.
var ErrEmptyModel = errors.New("address model contains no registers or memories")

// StackImbalanceError indicates unbalanced stride stack enter/exit calls at
// traversal end, a contract violation of the node visitation.
type StackImbalanceError struct {
	Pushed int
	Popped int
}

func (e *StackImbalanceError) Error() string {
	return fmt.Sprintf("stride stack imbalance after traversal: %d pushed, %d popped", e.Pushed, e.Popped)
}

// AddressDecode generates the address decode artifacts for the address map
// rooted at the top node. The model is read-only, every generation call
// derives fresh traversal state, so one instance can serve repeated and
// concurrent invocations.
type AddressDecode struct {
	top *model.Node
}

// New creates an address decode generator for the given top address map.
func New(top *model.Node) *AddressDecode {
	return &AddressDecode{top: top}
}

// AccessStrobe returns the signal name of the access strobe for a register,
// memory or field node. Fields resolve to their parent register's strobe.
func (a *AddressDecode) AccessStrobe(node *model.Node) string {
	return strobePrefix + path.Indexed(a.top, node)
}

// Access returns the plain hierarchy-qualified access path of a register,
// memory or field node.
func (a *AddressDecode) Access(node *model.Node) string {
	return path.Indexed(a.top, node)
}

// StrobeStruct generates the struct typedef mirroring the access strobe
// signals of the hierarchy: one logic field per register or memory carrying
// the node's array dimensions, grouped by nested structs for containers.
// Returns ErrEmptyModel if the hierarchy contains no registers or memories.
func (a *AddressDecode) StrobeStruct() (string, error) {
	st := output.NewStruct()
	for _, child := range a.top.Children() {
		a.collectStrobeFields(st, child)
	}

	s, err := st.TypeDef(StrobeType)
	if err != nil {
		if errors.Is(err, output.ErrNoFields) {
			return "", ErrEmptyModel
		}
		return "", fmt.Errorf("generating strobe struct: %w", err)
	}
	return s, nil
}

func (a *AddressDecode) collectStrobeFields(st *output.Struct, node *model.Node) {
	switch node.Kind {
	case model.KindReg, model.KindMem:
		st.AddField(node.Name, node.ArrayDimensions)

	case model.KindAddrmap, model.KindRegfile:
		st.Push(node.Name, node.ArrayDimensions)
		for _, child := range node.Children() {
			a.collectStrobeFields(st, child)
		}
		st.Pop()

	case model.KindField:
		// fields carry no independent strobe
	}
}

// Implementation generates the decode logic body: one strobe assignment per
// register and memory leaf, wrapped in for-loop scaffolding for array
// dimensions. Returns ErrEmptyModel for a model without leaves and a
// StackImbalanceError if the traversal ends with a non-empty stride stack.
func (a *AddressDecode) Implementation() (string, error) {
	body := output.NewBody()
	tracker := &strideTracker{}

	enter := func(node *model.Node) error {
		depth := tracker.depth()
		for i, dim := range node.ArrayDimensions {
			body.EnterLoop(fmt.Sprintf("i%d", depth+i), dim)
		}
		tracker.enter(node.ArrayDimensions, node.ArrayStride)

		switch node.Kind {
		case model.KindReg:
			body.Add(a.regCondition(node, tracker))

		case model.KindMem:
			statement, err := a.memCondition(node, tracker)
			if err != nil {
				return err
			}
			body.Add(statement)
		}
		return nil
	}

	exit := func(node *model.Node) error {
		if err := tracker.exit(node.ArrayDimensions); err != nil {
			return err
		}
		for range node.ArrayDimensions {
			body.ExitLoop()
		}
		return nil
	}

	for _, child := range a.top.Children() {
		if err := child.Walk(enter, exit); err != nil {
			return "", err
		}
	}

	if !tracker.balanced() {
		return "", &StackImbalanceError{Pushed: tracker.pushed, Popped: tracker.popped}
	}
	if body.Len() == 0 {
		return "", ErrEmptyModel
	}
	return body.String(), nil
}

// regCondition emits the decode assignment for a register: the qualified
// request combined with an equality check of the bus address against the
// register's root-relative offset.
func (a *AddressDecode) regCondition(node *model.Node, tracker *strideTracker) string {
	offset := node.AbsoluteAddress - a.top.AbsoluteAddress
	return fmt.Sprintf("%s = %s & (%s == %s);",
		a.AccessStrobe(node), requestSignal, addressSignal, a.addressExpr(offset, tracker))
}

// memCondition emits the decode assignment for a memory: a half-open range
// check of the bus address against the memory's root-relative footprint.
// Both bounds share the same stride stack terms, the span check of a memory
// array moves with the array index exactly as its base does.
func (a *AddressDecode) memCondition(node *model.Node, tracker *strideTracker) (string, error) {
	span, err := node.MemSpan()
	if err != nil {
		return "", err
	}

	low := node.AbsoluteAddress - a.top.AbsoluteAddress
	high := low + span
	return fmt.Sprintf("%s = %s & (%s >= (%s)) & (%s < (%s));",
		a.AccessStrobe(node), requestSignal,
		addressSignal, a.addressExpr(low, tracker),
		addressSignal, a.addressExpr(high, tracker)), nil
}

// addressExpr renders an address term: the root-relative offset plus one
// index-times-stride summand per active stride stack entry, in stack order.
func (a *AddressDecode) addressExpr(offset uint64, tracker *strideTracker) string {
	expr := fmt.Sprintf("'h%x", offset)
	for i, stride := range tracker.stack {
		expr += fmt.Sprintf(" + i%d*'h%x", i, stride)
	}
	return expr
}
