package output

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNoFields indicates a struct typedef without any fields, which is not a
// valid SystemVerilog declaration.
var ErrNoFields = errors.New("struct contains no fields")

type structFrame struct {
	name    string
	dims    []int
	members []string
}

// Struct builds a SystemVerilog struct typedef whose shape mirrors a node
// hierarchy: logic fields for leaves and anonymous nested structs for
// containers. Containers without any fields in their subtree are dropped.
type Struct struct {
	frames []*structFrame
}

// NewStruct creates a new struct builder with an open root frame.
func NewStruct() *Struct {
	return &Struct{
		frames: []*structFrame{{}},
	}
}

// Push opens a nested struct member with the given name and array dimensions.
func (s *Struct) Push(name string, dims []int) {
	s.frames = append(s.frames, &structFrame{name: name, dims: dims})
}

// Pop closes the innermost nested struct and adds it as a member to its
// parent. A nested struct without members contributes nothing.
func (s *Struct) Pop() {
	frame := s.frames[len(s.frames)-1]
	s.frames = s.frames[:len(s.frames)-1]

	if len(frame.members) == 0 {
		return
	}

	parent := s.frames[len(s.frames)-1]
	parent.members = append(parent.members, "struct {")
	for _, member := range frame.members {
		parent.members = append(parent.members, indent+member)
	}
	parent.members = append(parent.members, fmt.Sprintf("} %s%s;", frame.name, DimSuffix(frame.dims)))
}

// AddField adds a logic field with the given name and array dimensions to
// the innermost struct.
func (s *Struct) AddField(name string, dims []int) {
	frame := s.frames[len(s.frames)-1]
	frame.members = append(frame.members, fmt.Sprintf("logic %s%s;", name, DimSuffix(dims)))
}

// TypeDef renders the typedef declaration for the accumulated struct.
// Returns ErrNoFields if no field was added.
func (s *Struct) TypeDef(typeName string) (string, error) {
	root := s.frames[0]
	if len(root.members) == 0 {
		return "", ErrNoFields
	}

	sb := &strings.Builder{}
	sb.WriteString("typedef struct {\n")
	for _, member := range root.members {
		sb.WriteString(indent + member + "\n")
	}
	fmt.Fprintf(sb, "} %s;", typeName)
	return sb.String(), nil
}

// DimSuffix renders array dimensions as unpacked array suffixes, an empty
// string for non-arrays.
func DimSuffix(dims []int) string {
	sb := &strings.Builder{}
	for _, dim := range dims {
		fmt.Fprintf(sb, "[%d]", dim)
	}
	return sb.String()
}
