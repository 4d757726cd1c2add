// Package output implements the SystemVerilog emission back end for the
// generated code: an indentation-aware statement body with for-loop
// scaffolding and a struct typedef builder.
package output

import (
	"fmt"
	"strings"
)

const indent = "    "

type loopFrame struct {
	header string
	opened bool
}

// Body accumulates generated statements and wraps them in for-loop
// scaffolding for array dimensions. Loop headers are emitted lazily once the
// first statement inside them is added, a loop whose body stays empty
// produces no output.
type Body struct {
	lines      []string
	loops      []loopFrame
	statements int
}

// NewBody creates a new statement body.
func NewBody() *Body {
	return &Body{}
}

// EnterLoop opens a for loop over the given index variable and bound.
// The header is held back until a statement is added inside the loop.
func (b *Body) EnterLoop(index string, bound int) {
	header := fmt.Sprintf("for(int %s=0; %s<%d; %s++) begin", index, index, bound, index)
	b.loops = append(b.loops, loopFrame{header: header})
}

// ExitLoop closes the innermost loop, emitting its end only if the loop
// header was emitted.
func (b *Body) ExitLoop() {
	frame := b.loops[len(b.loops)-1]
	b.loops = b.loops[:len(b.loops)-1]
	if frame.opened {
		b.lines = append(b.lines, strings.Repeat(indent, len(b.loops))+"end")
	}
}

// Add appends a statement at the current loop nesting level, emitting any
// pending loop headers first.
func (b *Body) Add(statement string) {
	for i := range b.loops {
		if b.loops[i].opened {
			continue
		}
		b.lines = append(b.lines, strings.Repeat(indent, i)+b.loops[i].header)
		b.loops[i].opened = true
	}

	b.lines = append(b.lines, strings.Repeat(indent, len(b.loops))+statement)
	b.statements++
}

// Len returns the number of statements added, loop scaffolding not counted.
func (b *Body) Len() int {
	return b.statements
}

// Lines returns the accumulated output lines.
func (b *Body) Lines() []string {
	return b.lines
}

// String returns the accumulated output joined by newlines.
func (b *Body) String() string {
	return strings.Join(b.lines, "\n")
}
