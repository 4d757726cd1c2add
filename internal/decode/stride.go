package decode

// strideTracker maintains the shared stack of per-dimension address strides
// for the array nesting currently being traversed. One stack entry per array
// dimension of every ancestor node, outermost first, matching the loop index
// variables i0..iN of the generated decode logic.
type strideTracker struct {
	stack  []uint64
	pushed int
	popped int
}

// enter pushes the per-dimension strides of an array node, a no-op for
// non-array nodes. The innermost dimension's stride is the node's array
// stride, each dimension moving outward multiplies the running product by
// the dimension size.
func (s *strideTracker) enter(dims []int, arrayStride uint64) {
	if len(dims) == 0 {
		return
	}

	strides := make([]uint64, len(dims))
	stride := arrayStride
	for i := len(dims) - 1; i >= 0; i-- {
		strides[i] = stride
		stride *= uint64(dims[i])
	}

	s.stack = append(s.stack, strides...)
	s.pushed += len(strides)
}

// exit pops one stride per array dimension, a no-op for non-array nodes.
// Popping more entries than pushed violates the traversal contract.
func (s *strideTracker) exit(dims []int) error {
	if len(dims) == 0 {
		return nil
	}

	s.popped += len(dims)
	if len(dims) > len(s.stack) {
		return &StackImbalanceError{Pushed: s.pushed, Popped: s.popped}
	}
	s.stack = s.stack[:len(s.stack)-len(dims)]
	return nil
}

// depth returns the current number of active array dimensions.
func (s *strideTracker) depth() int {
	return len(s.stack)
}

// balanced returns whether every pushed stride has been popped again.
func (s *strideTracker) balanced() bool {
	return len(s.stack) == 0
}
