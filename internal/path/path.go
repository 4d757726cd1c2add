// Package path resolves hierarchy-qualified signal names for address-model nodes.
package path

import (
	"fmt"
	"strings"

	"github.com/retroenv/regblockgen/internal/model"
)

// Indexed returns the hierarchy-qualified access path of a node relative to
// and excluding the given top node, segments joined with dots. Every array
// node along the path contributes one [iN] index suffix per dimension,
// numbered globally from the top outermost first, matching the loop index
// variables of the generated decode logic. Field nodes resolve to the path
// of their parent register.
func Indexed(top, node *model.Node) string {
	if node.Kind == model.KindField {
		node = node.Parent()
	}

	var chain []*model.Node
	for n := node; n != nil && n != top; n = n.Parent() {
		chain = append(chain, n)
	}
	for i, j := 0, len(chain)-1; i < j; i, j = i+1, j-1 {
		chain[i], chain[j] = chain[j], chain[i]
	}

	index := 0
	segments := make([]string, 0, len(chain))
	for _, n := range chain {
		segment := n.Name
		for range n.ArrayDimensions {
			segment += fmt.Sprintf("[i%d]", index)
			index++
		}
		segments = append(segments, segment)
	}
	return strings.Join(segments, ".")
}
