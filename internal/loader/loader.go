// Package loader reads an elaborated register-map model document.
//
// The document is the output of an upstream elaborator: a YAML tree with all
// absolute addresses, array dimensions, strides and memory properties
// resolved. Only structural validity is checked here, semantic correctness
// of the address layout is the elaborator's contract.
package loader

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/retroenv/regblockgen/internal/model"
	"gopkg.in/yaml.v3"
)

// Loader reads elaborated model documents from disk.
type Loader struct{}

// New creates a new model loader.
func New() *Loader {
	return &Loader{}
}

type document struct {
	Name       string     `yaml:"name"`
	Kind       string     `yaml:"kind"`
	Address    uint64     `yaml:"address"`
	Dimensions []int      `yaml:"dimensions"`
	Stride     uint64     `yaml:"stride"`
	MemEntries uint64     `yaml:"mementries"`
	MemWidth   uint64     `yaml:"memwidth"`
	Children   []document `yaml:"children"`
}

// LoadFile loads and parses a model file.
func (l *Loader) LoadFile(name string) (*model.Node, error) {
	file, err := os.Open(name)
	if err != nil {
		return nil, fmt.Errorf("opening file %s: %w", name, err)
	}
	defer func() { _ = file.Close() }()

	top, err := l.Load(file)
	if err != nil {
		return nil, fmt.Errorf("loading model %s: %w", name, err)
	}
	return top, nil
}

// Load parses a model document from a reader. The document root must be an
// address map.
func (l *Loader) Load(reader io.Reader) (*model.Node, error) {
	var doc document
	decoder := yaml.NewDecoder(reader)
	decoder.KnownFields(true)
	if err := decoder.Decode(&doc); err != nil {
		return nil, fmt.Errorf("decoding document: %w", err)
	}

	top, err := convert(doc)
	if err != nil {
		return nil, err
	}
	if top.Kind != model.KindAddrmap {
		return nil, fmt.Errorf("document root '%s' must be an addrmap, got %s", top.Name, top.Kind)
	}
	return top, nil
}

func convert(doc document) (*model.Node, error) {
	if doc.Name == "" {
		return nil, errors.New("node without name")
	}

	kind, err := model.ParseKind(doc.Kind)
	if err != nil {
		return nil, fmt.Errorf("node '%s': %w", doc.Name, err)
	}

	node := model.New(doc.Name, kind, doc.Address)
	node.ArrayDimensions = doc.Dimensions
	node.ArrayStride = doc.Stride

	if err := validate(doc, node); err != nil {
		return nil, err
	}

	if kind == model.KindMem {
		node.Properties = map[string]uint64{
			model.PropertyMemEntries: doc.MemEntries,
			model.PropertyMemWidth:   doc.MemWidth,
		}
	}

	for _, child := range doc.Children {
		childNode, err := convert(child)
		if err != nil {
			return nil, err
		}
		if err := validateChild(node, childNode); err != nil {
			return nil, err
		}
		node.AddChild(childNode)
	}
	return node, nil
}

func validate(doc document, node *model.Node) error {
	for _, dim := range doc.Dimensions {
		if dim <= 0 {
			return fmt.Errorf("node '%s': array dimension %d must be positive", doc.Name, dim)
		}
	}
	if len(doc.Dimensions) > 0 && doc.Stride == 0 {
		return fmt.Errorf("node '%s': array requires a stride", doc.Name)
	}

	if node.Kind == model.KindMem {
		if doc.MemEntries == 0 {
			return fmt.Errorf("node '%s': memory requires mementries", doc.Name)
		}
		if doc.MemWidth == 0 {
			return fmt.Errorf("node '%s': memory requires memwidth", doc.Name)
		}
	}
	return nil
}

func validateChild(parent, child *model.Node) error {
	switch parent.Kind {
	case model.KindReg:
		if child.Kind != model.KindField {
			return fmt.Errorf("node '%s': register child '%s' must be a field", parent.Name, child.Name)
		}

	case model.KindMem, model.KindField:
		return fmt.Errorf("node '%s': %s nodes can not have children", parent.Name, parent.Kind)

	case model.KindAddrmap, model.KindRegfile:
		if child.Kind == model.KindField {
			return fmt.Errorf("node '%s': field '%s' must be inside a register", parent.Name, child.Name)
		}
	}
	return nil
}
