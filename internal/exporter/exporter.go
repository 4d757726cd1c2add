// Package exporter sequences the generation stages and writes the output file.
package exporter

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/retroenv/regblockgen/internal/decode"
	"github.com/retroenv/regblockgen/internal/model"
)

const indent = "    "

// Exporter renders the address decode artifacts of a top address map into a
// SystemVerilog fragment.
type Exporter struct {
	version string
}

// New creates a new exporter.
func New(version string) *Exporter {
	return &Exporter{version: version}
}

// Generate produces the complete output for the given top node: a comment
// header, the strobe struct typedef and the decode logic wrapped in an
// always_comb block. Generation is deterministic, the same model produces
// byte-identical output.
func (e *Exporter) Generate(top *model.Node) ([]byte, error) {
	dec := decode.New(top)

	strobeStruct, err := dec.StrobeStruct()
	if err != nil {
		return nil, fmt.Errorf("generating strobe struct: %w", err)
	}

	implementation, err := dec.Implementation()
	if err != nil {
		return nil, fmt.Errorf("generating decode logic: %w", err)
	}

	buf := &bytes.Buffer{}
	fmt.Fprintf(buf, "// Address decode logic generated by regblockgen %s\n", e.version)
	fmt.Fprintf(buf, "// Top component: %s\n\n", top.Name)

	buf.WriteString(strobeStruct)
	buf.WriteString("\n\nalways_comb begin\n")
	for _, line := range strings.Split(implementation, "\n") {
		buf.WriteString(indent + line + "\n")
	}
	buf.WriteString("end\n")

	return buf.Bytes(), nil
}

// Export generates the output for the top node and writes it in one piece.
// Nothing is written when generation fails.
func (e *Exporter) Export(writer io.Writer, top *model.Node) error {
	data, err := e.Generate(top)
	if err != nil {
		return err
	}

	if _, err := writer.Write(data); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}
	return nil
}
