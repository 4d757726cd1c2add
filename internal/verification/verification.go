// Package verification verifies that the generated output is reproducible.
package verification

import (
	"fmt"

	"github.com/retroenv/regblockgen/internal/exporter"
	"github.com/retroenv/regblockgen/internal/model"
	"github.com/retroenv/retrogolib/log"
)

// VerifyOutput regenerates the output for the model and verifies that it
// matches the reference byte for byte. Generation is a pure function of the
// model, any difference indicates non-deterministic generation.
func VerifyOutput(logger *log.Logger, exp *exporter.Exporter, top *model.Node, reference []byte) error {
	regenerated, err := exp.Generate(top)
	if err != nil {
		return fmt.Errorf("regenerating output: %w", err)
	}

	return checkBufferEqual(logger, reference, regenerated)
}

func checkBufferEqual(logger *log.Logger, input, output []byte) error {
	if len(input) != len(output) {
		return fmt.Errorf("mismatched lengths, %d != %d", len(input), len(output))
	}

	var diffs uint64
	for i := range input {
		if input[i] == output[i] {
			continue
		}

		diffs++
		if diffs < 10 {
			logger.Error("Offset mismatch",
				log.Hex("offset", i),
				log.Hex("expected", input[i]),
				log.Hex("got", output[i]))
		}
	}
	if diffs == 0 {
		return nil
	}
	return fmt.Errorf("%d offset mismatches", diffs)
}
