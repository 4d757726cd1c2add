// Package fileprocessor handles file loading and processing operations
package fileprocessor

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/retroenv/regblockgen/internal/exporter"
	"github.com/retroenv/regblockgen/internal/loader"
	"github.com/retroenv/regblockgen/internal/model"
	"github.com/retroenv/regblockgen/internal/options"
	"github.com/retroenv/regblockgen/internal/verification"
	"github.com/retroenv/retrogolib/buildinfo"
	"github.com/retroenv/retrogolib/log"
)

// PrintBanner prints the program banner
func PrintBanner(logger *log.Logger, opts options.Program, version, commit, date string) {
	if opts.Quiet {
		return
	}

	fmt.Println("[---------------------------------------------]")
	fmt.Println("[ regblockgen - register block code generator ]")
	fmt.Printf("[---------------------------------------------]\n\n")
	fmt.Printf("version: %s\n\n", buildinfo.Version(version, commit, date))

	logger.Debug("Command line arguments", log.String("args", fmt.Sprint(os.Args[1:])))
}

// ProcessFile handles the complete generation workflow for one model file
func ProcessFile(logger *log.Logger, opts options.Program, version string) error {
	top, err := loadTop(opts)
	if err != nil {
		return err
	}

	exp := exporter.New(version)
	data, err := exp.Generate(top)
	if err != nil {
		return fmt.Errorf("generating decode logic: %w", err)
	}

	if err := writeOutput(opts, data); err != nil {
		return err
	}

	if opts.Verify {
		if err := verification.VerifyOutput(logger, exp, top, data); err != nil {
			return fmt.Errorf("verification failed: %w", err)
		}
		logger.Info("Verification successful")
	}

	if !opts.Quiet {
		logger.Info("Generated address decode",
			log.String("top", top.Name),
			log.String("output", outputName(opts)),
		)
	}
	return nil
}

// GetFilesToProcess returns list of files to process based on options
func GetFilesToProcess(opts *options.Program) ([]string, error) {
	if opts.Batch != "" {
		matches, err := filepath.Glob(opts.Batch)
		if err != nil {
			return nil, fmt.Errorf("globbing batch pattern: %w", err)
		}
		return matches, nil
	}
	return []string{opts.Input}, nil
}

// GenerateOutputFilename generates output filename for a given input file
func GenerateOutputFilename(inputFile string) string {
	ext := filepath.Ext(inputFile)
	return inputFile[:len(inputFile)-len(ext)] + ".sv"
}

func loadTop(opts options.Program) (*model.Node, error) {
	root, err := loader.New().LoadFile(opts.Input)
	if err != nil {
		return nil, fmt.Errorf("loading model: %w", err)
	}

	if opts.Top == "" {
		return root, nil
	}

	top := root.Find(opts.Top)
	if top == nil {
		return nil, fmt.Errorf("top component '%s' not found in model", opts.Top)
	}
	if top.Kind != model.KindAddrmap {
		return nil, fmt.Errorf("top component '%s' is a %s, must be an addrmap", opts.Top, top.Kind)
	}
	return top, nil
}

func writeOutput(opts options.Program, data []byte) error {
	if opts.Output == "" {
		if _, err := os.Stdout.Write(data); err != nil {
			return fmt.Errorf("writing output: %w", err)
		}
		return nil
	}

	if err := os.WriteFile(opts.Output, data, 0644); err != nil {
		return fmt.Errorf("creating output file %s: %w", opts.Output, err)
	}
	return nil
}

func outputName(opts options.Program) string {
	if opts.Output == "" {
		return "stdout"
	}
	return opts.Output
}
