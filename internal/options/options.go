// Package options contains the program options.
package options

// Parameters contains file path options.
type Parameters struct {
	Input  string // elaborated model file
	Output string // output .sv file, stdout when empty
	Batch  string // batch process files matching pattern
}

// Flags contains behavior options.
type Flags struct {
	Top    string // name of the addrmap to generate for, document root when empty
	Verify bool   // regenerate and compare the output
	Debug  bool
	Quiet  bool
}

// Program options of the generator.
type Program struct {
	Parameters
	Flags
}
