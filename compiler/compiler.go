// Package compiler defines the boundary to the external Luau bytecode
// compiler consumed by the luaucx tool: source bytes in, bytecode bytes out.
//
// The compiler itself is an external collaborator. This package only
// specifies the contract and ships a driver for the stock luau-compile
// executable; anything satisfying Compiler can stand in, including a Func
// in tests.
package compiler

import (
	"context"
	"fmt"
)

// Options carries the compiler knobs the tool exposes.
type Options struct {
	// OptimizationLevel selects compiler optimization, 0 to 2.
	OptimizationLevel int
	// DebugLevel selects the amount of debug information, 0 to 2.
	DebugLevel int
}

// DefaultOptions matches the compiler's own defaults: -O1 -g1.
func DefaultOptions() Options {
	return Options{OptimizationLevel: 1, DebugLevel: 1}
}

func (o Options) validate() error {
	if o.OptimizationLevel < 0 || o.OptimizationLevel > 2 {
		return fmt.Errorf("optimization level must be between 0 and 2, got %d", o.OptimizationLevel)
	}
	if o.DebugLevel < 0 || o.DebugLevel > 2 {
		return fmt.Errorf("debug level must be between 0 and 2, got %d", o.DebugLevel)
	}
	return nil
}

// args renders the options as luau-compile flags. Source arrives on stdin,
// signalled by the trailing "-".
func (o Options) args() []string {
	return []string{
		"--binary",
		fmt.Sprintf("-O%d", o.OptimizationLevel),
		fmt.Sprintf("-g%d", o.DebugLevel),
		"-",
	}
}

// Compiler turns Luau source into bytecode.
type Compiler interface {
	Compile(ctx context.Context, source []byte, opts Options) ([]byte, error)
}

// Func adapts a plain function to the Compiler interface.
type Func func(ctx context.Context, source []byte, opts Options) ([]byte, error)

// Compile calls f.
func (f Func) Compile(ctx context.Context, source []byte, opts Options) ([]byte, error) {
	return f(ctx, source, opts)
}
