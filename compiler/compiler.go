// Package compiler orchestrates the full pipeline described in spec.md §5:
// lexical normalization, name resolution, control-flow/expression/temp/
// calling-convention lowering, jump linking, and MTTM code generation,
// producing a tm.Machine ready to run. It also bundles the runtime library
// (library.go) every program is compiled against, and the decimal/binary
// conversion a caller needs to drive a compiled program's input/output
// tapes, mirroring GVM's root package boundary between "compile" and "run".
package compiler

import (
	"fmt"
	"strings"

	"tmc/asmir"
	"tmc/codegen"
	"tmc/lexer"
	"tmc/lower"
	"tmc/resolve"
	"tmc/tm"
)

var librarySourceLines = strings.Split(strings.TrimPrefix(librarySource, "\n"), "\n")

// Compile runs lines (the user's program) through every pipeline stage,
// prepended with the bundled runtime library, and returns the resulting
// machine.
func Compile(lines []string) (*tm.Machine, error) {
	prog, err := Link(lines)
	if err != nil {
		return nil, err
	}
	m, err := codegen.Generate(prog)
	if err != nil {
		return nil, fmt.Errorf("codegen: %w", err)
	}
	return m, nil
}

// Link runs lines through stages A-G only, returning the linked assembly-IR
// program without generating a machine. Exposed for tests and tooling that
// want to inspect the assembly IR directly (spec.md §6's textual form, via
// (*asmir.Program).String).
func Link(lines []string) (*asmir.Program, error) {
	source := make([]string, 0, len(librarySourceLines)+len(lines))
	source = append(source, librarySourceLines...)
	source = append(source, lines...)

	toks, err := lexer.Normalize(source)
	if err != nil {
		return nil, fmt.Errorf("lexer: %w", err)
	}
	toks, err = resolve.Resolve(toks)
	if err != nil {
		return nil, fmt.Errorf("resolve: %w", err)
	}
	prog, err := lower.Run(toks)
	if err != nil {
		return nil, fmt.Errorf("lower: %w", err)
	}
	return prog, nil
}

// LoadInput seeds m's input tape with vals encoded as sign-magnitude words
// (codegen.EncodeInt), each delimited from the next by a single blank cell,
// the form nextInt reads: each call copies up to the next blank and
// advances past it.
func LoadInput(m *tm.Machine, vals []int) {
	parts := make([]string, len(vals))
	for i, v := range vals {
		parts[i] = codegen.EncodeInt(v)
	}
	m.Tapes[codegen.InputTape()].WriteString(strings.Join(parts, string(tm.Blank)))
}

// ReadOutput decodes m's output tape back into the sequence of ints
// printInt wrote to it. printSpace advances the head over a single blank
// cell without writing one of its own, so a run of blanks between words
// collapses to the same empty separator regardless of how many printSpace
// calls produced it; ReadOutput splits on runs of blanks and decodes each
// non-blank run as one sign-magnitude word.
func ReadOutput(m *tm.Machine) ([]int, error) {
	raw := m.Tapes[codegen.OutputTape()].String()
	var out []int
	i := 0
	for i < len(raw) {
		if raw[i] == tm.Blank {
			i++
			continue
		}
		j := i
		for j < len(raw) && raw[j] != tm.Blank {
			j++
		}
		v, err := codegen.DecodeInt(raw[i:j])
		if err != nil {
			return nil, err
		}
		out = append(out, v)
		i = j
	}
	return out, nil
}
