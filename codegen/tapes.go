// Package codegen implements component H: it turns a linked asmir.Program
// into a tm.Machine whose transitions realize the program's operations one
// assembly line at a time (spec.md §4.H).
package codegen

import "tmc/token"

// fixed tape indices, present in every generated machine ahead of the
// variable block.
const (
	tapeIP = iota
	tapeIPStack
	tapeInput
	tapeOutput
	tapeBitIndex
	tapeBits
	tapeRAX
	tapeParamStack
	tapeLibArg0   // de-aliased copy of a library call's first argument
	tapeLibArg1   // de-aliased copy of a library call's second argument
	tapeLibResult // a library call's result, before it is copied into the real destination
	numFixedTapes
)

// Layout maps the symbolic tape names used by asmir.Instr operands to
// physical tape indices in the generated machine's tape vector, and records
// the ip width (in bits) chosen for this program.
//
// IPWidth also sizes the ipSideways bank (spec.md §3): one one-cell tape per
// ip bit, used to dispatch on the current line without re-reading ip itself
// bit by bit (§4.H).
type Layout struct {
	NumVars  int // number of !TAPE_tapeN variable tapes
	IPWidth  int // bits in the two's-complement ip/ipStack-frame encoding, and width of the ipSideways bank
	NumLines int
}

// NewLayout picks an ip width wide enough to represent every line number
// from -2 (the top-level return sentinel, spec.md §4.H "Initialization")
// through numLines-1 in two's complement.
func NewLayout(numVars, numLines int) Layout {
	width := 2
	for {
		lo := -(int64(1) << uint(width-1))
		hi := (int64(1) << uint(width-1)) - 1
		if lo <= -2 && hi >= int64(numLines-1) {
			break
		}
		width++
	}
	return Layout{NumVars: numVars, IPWidth: width, NumLines: numLines}
}

// IPSideways returns the physical tape index of the i'th ipSideways cell
// (0 <= i < l.IPWidth), which holds the current ip bit i horizontally for
// dispatch to match on (spec.md §3, §4.H).
func (l Layout) IPSideways(i int) int { return numFixedTapes + i }

// TotalTapes is the physical tape count the generated tm.Machine runs with.
func (l Layout) TotalTapes() int { return numFixedTapes + l.IPWidth + l.NumVars }

// InputTape and OutputTape are the physical tape indices backing nextInt's
// and printInt's streams, stable across every generated machine regardless
// of variable count.
func InputTape() int  { return tapeInput }
func OutputTape() int { return tapeOutput }

// Tape resolves a symbolic operand name (as it appears on an asmir.Instr,
// e.g. "!TAPE_tape3", "!TAPE_RAX", "!TAPE_PARAMS") to a physical tape
// index.
func (l Layout) Tape(name string) int {
	switch name {
	case token.TapeRAX:
		return tapeRAX
	case token.TapeParams:
		return tapeParamStack
	default:
		return numFixedTapes + l.IPWidth + token.VarTapeIndex(name)
	}
}
