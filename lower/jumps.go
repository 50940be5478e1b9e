package lower

import (
	"errors"
	"fmt"

	"tmc/asmir"
	"tmc/token"
)

// ErrNoMain is returned when the source defines no main function.
var ErrNoMain = errors.New("no main function defined")

// Link performs stage G: it flattens every function's nested If/While
// control structure into a single line-numbered asmir.Program, resolving
// every jmp/jf/call target to a concrete line index, and prepends a jump to
// main's entry line (spec.md 4.G).
func Link(funcs []*LoweredFunc) (*asmir.Program, error) {
	sizes := make([]int, len(funcs))
	for i, f := range funcs {
		sizes[i] = instrCount(f.Body)
	}

	entry := map[string]int{}
	start := 1 // line 0 is the pre-pad jump to main
	for i, f := range funcs {
		entry[f.Name] = start
		start += sizes[i]
	}
	numLines := start

	mainEntry, ok := entry[token.FuncUser+"main"]
	if !ok {
		return nil, ErrNoMain
	}

	instrs := make([]asmir.Instr, 0, numLines)
	instrs = append(instrs, asmir.Instr{Op: asmir.Jmp, Target: mainEntry})

	maxTape := -1
	for _, f := range funcs {
		body := emit(f.Body, entry[f.Name], -1, -1, entry)
		instrs = append(instrs, body...)
		if f.NumTapes-1 > maxTape {
			maxTape = f.NumTapes - 1
		}
	}
	if len(instrs) != numLines {
		return nil, fmt.Errorf("internal error: expected %d lines, emitted %d", numLines, len(instrs))
	}

	return &asmir.Program{Instrs: instrs, NumTapes: maxTape + 1}, nil
}

// instrCount returns how many assembly-IR lines body expands to, mirroring
// emit's line accounting exactly (see emit's comments for the per-shape
// line layout).
func instrCount(body []Flat) int {
	n := 0
	for _, s := range body {
		switch f := s.(type) {
		case *FIf:
			thenSize := instrCount(f.Then)
			if f.Else == nil {
				n += 2 + thenSize
			} else {
				n += 4 + thenSize + instrCount(f.Else)
			}
		case *FWhile:
			n += 2 + instrCount(f.Body)
		default:
			n++
		}
	}
	return n
}

// emit lowers body, whose first instruction is at absolute line start, into
// its flat instruction list. brk/cont are the absolute line targets for any
// FBreak/FContinue directly inside body (not inside a nested loop, which
// carries its own).
func emit(body []Flat, start, brk, cont int, entry map[string]int) []asmir.Instr {
	var out []asmir.Instr
	line := func() int { return start + len(out) }

	for _, s := range body {
		switch n := s.(type) {
		case *FAssignVar:
			out = append(out, asmir.Instr{Op: asmir.CopyTape, Dst: n.Dst, Src: n.Src})
		case *FAssignLit:
			if n.IsBool {
				out = append(out, asmir.Instr{Op: asmir.LitBool, Dst: n.Dst, BoolVal: n.Bool})
			} else {
				out = append(out, asmir.Instr{Op: asmir.LitInt, Dst: n.Dst, IntVal: n.Int})
			}
		case *FUnary:
			out = append(out, asmir.Instr{Op: asmir.Not, X: n.X, Dst: n.Dst})
		case *FCall:
			out = append(out, asmir.Instr{Op: asmir.CallLib, LibFunc: n.Func, Args: n.Args, Dst: n.Dst})
		case *FPush:
			out = append(out, asmir.Instr{Op: asmir.Push, Src: n.Src})
		case *FPopParam:
			out = append(out, asmir.Instr{Op: asmir.PopParams, Dst: n.Dst})
		case *FPopRAX:
			out = append(out, asmir.Instr{Op: asmir.PopRAX, Dst: n.Dst})
		case *FCallUser:
			out = append(out, asmir.Instr{Op: asmir.Call, Target: entry[n.Func]})
		case *FReturn:
			out = append(out, asmir.Instr{Op: asmir.Return})
		case *FBreak:
			out = append(out, asmir.Instr{Op: asmir.Jmp, Target: brk})
		case *FContinue:
			out = append(out, asmir.Instr{Op: asmir.Jmp, Target: cont})

		case *FIf:
			condLine := line()
			thenSize := instrCount(n.Then)
			if n.Else == nil {
				closeLine := condLine + 1 + thenSize
				out = append(out, asmir.Instr{Op: asmir.Jf, Cond: n.Cond, Target: closeLine})
				out = append(out, emit(n.Then, condLine+1, brk, cont, entry)...)
				out = append(out, asmir.Instr{Op: asmir.Nop})
			} else {
				elseSize := instrCount(n.Else)
				elseNopLine := condLine + 1 + thenSize + 1
				elseBodyLine := elseNopLine + 1
				endNopLine := elseBodyLine + elseSize
				out = append(out, asmir.Instr{Op: asmir.Jf, Cond: n.Cond, Target: elseNopLine})
				out = append(out, emit(n.Then, condLine+1, brk, cont, entry)...)
				out = append(out, asmir.Instr{Op: asmir.Jmp, Target: endNopLine})
				out = append(out, asmir.Instr{Op: asmir.Nop})
				out = append(out, emit(n.Else, elseBodyLine, brk, cont, entry)...)
				out = append(out, asmir.Instr{Op: asmir.Nop})
			}

		case *FWhile:
			headerLine := line()
			bodySize := instrCount(n.Body)
			afterLine := headerLine + 1 + bodySize + 1
			out = append(out, asmir.Instr{Op: asmir.Nop})
			out = append(out, emit(n.Body, headerLine+1, afterLine, headerLine, entry)...)
			out = append(out, asmir.Instr{Op: asmir.Jmp, Target: headerLine})
		}
	}
	return out
}
