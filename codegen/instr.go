package codegen

import (
	"fmt"
	"strings"

	"tmc/asmir"
	"tmc/token"
)

// ErrBadAssemblyForm is returned when a linked asmir.Program contains a form
// codegen cannot realize: an Op value outside asmir's defined set, or a
// CallLib whose LibFunc names something other than one of the fixed
// primitives emitLibraryCall recognizes. A well-formed Program from package
// lower never produces either; this guards against a hand-built or corrupted
// one rather than ordinary user-source errors (those are caught earlier, by
// the lexer/resolve/lower stages).
var ErrBadAssemblyForm = fmt.Errorf("codegen: malformed assembly IR")

// emitInstr builds the subgraph for line i, from its dispatch entry state
// (skeleton.go's buildSidewaysDispatch, reached with ip already rewound to
// its leftmost bit by copyIPToSideways) through to sk.before (ordinary
// lines, which just fall through to the next sequential line) or
// sk.sideways (lines that have written a new value into the ip tape
// themselves: Jmp, a taken Jf, Call, Return).
func emitInstr(b *builder, l Layout, sk skeleton, i int, ins asmir.Instr, entry int) error {
	bodyStart := entry

	switch ins.Op {
	case asmir.Nop:
		b.trans(bodyStart, sk.before, map[int]op{})

	case asmir.Jmp:
		b.writeValueFixed(bodyStart, sk.sideways, tapeIP, encodeTwosComplement(ins.Target-1, l.IPWidth))

	case asmir.Jf:
		// jf jumps when Cond is false (jumps.go's emit uses it to skip a
		// then-block or exit a loop), so the zero exit is the taken branch.
		cond := l.Tape(ins.Cond)
		falseState, trueState := b.isZeroValue(bodyStart, cond)
		b.trans(trueState, sk.before, map[int]op{})
		b.writeValueFixed(falseState, sk.sideways, tapeIP, encodeTwosComplement(ins.Target-1, l.IPWidth))

	case asmir.Call:
		cur := bodyStart
		for v := 0; v < l.NumVars; v++ {
			next := b.state()
			b.pushEmptyFrame(cur, next, l.Tape(token.TapeName(v)))
			cur = next
		}
		afterFrame := b.state()
		b.pushEmptyFrame(cur, afterFrame, tapeIPStack)
		afterRetAddr := b.state()
		b.writeValueFixed(afterFrame, afterRetAddr, tapeIPStack, encodeTwosComplement(i, l.IPWidth))
		b.writeValueFixed(afterRetAddr, sk.sideways, tapeIP, encodeTwosComplement(ins.Target-1, l.IPWidth))

	case asmir.Return:
		cur := bodyStart
		for v := 0; v < l.NumVars; v++ {
			next := b.state()
			b.popOffTop(cur, next, l.Tape(token.TapeName(v)))
			cur = next
		}
		afterCopy := b.state()
		b.copyFixedWidth(cur, afterCopy, tapeIPStack, tapeIP, l.IPWidth)
		b.popOffTop(afterCopy, sk.sideways, tapeIPStack)

	case asmir.Push:
		src := l.Tape(ins.Src)
		afterFrame := b.state()
		b.pushEmptyFrame(bodyStart, afterFrame, tapeParamStack)
		b.copyBetweenTapes(afterFrame, sk.before, src, tapeParamStack)

	case asmir.PopParams:
		dst := l.Tape(ins.Dst)
		afterCopy := b.state()
		b.copyBetweenTapes(bodyStart, afterCopy, tapeParamStack, dst)
		b.popOffTop(afterCopy, sk.before, tapeParamStack)

	case asmir.PopRAX:
		dst := l.Tape(ins.Dst)
		b.copyBetweenTapes(bodyStart, sk.before, tapeRAX, dst)

	case asmir.CopyTape:
		src, dst := l.Tape(ins.Src), l.Tape(ins.Dst)
		b.copyBetweenTapes(bodyStart, sk.before, src, dst)

	case asmir.LitInt:
		dst := l.Tape(ins.Dst)
		b.writeValueFixed(bodyStart, sk.before, dst, EncodeInt(int(ins.IntVal)))

	case asmir.LitBool:
		dst := l.Tape(ins.Dst)
		bits := boolFalse
		if ins.BoolVal {
			bits = boolTrue
		}
		b.writeValueFixed(bodyStart, sk.before, dst, bits)

	case asmir.Not:
		x, dst := l.Tape(ins.X), l.Tape(ins.Dst)
		zero, nonZero := b.isZeroValue(bodyStart, x)
		b.writeValueFixed(zero, sk.before, dst, boolTrue)
		b.writeValueFixed(nonZero, sk.before, dst, boolFalse)

	case asmir.CallLib:
		return emitLibCall(b, l, sk, ins, bodyStart)

	default:
		return fmt.Errorf("%w: line %d: unhandled op %v", ErrBadAssemblyForm, i, ins.Op)
	}
	return nil
}

// emitLibCall wires a CallLib instruction's argument tapes into
// emitLibraryCall, de-aliasing them into dedicated scratch tapes first
// whenever an argument tape coincides with another argument or with the
// destination: a user-level call like `x = add(x, y)` or `y = add(x, x)`
// would otherwise have emitLibraryCall build transitions that read and
// write the same physical tape under two different roles at once, which a
// single tm.Transition's per-tape op can't express consistently.
func emitLibCall(b *builder, l Layout, sk skeleton, ins asmir.Instr, from int) error {
	name := strings.TrimPrefix(ins.LibFunc, token.FuncLib)

	hasDst := ins.Dst != ""
	var dstTape int
	if hasDst {
		dstTape = l.Tape(ins.Dst)
	}

	rawArgs := make([]int, len(ins.Args))
	for i, a := range ins.Args {
		rawArgs[i] = l.Tape(a)
	}

	scratchFor := [2]int{tapeLibArg0, tapeLibArg1}
	resolved := make([]int, len(rawArgs))
	cur := from
	for i, t := range rawArgs {
		aliased := hasDst && t == dstTape
		for j := 0; j < i && !aliased; j++ {
			aliased = rawArgs[j] == t
		}
		if !aliased {
			resolved[i] = t
			continue
		}
		slot := scratchFor[i]
		next := b.state()
		b.copyBetweenTapes(cur, next, t, slot)
		cur = next
		resolved[i] = slot
	}

	afterCall := b.state()
	if !emitLibraryCall(b, name, resolved, tapeLibResult, cur, afterCall) {
		return fmt.Errorf("%w: unrecognized library primitive %q", ErrBadAssemblyForm, name)
	}

	if hasDst {
		b.copyBetweenTapes(afterCall, sk.before, tapeLibResult, dstTape)
	} else {
		b.trans(afterCall, sk.before, map[int]op{})
	}
	return nil
}
