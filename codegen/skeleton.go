package codegen

// skeleton holds the control-skeleton state numbers every per-instruction
// emitter needs to route into: `before` re-enters the increment-and-dispatch
// cycle for the next sequential line, `sideways` re-enters it after an
// instruction has written its own target directly into ip (spec.md §4.H).
type skeleton struct {
	start, before, after, sideways, end int
}

// buildSkeleton wires start -> init -> before -> (increment ip, copy it into
// ipSideways) -> after, the after -> end halt check, and the per-line
// dispatch transitions leading from after into each line's qi state. It
// returns the skeleton plus the per-line entry states, indexed by line
// number.
func buildSkeleton(b *builder, l Layout) (skeleton, []int) {
	sk := skeleton{
		start:    b.state(),
		before:   b.state(),
		after:    b.state(),
		sideways: b.state(),
		end:      b.state(),
	}

	// Initialization: bitIndex = 0, ipStack holds the -2 return sentinel as
	// its only frame, ip = -1 so the first increment lands on line 0 (the
	// jmp-to-main the linker always prepends).
	afterBitIndex := b.state()
	b.trans(sk.start, afterBitIndex, map[int]op{
		tapeBitIndex: {read: wildcard, write: "0", shift: stay},
	})
	afterIPStackInit := b.state()
	b.writeBits(afterBitIndex, afterIPStackInit, tapeIPStack, encodeTwosComplement(-2, l.IPWidth))
	afterIPStackRewind := b.state()
	b.rewindToOrigin(afterIPStackInit, afterIPStackRewind, tapeIPStack, left, l.IPWidth)
	afterIPInit := b.state()
	b.writeBits(afterIPStackRewind, afterIPInit, tapeIP, encodeTwosComplement(-1, l.IPWidth))
	b.rewindToOrigin(afterIPInit, sk.before, tapeIP, left, l.IPWidth)

	// before -> (increment ip, mirror it into ipSideways) -> after
	incremented := incrementIP(b, sk.before, tapeIP, l.IPWidth)
	sidewaysCopied := copyIPToSideways(b, incremented, l)
	b.trans(sidewaysCopied, sk.after, map[int]op{})

	// sideways always re-enters the increment cycle at before.
	b.trans(sk.sideways, sk.before, map[int]op{})

	// after -> the line whose ipSideways bits match i's code, or -> end for
	// the sentinel -1 code (spec.md §4.H: "reads the P ipSideways bits equal
	// to the binary encoding of i").
	lineEntry := make([]int, l.NumLines)
	codes := map[string]int{encodeTwosComplement(-1, l.IPWidth): sk.end}
	for i := 0; i < l.NumLines; i++ {
		q := b.state()
		lineEntry[i] = q
		codes[encodeTwosComplement(i, l.IPWidth)] = q
	}
	buildSidewaysDispatch(b, sk.after, l, codes)

	return sk, lineEntry
}

// incrementIP performs a textbook two's-complement increment on tape,
// assuming the head starts at the leftmost of its fixed-width value: walk
// to the end, ripple a carry leftward through any trailing 1s, flip the
// first 0 to 1, then return the head to the leftmost bit. Returns the state
// reached once the head is back at rest.
func incrementIP(b *builder, from, tape, width int) int {
	atEnd := b.state()
	b.shiftUntilBlank(from, atEnd, tape, right)

	onLastBit := b.state()
	b.trans(atEnd, onLastBit, map[int]op{tape: {read: wildcard, write: wildcard, shift: left}})

	carry := onLastBit
	flipped := b.state()
	b.trans(carry, carry, map[int]op{tape: {read: "1", write: "0", shift: left}})
	b.trans(carry, flipped, map[int]op{tape: {read: "0", write: "1", shift: stay}})

	atStart := b.state()
	afterBlank := b.state()
	b.trans(carry, afterBlank, map[int]op{tape: {read: "_", write: wildcard, shift: stay}})
	b.shiftUntilBlank(flipped, afterBlank, tape, left)
	b.trans(afterBlank, atStart, map[int]op{tape: {read: wildcard, write: wildcard, shift: right}})
	return atStart
}

// copyIPToSideways copies ip's width bits, one per cell, onto the width
// one-cell ipSideways tapes (spec.md §3), then rewinds ip back to its
// leftmost bit. Each ipSideways[i] tape holds exactly the i'th bit of ip
// horizontally, so buildSidewaysDispatch can match every bit of a line's
// code in one multi-tape transition instead of re-reading ip bit by bit.
func copyIPToSideways(b *builder, from int, l Layout) int {
	cur := from
	for i := 0; i < l.IPWidth; i++ {
		next := b.state()
		b.trans(cur, next, map[int]op{
			tapeIP:          {read: "0", write: wildcard, shift: right},
			l.IPSideways(i): {read: wildcard, write: "0", shift: stay},
		})
		b.trans(cur, next, map[int]op{
			tapeIP:          {read: "1", write: wildcard, shift: right},
			l.IPSideways(i): {read: wildcard, write: "1", shift: stay},
		})
		cur = next
	}
	rewound := b.state()
	b.rewindToOrigin(cur, rewound, tapeIP, left, l.IPWidth)
	return rewound
}

// buildSidewaysDispatch emits one transition per code in codes: each reads
// every ipSideways[i] cell against code's i'th bit simultaneously and
// transitions straight to the recorded target, parking ip untouched (it was
// already rewound by copyIPToSideways) while ipSideways keeps holding the
// dispatched line's code for as long as that line's body needs it.
func buildSidewaysDispatch(b *builder, from int, l Layout, codes map[string]int) {
	for code, target := range codes {
		ops := make(map[int]op, l.IPWidth)
		for i := 0; i < l.IPWidth; i++ {
			ops[l.IPSideways(i)] = op{read: string(code[i]), write: wildcard, shift: stay}
		}
		b.trans(from, target, ops)
	}
}
