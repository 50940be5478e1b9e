package codegen

// This file builds the variable-length sign-magnitude arithmetic subgraphs
// that back the basic_* library primitives (spec.md §3, §4.H), grounded
// transition-by-transition on TMCompiler/old/compilation/unit1.cpp's
// handleIsZero/handleIsPos/handleIsNeg/handlePadding/handleBasicAdd/
// handleBasicSub/handleBasicXor/handleBasicEq/handleBasicLt/handleBasicNeg/
// handleBasicMul2/handleBasicDiv2/handleIsEven/handleIsOdd. Every entry
// point assumes its operand tapes' heads rest on the sign bit of their
// value and leaves them there at its exit state(s). None of these ever see
// a bare "0" operand: compiler/library.go's isZero/isPos/isNeg checks, mirroring
// lib.cpp's add/sub/mul/div/mod/neg/lt/eq wrappers, filter that case before
// a basic_* primitive is ever reached.

// isZeroValue reports whether tape's value is the literal "0" cell.
func (b *builder) isZeroValue(from, tape int) (zeroExit, nonZeroExit int) {
	zeroExit = b.state()
	nonZeroExit = b.state()
	b.trans(from, nonZeroExit, map[int]op{tape: {read: "[1_]", write: wildcard, shift: stay}})

	afterSign := b.state()
	b.trans(from, afterSign, map[int]op{tape: {read: "0", write: wildcard, shift: right}})
	b.trans(afterSign, zeroExit, map[int]op{tape: {read: "_", write: wildcard, shift: left}})
	b.trans(afterSign, nonZeroExit, map[int]op{tape: {read: "[01]", write: wildcard, shift: left}})
	return zeroExit, nonZeroExit
}

// isPosValue reports whether tape's value is strictly positive.
func (b *builder) isPosValue(from, tape int) (posExit, nonPosExit int) {
	nonPosExit = b.state()
	posExit = b.state()
	b.trans(from, nonPosExit, map[int]op{tape: {read: "[1_]", write: wildcard, shift: stay}})

	afterSign := b.state()
	b.trans(from, afterSign, map[int]op{tape: {read: "0", write: wildcard, shift: right}})
	b.trans(afterSign, nonPosExit, map[int]op{tape: {read: "_", write: wildcard, shift: left}})
	b.trans(afterSign, posExit, map[int]op{tape: {read: "[01]", write: wildcard, shift: left}})
	return posExit, nonPosExit
}

// isNegValue inspects tape's sign bit without moving the head.
func (b *builder) isNegValue(from, tape int) (negExit, nonNegExit int) {
	negExit = b.state()
	nonNegExit = b.state()
	b.trans(from, negExit, map[int]op{tape: {read: "1", write: wildcard, shift: stay}})
	b.trans(from, nonNegExit, map[int]op{tape: {read: "[0_]", write: wildcard, shift: stay}})
	return negExit, nonNegExit
}

// isEvenValue/isOddValue walk to tape's least significant bit, report it,
// and rewind the head back to the sign bit.
func (b *builder) isEvenValue(from, tape int) (evenExit, oddExit int) {
	atLSB := b.state()
	b.trans(from, atLSB, map[int]op{tape: {read: wildcard, write: wildcard, shift: right}})
	evenExit = b.state()
	oddExit = b.state()
	b.trans(atLSB, evenExit, map[int]op{tape: {read: "[0_]", write: wildcard, shift: left}})
	b.trans(atLSB, oddExit, map[int]op{tape: {read: "1", write: wildcard, shift: left}})
	return evenExit, oddExit
}

func (b *builder) isOddValue(from, tape int) (oddExit, evenExit int) {
	evenExit, oddExit = b.isEvenValue(from, tape)
	return oddExit, evenExit
}

// alignValues walks a and b's heads right in lockstep while both read a bit.
// Whichever tape runs out of bits first has its tail explicitly overwritten
// with blanks until the other catches up, so that a subsequent lockstep scan
// treats its exhausted bits as genuinely blank rather than stale residue
// from a longer value a scratch tape once held (handlePadding). If rewind is
// true, both heads are then walked back left to their starting sign bit
// before reaching `to`; if false, both are left parked one cell left of the
// (now-aligned) delimiter, ready for a caller doing its own right-to-left
// walk from there (handleBasicLt's use).
func (b *builder) alignValues(from, to, a, bTape int, rewind bool) {
	b.trans(from, from, map[int]op{
		a:     {read: "[01]", write: wildcard, shift: right},
		bTape: {read: "[01]", write: wildcard, shift: right},
	})

	qBlankA := b.state()
	qBlankB := b.state()
	qMoveLeft := to
	if rewind {
		qMoveLeft = b.state()
	}

	b.trans(from, qBlankA, map[int]op{
		a:     {read: "_", write: wildcard, shift: stay},
		bTape: {read: "[01]", write: wildcard, shift: stay},
	})
	b.trans(from, qBlankB, map[int]op{
		a:     {read: "[01]", write: wildcard, shift: stay},
		bTape: {read: "_", write: wildcard, shift: stay},
	})
	b.trans(from, qMoveLeft, map[int]op{
		a:     {read: "_", write: wildcard, shift: left},
		bTape: {read: "_", write: wildcard, shift: left},
	})

	b.trans(qBlankA, qBlankA, map[int]op{
		a:     {read: wildcard, write: "_", shift: right},
		bTape: {read: "[01]", write: wildcard, shift: right},
	})
	b.trans(qBlankA, qMoveLeft, map[int]op{
		a:     {read: wildcard, write: "_", shift: left},
		bTape: {read: "_", write: wildcard, shift: left},
	})

	b.trans(qBlankB, qBlankB, map[int]op{
		a:     {read: "[01]", write: wildcard, shift: right},
		bTape: {read: wildcard, write: "_", shift: right},
	})
	b.trans(qBlankB, qMoveLeft, map[int]op{
		a:     {read: "_", write: wildcard, shift: left},
		bTape: {read: wildcard, write: "_", shift: left},
	})

	if !rewind {
		return
	}

	b.trans(qMoveLeft, qMoveLeft, map[int]op{
		a:     {read: "[01_]", write: wildcard, shift: left},
		bTape: {read: "[01]", write: wildcard, shift: left},
	})
	b.trans(qMoveLeft, qMoveLeft, map[int]op{
		a:     {read: "[01]", write: wildcard, shift: left},
		bTape: {read: "[01_]", write: wildcard, shift: left},
	})
	b.trans(qMoveLeft, to, map[int]op{
		a:     {read: "_", write: wildcard, shift: right},
		bTape: {read: "_", write: wildcard, shift: right},
	})
}

// addValue computes a + b into dst (sign+magnitude, non-negative a, b
// verified by isZeroValue/isPosValue at the call site per lib.cpp's add()
// wrapper), a textbook bit-serial ripple-carry add with no trailing-zero
// trim (the original's comment: "No chance of having leading 0's in
// result").
func (b *builder) addValue(from, to, a, bTape, dst int) {
	q4 := b.state()
	b.alignValues(from, q4, a, bTape, true)

	carryOff := q4
	carryOn := b.state()

	for _, c := range []struct{ av, bv, out string }{
		{"[0_]", "0", "0"}, {"0", "[0_]", "0"},
		{"[0_]", "1", "1"}, {"1", "[0_]", "1"},
	} {
		b.trans(carryOff, carryOff, map[int]op{
			a:     {read: c.av, write: wildcard, shift: right},
			bTape: {read: c.bv, write: wildcard, shift: right},
			dst:   {read: wildcard, write: c.out, shift: right},
		})
	}
	b.trans(carryOff, carryOn, map[int]op{
		a:     {read: "1", write: wildcard, shift: right},
		bTape: {read: "1", write: wildcard, shift: right},
		dst:   {read: wildcard, write: "0", shift: right},
	})

	for _, c := range []struct{ av, bv, out string }{
		{"[0_]", "0", "1"}, {"0", "[0_]", "1"},
	} {
		b.trans(carryOn, carryOff, map[int]op{
			a:     {read: c.av, write: wildcard, shift: right},
			bTape: {read: c.bv, write: wildcard, shift: right},
			dst:   {read: wildcard, write: c.out, shift: right},
		})
	}
	for _, c := range []struct{ av, bv, out string }{
		{"[0_]", "1", "0"}, {"1", "[0_]", "0"},
	} {
		b.trans(carryOn, carryOn, map[int]op{
			a:     {read: c.av, write: wildcard, shift: right},
			bTape: {read: c.bv, write: wildcard, shift: right},
			dst:   {read: wildcard, write: c.out, shift: right},
		})
	}
	b.trans(carryOn, carryOn, map[int]op{
		a:     {read: "1", write: wildcard, shift: right},
		bTape: {read: "1", write: wildcard, shift: right},
		dst:   {read: wildcard, write: "1", shift: right},
	})

	q5 := b.state()
	b.trans(carryOff, q5, map[int]op{
		a:     {read: "_", write: wildcard, shift: left},
		bTape: {read: "_", write: wildcard, shift: left},
		dst:   {read: wildcard, write: "_", shift: left},
	})

	q35 := b.state()
	q36 := b.state()
	b.trans(carryOn, q35, map[int]op{
		a:     {read: "_", write: wildcard, shift: left},
		bTape: {read: "_", write: wildcard, shift: left},
		dst:   {read: wildcard, write: "1", shift: right},
	})
	b.trans(q35, q36, map[int]op{dst: {read: wildcard, write: "_", shift: left}})
	b.trans(q36, q5, map[int]op{dst: {read: wildcard, write: wildcard, shift: left}})

	b.trans(q5, q5, map[int]op{
		a:     {read: "[01]", write: wildcard, shift: left},
		bTape: {read: "[01_]", write: wildcard, shift: left},
		dst:   {read: wildcard, write: wildcard, shift: left},
	})
	b.trans(q5, q5, map[int]op{
		a:     {read: "[01_]", write: wildcard, shift: left},
		bTape: {read: "[01]", write: wildcard, shift: left},
		dst:   {read: wildcard, write: wildcard, shift: left},
	})
	b.trans(q5, to, map[int]op{
		a:     {read: "_", write: wildcard, shift: right},
		bTape: {read: "_", write: wildcard, shift: right},
		dst:   {read: wildcard, write: wildcard, shift: right},
	})
}

// trimTrailingZeros walks dst (which already holds a raw bit-serial result
// ending at the blank just past its last-computed bit, with a and bTape
// parked on the blank just past their own aligned values) back toward its
// sign bit one bit at a time, erasing high-order zero bits down to the first
// 1 bit found; a and bTape shift in lockstep with dst throughout even though
// their content goes unused, since they sit at the same offset from their
// own sign bit as dst does at entry. If the whole result trims away (an all-
// zero value, meaning the true result is "0"), the final blank left behind
// is replaced with a literal "0". Used by subValue and xorValue
// (handleBasicSub / handleBasicXor's tail, after either's own compute loop).
func (b *builder) trimTrailingZeros(from, to, a, bTape, dst int) {
	q6 := b.state()
	b.trans(from, q6, map[int]op{
		a:     {read: "_", write: wildcard, shift: left},
		bTape: {read: "_", write: wildcard, shift: left},
		dst:   {read: wildcard, write: "_", shift: left},
	})

	encountered1 := b.state()
	penultimate := b.state()

	b.trans(q6, q6, map[int]op{
		a:     {read: wildcard, write: wildcard, shift: left},
		bTape: {read: wildcard, write: wildcard, shift: left},
		dst:   {read: "0", write: "_", shift: left},
	})
	b.trans(q6, encountered1, map[int]op{
		a:     {read: wildcard, write: wildcard, shift: left},
		bTape: {read: wildcard, write: wildcard, shift: left},
		dst:   {read: "1", write: wildcard, shift: left},
	})
	b.trans(encountered1, encountered1, map[int]op{
		a:     {read: wildcard, write: wildcard, shift: left},
		bTape: {read: wildcard, write: wildcard, shift: left},
		dst:   {read: "[01]", write: wildcard, shift: left},
	})

	b.trans(q6, penultimate, map[int]op{
		a:     {read: wildcard, write: wildcard, shift: right},
		bTape: {read: wildcard, write: wildcard, shift: right},
		dst:   {read: "_", write: wildcard, shift: right},
	})
	b.trans(encountered1, penultimate, map[int]op{
		a:     {read: wildcard, write: wildcard, shift: right},
		bTape: {read: wildcard, write: wildcard, shift: right},
		dst:   {read: "_", write: wildcard, shift: right},
	})

	b.trans(penultimate, to, map[int]op{dst: {read: "_", write: "0", shift: stay}})
	b.trans(penultimate, to, map[int]op{dst: {read: "[01]", write: wildcard, shift: stay}})
}

// subValue computes a - b into dst via bit-serial borrow propagation,
// trimming high-order zero bits from the result (handleBasicSub).
func (b *builder) subValue(from, to, a, bTape, dst int) {
	q4 := b.state()
	b.alignValues(from, q4, a, bTape, true)

	borrowOff := q4
	borrowOn := b.state()

	for _, c := range []struct{ av, bv, out string }{
		{"[0_]", "0", "0"}, {"0", "[0_]", "0"},
	} {
		b.trans(borrowOff, borrowOff, map[int]op{
			a:     {read: c.av, write: wildcard, shift: right},
			bTape: {read: c.bv, write: wildcard, shift: right},
			dst:   {read: wildcard, write: c.out, shift: right},
		})
	}
	b.trans(borrowOff, borrowOn, map[int]op{
		a:     {read: "[0_]", write: wildcard, shift: right},
		bTape: {read: "1", write: wildcard, shift: right},
		dst:   {read: wildcard, write: "1", shift: right},
	})
	b.trans(borrowOff, borrowOff, map[int]op{
		a:     {read: "1", write: wildcard, shift: right},
		bTape: {read: "[0_]", write: wildcard, shift: right},
		dst:   {read: wildcard, write: "1", shift: right},
	})
	b.trans(borrowOff, borrowOff, map[int]op{
		a:     {read: "1", write: wildcard, shift: right},
		bTape: {read: "1", write: wildcard, shift: right},
		dst:   {read: wildcard, write: "0", shift: right},
	})

	for _, c := range []struct{ av, bv, out string }{
		{"[0_]", "0", "1"}, {"0", "[0_]", "1"},
	} {
		b.trans(borrowOn, borrowOn, map[int]op{
			a:     {read: c.av, write: wildcard, shift: right},
			bTape: {read: c.bv, write: wildcard, shift: right},
			dst:   {read: wildcard, write: c.out, shift: right},
		})
	}
	b.trans(borrowOn, borrowOn, map[int]op{
		a:     {read: "[0_]", write: wildcard, shift: right},
		bTape: {read: "1", write: wildcard, shift: right},
		dst:   {read: wildcard, write: "0", shift: right},
	})
	b.trans(borrowOn, borrowOff, map[int]op{
		a:     {read: "1", write: wildcard, shift: right},
		bTape: {read: "[0_]", write: wildcard, shift: right},
		dst:   {read: wildcard, write: "0", shift: right},
	})
	b.trans(borrowOn, borrowOn, map[int]op{
		a:     {read: "1", write: wildcard, shift: right},
		bTape: {read: "1", write: wildcard, shift: right},
		dst:   {read: wildcard, write: "1", shift: right},
	})

	afterCompute := b.state()
	b.trans(borrowOff, afterCompute, map[int]op{})
	b.trans(borrowOn, afterCompute, map[int]op{})
	b.trimTrailingZeros(afterCompute, to, a, bTape, dst)
}

// xorValue computes a ^ b into dst bitwise, trimming high-order zero bits
// from the result (handleBasicXor — as with subtraction, the result can be
// all zero when a == b, which trimTrailingZeros's "0" fallback handles).
func (b *builder) xorValue(from, to, a, bTape, dst int) {
	q4 := b.state()
	b.alignValues(from, q4, a, bTape, true)

	for _, c := range []struct{ av, bv, out string }{
		{"[0_]", "0", "0"}, {"0", "[0_]", "0"},
		{"[0_]", "1", "1"}, {"1", "[0_]", "1"},
		{"1", "1", "0"},
	} {
		b.trans(q4, q4, map[int]op{
			a:     {read: c.av, write: wildcard, shift: right},
			bTape: {read: c.bv, write: wildcard, shift: right},
			dst:   {read: wildcard, write: c.out, shift: right},
		})
	}

	b.trimTrailingZeros(q4, to, a, bTape, dst)
}

// eqValue reports bitwise equality of a and b (already canonical — no
// leading magnitude zero bits — so a length mismatch alone implies
// inequality without needing alignValues first), writing its single-cell
// boolean result at dst's current head without moving it (handleBasicEq).
func (b *builder) eqValue(from, to, a, bTape, dst int) {
	loop := from
	for _, s := range []byte{'0', '1'} {
		b.trans(loop, loop, map[int]op{
			a:     {read: string(s), write: wildcard, shift: right},
			bTape: {read: string(s), write: wildcard, shift: right},
		})
	}

	moveBackLeft := b.state()
	b.trans(loop, moveBackLeft, map[int]op{
		a:     {read: "_", write: wildcard, shift: left},
		bTape: {read: "_", write: wildcard, shift: left},
		dst:   {read: wildcard, write: "1", shift: stay},
	})

	for _, m := range [][2]string{
		{"0", "1"}, {"1", "0"}, {"0", "_"}, {"_", "0"}, {"1", "_"}, {"_", "1"},
	} {
		b.trans(loop, moveBackLeft, map[int]op{
			a:     {read: m[0], write: wildcard, shift: left},
			bTape: {read: m[1], write: wildcard, shift: left},
			dst:   {read: wildcard, write: "0", shift: stay},
		})
	}

	b.trans(moveBackLeft, moveBackLeft, map[int]op{
		a:     {read: "[01]", write: wildcard, shift: left},
		bTape: {read: "[01]", write: wildcard, shift: left},
	})
	b.trans(moveBackLeft, to, map[int]op{
		a:     {read: "_", write: wildcard, shift: right},
		bTape: {read: "_", write: wildcard, shift: right},
	})
}

// ltValue reports whether a < b. It pads without rewinding (alignValues's
// heads end up parked on both operands' most significant magnitude bit),
// then compares from there back toward the sign bit — the right place to
// start, since storage is least-significant-bit-first, so walking right to
// left in storage walks most- to least-significant in value — writing its
// boolean at the first bit where they differ (handleBasicLt).
func (b *builder) ltValue(from, to, a, bTape, dst int) {
	q4 := b.state()
	b.alignValues(from, q4, a, bTape, false)

	for _, s := range [][2]string{{"[0_]", "0"}, {"0", "[0_]"}, {"1", "1"}} {
		b.trans(q4, q4, map[int]op{
			a:     {read: s[0], write: wildcard, shift: left},
			bTape: {read: s[1], write: wildcard, shift: left},
		})
	}

	moveBackLeft := b.state()
	penultimate := b.state()

	b.trans(q4, moveBackLeft, map[int]op{
		a:     {read: "[0_]", write: wildcard, shift: stay},
		bTape: {read: "1", write: wildcard, shift: stay},
		dst:   {read: wildcard, write: "1", shift: right},
	})
	b.trans(q4, moveBackLeft, map[int]op{
		a:     {read: "1", write: wildcard, shift: stay},
		bTape: {read: "[0_]", write: wildcard, shift: stay},
		dst:   {read: wildcard, write: "0", shift: right},
	})
	b.trans(q4, penultimate, map[int]op{
		a:     {read: "_", write: wildcard, shift: right},
		bTape: {read: "_", write: wildcard, shift: right},
		dst:   {read: wildcard, write: "0", shift: right},
	})

	b.trans(moveBackLeft, moveBackLeft, map[int]op{
		a:     {read: "[01_]", write: wildcard, shift: left},
		bTape: {read: "[01]", write: wildcard, shift: left},
	})
	b.trans(moveBackLeft, moveBackLeft, map[int]op{
		a:     {read: "[01]", write: wildcard, shift: left},
		bTape: {read: "[01_]", write: wildcard, shift: left},
	})
	b.trans(moveBackLeft, penultimate, map[int]op{
		a:     {read: "_", write: wildcard, shift: right},
		bTape: {read: "_", write: wildcard, shift: right},
	})

	b.trans(penultimate, to, map[int]op{dst: {read: wildcard, write: "_", shift: left}})
}

// negValue writes -a into dst. handleBasicNeg flips a's own sign bit in
// place and copies the result; flipping the caller's argument tape directly
// would corrupt it for any later use of the same source-language variable
// (library calls here don't route arguments through a stack frame the way
// the original VM's library wrapper code does), so this copies first and
// flips the copy's sign bit instead — same operation, reordered to not
// mutate a.
func (b *builder) negValue(from, to, a, dst int) {
	afterCopy := b.state()
	b.copyBetweenTapes(from, afterCopy, a, dst)
	b.trans(afterCopy, to, map[int]op{dst: {read: "0", write: "1", shift: stay}})
	b.trans(afterCopy, to, map[int]op{dst: {read: "1", write: "0", shift: stay}})
}

// mul2Value writes 2*a into dst: copy a's sign bit, insert a fresh 0 as the
// new least significant bit, then shift the rest of a's magnitude one
// position over (handleBasicMul2).
func (b *builder) mul2Value(from, to, a, dst int) {
	afterSign := b.state()
	b.trans(from, afterSign, map[int]op{
		a:   {read: "0", write: wildcard, shift: right},
		dst: {read: wildcard, write: "0", shift: right},
	})
	b.trans(from, afterSign, map[int]op{
		a:   {read: "1", write: wildcard, shift: right},
		dst: {read: wildcard, write: "1", shift: right},
	})

	q3 := b.state()
	b.trans(afterSign, q3, map[int]op{dst: {read: wildcard, write: "0", shift: right}})

	b.trans(q3, q3, map[int]op{
		a:   {read: "0", write: wildcard, shift: right},
		dst: {read: wildcard, write: "0", shift: right},
	})
	b.trans(q3, q3, map[int]op{
		a:   {read: "1", write: wildcard, shift: right},
		dst: {read: wildcard, write: "1", shift: right},
	})

	q4 := b.state()
	b.trans(q3, q4, map[int]op{
		a:   {read: "_", write: wildcard, shift: stay},
		dst: {read: wildcard, write: "_", shift: left},
	})

	b.trans(q4, q4, map[int]op{
		a:   {read: wildcard, write: wildcard, shift: left},
		dst: {read: "[01]", write: wildcard, shift: left},
	})
	b.trans(q4, to, map[int]op{
		a:   {read: wildcard, write: wildcard, shift: right},
		dst: {read: "_", write: wildcard, shift: right},
	})
}

// div2Value writes floor(a/2) into dst: copy a's sign bit, discard a's
// least significant bit, then shift the rest of a's magnitude back one
// position (handleBasicDiv2).
func (b *builder) div2Value(from, to, a, dst int) {
	afterSign := b.state()
	b.trans(from, afterSign, map[int]op{
		a:   {read: "0", write: wildcard, shift: right},
		dst: {read: wildcard, write: "0", shift: right},
	})
	b.trans(from, afterSign, map[int]op{
		a:   {read: "1", write: wildcard, shift: right},
		dst: {read: wildcard, write: "1", shift: right},
	})

	q3 := b.state()
	b.trans(afterSign, q3, map[int]op{a: {read: wildcard, write: wildcard, shift: right}})

	b.trans(q3, q3, map[int]op{
		a:   {read: "0", write: wildcard, shift: right},
		dst: {read: wildcard, write: "0", shift: right},
	})
	b.trans(q3, q3, map[int]op{
		a:   {read: "1", write: wildcard, shift: right},
		dst: {read: wildcard, write: "1", shift: right},
	})

	q4 := b.state()
	b.trans(q3, q4, map[int]op{
		a:   {read: "_", write: wildcard, shift: left},
		dst: {read: wildcard, write: "_", shift: stay},
	})

	b.trans(q4, q4, map[int]op{
		a:   {read: "[01]", write: wildcard, shift: left},
		dst: {read: wildcard, write: wildcard, shift: left},
	})
	b.trans(q4, to, map[int]op{
		a:   {read: "_", write: wildcard, shift: right},
		dst: {read: wildcard, write: wildcard, shift: right},
	})
}
