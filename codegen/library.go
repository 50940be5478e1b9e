package codegen

// This file wires the ~20 fixed library primitives (spec.md §4.H) onto the
// variable-length subgraphs in arith.go, plus the MEM-bit and I/O
// primitives. Each emitter takes the states to splice between (from/to),
// resolved argument/destination tape indices, and returns once its result
// has been written with every tape's head back at rest.

const boolTrue = "1"
const boolFalse = "0"

// emitLibraryCall builds the subgraph for one CallLib instruction and
// reports whether name was recognized.
func emitLibraryCall(b *builder, name string, args []int, dst int, from, to int) bool {
	switch name {
	case "isZero":
		zero, nonZero := b.isZeroValue(from, args[0])
		b.writeValueFixed(zero, to, dst, boolTrue)
		b.writeValueFixed(nonZero, to, dst, boolFalse)
	case "isPos":
		pos, nonPos := b.isPosValue(from, args[0])
		b.writeValueFixed(pos, to, dst, boolTrue)
		b.writeValueFixed(nonPos, to, dst, boolFalse)
	case "isNeg":
		neg, nonNeg := b.isNegValue(from, args[0])
		b.writeValueFixed(neg, to, dst, boolTrue)
		b.writeValueFixed(nonNeg, to, dst, boolFalse)

	case "basic_add":
		b.addValue(from, to, args[0], args[1], dst)
	case "basic_sub":
		b.subValue(from, to, args[0], args[1], dst)
	case "basic_xor":
		b.xorValue(from, to, args[0], args[1], dst)
	case "basic_neg":
		b.negValue(from, to, args[0], dst)

	case "basic_eq":
		b.eqValue(from, to, args[0], args[1], dst)
	case "basic_lt":
		b.ltValue(from, to, args[0], args[1], dst)

	case "basic_mul2":
		b.mul2Value(from, to, args[0], dst)
	case "basic_div2":
		b.div2Value(from, to, args[0], dst)
	case "isEven":
		even, odd := b.isEvenValue(from, args[0])
		b.writeValueFixed(even, to, dst, boolTrue)
		b.writeValueFixed(odd, to, dst, boolFalse)
	case "isOdd":
		odd, even := b.isOddValue(from, args[0])
		b.writeValueFixed(odd, to, dst, boolTrue)
		b.writeValueFixed(even, to, dst, boolFalse)

	case "getMemBitIndex":
		b.copyBetweenTapes(from, to, tapeBitIndex, dst)
	case "setMemBitIndex":
		b.copyBetweenTapes(from, to, args[0], tapeBitIndex)
	case "moveMemHeadRight":
		b.trans(from, to, map[int]op{tapeBits: {read: wildcard, write: wildcard, shift: right}})
	case "moveMemHeadLeft":
		b.trans(from, to, map[int]op{tapeBits: {read: wildcard, write: wildcard, shift: left}})
	case "setMemBitZero":
		b.trans(from, to, map[int]op{tapeBits: {read: wildcard, write: "0", shift: stay}})
	case "setMemBitOne":
		b.trans(from, to, map[int]op{tapeBits: {read: wildcard, write: "1", shift: stay}})
	case "setMemBitBlank":
		b.trans(from, to, map[int]op{tapeBits: {read: wildcard, write: "_", shift: stay}})
	case "memBitIsZero":
		hit := b.state()
		miss := b.state()
		b.trans(from, hit, map[int]op{tapeBits: {read: "0", write: wildcard, shift: stay}})
		b.trans(from, miss, map[int]op{tapeBits: {read: "[1_]", write: wildcard, shift: stay}})
		b.writeValueFixed(hit, to, dst, boolTrue)
		b.writeValueFixed(miss, to, dst, boolFalse)
	case "memBitIsOne":
		hit := b.state()
		miss := b.state()
		b.trans(from, hit, map[int]op{tapeBits: {read: "1", write: wildcard, shift: stay}})
		b.trans(from, miss, map[int]op{tapeBits: {read: "[0_]", write: wildcard, shift: stay}})
		b.writeValueFixed(hit, to, dst, boolTrue)
		b.writeValueFixed(miss, to, dst, boolFalse)
	case "memBitIsBlank":
		hit := b.state()
		miss := b.state()
		b.trans(from, hit, map[int]op{tapeBits: {read: "_", write: wildcard, shift: stay}})
		b.trans(from, miss, map[int]op{tapeBits: {read: "[01]", write: wildcard, shift: stay}})
		b.writeValueFixed(hit, to, dst, boolTrue)
		b.writeValueFixed(miss, to, dst, boolFalse)

	case "nextInt":
		b.copyAdvanceSrc(from, to, tapeInput, dst)
	case "printInt":
		b.copyAdvanceDst(from, to, args[0], tapeOutput)
	case "printSpace":
		b.trans(from, to, map[int]op{tapeOutput: {read: wildcard, write: wildcard, shift: right}})

	default:
		return false
	}
	return true
}
