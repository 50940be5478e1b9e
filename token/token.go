// Package token defines the namespace-tag vocabulary shared by every stage
// of the tmc pipeline (lexer, resolve, lower, asmir, codegen). The source
// language has no typed AST; instead, as in the original tool this project
// is modeled on, identifiers are tagged in place with a string prefix once
// their namespace is known, and every later pass recognizes the tag rather
// than re-deriving it.
package token

import (
	"strconv"
	"strings"
)

// Namespace tag prefixes, applied directly to an identifier token.
const (
	VarUser  = "!VAR_USER_"
	VarTemp  = "!VAR_TEMP_"
	VarLib   = "!VAR_LIB_"
	FuncUser = "!FUNC_USER_"
	FuncLib  = "!FUNC_LIB_"
	TapeTape = "!TAPE_tape"
	TapeRAX  = "!TAPE_RAX"
	TapeParams = "!TAPE_PARAMS"
)

// MemVar is the single predefined unbounded integer array.
const MemVar = VarLib + "MEM"

// LibFuncs is the fixed vocabulary of codegen-primitive calls: functions
// with no source-language body anywhere, realized directly as a dedicated
// transition subgraph by package codegen (spec.md §4.H). Everything else
// the bundled runtime exposes (add, sub, mul, ..., memset, memget) is an
// ordinary declared function in the prepended library source and gets
// tagged FuncUser like any other call, bottoming out at these primitives
// only once lowered.
var LibFuncs = map[string]bool{
	"nextInt": true, "printInt": true, "printSpace": true,
	"isZero": true, "isPos": true, "isNeg": true,
	"basic_add": true, "basic_sub": true, "basic_xor": true,
	"basic_eq": true, "basic_lt": true, "basic_neg": true,
	"basic_mul2": true, "basic_div2": true, "isEven": true, "isOdd": true,
	"getMemBitIndex": true, "setMemBitIndex": true,
	"moveMemHeadRight": true, "moveMemHeadLeft": true,
	"setMemBitZero": true, "setMemBitOne": true, "setMemBitBlank": true,
	"memBitIsZero": true, "memBitIsOne": true, "memBitIsBlank": true,
}

// IsTagged reports whether word already carries one of the namespace
// prefixes above.
func IsTagged(word string) bool {
	for _, p := range []string{VarUser, VarTemp, VarLib, FuncUser, FuncLib} {
		if strings.HasPrefix(word, p) {
			return true
		}
	}
	return word == TapeRAX || word == TapeParams || strings.HasPrefix(word, TapeTape)
}

// StripTag removes a single recognized namespace prefix from word, if any.
func StripTag(word string) string {
	for _, p := range []string{VarUser, VarTemp, VarLib, FuncUser, FuncLib} {
		if strings.HasPrefix(word, p) {
			return strings.TrimPrefix(word, p)
		}
	}
	return word
}

// IsUserVar, IsTemp, IsUserFunc, IsLibFunc classify a tagged token.
func IsUserVar(word string) bool  { return strings.HasPrefix(word, VarUser) }
func IsTemp(word string) bool     { return strings.HasPrefix(word, VarTemp) }
func IsUserFunc(word string) bool { return strings.HasPrefix(word, FuncUser) }
func IsLibFunc(word string) bool  { return strings.HasPrefix(word, FuncLib) }
func IsTape(word string) bool     { return strings.HasPrefix(word, TapeTape) }
func IsMem(word string) bool      { return word == MemVar }

// TempName renders the n'th compiler-synthesized temporary.
func TempName(n int) string {
	return VarTemp + "temp" + strconv.Itoa(n)
}

// TapeName renders the tape-index tag for per-function tape I.
func TapeName(i int) string {
	return TapeTape + strconv.Itoa(i)
}

// VarTapeIndex parses a "!TAPE_tapeN" tag back into N. It panics on a
// malformed tag, since every caller only ever passes a name that originated
// from TapeName.
func VarTapeIndex(name string) int {
	n, err := strconv.Atoi(strings.TrimPrefix(name, TapeTape))
	if err != nil {
		panic("token: malformed tape tag " + name)
	}
	return n
}
