// Package asmir is the flat, three-address assembly intermediate
// representation described in spec.md §3: the output of stage G (the jump
// linker) and the sole input to the MTTM code generator (package codegen).
// Every Instr corresponds to exactly one assembly-IR line; line numbers are
// Instr's position in a Program's Instrs slice, which is how jmp/jf/call
// targets are expressed (spec.md §6 "Assembly IR format").
package asmir

import (
	"fmt"
	"strings"
)

// Op names one of the assembly-IR line forms from spec.md §3's table.
type Op int

const (
	Nop Op = iota
	Jmp
	Jf
	Call       // call N ; (user function, target is a line number)
	CallLib    // call !FUNC_LIB_<name> arg... ; (inlined by codegen)
	Return
	Push       // push Src !TAPE_PARAMS ;
	PopParams  // pop !TAPE_PARAMS Dst ;
	PopRAX     // pop !TAPE_RAX Dst ;
	CopyTape   // Dst Src = ;
	LitInt     // Dst <int> = ;
	LitBool    // Dst <bool> = ;
	Not        // X ! = Dst ;
)

// Instr is one assembly-IR line.
type Instr struct {
	Op Op

	// Dst/Src/X/Cond are tape-reference operands (e.g. "!TAPE_tape3",
	// "!TAPE_RAX"), populated according to Op.
	Dst, Src, X, Cond string

	Target int // jump/call destination line, for Jmp/Jf/Call

	LibFunc string   // CallLib's function tag, e.g. "!FUNC_LIB_basic_add"
	Args    []string // CallLib's argument tapes

	IntVal  int64 // LitInt
	BoolVal bool  // LitBool
}

// Program is a fully linked assembly-IR module: the flat instruction list
// plus the sizing facts the MTTM code generator needs (§3's P, V).
type Program struct {
	Instrs []Instr

	// NumTapes (V) is one more than the maximum !TAPE_tapeN index used by
	// any function; all functions share this single physical tape roster,
	// relying on call/return stack frames (spec.md §3, §4.H) to isolate
	// concurrently-recursive activations.
	NumTapes int
}

// NumLines is the assembly's line count (L in spec.md §3).
func (p *Program) NumLines() int { return len(p.Instrs) }

// String renders the program in the textual form spec.md §6 describes,
// mostly for debugging and golden-file tests.
func (p *Program) String() string {
	var b strings.Builder
	for i, ins := range p.Instrs {
		fmt.Fprintf(&b, "%d: %s\n", i, ins.String())
	}
	return b.String()
}

func (ins Instr) String() string {
	switch ins.Op {
	case Nop:
		return "nop ;"
	case Jmp:
		return fmt.Sprintf("jmp %d ;", ins.Target)
	case Jf:
		return fmt.Sprintf("jf %s %d ;", ins.Cond, ins.Target)
	case Call:
		return fmt.Sprintf("call %d ;", ins.Target)
	case CallLib:
		args := strings.Join(ins.Args, " ")
		dst := ""
		if ins.Dst != "" {
			dst = " = " + ins.Dst
		}
		return fmt.Sprintf("call %s %s ;%s", ins.LibFunc, args, dst)
	case Return:
		return "return ;"
	case Push:
		return fmt.Sprintf("push %s !TAPE_PARAMS ;", ins.Src)
	case PopParams:
		return fmt.Sprintf("pop !TAPE_PARAMS %s ;", ins.Dst)
	case PopRAX:
		return fmt.Sprintf("pop !TAPE_RAX %s ;", ins.Dst)
	case CopyTape:
		return fmt.Sprintf("%s %s = ;", ins.Dst, ins.Src)
	case LitInt:
		return fmt.Sprintf("%s %d = ;", ins.Dst, ins.IntVal)
	case LitBool:
		return fmt.Sprintf("%s %v = ;", ins.Dst, ins.BoolVal)
	case Not:
		return fmt.Sprintf("%s ! = %s ;", ins.X, ins.Dst)
	}
	return "?"
}
