package codegen

import (
	"tmc/asmir"
	"tmc/tm"
)

// Generate builds the multi-tape machine that realizes prog: one fixed tape
// roster (tapes.go) plus one tape per local variable slot, a shared control
// skeleton (skeleton.go), and one subgraph per assembly line (instr.go).
func Generate(prog *asmir.Program) (*tm.Machine, error) {
	layout := NewLayout(prog.NumTapes, prog.NumLines())
	b := newBuilder(layout)

	sk, lineEntry := buildSkeleton(b, layout)
	for i, ins := range prog.Instrs {
		if err := emitInstr(b, layout, sk, i, ins, lineEntry[i]); err != nil {
			return nil, err
		}
	}

	return tm.NewMachine(layout.TotalTapes(), sk.start, sk.end, b.transitions)
}
