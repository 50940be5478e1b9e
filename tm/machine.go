package tm

import (
	"fmt"
)

// Machine is a deterministic multi-tape Turing machine: a fixed tape count,
// a current state, and a transition table grouped by from-state. Running it
// is the final stage of the pipeline (spec.md §3, §4.I): everything before
// this package only ever produces the Machine that this package executes.
type Machine struct {
	NumTapes int
	Initial  int
	Halt     int

	Current int
	Tapes   []*Tape

	byState map[int][]*Transition
}

// NewMachine builds a Machine over numTapes tapes with the given initial
// and halting state numbers, compiling every transition's read patterns and
// grouping them by from-state. Transitions within a group keep their
// original relative order, which is the machine's tie-break when more than
// one transition's read patterns could match the same tape contents: the
// first match in declaration order wins, same as the tool this package is
// grounded on.
func NewMachine(numTapes, initial, halt int, transitions []*Transition) (*Machine, error) {
	m := &Machine{
		NumTapes: numTapes,
		Initial:  initial,
		Halt:     halt,
		Current:  initial,
		Tapes:    make([]*Tape, numTapes),
		byState:  make(map[int][]*Transition),
	}
	for i := range m.Tapes {
		m.Tapes[i] = NewTape()
	}

	for _, tr := range transitions {
		if len(tr.ReadPatterns) != numTapes || len(tr.WritePatterns) != numTapes || len(tr.Shifts) != numTapes {
			return nil, fmt.Errorf("transition %d->%d: expected %d tapes, got %d read/%d write/%d shift",
				tr.From, tr.To, numTapes, len(tr.ReadPatterns), len(tr.WritePatterns), len(tr.Shifts))
		}
		if err := tr.compilePatterns(); err != nil {
			return nil, err
		}
		m.byState[tr.From] = append(m.byState[tr.From], tr)
	}

	return m, nil
}

// Halted reports whether the machine has reached its halting state. When no
// transition matches the current tape contents, Step moves the machine into
// Halt, so that case also reports true here.
func (m *Machine) Halted() bool {
	return m.Current == m.Halt
}

// findTransition returns the first transition out of the current state
// whose read patterns match the tapes' current symbols under the head, or
// nil if none do.
func (m *Machine) findTransition() *Transition {
	symbols := make([]byte, m.NumTapes)
	for i, t := range m.Tapes {
		symbols[i] = t.Read()
	}
	for _, tr := range m.byState[m.Current] {
		if tr.Matches(symbols) {
			return tr
		}
	}
	return nil
}

// Step advances the machine by exactly one transition and reports whether
// one was found and applied. A false return means the machine halted
// silently: no transition out of the current state matched the tapes'
// contents (spec.md §7 — this is normal termination, not an error).
func (m *Machine) Step() bool {
	if m.Halted() {
		return false
	}
	tr := m.findTransition()
	if tr == nil {
		m.Current = m.Halt
		return false
	}
	for i, t := range m.Tapes {
		read := t.Read()
		t.Write(writeSymbol(tr.WritePatterns[i], read))
		t.Shift(tr.Shifts[i])
	}
	m.Current = tr.To
	return true
}

// Run steps the machine until it halts (reaching Halt, or no transition
// matching) or maxSteps transitions have fired, whichever comes first. It
// returns the number of transitions actually applied. maxSteps <= 0 means
// unbounded.
func (m *Machine) Run(maxSteps int) int {
	n := 0
	for maxSteps <= 0 || n < maxSteps {
		if m.Halted() {
			break
		}
		if !m.Step() {
			break
		}
		n++
	}
	return n
}
