package tm

import (
	"fmt"
	"regexp"
)

// WriteLiteralDot is the escaped write-pattern meaning "write a literal '.'
// character" rather than "preserve whatever was read" (spec.md §4.I).
const WriteLiteralDot = `\.`

// WritePreserve is the unescaped "." write pattern: keep the symbol that was
// read on this tape.
const WritePreserve = "."

// Transition is one MTTM transition: from state reading a per-tape pattern,
// to state writing a per-tape pattern and shifting each tape's head.
// ReadPatterns are regular expressions over {0,1,_} (plus the `.` wildcard,
// which already means "match any single character" under regexp's own
// syntax, so no special-casing is needed at match time).
type Transition struct {
	From, To      int
	ReadPatterns  []string
	WritePatterns []string
	Shifts        []int

	compiled []*regexp.Regexp
}

// compilePatterns builds the per-tape regexes used by Matches. Called once
// by Machine's constructor.
func (tr *Transition) compilePatterns() error {
	tr.compiled = make([]*regexp.Regexp, len(tr.ReadPatterns))
	for i, p := range tr.ReadPatterns {
		anchored := "^(?:" + p + ")$"
		re, err := regexp.Compile(anchored)
		if err != nil {
			return fmt.Errorf("bad read pattern %q on tape %d: %w", p, i, err)
		}
		tr.compiled[i] = re
	}
	return nil
}

// Matches reports whether symbols (one byte per tape, in tape-roster order)
// matches this transition's read patterns.
func (tr *Transition) Matches(symbols []byte) bool {
	if len(symbols) != len(tr.compiled) {
		return false
	}
	for i, re := range tr.compiled {
		if !re.MatchString(string(symbols[i])) {
			return false
		}
	}
	return true
}

// WriteSymbol resolves tape i's write pattern against the symbol that was
// read there.
func writeSymbol(pattern string, read byte) byte {
	switch pattern {
	case WritePreserve:
		return read
	case WriteLiteralDot:
		return '.'
	case "":
		return read
	default:
		return pattern[0]
	}
}
