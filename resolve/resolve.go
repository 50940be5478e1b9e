// Package resolve implements stage B: it distinguishes user function names,
// user variable names, and the fixed library vocabulary, and tags every
// occurrence of each with its namespace prefix (see package token).
package resolve

import (
	"errors"
	"fmt"

	"tmc/token"
)

// ErrUnknownIdentifier is returned for an identifier that is neither a
// declared name nor part of the library vocabulary, in a context that
// requires it to resolve to one (§7 "UnknownToken").
var ErrUnknownIdentifier = errors.New("unknown identifier")

var typeKeywords = map[string]bool{"void": true, "int": true, "bool": true}

var keywords = map[string]bool{
	"if": true, "else": true, "while": true, "for": true,
	"break": true, "continue": true, "return": true,
	"true": true, "false": true,
	"void": true, "int": true, "bool": true,
}

// Resolve scans tokens, captures the set of user function/variable names
// declared in the source, and returns a new token stream with every
// identifier prefixed by its namespace tag.
func Resolve(tokens []string) ([]string, error) {
	funcNames := map[string]bool{}
	varNames := map[string]bool{}

	for i := 0; i < len(tokens); i++ {
		if !typeKeywords[tokens[i]] {
			continue
		}
		if i+1 >= len(tokens) || !isIdentifier(tokens[i+1]) {
			continue
		}
		name := tokens[i+1]
		if i+2 < len(tokens) && tokens[i+2] == "(" {
			funcNames[name] = true
		} else {
			varNames[name] = true
		}
	}

	out := make([]string, len(tokens))
	copy(out, tokens)

	// Right-to-left, so inserting a multi-character prefix in place of a
	// token never invalidates the indices of tokens still to be visited.
	for i := len(out) - 1; i >= 0; i-- {
		w := out[i]
		if keywords[w] || token.IsTagged(w) {
			continue
		}
		switch {
		case w == "MEM":
			out[i] = token.MemVar
		case funcNames[w]:
			out[i] = token.FuncUser + w
		case varNames[w]:
			out[i] = token.VarUser + w
		case token.LibFuncs[w]:
			out[i] = token.FuncLib + w
		case isIdentifier(w):
			return nil, fmt.Errorf("%w: %q", ErrUnknownIdentifier, w)
		}
	}
	return out, nil
}

func isIdentifier(w string) bool {
	if w == "" {
		return false
	}
	for i, r := range w {
		if r == '_' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') {
			continue
		}
		if i > 0 && r >= '0' && r <= '9' {
			continue
		}
		return false
	}
	return true
}
