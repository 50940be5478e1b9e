package lower

import "tmc/token"

// SimplifyExpressions performs stage D on an already stage-C-lowered
// Program: it converts every expression into the three-address Flat form,
// hoisting literals into fresh temporaries, lowering short-circuit &&/|| to
// explicit branches, splitting compound assignment, lowering MEM[i] reads
// and writes to memget/memset calls, and renaming hard operators to their
// library-function equivalents (spec.md 4.D).
func SimplifyExpressions(prog *Program) []*FlatFunc {
	var out []*FlatFunc
	for _, fn := range prog.Funcs {
		ff := &FlatFunc{Name: fn.Name, ReturnType: fn.ReturnType, Params: fn.Params}
		ff.Body = ff.lowerStmts(fn.Body)
		out = append(out, ff)
	}
	return out
}

func (ff *FlatFunc) newTemp() string {
	n := ff.nextTemp
	ff.nextTemp++
	return token.TempName(n)
}

func (ff *FlatFunc) lowerStmts(stmts []Stmt) []Flat {
	var out []Flat
	for _, s := range stmts {
		out = append(out, ff.lowerStmt(s)...)
	}
	return out
}

func (ff *FlatFunc) lowerStmt(s Stmt) []Flat {
	switch st := s.(type) {
	case *DeclStmt:
		_, stmts := ff.lowerAssignTo(&VarExpr{Name: st.Name}, st.Init)
		return stmts
	case *ExprStmt:
		if call, ok := st.X.(*CallExpr); ok {
			args, stmts := ff.lowerArgs(call.Args)
			return append(stmts, &FCall{Func: call.Func, Args: args})
		}
		_, stmts := ff.lowerValue(st.X)
		return stmts
	case *IfStmt:
		cond, cstmts := ff.lowerValue(st.Cond)
		then := ff.lowerStmts(st.Then)
		var els []Flat
		if st.Else != nil {
			els = ff.lowerStmts(st.Else)
		}
		return append(cstmts, &FIf{Cond: cond, Then: then, Else: els})
	case *WhileStmt:
		return []Flat{&FWhile{Body: ff.lowerStmts(st.Body)}}
	case *BreakStmt:
		return []Flat{&FBreak{}}
	case *ContinueStmt:
		return []Flat{&FContinue{}}
	case *ReturnStmt:
		if st.Value == nil {
			return []Flat{&FReturn{}}
		}
		v, stmts := ff.lowerValue(st.Value)
		return append(stmts, &FReturn{Value: v})
	}
	return nil
}

// hardOpFunc maps a hard (non-logical, non-assignment) operator to the
// bundled-library function name it desugars to, per spec.md 4.D "Hard-op
// replacement". These are ordinary user functions (token.FuncUser), defined
// in the library source prepended before stage A, not primitives.
var hardOpFunc = map[string]string{
	"+": "add", "-": "sub", "*": "mul", "/": "div", "%": "mod",
	"u-": "neg",
	"<":  "lt", "<=": "leq", ">": "gt", ">=": "geq",
	"==": "eq", "!=": "neq", "^": "eor",
}

// compoundBase maps a compound-assignment operator to the binary operator
// it desugars to; &= and |= lower to boolean AND/OR since plain bitwise &
// and | are not part of the source language (spec.md §6).
var compoundBase = map[string]string{
	"+=": "+", "-=": "-", "*=": "*", "/=": "/", "%=": "%",
	"&=": "&&", "|=": "||", "^=": "^",
}

// lowerValue lowers e for its value, returning the simple name (a user
// variable or temp) holding the result and the statements that compute it.
func (ff *FlatFunc) lowerValue(e Expr) (string, []Flat) {
	switch ex := e.(type) {
	case *LitExpr:
		t := ff.newTemp()
		if ex.Type == Bool {
			return t, []Flat{&FAssignLit{Dst: t, IsBool: true, Bool: ex.Bool}}
		}
		return t, []Flat{&FAssignLit{Dst: t, Int: ex.Int}}

	case *VarExpr:
		return ex.Name, nil

	case *MemExpr:
		idx, stmts := ff.lowerValue(ex.Index)
		t := ff.newTemp()
		stmts = append(stmts, &FCall{Func: token.FuncUser + "memget", Args: []string{idx}, Dst: t})
		return t, stmts

	case *UnaryExpr:
		x, stmts := ff.lowerValue(ex.X)
		t := ff.newTemp()
		if ex.Op == "!" {
			stmts = append(stmts, &FUnary{Op: "!", X: x, Dst: t})
			return t, stmts
		}
		// "u-": a hard op, arity 1, no materialization needed beyond the
		// temp lowerValue already guarantees for non-trivial subexpressions.
		stmts = append(stmts, &FCall{Func: token.FuncUser + hardOpFunc[ex.Op], Args: []string{x}, Dst: t})
		return t, stmts

	case *BinExpr:
		return ff.lowerBin(ex)

	case *CallExpr:
		args, stmts := ff.lowerArgs(ex.Args)
		t := ff.newTemp()
		stmts = append(stmts, &FCall{Func: ex.Func, Args: args, Dst: t})
		return t, stmts

	case *AssignExpr:
		return ff.lowerAssignTo(ex.Target, ex.valueExpr())
	}
	return "", nil
}

// valueExpr lets AssignExpr reuse lowerAssignTo uniformly: for a plain "="
// the RHS is Value itself; for a compound op it is the BinExpr Target op
// Value, letting lowerAssignTo's shared machinery (materialization, MEM
// lowering) apply identically to both.
func (a *AssignExpr) valueExpr() Expr {
	if a.Op == "=" {
		return a.Value
	}
	return &BinExpr{Op: compoundBase[a.Op], L: a.Target, R: a.Value}
}

// lowerAssignTo lowers `target = valueExpr` (valueExpr already has any
// compound-op desugaring folded in by the caller) and returns the name now
// holding the assigned value plus the statements to compute it, per
// spec.md 4.D's "Compound assignment lowering": `A += B` becomes
// `t = A + B; A = t;`.
func (ff *FlatFunc) lowerAssignTo(target, valueExpr Expr) (string, []Flat) {
	v, stmts := ff.lowerValue(valueExpr)
	switch t := target.(type) {
	case *VarExpr:
		stmts = append(stmts, &FAssignVar{Dst: t.Name, Src: v})
		return t.Name, stmts
	case *MemExpr:
		idx, istmts := ff.lowerValue(t.Index)
		stmts = append(stmts, istmts...)
		stmts = append(stmts, &FCall{Func: token.FuncUser + "memset", Args: []string{idx, v}})
		return v, stmts
	}
	return v, stmts
}

func (ff *FlatFunc) lowerBin(ex *BinExpr) (string, []Flat) {
	if ex.Op == "&&" || ex.Op == "||" {
		return ff.lowerShortCircuit(ex)
	}

	l, lstmts := ff.lowerValue(ex.L)
	r, rstmts := ff.lowerValue(ex.R)
	stmts := append(lstmts, rstmts...)

	// Argument materialization: a 2-arg library call never reads both
	// operands from the same tape, so any operand that isn't already a
	// fresh temp is copied into one first (spec.md 4.D).
	l, stmts = ff.materialize(l, stmts)
	r, stmts = ff.materialize(r, stmts)

	t := ff.newTemp()
	stmts = append(stmts, &FCall{Func: token.FuncUser + hardOpFunc[ex.Op], Args: []string{l, r}, Dst: t})
	return t, stmts
}

// lowerShortCircuit implements spec.md 4.D's short-circuit lowering:
//
//	a && b  ⇒  if (a) { <b's stmts>; r = b; } else { r = a; }
//	a || b  ⇒  if (a) { r = a; } else { <b's stmts>; r = b; }
func (ff *FlatFunc) lowerShortCircuit(ex *BinExpr) (string, []Flat) {
	l, lstmts := ff.lowerValue(ex.L)
	r := ff.newTemp()
	rName, rstmts := ff.lowerValue(ex.R)

	var then, els []Flat
	if ex.Op == "&&" {
		then = append(append([]Flat{}, rstmts...), &FAssignVar{Dst: r, Src: rName})
		els = []Flat{&FAssignVar{Dst: r, Src: l}}
	} else {
		then = []Flat{&FAssignVar{Dst: r, Src: l}}
		els = append(append([]Flat{}, rstmts...), &FAssignVar{Dst: r, Src: rName})
	}
	stmts := append(lstmts, &FIf{Cond: l, Then: then, Else: els})
	return r, stmts
}

// materialize ensures name is backed by a fresh temp (copying it there if
// it is a bare user variable), per the argument-materialization rule.
func (ff *FlatFunc) materialize(name string, stmts []Flat) (string, []Flat) {
	if token.IsTemp(name) {
		return name, stmts
	}
	t := ff.newTemp()
	stmts = append(stmts, &FAssignVar{Dst: t, Src: name})
	return t, stmts
}

func (ff *FlatFunc) lowerArgs(args []Expr) ([]string, []Flat) {
	var names []string
	var stmts []Flat
	for _, a := range args {
		n, s := ff.lowerValue(a)
		names = append(names, n)
		stmts = append(stmts, s...)
	}
	if len(names) >= 2 {
		for i, n := range names {
			names[i], stmts = ff.materialize(n, stmts)
		}
	}
	return names, stmts
}
