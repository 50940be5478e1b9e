package lower

// LowerControlFlow applies stage C: for loops become while loops, while(E)
// becomes while(true){ if(!E) break; ... }, and void functions gain a
// trailing return if they lack one. Else-if chains need no transformation
// here: the parser already nests an else-if's inner "if" as the sole
// statement of the outer Else block, which is exactly the explicit-brace
// expansion spec.md 4.C.2 describes.
func LowerControlFlow(prog *Program) {
	for _, fn := range prog.Funcs {
		fn.Body = flattenBlocks(lowerStmts(fn.Body))
		if fn.ReturnType == Void {
			fn.Body = ensureTrailingReturn(fn.Body)
		}
	}
}

func lowerStmts(stmts []Stmt) []Stmt {
	out := make([]Stmt, 0, len(stmts))
	for _, s := range stmts {
		out = append(out, lowerStmt(s))
	}
	return out
}

func lowerStmt(s Stmt) Stmt {
	switch st := s.(type) {
	case *ForStmt:
		return lowerFor(st)
	case *WhileStmt:
		return lowerWhile(st)
	case *IfStmt:
		st.Then = lowerStmts(st.Then)
		if st.Else != nil {
			st.Else = lowerStmts(st.Else)
		}
		return st
	default:
		return s
	}
}

// lowerFor rewrites for(Init;Cond;Post){Body} into Init; while(Cond){Body'; Post;}
// where every top-level continue in Body is replaced by Post;continue (inner
// loops are left untouched, per spec.md 4.C.1).
func lowerFor(f *ForStmt) Stmt {
	cond := f.Cond
	if cond == nil {
		cond = &LitExpr{Type: Bool, Bool: true}
	}
	body := lowerStmts(f.Body)
	if f.Post != nil {
		body = injectPostBeforeContinue(body, f.Post)
	}
	w := &WhileStmt{Cond: cond, Body: body}
	if f.Post != nil {
		w.Body = append(w.Body, f.Post)
	}
	lowered := lowerWhile(w)

	if f.Init == nil {
		return lowered
	}
	// A for's init and its rewritten while must run as a unit; the jump
	// linker (stage G) only ever flattens a single Stmt's worth of control
	// flow per slot, so we wrap both in a synthetic BlockStmt holding "init
	// then while", which callers splice inline.
	return &BlockStmt{Stmts: []Stmt{f.Init, lowered}}
}

// BlockStmt groups statements that must be spliced inline as a unit; it is
// introduced only by lowerFor and flattened away by flattenBlocks before any
// later stage inspects a function body.
type BlockStmt struct{ Stmts []Stmt }

func (*BlockStmt) isStmt() {}

// flattenBlocks replaces every BlockStmt with its contents, recursively.
func flattenBlocks(stmts []Stmt) []Stmt {
	out := make([]Stmt, 0, len(stmts))
	for _, s := range stmts {
		switch st := s.(type) {
		case *BlockStmt:
			out = append(out, flattenBlocks(st.Stmts)...)
		case *IfStmt:
			st.Then = flattenBlocks(st.Then)
			if st.Else != nil {
				st.Else = flattenBlocks(st.Else)
			}
			out = append(out, st)
		case *WhileStmt:
			st.Body = flattenBlocks(st.Body)
			out = append(out, st)
		default:
			out = append(out, s)
		}
	}
	return out
}

func injectPostBeforeContinue(stmts []Stmt, post Stmt) []Stmt {
	out := make([]Stmt, 0, len(stmts))
	for _, s := range stmts {
		switch st := s.(type) {
		case *ContinueStmt:
			out = append(out, post, st)
		case *IfStmt:
			st.Then = injectPostBeforeContinue(st.Then, post)
			if st.Else != nil {
				st.Else = injectPostBeforeContinue(st.Else, post)
			}
			out = append(out, st)
		// Inner while/for loops own their own continue targets; do not
		// descend into them.
		default:
			out = append(out, s)
		}
	}
	return out
}

// lowerWhile rewrites while(E){B} into while(true){ if(!E) break; B } unless
// E is already the literal `true`, per spec.md 4.C.3.
func lowerWhile(w *WhileStmt) Stmt {
	body := lowerStmts(w.Body)
	if lit, ok := w.Cond.(*LitExpr); ok && lit.Type == Bool && lit.Bool {
		w.Body = body
		return w
	}
	guard := &IfStmt{
		Cond: &UnaryExpr{Op: "!", X: w.Cond},
		Then: []Stmt{&BreakStmt{}},
	}
	newBody := append([]Stmt{guard}, body...)
	return &WhileStmt{Cond: &LitExpr{Type: Bool, Bool: true}, Body: newBody}
}

func ensureTrailingReturn(stmts []Stmt) []Stmt {
	if len(stmts) > 0 {
		if _, ok := stmts[len(stmts)-1].(*ReturnStmt); ok {
			return stmts
		}
	}
	return append(stmts, &ReturnStmt{})
}
