package lower

import "tmc/token"

// LowerCallingConvention performs the rest of stage E (declaration hoisting
// and the variable→tape remapping it enables) together with stage F
// (push/call/pop call sites, pop-param function entries): spec.md keeps
// these as separate passes over a shared textual "declare" line; here both
// read and write the same per-function variable inventory, so they are one
// pass for clarity, producing a LoweredFunc ready for stage G.
type LoweredFunc struct {
	Name       string
	ReturnType Type
	NumParams  int
	NumTapes   int // total tapes this function's local variables occupy
	Body       []Flat
}

func LowerCallingConvention(fn *FlatFunc) *LoweredFunc {
	declareOrder := buildDeclareOrder(fn)

	tapeOf := make(map[string]string, len(declareOrder))
	for i, name := range declareOrder {
		tapeOf[name] = token.TapeName(i)
	}

	body := renameVars(fn.Body, func(name string) string {
		if t, ok := tapeOf[name]; ok {
			return t
		}
		return name
	})

	body = rewriteReturns(body)
	body = rewriteUserCalls(body)

	prologue := make([]Flat, len(fn.Params))
	for i := range fn.Params {
		prologue[i] = &FPopParam{Dst: token.TapeName(i)}
	}
	body = append(prologue, body...)

	return &LoweredFunc{
		Name:       fn.Name,
		ReturnType: fn.ReturnType,
		NumParams:  len(fn.Params),
		NumTapes:   len(declareOrder),
		Body:       body,
	}
}

// buildDeclareOrder lists every variable (user or temp) this function ever
// references, parameters first in declaration order and then everything
// else in order of first appearance in the body — exactly the list
// spec.md 4.E's hoisted `declare` line holds and 4.F's tape remapping walks.
func buildDeclareOrder(fn *FlatFunc) []string {
	order := make([]string, 0, len(fn.Params)+4)
	seen := map[string]bool{}
	for _, p := range fn.Params {
		order = append(order, p.Name)
		seen[p.Name] = true
	}
	add := func(name string) {
		if name == "" || seen[name] {
			return
		}
		seen[name] = true
		order = append(order, name)
	}
	walkFlat(fn.Body, func(n Flat) {
		switch f := n.(type) {
		case *FAssignVar:
			add(f.Src)
			add(f.Dst)
		case *FAssignLit:
			add(f.Dst)
		case *FUnary:
			add(f.X)
			add(f.Dst)
		case *FCall:
			for _, a := range f.Args {
				add(a)
			}
			add(f.Dst)
		case *FIf:
			add(f.Cond)
		case *FReturn:
			add(f.Value)
		}
	})
	return order
}

// rewriteReturns turns `x return ;` into `!TAPE_RAX x = ; return ;`, the
// tail end of stage E.
func rewriteReturns(body []Flat) []Flat {
	out := make([]Flat, 0, len(body))
	for _, s := range body {
		switch n := s.(type) {
		case *FReturn:
			if n.Value != "" {
				out = append(out, &FAssignVar{Dst: token.TapeRAX, Src: n.Value})
			}
			out = append(out, &FReturn{})
		case *FIf:
			out = append(out, &FIf{Cond: n.Cond, Then: rewriteReturns(n.Then), Else: rewriteReturns(n.Else)})
		case *FWhile:
			out = append(out, &FWhile{Body: rewriteReturns(n.Body)})
		default:
			out = append(out, s)
		}
	}
	return out
}

// rewriteUserCalls replaces a user-function FCall with push/call/pop, per
// spec.md 4.F. Library calls are left as FCall: codegen inlines them
// directly rather than going through the parameter stack.
func rewriteUserCalls(body []Flat) []Flat {
	out := make([]Flat, 0, len(body))
	for _, s := range body {
		switch n := s.(type) {
		case *FCall:
			if !token.IsUserFunc(n.Func) {
				out = append(out, s)
				continue
			}
			for i := len(n.Args) - 1; i >= 0; i-- {
				out = append(out, &FPush{Src: n.Args[i]})
			}
			out = append(out, &FCallUser{Func: n.Func})
			if n.Dst != "" {
				out = append(out, &FPopRAX{Dst: n.Dst})
			}
		case *FIf:
			out = append(out, &FIf{Cond: n.Cond, Then: rewriteUserCalls(n.Then), Else: rewriteUserCalls(n.Else)})
		case *FWhile:
			out = append(out, &FWhile{Body: rewriteUserCalls(n.Body)})
		default:
			out = append(out, s)
		}
	}
	return out
}
