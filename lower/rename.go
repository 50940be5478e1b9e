package lower

// walkFlat visits every Flat node in body, in textual (pre-order, Then
// before Else) order, calling visit on each. It is the shared traversal
// used by both temp-interval computation (temps.go) and variable renaming
// below, since both need the identical "line order" the original
// spec.md 4.E sweep assumes.
func walkFlat(body []Flat, visit func(Flat)) {
	for _, s := range body {
		visit(s)
		switch n := s.(type) {
		case *FIf:
			walkFlat(n.Then, visit)
			walkFlat(n.Else, visit)
		case *FWhile:
			walkFlat(n.Body, visit)
		}
	}
}

// renameVars returns a copy of body with every variable-name field passed
// through rename. Function names (FCall.Func, FCallUser.Func) are never
// variable names and are left untouched.
func renameVars(body []Flat, rename func(string) string) []Flat {
	r := func(s string) string {
		if s == "" {
			return s
		}
		return rename(s)
	}
	out := make([]Flat, len(body))
	for i, s := range body {
		switch n := s.(type) {
		case *FAssignVar:
			out[i] = &FAssignVar{Dst: r(n.Dst), Src: r(n.Src)}
		case *FAssignLit:
			cp := *n
			cp.Dst = r(n.Dst)
			out[i] = &cp
		case *FUnary:
			out[i] = &FUnary{Op: n.Op, X: r(n.X), Dst: r(n.Dst)}
		case *FCall:
			args := make([]string, len(n.Args))
			for j, a := range n.Args {
				args[j] = r(a)
			}
			out[i] = &FCall{Func: n.Func, Args: args, Dst: r(n.Dst)}
		case *FIf:
			out[i] = &FIf{Cond: r(n.Cond), Then: renameVars(n.Then, rename), Else: renameVars(n.Else, rename)}
		case *FWhile:
			out[i] = &FWhile{Body: renameVars(n.Body, rename)}
		case *FReturn:
			out[i] = &FReturn{Value: r(n.Value)}
		case *FBreak, *FContinue:
			out[i] = s
		case *FPush:
			out[i] = &FPush{Src: r(n.Src)}
		case *FPopParam:
			out[i] = &FPopParam{Dst: r(n.Dst)}
		case *FPopRAX:
			out[i] = &FPopRAX{Dst: r(n.Dst)}
		case *FCallUser:
			out[i] = s
		default:
			out[i] = s
		}
	}
	return out
}
