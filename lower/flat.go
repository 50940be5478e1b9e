package lower

// Flat is the three-address intermediate form produced by stage D
// (expr.go) and consumed by stages E-G. Control structure (If/While) is
// still nested here; stage G (jumps.go) performs the final flattening into
// line-numbered assembly. Names on Flat nodes are tagged tokens
// (token.VarUser/.../TempName) until stage F rewrites them to
// token.TapeName tape references.
type Flat interface{ isFlat() }

// FAssignVar is "Tdst Tsrc = ;": copy Src into Dst.
type FAssignVar struct{ Dst, Src string }

// FAssignLit is "Tdst <literal> = ;".
type FAssignLit struct {
	Dst    string
	IsBool bool
	Bool   bool
	Int    int64
}

// FUnary is logical NOT: "Targ ! = Tdst ;".
type FUnary struct{ Op, X, Dst string }

// FCall invokes a user or (post-rename) library function. Dst is "" for a
// void call.
type FCall struct {
	Func string
	Args []string
	Dst  string
}

// FIf is the lowered form of an `if`/`if-else`; Cond is always a simple
// variable or temp holding a boolean.
type FIf struct {
	Cond       string
	Then, Else []Flat
}

// FWhile's Body always begins, post stage C, with its own break-guard if the
// original condition was not literally `true`.
type FWhile struct{ Body []Flat }

type FBreak struct{}
type FContinue struct{}

// FReturn's Value is "" for a void return.
type FReturn struct{ Value string }

// Stage F introduces the following, replacing FCall for user calls and
// wrapping function entry/exit.
type FPush struct{ Src string }
type FPopParam struct{ Dst string }
type FPopRAX struct{ Dst string }
type FCallUser struct{ Func string }

func (*FAssignVar) isFlat() {}
func (*FAssignLit) isFlat() {}
func (*FUnary) isFlat()     {}
func (*FCall) isFlat()      {}
func (*FIf) isFlat()        {}
func (*FWhile) isFlat()     {}
func (*FBreak) isFlat()     {}
func (*FContinue) isFlat()  {}
func (*FReturn) isFlat()    {}
func (*FPush) isFlat()      {}
func (*FPopParam) isFlat()  {}
func (*FPopRAX) isFlat()    {}
func (*FCallUser) isFlat()  {}

// FlatFunc is a function after stage D: its body is Flat, not yet through
// temp-reuse (E), calling-convention lowering (F), or jump linking (G).
type FlatFunc struct {
	Name       string
	ReturnType Type
	Params     []Param
	Body       []Flat
	nextTemp   int
}
