package lower

import "tmc/asmir"

// Run drives stages C through G over a name-resolved token stream,
// producing the linked assembly-IR program that package codegen consumes.
func Run(tokens []string) (*asmir.Program, error) {
	prog, err := Parse(tokens)
	if err != nil {
		return nil, err
	}

	LowerControlFlow(prog)

	flatFuncs := SimplifyExpressions(prog)
	loweredFuncs := make([]*LoweredFunc, len(flatFuncs))
	for i, ff := range flatFuncs {
		ReuseTemps(ff)
		loweredFuncs[i] = LowerCallingConvention(ff)
	}

	return Link(loweredFuncs)
}
