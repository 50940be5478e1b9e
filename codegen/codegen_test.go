package codegen

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"tmc/asmir"
)

// firstOutputValue decodes the first blank-delimited word off raw, the same
// way compiler.ReadOutput parses a whole output tape.
func firstOutputValue(t *testing.T, raw string) int {
	t.Helper()
	i := 0
	for i < len(raw) && raw[i] == '_' {
		i++
	}
	j := i
	for j < len(raw) && raw[j] != '_' {
		j++
	}
	v, err := DecodeInt(raw[i:j])
	require.NoError(t, err)
	return v
}

// A minimal hand-built program: write two literals, add them via the true
// basic_add primitive, print the result, then return. Exercises Generate
// end to end without going through the rest of the pipeline.
func TestGenerateLitAddPrint(t *testing.T) {
	dstA, dstB, dstSum := "!TAPE_tape0", "!TAPE_tape1", "!TAPE_tape2"
	prog := &asmir.Program{
		NumTapes: 3,
		Instrs: []asmir.Instr{
			{Op: asmir.LitInt, Dst: dstA, IntVal: 17},
			{Op: asmir.LitInt, Dst: dstB, IntVal: 25},
			{Op: asmir.CallLib, LibFunc: "!FUNC_LIB_basic_add", Args: []string{dstA, dstB}, Dst: dstSum},
			{Op: asmir.CallLib, LibFunc: "!FUNC_LIB_printInt", Args: []string{dstSum}},
			{Op: asmir.CallLib, LibFunc: "!FUNC_LIB_printSpace"},
			{Op: asmir.Return},
		},
	}

	m, err := Generate(prog)
	require.NoError(t, err)

	m.Run(2_000_000)
	require.True(t, m.Halted())

	out := m.Tapes[tapeOutput].String()
	require.Equal(t, 42, firstOutputValue(t, out))
}

func TestGenerateRejectsUnrecognizedPrimitive(t *testing.T) {
	prog := &asmir.Program{
		NumTapes: 1,
		Instrs: []asmir.Instr{
			{Op: asmir.CallLib, LibFunc: "!FUNC_LIB_totallyUnknown", Dst: "!TAPE_tape0"},
			{Op: asmir.Return},
		},
	}
	_, err := Generate(prog)
	require.Error(t, err)
	require.True(t, errors.Is(err, ErrBadAssemblyForm))
}

func TestGenerateSelfAliasedCallLib(t *testing.T) {
	// x = basic_add(x, x): both args and the destination share one physical
	// tape, which is exactly the case emitLibCall's de-aliasing exists for.
	x := "!TAPE_tape0"
	prog := &asmir.Program{
		NumTapes: 1,
		Instrs: []asmir.Instr{
			{Op: asmir.LitInt, Dst: x, IntVal: 9},
			{Op: asmir.CallLib, LibFunc: "!FUNC_LIB_basic_add", Args: []string{x, x}, Dst: x},
			{Op: asmir.CallLib, LibFunc: "!FUNC_LIB_printInt", Args: []string{x}},
			{Op: asmir.Return},
		},
	}
	m, err := Generate(prog)
	require.NoError(t, err)

	m.Run(2_000_000)
	require.True(t, m.Halted())

	require.Equal(t, 18, firstOutputValue(t, m.Tapes[tapeOutput].String()))
}
