package codegen

import (
	"testing"

	"github.com/stretchr/testify/require"
	"tmc/tm"
)

// runLibCall builds a machine that seeds tapeBits with the given symbol
// under the head, calls emitLibraryCall for name with no arguments, and
// returns the decoded dst tape once the machine halts.
func runLibCall(t *testing.T, name string, bitsSymbol byte) int {
	t.Helper()
	l := Layout{NumVars: 1, IPWidth: 8, NumLines: 1}
	dst := l.Tape("!TAPE_tape0")

	b := newBuilder(l)
	start := b.state()
	end := b.state()
	ok := emitLibraryCall(b, name, nil, dst, start, end)
	require.True(t, ok, "expected %q to be a recognized primitive", name)

	m, err := tm.NewMachine(l.TotalTapes(), start, end, b.transitions)
	require.NoError(t, err)
	if bitsSymbol != tm.Blank {
		m.Tapes[tapeBits].Write(bitsSymbol)
	}
	m.Run(0)
	require.True(t, m.Halted())

	v, err := DecodeInt(m.Tapes[dst].String())
	require.NoError(t, err)
	return v
}

func TestMemBitIsZero(t *testing.T) {
	require.Equal(t, 1, runLibCall(t, "memBitIsZero", '0'))
	require.Equal(t, 0, runLibCall(t, "memBitIsZero", '1'))
	require.Equal(t, 0, runLibCall(t, "memBitIsZero", tm.Blank))
}

func TestMemBitIsOne(t *testing.T) {
	require.Equal(t, 1, runLibCall(t, "memBitIsOne", '1'))
	require.Equal(t, 0, runLibCall(t, "memBitIsOne", '0'))
	require.Equal(t, 0, runLibCall(t, "memBitIsOne", tm.Blank))
}

func TestMemBitIsBlank(t *testing.T) {
	require.Equal(t, 1, runLibCall(t, "memBitIsBlank", tm.Blank))
	require.Equal(t, 0, runLibCall(t, "memBitIsBlank", '0'))
	require.Equal(t, 0, runLibCall(t, "memBitIsBlank", '1'))
}

func TestUnrecognizedPrimitiveReportsFalse(t *testing.T) {
	l := Layout{NumVars: 1, IPWidth: 8, NumLines: 1}
	b := newBuilder(l)
	start, end := b.state(), b.state()
	ok := emitLibraryCall(b, "add", nil, numFixedTapes, start, end)
	require.False(t, ok, "add is an ordinary bundled-library function, not a codegen primitive")
}
