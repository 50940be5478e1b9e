package codegen

import (
	"testing"

	"github.com/stretchr/testify/require"
	"tmc/tm"
)

// buildArith wires up a builder over three variable tapes (beyond the
// fixed roster) seeded with a and b, runs fn from a fresh start state to a fresh end
// state, and returns the machine post-run plus the three tapes' physical
// indices.
func buildArith(t *testing.T, a, bVal int, fn func(bd *builder, l Layout, start, aTape, bTape, dstTape int) int) (*tm.Machine, int, int, int) {
	t.Helper()
	l := Layout{NumVars: 3, IPWidth: 8, NumLines: 1}
	aTape, bTape, dstTape := l.IPSideways(0)+l.IPWidth+0, l.IPSideways(0)+l.IPWidth+1, l.IPSideways(0)+l.IPWidth+2

	b := newBuilder(l)
	start := b.state()
	end := fn(b, l, start, aTape, bTape, dstTape)

	m, err := tm.NewMachine(l.TotalTapes(), start, end, b.transitions)
	require.NoError(t, err)

	m.Tapes[aTape].WriteString(EncodeInt(a))
	m.Tapes[bTape].WriteString(EncodeInt(bVal))

	m.Run(0)
	require.True(t, m.Halted(), "machine should reach its declared end state")
	return m, aTape, bTape, dstTape
}

func decodeTape(t *testing.T, tp *tm.Tape) int {
	t.Helper()
	v, err := DecodeInt(tp.String())
	require.NoError(t, err)
	return v
}

func TestAddValue(t *testing.T) {
	cases := []struct{ a, b int }{
		{1, 1}, {5, 7}, {300, 299}, {1, 1000000}, {123456, 1},
	}
	for _, c := range cases {
		m, _, _, dst := buildArith(t, c.a, c.b, func(b *builder, l Layout, start, a, bTape, dstTape int) int {
			end := b.state()
			b.addValue(start, end, a, bTape, dstTape)
			return end
		})
		require.Equal(t, c.a+c.b, decodeTape(t, m.Tapes[dst]), "add(%d,%d)", c.a, c.b)
	}
}

func TestSubValue(t *testing.T) {
	cases := []struct{ a, b int }{
		{7, 3}, {7, 7}, {1000000, 999999}, {5, 5},
	}
	for _, c := range cases {
		m, _, _, dst := buildArith(t, c.a, c.b, func(b *builder, l Layout, start, a, bTape, dstTape int) int {
			end := b.state()
			b.subValue(start, end, a, bTape, dstTape)
			return end
		})
		require.Equal(t, c.a-c.b, decodeTape(t, m.Tapes[dst]), "sub(%d,%d)", c.a, c.b)
	}
}

func TestNegValue(t *testing.T) {
	for _, v := range []int{1, -1, 42, -42, 1000000} {
		m, a, _, dst := buildArith(t, v, 1, func(b *builder, l Layout, start, aTape, bTape, dstTape int) int {
			end := b.state()
			b.negValue(start, end, aTape, dstTape)
			return end
		})
		require.Equal(t, -v, decodeTape(t, m.Tapes[dst]))
		require.Equal(t, v, decodeTape(t, m.Tapes[a]), "negValue must not mutate its source tape")
	}
}

func TestIsZeroValue(t *testing.T) {
	for _, v := range []int{1, -1, 17} {
		l := Layout{NumVars: 1, IPWidth: 8, NumLines: 1}
		aTape := l.IPSideways(0) + l.IPWidth
		b := newBuilder(l)
		start := b.state()
		zeroExit, nonZeroExit := b.isZeroValue(start, aTape)
		final := b.state()
		b.trans(zeroExit, final, map[int]op{})
		b.trans(nonZeroExit, final, map[int]op{})

		m, err := tm.NewMachine(l.TotalTapes(), start, final, b.transitions)
		require.NoError(t, err)
		m.Tapes[aTape].WriteString(EncodeInt(v))
		m.Run(0)
		require.True(t, m.Halted())
	}
}

func TestIsZeroValueOnZero(t *testing.T) {
	l := Layout{NumVars: 1, IPWidth: 8, NumLines: 1}
	aTape := l.IPSideways(0) + l.IPWidth
	b := newBuilder(l)
	start := b.state()
	zeroExit, nonZeroExit := b.isZeroValue(start, aTape)
	reachedZero := b.state()
	reachedNonZero := b.state()
	b.trans(zeroExit, reachedZero, map[int]op{})
	b.trans(nonZeroExit, reachedNonZero, map[int]op{})

	m, err := tm.NewMachine(l.TotalTapes(), start, reachedZero, b.transitions)
	require.NoError(t, err)
	m.Tapes[aTape].WriteString(EncodeInt(0))
	m.Run(0)
	require.Equal(t, reachedZero, m.Current)
}

func TestXorValue(t *testing.T) {
	cases := []struct{ a, b int }{{5, 3}, {12, 9}, {7, 7}, {1000000, 1}}
	for _, c := range cases {
		m, _, _, dst := buildArith(t, c.a, c.b, func(b *builder, l Layout, start, a, bTape, dstTape int) int {
			end := b.state()
			b.xorValue(start, end, a, bTape, dstTape)
			return end
		})
		require.Equal(t, c.a^c.b, decodeTape(t, m.Tapes[dst]), "xor(%d,%d)", c.a, c.b)
	}
}

func TestEqValue(t *testing.T) {
	cases := []struct {
		a, b int
		want int
	}{{5, 5, 1}, {5, 3, 0}, {-1, -1, 1}, {0, 0, 1}, {1000000, 1000000, 1}}
	for _, c := range cases {
		m, _, _, dst := buildArith(t, c.a, c.b, func(b *builder, l Layout, start, a, bTape, dstTape int) int {
			end := b.state()
			b.eqValue(start, end, a, bTape, dstTape)
			return end
		})
		require.Equal(t, c.want, decodeTape(t, m.Tapes[dst]), "eq(%d,%d)", c.a, c.b)
	}
}

func TestLtValue(t *testing.T) {
	cases := []struct {
		a, b int
		want int
	}{{3, 5, 1}, {5, 3, 0}, {5, 5, 0}, {1, 1000000, 1}, {1000000, 1, 0}}
	for _, c := range cases {
		m, _, _, dst := buildArith(t, c.a, c.b, func(b *builder, l Layout, start, a, bTape, dstTape int) int {
			end := b.state()
			b.ltValue(start, end, a, bTape, dstTape)
			return end
		})
		require.Equal(t, c.want, decodeTape(t, m.Tapes[dst]), "lt(%d,%d)", c.a, c.b)
	}
}

func TestMul2Div2Value(t *testing.T) {
	m, _, _, dst := buildArith(t, 5, 0, func(b *builder, l Layout, start, a, bTape, dstTape int) int {
		end := b.state()
		b.mul2Value(start, end, a, dstTape)
		return end
	})
	require.Equal(t, 10, decodeTape(t, m.Tapes[dst]))

	m, _, _, dst = buildArith(t, 10, 0, func(b *builder, l Layout, start, a, bTape, dstTape int) int {
		end := b.state()
		b.div2Value(start, end, a, dstTape)
		return end
	})
	require.Equal(t, 5, decodeTape(t, m.Tapes[dst]))

	m, _, _, dst = buildArith(t, 1000000, 0, func(b *builder, l Layout, start, a, bTape, dstTape int) int {
		end := b.state()
		b.mul2Value(start, end, a, dstTape)
		return end
	})
	require.Equal(t, 2000000, decodeTape(t, m.Tapes[dst]))
}

func TestEncodeDecodeIntRoundTrip(t *testing.T) {
	for v := -1000000; v <= 1000000; v += 997 {
		bits := EncodeInt(v)
		got, err := DecodeInt(bits)
		require.NoError(t, err)
		require.Equal(t, v, got)
	}
}

func TestEncodeIntZeroIsSingleCell(t *testing.T) {
	require.Equal(t, "0", EncodeInt(0))
}
