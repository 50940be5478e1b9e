package tm

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTapeReadDefaultsToBlank(t *testing.T) {
	tp := NewTape()
	require.Equal(t, Blank, tp.Read())
}

func TestTapeWriteReadShift(t *testing.T) {
	tp := NewTape()
	tp.Write('1')
	require.Equal(t, byte('1'), tp.Read())

	tp.Shift(1)
	require.Equal(t, Blank, tp.Read())

	tp.Shift(-1)
	require.Equal(t, byte('1'), tp.Read())
}

func TestTapeWriteBlankErasesCell(t *testing.T) {
	tp := NewTape()
	tp.Write('1')
	tp.Write(Blank)
	require.Equal(t, Blank, tp.Read())
	require.Equal(t, "", tp.String())
}

func TestTapeWriteStringRewindsHead(t *testing.T) {
	tp := NewTape()
	tp.WriteString("1011")
	require.Equal(t, 0, tp.Head())
	require.Equal(t, "1011", tp.String())
}

func TestTapeNegativeHeadExcursion(t *testing.T) {
	tp := NewTape()
	tp.Shift(-3)
	tp.Write('1')
	require.Equal(t, "1", tp.String())
}

func TestTapeClear(t *testing.T) {
	tp := NewTape()
	tp.WriteString("101")
	tp.Shift(5)
	tp.Clear()
	require.Equal(t, 0, tp.Head())
	require.Equal(t, "", tp.String())
}
