package tm

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// zeroOutOnes builds a one-tape machine that scans right turning every '1'
// into '0' until it hits a blank, then halts.
func zeroOutOnes(t *testing.T) *Machine {
	t.Helper()
	transitions := []*Transition{
		{From: 0, To: 0, ReadPatterns: []string{"1"}, WritePatterns: []string{"0"}, Shifts: []int{1}},
		{From: 0, To: 1, ReadPatterns: []string{"_"}, WritePatterns: []string{WritePreserve}, Shifts: []int{0}},
	}
	m, err := NewMachine(1, 0, 1, transitions)
	require.NoError(t, err)
	return m
}

func TestMachineRunsToHalt(t *testing.T) {
	m := zeroOutOnes(t)
	m.Tapes[0].WriteString("111")

	steps := m.Run(0)

	require.True(t, m.Halted())
	require.Equal(t, 4, steps) // three flips plus the blank-detecting transition into halt
	require.Equal(t, "000", m.Tapes[0].String())
}

func TestMachineStepFalseOnNoMatchingTransition(t *testing.T) {
	m, err := NewMachine(1, 0, 99, []*Transition{
		{From: 0, To: 0, ReadPatterns: []string{"1"}, WritePatterns: []string{"0"}, Shifts: []int{1}},
	})
	require.NoError(t, err)
	m.Tapes[0].WriteString("_")

	ok := m.Step()

	require.False(t, ok)
	require.True(t, m.Halted())
}

func TestMachineRunRespectsMaxSteps(t *testing.T) {
	m := zeroOutOnes(t)
	m.Tapes[0].WriteString("1111")

	steps := m.Run(2)

	require.Equal(t, 2, steps)
	require.False(t, m.Halted())
	require.Equal(t, "0011", m.Tapes[0].String())
}

func TestMachineWriteLiteralDot(t *testing.T) {
	m, err := NewMachine(1, 0, 1, []*Transition{
		{From: 0, To: 1, ReadPatterns: []string{"_"}, WritePatterns: []string{WriteLiteralDot}, Shifts: []int{0}},
	})
	require.NoError(t, err)

	m.Run(0)

	require.Equal(t, byte('.'), m.Tapes[0].Read())
}

func TestNewMachineRejectsMismatchedTapeCounts(t *testing.T) {
	_, err := NewMachine(2, 0, 1, []*Transition{
		{From: 0, To: 1, ReadPatterns: []string{"_"}, WritePatterns: []string{"."}, Shifts: []int{0}},
	})
	require.Error(t, err)
}
