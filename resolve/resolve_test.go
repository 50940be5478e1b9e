package resolve

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestResolveTagsUserVarsAndFuncs(t *testing.T) {
	// int add ( int a , int b ) { return ( a + b ) ; }
	in := []string{
		"int", "add", "(", "int", "a", ",", "int", "b", ")", "{",
		"return", "(", "a", "+", "b", ")", ";", "}",
	}
	out, err := Resolve(in)
	require.NoError(t, err)
	require.Equal(t, []string{
		"int", "!FUNC_USER_add", "(", "int", "!VAR_USER_a", ",", "int", "!VAR_USER_b", ")", "{",
		"return", "(", "!VAR_USER_a", "+", "!VAR_USER_b", ")", ";", "}",
	}, out)
}

func TestResolveTagsMemAndLibraryCalls(t *testing.T) {
	in := []string{"int", "x", ";", "x", "=", "nextInt", "(", ")", ";", "MEM", "[", "0", "]", "=", "x", ";"}
	out, err := Resolve(in)
	require.NoError(t, err)
	require.Contains(t, out, "!FUNC_LIB_nextInt")
	require.Contains(t, out, "!VAR_LIB_MEM")
	require.Contains(t, out, "!VAR_USER_x")
}

func TestResolveRejectsUnknownIdentifier(t *testing.T) {
	in := []string{"x", "=", "1", ";"}
	_, err := Resolve(in)
	require.ErrorIs(t, err, ErrUnknownIdentifier)
}
