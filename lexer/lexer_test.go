package lexer

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNormalizeStripsLineComments(t *testing.T) {
	tokens, err := Normalize([]string{"int x = 1; // set x", "x = x+1;"})
	require.NoError(t, err)
	require.Equal(t, []string{
		"int", "x", "=", "1", ";",
		"x", "=", "x", "+", "1", ";",
	}, tokens)
}

func TestNormalizeStripsBlockComments(t *testing.T) {
	tokens, err := Normalize([]string{"int x /* a comment\n spanning lines */ = 1;"})
	require.NoError(t, err)
	require.Equal(t, []string{"int", "x", "=", "1", ";"}, tokens)
}

func TestNormalizeUnterminatedBlockComment(t *testing.T) {
	_, err := Normalize([]string{"int x = 1; /* oops"})
	require.ErrorIs(t, err, ErrUnterminatedComment)
}

func TestNormalizeMultiCharOperatorsNotSplit(t *testing.T) {
	tokens, err := Normalize([]string{"x += 1; y = (a<=b) && (c!=d);"})
	require.NoError(t, err)
	require.Equal(t, []string{
		"x", "+=", "1", ";",
		"y", "=", "(", "a", "<=", "b", ")", "&&", "(", "c", "!=", "d", ")", ";",
	}, tokens)
}
