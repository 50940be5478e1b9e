package compiler

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// compileAndRun compiles src, seeds its input tape with vals, runs the
// resulting machine to completion (or maxSteps, whichever comes first), and
// returns its decoded output words.
func compileAndRun(t *testing.T, src string, vals []int, maxSteps int) []int {
	t.Helper()
	lines := strings.Split(strings.TrimSpace(src), "\n")
	m, err := Compile(lines)
	require.NoError(t, err)

	LoadInput(m, vals)
	m.Run(maxSteps)
	require.True(t, m.Halted(), "machine should halt within the step budget")

	out, err := ReadOutput(m)
	require.NoError(t, err)
	return out
}

func TestConstantReturn(t *testing.T) {
	const src = `
int main() {
	return 0;
}
`
	out := compileAndRun(t, src, nil, 200000)
	require.Empty(t, out)
}

func TestEcho(t *testing.T) {
	const src = `
int main() {
	int x = nextInt();
	printInt(x);
	printSpace();
	return 0;
}
`
	out := compileAndRun(t, src, []int{2}, 500000)
	require.Equal(t, []int{2}, out)
}

func TestFactorial(t *testing.T) {
	const src = `
int f(int n) {
	if (n == 0 || n == 1) {
		return 1;
	}
	return n * f(n - 1);
}
int main() {
	printInt(f(5));
	printSpace();
	return 0;
}
`
	out := compileAndRun(t, src, nil, 5_000_000)
	require.Equal(t, []int{120}, out)
}

func TestIterativeSum(t *testing.T) {
	const src = `
int main() {
	int N = nextInt();
	int s = 0;
	for (int i = 0; i < N; i += 1) {
		s += nextInt();
	}
	printInt(s);
	printSpace();
	return 0;
}
`
	out := compileAndRun(t, src, []int{5, 9, 5, 8, 2, 5}, 3_000_000)
	require.Equal(t, []int{29}, out)
}

func TestShortCircuitSafety(t *testing.T) {
	const src = `
int main() {
	int x = 0;
	if (x != 0 && 10 / x > 0) {
		printInt(1);
	} else {
		printInt(0);
	}
	printSpace();
	return 0;
}
`
	// A bounded step count is the point of this scenario: if && ever evaluated
	// its right-hand side here, the division by zero would either loop
	// forever hunting a matching transition or run far past this budget.
	out := compileAndRun(t, src, nil, 1_000_000)
	require.Equal(t, []int{0}, out)
}

func TestBFSDistances(t *testing.T) {
	const src = `
int main() {
	int numNodes = nextInt();
	int numEdges = nextInt();
	int startNode = nextInt() - 1;

	for (int i = 0; i < numEdges; i += 1) {
		MEM[2 * i] = nextInt() - 1;
		MEM[2 * i + 1] = nextInt() - 1;
	}

	for (int i = 0; i < numNodes; i += 1) {
		MEM[2 * numEdges + i] = numNodes;
	}

	MEM[2 * numEdges + startNode] = 0;

	int queueHead = 2 * numEdges + numNodes;
	int queueTail = queueHead + 1;

	MEM[queueHead] = startNode;

	while (queueHead != queueTail) {
		int node = MEM[queueHead];
		queueHead += 1;

		for (int i = 0; i < numEdges; i += 1) {
			int u = MEM[2 * i];
			int v = MEM[2 * i + 1];

			int neighbor = -1;
			if (u == node) {
				neighbor = v;
			} else if (v == node) {
				neighbor = u;
			}

			if (neighbor != -1) {
				if (MEM[2 * numEdges + neighbor] == numNodes) {
					MEM[2 * numEdges + neighbor] = 1 + MEM[2 * numEdges + node];
					MEM[queueTail] = neighbor;
					queueTail += 1;
				}
			}
		}
	}

	for (int i = 0; i < numNodes; i += 1) {
		int dist = MEM[2 * numEdges + i];
		if (dist == numNodes) {
			printInt(-1);
			printSpace();
		} else {
			printInt(dist);
			printSpace();
		}
	}

	return 0;
}
`
	vals := []int{5, 3, 1, 1, 2, 1, 3, 3, 4}
	out := compileAndRun(t, src, vals, 40_000_000)
	require.Equal(t, []int{0, 1, 1, 2, -1}, out)
}

func TestLinkProducesJmpToMain(t *testing.T) {
	prog, err := Link([]string{"int main() { return 0; }"})
	require.NoError(t, err)
	require.NotEmpty(t, prog.Instrs)
	require.Equal(t, len(prog.Instrs)-3, prog.Instrs[0].Target, "line 0 is always the pre-pad jump to main's entry line")
}

func TestEncodeInputDecodeOutputRoundTrip(t *testing.T) {
	const src = `
int main() {
	int x = nextInt();
	int y = nextInt();
	printInt(x + y);
	printSpace();
	printInt(x - y);
	printSpace();
	return 0;
}
`
	out := compileAndRun(t, src, []int{7, -3}, 2_000_000)
	require.Equal(t, []int{4, 10}, out)
}
