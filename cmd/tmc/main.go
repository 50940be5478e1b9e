// Command tmc compiles a source file through the full pipeline and,
// depending on flags, prints the linked assembly IR, runs the resulting
// machine, or single-steps it. Mirrors GVM's main.go: flag-based
// configuration, no config file, errors logged and exited here rather than
// inside any package.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"tmc/compiler"
)

var (
	debug    = flag.Bool("debug", false, "single-step the simulator, printing state after each transition")
	run      = flag.Bool("run", false, "compile then execute, instead of only printing linked assembly IR")
	maxSteps = flag.Int("max-steps", 0, "stop the simulator after this many transitions (0 means unbounded)")
	input    = flag.String("input", "", "path to a file of whitespace-separated ints to seed the input tape with")
)

func main() {
	flag.Parse()
	args := flag.Args()
	if len(args) == 0 {
		fmt.Fprintln(os.Stderr, "usage: tmc [flags] <source file>")
		os.Exit(1)
	}

	lines, err := readLines(args[0])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	if !*run && !*debug {
		prog, err := compiler.Link(lines)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		fmt.Print(prog.String())
		return
	}

	m, err := compiler.Compile(lines)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	if *input != "" {
		vals, err := readInts(*input)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		compiler.LoadInput(m, vals)
	}

	if *debug {
		runDebug(m)
	} else {
		m.Run(*maxSteps)
	}

	out, err := compiler.ReadOutput(m)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	strs := make([]string, len(out))
	for i, v := range out {
		strs[i] = strconv.Itoa(v)
	}
	fmt.Println(strings.Join(strs, " "))
}

func readLines(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("tmc: %w", err)
	}
	defer f.Close()

	var lines []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("tmc: %w", err)
	}
	return lines, nil
}

func readInts(path string) ([]int, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("tmc: %w", err)
	}
	defer f.Close()

	var vals []int
	scanner := bufio.NewScanner(f)
	scanner.Split(bufio.ScanWords)
	for scanner.Scan() {
		v, err := strconv.Atoi(scanner.Text())
		if err != nil {
			return nil, fmt.Errorf("tmc: bad input value %q: %w", scanner.Text(), err)
		}
		vals = append(vals, v)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("tmc: %w", err)
	}
	return vals, nil
}

// runDebug single-steps m, printing its state after each transition, in
// the spirit of GVM's -debug flag (vm.PrintCurrentState after each
// ExecNextInstruction).
func runDebug(m interface {
	Halted() bool
	Step() bool
}) {
	reader := bufio.NewReader(os.Stdin)
	n := 0
	for {
		if m.Halted() {
			fmt.Println("-> halted (reached halt state)")
			return
		}
		fmt.Printf("-> step %d, press enter to continue, q to run to completion\n", n)
		line, _ := reader.ReadString('\n')
		if strings.TrimSpace(line) == "q" {
			for m.Step() {
			}
			return
		}
		if !m.Step() {
			fmt.Println("-> halted (no matching transition)")
			return
		}
		n++
	}
}
