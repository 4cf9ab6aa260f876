// Package batch resolves many time inputs concurrently.
package batch

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/jparise/semtime/internal/output"
	"github.com/jparise/semtime/internal/resolve"
	"golang.org/x/sync/semaphore"
)

// Resolver resolves a single input.
type Resolver interface {
	Resolve(input string) resolve.Result
}

// Runner orchestrates batch resolution.
type Runner struct {
	output   *output.Output
	resolver Resolver
}

// New creates a new Runner.
func New(out *output.Output, resolver Resolver) *Runner {
	return &Runner{
		output:   out,
		resolver: resolver,
	}
}

// Run reads the inputs named by opts (or stdin) and resolves them.
func (r *Runner) Run(ctx context.Context, stdin io.Reader, opts *Options) error {
	inputs, err := ReadInputs(stdin, opts.Patterns)
	if err != nil {
		return err
	}
	return r.Resolve(ctx, inputs, opts.Jobs)
}

// Resolve resolves inputs with at most jobs running at once and prints one
// line per input, in input order.
func (r *Runner) Resolve(ctx context.Context, inputs []string, jobs int) error {
	if len(inputs) == 0 {
		r.output.Warningf("No inputs to resolve")
		return nil
	}
	if jobs < 1 {
		jobs = 1
	}

	results := make([]resolve.Result, len(inputs))

	var wg sync.WaitGroup
	var errorCount atomic.Int32
	sem := semaphore.NewWeighted(int64(jobs))

	for i, input := range inputs {
		if err := sem.Acquire(ctx, 1); err != nil {
			wg.Wait()
			return err
		}

		wg.Add(1)
		go func(i int, input string) {
			defer wg.Done()
			defer sem.Release(1)

			results[i] = r.resolver.Resolve(input)
			if !results[i].Valid() {
				errorCount.Add(1)
			}
			r.output.Debugf("%q: %v", input, results[i].Kind)
		}(i, input)
	}

	wg.Wait()

	for _, res := range results {
		if err := r.output.ResultLine(res); err != nil {
			return err
		}
	}

	if int(errorCount.Load()) == len(inputs) {
		return fmt.Errorf("failed to resolve all %d inputs", len(inputs))
	}

	return nil
}

// ReadInputs returns one input per non-blank line. Lines starting with '#'
// are comments. When patterns is empty the inputs are read from stdin;
// otherwise every pattern is expanded as a doublestar glob and the matching
// files are read in order. A file matched by more than one pattern is read
// once.
func ReadInputs(stdin io.Reader, patterns []string) ([]string, error) {
	if len(patterns) == 0 {
		return readLines(stdin)
	}

	seen := make(map[string]bool)
	var inputs []string
	for _, pattern := range patterns {
		matches, err := doublestar.FilepathGlob(pattern, doublestar.WithFilesOnly())
		if err != nil {
			return nil, fmt.Errorf("invalid input pattern %q: %w", pattern, err)
		}
		if len(matches) == 0 {
			return nil, fmt.Errorf("no input files match %q", pattern)
		}

		for _, name := range matches {
			if seen[name] {
				continue
			}
			seen[name] = true

			lines, err := readFile(name)
			if err != nil {
				return nil, err
			}
			inputs = append(inputs, lines...)
		}
	}

	return inputs, nil
}

func readFile(name string) ([]string, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	lines, err := readLines(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return lines, nil
}

func readLines(r io.Reader) ([]string, error) {
	var lines []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		lines = append(lines, line)
	}
	return lines, scanner.Err()
}
