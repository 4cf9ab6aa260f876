// Package output renders resolution results and diagnostics, as colored text
// or as JSON.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/jparise/semtime/internal/resolve"
	"github.com/jparise/semtime/internal/semantic"
	"github.com/mgutz/ansi"
)

// Format selects how results are written.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
)

// Options configures an Output.
type Options struct {
	Format   Format
	Colorize bool
	Debug    bool
}

// Output handles all output formatting with optional color support. It is
// safe for concurrent use.
type Output struct {
	mu     sync.Mutex
	stdout io.Writer
	stderr io.Writer
	format Format
	debug  bool

	cyan   func(string) string
	green  func(string) string
	white  func(string) string
	yellow func(string) string
	red    func(string) string
	faint  func(string) string
}

// New creates a new Output.
func New(stdout, stderr io.Writer, opts Options) *Output {
	color := func(name string) func(string) string {
		if opts.Colorize {
			return ansi.ColorFunc(name)
		}
		return ansi.ColorFunc("")
	}

	format := opts.Format
	if format == "" {
		format = FormatText
	}

	return &Output{
		stdout: stdout,
		stderr: stderr,
		format: format,
		debug:  opts.Debug,
		cyan:   color("cyan"),
		green:  color("green+b"),
		white:  color("white"),
		yellow: color("yellow"),
		red:    color("red+b"),
		faint:  color("black+h"),
	}
}

// field is one labeled line of a result block.
type field struct {
	label string
	value string
}

func fields(t *resolve.Time) []field {
	return []field{
		{"unix", fmt.Sprint(t.Unix())},
		{"unix ms", fmt.Sprint(t.UnixMilli())},
		{"iso", t.ISO()},
		{"local", t.ISOLocal()},
		{"components", fmt.Sprint(t.Components())},
		{"relative", t.Relative()},
		{"week", fmt.Sprint(t.ISOWeek())},
		{"day of year", fmt.Sprint(t.DayOfYear())},
	}
}

// Result writes the full set of views for a result.
func (o *Output) Result(r resolve.Result) error {
	if o.format == FormatJSON {
		return o.writeJSON(r.View())
	}

	o.mu.Lock()
	defer o.mu.Unlock()

	input := strings.TrimSpace(r.Input)
	if !r.Valid() {
		msg := "invalid time"
		if r.Err != nil {
			msg = r.Err.Error()
		}
		fmt.Fprintf(o.stdout, "%s  %s\n", o.cyan(input), o.red(msg))
		return nil
	}

	header := r.Kind.String()
	if r.Expression != nil {
		header += " " + o.faint(r.Expression.String())
	}
	fmt.Fprintf(o.stdout, "%s  %s\n", o.cyan(input), o.green(header))

	for _, f := range fields(r.Time) {
		fmt.Fprintf(o.stdout, "  %-12s %s\n", f.label, o.white(f.value))
	}
	return nil
}

// ResultLine writes a result as a single line: the input, the kind and the
// local ISO time (or the error).
func (o *Output) ResultLine(r resolve.Result) error {
	if o.format == FormatJSON {
		return o.writeJSON(r.View())
	}

	o.mu.Lock()
	defer o.mu.Unlock()

	input := strings.TrimSpace(r.Input)
	if !r.Valid() {
		msg := "invalid time"
		if r.Err != nil {
			msg = r.Err.Error()
		}
		fmt.Fprintf(o.stdout, "%s\t%s\t%s\n", o.cyan(input), o.red(r.Kind.String()), msg)
		return nil
	}

	fmt.Fprintf(o.stdout, "%s\t%s\t%s\t%d\n",
		o.cyan(input),
		o.green(r.Kind.String()),
		o.white(r.Time.ISOLocal()),
		r.Time.UnixMilli())
	return nil
}

// expressionView is the serializable form of a parsed expression.
type expressionView struct {
	Input      string   `json:"input"`
	Expression string   `json:"expression"`
	Anchor     string   `json:"anchor"`
	Ops        []opView `json:"ops"`
}

type opView struct {
	Op          string `json:"op"`
	Kind        string `json:"kind"`
	Description string `json:"description"`
}

// Expression writes a parsed expression and its adjustments.
func (o *Output) Expression(input string, x semantic.Expression) error {
	ops := make([]opView, len(x.Ops))
	for i, op := range x.Ops {
		ops[i] = opView{Op: op.String(), Kind: op.Kind.String(), Description: op.Describe()}
	}

	if o.format == FormatJSON {
		return o.writeJSON(expressionView{
			Input:      input,
			Expression: x.String(),
			Anchor:     x.Anchor.String(),
			Ops:        ops,
		})
	}

	o.mu.Lock()
	defer o.mu.Unlock()

	fmt.Fprintf(o.stdout, "%s\n", o.cyan(x.String()))
	fmt.Fprintf(o.stdout, "  %-8s %s\n", "anchor", o.white(x.Anchor.String()))
	for _, op := range ops {
		fmt.Fprintf(o.stdout, "  %-8s %s\n", op.Op, o.white(op.Description))
	}
	return nil
}

// Keywords writes each keyword anchor and its aliases.
func (o *Output) Keywords() error {
	if o.format == FormatJSON {
		table := make(map[string][]string, len(semantic.Keywords))
		for _, k := range semantic.Keywords {
			table[k.String()] = semantic.Aliases(k)
		}
		return o.writeJSON(table)
	}

	o.mu.Lock()
	defer o.mu.Unlock()

	for _, k := range semantic.Keywords {
		var quoted []string
		for _, alias := range semantic.Aliases(k) {
			quoted = append(quoted, fmt.Sprintf("%q", alias))
		}
		fmt.Fprintf(o.stdout, "%s %s\n", o.green(fmt.Sprintf("%-16s", k)), strings.Join(quoted, ", "))
	}
	return nil
}

func (o *Output) writeJSON(v any) error {
	o.mu.Lock()
	defer o.mu.Unlock()

	enc := json.NewEncoder(o.stdout)
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}

// Warningf writes a formatted warning message to stderr.
func (o *Output) Warningf(format string, args ...any) {
	o.mu.Lock()
	defer o.mu.Unlock()
	fmt.Fprintf(o.stderr, o.yellow("Warning: ")+format+"\n", args...)
}

// Infof writes a formatted informational message to stderr.
func (o *Output) Infof(format string, args ...any) {
	o.mu.Lock()
	defer o.mu.Unlock()
	fmt.Fprintf(o.stderr, format+"\n", args...)
}

// Debugf writes a formatted debug message to stderr when debugging is
// enabled.
func (o *Output) Debugf(format string, args ...any) {
	if !o.debug {
		return
	}
	o.mu.Lock()
	defer o.mu.Unlock()
	fmt.Fprintf(o.stderr, o.faint("debug: "+format)+"\n", args...)
}
