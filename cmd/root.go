package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"
	_ "time/tzdata"

	"github.com/cli/go-gh/v2/pkg/term"
	"github.com/jparise/semtime/internal/config"
	"github.com/jparise/semtime/internal/output"
	"github.com/jparise/semtime/internal/resolve"
	"github.com/spf13/cobra"
)

var (
	version = "dev"

	// Flags.
	color      = colorAuto
	timestamps = timestampsAuto
	format     = outputText
	timezone   string
	at         string
	configPath string
	debug      bool
)

var rootCmd = &cobra.Command{
	Use:   "semtime <input>...",
	Short: "Resolve timestamps, dates and semantic time expressions",
	Long: `semtime resolves each <input> to an instant and prints it as Unix
seconds and milliseconds, ISO-8601 (UTC and local), calendar components and
a relative phrase.

<input> can be:
  <digits>       A Unix timestamp (seconds, or milliseconds with --timestamps)
  <date>         A date string (e.g., "2023-02-20 19:20:34", "2023年2月20日")
  <expression>   A semantic expression: an anchor followed by adjustments

Anchors are keywords (now, today, tomorrow, yesterday, before-yesterday and
their aliases, see "semtime keywords") or a parenthesized date. Adjustments
are separated by spaces or commas:
  3h             Set the hour to 3 (y, M, d, h, m, s, ms)
  +1d, -3M       Add or subtract a quantity
  <d, >M         Snap to the start or end of a unit

Examples:
  semtime 1676892034192
  semtime "2023-02-20 19:20:34"
  semtime "now -1d <d"
  semtime "today, >M"
  semtime "(2023-02-20) +1y 9h 0m"
  semtime --tz Asia/Shanghai --at 1676892034192 "tomorrow 9h"`,
	Version:           version,
	Args:              cobra.MinimumNArgs(1),
	PersistentPreRunE: applyConfig,
	RunE:              run,
}

func init() {
	rootCmd.PersistentFlags().Var(&color, "color",
		"colorize output: auto, always, never")
	rootCmd.PersistentFlags().Var(&timestamps, "timestamps",
		"unit of digit-only input: auto, ms, s")
	rootCmd.PersistentFlags().Var(&format, "output",
		"output format: text, json")
	rootCmd.PersistentFlags().StringVar(&timezone, "tz", "",
		"time zone for dates and keywords (e.g., UTC, Asia/Shanghai; default: Local)")
	rootCmd.PersistentFlags().StringVar(&at, "at", "",
		"resolve against this reference instant instead of the current time")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "",
		"config file (default: $XDG_CONFIG_HOME/semtime/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false,
		"print debug information")

	rootCmd.AddCommand(parseCmd, batchCmd, keywordsCmd, versionCmd)
}

func Execute() error {
	return rootCmd.Execute()
}

// applyConfig fills in flags the user did not set from the config file.
func applyConfig(cmd *cobra.Command, args []string) error {
	path := configPath
	if path == "" {
		path = config.Discover()
	}
	if path == "" {
		return nil
	}

	cfg, err := config.Load(path)
	if err != nil {
		if configPath == "" && errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return err
	}

	flags := cmd.Flags()
	set := func(name, value string) error {
		if value == "" || flags.Lookup(name) == nil || flags.Changed(name) {
			return nil
		}
		if err := flags.Set(name, value); err != nil {
			return fmt.Errorf("%s: invalid %s %q: %w", path, name, value, err)
		}
		return nil
	}

	jobsValue := ""
	if cfg.Jobs != 0 {
		jobsValue = strconv.Itoa(cfg.Jobs)
	}

	for _, f := range []struct{ name, value string }{
		{"tz", cfg.Timezone},
		{"timestamps", cfg.Timestamps},
		{"output", cfg.Output},
		{"color", cfg.Color},
		{"jobs", jobsValue},
	} {
		if err := set(f.name, f.value); err != nil {
			return err
		}
	}

	return nil
}

func newOutput(cmd *cobra.Command) *output.Output {
	var colorize bool
	switch color {
	case colorAlways:
		colorize = true
	case colorNever:
		colorize = false
	case colorAuto:
		terminal := term.FromEnv()
		colorize = terminal.IsColorEnabled()
	}

	return output.New(cmd.OutOrStdout(), cmd.ErrOrStderr(), output.Options{
		Format:   output.Format(format),
		Colorize: colorize,
		Debug:    debug,
	})
}

// loadLocation maps the --tz value to a location. "" and "Local" mean the
// system zone.
func loadLocation(name string) (*time.Location, error) {
	if name == "" || name == "Local" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("invalid --tz %q: %w", name, err)
	}
	return loc, nil
}

// modalResolver applies the --timestamps mode to each input before
// resolving it.
type modalResolver struct {
	resolver resolve.Resolver
	mode     timestampMode
}

func (m modalResolver) Resolve(input string) resolve.Result {
	r := m.resolver
	r.MillisecondTimestamp = m.mode.millis(input)
	return r.Resolve(input)
}

// newResolver builds a resolver from the --tz, --at and --timestamps flags.
func newResolver(out *output.Output) (modalResolver, error) {
	loc, err := loadLocation(timezone)
	if err != nil {
		return modalResolver{}, err
	}

	m := modalResolver{
		resolver: resolve.Resolver{Location: loc},
		mode:     timestamps,
	}

	if at != "" {
		ref := m.Resolve(at)
		if !ref.Valid() {
			if ref.Err == nil {
				return modalResolver{}, fmt.Errorf("invalid --at %q", at)
			}
			return modalResolver{}, fmt.Errorf("invalid --at %q: %w", at, ref.Err)
		}
		instant := ref.Time.Time()
		m.resolver.Now = func() time.Time { return instant }
		out.Debugf("reference instant %s (%s)", ref.Time.ISOLocal(), ref.Kind)
	}

	out.Debugf("location %s, timestamps %s", loc, timestamps)
	return m, nil
}

func run(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	out := newOutput(cmd)
	resolver, err := newResolver(out)
	if err != nil {
		return err
	}

	var errorCount int
	for _, input := range args {
		if err := ctx.Err(); err != nil {
			return err
		}

		res := resolver.Resolve(input)
		if !res.Valid() {
			errorCount++
			if res.Err != nil {
				out.Warningf("%q: %v", input, res.Err)
			} else {
				out.Warningf("%q: empty input", input)
			}
			continue
		}

		out.Debugf("%q resolved as %s", input, res.Kind)
		if err := out.Result(res); err != nil {
			return err
		}
	}

	if errorCount == len(args) {
		return fmt.Errorf("failed to resolve all %d inputs", len(args))
	}

	return nil
}
