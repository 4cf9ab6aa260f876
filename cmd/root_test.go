package cmd

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/jparise/semtime/internal/config"
	"github.com/jparise/semtime/internal/resolve"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

func TestColorMode(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		wantErr bool
		want    colorMode
	}{
		{
			name:    "auto",
			value:   "auto",
			wantErr: false,
			want:    colorAuto,
		},
		{
			name:    "always",
			value:   "always",
			wantErr: false,
			want:    colorAlways,
		},
		{
			name:    "never",
			value:   "never",
			wantErr: false,
			want:    colorNever,
		},
		{
			name:    "invalid value",
			value:   "invalid",
			wantErr: true,
		},
		{
			name:    "empty string",
			value:   "",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var c colorMode
			err := c.Set(tt.value)

			if tt.wantErr {
				if err == nil {
					t.Errorf("colorMode.Set(%q) expected error, got nil", tt.value)
				}
				return
			}

			if err != nil {
				t.Errorf("colorMode.Set(%q) unexpected error: %v", tt.value, err)
				return
			}

			if c != tt.want {
				t.Errorf("colorMode.Set(%q) = %v, want %v", tt.value, c, tt.want)
			}

			// Test String() method
			if c.String() != tt.value {
				t.Errorf("colorMode.String() = %q, want %q", c.String(), tt.value)
			}

			// Test Type() method
			if c.Type() != "colorMode" {
				t.Errorf("colorMode.Type() = %q, want %q", c.Type(), "colorMode")
			}
		})
	}
}

func TestTimestampMode(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		wantErr bool
		want    timestampMode
	}{
		{name: "auto", value: "auto", want: timestampsAuto},
		{name: "milliseconds", value: "ms", want: timestampsMillis},
		{name: "seconds", value: "s", want: timestampsSeconds},
		{name: "long name", value: "millis", wantErr: true},
		{name: "empty string", value: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var m timestampMode
			err := m.Set(tt.value)

			if tt.wantErr {
				if err == nil {
					t.Errorf("timestampMode.Set(%q) expected error, got nil", tt.value)
				}
				return
			}

			if err != nil {
				t.Errorf("timestampMode.Set(%q) unexpected error: %v", tt.value, err)
				return
			}

			if m != tt.want || m.String() != tt.value {
				t.Errorf("timestampMode.Set(%q) = %v, want %v", tt.value, m, tt.want)
			}
			if m.Type() != "timestampMode" {
				t.Errorf("timestampMode.Type() = %q, want %q", m.Type(), "timestampMode")
			}
		})
	}
}

func TestTimestampModeMillis(t *testing.T) {
	tests := []struct {
		mode  timestampMode
		input string
		want  bool
	}{
		{timestampsAuto, "1676892034", false},
		{timestampsAuto, "1676892034192", true},
		{timestampsAuto, " 1676892034192 ", true},
		{timestampsAuto, "0", false},
		{timestampsMillis, "1676892034", true},
		{timestampsSeconds, "1676892034192", false},
	}

	for _, tt := range tests {
		t.Run(string(tt.mode)+"/"+tt.input, func(t *testing.T) {
			if got := tt.mode.millis(tt.input); got != tt.want {
				t.Errorf("timestampMode(%q).millis(%q) = %v, want %v", tt.mode, tt.input, got, tt.want)
			}
		})
	}
}

func TestOutputFormat(t *testing.T) {
	tests := []struct {
		value   string
		wantErr bool
		want    outputFormat
	}{
		{value: "text", want: outputText},
		{value: "json", want: outputJSON},
		{value: "yaml", wantErr: true},
		{value: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			var f outputFormat
			err := f.Set(tt.value)
			if (err != nil) != tt.wantErr {
				t.Fatalf("outputFormat.Set(%q) error = %v, wantErr %v", tt.value, err, tt.wantErr)
			}
			if !tt.wantErr && f != tt.want {
				t.Errorf("outputFormat.Set(%q) = %v, want %v", tt.value, f, tt.want)
			}
		})
	}
}

func TestLoadLocation(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		want    string
		wantErr bool
	}{
		{name: "default", value: "", want: "Local"},
		{name: "local", value: "Local", want: "Local"},
		{name: "utc", value: "UTC", want: "UTC"},
		{name: "iana", value: "Asia/Shanghai", want: "Asia/Shanghai"},
		{name: "unknown", value: "Mars/Olympus", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			loc, err := loadLocation(tt.value)
			if (err != nil) != tt.wantErr {
				t.Fatalf("loadLocation(%q) error = %v, wantErr %v", tt.value, err, tt.wantErr)
			}
			if !tt.wantErr && loc.String() != tt.want {
				t.Errorf("loadLocation(%q) = %v, want %v", tt.value, loc, tt.want)
			}
		})
	}
}

func TestModalResolver(t *testing.T) {
	ref := time.Date(2023, 2, 20, 19, 20, 34, 0, time.UTC)
	base := resolve.Resolver{Location: time.UTC, Now: func() time.Time { return ref }}

	tests := []struct {
		mode    timestampMode
		input   string
		wantISO string
	}{
		{timestampsAuto, "1676892034", "2023-02-20T11:20:34.000Z"},
		{timestampsAuto, "1676892034192", "2023-02-20T11:20:34.192Z"},
		{timestampsMillis, "1676892034", "1970-01-20T09:48:12.034Z"},
		{timestampsSeconds, "0", "1970-01-01T00:00:00.000Z"},
	}

	for _, tt := range tests {
		t.Run(string(tt.mode)+"/"+tt.input, func(t *testing.T) {
			got := modalResolver{resolver: base, mode: tt.mode}.Resolve(tt.input)
			if !got.Valid() {
				t.Fatalf("Resolve(%q) error: %v", tt.input, got.Err)
			}
			if iso := got.Time.ISO(); iso != tt.wantISO {
				t.Errorf("Resolve(%q) = %s, want %s", tt.input, iso, tt.wantISO)
			}
		})
	}
}

// resetFlags restores every flag to its default so each execution starts
// from a clean state.
func resetFlags(t *testing.T) {
	t.Helper()
	reset := func(f *pflag.Flag) {
		if err := f.Value.Set(f.DefValue); err != nil {
			t.Fatalf("reset --%s: %v", f.Name, err)
		}
		f.Changed = false
	}
	rootCmd.PersistentFlags().VisitAll(reset)
	for _, c := range []*cobra.Command{rootCmd, parseCmd, batchCmd, keywordsCmd, versionCmd} {
		c.Flags().VisitAll(func(f *pflag.Flag) {
			if f.Name == "help" || f.Name == "version" {
				f.Changed = false
				return
			}
			reset(f)
		})
	}
}

func execute(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	t.Setenv(config.EnvPath, filepath.Join(t.TempDir(), "missing.yaml"))
	resetFlags(t)

	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)
	rootCmd.SetArgs(args)

	err := rootCmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestExecuteResolve(t *testing.T) {
	stdout, _, err := execute(t, "",
		"--at", "1676892034192", "--timestamps", "ms", "--tz", "UTC",
		"--output", "json", "--color", "never", "now +3h")
	if err != nil {
		t.Fatalf("Execute() unexpected error: %v", err)
	}

	var got resolve.ResultView
	if err := json.Unmarshal([]byte(stdout), &got); err != nil {
		t.Fatalf("Execute() wrote invalid JSON %q: %v", stdout, err)
	}
	if got.Kind != resolve.KindSemantic || got.Time == nil {
		t.Fatalf("Execute() = %+v, want a semantic result", got)
	}
	if want := "2023-02-20T14:20:34.192Z"; got.Time.ISO != want {
		t.Errorf("Execute() iso = %s, want %s", got.Time.ISO, want)
	}
	if want := "3 hours from now"; got.Time.Relative != want {
		t.Errorf("Execute() relative = %q, want %q", got.Time.Relative, want)
	}
}

func TestExecuteText(t *testing.T) {
	stdout, stderr, err := execute(t, "",
		"--at", "2023-02-20 19:20:34", "--tz", "UTC", "--color", "never",
		"today", "nonsense")
	if err != nil {
		t.Fatalf("Execute() unexpected error: %v", err)
	}

	for _, want := range []string{"today  semantic today", "iso          2023-02-20T00:00:00.000Z", "relative     19 hours ago"} {
		if !strings.Contains(stdout, want) {
			t.Errorf("Execute() stdout = %q, want to contain %q", stdout, want)
		}
	}
	if !strings.Contains(stderr, `Warning: "nonsense": unknown anchor`) {
		t.Errorf("Execute() stderr = %q, want a warning for the invalid input", stderr)
	}
}

func TestExecuteConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := "timezone: Asia/Shanghai\noutput: json\ncolor: never\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	t.Run("file values", func(t *testing.T) {
		stdout, _, err := execute(t, "", "--config", path, "--at", "1676892034192", "today")
		if err != nil {
			t.Fatalf("Execute() unexpected error: %v", err)
		}

		var got resolve.ResultView
		if err := json.Unmarshal([]byte(stdout), &got); err != nil {
			t.Fatalf("Execute() wrote invalid JSON %q: %v", stdout, err)
		}
		if got.Time == nil {
			t.Fatalf("Execute() = %+v, want a time", got)
		}
		if want := "2023-02-20T00:00:00.000+08:00"; got.Time.ISOLocal != want {
			t.Errorf("Execute() isoLocal = %s, want %s", got.Time.ISOLocal, want)
		}
		if want := "2023-02-19T16:00:00.000Z"; got.Time.ISO != want {
			t.Errorf("Execute() iso = %s, want %s", got.Time.ISO, want)
		}
	})

	t.Run("flags override file", func(t *testing.T) {
		stdout, _, err := execute(t, "", "--config", path, "--output", "text", "--tz", "UTC",
			"--at", "1676892034192", "today")
		if err != nil {
			t.Fatalf("Execute() unexpected error: %v", err)
		}
		if !strings.Contains(stdout, "2023-02-20T00:00:00.000+00:00") {
			t.Errorf("Execute() stdout = %q, want text output in UTC", stdout)
		}
	})

	t.Run("missing explicit file", func(t *testing.T) {
		if _, _, err := execute(t, "", "--config", path+".missing", "now"); err == nil {
			t.Error("Execute() expected an error for a missing config file")
		}
	})
}

func TestExecuteErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{
			name: "all inputs invalid",
			args: []string{"--color", "never", "bogus"},
			want: "failed to resolve all 1 inputs",
		},
		{
			name: "bad time zone",
			args: []string{"--tz", "Mars/Olympus", "now"},
			want: `invalid --tz "Mars/Olympus"`,
		},
		{
			name: "bad reference",
			args: []string{"--at", "whenever", "now"},
			want: `invalid --at "whenever"`,
		},
		{
			name: "bad timestamps value",
			args: []string{"--timestamps", "ns", "now"},
			want: "invalid argument",
		},
		{
			name: "no inputs",
			args: []string{},
			want: "requires at least 1 arg",
		},
		{
			name: "bad expression",
			args: []string{"parse", "now +3x"},
			want: `invalid token "+3x" at offset 4`,
		},
		{
			name: "jobs out of range",
			args: []string{"batch", "-j", "0"},
			want: "--jobs must be between 1 and 100, got 0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := execute(t, "", tt.args...)
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("Execute(%q) error = %v, want to contain %q", tt.args, err, tt.want)
			}
		})
	}
}

func TestExecuteParse(t *testing.T) {
	stdout, _, err := execute(t, "", "parse", "--color", "never", "now, -3M, >d", "jt 9h")
	if err != nil {
		t.Fatalf("Execute() unexpected error: %v", err)
	}

	for _, want := range []string{"now -3M >d\n", "subtract 3 month", "snap to end of day", "today 9h\n", "set hour to 9"} {
		if !strings.Contains(stdout, want) {
			t.Errorf("Execute() stdout = %q, want to contain %q", stdout, want)
		}
	}
}

func TestExecuteBatch(t *testing.T) {
	stdin := "now\n# skipped\n\ntoday +1d\n1676892034192\n"
	stdout, _, err := execute(t, stdin,
		"batch", "--at", "1676892034192", "--tz", "UTC", "--color", "never", "-j", "2")
	if err != nil {
		t.Fatalf("Execute() unexpected error: %v", err)
	}

	want := "now\tsemantic\t2023-02-20T11:20:34.192+00:00\t1676892034192\n" +
		"today +1d\tsemantic\t2023-02-21T00:00:00.000+00:00\t1676937600000\n" +
		"1676892034192\ttimestamp\t2023-02-20T11:20:34.192+00:00\t1676892034192\n"
	if stdout != want {
		t.Errorf("Execute() stdout = %q, want %q", stdout, want)
	}
}

func TestExecuteKeywords(t *testing.T) {
	stdout, _, err := execute(t, "", "keywords", "--output", "json")
	if err != nil {
		t.Fatalf("Execute() unexpected error: %v", err)
	}

	var got map[string][]string
	if err := json.Unmarshal([]byte(stdout), &got); err != nil {
		t.Fatalf("Execute() wrote invalid JSON %q: %v", stdout, err)
	}
	for _, k := range []string{"now", "today", "tomorrow", "yesterday", "before-yesterday"} {
		if len(got[k]) == 0 {
			t.Errorf("Execute() keywords missing %q: %v", k, got)
		}
	}
}

func TestExecuteVersion(t *testing.T) {
	stdout, _, err := execute(t, "", "version")
	if err != nil {
		t.Fatalf("Execute() unexpected error: %v", err)
	}
	if want := "semtime dev\n"; stdout != want {
		t.Errorf("Execute() stdout = %q, want %q", stdout, want)
	}
}
