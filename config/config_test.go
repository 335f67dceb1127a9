package config

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestLoadReaderOverridesDefaults(t *testing.T) {
	cfg, err := LoadReader(strings.NewReader(`
color = false

[generator]
class_name = "Program"

[repl]
prompt = "> "
history = ""
`))
	if err != nil {
		t.Fatalf("LoadReader returned error: %v", err)
	}
	want := Default()
	want.Color = false
	want.Generator.ClassName = "Program"
	want.REPL.Prompt = "> "
	want.REPL.History = ""
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Fatalf("config mismatch (-want +got):\n%s", diff)
	}
	if cfg.HistoryPath() != "" {
		t.Fatalf("empty history setting should disable history, got %q", cfg.HistoryPath())
	}
}

func TestLoadReaderEmpty(t *testing.T) {
	cfg, err := LoadReader(strings.NewReader(""))
	if err != nil {
		t.Fatalf("LoadReader returned error: %v", err)
	}
	if diff := cmp.Diff(Default(), cfg); diff != "" {
		t.Fatalf("empty file should yield defaults (-want +got):\n%s", diff)
	}
}

func TestLoadReaderErrors(t *testing.T) {
	cases := []struct {
		name string
		src  string
		want string
	}{
		{"UnknownKey", "colour = true\n", "not defined"},
		{"BadClassName", "[generator]\nclass_name = \"9lives\"\n", "not a Java identifier"},
		{"EmptyClassName", "[generator]\nclass_name = \"\"\n", "not a Java identifier"},
		{"KeywordClassName", "[generator]\nclass_name = \"class\"\n", "not a Java identifier"},
		{"RestrictedClassName", "[generator]\nclass_name = \"var\"\n", "not a Java identifier"},
		{"SystemClassName", "[generator]\nclass_name = \"System\"\n", "not a Java identifier"},
		{"NegativeIndent", "[generator]\nindent = -1\n", "must not be negative"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := LoadReader(strings.NewReader(c.src))
			if err == nil || !strings.Contains(err.Error(), c.want) {
				t.Fatalf("expected error containing %q, got %v", c.want, err)
			}
		})
	}
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "plc.toml")
	if err := os.WriteFile(path, []byte("[generator]\nindent = 2\n"), 0o600); err != nil {
		t.Fatalf("write file: %v", err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Generator.Indent != 2 || cfg.Generator.ClassName != "Main" {
		t.Fatalf("unexpected generator settings: %+v", cfg.Generator)
	}
	opts := cfg.CompilerOptions()
	if opts.Generator.Indent != 2 || opts.Generator.ClassName != "Main" || opts.Library != nil {
		t.Fatalf("unexpected compiler options: %+v", opts)
	}

	if _, err := Load(filepath.Join(dir, "missing.toml")); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected not-exist error, got %v", err)
	}
}

func TestWriteRoundTrip(t *testing.T) {
	cfg := Default()
	cfg.Generator.Indent = 8
	cfg.REPL.Continuation = "... "

	var buf bytes.Buffer
	if err := cfg.Write(&buf); err != nil {
		t.Fatalf("Write returned error: %v", err)
	}
	if !strings.Contains(buf.String(), "class_name") {
		t.Fatalf("expected snake_case keys, got:\n%s", buf.String())
	}
	got, err := LoadReader(&buf)
	if err != nil {
		t.Fatalf("LoadReader returned error: %v\n%s", err, buf.String())
	}
	if diff := cmp.Diff(cfg, got); diff != "" {
		t.Fatalf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestHistoryPath(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skipf("no home directory: %v", err)
	}
	cfg := Default()
	if got, want := cfg.HistoryPath(), filepath.Join(home, ".plc_history"); got != want {
		t.Fatalf("HistoryPath() = %q, want %q", got, want)
	}
	cfg.REPL.History = "/tmp/plc.hist"
	if got := cfg.HistoryPath(); got != "/tmp/plc.hist" {
		t.Fatalf("absolute history path changed: %q", got)
	}
}
