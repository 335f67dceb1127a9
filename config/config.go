// Package config loads compiler settings from a TOML file.
package config

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/naoina/toml"

	"github.com/sergev/plc/compiler"
	"github.com/sergev/plc/generator"
	"github.com/sergev/plc/lang"
)

// Keys are snake_case versions of the field names; unknown keys are errors.
var tomlSettings = toml.Config{
	NormFieldName: toml.DefaultConfig.NormFieldName,
	FieldToKey:    toml.DefaultConfig.FieldToKey,
	MissingField: func(rt reflect.Type, field string) error {
		return fmt.Errorf("field '%s' is not defined in %s", field, rt.String())
	},
}

// Config holds every setting of the command.
type Config struct {
	Color     bool
	Generator GeneratorConfig
	REPL      REPLConfig `toml:"repl"`
}

// GeneratorConfig shapes the emitted Java.
type GeneratorConfig struct {
	ClassName string
	Indent    int
}

// REPLConfig controls the interactive prompt.
type REPLConfig struct {
	Prompt       string
	Continuation string
	History      string // empty disables history
}

// Default returns the built-in settings.
func Default() Config {
	gen := generator.DefaultOptions()
	return Config{
		Color: true,
		Generator: GeneratorConfig{
			ClassName: gen.ClassName,
			Indent:    gen.Indent,
		},
		REPL: REPLConfig{
			Prompt:       "plc> ",
			Continuation: ".... ",
			History:      "~/.plc_history",
		},
	}
}

// Load reads the file at path over the defaults.
func Load(path string) (Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return Config{}, fmt.Errorf("load config: %w", err)
	}
	defer f.Close()

	cfg, err := LoadReader(bufio.NewReader(f))
	// Add file name to errors that have a line number.
	var lineErr *toml.LineError
	if errors.As(err, &lineErr) {
		err = errors.New(path + ", " + err.Error())
	}
	return cfg, err
}

// LoadReader decodes settings from r over the defaults.
func LoadReader(r io.Reader) (Config, error) {
	cfg := Default()
	if err := tomlSettings.NewDecoder(r).Decode(&cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects settings that would produce invalid Java.
func (c Config) Validate() error {
	if !isJavaIdentifier(c.Generator.ClassName) {
		return fmt.Errorf("generator.class_name %q is not a Java identifier", c.Generator.ClassName)
	}
	if c.Generator.Indent < 0 {
		return fmt.Errorf("generator.indent must not be negative, got %d", c.Generator.Indent)
	}
	return nil
}

// Write encodes c as TOML.
func (c Config) Write(w io.Writer) error {
	out, err := tomlSettings.Marshal(&c)
	if err != nil {
		return err
	}
	_, err = w.Write(out)
	return err
}

// CompilerOptions returns the options for a compilation with these
// settings and the standard library.
func (c Config) CompilerOptions() compiler.Options {
	return compiler.Options{
		Generator: generator.Options{
			ClassName: c.Generator.ClassName,
			Indent:    c.Generator.Indent,
		},
	}
}

// HistoryPath expands a leading ~ in the history setting. It returns ""
// when history is disabled or the home directory is unknown.
func (c Config) HistoryPath() string {
	path := c.REPL.History
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil || home == "" {
			return ""
		}
		path = filepath.Join(home, path[1:])
	}
	return path
}

// restrictedTypeNames cannot name a class even though they are not keywords.
var restrictedTypeNames = map[string]bool{"var": true, "yield": true, "record": true, "permits": true, "sealed": true}

func isJavaIdentifier(name string) bool {
	if name == "" || lang.IsJavaReserved(name) || restrictedTypeNames[name] {
		return false
	}
	for i, r := range name {
		switch {
		case r == '_' || r == '$':
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		case r >= '0' && r <= '9' && i > 0:
		default:
			return false
		}
	}
	return true
}
