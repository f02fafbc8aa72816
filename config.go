package slgr

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/afero"
)

// Config describes a set of outputs in TOML:
//
//	line_ending = "\r\n"
//
//	[[outputs]]
//	name  = "serial"
//	level = "verbose"
//
//	[[outputs]]
//	name       = "sdcard"
//	level      = "warning"
//	date       = false
//	level_name = true
//
// Output names are resolved to writers by ApplyConfig.
type Config struct {
	LineEnding string         `toml:"line_ending,omitempty"`
	Outputs    []OutputConfig `toml:"outputs"`
}

// OutputConfig holds the settings of one output. Unset toggles default to true.
type OutputConfig struct {
	Name      string `toml:"name"`
	Level     string `toml:"level"`
	Prefix    *bool  `toml:"prefix,omitempty"`
	Date      *bool  `toml:"date,omitempty"`
	LevelName *bool  `toml:"level_name,omitempty"`
	Disabled  bool   `toml:"disabled,omitempty"`
}

var (
	ErrUnknownLevel  = errors.New(_ERROR_MESSAGE_UNKNOWN_LEVEL)
	ErrUnknownOutput = errors.New(_ERROR_MESSAGE_UNKNOWN_OUTPUT)
)

// ParseLogLevel converts a level name (case-insensitive, "warn" and "verb"
// accepted as short forms) or a digit 0..5 to a LogLevel.
func ParseLogLevel(level string) (LogLevel, error) {
	switch strings.ToUpper(strings.TrimSpace(level)) {
	case "SILENT", "0":
		return LVL_SILENT, nil
	case "ERROR", "ERR", "1":
		return LVL_ERROR, nil
	case "WARNING", "WARN", "2":
		return LVL_WARNING, nil
	case "INFO", "INF", "3":
		return LVL_INFO, nil
	case "TRACE", "4":
		return LVL_TRACE, nil
	case "VERBOSE", "VERB", "5":
		return LVL_VERBOSE, nil
	}
	return LVL_SILENT, fmt.Errorf("%w: %q", ErrUnknownLevel, level)
}

// ParseConfig decodes and validates a TOML config. Unknown keys are errors.
func ParseConfig(data []byte) (*Config, error) {
	var cfg Config
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadConfig reads and parses a TOML config file from fs.
func LoadConfig(fs afero.Fs, path string) (*Config, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	return ParseConfig(data)
}

// Validate checks output names are set and unique and levels are known.
func (c *Config) Validate() error {
	names := make(map[string]bool, len(c.Outputs))
	for i, o := range c.Outputs {
		if o.Name == "" {
			return fmt.Errorf("invalid config: output #%d: %s", i+1, _ERROR_MESSAGE_EMPTY_NAME)
		}
		if names[o.Name] {
			return fmt.Errorf("invalid config: %s %q", _ERROR_MESSAGE_DUPLICATE_NAME, o.Name)
		}
		names[o.Name] = true
		if _, err := ParseLogLevel(o.Level); err != nil {
			return fmt.Errorf("invalid config: output %q: %w", o.Name, err)
		}
	}
	return nil
}

// ApplyConfig registers (or edits) every configured output, the writer for
// each output is taken from sinks by name. The config is checked as a whole
// before anything is changed: on error (invalid config, a name without a
// writer, a writer that can't be registered or too many new outputs) the
// registry is left untouched.
func (r *Registry) ApplyConfig(cfg *Config, sinks map[string]OutType) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	for _, o := range cfg.Outputs {
		out := sinks[o.Name]
		if out == nil {
			return fmt.Errorf("%w: %q", ErrUnknownOutput, o.Name)
		}
		if err := checkOutput(out); err != nil {
			return fmt.Errorf("adding output %q: %w", o.Name, err)
		}
	}

	r.sync.regsMtx.Lock()
	defer r.sync.regsMtx.Unlock()
	added := 0
	seen := make(map[OutType]bool, len(cfg.Outputs))
	for _, o := range cfg.Outputs {
		out := sinks[o.Name]
		if !seen[out] && r.getContext(out) == nil {
			added++
		}
		seen[out] = true
	}
	if len(r.outputs)+added > r.maxouts {
		return fmt.Errorf("adding %d outputs: %w", added, ErrRegistryFull)
	}

	if cfg.LineEnding != "" {
		r.eol = []byte(cfg.LineEnding)
	}
	for _, o := range cfg.Outputs {
		out := sinks[o.Name]
		level, _ := ParseLogLevel(o.Level)
		c := r.getContext(out)
		if c == nil {
			c = r.appendContext()
		}
		r.initContext(c, out, level, isTrue(o.Prefix))
		// a new context always starts with date and level name shown
		c.dateOn = isTrue(o.Date)
		c.lvlnameOn = isTrue(o.LevelName)
		c.enabled = !o.Disabled
	}
	r.renumber()
	return nil
}

// isTrue treats unset toggles as true.
func isTrue(b *bool) bool {
	return b == nil || *b
}
