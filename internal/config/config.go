package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// FileNames are the configuration files looked for in each directory,
// in priority order.
var FileNames = []string{".gitfluff.toml", ".fluff.toml", ".gitfluff.yaml", ".gitfluff.yml"}

// File is the on-disk configuration schema. Pointer fields distinguish an
// unset key from an explicit false.
type File struct {
	Preset  *string `toml:"preset,omitempty" yaml:"preset,omitempty"`
	Write   *bool   `toml:"write,omitempty" yaml:"write,omitempty"`
	Autofix *bool   `toml:"autofix,omitempty" yaml:"autofix,omitempty"`
	Rules   Rules   `toml:"rules" yaml:"rules"`
}

// Rules is the [rules] table.
type Rules struct {
	Message              *MessageRule  `toml:"message,omitempty" yaml:"message,omitempty"`
	Excludes             []ExcludeRule `toml:"excludes,omitempty" yaml:"excludes,omitempty"`
	Cleanup              []CleanupRule `toml:"cleanup,omitempty" yaml:"cleanup,omitempty"`
	SingleLine           *bool         `toml:"single_line,omitempty" yaml:"single_line,omitempty"`
	RequireBody          *bool         `toml:"require_body,omitempty" yaml:"require_body,omitempty"`
	ExitNonzeroOnRewrite *bool         `toml:"exit_nonzero_on_rewrite,omitempty" yaml:"exit_nonzero_on_rewrite,omitempty"`
	SeparationSeverity   *string       `toml:"separation_severity,omitempty" yaml:"separation_severity,omitempty"`
	BlockSecrets         *bool         `toml:"block_secrets,omitempty" yaml:"block_secrets,omitempty"`
	AIAttribution        *bool         `toml:"ai_attribution,omitempty" yaml:"ai_attribution,omitempty"`
}

// MessageRule replaces the preset header pattern.
type MessageRule struct {
	Pattern     string `toml:"pattern" yaml:"pattern" json:"pattern"`
	Description string `toml:"description,omitempty" yaml:"description,omitempty" json:"description,omitempty"`
}

// ExcludeRule is a pattern that must not appear in a message.
type ExcludeRule struct {
	Pattern string `toml:"pattern" yaml:"pattern" json:"pattern"`
	Message string `toml:"message,omitempty" yaml:"message,omitempty" json:"message,omitempty"`
}

// CleanupRule is a find/replace rewrite.
type CleanupRule struct {
	Find        string `toml:"find" yaml:"find" json:"find"`
	Replace     string `toml:"replace" yaml:"replace" json:"replace"`
	Description string `toml:"description,omitempty" yaml:"description,omitempty" json:"description,omitempty"`
}

// Loader discovers and decodes configuration files.
type Loader struct {
	log *logrus.Logger
}

// NewLoader returns a Loader that reports discovery details to log.
func NewLoader(log *logrus.Logger) *Loader {
	if log == nil {
		log = logrus.New()
	}
	return &Loader{log: log}
}

// Find walks from start up to the filesystem root and returns the first
// configuration file found, nearest directory first.
func (l *Loader) Find(start string) (string, bool) {
	dir, err := filepath.Abs(start)
	if err != nil {
		l.log.Debugf("cannot resolve %s: %v", start, err)
		return "", false
	}
	for {
		for _, name := range FileNames {
			candidate := filepath.Join(dir, name)
			if info, err := os.Stat(candidate); err == nil && info.Mode().IsRegular() {
				return candidate, true
			}
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false
		}
		dir = parent
	}
}

// Load reads the configuration at explicit, or the one discovered from
// start when explicit is empty. A nil File and empty path mean no
// configuration was found.
func (l *Loader) Load(explicit, start string) (*File, string, error) {
	path := explicit
	if path == "" {
		found, ok := l.Find(start)
		if !ok {
			l.log.Debugf("no configuration file found above %s", start)
			return nil, "", nil
		}
		path = found
	}

	f, err := ReadFile(path)
	if err != nil {
		return nil, "", err
	}
	l.log.Debugf("using configuration %s", path)
	return f, path, nil
}

// ReadFile decodes a configuration file. YAML is selected by the .yaml and
// .yml extensions; anything else is read as TOML.
func ReadFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config at %s: %w", path, err)
	}

	var f File
	if isYAML(path) {
		err = yaml.Unmarshal(data, &f)
	} else {
		err = toml.Unmarshal(data, &f)
	}
	if err != nil {
		return nil, fmt.Errorf("invalid config at %s: %w", path, err)
	}
	return &f, nil
}

// Save encodes f in the format implied by path.
func Save(path string, f *File) error {
	var (
		data []byte
		err  error
	)
	if isYAML(path) {
		data, err = yaml.Marshal(f)
	} else {
		var buf bytes.Buffer
		enc := toml.NewEncoder(&buf)
		enc.SetIndentTables(true)
		err = enc.Encode(f)
		data = buf.Bytes()
	}
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

func isYAML(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".yaml" || ext == ".yml"
}

// Layer converts the file into a merge layer.
func (f *File) Layer(name string) Layer {
	l := Layer{
		Name:                 name,
		Preset:               f.Preset,
		Write:                f.Write,
		Autofix:              f.Autofix,
		Excludes:             f.Rules.Excludes,
		Cleanups:             f.Rules.Cleanup,
		SingleLine:           f.Rules.SingleLine,
		RequireBody:          f.Rules.RequireBody,
		ExitNonzeroOnRewrite: f.Rules.ExitNonzeroOnRewrite,
		SeparationSeverity:   f.Rules.SeparationSeverity,
		BlockSecrets:         f.Rules.BlockSecrets,
		AIAttribution:        f.Rules.AIAttribution,
	}
	if m := f.Rules.Message; m != nil {
		if m.Pattern != "" {
			l.MessagePattern = &m.Pattern
		}
		if m.Description != "" {
			l.MessageDescription = &m.Description
		}
	}
	return l
}

// EnvLayer reads GITFLUFF_PRESET, GITFLUFF_WRITE, GITFLUFF_AUTOFIX and
// GITFLUFF_SEPARATION_SEVERITY. Unparseable booleans are ignored.
func (l *Loader) EnvLayer() Layer {
	layer := Layer{Name: "environment"}
	if v := os.Getenv("GITFLUFF_PRESET"); v != "" {
		layer.Preset = &v
	}
	layer.Write = l.envBool("GITFLUFF_WRITE")
	layer.Autofix = l.envBool("GITFLUFF_AUTOFIX")
	if v := os.Getenv("GITFLUFF_SEPARATION_SEVERITY"); v != "" {
		layer.SeparationSeverity = &v
	}
	return layer
}

func (l *Loader) envBool(key string) *bool {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		l.log.Warnf("ignoring %s=%q: not a boolean", key, v)
		return nil
	}
	return &b
}

// ErrUnknownKey is returned by SetField for keys it does not manage.
var ErrUnknownKey = errors.New("unknown config key")

// SetField sets a single scalar key, addressed as in the file
// (e.g. "rules.require_body").
func SetField(f *File, key, value string) error {
	switch key {
	case "preset":
		f.Preset = &value
		return nil
	case "rules.separation_severity":
		if _, err := ParseSeverity(value); err != nil {
			return err
		}
		f.Rules.SeparationSeverity = &value
		return nil
	}

	var dst **bool
	switch key {
	case "write":
		dst = &f.Write
	case "autofix":
		dst = &f.Autofix
	case "rules.single_line":
		dst = &f.Rules.SingleLine
	case "rules.require_body":
		dst = &f.Rules.RequireBody
	case "rules.exit_nonzero_on_rewrite":
		dst = &f.Rules.ExitNonzeroOnRewrite
	case "rules.block_secrets":
		dst = &f.Rules.BlockSecrets
	case "rules.ai_attribution":
		dst = &f.Rules.AIAttribution
	default:
		return fmt.Errorf("%w: %s", ErrUnknownKey, key)
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		return fmt.Errorf("%s must be true or false: %w", key, err)
	}
	*dst = &b
	return nil
}
