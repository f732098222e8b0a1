package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/dshills/gitfluff/internal/builtin"
	"github.com/dshills/gitfluff/internal/lint"
	"github.com/dshills/gitfluff/internal/preset"
)

// ErrConflictingPolicy is returned when one layer enables both body
// policies.
var ErrConflictingPolicy = errors.New("configuration cannot enable both `single_line` and `require_body` rules")

// Layer is one configuration source. Nil fields leave the value from lower
// layers untouched; rule lists accumulate.
type Layer struct {
	Name string

	Preset             *string
	Write              *bool
	Autofix            *bool
	MessagePattern     *string
	MessageDescription *string
	Excludes           []ExcludeRule
	Cleanups           []CleanupRule

	SingleLine           *bool
	RequireBody          *bool
	ExitNonzeroOnRewrite *bool
	SeparationSeverity   *string
	BlockSecrets         *bool
	AIAttribution        *bool
}

// Settings is the merged, uncompiled configuration.
type Settings struct {
	Preset               string          `json:"preset"`
	MessagePattern       string          `json:"messagePattern,omitempty"`
	MessageDescription   string          `json:"messageDescription,omitempty"`
	BodyPolicy           lint.BodyPolicy `json:"bodyPolicy"`
	EnforceSpec          bool            `json:"enforceSpec"`
	Autofix              bool            `json:"autofix"`
	SeparationSeverity   lint.Severity   `json:"separationSeverity"`
	Write                bool            `json:"write"`
	ExitNonzeroOnRewrite bool            `json:"exitNonzeroOnRewrite"`
	BlockSecrets         bool            `json:"blockSecrets"`
	AIAttribution        bool            `json:"aiAttribution"`
	Excludes             []ExcludeRule   `json:"excludes"`
	Cleanups             []CleanupRule   `json:"cleanups"`
	Sources              []string        `json:"sources"`
}

// Resolve merges layers, lowest precedence first, on top of the selected
// preset. The preset is named by the highest layer that names one. The
// built-in rule tables are appended after every user rule.
func Resolve(layers ...Layer) (Settings, error) {
	name := preset.Default
	for _, l := range layers {
		if l.Preset != nil && strings.TrimSpace(*l.Preset) != "" {
			name = *l.Preset
		}
	}
	p, err := preset.Resolve(name)
	if err != nil {
		return Settings{}, err
	}

	s := Settings{
		Preset:             p.Name,
		MessagePattern:     p.Pattern,
		MessageDescription: p.Description,
		BodyPolicy:         p.BodyPolicy,
		EnforceSpec:        p.EnforceSpec,
		BlockSecrets:       true,
		AIAttribution:      true,
		Sources:            []string{"preset " + p.Name},
	}

	for _, l := range layers {
		if err := s.apply(l); err != nil {
			return Settings{}, fmt.Errorf("%s: %w", l.Name, err)
		}
		s.Sources = append(s.Sources, l.Name)
	}

	if s.AIAttribution {
		for _, e := range builtin.AIExcludes() {
			s.Excludes = append(s.Excludes, ExcludeRule{Pattern: e.Pattern, Message: e.Message})
		}
		for _, c := range builtin.AICleanups() {
			s.Cleanups = append(s.Cleanups, CleanupRule{Find: c.Find, Replace: c.Replace, Description: c.Description})
		}
	}
	if s.BlockSecrets {
		for _, e := range builtin.SecretExcludes() {
			s.Excludes = append(s.Excludes, ExcludeRule{Pattern: e.Pattern, Message: e.Message})
		}
	}
	return s, nil
}

func (s *Settings) apply(l Layer) error {
	if l.MessagePattern != nil {
		s.MessagePattern = *l.MessagePattern
		s.MessageDescription = ""
		if l.MessageDescription != nil {
			s.MessageDescription = *l.MessageDescription
		}
		s.EnforceSpec = false
	} else if l.MessageDescription != nil && s.MessagePattern != "" {
		s.MessageDescription = *l.MessageDescription
	}

	policy, err := bodyPolicy(s.BodyPolicy, l)
	if err != nil {
		return err
	}
	s.BodyPolicy = policy

	if l.SeparationSeverity != nil {
		sev, err := ParseSeverity(*l.SeparationSeverity)
		if err != nil {
			return err
		}
		s.SeparationSeverity = sev
	}

	setBool(&s.Write, l.Write)
	setBool(&s.Autofix, l.Autofix)
	setBool(&s.ExitNonzeroOnRewrite, l.ExitNonzeroOnRewrite)
	setBool(&s.BlockSecrets, l.BlockSecrets)
	setBool(&s.AIAttribution, l.AIAttribution)

	s.Excludes = append(s.Excludes, l.Excludes...)
	s.Cleanups = append(s.Cleanups, l.Cleanups...)
	return nil
}

// bodyPolicy applies one layer's single_line/require_body keys. An explicit
// false only clears the policy it names.
func bodyPolicy(current lint.BodyPolicy, l Layer) (lint.BodyPolicy, error) {
	single := l.SingleLine != nil && *l.SingleLine
	require := l.RequireBody != nil && *l.RequireBody

	switch {
	case single && require:
		return current, ErrConflictingPolicy
	case single:
		return lint.BodySingleLine, nil
	case require:
		return lint.BodyRequire, nil
	}

	if l.SingleLine != nil && current == lint.BodySingleLine {
		return lint.BodyAny, nil
	}
	if l.RequireBody != nil && current == lint.BodyRequire {
		return lint.BodyAny, nil
	}
	return current, nil
}

func setBool(dst *bool, v *bool) {
	if v != nil {
		*dst = *v
	}
}

// ParseSeverity accepts "warning"/"warn" and "error"/"violation".
func ParseSeverity(s string) (lint.Severity, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "warning", "warn":
		return lint.SeverityWarning, nil
	case "error", "violation":
		return lint.SeverityViolation, nil
	default:
		return lint.SeverityWarning, fmt.Errorf("separation severity must be warning or error (got `%s`)", s)
	}
}

// Options compiles every pattern in s. The first invalid pattern aborts
// with a *lint.PatternError naming it.
func (s Settings) Options(c *lint.Compiler) (*lint.Options, error) {
	if c == nil {
		c = lint.NewCompiler(0)
	}

	opts := &lint.Options{
		BodyPolicy:         s.BodyPolicy,
		EnforceSpec:        s.EnforceSpec,
		Autofix:            s.Autofix,
		SeparationSeverity: s.SeparationSeverity,
	}

	if s.MessagePattern != "" {
		header, err := c.Header(s.MessagePattern, s.MessageDescription)
		if err != nil {
			return nil, err
		}
		opts.Header = header
	}
	for _, e := range s.Excludes {
		rule, err := c.Exclude(e.Pattern, e.Message)
		if err != nil {
			return nil, err
		}
		opts.Excludes = append(opts.Excludes, rule)
	}
	for _, cl := range s.Cleanups {
		rule, err := c.Cleanup(cl.Find, cl.Replace, cl.Description)
		if err != nil {
			return nil, err
		}
		opts.Cleanups = append(opts.Cleanups, rule)
	}
	return opts, nil
}
