package preset

import (
	"errors"
	"fmt"
	"strings"

	"github.com/dshills/gitfluff/internal/lint"
)

// ErrUnknownPreset is returned by Resolve for names no preset answers to.
var ErrUnknownPreset = errors.New("unknown preset")

// Default is used when no layer names a preset.
const Default = "conventional"

// ConventionalPattern requires a non-empty type so that a bare ": text"
// header is reported as a mismatch.
const ConventionalPattern = `^(?P<type>\w+)(\((?P<scope>.*)\))?(?P<breaking>!)?: (?P<description>.+)$`

const simplePattern = `^[A-Za-z][^\n]+$`

// Preset is a named bundle of header pattern and body policy.
type Preset struct {
	Name        string
	Aliases     []string
	Pattern     string
	Description string
	BodyPolicy  lint.BodyPolicy
	EnforceSpec bool
}

var presets = []Preset{
	{
		Name:        "conventional",
		Aliases:     []string{"default"},
		Pattern:     ConventionalPattern,
		Description: "Conventional Commits header (AI signatures are cleaned automatically)",
		BodyPolicy:  lint.BodyAny,
		EnforceSpec: true,
	},
	{
		Name:        "conventional-body",
		Aliases:     []string{"conventional_detailed", "conventional-with-body"},
		Pattern:     ConventionalPattern,
		Description: "Conventional Commits header with a required body section",
		BodyPolicy:  lint.BodyRequire,
		EnforceSpec: true,
	},
	{
		Name:        "simple",
		Aliases:     []string{"simple-single-line"},
		Pattern:     simplePattern,
		Description: "Single-line summary starting with a letter",
		BodyPolicy:  lint.BodySingleLine,
		EnforceSpec: false,
	},
}

// Resolve looks up a preset by canonical name or alias, ignoring case.
func Resolve(name string) (Preset, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	for _, p := range presets {
		if p.Name == key {
			return p, nil
		}
		for _, alias := range p.Aliases {
			if alias == key {
				return p, nil
			}
		}
	}
	return Preset{}, fmt.Errorf("%w `%s`", ErrUnknownPreset, name)
}

// Names returns the canonical preset names in display order.
func Names() []string {
	names := make([]string, len(presets))
	for i, p := range presets {
		names[i] = p.Name
	}
	return names
}

// All returns a copy of every preset in display order.
func All() []Preset {
	out := make([]Preset, len(presets))
	copy(out, presets)
	return out
}
