package override

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Override is the external configuration steering normalization. Only the
// ignore filters and the alternative-list switch are consumed here; the
// remaining fields are carried through untouched for the emission backend.
type Override struct {
	IgnoreOperations      []string `yaml:"ignoreOperations"`
	IgnoreRequestHeaders  []string `yaml:"ignoreRequestHeaders"`
	IgnoreResponseHeaders []string `yaml:"ignoreResponseHeaders"`
	// StringPatternsAreAlternativeList reinterprets a "^a|b|c$" string
	// pattern as an enumerated value list instead of a regex.
	StringPatternsAreAlternativeList bool `yaml:"modelStringPatternsAreAlternativeList"`

	// Emitter-only fields, opaque to the normalizer.
	NamingOverrides   map[string]string `yaml:"namingOverrides,omitempty"`
	RequiredOverrides map[string]bool   `yaml:"requiredOverrides,omitempty"`
	DefaultValues     map[string]any    `yaml:"defaultValues,omitempty"`
}

// LoadFile reads an override configuration from a YAML file.
func LoadFile(path string) (*Override, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("override: read %q: %w", path, err)
	}
	var o Override
	if err := yaml.Unmarshal(data, &o); err != nil {
		return nil, fmt.Errorf("override: parse %q: %w", path, err)
	}
	return &o, nil
}

// SkipOperation reports whether the operation/verb pair is suppressed by
// ignoreOperations. Patterns are dot-separated with per-segment wildcards;
// the checked combinations are "op.verb", "*.verb", "op.*" and "*.*".
func (o *Override) SkipOperation(op, verb string) bool {
	if o == nil {
		return false
	}
	return matchAny(o.IgnoreOperations,
		op+"."+verb,
		"*."+verb,
		op+".*",
		"*.*",
	)
}

// SkipRequestHeader reports whether a request header of the operation is
// suppressed by ignoreRequestHeaders, using the same four-combination family
// keyed by (operation, header).
func (o *Override) SkipRequestHeader(op, header string) bool {
	if o == nil {
		return false
	}
	return matchAny(o.IgnoreRequestHeaders,
		op+"."+header,
		"*."+header,
		op+".*",
		"*.*",
	)
}

// SkipResponseHeader reports whether a response header is suppressed by
// ignoreResponseHeaders, keyed by (operation, status code, header). Exactly
// six of the eight wildcard combinations are consulted; "*.code.header" is
// deliberately not among them, preserved for compatibility with existing
// override files.
func (o *Override) SkipResponseHeader(op, code, header string) bool {
	if o == nil {
		return false
	}
	return matchAny(o.IgnoreResponseHeaders,
		"*.*.*",
		"*.*."+header,
		"*."+code+".*",
		op+"."+code+"."+header,
		op+".*."+header,
		op+"."+code+".*",
	)
}

// matchAny reports whether any candidate key appears in patterns. Candidates
// enumerate the wildcard combinations for the caller's arity, so membership
// is a plain string comparison. A pattern that matches nothing is inert.
func matchAny(patterns []string, keys ...string) bool {
	for _, key := range keys {
		for _, p := range patterns {
			if strings.TrimSpace(p) == key {
				return true
			}
		}
	}
	return false
}
