package filter

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/klinki/typedoc-plugin-regex-filter/internal/reflection"
)

// Scope restricts which declaration kinds the filter looks at.
type Scope string

const (
	ScopeAll      Scope = "all"
	ScopeClass    Scope = "class"
	ScopeMethod   Scope = "method"
	ScopeField    Scope = "field"
	ScopeFunction Scope = "function"
)

var scopeKinds = map[Scope][]reflection.Kind{
	ScopeClass:    {reflection.KindClass},
	ScopeMethod:   {reflection.KindMethod, reflection.KindConstructor},
	ScopeField:    {reflection.KindProperty, reflection.KindAccessor},
	ScopeFunction: {reflection.KindFunction},
}

// ParseScope parses one scope name.
func ParseScope(s string) (Scope, error) {
	scope := Scope(strings.ToLower(strings.TrimSpace(s)))
	if scope == ScopeAll {
		return scope, nil
	}
	if _, ok := scopeKinds[scope]; !ok {
		return "", fmt.Errorf("%w: %q", ErrInvalidScope, s)
	}
	return scope, nil
}

// Outcome is what happens to a matching reflection.
type Outcome int

const (
	// OutcomeRemove queues the reflection for removal at resolve begin.
	OutcomeRemove Outcome = iota + 1
	// OutcomePrivate flags the reflection private immediately.
	OutcomePrivate
	// OutcomeLogOnly leaves the reflection untouched.
	OutcomeLogOnly
)

// String returns the metric label of the outcome.
func (o Outcome) String() string {
	switch o {
	case OutcomeRemove:
		return "removed"
	case OutcomePrivate:
		return "private"
	case OutcomeLogOnly:
		return "matched"
	default:
		return fmt.Sprintf("Outcome(%d)", int(o))
	}
}

// operation is the verb used in match log lines.
func (o Outcome) operation() string {
	switch o {
	case OutcomeRemove:
		return "removing"
	case OutcomePrivate:
		return "marking as private"
	default:
		return "matching"
	}
}

// Settings is the resolved, immutable filter configuration.
type Settings struct {
	pattern       string
	re            *regexp.Regexp
	markAsPrivate bool
	exclude       bool
	logMatches    bool
	scopes        []Scope
	kinds         map[reflection.Kind]bool // nil means all kinds
}

// Raw holds uncompiled settings values.
type Raw struct {
	Pattern       string
	MarkAsPrivate bool
	Exclude       bool
	LogMatches    bool
	Scope         []string
}

// Compile validates raw values and compiles the pattern. An empty scope list
// means ScopeAll.
func Compile(raw Raw) (*Settings, error) {
	re, err := regexp.Compile(raw.Pattern)
	if err != nil {
		return nil, &InvalidPatternError{Pattern: raw.Pattern, Err: err}
	}

	s := &Settings{
		pattern:       raw.Pattern,
		re:            re,
		markAsPrivate: raw.MarkAsPrivate,
		exclude:       raw.Exclude,
		logMatches:    raw.LogMatches,
	}

	all := len(raw.Scope) == 0
	kinds := make(map[reflection.Kind]bool)
	for _, name := range raw.Scope {
		scope, err := ParseScope(name)
		if err != nil {
			return nil, err
		}
		s.scopes = append(s.scopes, scope)
		if scope == ScopeAll {
			all = true
			continue
		}
		for _, k := range scopeKinds[scope] {
			kinds[k] = true
		}
	}
	if len(s.scopes) == 0 {
		s.scopes = []Scope{ScopeAll}
	}
	if !all {
		s.kinds = kinds
	}
	return s, nil
}

func (s *Settings) Pattern() string     { return s.pattern }
func (s *Settings) MarkAsPrivate() bool { return s.markAsPrivate }
func (s *Settings) Exclude() bool       { return s.exclude }
func (s *Settings) LogMatches() bool    { return s.logMatches }

// Scopes returns a copy of the configured scopes.
func (s *Settings) Scopes() []Scope {
	out := make([]Scope, len(s.scopes))
	copy(out, s.scopes)
	return out
}

// Match reports whether the pattern matches anywhere in name. Anchors in the
// pattern are honored; none are added.
func (s *Settings) Match(name string) bool {
	return s.re.MatchString(name)
}

// InScope reports whether reflections of kind are filtered.
func (s *Settings) InScope(kind reflection.Kind) bool {
	return s.kinds == nil || s.kinds[kind]
}

// Outcome returns the action for a match. Exclude takes precedence over
// mark-as-private.
func (s *Settings) Outcome() Outcome {
	switch {
	case s.exclude:
		return OutcomeRemove
	case s.markAsPrivate:
		return OutcomePrivate
	default:
		return OutcomeLogOnly
	}
}
