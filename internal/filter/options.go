package filter

import (
	"fmt"

	"github.com/klinki/typedoc-plugin-regex-filter/internal/config"
)

// Option names registered with the host option store.
const (
	OptionRegex         = "removeRegex"
	OptionMarkAsPrivate = "removeRegexMarkAsPrivate"
	OptionExclude       = "removeRegexExclude"
	OptionLogMatches    = "removeRegexLogMatches"
	OptionScope         = "removeRegexScope"
)

// DefaultPattern matches names with a leading underscore.
const DefaultPattern = "^_(.*)"

// Declarer accepts option declarations.
type Declarer interface {
	AddDeclaration(d config.Declaration) error
}

// Declarations returns the filter's option declarations in registration order.
func Declarations() []config.Declaration {
	return []config.Declaration{
		{
			Name:         OptionRegex,
			Help:         "Regular expression used to match reflection names. Default ^_(.*)",
			Type:         config.ParameterString,
			DefaultValue: DefaultPattern,
		},
		{
			Name:         OptionScope,
			Help:         "Filtering scope (all, class, method, field, function). Default all",
			Type:         config.ParameterArray,
			DefaultValue: []string{string(ScopeAll)},
		},
		{
			Name:         OptionMarkAsPrivate,
			Help:         "Mark matching reflections as private",
			Type:         config.ParameterBoolean,
			DefaultValue: true,
		},
		{
			Name:         OptionExclude,
			Help:         "Exclude matching reflections. Mutually exclusive with --removeRegexMarkAsPrivate",
			Type:         config.ParameterBoolean,
			DefaultValue: false,
		},
		{
			Name:         OptionLogMatches,
			Help:         "Log matches",
			Type:         config.ParameterBoolean,
			DefaultValue: true,
		},
	}
}

// DeclareOptions registers every filter option with d.
func DeclareOptions(d Declarer) error {
	for _, decl := range Declarations() {
		if err := d.AddDeclaration(decl); err != nil {
			return fmt.Errorf("declare %s: %w", decl.Name, err)
		}
	}
	return nil
}
