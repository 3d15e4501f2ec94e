// Package filter hides or removes reflections whose names match a regular
// expression.
//
// A Resolver reads the removeRegex* options once and caches the compiled
// Settings. A Plugin registers with the conversion hooks:
//
//	opts := config.NewOptions()
//	if err := filter.DeclareOptions(opts); err != nil {
//	    return err
//	}
//	plugin := filter.New(filter.NewResolver(opts), logger)
//	plugin.Register(hm)
//	_, err := hm.Convert(ctx, project)
//
// On every created declaration in scope, the name is tested with partial
// match semantics (the pattern may match anywhere; use ^ and $ to anchor).
// A match is then, in order of precedence:
//
//   - queued for removal when removeRegexExclude is set, and removed from
//     the project when resolution begins;
//   - flagged private immediately when removeRegexMarkAsPrivate is set;
//   - otherwise only logged.
//
// Each queued reflection is removed once even if it was reported twice.
package filter
