// Package hooks provides conversion lifecycle hook management for regexfilter.
//
// Supports begin, create_declaration, resolve_begin and end events. Handlers
// run synchronously in registration order; a failing handler stops the run.
// HookManager.Convert replays a reflection tree through these events the way
// a documentation generator's converter emits them.
package hooks
