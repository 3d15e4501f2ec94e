package filter

import (
	"fmt"
	"sync"
)

// OptionStore is the read side of the host option store.
type OptionStore interface {
	String(name string) (string, error)
	Bool(name string) (bool, error)
	Strings(name string) ([]string, error)
}

// Resolver reads filter settings from an option store once and memoizes them.
type Resolver struct {
	store OptionStore

	mu       sync.Mutex
	settings *Settings
}

// NewResolver creates a resolver over store.
func NewResolver(store OptionStore) *Resolver {
	return &Resolver{store: store}
}

// Resolve returns the memoized settings, reading the store on first use.
// Every call until Reset returns the same pointer. Failures are not cached.
func (r *Resolver) Resolve() (*Settings, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.settings != nil {
		return r.settings, nil
	}

	raw, err := r.read()
	if err != nil {
		return nil, err
	}
	s, err := Compile(raw)
	if err != nil {
		return nil, err
	}
	r.settings = s
	return s, nil
}

// Reset drops the memoized settings so the next Resolve re-reads the store.
func (r *Resolver) Reset() {
	r.mu.Lock()
	r.settings = nil
	r.mu.Unlock()
}

func (r *Resolver) read() (Raw, error) {
	var raw Raw
	var err error

	if raw.Pattern, err = r.store.String(OptionRegex); err != nil {
		return raw, fmt.Errorf("read %s: %w", OptionRegex, err)
	}
	if raw.Exclude, err = r.store.Bool(OptionExclude); err != nil {
		return raw, fmt.Errorf("read %s: %w", OptionExclude, err)
	}
	if raw.MarkAsPrivate, err = r.store.Bool(OptionMarkAsPrivate); err != nil {
		return raw, fmt.Errorf("read %s: %w", OptionMarkAsPrivate, err)
	}
	if raw.LogMatches, err = r.store.Bool(OptionLogMatches); err != nil {
		return raw, fmt.Errorf("read %s: %w", OptionLogMatches, err)
	}
	if raw.Scope, err = r.store.Strings(OptionScope); err != nil {
		return raw, fmt.Errorf("read %s: %w", OptionScope, err)
	}
	return raw, nil
}
