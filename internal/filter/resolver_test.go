package filter

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/klinki/typedoc-plugin-regex-filter/internal/config"
)

// countingStore counts every option read.
type countingStore struct {
	values map[string]any
	fail   map[string]error
	reads  int
}

func newCountingStore() *countingStore {
	return &countingStore{
		values: map[string]any{
			OptionRegex:         DefaultPattern,
			OptionExclude:       false,
			OptionMarkAsPrivate: true,
			OptionLogMatches:    true,
			OptionScope:         []string{"all"},
		},
		fail: map[string]error{},
	}
}

func (s *countingStore) String(name string) (string, error) {
	s.reads++
	if err := s.fail[name]; err != nil {
		return "", err
	}
	return s.values[name].(string), nil
}

func (s *countingStore) Bool(name string) (bool, error) {
	s.reads++
	if err := s.fail[name]; err != nil {
		return false, err
	}
	return s.values[name].(bool), nil
}

func (s *countingStore) Strings(name string) ([]string, error) {
	s.reads++
	if err := s.fail[name]; err != nil {
		return nil, err
	}
	return s.values[name].([]string), nil
}

func TestResolver_ReadsStoreOnce(t *testing.T) {
	store := newCountingStore()
	r := NewResolver(store)

	first, err := r.Resolve()
	require.NoError(t, err)
	assert.Equal(t, 5, store.reads)

	second, err := r.Resolve()
	require.NoError(t, err)
	assert.Same(t, first, second)
	assert.Equal(t, 5, store.reads, "memoized settings must not re-read the store")

	assert.Equal(t, DefaultPattern, first.Pattern())
	assert.True(t, first.MarkAsPrivate())
	assert.False(t, first.Exclude())
	assert.True(t, first.LogMatches())
	assert.Equal(t, []Scope{ScopeAll}, first.Scopes())
}

func TestResolver_ResetRereadsStore(t *testing.T) {
	store := newCountingStore()
	r := NewResolver(store)

	first, err := r.Resolve()
	require.NoError(t, err)

	store.values[OptionRegex] = "^temp"
	stale, err := r.Resolve()
	require.NoError(t, err)
	assert.Equal(t, DefaultPattern, stale.Pattern(), "store changes are invisible until Reset")

	r.Reset()
	fresh, err := r.Resolve()
	require.NoError(t, err)
	assert.NotSame(t, first, fresh)
	assert.Equal(t, "^temp", fresh.Pattern())
	assert.Equal(t, 10, store.reads)
}

func TestResolver_InvalidPattern(t *testing.T) {
	store := newCountingStore()
	store.values[OptionRegex] = "(unclosed"
	r := NewResolver(store)

	_, err := r.Resolve()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidPattern)

	var perr *InvalidPatternError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, "(unclosed", perr.Pattern)
	assert.Contains(t, err.Error(), `"(unclosed"`)

	// Failures are not cached.
	store.values[OptionRegex] = "^ok"
	s, err := r.Resolve()
	require.NoError(t, err)
	assert.Equal(t, "^ok", s.Pattern())
}

func TestResolver_InvalidScope(t *testing.T) {
	store := newCountingStore()
	store.values[OptionScope] = []string{"method", "module"}

	_, err := NewResolver(store).Resolve()
	assert.ErrorIs(t, err, ErrInvalidScope)
}

func TestResolver_StoreErrorNamesOption(t *testing.T) {
	store := newCountingStore()
	boom := errors.New("store offline")
	store.fail[OptionLogMatches] = boom

	_, err := NewResolver(store).Resolve()
	require.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), OptionLogMatches)
}

func TestResolver_WithConfigOptions(t *testing.T) {
	opts := config.NewOptions()
	require.NoError(t, DeclareOptions(opts))
	require.NoError(t, opts.Set(OptionExclude, true))
	require.NoError(t, opts.Set(OptionScope, "method,field"))

	s, err := NewResolver(opts).Resolve()
	require.NoError(t, err)
	assert.Equal(t, DefaultPattern, s.Pattern())
	assert.True(t, s.Exclude())
	assert.True(t, s.LogMatches())
	assert.Equal(t, []Scope{ScopeMethod, ScopeField}, s.Scopes())
}

func TestDeclareOptions(t *testing.T) {
	opts := config.NewOptions()
	require.NoError(t, DeclareOptions(opts))

	var names []string
	for _, d := range opts.Declarations() {
		names = append(names, d.Name)
	}
	assert.Equal(t, []string{OptionRegex, OptionScope, OptionMarkAsPrivate, OptionExclude, OptionLogMatches}, names)

	err := DeclareOptions(opts)
	require.ErrorIs(t, err, config.ErrDuplicateOption)
	assert.Contains(t, err.Error(), OptionRegex)
}
