package hooks

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/klinki/typedoc-plugin-regex-filter/internal/logging"
	"github.com/klinki/typedoc-plugin-regex-filter/internal/reflection"
)

func TestNewHookManager(t *testing.T) {
	hm := NewHookManager()
	if hm == nil {
		t.Fatal("NewHookManager returned nil")
	}
}

func TestRegisterHandler(t *testing.T) {
	ctx := context.Background()
	hm := NewHookManager()
	called := false
	handler := func(ctx context.Context, ev *Event) error {
		called = true
		return nil
	}
	hm.RegisterHandler(HookBegin, handler)
	err := hm.Execute(ctx, &Event{Type: HookBegin})
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	if !called {
		t.Error("Handler was not called")
	}
	assert.Equal(t, 1, hm.Handlers(HookBegin))
	assert.Equal(t, 0, hm.Handlers(HookEnd))
}

func TestExecuteHook_NoHandler(t *testing.T) {
	ctx := context.Background()
	hm := NewHookManager()
	err := hm.Execute(ctx, &Event{Type: HookResolveBegin})
	if err != nil {
		t.Fatalf("Execute failed with no handler: %v", err)
	}
}

func TestExecuteHook_StopsAtFirstError(t *testing.T) {
	hm := NewHookManager()
	boom := errors.New("boom")
	var calls []string

	hm.RegisterHandler(HookEnd, func(ctx context.Context, ev *Event) error {
		calls = append(calls, "first")
		return boom
	})
	hm.RegisterHandler(HookEnd, func(ctx context.Context, ev *Event) error {
		calls = append(calls, "second")
		return nil
	})

	err := hm.Execute(context.Background(), &Event{Type: HookEnd})
	require.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "hook end failed")
	assert.Equal(t, []string{"first"}, calls)
}

func TestConvert_EventOrder(t *testing.T) {
	p := reflection.NewProject("demo")
	widget := p.AddChild(reflection.NewDeclaration("Widget", reflection.KindClass))
	widget.AddChild(reflection.NewDeclaration("_internal", reflection.KindProperty))
	p.AddChild(reflection.NewDeclaration("helper", reflection.KindFunction))

	hm := NewHookManager()
	var seen []string
	record := func(ctx context.Context, ev *Event) error {
		name := string(ev.Type)
		if ev.Reflection != nil {
			name += ":" + ev.Reflection.Name()
		}
		seen = append(seen, name)
		assert.Same(t, p, ev.Project)
		assert.NotEmpty(t, ev.RunID)
		assert.Equal(t, ev.RunID, logging.RunIDFromContext(ctx))
		return nil
	}
	for _, ht := range []HookType{HookBegin, HookCreateDeclaration, HookResolveBegin, HookEnd} {
		hm.RegisterHandler(ht, record)
	}

	summary, err := hm.Convert(context.Background(), p)
	require.NoError(t, err)

	assert.Equal(t, []string{
		"begin",
		"create_declaration:Widget",
		"create_declaration:_internal",
		"create_declaration:helper",
		"resolve_begin",
		"end",
	}, seen)
	assert.Equal(t, 3, summary.Declarations)
	assert.Equal(t, 3, summary.Remaining)
}

func TestConvert_HandlerFailureAbortsRun(t *testing.T) {
	p := reflection.NewProject("demo")
	p.AddChild(reflection.NewDeclaration("a", reflection.KindFunction))

	hm := NewHookManager()
	resolved := false
	hm.RegisterHandler(HookCreateDeclaration, func(ctx context.Context, ev *Event) error {
		return errors.New("invalid pattern")
	})
	hm.RegisterHandler(HookResolveBegin, func(ctx context.Context, ev *Event) error {
		resolved = true
		return nil
	})

	_, err := hm.Convert(context.Background(), p)
	require.Error(t, err)
	assert.False(t, resolved)
}

func TestConvert_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewHookManager().Convert(ctx, reflection.NewProject("demo"))
	assert.ErrorIs(t, err, context.Canceled)
}
