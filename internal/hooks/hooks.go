// Package hooks provides conversion lifecycle hook management for regexfilter
package hooks

import (
	"context"
	"fmt"

	"github.com/klinki/typedoc-plugin-regex-filter/internal/reflection"
)

// HookType represents different conversion lifecycle hooks
type HookType string

const (
	// HookBegin is called once before any declaration is created
	HookBegin HookType = "begin"

	// HookCreateDeclaration is called for every declaration, in tree order
	HookCreateDeclaration HookType = "create_declaration"

	// HookResolveBegin is called after all declarations exist and before
	// cross-references are resolved
	HookResolveBegin HookType = "resolve_begin"

	// HookEnd is called once after the run completed
	HookEnd HookType = "end"
)

// Event is the payload passed to hook handlers.
type Event struct {
	Type HookType

	// RunID identifies the conversion run.
	RunID string

	// Project is the tree being converted. Set for every hook type.
	Project *reflection.Project

	// Reflection is the declaration just created. Set for HookCreateDeclaration only.
	Reflection reflection.Node
}

// HookHandler is a function that handles a hook event
type HookHandler func(ctx context.Context, ev *Event) error

// HookManager manages lifecycle hooks
type HookManager struct {
	handlers map[HookType][]HookHandler
}

// NewHookManager creates a new hook manager
func NewHookManager() *HookManager {
	return &HookManager{
		handlers: make(map[HookType][]HookHandler),
	}
}

// RegisterHandler registers a handler for a hook type
func (h *HookManager) RegisterHandler(hookType HookType, handler HookHandler) {
	h.handlers[hookType] = append(h.handlers[hookType], handler)
}

// Handlers returns the number of handlers registered for a hook type.
func (h *HookManager) Handlers(hookType HookType) int {
	return len(h.handlers[hookType])
}

// Execute executes all handlers for the event's hook type in registration
// order, stopping at the first failure.
func (h *HookManager) Execute(ctx context.Context, ev *Event) error {
	handlers, ok := h.handlers[ev.Type]
	if !ok {
		// No handlers registered - not an error
		return nil
	}

	for _, handler := range handlers {
		if err := handler(ctx, ev); err != nil {
			return fmt.Errorf("hook %s failed: %w", ev.Type, err)
		}
	}

	return nil
}
