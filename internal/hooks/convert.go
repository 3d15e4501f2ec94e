package hooks

import (
	"context"

	"github.com/google/uuid"

	"github.com/klinki/typedoc-plugin-regex-filter/internal/logging"
	"github.com/klinki/typedoc-plugin-regex-filter/internal/reflection"
)

// RunSummary describes one completed conversion run.
type RunSummary struct {
	RunID        string
	Declarations int
	Remaining    int
}

// Convert replays a project through the lifecycle hooks:
//
//  1. HookBegin
//  2. HookCreateDeclaration for every attached declaration, pre-order
//  3. HookResolveBegin
//  4. HookEnd
//
// The declaration list is captured before the first create event, so handlers
// that flag nodes do not change which nodes are visited. The run id is added
// to ctx for handler logging. A failing handler aborts the run.
func (h *HookManager) Convert(ctx context.Context, project *reflection.Project) (*RunSummary, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	runID := uuid.NewString()
	ctx = logging.WithRunID(ctx, runID)

	var declarations []*reflection.Declaration
	project.Walk(func(d *reflection.Declaration) bool {
		declarations = append(declarations, d)
		return true
	})

	if err := h.Execute(ctx, &Event{Type: HookBegin, RunID: runID, Project: project}); err != nil {
		return nil, err
	}

	for _, d := range declarations {
		ev := &Event{Type: HookCreateDeclaration, RunID: runID, Project: project, Reflection: d}
		if err := h.Execute(ctx, ev); err != nil {
			return nil, err
		}
	}

	if err := h.Execute(ctx, &Event{Type: HookResolveBegin, RunID: runID, Project: project}); err != nil {
		return nil, err
	}

	if err := h.Execute(ctx, &Event{Type: HookEnd, RunID: runID, Project: project}); err != nil {
		return nil, err
	}

	return &RunSummary{
		RunID:        runID,
		Declarations: len(declarations),
		Remaining:    project.Len(),
	}, nil
}
