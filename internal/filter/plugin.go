package filter

import (
	"context"
	"errors"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/klinki/typedoc-plugin-regex-filter/internal/hooks"
	"github.com/klinki/typedoc-plugin-regex-filter/internal/logging"
	"github.com/klinki/typedoc-plugin-regex-filter/internal/reflection"
)

// FlushResult summarizes one resolve-begin flush.
type FlushResult struct {
	Queued  int
	Removed int
	Failed  int
}

// Option configures a Plugin.
type Option func(*pluginOptions)

type pluginOptions struct {
	strict bool
	meter  metric.Meter
	tracer trace.Tracer
}

// WithStrictRemoval makes OnResolveBegin return the joined RemovalErrors.
// Removal still continues past failures.
func WithStrictRemoval() Option {
	return func(o *pluginOptions) {
		o.strict = true
	}
}

// WithMeter sets the meter for filter counters. Defaults to the global meter.
func WithMeter(m metric.Meter) Option {
	return func(o *pluginOptions) {
		o.meter = m
	}
}

// WithTracer sets the tracer for flush spans. Defaults to the global tracer.
func WithTracer(t trace.Tracer) Option {
	return func(o *pluginOptions) {
		o.tracer = t
	}
}

// Plugin flags or removes reflections whose names match the resolved pattern.
//
// Matches are handled as declarations are created: private flags are set at
// once, removals are queued and applied when resolution begins. Handlers are
// expected to be called sequentially by the hook manager.
type Plugin struct {
	resolver *Resolver
	logger   *logging.Logger
	strict   bool
	metrics  *metrics
	tracer   trace.Tracer

	pending []reflection.Node
	queued  map[reflection.Node]struct{}
}

// New creates a plugin. logger may be nil.
func New(resolver *Resolver, logger *logging.Logger, opts ...Option) *Plugin {
	o := &pluginOptions{}
	for _, opt := range opts {
		opt(o)
	}
	if logger == nil {
		logger = logging.NewNop()
	}
	if o.meter == nil {
		o.meter = otel.Meter(instrumentationName)
	}
	if o.tracer == nil {
		o.tracer = otel.Tracer(instrumentationName)
	}

	return &Plugin{
		resolver: resolver,
		logger:   logger,
		strict:   o.strict,
		metrics:  newMetrics(o.meter, logger),
		tracer:   o.tracer,
		queued:   make(map[reflection.Node]struct{}),
	}
}

// Register subscribes the plugin to the conversion lifecycle.
//
// Settings are resolved at begin so an invalid pattern fails the run before
// any declaration is created. A queue left over by an aborted run is dropped
// at the same point.
func (p *Plugin) Register(hm *hooks.HookManager) {
	hm.RegisterHandler(hooks.HookBegin, func(ctx context.Context, ev *hooks.Event) error {
		p.clearPending()
		_, err := p.resolver.Resolve()
		return err
	})
	hm.RegisterHandler(hooks.HookCreateDeclaration, func(ctx context.Context, ev *hooks.Event) error {
		return p.OnCreateDeclaration(ctx, ev.Reflection)
	})
	hm.RegisterHandler(hooks.HookResolveBegin, func(ctx context.Context, ev *hooks.Event) error {
		_, err := p.OnResolveBegin(ctx, ev.Project)
		return err
	})
}

// OnCreateDeclaration classifies one newly created reflection.
func (p *Plugin) OnCreateDeclaration(ctx context.Context, node reflection.Node) error {
	settings, err := p.resolver.Resolve()
	if err != nil {
		return err
	}

	if !settings.InScope(node.Kind()) || !settings.Match(node.Name()) {
		return nil
	}

	outcome := settings.Outcome()
	if settings.LogMatches() {
		p.logMatch(ctx, outcome, node)
	}

	switch outcome {
	case OutcomeRemove:
		p.enqueue(node)
	case OutcomePrivate:
		node.SetFlag(reflection.FlagPrivate)
	}
	p.metrics.recordMatch(ctx, outcome)
	return nil
}

func (p *Plugin) logMatch(ctx context.Context, outcome Outcome, node reflection.Node) {
	parent := ""
	if n := node.Parent(); n != nil {
		parent = n.Name()
	}
	p.logger.Info(ctx, fmt.Sprintf("%s: %s from: %s", outcome.operation(), node.Name(), parent),
		zap.String("operation", outcome.operation()),
		zap.String("name", node.Name()),
		zap.String("parent", parent),
		zap.String("kind", string(node.Kind())),
	)
}

func (p *Plugin) enqueue(node reflection.Node) {
	if _, ok := p.queued[node]; ok {
		return
	}
	p.queued[node] = struct{}{}
	p.pending = append(p.pending, node)
}

// OnResolveBegin removes every queued reflection in queue order and empties
// the queue. A failed removal is logged and skipped; the error is returned
// only with WithStrictRemoval.
func (p *Plugin) OnResolveBegin(ctx context.Context, remover reflection.Remover) (FlushResult, error) {
	if len(p.pending) == 0 {
		return FlushResult{}, nil
	}
	defer p.clearPending()

	result := FlushResult{Queued: len(p.pending)}

	ctx, span := p.tracer.Start(ctx, "regexfilter.flush",
		trace.WithAttributes(attribute.Int("queued", result.Queued)))
	defer span.End()

	p.logger.Debug(ctx, "removing queued reflections", zap.Int("count", result.Queued))

	var errs []error
	for _, node := range p.pending {
		err := remover.RemoveReflection(node)
		p.metrics.recordRemoval(ctx, err)
		if err != nil {
			rerr := &RemovalError{Name: node.Name(), Err: err}
			p.logger.Warn(ctx, "failed to remove reflection",
				zap.String("name", node.Name()),
				zap.Error(err),
			)
			span.RecordError(rerr)
			errs = append(errs, rerr)
			result.Failed++
			continue
		}
		result.Removed++
	}

	span.SetAttributes(attribute.Int("removed", result.Removed), attribute.Int("failed", result.Failed))
	if result.Failed > 0 {
		span.SetStatus(codes.Error, fmt.Sprintf("%d removals failed", result.Failed))
		if p.strict {
			return result, errors.Join(errs...)
		}
	}
	return result, nil
}

// Pending returns the number of queued reflections.
func (p *Plugin) Pending() int {
	return len(p.pending)
}

// Reset drops the queue and the memoized settings.
func (p *Plugin) Reset() {
	p.clearPending()
	p.resolver.Reset()
}

func (p *Plugin) clearPending() {
	p.pending = nil
	clear(p.queued)
}
