// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package chain

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/ava-labs/avalanchego/ids"
	"github.com/ava-labs/avalanchego/trace"
	"github.com/ava-labs/avalanchego/utils/logging"
	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/ava-labs/specimenvm/codec"
	"github.com/ava-labs/specimenvm/event"
	"github.com/ava-labs/specimenvm/state"
	"github.com/ava-labs/specimenvm/tstate"

	oteltrace "go.opentelemetry.io/otel/trace"
)

const defaultChangedKeys = 16

var _ Runtime = (*callRuntime)(nil)

// CommitHook runs after an action succeeds and before its changes are
// committed. Its writes share the call's batch and an error rejects the call.
type CommitHook func(ctx context.Context, mu state.Mutable, env Env) error

// Processor is the single execution authority for a store. Calls are
// applied one at a time and either commit all of their changes and events
// or none of them.
type Processor struct {
	log     logging.Logger
	tracer  trace.Tracer
	metrics *metrics
	rules   Rules
	store   state.Mutable
	subs    []event.Subscription[*Result]
	hook    CommitHook

	l      sync.Mutex
	height uint64
	index  uint32
	closed bool
}

func NewProcessor(
	log logging.Logger,
	tracer trace.Tracer,
	registerer prometheus.Registerer,
	rules Rules,
	store state.Mutable,
	subs ...event.Subscription[*Result],
) (*Processor, error) {
	m, err := newMetrics(registerer)
	if err != nil {
		return nil, err
	}
	return &Processor{
		log:     log,
		tracer:  tracer,
		metrics: m,
		rules:   rules,
		store:   store,
		subs:    subs,
	}, nil
}

func (p *Processor) Rules() Rules {
	return p.rules
}

// NextEnv returns the environment for the next call using [seed] as its
// entropy. Every returned environment has a fresh invocation index.
func (p *Processor) NextEnv(seed ids.ID) Env {
	p.l.Lock()
	defer p.l.Unlock()

	env := Env{
		Seed:            seed,
		InvocationIndex: p.index,
		Height:          p.height,
	}
	p.index++
	return env
}

// Resume continues a processor from persisted progress: subsequent calls
// observe [height] and invocation indexes starting at [index].
func (p *Processor) Resume(height uint64, index uint32) {
	p.l.Lock()
	defer p.l.Unlock()

	p.height = height
	p.index = index
}

// SetCommitHook installs [hook] for all subsequent calls.
func (p *Processor) SetCommitHook(hook CommitHook) {
	p.l.Lock()
	defer p.l.Unlock()

	p.hook = hook
}

// SetHeight sets the height reported to subsequent calls.
func (p *Processor) SetHeight(height uint64) {
	p.l.Lock()
	defer p.l.Unlock()

	p.height = height
}

// Execute runs [action] on behalf of [actor].
//
// If the action fails, nothing it wrote reaches the store and none of its
// events are delivered.
func (p *Processor) Execute(
	ctx context.Context,
	env Env,
	actor codec.Address,
	action Action,
) (*Result, error) {
	if action == nil {
		return nil, ErrNilAction
	}
	if actor == codec.EmptyAddress {
		return nil, ErrEmptyActor
	}

	ctx, span := p.tracer.Start(
		ctx, "Processor.Execute",
		oteltrace.WithAttributes(
			attribute.Int("action", int(action.GetTypeID())),
			attribute.Stringer("actor", actor),
			attribute.Int64("invocationIndex", int64(env.InvocationIndex)),
		),
	)
	defer span.End()

	p.l.Lock()
	defer p.l.Unlock()
	if p.closed {
		return nil, ErrProcessorClose
	}

	start := time.Now()
	defer func() {
		p.metrics.execute.Observe(float64(time.Since(start)))
	}()

	var (
		scope = state.NewSimulatedScope()
		ts    = tstate.New(defaultChangedKeys)
		tsv   = ts.NewView(scope, p.store)
		rt    = &callRuntime{
			rules:    p.rules,
			log:      p.log,
			Recorder: event.NewRecorder[Event](),
		}
		restorePoint = tsv.OpIndex()
	)
	output, err := action.Execute(ctx, rt, tsv, env, actor)
	if err == nil && p.hook != nil {
		err = p.hook(ctx, tsv, env)
	}
	if err != nil {
		tsv.Rollback(ctx, restorePoint)
		rt.Reset()
		p.metrics.callsFailed.Inc()
		p.log.Info("call rejected",
			zap.Uint8("action", action.GetTypeID()),
			zap.Stringer("actor", actor),
			zap.Error(err),
		)
		return nil, err
	}
	changes := tsv.PendingChanges()
	tsv.Commit()
	if err := p.commit(ctx, ts); err != nil {
		return nil, err
	}
	p.metrics.callsProcessed.Inc()
	p.metrics.stateChanges.Add(float64(changes))

	result := &Result{
		Env:       env,
		Actor:     actor,
		Action:    action,
		Output:    output,
		Events:    rt.Events(),
		StateKeys: scope.StateKeys(),
		Changes:   changes,
	}
	p.log.Debug("call committed",
		zap.Uint8("action", action.GetTypeID()),
		zap.Stringer("actor", actor),
		zap.Int("changes", changes),
		zap.Int("events", len(result.Events)),
	)
	if err := event.NotifyAll(ctx, result, p.subs...); err != nil {
		p.log.Warn("subscription failed", zap.Error(err))
	}
	return result, nil
}

// commit writes the changes of [ts] to the store, using a single batch
// when the store supports it.
func (p *Processor) commit(ctx context.Context, ts *tstate.TState) error {
	batcher, ok := p.store.(state.Batcher)
	if !ok {
		if _, err := ts.Export(ctx, p.store); err != nil {
			return fmt.Errorf("%w: unable to export changes", err)
		}
		return nil
	}
	batch := batcher.NewBatch()
	if _, err := ts.Export(ctx, batch); err != nil {
		return fmt.Errorf("%w: unable to export changes", err)
	}
	return batch.Write()
}

// Close closes all subscriptions. No call can be executed afterwards.
func (p *Processor) Close() error {
	p.l.Lock()
	defer p.l.Unlock()

	if p.closed {
		return nil
	}
	p.closed = true
	return event.CloseAll(p.subs...)
}

type callRuntime struct {
	*event.Recorder[Event]

	rules Rules
	log   logging.Logger
}

func (r *callRuntime) Rules() Rules {
	return r.rules
}

func (r *callRuntime) Logger() logging.Logger {
	return r.log
}
