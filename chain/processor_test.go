// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package chain

import (
	"context"
	"errors"
	"testing"

	"github.com/ava-labs/avalanchego/database"
	"github.com/ava-labs/avalanchego/ids"
	"github.com/ava-labs/avalanchego/trace"
	"github.com/ava-labs/avalanchego/utils/logging"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"

	"github.com/ava-labs/specimenvm/chaintesting"
	"github.com/ava-labs/specimenvm/codec"
	"github.com/ava-labs/specimenvm/keys"
	"github.com/ava-labs/specimenvm/state"
)

var (
	errTestFailure = errors.New("test failure")

	testKey1 = keys.EncodeChunks([]byte{0, 1}, 1)
	testKey2 = keys.EncodeChunks([]byte{0, 2}, 1)
	testKey3 = keys.EncodeChunks([]byte{0, 3}, 1)
)

type testRules struct{}

func (testRules) GetStakePrice() uint64    { return 10 }
func (testRules) GetMaxIdentifier() uint64 { return 1000 }
func (testRules) GetMaxOwned() int         { return 2 }
func (testRules) GetMaxClaimLength() int   { return 64 }

type testEvent struct{}

func (testEvent) GetTypeID() uint8 { return 0 }

// testAction writes both test keys, emits an event and then fails if [fail]
// is set.
type testAction struct {
	fail bool
}

func (testAction) GetTypeID() uint8 { return 0 }

func (testAction) Marshal(*codec.Packer) {}

func (a testAction) Execute(
	ctx context.Context,
	rt Runtime,
	mu state.Mutable,
	_ Env,
	_ codec.Address,
) (codec.Typed, error) {
	if err := mu.Insert(ctx, testKey1, []byte{1}); err != nil {
		return nil, err
	}
	if err := mu.Remove(ctx, testKey2); err != nil {
		return nil, err
	}
	rt.Emit(testEvent{})
	if a.fail {
		return nil, errTestFailure
	}
	return nil, nil
}

type testSubscription struct {
	results []*Result
	closed  bool
}

func (s *testSubscription) Accept(_ context.Context, r *Result) error {
	s.results = append(s.results, r)
	return nil
}

func (s *testSubscription) Close() error {
	s.closed = true
	return nil
}

func newTestProcessor(t *testing.T, store state.Mutable, sub *testSubscription) *Processor {
	p, err := NewProcessor(
		logging.NoLog{},
		trace.Noop,
		prometheus.NewRegistry(),
		testRules{},
		store,
		sub,
	)
	require.NoError(t, err)
	return p
}

func TestProcessorCommit(t *testing.T) {
	require := require.New(t)
	ctx := context.TODO()
	store := chaintesting.NewInMemoryStore()
	require.NoError(store.Insert(ctx, testKey2, []byte{2}))
	sub := &testSubscription{}
	p := newTestProcessor(t, store, sub)

	actor := codec.CreateAddress(0, ids.GenerateTestID())
	result, err := p.Execute(ctx, p.NextEnv(ids.GenerateTestID()), actor, testAction{})
	require.NoError(err)
	require.Equal(2, result.Changes)
	require.Len(result.Events, 1)
	require.True(result.StateKeys[string(testKey1)].Has(state.Write))

	v, err := store.GetValue(ctx, testKey1)
	require.NoError(err)
	require.Equal([]byte{1}, v)
	_, err = store.GetValue(ctx, testKey2)
	require.ErrorIs(err, database.ErrNotFound)

	require.Len(sub.results, 1)
	require.Equal(actor, sub.results[0].Actor)
}

func TestProcessorRollback(t *testing.T) {
	require := require.New(t)
	ctx := context.TODO()
	store := chaintesting.NewInMemoryStore()
	require.NoError(store.Insert(ctx, testKey2, []byte{2}))
	before := store.Snapshot()
	sub := &testSubscription{}
	p := newTestProcessor(t, store, sub)

	actor := codec.CreateAddress(0, ids.GenerateTestID())
	_, err := p.Execute(ctx, p.NextEnv(ids.GenerateTestID()), actor, testAction{fail: true})
	require.ErrorIs(err, errTestFailure)
	require.Equal(before, store.Storage)
	require.Empty(sub.results)
}

func TestProcessorInvalidCall(t *testing.T) {
	require := require.New(t)
	ctx := context.TODO()
	p := newTestProcessor(t, chaintesting.NewInMemoryStore(), &testSubscription{})

	_, err := p.Execute(ctx, Env{}, codec.CreateAddress(0, ids.GenerateTestID()), nil)
	require.ErrorIs(err, ErrNilAction)
	_, err = p.Execute(ctx, Env{}, codec.EmptyAddress, testAction{})
	require.ErrorIs(err, ErrEmptyActor)
}

func TestProcessorNextEnv(t *testing.T) {
	require := require.New(t)
	p := newTestProcessor(t, chaintesting.NewInMemoryStore(), &testSubscription{})

	seed := ids.GenerateTestID()
	p.SetHeight(7)
	env0 := p.NextEnv(seed)
	env1 := p.NextEnv(seed)
	require.Equal(uint32(0), env0.InvocationIndex)
	require.Equal(uint32(1), env1.InvocationIndex)
	require.Equal(uint64(7), env1.Height)
	require.Equal(seed, env1.Seed)
}

func TestProcessorResume(t *testing.T) {
	require := require.New(t)
	p := newTestProcessor(t, chaintesting.NewInMemoryStore(), &testSubscription{})

	p.Resume(3, 3)
	env := p.NextEnv(ids.GenerateTestID())
	require.Equal(uint32(3), env.InvocationIndex)
	require.Equal(uint64(3), env.Height)
	require.Equal(uint32(4), p.NextEnv(ids.GenerateTestID()).InvocationIndex)
}

func TestProcessorCommitHook(t *testing.T) {
	tests := []struct {
		name    string
		action  testAction
		hookErr error
		err     error
	}{
		{
			name: "hook writes are committed",
		},
		{
			name:    "hook failure rejects call",
			hookErr: errTestFailure,
			err:     errTestFailure,
		},
		{
			name:   "hook skipped on action failure",
			action: testAction{fail: true},
			err:    errTestFailure,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require := require.New(t)
			ctx := context.TODO()
			store := chaintesting.NewInMemoryStore()
			require.NoError(store.Insert(ctx, testKey2, []byte{2}))
			before := store.Snapshot()
			sub := &testSubscription{}
			p := newTestProcessor(t, store, sub)

			calls := 0
			p.SetCommitHook(func(ctx context.Context, mu state.Mutable, env Env) error {
				calls++
				if err := mu.Insert(ctx, testKey3, []byte{byte(env.Height)}); err != nil {
					return err
				}
				return tt.hookErr
			})
			p.SetHeight(9)
			actor := codec.CreateAddress(0, ids.GenerateTestID())
			result, err := p.Execute(ctx, p.NextEnv(ids.GenerateTestID()), actor, tt.action)
			require.ErrorIs(err, tt.err)
			if tt.err != nil {
				require.Equal(before, store.Storage)
				require.Empty(sub.results)
				if tt.action.fail {
					require.Zero(calls)
				}
				return
			}
			require.Equal(1, calls)
			require.Equal(3, result.Changes)
			v, err := store.GetValue(ctx, testKey3)
			require.NoError(err)
			require.Equal([]byte{9}, v)
		})
	}
}

func TestProcessorClose(t *testing.T) {
	require := require.New(t)
	ctx := context.TODO()
	sub := &testSubscription{}
	p := newTestProcessor(t, chaintesting.NewInMemoryStore(), sub)

	require.NoError(p.Close())
	require.True(sub.closed)
	_, err := p.Execute(ctx, Env{}, codec.CreateAddress(0, ids.GenerateTestID()), testAction{})
	require.ErrorIs(err, ErrProcessorClose)
}
