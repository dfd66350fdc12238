// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package trace

import (
	"context"
	"testing"

	"github.com/ava-labs/avalanchego/trace"
	"github.com/stretchr/testify/require"
)

func TestDisabledIsNoop(t *testing.T) {
	require := require.New(t)

	tr, err := New(Config{})
	require.NoError(err)
	require.Equal(trace.Noop, tr)
}

func TestEnabled(t *testing.T) {
	require := require.New(t)

	_, err := New(Config{Enabled: true, SampleRate: 2})
	require.ErrorIs(err, ErrInvalidSampleRate)

	tr, err := New(Config{
		Enabled:     true,
		SampleRate:  0,
		ServiceName: "specimenvm",
	})
	require.NoError(err)
	_, span := tr.Start(context.Background(), "test")
	span.End()
	require.NoError(tr.Close())
}
