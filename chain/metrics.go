// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package chain

import (
	"github.com/ava-labs/avalanchego/utils/metric"
	"github.com/ava-labs/avalanchego/utils/wrappers"
	"github.com/prometheus/client_golang/prometheus"
)

type metrics struct {
	callsProcessed prometheus.Counter
	callsFailed    prometheus.Counter
	stateChanges   prometheus.Counter

	execute metric.Averager
}

func newMetrics(r prometheus.Registerer) (*metrics, error) {
	execute, err := metric.NewAverager(
		"chain_call_execute",
		"time spent executing calls",
		r,
	)
	if err != nil {
		return nil, err
	}
	m := &metrics{
		callsProcessed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "chain",
			Name:      "calls_processed",
			Help:      "number of calls committed",
		}),
		callsFailed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "chain",
			Name:      "calls_failed",
			Help:      "number of calls rolled back",
		}),
		stateChanges: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "chain",
			Name:      "state_changes",
			Help:      "number of keys changed by committed calls",
		}),
		execute: execute,
	}
	errs := wrappers.Errs{}
	errs.Add(
		r.Register(m.callsProcessed),
		r.Register(m.callsFailed),
		r.Register(m.stateChanges),
	)
	return m, errs.Err
}
