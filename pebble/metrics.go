// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package pebble

import (
	"time"

	"github.com/ava-labs/avalanchego/utils/metric"
	"github.com/ava-labs/avalanchego/utils/wrappers"
	"github.com/cockroachdb/pebble"
	"github.com/prometheus/client_golang/prometheus"
)

const (
	namespace       = "pebble"
	metricsInterval = 10 * time.Second
)

type metrics struct {
	stallStart time.Time
	writeStall metric.Averager
	getLatency metric.Averager

	batches     prometheus.Counter
	compactions *prometheus.CounterVec // by input level
	compacting  prometheus.Gauge

	tombstones    prometheus.Gauge
	obsoleteBytes *prometheus.GaugeVec // by file kind
	zombieBytes   prometheus.Gauge
}

func newMetrics(r prometheus.Registerer) (*metrics, error) {
	writeStall, err := metric.NewAverager(
		"pebble_write_stall",
		"time spent waiting for disk write",
		r,
	)
	if err != nil {
		return nil, err
	}
	getLatency, err := metric.NewAverager(
		"pebble_read_latency",
		"time spent waiting for db get",
		r,
	)
	if err != nil {
		return nil, err
	}
	m := &metrics{
		writeStall: writeStall,
		getLatency: getLatency,
		batches: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "batches_committed",
			Help:      "number of batches written",
		}),
		compactions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "compactions",
			Help:      "number of compactions started",
		}, []string{"level"}),
		compacting: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "active_compactions",
			Help:      "number of compactions in progress",
		}),
		tombstones: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "tombstone_count",
			Help:      "approximate count of internal tombstones",
		}),
		obsoleteBytes: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "obsolete_bytes",
			Help:      "bytes in files no longer needed by the db",
		}, []string{"kind"}),
		zombieBytes: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "zombie_table_bytes",
			Help:      "bytes in obsolete tables still referenced by iterators",
		}),
	}
	errs := wrappers.Errs{}
	errs.Add(
		r.Register(m.batches),
		r.Register(m.compactions),
		r.Register(m.compacting),
		r.Register(m.tombstones),
		r.Register(m.obsoleteBytes),
		r.Register(m.zombieBytes),
	)
	return m, errs.Err
}

func (m *metrics) listener() *pebble.EventListener {
	return &pebble.EventListener{
		CompactionBegin: func(info pebble.CompactionInfo) {
			m.compacting.Inc()
			level := "other"
			if len(info.Input) > 0 && info.Input[0].Level == 0 {
				level = "l0"
			}
			m.compactions.WithLabelValues(level).Inc()
		},
		CompactionEnd: func(pebble.CompactionInfo) {
			m.compacting.Dec()
		},
		WriteStallBegin: func(pebble.WriteStallBeginInfo) {
			m.stallStart = time.Now()
		},
		WriteStallEnd: func() {
			m.writeStall.Observe(float64(time.Since(m.stallStart)))
		},
	}
}

func (m *metrics) update(pm *pebble.Metrics) {
	m.tombstones.Set(float64(pm.Keys.TombstoneCount))
	m.obsoleteBytes.WithLabelValues("table").Set(float64(pm.Table.ObsoleteSize))
	m.obsoleteBytes.WithLabelValues("wal").Set(float64(pm.WAL.ObsoletePhysicalSize))
	m.zombieBytes.Set(float64(pm.Table.ZombieSize))
}

func (db *Database) collectMetrics() {
	t := time.NewTicker(metricsInterval)
	defer t.Stop()

	for {
		select {
		case <-t.C:
			db.metrics.update(db.db.Metrics())
		case <-db.closing:
			return
		}
	}
}
