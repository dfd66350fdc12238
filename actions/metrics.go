// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package actions

import (
	"context"

	"github.com/ava-labs/avalanchego/utils/wrappers"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/ava-labs/specimenvm/chain"
	"github.com/ava-labs/specimenvm/event"
)

var _ event.Subscription[*chain.Result] = (*Metrics)(nil)

// Metrics counts committed actions by type.
type Metrics struct {
	specimenCreated     prometheus.Counter
	specimenBred        prometheus.Counter
	specimenTransferred prometheus.Counter

	claimCreated     prometheus.Counter
	claimRevoked     prometheus.Counter
	claimTransferred prometheus.Counter
}

func NewMetrics(r prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		specimenCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "actions",
			Name:      "specimen_created",
			Help:      "number of create specimen actions",
		}),
		specimenBred: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "actions",
			Name:      "specimen_bred",
			Help:      "number of breed specimen actions",
		}),
		specimenTransferred: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "actions",
			Name:      "specimen_transferred",
			Help:      "number of transfer specimen actions",
		}),
		claimCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "actions",
			Name:      "claim_created",
			Help:      "number of create claim actions",
		}),
		claimRevoked: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "actions",
			Name:      "claim_revoked",
			Help:      "number of revoke claim actions",
		}),
		claimTransferred: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "actions",
			Name:      "claim_transferred",
			Help:      "number of transfer claim actions",
		}),
	}
	errs := wrappers.Errs{}
	errs.Add(
		r.Register(m.specimenCreated),
		r.Register(m.specimenBred),
		r.Register(m.specimenTransferred),
		r.Register(m.claimCreated),
		r.Register(m.claimRevoked),
		r.Register(m.claimTransferred),
	)
	return m, errs.Err
}

func (m *Metrics) Accept(_ context.Context, result *chain.Result) error {
	switch result.Action.(type) {
	case *CreateSpecimen:
		m.specimenCreated.Inc()
	case *BreedSpecimen:
		m.specimenBred.Inc()
	case *TransferSpecimen:
		m.specimenTransferred.Inc()
	case *CreateClaim:
		m.claimCreated.Inc()
	case *RevokeClaim:
		m.claimRevoked.Inc()
	case *TransferClaim:
		m.claimTransferred.Inc()
	}
	return nil
}

func (*Metrics) Close() error {
	return nil
}
