// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package cmd

import (
	"context"
	"encoding/hex"
	"errors"
	"os"
	"strings"

	"github.com/ava-labs/avalanchego/ids"
	"github.com/ava-labs/avalanchego/trace"
	"github.com/ava-labs/avalanchego/utils/logging"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/ava-labs/specimenvm/actions"
	"github.com/ava-labs/specimenvm/chain"
	"github.com/ava-labs/specimenvm/codec"
	"github.com/ava-labs/specimenvm/config"
	"github.com/ava-labs/specimenvm/consts"
	"github.com/ava-labs/specimenvm/genesis"
	"github.com/ava-labs/specimenvm/pebble"
	"github.com/ava-labs/specimenvm/rpc"
	"github.com/ava-labs/specimenvm/state"
	"github.com/ava-labs/specimenvm/storage"
	"github.com/ava-labs/specimenvm/utils"

	tracing "github.com/ava-labs/specimenvm/trace"
)

var _ rpc.Controller = (*Handler)(nil)

// Handler owns the local database and the processor applying calls to it.
type Handler struct {
	cfg      *config.Config
	log      logging.Logger
	tracer   trace.Tracer
	registry *prometheus.Registry

	genesis   *genesis.Genesis
	db        *pebble.Database
	processor *chain.Processor
}

func newHandler(ctx context.Context, cfg *config.Config) (*Handler, error) {
	level, err := cfg.GetLogLevel()
	if err != nil {
		return nil, err
	}
	log := logging.NewLogger(
		consts.Name,
		logging.NewWrappedCore(
			level,
			os.Stderr,
			logging.Plain.ConsoleEncoder(),
		),
	)

	var g *genesis.Genesis
	if p := cfg.GetGenesisPath(); len(p) > 0 {
		b, err := utils.LoadBytes(p, -1)
		if err != nil {
			return nil, err
		}
		g, err = genesis.New(b)
		if err != nil {
			return nil, err
		}
	} else {
		g = genesis.Default()
	}

	tracer, err := tracing.New(cfg.GetTraceConfig())
	if err != nil {
		return nil, err
	}
	registry := prometheus.NewRegistry()
	db, err := pebble.New(cfg.GetDatabaseDir(), pebble.NewDefaultConfig(), registry)
	if err != nil {
		_ = tracer.Close()
		return nil, err
	}
	h := &Handler{
		cfg:      cfg,
		log:      log,
		tracer:   tracer,
		registry: registry,
		genesis:  g,
		db:       db,
	}
	if err := h.init(ctx, registry); err != nil {
		_ = errors.Join(db.Close(), tracer.Close())
		return nil, err
	}
	return h, nil
}

func (h *Handler) init(ctx context.Context, registry prometheus.Registerer) error {
	if err := h.initialize(ctx); err != nil {
		return err
	}
	m, err := actions.NewMetrics(registry)
	if err != nil {
		return err
	}
	h.processor, err = chain.NewProcessor(h.log, h.tracer, registry, h.genesis, h.db, m)
	if err != nil {
		return err
	}
	h.processor.SetCommitHook(advanceHeight)
	return nil
}

// advanceHeight records a committed call in the same batch as its changes.
func advanceHeight(ctx context.Context, mu state.Mutable, env chain.Env) error {
	return storage.SetHeight(ctx, mu, env.Height+1)
}

// initialize loads the genesis allocations the first time the database is
// opened.
func (h *Handler) initialize(ctx context.Context) error {
	_, initialized, err := storage.GetHeight(ctx, h.db)
	if err != nil || initialized {
		return err
	}
	batch := h.db.NewBatch()
	if err := h.genesis.Load(ctx, h.tracer, batch); err != nil {
		return err
	}
	if err := storage.SetHeight(ctx, batch, 0); err != nil {
		return err
	}
	if err := batch.Write(); err != nil {
		return err
	}
	h.log.Info("initialized database",
		zap.String("path", h.cfg.GetDatabaseDir()),
		zap.Int("allocations", len(h.genesis.CustomAllocation)),
	)
	return nil
}

func (h *Handler) Genesis() *genesis.Genesis { return h.genesis }
func (h *Handler) Tracer() trace.Tracer       { return h.tracer }
func (h *Handler) State() state.Immutable     { return h.db }

func (h *Handler) Registry() *prometheus.Registry { return h.registry }

func (h *Handler) Logger() logging.Logger { return h.log }

// Execute applies [action] on behalf of the configured actor. Each committed
// call advances the persisted height, which also numbers the invocation so
// that a fixed seed still yields fresh entropy across runs.
func (h *Handler) Execute(ctx context.Context, action chain.Action) (*chain.Result, error) {
	actor, err := GetActor()
	if err != nil {
		return nil, err
	}
	seed, err := getSeed()
	if err != nil {
		return nil, err
	}
	height, _, err := storage.GetHeight(ctx, h.db)
	if err != nil {
		return nil, err
	}
	h.processor.Resume(height, uint32(height))
	return h.processor.Execute(ctx, h.processor.NextEnv(seed), actor, action)
}

func (h *Handler) Close() error {
	return errors.Join(h.processor.Close(), h.db.Close(), h.tracer.Close())
}

// GetActor returns the address named by the --actor flag.
func GetActor() (codec.Address, error) {
	if len(actorName) == 0 {
		return codec.EmptyAddress, ErrMissingActor
	}
	return utils.ParseAddressOrName(actorName)
}

func getSeed() (ids.ID, error) {
	if len(seedHex) == 0 {
		return utils.RandomID()
	}
	b, err := hex.DecodeString(strings.TrimPrefix(seedHex, "0x"))
	if err != nil || len(b) != ids.IDLen {
		return ids.Empty, ErrInvalidSeed
	}
	return ids.ID(b), nil
}

// withHandler opens the database for the duration of [f].
func withHandler(ctx context.Context, f func(h *Handler) error) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	h, err := newHandler(ctx, cfg)
	if err != nil {
		return err
	}
	return errors.Join(f(h), h.Close())
}
