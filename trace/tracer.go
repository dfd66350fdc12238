// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package trace

import (
	"context"
	"errors"
	"time"

	"github.com/ava-labs/avalanchego/trace"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/zipkin"
	"go.opentelemetry.io/otel/sdk/resource"

	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.4.0"
	oteltrace "go.opentelemetry.io/otel/trace"
)

const (
	DefaultEndpoint = "http://localhost:9411/api/v2/spans"

	exportTimeout = 10 * time.Second
	// Longer than [exportTimeout] so in-flight exports can finish.
	shutdownTimeout = 15 * time.Second
)

var ErrInvalidSampleRate = errors.New("sample rate must be in [0, 1]")

type Config struct {
	Enabled bool `json:"enabled" yaml:"enabled"`

	// SampleRate is the fraction of traces exported.
	SampleRate float64 `json:"sampleRate" yaml:"sampleRate"`

	// Endpoint is the zipkin collector spans are exported to.
	Endpoint string `json:"endpoint" yaml:"endpoint"`

	ServiceName string `json:"serviceName" yaml:"serviceName"`
	Version     string `json:"version"     yaml:"version"`
}

func (c *Config) Verify() error {
	if c.SampleRate < 0 || c.SampleRate > 1 {
		return ErrInvalidSampleRate
	}
	return nil
}

type tracer struct {
	oteltrace.Tracer

	tp *sdktrace.TracerProvider
}

func (t *tracer) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return t.tp.Shutdown(ctx)
}

// New returns a tracer exporting to zipkin, or [trace.Noop] if tracing is
// disabled.
func New(cfg Config) (trace.Tracer, error) {
	if !cfg.Enabled {
		return trace.Noop, nil
	}
	if err := cfg.Verify(); err != nil {
		return nil, err
	}
	endpoint := cfg.Endpoint
	if len(endpoint) == 0 {
		endpoint = DefaultEndpoint
	}
	exporter, err := zipkin.New(endpoint)
	if err != nil {
		return nil, err
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter, sdktrace.WithExportTimeout(exportTimeout)),
		sdktrace.WithResource(
			resource.NewWithAttributes(
				semconv.SchemaURL,
				attribute.String("version", cfg.Version),
				semconv.ServiceNameKey.String(cfg.ServiceName),
			),
		),
		sdktrace.WithSampler(sdktrace.TraceIDRatioBased(cfg.SampleRate)),
	)
	return &tracer{
		Tracer: tp.Tracer(cfg.ServiceName),
		tp:     tp,
	}, nil
}
