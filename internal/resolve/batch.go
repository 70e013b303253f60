package resolve

import (
	"context"
	"fmt"
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"github.com/funvibe/tower/internal/config"
)

// Site is one call site together with its visible scopes, innermost first.
type Site struct {
	Call   *Call
	Scopes []Scope
}

// BatchOptions configures ResolveAll.
type BatchOptions struct {
	// Components are shared by all sites and must be safe for concurrent reads.
	Components *Components

	// Concurrency bounds how many sites are resolved at once.
	// Zero means config.DefaultBatchConcurrency.
	Concurrency int
}

// ResolveAll resolves independent call sites concurrently. Every site gets its own
// consumer and collector; results are index-aligned with sites. Cancellation is checked
// before each site starts, a site in progress always runs to completion.
func ResolveAll(ctx context.Context, sites []Site, opts BatchOptions) ([]*Collector, error) {
	if ctx == nil {
		return nil, fmt.Errorf("ResolveAll: ctx must not be nil")
	}
	for i, site := range sites {
		if site.Call == nil {
			return nil, fmt.Errorf("ResolveAll: site %d has no call", i)
		}
	}

	limit := opts.Concurrency
	if limit <= 0 {
		limit = config.DefaultBatchConcurrency
	}
	if limit > config.MaxBatchConcurrency {
		limit = config.MaxBatchConcurrency
	}

	ctx, span := otel.Tracer(config.TracerName).Start(ctx, "resolve.ResolveAll",
		trace.WithAttributes(
			attribute.Int("sites", len(sites)),
			attribute.Int("concurrency", limit),
		))
	defer span.End()

	comps := opts.Components.withDefaults()
	logger := comps.Logger

	results := make([]*Collector, len(sites))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)
	for i, site := range sites {
		i, site := i, site
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = ResolveCall(site.Call, site.Scopes, comps)
			batchSitesTotal.Inc()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		logger.Warn("batch resolution interrupted", slog.Int("sites", len(sites)), slog.Any("error", err))
		return results, fmt.Errorf("ResolveAll: %w", err)
	}

	resolved := 0
	for _, c := range results {
		if Classify(c) == Success {
			resolved++
		}
	}
	span.SetAttributes(attribute.Int("resolved", resolved))
	span.SetStatus(codes.Ok, "")
	logger.Info("batch resolved", slog.Int("sites", len(sites)), slog.Int("resolved", resolved))
	return results, nil
}
