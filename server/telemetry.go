package server

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

var meter = otel.Meter("github.com/iankisali/digitwin/server")

// pageName is the attribute key tying each record to the page it concerns.
const pageName = "page"

var (
	// renderDuration measures a successful page render on a cache miss.
	renderDuration metric.Float64Histogram
	// renderFailures counts renders that returned an error.
	renderFailures metric.Int64Counter
	// cacheHits counts requests served from the rendered page cache.
	cacheHits metric.Int64Counter
)

func init() {
	var err error
	renderDuration, err = meter.Float64Histogram(
		"page.render.duration",
		metric.WithDescription("The duration of a single page render."),
		metric.WithUnit("ms"),
	)
	if err != nil {
		panic("server: failed to init 'page.render.duration' instrument")
	}

	renderFailures, err = meter.Int64Counter(
		"page.render.failures",
		metric.WithDescription("The number of page renders that have failed."),
	)
	if err != nil {
		panic("server: failed to init 'page.render.failures' instrument")
	}

	cacheHits, err = meter.Int64Counter(
		"page.cache.hits",
		metric.WithDescription("The number of requests served from the rendered page cache."),
	)
	if err != nil {
		panic("server: failed to init 'page.cache.hits' instrument")
	}
}

func measureRender(ctx context.Context, page string, succeeded bool, d time.Duration) {
	attrs := attribute.NewSet(attribute.String(pageName, page))
	if succeeded {
		renderDuration.Record(ctx, float64(d)/float64(time.Millisecond), metric.WithAttributeSet(attrs))
	} else {
		renderFailures.Add(ctx, 1, metric.WithAttributeSet(attrs))
	}
}

func recordCacheHit(ctx context.Context, page string) {
	cacheHits.Add(ctx, 1, metric.WithAttributeSet(attribute.NewSet(attribute.String(pageName, page))))
}
