package eventsource

import (
	"go.opentelemetry.io/contrib/bridges/otelslog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

const scopeName = "github.com/Mohammad-Palla/sherlock-game/core/eventsource"

var (
	tracer = otel.Tracer(scopeName)
	meter  = otel.Meter(scopeName)
	logger = otelslog.NewLogger(scopeName)

	droppedPayloads, _ = meter.Int64Counter("eventsource.dropped_payloads",
		metric.WithDescription("Live feed payloads that failed to decode"))
)
