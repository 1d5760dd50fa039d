package observability

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v3"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "github.com/Alijeyrad/stomatology_backend/pkg/observability"

// HeaderTraceID echoes the server span's trace id back to the caller.
const HeaderTraceID = "X-Trace-Id"

type httpInstruments struct {
	requests metric.Int64Counter
	duration metric.Float64Histogram
}

func newHTTPInstruments() httpInstruments {
	meter := otel.Meter(tracerName)
	var in httpInstruments
	in.requests, _ = meter.Int64Counter(
		"http_server_request_count",
		metric.WithDescription("HTTP requests served"),
		metric.WithUnit("{request}"),
	)
	in.duration, _ = meter.Float64Histogram(
		"http_server_request_duration_ms",
		metric.WithDescription("HTTP request duration"),
		metric.WithUnit("ms"),
	)
	return in
}

func (in httpInstruments) record(c fiber.Ctx, route string, status int, elapsed float64) {
	attrs := metric.WithAttributes(
		attribute.String("http.method", c.Method()),
		attribute.String("http.route", route),
		attribute.Int("http.status_code", status),
		attribute.Bool("htmx", c.Get("HX-Request") == "true"),
	)
	if in.requests != nil {
		in.requests.Add(c.Context(), 1, attrs)
	}
	if in.duration != nil {
		in.duration.Record(c.Context(), elapsed, attrs)
	}
}

// FiberMiddleware opens a server span per request, continuing an incoming
// trace context when present, and records request count and latency keyed
// by route template so record ids do not explode cardinality.
func FiberMiddleware() fiber.Handler {
	tracer := otel.Tracer(tracerName)
	inst := newHTTPInstruments()

	return func(c fiber.Ctx) error {
		ctx := otel.GetTextMapPropagator().Extract(c.Context(), propagation.HeaderCarrier(c.GetReqHeaders()))

		ctx, span := tracer.Start(ctx, c.Method()+" "+c.Path(),
			trace.WithSpanKind(trace.SpanKindServer),
			trace.WithAttributes(
				attribute.String("http.method", c.Method()),
				attribute.String("http.target", c.OriginalURL()),
				attribute.String("http.user_agent", c.Get(fiber.HeaderUserAgent)),
				attribute.String("http.client_ip", c.IP()),
			),
		)
		defer span.End()
		c.SetContext(ctx)

		if sc := span.SpanContext(); sc.HasTraceID() {
			c.Set(HeaderTraceID, sc.TraceID().String())
		}

		start := time.Now()
		err := c.Next()
		elapsed := float64(time.Since(start).Microseconds()) / 1000

		// The matched route is only known after routing.
		route := c.Route().Path
		status := c.Response().StatusCode()
		span.SetName(c.Method() + " " + route)
		span.SetAttributes(
			attribute.String("http.route", route),
			attribute.Int("http.status_code", status),
		)
		inst.record(c, route, status, elapsed)

		if status >= fiber.StatusInternalServerError {
			span.SetStatus(codes.Error, "HTTP "+strconv.Itoa(status))
			if err != nil {
				span.RecordError(err)
			}
		}
		return err
	}
}
