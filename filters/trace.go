package filters

import (
	"context"
	"net/http"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	oteltrace "go.opentelemetry.io/otel/trace"

	"github.com/kbukum/filterkit/filter"
)

// TraceContextKey is the Options.Values key under which callers may
// supply a context.Context; Trace uses it as the parent of the client
// span so the request joins the application's trace.
const TraceContextKey = "trace.context"

// Trace returns a filter that wraps each request in an OpenTelemetry
// client span and injects the trace context into the outgoing headers.
// The span ends when the callback fires. The span parents onto the
// context stored under TraceContextKey in Options.Values when one is
// present, and starts a new trace otherwise.
func Trace(tracerName string) filter.Filter {
	tracer := otel.Tracer(tracerName)
	prop := otel.GetTextMapPropagator()

	return filter.Func(func(opts *filter.Options, next filter.Next, cb filter.Callback) filter.Stream {
		method := opts.Method
		if method == "" {
			method = http.MethodGet
		}
		parent := context.Background()
		if v, ok := opts.Values[TraceContextKey].(context.Context); ok && v != nil {
			parent = v
		}
		ctx, span := tracer.Start(parent, method,
			oteltrace.WithSpanKind(oteltrace.SpanKindClient),
			oteltrace.WithAttributes(
				attribute.String("http.request.method", method),
				attribute.String("url.full", opts.URI),
			),
		)
		if opts.Headers == nil {
			opts.Headers = make(map[string]string)
		}
		prop.Inject(ctx, propagation.MapCarrier(opts.Headers))

		return next(opts, func(err error, result any, resp *filter.Response, body []byte) {
			if resp != nil {
				span.SetAttributes(attribute.Int("http.response.status_code", resp.StatusCode))
				if resp.IsError() {
					span.SetStatus(codes.Error, http.StatusText(resp.StatusCode))
				}
			}
			if err != nil {
				span.RecordError(err)
				span.SetStatus(codes.Error, err.Error())
			}
			span.End()
			cb(err, result, resp, body)
		})
	})
}
