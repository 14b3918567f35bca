// Package observability bootstraps OpenTelemetry tracing for
// applications embedding filterkit.
//
// InitTracer wires a global tracer provider with an OTLP HTTP exporter
// so that the filters.Trace filter produces exported spans:
//
//	tp, err := observability.InitTracer(ctx, observability.DefaultTracerConfig("my-client"))
//	if err != nil {
//	    return err
//	}
//	defer tp.Shutdown(ctx)
//
//	p := pipeline.NewDefault(filters.Trace("my-client"))
package observability
