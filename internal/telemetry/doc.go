// Package telemetry provides OpenTelemetry instrumentation for regexfilter.
//
// Traces and metrics are exported over OTLP (gRPC or HTTP/protobuf) to a
// collector. Telemetry is disabled by default; a run without a collector
// uses the global no-op providers.
//
// # Usage
//
//	tel, err := telemetry.New(ctx, cfg)
//	if err != nil {
//	    return err
//	}
//	defer tel.Shutdown(ctx)
//
//	plugin := filter.New(resolver, logger,
//	    filter.WithTracer(tel.Tracer("regexfilter")),
//	    filter.WithMeter(tel.Meter("regexfilter")))
//
// # Configuration
//
//	telemetry:
//	  enabled: true
//	  endpoint: "localhost:4317"
//	  protocol: grpc        # or http/protobuf
//	  sampling:
//	    rate: 1.0
//	  metrics:
//	    enabled: true
//	    export_interval: "15s"
//
// # Testing
//
//	tt := telemetry.NewTestTelemetry()
//	// ... exercise code using tt.Tracer / tt.Meter
//	tt.AssertSpanExists(t, "regexfilter.flush")
//	n := tt.CounterValue(t, "regexfilter.removals_total")
package telemetry
