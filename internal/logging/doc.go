// Package logging provides structured logging with OpenTelemetry integration.
//
// # Overview
//
// Logging wraps Zap with:
//   - Custom Trace level (-2, below Debug)
//   - Stderr output, optionally teed to OpenTelemetry
//   - Automatic context fields (trace_id, span_id, run.id)
//   - Optional sampling below error level
//
// Stdout is never written: it carries the filtered tree.
//
// # Usage
//
//	cfg := logging.NewDefaultConfig()
//	logger, err := logging.NewLogger(cfg, otelProvider)
//	if err != nil {
//	    return err
//	}
//	defer logger.Sync()
//
//	ctx = logging.WithRunID(ctx, runID)
//	logger.Info(ctx, "removing _internal")
//
// # Configuration Precedence
//
//  1. Defaults (NewDefaultConfig)
//  2. The "logging" section of the config file
//  3. Environment variables (REGEXFILTER_LOGGING_*)
//  4. Command line flags (--log-level, --log-format)
//
// # Testing
//
// Use TestLogger for test assertions:
//
//	tl := logging.NewTestLogger()
//	tl.Info(ctx, "test message", zap.String("key", "value"))
//	tl.AssertLogged(t, zapcore.InfoLevel, "test message")
//	tl.AssertField(t, "test message", "key", "value")
//
// Logger is safe for concurrent use. Child loggers (With, Named) are
// independent and do not affect parent or siblings.
package logging
