// Package logger is the zap-backed structured logger used across querypipe.
//
// LoggerClient takes a message, an optional error and any number of field
// maps. Maps are merged left to right, so a later key replaces an earlier one:
//
//	log, err := logger.NewLoggerClient(logger.Config{
//	    Level:         logger.Info,
//	    EnableTracing: true,
//	    ServiceName:   "orders-api",
//	})
//	if err != nil {
//	    return err
//	}
//
//	log.Info("listing served", nil, map[string]interface{}{
//	    "collection": "orders",
//	    "total":      45,
//	})
//	log.ErrorWithContext(ctx, "aggregation failed", err, map[string]interface{}{
//	    "collection": "orders",
//	})
//
// With EnableTracing set, the *WithContext methods add the trace_id and
// span_id of the OpenTelemetry span found in ctx, so listing logs line up with
// the spans the tracer package records for the same request.
//
// Other packages do not depend on LoggerClient. They declare the few methods
// they call (listing.Logger, mongo.Logger, tracer.Logger), and the Logger
// interface here satisfies all of them.
//
// # Configuration
//
// Config carries mapstructure tags and is read by the config package:
//
//	QUERYPIPE_LOGGER_LEVEL=debug             # debug, info, warning, error
//	QUERYPIPE_LOGGER_ENCODING=console        # json (default) or console
//	QUERYPIPE_LOGGER_ENABLE_TRACING=true
//	QUERYPIPE_LOGGER_SERVICE_NAME=orders-api
//
// # Tests
//
// NewWithZap accepts any zap logger; pair it with zaptest/observer to assert
// on emitted entries.
package logger
