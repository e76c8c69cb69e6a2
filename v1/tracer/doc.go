// Package tracer wraps the OpenTelemetry SDK for the listing layer.
//
// The listing service opens one span per entry point (listing.fetch_list,
// listing.fetch_unified_list, listing.fetch_item) and records errors on it.
// Logger entries written with the *WithContext methods of the logger package
// carry the span's trace_id and span_id.
//
// Export is off by default; set EnableExport to ship spans to an OTLP/HTTP
// collector.
//
//	t, err := tracer.NewClient(tracer.Config{ServiceName: "orders-api"}, nil)
//	if err != nil {
//	    return err
//	}
//	defer t.Shutdown(ctx)
//
//	ctx, span := t.StartSpan(ctx, "import-orders")
//	defer span.End()
package tracer
