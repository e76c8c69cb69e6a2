package observability

import "time"

// Observer receives a notification after every instrumented operation.
// Implementations must be safe for concurrent use and should return quickly;
// they run on the caller's goroutine.
type Observer interface {
	ObserveOperation(ctx OperationContext)
}

// OperationContext describes a single completed operation.
type OperationContext struct {
	// Component is the emitting package, e.g. "mongo" or "listing".
	Component string

	// Operation is the operation name, e.g. "aggregate" or "fetch_list".
	Operation string

	// Resource is the primary target, usually a collection name.
	Resource string

	// SubResource carries secondary context such as a source name.
	SubResource string

	Duration time.Duration

	// Error is nil on success.
	Error error

	// Size is the number of documents returned or counted.
	Size int64

	Metadata map[string]interface{}
}

// ObserverFunc adapts a function to the Observer interface.
type ObserverFunc func(ctx OperationContext)

// ObserveOperation calls f(ctx).
func (f ObserverFunc) ObserveOperation(ctx OperationContext) {
	f(ctx)
}

// Multi fans a notification out to every non-nil observer in order.
func Multi(observers ...Observer) Observer {
	out := make(multi, 0, len(observers))
	for _, o := range observers {
		if o != nil {
			out = append(out, o)
		}
	}
	return out
}

type multi []Observer

func (m multi) ObserveOperation(ctx OperationContext) {
	for _, o := range m {
		o.ObserveOperation(ctx)
	}
}
