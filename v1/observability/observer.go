package observability

import (
	"time"
)

// OperationContext carries the outcome of a single client operation.
// Components fill in what they know and leave the rest zero valued;
// observers must tolerate missing fields.
type OperationContext struct {
	// Component identifies the emitting subsystem, e.g. "searchstore".
	Component string

	// Operation is the logical operation name, e.g. "query" or "batch_insert".
	Operation string

	// Resource names the primary object of the operation, e.g. a collection.
	Resource string

	// SubResource optionally narrows the resource, e.g. a tenant name.
	SubResource string

	// Duration is the wall-clock time the operation took.
	Duration time.Duration

	// Error is the operation error, nil on success.
	Error error

	// Size is a component-defined payload size in bytes, 0 when unknown.
	Size int64

	// Metadata holds additional key-value context for the operation.
	Metadata map[string]interface{}
}

// Observer receives operation outcomes from instrumented components.
//
// Implementations must be safe for concurrent use; components call
// ObserveOperation from whatever goroutine executed the operation.
type Observer interface {
	ObserveOperation(ctx OperationContext)
}

// NoopObserver discards all observations. It is the default when no
// observer is configured.
type NoopObserver struct{}

// ObserveOperation implements Observer by doing nothing.
func (NoopObserver) ObserveOperation(_ OperationContext) {}
