package mongo

import (
	"sync"
	"testing"
	"time"

	"github.com/Aleph-Alpha/querypipe/v1/observability"
)

// TestObserver is a mock observer for testing.
type TestObserver struct {
	mu         sync.Mutex
	operations []observability.OperationContext
}

func (t *TestObserver) ObserveOperation(ctx observability.OperationContext) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.operations = append(t.operations, ctx)
}

func (t *TestObserver) GetOperations() []observability.OperationContext {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]observability.OperationContext, len(t.operations))
	copy(out, t.operations)
	return out
}

func TestObserveOperationNilObserverNoPanic(t *testing.T) {
	m := &MongoClient{
		observer: nil,
	}

	// Should not panic.
	m.observeOperation("aggregate", "orders", "", 10*time.Millisecond, nil, 0, nil)
}

func TestObserveOperationCallsObserver(t *testing.T) {
	obs := &TestObserver{}
	m := &MongoClient{
		observer: obs,
	}

	m.observeOperation("count", "orders", "", 10*time.Millisecond, nil, 45, map[string]interface{}{"stages": 3})

	ops := obs.GetOperations()
	if len(ops) != 1 {
		t.Fatalf("expected 1 operation, got %d", len(ops))
	}
	if ops[0].Component != "mongo" {
		t.Fatalf("expected component mongo, got %q", ops[0].Component)
	}
	if ops[0].Operation != "count" {
		t.Fatalf("expected operation count, got %q", ops[0].Operation)
	}
	if ops[0].Resource != "orders" {
		t.Fatalf("expected resource orders, got %q", ops[0].Resource)
	}
	if ops[0].Size != 45 {
		t.Fatalf("expected size 45, got %d", ops[0].Size)
	}
	if ops[0].Metadata == nil || ops[0].Metadata["stages"] != 3 {
		t.Fatalf("expected metadata stages=3, got %#v", ops[0].Metadata)
	}
}

func TestWithObserver(t *testing.T) {
	obs := &TestObserver{}
	m := &MongoClient{}

	out := m.WithObserver(obs)
	if out != m {
		t.Fatalf("WithObserver should return same instance for chaining")
	}
	if m.observer != obs {
		t.Fatalf("expected observer to be set")
	}
}
