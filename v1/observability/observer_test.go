package observability

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMulti(t *testing.T) {
	var first, second []string

	obs := Multi(
		ObserverFunc(func(ctx OperationContext) { first = append(first, ctx.Operation) }),
		nil,
		ObserverFunc(func(ctx OperationContext) { second = append(second, ctx.Operation) }),
	)

	obs.ObserveOperation(OperationContext{Component: "mongo", Operation: "aggregate"})
	obs.ObserveOperation(OperationContext{Component: "mongo", Operation: "count", Error: errors.New("boom")})

	assert.Equal(t, []string{"aggregate", "count"}, first)
	assert.Equal(t, []string{"aggregate", "count"}, second)
}

func TestMultiEmpty(t *testing.T) {
	// Should not panic.
	Multi().ObserveOperation(OperationContext{})
	Multi(nil, nil).ObserveOperation(OperationContext{})
}
