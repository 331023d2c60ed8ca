// Package correlation carries an operation id through a context so log lines
// and spans from one command or request can be joined.
package correlation

import (
	"context"

	"github.com/oklog/ulid/v2"
)

type operationKey struct{}

// OperationID returns the id stored on ctx, or "".
func OperationID(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if val, ok := ctx.Value(operationKey{}).(string); ok {
		return val
	}
	return ""
}

func WithOperationID(ctx context.Context, id string) context.Context {
	if id == "" {
		return ctx
	}
	return context.WithValue(ctx, operationKey{}, id)
}

// Ensure guarantees an operation id on ctx, generating a ULID when missing.
func Ensure(ctx context.Context) (context.Context, string) {
	id := OperationID(ctx)
	if id == "" {
		id = ulid.Make().String()
	}
	return WithOperationID(ctx, id), id
}
