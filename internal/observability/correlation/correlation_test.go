package correlation

import (
	"context"
	"testing"

	"github.com/oklog/ulid/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnsureGeneratesOnce(t *testing.T) {
	ctx, id := Ensure(context.Background())
	_, err := ulid.ParseStrict(id)
	require.NoError(t, err)
	assert.Equal(t, id, OperationID(ctx))

	again, same := Ensure(ctx)
	assert.Equal(t, id, same)
	assert.Equal(t, id, OperationID(again))
}

func TestOperationIDMissing(t *testing.T) {
	assert.Empty(t, OperationID(context.Background()))
	var unset context.Context
	assert.Empty(t, OperationID(unset))
	ctx := WithOperationID(context.Background(), "")
	assert.Empty(t, OperationID(ctx))
}
