package engine

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

type ctxKey struct{}

func TestTrackOperation(t *testing.T) {
	ctx := context.WithValue(context.Background(), ctxKey{}, "v")
	boom := errors.New("boom")

	var seen any
	err := TrackOperation(ctx, "op", func(ctx context.Context) error {
		seen = ctx.Value(ctxKey{})
		return boom
	})
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, "v", seen)

	assert.NoError(t, TrackOperation(ctx, "op", func(context.Context) error { return nil }))
}
