package observability

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.opentelemetry.io/otel/attribute"
)

func TestObservability_RecordAndShutdown(t *testing.T) {
	obs := New("risk-profile-test")
	defer obs.Shutdown()

	ctx, span := obs.StartSpan(context.Background(), "score", attribute.String("source", "general"))
	defer span.End()

	assert.NotPanics(t, func() {
		obs.RecordProfileBuilt(ctx, "general")
		obs.RecordProfileDuration(ctx, 3*time.Millisecond, "general")
	})
}

func TestObservability_NilSafe(t *testing.T) {
	var obs *Observability
	ctx := context.Background()

	assert.NotPanics(t, func() {
		gotCtx, span := obs.StartSpan(ctx, "score")
		span.End()
		assert.Equal(t, ctx, gotCtx)
		obs.RecordProfileBuilt(ctx, "general")
		obs.RecordProfileDuration(ctx, time.Millisecond, "general")
		obs.Shutdown()
	})

	assert.NotPanics(t, func() {
		noop := NewNoop()
		_, span := noop.StartSpan(ctx, "adjust")
		span.End()
		noop.RecordProfileBuilt(ctx, "general")
	})
}
