package observability

import (
	"context"
	"strings"
	"testing"
	"time"

	promclient "github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObservability_ExportsToRegistry(t *testing.T) {
	reg := promclient.NewRegistry()
	obs := NewWithRegisterer("test-service", reg)
	defer obs.Shutdown()

	ctx := context.Background()
	obs.RecordJobProcessed(ctx, "validate-card-application", "completed")
	obs.RecordJobDuration(ctx, "validate-card-application", 12*time.Millisecond, "completed")
	obs.RecordValidation(ctx, false, "last")

	families, err := reg.Gather()
	require.NoError(t, err)

	var names []string
	for _, f := range families {
		names = append(names, f.GetName())
	}
	joined := strings.Join(names, ",")
	assert.Contains(t, joined, "jobs_processed")
	assert.Contains(t, joined, "jobs_duration")
	assert.Contains(t, joined, "card_validations")
}

func TestObservability_ZeroValueIsSafe(t *testing.T) {
	var obs *Observability
	assert.NotPanics(t, func() {
		obs.RecordJobProcessed(context.Background(), "x", "ok")
		obs.RecordValidation(context.Background(), true, "last")
		obs.Shutdown()
	})

	empty := &Observability{}
	assert.NotPanics(t, func() {
		empty.RecordJobDuration(context.Background(), "x", time.Second, "ok")
		empty.Shutdown()
	})
}
