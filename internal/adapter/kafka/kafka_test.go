package kafka

import (
	"testing"
	"time"

	"github.com/couchcryptid/asteroid-impact-service/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToMessage(t *testing.T) {
	now := time.Date(2026, 4, 26, 15, 10, 0, 0, time.UTC)
	event := domain.SimulationEvent{
		ID:          "sim-1",
		Kind:        domain.KindImpact,
		SimulatedAt: now,
		Impact:      &domain.ImpactResult{Megatons: 12.5},
	}

	out, err := domain.SerializeSimulationEvent(event)
	require.NoError(t, err)
	msg := toMessage(out)

	assert.Equal(t, []byte("sim-1"), msg.Key)
	assert.Contains(t, string(msg.Value), `"kind":"impact"`)
	require.Len(t, msg.Headers, 2)
	assert.Equal(t, "kind", msg.Headers[0].Key)
	assert.Equal(t, []byte("impact"), msg.Headers[0].Value)
	assert.Equal(t, "simulated_at", msg.Headers[1].Key)
	assert.Equal(t, []byte(now.Format(time.RFC3339)), msg.Headers[1].Value)
}

func TestToMessage_NoHeaders(t *testing.T) {
	msg := toMessage(domain.OutputEvent{Key: []byte("k"), Value: []byte("{}")})
	assert.Empty(t, msg.Headers)
	assert.Equal(t, []byte("k"), msg.Key)
}
