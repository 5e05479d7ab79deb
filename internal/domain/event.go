package domain

import (
	"encoding/json"
	"fmt"
	"time"
)

// SimulationKind names the calculation a SimulationEvent records.
type SimulationKind string

const (
	KindImpact     SimulationKind = "impact"
	KindDeflection SimulationKind = "deflection"
)

// SimulationEvent is the record of one completed simulation, published to the
// event sink when one is configured.
type SimulationEvent struct {
	ID          string             `json:"id"`
	Kind        SimulationKind     `json:"kind"`
	SimulatedAt time.Time          `json:"simulated_at"`
	Impactor    *ImpactorSpec      `json:"impactor,omitempty"`
	Location    *GeographicContext `json:"location,omitempty"`
	Impact      *ImpactResult      `json:"impact,omitempty"`
	Deflection  *DeflectionResult  `json:"deflection,omitempty"`
}

// OutputEvent is the serialized form destined for the sink topic.
type OutputEvent struct {
	Key     []byte
	Value   []byte
	Headers map[string]string
}

// SerializeSimulationEvent encodes an event as JSON keyed by its ID.
func SerializeSimulationEvent(event SimulationEvent) (OutputEvent, error) {
	data, err := json.Marshal(event)
	if err != nil {
		return OutputEvent{}, fmt.Errorf("serialize simulation event: %w", err)
	}
	return OutputEvent{
		Key:   []byte(event.ID),
		Value: data,
		Headers: map[string]string{
			"kind":         string(event.Kind),
			"simulated_at": event.SimulatedAt.UTC().Format(time.RFC3339),
		},
	}, nil
}
