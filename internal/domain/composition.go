package domain

import (
	_ "embed"
	"fmt"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// Composition is the bulk material class of an impactor.
type Composition string

const (
	CompositionRocky        Composition = "rocky"
	CompositionMetallic     Composition = "metallic"
	CompositionCarbonaceous Composition = "carbonaceous"
	CompositionIcy          Composition = "icy"
)

// CompositionProperties are the fixed material constants of a composition.
type CompositionProperties struct {
	Density                 float64 `yaml:"density" json:"density"`
	ThermalEmission         float64 `yaml:"thermal_emission" json:"thermal_emission"`
	AtmosphericPenetration  float64 `yaml:"atmospheric_penetration" json:"atmospheric_penetration"`
	FragmentationResistance float64 `yaml:"fragmentation_resistance" json:"fragmentation_resistance"`
	MetalContent            float64 `yaml:"metal_content" json:"metal_content"`
}

//go:embed compositions.yaml
var compositionsYAML []byte

// compositionTable is parsed once at init and never mutated.
var compositionTable = mustLoadCompositions(compositionsYAML)

func mustLoadCompositions(data []byte) map[Composition]CompositionProperties {
	var raw map[string]CompositionProperties
	if err := yaml.Unmarshal(data, &raw); err != nil {
		panic(fmt.Sprintf("domain: parse compositions table: %v", err))
	}
	table := make(map[Composition]CompositionProperties, len(raw))
	for name, props := range raw {
		if props.Density <= 0 {
			panic(fmt.Sprintf("domain: composition %q has non-positive density", name))
		}
		table[Composition(name)] = props
	}
	for _, c := range []Composition{CompositionRocky, CompositionMetallic, CompositionCarbonaceous, CompositionIcy} {
		if _, ok := table[c]; !ok {
			panic(fmt.Sprintf("domain: composition %q missing from table", c))
		}
	}
	return table
}

// ParseComposition normalizes a composition name. An empty string selects rocky.
func ParseComposition(s string) (Composition, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return CompositionRocky, nil
	}
	c := Composition(s)
	if _, ok := compositionTable[c]; !ok {
		return "", fmt.Errorf("%w: unknown composition %q", ErrInvalidInput, s)
	}
	return c, nil
}

// Properties returns the material constants. Unknown compositions return rocky's.
func (c Composition) Properties() CompositionProperties {
	if p, ok := compositionTable[c]; ok {
		return p
	}
	return compositionTable[CompositionRocky]
}

// Valid reports whether c is a known composition.
func (c Composition) Valid() bool {
	_, ok := compositionTable[c]
	return ok
}

// Compositions lists the known compositions in name order.
func Compositions() []Composition {
	out := make([]Composition, 0, len(compositionTable))
	for c := range compositionTable {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
