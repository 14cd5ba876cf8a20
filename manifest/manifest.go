// Package manifest holds the declarative plugin metadata a host consumes at
// load time: identity, parameters, ports, and required capabilities.
//
// The metadata is plain JSON validated against a JSON schema, so hosts can
// reject a broken bundle before instantiating anything.
package manifest

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/lv2go/reqval/internal/errors"
	"github.com/lv2go/reqval/internal/feature"
)

// Port kinds and directions.
const (
	KindControl = "control"
	KindAudio   = "audio"

	DirInput  = "input"
	DirOutput = "output"
)

// Parameter value types.
const (
	TypeBool  = "bool"
	TypeFloat = "float"
)

// Parameter is a named, URI-identified property with a declared value type
// and default. Immutable after declaration.
type Parameter struct {
	URI      string `json:"uri"`
	Symbol   string `json:"symbol"`
	Label    string `json:"label,omitempty"`
	Type     string `json:"type"`
	Default  any    `json:"default"`
	Writable bool   `json:"writable"`
}

// Port declares one plugin port by index.
type Port struct {
	Index     uint32 `json:"index"`
	Symbol    string `json:"symbol"`
	Kind      string `json:"kind"`
	Direction string `json:"direction"`
}

// Manifest is the full declarative metadata for one plugin.
type Manifest struct {
	URI              string      `json:"uri"`
	Name             string      `json:"name"`
	Parameters       []Parameter `json:"parameters"`
	Ports            []Port      `json:"ports"`
	RequiredFeatures []string    `json:"requiredFeatures"`
	OptionalFeatures []string    `json:"optionalFeatures,omitempty"`
}

// Default returns the metadata for the value-request plugin: one writable
// boolean parameter, a control input, and an audio pass-through pair.
func Default() *Manifest {
	return &Manifest{
		URI:  "http://gareus.org/oss/lv2/request_value",
		Name: "Request Value Example",
		Parameters: []Parameter{
			{
				URI:      "http://gareus.org/oss/lv2/request_value#booltest",
				Symbol:   "booltest",
				Label:    "Bool Test",
				Type:     TypeBool,
				Default:  false,
				Writable: true,
			},
		},
		Ports: []Port{
			{Index: 0, Symbol: "control", Kind: KindControl, Direction: DirInput},
			{Index: 1, Symbol: "in", Kind: KindAudio, Direction: DirInput},
			{Index: 2, Symbol: "out", Kind: KindAudio, Direction: DirOutput},
		},
		RequiredFeatures: []string{
			feature.URIDMapURI,
			feature.RequestValueURI,
		},
		OptionalFeatures: []string{
			feature.LogURI,
		},
	}
}

// Load reads and validates a manifest file.
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &errors.ManifestError{Path: path, Err: err}
	}

	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, &errors.ManifestError{Path: path, Err: err}
	}

	if err := m.Validate(); err != nil {
		return nil, &errors.ManifestError{Path: path, Err: err}
	}

	return &m, nil
}

// Validate checks the manifest against the schema plus the structural rules
// the schema cannot express (unique port indices, unique parameter URIs).
func (m *Manifest) Validate() error {
	resolved, err := Schema().Resolve(nil)
	if err != nil {
		return fmt.Errorf("resolve manifest schema: %w", err)
	}

	// Round-trip through JSON so the validator sees the wire shape.
	data, err := json.Marshal(m)
	if err != nil {
		return fmt.Errorf("marshal manifest: %w", err)
	}

	var instance map[string]any
	if err := json.Unmarshal(data, &instance); err != nil {
		return fmt.Errorf("unmarshal manifest: %w", err)
	}

	if err := resolved.Validate(instance); err != nil {
		return &errors.ManifestError{Err: err}
	}

	if m.URI == "" {
		return &errors.ManifestError{Err: fmt.Errorf("empty plugin uri")}
	}

	seenPorts := make(map[uint32]bool, len(m.Ports))
	for _, p := range m.Ports {
		if seenPorts[p.Index] {
			return &errors.ManifestError{Err: fmt.Errorf("duplicate port index %d", p.Index)}
		}

		seenPorts[p.Index] = true
	}

	seenParams := make(map[string]bool, len(m.Parameters))
	for _, p := range m.Parameters {
		if seenParams[p.URI] {
			return &errors.ManifestError{Err: fmt.Errorf("duplicate parameter %s", p.URI)}
		}

		seenParams[p.URI] = true
	}

	return nil
}

// Parameter returns the declared parameter with the given URI, or nil.
func (m *Manifest) Parameter(uri string) *Parameter {
	for i := range m.Parameters {
		if m.Parameters[i].URI == uri {
			return &m.Parameters[i]
		}
	}

	return nil
}
