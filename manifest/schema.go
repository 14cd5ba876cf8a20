package manifest

import "github.com/google/jsonschema-go/jsonschema"

// Schema returns the JSON schema a manifest document must satisfy.
func Schema() *jsonschema.Schema {
	return &jsonschema.Schema{
		Type:     "object",
		Required: []string{"uri", "name", "parameters", "ports", "requiredFeatures"},
		Properties: map[string]*jsonschema.Schema{
			"uri":  {Type: "string"},
			"name": {Type: "string"},
			"parameters": {
				Type: "array",
				Items: &jsonschema.Schema{
					Type:     "object",
					Required: []string{"uri", "symbol", "type", "default", "writable"},
					Properties: map[string]*jsonschema.Schema{
						"uri":    {Type: "string"},
						"symbol": {Type: "string"},
						"label":  {Type: "string"},
						"type": {
							Type: "string",
							Enum: []any{TypeBool, TypeFloat},
						},
						"default":  {},
						"writable": {Type: "boolean"},
					},
				},
			},
			"ports": {
				Type: "array",
				Items: &jsonschema.Schema{
					Type:     "object",
					Required: []string{"index", "symbol", "kind", "direction"},
					Properties: map[string]*jsonschema.Schema{
						"index":  {Type: "integer"},
						"symbol": {Type: "string"},
						"kind": {
							Type: "string",
							Enum: []any{KindControl, KindAudio},
						},
						"direction": {
							Type: "string",
							Enum: []any{DirInput, DirOutput},
						},
					},
				},
			},
			"requiredFeatures": {
				Type:  "array",
				Items: &jsonschema.Schema{Type: "string"},
			},
			"optionalFeatures": {
				Type:  "array",
				Items: &jsonschema.Schema{Type: "string"},
			},
		},
	}
}
