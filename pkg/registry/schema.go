// pkg/registry/schema.go
package registry

// ParameterCatalog is the on-disk description of a study: which parameters
// vary, over which values, with which default overrides and which prompt
// variants. Checked into the repo alongside the code so a study is
// reproducible from its catalog file alone.
type ParameterCatalog struct {
	Version     string                 `json:"version"`
	Description string                 `json:"description,omitempty"`
	Parameters  []Parameter            `json:"parameters"`
	Defaults    map[string]interface{} `json:"defaults,omitempty"`
	Variants    []string               `json:"variants,omitempty"`
}

type Parameter struct {
	Name   string        `json:"name"`
	Values []interface{} `json:"values"`
}

// catalogSchema validates the JSON shape before any values are interpreted.
const catalogSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "required": ["version", "parameters"],
  "properties": {
    "version": {"type": "string", "minLength": 1},
    "description": {"type": "string"},
    "parameters": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["name", "values"],
        "properties": {
          "name": {"type": "string", "minLength": 1},
          "values": {
            "type": "array",
            "minItems": 1,
            "items": {"type": ["string", "number"]}
          }
        },
        "additionalProperties": false
      }
    },
    "defaults": {
      "type": "object",
      "additionalProperties": {"type": ["string", "number"]}
    },
    "variants": {
      "type": "array",
      "items": {"type": "string", "minLength": 1}
    }
  },
  "additionalProperties": false
}`
