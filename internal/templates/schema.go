package templates

import (
	"bytes"
	"encoding/json"
	"fmt"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/goliatone/go-chatkit/templates"
)

// metadataSchema constrains template frontmatter. Unknown keys are rejected
// so typos surface at load time instead of rendering incorrectly.
const metadataSchema = `{
	"$schema": "https://json-schema.org/draft/2020-12/schema",
	"type": "object",
	"properties": {
		"title": {"type": "string"},
		"category": {
			"type": "string",
			"enum": ["error", "success", "warning", "info", "permission_denied", "usage", "no_data"]
		},
		"ephemeral": {"type": "boolean"},
		"silent": {"type": "boolean"},
		"accent": {
			"type": "string",
			"enum": ["error", "success", "warning", "primary"]
		},
		"thumbnail": {
			"type": "object",
			"properties": {
				"url": {"type": "string", "minLength": 1},
				"description": {"type": "string"}
			},
			"required": ["url"],
			"additionalProperties": false
		}
	},
	"additionalProperties": false
}`

var compiledMetadataSchema = jsonschema.MustCompileString("chatkit/template-metadata.json", metadataSchema)

// validateMetadata checks decoded frontmatter against the metadata schema.
// The value is round-tripped through JSON so YAML-decoded types line up with
// what the validator expects.
func validateMetadata(meta map[string]any) error {
	if len(meta) == 0 {
		return nil
	}

	encoded, err := json.Marshal(meta)
	if err != nil {
		return fmt.Errorf("%w: %v", templates.ErrMetadataInvalid, err)
	}

	var normalized any
	decoder := json.NewDecoder(bytes.NewReader(encoded))
	decoder.UseNumber()
	if err := decoder.Decode(&normalized); err != nil {
		return fmt.Errorf("%w: %v", templates.ErrMetadataInvalid, err)
	}

	if err := compiledMetadataSchema.Validate(normalized); err != nil {
		return fmt.Errorf("%w: %v", templates.ErrMetadataInvalid, err)
	}
	return nil
}
