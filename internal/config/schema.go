package config

import (
	"encoding/json"
	"fmt"

	pkgconfig "github.com/goran-ethernal/FactoryScout/pkg/config"
	"github.com/invopop/jsonschema"
)

// Schema returns the JSON schema describing the configuration file.
func Schema() *jsonschema.Schema {
	r := &jsonschema.Reflector{
		DoNotReference:            true,
		AllowAdditionalProperties: false,
	}

	schema := r.Reflect(&pkgconfig.Config{})
	schema.Title = "FactoryScout configuration"

	return schema
}

// SchemaJSON returns the indented JSON encoding of Schema.
func SchemaJSON() ([]byte, error) {
	data, err := json.MarshalIndent(Schema(), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode config schema: %w", err)
	}

	return data, nil
}
