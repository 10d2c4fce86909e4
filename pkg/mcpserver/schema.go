package mcpserver

import (
	"github.com/google/jsonschema-go/jsonschema"
)

// FieldDef defines one argument field for schema construction
type FieldDef struct {
	Name        string
	Type        string // "string", "number", "boolean", "object", "array"; empty accepts any JSON
	Description string
	Required    bool
	Enum        []string
}

// CreateDynamicSchema constructs a JSON schema from field definitions.
// Used for tools whose arguments mix types or accept arbitrary JSON values.
func CreateDynamicSchema(fields []FieldDef) *jsonschema.Schema {
	properties := make(map[string]*jsonschema.Schema)
	var required []string

	for _, field := range fields {
		schema := &jsonschema.Schema{
			Type:        field.Type,
			Description: field.Description,
		}

		if len(field.Enum) > 0 {
			enum := make([]any, len(field.Enum))
			for i, v := range field.Enum {
				enum[i] = v
			}
			schema.Enum = enum
		}

		properties[field.Name] = schema

		if field.Required {
			required = append(required, field.Name)
		}
	}

	return &jsonschema.Schema{
		Type:       "object",
		Properties: properties,
		Required:   required,
	}
}

// CreateObjectSchema creates an object schema whose properties are all strings
func CreateObjectSchema(description string, properties map[string]string, required []string) *jsonschema.Schema {
	props := make(map[string]*jsonschema.Schema)

	for name, desc := range properties {
		props[name] = &jsonschema.Schema{
			Type:        "string",
			Description: desc,
		}
	}

	return &jsonschema.Schema{
		Type:        "object",
		Description: description,
		Properties:  props,
		Required:    required,
	}
}
