package llm

import (
	"encoding/json"
	"sort"
)

// JSONSchema implements json.Marshaler for OpenAI's JSON Schema format.
// The alias type prevents infinite recursion during marshaling.
type JSONSchema struct {
	Properties           map[string]*JSONSchema `json:"properties,omitempty"`
	Items                *JSONSchema            `json:"items,omitempty"`
	Type                 string                 `json:"type"`
	Description          string                 `json:"description,omitempty"`
	Required             []string               `json:"required,omitempty"`
	Enum                 []string               `json:"enum,omitempty"`
	AdditionalProperties bool                   `json:"additionalProperties"`
}

// MarshalJSON implements json.Marshaler for JSONSchema.
func (s *JSONSchema) MarshalJSON() ([]byte, error) {
	type alias JSONSchema
	return json.Marshal((*alias)(s))
}

// ObjectSchema builds an object schema with the given properties, all required.
func ObjectSchema(properties map[string]*JSONSchema) *JSONSchema {
	required := make([]string, 0, len(properties))
	for name := range properties {
		required = append(required, name)
	}
	sort.Strings(required)
	return &JSONSchema{
		Type:       "object",
		Properties: properties,
		Required:   required,
	}
}

// StringSchema builds a string schema, optionally constrained to an enum.
func StringSchema(description string, enum ...string) *JSONSchema {
	return &JSONSchema{Type: "string", Description: description, Enum: enum}
}

// BooleanSchema builds a boolean schema.
func BooleanSchema(description string) *JSONSchema {
	return &JSONSchema{Type: "boolean", Description: description}
}

// ArraySchema builds an array schema with the given item schema.
func ArraySchema(description string, items *JSONSchema) *JSONSchema {
	return &JSONSchema{Type: "array", Description: description, Items: items}
}
