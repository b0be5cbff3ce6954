package agentwire

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/invopop/jsonschema"
)

// ExtensionRegistry holds the typed payload declarations for a backend's
// capability-gated extension keys. Each declared key carries a JSON
// schema generated from the payload struct's tags, advertised alongside
// the capability, and a strict decoder used to validate request values.
type ExtensionRegistry struct {
	specs map[Capability]extensionSpec
}

type extensionSpec struct {
	description string
	schema      json.RawMessage
	decode      func(any) (any, error)
}

// NewExtensionRegistry creates an empty registry.
func NewExtensionRegistry() *ExtensionRegistry {
	return &ExtensionRegistry{specs: make(map[Capability]extensionSpec)}
}

// RegisterExtension declares the payload type for an extension key.
//
// The type parameter T should be a struct with json and jsonschema
// struct tags, for example:
//
//	type ModelExtension struct {
//	    Name string `json:"name" jsonschema:"required,description=Model identifier passed to the CLI"`
//	}
func RegisterExtension[T any](r *ExtensionRegistry, key Capability, description string) {
	r.specs[key] = extensionSpec{
		description: description,
		schema:      generateSchema[T](),
		decode: func(value any) (any, error) {
			raw, err := json.Marshal(value)
			if err != nil {
				return nil, &InvalidRequestError{
					Reason: fmt.Sprintf("extension %q: value is not serializable", key),
				}
			}
			dec := json.NewDecoder(bytes.NewReader(raw))
			dec.DisallowUnknownFields()
			var payload T
			if err := dec.Decode(&payload); err != nil {
				return nil, &InvalidRequestError{
					Reason: fmt.Sprintf("extension %q: value does not match schema", key),
				}
			}
			return payload, nil
		},
	}
}

// Decode validates value against the declared payload type for key and
// returns the typed payload. A type or shape mismatch yields
// *InvalidRequestError; an undeclared key yields *InvalidRequestError as
// well, since capability membership is checked by the adapter first.
func (r *ExtensionRegistry) Decode(key Capability, value any) (any, error) {
	spec, ok := r.specs[key]
	if !ok {
		return nil, &InvalidRequestError{
			Reason: fmt.Sprintf("extension %q has no declared payload type", key),
		}
	}
	return spec.decode(value)
}

// Schema returns the advertised JSON schema for key.
func (r *ExtensionRegistry) Schema(key Capability) (json.RawMessage, bool) {
	spec, ok := r.specs[key]
	if !ok {
		return nil, false
	}
	return spec.schema, true
}

// Description returns the human-readable description for key.
func (r *ExtensionRegistry) Description(key Capability) (string, bool) {
	spec, ok := r.specs[key]
	if !ok {
		return "", false
	}
	return spec.description, true
}

// generateSchema uses reflection to create a JSON schema from a Go
// struct type, parsing jsonschema struct tags.
func generateSchema[T any]() json.RawMessage {
	reflector := &jsonschema.Reflector{
		DoNotReference: true, // Inline all definitions instead of using $ref
		ExpandedStruct: true, // Don't use $ref for struct types
	}

	var zero T
	schema := reflector.Reflect(zero)

	data, err := json.Marshal(schema)
	if err != nil {
		// This should never happen with valid types
		panic(fmt.Sprintf("failed to generate schema for type %T: %v", zero, err))
	}

	return json.RawMessage(data)
}
