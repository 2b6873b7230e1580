// Package schemagen renders the fixed event file format as a JSON
// Schema (Draft 2020-12) document. The document is generated from the
// same contract registry the validator dispatches on, so it cannot
// drift from the checks; it exists for file authors and editor tooling,
// not as an input to validation.
package schemagen

import (
	"fmt"

	"github.com/invopop/jsonschema"

	"github.com/usestring/eventcheck/pkg/eventfile"
)

// Build constructs the JSON Schema document for the event file format.
func Build() *jsonschema.Schema {
	return &jsonschema.Schema{
		Type:                 "object",
		Description:          "Event file: a mapping from event identifiers to event entries.",
		AdditionalProperties: eventSchema(),
	}
}

// eventSchema describes one event entry. Unrecognized keys are allowed
// here: the validator treats them as warnings, not errors.
func eventSchema() *jsonschema.Schema {
	s := &jsonschema.Schema{
		Type:                 "object",
		Description:          "Event entry: named object collections plus bookkeeping numbers.",
		Properties:           jsonschema.NewProperties(),
		AdditionalProperties: jsonschema.TrueSchema,
	}
	for _, key := range eventfile.MetadataKeys() {
		s.Properties.Set(key, numberSchema())
	}
	for _, kind := range eventfile.Kinds() {
		s.Properties.Set(kind.String(), collectionSchema(kind))
	}
	return s
}

func collectionSchema(kind eventfile.Kind) *jsonschema.Schema {
	if kind == eventfile.KindHits {
		// Hits accept two record forms: a bare coordinate triple or a
		// hit object.
		return &jsonschema.Schema{
			Type: "array",
			Items: &jsonschema.Schema{
				AnyOf: []*jsonschema.Schema{
					numberTupleSchema(3),
					recordSchema(kind.Fields()),
				},
			},
		}
	}

	fields := kind.Fields()
	if fields == nil {
		// Compound kinds: the container must be an array, elements are
		// unconstrained.
		return &jsonschema.Schema{Type: "array"}
	}
	return &jsonschema.Schema{
		Type:  "array",
		Items: recordSchema(fields),
	}
}

func recordSchema(fields []eventfile.Field) *jsonschema.Schema {
	s := &jsonschema.Schema{
		Type:                 "object",
		Properties:           jsonschema.NewProperties(),
		AdditionalProperties: jsonschema.TrueSchema,
	}
	var required []string
	for _, f := range fields {
		s.Properties.Set(f.Name, fieldSchema(f))
		if f.Required {
			required = append(required, f.Name)
		}
	}
	s.Required = required
	return s
}

func fieldSchema(f eventfile.Field) *jsonschema.Schema {
	switch f.Type {
	case eventfile.Number:
		return numberSchema()
	case eventfile.String:
		return &jsonschema.Schema{Type: "string"}
	case eventfile.NumberTuple:
		return numberTupleSchema(f.Arity)
	case eventfile.TripleList:
		return &jsonschema.Schema{
			Type:  "array",
			Items: numberTupleSchema(3),
		}
	case eventfile.HitType:
		return &jsonschema.Schema{
			Type: "string",
			Enum: []any{"Point", "Line", "Box"},
		}
	case eventfile.CellList:
		return &jsonschema.Schema{
			Type:  "array",
			Items: recordSchema(eventfile.PlanarCellFields()),
		}
	default:
		return &jsonschema.Schema{}
	}
}

func numberSchema() *jsonschema.Schema {
	return &jsonschema.Schema{Type: "number"}
}

// numberTupleSchema describes a fixed-arity number tuple. The arity is
// stated in the description; the validator enforces it exactly.
func numberTupleSchema(arity int) *jsonschema.Schema {
	s := &jsonschema.Schema{
		Type:  "array",
		Items: numberSchema(),
	}
	if arity >= 0 {
		s.Description = fmt.Sprintf("exactly %d numbers", arity)
	}
	return s
}
