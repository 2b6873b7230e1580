package eventfile

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parseDoc(t *testing.T, src string) any {
	t.Helper()
	var v any
	require.NoError(t, json.Unmarshal([]byte(src), &v))
	return v
}

func findingPaths(findings []Finding, sev Severity) []string {
	var paths []string
	for _, f := range findings {
		if f.Severity == sev {
			paths = append(paths, f.Path.String())
		}
	}
	return paths
}

const validDoc = `{
	"event42": {
		"event number": 42,
		"run number": 7,
		"Tracks": [{
			"pos": [[0, 0, 0], [10.5, -3.2, 99.0]],
			"color": "0xff0000",
			"dparams": [1, 2, 3, 4, 5],
			"d0": 0.1, "z0": 0.2, "phi": 1.5, "eta": -0.3
		}],
		"Jets": [{
			"eta": 1.0, "phi": 2.0,
			"theta": 0.5, "energy": 100.0, "et": 50.0, "coneR": 0.4,
			"color": "#cccccc"
		}],
		"Hits": [
			[1, 2, 3],
			{"pos": [1, 2, 3, 4, 5, 6], "type": "Line", "color": "#00ff00"},
			{"pos": [1, 2, 3]}
		],
		"CaloClusters": [{"energy": 5.0, "phi": 0.1, "eta": 0.2}],
		"CaloCells": [{"energy": 6.0, "phi": 0.3, "eta": 0.4}],
		"PlanarCaloCells": [{
			"plane": [0, 0, 1, 0],
			"cells": [{"cellSize": 1.0, "energy": 2.0, "pos": [3, 4], "color": "#fff"}]
		}],
		"Vertices": [{"x": 0.0, "y": 0.0, "z": 0.0, "color": "#123456"}],
		"MissingEnergy": [{"etx": 1.0, "ety": 2.0}],
		"Muons": [{"Clusters": [], "Tracks": []}],
		"Photons": [],
		"Electrons": []
	}
}`

func TestValidateConformingDocument(t *testing.T) {
	led := Validate(parseDoc(t, validDoc))
	assert.Empty(t, led.All(), "conforming document must produce no findings")
	assert.True(t, led.IsValid())
}

func TestValidateEmptyRootIsValid(t *testing.T) {
	led := Validate(parseDoc(t, `{}`))
	assert.True(t, led.IsValid())
	assert.Zero(t, led.Len())
}

func TestValidateRootMustBeObject(t *testing.T) {
	led := Validate(parseDoc(t, `[1, 2, 3]`))
	require.Len(t, led.All(), 1)
	f := led.All()[0]
	assert.Equal(t, SeverityError, f.Severity)
	assert.Equal(t, "/", f.Path.String())
	assert.Equal(t, "root must be an object, found array", f.Message)
}

func TestValidateMissingRequiredFieldPath(t *testing.T) {
	led := Validate(parseDoc(t, `{"evt1": {"Tracks": [{}]}}`))

	require.Len(t, led.All(), 1)
	f := led.All()[0]
	assert.Equal(t, SeverityError, f.Severity)
	assert.Equal(t, `missing required field "pos"`, f.Message)
	assert.Equal(t, Path{}.Key("evt1").Key("Tracks").Index(0).Key("pos"), f.Path)
}

func TestValidateUnknownKindIsWarningOnly(t *testing.T) {
	led := Validate(parseDoc(t, `{"evt1": {"Tracks": [], "unknownKind": []}}`))

	require.Len(t, led.All(), 1)
	f := led.All()[0]
	assert.Equal(t, SeverityWarning, f.Severity)
	assert.Equal(t, "/evt1/unknownKind", f.Path.String())
	assert.True(t, led.IsValid(), "unrecognized kinds never block validity")
}

func TestValidateDoesNotStopAtFirstError(t *testing.T) {
	// Two independent malformed records in two different collections.
	doc := parseDoc(t, `{
		"evt": {
			"Vertices": [{"x": 1, "y": 2}],
			"MissingEnergy": [{"etx": 1}]
		}
	}`)
	led := Validate(doc)

	errPaths := findingPaths(led.All(), SeverityError)
	assert.Contains(t, errPaths, "/evt/MissingEnergy/0/ety")
	assert.Contains(t, errPaths, "/evt/Vertices/0/z")
}

func TestValidateTypeMismatchContainment(t *testing.T) {
	// A wrong value kind abandons that subtree but nothing else.
	doc := parseDoc(t, `{
		"evt1": {"Tracks": "oops"},
		"evt2": {"Jets": [{"phi": 1.0}]}
	}`)
	led := Validate(doc)

	require.Len(t, led.All(), 2)
	errPaths := findingPaths(led.All(), SeverityError)
	assert.Equal(t, []string{"/evt1/Tracks", "/evt2/Jets/0/eta"}, errPaths)
	assert.Contains(t, led.All()[0].Message, "collection must be an array")
}

func TestValidateIdempotent(t *testing.T) {
	doc := parseDoc(t, `{
		"evt": {
			"Tracks": [{"pos": "bad"}, {}],
			"Jets": 5,
			"mystery": []
		}
	}`)

	first := Validate(doc)
	second := Validate(doc)
	assert.Equal(t, first.All(), second.All())
}

func TestValidateValidityIffNoErrors(t *testing.T) {
	docs := []string{
		`{}`,
		validDoc,
		`{"evt": {"unknownKind": []}}`,
		`{"evt": {"Tracks": [{}]}}`,
		`{"evt": 1}`,
		`[1]`,
		`{"evt": {"Vertices": [{"x": 1, "y": 2, "z": 3, "extra": true}]}}`,
	}
	for _, src := range docs {
		led := Validate(parseDoc(t, src))
		hasError := len(findingPaths(led.All(), SeverityError)) > 0
		assert.Equal(t, !hasError, led.IsValid(), "doc: %s", src)
	}
}

func TestValidateStructuralCases(t *testing.T) {
	tests := []struct {
		name     string
		doc      string
		errors   []string
		warnings []string
	}{
		{
			name:   "event must be an object",
			doc:    `{"evt": 3}`,
			errors: []string{"/evt"},
		},
		{
			name:   "event identifier must not be empty",
			doc:    `{"": {"Tracks": []}}`,
			errors: []string{"/"},
		},
		{
			name:   "metadata must be numeric",
			doc:    `{"evt": {"run number": "seven"}}`,
			errors: []string{"/evt/run number"},
		},
		{
			name:   "record must be an object",
			doc:    `{"evt": {"Jets": [5]}}`,
			errors: []string{"/evt/Jets/0"},
		},
		{
			name:   "dparams arity",
			doc:    `{"evt": {"Tracks": [{"pos": [], "dparams": [1, 2, 3]}]}}`,
			errors: []string{"/evt/Tracks/0/dparams"},
		},
		{
			name:   "pos entry must be a triple",
			doc:    `{"evt": {"Tracks": [{"pos": [[1, 2], [1, 2, 3]]}]}}`,
			errors: []string{"/evt/Tracks/0/pos/0"},
		},
		{
			name:   "pos coordinate must be a number",
			doc:    `{"evt": {"Tracks": [{"pos": [[1, 2, "x"]]}]}}`,
			errors: []string{"/evt/Tracks/0/pos/0/2"},
		},
		{
			name:   "color must be a string",
			doc:    `{"evt": {"Vertices": [{"x": 1, "y": 2, "z": 3, "color": 5}]}}`,
			errors: []string{"/evt/Vertices/0/color"},
		},
		{
			name:     "unknown record field is a warning",
			doc:      `{"evt": {"Vertices": [{"x": 1, "y": 2, "z": 3, "extra": true}]}}`,
			warnings: []string{"/evt/Vertices/0/extra"},
		},
		{
			name:   "bare hit must be a triple",
			doc:    `{"evt": {"Hits": [[1, 2]]}}`,
			errors: []string{"/evt/Hits/0"},
		},
		{
			name:   "point hit needs three coordinates",
			doc:    `{"evt": {"Hits": [{"pos": [1, 2, 3, 4, 5, 6]}]}}`,
			errors: []string{"/evt/Hits/0/pos"},
		},
		{
			name:   "invalid hit type",
			doc:    `{"evt": {"Hits": [{"pos": [1, 2, 3, 4, 5, 6], "type": "Sphere"}]}}`,
			errors: []string{"/evt/Hits/0/type"},
		},
		{
			name:   "hit must be object or triple",
			doc:    `{"evt": {"Hits": ["x"]}}`,
			errors: []string{"/evt/Hits/0"},
		},
		{
			name:   "planar cell pos arity",
			doc:    `{"evt": {"PlanarCaloCells": [{"plane": [1, 2, 3, 4], "cells": [{"cellSize": 1, "energy": 2, "pos": [1, 2, 3]}]}]}}`,
			errors: []string{"/evt/PlanarCaloCells/0/cells/0/pos"},
		},
		{
			name:   "planar record needs cells",
			doc:    `{"evt": {"PlanarCaloCells": [{"plane": [1, 2, 3, 4]}]}}`,
			errors: []string{"/evt/PlanarCaloCells/0/cells"},
		},
		{
			name:   "compound collection must be an array",
			doc:    `{"evt": {"Muons": {}}}`,
			errors: []string{"/evt/Muons"},
		},
		{
			name: "compound elements are unchecked",
			doc:  `{"evt": {"Electrons": [42, "anything"]}}`,
		},
		{
			name:   "empty collections are valid",
			doc:    `{"evt": {"Tracks": [], "Hits": [], "Photons": []}}`,
			errors: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			led := Validate(parseDoc(t, tt.doc))
			assert.Equal(t, tt.errors, findingPaths(led.All(), SeverityError))
			assert.Equal(t, tt.warnings, findingPaths(led.All(), SeverityWarning))
		})
	}
}

func TestValidateRejectsNonFiniteNumbers(t *testing.T) {
	// JSON text cannot encode NaN, but programmatic callers can.
	doc := map[string]any{
		"evt": map[string]any{
			"Jets": []any{
				map[string]any{"eta": math.NaN(), "phi": 1.0},
			},
		},
	}
	led := Validate(doc)

	errPaths := findingPaths(led.All(), SeverityError)
	require.Len(t, errPaths, 1)
	assert.Equal(t, "/evt/Jets/0/eta", errPaths[0])
	assert.Contains(t, led.All()[0].Message, "finite")
}

func TestValidateAcceptsIntegerValues(t *testing.T) {
	// YAML-converted documents carry Go ints rather than float64.
	doc := map[string]any{
		"evt": map[string]any{
			"event number": int(3),
			"Vertices": []any{
				map[string]any{"x": int64(1), "y": uint64(2), "z": float32(3)},
			},
		},
	}
	assert.True(t, Validate(doc).IsValid())
}
