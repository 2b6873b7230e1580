// Package eventfile validates parsed JSON documents against the
// Phoenix event file format.
//
// The input is the universal value type produced by encoding/json
// (nil, bool, float64, string, []any, map[string]any). Validation is a
// single depth-first traversal that never stops at the first problem:
// every deviation is recorded as a Finding in a Ledger, tagged with the
// path at which it was detected, and the caller decides what to do with
// the full list.
package eventfile

import (
	"fmt"
	"math"
	"sort"
)

// Validate checks root against the event file format and returns the
// ledger of findings. It always returns a ledger and never fails on
// malformed input data; an empty ledger means the document conforms.
func Validate(root any) *Ledger {
	led := NewLedger()
	checkRoot(root, Path{}, led)
	return led
}

// checkRoot expects the document root to be an object mapping event
// identifiers to event entries. An empty root is valid.
func checkRoot(v any, path Path, led *Ledger) {
	doc, ok := v.(map[string]any)
	if !ok {
		led.Errorf(path, "root must be an object, found %s", typeName(v))
		return
	}
	for _, name := range sortedKeys(doc) {
		ep := path.Key(name)
		if name == "" {
			led.Errorf(ep, "event identifier must not be empty")
		}
		checkEvent(doc[name], ep, led)
	}
}

// checkEvent expects an object whose keys are either recognized
// collection kinds or metadata entries. Unrecognized keys are warned
// about and skipped: the format allows forward-compatible extensions.
func checkEvent(v any, path Path, led *Ledger) {
	evt, ok := v.(map[string]any)
	if !ok {
		led.Errorf(path, "event must be an object, found %s", typeName(v))
		return
	}
	for _, key := range sortedKeys(evt) {
		kp := path.Key(key)
		if metadataKeys[key] {
			checkNumber(evt[key], kp, led)
			continue
		}
		kind, ok := KindByName(key)
		if !ok {
			led.Warnf(kp, "unknown collection kind %q", key)
			continue
		}
		checkCollection(kind, evt[key], kp, led)
	}
}

// checkCollection expects an array of records and dispatches each
// element to the kind's record check. A malformed element never stops
// the remaining elements from being checked.
func checkCollection(kind Kind, v any, path Path, led *Ledger) {
	c, ok := contracts[kind]
	if !ok {
		// A kind with no registered contract is a programming defect,
		// not a data defect.
		panic(fmt.Sprintf("eventfile: no contract registered for kind %s", kind))
	}
	arr, ok := v.([]any)
	if !ok {
		led.Errorf(path, "%s collection must be an array, found %s", kind, typeName(v))
		return
	}
	if c.record == nil {
		return
	}
	for i, rec := range arr {
		c.record(rec, path.Index(i), led)
	}
}

// objectRecord builds the generic record check for kinds whose records
// are plain objects with a fixed field contract. Missing required
// fields and type mismatches are errors; fields outside the contract
// are warnings only.
func objectRecord(label string, fields []Field) recordCheck {
	known := make(map[string]bool, len(fields))
	for _, f := range fields {
		known[f.Name] = true
	}
	return func(v any, path Path, led *Ledger) {
		rec, ok := v.(map[string]any)
		if !ok {
			led.Errorf(path, "%s record must be an object, found %s", label, typeName(v))
			return
		}
		for _, f := range fields {
			fp := path.Key(f.Name)
			val, present := rec[f.Name]
			if !present {
				if f.Required {
					led.Errorf(fp, "missing required field %q", f.Name)
				}
				continue
			}
			checkField(f, val, fp, led)
		}
		for _, key := range sortedKeys(rec) {
			if !known[key] {
				led.Warnf(path.Key(key), "unknown field %q", key)
			}
		}
	}
}

// checkField validates a single present field against its contract
// entry.
func checkField(f Field, v any, path Path, led *Ledger) {
	switch f.Type {
	case Number:
		checkNumber(v, path, led)
	case String:
		if _, ok := v.(string); !ok {
			led.Errorf(path, "expected a string, found %s", typeName(v))
		}
	case NumberTuple:
		checkNumberTuple(v, f.Arity, path, led)
	case TripleList:
		arr, ok := v.([]any)
		if !ok {
			led.Errorf(path, "expected an array of [x, y, z] triples, found %s", typeName(v))
			return
		}
		for i, pos := range arr {
			checkNumberTuple(pos, 3, path.Index(i), led)
		}
	case HitType:
		checkHitType(v, path, led)
	case CellList:
		arr, ok := v.([]any)
		if !ok {
			led.Errorf(path, "expected an array of cell records, found %s", typeName(v))
			return
		}
		for i, cell := range arr {
			planarCellCheck(cell, path.Index(i), led)
		}
	default:
		panic(fmt.Sprintf("eventfile: no check routine for field type %d", f.Type))
	}
}

var (
	hitObjectCheck  recordCheck
	planarCellCheck recordCheck
)

// Assigned in init rather than in the var block: the closures returned
// by objectRecord reach checkField, which refers back to these
// variables, and the compiler rejects that as an initialization cycle.
func init() {
	hitObjectCheck = objectRecord("hit", hitFields)
	planarCellCheck = objectRecord("cell", planarCellFields)
}

// checkHitRecord handles the two accepted hit forms: a bare [x, y, z]
// coordinate triple, or a hit object whose "pos" arity depends on its
// "type" (3 coordinates for Point, 6 for Line and Box).
func checkHitRecord(v any, path Path, led *Ledger) {
	switch hit := v.(type) {
	case []any:
		checkNumberTuple(hit, 3, path, led)
	case map[string]any:
		hitObjectCheck(hit, path, led)
		pos, ok := hit["pos"].([]any)
		if !ok {
			return
		}
		typ := "Point"
		if t, isStr := hit["type"].(string); isStr {
			typ = t
		}
		want := 6
		if typ == "Point" {
			want = 3
		}
		if len(pos) != want {
			led.Errorf(path.Key("pos"), "expected %d coordinates for a %s hit, got %d", want, typ, len(pos))
		}
	default:
		led.Errorf(path, "hit record must be an object or a coordinate triple, found %s", typeName(v))
	}
}

// checkHitType accepts exactly the strings "Point", "Line" and "Box".
func checkHitType(v any, path Path, led *Ledger) {
	s, ok := v.(string)
	if !ok {
		led.Errorf(path, "expected a string, found %s", typeName(v))
		return
	}
	switch s {
	case "Point", "Line", "Box":
	default:
		led.Errorf(path, "invalid hit type %q, valid values are Point, Line and Box", s)
	}
}

// checkNumberTuple expects an array of exactly arity finite numbers.
// A negative arity skips the length check.
func checkNumberTuple(v any, arity int, path Path, led *Ledger) {
	arr, ok := v.([]any)
	if !ok {
		if arity >= 0 {
			led.Errorf(path, "expected an array of %d numbers, found %s", arity, typeName(v))
		} else {
			led.Errorf(path, "expected an array of numbers, found %s", typeName(v))
		}
		return
	}
	if arity >= 0 && len(arr) != arity {
		led.Errorf(path, "expected %d entries, got %d", arity, len(arr))
		return
	}
	for i, item := range arr {
		checkNumber(item, path.Index(i), led)
	}
}

// checkNumber records at most one finding: wrong type, or a non-finite
// value. JSON text can never encode NaN or infinities, but callers
// constructing values programmatically can.
func checkNumber(v any, path Path, led *Ledger) {
	n, ok := numericValue(v)
	if !ok {
		led.Errorf(path, "expected a number, found %s", typeName(v))
		return
	}
	if math.IsNaN(n) || math.IsInf(n, 0) {
		led.Errorf(path, "expected a finite number, got %v", n)
	}
}

// numericValue widens any Go numeric type to float64. encoding/json
// produces only float64, but YAML-converted documents carry ints.
func numericValue(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	default:
		return 0, false
	}
}

// typeName names a parsed JSON value's kind using JSON vocabulary.
func typeName(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case bool:
		return "boolean"
	case string:
		return "string"
	case []any:
		return "array"
	case map[string]any:
		return "object"
	default:
		if _, ok := numericValue(v); ok {
			return "number"
		}
		return fmt.Sprintf("%T", v)
	}
}

// sortedKeys returns the object's keys in sorted order so traversal,
// and therefore finding order, is deterministic.
func sortedKeys(obj map[string]any) []string {
	keys := make([]string, 0, len(obj))
	for k := range obj {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
