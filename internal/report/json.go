package report

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/itchyny/gojq"
)

// RenderJSON writes the reports as a JSON array. When jqExpr is
// non-empty the array is first passed through the jq expression and
// each produced value is written on its own line.
func RenderJSON(w io.Writer, reports []*Report, jqExpr string) error {
	if jqExpr == "" {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(reports)
	}

	query, err := gojq.Parse(jqExpr)
	if err != nil {
		return fmt.Errorf("invalid jq expression: %w", err)
	}
	code, err := gojq.Compile(query)
	if err != nil {
		return fmt.Errorf("compiling jq expression: %w", err)
	}

	// Round-trip through JSON so gojq sees plain values.
	data, err := json.Marshal(reports)
	if err != nil {
		return err
	}
	var input any
	if err := json.Unmarshal(data, &input); err != nil {
		return err
	}

	enc := json.NewEncoder(w)
	iter := code.Run(input)
	for {
		v, ok := iter.Next()
		if !ok {
			break
		}
		if jqErr, isErr := v.(error); isErr {
			return fmt.Errorf("jq: %w", jqErr)
		}
		if err := enc.Encode(v); err != nil {
			return err
		}
	}
	return nil
}
