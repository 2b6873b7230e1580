package report

import "fmt"

// Preview limits keep offending-value snippets readable: long arrays
// and strings are trimmed with an indicator, deep nesting is cut off.
const (
	previewMaxArrayItems = 3
	previewMaxStringLen  = 80
	previewMaxDepth      = 2
)

func compactValue(v any, depth int) any {
	if depth > previewMaxDepth {
		return "[max depth]"
	}

	switch val := v.(type) {
	case []any:
		return compactArray(val, depth)
	case map[string]any:
		result := make(map[string]any, len(val))
		for k, item := range val {
			result[k] = compactValue(item, depth+1)
		}
		return result
	case string:
		if len(val) <= previewMaxStringLen {
			return val
		}
		return val[:previewMaxStringLen] + fmt.Sprintf("... (%d more chars)", len(val)-previewMaxStringLen)
	default:
		return v
	}
}

func compactArray(arr []any, depth int) []any {
	if len(arr) <= previewMaxArrayItems {
		result := make([]any, len(arr))
		for i, item := range arr {
			result[i] = compactValue(item, depth+1)
		}
		return result
	}

	result := make([]any, previewMaxArrayItems+1)
	for i := 0; i < previewMaxArrayItems; i++ {
		result[i] = compactValue(arr[i], depth+1)
	}
	result[previewMaxArrayItems] = fmt.Sprintf("... (%d more items)", len(arr)-previewMaxArrayItems)
	return result
}
