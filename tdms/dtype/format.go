package dtype

import (
	"fmt"
	"reflect"
	"time"
)

// Format renders a decoded property or sample value for display.
func Format(value any) string {
	switch v := value.(type) {
	case time.Time:
		return v.Format(time.RFC3339Nano)
	case string:
		return fmt.Sprintf("%q", v)
	}
	return fmt.Sprint(value)
}

// FormatSlice renders at most limit elements of a typed sample slice, or all
// of them when limit is not positive.
func FormatSlice(values any, limit int) []string {
	if values == nil {
		return []string{}
	}
	v := reflect.ValueOf(values)
	if v.Kind() != reflect.Slice {
		return []string{Format(values)}
	}
	n := v.Len()
	if limit > 0 && limit < n {
		n = limit
	}
	result := make([]string, 0, n)
	for i := 0; i < n; i++ {
		result = append(result, Format(v.Index(i).Interface()))
	}
	return result
}
