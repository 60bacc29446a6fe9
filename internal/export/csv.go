package export

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"time"
)

// Column describes one CSV column over rows of type T.
// Format is applied only to present (non-nil) values.
type Column[T any] struct {
	Header string
	Value  func(T) any
	Format func(any) string
}

// GenerateCSV renders a header row followed by one row per element, joined by "\n".
// Every cell passes through EscapeCSV.
func GenerateCSV[T any](rows []T, cols []Column[T]) string {
	lines := make([]string, 0, len(rows)+1)

	headers := make([]string, len(cols))
	for i, c := range cols {
		headers[i] = EscapeCSV(c.Header)
	}
	lines = append(lines, strings.Join(headers, ","))

	for _, row := range rows {
		cells := make([]string, len(cols))
		for i, c := range cols {
			var v any
			if c.Value != nil {
				v = c.Value(row)
			}
			if c.Format != nil && !isAbsent(v) {
				v = c.Format(v)
			}
			cells[i] = EscapeCSV(v)
		}
		lines = append(lines, strings.Join(cells, ","))
	}

	return strings.Join(lines, "\n")
}

// EscapeCSV stringifies v and quotes it when it contains a comma, a double quote or a line break.
// Absent values (nil, nil pointers) become the empty string.
func EscapeCSV(v any) string {
	s := stringify(v)
	if strings.ContainsAny(s, ",\"\n\r") {
		return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
	}
	return s
}

func isAbsent(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice:
		return rv.IsNil()
	}
	return false
}

func stringify(v any) string {
	if isAbsent(v) {
		return ""
	}

	switch x := v.(type) {
	case string:
		return x
	case time.Time:
		if x.IsZero() {
			return ""
		}
		return x.UTC().Format(time.RFC3339)
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(x), 'f', -1, 32)
	case bool:
		return strconv.FormatBool(x)
	case fmt.Stringer:
		return x.String()
	}

	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Pointer {
		return stringify(rv.Elem().Interface())
	}
	return fmt.Sprint(v)
}
