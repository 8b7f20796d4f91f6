// Package projector reduces raw JSON API results to the column subset a
// playbook step declares. Projection is total: it never fails, and the
// produced rows always carry exactly the declared columns.
package projector

import (
	"encoding/json"
	"strconv"
	"strings"
)

// ListDelimiter joins list-valued fields into a single CSV cell.
const ListDelimiter = ";"

// Row maps a declared column name to its stringified value. Column
// order is carried by the step's output_filter, not by the map.
type Row map[string]string

// Project reduces one JSON object to the declared columns. Columns that
// do not resolve in result come out as empty strings, never an error.
func Project(result any, filter []string) Row {
	row := make(Row, len(filter))
	for _, col := range filter {
		row[col] = Format(lookup(result, col))
	}
	return row
}

// Rows flattens a raw result into projected rows: one row per element
// for list results, a single row for object results, nothing for nil.
func Rows(result any, filter []string) []Row {
	switch v := result.(type) {
	case nil:
		return nil
	case []any:
		rows := make([]Row, 0, len(v))
		for _, item := range v {
			rows = append(rows, Project(item, filter))
		}
		return rows
	default:
		return []Row{Project(v, filter)}
	}
}

// lookup resolves a column name against a decoded JSON value. A flat
// key match wins; otherwise the name is walked as a dotted path into
// nested objects. Anything unresolvable yields nil.
func lookup(v any, col string) any {
	obj, ok := v.(map[string]any)
	if !ok {
		return nil
	}
	if val, ok := obj[col]; ok {
		return val
	}
	current := v
	for _, key := range strings.Split(col, ".") {
		m, ok := current.(map[string]any)
		if !ok {
			return nil
		}
		current, ok = m[key]
		if !ok {
			return nil
		}
	}
	return current
}

// Format stringifies one JSON value for a CSV cell. Lists join their
// formatted elements with ListDelimiter; nested objects degrade to
// compact JSON rather than being dropped.
func Format(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case bool:
		return strconv.FormatBool(val)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case []any:
		parts := make([]string, len(val))
		for i, item := range val {
			parts[i] = Format(item)
		}
		return strings.Join(parts, ListDelimiter)
	case map[string]any:
		data, err := json.Marshal(val)
		if err != nil {
			return ""
		}
		return string(data)
	default:
		data, err := json.Marshal(val)
		if err != nil {
			return ""
		}
		return string(data)
	}
}
