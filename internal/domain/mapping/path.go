package mapping

import "strings"

// PathSeparator delimits segments of a field path, e.g. "address.city".
const PathSeparator = "."

// Get returns the value at the dot-delimited path inside record.
// It returns nil as soon as any intermediate segment is missing or not a
// nested record; it never panics and never mutates the record.
func Get(record map[string]any, path string) any {
	if record == nil || path == "" {
		return nil
	}

	var current any = record
	for _, segment := range strings.Split(path, PathSeparator) {
		nested, ok := current.(map[string]any)
		if !ok {
			return nil
		}
		current, ok = nested[segment]
		if !ok {
			return nil
		}
	}
	return current
}

// Set writes value at the dot-delimited path inside record, creating nested
// records for intermediate segments as needed. An intermediate value that is
// not a nested record is replaced with a fresh one, discarding the prior
// value. The final segment always overwrites. Set mutates record in place.
func Set(record map[string]any, path string, value any) {
	if record == nil || path == "" {
		return
	}

	segments := strings.Split(path, PathSeparator)
	current := record
	for _, segment := range segments[:len(segments)-1] {
		nested, ok := current[segment].(map[string]any)
		if !ok {
			nested = make(map[string]any)
			current[segment] = nested
		}
		current = nested
	}
	current[segments[len(segments)-1]] = value
}
