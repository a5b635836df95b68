package models

import (
	"encoding/json"
	"sort"
	"strings"
)

// FieldErrors maps field names to human-readable validation messages. It
// implements error so a repository can return every failing field in one
// value; callers that only look at the message still get a JSON object.
type FieldErrors map[string]string

// Error renders the field to message map as a JSON object. Rendering falls back
// to a flat "field: message" list if marshaling ever fails.
func (fe FieldErrors) Error() string {
	b, err := json.Marshal(map[string]string(fe))
	if err != nil {
		fields := make([]string, 0, len(fe))
		for f, msg := range fe {
			fields = append(fields, f+": "+msg)
		}
		sort.Strings(fields)
		return strings.Join(fields, "; ")
	}
	return string(b)
}

// Field returns the message recorded for a field, or "" if the field passed.
func (fe FieldErrors) Field(name string) string {
	return fe[name]
}
