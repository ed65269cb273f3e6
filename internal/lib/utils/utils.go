// Package utils contains small helpers that don't belong to a specific
// domain.
package utils

import (
	"encoding/json"
	"io"
)

// PrintJSON writes v to w as tab-indented JSON followed by a newline.
func PrintJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "\t")
	return enc.Encode(v)
}
