package report

import (
	"fmt"
	"io"

	"github.com/goccy/go-json"
	"github.com/tartampluch/go-corrected-age/internal/config"
)

// WriteJSON encodes v as indented JSON followed by a newline.
func WriteJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("%s: %w", config.ErrJSONEncode, err)
	}
	return nil
}
