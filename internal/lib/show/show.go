// Package show prints VAM objects for humans.
package show

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/TylerBrock/colorjson"
	"github.com/fatih/color"
)

// NoColor disables colored output.
var NoColor = false

// JSON writes "--- title" line followed by v
// as indented JSON.
func JSON(w io.Writer, title string, v any) error {
	const op = "show.JSON"

	// colorjson formats only generic values
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	var generic any
	if err := dec.Decode(&generic); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	f := colorjson.NewFormatter()
	f.Indent = 2
	f.DisabledColor = NoColor || color.NoColor

	body, err := f.Marshal(generic)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	header := color.New(color.FgCyan, color.Bold)
	if NoColor {
		header.DisableColor()
	}

	if _, err := header.Fprintf(w, "--- %s\n", title); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if _, err := fmt.Fprintf(w, "%s\n", body); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}
