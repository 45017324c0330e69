package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/avenka29/Hackathon-NCSU/internal/config"
)

// jsonOutput reports whether results should be printed as JSON.
func jsonOutput() bool {
	return config.GetDefaultOutputFormat() == config.OutputJSON
}

// writeJSON prints v as indented JSON.
func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encoding output: %w", err)
	}
	return nil
}
