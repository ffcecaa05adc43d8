package store

import (
	"encoding/json"
	"fmt"
	"os"
)

// writeJSONFile rewrites path with the pretty-printed JSON encoding of v.
// Whole-file overwrite, single attempt, no locking; two writers can corrupt
// the file, which is acceptable for a single-conversation demo.
func writeJSONFile(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal %s: %w", path, err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// readJSONFile decodes path into v. Missing files are reported via
// os.IsNotExist on the returned error.
func readJSONFile(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	return nil
}
