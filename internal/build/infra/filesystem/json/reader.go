package json

import (
	"encoding/json"
	"fmt"
	"os"
)

// Reader handles JSON file reading for build assets.
type Reader struct{}

// NewReader creates a new filesystem reader.
func NewReader() *Reader {
	return &Reader{}
}

// ReadJSON reads and unmarshals JSON from path into target.
func (r *Reader) ReadJSON(path string, target any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}

	if err := json.Unmarshal(data, target); err != nil {
		return fmt.Errorf("failed to unmarshal %s: %w", path, err)
	}

	return nil
}

// ReadJSONObject reads path and requires its top-level value to be a JSON
// object. The object keys are returned as-is; their meaning is owned by the
// consumer of the file.
func (r *Reader) ReadJSONObject(path string) (map[string]any, error) {
	var obj map[string]any
	if err := r.ReadJSON(path, &obj); err != nil {
		return nil, err
	}
	if obj == nil {
		return nil, fmt.Errorf("%s does not contain a JSON object", path)
	}
	return obj, nil
}
