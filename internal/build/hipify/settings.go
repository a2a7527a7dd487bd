package hipify

import (
	"fmt"

	"github.com/rocm-build/amdify/internal/build/infra/filesystem"
)

// ValidateSettings checks that the disabled-features settings file parses as
// a JSON object before its path is handed to the hipify tool. The meaning of
// the keys is owned by that tool; a malformed file should fail in the driver
// rather than deep inside the translation pass.
func ValidateSettings(reader filesystem.Reader, path string) error {
	if _, err := reader.ReadJSONObject(path); err != nil {
		return fmt.Errorf("invalid hipify settings file: %w", err)
	}
	return nil
}
