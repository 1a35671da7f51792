package config

import (
	"errors"
	"fmt"

	"github.com/goccy/go-yaml"
)

// maxInputSize limits config input to prevent memory exhaustion.
var maxInputSize = 64 << 10

var errEmptyInput = errors.New("empty config file")

// unmarshalStrict decodes data into v and rejects unknown fields, so a typo
// like "singal:" fails loudly instead of being ignored.
func unmarshalStrict(data []byte, v any) error {
	if len(data) == 0 {
		return errEmptyInput
	}
	if len(data) > maxInputSize {
		return fmt.Errorf("input exceeds maximum size: %d bytes (max %d)", len(data), maxInputSize)
	}
	if err := yaml.UnmarshalWithOptions(data, v, yaml.Strict()); err != nil {
		return fmt.Errorf("yaml: %w", err)
	}
	return nil
}
