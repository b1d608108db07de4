package connection

import (
	"fmt"
	"strings"

	"github.com/mitchellh/mapstructure"
)

// DecodeOverrides builds a Config from loosely typed key/value input such as UI
// selections or "--set key=value" flags. Keys match the mapstructure tags of
// Config, case-insensitively.
func DecodeOverrides(input map[string]any) (Config, error) {
	var cfg Config
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &cfg,
		WeaklyTypedInput: true,
		ErrorUnused:      true,
	})
	if err != nil {
		return Config{}, err
	}
	if err := decoder.Decode(input); err != nil {
		return Config{}, &OverrideError{Cause: err}
	}
	return cfg, nil
}

// ParseOverrides splits "key=value" pairs and decodes them with DecodeOverrides.
func ParseOverrides(pairs []string) (Config, error) {
	input := make(map[string]any, len(pairs))
	for _, p := range pairs {
		key, value, ok := strings.Cut(p, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return Config{}, &OverrideError{Cause: fmt.Errorf("%w: %q", ErrMalformedOverride, p)}
		}
		input[strings.ToLower(key)] = strings.TrimSpace(value)
	}
	return DecodeOverrides(input)
}
