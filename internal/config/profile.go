package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/tidwall/jsonc"
)

// LoadProfile reads a JSONC file of flag defaults, for example
//
//	{
//	  // AES-compatible Rijndael
//	  "cipher": "rijndael",
//	  "mode": "ctr",
//	  "modulus": "1b",
//	}
//
// Keys are flag names; the result is meant to be merged below flags and environment.
func LoadProfile(path string) (map[string]any, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path is from user-supplied config
	if err != nil {
		return nil, fmt.Errorf("reading profile %q: %w", path, err)
	}

	clean := jsonc.ToJSONInPlace(data)

	var settings map[string]any
	if err := json.Unmarshal(clean, &settings); err != nil {
		return nil, fmt.Errorf("parsing profile %q: %w", path, err)
	}

	return settings, nil
}
