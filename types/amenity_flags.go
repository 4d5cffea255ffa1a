package types

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// AmenityFlags is the wizard's {amenityKey: bool} map. A regular Go map
// would lose the order keys appeared in, but the stored amenity list must
// keep the source map's insertion order, so decoding walks the JSON tokens
// and remembers key positions.
type AmenityFlags struct {
	keys   []string
	values map[string]bool
}

func (a *AmenityFlags) UnmarshalJSON(data []byte) error {
	a.keys = nil
	a.values = make(map[string]bool)

	trimmed := bytes.TrimSpace(data)
	if bytes.Equal(trimmed, []byte("null")) {
		return nil
	}

	dec := json.NewDecoder(bytes.NewReader(trimmed))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("amenities must be a JSON object")
	}

	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("amenities key is not a string")
		}

		var value bool
		if err := dec.Decode(&value); err != nil {
			return fmt.Errorf("amenity %q must have a boolean value", key)
		}

		if _, seen := a.values[key]; !seen {
			a.keys = append(a.keys, key)
		}
		a.values[key] = value
	}

	// closing brace
	_, err = dec.Token()
	return err
}

// Enabled returns the keys whose flag is true, in insertion order.
func (a AmenityFlags) Enabled() []string {
	enabled := []string{}
	for _, key := range a.keys {
		if a.values[key] {
			enabled = append(enabled, key)
		}
	}
	return enabled
}
