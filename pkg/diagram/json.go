package diagram

import (
	"encoding/json"
	"fmt"
)

// Marshal serializes a Diagram to pretty-printed JSON.
func Marshal(d Diagram) ([]byte, error) {
	return json.MarshalIndent(d, "", "  ")
}

// Unmarshal deserializes JSON bytes into a Diagram. The kind defaults to
// KindUnknown if absent so round-tripped documents always have a valid
// discriminator.
func Unmarshal(data []byte) (Diagram, error) {
	var d Diagram
	if err := json.Unmarshal(data, &d); err != nil {
		return Diagram{}, fmt.Errorf("unmarshal diagram: %w", err)
	}
	if d.Kind == "" {
		d.Kind = KindUnknown
	}
	return d, nil
}
