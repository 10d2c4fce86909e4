package grid

import (
	"encoding/json"
	"fmt"

	"github.com/hazelcast/hazelcast-go-client/serialization"
)

// toGridValue maps a decoded JSON argument onto the value stored on the
// cluster. Scalars go in natively; objects and arrays become
// HazelcastJsonValue (serialization.JSON) so any client, in any language,
// can read them back without a registered class.
func toGridValue(value any) (any, error) {
	switch value.(type) {
	case nil, bool, string, float64, int, int64:
		return value, nil
	case map[string]any, []any:
		data, err := json.Marshal(value)
		if err != nil {
			return nil, fmt.Errorf("encoding value as JSON: %w", err)
		}
		return serialization.JSON(data), nil
	default:
		data, err := json.Marshal(value)
		if err != nil {
			return nil, fmt.Errorf("encoding value of type %T as JSON: %w", value, err)
		}
		return serialization.JSON(data), nil
	}
}

// fromGridValue converts a value read from the cluster back into plain Go
// data for tool output. HazelcastJsonValue payloads are decoded; everything
// else passes through.
func fromGridValue(value any) any {
	if jsonValue, ok := value.(serialization.JSON); ok {
		var decoded any
		if err := json.Unmarshal(jsonValue, &decoded); err != nil {
			// Not valid JSON after all; the raw text is still useful.
			return string(jsonValue)
		}
		return decoded
	}
	return value
}
