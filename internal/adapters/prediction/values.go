package prediction

import (
	"bytes"
	"encoding/json"
	"fmt"

	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"
)

// DecodeInstance converts JSON text into the structured value sent to the endpoint.
// Objects, arrays, scalars and null are all accepted. A repeated object key keeps its last value.
func DecodeInstance(data []byte) (*structpb.Value, error) {
	var raw interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInstance, err)
	}

	instance, err := structpb.NewValue(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInstance, err)
	}
	return instance, nil
}

// DecodeValues converts a JSON array into a list of structured values
func DecodeValues(data []byte) ([]*structpb.Value, error) {
	list := &structpb.ListValue{}
	if err := protojson.Unmarshal(data, list); err != nil {
		return nil, fmt.Errorf("decode value list: %w", err)
	}
	return list.GetValues(), nil
}

// EncodePredictions serializes predictions to a JSON array, preserving their order
func EncodePredictions(predictions []*structpb.Value) ([]byte, error) {
	out := make([]interface{}, len(predictions))
	for i, p := range predictions {
		out[i] = p.AsInterface()
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(out); err != nil {
		return nil, fmt.Errorf("encode predictions: %w", err)
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}
