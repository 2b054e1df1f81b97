package api

import (
	"bytes"
	"encoding/json"
)

// NullableID tells an absent JSON id apart from an explicit null.
type NullableID struct {
	Set   bool
	Value *int64
}

// UnmarshalJSON is only called when the key is present.
func (n *NullableID) UnmarshalJSON(data []byte) error {
	n.Set = true
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		n.Value = nil
		return nil
	}
	var id int64
	if err := json.Unmarshal(data, &id); err != nil {
		return err
	}
	n.Value = &id
	return nil
}
