package entities

import "encoding/json"

const secretMask = "**********"

// Secret holds a value that must never be rendered back to clients.
// It marshals to a fixed mask, or null when empty.
type Secret string

func (s Secret) MarshalJSON() ([]byte, error) {
	if s == "" {
		return []byte("null"), nil
	}
	return json.Marshal(secretMask)
}

func (s Secret) String() string {
	if s == "" {
		return ""
	}
	return secretMask
}
