// Package jsonx holds JSON value types shared by the LIMS payloads.
package jsonx

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// ID is an entity identifier. The API sends some ids as numbers and
// others as strings; both decode into the same textual form.
type ID string

func (id ID) String() string { return string(id) }

// MarshalJSON writes numeric ids back as numbers so the API sees the type it sent.
func (id ID) MarshalJSON() ([]byte, error) {
	if isNumeric(string(id)) {
		return []byte(id), nil
	}
	return json.Marshal(string(id))
}

func isNumeric(s string) bool {
	if s == "" || len(s) > 18 || (len(s) > 1 && s[0] == '0') {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// IsZero reports whether the id is empty.
func (id ID) IsZero() bool { return id == "" }

func (id *ID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = ID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("id must be a string or number: %w", err)
	}
	*id = ID(n.String())
	return nil
}
