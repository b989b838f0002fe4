package models

import (
	"bytes"
	"encoding/json"
	"strconv"
)

// Item is anything a paged collection can hold.
type Item interface {
	ItemID() string
}

// flexString decodes a JSON string or number into its textual form. null
// and absent both yield "".
type flexString string

func (f *flexString) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*f = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*f = flexString(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*f = flexString(n.String())
	return nil
}

// firstID returns the first non-empty identifier spelling.
func firstID(mongoID, plainID flexString) string {
	if mongoID != "" {
		return string(mongoID)
	}
	return string(plainID)
}

func formatInt(n int) string {
	return strconv.Itoa(n)
}
