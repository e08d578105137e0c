package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// Numeric is a JSON scalar that may arrive as a string, a number or null.
// It keeps the raw text so values are displayed exactly as they were stored.
type Numeric struct {
	text   string
	valid  bool
	quoted bool
}

// NumericText returns a Numeric that marshals as a JSON string
func NumericText(s string) Numeric {
	return Numeric{text: s, valid: true, quoted: true}
}

// NumericFloat returns a Numeric that marshals as a JSON number
func NumericFloat(f float64) Numeric {
	return Numeric{text: strconv.FormatFloat(f, 'f', -1, 64), valid: true}
}

// NumericInt returns a Numeric that marshals as a JSON number
func NumericInt(i int64) Numeric {
	return Numeric{text: strconv.FormatInt(i, 10), valid: true}
}

// Valid reports whether a value (possibly empty) was supplied
func (n Numeric) Valid() bool {
	return n.valid
}

// String returns the raw text, empty when absent
func (n Numeric) String() string {
	return n.text
}

// TextOr returns the raw text, or def when absent or empty
func (n Numeric) TextOr(def string) string {
	if !n.valid || n.text == "" {
		return def
	}
	return n.text
}

// Truthy follows loose UI truthiness: absent, empty string, false and
// numeric zero are false
func (n Numeric) Truthy() bool {
	if !n.valid {
		return false
	}
	if n.quoted {
		return n.text != ""
	}
	switch n.text {
	case "false", "":
		return false
	case "true":
		return true
	}
	f, err := strconv.ParseFloat(n.text, 64)
	return err != nil || f != 0
}

func (n Numeric) MarshalJSON() ([]byte, error) {
	if !n.valid {
		return []byte("null"), nil
	}
	if n.quoted {
		return json.Marshal(n.text)
	}
	return []byte(n.text), nil
}

func (n *Numeric) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*n = Numeric{}
		return nil
	}

	switch data[0] {
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*n = NumericText(s)
	case '{', '[':
		return fmt.Errorf("numeric value expected, got %s", string(data))
	default:
		*n = Numeric{text: string(data), valid: true}
	}
	return nil
}
