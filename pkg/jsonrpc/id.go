package jsonrpc

import (
	"bytes"
	"encoding/json"
	"strconv"
)

type idKind uint8

const (
	idNumber idKind = iota
	idText
)

/*
ID is a JSON-RPC request identifier: either a 64-bit integer or a string,
never both. The two variants round-trip to their original JSON kind, so a
numeric-looking string id like "1" stays a string on the wire and is never
equal to the number 1.

The zero value is the numeric id 0. A JSON null id is not an ID value at
all; envelopes represent "no id" as a nil *ID.
*/
type ID struct {
	kind idKind
	num  int64
	str  string
}

// NumberID constructs the numeric variant.
func NumberID(n int64) ID {
	return ID{kind: idNumber, num: n}
}

// TextID constructs the string variant.
func TextID(s string) ID {
	return ID{kind: idText, str: s}
}

// IsNumber reports whether the numeric variant is active.
func (id ID) IsNumber() bool {
	return id.kind == idNumber
}

// IsText reports whether the string variant is active.
func (id ID) IsText() bool {
	return id.kind == idText
}

// Number returns the numeric payload and whether that variant is active.
func (id ID) Number() (int64, bool) {
	return id.num, id.kind == idNumber
}

// Text returns the string payload and whether that variant is active.
func (id ID) Text() (string, bool) {
	return id.str, id.kind == idText
}

/*
String renders the id for logging. Text ids are quoted so that
NumberID(1) and TextID("1") remain distinguishable in output.
*/
func (id ID) String() string {
	if id.kind == idText {
		return strconv.Quote(id.str)
	}

	return strconv.FormatInt(id.num, 10)
}

// MarshalJSON emits a JSON number for the numeric variant and a JSON
// string for the text variant.
func (id ID) MarshalJSON() ([]byte, error) {
	if id.kind == idText {
		return json.Marshal(id.str)
	}

	return strconv.AppendInt(nil, id.num, 10), nil
}

/*
UnmarshalJSON accepts a JSON number (integral, within int64 range) or a
JSON string. Anything else, JSON null included, fails with an
UnsupportedIDType decode error: null means "no id" and must be handled by
the envelope, not turned into an ID.
*/
func (id *ID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)

	// Unmarshaling null into an int64 is a no-op, so it would slip
	// through the numeric branch as NumberID(0). Reject it up front.
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return errUnsupportedIDType()
	}

	if data[0] == '"' {
		var s string

		if err := json.Unmarshal(data, &s); err != nil {
			return errTypeMismatch("id", err)
		}

		*id = TextID(s)
		return nil
	}

	var n int64

	if err := json.Unmarshal(data, &n); err != nil {
		return errUnsupportedIDType()
	}

	*id = NumberID(n)
	return nil
}
