package jsonrpc

import "fmt"

/*
DecodeErrorKind discriminates the ways decoding a JSON-RPC message can fail.
All decode failures are local and terminal; retrying is a transport concern.
*/
type DecodeErrorKind int

const (
	// KindMalformed means the input is not syntactically valid JSON.
	KindMalformed DecodeErrorKind = iota
	// KindMissingField means a required key is absent.
	KindMissingField
	// KindUnsupportedIDType means the id value is neither number, string, nor null.
	KindUnsupportedIDType
	// KindTypeMismatch means a field's JSON value cannot be decoded into its
	// declared type.
	KindTypeMismatch
)

func (k DecodeErrorKind) String() string {
	switch k {
	case KindMalformed:
		return "malformed"
	case KindMissingField:
		return "missing field"
	case KindUnsupportedIDType:
		return "unsupported id type"
	case KindTypeMismatch:
		return "type mismatch"
	default:
		return "unknown"
	}
}

/*
DecodeError is the typed failure returned by every parse path in this
package. Field names the offending key where one exists; Err carries the
underlying encoding/json error where one exists.
*/
type DecodeError struct {
	Kind  DecodeErrorKind
	Field string
	Err   error
}

func (e *DecodeError) Error() string {
	switch {
	case e.Field != "" && e.Err != nil:
		return fmt.Sprintf("jsonrpc: %s %q: %v", e.Kind, e.Field, e.Err)
	case e.Field != "":
		return fmt.Sprintf("jsonrpc: %s %q", e.Kind, e.Field)
	case e.Err != nil:
		return fmt.Sprintf("jsonrpc: %s: %v", e.Kind, e.Err)
	default:
		return fmt.Sprintf("jsonrpc: %s", e.Kind)
	}
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

func errMalformed(err error) *DecodeError {
	return &DecodeError{Kind: KindMalformed, Err: err}
}

func errMissingField(field string) *DecodeError {
	return &DecodeError{Kind: KindMissingField, Field: field}
}

func errUnsupportedIDType() *DecodeError {
	return &DecodeError{Kind: KindUnsupportedIDType, Field: "id"}
}

func errTypeMismatch(field string, err error) *DecodeError {
	return &DecodeError{Kind: KindTypeMismatch, Field: field, Err: err}
}
