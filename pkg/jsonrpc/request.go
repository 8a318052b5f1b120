package jsonrpc

import (
	"encoding/json"
	"errors"
)

/*
Request is a JSON-RPC 2.0 request envelope. M is the method type (typically
string), P the params payload type. A nil ID marks the request as a
notification: no response is expected and the dispatcher must not send one.

On the wire the params and id keys are always present, carrying null when
the corresponding field is absent.
*/
type Request[M, P any] struct {
	JSONRPC string `json:"jsonrpc"`
	Method  M      `json:"method"`
	Params  *P     `json:"params"`
	ID      *ID    `json:"id"`
}

// NewRequest builds a request envelope with the protocol tag set. Pass a
// nil id to build a notification.
func NewRequest[M, P any](method M, params *P, id *ID) *Request[M, P] {
	return &Request[M, P]{
		JSONRPC: Version,
		Method:  method,
		Params:  params,
		ID:      id,
	}
}

// NewNotification builds a request envelope without an id.
func NewNotification[M, P any](method M, params *P) *Request[M, P] {
	return NewRequest(method, params, nil)
}

// IsNotification reports whether the request carries no id.
func (req *Request[M, P]) IsNotification() bool {
	return req.ID == nil
}

// Serialize renders the envelope as JSON text.
func (req *Request[M, P]) Serialize() ([]byte, error) {
	return json.Marshal(req)
}

/*
UnmarshalJSON decodes a request envelope. The method key is required; params
and id each treat an absent key and an explicit null the same way, as "not
provided". Every failure is a *DecodeError.
*/
func (req *Request[M, P]) UnmarshalJSON(data []byte) error {
	var raw struct {
		JSONRPC json.RawMessage `json:"jsonrpc"`
		Method  json.RawMessage `json:"method"`
		Params  json.RawMessage `json:"params"`
		ID      json.RawMessage `json:"id"`
	}

	if err := json.Unmarshal(data, &raw); err != nil {
		var syntaxErr *json.SyntaxError

		if errors.As(err, &syntaxErr) {
			return errMalformed(err)
		}

		return errTypeMismatch("", err)
	}

	if len(raw.JSONRPC) != 0 && !isNullValue(raw.JSONRPC) {
		if err := json.Unmarshal(raw.JSONRPC, &req.JSONRPC); err != nil {
			return errTypeMismatch("jsonrpc", err)
		}
	}

	if len(raw.Method) == 0 || isNullValue(raw.Method) {
		return errMissingField("method")
	}

	if err := json.Unmarshal(raw.Method, &req.Method); err != nil {
		return errTypeMismatch("method", err)
	}

	if len(raw.Params) != 0 && !isNullValue(raw.Params) {
		params := new(P)

		if err := json.Unmarshal(raw.Params, params); err != nil {
			return errTypeMismatch("params", err)
		}

		req.Params = params
	}

	if len(raw.ID) != 0 && !isNullValue(raw.ID) {
		var id ID

		if err := id.UnmarshalJSON(raw.ID); err != nil {
			return err
		}

		req.ID = &id
	}

	return nil
}

// ParseRequest decodes JSON text into a request envelope.
func ParseRequest[M, P any](data []byte) (*Request[M, P], error) {
	req := new(Request[M, P])

	if err := req.UnmarshalJSON(data); err != nil {
		return nil, err
	}

	return req, nil
}
