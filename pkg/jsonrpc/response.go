package jsonrpc

import (
	"encoding/json"
	goerrors "errors"

	"github.com/theapemachine/jsonrpc-go/pkg/errors"
)

/*
Response is a JSON-RPC 2.0 response envelope; R is the result payload type.
A well-formed response carries exactly one of Result/Error, a rule the
constructors below uphold; observing both or neither is a caller defect,
not something this type checks structurally.

The ID echoes the originating request and is nil only when that id could
not be determined, e.g. when the request failed to parse before its id was
read. On the wire the id key is always present, null in that case.
*/
type Response[R any] struct {
	JSONRPC string           `json:"jsonrpc"`
	Result  *R               `json:"result"`
	Error   *errors.RpcError `json:"error"`
	ID      *ID              `json:"id"`
}

// NewResponse builds a success envelope for the given request id.
func NewResponse[R any](id *ID, result R) *Response[R] {
	return &Response[R]{
		JSONRPC: Version,
		Result:  &result,
		ID:      id,
	}
}

// NewErrorResponse builds an error envelope for the given request id.
func NewErrorResponse[R any](id *ID, rpcErr *errors.RpcError) *Response[R] {
	if rpcErr == nil {
		rpcErr = errors.ErrInternal
	}

	return &Response[R]{
		JSONRPC: Version,
		Error:   rpcErr,
		ID:      id,
	}
}

/*
MarshalJSON implements the minimal-error-response wire form: when an error
is present the result key is omitted entirely; otherwise the result key is
included (null when absent) alongside an explicit error: null.
*/
func (resp Response[R]) MarshalJSON() ([]byte, error) {
	if resp.Error != nil {
		return json.Marshal(struct {
			JSONRPC string           `json:"jsonrpc"`
			Error   *errors.RpcError `json:"error"`
			ID      *ID              `json:"id"`
		}{resp.JSONRPC, resp.Error, resp.ID})
	}

	return json.Marshal(struct {
		JSONRPC string           `json:"jsonrpc"`
		Result  *R               `json:"result"`
		Error   *errors.RpcError `json:"error"`
		ID      *ID              `json:"id"`
	}{resp.JSONRPC, resp.Result, resp.Error, resp.ID})
}

// Serialize renders the envelope as JSON text.
func (resp *Response[R]) Serialize() ([]byte, error) {
	return json.Marshal(resp)
}

/*
UnmarshalJSON decodes a response envelope. The id key is required, though
an explicit null id is accepted and surfaces as a nil ID. Result and error
decode only when present and non-null.
*/
func (resp *Response[R]) UnmarshalJSON(data []byte) error {
	var raw struct {
		JSONRPC json.RawMessage `json:"jsonrpc"`
		Result  json.RawMessage `json:"result"`
		Error   json.RawMessage `json:"error"`
		ID      json.RawMessage `json:"id"`
	}

	if err := json.Unmarshal(data, &raw); err != nil {
		var syntaxErr *json.SyntaxError

		if goerrors.As(err, &syntaxErr) {
			return errMalformed(err)
		}

		return errTypeMismatch("", err)
	}

	if len(raw.JSONRPC) != 0 && !isNullValue(raw.JSONRPC) {
		if err := json.Unmarshal(raw.JSONRPC, &resp.JSONRPC); err != nil {
			return errTypeMismatch("jsonrpc", err)
		}
	}

	if len(raw.ID) == 0 {
		return errMissingField("id")
	}

	if !isNullValue(raw.ID) {
		var id ID

		if err := id.UnmarshalJSON(raw.ID); err != nil {
			return err
		}

		resp.ID = &id
	}

	if len(raw.Result) != 0 && !isNullValue(raw.Result) {
		result := new(R)

		if err := json.Unmarshal(raw.Result, result); err != nil {
			return errTypeMismatch("result", err)
		}

		resp.Result = result
	}

	if len(raw.Error) != 0 && !isNullValue(raw.Error) {
		rpcErr := new(errors.RpcError)

		if err := json.Unmarshal(raw.Error, rpcErr); err != nil {
			return errTypeMismatch("error", err)
		}

		resp.Error = rpcErr
	}

	return nil
}

// ParseResponse decodes JSON text into a response envelope.
func ParseResponse[R any](data []byte) (*Response[R], error) {
	resp := new(Response[R])

	if err := resp.UnmarshalJSON(data); err != nil {
		return nil, err
	}

	return resp, nil
}
