/*
Package jsonrpc implements the JSON-RPC 2.0 message model: typed request and
response envelopes, the dual-typed id, and the decode-error taxonomy, plus
thin HTTP client/server glue over them.

The envelopes are immutable value records; the only protocol behaviour is
the parse/serialize pair, which are mutual inverses for every value the
package can construct.
*/
package jsonrpc

import "encoding/json"

// Version is the protocol tag every JSON-RPC 2.0 message carries.
const Version = "2.0"

// RawRequest is a request whose params are left undecoded, the shape
// transport glue works with before the application picks a params type.
type RawRequest = Request[string, json.RawMessage]

// RawResponse is a response whose result is left undecoded.
type RawResponse = Response[json.RawMessage]

func isNullValue(raw json.RawMessage) bool {
	return string(raw) == "null"
}
