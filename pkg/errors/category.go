package errors

/*
Category names the standardized meaning of a JSON-RPC error code. It only
classifies; it never validates or mutates the error it came from.
*/
type Category int

const (
	// NoError means the code is not one of the protocol-reserved codes.
	// It does not mean the request succeeded.
	NoError Category = iota
	ParseError
	InvalidRequest
	MethodNotFound
	InvalidParams
	InternalError
	// ServerError covers the implementation-defined range -32000 to -32099.
	ServerError
)

func (c Category) String() string {
	switch c {
	case ParseError:
		return "parse error"
	case InvalidRequest:
		return "invalid request"
	case MethodNotFound:
		return "method not found"
	case InvalidParams:
		return "invalid params"
	case InternalError:
		return "internal error"
	case ServerError:
		return "server error"
	default:
		return "no error"
	}
}

/*
Classify maps a JSON-RPC error code onto its reserved-code category. Codes
outside the reserved ranges classify as NoError.
*/
func Classify(code int64) Category {
	switch code {
	case -32700:
		return ParseError
	case -32600:
		return InvalidRequest
	case -32601:
		return MethodNotFound
	case -32602:
		return InvalidParams
	case -32603:
		return InternalError
	}

	if code >= -32099 && code <= -32000 {
		return ServerError
	}

	return NoError
}

// Category classifies the error's code. Advisory only.
func (e *RpcError) Category() Category {
	return Classify(e.Code)
}
