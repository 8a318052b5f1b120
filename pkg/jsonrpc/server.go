package jsonrpc

import (
	"context"
	"encoding/json"
	goerrors "errors"
	"io"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/theapemachine/jsonrpc-go/pkg/errors"
)

/*
Handler executes a single decoded request. Routing method names onto
application logic is the handler's business, not this package's; the
server only speaks envelopes.
*/
type Handler interface {
	Handle(ctx context.Context, req *RawRequest) (any, *errors.RpcError)
}

// HandlerFunc adapts a plain function to the Handler interface.
type HandlerFunc func(ctx context.Context, req *RawRequest) (any, *errors.RpcError)

func (f HandlerFunc) Handle(ctx context.Context, req *RawRequest) (any, *errors.RpcError) {
	return f(ctx, req)
}

/*
Server parses JSON-RPC 2.0 requests off HTTP POST bodies, delegates to a
Handler, and writes the response envelope back. Notifications are answered
with 204 No Content and never produce an envelope. Safe for concurrent use
when the Handler is.
*/
type Server struct {
	handler Handler
}

func NewServer(handler Handler) *Server {
	return &Server{
		handler: handler,
	}
}

func (srv *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "only POST supported", http.StatusMethodNotAllowed)
		return
	}

	body, err := io.ReadAll(r.Body)

	if err != nil {
		respondError(w, nil, errors.ErrParseError)
		return
	}

	req, err := ParseRequest[string, json.RawMessage](body)

	if err != nil {
		var decodeErr *DecodeError

		if goerrors.As(err, &decodeErr) && decodeErr.Kind == KindMalformed {
			respondError(w, nil, errors.ErrParseError)
			return
		}

		respondError(w, nil, errors.ErrInvalidRequest.WithMessagef("invalid request: %v", err))
		return
	}

	if req.JSONRPC != Version || req.Method == "" {
		respondError(w, req.ID, errors.ErrInvalidRequest)
		return
	}

	result, rpcErr := srv.handler.Handle(r.Context(), req)

	// Notification – no id → no response envelope.
	if req.IsNotification() {
		if rpcErr != nil {
			log.Error("notification failed", "method", req.Method, "code", rpcErr.Code)
		}

		w.WriteHeader(http.StatusNoContent)
		return
	}

	if rpcErr != nil {
		log.Error(
			"request failed",
			"method", req.Method,
			"id", req.ID,
			"code", rpcErr.Code,
			"category", rpcErr.Category(),
		)
		respondError(w, req.ID, rpcErr)
		return
	}

	raw, err := json.Marshal(result)

	if err != nil {
		log.Error("failed to marshal result", "method", req.Method, "error", err)
		respondError(w, req.ID, errors.ErrInternal)
		return
	}

	writeResponse(w, NewResponse(req.ID, json.RawMessage(raw)))
}

func respondError(w http.ResponseWriter, id *ID, rpcErr *errors.RpcError) {
	writeResponse(w, NewErrorResponse[json.RawMessage](id, rpcErr))
}

func writeResponse(w http.ResponseWriter, resp *RawResponse) {
	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		log.Error("failed to write response", "error", err)
	}
}
