package service

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/tj/assert"

	"github.com/theapemachine/jsonrpc-go/pkg/errors"
	"github.com/theapemachine/jsonrpc-go/pkg/jsonrpc"
)

func echoHandler() jsonrpc.Handler {
	return jsonrpc.HandlerFunc(func(ctx context.Context, req *jsonrpc.RawRequest) (any, *errors.RpcError) {
		switch req.Method {
		case "echo":
			var v string

			if req.Params == nil {
				return nil, errors.ErrInvalidParams
			}

			if err := json.Unmarshal(*req.Params, &v); err != nil {
				return nil, errors.ErrInvalidParams
			}

			return v, nil
		default:
			return nil, errors.ErrMethodNotFound
		}
	})
}

func TestNewRPCService(t *testing.T) {
	srv := NewRPCService("test-service", echoHandler())

	assert.NotNil(t, srv)
	assert.NotNil(t, srv.App())
}

func TestRPCServiceEcho(t *testing.T) {
	srv := NewRPCService("test-service", echoHandler())

	body := `{"jsonrpc":"2.0","method":"echo","params":"hello","id":1}`
	req := httptest.NewRequest(http.MethodPost, "/rpc", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := srv.App().Test(req)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	raw, err := io.ReadAll(resp.Body)
	assert.NoError(t, err)

	rpcResp, err := jsonrpc.ParseResponse[string](raw)
	assert.NoError(t, err)
	assert.NotNil(t, rpcResp.Result)
	assert.Equal(t, "hello", *rpcResp.Result)
}

func TestRPCServiceUnknownMethod(t *testing.T) {
	srv := NewRPCService("test-service", echoHandler())

	body := `{"jsonrpc":"2.0","method":"missing","id":2}`
	req := httptest.NewRequest(http.MethodPost, "/rpc", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := srv.App().Test(req)
	assert.NoError(t, err)

	raw, err := io.ReadAll(resp.Body)
	assert.NoError(t, err)

	rpcResp, err := jsonrpc.ParseResponse[string](raw)
	assert.NoError(t, err)
	assert.NotNil(t, rpcResp.Error)
	assert.Equal(t, int64(-32601), rpcResp.Error.Code)
}

func TestRPCServiceHealthcheck(t *testing.T) {
	srv := NewRPCService("test-service", echoHandler())

	req := httptest.NewRequest(http.MethodGet, "/livez", nil)
	resp, err := srv.App().Test(req)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
