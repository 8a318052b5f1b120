package jsonrpc

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync/atomic"

	"github.com/google/uuid"
)

/*
Client issues JSON-RPC 2.0 calls over HTTP POST. Request ids are numeric by
default, drawn from an atomic counter so concurrent callers never reuse an
id; WithTextIDs switches to UUID string ids for transports that correlate
on opaque strings.
*/
type Client struct {
	URL     string
	Client  *http.Client
	textIDs bool
	seq     atomic.Int64
}

type ClientOption func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(httpClient *http.Client) ClientOption {
	return func(c *Client) {
		c.Client = httpClient
	}
}

// WithTextIDs makes the client correlate calls with UUID string ids
// instead of counter-based numeric ids.
func WithTextIDs() ClientOption {
	return func(c *Client) {
		c.textIDs = true
	}
}

func NewClient(url string, options ...ClientOption) *Client {
	client := &Client{
		URL:    url,
		Client: &http.Client{},
	}

	for _, option := range options {
		option(client)
	}

	return client
}

func (c *Client) nextID() *ID {
	if c.textIDs {
		id := TextID(uuid.NewString())
		return &id
	}

	id := NumberID(c.seq.Add(1))
	return &id
}

/*
Call invokes method with the given params and decodes the result into
result (which may be nil to discard it). An error response from the peer is
returned as the decoded *errors.RpcError.
*/
func (c *Client) Call(
	ctx context.Context,
	method string,
	params any,
	result any,
) error {
	resp, err := c.roundTrip(ctx, method, params, c.nextID())

	if err != nil {
		return err
	}

	if resp.Error != nil {
		return resp.Error
	}

	if result != nil && resp.Result != nil {
		if err := json.Unmarshal(*resp.Result, result); err != nil {
			return errTypeMismatch("result", err)
		}
	}

	return nil
}

/*
Notify sends a notification: the request carries no id and no response
body is expected or decoded.
*/
func (c *Client) Notify(ctx context.Context, method string, params any) error {
	_, err := c.roundTrip(ctx, method, params, nil)
	return err
}

func (c *Client) roundTrip(
	ctx context.Context,
	method string,
	params any,
	id *ID,
) (*RawResponse, error) {
	if c.Client == nil {
		c.Client = http.DefaultClient
	}

	var rawParams *json.RawMessage

	if params != nil {
		b, err := json.Marshal(params)

		if err != nil {
			return nil, err
		}

		raw := json.RawMessage(b)
		rawParams = &raw
	}

	payload := NewRequest(method, rawParams, id)

	body, err := payload.Serialize()

	if err != nil {
		return nil, err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.URL, bytes.NewReader(body))

	if err != nil {
		return nil, err
	}

	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.Client.Do(httpReq)

	if err != nil {
		return nil, err
	}

	defer resp.Body.Close()

	// Notifications carry no response body, but a non-2xx status still
	// means the server never accepted the message.
	if id == nil {
		if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
			return nil, fmt.Errorf("unexpected HTTP status %d", resp.StatusCode)
		}

		return nil, nil
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected HTTP status %d", resp.StatusCode)
	}

	var rpcResp RawResponse

	if err := json.NewDecoder(resp.Body).Decode(&rpcResp); err != nil {
		return nil, err
	}

	return &rpcResp, nil
}
