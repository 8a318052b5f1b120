package jsonrpc

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/theapemachine/jsonrpc-go/pkg/errors"
)

/*
recordingServer captures every request the client sends so that tests can
assert on the wire traffic after the call returns. The handler only records
and responds; assertions stay on the test goroutine, where goconvey
requires them.
*/
type recordingServer struct {
	srv      *httptest.Server
	seen     *RawRequest
	parseErr error
}

func newRecordingServer(respond func(w http.ResponseWriter, req *RawRequest)) *recordingServer {
	rec := &recordingServer{}

	rec.srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		rec.seen, rec.parseErr = ParseRequest[string, json.RawMessage](body)

		if rec.parseErr != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}

		respond(w, rec.seen)
	}))

	return rec
}

func TestClientCall(t *testing.T) {
	Convey("Given a server that subtracts positional params", t, func() {
		rec := newRecordingServer(func(w http.ResponseWriter, req *RawRequest) {
			var params []int
			if err := json.Unmarshal(*req.Params, &params); err != nil {
				w.WriteHeader(http.StatusBadRequest)
				return
			}

			w.Header().Set("Content-Type", "application/json")
			raw, _ := json.Marshal(params[0] - params[1])
			_ = json.NewEncoder(w).Encode(NewResponse(req.ID, json.RawMessage(raw)))
		})
		defer rec.srv.Close()

		client := NewClient(rec.srv.URL)

		Convey("When calling subtract", func() {
			var result int
			err := client.Call(context.Background(), "subtract", []int{42, 23}, &result)

			Convey("Then the result round-trips and the id is numeric", func() {
				So(err, ShouldBeNil)
				So(rec.parseErr, ShouldBeNil)
				So(result, ShouldEqual, 19)
				So(rec.seen.Method, ShouldEqual, "subtract")
				So(rec.seen.ID, ShouldNotBeNil)
				So(*rec.seen.ID, ShouldResemble, NumberID(1))
			})

			Convey("And a second call uses the next counter id", func() {
				So(client.Call(context.Background(), "subtract", []int{5, 3}, nil), ShouldBeNil)
				So(*rec.seen.ID, ShouldResemble, NumberID(2))
			})
		})
	})
}

func TestClientCallRPCError(t *testing.T) {
	Convey("Given a server that rejects every method", t, func() {
		rec := newRecordingServer(func(w http.ResponseWriter, req *RawRequest) {
			w.Header().Set("Content-Type", "application/json")
			_ = json.NewEncoder(w).Encode(NewErrorResponse[json.RawMessage](req.ID, errors.ErrMethodNotFound))
		})
		defer rec.srv.Close()

		client := NewClient(rec.srv.URL)

		Convey("When calling any method", func() {
			err := client.Call(context.Background(), "nope", nil, nil)

			Convey("Then the decoded RpcError is returned", func() {
				So(err, ShouldNotBeNil)

				rpcErr, ok := err.(*errors.RpcError)
				So(ok, ShouldBeTrue)
				So(rpcErr.Code, ShouldEqual, -32601)
				So(rpcErr.Category(), ShouldEqual, errors.MethodNotFound)
			})
		})
	})
}

func TestClientNotify(t *testing.T) {
	Convey("Given a server that records notifications", t, func() {
		rec := newRecordingServer(func(w http.ResponseWriter, req *RawRequest) {
			w.WriteHeader(http.StatusNoContent)
		})
		defer rec.srv.Close()

		client := NewClient(rec.srv.URL)

		Convey("When sending a notification", func() {
			err := client.Notify(context.Background(), "log", map[string]string{"level": "info"})

			Convey("Then no id is sent and no response is decoded", func() {
				So(err, ShouldBeNil)
				So(rec.parseErr, ShouldBeNil)
				So(rec.seen.ID, ShouldBeNil)
				So(rec.seen.IsNotification(), ShouldBeTrue)
			})
		})
	})
}

func TestClientNotifyServerFailure(t *testing.T) {
	Convey("Given a server that refuses notifications", t, func() {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "down for maintenance", http.StatusServiceUnavailable)
		}))
		defer srv.Close()

		client := NewClient(srv.URL)

		Convey("When sending a notification", func() {
			err := client.Notify(context.Background(), "log", nil)

			Convey("Then the HTTP failure is reported", func() {
				So(err, ShouldNotBeNil)
				So(err.Error(), ShouldContainSubstring, "503")
			})
		})
	})
}

func TestClientTextIDs(t *testing.T) {
	Convey("Given a client configured for text ids", t, func() {
		rec := newRecordingServer(func(w http.ResponseWriter, req *RawRequest) {
			w.Header().Set("Content-Type", "application/json")
			_ = json.NewEncoder(w).Encode(NewResponse(req.ID, json.RawMessage(`"ok"`)))
		})
		defer rec.srv.Close()

		client := NewClient(rec.srv.URL, WithTextIDs())

		Convey("When calling a method", func() {
			So(client.Call(context.Background(), "ping", nil, nil), ShouldBeNil)

			Convey("Then the request id is the text variant", func() {
				So(rec.seen.ID, ShouldNotBeNil)
				So(rec.seen.ID.IsText(), ShouldBeTrue)

				s, ok := rec.seen.ID.Text()
				So(ok, ShouldBeTrue)
				So(s, ShouldNotBeEmpty)
			})
		})
	})
}
