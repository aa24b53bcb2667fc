// Package http writes the API's JSON replies
// successes are enveloped or bare, failures always carry the envelope
package http

import (
	"encoding/json"
	"net/http"

	perr "rewardsched/internal/platform/errors"
	pnet "rewardsched/internal/platform/net"
)

// Envelope is the body shape of enveloped replies and of every error
type Envelope struct {
	StatusCode int            `json:"status_code"`
	Status     string         `json:"status"`
	Code       perr.ErrorCode `json:"code,omitempty"`
	Error      string         `json:"error,omitempty"`
	Field      string         `json:"field,omitempty"`
	RequestID  string         `json:"request_id,omitempty"`
	Data       any            `json:"data,omitempty"`
}

// Response is what return-style handlers hand back
type Response struct {
	Status int
	Body   any
	Raw    bool // write Body as is on success
}

// OK is a 200 enveloped reply
func OK(data any) Response { return Response{Status: http.StatusOK, Body: data} }

// Raw is a 200 reply without the envelope
func Raw(data any) Response { return Response{Status: http.StatusOK, Body: data, Raw: true} }

// Error maps err to its status and envelope
func Error(err error) Response { return Response{Body: err} }

// Handle adapts a Response returning func to net/http
func Handle(h func(*http.Request) Response) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		resp := h(r)
		if err, ok := resp.Body.(error); ok && err != nil {
			WriteError(w, r, err)
			return
		}
		status := resp.Status
		if status == 0 {
			status = http.StatusOK
		}
		if resp.Raw {
			writeJSON(w, status, resp.Body)
			return
		}
		writeJSON(w, status, Envelope{
			StatusCode: status,
			Status:     http.StatusText(status),
			RequestID:  pnet.RequestID(r.Context()),
			Data:       resp.Body,
		})
	}
}

// WriteError writes the error envelope for err, middleware uses it directly
func WriteError(w http.ResponseWriter, r *http.Request, err error) {
	status := perr.HTTPStatus(err)
	wire := perr.WireFrom(err)
	writeJSON(w, status, Envelope{
		StatusCode: status,
		Status:     http.StatusText(status),
		Code:       wire.Code,
		Error:      wire.Message,
		Field:      wire.Field,
		RequestID:  pnet.RequestID(r.Context()),
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
