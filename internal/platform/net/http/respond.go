package http

import (
	"encoding/json"
	stdhttp "net/http"

	"maintkpi/internal/platform/logger"
	pnet "maintkpi/internal/platform/net"
)

// JSON writes v as application/json with status
func JSON(w stdhttp.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// RespondOK writes a 200 envelope around data
func RespondOK(w stdhttp.ResponseWriter, r *stdhttp.Request, data any) {
	status, body := pnet.OK(data, pnet.RequestID(r.Context()))
	JSON(w, status, body)
}

// RespondError writes the error envelope. Server side failures are logged here, once
func RespondError(w stdhttp.ResponseWriter, r *stdhttp.Request, err error) {
	status, body := pnet.Error(err, pnet.RequestID(r.Context()))
	if status >= stdhttp.StatusInternalServerError {
		logger.C(r.Context()).Error().Err(err).Int("status", status).Str("path", r.URL.Path).Msg("request failed")
	}
	JSON(w, status, body)
}

// Response is what return style handlers produce
type Response struct {
	Status int
	Body   any
	Err    error
}

// OK returns a 200 response
func OK(data any) Response { return Response{Status: stdhttp.StatusOK, Body: data} }

// Error returns a response whose status derives from err
func Error(err error) Response { return Response{Err: err} }

// Handle adapts a return style handler
func Handle(h func(r *stdhttp.Request) Response) Handler {
	return func(w stdhttp.ResponseWriter, r *stdhttp.Request) {
		resp := h(r)
		if resp.Err != nil {
			RespondError(w, r, resp.Err)
			return
		}
		if resp.Status == stdhttp.StatusNoContent {
			w.WriteHeader(stdhttp.StatusNoContent)
			return
		}
		if resp.Status == 0 || resp.Status == stdhttp.StatusOK {
			RespondOK(w, r, resp.Body)
			return
		}
		JSON(w, resp.Status, pnet.Wire{
			StatusCode: resp.Status,
			Status:     stdhttp.StatusText(resp.Status),
			RequestID:  pnet.RequestID(r.Context()),
			Data:       resp.Body,
		})
	}
}
