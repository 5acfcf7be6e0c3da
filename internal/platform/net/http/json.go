package http

import (
	"mime"
	"net/http"

	perr "maintkpi/internal/platform/errors"
	"maintkpi/internal/platform/net/http/bind"
)

// JSONHandler binds and validates the body into T before calling fn.
// A request that names a Content-Type other than application/json is refused before the body is read
func JSONHandler[T any](fn func(*http.Request, T) (any, error), opts ...bind.JSONOptions) Handler {
	return Handle(func(r *http.Request) Response {
		if err := jsonContent(r); err != nil {
			return Error(err)
		}
		in, err := bind.ParseJSON[T](r, opts...)
		if err != nil {
			return Error(err)
		}
		out, err := fn(r, in)
		if err != nil {
			return Error(err)
		}
		return OK(out)
	})
}

// JSONHandlerNoBody calls fn without reading a body
func JSONHandlerNoBody(fn func(*http.Request) (any, error)) Handler {
	return Handle(func(r *http.Request) Response {
		out, err := fn(r)
		if err != nil {
			return Error(err)
		}
		return OK(out)
	})
}

// a missing header passes, curl and most scripts leave it off
func jsonContent(r *http.Request) error {
	ct := r.Header.Get("Content-Type")
	if ct == "" {
		return nil
	}
	mt, _, err := mime.ParseMediaType(ct)
	if err != nil {
		return perr.JSONErrf("bad content type %q", ct)
	}
	if mt != "application/json" {
		return perr.JSONErrf("content type %s is not application/json", mt)
	}
	return nil
}
