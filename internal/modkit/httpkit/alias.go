// Package httpkit is the slice of the platform http package modules use
package httpkit

import (
	"net/http"

	phttp "maintkpi/internal/platform/net/http"
)

type (
	// Router is the mount surface
	Router = phttp.Router
	// Handler is a route handler
	Handler = phttp.Handler
	// Response is what return style handlers produce
	Response = phttp.Response
)

// OK returns a 200 response
func OK(data any) Response { return phttp.OK(data) }

// Error returns a response whose status derives from err
func Error(err error) Response { return phttp.Error(err) }

// Handle adapts a return style handler
func Handle(fn func(*http.Request) Response) Handler { return phttp.Handle(fn) }
