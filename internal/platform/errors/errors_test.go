package errors

import (
	"context"
	stderrs "errors"
	"fmt"
	"net/http"
	"testing"
)

func TestHTTPStatusCodeMapping(t *testing.T) {
	cases := []struct {
		code ErrorCode
		want int
	}{
		{ErrorCodeInvalidArgument, http.StatusUnprocessableEntity},
		{ErrorCodeValidation, http.StatusBadRequest},
		{ErrorCodeJSON, http.StatusBadRequest},
		{ErrorCodeNotFound, http.StatusNotFound},
		{ErrorCodeUnavailable, http.StatusServiceUnavailable},
		{ErrorCodeTimeout, http.StatusGatewayTimeout},
		{ErrorCodeDB, http.StatusInternalServerError},
		{ErrorCodePanic, http.StatusInternalServerError},
		{ErrorCodeUnknown, http.StatusInternalServerError},
		{9999, http.StatusInternalServerError},
	}
	for _, c := range cases {
		if got := HTTPStatusCode(c.code); got != c.want {
			t.Fatalf("HTTPStatusCode(%v) = %d, want %d", c.code, got, c.want)
		}
	}
}

func TestErrorRenderAndUnwrap(t *testing.T) {
	var e *Error
	if e.Error() != "<nil>" {
		t.Fatalf("nil *Error render = %q", e.Error())
	}

	if got := Newf(ErrorCodeJSON, "bad json %d", 12).Error(); got != "bad json 12" {
		t.Fatalf("Newf render = %q", got)
	}

	src := stderrs.New("root")
	w := Wrapf(src, ErrorCodeDB, "query %s", "orders")
	if got := w.Error(); got != "query orders: root" {
		t.Fatalf("Wrapf render = %q", got)
	}
	if !stderrs.Is(w, src) {
		t.Fatalf("Wrapf lost cause")
	}
	if CodeOf(w) != ErrorCodeDB {
		t.Fatalf("CodeOf(Wrapf) = %v", CodeOf(w))
	}
}

func TestCodeOfForeignErrors(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want ErrorCode
	}{
		{"nil", nil, ErrorCodeUnknown},
		{"plain", stderrs.New("x"), ErrorCodeUnknown},
		{"deadline", fmt.Errorf("fetch: %w", context.DeadlineExceeded), ErrorCodeTimeout},
		{"canceled", context.Canceled, ErrorCodeTimeout},
		{"wrapped coded", fmt.Errorf("outer: %w", NotFoundf("asset %d", 4)), ErrorCodeNotFound},
	}
	for _, c := range cases {
		if got := CodeOf(c.err); got != c.want {
			t.Fatalf("%s: CodeOf = %v, want %v", c.name, got, c.want)
		}
	}
}

func TestWithFieldCopies(t *testing.T) {
	base := InvalidArgf("month %d out of range", 13)
	withField := WithField(base, "month")

	w := WireFrom(withField)
	if w.Field != "month" || w.Code != ErrorCodeInvalidArgument || w.Message != "month 13 out of range" {
		t.Fatalf("wire = %+v", w)
	}
	if WireFrom(base).Field != "" {
		t.Fatalf("WithField mutated the original")
	}

	plain := stderrs.New("plain")
	if WithField(plain, "x") != plain {
		t.Fatalf("foreign error should pass through")
	}
}

func TestWireFromForeign(t *testing.T) {
	if w := WireFrom(nil); w != (Wire{}) {
		t.Fatalf("nil wire = %+v", w)
	}
	w := WireFrom(stderrs.New("boom"))
	if w.Code != ErrorCodeUnknown || w.Message != "boom" {
		t.Fatalf("foreign wire = %+v", w)
	}
}

func TestHTTPStatusAndIsCode(t *testing.T) {
	if HTTPStatus(nil) != http.StatusOK {
		t.Fatalf("nil status")
	}
	if HTTPStatus(Validationf("x")) != http.StatusBadRequest {
		t.Fatalf("validation status")
	}
	if !IsCode(Unavailablef("down"), ErrorCodeUnavailable) {
		t.Fatalf("IsCode unavailable")
	}
	if IsCode(nil, ErrorCodeUnknown) {
		t.Fatalf("IsCode(nil) should be false")
	}
	if PanicErrf("p").(*Error).Code().String() != "panic" {
		t.Fatalf("panic code name")
	}
	if ErrorCode(77).String() != "unknown" {
		t.Fatalf("unknown code name")
	}
}
