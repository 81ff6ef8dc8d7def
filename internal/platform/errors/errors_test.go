package errors

import (
	stderrs "errors"
	"fmt"
	"net/http"
	"testing"
)

func TestHTTPStatusCode(t *testing.T) {
	cases := []struct {
		code ErrorCode
		want int
	}{
		{ErrorCodeValidation, http.StatusBadRequest},
		{ErrorCodeJSON, http.StatusBadRequest},
		{ErrorCodeInvalidArgument, http.StatusUnprocessableEntity},
		{ErrorCodeUnauthorized, http.StatusUnauthorized},
		{ErrorCodeUnavailable, http.StatusServiceUnavailable},
		{ErrorCodeNotFound, http.StatusNotFound},
		{ErrorCodeDB, http.StatusInternalServerError},
		{ErrorCodePanic, http.StatusInternalServerError},
		{ErrorCodeUnknown, http.StatusInternalServerError},
		{999, http.StatusInternalServerError},
	}
	for _, c := range cases {
		if got := HTTPStatusCode(c.code); got != c.want {
			t.Errorf("HTTPStatusCode(%d) = %d, want %d", c.code, got, c.want)
		}
	}
}

func TestWrapKeepsCause(t *testing.T) {
	cause := stderrs.New("disk full")
	err := Wrapf(cause, ErrorCodeDB, "save snapshot %s", "default")

	if err.Error() != "save snapshot default: disk full" {
		t.Fatalf("Error() = %q", err.Error())
	}
	if !stderrs.Is(err, cause) {
		t.Fatalf("cause lost")
	}
	if !IsCode(fmt.Errorf("outer: %w", err), ErrorCodeDB) {
		t.Fatalf("code lost through fmt wrapping")
	}
	if HTTPStatus(err) != http.StatusInternalServerError {
		t.Fatalf("HTTPStatus = %d", HTTPStatus(err))
	}
}

func TestFieldAndOpAreCopies(t *testing.T) {
	base := New(ErrorCodeValidation, "unknown language")
	withField := WithField(base, "correct_language")
	withOp := WithOp(withField, "submit_correction")

	if e, _ := As(base); e.Field() != "" || e.Op() != "" {
		t.Fatalf("base mutated: %+v", e)
	}
	e, ok := As(withOp)
	if !ok || e.Field() != "correct_language" || e.Op() != "submit_correction" {
		t.Fatalf("got %+v", e)
	}

	foreign := stderrs.New("plain")
	if WithField(foreign, "x") != foreign || WithOp(foreign, "x") != foreign {
		t.Fatalf("foreign errors should pass through")
	}
}

func TestWireFrom(t *testing.T) {
	if WireFrom(nil) != (Wire{}) {
		t.Fatalf("nil should map to zero wire")
	}

	w := WireFrom(WithField(Wrap(stderrs.New("io"), ErrorCodeInvalidArgument, "bad dictionary"), "file"))
	if w != (Wire{Code: ErrorCodeInvalidArgument, Message: "bad dictionary", Field: "file"}) {
		t.Fatalf("wire = %+v", w)
	}

	w = WireFrom(stderrs.New("boom"))
	if w.Code != ErrorCodeUnknown || w.Message != "boom" {
		t.Fatalf("foreign wire = %+v", w)
	}
}

func TestSugarCodes(t *testing.T) {
	cases := map[ErrorCode]error{
		ErrorCodeJSON:         JSONErrf("invalid JSON: %v", "eof"),
		ErrorCodePanic:        PanicErrf("panic recovered"),
		ErrorCodeUnauthorized: Unauthorizedf("missing token"),
	}
	for want, err := range cases {
		if !IsCode(err, want) {
			t.Errorf("%v: code = %d, want %d", err, CodeOf(err), want)
		}
	}
	var nilErr *Error
	if nilErr.Error() != "<nil>" {
		t.Fatalf("nil render = %q", nilErr.Error())
	}
}
