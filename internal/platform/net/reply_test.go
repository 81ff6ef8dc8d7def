package net

import (
	"net/http"
	"testing"

	perr "codemix/internal/platform/errors"
)

func TestSuccess(t *testing.T) {
	env := Success(http.StatusOK, map[string]string{"language": "tam"}, "r1")
	if env.StatusCode != 200 || env.Status != "OK" || env.RequestID != "r1" || env.Error != "" {
		t.Fatalf("envelope = %+v", env)
	}
}

func TestFailure(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
		code   perr.ErrorCode
		field  string
	}{
		{"validation", perr.WithField(perr.New(perr.ErrorCodeValidation, "text is required"), "text"), 400, perr.ErrorCodeValidation, "text"},
		{"oracle down", perr.New(perr.ErrorCodeUnavailable, "oracle unavailable"), 503, perr.ErrorCodeUnavailable, ""},
		{"token", perr.Unauthorizedf("missing bearer token"), 401, perr.ErrorCodeUnauthorized, ""},
		{"foreign", http.ErrBodyNotAllowed, 500, perr.ErrorCodeUnknown, ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			status, env := Failure(tc.err, "r2")
			if status != tc.status || env.StatusCode != tc.status {
				t.Fatalf("status = %d / %d, want %d", status, env.StatusCode, tc.status)
			}
			if env.Code != tc.code || env.Field != tc.field || env.RequestID != "r2" {
				t.Fatalf("envelope = %+v", env)
			}
			if env.Error == "" || env.Data != nil {
				t.Fatalf("error envelope = %+v", env)
			}
		})
	}
}
