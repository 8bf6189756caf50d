package utils

import (
	"net/http"
	"testing"
)

func TestAppErrorStatus(t *testing.T) {
	cases := []struct {
		code int
		want string
	}{
		{http.StatusBadRequest, "fail"},
		{http.StatusUnauthorized, "fail"},
		{http.StatusNotFound, "fail"},
		{http.StatusInternalServerError, "error"},
		{http.StatusBadGateway, "error"},
	}

	for _, tc := range cases {
		err := NewAppError("boom", tc.code)
		if got := err.Status(); got != tc.want {
			t.Errorf("status for code %d: expected %q, got %q", tc.code, tc.want, got)
		}
		if err.Error() != "boom" {
			t.Errorf("expected message to round-trip, got %q", err.Error())
		}
	}
}
