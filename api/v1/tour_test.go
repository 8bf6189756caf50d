package v1

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestAliasTopTours(t *testing.T) {
	gin.SetMode(gin.TestMode)

	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, "/api/v1/tours/top-5-tours?limit=999&sort=price", nil)

	AliasTopTours(c)

	query := c.Request.URL.Query()
	if got := query.Get("limit"); got != "5" {
		t.Errorf("expected limit 5, got %q", got)
	}
	if got := query.Get("sort"); got != "-ratingsAverage,price" {
		t.Errorf("expected preset sort, got %q", got)
	}
	if got := query.Get("fields"); got == "" {
		t.Error("expected a preset field projection")
	}
}

func TestParseLatLng(t *testing.T) {
	cases := []struct {
		raw     string
		lat     float64
		lng     float64
		wantErr bool
	}{
		{"34.111745,-118.113491", 34.111745, -118.113491, false},
		{"-33.8688, 151.2093", -33.8688, 151.2093, false},
		{"34.111745", 0, 0, true},
		{"north,west", 0, 0, true},
		{"", 0, 0, true},
	}

	for _, tc := range cases {
		lat, lng, err := parseLatLng(tc.raw)
		if tc.wantErr {
			if err == nil {
				t.Errorf("parseLatLng(%q): expected error", tc.raw)
			}
			continue
		}
		if err != nil {
			t.Errorf("parseLatLng(%q) failed: %v", tc.raw, err)
			continue
		}
		if lat != tc.lat || lng != tc.lng {
			t.Errorf("parseLatLng(%q) = (%v, %v), expected (%v, %v)", tc.raw, lat, lng, tc.lat, tc.lng)
		}
	}
}
