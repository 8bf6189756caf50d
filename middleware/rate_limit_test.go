package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/fitaafita/backend/models"
)

func TestRateLimit(t *testing.T) {
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.Use(RateLimit(3, time.Hour))
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "success"})
	})

	request := func() int {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		req.RemoteAddr = "203.0.113.9:1234"
		router.ServeHTTP(w, req)
		return w.Code
	}

	for i := 0; i < 3; i++ {
		if code := request(); code != http.StatusOK {
			t.Fatalf("request %d: expected 200, got %d", i+1, code)
		}
	}

	if code := request(); code != http.StatusTooManyRequests {
		t.Errorf("expected 429 after burst, got %d", code)
	}
}

func TestRateLimitSeparatesClients(t *testing.T) {
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.Use(RateLimit(1, time.Hour))
	router.GET("/ping", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	request := func(addr string) int {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		req.RemoteAddr = addr
		router.ServeHTTP(w, req)
		return w.Code
	}

	if code := request("203.0.113.1:1000"); code != http.StatusOK {
		t.Fatalf("first client blocked: %d", code)
	}
	if code := request("203.0.113.1:1000"); code != http.StatusTooManyRequests {
		t.Fatalf("first client not limited: %d", code)
	}
	if code := request("203.0.113.2:1000"); code != http.StatusOK {
		t.Errorf("second client should have its own budget, got %d", code)
	}
}

func TestRoleAllowed(t *testing.T) {
	cases := []struct {
		name    string
		role    models.Role
		allowed []models.Role
		want    bool
	}{
		{"admin in admin list", models.RoleAdmin, []models.Role{models.RoleAdmin}, true},
		{"guide in mixed list", models.RoleGuide, []models.Role{models.RoleAdmin, models.RoleLeadGuide, models.RoleGuide}, true},
		{"user outside staff list", models.RoleUser, []models.Role{models.RoleAdmin, models.RoleLeadGuide}, false},
		{"empty list denies all", models.RoleAdmin, nil, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := RoleAllowed(tc.role, tc.allowed); got != tc.want {
				t.Errorf("RoleAllowed(%q, %v) = %v, expected %v", tc.role, tc.allowed, got, tc.want)
			}
		})
	}
}
