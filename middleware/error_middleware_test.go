package middleware

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/fitaafita/backend/utils"
)

func TestTranslateError(t *testing.T) {
	cases := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"operational error keeps its code", utils.NewAppError("nope", http.StatusForbidden), http.StatusForbidden},
		{"missing document", mongo.ErrNoDocuments, http.StatusNotFound},
		{"wrapped missing document", errors.Join(errors.New("find tour"), mongo.ErrNoDocuments), http.StatusNotFound},
		{"invalid object id", primitive.ErrInvalidHex, http.StatusBadRequest},
		{
			"duplicate key",
			mongo.WriteException{WriteErrors: []mongo.WriteError{{Code: 11000}}},
			http.StatusBadRequest,
		},
		{"malformed body", &json.SyntaxError{}, http.StatusBadRequest},
		{"empty body", io.EOF, http.StatusBadRequest},
		{"expired token", jwt.ErrTokenExpired, http.StatusUnauthorized},
		{"malformed token", jwt.ErrTokenMalformed, http.StatusUnauthorized},
		{"unknown error hidden", errors.New("connection reset"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			appErr := translateError(tc.err)
			if appErr.StatusCode != tc.wantStatus {
				t.Errorf("expected status %d, got %d", tc.wantStatus, appErr.StatusCode)
			}
		})
	}
}

func TestErrorHandlerResponse(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("operational error becomes fail envelope", func(t *testing.T) {
		router := gin.New()
		router.Use(ErrorHandler())
		router.GET("/boom", func(c *gin.Context) {
			c.Error(utils.NewAppError("There is no tour with that ID", http.StatusNotFound))
		})

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/boom", nil))

		if w.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", w.Code)
		}

		var body map[string]interface{}
		if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
			t.Fatalf("bad response body: %v", err)
		}
		if body["status"] != "fail" {
			t.Errorf("expected status fail, got %v", body["status"])
		}
		if body["message"] != "There is no tour with that ID" {
			t.Errorf("unexpected message %v", body["message"])
		}
	})

	t.Run("internal errors are hidden", func(t *testing.T) {
		router := gin.New()
		router.Use(ErrorHandler())
		router.GET("/boom", func(c *gin.Context) {
			c.Error(errors.New("dial tcp: connection refused"))
		})

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/boom", nil))

		if w.Code != http.StatusInternalServerError {
			t.Fatalf("expected 500, got %d", w.Code)
		}

		var body map[string]interface{}
		if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
			t.Fatalf("bad response body: %v", err)
		}
		if body["message"] != "Something went very wrong" {
			t.Errorf("internal detail leaked: %v", body["message"])
		}
	})

	t.Run("written responses are left alone", func(t *testing.T) {
		router := gin.New()
		router.Use(ErrorHandler())
		router.GET("/ok", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"status": "success"})
		})

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ok", nil))

		if w.Code != http.StatusOK {
			t.Errorf("expected 200, got %d", w.Code)
		}
	})
}

func TestNotFoundHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.NoRoute(NotFoundHandler)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/nowhere", nil))

	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}

	var body map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("bad response body: %v", err)
	}
	if body["message"] != "Can't find /api/v1/nowhere on this server" {
		t.Errorf("unexpected message %v", body["message"])
	}
}
