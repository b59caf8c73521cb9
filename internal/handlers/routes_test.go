package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"birthday-tracker-api/internal/middleware"

	"github.com/gin-gonic/gin"
)

func setupRouter(t *testing.T) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(middleware.RequestID())
	SetupRoutes(router, &RouterConfig{
		BirthdayHandler: setupFixture(t).handler,
		ServiceName:     "birthday-tracker-api",
		Version:         "test",
	})
	return router
}

func TestSetupRoutes_Health(t *testing.T) {
	router := setupRouter(t)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", w.Code)
	}
	if !strings.Contains(w.Body.String(), `"status":"healthy"`) {
		t.Errorf("body = %s", w.Body.String())
	}
}

func TestSetupRoutes_Birthdays(t *testing.T) {
	router := setupRouter(t)

	tests := []struct {
		method string
		body   string
		status int
	}{
		{http.MethodGet, "", http.StatusOK},
		{http.MethodPost, `{"name":"Ada","birthday":"1990-01-01","idea":"Book"}`, http.StatusCreated},
		{http.MethodPost, `{invalid`, http.StatusBadRequest},
		{http.MethodPatch, `{}`, http.StatusMethodNotAllowed},
	}

	for _, tt := range tests {
		t.Run(tt.method, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, "/birthdays", strings.NewReader(tt.body))
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			if w.Code != tt.status {
				t.Errorf("status = %d, want %d (body %s)", w.Code, tt.status, w.Body.String())
			}
			if ct := w.Header().Get("Content-Type"); ct != "application/json" {
				t.Errorf("Content-Type = %q", ct)
			}
			if w.Header().Get(middleware.RequestIDHeader) == "" {
				t.Error("missing request id header")
			}
		})
	}
}

func TestSetupRoutes_Swagger(t *testing.T) {
	router := setupRouter(t)

	tests := []struct {
		path     string
		contains string
	}{
		{"/swagger/index.html", "swagger-ui"},
		{"/swagger/doc.json", `"/birthdays"`},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, tt.path, nil))
			if w.Code != http.StatusOK {
				t.Fatalf("status = %d, want 200", w.Code)
			}
			if !strings.Contains(w.Body.String(), tt.contains) {
				t.Errorf("body does not contain %s", tt.contains)
			}
		})
	}
}
