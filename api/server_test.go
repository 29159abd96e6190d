package api

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

type nopLogger struct{}

func (nopLogger) Debug(msg string, fields map[string]interface{}) {}
func (nopLogger) Info(msg string, fields map[string]interface{})  {}
func (nopLogger) Warn(msg string, fields map[string]interface{})  {}
func (nopLogger) Error(msg string, fields map[string]interface{}) {}

func TestNewAPI(t *testing.T) {
	api, router := NewAPI()

	if api == nil {
		t.Error("NewAPI returned nil API")
	}
	if router == nil {
		t.Error("NewAPI returned nil router")
	}
}

func TestNewAPI_Metadata(t *testing.T) {
	api, _ := NewAPI()

	info := api.OpenAPI().Info
	if info.Title != "AO Radar API" {
		t.Errorf("API title = %s, want AO Radar API", info.Title)
	}
	if info.Version != "1.0.0" {
		t.Errorf("API version = %s, want 1.0.0", info.Version)
	}
}

func TestNewAPI_ServesOpenAPISpec(t *testing.T) {
	_, router := NewAPI()

	req := httptest.NewRequest("GET", "/openapi.json", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("GET /openapi.json = %d, want 200", rec.Code)
	}
}

func TestNewAPIWithMiddleware_SetsRequestID(t *testing.T) {
	_, router := NewAPIWithMiddleware(APIConfig{Logger: nopLogger{}})

	req := httptest.NewRequest("GET", "/openapi.json", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Header().Get("X-Request-ID") == "" {
		t.Error("logging middleware should set X-Request-ID")
	}
}

func TestNewAPIWithMiddleware_RateLimits(t *testing.T) {
	_, router := NewAPIWithMiddleware(APIConfig{
		RateLimit:  1,
		RateWindow: time.Minute,
	})

	req := httptest.NewRequest("GET", "/openapi.json", nil)
	req.RemoteAddr = "127.0.0.1:1234"
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("first request = %d, want 200", rec.Code)
	}

	req2 := httptest.NewRequest("GET", "/openapi.json", nil)
	req2.RemoteAddr = "127.0.0.1:1234"
	rec2 := httptest.NewRecorder()
	router.ServeHTTP(rec2, req2)
	if rec2.Code != http.StatusTooManyRequests {
		t.Errorf("second request = %d, want 429", rec2.Code)
	}
}
