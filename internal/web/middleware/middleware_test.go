package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

var okHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(r.RemoteAddr))
})

// ============================================================================
// APIKeyAuth
// ============================================================================

func TestAPIKeyAuth(t *testing.T) {
	tests := []struct {
		name     string
		required bool
		keys     []string
		header   string
		want     int
	}{
		{"disabled", false, nil, "", http.StatusOK},
		{"missing key", true, []string{"k1"}, "", http.StatusUnauthorized},
		{"wrong key", true, []string{"k1"}, "nope", http.StatusForbidden},
		{"first key", true, []string{"k1", "k2"}, "k1", http.StatusOK},
		{"second key", true, []string{"k1", "k2"}, "k2", http.StatusOK},
		{"no keys configured", true, nil, "k1", http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := APIKeyAuth(tt.required, tt.keys)(okHandler)
			req := httptest.NewRequest(http.MethodPost, "/api/lawyers", nil)
			if tt.header != "" {
				req.Header.Set("X-API-Key", tt.header)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			if rec.Code != tt.want {
				t.Errorf("status = %d, want %d", rec.Code, tt.want)
			}
			if tt.want != http.StatusOK && !strings.Contains(rec.Body.String(), `"code":"AUTH_`) {
				t.Errorf("body = %s, want JSON error with AUTH code", rec.Body.String())
			}
		})
	}
}

// ============================================================================
// TrustedRealIP
// ============================================================================

func TestTrustedRealIP(t *testing.T) {
	tests := []struct {
		name    string
		trusted []string
		remote  string
		headers map[string]string
		want    string
	}{
		{"untrusted keeps socket addr", []string{"10.0.0.0/8"}, "203.0.113.9:5000",
			map[string]string{"X-Real-IP": "1.2.3.4"}, "203.0.113.9:5000"},
		{"trusted uses X-Real-IP", []string{"10.0.0.0/8"}, "10.1.2.3:5000",
			map[string]string{"X-Real-IP": "1.2.3.4"}, "1.2.3.4"},
		{"trusted uses first forwarded hop", []string{"10.0.0.0/8"}, "10.1.2.3:5000",
			map[string]string{"X-Forwarded-For": "5.6.7.8, 10.1.2.3"}, "5.6.7.8"},
		{"bare address entry", []string{"127.0.0.1"}, "127.0.0.1:80",
			map[string]string{"X-Real-IP": "9.9.9.9"}, "9.9.9.9"},
		{"invalid header ignored", []string{"10.0.0.0/8"}, "10.1.2.3:5000",
			map[string]string{"X-Real-IP": "not-an-ip"}, "10.1.2.3:5000"},
		{"invalid trusted entry skipped", []string{"garbage"}, "10.1.2.3:5000",
			map[string]string{"X-Real-IP": "1.2.3.4"}, "10.1.2.3:5000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := TrustedRealIP(tt.trusted)(okHandler)
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = tt.remote
			for k, v := range tt.headers {
				req.Header.Set(k, v)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			if got := rec.Body.String(); got != tt.want {
				t.Errorf("RemoteAddr = %q, want %q", got, tt.want)
			}
		})
	}
}

// ============================================================================
// RateLimiter
// ============================================================================

func TestRateLimiter_PerClient(t *testing.T) {
	rl := NewRateLimiter("test", 2)
	h := rl.Middleware(okHandler)

	do := func(addr string) int {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = addr
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec.Code
	}

	if got := do("1.1.1.1:1"); got != http.StatusOK {
		t.Fatalf("first request = %d", got)
	}
	if got := do("1.1.1.1:2"); got != http.StatusOK {
		t.Fatalf("second request = %d", got)
	}
	if got := do("1.1.1.1:3"); got != http.StatusTooManyRequests {
		t.Errorf("third request = %d, want 429", got)
	}
	if got := do("2.2.2.2:1"); got != http.StatusOK {
		t.Errorf("other client = %d, want 200", got)
	}
}

func TestRateLimiter_RetryAfterHeader(t *testing.T) {
	rl := NewRateLimiter("test", 1)
	h := rl.Middleware(okHandler)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	h.ServeHTTP(httptest.NewRecorder(), req)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("status = %d, want 429", rec.Code)
	}
	if got := rec.Header().Get("Retry-After"); got != "60" {
		t.Errorf("Retry-After = %q, want 60", got)
	}
	if !strings.Contains(rec.Body.String(), "RATE001") {
		t.Errorf("body = %s", rec.Body.String())
	}
}

func TestRateLimiter_Sweep(t *testing.T) {
	rl := NewRateLimiter("test", 10)
	rl.Allow("a")
	rl.Allow("b")

	if n := rl.Sweep(time.Hour); n != 0 {
		t.Errorf("Sweep(1h) removed %d, want 0", n)
	}
	time.Sleep(5 * time.Millisecond)
	if n := rl.Sweep(time.Millisecond); n != 2 {
		t.Errorf("Sweep(1ms) removed %d, want 2", n)
	}
}

// ============================================================================
// Logger
// ============================================================================

func TestLogger_CapturesStatus(t *testing.T) {
	var captured *responseWriter
	h := Logger(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured = w.(*responseWriter)
		w.WriteHeader(http.StatusTeapot)
		w.WriteHeader(http.StatusOK) // ignored
		_, _ = w.Write([]byte("hello"))
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if rec.Code != http.StatusTeapot {
		t.Errorf("status = %d, want 418", rec.Code)
	}
	if captured.status != http.StatusTeapot || captured.bytes != 5 {
		t.Errorf("captured status=%d bytes=%d", captured.status, captured.bytes)
	}
}
