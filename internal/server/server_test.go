package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"
)

// newTestServer builds a server with the default security policy and a
// silent logger.
func newTestServer(config Config) *Server {
	return New(config, newTestLogger())
}

// evalURL builds the evaluation path with a correctly escaped query, so
// expressions containing "+" survive the round trip.
func evalURL(expr string, extra url.Values) string {
	q := url.Values{}
	q.Set("expr", expr)
	for key, values := range extra {
		for _, v := range values {
			q.Add(key, v)
		}
	}
	return "/api/v1/eval?" + q.Encode()
}

func decodeEval(t *testing.T, rec *httptest.ResponseRecorder) evalResponse {
	t.Helper()
	var resp evalResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	return resp
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) errorResponse {
	t.Helper()
	var resp errorResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decoding error response: %v", err)
	}
	return resp
}

// TestNew verifies configuration defaulting.
func TestNew(t *testing.T) {
	s := New(Config{}, nil)

	if s.config.Addr != ":8080" {
		t.Errorf("Addr = %q, want %q", s.config.Addr, ":8080")
	}
	if s.config.Width != 64 {
		t.Errorf("Width = %d, want 64", s.config.Width)
	}
	if s.config.ShutdownTimeout <= 0 {
		t.Error("ShutdownTimeout should have a positive default")
	}
	if s.logger == nil {
		t.Error("logger should be defaulted")
	}
	if s.metrics == nil {
		t.Error("metrics should be initialized")
	}
}

// TestServer_handleEval_GET tests expression evaluation via query
// parameters.
func TestServer_handleEval_GET(t *testing.T) {
	s := newTestServer(Config{Security: DefaultSecurityConfig()})

	t.Run("finite result", func(t *testing.T) {
		req := httptest.NewRequest("GET", evalURL("1/2 + 1/3", nil), http.NoBody)
		rec := httptest.NewRecorder()

		s.handleEval(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want %d (body %s)", rec.Code, http.StatusOK, rec.Body.String())
		}
		resp := decodeEval(t, rec)
		if resp.Result != "5/6" {
			t.Errorf("result = %q, want %q", resp.Result, "5/6")
		}
		if resp.Num != 5 || resp.Den != 6 {
			t.Errorf("components = %d/%d, want 5/6", resp.Num, resp.Den)
		}
		if !resp.Finite || resp.Inf || resp.NaN {
			t.Errorf("classification = finite:%v inf:%v nan:%v, want finite", resp.Finite, resp.Inf, resp.NaN)
		}
		if resp.Float == nil {
			t.Fatal("float approximation missing for finite result")
		}
		if diff := *resp.Float - 5.0/6.0; diff < -1e-12 || diff > 1e-12 {
			t.Errorf("float = %v, want 5/6", *resp.Float)
		}
		if resp.Width != 64 {
			t.Errorf("width = %d, want 64", resp.Width)
		}
	})

	t.Run("infinite result omits float", func(t *testing.T) {
		req := httptest.NewRequest("GET", evalURL("1/0", nil), http.NoBody)
		rec := httptest.NewRecorder()

		s.handleEval(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
		}
		resp := decodeEval(t, rec)
		if resp.Result != "Inf" || !resp.Inf {
			t.Errorf("result = %q (inf=%v), want Inf", resp.Result, resp.Inf)
		}
		if resp.Float != nil {
			t.Errorf("float = %v, want omitted for non-finite result", *resp.Float)
		}
	})

	t.Run("undefined result", func(t *testing.T) {
		req := httptest.NewRequest("GET", evalURL("0/0", nil), http.NoBody)
		rec := httptest.NewRecorder()

		s.handleEval(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
		}
		resp := decodeEval(t, rec)
		if resp.Result != "NaN" || !resp.NaN {
			t.Errorf("result = %q (nan=%v), want NaN", resp.Result, resp.NaN)
		}
	})

	t.Run("width parameter", func(t *testing.T) {
		req := httptest.NewRequest("GET", evalURL("2/4", url.Values{"width": {"16"}}), http.NoBody)
		rec := httptest.NewRecorder()

		s.handleEval(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
		}
		resp := decodeEval(t, rec)
		if resp.Result != "1/2" {
			t.Errorf("result = %q, want %q", resp.Result, "1/2")
		}
		if resp.Width != 16 {
			t.Errorf("width = %d, want 16", resp.Width)
		}
	})

	t.Run("literal too large for width", func(t *testing.T) {
		req := httptest.NewRequest("GET", evalURL("300", url.Values{"width": {"8"}}), http.NoBody)
		rec := httptest.NewRecorder()

		s.handleEval(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("status = %d, want %d", rec.Code, http.StatusBadRequest)
		}
	})
}

// TestServer_handleEval_POST tests expression evaluation via JSON body.
func TestServer_handleEval_POST(t *testing.T) {
	s := newTestServer(Config{Security: DefaultSecurityConfig()})

	t.Run("JSON body with width", func(t *testing.T) {
		body := strings.NewReader(`{"expr": "2/4 * 2", "width": 32}`)
		req := httptest.NewRequest("POST", "/api/v1/eval", body)
		rec := httptest.NewRecorder()

		s.handleEval(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want %d (body %s)", rec.Code, http.StatusOK, rec.Body.String())
		}
		resp := decodeEval(t, rec)
		if resp.Result != "1/1" {
			t.Errorf("result = %q, want %q", resp.Result, "1/1")
		}
		if resp.Width != 32 {
			t.Errorf("width = %d, want 32", resp.Width)
		}
	})

	t.Run("malformed JSON", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/api/v1/eval", strings.NewReader("{not json"))
		rec := httptest.NewRecorder()

		s.handleEval(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want %d", rec.Code, http.StatusBadRequest)
		}
	})
}

// TestServer_handleEval_Errors tests input validation.
func TestServer_handleEval_Errors(t *testing.T) {
	s := newTestServer(Config{Security: DefaultSecurityConfig()})

	t.Run("syntax error carries offset", func(t *testing.T) {
		req := httptest.NewRequest("GET", evalURL("(1/2", nil), http.NoBody)
		rec := httptest.NewRecorder()

		s.handleEval(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("status = %d, want %d", rec.Code, http.StatusBadRequest)
		}
		resp := decodeError(t, rec)
		if resp.Error == "" {
			t.Error("error message missing")
		}
		if resp.Offset == nil {
			t.Error("syntax errors should report an offset")
		}
	})

	t.Run("missing expression", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/api/v1/eval", http.NoBody)
		rec := httptest.NewRecorder()

		s.handleEval(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want %d", rec.Code, http.StatusBadRequest)
		}
	})

	t.Run("unsupported width", func(t *testing.T) {
		req := httptest.NewRequest("GET", evalURL("1/2", url.Values{"width": {"7"}}), http.NoBody)
		rec := httptest.NewRecorder()

		s.handleEval(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want %d", rec.Code, http.StatusBadRequest)
		}
	})

	t.Run("non-numeric width", func(t *testing.T) {
		req := httptest.NewRequest("GET", evalURL("1/2", url.Values{"width": {"wide"}}), http.NoBody)
		rec := httptest.NewRecorder()

		s.handleEval(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want %d", rec.Code, http.StatusBadRequest)
		}
	})

	t.Run("expression over length limit", func(t *testing.T) {
		limited := newTestServer(Config{
			Security: SecurityConfig{MaxExprLen: 8},
		})
		req := httptest.NewRequest("GET", evalURL("1/2 + 1/3", nil), http.NoBody)
		rec := httptest.NewRecorder()

		limited.handleEval(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("status = %d, want %d", rec.Code, http.StatusBadRequest)
		}
		resp := decodeError(t, rec)
		if !strings.Contains(resp.Error, "exceeds") {
			t.Errorf("error = %q, want mention of the length limit", resp.Error)
		}
	})

	t.Run("unsupported method", func(t *testing.T) {
		req := httptest.NewRequest("DELETE", "/api/v1/eval", http.NoBody)
		rec := httptest.NewRecorder()

		s.handleEval(rec, req)

		if rec.Code != http.StatusMethodNotAllowed {
			t.Errorf("status = %d, want %d", rec.Code, http.StatusMethodNotAllowed)
		}
	})
}

// TestServer_handleHealth tests the health endpoint.
func TestServer_handleHealth(t *testing.T) {
	s := newTestServer(Config{Version: "1.2.3"})

	t.Run("GET returns process statistics", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/healthz", http.NoBody)
		rec := httptest.NewRecorder()

		s.handleHealth(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
		}

		var resp healthResponse
		if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
			t.Fatalf("decoding response: %v", err)
		}
		if resp.Status != "ok" {
			t.Errorf("status = %q, want %q", resp.Status, "ok")
		}
		if resp.Version != "1.2.3" {
			t.Errorf("version = %q, want %q", resp.Version, "1.2.3")
		}
		if resp.UptimeSeconds < 0 {
			t.Errorf("uptime = %v, want non-negative", resp.UptimeSeconds)
		}
		if resp.Width != 64 {
			t.Errorf("width = %d, want 64", resp.Width)
		}
		if resp.Memory.Goroutines <= 0 {
			t.Errorf("goroutines = %d, want positive", resp.Memory.Goroutines)
		}
	})

	t.Run("POST returns method not allowed", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/healthz", http.NoBody)
		rec := httptest.NewRecorder()

		s.handleHealth(rec, req)

		if rec.Code != http.StatusMethodNotAllowed {
			t.Errorf("status = %d, want %d", rec.Code, http.StatusMethodNotAllowed)
		}
	})
}

// TestServer_Handler tests the assembled route table.
func TestServer_Handler(t *testing.T) {
	s := newTestServer(Config{Security: DefaultSecurityConfig()})
	handler := s.Handler()

	t.Run("eval route", func(t *testing.T) {
		req := httptest.NewRequest("GET", evalURL("1/2", nil), http.NoBody)
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Errorf("status = %d, want %d", rec.Code, http.StatusOK)
		}
		if got := rec.Header().Get("X-Content-Type-Options"); got != "nosniff" {
			t.Errorf("X-Content-Type-Options = %q, want %q", got, "nosniff")
		}
	})

	t.Run("eval preflight", func(t *testing.T) {
		req := httptest.NewRequest("OPTIONS", "/api/v1/eval", http.NoBody)
		req.Header.Set("Origin", "http://example.com")
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)

		if rec.Code != http.StatusNoContent {
			t.Errorf("status = %d, want %d", rec.Code, http.StatusNoContent)
		}
	})

	t.Run("health route", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/healthz", http.NoBody)
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Errorf("status = %d, want %d", rec.Code, http.StatusOK)
		}
	})

	t.Run("metrics route", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/metrics", http.NoBody)
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Errorf("status = %d, want %d", rec.Code, http.StatusOK)
		}
		if !strings.Contains(rec.Body.String(), "fraccalc_") {
			t.Error("metrics body should contain fraccalc metrics")
		}
	})
}

// TestServer_Start_GracefulShutdown verifies that canceling the context
// stops the listener cleanly.
func TestServer_Start_GracefulShutdown(t *testing.T) {
	s := newTestServer(Config{
		Addr:            "127.0.0.1:0",
		ShutdownTimeout: time.Second,
	})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- s.Start(ctx)
	}()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Start returned %v, want nil after graceful shutdown", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down within 5s")
	}
}
