package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestDo_SendsBearerToken_And_DecodesBody(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer tok123" {
			t.Fatalf("Authorization header missing token, got: %q", got)
		}
		if r.Header.Get("Content-Type") != "application/json" {
			t.Fatalf("unexpected content type %q", r.Header.Get("Content-Type"))
		}
		var m map[string]any
		if err := json.NewDecoder(r.Body).Decode(&m); err != nil {
			t.Fatalf("bad json: %v", err)
		}
		if m["x"] != float64(1) { // JSON number → float64
			t.Fatalf("unexpected payload: %#v", m)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"ok":true}`))
	}))
	defer ts.Close()

	var out struct {
		OK bool `json:"ok"`
	}
	if err := New(ts.URL+"/").Do(context.Background(), http.MethodPost, "/api", "tok123", map[string]any{"x": 1}, &out); err != nil {
		t.Fatalf("Do err: %v", err)
	}
	if !out.OK {
		t.Fatalf("body not decoded")
	}
}

// Без токена заголовок Authorization не устанавливается
func TestDo_NoToken_NoAuthorizationHeader(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if h := r.Header.Get("Authorization"); h != "" {
			t.Fatalf("Authorization must be empty when token not provided, got: %q", h)
		}
		if r.ContentLength > 0 {
			t.Fatalf("GET without payload must have no body")
		}
		w.WriteHeader(http.StatusNoContent)
	}))
	defer ts.Close()

	if err := New(ts.URL).Do(context.Background(), http.MethodGet, "/x", "", nil, nil); err != nil {
		t.Fatalf("Do err: %v", err)
	}
}

func TestDo_ErrorStatusCarriesServerMessage(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusConflict)
		_, _ = w.Write([]byte(`{"error":"conflict: email already registered"}`))
	}))
	defer ts.Close()

	err := New(ts.URL).Do(context.Background(), http.MethodPost, "/r", "", map[string]string{}, nil)
	if !IsStatus(err, http.StatusConflict) {
		t.Fatalf("expected 409 api error, got %v", err)
	}
	apiErr := err.(*Error)
	if apiErr.Message != "conflict: email already registered" {
		t.Fatalf("unexpected message %q", apiErr.Message)
	}
}

func TestDo_PlainTextError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer ts.Close()

	err := New(ts.URL).Do(context.Background(), http.MethodGet, "/", "", nil, nil)
	if !IsStatus(err, http.StatusInternalServerError) {
		t.Fatalf("expected 500, got %v", err)
	}
	if err.(*Error).Message != "boom" {
		t.Fatalf("unexpected message %q", err.(*Error).Message)
	}
}

func TestDo_BadJSONResponse(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`not json`))
	}))
	defer ts.Close()

	var out map[string]any
	if err := New(ts.URL).Do(context.Background(), http.MethodGet, "/", "", nil, &out); err == nil {
		t.Fatalf("expected decode error")
	}
}

// Сетевая ошибка (недостижимый адрес)
func TestDo_NetworkError(t *testing.T) {
	if err := New("http://127.0.0.1:1").Do(context.Background(), http.MethodGet, "/", "", nil, nil); err == nil {
		t.Fatalf("expected network error for unreachable URL")
	}
}

// Ошибка при создании запроса (невалидный URL)
func TestDo_InvalidURL_NewRequestError(t *testing.T) {
	if err := New("http://[::1").Do(context.Background(), http.MethodGet, "/", "", nil, nil); err == nil {
		t.Fatalf("expected new request error for invalid URL")
	}
}

func TestIsStatus_NonAPIError(t *testing.T) {
	if IsStatus(context.Canceled, http.StatusUnauthorized) {
		t.Fatalf("plain errors must not match")
	}
}
