package visionhub

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestDoJSONAttachesBearerToken(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`{"success":true}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL).WithToken("tok-123")
	var resp StatusResponse
	if err := c.DoJSON(context.Background(), http.MethodGet, "/api/users", nil, &resp); err != nil {
		t.Fatalf("DoJSON failed: %v", err)
	}
	if gotAuth != "Bearer tok-123" {
		t.Fatalf("expected bearer header, got %q", gotAuth)
	}
	if !resp.Success {
		t.Fatalf("expected decoded success envelope")
	}
}

func TestDoJSONSendsJSONBody(t *testing.T) {
	var gotContentType, gotBody string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotContentType = r.Header.Get("Content-Type")
		buf := make([]byte, r.ContentLength)
		r.Body.Read(buf)
		gotBody = string(buf)
		w.Write([]byte(`{"success":true}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	err := c.DoJSON(context.Background(), http.MethodPost, "/api/categories", map[string]string{"name": "Docs"}, nil)
	if err != nil {
		t.Fatalf("DoJSON failed: %v", err)
	}
	if gotContentType != "application/json" {
		t.Fatalf("expected JSON content type, got %q", gotContentType)
	}
	if gotBody != `{"name":"Docs"}` {
		t.Fatalf("unexpected body %q", gotBody)
	}
}

func TestDoJSONNon2xxReturnsStatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusForbidden)
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	err := c.DoJSON(context.Background(), http.MethodDelete, "/api/categories/1", nil, nil)
	if err == nil {
		t.Fatalf("expected error for 403 response")
	}
	var se *StatusError
	if !errors.As(err, &se) {
		t.Fatalf("expected *StatusError, got %T", err)
	}
	if se.Code != http.StatusForbidden || se.Status != "Forbidden" {
		t.Fatalf("unexpected status error: %+v", se)
	}
}

func TestDoJSONObserverSeesStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"success":true}`))
	}))
	defer srv.Close()

	var gotMethod string
	var gotStatus int
	c := NewClient(srv.URL, WithObserver(func(method string, status int, _ time.Duration) {
		gotMethod = method
		gotStatus = status
	}))
	if err := c.DoJSON(context.Background(), http.MethodPost, "/api/backups/full", nil, nil); err != nil {
		t.Fatalf("DoJSON failed: %v", err)
	}
	if gotMethod != http.MethodPost || gotStatus != http.StatusCreated {
		t.Fatalf("observer saw %s %d", gotMethod, gotStatus)
	}
}
