package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestNewClient(t *testing.T) {
	// Test with nil config
	client := NewClient(nil)
	if client.config.BaseURL != "http://localhost:4780" {
		t.Errorf("Expected default BaseURL, got %s", client.config.BaseURL)
	}
	if client.client != http.DefaultClient {
		t.Error("Expected default HTTP client")
	}

	// Test with custom config
	customConfig := &Config{
		BaseURL:    "http://example.com",
		Timeout:    5 * time.Second,
		HTTPClient: &http.Client{Timeout: 10 * time.Second},
	}
	client = NewClient(customConfig)
	if client.config.BaseURL != "http://example.com" {
		t.Errorf("Expected custom BaseURL, got %s", client.config.BaseURL)
	}
	if client.client != customConfig.HTTPClient {
		t.Error("Expected custom HTTP client")
	}
}

func TestLogin(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("Expected POST request, got %s", r.Method)
		}
		if r.URL.Path != "/api/auth/login" {
			t.Errorf("Expected /api/auth/login path, got %s", r.URL.Path)
		}

		var req map[string]string
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("Failed to decode request: %v", err)
			http.Error(w, "Bad request", http.StatusBadRequest)
			return
		}
		if req["email"] != "officer@example.com" || req["password"] != "hunter2hunter2" {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(map[string]any{"ok": false, "error": "invalid email or password"})
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(LoginResponse{Ok: true, Token: "test-token"})
	}))
	defer server.Close()

	client := NewClient(&Config{BaseURL: server.URL})

	resp, err := client.Login(context.Background(), "officer@example.com", "hunter2hunter2")
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	if resp.Token != "test-token" {
		t.Errorf("Expected token test-token, got %s", resp.Token)
	}
	if client.config.Token != "test-token" {
		t.Error("Expected token to be stored on the client")
	}

	// Wrong password surfaces the API error
	_, err = client.Login(context.Background(), "officer@example.com", "wrong")
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("Expected APIError, got %v", err)
	}
	if apiErr.StatusCode != http.StatusUnauthorized {
		t.Errorf("Expected status 401, got %d", apiErr.StatusCode)
	}
	if apiErr.Message != "invalid email or password" {
		t.Errorf("Unexpected error message: %s", apiErr.Message)
	}

	// Missing credentials fail before any request
	if _, err := client.Login(context.Background(), "", ""); err == nil {
		t.Error("Expected error for empty credentials")
	}
}

func TestListEvents(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			t.Errorf("Expected GET request, got %s", r.Method)
		}
		if r.URL.Path != "/api/events/" {
			t.Errorf("Expected /api/events/ path, got %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer test-token" {
			t.Errorf("Expected bearer token, got %q", got)
		}

		q := r.URL.Query()
		if q.Get("status") != "submitted" {
			t.Errorf("Expected status=submitted, got %s", q.Get("status"))
		}
		if q.Get("tag_ids") != "t1,t2" {
			t.Errorf("Expected tag_ids=t1,t2, got %s", q.Get("tag_ids"))
		}
		if q.Get("page") != "2" || q.Get("limit") != "25" {
			t.Errorf("Unexpected pagination: page=%s limit=%s", q.Get("page"), q.Get("limit"))
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(EventPage{
			Events:     []Event{{ID: "e1", Status: "submitted"}},
			Page:       2,
			Limit:      25,
			Total:      30,
			TotalPages: 2,
		})
	}))
	defer server.Close()

	client := NewClient(&Config{BaseURL: server.URL, Token: "test-token"})

	page, err := client.ListEvents(context.Background(), ListEventsOptions{
		Status: "submitted",
		TagIDs: []string{"t1", "t2"},
		Page:   2,
		Limit:  25,
	})
	if err != nil {
		t.Fatalf("ListEvents failed: %v", err)
	}
	if len(page.Events) != 1 || page.Events[0].ID != "e1" {
		t.Errorf("Unexpected events: %+v", page.Events)
	}
	if page.Total != 30 || page.TotalPages != 2 {
		t.Errorf("Unexpected totals: total=%d pages=%d", page.Total, page.TotalPages)
	}
}

func TestCreateEvent(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("Expected POST request, got %s", r.Method)
		}
		if r.URL.Path != "/api/events/" {
			t.Errorf("Expected /api/events/ path, got %s", r.URL.Path)
		}

		var req CreateEventRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("Failed to decode request: %v", err)
		}
		if req.Notes != "foot patrol" {
			t.Errorf("Unexpected notes: %s", req.Notes)
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(eventEnvelope{Ok: true, Event: &Event{ID: "e1", Notes: req.Notes, Status: "draft"}})
	}))
	defer server.Close()

	client := NewClient(&Config{BaseURL: server.URL, Token: "test-token"})

	event, err := client.CreateEvent(context.Background(), &CreateEventRequest{
		StartTime: time.Now(),
		Notes:     "foot patrol",
	})
	if err != nil {
		t.Fatalf("CreateEvent failed: %v", err)
	}
	if event.ID != "e1" || event.Status != "draft" {
		t.Errorf("Unexpected event: %+v", event)
	}

	// Missing start time fails before any request
	if _, err := client.CreateEvent(context.Background(), &CreateEventRequest{}); err == nil {
		t.Error("Expected error for zero start_time")
	}
	if _, err := client.CreateEvent(context.Background(), nil); err == nil {
		t.Error("Expected error for nil request")
	}
}

func TestBulkDeleteEvents(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/events/bulk-delete" {
			t.Errorf("Expected /api/events/bulk-delete path, got %s", r.URL.Path)
		}

		var req map[string][]string
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("Failed to decode request: %v", err)
		}
		if len(req["ids"]) != 2 {
			t.Errorf("Expected 2 ids, got %d", len(req["ids"]))
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{"ok": true, "deleted": 1})
	}))
	defer server.Close()

	client := NewClient(&Config{BaseURL: server.URL, Token: "test-token"})

	deleted, err := client.BulkDeleteEvents(context.Background(), []string{"e1", "e2"})
	if err != nil {
		t.Fatalf("BulkDeleteEvents failed: %v", err)
	}
	if deleted != 1 {
		t.Errorf("Expected 1 deleted, got %d", deleted)
	}

	if _, err := client.BulkDeleteEvents(context.Background(), nil); err == nil {
		t.Error("Expected error for empty id list")
	}
}

func TestAPIErrorDecoding(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusForbidden)
		json.NewEncoder(w).Encode(map[string]any{"ok": false, "error": "admin role required"})
	}))
	defer server.Close()

	client := NewClient(&Config{BaseURL: server.URL, Token: "test-token"})

	_, err := client.CreateTag(context.Background(), "Patrol", "#FF0000")
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("Expected APIError, got %v", err)
	}
	if apiErr.StatusCode != http.StatusForbidden {
		t.Errorf("Expected status 403, got %d", apiErr.StatusCode)
	}
	if apiErr.Message != "admin role required" {
		t.Errorf("Unexpected message: %s", apiErr.Message)
	}
}

func TestNonJSONErrorBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gateway timeout", http.StatusGatewayTimeout)
	}))
	defer server.Close()

	client := NewClient(&Config{BaseURL: server.URL})

	_, err := client.ListTags(context.Background())
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("Expected APIError, got %v", err)
	}
	if apiErr.StatusCode != http.StatusGatewayTimeout {
		t.Errorf("Expected status 504, got %d", apiErr.StatusCode)
	}
}
