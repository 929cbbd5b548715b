package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestNew(t *testing.T) {
	if _, err := New("", "tok"); err == nil {
		t.Error("New with empty base URL did not fail")
	}
	if _, err := New("http://localhost:3000", ""); err != nil {
		t.Errorf("New without token failed: %v", err)
	}
}

func TestListSessions(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/sessions" || r.Method != http.MethodGet {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer tok" {
			t.Errorf("Authorization = %q", got)
		}
		_ = json.NewEncoder(w).Encode([]SessionRecord{
			{
				ID:          1,
				StartTime:   time.Date(2025, 3, 10, 14, 0, 0, 0, time.Local).UTC(),
				DurationMin: 50,
				Participants: []Participant{
					{ID: 10, FullName: "Ana Souza", Email: "ana@example.com"},
				},
				Type:          "Online",
				PaymentStatus: "Paid",
				SessionStatus: "Confirmed",
			},
		})
	}))
	defer srv.Close()

	client, err := New(srv.URL, "tok")
	if err != nil {
		t.Fatal(err)
	}
	sessions, err := client.ListSessions(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(sessions) != 1 {
		t.Fatalf("got %d sessions, want 1", len(sessions))
	}
	if sessions[0].Client != "Ana Souza" || sessions[0].StartTime != "14:00" {
		t.Errorf("projected session = %+v", sessions[0])
	}
}

func TestGetSessionNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	client, _ := New(srv.URL, "")
	_, err := client.GetSession(context.Background(), 99)
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("error = %v, want ErrNotFound", err)
	}
}

func TestUpdateSession(t *testing.T) {
	var got UpdatePayload
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPut || r.URL.Path != "/sessions/1" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("Content-Type = %q", ct)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decoding body: %v", err)
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	client, _ := New(srv.URL, "")
	payload := UpdatePayload{
		ClientIDs:     []int64{10},
		StartTime:     "2025-03-12T18:30:00Z",
		DurationMin:   50,
		Type:          "Online",
		PaymentStatus: "Paid",
		SessionStatus: "Confirmed",
	}
	if err := client.UpdateSession(context.Background(), 1, payload); err != nil {
		t.Fatal(err)
	}
	if got.StartTime != payload.StartTime || got.DurationMin != 50 {
		t.Errorf("server received %+v", got)
	}
}

func TestUpdateSessionServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	client, _ := New(srv.URL, "")
	if err := client.UpdateSession(context.Background(), 1, UpdatePayload{}); err == nil {
		t.Error("update with 500 response did not fail")
	}
}
