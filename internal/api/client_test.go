// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
)

func newTestClient(handler http.HandlerFunc) (*Client, *httptest.Server) {
	srv := httptest.NewServer(handler)
	client := NewClient(srv.URL, WithHTTPClient(srv.Client()), WithRateLimit(0))
	return client, srv
}

func TestClient_LoginSuccess(t *testing.T) {
	client, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/auth/login" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		var req map[string]string
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if req["username"] != "ivan" || req["password"] != "secret" {
			t.Errorf("unexpected credentials: %v", req)
		}
		json.NewEncoder(w).Encode(AuthResponse{
			User:         Identity{ID: "u1", Username: "ivan", FullName: "Ivan Petrov"},
			SessionToken: "tok-123",
		})
	})
	defer srv.Close()

	resp, err := client.Login(context.Background(), "ivan", "secret")
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	if resp.User.ID != "u1" || resp.SessionToken != "tok-123" {
		t.Errorf("unexpected response: %+v", resp)
	}
}

func TestClient_LoginFailureCarriesServerMessage(t *testing.T) {
	client, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]string{"error": "Invalid username or password"})
	})
	defer srv.Close()

	_, err := client.Login(context.Background(), "ivan", "wrong")
	if err == nil {
		t.Fatal("expected error")
	}
	if !errors.Is(err, ErrAuth) {
		t.Errorf("error should classify as ErrAuth, got %v", err)
	}
	var apiErr *Error
	if !errors.As(err, &apiErr) {
		t.Fatalf("error should be *Error, got %T", err)
	}
	if apiErr.Message != "Invalid username or password" {
		t.Errorf("Message = %q, want server message", apiErr.Message)
	}
	if apiErr.UserMessage() != "Invalid username or password" {
		t.Errorf("UserMessage() = %q", apiErr.UserMessage())
	}
}

func TestClient_LoginFailureGenericFallback(t *testing.T) {
	client, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte("<html>oops</html>"))
	})
	defer srv.Close()

	_, err := client.Login(context.Background(), "ivan", "secret")
	var apiErr *Error
	if !errors.As(err, &apiErr) {
		t.Fatalf("error should be *Error, got %T", err)
	}
	if apiErr.UserMessage() != "Login failed. Please try again." {
		t.Errorf("UserMessage() = %q, want generic fallback", apiErr.UserMessage())
	}
}

func TestClient_SearchUsers(t *testing.T) {
	client, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/users/search" {
			t.Errorf("path = %q", r.URL.Path)
		}
		q := r.URL.Query()
		if q.Get("query") != "ivan" || q.Get("current_user_id") != "u1" {
			t.Errorf("unexpected query params: %v", q)
		}
		json.NewEncoder(w).Encode(searchResponse{Users: []Candidate{
			{ID: "u2", Username: "ivan92", FullName: "Ivan Smirnov", IsContact: false},
			{ID: "u3", Username: "ivanna", FullName: "Ivanna K", IsContact: true},
		}})
	})
	defer srv.Close()

	users, err := client.SearchUsers(context.Background(), "ivan", "u1")
	if err != nil {
		t.Fatalf("SearchUsers failed: %v", err)
	}
	if len(users) != 2 {
		t.Fatalf("len = %d, want 2", len(users))
	}
	if users[0].ID != "u2" || users[1].IsContact != true {
		t.Errorf("unexpected users: %+v", users)
	}
}

func TestClient_SearchClassification(t *testing.T) {
	client, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})
	defer srv.Close()

	_, err := client.SearchUsers(context.Background(), "ivan", "u1")
	if !errors.Is(err, ErrSearch) {
		t.Errorf("error should classify as ErrSearch, got %v", err)
	}
}

func TestClient_AddContact(t *testing.T) {
	client, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/contacts/add" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		var req map[string]string
		json.NewDecoder(r.Body).Decode(&req)
		if req["user_id"] != "u1" || req["contact_user_id"] != "u2" {
			t.Errorf("unexpected body: %v", req)
		}
		json.NewEncoder(w).Encode(ackResponse{Success: true})
	})
	defer srv.Close()

	if err := client.AddContact(context.Background(), "u1", "u2"); err != nil {
		t.Fatalf("AddContact failed: %v", err)
	}
}

func TestClient_AddContactBusinessError(t *testing.T) {
	client, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		json.NewEncoder(w).Encode(map[string]string{"error": "Already a contact"})
	})
	defer srv.Close()

	err := client.AddContact(context.Background(), "u1", "u2")
	if !errors.Is(err, ErrContact) {
		t.Fatalf("error should classify as ErrContact, got %v", err)
	}
	if got := UserMessage(err); got != "Already a contact" {
		t.Errorf("UserMessage = %q", got)
	}
}

func TestClient_NotConfigured(t *testing.T) {
	client := NewClient("")

	_, err := client.Login(context.Background(), "ivan", "secret")
	if !errors.Is(err, ErrNotConfigured) {
		t.Errorf("expected ErrNotConfigured, got %v", err)
	}
}

func TestClient_BearerTokenSent(t *testing.T) {
	var gotAuth string
	client, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		json.NewEncoder(w).Encode(chatsResponse{})
	})
	defer srv.Close()

	client.SetToken("tok-123")
	if _, err := client.ListChats(context.Background(), "u1"); err != nil {
		t.Fatalf("ListChats failed: %v", err)
	}
	if gotAuth != "Bearer tok-123" {
		t.Errorf("Authorization = %q", gotAuth)
	}

	client.ClearToken()
	client.ListChats(context.Background(), "u1")
	if gotAuth != "" {
		t.Errorf("Authorization after ClearToken = %q", gotAuth)
	}
}

func TestClient_ListMessages(t *testing.T) {
	client, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chats/c1/messages" {
			t.Errorf("path = %q", r.URL.Path)
		}
		json.NewEncoder(w).Encode(messagesResponse{Messages: []WireMessage{
			{ID: "m1", Text: "hello", SenderID: "u2"},
		}})
	})
	defer srv.Close()

	msgs, err := client.ListMessages(context.Background(), "c1")
	if err != nil {
		t.Fatalf("ListMessages failed: %v", err)
	}
	if len(msgs) != 1 || msgs[0].Text != "hello" {
		t.Errorf("unexpected messages: %+v", msgs)
	}
}

func TestUserMessage_NilAndUnknown(t *testing.T) {
	if got := UserMessage(nil); got != "" {
		t.Errorf("UserMessage(nil) = %q", got)
	}
	if got := UserMessage(errors.New("boom")); got != "Request failed. Please try again." {
		t.Errorf("UserMessage(unknown) = %q", got)
	}
}

func TestClient_ConcurrentReconfigure(t *testing.T) {
	client, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(searchResponse{Users: []Candidate{}})
	})
	defer srv.Close()

	// The config watcher repoints the base URL and the session store swaps
	// the token while requests run on command goroutines; the race detector
	// flags any unguarded field access.
	done := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for {
			select {
			case <-done:
				return
			default:
				client.SetBaseURL(srv.URL)
				client.SetToken("tok-rotated")
				client.IsConfigured()
			}
		}
	}()

	for i := 0; i < 25; i++ {
		if _, err := client.SearchUsers(context.Background(), "ivan", "u1"); err != nil {
			t.Fatalf("SearchUsers failed: %v", err)
		}
	}
	close(done)
	wg.Wait()
}
