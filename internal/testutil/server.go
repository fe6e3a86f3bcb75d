package testutil

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
)

// ChatRequest is the subset of a chat-completions request recorded by ChatServer.
type ChatRequest struct {
	Model         string  `json:"model"`
	Temperature   float64 `json:"temperature"`
	Authorization string  `json:"-"`
	Messages      []struct {
		Role    string `json:"role"`
		Content string `json:"content"`
	} `json:"messages"`
}

// Prompt returns the content of the last message.
func (r ChatRequest) Prompt() string {
	if len(r.Messages) == 0 {
		return ""
	}
	return r.Messages[len(r.Messages)-1].Content
}

// ChatReply is a scripted response. A non-2xx Status sends Body as an error payload.
type ChatReply struct {
	Status  int
	Content string
	Body    string
}

// ChatServer is an in-memory chat-completions endpoint.
type ChatServer struct {
	URL      string
	mu       sync.Mutex
	requests []ChatRequest
}

// Requests returns a copy of the recorded requests.
func (s *ChatServer) Requests() []ChatRequest {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]ChatRequest, len(s.requests))
	copy(out, s.requests)
	return out
}

// StartChatServer launches a server that answers POST /chat/completions with reply.
func StartChatServer(t testing.TB, reply func(req ChatRequest, call int) ChatReply) *ChatServer {
	t.Helper()
	chat := &ChatServer{}
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/chat/completions" {
			http.NotFound(w, r)
			return
		}
		var req ChatRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		req.Authorization = r.Header.Get("Authorization")
		chat.mu.Lock()
		chat.requests = append(chat.requests, req)
		call := len(chat.requests)
		chat.mu.Unlock()

		out := reply(req, call)
		status := out.Status
		if status == 0 {
			status = http.StatusOK
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		if status < 200 || status >= 300 {
			fmt.Fprint(w, out.Body)
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{{
				"message": map[string]string{"role": "assistant", "content": out.Content},
			}},
		})
	})
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	chat.URL = server.URL
	return chat
}
