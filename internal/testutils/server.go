package testutils

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/designsync/figma-fetch/internal/constants"
)

// FileServer is a fake Figma files endpoint recording every request it receives.
type FileServer struct {
	*httptest.Server

	mu     sync.Mutex
	status int
	body   string
	calls  []Request
}

// Request is what FileServer recorded about a single request.
type Request struct {
	Method      string
	Path        string
	EscapedPath string
	Token       string
}

// NewFileServer starts a FileServer answering every request with status and body.
// The server is closed at the end of the test.
func NewFileServer(t *testing.T, status int, body string) *FileServer {
	t.Helper()

	s := &FileServer{status: status, body: body}
	s.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		defer s.mu.Unlock()

		s.calls = append(s.calls, Request{
			Method:      r.Method,
			Path:        r.URL.Path,
			EscapedPath: r.URL.EscapedPath(),
			Token:       r.Header.Get(constants.TokenHeader),
		})
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(s.status)
		_, _ = w.Write([]byte(s.body))
	}))
	t.Cleanup(s.Close)

	return s
}

// BaseURL returns the files endpoint served by s.
func (s *FileServer) BaseURL() string {
	return s.URL + "/v1/files"
}

// SetResponse changes the answer to subsequent requests.
func (s *FileServer) SetResponse(status int, body string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.status = status
	s.body = body
}

// Calls returns a copy of the requests received so far.
func (s *FileServer) Calls() []Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Request(nil), s.calls...)
}
