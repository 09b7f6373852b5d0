// Package fakeapi is an in-process stand-in for the employee-management backend, used by tests.
package fakeapi

import (
	"encoding/json"
	"io"
	"mime"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/go-chi/chi/v5"
)

// Account is a user the fake backend accepts on /login.
type Account struct {
	ID       string
	Password string
	Role     string
	Token    string
}

// Request is what the fake backend saw for one call.
type Request struct {
	Method        string
	Path          string
	EscapedPath   string
	Authorization string
	ContentType   string
	RequestID     string
	Body          []byte
	FormFields    map[string]string
	FormFiles     map[string][]byte
}

// JSON decodes the recorded body into v.
func (r Request) JSON(v any) error {
	return json.Unmarshal(r.Body, v)
}

type Server struct {
	*httptest.Server

	mu       sync.Mutex
	requests []Request
	accounts map[string]Account
	failures map[string]int
}

// New starts a fake backend mounted under /api and closes it when the test ends.
func New(t testing.TB) *Server {
	t.Helper()

	s := &Server{
		accounts: make(map[string]Account),
		failures: make(map[string]int),
	}

	r := chi.NewRouter()
	r.Use(s.record)
	r.Route("/api", func(r chi.Router) {
		r.Post("/signup", s.created)
		r.Post("/login", s.login)
		r.Post("/adminSignup", s.created)

		r.Get("/employees", s.list)
		r.Get("/employees/{id}", s.byID)
		r.Put("/employees/{id}", s.byID)
		r.Delete("/employees/{id}", s.deleted)
		r.Patch("/employees/{id}/status", s.echo)

		r.Post("/leave/apply", s.created)
		r.Get("/leave/all", s.list)
		r.Get("/leave/{employeeId}", s.list)
		r.Put("/leave/update-status/{leaveId}", s.echo)

		r.Post("/attendance", s.created)
		r.Get("/attendance", s.list)

		r.Post("/timesheets", s.created)
		r.Get("/timesheets", s.list)
		r.Get("/timesheets/{employeeId}", s.list)

		r.Get("/payrolls", s.list)
		r.Post("/payrolls", s.created)
	})

	s.Server = httptest.NewServer(r)
	t.Cleanup(s.Close)
	return s
}

// APIURL is the base address clients should be configured with.
func (s *Server) APIURL() string {
	return s.URL + "/api"
}

// AddAccount registers credentials accepted by /login.
func (s *Server) AddAccount(email string, a Account) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.accounts[email] = a
}

// FailWith makes every request to path answer with status and an error message.
func (s *Server) FailWith(path string, status int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures[path] = status
}

// Requests returns a copy of everything recorded so far.
func (s *Server) Requests() []Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Request, len(s.requests))
	copy(out, s.requests)
	return out
}

// Last returns the most recent request; the zero Request when there is none.
func (s *Server) Last() Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.requests) == 0 {
		return Request{}
	}
	return s.requests[len(s.requests)-1]
}

func (s *Server) record(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec := Request{
			Method:        r.Method,
			Path:          r.URL.Path,
			EscapedPath:   r.URL.EscapedPath(),
			Authorization: r.Header.Get("Authorization"),
			ContentType:   r.Header.Get("Content-Type"),
			RequestID:     r.Header.Get("X-Request-ID"),
		}

		mediaType, _, _ := mime.ParseMediaType(rec.ContentType)
		if mediaType == "multipart/form-data" {
			if err := r.ParseMultipartForm(10 << 20); err == nil {
				rec.FormFields = make(map[string]string)
				rec.FormFiles = make(map[string][]byte)
				for k, v := range r.MultipartForm.Value {
					rec.FormFields[k] = strings.Join(v, ",")
				}
				for field, headers := range r.MultipartForm.File {
					f, err := headers[0].Open()
					if err != nil {
						continue
					}
					data, _ := io.ReadAll(f)
					f.Close()
					rec.FormFiles[field] = data
				}
			}
		} else if r.Body != nil {
			rec.Body, _ = io.ReadAll(r.Body)
		}

		s.mu.Lock()
		s.requests = append(s.requests, rec)
		status, failing := s.failures[r.URL.Path]
		s.mu.Unlock()

		if failing {
			writeJSON(w, status, map[string]string{"message": http.StatusText(status)})
			return
		}

		if len(rec.Body) > 0 {
			r.Body = io.NopCloser(strings.NewReader(string(rec.Body)))
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) login(w http.ResponseWriter, r *http.Request) {
	var creds struct {
		Email    string `json:"email"`
		Password string `json:"password"`
		Role     string `json:"role"`
	}
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "malformed body"})
		return
	}

	s.mu.Lock()
	account, ok := s.accounts[creds.Email]
	s.mu.Unlock()
	if !ok || account.Password != creds.Password || account.Role != creds.Role {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"message": "Invalid credentials"})
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"message": "Login successful",
		"token":   account.Token,
		"user": map[string]string{
			"_id":   account.ID,
			"email": creds.Email,
			"role":  account.Role,
		},
	})
}

func (s *Server) list(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, []map[string]string{{"_id": "1"}, {"_id": "2"}})
}

func (s *Server) byID(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"_id": chi.URLParam(r, "id")})
}

func (s *Server) deleted(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"message": "deleted"})
}

func (s *Server) created(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusCreated, map[string]string{"message": "created"})
}

func (s *Server) echo(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	body, _ := io.ReadAll(r.Body)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
