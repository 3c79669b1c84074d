// Package server exposes the HTTP API: login/logout, today's words and the
// AI sentence check.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"sort"
	"strings"

	"github.com/example/wordday/internal/auth"
	"github.com/example/wordday/internal/daily"
	"github.com/example/wordday/pkg/models"
)

// SentenceChecker evaluates a sentence against a target word
type SentenceChecker interface {
	CheckSentence(ctx context.Context, word, sentence string) (*models.SentenceAnalysis, error)
}

// Server wires the HTTP handlers to the engine and its collaborators
type Server struct {
	auth          *auth.Service
	engine        *daily.Engine
	checker       SentenceChecker // nil when no AI key is configured
	secureCookies bool
}

// New creates a server. checker may be nil, which disables the sentence
// check endpoint.
func New(authService *auth.Service, engine *daily.Engine, checker SentenceChecker, secureCookies bool) *Server {
	return &Server{
		auth:          authService,
		engine:        engine,
		checker:       checker,
		secureCookies: secureCookies,
	}
}

// Handler returns the routed HTTP handler
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/auth", s.handleLogin)
	mux.HandleFunc("DELETE /api/auth", s.handleLogout)
	mux.HandleFunc("GET /api/words", s.requireSession(s.handleWords))
	mux.HandleFunc("POST /api/words/sentence-check", s.requireSession(s.handleSentenceCheck))
	return mux
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Username == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "username and password are required")
		return
	}

	userID, err := s.auth.VerifyPassword(r.Context(), req.Username, req.Password)
	if errors.Is(err, auth.ErrInvalidCredentials) {
		writeError(w, http.StatusUnauthorized, "invalid username or password")
		return
	}
	if err != nil {
		log.Printf("login error: %v", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	token, err := s.auth.CreateToken(userID)
	if err != nil {
		log.Printf("token error: %v", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     auth.CookieName,
		Value:    token,
		HttpOnly: true,
		Secure:   s.secureCookies,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int(s.auth.TTL().Seconds()),
		Path:     "/",
	})
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     auth.CookieName,
		Value:    "",
		HttpOnly: true,
		Secure:   s.secureCookies,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   -1,
		Path:     "/",
	})
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// requireSession resolves the session cookie and rejects the request when no
// valid session is present.
func (s *Server) requireSession(next func(http.ResponseWriter, *http.Request, *auth.Session)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(auth.CookieName)
		if err != nil {
			writeError(w, http.StatusUnauthorized, "unauthorized")
			return
		}
		session, err := s.auth.ParseToken(cookie.Value)
		if err != nil {
			writeError(w, http.StatusUnauthorized, "unauthorized")
			return
		}
		next(w, r, session)
	}
}

func (s *Server) handleWords(w http.ResponseWriter, r *http.Request, session *auth.Session) {
	material, err := s.engine.TodaysMaterial(r.Context(), session.UserID)
	if err != nil {
		log.Printf("words error for user %d: %v", session.UserID, err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	// most-recent-first is a presentation choice, the engine keeps ledger order
	sort.SliceStable(material.History, func(i, j int) bool {
		return material.History[i].AssignedAt.After(material.History[j].AssignedAt)
	})

	writeJSON(w, http.StatusOK, material)
}

type sentenceCheckRequest struct {
	Word     string `json:"word"`
	Sentence string `json:"sentence"`
}

func (s *Server) handleSentenceCheck(w http.ResponseWriter, r *http.Request, session *auth.Session) {
	if s.checker == nil {
		writeError(w, http.StatusServiceUnavailable, "sentence check is not configured")
		return
	}

	var req sentenceCheckRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	req.Word = strings.TrimSpace(req.Word)
	req.Sentence = strings.TrimSpace(req.Sentence)
	if req.Word == "" || req.Sentence == "" {
		writeError(w, http.StatusBadRequest, "word and sentence are required")
		return
	}

	analysis, err := s.checker.CheckSentence(r.Context(), req.Word, req.Sentence)
	if err != nil {
		log.Printf("sentence check error for user %d: %v", session.UserID, err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	writeJSON(w, http.StatusOK, analysis)
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("failed to encode response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
