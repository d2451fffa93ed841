package server

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"vidsage/internal/answer"
	"vidsage/internal/app"
	"vidsage/internal/ratelimit"
	"vidsage/internal/util"
	"vidsage/pkg/domain"
)

// Config wires required dependencies for the HTTP server.
type Config struct {
	App *app.App

	// Redis-backed rate limiting for the expensive endpoints. Empty addr
	// disables limiting (tests, local dev without redis).
	RedisAddr     string
	RedisPassword string
	AnalyzeLimit  int
	ChatLimit     int

	TrustedProxies *util.TrustedProxies
}

// Server exposes the HTTP API.
type Server struct {
	app            *app.App
	mux            *http.ServeMux
	trusted        *util.TrustedProxies
	analyzeLimiter *ratelimit.FixedWindowLimiter
	chatLimiter    *ratelimit.FixedWindowLimiter
}

const rateWindow = time.Minute

// New constructs the server with routes configured.
func New(cfg Config) (*Server, error) {
	s := &Server{
		app:     cfg.App,
		mux:     http.NewServeMux(),
		trusted: cfg.TrustedProxies,
	}
	if cfg.RedisAddr != "" {
		analyzeLimit := cfg.AnalyzeLimit
		if analyzeLimit <= 0 {
			analyzeLimit = 10
		}
		chatLimit := cfg.ChatLimit
		if chatLimit <= 0 {
			chatLimit = 30
		}
		var err error
		s.analyzeLimiter, err = ratelimit.NewRedisFixedWindowLimiter(cfg.RedisAddr, cfg.RedisPassword, "vidsage:ratelimit:analyze", analyzeLimit, rateWindow)
		if err != nil {
			return nil, err
		}
		s.chatLimiter, err = ratelimit.NewRedisFixedWindowLimiter(cfg.RedisAddr, cfg.RedisPassword, "vidsage:ratelimit:chat", chatLimit, rateWindow)
		if err != nil {
			return nil, err
		}
	}
	s.routes()
	return s, nil
}

// Router returns the configured handler wrapped with the shared middleware.
func (s *Server) Router() http.Handler {
	return util.WithRequestID(util.WithRequestLog("vidsage", util.WithSecurityHeaders(util.WithCORS(s.mux))))
}

func (s *Server) routes() {
	s.mux.HandleFunc("/healthz", s.handleHealth)

	// auth
	s.mux.HandleFunc("/api/auth/signup", s.handleSignup)
	s.mux.HandleFunc("/api/auth/login", s.handleLogin)
	s.mux.HandleFunc("/api/auth/logout", s.handleLogout)
	s.mux.Handle("/api/auth/me", s.authenticated(s.handleMe))

	// videos & chat; analyze works without a session too
	s.mux.HandleFunc("/api/videos/analyze", s.handleAnalyze)
	s.mux.Handle("/api/videos", s.authenticated(s.handleVideos))
	s.mux.HandleFunc("/api/videos/", s.handleVideoSubtree)

	// profile, plans, feedback
	s.mux.Handle("/api/profiles/me", s.authenticated(s.handleProfile))
	s.mux.HandleFunc("/api/feedback", s.handleFeedback)

	// admin
	s.mux.Handle("/api/admin/prompt-configs", s.adminOnly(s.handlePromptConfigs))
	s.mux.Handle("/api/admin/prompt-configs/", s.adminOnly(s.handlePromptConfigByID))
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// auth wrappers
type authHandler func(http.ResponseWriter, *http.Request, domain.User)

func (s *Server) authenticated(next authHandler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, ok := s.authorize(r)
		if !ok {
			s.audit(r, "authorize", "fail")
			writeError(w, http.StatusUnauthorized, "unauthorized")
			return
		}
		next(w, r, user)
	})
}

func (s *Server) adminOnly(next authHandler) http.Handler {
	return s.authenticated(func(w http.ResponseWriter, r *http.Request, user domain.User) {
		if user.Role != domain.RoleAdmin {
			s.audit(r, "admin.authorize", "fail", "user_id", user.ID)
			writeError(w, http.StatusForbidden, "forbidden")
			return
		}
		next(w, r, user)
	})
}

func (s *Server) authorize(r *http.Request) (domain.User, bool) {
	token, ok := bearerToken(r)
	if !ok {
		return domain.User{}, false
	}
	user, ok, err := s.app.UserByToken(token)
	if err != nil || !ok {
		return domain.User{}, false
	}
	return user, true
}

// optionalUser resolves the session if one is presented, else returns the
// zero user. Endpoints that work anonymously use this.
func (s *Server) optionalUser(r *http.Request) domain.User {
	user, _ := s.authorize(r)
	return user
}

// auth handlers
func (s *Server) handleSignup(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w)
		return
	}
	var req authRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	user, token, err := s.app.SignUp(req.Email, req.Password)
	if err != nil {
		s.audit(r, "signup", "fail", "reason", err.Error())
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	s.audit(r, "signup", "success", "user_id", user.ID)
	writeJSON(w, http.StatusCreated, authResponse{Token: token, User: user})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w)
		return
	}
	var req authRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	user, token, err := s.app.Login(req.Email, req.Password)
	if err != nil {
		s.audit(r, "login", "fail", "reason", err.Error())
		writeError(w, http.StatusUnauthorized, err.Error())
		return
	}
	s.audit(r, "login", "success", "user_id", user.ID)
	writeJSON(w, http.StatusOK, authResponse{Token: token, User: user})
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w)
		return
	}
	token, ok := bearerToken(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	if err := s.app.Logout(token); err != nil {
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleMe(w http.ResponseWriter, r *http.Request, user domain.User) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

// profile handlers
func (s *Server) handleProfile(w http.ResponseWriter, r *http.Request, user domain.User) {
	switch r.Method {
	case http.MethodGet:
		profile, err := s.app.GetProfile(user)
		if err != nil {
			writeAppError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, profile)
	case http.MethodPut:
		var req profileRequest
		if err := decodeBody(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}
		profile, err := s.app.SaveProfile(user, req.Description)
		if err != nil {
			writeAppError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, profile)
	default:
		methodNotAllowed(w)
	}
}

// feedback handler; works with or without a session
func (s *Server) handleFeedback(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w)
		return
	}
	var req feedbackRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	user := s.optionalUser(r)
	fb, err := s.app.SubmitFeedback(user.ID, req.Message)
	if err != nil {
		writeAppError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, fb)
}

// request/response shapes
type authRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type authResponse struct {
	Token string      `json:"token"`
	User  domain.User `json:"user"`
}

type profileRequest struct {
	Description string `json:"description"`
}

type feedbackRequest struct {
	Message string `json:"message"`
}

// helpers
func decodeBody(r *http.Request, dst any) error {
	return json.NewDecoder(io.LimitReader(r.Body, 1<<20)).Decode(dst)
}

func bearerToken(r *http.Request) (string, bool) {
	authHeader := r.Header.Get("Authorization")
	if !strings.HasPrefix(authHeader, "Bearer ") {
		return "", false
	}
	token := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
	if token == "" {
		return "", false
	}
	return token, true
}

func (s *Server) audit(r *http.Request, event, outcome string, attrs ...any) {
	logAttrs := []any{
		"event", event,
		"outcome", outcome,
		"path", r.URL.Path,
		"method", r.Method,
		"ip", util.ClientIP(r, s.trusted),
	}
	logAttrs = append(logAttrs, attrs...)
	if outcome == "success" {
		slog.Info("security_event", logAttrs...)
		return
	}
	slog.Warn("security_event", logAttrs...)
}

func (s *Server) allowRate(w http.ResponseWriter, r *http.Request, limiter *ratelimit.FixedWindowLimiter, msg string) bool {
	if limiter == nil {
		return true
	}
	key := r.URL.Path + "|" + util.ClientIP(r, s.trusted)
	if limiter.Allow(key) {
		return true
	}
	w.Header().Set("Retry-After", "60")
	writeError(w, http.StatusTooManyRequests, msg)
	return false
}

// writeAppError maps application sentinels onto HTTP statuses.
func writeAppError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, app.ErrVideoNotFound),
		errors.Is(err, app.ErrProfileNotFound),
		errors.Is(err, app.ErrPromptConfigNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, app.ErrVideoForbidden):
		writeError(w, http.StatusForbidden, err.Error())
	case errors.Is(err, app.ErrInvalidURL),
		errors.Is(err, app.ErrMessageRequired),
		errors.Is(err, app.ErrDescriptionRequired),
		errors.Is(err, app.ErrPromptConfigInUse),
		errors.Is(err, app.ErrUnknownAction):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, answer.ErrGenerationTimeout):
		writeError(w, http.StatusServiceUnavailable, "the response took too long, please try again")
	case errors.Is(err, answer.ErrGeneration):
		writeError(w, http.StatusBadGateway, "answer generation failed, please try again")
	default:
		slog.Error("request failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

func methodNotAllowed(w http.ResponseWriter) {
	writeError(w, http.StatusMethodNotAllowed, "method not allowed")
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
