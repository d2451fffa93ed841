package server

import (
	"errors"
	"io"
	"net/http"
	"strings"

	"vidsage/pkg/domain"
)

// handleAnalyze accepts a YouTube URL or bare video id and returns the
// analyzed video. A session is optional; anonymous analyses are unowned.
func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w)
		return
	}
	if !s.allowRate(w, r, s.analyzeLimiter, "too many analyze requests") {
		s.audit(r, "analyze", "rate_limited")
		return
	}
	var req analyzeRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if strings.TrimSpace(req.URL) == "" {
		writeError(w, http.StatusBadRequest, "url is required")
		return
	}
	user := s.optionalUser(r)
	video, err := s.app.AnalyzeVideo(r.Context(), user.ID, req.URL)
	if err != nil {
		s.audit(r, "analyze", "fail", "reason", err.Error())
		writeAppError(w, err)
		return
	}
	s.audit(r, "analyze", "success", "video_id", video.ID, "user_id", user.ID)
	writeJSON(w, http.StatusOK, video)
}

// handleVideos lists the caller's analyzed videos.
func (s *Server) handleVideos(w http.ResponseWriter, r *http.Request, user domain.User) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}
	videos, err := s.app.ListVideos(user)
	if err != nil {
		writeAppError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"items": videos,
		"count": len(videos),
	})
}

// handleVideoSubtree dispatches /api/videos/{id} and its sub-resources.
func (s *Server) handleVideoSubtree(w http.ResponseWriter, r *http.Request) {
	rest := strings.TrimPrefix(r.URL.Path, "/api/videos/")
	videoID, sub, _ := strings.Cut(rest, "/")
	if videoID == "" || strings.Contains(sub, "/") {
		http.NotFound(w, r)
		return
	}

	user := s.optionalUser(r)
	switch sub {
	case "":
		s.handleVideoByID(w, r, user, videoID)
	case "chat":
		s.handleChat(w, r, user, videoID)
	case "quick-action":
		s.handleQuickAction(w, r, user, videoID)
	case "quick-questions":
		s.handleQuickQuestions(w, r, user, videoID)
	case "plans":
		s.handlePlans(w, r, user, videoID)
	case "transcript-url":
		s.handleTranscriptURL(w, r, user, videoID)
	default:
		http.NotFound(w, r)
	}
}

func (s *Server) handleVideoByID(w http.ResponseWriter, r *http.Request, user domain.User, videoID string) {
	switch r.Method {
	case http.MethodGet:
		video, err := s.app.GetVideo(user, videoID)
		if err != nil {
			writeAppError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, video)
	case http.MethodDelete:
		if user.ID == "" {
			writeError(w, http.StatusUnauthorized, "unauthorized")
			return
		}
		if err := s.app.DeleteVideo(r.Context(), user, videoID); err != nil {
			writeAppError(w, err)
			return
		}
		s.audit(r, "video.delete", "success", "video_id", videoID, "user_id", user.ID)
		w.WriteHeader(http.StatusNoContent)
	default:
		methodNotAllowed(w)
	}
}

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request, user domain.User, videoID string) {
	if user.ID == "" {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	switch r.Method {
	case http.MethodGet:
		messages, err := s.app.ChatHistory(user, videoID)
		if err != nil {
			writeAppError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"items": messages,
			"count": len(messages),
		})
	case http.MethodPost:
		if !s.allowRate(w, r, s.chatLimiter, "too many chat requests") {
			s.audit(r, "chat", "rate_limited")
			return
		}
		var req chatRequest
		if err := decodeBody(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}
		turn, err := s.app.Chat(r.Context(), user, videoID, req.Message)
		if err != nil {
			writeAppError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, turn)
	default:
		methodNotAllowed(w)
	}
}

func (s *Server) handleQuickAction(w http.ResponseWriter, r *http.Request, user domain.User, videoID string) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w)
		return
	}
	if !s.allowRate(w, r, s.chatLimiter, "too many chat requests") {
		s.audit(r, "quick_action", "rate_limited")
		return
	}
	var req quickActionRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if strings.TrimSpace(req.Action) == "" {
		writeError(w, http.StatusBadRequest, "action is required")
		return
	}
	res, err := s.app.QuickAction(r.Context(), user, videoID, req.Action)
	if err != nil {
		writeAppError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"answer":     res.Answer,
		"timestamps": res.Timestamps,
	})
}

func (s *Server) handleQuickQuestions(w http.ResponseWriter, r *http.Request, user domain.User, videoID string) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}
	questions, err := s.app.QuickQuestions(r.Context(), user, videoID)
	if err != nil {
		writeAppError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"questions": questions})
}

func (s *Server) handlePlans(w http.ResponseWriter, r *http.Request, user domain.User, videoID string) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w)
		return
	}
	if user.ID == "" {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	var req planRequest
	if err := decodeBody(r, &req); err != nil && !errors.Is(err, io.EOF) {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	plan, err := s.app.GeneratePlan(r.Context(), user, videoID, req.Refresh)
	if err != nil {
		writeAppError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, plan)
}

func (s *Server) handleTranscriptURL(w http.ResponseWriter, r *http.Request, user domain.User, videoID string) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}
	url, err := s.app.TranscriptURL(r.Context(), user, videoID)
	if err != nil {
		writeAppError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"url": url})
}

type analyzeRequest struct {
	URL string `json:"url"`
}

type chatRequest struct {
	Message string `json:"message"`
}

type quickActionRequest struct {
	Action string `json:"action"`
}

type planRequest struct {
	Refresh bool `json:"refresh"`
}
