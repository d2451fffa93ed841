package server

import (
	"net/http"
	"strings"

	"vidsage/pkg/domain"
)

// handlePromptConfigs lists and creates admin prompt templates.
func (s *Server) handlePromptConfigs(w http.ResponseWriter, r *http.Request, user domain.User) {
	switch r.Method {
	case http.MethodGet:
		configs, err := s.app.ListPromptConfigs()
		if err != nil {
			writeAppError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"items": configs,
			"count": len(configs),
		})
	case http.MethodPost:
		var req promptConfigRequest
		if err := decodeBody(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}
		cfg, err := s.app.CreatePromptConfig(req.Name, req.Description, req.SystemPrompt, req.UserPromptTemplate)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		s.audit(r, "prompt_config.create", "success", "config_id", cfg.ID, "user_id", user.ID)
		writeJSON(w, http.StatusCreated, cfg)
	default:
		methodNotAllowed(w)
	}
}

// handlePromptConfigByID updates, deletes, or activates one template.
func (s *Server) handlePromptConfigByID(w http.ResponseWriter, r *http.Request, user domain.User) {
	rest := strings.TrimPrefix(r.URL.Path, "/api/admin/prompt-configs/")
	id, sub, _ := strings.Cut(rest, "/")
	if id == "" || strings.Contains(sub, "/") {
		http.NotFound(w, r)
		return
	}

	if sub == "activate" {
		if r.Method != http.MethodPost {
			methodNotAllowed(w)
			return
		}
		if err := s.app.ActivatePromptConfig(id); err != nil {
			writeAppError(w, err)
			return
		}
		s.audit(r, "prompt_config.activate", "success", "config_id", id, "user_id", user.ID)
		w.WriteHeader(http.StatusNoContent)
		return
	}
	if sub != "" {
		http.NotFound(w, r)
		return
	}

	switch r.Method {
	case http.MethodPut, http.MethodPatch:
		var req promptConfigRequest
		if err := decodeBody(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}
		cfg, err := s.app.UpdatePromptConfig(id, req.Name, req.Description, req.SystemPrompt, req.UserPromptTemplate)
		if err != nil {
			writeAppError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, cfg)
	case http.MethodDelete:
		if err := s.app.DeletePromptConfig(id); err != nil {
			writeAppError(w, err)
			return
		}
		s.audit(r, "prompt_config.delete", "success", "config_id", id, "user_id", user.ID)
		w.WriteHeader(http.StatusNoContent)
	default:
		methodNotAllowed(w)
	}
}

type promptConfigRequest struct {
	Name               string `json:"name"`
	Description        string `json:"description"`
	SystemPrompt       string `json:"systemPrompt"`
	UserPromptTemplate string `json:"userPromptTemplate"`
}
