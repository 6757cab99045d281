package server

import (
	"encoding/json"
	"net/http"

	"melodex/core/auth"
	"melodex/logger"
)

// RegisterRequest represents the registration request body.
type RegisterRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

// LoginRequest represents the login request body.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// RegisterHandler handles user registration requests.
func (h *APIHandler) RegisterHandler(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	user, err := h.identity.Register(req.Username, req.Password, req.Name)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, user)
}

// LoginHandler handles user login requests.
func (h *APIHandler) LoginHandler(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	sess, err := h.identity.Login(req.Username, req.Password)
	if err != nil {
		logger.Warn("login failed", logger.String("username", req.Username), logger.ErrorField(err))
		respondError(w, err)
		return
	}

	if err := h.sessions.Save(r.Context(), sess); err != nil {
		logger.Error("failed to store session", logger.Int64("userId", sess.UserID), logger.ErrorField(err))
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	token, err := auth.GenerateToken(sess.UserID, sess.Username)
	if err != nil {
		logger.Error("failed to generate token", logger.Int64("userId", sess.UserID), logger.ErrorField(err))
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	logger.Info("login succeeded", logger.String("username", sess.Username))
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"token":   token,
		"session": sess,
	})
}

// LogoutHandler drops the cached session.
func (h *APIHandler) LogoutHandler(w http.ResponseWriter, r *http.Request) {
	sess, err := GetSessionFromContext(r.Context())
	if err != nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	if err := h.sessions.Delete(r.Context(), sess.UserID); err != nil {
		logger.Error("failed to delete session", logger.Int64("userId", sess.UserID), logger.ErrorField(err))
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"status": "logged out"})
}
