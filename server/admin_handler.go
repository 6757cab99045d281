package server

import (
	"encoding/json"
	"net/http"

	"melodex/model"
)

// AdminRegisterRequest represents the admin registration request body.
type AdminRegisterRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

// AdminRegisterHandler promotes an existing user to admin or creates a new
// admin account. Admin accounts share the general username space.
func (h *APIHandler) AdminRegisterHandler(w http.ResponseWriter, r *http.Request) {
	var req AdminRegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	user, err := h.identity.RegisterAdmin(req.Username, req.Password, req.Name)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, user)
}

// AdminStatsHandler returns the fleet-wide aggregates. Admin only.
func (h *APIHandler) AdminStatsHandler(w http.ResponseWriter, r *http.Request) {
	sess, err := GetSessionFromContext(r.Context())
	if err != nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	if sess.Role != model.RoleAdmin {
		http.Error(w, "Admin access required", http.StatusForbidden)
		return
	}

	stats, err := h.stats.FleetStats()
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, stats)
}

// DashboardHandler returns the browse view for general users: every song,
// every playlist and the default-genre picks.
func (h *APIHandler) DashboardHandler(w http.ResponseWriter, r *http.Request) {
	songs, err := h.songs.ListSongs()
	if err != nil {
		respondError(w, err)
		return
	}

	playlists, err := h.playlists.ListPlaylists()
	if err != nil {
		respondError(w, err)
		return
	}

	genrePicks, err := h.songs.SongsByGenre(model.DefaultGenre)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"songs":      songs,
		"playlists":  playlists,
		"genre":      model.DefaultGenre,
		"genrePicks": genrePicks,
	})
}
