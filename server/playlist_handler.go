package server

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
)

// ListPlaylistsHandler returns every playlist.
func (h *APIHandler) ListPlaylistsHandler(w http.ResponseWriter, r *http.Request) {
	playlists, err := h.playlists.ListPlaylists()
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, playlists)
}

// CreatePlaylistRequest represents the playlist creation request body.
// Song ids that do not resolve are skipped, not rejected.
type CreatePlaylistRequest struct {
	Name    string  `json:"name"`
	SongIDs []int64 `json:"songIds"`
}

// CreatePlaylistHandler builds a playlist from selected songs.
func (h *APIHandler) CreatePlaylistHandler(w http.ResponseWriter, r *http.Request) {
	var req CreatePlaylistRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	playlist, err := h.playlists.CreatePlaylist(req.Name, req.SongIDs)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, playlist)
}

// PlaylistSongsHandler returns the songs of a playlist in insertion order.
func (h *APIHandler) PlaylistSongsHandler(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		http.Error(w, "Invalid playlist id", http.StatusBadRequest)
		return
	}

	songs, err := h.playlists.PlaylistSongs(id)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, songs)
}
