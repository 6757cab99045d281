package server

import (
	"encoding/json"
	"net/http"
)

// ListAlbumsHandler returns every album in the catalog.
func (h *APIHandler) ListAlbumsHandler(w http.ResponseWriter, r *http.Request) {
	albums, err := h.albums.ListAlbums()
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, albums)
}

// CreateAlbumRequest represents the album creation request body.
type CreateAlbumRequest struct {
	Name  string `json:"name"`
	Genre string `json:"genre"`
}

// CreateAlbumHandler records an album for the session's artist.
func (h *APIHandler) CreateAlbumHandler(w http.ResponseWriter, r *http.Request) {
	sess, err := GetSessionFromContext(r.Context())
	if err != nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var req CreateAlbumRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	album, err := h.albums.CreateAlbum(sess, req.Name, req.Genre)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, album)
}
