package server

import (
	"encoding/json"
	"net/http"
	"strconv"

	"melodex/core/catalog"

	"github.com/gorilla/mux"
)

func songIDFromRequest(r *http.Request) (int64, error) {
	return strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
}

// ListSongsHandler returns every song in the catalog.
func (h *APIHandler) ListSongsHandler(w http.ResponseWriter, r *http.Request) {
	songs, err := h.songs.ListSongs()
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, songs)
}

// UploadSongHandler handles song uploads from creators.
// Expected multipart form fields:
// - title: song title
// - releaseDate: YYYY-MM-DD
// - lyrics: lyrics text (optional)
// - singer: singer display name (optional)
// - songFile: the audio file, .mp3 only (optional)
func (h *APIHandler) UploadSongHandler(w http.ResponseWriter, r *http.Request) {
	sess, err := GetSessionFromContext(r.Context())
	if err != nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	if err := r.ParseMultipartForm(32 << 20); err != nil { // 32MB max memory
		http.Error(w, "Failed to parse multipart form", http.StatusBadRequest)
		return
	}

	in := catalog.UploadSongInput{
		Title:       r.FormValue("title"),
		ReleaseDate: r.FormValue("releaseDate"),
		Lyrics:      r.FormValue("lyrics"),
		Singer:      r.FormValue("singer"),
	}

	file, header, err := r.FormFile("songFile")
	if err == nil {
		defer file.Close()
		in.File = file
		in.FileName = header.Filename
		in.FileSize = header.Size
	}

	song, err := h.songs.UploadSong(r.Context(), sess, in)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, song)
}

// GetSongHandler returns a song with its artist display name.
func (h *APIHandler) GetSongHandler(w http.ResponseWriter, r *http.Request) {
	id, err := songIDFromRequest(r)
	if err != nil {
		http.Error(w, "Invalid song id", http.StatusBadRequest)
		return
	}

	detail, err := h.songs.GetSong(id)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, detail)
}

// UpdateSongRequest represents the song edit request body.
type UpdateSongRequest struct {
	Title  string `json:"title"`
	Lyrics string `json:"lyrics"`
}

// UpdateSongHandler rewrites a song's title and lyrics.
func (h *APIHandler) UpdateSongHandler(w http.ResponseWriter, r *http.Request) {
	id, err := songIDFromRequest(r)
	if err != nil {
		http.Error(w, "Invalid song id", http.StatusBadRequest)
		return
	}

	var req UpdateSongRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	song, err := h.songs.UpdateSong(id, req.Title, req.Lyrics)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, song)
}

// DeleteSongHandler deletes a song by id.
func (h *APIHandler) DeleteSongHandler(w http.ResponseWriter, r *http.Request) {
	id, err := songIDFromRequest(r)
	if err != nil {
		http.Error(w, "Invalid song id", http.StatusBadRequest)
		return
	}

	if err := h.songs.DeleteSong(id); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// PlaySongHandler resolves the stored audio object to a playable URL.
func (h *APIHandler) PlaySongHandler(w http.ResponseWriter, r *http.Request) {
	id, err := songIDFromRequest(r)
	if err != nil {
		http.Error(w, "Invalid song id", http.StatusBadRequest)
		return
	}

	playbackURL, err := h.songs.PlaybackURL(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"url": playbackURL})
}

// RateRequest represents a rating submission. The rating arrives as a raw
// string and must parse as an integer.
type RateRequest struct {
	Rating string `json:"rating"`
}

// RateSongHandler overwrites a song's rating.
func (h *APIHandler) RateSongHandler(w http.ResponseWriter, r *http.Request) {
	id, err := songIDFromRequest(r)
	if err != nil {
		http.Error(w, "Invalid song id", http.StatusBadRequest)
		return
	}

	var req RateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	song, err := h.ratings.RateSong(id, req.Rating)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, song)
}

// RateLyricsHandler overwrites a song's lyrics rating.
func (h *APIHandler) RateLyricsHandler(w http.ResponseWriter, r *http.Request) {
	id, err := songIDFromRequest(r)
	if err != nil {
		http.Error(w, "Invalid song id", http.StatusBadRequest)
		return
	}

	var req RateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	song, err := h.ratings.RateLyrics(id, req.Rating)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, song)
}
