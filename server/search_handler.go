package server

import (
	"net/http"
)

// SearchHandler answers the combined album/song search. Query parameters:
// albumSearch matches album name, then album genre; songSearch matches song
// title, then exact rating when numeric.
func (h *APIHandler) SearchHandler(w http.ResponseWriter, r *http.Request) {
	albumQuery := r.URL.Query().Get("albumSearch")
	songQuery := r.URL.Query().Get("songSearch")

	result, err := h.search.Search(albumQuery, songQuery)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, result)
}
