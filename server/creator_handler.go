package server

import (
	"errors"
	"net/http"

	"melodex/core/catalog"
	"melodex/logger"
)

// CreatorRegisterHandler promotes the authenticated user to creator. A
// repeated promotion is not a hard failure: the user is simply routed to
// their existing creator dashboard.
func (h *APIHandler) CreatorRegisterHandler(w http.ResponseWriter, r *http.Request) {
	sess, err := GetSessionFromContext(r.Context())
	if err != nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	user, artist, err := h.identity.PromoteToCreator(sess.UserID)
	alreadyCreator := false
	if err != nil {
		if errors.Is(err, catalog.ErrConflict) && user != nil && artist != nil {
			alreadyCreator = true
		} else {
			respondError(w, err)
			return
		}
	}

	// Refresh the cached session so the artist id is visible immediately.
	sess.Role = user.Role
	sess.ArtistID = artist.ID
	if err := h.sessions.Save(r.Context(), sess); err != nil {
		logger.Error("failed to refresh session after promotion",
			logger.Int64("userId", sess.UserID), logger.ErrorField(err))
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"user":           user,
		"artist":         artist,
		"alreadyCreator": alreadyCreator,
	})
}

// CreatorOverviewHandler returns the creator dashboard summary.
func (h *APIHandler) CreatorOverviewHandler(w http.ResponseWriter, r *http.Request) {
	sess, err := GetSessionFromContext(r.Context())
	if err != nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	if !sess.IsCreator() {
		http.Error(w, "Creator registration required", http.StatusForbidden)
		return
	}

	overview, err := h.ratings.CreatorOverview(sess.ArtistID)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, overview)
}
