package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"melodex/cache"
	"melodex/config"
	"melodex/core/auth"
	"melodex/core/catalog"
	"melodex/logger"
	"melodex/model"
	"melodex/repository"
)

// APIHandler handles all API requests.
type APIHandler struct {
	identity  *catalog.IdentityService
	search    *catalog.SearchService
	ratings   *catalog.RatingService
	songs     *catalog.SongService
	albums    *catalog.AlbumService
	playlists *catalog.PlaylistService
	stats     *catalog.StatsService
	users     repository.UserRepository
	sessions  *cache.SessionCache
	cfg       *config.Config
}

// NewAPIHandler creates a new API handler.
func NewAPIHandler(
	identity *catalog.IdentityService,
	search *catalog.SearchService,
	ratings *catalog.RatingService,
	songs *catalog.SongService,
	albums *catalog.AlbumService,
	playlists *catalog.PlaylistService,
	stats *catalog.StatsService,
	users repository.UserRepository,
	sessions *cache.SessionCache,
	cfg *config.Config,
) *APIHandler {
	return &APIHandler{
		identity:  identity,
		search:    search,
		ratings:   ratings,
		songs:     songs,
		albums:    albums,
		playlists: playlists,
		stats:     stats,
		users:     users,
		sessions:  sessions,
		cfg:       cfg,
	}
}

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		if err := json.NewEncoder(w).Encode(payload); err != nil {
			logger.Error("failed to encode response", logger.ErrorField(err))
		}
	}
}

// statusForError maps the catalog error taxonomy onto HTTP statuses.
func statusForError(err error) int {
	switch {
	case errors.Is(err, catalog.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, catalog.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, catalog.ErrConflict):
		return http.StatusConflict
	case errors.Is(err, catalog.ErrAuth):
		return http.StatusUnauthorized
	case errors.Is(err, catalog.ErrNoSongs):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func respondError(w http.ResponseWriter, err error) {
	status := statusForError(err)
	if status == http.StatusInternalServerError {
		logger.Error("request failed", logger.ErrorField(err))
		respondJSON(w, status, map[string]string{"error": "internal server error"})
		return
	}
	respondJSON(w, status, map[string]string{"error": err.Error()})
}

type contextKey string

const sessionContextKey contextKey = "session"

// AuthMiddleware checks for a valid JWT token and attaches the session.
func (h *APIHandler) AuthMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			http.Error(w, "Authorization header is required", http.StatusUnauthorized)
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			http.Error(w, "Invalid authorization header format", http.StatusUnauthorized)
			return
		}

		claims, err := auth.ParseToken(parts[1])
		if err != nil {
			http.Error(w, "Invalid token", http.StatusUnauthorized)
			return
		}

		sess, err := h.loadSession(r.Context(), claims.UserID)
		if err != nil {
			logger.Error("failed to load session", logger.Int64("userId", claims.UserID), logger.ErrorField(err))
			http.Error(w, "Internal server error", http.StatusInternalServerError)
			return
		}
		if sess == nil {
			http.Error(w, "Session expired", http.StatusUnauthorized)
			return
		}

		ctx := context.WithValue(r.Context(), sessionContextKey, sess)
		next.ServeHTTP(w, r.WithContext(ctx))
	}
}

// loadSession fetches the cached session, rebuilding it from the user row
// when the cache entry has expired.
func (h *APIHandler) loadSession(ctx context.Context, userID int64) (*model.Session, error) {
	sess, err := h.sessions.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	if sess != nil {
		return sess, nil
	}

	user, err := h.users.GetUserByID(userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, nil
	}

	sess = &model.Session{
		UserID:   user.ID,
		Username: user.Username,
		Role:     user.Role,
	}
	if user.ArtistID.Valid {
		sess.ArtistID = user.ArtistID.Int64
	}

	if err := h.sessions.Save(ctx, sess); err != nil {
		return nil, err
	}
	return sess, nil
}

// GetSessionFromContext extracts the session from the request context.
func GetSessionFromContext(ctx context.Context) (*model.Session, error) {
	sess, ok := ctx.Value(sessionContextKey).(*model.Session)
	if !ok || sess == nil {
		return nil, fmt.Errorf("session not found in context")
	}
	return sess, nil
}
