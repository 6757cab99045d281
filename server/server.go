package server

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"melodex/cache"
	"melodex/config"
	"melodex/core/auth"
	"melodex/core/catalog"
	"melodex/db"
	"melodex/logger"
	"melodex/repository"
	"melodex/storage"

	"github.com/gorilla/mux"
)

// Start initializes and starts the HTTP server.
func Start() {
	cfg := config.Load()

	logger.InitLogger(logger.Config{
		Level:      logger.LogLevel(cfg.LogLevel),
		OutputPath: cfg.LogPath,
		MaxSize:    100,
		MaxBackups: 3,
		MaxAge:     28,
		Compress:   true,
	})
	defer logger.Sync()

	auth.Init(cfg.JWTSecret)

	if err := db.ConnectDB(cfg); err != nil {
		logger.Fatal("Failed to connect to database", logger.ErrorField(err))
	}
	defer db.CloseDB()

	if err := db.ConnectGormDB(cfg); err != nil {
		logger.Fatal("Failed to connect to database with GORM", logger.ErrorField(err))
	}
	defer db.CloseGormDB()

	if err := db.Migrate(); err != nil {
		logger.Fatal("Failed to migrate catalog schema", logger.ErrorField(err))
	}

	if err := db.ConnectRedis(cfg); err != nil {
		logger.Fatal("Failed to connect to Redis", logger.ErrorField(err))
	}
	defer db.CloseRedis()
	logger.Info("Successfully connected to Redis")

	audioStore, err := storage.NewMinioStore(cfg)
	if err != nil {
		logger.Fatal("Failed to initialize audio store", logger.ErrorField(err))
	}

	userRepo := repository.NewMySQLUserRepository(db.DB)
	artistRepo := repository.NewMySQLArtistRepository(db.DB)
	songRepo := repository.NewMySQLSongRepository(db.DB)
	albumRepo := repository.NewMySQLAlbumRepository(db.DB)
	playlistRepo := repository.NewMySQLPlaylistRepository(db.DB)

	sessions := cache.NewSessionCache(db.RedisClient, cfg.SessionTTL)

	apiHandler := NewAPIHandler(
		catalog.NewIdentityService(userRepo),
		catalog.NewSearchService(albumRepo, songRepo),
		catalog.NewRatingService(songRepo, albumRepo),
		catalog.NewSongService(songRepo, artistRepo, audioStore),
		catalog.NewAlbumService(albumRepo),
		catalog.NewPlaylistService(playlistRepo, songRepo),
		catalog.NewStatsService(userRepo, songRepo, albumRepo),
		userRepo,
		sessions,
		cfg,
	)

	router := mux.NewRouter()

	// CORS middleware.
	router.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Access-Control-Allow-Origin", "*")
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS, HEAD")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
			w.Header().Set("Access-Control-Max-Age", "86400")

			if r.Method == "OPTIONS" {
				w.WriteHeader(http.StatusOK)
				return
			}

			next.ServeHTTP(w, r)
		})
	})

	// Identity endpoints
	router.HandleFunc("/api/register", apiHandler.RegisterHandler).Methods(http.MethodPost)
	router.HandleFunc("/api/login", apiHandler.LoginHandler).Methods(http.MethodPost)
	router.HandleFunc("/api/logout", apiHandler.AuthMiddleware(apiHandler.LogoutHandler)).Methods(http.MethodPost)
	router.HandleFunc("/api/admin/register", apiHandler.AdminRegisterHandler).Methods(http.MethodPost)

	// Browse & search endpoints
	router.HandleFunc("/api/dashboard", apiHandler.AuthMiddleware(apiHandler.DashboardHandler)).Methods(http.MethodGet)
	router.HandleFunc("/api/search", apiHandler.AuthMiddleware(apiHandler.SearchHandler)).Methods(http.MethodGet)

	// Song endpoints
	router.HandleFunc("/api/songs", apiHandler.AuthMiddleware(apiHandler.ListSongsHandler)).Methods(http.MethodGet)
	router.HandleFunc("/api/songs", apiHandler.AuthMiddleware(apiHandler.UploadSongHandler)).Methods(http.MethodPost)
	router.HandleFunc("/api/songs/{id}", apiHandler.AuthMiddleware(apiHandler.GetSongHandler)).Methods(http.MethodGet)
	router.HandleFunc("/api/songs/{id}", apiHandler.AuthMiddleware(apiHandler.UpdateSongHandler)).Methods(http.MethodPut)
	router.HandleFunc("/api/songs/{id}", apiHandler.AuthMiddleware(apiHandler.DeleteSongHandler)).Methods(http.MethodDelete)
	router.HandleFunc("/api/songs/{id}/play", apiHandler.AuthMiddleware(apiHandler.PlaySongHandler)).Methods(http.MethodGet)
	router.HandleFunc("/api/songs/{id}/rating", apiHandler.AuthMiddleware(apiHandler.RateSongHandler)).Methods(http.MethodPost)
	router.HandleFunc("/api/songs/{id}/lyrics-rating", apiHandler.AuthMiddleware(apiHandler.RateLyricsHandler)).Methods(http.MethodPost)

	// Album endpoints
	router.HandleFunc("/api/albums", apiHandler.AuthMiddleware(apiHandler.ListAlbumsHandler)).Methods(http.MethodGet)
	router.HandleFunc("/api/albums", apiHandler.AuthMiddleware(apiHandler.CreateAlbumHandler)).Methods(http.MethodPost)

	// Playlist endpoints
	router.HandleFunc("/api/playlists", apiHandler.AuthMiddleware(apiHandler.ListPlaylistsHandler)).Methods(http.MethodGet)
	router.HandleFunc("/api/playlists", apiHandler.AuthMiddleware(apiHandler.CreatePlaylistHandler)).Methods(http.MethodPost)
	router.HandleFunc("/api/playlists/{id}/songs", apiHandler.AuthMiddleware(apiHandler.PlaylistSongsHandler)).Methods(http.MethodGet)

	// Creator endpoints
	router.HandleFunc("/api/creator/register", apiHandler.AuthMiddleware(apiHandler.CreatorRegisterHandler)).Methods(http.MethodPost)
	router.HandleFunc("/api/creator/overview", apiHandler.AuthMiddleware(apiHandler.CreatorOverviewHandler)).Methods(http.MethodGet)

	// Admin endpoints
	router.HandleFunc("/api/admin/stats", apiHandler.AuthMiddleware(apiHandler.AdminStatsHandler)).Methods(http.MethodGet)

	server := &http.Server{
		Addr:         cfg.ListenAddr,
		Handler:      router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		logger.Info("Starting Melodex server", logger.String("addr", cfg.ListenAddr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Server failed", logger.ErrorField(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown", logger.ErrorField(err))
	}
}
