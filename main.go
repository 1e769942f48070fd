package main

import (
	"context"
	"encoding/json"
	"log"
	"net/http"

	"github.com/gorilla/mux"

	"paprika-server/modules/common/config"
	"paprika-server/modules/common/history"
	redisclient "paprika-server/modules/common/redis"
	"paprika-server/modules/common/requestid"
	generateimage "paprika-server/modules/generate-image"
)

// CORS middleware
func enableCORS(allowedOrigin string) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Access-Control-Allow-Origin", allowedOrigin)
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, "+requestid.HeaderKey)

			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusOK)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func healthCheck(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]string{
		"status":  "healthy",
		"service": "paprika-server",
	})
}

func newRouter(allowedOrigin string, generateImageHandler *generateimage.GenerateImageHandler) *mux.Router {
	r := mux.NewRouter()

	r.Use(requestid.Middleware)
	r.Use(enableCORS(allowedOrigin))

	r.HandleFunc("/", healthCheck).Methods(http.MethodGet)
	r.HandleFunc("/health", healthCheck).Methods(http.MethodGet)

	r.HandleFunc("/api/generate-image", generateImageHandler.GenerateImage).Methods(http.MethodPost, http.MethodOptions)
	r.HandleFunc("/api/generations", generateImageHandler.ListGenerations).Methods(http.MethodGet, http.MethodOptions)

	return r
}

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("❌ Failed to load config: %v", err)
	}

	var store history.Store = history.NopStore{}
	if cfg.HistoryEnabled() {
		rdb, err := redisclient.Connect(context.Background(), cfg)
		if err != nil {
			log.Printf("⚠️  Redis unavailable, generation history disabled: %v", err)
		} else {
			defer rdb.Close()
			store = history.NewRedisStore(rdb, history.DefaultKey, cfg.HistoryMaxEntries)
		}
	}

	generateImageHandler := generateimage.NewGenerateImageHandler(generateimage.NewService(), store)
	r := newRouter(cfg.AllowedOrigin, generateImageHandler)

	log.Printf("🚀 Paprika server starting on port %s", cfg.Port)
	log.Printf("🎨 Generate image: POST http://localhost:%s/api/generate-image", cfg.Port)
	log.Printf("📜 History: GET http://localhost:%s/api/generations", cfg.Port)
	log.Printf("❤️  Health check: http://localhost:%s/health", cfg.Port)

	if err := http.ListenAndServe(":"+cfg.Port, r); err != nil {
		log.Fatalf("Server failed to start: %v", err)
	}
}
