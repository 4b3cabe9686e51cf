package main

import (
	"log"
	"net/http"
	"os"
	"time"

	"bookcatalog/internal/httpx"
	"bookcatalog/internal/products"

	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load(".env.local")

	serverAddress := getEnv("PRODUCTS_ADDR", ":8082")

	store := products.NewStore()
	handler := products.NewHTTPHandler(store)

	router := http.NewServeMux()

	// No database behind this service; ready as soon as it is up.
	router.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	router.HandleFunc("/readyz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ready"))
	})

	router.HandleFunc("GET /api/products", handler.List)
	router.HandleFunc("GET /api/products/{id}", handler.Get)

	rateLimit := httpx.NewRateLimitMiddleware(50, 100)
	var root http.Handler = router
	root = httpx.SecurityHeadersMiddleware(root)
	root = rateLimit.Middleware(root)
	root = httpx.RecoveryMiddleware(root)
	root = httpx.AccessLogMiddleware(root)
	root = httpx.RequestIDMiddleware(root)

	httpServer := &http.Server{
		Addr:         serverAddress,
		Handler:      root,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	log.Printf("Starting products on %s", serverAddress)
	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server error: %v", err)
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
