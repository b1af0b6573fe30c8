package handler

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/rs/cors"
)

// NewRouter creates a new HTTP router with all routes configured
func NewRouter(conversionHandler *ConversionHandler, allowedOrigins []string, middlewares ...mux.MiddlewareFunc) http.Handler {
	router := mux.NewRouter()
	router.Use(middlewares...)

	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok","service":"pdf-to-speech"}`))
	}).Methods(http.MethodGet)

	// Browser form
	router.HandleFunc("/", conversionHandler.Index).Methods(http.MethodGet)

	// Conversion
	router.HandleFunc("/api/convert", conversionHandler.Convert).Methods(http.MethodPost)
	router.HandleFunc("/media/{name}", conversionHandler.ServeAudio).Methods(http.MethodGet, http.MethodHead)

	if len(allowedOrigins) == 0 {
		allowedOrigins = []string{"*"}
	}
	c := cors.New(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{
			http.MethodGet,
			http.MethodHead,
			http.MethodPost,
			http.MethodOptions,
		},
		AllowedHeaders: []string{
			"Accept",
			"Content-Type",
		},
		ExposedHeaders: []string{
			"Content-Disposition",
		},
		MaxAge: 300, // Maximum value not ignored by any of major browsers
	})

	return c.Handler(router)
}
