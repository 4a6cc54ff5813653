package router

import (
	"net/http"

	"github.com/BerylCAtieno/exam-helper-api/internal/config"
	"github.com/BerylCAtieno/exam-helper-api/internal/handlers"
	"github.com/BerylCAtieno/exam-helper-api/internal/middleware"
	"github.com/BerylCAtieno/exam-helper-api/internal/services"
	"github.com/BerylCAtieno/exam-helper-api/internal/utils"

	"github.com/gorilla/mux"
)

func NewRouter(service services.CompletionService, cfg *config.Config, logger *utils.Logger) http.Handler {
	r := mux.NewRouter()

	// Middlewares
	r.Use(middleware.Logger(logger))
	r.Use(middleware.CORS(cfg.AllowedOrigins))
	r.Use(middleware.Recovery(logger))

	h := handlers.NewCompletionHandler(service, logger, cfg.MaxRequestSize)

	// Liveness
	r.HandleFunc("/", h.Liveness).Methods(http.MethodGet)

	// OPTIONS is listed so preflight requests reach the CORS middleware.
	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/gpt", h.Complete).Methods(http.MethodPost, http.MethodOptions)
	api.HandleFunc("/ask", h.Ask).Methods(http.MethodPost, http.MethodOptions)

	return r
}
