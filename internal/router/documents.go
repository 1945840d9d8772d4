package router

import (
	"net/http"

	"github.com/BerylCAtieno/pdf-summary-pipeline/internal/handlers"
	"github.com/BerylCAtieno/pdf-summary-pipeline/internal/middleware"
	"github.com/BerylCAtieno/pdf-summary-pipeline/internal/services"
	"github.com/BerylCAtieno/pdf-summary-pipeline/internal/utils"

	"github.com/gorilla/mux"
)

func NewRouter(docService services.DocumentService, inputFolder string, logger *utils.Logger) http.Handler {
	r := mux.NewRouter()

	// Middlewares
	r.Use(middleware.Logger(logger))
	r.Use(middleware.CORS())
	r.Use(middleware.Recovery(logger))

	docHandler := handlers.NewDocumentHandler(docService, inputFolder, logger)

	api := r.PathPrefix("/api/v1").Subrouter()
	api.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusMethodNotAllowed)
		w.Write([]byte(`{"error":"Method not allowed"}`))
	})

	// Health check
	api.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"healthy"}`))
	}).Methods(http.MethodGet)

	// Stored records
	api.HandleFunc("/documents", docHandler.ListDocuments).Methods(http.MethodGet)
	api.HandleFunc("/documents/{name}", docHandler.GetDocument).Methods(http.MethodGet)

	// Processing; OPTIONS is answered by the CORS middleware
	api.HandleFunc("/batches", docHandler.ProcessBatch).Methods(http.MethodPost, http.MethodOptions)
	api.HandleFunc("/summaries", docHandler.Summarize).Methods(http.MethodPost, http.MethodOptions)

	return r
}
