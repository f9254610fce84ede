// Package server exposes validation, geometry generation and record
// persistence over HTTP. Handlers translate requests to engine calls
// and contain no domain logic of their own.
package server

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/a01110946/extraction-validation-engine/internal/aci"
	"github.com/a01110946/extraction-validation-engine/internal/store"
)

// Server wires the engines and the store behind an HTTP router.
type Server struct {
	store           *store.Store
	defaultHeightMM float64
	defaultExposure aci.ExposureCondition
	router          *mux.Router
}

// New builds a server. The store may be nil; the persistence routes
// then respond 503.
func New(st *store.Store, defaultHeightMM float64, defaultExposure aci.ExposureCondition) *Server {
	if defaultHeightMM <= 0 {
		defaultHeightMM = 3000.0
	}
	if !defaultExposure.IsValid() {
		defaultExposure = aci.InteriorBeamsColumns
	}

	s := &Server{
		store:           st,
		defaultHeightMM: defaultHeightMM,
		defaultExposure: defaultExposure,
		router:          mux.NewRouter(),
	}

	api := s.router.PathPrefix("/api/v1").Subrouter()
	api.HandleFunc("/validate", s.handleValidate).Methods(http.MethodPost)
	api.HandleFunc("/geometry", s.handleGeometry).Methods(http.MethodPost)
	api.HandleFunc("/extractions", s.handleSaveExtraction).Methods(http.MethodPost)
	api.HandleFunc("/extractions", s.handleListExtractions).Methods(http.MethodGet)
	api.HandleFunc("/extractions/{id}", s.handleGetExtraction).Methods(http.MethodGet)
	api.HandleFunc("/extractions/{id}", s.handleUpdateExtraction).Methods(http.MethodPut)
	api.HandleFunc("/health", s.handleHealth).Methods(http.MethodGet)

	return s
}

// Handler returns the root handler with CORS applied.
func (s *Server) Handler() http.Handler {
	return cors(s.router)
}

func cors(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}
