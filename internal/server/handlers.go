package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/a01110946/extraction-validation-engine/internal/aci"
	"github.com/a01110946/extraction-validation-engine/internal/geometry"
	"github.com/a01110946/extraction-validation-engine/internal/schema"
	"github.com/a01110946/extraction-validation-engine/internal/store"
	"github.com/a01110946/extraction-validation-engine/internal/version"
)

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]any{"success": false, "error": msg})
}

func decodeRecord(r *http.Request) (*schema.ColumnExtraction, error) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		return nil, err
	}
	return schema.ParseJSON(body)
}

func (s *Server) handleValidate(w http.ResponseWriter, r *http.Request) {
	rec, err := decodeRecord(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	exposure := s.defaultExposure
	if token := r.URL.Query().Get("exposure"); token != "" {
		exposure, err = aci.ParseExposure(token)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
	}

	healed, corrections := aci.Heal(rec, exposure)
	writeJSON(w, http.StatusOK, map[string]any{
		"success":     true,
		"data":        healed,
		"corrections": corrections,
	})
}

func (s *Server) handleGeometry(w http.ResponseWriter, r *http.Request) {
	rec, err := decodeRecord(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	height := s.defaultHeightMM
	if raw := r.URL.Query().Get("column_height_mm"); raw != "" {
		height, err = strconv.ParseFloat(raw, 64)
		if err != nil || height <= 0 {
			writeError(w, http.StatusBadRequest, "column_height_mm must be a positive number")
			return
		}
	}

	payload, err := geometry.NewEngine(height).Generate(rec)
	if err != nil {
		var inputErr *geometry.InputError
		if errors.As(err, &inputErr) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success":  true,
		"geometry": payload,
	})
}

func (s *Server) handleSaveExtraction(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		writeError(w, http.StatusServiceUnavailable, "persistence is not configured")
		return
	}

	rec, err := decodeRecord(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	q := r.URL.Query()
	validated := q.Get("validated") == "true"
	notes := q.Get("validation_notes")

	id, err := s.store.Save(r.Context(), rec, validated, notes)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"id":      id,
		"message": "Extraction saved successfully",
	})
}

func (s *Server) handleListExtractions(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		writeError(w, http.StatusServiceUnavailable, "persistence is not configured")
		return
	}

	q := r.URL.Query()
	limit, _ := strconv.Atoi(q.Get("limit"))
	offset, _ := strconv.Atoi(q.Get("skip"))
	validatedOnly := q.Get("validated_only") == "true"

	items, err := s.store.List(r.Context(), limit, offset, validatedOnly)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if items == nil {
		items = []*store.StoredExtraction{}
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"count":   len(items),
		"data":    items,
	})
}

func (s *Server) handleGetExtraction(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		writeError(w, http.StatusServiceUnavailable, "persistence is not configured")
		return
	}

	id := mux.Vars(r)["id"]
	item, err := s.store.Get(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, "Extraction not found")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"data":    item,
	})
}

func (s *Server) handleUpdateExtraction(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		writeError(w, http.StatusServiceUnavailable, "persistence is not configured")
		return
	}

	rec, err := decodeRecord(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	q := r.URL.Query()
	var validated *bool
	if raw := q.Get("validated"); raw != "" {
		v := raw == "true"
		validated = &v
	}
	var notes *string
	if q.Has("validation_notes") {
		n := q.Get("validation_notes")
		notes = &n
	}

	id := mux.Vars(r)["id"]
	err = s.store.Update(r.Context(), id, rec, validated, notes)
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, "Extraction not found")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "Extraction updated successfully",
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":  "healthy",
		"service": "extraction-validation-engine",
		"version": version.Version,
	})
}
