package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"crediq/bureau-xml/internal/parsererror"
	"crediq/bureau-xml/internal/store"

	"github.com/gorilla/mux"
)

// maxUploadSize caps report uploads at 16 MiB; bureau reports are
// typically well under 1 MiB.
const maxUploadSize = 16 << 20

// APIResponse is the envelope for every JSON response.
type APIResponse struct {
	Status  string      `json:"status"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

// listResponse is the payload for paginated report listings.
type listResponse struct {
	Reports interface{} `json:"reports"`
	Total   int         `json:"total"`
	Limit   int         `json:"limit"`
	Offset  int         `json:"offset"`
}

func writeJSON(w http.ResponseWriter, status int, resp APIResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		log.WithError(err).Error("Failed to write response")
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, APIResponse{Status: "error", Message: message})
}

// UploadReport handles POST /api/reports: parse the uploaded XML,
// transform it and persist the result. Accepts either a multipart form
// with a "file" field or a raw XML body.
func (s *Server) UploadReport(w http.ResponseWriter, r *http.Request) {
	content, fileName, err := readUpload(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	report, err := s.parser.Parse(bytes.NewReader(content))
	if err != nil {
		var formatErr *parsererror.InvalidFormatError
		var transformErr *parsererror.TransformationError
		if errors.As(err, &formatErr) || errors.As(err, &transformErr) {
			writeError(w, http.StatusUnprocessableEntity, err.Error())
			return
		}
		log.WithError(err).Error("Failed to parse uploaded report")
		writeError(w, http.StatusBadRequest, "failed to parse report")
		return
	}

	stored, err := s.store.Save(r.Context(), fileName, content, report)
	if err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			writeError(w, http.StatusConflict, "report already stored")
			return
		}
		log.WithError(err).Error("Failed to store report")
		writeError(w, http.StatusInternalServerError, "failed to store report")
		return
	}

	writeJSON(w, http.StatusCreated, APIResponse{Status: "success", Data: stored})
}

// ListReports handles GET /api/reports with limit/offset pagination.
func (s *Server) ListReports(w http.ResponseWriter, r *http.Request) {
	limit := queryInt(r, "limit", 50)
	offset := queryInt(r, "offset", 0)

	reports, err := s.store.List(r.Context(), limit, offset)
	if err != nil {
		log.WithError(err).Error("Failed to list reports")
		writeError(w, http.StatusInternalServerError, "failed to list reports")
		return
	}

	total, err := s.store.Count(r.Context())
	if err != nil {
		log.WithError(err).Error("Failed to count reports")
		writeError(w, http.StatusInternalServerError, "failed to list reports")
		return
	}

	writeJSON(w, http.StatusOK, APIResponse{
		Status: "success",
		Data: listResponse{
			Reports: reports,
			Total:   total,
			Limit:   limit,
			Offset:  offset,
		},
	})
}

// GetReport handles GET /api/reports/{id}.
func (s *Server) GetReport(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	stored, err := s.store.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "report not found")
			return
		}
		log.WithError(err).Error("Failed to load report")
		writeError(w, http.StatusInternalServerError, "failed to load report")
		return
	}

	writeJSON(w, http.StatusOK, APIResponse{Status: "success", Data: stored})
}

// DeleteReport handles DELETE /api/reports/{id}.
func (s *Server) DeleteReport(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	if err := s.store.Delete(r.Context(), id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "report not found")
			return
		}
		log.WithError(err).Error("Failed to delete report")
		writeError(w, http.StatusInternalServerError, "failed to delete report")
		return
	}

	writeJSON(w, http.StatusOK, APIResponse{Status: "success"})
}

// GetStats handles GET /api/stats.
func (s *Server) GetStats(w http.ResponseWriter, r *http.Request) {
	stats, err := s.store.Stats(r.Context())
	if err != nil {
		log.WithError(err).Error("Failed to compute stats")
		writeError(w, http.StatusInternalServerError, "failed to compute stats")
		return
	}

	writeJSON(w, http.StatusOK, APIResponse{Status: "success", Data: stats})
}

// Health handles GET /health.
func (s *Server) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, APIResponse{Status: "ok"})
}

func readUpload(r *http.Request) ([]byte, string, error) {
	r.Body = http.MaxBytesReader(nil, r.Body, maxUploadSize)

	contentType := r.Header.Get("Content-Type")
	if strings.HasPrefix(contentType, "multipart/form-data") {
		if err := r.ParseMultipartForm(maxUploadSize); err != nil {
			return nil, "", fmt.Errorf("invalid multipart form: %w", err)
		}
		file, header, err := r.FormFile("file")
		if err != nil {
			return nil, "", fmt.Errorf("missing 'file' form field: %w", err)
		}
		defer file.Close()

		content, err := io.ReadAll(file)
		if err != nil {
			return nil, "", fmt.Errorf("reading upload: %w", err)
		}
		return content, header.Filename, nil
	}

	content, err := io.ReadAll(r.Body)
	if err != nil {
		return nil, "", fmt.Errorf("reading request body: %w", err)
	}
	if len(content) == 0 {
		return nil, "", errors.New("empty request body")
	}
	return content, "upload.xml", nil
}

func queryInt(r *http.Request, key string, fallback int) int {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return value
}
