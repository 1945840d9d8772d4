package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/BerylCAtieno/pdf-summary-pipeline/internal/models"
	"github.com/BerylCAtieno/pdf-summary-pipeline/internal/services"
	"github.com/BerylCAtieno/pdf-summary-pipeline/internal/utils"
	"github.com/gorilla/mux"
)

const (
	MaxBodySize = 1 << 20 // 1MB
)

type DocumentHandler struct {
	service       services.DocumentService
	defaultFolder string
	logger        *utils.Logger
}

// NewDocumentHandler returns a handler; batch requests without a folder fall
// back to defaultFolder.
func NewDocumentHandler(service services.DocumentService, defaultFolder string, logger *utils.Logger) *DocumentHandler {
	return &DocumentHandler{
		service:       service,
		defaultFolder: defaultFolder,
		logger:        logger,
	}
}

func (h *DocumentHandler) ListDocuments(w http.ResponseWriter, r *http.Request) {
	records, err := h.service.ListDocuments(r.Context())
	if err != nil {
		h.respondError(w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, records)
}

func (h *DocumentHandler) GetDocument(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	name := vars["name"]

	if name == "" {
		h.respondError(w, utils.NewBadRequestError("Document name is required"))
		return
	}

	doc, err := h.service.GetDocument(r.Context(), name)
	if err != nil {
		h.respondError(w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, doc)
}

func (h *DocumentHandler) ProcessBatch(w http.ResponseWriter, r *http.Request) {
	var req models.BatchRequest
	if err := h.decode(w, r, &req); err != nil {
		h.respondError(w, err)
		return
	}

	folder := strings.TrimSpace(req.Folder)
	if folder == "" {
		folder = h.defaultFolder
	}

	h.logger.Info("Batch requested", "folder", folder, "replace", req.Replace)

	// A client hanging up must not leave records half processed.
	ctx := context.WithoutCancel(r.Context())

	if req.Replace {
		if err := h.service.ResetFolder(ctx, folder); err != nil {
			h.logger.Error("Failed to reset folder", "folder", folder, "error", err)
			h.respondError(w, utils.NewBadRequestError("Folder could not be reset"))
			return
		}
	}

	report, err := h.service.ProcessFolder(ctx, folder)
	if err != nil {
		h.logger.Error("Failed to list folder", "folder", folder, "error", err)
		h.respondError(w, utils.NewBadRequestError("Folder could not be read"))
		return
	}

	h.respondJSON(w, http.StatusOK, report)
}

func (h *DocumentHandler) Summarize(w http.ResponseWriter, r *http.Request) {
	var req models.SummaryRequest
	if err := h.decode(w, r, &req); err != nil {
		h.respondError(w, err)
		return
	}

	switch req.Category {
	case "", models.CategoryShort, models.CategoryMedium, models.CategoryLong:
	default:
		h.respondError(w, utils.NewBadRequestError("Category must be short, medium or long"))
		return
	}

	resp, err := h.service.Summarize(req.Text, req.Category)
	if err != nil {
		h.respondError(w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, resp)
}

// decode reads a JSON body of at most MaxBodySize. An empty body leaves dst
// untouched.
func (h *DocumentHandler) decode(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, MaxBodySize)

	err := json.NewDecoder(r.Body).Decode(dst)
	if err == nil || errors.Is(err, io.EOF) {
		return nil
	}

	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		return utils.NewBadRequestError("Request body exceeds 1MB limit")
	}
	return utils.NewBadRequestError("Invalid JSON body")
}

func (h *DocumentHandler) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error("Failed to encode JSON response", "error", err)
	}
}

func (h *DocumentHandler) respondError(w http.ResponseWriter, err error) {
	var status int
	var message string

	var appErr *utils.AppError
	if errors.As(err, &appErr) {
		status = appErr.StatusCode
		message = appErr.Message
	} else {
		status = http.StatusInternalServerError
		message = "Internal server error"
	}

	h.logger.Error("Request error", "status", status, "error", message)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}
