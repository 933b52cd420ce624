package handler

import (
	"log/slog"
	"net/http"

	"github.com/DukeRupert/courtside/internal/domain"
	"github.com/DukeRupert/courtside/internal/service"
)

// CoverHandler accepts event cover uploads.
type CoverHandler struct {
	covers service.CoverService
	logger *slog.Logger
}

// NewCoverHandler creates a new CoverHandler.
func NewCoverHandler(covers service.CoverService, logger *slog.Logger) *CoverHandler {
	return &CoverHandler{covers: covers, logger: logger}
}

// RegisterRoutes registers cover routes.
func (h *CoverHandler) RegisterRoutes(mux *http.ServeMux, org func(http.Handler) http.Handler) {
	mux.Handle("POST /api/organizations/{orgID}/covers", org(http.HandlerFunc(h.Upload)))
	mux.Handle("GET /api/organizations/{orgID}/covers/{coverID}", org(http.HandlerFunc(h.Show)))
}

// Upload stores the "cover" file of a multipart form. The thumbnail is built
// in the background; its URL appears once the job has run.
func (h *CoverHandler) Upload(w http.ResponseWriter, r *http.Request) {
	org, err := organization(r)
	if err != nil {
		ErrorResponse(w, r, h.logger, err)
		return
	}

	// Leave room for the multipart envelope around the file.
	r.Body = http.MaxBytesReader(w, r.Body, domain.MaxCoverSize+64<<10)
	if err := r.ParseMultipartForm(8 << 20); err != nil {
		h.logger.Info("failed to parse multipart form", "error", err)
		ErrorResponse(w, r, h.logger, domain.Errorf(domain.ETOOLARGE, "CoverHandler.Upload",
			"Cover image exceeds the %dMB limit", domain.MaxCoverSize>>20))
		return
	}
	defer func() {
		_ = r.MultipartForm.RemoveAll()
	}()

	file, header, err := r.FormFile("cover")
	if err != nil {
		BadRequestResponse(w, r, h.logger, "No cover uploaded")
		return
	}
	defer file.Close()

	cover, err := h.covers.Upload(r.Context(), service.UploadCoverParams{
		OrganizationID: org.ID,
		Filename:       header.Filename,
		Size:           header.Size,
		File:           file,
	})
	if err != nil {
		ErrorResponse(w, r, h.logger, err)
		return
	}
	WriteJSON(w, http.StatusCreated, toCoverResponse(cover))
}

// Show returns a cover, used to poll for the thumbnail.
func (h *CoverHandler) Show(w http.ResponseWriter, r *http.Request) {
	org, err := organization(r)
	if err != nil {
		ErrorResponse(w, r, h.logger, err)
		return
	}
	coverID, err := pathUUID(r, "coverID")
	if err != nil {
		ErrorResponse(w, r, h.logger, err)
		return
	}

	cover, err := h.covers.GetByID(r.Context(), coverID, org.ID)
	if err != nil {
		ErrorResponse(w, r, h.logger, err)
		return
	}
	WriteJSON(w, http.StatusOK, toCoverResponse(cover))
}
