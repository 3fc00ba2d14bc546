package handlers

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/pribylovaa/nutricare-client/internal/api"
	"github.com/pribylovaa/nutricare-client/internal/gateway/apierrors"
)

// multipartOverhead — запас на заголовки частей и поле report_type.
const multipartOverhead = 1 << 20

func (h *Handlers) ListReports(w http.ResponseWriter, r *http.Request) {
	reports, err := h.API.Medical.Reports(r.Context())
	respond(w, r, http.StatusOK, reports, err)
}

func (h *Handlers) GetReport(w http.ResponseWriter, r *http.Request) {
	rep, err := h.API.Medical.Report(r.Context(), chi.URLParam(r, "id"))
	respond(w, r, http.StatusOK, rep, err)
}

// UploadReport принимает multipart/form-data от SPA (file, report_type)
// и пересобирает его для бэкенда.
func (h *Handlers) UploadReport(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, api.MaxReportSize+multipartOverhead)

	file, hdr, err := r.FormFile("file")
	if err != nil {
		apierrors.WriteError(w, r, fmt.Errorf("%w: file: %v", apierrors.ErrBadRequest, err))
		return
	}
	defer file.Close()

	out, err := h.API.Medical.UploadReport(r.Context(), api.Upload{
		Filename:   hdr.Filename,
		Content:    file,
		ReportType: r.FormValue("report_type"),
	})
	respond(w, r, http.StatusCreated, out, err)
}

func (h *Handlers) AnalyzeReport(w http.ResponseWriter, r *http.Request) {
	out, err := h.API.Medical.AnalyzeReport(r.Context(), chi.URLParam(r, "id"))
	respond(w, r, http.StatusOK, out, err)
}

func (h *Handlers) ListDiseases(w http.ResponseWriter, r *http.Request) {
	diseases, err := h.API.Medical.Diseases(r.Context())
	respond(w, r, http.StatusOK, diseases, err)
}
