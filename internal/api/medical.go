package api

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"

	"github.com/pribylovaa/nutricare-client/internal/client"
	"github.com/pribylovaa/nutricare-client/internal/models"
)

// MaxReportSize — предел размера загружаемого файла отчёта.
const MaxReportSize = 20 << 20

// Medical — медицинские отчёты и справочник заболеваний.
type Medical struct {
	doer Doer
}

// Upload — файл отчёта для загрузки.
type Upload struct {
	Filename   string
	Content    io.Reader
	ReportType string
}

func (m *Medical) Reports(ctx context.Context) ([]models.MedicalReport, error) {
	return list[models.MedicalReport](ctx, m.doer, "/medical/reports/")
}

func (m *Medical) Report(ctx context.Context, id string) (models.MedicalReport, error) {
	if err := validID("id", id); err != nil {
		return models.MedicalReport{}, err
	}

	var r models.MedicalReport
	err := call(ctx, m.doer, http.MethodGet, "/medical/reports/"+id+"/", nil, &r)
	return r, err
}

// UploadReport отправляет файл как multipart/form-data (поля file, report_type).
// Тело собирается целиком в памяти, чтобы запрос можно было повторить после refresh.
func (m *Medical) UploadReport(ctx context.Context, in Upload) (models.UploadReportResponse, error) {
	const op = "api/Medical.UploadReport"

	if err := oneOf("report_type", in.ReportType, ReportTypes); err != nil {
		return models.UploadReportResponse{}, err
	}
	if err := required("file", in.Filename); err != nil {
		return models.UploadReportResponse{}, err
	}
	if in.Content == nil {
		return models.UploadReportResponse{}, invalid("file", "no content")
	}

	body, contentType, err := multipartBody(in)
	if err != nil {
		return models.UploadReportResponse{}, fmt.Errorf("%s: %w", op, err)
	}

	req := &client.Request{
		Method: http.MethodPost,
		Path:   "/medical/reports/upload/",
		Header: http.Header{"Content-Type": []string{contentType}},
		Body:   body,
	}

	var out models.UploadReportResponse
	if err := send(ctx, m.doer, req, &out); err != nil {
		return models.UploadReportResponse{}, err
	}

	return out, nil
}

func multipartBody(in Upload) ([]byte, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	part, err := w.CreateFormFile("file", filepath.Base(in.Filename))
	if err != nil {
		return nil, "", err
	}

	n, err := io.Copy(part, io.LimitReader(in.Content, MaxReportSize+1))
	if err != nil {
		return nil, "", fmt.Errorf("read file: %w", err)
	}
	if n > MaxReportSize {
		return nil, "", invalid("file", "too large")
	}

	if err := w.WriteField("report_type", in.ReportType); err != nil {
		return nil, "", err
	}
	if err := w.Close(); err != nil {
		return nil, "", err
	}

	return buf.Bytes(), w.FormDataContentType(), nil
}

// AnalyzeReport запускает анализ отчёта на бэкенде.
func (m *Medical) AnalyzeReport(ctx context.Context, id string) (models.AnalyzeReportResponse, error) {
	if err := validID("id", id); err != nil {
		return models.AnalyzeReportResponse{}, err
	}

	var out models.AnalyzeReportResponse
	err := call(ctx, m.doer, http.MethodPost, "/medical/reports/"+id+"/analyze/", nil, &out)
	return out, err
}

func (m *Medical) Diseases(ctx context.Context) ([]models.Disease, error) {
	return list[models.Disease](ctx, m.doer, "/medical/diseases/")
}
