package models

import (
	"encoding/json"
	"time"
)

// Disease — справочник заболеваний с диетическими рекомендациями.
type Disease struct {
	ID                string    `json:"id"`
	Name              string    `json:"name"`
	Description       string    `json:"description"`
	Category          string    `json:"category"`
	Severity          string    `json:"severity"`
	DietaryGuidelines string    `json:"dietary_guidelines"`
	FoodsToInclude    string    `json:"foods_to_include"`
	FoodsToAvoid      string    `json:"foods_to_avoid"`
	CreatedAt         time.Time `json:"created_at"`
}

// MedicalReport — загруженный отчёт и результат его анализа.
// KeyFindings/HealthMetrics — произвольный JSON бэкенда, отдаётся как есть.
type MedicalReport struct {
	ID                     string          `json:"id"`
	ReportType             string          `json:"report_type"`
	File                   string          `json:"file"`
	FilePath               string          `json:"file_path"`
	Status                 string          `json:"status"`
	ExtractedText          string          `json:"extracted_text"`
	DetectedConditions     string          `json:"detected_conditions"`
	DetectedDiseases       []Disease       `json:"detected_diseases"`
	KeyFindings            json.RawMessage `json:"key_findings,omitempty"`
	HealthMetrics          json.RawMessage `json:"health_metrics,omitempty"`
	AIInsights             string          `json:"ai_insights"`
	DietaryRecommendations string          `json:"dietary_recommendations"`
	ScanDate               time.Time       `json:"scan_date"`
	UpdatedAt              time.Time       `json:"updated_at"`
}

// UploadReportResponse — ответ POST /medical/reports/upload/.
type UploadReportResponse struct {
	Report  MedicalReport `json:"report"`
	Message string        `json:"message"`
}

// AnalyzeReportResponse — ответ POST /medical/reports/{id}/analyze/.
// Для уже проанализированного отчёта бэкенд отдаёт только Message, ID пустой.
type AnalyzeReportResponse struct {
	MedicalReport
	Message string `json:"message,omitempty"`
}

// AlreadyAnalyzed — бэкенд не запускал анализ повторно.
func (r AnalyzeReportResponse) AlreadyAnalyzed() bool { return r.ID == "" }
