package models

// ValidateRequest запрос на проверку набора измерений по спецификации
type ValidateRequest struct {
	SpecificationID string `json:"specification_id" binding:"required"`
	MeasurementSet
}

// SimulateRequest запрос на проверку по симулированным измерениям
type SimulateRequest struct {
	SpecificationID string  `json:"specification_id" binding:"required"`
	Seed            uint64  `json:"seed"`
	NoiseFactor     float64 `json:"noise_factor"`
	WithDrip        bool    `json:"with_drip"`
}

// GaugeRequest запрос на проверку по измерениям с измерительного стенда
type GaugeRequest struct {
	SpecificationID string `json:"specification_id" binding:"required"`
	PartID          string `json:"part_id" binding:"required"`
}

// ReportListResponse страница сохраненных отчетов
type ReportListResponse struct {
	Reports []EdgeValidationReport `json:"reports"`
	Total   int64                  `json:"total"`
	Page    int                    `json:"page"`
	Size    int                    `json:"size"`
}

// HealthResponse состояние сервиса или измерительного стенда
type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}
