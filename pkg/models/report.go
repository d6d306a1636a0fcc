package models

import (
	"time"

	"github.com/goccy/go-json"
)

// ValidationResult итог одной проверки
type ValidationResult struct {
	CheckName            string           `json:"check_name"`
	Status               ValidationStatus `json:"status"`
	MeasuredValue        float64          `json:"measured_value"`
	NominalValue         float64          `json:"nominal_value"`
	Deviation            float64          `json:"deviation"`
	Tolerance            float64          `json:"tolerance"`
	CompliancePercentage float64          `json:"compliance_percentage"`
	Message              string           `json:"message"`
	Recommendations      []string         `json:"recommendations,omitempty"`
}

// EdgeValidationReport сводный отчет по всем кромкам изделия
type EdgeValidationReport struct {
	ID              string    `json:"id,omitempty"`
	SpecificationID string    `json:"specification_id"`
	PartID          string    `json:"part_id,omitempty"`
	Timestamp       time.Time `json:"timestamp"`

	ChamferResults     map[Orientation][]ValidationResult `json:"chamfer_results"`
	ProfileConsistency *ValidationResult                  `json:"profile_consistency,omitempty"`
	SquarenessResults  map[Orientation]ValidationResult   `json:"squareness_results"`
	DripEdgeResults    map[Orientation][]ValidationResult `json:"drip_edge_results"`

	TotalChecks   int `json:"total_checks"`
	PassedChecks  int `json:"passed_checks"`
	WarningChecks int `json:"warning_checks"`
	FailedChecks  int `json:"failed_checks"`
}

// NewEdgeValidationReport создает пустой отчет для спецификации
func NewEdgeValidationReport(specificationID string, timestamp time.Time) *EdgeValidationReport {
	return &EdgeValidationReport{
		SpecificationID:   specificationID,
		Timestamp:         timestamp,
		ChamferResults:    make(map[Orientation][]ValidationResult),
		SquarenessResults: make(map[Orientation]ValidationResult),
		DripEdgeResults:   make(map[Orientation][]ValidationResult),
	}
}

// Count учитывает результат в счетчиках отчета
func (r *EdgeValidationReport) Count(result ValidationResult) {
	r.TotalChecks++
	switch result.Status {
	case StatusPass:
		r.PassedChecks++
	case StatusWarn:
		r.WarningChecks++
	case StatusFail:
		r.FailedChecks++
	}
}

// OverallStatus вычисляет итоговый статус по счетчикам
func (r *EdgeValidationReport) OverallStatus() ValidationStatus {
	switch {
	case r.FailedChecks > 0:
		return StatusFail
	case r.WarningChecks > 0:
		return StatusWarn
	case r.PassedChecks > 0:
		return StatusPass
	}
	return StatusNotChecked
}

// Percentage возвращает долю count от общего числа проверок в процентах.
// При нулевом числе проверок возвращает 0.
func (r *EdgeValidationReport) Percentage(count int) float64 {
	if r.TotalChecks == 0 {
		return 0
	}
	return float64(count) / float64(r.TotalChecks) * 100
}

// Results возвращает все результаты отчета в порядке обхода сторон
func (r *EdgeValidationReport) Results() []ValidationResult {
	var results []ValidationResult
	for _, o := range AllOrientations() {
		results = append(results, r.ChamferResults[o]...)
	}
	if r.ProfileConsistency != nil {
		results = append(results, *r.ProfileConsistency)
	}
	for _, o := range AllOrientations() {
		if result, ok := r.SquarenessResults[o]; ok {
			results = append(results, result)
		}
	}
	for _, o := range AllOrientations() {
		results = append(results, r.DripEdgeResults[o]...)
	}
	return results
}

type reportAlias EdgeValidationReport

// MarshalJSON добавляет вычисляемый overall_status
func (r EdgeValidationReport) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		reportAlias
		OverallStatus ValidationStatus `json:"overall_status"`
	}{
		reportAlias:   reportAlias(r),
		OverallStatus: r.OverallStatus(),
	})
}
