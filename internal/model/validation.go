package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Разделы отчета, к которым относится результат проверки
const (
	SectionChamfer     = "chamfer"
	SectionConsistency = "consistency"
	SectionSquareness  = "squareness"
	SectionDripEdge    = "drip_edge"
)

// Источники измерений
const (
	SourceManual    = "manual"
	SourceSimulated = "simulated"
	SourceGauge     = "gauge"
)

// ValidationRun представляет сохраненный прогон проверки в базе данных
type ValidationRun struct {
	ID              string    `gorm:"primaryKey;type:varchar(36)" json:"id"`
	SpecificationID string    `gorm:"type:varchar(64);not null;index" json:"specification_id"`
	PartID          string    `gorm:"type:varchar(128);index" json:"part_id"`
	Source          string    `gorm:"type:varchar(16);not null" json:"source"`
	ValidatedAt     time.Time `gorm:"not null" json:"validated_at"`

	// Счетчики отчета
	OverallStatus string `gorm:"type:varchar(16);not null" json:"overall_status"`
	TotalChecks   int    `gorm:"not null;default:0" json:"total_checks"`
	PassedChecks  int    `gorm:"not null;default:0" json:"passed_checks"`
	WarningChecks int    `gorm:"not null;default:0" json:"warning_checks"`
	FailedChecks  int    `gorm:"not null;default:0" json:"failed_checks"`

	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`

	// Связь с результатами проверок
	Checks []CheckResult `gorm:"foreignKey:RunID;constraint:OnDelete:CASCADE" json:"checks"`
}

// CheckResult представляет результат одной проверки прогона
type CheckResult struct {
	ID          uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	RunID       string `gorm:"type:varchar(36);not null;index" json:"run_id"`
	Position    int    `gorm:"not null" json:"position"`
	Section     string `gorm:"type:varchar(16);not null" json:"section"`
	Orientation string `gorm:"type:varchar(8)" json:"orientation,omitempty"`

	CheckName            string   `gorm:"type:varchar(255);not null" json:"check_name"`
	Status               string   `gorm:"type:varchar(16);not null" json:"status"`
	MeasuredValue        float64  `json:"measured_value"`
	NominalValue         float64  `json:"nominal_value"`
	Deviation            float64  `json:"deviation"`
	Tolerance            float64  `json:"tolerance"`
	CompliancePercentage float64  `json:"compliance_percentage"`
	Message              string   `gorm:"type:text" json:"message"`
	Recommendations      []string `gorm:"type:text;serializer:json" json:"recommendations"`

	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

// TableName указывает имя таблицы для ValidationRun
func (ValidationRun) TableName() string {
	return "validation_runs"
}

// TableName указывает имя таблицы для CheckResult
func (CheckResult) TableName() string {
	return "check_results"
}

// BeforeCreate назначает идентификатор прогона
func (r *ValidationRun) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.New().String()
	}
	return nil
}
