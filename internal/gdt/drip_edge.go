package gdt

import (
	"fmt"
	"math"

	"edge-gdt-validator/internal/spec"
	"edge-gdt-validator/pkg/models"
)

// DripEdgeValidator проверяет каплесборную кромку одной стороны
type DripEdgeValidator struct {
	drip spec.DripEdgeSpecification
	gdt  spec.GDnTSpecification
}

// NewDripEdgeValidator создает валидатор отлива
func NewDripEdgeValidator(drip spec.DripEdgeSpecification, gdt spec.GDnTSpecification) *DripEdgeValidator {
	return &DripEdgeValidator{drip: drip, gdt: gdt}
}

// ValidateOverhangDistance проверяет вылет отлива, допуск OverhangToleranceMM
func (v *DripEdgeValidator) ValidateOverhangDistance(o models.Orientation, measured float64) models.ValidationResult {
	nominal := v.drip.OverhangMM
	deviation := math.Abs(measured - nominal)
	status := classifyTiered(deviation, OverhangToleranceMM)

	var recommendations []string
	switch status {
	case models.StatusFail:
		recommendations = []string{
			fmt.Sprintf("Reposition flashing by %.1fmm", measured-nominal),
			"Verify flashing bend line against template",
		}
	case models.StatusWarn:
		recommendations = []string{"Check flashing fastener spacing"}
	}

	return models.ValidationResult{
		CheckName:            fmt.Sprintf("Drip Edge Overhang - %s", o),
		Status:               status,
		MeasuredValue:        measured,
		NominalValue:         nominal,
		Deviation:            deviation,
		Tolerance:            OverhangToleranceMM,
		CompliancePercentage: compliance(deviation, OverhangToleranceMM, 100),
		Message:              fmt.Sprintf("Overhang: %.1fmm (spec: %.1fmm ±%gmm)", measured, nominal, OverhangToleranceMM),
		Recommendations:      recommendations,
	}
}

// ValidateGroovePosition проверяет расстояние капельника от кромки по допуску позиции; уровня Fail нет
func (v *DripEdgeValidator) ValidateGroovePosition(o models.Orientation, measured float64) models.ValidationResult {
	nominal := v.drip.DistanceFromEdgeMM
	tolerance := v.gdt.PositionToleranceMM
	deviation := math.Abs(measured - nominal)
	status := classifyBinary(deviation, tolerance)

	var recommendations []string
	if status != models.StatusPass {
		recommendations = []string{"Re-index groove cutter from edge reference"}
	}

	return models.ValidationResult{
		CheckName:            fmt.Sprintf("Drip Groove Position - %s", o),
		Status:               status,
		MeasuredValue:        measured,
		NominalValue:         nominal,
		Deviation:            deviation,
		Tolerance:            tolerance,
		CompliancePercentage: compliance(deviation, tolerance, 100),
		Message:              fmt.Sprintf("Distance from edge: %.2fmm (spec: %.2fmm ±%gmm)", measured, nominal, tolerance),
		Recommendations:      recommendations,
	}
}

// ValidateGrooveDimensions проверяет ширину и глубину капельника независимо; уровня Fail нет
func (v *DripEdgeValidator) ValidateGrooveDimensions(o models.Orientation, width, depth float64) (models.ValidationResult, models.ValidationResult) {
	widthResult := v.grooveDimension(fmt.Sprintf("Drip Groove Width - %s", o), "Width", width, v.drip.GrooveWidthMM,
		"Check groove cutter diameter")
	depthResult := v.grooveDimension(fmt.Sprintf("Drip Groove Depth - %s", o), "Depth", depth, v.drip.GrooveDepthMM,
		"Check groove cutting depth setting")
	return widthResult, depthResult
}

func (v *DripEdgeValidator) grooveDimension(checkName, label string, measured, nominal float64, remedy string) models.ValidationResult {
	deviation := math.Abs(measured - nominal)
	status := classifyBinary(deviation, GrooveDimensionTolerance)

	var recommendations []string
	if status != models.StatusPass {
		recommendations = []string{remedy}
	}

	return models.ValidationResult{
		CheckName:            checkName,
		Status:               status,
		MeasuredValue:        measured,
		NominalValue:         nominal,
		Deviation:            deviation,
		Tolerance:            GrooveDimensionTolerance,
		CompliancePercentage: compliance(deviation, GrooveDimensionTolerance, 100),
		Message:              fmt.Sprintf("%s: %.2fmm (spec: %.2fmm ±%gmm)", label, measured, nominal, GrooveDimensionTolerance),
		Recommendations:      recommendations,
	}
}
