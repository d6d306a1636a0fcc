package gdt

import (
	"fmt"
	"math"

	"edge-gdt-validator/internal/spec"
	"edge-gdt-validator/pkg/models"

	"gonum.org/v1/gonum/stat"
)

// ChamferValidator проверяет фаски по спецификации
type ChamferValidator struct {
	spec spec.ChamferSpecification
}

// NewChamferValidator создает валидатор фасок
func NewChamferValidator(s spec.ChamferSpecification) *ChamferValidator {
	return &ChamferValidator{spec: s}
}

// ValidateDepth проверяет глубину фаски
func (v *ChamferValidator) ValidateDepth(m models.ChamferMeasurement) models.ValidationResult {
	nominal := v.spec.DepthMM()
	tolerance := v.spec.ToleranceMM()
	deviation := math.Abs(m.DepthMM - nominal)
	status := classifyTiered(deviation, tolerance)

	var recommendations []string
	switch status {
	case models.StatusFail:
		recommendations = []string{
			fmt.Sprintf("Adjust CNC tool offset by %.2fmm", deviation),
			"Verify tool wear and replace if necessary",
		}
	case models.StatusWarn:
		recommendations = []string{
			"Monitor tool wear closely",
			"Check coolant flow and concentration",
		}
	}

	return models.ValidationResult{
		CheckName:            fmt.Sprintf("Chamfer Depth - %s", m.Orientation),
		Status:               status,
		MeasuredValue:        m.DepthMM,
		NominalValue:         nominal,
		Deviation:            deviation,
		Tolerance:            tolerance,
		CompliancePercentage: compliance(deviation, tolerance, 100),
		Message:              fmt.Sprintf("Depth: %.2fmm (spec: %.2fmm ±%gmm)", m.DepthMM, nominal, tolerance),
		Recommendations:      recommendations,
	}
}

// ValidateAngle проверяет угол фаски с фиксированным допуском AngularToleranceDeg
func (v *ChamferValidator) ValidateAngle(m models.ChamferMeasurement) models.ValidationResult {
	nominal := v.spec.AngleDegrees()
	deviation := math.Abs(m.AngleDegrees - nominal)
	status := classifyTiered(deviation, AngularToleranceDeg)

	var recommendations []string
	if status == models.StatusFail {
		recommendations = []string{
			"Check CNC tool orientation/tilt",
			"Verify fixture alignment and clamping",
		}
	}

	return models.ValidationResult{
		CheckName:            fmt.Sprintf("Chamfer Angle - %s", m.Orientation),
		Status:               status,
		MeasuredValue:        m.AngleDegrees,
		NominalValue:         nominal,
		Deviation:            deviation,
		Tolerance:            AngularToleranceDeg,
		CompliancePercentage: compliance(deviation, AngularToleranceDeg, 100),
		Message:              fmt.Sprintf("Angle: %.2f° (spec: %.2f° ±%g°)", m.AngleDegrees, nominal, AngularToleranceDeg),
		Recommendations:      recommendations,
	}
}

// ValidateSurfaceRoughness проверяет шероховатость грани фаски; уровня Fail нет
func (v *ChamferValidator) ValidateSurfaceRoughness(m models.ChamferMeasurement) models.ValidationResult {
	nominal := v.spec.SurfaceRoughnessRa()
	checkName := fmt.Sprintf("Surface Roughness - %s", m.Orientation)

	if !m.HasRoughness() {
		return models.ValidationResult{
			CheckName:       checkName,
			Status:          models.StatusNotChecked,
			NominalValue:    nominal,
			Tolerance:       RoughnessToleranceRa,
			Message:         "Surface roughness not measured",
			Recommendations: []string{"Perform surface roughness measurement"},
		}
	}

	measured := *m.RoughnessRa
	deviation := math.Abs(measured - nominal)

	return models.ValidationResult{
		CheckName:            checkName,
		Status:               classifyBinary(deviation, RoughnessToleranceRa),
		MeasuredValue:        measured,
		NominalValue:         nominal,
		Deviation:            deviation,
		Tolerance:            RoughnessToleranceRa,
		CompliancePercentage: compliance(deviation, RoughnessToleranceRa, 50),
		Message:              fmt.Sprintf("Ra: %.2fμm (spec: %.2fμm)", measured, nominal),
	}
}

// ValidateProfileConsistency проверяет согласованность фасок на всех кромках.
// Сравнивается максимум из СКО глубины и СКО угла, деленного на 10.
// Деление на 10 - эвристическое приведение градусов к масштабу миллиметров,
// а не физическое преобразование единиц.
func (v *ChamferValidator) ValidateProfileConsistency(measurements []models.ChamferMeasurement) models.ValidationResult {
	const checkName = "Chamfer Profile Consistency (All Edges)"

	if len(measurements) < 2 {
		return models.ValidationResult{
			CheckName: checkName,
			Status:    models.StatusNotChecked,
			Message:   "Insufficient measurements for consistency check",
		}
	}

	depths := make([]float64, len(measurements))
	angles := make([]float64, len(measurements))
	for i, m := range measurements {
		depths[i] = m.DepthMM
		angles[i] = m.AngleDegrees
	}

	depthStd := stat.PopStdDev(depths, nil)
	angleStd := stat.PopStdDev(angles, nil)
	maxDeviation := max(depthStd, angleStd/angleToDepthScale)
	status := classifyTiered(maxDeviation, ProfileToleranceMM)

	var recommendations []string
	if status != models.StatusPass {
		recommendations = []string{"Check machine calibration"}
	}

	return models.ValidationResult{
		CheckName:            checkName,
		Status:               status,
		MeasuredValue:        maxDeviation,
		NominalValue:         0,
		Deviation:            maxDeviation,
		Tolerance:            ProfileToleranceMM,
		CompliancePercentage: compliance(maxDeviation, ProfileToleranceMM, 100),
		Message:              fmt.Sprintf("Depth std: %.3fmm, Angle std: %.2f°", depthStd, angleStd),
		Recommendations:      recommendations,
	}
}
