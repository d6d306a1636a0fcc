package gdt

import (
	"fmt"

	"edge-gdt-validator/internal/geo"
	"edge-gdt-validator/internal/spec"
	"edge-gdt-validator/pkg/models"

	"gonum.org/v1/gonum/spatial/r3"
)

// EdgeSquarenessValidator проверяет перпендикулярность кромки базовой поверхности
type EdgeSquarenessValidator struct {
	gdt             spec.GDnTSpecification
	referenceNormal r3.Vec
	calc            *geo.Calculator
}

// NewEdgeSquarenessValidator создает валидатор перпендикулярности
func NewEdgeSquarenessValidator(gdt spec.GDnTSpecification, referenceNormal r3.Vec) *EdgeSquarenessValidator {
	return &EdgeSquarenessValidator{
		gdt:             gdt,
		referenceNormal: referenceNormal,
		calc:            geo.NewCalculator(),
	}
}

// CalculateEdgeVector направление прямой, приближающей точки кромки
func (v *EdgeSquarenessValidator) CalculateEdgeVector(points []models.MeasurementPoint) r3.Vec {
	return v.calc.EdgeVector(points)
}

// CalculatePerpendicularity угол (градусы) и линейное отклонение (мм на 100 мм)
func (v *EdgeSquarenessValidator) CalculatePerpendicularity(edge r3.Vec) (angleDeg, deviationMM float64) {
	angleRad, deviationMM := v.calc.Perpendicularity(edge, v.referenceNormal)
	return geo.Degrees(angleRad), deviationMM
}

// ValidateEdgeSquareness проверяет перпендикулярность кромки по допуску GD&T.
// Менее двух точек не позволяют построить прямую - результат NotChecked.
func (v *EdgeSquarenessValidator) ValidateEdgeSquareness(o models.Orientation, points []models.MeasurementPoint) models.ValidationResult {
	checkName := fmt.Sprintf("Edge Squareness - %s", o)
	tolerance := v.gdt.PerpendicularityToleranceMM

	if len(points) < 2 {
		return models.ValidationResult{
			CheckName:       checkName,
			Status:          models.StatusNotChecked,
			Tolerance:       tolerance,
			Message:         fmt.Sprintf("Insufficient edge points for line fit (%d, need 2)", len(points)),
			Recommendations: []string{"Digitize at least two points along the edge"},
		}
	}

	angleDeg, deviation := v.CalculatePerpendicularity(v.CalculateEdgeVector(points))
	status := classifyTiered(deviation, tolerance)

	var recommendations []string
	if status == models.StatusFail {
		recommendations = []string{
			"Check machine axis alignment",
			"Verify fixture squareness",
		}
	}

	return models.ValidationResult{
		CheckName:            checkName,
		Status:               status,
		MeasuredValue:        deviation,
		NominalValue:         0,
		Deviation:            deviation,
		Tolerance:            tolerance,
		CompliancePercentage: compliance(deviation, tolerance, 100),
		Message:              fmt.Sprintf("Perpendicularity: %.3fmm/%gmm (angle deviation %.3f°)", deviation, geo.GaugeLengthMM, angleDeg),
		Recommendations:      recommendations,
	}
}
