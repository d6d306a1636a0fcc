package spec

import (
	"errors"
	"fmt"
	"math"

	"github.com/goccy/go-json"
)

var (
	// ErrNegativeValue номинал или допуск меньше нуля
	ErrNegativeValue = errors.New("value must be non-negative")
	// ErrInvalidAngle угол фаски вне диапазона [0, 180)
	ErrInvalidAngle = errors.New("chamfer angle must be in [0, 180) degrees")
)

// Номиналы фаски C8
const (
	DefaultChamferDepthMM      = 8.0
	DefaultChamferAngleDegrees = 45.0
	DefaultChamferToleranceMM  = 0.5
	DefaultSurfaceRoughnessRa  = 3.2
)

// ChamferSpecification номинальная геометрия фаски.
// Ширина всегда выводится из глубины и угла: width = 2·depth·tan(angle/2).
type ChamferSpecification struct {
	depthMM          float64
	angleDegrees     float64
	widthMM          float64
	toleranceMM      float64
	surfaceRoughness float64
}

// NewChamferSpecification создает спецификацию фаски и вычисляет ширину
func NewChamferSpecification(depthMM, angleDegrees, toleranceMM, roughnessRa float64) (ChamferSpecification, error) {
	if err := nonNegative(
		field{"depth_mm", depthMM},
		field{"tolerance_mm", toleranceMM},
		field{"surface_roughness_ra", roughnessRa},
	); err != nil {
		return ChamferSpecification{}, fmt.Errorf("chamfer specification: %w", err)
	}
	if math.IsNaN(angleDegrees) || angleDegrees < 0 || angleDegrees >= 180 {
		return ChamferSpecification{}, fmt.Errorf("chamfer specification: %w (got %v)", ErrInvalidAngle, angleDegrees)
	}

	return ChamferSpecification{
		depthMM:          depthMM,
		angleDegrees:     angleDegrees,
		widthMM:          ChamferWidth(depthMM, angleDegrees),
		toleranceMM:      toleranceMM,
		surfaceRoughness: roughnessRa,
	}, nil
}

// DefaultChamferSpecification возвращает стандартную фаску C8
func DefaultChamferSpecification() ChamferSpecification {
	return ChamferSpecification{
		depthMM:          DefaultChamferDepthMM,
		angleDegrees:     DefaultChamferAngleDegrees,
		widthMM:          ChamferWidth(DefaultChamferDepthMM, DefaultChamferAngleDegrees),
		toleranceMM:      DefaultChamferToleranceMM,
		surfaceRoughness: DefaultSurfaceRoughnessRa,
	}
}

// ChamferWidth ширина грани фаски по глубине и углу
func ChamferWidth(depthMM, angleDegrees float64) float64 {
	halfAngle := angleDegrees / 2 * math.Pi / 180
	return 2 * depthMM * math.Tan(halfAngle)
}

// DepthMM номинальная глубина фаски
func (c ChamferSpecification) DepthMM() float64 { return c.depthMM }

// AngleDegrees номинальный угол фаски
func (c ChamferSpecification) AngleDegrees() float64 { return c.angleDegrees }

// WidthMM ширина грани фаски
func (c ChamferSpecification) WidthMM() float64 { return c.widthMM }

// ToleranceMM симметричный допуск на глубину
func (c ChamferSpecification) ToleranceMM() float64 { return c.toleranceMM }

// SurfaceRoughnessRa номинальная шероховатость Ra, мкм
func (c ChamferSpecification) SurfaceRoughnessRa() float64 { return c.surfaceRoughness }

// LegLength длина катета фаски
func (c ChamferSpecification) LegLength() float64 {
	return c.depthMM / math.Cos(c.angleDegrees/2*math.Pi/180)
}

// WithDepth возвращает копию с новой глубиной и пересчитанной шириной
func (c ChamferSpecification) WithDepth(depthMM float64) (ChamferSpecification, error) {
	return NewChamferSpecification(depthMM, c.angleDegrees, c.toleranceMM, c.surfaceRoughness)
}

// WithAngle возвращает копию с новым углом и пересчитанной шириной
func (c ChamferSpecification) WithAngle(angleDegrees float64) (ChamferSpecification, error) {
	return NewChamferSpecification(c.depthMM, angleDegrees, c.toleranceMM, c.surfaceRoughness)
}

// WithTolerance возвращает копию с новым допуском на глубину
func (c ChamferSpecification) WithTolerance(toleranceMM float64) (ChamferSpecification, error) {
	return NewChamferSpecification(c.depthMM, c.angleDegrees, toleranceMM, c.surfaceRoughness)
}

type chamferJSON struct {
	DepthMM            float64 `json:"depth_mm" yaml:"depth_mm"`
	AngleDegrees       float64 `json:"angle_degrees" yaml:"angle_degrees"`
	WidthMM            float64 `json:"width_mm" yaml:"-"`
	ToleranceMM        float64 `json:"tolerance_mm" yaml:"tolerance_mm"`
	SurfaceRoughnessRa float64 `json:"surface_roughness_ra" yaml:"surface_roughness_ra"`
}

// MarshalJSON сериализует спецификацию вместе с вычисленной шириной
func (c ChamferSpecification) MarshalJSON() ([]byte, error) {
	return json.Marshal(chamferJSON{
		DepthMM:            c.depthMM,
		AngleDegrees:       c.angleDegrees,
		WidthMM:            c.widthMM,
		ToleranceMM:        c.toleranceMM,
		SurfaceRoughnessRa: c.surfaceRoughness,
	})
}

// UnmarshalJSON восстанавливает спецификацию; присланная ширина игнорируется
func (c *ChamferSpecification) UnmarshalJSON(data []byte) error {
	var raw chamferJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	parsed, err := NewChamferSpecification(raw.DepthMM, raw.AngleDegrees, raw.ToleranceMM, raw.SurfaceRoughnessRa)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}
