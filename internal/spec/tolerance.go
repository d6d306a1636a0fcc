package spec

import (
	"fmt"
	"math"
)

// GDnTSpecification допуски формы и расположения по ISO 1101 / ASME Y14.5
type GDnTSpecification struct {
	ProfileToleranceMM          float64 `json:"profile_tolerance_mm" yaml:"profile_tolerance_mm"`
	AngularToleranceDeg         float64 `json:"angular_tolerance_deg" yaml:"angular_tolerance_deg"`
	ParallelismToleranceMM      float64 `json:"parallelism_tolerance_mm" yaml:"parallelism_tolerance_mm"`
	PerpendicularityToleranceMM float64 `json:"perpendicularity_tolerance_mm" yaml:"perpendicularity_tolerance_mm"`
	SymmetryToleranceMM         float64 `json:"symmetry_tolerance_mm" yaml:"symmetry_tolerance_mm"`
	PositionToleranceMM         float64 `json:"position_tolerance_mm" yaml:"position_tolerance_mm"`
	FlatnessToleranceMM         float64 `json:"flatness_tolerance_mm" yaml:"flatness_tolerance_mm"`
	CylindricityToleranceMM     float64 `json:"cylindricity_tolerance_mm" yaml:"cylindricity_tolerance_mm"`
}

// DefaultGDnTSpecification возвращает допуски по умолчанию
func DefaultGDnTSpecification() GDnTSpecification {
	return GDnTSpecification{
		ProfileToleranceMM:          0.1,
		AngularToleranceDeg:         0.5,
		ParallelismToleranceMM:      0.05,
		PerpendicularityToleranceMM: 0.1,
		SymmetryToleranceMM:         0.15,
		PositionToleranceMM:         1.0,
		FlatnessToleranceMM:         0.05,
		CylindricityToleranceMM:     0.1,
	}
}

// Validate проверяет, что все допуски неотрицательны
func (g GDnTSpecification) Validate() error {
	if err := nonNegative(
		field{"profile_tolerance_mm", g.ProfileToleranceMM},
		field{"angular_tolerance_deg", g.AngularToleranceDeg},
		field{"parallelism_tolerance_mm", g.ParallelismToleranceMM},
		field{"perpendicularity_tolerance_mm", g.PerpendicularityToleranceMM},
		field{"symmetry_tolerance_mm", g.SymmetryToleranceMM},
		field{"position_tolerance_mm", g.PositionToleranceMM},
		field{"flatness_tolerance_mm", g.FlatnessToleranceMM},
		field{"cylindricity_tolerance_mm", g.CylindricityToleranceMM},
	); err != nil {
		return fmt.Errorf("gd&t specification: %w", err)
	}
	return nil
}

type field struct {
	name  string
	value float64
}

func nonNegative(fields ...field) error {
	for _, f := range fields {
		if math.IsNaN(f.value) || f.value < 0 {
			return fmt.Errorf("%s: %w (got %v)", f.name, ErrNegativeValue, f.value)
		}
	}
	return nil
}
