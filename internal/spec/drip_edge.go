package spec

import "fmt"

// DripEdgeSpecification каплесборная кромка с отливом
type DripEdgeSpecification struct {
	OverhangMM         float64 `json:"overhang_mm" yaml:"overhang_mm"`
	FlashingHeightMM   float64 `json:"flashing_height_mm" yaml:"flashing_height_mm"`
	GrooveDepthMM      float64 `json:"groove_depth_mm" yaml:"groove_depth_mm"`
	GrooveWidthMM      float64 `json:"groove_width_mm" yaml:"groove_width_mm"`
	DistanceFromEdgeMM float64 `json:"distance_from_edge_mm" yaml:"distance_from_edge_mm"`

	Material    string  `json:"material" yaml:"material"`
	ThicknessMM float64 `json:"thickness_mm" yaml:"thickness_mm"`
	Finish      string  `json:"finish" yaml:"finish"`

	IntegrationType string `json:"integration_type" yaml:"integration_type"`
	SealantRequired bool   `json:"sealant_required" yaml:"sealant_required"`
	SealantType     string `json:"sealant_type" yaml:"sealant_type"`
}

// DefaultDripEdgeSpecification возвращает отлив по умолчанию
func DefaultDripEdgeSpecification() DripEdgeSpecification {
	return DripEdgeSpecification{
		OverhangMM:         30.0,
		FlashingHeightMM:   15.0,
		GrooveDepthMM:      5.0,
		GrooveWidthMM:      8.0,
		DistanceFromEdgeMM: 20.0,
		Material:           "aluminum",
		ThicknessMM:        0.8,
		Finish:             "anodized",
		IntegrationType:    "rabbet",
		SealantRequired:    true,
		SealantType:        "polyurethane",
	}
}

// Validate проверяет, что все длины неотрицательны
func (d DripEdgeSpecification) Validate() error {
	if err := nonNegative(
		field{"overhang_mm", d.OverhangMM},
		field{"flashing_height_mm", d.FlashingHeightMM},
		field{"groove_depth_mm", d.GrooveDepthMM},
		field{"groove_width_mm", d.GrooveWidthMM},
		field{"distance_from_edge_mm", d.DistanceFromEdgeMM},
		field{"thickness_mm", d.ThicknessMM},
	); err != nil {
		return fmt.Errorf("drip edge specification: %w", err)
	}
	return nil
}

// DripEdgeOption изменяет параметры отлива при сборке спецификации
type DripEdgeOption func(*DripEdgeSpecification)

// WithOverhang задает вылет отлива
func WithOverhang(mm float64) DripEdgeOption {
	return func(d *DripEdgeSpecification) { d.OverhangMM = mm }
}

// WithGrooveDepth задает глубину капельника
func WithGrooveDepth(mm float64) DripEdgeOption {
	return func(d *DripEdgeSpecification) { d.GrooveDepthMM = mm }
}

// WithGrooveWidth задает ширину капельника
func WithGrooveWidth(mm float64) DripEdgeOption {
	return func(d *DripEdgeSpecification) { d.GrooveWidthMM = mm }
}

// WithDistanceFromEdge задает расстояние капельника от кромки
func WithDistanceFromEdge(mm float64) DripEdgeOption {
	return func(d *DripEdgeSpecification) { d.DistanceFromEdgeMM = mm }
}

// NewDripEdgeSpecification собирает отлив из значений по умолчанию и опций
func NewDripEdgeSpecification(opts ...DripEdgeOption) (DripEdgeSpecification, error) {
	d := DefaultDripEdgeSpecification()
	for _, opt := range opts {
		opt(&d)
	}
	if err := d.Validate(); err != nil {
		return DripEdgeSpecification{}, err
	}
	return d, nil
}
