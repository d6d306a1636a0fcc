package spec

import (
	"errors"
	"fmt"

	"edge-gdt-validator/pkg/models"
)

// ManufacturingProcessSpec полная технологическая спецификация изделия.
// После Build() используется только для чтения.
type ManufacturingProcessSpec struct {
	ID          string `json:"specification_id"`
	Description string `json:"description"`
	Revision    string `json:"revision"`

	// Профили кромок; отсутствие ключа означает, что сторона не обрабатывается
	EdgeTreatments map[models.Orientation]ProfileGeometry `json:"edge_treatments"`

	Chamfer          ChamferSpecification `json:"chamfer"`
	GDnT             GDnTSpecification    `json:"gdt"`
	SurfaceTreatment SurfaceTreatmentSpec `json:"surface_treatment"`

	// Отливы; отсутствие ключа означает, что на стороне нет каплесборной кромки
	DripEdges map[models.Orientation]DripEdgeSpecification `json:"drip_edges"`

	CoolantType          string  `json:"coolant_type"`
	CoolantConcentration float64 `json:"coolant_concentration"`

	InspectionFrequency string `json:"inspection_frequency"`
	SampleSize          int    `json:"sample_size"`
}

// DripEdge возвращает отлив для стороны, если он задан
func (s *ManufacturingProcessSpec) DripEdge(o models.Orientation) (DripEdgeSpecification, bool) {
	d, ok := s.DripEdges[o]
	return d, ok
}

// Builder пошагово собирает ManufacturingProcessSpec.
// Первая ошибка сохраняется и возвращается из Build, последующие шаги игнорируются.
type Builder struct {
	spec ManufacturingProcessSpec
	err  error
}

// NewBuilder создает сборщик с параметрами по умолчанию
func NewBuilder(id, description string) *Builder {
	return &Builder{
		spec: ManufacturingProcessSpec{
			ID:                   id,
			Description:          description,
			Revision:             "A",
			EdgeTreatments:       make(map[models.Orientation]ProfileGeometry),
			Chamfer:              DefaultChamferSpecification(),
			GDnT:                 DefaultGDnTSpecification(),
			SurfaceTreatment:     BrushedSurface("lengthwise", 120),
			DripEdges:            make(map[models.Orientation]DripEdgeSpecification),
			CoolantType:          "water_soluble",
			CoolantConcentration: 8.0,
			InspectionFrequency:  "100_percent",
			SampleSize:           1,
		},
	}
}

// WithRevision задает ревизию спецификации
func (b *Builder) WithRevision(revision string) *Builder {
	if b.err == nil {
		b.spec.Revision = revision
	}
	return b
}

// WithC8Chamfer задает фаску C8 с указанным допуском
func (b *Builder) WithC8Chamfer(toleranceMM float64) *Builder {
	return b.WithChamfer(DefaultChamferDepthMM, DefaultChamferAngleDegrees, toleranceMM, DefaultSurfaceRoughnessRa)
}

// WithCustomChamfer задает фаску произвольной глубины и угла с допуском по умолчанию
func (b *Builder) WithCustomChamfer(depthMM, angleDegrees float64) *Builder {
	return b.WithChamfer(depthMM, angleDegrees, DefaultChamferToleranceMM, DefaultSurfaceRoughnessRa)
}

// WithChamfer задает все параметры фаски
func (b *Builder) WithChamfer(depthMM, angleDegrees, toleranceMM, roughnessRa float64) *Builder {
	if b.err != nil {
		return b
	}
	chamfer, err := NewChamferSpecification(depthMM, angleDegrees, toleranceMM, roughnessRa)
	if err != nil {
		b.err = err
		return b
	}
	b.spec.Chamfer = chamfer
	return b
}

// WithEdgeProfile задает профиль для одной стороны
func (b *Builder) WithEdgeProfile(o models.Orientation, profileType ProfileType, overrides ProfileGeometry) *Builder {
	if b.err != nil {
		return b
	}
	if !o.IsValid() {
		b.err = fmt.Errorf("edge profile: unknown orientation %q", o)
		return b
	}
	profile, err := NewProfileGeometry(profileType, overrides)
	if err != nil {
		b.err = err
		return b
	}
	b.spec.EdgeTreatments[o] = profile
	return b
}

// WithAllEdges задает один профиль для всех четырех сторон
func (b *Builder) WithAllEdges(profileType ProfileType, overrides ProfileGeometry) *Builder {
	for _, o := range models.AllOrientations() {
		b.WithEdgeProfile(o, profileType, overrides)
	}
	return b
}

// WithBrushedSurface задает браширование поверхности
func (b *Builder) WithBrushedSurface(direction string, grit int) *Builder {
	if b.err != nil {
		return b
	}
	if grit <= 0 {
		b.err = fmt.Errorf("brushed surface: grit must be positive (got %d)", grit)
		return b
	}
	b.spec.SurfaceTreatment = BrushedSurface(direction, grit)
	return b
}

// WithSurfaceTreatment задает произвольную обработку поверхности
func (b *Builder) WithSurfaceTreatment(treatment SurfaceTreatmentSpec) *Builder {
	if b.err == nil {
		b.spec.SurfaceTreatment = treatment
	}
	return b
}

// WithDripEdge задает отлив для одной стороны
func (b *Builder) WithDripEdge(o models.Orientation, opts ...DripEdgeOption) *Builder {
	if b.err != nil {
		return b
	}
	if !o.IsValid() {
		b.err = fmt.Errorf("drip edge: unknown orientation %q", o)
		return b
	}
	drip, err := NewDripEdgeSpecification(opts...)
	if err != nil {
		b.err = err
		return b
	}
	b.spec.DripEdges[o] = drip
	return b
}

// WithAllDripEdges задает одинаковый отлив для всех сторон
func (b *Builder) WithAllDripEdges(opts ...DripEdgeOption) *Builder {
	for _, o := range models.AllOrientations() {
		b.WithDripEdge(o, opts...)
	}
	return b
}

// WithGDnT задает допуски формы и расположения
func (b *Builder) WithGDnT(gdt GDnTSpecification) *Builder {
	if b.err != nil {
		return b
	}
	if err := gdt.Validate(); err != nil {
		b.err = err
		return b
	}
	b.spec.GDnT = gdt
	return b
}

// Build возвращает собранную спецификацию или первую ошибку сборки
func (b *Builder) Build() (*ManufacturingProcessSpec, error) {
	if b.err != nil {
		return nil, fmt.Errorf("build specification %s: %w", b.spec.ID, b.err)
	}
	if b.spec.ID == "" {
		return nil, errors.New("build specification: id is required")
	}

	built := b.spec
	built.EdgeTreatments = make(map[models.Orientation]ProfileGeometry, len(b.spec.EdgeTreatments))
	for o, p := range b.spec.EdgeTreatments {
		built.EdgeTreatments[o] = p
	}
	built.DripEdges = make(map[models.Orientation]DripEdgeSpecification, len(b.spec.DripEdges))
	for o, d := range b.spec.DripEdges {
		built.DripEdges[o] = d
	}
	return &built, nil
}
