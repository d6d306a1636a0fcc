package spec

import (
	"fmt"

	"edge-gdt-validator/pkg/models"
)

// Идентификаторы встроенных шаблонов
const (
	C8StandardID = "C8-STD-001"
	OgeeID       = "OG-STD-001"
	WaterfallID  = "WF-STD-001"
	VariedID     = "VAR-MIX-001"
)

// C8ChamferSpec стандартная фаска C8 (8.0 мм, 45°) по всем кромкам,
// браширование и отлив на всех четырех сторонах
func C8ChamferSpec() *ManufacturingProcessSpec {
	gdt := DefaultGDnTSpecification()
	gdt.ProfileToleranceMM = 0.1
	gdt.AngularToleranceDeg = 0.5

	return mustBuild(NewBuilder(C8StandardID, "Standard C8 Chamfer with Brushed Finish").
		WithC8Chamfer(0.5).
		WithAllEdges(ProfileC8Chamfer, ProfileGeometry{}).
		WithBrushedSurface("lengthwise", 120).
		WithAllDripEdges(WithOverhang(30), WithGrooveDepth(5)).
		WithGDnT(gdt))
}

// RoundedEdgeSpec полукруглый профиль заданного радиуса
func RoundedEdgeSpec(radiusMM float64) *ManufacturingProcessSpec {
	return mustBuild(NewBuilder(fmt.Sprintf("HR-%.0f-001", radiusMM), fmt.Sprintf("Half-Round Edge Profile (R%.0fmm)", radiusMM)).
		WithAllEdges(ProfileHalfRound, ProfileGeometry{RadiusMM: radiusMM}).
		WithBrushedSurface("lengthwise", 120).
		WithAllDripEdges(WithOverhang(25), WithGrooveDepth(5)))
}

// FullBullnoseSpec полное скругление заданного радиуса
func FullBullnoseSpec(radiusMM float64) *ManufacturingProcessSpec {
	return mustBuild(NewBuilder(fmt.Sprintf("FB-%.0f-001", radiusMM), fmt.Sprintf("Full Bullnose Edge Profile (R%.0fmm)", radiusMM)).
		WithAllEdges(ProfileFullRound, ProfileGeometry{RadiusMM: radiusMM}).
		WithBrushedSurface("lengthwise", 220).
		WithAllDripEdges(WithOverhang(20), WithGrooveDepth(4)))
}

// OgeeEdgeSpec S-образный профиль ogee
func OgeeEdgeSpec() *ManufacturingProcessSpec {
	return mustBuild(NewBuilder(OgeeID, "Ogee Edge Profile (S-Curve)").
		WithAllEdges(ProfileOgee, ProfileGeometry{RadiusMM: 15}).
		WithBrushedSurface("lengthwise", 180).
		WithAllDripEdges(WithOverhang(35), WithGrooveDepth(5)))
}

// WaterfallEdgeSpec каскадная кромка без отливов
func WaterfallEdgeSpec() *ManufacturingProcessSpec {
	return mustBuild(NewBuilder(WaterfallID, "Waterfall Edge Profile (Cascading)").
		WithAllEdges(ProfileWaterfall, ProfileGeometry{DepthMM: 15}).
		WithBrushedSurface("lengthwise", 120))
}

// VariedEdgeSpec разные профили на каждой стороне
func VariedEdgeSpec(front, rear, left, right ProfileType) (*ManufacturingProcessSpec, error) {
	return NewBuilder(VariedID, "Varied Edge Profiles per Orientation").
		WithEdgeProfile(models.Anterior, front, ProfileGeometry{}).
		WithEdgeProfile(models.Posterior, rear, ProfileGeometry{}).
		WithEdgeProfile(models.Port, left, ProfileGeometry{}).
		WithEdgeProfile(models.Starboard, right, ProfileGeometry{}).
		WithBrushedSurface("lengthwise", 120).
		WithAllDripEdges(WithOverhang(30), WithGrooveDepth(5)).
		Build()
}

// встроенные шаблоны собираются из констант и не могут вернуть ошибку
func mustBuild(b *Builder) *ManufacturingProcessSpec {
	s, err := b.Build()
	if err != nil {
		panic(err)
	}
	return s
}
