package spec

// SurfaceFinish тип обработки лицевой поверхности
type SurfaceFinish string

const (
	FinishPolished     SurfaceFinish = "polished"
	FinishHoned        SurfaceFinish = "honed"
	FinishBrushed      SurfaceFinish = "brushed"
	FinishLeathered    SurfaceFinish = "leathered"
	FinishFlamed       SurfaceFinish = "flamed"
	FinishBushHammered SurfaceFinish = "bush_hammered"
	FinishSandBlasted  SurfaceFinish = "sand_blasted"
	FinishAntiqued     SurfaceFinish = "antiqued"
)

// SurfaceTreatmentSpec параметры обработки поверхности
type SurfaceTreatmentSpec struct {
	Finish SurfaceFinish `json:"finish_type" yaml:"finish_type"`

	BrushDirection  string   `json:"brush_direction" yaml:"brush_direction"` // lengthwise, crosswise, diagonal
	BrushGrit       int      `json:"brush_grit" yaml:"brush_grit"`
	BrushPatternMM  float64  `json:"brush_pattern_mm" yaml:"brush_pattern_mm"`
	RoughnessRa     float64  `json:"roughness_ra" yaml:"roughness_ra"`
	RoughnessRz     float64  `json:"roughness_rz" yaml:"roughness_rz"`
	PolishCompound  string   `json:"polish_compound" yaml:"polish_compound"`
	PolishGritSteps []int    `json:"polish_grit_sequence" yaml:"polish_grit_sequence"`
	GlossAt60Deg    *float64 `json:"gloss_level_at_60deg,omitempty" yaml:"gloss_level_at_60deg,omitempty"`
	ColorDeltaEMax  float64  `json:"color_uniformity_delta_e" yaml:"color_uniformity_delta_e"`
}

// BrushedSurface возвращает браширование с заданным направлением и зерном
func BrushedSurface(direction string, grit int) SurfaceTreatmentSpec {
	return SurfaceTreatmentSpec{
		Finish:          FinishBrushed,
		BrushDirection:  direction,
		BrushGrit:       grit,
		BrushPatternMM:  0.5,
		RoughnessRa:     1.6,
		RoughnessRz:     6.3,
		PolishCompound:  "diamond",
		PolishGritSteps: []int{200, 400, 800, 1200},
		ColorDeltaEMax:  1.0,
	}
}
