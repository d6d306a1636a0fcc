package models

import "math"

// DefaultPointUncertaintyMM погрешность точки по умолчанию
const DefaultPointUncertaintyMM = 0.01

// Ключи скалярных показаний каплесборной кромки
const (
	DripOverhang         = "overhang"
	DripDistanceFromEdge = "distance_from_edge"
	DripGrooveWidth      = "groove_width"
	DripGrooveDepth      = "groove_depth"
)

// MeasurementPoint точка измерения с координатами и погрешностью
type MeasurementPoint struct {
	X             float64 `json:"x"`
	Y             float64 `json:"y"`
	Z             float64 `json:"z"`
	UncertaintyMM float64 `json:"uncertainty_mm"`
	Timestamp     string  `json:"timestamp,omitempty"`
}

// NewMeasurementPoint создает точку с погрешностью по умолчанию
func NewMeasurementPoint(x, y, z float64) MeasurementPoint {
	return MeasurementPoint{X: x, Y: y, Z: z, UncertaintyMM: DefaultPointUncertaintyMM}
}

// DistanceTo вычисляет евклидово расстояние до другой точки
func (p MeasurementPoint) DistanceTo(other MeasurementPoint) float64 {
	dx := p.X - other.X
	dy := p.Y - other.Y
	dz := p.Z - other.Z
	return math.Sqrt(dx*dx + dy*dy + dz*dz)
}

// ChamferMeasurement измеренные параметры фаски на одной кромке
type ChamferMeasurement struct {
	Orientation Orientation `json:"orientation"`

	DepthMM      float64  `json:"depth_mm"`
	AngleDegrees float64  `json:"angle_degrees"`
	WidthMM      float64  `json:"width_mm"`
	RoughnessRa  *float64 `json:"roughness_ra,omitempty"` // nil, если шероховатость не измерялась

	TopEdgePoints    []MeasurementPoint `json:"top_edge_points,omitempty"`
	BottomEdgePoints []MeasurementPoint `json:"bottom_edge_points,omitempty"`
	FacePoints       []MeasurementPoint `json:"face_points,omitempty"`
}

// HasRoughness сообщает, есть ли показание шероховатости
func (m ChamferMeasurement) HasRoughness() bool {
	return m.RoughnessRa != nil
}

// DripReadings скалярные показания каплесборной кромки по ключам Drip*
type DripReadings map[string]float64

// Get возвращает показание и признак его наличия
func (r DripReadings) Get(key string) (float64, bool) {
	if r == nil {
		return 0, false
	}
	value, ok := r[key]
	return value, ok
}

// MeasurementSet полный набор измерений одного изделия
type MeasurementSet struct {
	PartID              string                             `json:"part_id,omitempty"`
	ChamferMeasurements map[Orientation]ChamferMeasurement `json:"chamfer_measurements"`
	EdgePoints          map[Orientation][]MeasurementPoint `json:"edge_points"`
	DripMeasurements    map[Orientation]DripReadings       `json:"drip_measurements,omitempty"`
}
