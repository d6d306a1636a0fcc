// Package simulate генерирует воспроизводимые измерения вокруг номинала
// для тестов и демонстрационных прогонов. К логике проверки не относится.
package simulate

import (
	"math/rand/v2"

	"edge-gdt-validator/internal/spec"
	"edge-gdt-validator/pkg/models"
)

// DefaultEdgeHeightMM высота торца, вдоль которой снимаются точки перпендикулярности
const DefaultEdgeHeightMM = 30.0

// SeedFor выводит зерно стороны из базового зерна.
// Значение зависит только от порядкового номера стороны, а не от хеширования.
func SeedFor(base uint64, o models.Orientation) uint64 {
	return base*31 + uint64(o.Index()+1)
}

func newRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// ChamferMeasurement генерирует измерение фаски с относительным шумом noise
func ChamferMeasurement(o models.Orientation, cs spec.ChamferSpecification, noise float64, seed uint64) models.ChamferMeasurement {
	r := newRand(seed)

	depth := cs.DepthMM() * (1 + r.NormFloat64()*noise)
	angle := cs.AngleDegrees() * (1 + r.NormFloat64()*noise)
	roughness := cs.SurfaceRoughnessRa() * (1 + r.NormFloat64()*noise)

	return models.ChamferMeasurement{
		Orientation:      o,
		DepthMM:          depth,
		AngleDegrees:     angle,
		WidthMM:          spec.ChamferWidth(depth, angle),
		RoughnessRa:      &roughness,
		TopEdgePoints:    straightPoints(r, 10, 0, 0, 100),
		BottomEdgePoints: straightPoints(r, 10, depth, -depth, 100),
	}
}

// EdgePoints генерирует n точек вдоль торца высотой heightMM.
// tiltMM - систематический увод на базовой длине 100 мм.
func EdgePoints(heightMM float64, n int, tiltMM float64, seed uint64) []models.MeasurementPoint {
	if n < 2 {
		n = 2
	}
	r := newRand(seed)
	points := make([]models.MeasurementPoint, n)
	for i := range points {
		z := heightMM * float64(i) / float64(n-1)
		p := models.NewMeasurementPoint(
			tiltMM*z/100+r.NormFloat64()*0.0005,
			r.NormFloat64()*0.0005,
			z,
		)
		points[i] = p
	}
	return points
}

// DripReadings генерирует показания отлива с относительным шумом noise
func DripReadings(ds spec.DripEdgeSpecification, noise float64, seed uint64) models.DripReadings {
	r := newRand(seed)
	return models.DripReadings{
		models.DripOverhang:         ds.OverhangMM * (1 + r.NormFloat64()*noise),
		models.DripDistanceFromEdge: ds.DistanceFromEdgeMM * (1 + r.NormFloat64()*noise),
		models.DripGrooveWidth:      ds.GrooveWidthMM * (1 + r.NormFloat64()*noise),
		models.DripGrooveDepth:      ds.GrooveDepthMM * (1 + r.NormFloat64()*noise),
	}
}

// MeasurementSet собирает измерения всех сторон спецификации
func MeasurementSet(s *spec.ManufacturingProcessSpec, base uint64, noise float64, withDrip bool) models.MeasurementSet {
	set := models.MeasurementSet{
		ChamferMeasurements: make(map[models.Orientation]models.ChamferMeasurement),
		EdgePoints:          make(map[models.Orientation][]models.MeasurementPoint),
	}
	if withDrip {
		set.DripMeasurements = make(map[models.Orientation]models.DripReadings)
	}

	for _, o := range models.AllOrientations() {
		seed := SeedFor(base, o)
		set.ChamferMeasurements[o] = ChamferMeasurement(o, s.Chamfer, noise, seed)
		set.EdgePoints[o] = EdgePoints(DefaultEdgeHeightMM, 20, 0, seed+1)
		if ds, ok := s.DripEdge(o); ok && withDrip {
			set.DripMeasurements[o] = DripReadings(ds, noise, seed+2)
		}
	}
	return set
}

// straightPoints точки вдоль оси X на длине length со смещением (y, z)
func straightPoints(r *rand.Rand, n int, y, z, length float64) []models.MeasurementPoint {
	points := make([]models.MeasurementPoint, n)
	for i := range points {
		t := float64(i) / float64(n-1)
		points[i] = models.NewMeasurementPoint(
			t*length,
			y+r.NormFloat64()*0.01,
			z+r.NormFloat64()*0.01,
		)
	}
	return points
}
