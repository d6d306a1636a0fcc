package gdt

import (
	"time"

	"edge-gdt-validator/internal/geo"
	"edge-gdt-validator/internal/spec"
	"edge-gdt-validator/pkg/models"

	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/spatial/r3"
)

// DefaultParallelism число сторон, проверяемых одновременно
const DefaultParallelism = 4

// Option настраивает Engine
type Option func(*Engine)

// WithParallelism ограничивает число одновременно проверяемых сторон
func WithParallelism(n int) Option {
	return func(e *Engine) {
		if n < 1 {
			n = 1
		}
		e.parallelism = n
	}
}

// WithReferenceNormal задает базовую нормаль для проверки перпендикулярности
func WithReferenceNormal(normal r3.Vec) Option {
	return func(e *Engine) { e.referenceNormal = normal }
}

// WithClock задает источник времени для отметки отчета
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// Engine запускает все проверки по четырем сторонам и собирает отчет
type Engine struct {
	spec            *spec.ManufacturingProcessSpec
	chamfer         *ChamferValidator
	squareness      *EdgeSquarenessValidator
	referenceNormal r3.Vec
	parallelism     int
	now             func() time.Time
}

// NewEngine создает движок проверки для спецификации
func NewEngine(s *spec.ManufacturingProcessSpec, opts ...Option) *Engine {
	e := &Engine{
		spec:            s,
		referenceNormal: geo.ReferenceNormal,
		parallelism:     DefaultParallelism,
		now:             func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(e)
	}
	e.chamfer = NewChamferValidator(s.Chamfer)
	e.squareness = NewEdgeSquarenessValidator(s.GDnT, e.referenceNormal)
	return e
}

// orientationResults результаты одной стороны до свертки в отчет
type orientationResults struct {
	measurement *models.ChamferMeasurement
	chamfer     []models.ValidationResult
	squareness  *models.ValidationResult
	drip        []models.ValidationResult
}

// ValidateAll проверяет все стороны и возвращает заполненный отчет.
// Стороны проверяются параллельно, счетчики отчета заполняются
// последовательно в порядке: фаски, согласованность, перпендикулярность, отливы.
// Отсутствующие данные пропускают соответствующие проверки; drip может быть nil.
func (e *Engine) ValidateAll(
	chamfer map[models.Orientation]models.ChamferMeasurement,
	edgePoints map[models.Orientation][]models.MeasurementPoint,
	drip map[models.Orientation]models.DripReadings,
) *models.EdgeValidationReport {
	orientations := models.AllOrientations()
	collected := make([]orientationResults, len(orientations))

	var g errgroup.Group
	g.SetLimit(e.parallelism)
	for i, o := range orientations {
		g.Go(func() error {
			collected[i] = e.validateOrientation(o, chamfer, edgePoints, drip)
			return nil
		})
	}
	_ = g.Wait()

	report := models.NewEdgeValidationReport(e.spec.ID, e.now())

	// 1. Фаски по сторонам
	var measurements []models.ChamferMeasurement
	for i, o := range orientations {
		if collected[i].measurement == nil {
			continue
		}
		measurements = append(measurements, *collected[i].measurement)
		report.ChamferResults[o] = collected[i].chamfer
		for _, result := range collected[i].chamfer {
			report.Count(result)
		}
	}

	// 2. Согласованность фасок между сторонами
	if len(measurements) > 0 {
		consistency := e.chamfer.ValidateProfileConsistency(measurements)
		report.ProfileConsistency = &consistency
		report.Count(consistency)
	}

	// 3. Перпендикулярность кромок
	for i, o := range orientations {
		if result := collected[i].squareness; result != nil {
			report.SquarenessResults[o] = *result
			report.Count(*result)
		}
	}

	// 4. Каплесборные кромки
	for i, o := range orientations {
		if len(collected[i].drip) == 0 {
			continue
		}
		report.DripEdgeResults[o] = collected[i].drip
		for _, result := range collected[i].drip {
			report.Count(result)
		}
	}

	return report
}

func (e *Engine) validateOrientation(
	o models.Orientation,
	chamfer map[models.Orientation]models.ChamferMeasurement,
	edgePoints map[models.Orientation][]models.MeasurementPoint,
	drip map[models.Orientation]models.DripReadings,
) orientationResults {
	var out orientationResults

	if m, ok := chamfer[o]; ok {
		m.Orientation = o
		out.measurement = &m
		out.chamfer = []models.ValidationResult{
			e.chamfer.ValidateDepth(m),
			e.chamfer.ValidateAngle(m),
			e.chamfer.ValidateSurfaceRoughness(m),
		}
	}

	if points, ok := edgePoints[o]; ok {
		result := e.squareness.ValidateEdgeSquareness(o, points)
		out.squareness = &result
	}

	if readings, ok := drip[o]; ok {
		out.drip = e.validateDripEdge(o, readings)
	}

	return out
}

// validateDripEdge выполняет только те проверки отлива, для которых есть показания
func (e *Engine) validateDripEdge(o models.Orientation, readings models.DripReadings) []models.ValidationResult {
	dripSpec, ok := e.spec.DripEdge(o)
	if !ok {
		return nil
	}
	validator := NewDripEdgeValidator(dripSpec, e.spec.GDnT)

	var results []models.ValidationResult
	if overhang, ok := readings.Get(models.DripOverhang); ok {
		results = append(results, validator.ValidateOverhangDistance(o, overhang))
	}
	if distance, ok := readings.Get(models.DripDistanceFromEdge); ok {
		results = append(results, validator.ValidateGroovePosition(o, distance))
	}
	width, hasWidth := readings.Get(models.DripGrooveWidth)
	depth, hasDepth := readings.Get(models.DripGrooveDepth)
	if hasWidth && hasDepth {
		widthResult, depthResult := validator.ValidateGrooveDimensions(o, width, depth)
		results = append(results, widthResult, depthResult)
	}
	return results
}
