package geo

import (
	"math"

	"edge-gdt-validator/pkg/models"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/r3"
)

// GaugeLengthMM базовая длина, на которую проецируется угловое отклонение
const GaugeLengthMM = 100.0

// ReferenceNormal направление "вверх" детали
var ReferenceNormal = r3.Vec{X: 0, Y: 0, Z: 1}

// fallbackDirection произвольный единичный вектор для вырожденных входных данных
var fallbackDirection = r3.Vec{X: 1, Y: 0, Z: 0}

// Calculator для геометрических вычислений по точкам измерений
type Calculator struct{}

// NewCalculator создает новый калькулятор
func NewCalculator() *Calculator {
	return &Calculator{}
}

// Vec преобразует точку измерения в вектор
func (c *Calculator) Vec(p models.MeasurementPoint) r3.Vec {
	return r3.Vec{X: p.X, Y: p.Y, Z: p.Z}
}

// Centroid вычисляет центр масс набора точек
func (c *Calculator) Centroid(points []models.MeasurementPoint) r3.Vec {
	if len(points) == 0 {
		return r3.Vec{}
	}

	var sum r3.Vec
	for _, p := range points {
		sum = r3.Add(sum, c.Vec(p))
	}
	return r3.Scale(1/float64(len(points)), sum)
}

// PathLength вычисляет длину ломаной через упорядоченные точки
func (c *Calculator) PathLength(points []models.MeasurementPoint) float64 {
	length := 0.0
	for i := 1; i < len(points); i++ {
		length += points[i-1].DistanceTo(points[i])
	}
	return length
}

// EdgeVector находит направление прямой, наилучшим образом приближающей точки.
// Точки центрируются по центроиду, направление берется как правый сингулярный
// вектор для наибольшего сингулярного числа центрированной матрицы.
// Для менее чем двух точек возвращается произвольный единичный вектор.
func (c *Calculator) EdgeVector(points []models.MeasurementPoint) r3.Vec {
	if len(points) < 2 {
		return fallbackDirection
	}

	centroid := c.Centroid(points)
	data := make([]float64, 0, len(points)*3)
	for _, p := range points {
		d := r3.Sub(c.Vec(p), centroid)
		data = append(data, d.X, d.Y, d.Z)
	}
	centered := mat.NewDense(len(points), 3, data)

	var svd mat.SVD
	if !svd.Factorize(centered, mat.SVDThin) {
		return fallbackDirection
	}

	// Сингулярные числа упорядочены по убыванию, первый столбец V - главное направление
	var v mat.Dense
	svd.VTo(&v)
	direction := r3.Vec{X: v.At(0, 0), Y: v.At(1, 0), Z: v.At(2, 0)}
	if r3.Norm(direction) == 0 || math.IsNaN(r3.Norm(direction)) {
		return fallbackDirection
	}
	return r3.Unit(direction)
}

// Perpendicularity вычисляет угол между кромкой и нормалью (радианы) и
// линейное отклонение tan(angle)·100 мм на базовой длине GaugeLengthMM
func (c *Calculator) Perpendicularity(edge, normal r3.Vec) (angleRad, deviationMM float64) {
	edgeNorm := r3.Norm(edge)
	normalNorm := r3.Norm(normal)
	if edgeNorm == 0 || normalNorm == 0 {
		return 0, 0
	}

	cosine := math.Abs(r3.Dot(r3.Scale(1/edgeNorm, edge), r3.Scale(1/normalNorm, normal)))
	cosine = math.Max(-1, math.Min(1, cosine))

	angleRad = math.Acos(cosine)
	deviationMM = math.Tan(angleRad) * GaugeLengthMM
	return angleRad, deviationMM
}

// Degrees переводит радианы в градусы
func Degrees(rad float64) float64 {
	return rad * 180 / math.Pi
}
