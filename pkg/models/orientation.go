package models

import "fmt"

// Orientation одна из четырех сторон периметра прямоугольной детали
type Orientation string

const (
	Anterior  Orientation = "front" // Передняя кромка
	Posterior Orientation = "rear"  // Задняя кромка
	Port      Orientation = "left"  // Левая кромка
	Starboard Orientation = "right" // Правая кромка
)

// AllOrientations возвращает все стороны в фиксированном порядке обхода
func AllOrientations() []Orientation {
	return []Orientation{Anterior, Posterior, Port, Starboard}
}

// Index возвращает позицию стороны в AllOrientations или -1
func (o Orientation) Index() int {
	for i, candidate := range AllOrientations() {
		if candidate == o {
			return i
		}
	}
	return -1
}

// IsValid проверяет, что значение входит в закрытый набор сторон
func (o Orientation) IsValid() bool {
	return o.Index() >= 0
}

// ParseOrientation разбирает строковое значение стороны
func ParseOrientation(value string) (Orientation, error) {
	o := Orientation(value)
	if !o.IsValid() {
		return "", fmt.Errorf("unknown edge orientation %q", value)
	}
	return o, nil
}
