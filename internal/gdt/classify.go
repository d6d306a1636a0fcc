// Package gdt проверяет геометрию кромок (фаски, перпендикулярность, отливы)
// на соответствие технологической спецификации и формирует отчет pass/warn/fail.
//
// Все валидаторы - чистые функции своих входных данных: ничего не пишут в лог,
// не выполняют ввод-вывод и не возвращают ошибок. Отсутствие данных выражается
// статусом NotChecked или пропуском проверки.
package gdt

import (
	"math"

	"edge-gdt-validator/pkg/models"
)

// Фиксированные допуски, не зависящие от спецификации
const (
	AngularToleranceDeg      = 0.5
	RoughnessToleranceRa     = 0.5
	ProfileToleranceMM       = 0.1
	OverhangToleranceMM      = 2.0
	GrooveDimensionTolerance = 0.5

	// angleToDepthScale эвристически приводит СКО угла (градусы) к масштабу СКО глубины (мм).
	// Физическим пересчетом не является.
	angleToDepthScale = 10.0
)

// classifyTiered трехуровневая классификация:
// deviation <= tol - Pass, deviation <= 2·tol - Warn, иначе Fail
func classifyTiered(deviation, tolerance float64) models.ValidationStatus {
	switch {
	case deviation > 2*tolerance:
		return models.StatusFail
	case deviation > tolerance:
		return models.StatusWarn
	}
	return models.StatusPass
}

// classifyBinary двухуровневая классификация без уровня Fail
func classifyBinary(deviation, tolerance float64) models.ValidationStatus {
	if deviation <= tolerance {
		return models.StatusPass
	}
	return models.StatusWarn
}

// compliance процент соответствия в [0, 100]; scale - потеря процентов на один допуск
func compliance(deviation, tolerance, scale float64) float64 {
	if tolerance <= 0 {
		if deviation == 0 {
			return 100
		}
		return 0
	}
	return math.Max(0, math.Min(100, 100-deviation/tolerance*scale))
}
