package models

import (
	"fmt"
	"strings"
)

// ValidationStatus результат отдельной проверки.
// Порядок констант совпадает с приоритетом агрегации: Fail > Warn > Pass > NotChecked.
type ValidationStatus int

const (
	StatusNotChecked ValidationStatus = iota
	StatusPass
	StatusWarn
	StatusFail
)

var statusNames = map[ValidationStatus]string{
	StatusNotChecked: "not_checked",
	StatusPass:       "pass",
	StatusWarn:       "warning",
	StatusFail:       "fail",
}

// Rank возвращает приоритет статуса при агрегации
func (s ValidationStatus) Rank() int {
	return int(s)
}

// String возвращает строковое представление статуса
func (s ValidationStatus) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return fmt.Sprintf("ValidationStatus(%d)", int(s))
}

// MarshalText сериализует статус в текст (JSON, YAML, ключи map)
func (s ValidationStatus) MarshalText() ([]byte, error) {
	if _, ok := statusNames[s]; !ok {
		return nil, fmt.Errorf("invalid validation status %d", int(s))
	}
	return []byte(s.String()), nil
}

// UnmarshalText разбирает статус из текста
func (s *ValidationStatus) UnmarshalText(text []byte) error {
	parsed, err := ParseValidationStatus(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// ParseValidationStatus разбирает статус по имени
func ParseValidationStatus(value string) (ValidationStatus, error) {
	normalized := strings.ToLower(strings.TrimSpace(value))
	if normalized == "warn" {
		return StatusWarn, nil
	}
	for status, name := range statusNames {
		if name == normalized {
			return status, nil
		}
	}
	return StatusNotChecked, fmt.Errorf("unknown validation status %q", value)
}

// WorstStatus возвращает статус с наибольшим приоритетом
func WorstStatus(a, b ValidationStatus) ValidationStatus {
	if b.Rank() > a.Rank() {
		return b
	}
	return a
}

// AggregateStatus сворачивает набор статусов по правилу приоритета.
// Пустой набор дает StatusNotChecked.
func AggregateStatus(statuses ...ValidationStatus) ValidationStatus {
	result := StatusNotChecked
	for _, status := range statuses {
		result = WorstStatus(result, status)
	}
	return result
}
