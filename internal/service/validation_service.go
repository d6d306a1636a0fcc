package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"edge-gdt-validator/internal/gdt"
	"edge-gdt-validator/internal/model"
	"edge-gdt-validator/internal/repository"
	"edge-gdt-validator/internal/simulate"
	"edge-gdt-validator/internal/spec"
	"edge-gdt-validator/pkg/models"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// Version версия сервиса в ответе health
const Version = "1.0.0"

// ErrGaugeUnavailable измерительный стенд не настроен
var ErrGaugeUnavailable = errors.New("gauge client is not configured")

// MeasurementSource источник измерений изделия
type MeasurementSource interface {
	FetchMeasurements(ctx context.Context, partID string) (*models.MeasurementSet, error)
	CheckHealth(ctx context.Context) (*models.HealthResponse, error)
}

// ValidationService запускает проверки и хранит отчеты
type ValidationService struct {
	catalog     *spec.Catalog
	repo        repository.ValidationRepository
	gauge       MeasurementSource
	logger      *logrus.Logger
	parallelism int
	now         func() time.Time
}

// NewValidationService создает сервис проверки; gauge может быть nil
func NewValidationService(catalog *spec.Catalog, repo repository.ValidationRepository, gauge MeasurementSource, parallelism int, logger *logrus.Logger) *ValidationService {
	return &ValidationService{
		catalog:     catalog,
		repo:        repo,
		gauge:       gauge,
		logger:      logger,
		parallelism: parallelism,
		now:         func() time.Time { return time.Now().UTC() },
	}
}

// Validate проверяет переданный набор измерений
func (s *ValidationService) Validate(ctx context.Context, req models.ValidateRequest) (*models.EdgeValidationReport, error) {
	return s.run(ctx, req.SpecificationID, req.MeasurementSet, model.SourceManual)
}

// ValidateFromGauge получает измерения со стенда и проверяет их
func (s *ValidationService) ValidateFromGauge(ctx context.Context, specificationID, partID string) (*models.EdgeValidationReport, error) {
	if s.gauge == nil {
		return nil, ErrGaugeUnavailable
	}
	// спецификацию проверяем до обращения к стенду
	if _, err := s.catalog.Get(specificationID); err != nil {
		return nil, err
	}

	set, err := s.gauge.FetchMeasurements(ctx, partID)
	if err != nil {
		s.logger.Errorf("Ошибка получения измерений изделия %s: %v", partID, err)
		return nil, fmt.Errorf("failed to fetch measurements: %w", err)
	}
	set.PartID = partID
	return s.run(ctx, specificationID, *set, model.SourceGauge)
}

// Simulate проверяет симулированные измерения с фиксированным зерном
func (s *ValidationService) Simulate(ctx context.Context, req models.SimulateRequest) (*models.EdgeValidationReport, error) {
	processSpec, err := s.catalog.Get(req.SpecificationID)
	if err != nil {
		return nil, err
	}
	set := simulate.MeasurementSet(processSpec, req.Seed, req.NoiseFactor, req.WithDrip)
	set.PartID = fmt.Sprintf("SIM-%d", req.Seed)
	return s.run(ctx, req.SpecificationID, set, model.SourceSimulated)
}

func (s *ValidationService) run(ctx context.Context, specificationID string, set models.MeasurementSet, source string) (*models.EdgeValidationReport, error) {
	processSpec, err := s.catalog.Get(specificationID)
	if err != nil {
		return nil, err
	}

	logger := s.logger.WithFields(logrus.Fields{
		"specification_id": specificationID,
		"part_id":          set.PartID,
		"source":           source,
	})
	logger.Info("Начинаем проверку кромок")

	startTime := time.Now()
	engine := gdt.NewEngine(processSpec, gdt.WithParallelism(s.parallelism), gdt.WithClock(s.now))
	report := engine.ValidateAll(set.ChamferMeasurements, set.EdgePoints, set.DripMeasurements)
	elapsed := time.Since(startTime)

	report.ID = uuid.New().String()
	report.PartID = set.PartID

	if err := s.repo.Create(ctx, reportToModel(report, source)); err != nil {
		persistenceErrorsTotal.Inc()
		logger.Errorf("Ошибка сохранения отчета: %v", err)
		return nil, fmt.Errorf("failed to save report: %w", err)
	}
	recordRun(source, report, elapsed)

	logger.WithFields(logrus.Fields{
		"report_id":      report.ID,
		"overall_status": report.OverallStatus().String(),
		"total":          report.TotalChecks,
		"passed":         report.PassedChecks,
		"warnings":       report.WarningChecks,
		"failed":         report.FailedChecks,
		"elapsed":        elapsed,
	}).Info("Проверка завершена")
	return report, nil
}

// GetReport получает сохраненный отчет
func (s *ValidationService) GetReport(ctx context.Context, id string) (*models.EdgeValidationReport, error) {
	run, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return modelToReport(run)
}

// ListReports получает страницу отчетов; specificationID фильтрует по спецификации
func (s *ValidationService) ListReports(ctx context.Context, specificationID string, page, pageSize int) ([]models.EdgeValidationReport, int64, error) {
	s.logger.Debugf("Получаем список отчетов: страница %d, размер %d", page, pageSize)

	var (
		runs  []*model.ValidationRun
		total int64
		err   error
	)
	if specificationID != "" {
		runs, total, err = s.repo.ListBySpecification(ctx, specificationID, page, pageSize)
	} else {
		runs, total, err = s.repo.List(ctx, page, pageSize)
	}
	if err != nil {
		s.logger.Errorf("Ошибка получения списка отчетов: %v", err)
		return nil, 0, fmt.Errorf("failed to list reports: %w", err)
	}

	reports := make([]models.EdgeValidationReport, 0, len(runs))
	for _, run := range runs {
		report, err := modelToReport(run)
		if err != nil {
			return nil, 0, err
		}
		reports = append(reports, *report)
	}
	return reports, total, nil
}

// DeleteReport удаляет сохраненный отчет
func (s *ValidationService) DeleteReport(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Infof("Отчет %s удален", id)
	return nil
}

// Summary возвращает текстовую сводку сохраненного отчета
func (s *ValidationService) Summary(ctx context.Context, id string) (string, error) {
	report, err := s.GetReport(ctx, id)
	if err != nil {
		return "", err
	}
	return gdt.FormatSummary(report), nil
}

// ListSpecifications возвращает спецификации каталога
func (s *ValidationService) ListSpecifications() []*spec.ManufacturingProcessSpec {
	return s.catalog.List()
}

// GetSpecification возвращает спецификацию по ID
func (s *ValidationService) GetSpecification(id string) (*spec.ManufacturingProcessSpec, error) {
	return s.catalog.Get(id)
}

// CheckHealth проверяет базу данных и измерительный стенд
func (s *ValidationService) CheckHealth(ctx context.Context) *models.HealthResponse {
	if err := s.repo.Ping(ctx); err != nil {
		s.logger.Errorf("База данных недоступна: %v", err)
		return &models.HealthResponse{Status: "unhealthy", Version: Version}
	}

	if s.gauge != nil {
		if _, err := s.gauge.CheckHealth(ctx); err != nil {
			s.logger.Warnf("Измерительный стенд недоступен: %v", err)
			return &models.HealthResponse{Status: "degraded", Version: Version}
		}
	}

	return &models.HealthResponse{Status: "healthy", Version: Version}
}
