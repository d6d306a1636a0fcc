package repository

import (
	"context"
	"errors"
	"fmt"

	"edge-gdt-validator/internal/model"

	"gorm.io/gorm"
)

// ErrReportNotFound прогон с указанным ID отсутствует
var ErrReportNotFound = errors.New("validation report not found")

// ValidationRepository интерфейс для работы с прогонами проверки
type ValidationRepository interface {
	Create(ctx context.Context, run *model.ValidationRun) error
	GetByID(ctx context.Context, id string) (*model.ValidationRun, error)
	List(ctx context.Context, page, pageSize int) ([]*model.ValidationRun, int64, error)
	ListBySpecification(ctx context.Context, specificationID string, page, pageSize int) ([]*model.ValidationRun, int64, error)
	Delete(ctx context.Context, id string) error
	Ping(ctx context.Context) error
}

// validationRepository реализация ValidationRepository
type validationRepository struct {
	db *gorm.DB
}

// NewValidationRepository создает новый instance ValidationRepository
func NewValidationRepository(db *gorm.DB) ValidationRepository {
	return &validationRepository{
		db: db,
	}
}

// Create сохраняет прогон вместе с результатами проверок
func (r *validationRepository) Create(ctx context.Context, run *model.ValidationRun) error {
	tx := r.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return fmt.Errorf("failed to begin transaction: %w", tx.Error)
	}

	// Сначала создаем прогон
	if err := tx.Omit("Checks").Create(run).Error; err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to create validation run: %w", err)
	}

	// Затем результаты в порядке отчета
	for i := range run.Checks {
		run.Checks[i].ID = 0
		run.Checks[i].RunID = run.ID
		run.Checks[i].Position = i

		if err := tx.Create(&run.Checks[i]).Error; err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to create check result %d: %w", i, err)
		}
	}

	if err := tx.Commit().Error; err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// GetByID получает прогон по ID с результатами в исходном порядке
func (r *validationRepository) GetByID(ctx context.Context, id string) (*model.ValidationRun, error) {
	var run model.ValidationRun
	err := r.db.WithContext(ctx).
		Preload("Checks", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC") }).
		Where("id = ?", id).
		First(&run).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("run %s: %w", id, ErrReportNotFound)
		}
		return nil, fmt.Errorf("failed to get validation run: %w", err)
	}
	return &run, nil
}

// List получает прогоны с пагинацией, новые первыми
func (r *validationRepository) List(ctx context.Context, page, pageSize int) ([]*model.ValidationRun, int64, error) {
	return r.list(r.db.WithContext(ctx), page, pageSize)
}

// ListBySpecification получает прогоны одной спецификации с пагинацией
func (r *validationRepository) ListBySpecification(ctx context.Context, specificationID string, page, pageSize int) ([]*model.ValidationRun, int64, error) {
	return r.list(r.db.WithContext(ctx).Where("specification_id = ?", specificationID), page, pageSize)
}

func (r *validationRepository) list(query *gorm.DB, page, pageSize int) ([]*model.ValidationRun, int64, error) {
	var runs []*model.ValidationRun
	var total int64

	// Подсчитываем общее количество
	if err := query.Session(&gorm.Session{}).Model(&model.ValidationRun{}).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count validation runs: %w", err)
	}

	offset := (page - 1) * pageSize
	err := query.Session(&gorm.Session{}).
		Preload("Checks", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC") }).
		Offset(offset).
		Limit(pageSize).
		Order("validated_at DESC").
		Order("created_at DESC").
		Find(&runs).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list validation runs: %w", err)
	}

	return runs, total, nil
}

// Delete удаляет прогон по ID
func (r *validationRepository) Delete(ctx context.Context, id string) error {
	tx := r.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return fmt.Errorf("failed to begin transaction: %w", tx.Error)
	}

	// Сначала удаляем результаты
	if err := tx.Where("run_id = ?", id).Delete(&model.CheckResult{}).Error; err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to delete check results: %w", err)
	}

	// Затем сам прогон
	result := tx.Where("id = ?", id).Delete(&model.ValidationRun{})
	if result.Error != nil {
		tx.Rollback()
		return fmt.Errorf("failed to delete validation run: %w", result.Error)
	}

	if result.RowsAffected == 0 {
		tx.Rollback()
		return fmt.Errorf("run %s: %w", id, ErrReportNotFound)
	}

	if err := tx.Commit().Error; err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// Ping проверяет доступность базы данных
func (r *validationRepository) Ping(ctx context.Context) error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return fmt.Errorf("failed to get database instance: %w", err)
	}
	return sqlDB.PingContext(ctx)
}
