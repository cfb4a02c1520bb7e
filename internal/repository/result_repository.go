package repository

import (
	"fmt"

	"netracare-go/internal/model"

	"gorm.io/gorm"
)

// ResultRepository интерфейс для работы с результатами тестов зрения
type ResultRepository interface {
	CreateColourVision(result *model.ColourVisionResult) error
	ListColourVisionByUser(userID uint, limit, offset int) ([]*model.ColourVisionResult, error)
	CreateVisualAcuity(result *model.VisualAcuityResult) error
	ListVisualAcuityByUser(userID uint, limit, offset int) ([]*model.VisualAcuityResult, error)
}

// resultRepository реализация ResultRepository
type resultRepository struct {
	db *gorm.DB
}

// NewResultRepository создает новый instance ResultRepository
func NewResultRepository(db *gorm.DB) ResultRepository {
	return &resultRepository{
		db: db,
	}
}

// CreateColourVision сохраняет результат теста цветового зрения
func (r *resultRepository) CreateColourVision(result *model.ColourVisionResult) error {
	if err := r.db.Create(result).Error; err != nil {
		return fmt.Errorf("failed to create colour vision result: %w", err)
	}
	return nil
}

// ListColourVisionByUser получает результаты тестов цветового зрения пользователя
func (r *resultRepository) ListColourVisionByUser(userID uint, limit, offset int) ([]*model.ColourVisionResult, error) {
	var results []*model.ColourVisionResult
	err := r.db.Where("user_id = ?", userID).
		Offset(offset).
		Limit(limit).
		Order("created_at DESC").
		Find(&results).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list colour vision results: %w", err)
	}
	return results, nil
}

// CreateVisualAcuity сохраняет результат теста остроты зрения
func (r *resultRepository) CreateVisualAcuity(result *model.VisualAcuityResult) error {
	if err := r.db.Create(result).Error; err != nil {
		return fmt.Errorf("failed to create visual acuity result: %w", err)
	}
	return nil
}

// ListVisualAcuityByUser получает результаты тестов остроты зрения пользователя
func (r *resultRepository) ListVisualAcuityByUser(userID uint, limit, offset int) ([]*model.VisualAcuityResult, error) {
	var results []*model.VisualAcuityResult
	err := r.db.Where("user_id = ?", userID).
		Offset(offset).
		Limit(limit).
		Order("created_at DESC").
		Find(&results).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list visual acuity results: %w", err)
	}
	return results, nil
}
