package repository

import (
	"errors"
	"fmt"

	"netracare-go/internal/model"

	"gorm.io/gorm"
)

// SessionRepository интерфейс для работы с сессиями трекинга
type SessionRepository interface {
	Create(session *model.EyeTrackingSession) error
	GetByID(id string, userID uint) (*model.EyeTrackingSession, error)
	ListByUser(userID uint, limit, offset int) ([]*model.EyeTrackingSession, int64, error)
	Delete(id string, userID uint) error
}

// sessionRepository реализация SessionRepository
type sessionRepository struct {
	db *gorm.DB
}

// NewSessionRepository создает новый instance SessionRepository
func NewSessionRepository(db *gorm.DB) SessionRepository {
	return &sessionRepository{
		db: db,
	}
}

// Create создает новую сессию в базе данных
func (r *sessionRepository) Create(session *model.EyeTrackingSession) error {
	if err := r.db.Create(session).Error; err != nil {
		return fmt.Errorf("failed to create session: %w", err)
	}
	return nil
}

// GetByID получает сессию по ID с проверкой владельца
func (r *sessionRepository) GetByID(id string, userID uint) (*model.EyeTrackingSession, error) {
	var session model.EyeTrackingSession
	err := r.db.Where("id = ? AND user_id = ?", id, userID).First(&session).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("session with id %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get session: %w", err)
	}
	return &session, nil
}

// ListByUser получает список сессий пользователя с пагинацией
func (r *sessionRepository) ListByUser(userID uint, limit, offset int) ([]*model.EyeTrackingSession, int64, error) {
	var sessions []*model.EyeTrackingSession
	var total int64

	// Подсчитываем общее количество
	if err := r.db.Model(&model.EyeTrackingSession{}).Where("user_id = ?", userID).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count sessions: %w", err)
	}

	// Получаем сессии с пагинацией
	err := r.db.Where("user_id = ?", userID).
		Offset(offset).
		Limit(limit).
		Order("created_at DESC").
		Find(&sessions).Error

	if err != nil {
		return nil, 0, fmt.Errorf("failed to list sessions: %w", err)
	}

	return sessions, total, nil
}

// Delete удаляет сессию по ID с проверкой владельца
func (r *sessionRepository) Delete(id string, userID uint) error {
	result := r.db.Where("id = ? AND user_id = ?", id, userID).Delete(&model.EyeTrackingSession{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete session: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("session with id %s: %w", id, ErrNotFound)
	}
	return nil
}
