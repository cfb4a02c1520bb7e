package model

import (
	"encoding/json"
	"time"

	"gorm.io/gorm"
)

// EyeTrackingSession представляет сохраненную сессию трекинга глаз.
// Имена полей статистики — контракт с ядром анализа, меняются только вместе.
type EyeTrackingSession struct {
	ID          string `gorm:"primaryKey;type:varchar(36)" json:"id"`
	UserID      uint   `gorm:"not null;index" json:"user_id"`
	SessionName string `gorm:"type:varchar(255)" json:"session_name"`

	DurationSeconds    float64   `gorm:"not null;default:0" json:"duration_seconds"`
	StartTime          time.Time `json:"start_time"`
	EndTime            time.Time `json:"end_time"`
	TotalBlinks        int       `gorm:"not null;default:0" json:"total_blinks"`
	BlinkRatePerMinute float64   `gorm:"not null;default:0" json:"blink_rate_per_minute"`

	// Статистика EAR по левому глазу
	LeftEyeEARMean float64 `json:"left_eye_ear_mean"`
	LeftEyeEARStd  float64 `json:"left_eye_ear_std"`
	LeftEyeEARMin  float64 `json:"left_eye_ear_min"`
	LeftEyeEARMax  float64 `json:"left_eye_ear_max"`

	// Статистика EAR по правому глазу
	RightEyeEARMean float64 `json:"right_eye_ear_mean"`
	RightEyeEARStd  float64 `json:"right_eye_ear_std"`
	RightEyeEARMin  float64 `json:"right_eye_ear_min"`
	RightEyeEARMax  float64 `json:"right_eye_ear_max"`

	// Статистика усредненного EAR
	AverageEARMean float64 `json:"average_ear_mean"`
	AverageEARStd  float64 `json:"average_ear_std"`
	AverageEARMin  float64 `json:"average_ear_min"`
	AverageEARMax  float64 `json:"average_ear_max"`

	// Счетчики кадров и доля кадров с обнаруженным лицом
	TotalFrames    int     `gorm:"not null;default:0" json:"total_frames"`
	FramesWithFace int     `gorm:"not null;default:0" json:"frames_with_face"`
	DetectionRate  float64 `gorm:"not null;default:0" json:"detection_rate"`

	DataPoints   int     `gorm:"not null;default:0" json:"data_points"`
	EARThreshold float64 `gorm:"not null;default:0.21" json:"ear_threshold"`

	// Распределение направлений взгляда, сериализованное в JSON
	GazeDistribution string `gorm:"type:text" json:"-"`

	Notes  string `gorm:"type:text" json:"notes,omitempty"`
	Status string `gorm:"type:varchar(32);default:'completed'" json:"status"`

	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`

	// Обратная связь с пользователем
	User User `gorm:"foreignKey:UserID;references:ID" json:"-"`
}

// TableName указывает имя таблицы для EyeTrackingSession
func (EyeTrackingSession) TableName() string {
	return "eye_tracking_sessions"
}

// SetGazeDistribution сериализует распределение взгляда в JSON поле
func (s *EyeTrackingSession) SetGazeDistribution(distribution map[string]int) error {
	data, err := json.Marshal(distribution)
	if err != nil {
		return err
	}
	s.GazeDistribution = string(data)
	return nil
}

// GazeDistributionMap десериализует распределение взгляда из JSON поля
func (s *EyeTrackingSession) GazeDistributionMap() map[string]int {
	if s.GazeDistribution == "" {
		return map[string]int{}
	}
	distribution := map[string]int{}
	if err := json.Unmarshal([]byte(s.GazeDistribution), &distribution); err != nil {
		return map[string]int{}
	}
	return distribution
}
