package model

import "time"

// ColourVisionResult представляет результат теста цветового зрения (Ишихара)
type ColourVisionResult struct {
	ID                 uint    `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID             uint    `gorm:"not null;index" json:"user_id"`
	CorrectCount       int     `gorm:"not null" json:"correct_count"`
	TotalPlates        int     `gorm:"not null" json:"total_plates"`
	Score              int     `gorm:"not null" json:"score"`
	ControlPlateFailed bool    `gorm:"not null;default:false" json:"control_plate_failed"`
	Classification     string  `gorm:"type:varchar(120)" json:"classification"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`

	User User `gorm:"foreignKey:UserID;references:ID" json:"-"`
}

// TableName указывает имя таблицы для ColourVisionResult
func (ColourVisionResult) TableName() string {
	return "colour_vision_results"
}

// VisualAcuityResult представляет результат теста остроты зрения
type VisualAcuityResult struct {
	ID           uint    `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID       uint    `gorm:"not null;index" json:"user_id"`
	CorrectCount int     `gorm:"not null" json:"correct_count"`
	TotalLetters int     `gorm:"not null" json:"total_letters"`
	LogMAR       float64 `gorm:"not null" json:"logmar"`
	Snellen      string  `gorm:"type:varchar(16)" json:"snellen"`
	Severity     string  `gorm:"type:varchar(64)" json:"severity"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`

	User User `gorm:"foreignKey:UserID;references:ID" json:"-"`
}

// TableName указывает имя таблицы для VisualAcuityResult
func (VisualAcuityResult) TableName() string {
	return "visual_acuity_results"
}
