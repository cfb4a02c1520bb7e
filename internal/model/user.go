package model

import "time"

// User представляет пользователя в базе данных
type User struct {
	ID           uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Name         string `gorm:"type:varchar(120);not null" json:"name"`
	Email        string `gorm:"type:varchar(120);uniqueIndex;not null" json:"email"`
	PasswordHash string `gorm:"type:varchar(255);not null" json:"-"`

	// Данные профиля (используются страницей профиля)
	Age int    `gorm:"default:0" json:"age,omitempty"`
	Sex string `gorm:"type:varchar(20)" json:"sex,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

// TableName указывает имя таблицы для User
func (User) TableName() string {
	return "users"
}
