package service

import (
	"time"

	"netracare-go/internal/model"
	"netracare-go/internal/tracking"
	"netracare-go/internal/vision"
)

// CreateSessionRequest запрос на создание сессии трекинга
type CreateSessionRequest struct {
	SessionName string `json:"session_name"`
	Notes       string `json:"notes"`
}

// SessionCreatedResponse ответ на создание сессии
type SessionCreatedResponse struct {
	SessionID    string  `json:"session_id"`
	SessionName  string  `json:"session_name"`
	StartTime    string  `json:"start_time"`
	EARThreshold float64 `json:"ear_threshold"`
}

// FrameResponse результат обработки одного кадра
type FrameResponse struct {
	FaceDetected bool                  `json:"face_detected"`
	FramesTotal  int                   `json:"frames_total"`
	Record       *tracking.FrameRecord `json:"record,omitempty"`
}

// SessionResponse сохраненная сессия в представлении API
type SessionResponse struct {
	ID                 string                     `json:"id"`
	SessionName        string                     `json:"session_name"`
	DurationSeconds    float64                    `json:"duration_seconds"`
	StartTime          time.Time                  `json:"start_time"`
	EndTime            time.Time                  `json:"end_time"`
	TotalBlinks        int                        `json:"total_blinks"`
	BlinkRatePerMinute float64                    `json:"blink_rate_per_minute"`
	EARStatistics      tracking.EARStatistics     `json:"ear_statistics"`
	GazeDistribution   map[string]int             `json:"gaze_distribution"`
	TotalFrames        int                        `json:"total_frames"`
	FramesWithFace     int                        `json:"frames_with_face"`
	DetectionRate      float64                    `json:"detection_rate"`
	DataPoints         int                        `json:"data_points"`
	EARThreshold       float64                    `json:"ear_threshold"`
	Notes              string                     `json:"notes,omitempty"`
	Status             string                     `json:"status"`
	CreatedAt          time.Time                  `json:"created_at"`
}

// SessionListResponse список сессий с пагинацией
type SessionListResponse struct {
	Sessions []*SessionResponse `json:"sessions"`
	Total    int64              `json:"total"`
	Limit    int                `json:"limit"`
	Offset   int                `json:"offset"`
}

// sessionToResponse конвертирует модель БД в представление API
func sessionToResponse(s *model.EyeTrackingSession) *SessionResponse {
	return &SessionResponse{
		ID:                 s.ID,
		SessionName:        s.SessionName,
		DurationSeconds:    s.DurationSeconds,
		StartTime:          s.StartTime,
		EndTime:            s.EndTime,
		TotalBlinks:        s.TotalBlinks,
		BlinkRatePerMinute: s.BlinkRatePerMinute,
		EARStatistics: tracking.EARStatistics{
			LeftEye: tracking.EARStats{
				Mean: s.LeftEyeEARMean, Std: s.LeftEyeEARStd,
				Min: s.LeftEyeEARMin, Max: s.LeftEyeEARMax,
			},
			RightEye: tracking.EARStats{
				Mean: s.RightEyeEARMean, Std: s.RightEyeEARStd,
				Min: s.RightEyeEARMin, Max: s.RightEyeEARMax,
			},
			Average: tracking.EARStats{
				Mean: s.AverageEARMean, Std: s.AverageEARStd,
				Min: s.AverageEARMin, Max: s.AverageEARMax,
			},
		},
		GazeDistribution: s.GazeDistributionMap(),
		TotalFrames:      s.TotalFrames,
		FramesWithFace:   s.FramesWithFace,
		DetectionRate:    s.DetectionRate,
		DataPoints:       s.DataPoints,
		EARThreshold:     s.EARThreshold,
		Notes:            s.Notes,
		Status:           s.Status,
		CreatedAt:        s.CreatedAt,
	}
}

// SignupRequest запрос на регистрацию пользователя
type SignupRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Age      int    `json:"age"`
	Sex      string `json:"sex"`
}

// LoginRequest запрос на вход
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// AuthResponse ответ с токеном доступа
type AuthResponse struct {
	AccessToken string        `json:"access_token"`
	TokenType   string        `json:"token_type"`
	User        *UserResponse `json:"user"`
}

// UserResponse публичное представление пользователя
type UserResponse struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Age   int    `json:"age,omitempty"`
	Sex   string `json:"sex,omitempty"`
}

// userToResponse конвертирует модель пользователя в публичное представление
func userToResponse(u *model.User) *UserResponse {
	return &UserResponse{
		ID:    u.ID,
		Name:  u.Name,
		Email: u.Email,
		Age:   u.Age,
		Sex:   u.Sex,
	}
}

// PlateResponse метаданные таблицы Ишихары без правильного ответа
type PlateResponse struct {
	PlateNumber int              `json:"plate_number"`
	Options     []string         `json:"options"`
	Description string           `json:"description"`
	Difficulty  string           `json:"difficulty"`
	PlateType   vision.PlateType `json:"plate_type"`
}

// ColourVisionRequest ответы пользователя на тест цветового зрения
type ColourVisionRequest struct {
	PlateIDs    []int    `json:"plate_ids" binding:"required"`
	UserAnswers []string `json:"user_answers" binding:"required"`
}

// ColourVisionResponse результат теста цветового зрения
type ColourVisionResponse struct {
	CorrectCount       int      `json:"correct_count"`
	TotalPlates        int      `json:"total_plates"`
	Score              int      `json:"score"`
	ControlPlateFailed bool     `json:"control_plate_failed"`
	Classification     string   `json:"classification"`
	CorrectAnswers     []string `json:"correct_answers"`
	Warning            string   `json:"warning,omitempty"`
}

// VisualAcuityRequest данные теста остроты зрения
type VisualAcuityRequest struct {
	CorrectCount int `json:"correct_count"`
	TotalLetters int `json:"total_letters" binding:"required"`
}

// VisualAcuityResponse результат теста остроты зрения
type VisualAcuityResponse struct {
	CorrectCount int     `json:"correct_count"`
	TotalLetters int     `json:"total_letters"`
	LogMAR       float64 `json:"logmar"`
	Snellen      string  `json:"snellen"`
	Severity     string  `json:"severity"`
}

// FatigueResponse результат классификации усталости
type FatigueResponse struct {
	Class       string  `json:"class"`
	Probability float64 `json:"probability"`
}
