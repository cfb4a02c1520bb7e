package service

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"netracare-go/internal/client"
	"netracare-go/internal/config"
	"netracare-go/internal/model"
	"netracare-go/internal/repository"
	"netracare-go/internal/tracking"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// ErrSessionNotFound активная сессия с таким ID не найдена
var ErrSessionNotFound = errors.New("tracking session not found")

// LandmarkDetector абстракция детектора ориентиров лица
type LandmarkDetector interface {
	DetectLandmarks(filename string, imageData []byte) (*client.LandmarkResponse, error)
	PredictFatigue(filename string, imageData []byte) (*client.FatiguePrediction, error)
}

// activeSession сессия трекинга, идущая в памяти сервера.
// Кадры одной сессии обрабатываются последовательно под мьютексом.
type activeSession struct {
	mu sync.Mutex

	id     string
	userID uint
	name   string
	notes  string

	processor *tracking.FrameProcessor
	startTime time.Time

	framesTotal    int
	framesWithFace int
	earThreshold   float64
}

// TrackingService управляет жизненным циклом сессий трекинга глаз:
// создание, покадровая обработка, статистика, финализация и персистентность
type TrackingService struct {
	sessionRepo repository.SessionRepository
	detector    LandmarkDetector
	logger      *logrus.Logger
	cfg         *config.Config

	mu     sync.Mutex
	active map[string]*activeSession
}

// NewTrackingService создает новый сервис трекинга
func NewTrackingService(
	sessionRepo repository.SessionRepository,
	detector LandmarkDetector,
	cfg *config.Config,
	logger *logrus.Logger,
) *TrackingService {
	return &TrackingService{
		sessionRepo: sessionRepo,
		detector:    detector,
		logger:      logger,
		cfg:         cfg,
		active:      make(map[string]*activeSession),
	}
}

// StartSession создает новую активную сессию трекинга
func (s *TrackingService) StartSession(userID uint, req *CreateSessionRequest) *SessionCreatedResponse {
	session := &activeSession{
		id:     uuid.New().String(),
		userID: userID,
		name:   req.SessionName,
		notes:  req.Notes,
		processor: tracking.NewFrameProcessor(tracking.Config{
			EARThreshold:        s.cfg.Tracking.EARThreshold,
			ConsecFrames:        s.cfg.Tracking.ConsecFrames,
			HorizontalThreshold: s.cfg.Tracking.GazeHorizontalThreshold,
			VerticalThreshold:   s.cfg.Tracking.GazeVerticalThreshold,
		}),
		startTime:    time.Now(),
		earThreshold: s.cfg.Tracking.EARThreshold,
	}

	s.mu.Lock()
	s.active[session.id] = session
	s.mu.Unlock()

	s.logger.WithFields(logrus.Fields{
		"session_id": session.id,
		"user_id":    userID,
	}).Info("Сессия трекинга создана")

	return &SessionCreatedResponse{
		SessionID:    session.id,
		SessionName:  session.name,
		StartTime:    session.startTime.Format(time.RFC3339),
		EARThreshold: session.earThreshold,
	}
}

// getActive возвращает активную сессию с проверкой владельца
func (s *TrackingService) getActive(sessionID string, userID uint) (*activeSession, error) {
	s.mu.Lock()
	session, ok := s.active[sessionID]
	s.mu.Unlock()

	if !ok || session.userID != userID {
		return nil, ErrSessionNotFound
	}
	return session, nil
}

// ProcessFrame отправляет кадр на детекцию ориентиров и прогоняет
// результат через конвейер анализа сессии
func (s *TrackingService) ProcessFrame(sessionID string, userID uint, filename string, imageData []byte) (*FrameResponse, error) {
	session, err := s.getActive(sessionID, userID)
	if err != nil {
		return nil, err
	}

	detection, err := s.detector.DetectLandmarks(filename, imageData)
	if err != nil {
		return nil, fmt.Errorf("landmark detection failed: %w", err)
	}

	session.mu.Lock()
	defer session.mu.Unlock()

	session.framesTotal++

	// Кадр без лица учитывается в счетчике, но не меняет состояние анализа
	if !detection.FaceDetected {
		return &FrameResponse{
			FaceDetected: false,
			FramesTotal:  session.framesTotal,
		}, nil
	}

	session.framesWithFace++

	timestamp := float64(time.Now().UnixNano()) / 1e9
	record, err := session.processor.Process(detection.Landmarks, timestamp)
	if err != nil {
		return nil, fmt.Errorf("frame processing failed: %w", err)
	}

	return &FrameResponse{
		FaceDetected: true,
		FramesTotal:  session.framesTotal,
		Record:       record,
	}, nil
}

// Statistics возвращает текущую статистику активной сессии.
// Может вызываться многократно по ходу сессии.
func (s *TrackingService) Statistics(sessionID string, userID uint) (*tracking.SessionStatistics, error) {
	session, err := s.getActive(sessionID, userID)
	if err != nil {
		return nil, err
	}

	session.mu.Lock()
	defer session.mu.Unlock()

	return tracking.Statistics(session.processor.State())
}

// ResetSession обнуляет накопленное состояние активной сессии
func (s *TrackingService) ResetSession(sessionID string, userID uint) error {
	session, err := s.getActive(sessionID, userID)
	if err != nil {
		return err
	}

	session.mu.Lock()
	session.processor.Reset()
	session.framesTotal = 0
	session.framesWithFace = 0
	session.startTime = time.Now()
	session.mu.Unlock()

	s.logger.WithField("session_id", sessionID).Info("Сессия трекинга сброшена")
	return nil
}

// FinalizeSession завершает активную сессию: вычисляет итоговую статистику,
// сохраняет ее в базу данных и удаляет сессию из памяти
func (s *TrackingService) FinalizeSession(sessionID string, userID uint) (*SessionResponse, error) {
	session, err := s.getActive(sessionID, userID)
	if err != nil {
		return nil, err
	}

	session.mu.Lock()
	defer session.mu.Unlock()

	stats, err := tracking.Statistics(session.processor.State())
	if err != nil {
		return nil, err
	}

	endTime := time.Now()

	var detectionRate float64
	if session.framesTotal > 0 {
		detectionRate = float64(session.framesWithFace) / float64(session.framesTotal) * 100
	}

	record := &model.EyeTrackingSession{
		ID:          session.id,
		UserID:      session.userID,
		SessionName: session.name,

		DurationSeconds:    stats.DurationSeconds,
		StartTime:          session.startTime,
		EndTime:            endTime,
		TotalBlinks:        stats.TotalBlinks,
		BlinkRatePerMinute: stats.BlinkRatePerMinute,

		LeftEyeEARMean: stats.EARStatistics.LeftEye.Mean,
		LeftEyeEARStd:  stats.EARStatistics.LeftEye.Std,
		LeftEyeEARMin:  stats.EARStatistics.LeftEye.Min,
		LeftEyeEARMax:  stats.EARStatistics.LeftEye.Max,

		RightEyeEARMean: stats.EARStatistics.RightEye.Mean,
		RightEyeEARStd:  stats.EARStatistics.RightEye.Std,
		RightEyeEARMin:  stats.EARStatistics.RightEye.Min,
		RightEyeEARMax:  stats.EARStatistics.RightEye.Max,

		AverageEARMean: stats.EARStatistics.Average.Mean,
		AverageEARStd:  stats.EARStatistics.Average.Std,
		AverageEARMin:  stats.EARStatistics.Average.Min,
		AverageEARMax:  stats.EARStatistics.Average.Max,

		TotalFrames:    session.framesTotal,
		FramesWithFace: session.framesWithFace,
		DetectionRate:  detectionRate,

		DataPoints:   stats.DataPoints,
		EARThreshold: session.earThreshold,
		Notes:        session.notes,
		Status:       "completed",
	}

	distribution := make(map[string]int, len(stats.GazeDistribution))
	for direction, count := range stats.GazeDistribution {
		distribution[string(direction)] = count
	}
	if err := record.SetGazeDistribution(distribution); err != nil {
		return nil, fmt.Errorf("failed to serialize gaze distribution: %w", err)
	}

	if err := s.sessionRepo.Create(record); err != nil {
		return nil, err
	}

	s.mu.Lock()
	delete(s.active, session.id)
	s.mu.Unlock()

	s.logger.WithFields(logrus.Fields{
		"session_id":   session.id,
		"total_blinks": stats.TotalBlinks,
		"data_points":  stats.DataPoints,
	}).Info("Сессия трекинга завершена и сохранена")

	return sessionToResponse(record), nil
}

// ListSessions возвращает сохраненные сессии пользователя
func (s *TrackingService) ListSessions(userID uint, limit, offset int) (*SessionListResponse, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	sessions, total, err := s.sessionRepo.ListByUser(userID, limit, offset)
	if err != nil {
		return nil, err
	}

	responses := make([]*SessionResponse, 0, len(sessions))
	for _, session := range sessions {
		responses = append(responses, sessionToResponse(session))
	}

	return &SessionListResponse{
		Sessions: responses,
		Total:    total,
		Limit:    limit,
		Offset:   offset,
	}, nil
}

// GetSession возвращает сохраненную сессию по ID
func (s *TrackingService) GetSession(sessionID string, userID uint) (*SessionResponse, error) {
	session, err := s.sessionRepo.GetByID(sessionID, userID)
	if err != nil {
		return nil, err
	}
	return sessionToResponse(session), nil
}

// DeleteSession удаляет сохраненную сессию пользователя
func (s *TrackingService) DeleteSession(sessionID string, userID uint) error {
	return s.sessionRepo.Delete(sessionID, userID)
}

// AnalyzeFatigue классифицирует усталость по одному кадру через CNN сервис
func (s *TrackingService) AnalyzeFatigue(filename string, imageData []byte) (*FatigueResponse, error) {
	prediction, err := s.detector.PredictFatigue(filename, imageData)
	if err != nil {
		return nil, fmt.Errorf("fatigue prediction failed: %w", err)
	}

	return &FatigueResponse{
		Class:       prediction.Class,
		Probability: prediction.Probability,
	}, nil
}
