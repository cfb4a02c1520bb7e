package service

import (
	"sort"

	"netracare-go/internal/model"
	"netracare-go/internal/repository"
	"netracare-go/internal/vision"

	"github.com/sirupsen/logrus"
)

// VisionService тесты цветового зрения и остроты зрения
type VisionService struct {
	resultRepo repository.ResultRepository
	logger     *logrus.Logger
}

// NewVisionService создает новый сервис тестов зрения
func NewVisionService(resultRepo repository.ResultRepository, logger *logrus.Logger) *VisionService {
	return &VisionService{
		resultRepo: resultRepo,
		logger:     logger,
	}
}

// Plates возвращает метаданные таблиц Ишихары без правильных ответов
func (s *VisionService) Plates() []*PlateResponse {
	numbers := vision.PlateNumbers()
	sort.Ints(numbers)

	plates := make([]*PlateResponse, 0, len(numbers))
	for _, n := range numbers {
		meta, err := vision.GetPlateMetadata(n)
		if err != nil {
			continue
		}
		plates = append(plates, &PlateResponse{
			PlateNumber: n,
			Options:     meta.Options,
			Description: meta.Description,
			Difficulty:  meta.Difficulty,
			PlateType:   meta.PlateType,
		})
	}
	return plates
}

// SubmitColourVision проверяет ответы теста цветового зрения,
// классифицирует результат и сохраняет его
func (s *VisionService) SubmitColourVision(userID uint, req *ColourVisionRequest) (*ColourVisionResponse, error) {
	validation, err := vision.ValidateAnswers(req.PlateIDs, req.UserAnswers)
	if err != nil {
		return nil, err
	}

	classification := vision.ClassifyResult(validation.Score, validation.ControlPlateFailed, validation.MissedPlateTypes)

	result := &model.ColourVisionResult{
		UserID:             userID,
		CorrectCount:       validation.CorrectCount,
		TotalPlates:        validation.TotalPlates,
		Score:              validation.Score,
		ControlPlateFailed: validation.ControlPlateFailed,
		Classification:     classification,
	}

	if err := s.resultRepo.CreateColourVision(result); err != nil {
		return nil, err
	}

	s.logger.WithFields(logrus.Fields{
		"user_id": userID,
		"score":   validation.Score,
	}).Info("Результат теста цветового зрения сохранен")

	return &ColourVisionResponse{
		CorrectCount:       validation.CorrectCount,
		TotalPlates:        validation.TotalPlates,
		Score:              validation.Score,
		ControlPlateFailed: validation.ControlPlateFailed,
		Classification:     classification,
		CorrectAnswers:     validation.CorrectAnswers,
		Warning:            validation.Warning,
	}, nil
}

// ListColourVision возвращает историю тестов цветового зрения пользователя
func (s *VisionService) ListColourVision(userID uint, limit, offset int) ([]*model.ColourVisionResult, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return s.resultRepo.ListColourVisionByUser(userID, limit, offset)
}

// SubmitVisualAcuity вычисляет logMAR, нотацию Снеллена и тяжесть
// нарушения по результатам теста остроты зрения и сохраняет их
func (s *VisionService) SubmitVisualAcuity(userID uint, req *VisualAcuityRequest) (*VisualAcuityResponse, error) {
	logmar, err := vision.CalculateLogMAR(req.CorrectCount, req.TotalLetters)
	if err != nil {
		return nil, err
	}

	snellen := vision.LogMARToSnellen(logmar)
	severity := vision.ClassifySeverity(logmar)

	result := &model.VisualAcuityResult{
		UserID:       userID,
		CorrectCount: req.CorrectCount,
		TotalLetters: req.TotalLetters,
		LogMAR:       logmar,
		Snellen:      snellen,
		Severity:     severity,
	}

	if err := s.resultRepo.CreateVisualAcuity(result); err != nil {
		return nil, err
	}

	s.logger.WithFields(logrus.Fields{
		"user_id": userID,
		"logmar":  logmar,
	}).Info("Результат теста остроты зрения сохранен")

	return &VisualAcuityResponse{
		CorrectCount: req.CorrectCount,
		TotalLetters: req.TotalLetters,
		LogMAR:       logmar,
		Snellen:      snellen,
		Severity:     severity,
	}, nil
}

// ListVisualAcuity возвращает историю тестов остроты зрения пользователя
func (s *VisionService) ListVisualAcuity(userID uint, limit, offset int) ([]*model.VisualAcuityResult, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return s.resultRepo.ListVisualAcuityByUser(userID, limit, offset)
}
