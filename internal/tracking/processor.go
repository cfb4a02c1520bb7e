package tracking

import "fmt"

// BlinkSample данные детекции моргания за один кадр
type BlinkSample struct {
	Timestamp  float64 `json:"timestamp"`
	LeftEAR    float64 `json:"left_ear"`
	RightEAR   float64 `json:"right_ear"`
	AvgEAR     float64 `json:"avg_ear"`
	IsBlinking bool    `json:"is_blinking"`
	BlinkCount int     `json:"blink_count"`
}

// GazeSample данные движения глаз за один кадр
type GazeSample struct {
	Timestamp     float64       `json:"timestamp"`
	LeftGazeX     float64       `json:"left_gaze_x"`
	LeftGazeY     float64       `json:"left_gaze_y"`
	RightGazeX    float64       `json:"right_gaze_x"`
	RightGazeY    float64       `json:"right_gaze_y"`
	GazeDirection GazeDirection `json:"gaze_direction"`
}

// FrameRecord итоговая запись об успешно обработанном кадре.
// Неизменяема после создания.
type FrameRecord struct {
	Timestamp     float64       `json:"timestamp"`
	LeftEAR       float64       `json:"left_ear"`
	RightEAR      float64       `json:"right_ear"`
	AvgEAR        float64       `json:"avg_ear"`
	IsBlinking    bool          `json:"is_blinking"`
	BlinkCount    int           `json:"blink_count"`
	GazeDirection GazeDirection `json:"gaze_direction"`
	LeftGazeX     float64       `json:"left_gaze_x"`
	LeftGazeY     float64       `json:"left_gaze_y"`
	RightGazeX    float64       `json:"right_gaze_x"`
	RightGazeY    float64       `json:"right_gaze_y"`
}

// TrackerState накопленное состояние одной сессии трекинга.
// Мутируется только потоком обработки кадров; агрегация статистики
// читает его, не изменяя. Несколько независимых сессий представляются
// несколькими независимыми экземплярами.
type TrackerState struct {
	Blink           *BlinkDetector
	BlinkHistory    []BlinkSample
	MovementHistory []GazeSample
}

// NewTrackerState создает пустое состояние трекинга
func NewTrackerState(earThreshold float64, consecFrames int) *TrackerState {
	return &TrackerState{
		Blink: NewBlinkDetector(earThreshold, consecFrames),
	}
}

// TotalBlinks возвращает количество зафиксированных морганий
func (s *TrackerState) TotalBlinks() int {
	return s.Blink.TotalBlinks()
}

// Reset обнуляет счетчики и очищает истории для переиспользования сессии
func (s *TrackerState) Reset() {
	s.Blink.Reset()
	s.BlinkHistory = s.BlinkHistory[:0]
	s.MovementHistory = s.MovementHistory[:0]
}

// FrameProcessor покадровый конвейер анализа: извлечение подмножеств
// ориентиров, вычисление EAR, детекция моргания и классификация взгляда
type FrameProcessor struct {
	gaze  *GazeClassifier
	state *TrackerState
}

// Config параметры конвейера обработки кадров
type Config struct {
	EARThreshold        float64
	ConsecFrames        int
	HorizontalThreshold float64
	VerticalThreshold   float64
}

// NewFrameProcessor создает новый конвейер со свежим состоянием
func NewFrameProcessor(cfg Config) *FrameProcessor {
	return &FrameProcessor{
		gaze:  NewGazeClassifier(cfg.HorizontalThreshold, cfg.VerticalThreshold),
		state: NewTrackerState(cfg.EARThreshold, cfg.ConsecFrames),
	}
}

// State возвращает состояние трекинга этого конвейера
func (p *FrameProcessor) State() *TrackerState {
	return p.state
}

// Reset сбрасывает состояние трекинга
func (p *FrameProcessor) Reset() {
	p.state.Reset()
}

// Process обрабатывает результат детекции ориентиров одного кадра.
//
// Если лицо не обнаружено (landmarks == nil), запись не создается и
// состояние не меняется — кадр учитывается только во внешнем счетчике
// обработанных кадров. Timestamp задается вызывающей стороной в секундах.
func (p *FrameProcessor) Process(landmarks []Point, timestamp float64) (*FrameRecord, error) {
	if landmarks == nil {
		return nil, nil
	}

	// Извлекаем контуры глаз
	leftEye, err := ExtractPoints(landmarks, LeftEyeIndices)
	if err != nil {
		return nil, fmt.Errorf("failed to extract left eye contour: %w", err)
	}
	rightEye, err := ExtractPoints(landmarks, RightEyeIndices)
	if err != nil {
		return nil, fmt.Errorf("failed to extract right eye contour: %w", err)
	}

	// Вычисляем EAR для обоих глаз
	leftEAR, err := EAR(leftEye)
	if err != nil {
		return nil, fmt.Errorf("failed to compute left EAR: %w", err)
	}
	rightEAR, err := EAR(rightEye)
	if err != nil {
		return nil, fmt.Errorf("failed to compute right EAR: %w", err)
	}

	// Детекция моргания
	isBlinking, avgEAR := p.state.Blink.Observe(leftEAR, rightEAR)

	// Извлекаем радужку и уголки глаз для оценки взгляда
	leftIris, err := ExtractPoints(landmarks, LeftIrisIndices)
	if err != nil {
		return nil, fmt.Errorf("failed to extract left iris: %w", err)
	}
	rightIris, err := ExtractPoints(landmarks, RightIrisIndices)
	if err != nil {
		return nil, fmt.Errorf("failed to extract right iris: %w", err)
	}
	leftCorners, err := ExtractPoints(landmarks, LeftCornerIndices)
	if err != nil {
		return nil, fmt.Errorf("failed to extract left eye corners: %w", err)
	}
	rightCorners, err := ExtractPoints(landmarks, RightCornerIndices)
	if err != nil {
		return nil, fmt.Errorf("failed to extract right eye corners: %w", err)
	}

	direction := p.gaze.Classify(leftIris, rightIris, leftCorners, rightCorners)

	leftIrisCenter := Centroid(leftIris)
	rightIrisCenter := Centroid(rightIris)

	record := &FrameRecord{
		Timestamp:     timestamp,
		LeftEAR:       leftEAR,
		RightEAR:      rightEAR,
		AvgEAR:        avgEAR,
		IsBlinking:    isBlinking,
		BlinkCount:    p.state.Blink.TotalBlinks(),
		GazeDirection: direction,
		LeftGazeX:     leftIrisCenter.X,
		LeftGazeY:     leftIrisCenter.Y,
		RightGazeX:    rightIrisCenter.X,
		RightGazeY:    rightIrisCenter.Y,
	}

	p.state.BlinkHistory = append(p.state.BlinkHistory, BlinkSample{
		Timestamp:  timestamp,
		LeftEAR:    leftEAR,
		RightEAR:   rightEAR,
		AvgEAR:     avgEAR,
		IsBlinking: isBlinking,
		BlinkCount: record.BlinkCount,
	})

	p.state.MovementHistory = append(p.state.MovementHistory, GazeSample{
		Timestamp:     timestamp,
		LeftGazeX:     leftIrisCenter.X,
		LeftGazeY:     leftIrisCenter.Y,
		RightGazeX:    rightIrisCenter.X,
		RightGazeY:    rightIrisCenter.Y,
		GazeDirection: direction,
	})

	return record, nil
}
