package tracking

import (
	"errors"
	"math"
)

// ErrEmptySession статистика запрошена по сессии без данных
var ErrEmptySession = errors.New("no tracking data available")

// EARStats статистика значений EAR: среднее, стандартное отклонение, минимум, максимум
type EARStats struct {
	Mean float64 `json:"mean"`
	Std  float64 `json:"std"`
	Min  float64 `json:"min"`
	Max  float64 `json:"max"`
}

// EARStatistics статистика EAR по левому глазу, правому глазу и усредненному значению
type EARStatistics struct {
	LeftEye  EARStats `json:"left_eye"`
	RightEye EARStats `json:"right_eye"`
	Average  EARStats `json:"average"`
}

// SessionStatistics итоговая статистика сессии трекинга.
// Форма полей — контракт со слоем персистентности, менять нельзя.
type SessionStatistics struct {
	DurationSeconds    float64               `json:"duration_seconds"`
	TotalBlinks        int                   `json:"total_blinks"`
	BlinkRatePerMinute float64               `json:"blink_rate_per_minute"`
	EARStatistics      EARStatistics         `json:"ear_statistics"`
	GazeDistribution   map[GazeDirection]int `json:"gaze_distribution"`
	DataPoints         int                   `json:"data_points"`
}

// Statistics вычисляет статистику сессии по накопленному состоянию.
// Чистая функция: состояние не изменяется, результат считается заново
// при каждом вызове, поэтому статистику можно запрашивать и по ходу сессии.
// Возвращает ErrEmptySession, если история пуста.
func Statistics(state *TrackerState) (*SessionStatistics, error) {
	if len(state.BlinkHistory) == 0 {
		return nil, ErrEmptySession
	}

	// Длительность сессии по временным меткам первой и последней записи
	startTime := state.BlinkHistory[0].Timestamp
	endTime := state.BlinkHistory[len(state.BlinkHistory)-1].Timestamp
	duration := endTime - startTime

	totalBlinks := state.TotalBlinks()

	var blinkRate float64
	if duration > 0 {
		blinkRate = (float64(totalBlinks) / duration) * 60
	}

	leftEARs := make([]float64, len(state.BlinkHistory))
	rightEARs := make([]float64, len(state.BlinkHistory))
	avgEARs := make([]float64, len(state.BlinkHistory))
	for i, sample := range state.BlinkHistory {
		leftEARs[i] = sample.LeftEAR
		rightEARs[i] = sample.RightEAR
		avgEARs[i] = sample.AvgEAR
	}

	// Распределение направлений взгляда.
	// Отсутствующие направления не попадают в карту.
	gazeCounts := make(map[GazeDirection]int)
	for _, sample := range state.MovementHistory {
		gazeCounts[sample.GazeDirection]++
	}

	return &SessionStatistics{
		DurationSeconds:    round2(duration),
		TotalBlinks:        totalBlinks,
		BlinkRatePerMinute: round2(blinkRate),
		EARStatistics: EARStatistics{
			LeftEye:  earStats(leftEARs),
			RightEye: earStats(rightEARs),
			Average:  earStats(avgEARs),
		},
		GazeDistribution: gazeCounts,
		DataPoints:       len(state.BlinkHistory),
	}, nil
}

// earStats вычисляет статистику по набору значений EAR
func earStats(values []float64) EARStats {
	return EARStats{
		Mean: round3(mean(values)),
		Std:  round3(std(values)),
		Min:  round3(minValue(values)),
		Max:  round3(maxValue(values)),
	}
}

// mean вычисляет среднее арифметическое
func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// std вычисляет стандартное отклонение (по популяции)
func std(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	m := mean(values)
	sum := 0.0
	for _, v := range values {
		d := v - m
		sum += d * d
	}
	return math.Sqrt(sum / float64(len(values)))
}

func minValue(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	min := values[0]
	for _, v := range values[1:] {
		if v < min {
			min = v
		}
	}
	return min
}

func maxValue(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	max := values[0]
	for _, v := range values[1:] {
		if v > max {
			max = v
		}
	}
	return max
}

// round2 округляет до 2 знаков
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// round3 округляет до 3 знаков
func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}
