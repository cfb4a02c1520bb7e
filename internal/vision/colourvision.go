package vision

import "fmt"

// PlateType тип таблицы Ишихары
type PlateType string

// Типы таблиц
const (
	PlateControl    PlateType = "control"     // контрольная, видна всем
	PlateRedGreen   PlateType = "red_green"   // тест красно-зеленого дефицита
	PlateBlueYellow PlateType = "blue_yellow" // тест сине-желтого дефицита
	PlateTotal      PlateType = "total"       // тест полной цветовой слепоты
)

// PlateMetadata метаданные таблицы Ишихары
type PlateMetadata struct {
	CorrectAnswer string    `json:"correct_answer"`
	Options       []string  `json:"options"`
	Description   string    `json:"description"`
	Difficulty    string    `json:"difficulty"`
	PlateType     PlateType `json:"plate_type"`
}

// ishiharaPlates метаданные таблиц с правильными ответами и вариантами выбора.
// Должны соответствовать фактическому набору изображений.
var ishiharaPlates = map[int]PlateMetadata{
	0: {CorrectAnswer: "0", Options: []string{"0", "6", "8", "Nothing"}, Description: "Control plate - visible to all", Difficulty: "easy", PlateType: PlateControl},
	1: {CorrectAnswer: "1", Options: []string{"1", "7", "11", "Nothing"}, Description: "Tests red-green deficiency", Difficulty: "easy", PlateType: PlateRedGreen},
	2: {CorrectAnswer: "2", Options: []string{"2", "5", "12", "Nothing"}, Description: "Tests red-green deficiency", Difficulty: "easy", PlateType: PlateRedGreen},
	3: {CorrectAnswer: "3", Options: []string{"3", "5", "8", "Nothing"}, Description: "Tests red-green deficiency", Difficulty: "medium", PlateType: PlateRedGreen},
	4: {CorrectAnswer: "4", Options: []string{"4", "9", "14", "Nothing"}, Description: "Tests red-green deficiency", Difficulty: "medium", PlateType: PlateRedGreen},
	5: {CorrectAnswer: "5", Options: []string{"5", "3", "6", "Nothing"}, Description: "Tests red-green deficiency", Difficulty: "medium", PlateType: PlateRedGreen},
	6: {CorrectAnswer: "6", Options: []string{"6", "8", "9", "Nothing"}, Description: "Tests red-green deficiency", Difficulty: "medium", PlateType: PlateRedGreen},
	7: {CorrectAnswer: "7", Options: []string{"7", "1", "17", "Nothing"}, Description: "Tests blue-yellow deficiency", Difficulty: "hard", PlateType: PlateBlueYellow},
	8: {CorrectAnswer: "8", Options: []string{"8", "3", "6", "Nothing"}, Description: "Tests blue-yellow deficiency", Difficulty: "hard", PlateType: PlateBlueYellow},
	9: {CorrectAnswer: "9", Options: []string{"9", "6", "8", "Nothing"}, Description: "Tests total color blindness", Difficulty: "hard", PlateType: PlateTotal},
}

// ValidationResult результат проверки ответов теста цветового зрения
type ValidationResult struct {
	CorrectAnswers     []string          `json:"correct_answers"`
	CorrectCount       int               `json:"correct_count"`
	TotalPlates        int               `json:"total_plates"`
	Score              int               `json:"score"`
	ControlPlateFailed bool              `json:"control_plate_failed"`
	MissedPlateTypes   map[PlateType]int `json:"missed_plate_types"`
	Warning            string            `json:"warning,omitempty"`
}

// GetPlateMetadata возвращает метаданные таблицы по номеру
func GetPlateMetadata(plateNumber int) (PlateMetadata, error) {
	meta, ok := ishiharaPlates[plateNumber]
	if !ok {
		return PlateMetadata{}, fmt.Errorf("invalid plate number: %d, must be between 0 and 9", plateNumber)
	}
	return meta, nil
}

// PlateNumbers возвращает список доступных номеров таблиц
func PlateNumbers() []int {
	numbers := make([]int, 0, len(ishiharaPlates))
	for n := range ishiharaPlates {
		numbers = append(numbers, n)
	}
	return numbers
}

// ValidateAnswers проверяет ответы пользователя против правильных
func ValidateAnswers(plateIDs []int, userAnswers []string) (*ValidationResult, error) {
	if len(plateIDs) != len(userAnswers) {
		return nil, fmt.Errorf("mismatch between plate_ids (%d) and user_answers (%d) length", len(plateIDs), len(userAnswers))
	}

	result := &ValidationResult{
		CorrectAnswers: make([]string, 0, len(plateIDs)),
		TotalPlates:    len(plateIDs),
		MissedPlateTypes: map[PlateType]int{
			PlateRedGreen:   0,
			PlateBlueYellow: 0,
			PlateTotal:      0,
		},
	}

	for i, plateID := range plateIDs {
		meta, err := GetPlateMetadata(plateID)
		if err != nil {
			return nil, err
		}

		result.CorrectAnswers = append(result.CorrectAnswers, meta.CorrectAnswer)

		if userAnswers[i] == meta.CorrectAnswer {
			result.CorrectCount++
			continue
		}

		// Ошибка на контрольной таблице делает тест ненадежным
		if plateID == 0 {
			result.ControlPlateFailed = true
		} else if _, tracked := result.MissedPlateTypes[meta.PlateType]; tracked {
			result.MissedPlateTypes[meta.PlateType]++
		}
	}

	result.Score = CalculateScore(result.CorrectCount, result.TotalPlates)

	if result.ControlPlateFailed {
		result.Warning = "Control plate (Plate 0) was incorrect. Test results may be unreliable."
	}

	return result, nil
}

// CalculateScore вычисляет процент правильных ответов
func CalculateScore(correctCount, totalPlates int) int {
	if totalPlates <= 0 {
		return 0
	}
	return int(float64(correctCount)/float64(totalPlates)*100 + 0.5)
}

// ClassifyResult классифицирует результат теста и определяет тип дефицита
func ClassifyResult(score int, controlPlateFailed bool, missedPlateTypes map[PlateType]int) string {
	// Ошибка на контрольной таблице — результаты недостоверны
	if controlPlateFailed {
		return "Test Unreliable - Please Retake"
	}

	if score >= 90 {
		return "Normal Color Vision"
	}

	if missedPlateTypes != nil {
		redGreenMissed := missedPlateTypes[PlateRedGreen]
		blueYellowMissed := missedPlateTypes[PlateBlueYellow]
		totalMissed := missedPlateTypes[PlateTotal]

		// Полная цветовая слепота (монохромазия)
		if totalMissed > 0 || score < 30 {
			return "Total Color Blindness (Monochromacy)"
		}

		if redGreenMissed > 0 && blueYellowMissed > 0 {
			if redGreenMissed > blueYellowMissed {
				return "Red-Green Color Deficiency (Deuteranomaly/Protanomaly)"
			}
			return "Blue-Yellow Color Deficiency (Tritanomaly)"
		}

		if redGreenMissed > 0 {
			switch {
			case score < 50:
				return "Severe Red-Green Deficiency (Protanopia/Deuteranopia)"
			case score < 70:
				return "Moderate Red-Green Deficiency"
			default:
				return "Mild Red-Green Deficiency"
			}
		}

		if blueYellowMissed > 0 {
			switch {
			case score < 50:
				return "Severe Blue-Yellow Deficiency (Tritanopia)"
			case score < 70:
				return "Moderate Blue-Yellow Deficiency"
			default:
				return "Mild Blue-Yellow Deficiency"
			}
		}
	}

	// Классификация только по проценту, если типы промахов неизвестны
	switch {
	case score >= 80:
		return "Borderline - Possible Mild Deficiency"
	case score >= 60:
		return "Mild Color Vision Deficiency"
	case score >= 40:
		return "Moderate Color Vision Deficiency"
	default:
		return "Severe Color Vision Deficiency"
	}
}
