package vision

import (
	"fmt"
	"math"
)

// snellenMapping перевод logMAR в нотацию Снеллена.
// Значения соответствуют клиническим стандартам (таблицы ETDRS,
// классификация нарушений зрения ВОЗ), а не придуманы системой.
var snellenMapping = map[float64]string{
	0.0: "20/20",
	0.1: "20/25",
	0.2: "20/32",
	0.3: "20/40",
	0.4: "20/50",
	0.5: "20/63",
	1.0: "20/200",
}

// ValidateAcuityInput проверяет входные данные теста остроты зрения
func ValidateAcuityInput(correct, total int) error {
	if total <= 0 {
		return fmt.Errorf("total must be greater than zero, got %d", total)
	}
	if correct < 0 || correct > total {
		return fmt.Errorf("correct answers out of range: %d of %d", correct, total)
	}
	return nil
}

// CalculateLogMAR вычисляет значение logMAR по доле правильных ответов
func CalculateLogMAR(correct, total int) (float64, error) {
	if err := ValidateAcuityInput(correct, total); err != nil {
		return 0, err
	}
	if correct == 0 {
		return 1.0, nil
	}
	logmar := -math.Log10(float64(correct) / float64(total))
	return math.Round(logmar*100) / 100, nil
}

// LogMARToSnellen переводит logMAR в нотацию Снеллена по ближайшему ключу
func LogMARToSnellen(logmar float64) string {
	closest := 0.0
	bestDiff := math.Inf(1)
	for key := range snellenMapping {
		diff := math.Abs(key - logmar)
		if diff < bestDiff || (diff == bestDiff && key < closest) {
			closest = key
			bestDiff = diff
		}
	}
	return snellenMapping[closest]
}

// ClassifySeverity классифицирует тяжесть нарушения зрения по logMAR
func ClassifySeverity(logmar float64) string {
	switch {
	case logmar <= 0.1:
		return "Normal"
	case logmar <= 0.3:
		return "Mild Vision Loss"
	case logmar <= 0.5:
		return "Moderate Vision Loss"
	default:
		return "Severe Vision Loss"
	}
}
