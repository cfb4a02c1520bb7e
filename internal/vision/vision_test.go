package vision

import (
	"strings"
	"testing"
)

func TestCalculateLogMAR(t *testing.T) {
	tests := []struct {
		correct, total int
		expected       float64
	}{
		{10, 10, 0.0},
		{0, 10, 1.0},
		{5, 10, 0.3},  // -log10(0.5) = 0.301 -> 0.3
		{8, 10, 0.1},  // -log10(0.8) = 0.097 -> 0.1
	}

	for _, tt := range tests {
		got, err := CalculateLogMAR(tt.correct, tt.total)
		if err != nil {
			t.Fatalf("unexpected error for %d/%d: %v", tt.correct, tt.total, err)
		}
		if got != tt.expected {
			t.Fatalf("%d/%d: expected logMAR %v, got %v", tt.correct, tt.total, tt.expected, got)
		}
	}
}

func TestCalculateLogMARInvalidInput(t *testing.T) {
	if _, err := CalculateLogMAR(5, 0); err == nil {
		t.Fatalf("expected error for zero total")
	}
	if _, err := CalculateLogMAR(11, 10); err == nil {
		t.Fatalf("expected error for correct > total")
	}
	if _, err := CalculateLogMAR(-1, 10); err == nil {
		t.Fatalf("expected error for negative correct")
	}
}

func TestLogMARToSnellen(t *testing.T) {
	tests := []struct {
		logmar   float64
		expected string
	}{
		{0.0, "20/20"},
		{0.3, "20/40"},
		{0.72, "20/63"},
		{1.0, "20/200"},
	}

	for _, tt := range tests {
		if got := LogMARToSnellen(tt.logmar); got != tt.expected {
			t.Fatalf("logMAR %v: expected %s, got %s", tt.logmar, tt.expected, got)
		}
	}
}

func TestClassifySeverity(t *testing.T) {
	tests := []struct {
		logmar   float64
		expected string
	}{
		{0.0, "Normal"},
		{0.1, "Normal"},
		{0.3, "Mild Vision Loss"},
		{0.5, "Moderate Vision Loss"},
		{1.0, "Severe Vision Loss"},
	}

	for _, tt := range tests {
		if got := ClassifySeverity(tt.logmar); got != tt.expected {
			t.Fatalf("logMAR %v: expected %s, got %s", tt.logmar, tt.expected, got)
		}
	}
}

func TestValidateAnswersAllCorrect(t *testing.T) {
	plateIDs := []int{0, 1, 2, 3, 4}
	answers := []string{"0", "1", "2", "3", "4"}

	result, err := ValidateAnswers(plateIDs, answers)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.CorrectCount != 5 || result.Score != 100 {
		t.Fatalf("expected 5 correct and score 100, got %d / %d", result.CorrectCount, result.Score)
	}
	if result.ControlPlateFailed {
		t.Fatalf("control plate must not be failed")
	}
}

func TestValidateAnswersControlPlateFailed(t *testing.T) {
	result, err := ValidateAnswers([]int{0, 1}, []string{"8", "1"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !result.ControlPlateFailed {
		t.Fatalf("expected control plate failure")
	}
	if result.Warning == "" {
		t.Fatalf("expected warning on control plate failure")
	}
	if result.MissedPlateTypes[PlateRedGreen] != 0 {
		t.Fatalf("control plate miss must not count as red-green miss")
	}
}

func TestValidateAnswersMissedTypes(t *testing.T) {
	// Промахи на красно-зеленых и сине-желтой таблицах
	result, err := ValidateAnswers([]int{1, 2, 7}, []string{"7", "5", "1"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.MissedPlateTypes[PlateRedGreen] != 2 {
		t.Fatalf("expected 2 red-green misses, got %d", result.MissedPlateTypes[PlateRedGreen])
	}
	if result.MissedPlateTypes[PlateBlueYellow] != 1 {
		t.Fatalf("expected 1 blue-yellow miss, got %d", result.MissedPlateTypes[PlateBlueYellow])
	}
}

func TestValidateAnswersLengthMismatch(t *testing.T) {
	if _, err := ValidateAnswers([]int{0, 1}, []string{"0"}); err == nil {
		t.Fatalf("expected error on length mismatch")
	}
}

func TestValidateAnswersInvalidPlate(t *testing.T) {
	if _, err := ValidateAnswers([]int{42}, []string{"1"}); err == nil {
		t.Fatalf("expected error on invalid plate number")
	}
}

func TestClassifyResult(t *testing.T) {
	if got := ClassifyResult(100, false, nil); got != "Normal Color Vision" {
		t.Fatalf("expected normal vision, got %s", got)
	}

	if got := ClassifyResult(80, true, nil); !strings.Contains(got, "Unreliable") {
		t.Fatalf("expected unreliable classification, got %s", got)
	}

	missed := map[PlateType]int{PlateRedGreen: 3}
	if got := ClassifyResult(40, false, missed); !strings.Contains(got, "Red-Green") {
		t.Fatalf("expected red-green classification, got %s", got)
	}

	missed = map[PlateType]int{PlateTotal: 1}
	if got := ClassifyResult(50, false, missed); !strings.Contains(got, "Monochromacy") {
		t.Fatalf("expected monochromacy classification, got %s", got)
	}
}
