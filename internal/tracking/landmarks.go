package tracking

import "fmt"

// Индексы ориентиров MediaPipe Face Mesh. Привязаны к схеме выхода внешней
// модели (478 точек с ориентирами радужки) и вынесены сюда как
// конфигурационные константы.
var (
	// Контур левого глаза (6 точек для формулы EAR)
	LeftEyeIndices = []int{33, 160, 158, 133, 153, 144}
	// Контур правого глаза (6 точек)
	RightEyeIndices = []int{362, 385, 387, 263, 373, 380}

	// Ориентиры радужки для оценки направления взгляда
	LeftIrisIndices  = []int{468, 469, 470, 471, 472}
	RightIrisIndices = []int{473, 474, 475, 476, 477}

	// Уголки глаз (внешний, внутренний)
	LeftCornerIndices  = []int{33, 133}
	RightCornerIndices = []int{362, 263}
)

// MinLandmarkCount минимальное количество точек в выходе face mesh модели,
// при котором доступны все используемые индексы (включая радужку)
const MinLandmarkCount = 478

// ExtractPoints извлекает подмножество точек по заданным индексам
func ExtractPoints(landmarks []Point, indices []int) ([]Point, error) {
	points := make([]Point, 0, len(indices))
	for _, idx := range indices {
		if idx < 0 || idx >= len(landmarks) {
			return nil, fmt.Errorf("%w: landmark index %d out of range (%d landmarks)", ErrInvalidInput, idx, len(landmarks))
		}
		points = append(points, landmarks[idx])
	}
	return points, nil
}
