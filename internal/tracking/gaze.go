package tracking

import "math"

// GazeDirection дискретное направление взгляда
type GazeDirection string

// Возможные направления взгляда
const (
	GazeCenter GazeDirection = "center"
	GazeLeft   GazeDirection = "left"
	GazeRight  GazeDirection = "right"
	GazeUp     GazeDirection = "up"
	GazeDown   GazeDirection = "down"
)

// Пороги смещения радужки по умолчанию.
// Известное ограничение: пороги заданы в пикселях исходного изображения и
// зависят от его разрешения; нормализация изменила бы наблюдаемый результат.
const (
	DefaultHorizontalThreshold = 5.0
	DefaultVerticalThreshold   = 3.0
)

// GazeClassifier классификатор направления взгляда по смещению
// центра радужки относительно центра уголков глаза
type GazeClassifier struct {
	horizontalThreshold float64
	verticalThreshold   float64
}

// NewGazeClassifier создает новый классификатор взгляда.
// Нулевые пороги заменяются значениями по умолчанию.
func NewGazeClassifier(horizontalThreshold, verticalThreshold float64) *GazeClassifier {
	if horizontalThreshold <= 0 {
		horizontalThreshold = DefaultHorizontalThreshold
	}
	if verticalThreshold <= 0 {
		verticalThreshold = DefaultVerticalThreshold
	}
	return &GazeClassifier{
		horizontalThreshold: horizontalThreshold,
		verticalThreshold:   verticalThreshold,
	}
}

// Classify определяет направление взгляда по точкам радужки и уголков глаз.
// Смещения обоих глаз усредняются покомпонентно.
func (c *GazeClassifier) Classify(leftIris, rightIris, leftCorners, rightCorners []Point) GazeDirection {
	leftIrisCenter := Centroid(leftIris)
	rightIrisCenter := Centroid(rightIris)

	leftEyeCenter := Centroid(leftCorners)
	rightEyeCenter := Centroid(rightCorners)

	// Смещение радужки относительно центра глаза
	leftOffsetX := leftIrisCenter.X - leftEyeCenter.X
	leftOffsetY := leftIrisCenter.Y - leftEyeCenter.Y

	rightOffsetX := rightIrisCenter.X - rightEyeCenter.X
	rightOffsetY := rightIrisCenter.Y - rightEyeCenter.Y

	avgOffsetX := (leftOffsetX + rightOffsetX) / 2
	avgOffsetY := (leftOffsetY + rightOffsetY) / 2

	return c.classifyOffset(avgOffsetX, avgOffsetY)
}

// classifyOffset определяет направление по усредненному смещению.
// Порядок проверок значим: первое совпадение побеждает.
func (c *GazeClassifier) classifyOffset(dx, dy float64) GazeDirection {
	switch {
	case math.Abs(dx) < c.horizontalThreshold && math.Abs(dy) < c.verticalThreshold:
		return GazeCenter
	case dx < -c.horizontalThreshold:
		return GazeLeft
	case dx > c.horizontalThreshold:
		return GazeRight
	case dy < -c.verticalThreshold:
		return GazeUp
	case dy > c.verticalThreshold:
		return GazeDown
	default:
		return GazeCenter
	}
}
