package tracking

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidInput некорректные геометрические данные (неверное количество точек)
var ErrInvalidInput = errors.New("invalid geometry input")

// Point представляет точку ориентира в пиксельных координатах
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Distance вычисляет евклидово расстояние между двумя точками
func Distance(p1, p2 Point) float64 {
	return math.Hypot(p1.X-p2.X, p1.Y-p2.Y)
}

// Centroid вычисляет центр масс набора точек
func Centroid(points []Point) Point {
	if len(points) == 0 {
		return Point{}
	}

	var sumX, sumY float64
	for _, p := range points {
		sumX += p.X
		sumY += p.Y
	}

	n := float64(len(points))
	return Point{X: sumX / n, Y: sumY / n}
}

// EAR вычисляет Eye Aspect Ratio по контуру глаза из 6 точек
//
// Формула:
// EAR = (||p2 - p6|| + ||p3 - p5||) / (2 * ||p1 - p4||)
//
// где p1, p4 — горизонтальные уголки глаза, а p2/p6 и p3/p5 — вертикальные
// пары век. При нулевой горизонтальной ширине (вырожденная геометрия)
// возвращается 0.0, а не ошибка.
func EAR(eye []Point) (float64, error) {
	if len(eye) != 6 {
		return 0, fmt.Errorf("%w: eye contour must contain exactly 6 points, got %d", ErrInvalidInput, len(eye))
	}

	// Вертикальные расстояния (2 пары)
	vertical1 := Distance(eye[1], eye[5])
	vertical2 := Distance(eye[2], eye[4])

	// Горизонтальное расстояние
	horizontal := Distance(eye[0], eye[3])

	if horizontal == 0 {
		return 0.0, nil
	}

	return (vertical1 + vertical2) / (2.0 * horizontal), nil
}
