package tracking

// Параметры детектора моргания по умолчанию
const (
	// DefaultEARThreshold порог EAR, ниже которого глаза считаются закрытыми
	DefaultEARThreshold = 0.21
	// DefaultConsecFrames количество последовательных кадров для подтверждения моргания
	DefaultConsecFrames = 2
)

// BlinkDetector детектор моргания по значениям EAR обоих глаз.
//
// Двухфазный автомат: OPEN <-> CLOSED(подтверждено). Счетчик морганий
// увеличивается на переходе CLOSED -> OPEN, то есть в момент, когда глаза
// открываются после достаточно долгого закрытия. Сессия, завершившаяся с
// закрытыми глазами, недосчитывает одно моргание — поведение сохранено
// намеренно для совместимости с накопленными данными.
type BlinkDetector struct {
	earThreshold float64
	consecFrames int

	frameCounter int // последовательные кадры с EAR ниже порога
	totalBlinks  int
}

// NewBlinkDetector создает новый детектор моргания.
// Нулевые параметры заменяются значениями по умолчанию.
func NewBlinkDetector(earThreshold float64, consecFrames int) *BlinkDetector {
	if earThreshold <= 0 {
		earThreshold = DefaultEARThreshold
	}
	if consecFrames <= 0 {
		consecFrames = DefaultConsecFrames
	}
	return &BlinkDetector{
		earThreshold: earThreshold,
		consecFrames: consecFrames,
	}
}

// Observe обрабатывает значения EAR очередного кадра.
// Возвращает (моргает ли сейчас, усредненный EAR).
func (d *BlinkDetector) Observe(leftEAR, rightEAR float64) (bool, float64) {
	avgEAR := (leftEAR + rightEAR) / 2.0

	if avgEAR < d.earThreshold {
		d.frameCounter++
	} else {
		// Если глаза были закрыты достаточно долго — фиксируем моргание
		if d.frameCounter >= d.consecFrames {
			d.totalBlinks++
		}
		d.frameCounter = 0
	}

	isBlinking := d.frameCounter >= d.consecFrames

	return isBlinking, avgEAR
}

// TotalBlinks возвращает количество зафиксированных морганий
func (d *BlinkDetector) TotalBlinks() int {
	return d.totalBlinks
}

// FrameCounter возвращает текущую длину серии кадров с закрытыми глазами
func (d *BlinkDetector) FrameCounter() int {
	return d.frameCounter
}

// Threshold возвращает используемый порог EAR
func (d *BlinkDetector) Threshold() float64 {
	return d.earThreshold
}

// Reset сбрасывает счетчики детектора
func (d *BlinkDetector) Reset() {
	d.frameCounter = 0
	d.totalBlinks = 0
}
