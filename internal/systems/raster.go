package systems

import (
	"math"

	"stealth-server/internal/domain"
)

// Rasterize возвращает все клетки идеальной прямой от p1 до p2 включительно,
// в порядке от p1 к p2. Брезенхэм с целочисленной переменной решения p:
// шаг по доминирующей оси всегда единичный, по зависимой - когда p >= 0.
func Rasterize(p1, p2 domain.GridPoint) []domain.GridPoint {
	dx := abs(p2.X - p1.X)
	dy := abs(p2.Y - p1.Y)
	sx := sign(p2.X - p1.X)
	sy := sign(p2.Y - p1.Y)

	// steep: доминирует Y, меняем роли осей
	steep := dy > dx
	if steep {
		dx, dy = dy, dx
	}

	points := make([]domain.GridPoint, 0, dx+1)
	cur := p1
	points = append(points, cur)

	p := 2*dy - dx
	for i := 0; i < dx; i++ {
		if p >= 0 {
			if steep {
				cur.X += sx
			} else {
				cur.Y += sy
			}
			p += 2*dy - 2*dx
		} else {
			p += 2 * dy
		}
		if steep {
			cur.Y += sy
		} else {
			cur.X += sx
		}
		points = append(points, cur)
	}
	return points
}

// CheckRay возвращает клетки луча от base (не включая) до base+vec (включая).
//
// Доминирующая ось выбирается по |dy| и |dx| самого вектора (при равенстве - X).
// Зависимая координата считается по уравнению прямой (x = m*y или y = m*x)
// и округляется к ближайшему целому, половины - к четному (math.RoundToEven).
// Для отрицательной доминирующей компоненты шаги идут со знаком минус,
// поэтому луч всегда начинается у base.
func CheckRay(base, vec domain.GridPoint) []domain.GridPoint {
	if vec.IsZero() {
		return nil
	}

	adx, ady := abs(vec.X), abs(vec.Y)

	if ady > adx {
		s := sign(vec.Y)
		out := make([]domain.GridPoint, 0, ady)
		for i := 1; i <= ady; i++ {
			y := s * i
			x := roundDiv(vec.X*y, vec.Y)
			out = append(out, base.Shift(x, y))
		}
		return out
	}

	s := sign(vec.X)
	out := make([]domain.GridPoint, 0, adx)
	for i := 1; i <= adx; i++ {
		x := s * i
		y := roundDiv(vec.Y*x, vec.X)
		out = append(out, base.Shift(x, y))
	}
	return out
}

// roundDiv округляет num/den к ближайшему целому, половины - к четному.
// Произведение считается в int, чтобы на конце луча не было ошибки float.
func roundDiv(num, den int) int {
	return int(math.RoundToEven(float64(num) / float64(den)))
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func sign(v int) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}
