package domain

import "fmt"

// GridPoint - координата клетки на сетке комнаты.
// Значимый тип: все операции возвращают новую точку.
type GridPoint struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Pt - короткий конструктор, удобен в тестах и шаблонах.
func Pt(x, y int) GridPoint {
	return GridPoint{X: x, Y: y}
}

func (p GridPoint) Add(o GridPoint) GridPoint {
	return GridPoint{X: p.X + o.X, Y: p.Y + o.Y}
}

func (p GridPoint) Sub(o GridPoint) GridPoint {
	return GridPoint{X: p.X - o.X, Y: p.Y - o.Y}
}

func (p GridPoint) Neg() GridPoint {
	return GridPoint{X: -p.X, Y: -p.Y}
}

// Shift возвращает точку со смещением (dx, dy)
func (p GridPoint) Shift(dx, dy int) GridPoint {
	return GridPoint{X: p.X + dx, Y: p.Y + dy}
}

// IsZero true для нулевого вектора
func (p GridPoint) IsZero() bool {
	return p.X == 0 && p.Y == 0
}

// DistanceSquaredTo возвращает квадрат расстояния (int) для сравнения без корней
func (p GridPoint) DistanceSquaredTo(o GridPoint) int {
	dx := p.X - o.X
	dy := p.Y - o.Y
	return dx*dx + dy*dy
}

// IsAdjacent4 true, если o - сосед по стороне (без диагоналей)
func (p GridPoint) IsAdjacent4(o GridPoint) bool {
	d := p.Sub(o)
	return abs(d.X)+abs(d.Y) == 1
}

// Neighbors4 возвращает соседей в порядке: вверх, вниз, влево, вправо
func (p GridPoint) Neighbors4() [4]GridPoint {
	return [4]GridPoint{
		p.Add(FacingUp.Offset()),
		p.Add(FacingDown.Offset()),
		p.Add(FacingLeft.Offset()),
		p.Add(FacingRight.Offset()),
	}
}

// Less задает порядок строка-за-строкой (для стабильных снимков)
func (p GridPoint) Less(o GridPoint) bool {
	if p.Y != o.Y {
		return p.Y < o.Y
	}
	return p.X < o.X
}

func (p GridPoint) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
