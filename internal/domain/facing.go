package domain

import "strings"

// Facing - направление, в которое "смотрит" камера со своей стены.
type Facing uint8

const (
	FacingDown Facing = iota // Значение по умолчанию
	FacingUp
	FacingLeft
	FacingRight
)

var facingToString = map[Facing]string{
	FacingDown:  "DOWN",
	FacingUp:    "UP",
	FacingLeft:  "LEFT",
	FacingRight: "RIGHT",
}

var stringToFacing = map[string]Facing{
	"DOWN":  FacingDown,
	"UP":    FacingUp,
	"LEFT":  FacingLeft,
	"RIGHT": FacingRight,
}

// Offset возвращает единичный шаг в направлении (ось Y смотрит вниз)
func (f Facing) Offset() GridPoint {
	switch f {
	case FacingUp:
		return GridPoint{X: 0, Y: -1}
	case FacingLeft:
		return GridPoint{X: -1, Y: 0}
	case FacingRight:
		return GridPoint{X: 1, Y: 0}
	default:
		return GridPoint{X: 0, Y: 1}
	}
}

// Opposite возвращает противоположное направление
func (f Facing) Opposite() Facing {
	switch f {
	case FacingUp:
		return FacingDown
	case FacingLeft:
		return FacingRight
	case FacingRight:
		return FacingLeft
	default:
		return FacingUp
	}
}

// ParseFacing конвертирует строку в Facing; неизвестное значение -> Down
func ParseFacing(s string) Facing {
	if f, ok := stringToFacing[strings.ToUpper(s)]; ok {
		return f
	}
	return FacingDown
}

func (f Facing) String() string {
	if s, ok := facingToString[f]; ok {
		return s
	}
	return "UNKNOWN"
}
