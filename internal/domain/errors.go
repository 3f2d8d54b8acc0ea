package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrNoWalkableNeighbor - у камеры нет ни одной проходимой соседней клетки.
	// Комната собрана неправильно, но кадр продолжается с направлением по умолчанию.
	ErrNoWalkableNeighbor = errors.New("camera has no walkable neighbor tile")

	ErrOutOfBounds    = errors.New("out of bounds")
	ErrUnknownCamera  = errors.New("unknown camera")
	ErrTileOccupied   = errors.New("tile occupied")
	ErrNothingToReach = errors.New("nothing to interact with")
)

// DegenerateAimError - цель камеры совпадает с ее позицией или с основанием лучей
// (нулевой вектор центрального луча).
type DegenerateAimError struct {
	CameraID string
	Position GridPoint
	Target   GridPoint
}

func (e *DegenerateAimError) Error() string {
	return fmt.Sprintf("camera %q at %s: zero center ray towards %s", e.CameraID, e.Position, e.Target)
}
