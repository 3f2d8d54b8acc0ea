package api

import (
	"errors"
	"strings"
)

// Validator - интерфейс, который могут реализовать DTO
type Validator interface {
	Validate() error
}

// Validate допускает только шаг в одну из четырех сторон: диагоналей в комнате нет.
func (p DirectionPayload) Validate() error {
	if p.Dx == 0 && p.Dy == 0 {
		return errors.New("movement vector cannot be zero")
	}
	if p.Dx < -1 || p.Dx > 1 || p.Dy < -1 || p.Dy > 1 {
		return errors.New("movement step too large")
	}
	if p.Dx != 0 && p.Dy != 0 {
		return errors.New("diagonal movement is not allowed")
	}
	return nil
}

func (p FacingPayload) Validate() error {
	switch strings.ToUpper(p.Direction) {
	case "UP", "DOWN", "LEFT", "RIGHT":
		return nil
	case "":
		return errors.New("direction is required")
	}
	return errors.New("unknown direction: " + p.Direction)
}
