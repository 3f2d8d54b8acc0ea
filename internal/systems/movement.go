package systems

import (
	"stealth-server/internal/domain"
)

// MovementResult - результат вычисления шага игрока
type MovementResult struct {
	To        domain.GridPoint
	HasMoved  bool
	PushedBox bool             // Игрок толкнул ящик
	BoxTo     domain.GridPoint // Куда уедет ящик
	IsWall    bool             // Уперлись в стену, щиток или неподвижный ящик
}

// CalculateMove вычисляет шаг игрока на (dx, dy). Не меняет состояние комнаты!
// Ящик перед игроком толкается, если за ним свободно.
// С ящиком в руках толкать нельзя.
func CalculateMove(b *domain.Board, dx, dy int) MovementResult {
	to := b.Player.Shift(dx, dy)
	res := MovementResult{To: to}

	if !b.InBounds(to) || !b.IsWalkable(to) {
		res.IsWall = true
		return res
	}
	if _, wired := b.WireBoxAt(to); wired {
		res.IsWall = true
		return res
	}

	if b.HasBox(to) {
		boxTo := to.Shift(dx, dy)
		if b.HeldBox || !b.IsFree(boxTo) {
			res.IsWall = true
			return res
		}
		res.PushedBox = true
		res.BoxTo = boxTo
	}

	res.HasMoved = true
	return res
}

// ApplyMove применяет вычисленный шаг.
func ApplyMove(b *domain.Board, res MovementResult) error {
	if !res.HasMoved {
		return nil
	}
	if res.PushedBox {
		if err := b.MoveBox(res.To, res.BoxTo); err != nil {
			return err
		}
	}
	b.Player = res.To
	return nil
}
