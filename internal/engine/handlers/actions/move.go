package actions

import (
	"stealth-server/internal/engine/handlers"
	"stealth-server/internal/systems"
	"stealth-server/pkg/api"
)

func HandleMove(ctx handlers.Context, p api.DirectionPayload) (handlers.Result, error) {
	res := systems.CalculateMove(ctx.Board, p.Dx, p.Dy)

	if res.IsWall {
		return handlers.Result{Msg: "Путь прегражден.", MsgType: "ERROR"}, nil
	}

	if err := systems.ApplyMove(ctx.Board, res); err != nil {
		return handlers.EmptyResult(), err
	}

	if res.PushedBox {
		return handlers.Result{Msg: "Вы толкаете ящик.", MsgType: "INFO", Moved: true}, nil
	}
	return handlers.Result{Moved: res.HasMoved}, nil
}
