package actions

import (
	"errors"
	"fmt"

	"stealth-server/internal/domain"
	"stealth-server/internal/engine/handlers"
	"stealth-server/internal/systems"
	"stealth-server/pkg/api"
)

func HandleInteract(ctx handlers.Context, p api.FacingPayload) (handlers.Result, error) {
	facing := domain.ParseFacing(p.Direction)

	res, err := systems.Interact(ctx.Board, facing)
	if errors.Is(err, domain.ErrNothingToReach) {
		return handlers.Result{Msg: "Здесь не с чем взаимодействовать.", MsgType: "ERROR"}, nil
	}
	if err != nil {
		// Положить ящик некуда: стена, другой ящик или край комнаты
		return handlers.Result{Msg: "Сюда ящик не поставить.", MsgType: "ERROR"}, nil
	}

	switch res.Kind {
	case systems.InteractCutWire:
		// Щиток остается на месте, если камеру выключить не удалось
		if err := ctx.Cameras.DisableCamera(res.CameraID); err != nil {
			return handlers.EmptyResult(), fmt.Errorf("cut wire at %s: %w", res.Tile, err)
		}
		ctx.Board.CutWireBox(res.Tile)
		return handlers.Result{
			Msg:     fmt.Sprintf("Провода перерезаны, камера %s отключена.", res.CameraID),
			MsgType: "INFO",
			Event:   domain.EventCameraDisabled,
		}, nil
	case systems.InteractLiftBox:
		return handlers.Result{Msg: "Вы поднимаете ящик.", MsgType: "INFO"}, nil
	case systems.InteractDropBox:
		return handlers.Result{Msg: "Вы ставите ящик.", MsgType: "INFO"}, nil
	}
	return handlers.EmptyResult(), nil
}
