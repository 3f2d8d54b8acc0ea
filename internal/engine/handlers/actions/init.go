package actions

import "stealth-server/internal/engine/handlers"

func HandleInit(ctx handlers.Context) (handlers.Result, error) {
	return handlers.Result{
		Msg:     "Камеры включены. Не попадайтесь им на глаза.",
		MsgType: "INFO",
	}, nil
}
