package actions

import (
	"stealth-server/internal/engine/handlers"
)

// HandleWait - игрок стоит на месте один кадр
func HandleWait(ctx handlers.Context) (handlers.Result, error) {
	return handlers.EmptyResult(), nil
}
