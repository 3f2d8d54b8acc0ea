package main

import (
	"encoding/json"

	"stealth-server/pkg/api"

	"github.com/gdamore/tcell/v2"
)

// keyAction - что делает нажатие клавиши
type keyAction int

const (
	keyNone keyAction = iota
	keyQuit
	keyCommand
	keyInteractMode
)

// direction - шаг и имя стороны для MOVE/INTERACT
type direction struct {
	dx, dy int
	name   string
}

var (
	dirUp    = direction{0, -1, "UP"}
	dirDown  = direction{0, 1, "DOWN"}
	dirLeft  = direction{-1, 0, "LEFT"}
	dirRight = direction{1, 0, "RIGHT"}
)

func keyDirection(ev *tcell.EventKey) (direction, bool) {
	switch ev.Key() {
	case tcell.KeyUp:
		return dirUp, true
	case tcell.KeyDown:
		return dirDown, true
	case tcell.KeyLeft:
		return dirLeft, true
	case tcell.KeyRight:
		return dirRight, true
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'w', 'k':
			return dirUp, true
		case 's', 'j':
			return dirDown, true
		case 'a', 'h':
			return dirLeft, true
		case 'd', 'l':
			return dirRight, true
		}
	}
	return direction{}, false
}

// input переводит клавиши в команды. После 'e' следующая сторона
// означает INTERACT, а не MOVE.
type input struct {
	interact bool
}

func (in *input) handle(ev *tcell.EventKey) (keyAction, api.ClientCommand) {
	if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC ||
		(ev.Key() == tcell.KeyRune && ev.Rune() == 'q') {
		if in.interact && ev.Key() == tcell.KeyEscape {
			in.interact = false
			return keyNone, api.ClientCommand{}
		}
		return keyQuit, api.ClientCommand{}
	}

	if ev.Key() == tcell.KeyRune {
		switch ev.Rune() {
		case 'e', ' ':
			in.interact = true
			return keyInteractMode, api.ClientCommand{}
		case '.':
			in.interact = false
			return keyCommand, api.ClientCommand{Action: "WAIT"}
		}
	}

	dir, ok := keyDirection(ev)
	if !ok {
		return keyNone, api.ClientCommand{}
	}

	if in.interact {
		in.interact = false
		payload, _ := json.Marshal(api.FacingPayload{Direction: dir.name})
		return keyCommand, api.ClientCommand{Action: "INTERACT", Payload: payload}
	}
	payload, _ := json.Marshal(api.DirectionPayload{Dx: dir.dx, Dy: dir.dy})
	return keyCommand, api.ClientCommand{Action: "MOVE", Payload: payload}
}
