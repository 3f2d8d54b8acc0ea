package main

import (
	"fmt"

	"stealth-server/pkg/api"

	"github.com/gdamore/tcell/v2"
)

const maxLogLines = 6

var (
	styleFloor     = tcell.StyleDefault.Foreground(tcell.ColorGray)
	styleWall      = tcell.StyleDefault.Foreground(tcell.ColorWhite)
	styleBox       = tcell.StyleDefault.Foreground(tcell.ColorOlive)
	styleWire      = tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true)
	styleCamera    = tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true)
	styleCameraOff = tcell.StyleDefault.Foreground(tcell.ColorDarkGray)
	stylePlayer    = tcell.StyleDefault.Foreground(tcell.ColorAqua).Bold(true)
	styleCheck     = tcell.StyleDefault.Foreground(tcell.ColorGreen)
	styleText      = tcell.StyleDefault
	styleAlert     = tcell.StyleDefault.Foreground(tcell.ColorRed)
	styleError     = tcell.StyleDefault.Foreground(tcell.ColorYellow)
)

// watchedStyle подсвечивает клетку под наблюдением. Чем больше камер, тем ярче.
func watchedStyle(base tcell.Style, count int) tcell.Style {
	switch {
	case count <= 0:
		return base
	case count == 1:
		return base.Background(tcell.ColorMaroon)
	default:
		return base.Background(tcell.ColorRed)
	}
}

// view хранит то, что нужно для отрисовки между кадрами.
type view struct {
	screen tcell.Screen
	frame  api.ServerResponse
	logs   []api.LogEntry
	prompt string
}

func (v *view) update(frame api.ServerResponse) {
	v.frame = frame
	v.logs = append(v.logs, frame.Logs...)
	if len(v.logs) > maxLogLines {
		v.logs = v.logs[len(v.logs)-maxLogLines:]
	}
}

func (v *view) draw() {
	v.screen.Clear()
	f := v.frame
	if f.Grid == nil {
		v.screen.Show()
		return
	}

	watched := make(map[api.Point]int, len(f.Watched))
	for _, t := range f.Watched {
		watched[api.Point{X: t.X, Y: t.Y}] = t.Count
	}

	for y := 0; y < f.Grid.Height; y++ {
		for x := 0; x < f.Grid.Width; x++ {
			v.put(x, y, '.', watchedStyle(styleFloor, watched[api.Point{X: x, Y: y}]))
		}
	}
	for _, p := range f.Walls {
		v.put(p.X, p.Y, '#', styleWall)
	}
	if f.Checkpoint != nil {
		v.put(f.Checkpoint.X, f.Checkpoint.Y, 'S', watchedStyle(styleCheck, watched[*f.Checkpoint]))
	}
	for _, p := range f.Boxes {
		v.put(p.X, p.Y, 'B', watchedStyle(styleBox, watched[p]))
	}
	for _, w := range f.WireBoxes {
		v.put(w.Pos.X, w.Pos.Y, 'W', watchedStyle(styleWire, watched[w.Pos]))
	}
	for _, c := range f.Cameras {
		st := styleCamera
		if !c.Active {
			st = styleCameraOff
		}
		v.put(c.Pos.X, c.Pos.Y, 'C', st)
	}
	if f.Player != nil {
		v.put(f.Player.Pos.X, f.Player.Pos.Y, '@', watchedStyle(stylePlayer, watched[f.Player.Pos]))
	}

	row := f.Grid.Height + 1
	holding := "нет"
	if f.Player != nil && f.Player.HoldsBox {
		holding = "да"
	}
	v.text(0, row, styleText, fmt.Sprintf("%s  кадр %d  обнаружений %d  ящик в руках: %s",
		f.LevelName, f.Tick, f.Detections, holding))
	row++
	v.text(0, row, styleText, "стрелки/WASD - ход, e+сторона - взаимодействие, . - ждать, q - выход")
	row++
	if v.prompt != "" {
		v.text(0, row, styleError, v.prompt)
	}
	row++

	for _, entry := range v.logs {
		st := styleText
		switch entry.Type {
		case "ALERT":
			st = styleAlert
		case "ERROR":
			st = styleError
		}
		v.text(0, row, st, entry.Text)
		row++
	}

	v.screen.Show()
}

func (v *view) put(x, y int, r rune, st tcell.Style) {
	v.screen.SetContent(x, y, r, nil, st)
}

func (v *view) text(x, y int, st tcell.Style, s string) {
	for _, r := range s {
		v.screen.SetContent(x, y, r, nil, st)
		x++
	}
}
