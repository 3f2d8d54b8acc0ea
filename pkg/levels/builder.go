package levels

import (
	"errors"
	"fmt"

	"stealth-server/internal/domain"
)

var ErrUnknownTemplate = errors.New("unknown room template")

// RoomBuilder предоставляет fluent API для сборки комнаты из шаблона
type RoomBuilder struct {
	tmpl    RoomTemplate
	spreads map[string]float64
	targets map[string]domain.GridPoint
}

// NewRoom создает builder по шаблону
func NewRoom(tmpl RoomTemplate) *RoomBuilder {
	return &RoomBuilder{
		tmpl:    tmpl,
		spreads: make(map[string]float64),
		targets: make(map[string]domain.GridPoint),
	}
}

// WithSpread переопределяет полуугол камеры
func (b *RoomBuilder) WithSpread(cameraID string, spread float64) *RoomBuilder {
	b.spreads[cameraID] = spread
	return b
}

// WithTarget переопределяет цель камеры
func (b *RoomBuilder) WithTarget(cameraID string, target domain.GridPoint) *RoomBuilder {
	b.targets[cameraID] = target
	return b
}

// Build собирает комнату.
//
// '#' стена, '.' пол, 'B' ящик, 'W' щиток, 'C' камера на стене,
// '@' игрок, 'S' чекпоинт. Если есть только один из '@' и 'S',
// игрок появляется на чекпоинте.
func (b *RoomBuilder) Build() (*domain.Board, error) {
	rows := b.tmpl.Rows
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, fmt.Errorf("template %q: empty map", b.tmpl.Name)
	}
	width := len(rows[0])
	board := domain.NewBoard(width, len(rows))

	var (
		cameras []domain.GridPoint
		wires   = make(map[domain.GridPoint]bool)
		boxes   []domain.GridPoint
		player  *domain.GridPoint
		spawn   *domain.GridPoint
	)

	for y, row := range rows {
		if len(row) != width {
			return nil, fmt.Errorf("template %q: row %d has width %d, want %d", b.tmpl.Name, y, len(row), width)
		}
		for x, ch := range row {
			p := domain.Pt(x, y)
			switch ch {
			case domain.GlyphWall:
				board.SetWall(p, true)
			case domain.GlyphFloor:
			case domain.GlyphBox:
				boxes = append(boxes, p)
			case domain.GlyphWireBox:
				wires[p] = true
			case domain.GlyphCamera:
				board.SetWall(p, true)
				cameras = append(cameras, p)
			case domain.GlyphPlayer:
				if player != nil {
					return nil, fmt.Errorf("template %q: second player at %s", b.tmpl.Name, p)
				}
				player = &p
			case domain.GlyphCheckpoint:
				if spawn != nil {
					return nil, fmt.Errorf("template %q: second checkpoint at %s", b.tmpl.Name, p)
				}
				spawn = &p
			default:
				return nil, fmt.Errorf("template %q: unknown glyph %q at %s", b.tmpl.Name, ch, p)
			}
		}
	}

	switch {
	case player == nil && spawn == nil:
		return nil, fmt.Errorf("template %q: no player or checkpoint", b.tmpl.Name)
	case player == nil:
		player = spawn
	case spawn == nil:
		spawn = player
	}
	board.Player = *player
	board.Checkpoint = *spawn

	for _, p := range boxes {
		if err := board.PlaceBox(p); err != nil {
			return nil, fmt.Errorf("template %q: %w", b.tmpl.Name, err)
		}
	}

	if len(cameras) != len(b.tmpl.Cameras) {
		return nil, fmt.Errorf("template %q: %d cameras on map, %d described", b.tmpl.Name, len(cameras), len(b.tmpl.Cameras))
	}

	used := make(map[domain.GridPoint]bool)
	for i, pos := range cameras {
		ct := b.tmpl.Cameras[i]
		rec := domain.CameraRecord{
			ID:       fmt.Sprintf("cam_%d", i+1),
			Position: pos,
			Target:   ct.Target,
			Spread:   ct.Spread,
			WireBox:  ct.WireBox,
		}
		if s, ok := b.spreads[rec.ID]; ok {
			rec.Spread = s
		}
		if t, ok := b.targets[rec.ID]; ok {
			rec.Target = t
		}

		if rec.HasWireBox() {
			if !wires[rec.WireBox] {
				return nil, fmt.Errorf("template %q: camera %s wire box %s is not on the map", b.tmpl.Name, rec.ID, rec.WireBox)
			}
			if used[rec.WireBox] {
				return nil, fmt.Errorf("template %q: wire box %s powers two cameras", b.tmpl.Name, rec.WireBox)
			}
			used[rec.WireBox] = true
			board.WireBoxes[rec.WireBox] = rec.ID
		}
		board.Cameras = append(board.Cameras, rec)
	}

	for p := range wires {
		if !used[p] {
			return nil, fmt.Errorf("template %q: wire box %s is not connected", b.tmpl.Name, p)
		}
	}

	return board, nil
}

// Build собирает встроенную комнату по имени
func Build(name string) (*domain.Board, error) {
	tmpl, ok := Templates[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownTemplate, name)
	}
	return NewRoom(tmpl).Build()
}
