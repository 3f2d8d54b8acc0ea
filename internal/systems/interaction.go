package systems

import (
	"fmt"

	"stealth-server/internal/domain"
)

// InteractionKind - что произошло при взаимодействии
type InteractionKind uint8

const (
	InteractNone InteractionKind = iota
	InteractCutWire
	InteractLiftBox
	InteractDropBox
)

func (k InteractionKind) String() string {
	switch k {
	case InteractCutWire:
		return "CUT_WIRE"
	case InteractLiftBox:
		return "LIFT_BOX"
	case InteractDropBox:
		return "DROP_BOX"
	}
	return "NONE"
}

// InteractionResult - результат взаимодействия с соседней клеткой
type InteractionResult struct {
	Kind     InteractionKind
	Tile     domain.GridPoint
	CameraID string // для InteractCutWire
}

// Interact взаимодействует с клеткой рядом с игроком в направлении facing:
// перерезает щиток, поднимает ящик или кладет несомый ящик на пол.
// Щиток здесь только находится: камеру выключает и щиток снимает
// вызывающий (у него есть реестр наблюдателей).
func Interact(b *domain.Board, facing domain.Facing) (InteractionResult, error) {
	tile := b.Player.Add(facing.Offset())
	res := InteractionResult{Tile: tile}

	if id, ok := b.WireBoxAt(tile); ok {
		res.Kind = InteractCutWire
		res.CameraID = id
		return res, nil
	}

	if b.HeldBox {
		if err := b.PlaceBox(tile); err != nil {
			return res, fmt.Errorf("drop box: %w", err)
		}
		b.HeldBox = false
		res.Kind = InteractDropBox
		return res, nil
	}

	if b.RemoveBox(tile) {
		b.HeldBox = true
		res.Kind = InteractLiftBox
		return res, nil
	}

	return res, domain.ErrNothingToReach
}
