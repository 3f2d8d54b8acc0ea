package domain

import (
	"fmt"

	"github.com/zyedidia/generic/mapset"
)

// Board - комната: статическая сетка стен плюс подвижные предметы.
// Реализует интерфейс комнаты, который нужен камерам (Room в пакете systems).
type Board struct {
	Width  int
	Height int

	// walls хранит стены построчно, индекс: y*Width + x
	walls []bool

	// Ящики перекрывают обзор, пока лежат на полу.
	Boxes mapset.Set[GridPoint]
	// HeldBox - игрок несет ящик; такой ящик обзор не перекрывает.
	HeldBox bool

	// WireBoxes: клетка щитка -> ID камеры, которую он питает
	WireBoxes map[GridPoint]string

	Player     GridPoint
	Checkpoint GridPoint

	// Cameras - авторские записи камер (то, что хранится в файле уровня)
	Cameras []CameraRecord
}

// NewBoard создает комнату w x h без стен.
func NewBoard(w, h int) *Board {
	return &Board{
		Width:     w,
		Height:    h,
		walls:     make([]bool, w*h),
		Boxes:     mapset.New[GridPoint](),
		WireBoxes: make(map[GridPoint]string),
	}
}

func (b *Board) index(p GridPoint) int {
	return p.Y*b.Width + p.X
}

// InBounds проверяет, что клетка внутри сетки.
func (b *Board) InBounds(p GridPoint) bool {
	return p.X >= 0 && p.Y >= 0 && p.X < b.Width && p.Y < b.Height
}

// SetWall ставит или убирает стену. Вне сетки - ничего не делает.
func (b *Board) SetWall(p GridPoint, wall bool) {
	if !b.InBounds(p) {
		return
	}
	b.walls[b.index(p)] = wall
}

// IsWall: выход за границы считается стеной
func (b *Board) IsWall(p GridPoint) bool {
	if !b.InBounds(p) {
		return true
	}
	return b.walls[b.index(p)]
}

// IsWalkable - пол без стены. Предметы не учитываются:
// основание лучей камеры не должно прыгать, когда ящик двигают рядом.
func (b *Board) IsWalkable(p GridPoint) bool {
	return !b.IsWall(p)
}

// IsOccludingVision - стены, границы и ящики на полу.
func (b *Board) IsOccludingVision(p GridPoint) bool {
	if b.IsWall(p) {
		return true
	}
	return b.Boxes.Has(p)
}

func (b *Board) PlayerPosition() GridPoint {
	return b.Player
}

// IsFree - на клетку можно встать: пол, нет ящика и щитка.
func (b *Board) IsFree(p GridPoint) bool {
	if !b.IsWalkable(p) || b.Boxes.Has(p) {
		return false
	}
	_, wired := b.WireBoxes[p]
	return !wired
}

// HasBox - на клетке лежит ящик
func (b *Board) HasBox(p GridPoint) bool {
	return b.Boxes.Has(p)
}

// PlaceBox кладет ящик на свободную клетку.
func (b *Board) PlaceBox(p GridPoint) error {
	if !b.InBounds(p) {
		return fmt.Errorf("place box at %s: %w", p, ErrOutOfBounds)
	}
	if !b.IsFree(p) || p == b.Player {
		return fmt.Errorf("place box at %s: %w", p, ErrTileOccupied)
	}
	b.Boxes.Put(p)
	return nil
}

// MoveBox перекладывает ящик (толчок игроком).
func (b *Board) MoveBox(from, to GridPoint) error {
	if !b.Boxes.Has(from) {
		return fmt.Errorf("move box from %s: %w", from, ErrNothingToReach)
	}
	if !b.InBounds(to) {
		return fmt.Errorf("move box to %s: %w", to, ErrOutOfBounds)
	}
	if !b.IsFree(to) || to == b.Player {
		return fmt.Errorf("move box to %s: %w", to, ErrTileOccupied)
	}
	b.Boxes.Remove(from)
	b.Boxes.Put(to)
	return nil
}

// RemoveBox убирает ящик (игрок поднял его).
func (b *Board) RemoveBox(p GridPoint) bool {
	if !b.Boxes.Has(p) {
		return false
	}
	b.Boxes.Remove(p)
	return true
}

// WireBoxAt возвращает ID камеры, подключенной к щитку на клетке.
func (b *Board) WireBoxAt(p GridPoint) (string, bool) {
	id, ok := b.WireBoxes[p]
	return id, ok
}

// CutWireBox снимает щиток с клетки. Возвращает ID камеры, которую он питал.
func (b *Board) CutWireBox(p GridPoint) (string, bool) {
	id, ok := b.WireBoxes[p]
	if ok {
		delete(b.WireBoxes, p)
	}
	return id, ok
}

// Camera ищет запись камеры по ID
func (b *Board) Camera(id string) (CameraRecord, bool) {
	for _, c := range b.Cameras {
		if c.ID == id {
			return c, true
		}
	}
	return CameraRecord{}, false
}

// Clone делает глубокую копию (снимок для чекпоинта).
func (b *Board) Clone() *Board {
	c := &Board{
		Width:      b.Width,
		Height:     b.Height,
		walls:      append([]bool(nil), b.walls...),
		Boxes:      mapset.New[GridPoint](),
		HeldBox:    b.HeldBox,
		WireBoxes:  make(map[GridPoint]string, len(b.WireBoxes)),
		Player:     b.Player,
		Checkpoint: b.Checkpoint,
		Cameras:    append([]CameraRecord(nil), b.Cameras...),
	}
	b.Boxes.Each(func(p GridPoint) {
		c.Boxes.Put(p)
	})
	for p, id := range b.WireBoxes {
		c.WireBoxes[p] = id
	}
	return c
}

// BoxList возвращает ящики в стабильном порядке.
func (b *Board) BoxList() []GridPoint {
	out := make([]GridPoint, 0, b.Boxes.Size())
	b.Boxes.Each(func(p GridPoint) {
		out = append(out, p)
	})
	SortPoints(out)
	return out
}
