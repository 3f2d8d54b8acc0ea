package storage

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"os"

	"stealth-server/internal/domain"
)

const (
	LevelMagic    string = `SVLV`
	LevelVersion1 uint32 = 1

	// Самая большая комната, которую примет ReadLevel
	MaxLevelSide = 4096
)

// Тип клетки в файле уровня
const (
	tileFloor uint8 = 0
	tileWall  uint8 = 1
)

// Флаги камеры
const (
	cameraFlagWireCut uint8 = 1 << 0 // щиток уже перерезан, камера отключена
)

// LevelFileHeader - заголовок файла уровня. Пишется одним binary.Write.
type LevelFileHeader struct {
	Magic       [4]byte
	Version     uint32
	Width       uint16
	Height      uint16
	PlayerX     int32
	PlayerY     int32
	CheckpointX int32
	CheckpointY int32
	HeldBox     uint8
	BoxCount    uint16
	CameraCount uint16
}

// CameraHeader - запись камеры. Spread хранится как float64,
// отсутствие щитка - координаты (-1, -1).
type CameraHeader struct {
	PosX    int32
	PosY    int32
	TargetX int32
	TargetY int32
	Spread  float64
	WireX   int32
	WireY   int32
	Flags   uint8
	IDLen   uint8
}

type pointRecord struct {
	X int32
	Y int32
}

// SaveLevel пишет комнату в файл.
func SaveLevel(path string, b *domain.Board) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	if err := WriteLevel(w, b); err != nil {
		return fmt.Errorf("save level %s: %w", path, err)
	}
	return w.Flush()
}

// WriteLevel сериализует комнату в формат SVLV.
func WriteLevel(w io.Writer, b *domain.Board) error {
	if b.Width <= 0 || b.Height <= 0 || b.Width > MaxLevelSide || b.Height > MaxLevelSide {
		return fmt.Errorf("bad level size %dx%d", b.Width, b.Height)
	}
	boxes := b.BoxList()

	header := LevelFileHeader{
		Version:     LevelVersion1,
		Width:       uint16(b.Width),
		Height:      uint16(b.Height),
		PlayerX:     int32(b.Player.X),
		PlayerY:     int32(b.Player.Y),
		CheckpointX: int32(b.Checkpoint.X),
		CheckpointY: int32(b.Checkpoint.Y),
		BoxCount:    uint16(len(boxes)),
		CameraCount: uint16(len(b.Cameras)),
	}
	if b.HeldBox {
		header.HeldBox = 1
	}
	copy(header.Magic[:], LevelMagic)

	if err := binary.Write(w, binary.LittleEndian, &header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	// 1. Сетка построчно, байт на клетку
	row := make([]byte, b.Width)
	for y := 0; y < b.Height; y++ {
		for x := 0; x < b.Width; x++ {
			row[x] = tileFloor
			if b.IsWall(domain.Pt(x, y)) {
				row[x] = tileWall
			}
		}
		if _, err := w.Write(row); err != nil {
			return fmt.Errorf("failed to write row %d: %w", y, err)
		}
	}

	// 2. Ящики
	for _, p := range boxes {
		if err := binary.Write(w, binary.LittleEndian, pointRecord{X: int32(p.X), Y: int32(p.Y)}); err != nil {
			return err
		}
	}

	// 3. Камеры
	for _, rec := range b.Cameras {
		idBytes := []byte(rec.ID)
		if len(idBytes) > 255 {
			return fmt.Errorf("camera id too long: %d", len(idBytes))
		}

		ch := CameraHeader{
			PosX:    int32(rec.Position.X),
			PosY:    int32(rec.Position.Y),
			TargetX: int32(rec.Target.X),
			TargetY: int32(rec.Target.Y),
			Spread:  rec.Spread,
			WireX:   int32(rec.WireBox.X),
			WireY:   int32(rec.WireBox.Y),
			IDLen:   uint8(len(idBytes)),
		}
		if rec.HasWireBox() {
			if id, ok := b.WireBoxAt(rec.WireBox); !ok || id != rec.ID {
				ch.Flags |= cameraFlagWireCut
			}
		}

		if err := binary.Write(w, binary.LittleEndian, &ch); err != nil {
			return err
		}
		if _, err := w.Write(idBytes); err != nil {
			return err
		}
	}

	return nil
}
