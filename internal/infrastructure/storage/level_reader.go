package storage

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"os"

	"stealth-server/internal/domain"
)

// LoadLevel читает комнату из файла.
func LoadLevel(path string) (*domain.Board, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	b, err := ReadLevel(bufio.NewReader(f))
	if err != nil {
		return nil, fmt.Errorf("load level %s: %w", path, err)
	}
	return b, nil
}

// ReadLevel читает комнату в формате SVLV.
// Перерезанные щитки в комнату не попадают, камера остается в записи.
func ReadLevel(r io.Reader) (*domain.Board, error) {
	var header LevelFileHeader
	if err := binary.Read(r, binary.LittleEndian, &header); err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	if string(header.Magic[:]) != LevelMagic {
		return nil, ErrBadMagic
	}
	if header.Version != LevelVersion1 {
		return nil, fmt.Errorf("unsupported version: %d (expected %d)", header.Version, LevelVersion1)
	}
	w, h := int(header.Width), int(header.Height)
	if w == 0 || h == 0 || w > MaxLevelSide || h > MaxLevelSide {
		return nil, fmt.Errorf("bad level size %dx%d", w, h)
	}

	b := domain.NewBoard(w, h)
	b.Player = domain.Pt(int(header.PlayerX), int(header.PlayerY))
	b.Checkpoint = domain.Pt(int(header.CheckpointX), int(header.CheckpointY))
	b.HeldBox = header.HeldBox != 0

	if !b.InBounds(b.Player) || !b.InBounds(b.Checkpoint) {
		return nil, fmt.Errorf("player %s or checkpoint %s: %w", b.Player, b.Checkpoint, domain.ErrOutOfBounds)
	}

	// 1. Сетка
	row := make([]byte, w)
	for y := 0; y < h; y++ {
		if _, err := io.ReadFull(r, row); err != nil {
			return nil, fmt.Errorf("failed to read row %d: %w", y, err)
		}
		for x, t := range row {
			switch t {
			case tileFloor:
			case tileWall:
				b.SetWall(domain.Pt(x, y), true)
			default:
				return nil, fmt.Errorf("unknown tile %d at (%d,%d)", t, x, y)
			}
		}
	}

	// 2. Ящики
	for i := 0; i < int(header.BoxCount); i++ {
		var pr pointRecord
		if err := binary.Read(r, binary.LittleEndian, &pr); err != nil {
			return nil, fmt.Errorf("box %d: %w", i, err)
		}
		if err := b.PlaceBox(domain.Pt(int(pr.X), int(pr.Y))); err != nil {
			return nil, fmt.Errorf("box %d: %w", i, err)
		}
	}

	// 3. Камеры
	b.Cameras = make([]domain.CameraRecord, 0, header.CameraCount)
	for i := 0; i < int(header.CameraCount); i++ {
		var ch CameraHeader
		if err := binary.Read(r, binary.LittleEndian, &ch); err != nil {
			return nil, fmt.Errorf("camera %d: %w", i, err)
		}
		idBuf := make([]byte, ch.IDLen)
		if _, err := io.ReadFull(r, idBuf); err != nil {
			return nil, fmt.Errorf("camera %d id: %w", i, err)
		}

		rec := domain.CameraRecord{
			ID:       string(idBuf),
			Position: domain.Pt(int(ch.PosX), int(ch.PosY)),
			Target:   domain.Pt(int(ch.TargetX), int(ch.TargetY)),
			Spread:   ch.Spread,
			WireBox:  domain.Pt(int(ch.WireX), int(ch.WireY)),
		}
		if rec.HasWireBox() && ch.Flags&cameraFlagWireCut == 0 {
			if !b.InBounds(rec.WireBox) {
				return nil, fmt.Errorf("camera %s wire box %s: %w", rec.ID, rec.WireBox, domain.ErrOutOfBounds)
			}
			b.WireBoxes[rec.WireBox] = rec.ID
		}
		b.Cameras = append(b.Cameras, rec)
	}

	return b, nil
}
