package storage

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"stealth-server/internal/domain"
)

const (
	MagicHeader string = `SVRP` // 4 байта
	Version1    uint32 = 1
)

// ReplayFileHeader - точное представление заголовка файла в памяти.
// binary.Write умеет писать это целиком, так как тут нет слайсов и строк, только массивы и числа.
type ReplayFileHeader struct {
	Magic        [4]byte // 4 байта
	Version      uint32  // 4 байта
	Timestamp    int64   // 8 байт
	RoomID       int32   // 4 байта
	ActionCount  int32   // 4 байта
	LevelNameLen uint16  // 2 байта, сразу за заголовком идет имя уровня
}

// ActionHeader - заголовок каждой записи действия.
type ActionHeader struct {
	Tick       int32  // 4
	ActionType uint8  // 1
	TokenLen   uint8  // 1
	PayloadLen uint16 // 2
}

type ReplayService struct {
	SaveDir string
}

func NewReplayService(dir string) *ReplayService {
	return &ReplayService{SaveDir: dir}
}

// Save пишет сессию в SaveDir и возвращает путь к файлу.
func (s *ReplayService) Save(session *domain.ReplaySession) (string, error) {
	if err := os.MkdirAll(s.SaveDir, 0o755); err != nil {
		return "", fmt.Errorf("create replay dir: %w", err)
	}

	filename := fmt.Sprintf("replay_room%d_%d.svrp", session.RoomID, session.Timestamp)
	path := filepath.Join(s.SaveDir, filename)

	f, err := os.Create(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	if err := WriteReplay(w, session); err != nil {
		return "", err
	}
	if err := w.Flush(); err != nil {
		return "", err
	}
	return path, nil
}

// WriteReplay сериализует сессию в бинарный формат SVRP.
func WriteReplay(w io.Writer, s *domain.ReplaySession) error {
	nameBytes := []byte(s.LevelName)
	if len(nameBytes) > 65535 {
		return fmt.Errorf("level name too long: %d", len(nameBytes))
	}

	header := ReplayFileHeader{
		Version:      Version1,
		Timestamp:    s.Timestamp,
		RoomID:       int32(s.RoomID),
		ActionCount:  int32(len(s.Actions)),
		LevelNameLen: uint16(len(nameBytes)),
	}
	copy(header.Magic[:], MagicHeader)

	if err := binary.Write(w, binary.LittleEndian, &header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	if _, err := w.Write(nameBytes); err != nil {
		return fmt.Errorf("failed to write level name: %w", err)
	}

	for _, act := range s.Actions {
		tokenBytes := []byte(act.Token)
		if len(tokenBytes) > 255 {
			return fmt.Errorf("token too long: %d", len(tokenBytes))
		}

		payloadLen := len(act.Payload)
		if payloadLen > 65535 {
			return fmt.Errorf("payload too long: %d", payloadLen)
		}

		actHeader := ActionHeader{
			Tick:       int32(act.Tick),
			ActionType: uint8(act.Action),
			TokenLen:   uint8(len(tokenBytes)),
			PayloadLen: uint16(payloadLen),
		}

		if err := binary.Write(w, binary.LittleEndian, &actHeader); err != nil {
			return err
		}

		// Пишем динамические данные (тело)
		if _, err := w.Write(tokenBytes); err != nil {
			return err
		}
		if payloadLen > 0 {
			if _, err := w.Write(act.Payload); err != nil {
				return err
			}
		}
	}

	return nil
}
