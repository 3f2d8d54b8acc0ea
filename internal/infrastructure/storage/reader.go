package storage

import (
	"bufio"
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"stealth-server/internal/domain"
)

// ErrBadMagic - файл не того формата
var ErrBadMagic = errors.New("invalid magic")

// Больше заранее не выделяем: счетчик в заголовке ничем не подтвержден
const maxPreallocActions = 1024

func (s *ReplayService) Load(path string) (*domain.ReplaySession, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	session, err := ReadReplay(bufio.NewReader(f))
	if err != nil {
		return nil, fmt.Errorf("load replay %s: %w", path, err)
	}
	return session, nil
}

// ReadReplay читает сессию в формате SVRP.
func ReadReplay(r io.Reader) (*domain.ReplaySession, error) {
	// 1. Читаем заголовок целиком
	var header ReplayFileHeader
	if err := binary.Read(r, binary.LittleEndian, &header); err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	if string(header.Magic[:]) != MagicHeader {
		return nil, ErrBadMagic
	}
	if header.Version != Version1 {
		return nil, fmt.Errorf("unsupported version: %d (expected %d)", header.Version, Version1)
	}
	if header.ActionCount < 0 {
		return nil, fmt.Errorf("negative action count: %d", header.ActionCount)
	}

	name := make([]byte, header.LevelNameLen)
	if _, err := io.ReadFull(r, name); err != nil {
		return nil, fmt.Errorf("failed to read level name: %w", err)
	}

	session := &domain.ReplaySession{
		RoomID:    int(header.RoomID),
		LevelName: string(name),
		Timestamp: header.Timestamp,
		Actions:   make([]domain.ReplayAction, 0, min(int(header.ActionCount), maxPreallocActions)),
	}

	// 2. Читаем Actions
	for i := 0; i < int(header.ActionCount); i++ {
		var ah ActionHeader
		if err := binary.Read(r, binary.LittleEndian, &ah); err != nil {
			return nil, fmt.Errorf("action %d: %w", i, err)
		}

		act := domain.ReplayAction{
			Tick:   int(ah.Tick),
			Action: domain.ActionType(ah.ActionType),
		}

		tokenBuf := make([]byte, ah.TokenLen)
		if _, err := io.ReadFull(r, tokenBuf); err != nil {
			return nil, fmt.Errorf("action %d token: %w", i, err)
		}
		act.Token = string(tokenBuf)

		if ah.PayloadLen > 0 {
			act.Payload = make([]byte, ah.PayloadLen)
			if _, err := io.ReadFull(r, act.Payload); err != nil {
				return nil, fmt.Errorf("action %d payload: %w", i, err)
			}
		} else {
			act.Payload = json.RawMessage{}
		}

		session.Actions = append(session.Actions, act)
	}

	return session, nil
}
