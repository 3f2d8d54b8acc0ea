package domain

import "encoding/json"

// ReplayAction - одно действие игрока, привязанное к кадру
type ReplayAction struct {
	Tick    int             `json:"tick"`
	Token   string          `json:"token"`   // Кто сделал
	Action  ActionType      `json:"action"`  // Что сделал
	Payload json.RawMessage `json:"payload"` // С какими параметрами
}

// ReplaySession - полная запись прохождения комнаты
type ReplaySession struct {
	RoomID    int            `json:"roomId"`
	LevelName string         `json:"levelName"` // Шаблон или файл, из которого собрана комната
	Timestamp int64          `json:"timestamp"`
	Actions   []ReplayAction `json:"actions"`
}
