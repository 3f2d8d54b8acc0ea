package domain

// EventType - Внутренний числовой идентификатор события комнаты
type EventType uint8

const (
	EventUnknown EventType = iota
	EventPlayerDetected
	EventCameraDisabled
	EventCameraEnabled
	EventPlayerRespawned
)

var eventCmdToString = map[EventType]string{
	EventPlayerDetected:  "PLAYER_DETECTED",
	EventCameraDisabled:  "CAMERA_DISABLED",
	EventCameraEnabled:   "CAMERA_ENABLED",
	EventPlayerRespawned: "PLAYER_RESPAWNED",
}

func (e EventType) String() string {
	if val, ok := eventCmdToString[e]; ok {
		return val
	}
	return "UNKNOWN"
}

// DetectionEvent - камера заметила игрока.
type DetectionEvent struct {
	CameraID string
	Camera   GridPoint // где висит камера
	Player   GridPoint // где стоял игрок
	Tick     int
}
