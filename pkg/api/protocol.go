package api

import (
	"encoding/json"
)

// --- СЕРВЕР -> КЛИЕНТ ---

// ServerResponse это корневой объект, который сервер отправляет клиенту.
// Он представляет собой полный "снимок" комнаты после очередного кадра.
// Отправляется каждый кадр всем подписчикам комнаты.
type ServerResponse struct {
	// Type тип сообщения: "UPDATE" или "ERROR".
	Type string `json:"type"`

	// Tick номер кадра комнаты. Увеличивается на единицу каждый кадр.
	Tick int `json:"tick"`

	// RoomID комната, к которой относится снимок.
	RoomID int `json:"roomId"`

	// LevelName имя шаблона или файла, из которого собрана комната.
	LevelName string `json:"levelName,omitempty"`

	// MyClientID ID клиента, которому адресован снимок.
	MyClientID string `json:"myClientId,omitempty"`

	// Grid метаданные о размере комнаты.
	Grid *GridMeta `json:"grid,omitempty"`

	// Walls все клетки-стены. Комнаты маленькие, поэтому отправляются целиком.
	Walls []Point `json:"walls,omitempty"`

	// Player позиция игрока и состояние его рук.
	Player *PlayerView `json:"player,omitempty"`

	// Checkpoint клетка, куда игрок возвращается после обнаружения.
	Checkpoint *Point `json:"checkpoint,omitempty"`

	// Boxes ящики, лежащие на полу.
	Boxes []Point `json:"boxes,omitempty"`

	// WireBoxes щитки камер, которые еще не перерезаны.
	WireBoxes []WireBoxView `json:"wireBoxes,omitempty"`

	// Cameras все камеры комнаты, включая отключенные.
	Cameras []CameraView `json:"cameras,omitempty"`

	// Watched клетки под наблюдением и число камер, которые их видят.
	Watched []WatchedTileView `json:"watched,omitempty"`

	// Detections сколько раз игрока замечали с начала сессии.
	Detections int `json:"detections"`

	// Logs срез новых сообщений, сгенерированных с прошлого кадра.
	Logs []LogEntry `json:"logs,omitempty"`
}

// GridMeta содержит размеры комнаты, чтобы клиент знал,
// какую сетку для рендеринга нужно подготовить.
type GridMeta struct {
	Width  int `json:"w"`
	Height int `json:"h"`
}

// Point клетка сетки.
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// PlayerView это DTO для игрока.
type PlayerView struct {
	Pos Point `json:"pos"`

	// HoldsBox true, если игрок несет ящик. Несомый ящик не закрывает обзор.
	HoldsBox bool `json:"holdsBox"`

	// Watched true, если клетку игрока сейчас видит хотя бы одна камера.
	Watched bool `json:"watched"`
}

// WireBoxView щиток, питающий камеру.
type WireBoxView struct {
	Pos      Point  `json:"pos"`
	CameraID string `json:"cameraId"`
}

// CameraView это DTO для камеры наблюдения.
type CameraView struct {
	ID       string  `json:"id"`
	Pos      Point   `json:"pos"`
	RayBase  Point   `json:"rayBase"`
	Target   Point   `json:"target"`
	Facing   string  `json:"facing"` // UP, DOWN, LEFT, RIGHT
	Spread   float32 `json:"spread"` // полуугол конуса в радианах
	Active   bool    `json:"active"` // false, если щиток перерезан
	WireBox  *Point  `json:"wireBox,omitempty"`
	Watched  []Point `json:"watched"` // клетки конуса в порядке строк
	Detected bool    `json:"detected"`
}

// WatchedTileView клетка под наблюдением.
type WatchedTileView struct {
	X     int `json:"x"`
	Y     int `json:"y"`
	Count int `json:"count"` // сколько камер видят клетку
}

// LogEntry представляет одну запись в журнале комнаты.
type LogEntry struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	Type      string `json:"type"`      // INFO, ALERT, ERROR
	Timestamp int64  `json:"timestamp"` // Unix milliseconds
}

// --- КЛИЕНТ -> СЕРВЕР ---

// ClientCommand это корневой объект для всех сообщений от клиента к серверу.
type ClientCommand struct {
	// Token ID клиента. Проставляется сервером при подключении.
	Token string `json:"token,omitempty"`

	// Action название действия, которое нужно выполнить.
	Action string `json:"action"`

	// Payload JSON-объект с данными для действия. Его структура зависит от Action.
	Payload json.RawMessage `json:"payload"`
}

// --- Payloads ---

// DirectionPayload используется для перемещения (MOVE).
type DirectionPayload struct {
	Dx int `json:"dx"` // Смещение по X (-1, 0, 1)
	Dy int `json:"dy"` // Смещение по Y (-1, 0, 1)
}

// FacingPayload используется для взаимодействия с соседней клеткой (INTERACT).
type FacingPayload struct {
	Direction string `json:"direction"` // UP, DOWN, LEFT, RIGHT
}
