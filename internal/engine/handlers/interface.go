package handlers

import (
	"encoding/json"

	"stealth-server/internal/domain"
)

// CameraSwitch описывает того, кто умеет включать и выключать камеры комнаты.
// Instance неявно реализует этот интерфейс.
type CameraSwitch interface {
	DisableCamera(id string) error
}

// Context передает хендлеру состояние комнаты.
// Мы передаем ссылки, чтобы хендлер мог менять состояние (мутировать данные).
type Context struct {
	Board   *domain.Board
	Cameras CameraSwitch
	Token   string // Клиент, приславший команду
	Tick    int
}

// Result - возвращает результат выполнения команды.
// Хендлер НЕ пишет в логи комнаты напрямую, он возвращает данные.
type Result struct {
	Msg     string           // Текст лога
	MsgType string           // Тип лога (INFO, ALERT, ERROR)
	Event   domain.EventType // Событие для движка (EventUnknown, если ничего не произошло)
	Moved   bool             // Игрок сменил клетку
}

// HandlerFunc - это контракт для любой команды (MOVE, INTERACT, etc).
type HandlerFunc func(ctx Context, payload json.RawMessage) (Result, error)

// EmptyResult - вспомогательная функция для пустого успешного ответа
func EmptyResult() Result {
	return Result{}
}
