package domain

import "encoding/json"

// InternalCommand - команда для движка комнаты.
// Использует ActionType вместо string.
type InternalCommand struct {
	Action  ActionType
	Token   string          // ID клиента
	Payload json.RawMessage // Сырые данные (парсятся хендлером)
}
