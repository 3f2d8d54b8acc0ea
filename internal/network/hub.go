package network

import (
	"stealth-server/pkg/api"
	"stealth-server/pkg/logger"

	"github.com/sasha-s/go-deadlock"
)

type subscriber struct {
	roomID int
	ch     chan api.ServerResponse
}

// Broadcaster занимается только рассылкой снимков подписчикам
type Broadcaster struct {
	mu deadlock.RWMutex
	// Мапа: ClientID -> Личный канал и комната, за которой он следит
	subscribers map[string]subscriber
	bufferSize  int
}

func NewBroadcaster() *Broadcaster {
	return &Broadcaster{
		subscribers: make(map[string]subscriber),
		bufferSize:  100,
	}
}

// Register создает личный канал для клиента, следящего за комнатой roomID
func (b *Broadcaster) Register(clientID string, roomID int) chan api.ServerResponse {
	b.mu.Lock()
	defer b.mu.Unlock()

	// Если канал был, закрываем
	if old, ok := b.subscribers[clientID]; ok {
		close(old.ch)
	}

	ch := make(chan api.ServerResponse, b.bufferSize)
	b.subscribers[clientID] = subscriber{roomID: roomID, ch: ch}
	return ch
}

// Unregister удаляет подписчика
func (b *Broadcaster) Unregister(clientID string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if sub, ok := b.subscribers[clientID]; ok {
		close(sub.ch)
		delete(b.subscribers, clientID)
	}
}

// SendTo отправляет сообщение конкретному клиенту (Unicast)
func (b *Broadcaster) SendTo(clientID string, msg api.ServerResponse) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if sub, ok := b.subscribers[clientID]; ok {
		msg.MyClientID = clientID
		b.deliver(clientID, sub.ch, msg)
	}
}

// BroadcastRoom отправляет снимок всем, кто следит за комнатой
func (b *Broadcaster) BroadcastRoom(roomID int, msg api.ServerResponse) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	for id, sub := range b.subscribers {
		if sub.roomID != roomID {
			continue
		}
		personal := msg
		personal.MyClientID = id
		b.deliver(id, sub.ch, personal)
	}
}

// Медленный клиент теряет кадр, комната не ждет
func (b *Broadcaster) deliver(clientID string, ch chan api.ServerResponse, msg api.ServerResponse) {
	select {
	case ch <- msg:
	default:
		logger.Log.WithField("client_id", clientID).Debug("Hub: channel full, frame dropped.")
	}
}

// HasSubscriber проверяет, подключен ли клиент
func (b *Broadcaster) HasSubscriber(clientID string) bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	_, ok := b.subscribers[clientID]
	return ok
}

// RoomOf возвращает комнату клиента
func (b *Broadcaster) RoomOf(clientID string) (int, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	sub, ok := b.subscribers[clientID]
	return sub.roomID, ok
}

// SubscriberCount возвращает количество активных подписчиков.
func (b *Broadcaster) SubscriberCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subscribers)
}

// RoomSubscriberCount возвращает число зрителей комнаты
func (b *Broadcaster) RoomSubscriberCount(roomID int) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	n := 0
	for _, sub := range b.subscribers {
		if sub.roomID == roomID {
			n++
		}
	}
	return n
}
