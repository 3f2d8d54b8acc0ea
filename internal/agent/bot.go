package agent

import (
	"context"
	"encoding/json"
	"errors"

	"stealth-server/internal/domain"
	"stealth-server/internal/engine"
	"stealth-server/pkg/api"
	"stealth-server/pkg/logger"
	"stealth-server/pkg/utils"

	"github.com/sirupsen/logrus"
)

// ErrGaveUp - бота замечали больше MaxRetries раз подряд на одном отрезке маршрута
var ErrGaveUp = errors.New("bot gave up after repeated detections")

const defaultMaxRetries = 3

// Bot представляет собой игрока без экрана (Headless Agent).
// Подключается к хабу как обычный клиент и проходит комнату по заданному маршруту,
// отправляя по одной команде на каждый полученный кадр.
//
// После обнаружения комната возвращает игрока на чекпоинт, и бот продолжает
// маршрут с того шага, на котором он в последний раз стоял на чекпоинте.
type Bot struct {
	ID      string
	RoomID  int
	Service *engine.GameService
	Inbox   chan api.ServerResponse

	MaxRetries int

	route      []Step
	next       int // следующий шаг маршрута
	checkpoint int // шаг, с которого продолжать после респауна
	detections int
	retries    int
	lastMove   bool // последний отправленный шаг был MOVE

	log *logrus.Entry
}

func NewBot(service *engine.GameService, roomID int, route []Step) *Bot {
	id := utils.GenerateID("bot_")
	return &Bot{
		ID:         id,
		RoomID:     roomID,
		Service:    service,
		Inbox:      service.Hub.Register(id, roomID),
		MaxRetries: defaultMaxRetries,
		route:      route,
		log: logger.Log.WithFields(logrus.Fields{
			"component": "bot",
			"bot":       id,
			"instance":  roomID,
		}),
	}
}

// Run слушает кадры комнаты до конца маршрута или отмены ctx.
// Должен быть запущен в горутине.
func (b *Bot) Run(ctx context.Context) error {
	defer b.Service.Hub.Unregister(b.ID)

	b.log.WithField("steps", len(b.route)).Info("Bot started")
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case frame, ok := <-b.Inbox:
			if !ok {
				return nil
			}
			done, err := b.Handle(frame)
			if done {
				return err
			}
		}
	}
}

// Handle реагирует на один кадр. done = true, когда маршрут пройден или бот сдался.
func (b *Bot) Handle(frame api.ServerResponse) (done bool, err error) {
	if frame.Type == "ERROR" {
		return false, nil
	}

	if frame.Detections > b.detections {
		b.detections = frame.Detections
		b.retries++
		b.log.WithFields(logrus.Fields{
			"tick":   frame.Tick,
			"step":   b.next,
			"resume": b.checkpoint,
		}).Info("Bot detected, resuming from checkpoint")
		if b.retries > b.MaxRetries {
			return true, ErrGaveUp
		}
		b.next = b.checkpoint
	} else if b.lastMove && b.onCheckpoint(frame) {
		b.checkpoint = b.next
		b.retries = 0
	}

	if b.next >= len(b.route) {
		b.log.WithField("tick", frame.Tick).Info("Bot finished route")
		return true, nil
	}

	if err := b.send(b.route[b.next]); err != nil {
		// Очередь переполнена: повторим шаг на следующем кадре
		b.log.WithError(err).Warn("Bot command not accepted")
		return false, nil
	}
	b.lastMove = b.route[b.next].Action == domain.ActionMove
	b.next++
	return false, nil
}

func (b *Bot) onCheckpoint(frame api.ServerResponse) bool {
	return frame.Player != nil && frame.Checkpoint != nil && frame.Player.Pos == *frame.Checkpoint
}

func (b *Bot) send(step Step) error {
	cmd := api.ClientCommand{
		Action: step.Action.String(),
		Token:  b.ID,
	}

	var payload any
	switch step.Action {
	case domain.ActionMove:
		off := step.Dir.Offset()
		payload = api.DirectionPayload{Dx: off.X, Dy: off.Y}
	case domain.ActionInteract:
		payload = api.FacingPayload{Direction: step.Dir.String()}
	}
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return err
		}
		cmd.Payload = raw
	}

	return b.Service.ProcessCommand(b.RoomID, cmd)
}
