package engine

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"stealth-server/internal/domain"
	"stealth-server/internal/engine/handlers"
	"stealth-server/internal/engine/handlers/actions"
	"stealth-server/internal/systems"
	"stealth-server/pkg/api"
	"stealth-server/pkg/logger"

	"github.com/sasha-s/go-deadlock"
	"github.com/sirupsen/logrus"
)

var ErrCommandQueueFull = errors.New("command queue is full")

// Instance представляет собой одну запущенную комнату.
//
// Все изменения комнаты, камер и реестра наблюдателей происходят в Step,
// на одной горутине. Другие горутины читают только опубликованный снимок.
type Instance struct {
	ID        int
	LevelName string // Шаблон или файл, из которого собрана комната

	Board    *domain.Board
	Cameras  []*systems.Camera
	Watchers *systems.WatcherRegistry

	// Каналы коммуникации
	CommandChan chan domain.InternalCommand

	CurrentTick int            // Номер кадра
	Detections  int            // Сколько раз игрока заметили
	Logs        []api.LogEntry // Журнал с прошлого снимка
	logSeq      int

	Replay    *domain.ReplaySession // Лента команд
	recording bool

	// OnFrame вызывается с каждым новым снимком (рассылка клиентам)
	OnFrame func(api.ServerResponse)

	detected []domain.DetectionEvent // обнаружения текущего кадра

	// Снимок комнаты для респауна
	checkpoint       *domain.Board
	checkpointActive map[string]bool

	handlers map[domain.ActionType]handlers.HandlerFunc

	snapMu   deadlock.RWMutex
	snapshot api.ServerResponse

	log *logrus.Entry
}

// NewInstance собирает комнату и ее камеры. Камеры с перерезанным щитком
// создаются выключенными.
func NewInstance(id int, levelName string, board *domain.Board, cfg Config) *Instance {
	if cfg.CommandBuffer <= 0 {
		cfg.CommandBuffer = NewConfig().CommandBuffer
	}
	i := &Instance{
		ID:          id,
		LevelName:   levelName,
		Board:       board,
		Watchers:    systems.NewWatcherRegistry(),
		CommandChan: make(chan domain.InternalCommand, cfg.CommandBuffer),
		Logs:        []api.LogEntry{},
		recording:   cfg.RecordReplays,
		Replay: &domain.ReplaySession{
			RoomID:    id,
			LevelName: levelName,
			Timestamp: time.Now().Unix(),
			Actions:   make([]domain.ReplayAction, 0),
		},
		handlers: make(map[domain.ActionType]handlers.HandlerFunc),
		log: logger.Log.WithFields(logrus.Fields{
			"component": "instance",
			"instance":  id,
		}),
	}

	for _, rec := range board.Cameras {
		var opts []systems.CameraOption
		if rec.HasWireBox() {
			if owner, ok := board.WireBoxAt(rec.WireBox); !ok || owner != rec.ID {
				opts = append(opts, systems.StartInactive())
			}
		}
		cam := systems.NewCamera(rec, opts...)
		cam.OnPlayerDetected(i.onPlayerDetected)
		i.Cameras = append(i.Cameras, cam)
	}

	i.registerHandlers()
	i.saveCheckpoint()
	i.snapshot = i.buildSnapshot()
	return i
}

func (i *Instance) registerHandlers() {
	i.handlers[domain.ActionInit] = handlers.WithEmptyPayload(actions.HandleInit)
	i.handlers[domain.ActionWait] = handlers.WithEmptyPayload(actions.HandleWait)
	i.handlers[domain.ActionMove] = handlers.WithPayload(actions.HandleMove)
	i.handlers[domain.ActionInteract] = handlers.WithPayload(actions.HandleInteract)
}

// Run запускает цикл кадров ЭТОЙ комнаты до отмены ctx.
func (i *Instance) Run(ctx context.Context, tickRate time.Duration) {
	i.log.WithField("tick_rate", tickRate).Info("Instance loop started")

	ticker := time.NewTicker(tickRate)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			i.log.WithField("tick", i.CurrentTick).Info("Instance loop stopped")
			return
		case <-ticker.C:
			i.Step()
		}
	}
}

// Enqueue ставит команду в очередь комнаты, не блокируясь.
func (i *Instance) Enqueue(cmd domain.InternalCommand) error {
	select {
	case i.CommandChan <- cmd:
		return nil
	default:
		return ErrCommandQueueFull
	}
}

// Step - один кадр: команды, камеры, реакция на обнаружение, снимок.
func (i *Instance) Step() api.ServerResponse {
	return i.stepWith(i.drainCommands())
}

func (i *Instance) stepWith(cmds []domain.InternalCommand) api.ServerResponse {
	i.CurrentTick++

	for _, cmd := range cmds {
		i.executeCommand(cmd)
	}

	i.updateCameras()

	if len(i.detected) > 0 {
		i.respondToDetection()
	}

	return i.publish()
}

func (i *Instance) drainCommands() []domain.InternalCommand {
	var cmds []domain.InternalCommand
	for {
		select {
		case cmd := <-i.CommandChan:
			cmds = append(cmds, cmd)
		default:
			return cmds
		}
	}
}

// executeCommand выполняет команду в контексте комнаты
func (i *Instance) executeCommand(cmd domain.InternalCommand) {
	handler, ok := i.handlers[cmd.Action]
	if !ok {
		i.log.WithField("action", cmd.Action.String()).Warn("No handler for action")
		return
	}

	if i.recording {
		i.recordAction(cmd)
	}

	ctx := handlers.Context{
		Board:   i.Board,
		Cameras: i,
		Token:   cmd.Token,
		Tick:    i.CurrentTick,
	}

	result, err := handler(ctx, cmd.Payload)
	if err != nil {
		i.log.WithFields(logrus.Fields{
			"action": cmd.Action.String(),
			"token":  cmd.Token,
		}).WithError(err).Warn("Command rejected")
		i.AddLog("Команда отклонена: "+err.Error(), "ERROR")
		return
	}

	if result.Msg != "" {
		i.AddLog(result.Msg, result.MsgType)
	}

	if result.Moved && i.Board.Player == i.Board.Checkpoint {
		i.saveCheckpoint()
		i.AddLog("Чекпоинт сохранен.", "INFO")
	}
}

func (i *Instance) recordAction(cmd domain.InternalCommand) {
	i.Replay.Actions = append(i.Replay.Actions, domain.ReplayAction{
		Tick:    i.CurrentTick,
		Token:   cmd.Token,
		Action:  cmd.Action,
		Payload: cmd.Payload,
	})
}

func (i *Instance) updateCameras() {
	for _, cam := range i.Cameras {
		cam.Update(i.Board, i.Watchers, i.CurrentTick)
	}
}

func (i *Instance) onPlayerDetected(ev domain.DetectionEvent) {
	i.detected = append(i.detected, ev)
}

// respondToDetection возвращает комнату к последнему чекпоинту.
// Несколько камер в одном кадре дают одно обнаружение.
func (i *Instance) respondToDetection() {
	ev := i.detected[0]
	i.Detections++

	i.log.WithFields(logrus.Fields{
		"camera_id": ev.CameraID,
		"player":    ev.Player,
		"cameras":   len(i.detected),
	}).Info("Player detected, respawning at checkpoint")
	i.AddLog(fmt.Sprintf("Камера %s заметила вас!", ev.CameraID), "ALERT")

	i.restoreCheckpoint()
	i.AddLog("Вы вернулись на чекпоинт.", "INFO")

	// Обнаружение на самом чекпоинте не считается
	i.updateCameras()
	i.detected = i.detected[:0]
}

func (i *Instance) saveCheckpoint() {
	i.checkpoint = i.Board.Clone()
	i.checkpointActive = make(map[string]bool, len(i.Cameras))
	for _, cam := range i.Cameras {
		i.checkpointActive[cam.ID] = cam.Active()
	}
}

func (i *Instance) restoreCheckpoint() {
	i.Board = i.checkpoint.Clone()
	for _, cam := range i.Cameras {
		want := i.checkpointActive[cam.ID]
		switch {
		case want && !cam.Active():
			cam.Activate(i.Board, i.Watchers)
		case !want && cam.Active():
			cam.Deactivate(i.Watchers)
		}
	}
}

// DisableCamera выключает камеру (щиток перерезан).
func (i *Instance) DisableCamera(id string) error {
	cam := i.Camera(id)
	if cam == nil {
		return fmt.Errorf("%w: %s", domain.ErrUnknownCamera, id)
	}
	cam.Deactivate(i.Watchers)
	return nil
}

// Camera ищет камеру по ID
func (i *Instance) Camera(id string) *systems.Camera {
	for _, cam := range i.Cameras {
		if cam.ID == id {
			return cam
		}
	}
	return nil
}

// publish строит снимок, сохраняет его для читателей и отдает в OnFrame.
func (i *Instance) publish() api.ServerResponse {
	snap := i.buildSnapshot()
	i.Logs = []api.LogEntry{}

	i.snapMu.Lock()
	i.snapshot = snap
	i.snapMu.Unlock()

	if i.OnFrame != nil {
		i.OnFrame(snap)
	}
	return snap
}

// Snapshot возвращает последний опубликованный снимок.
// Безопасен для вызова с любой горутины: снимок после публикации не меняется.
func (i *Instance) Snapshot() api.ServerResponse {
	i.snapMu.RLock()
	defer i.snapMu.RUnlock()
	return i.snapshot
}

// PlaybackResult - итог прогона записи
type PlaybackResult struct {
	Ticks      int
	Actions    int
	Detections int
	Player     domain.GridPoint
}

// Playback прогоняет запись кадр за кадром без таймера.
// Комната должна быть свежей: собранной из того же уровня, что и запись.
func (i *Instance) Playback(session *domain.ReplaySession) PlaybackResult {
	i.recording = false

	acts := append([]domain.ReplayAction(nil), session.Actions...)
	sort.SliceStable(acts, func(a, b int) bool {
		return acts[a].Tick < acts[b].Tick
	})

	last := 0
	if len(acts) > 0 {
		last = acts[len(acts)-1].Tick
	}

	next := 0
	for i.CurrentTick < last {
		tick := i.CurrentTick + 1
		var cmds []domain.InternalCommand
		for next < len(acts) && acts[next].Tick <= tick {
			a := acts[next]
			cmds = append(cmds, domain.InternalCommand{Action: a.Action, Token: a.Token, Payload: a.Payload})
			next++
		}
		i.stepWith(cmds)
	}

	res := PlaybackResult{
		Ticks:      i.CurrentTick,
		Actions:    len(acts),
		Detections: i.Detections,
		Player:     i.Board.Player,
	}
	i.log.WithFields(logrus.Fields{
		"ticks":      res.Ticks,
		"actions":    res.Actions,
		"detections": res.Detections,
	}).Info("Replay playback finished")
	return res
}
