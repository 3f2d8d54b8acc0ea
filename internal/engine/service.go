package engine

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"stealth-server/internal/domain"
	"stealth-server/internal/infrastructure/storage"
	"stealth-server/internal/network"
	"stealth-server/pkg/api"
	"stealth-server/pkg/levels"
	"stealth-server/pkg/logger"

	"github.com/sasha-s/go-deadlock"
	"github.com/sirupsen/logrus"
)

// Префикс имени уровня для встроенных комнат
const templatePrefix = "template:"

var ErrUnknownRoom = errors.New("unknown room")

// GameService владеет комнатами и раздает их снимки через Hub
type GameService struct {
	cfg Config

	mu        deadlock.RWMutex
	instances map[int]*Instance
	nextID    int

	Hub     *network.Broadcaster
	Replays *storage.ReplayService

	wg  sync.WaitGroup
	log *logrus.Entry
}

func NewService(cfg Config) *GameService {
	return &GameService{
		cfg:       cfg,
		instances: make(map[int]*Instance),
		Hub:       network.NewBroadcaster(),
		Replays:   storage.NewReplayService(cfg.ReplayDir),
		log:       logger.Log.WithField("component", "game_service"),
	}
}

// DefaultLevel - имя уровня из конфига: файл, если задан, иначе шаблон
func (s *GameService) DefaultLevel() string {
	if s.cfg.LevelPath != "" {
		return s.cfg.LevelPath
	}
	return templatePrefix + s.cfg.Template
}

// LoadBoard собирает комнату по имени уровня: "template:<name>" или путь к файлу SVLV
func LoadBoard(levelName string) (*domain.Board, error) {
	if name, ok := strings.CutPrefix(levelName, templatePrefix); ok {
		return levels.Build(name)
	}
	return storage.LoadLevel(levelName)
}

// CreateRoom собирает новую комнату и подключает ее к рассылке
func (s *GameService) CreateRoom(levelName string) (*Instance, error) {
	board, err := LoadBoard(levelName)
	if err != nil {
		return nil, fmt.Errorf("create room: %w", err)
	}

	s.mu.Lock()
	id := s.nextID
	s.nextID++
	inst := NewInstance(id, levelName, board, s.cfg)
	inst.OnFrame = func(frame api.ServerResponse) {
		s.Hub.BroadcastRoom(id, frame)
	}
	s.instances[id] = inst
	s.mu.Unlock()

	s.log.WithFields(logrus.Fields{
		"instance": id,
		"level":    levelName,
		"cameras":  len(inst.Cameras),
	}).Info("Room created")
	return inst, nil
}

// Start запускает циклы всех комнат. Циклы завершаются с отменой ctx.
func (s *GameService) Start(ctx context.Context) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, inst := range s.instances {
		s.wg.Add(1)
		go func(inst *Instance) {
			defer s.wg.Done()
			inst.Run(ctx, s.cfg.TickRate)
		}(inst)
	}
}

// Wait ждет остановки всех циклов
func (s *GameService) Wait() {
	s.wg.Wait()
}

// Instance возвращает комнату по ID
func (s *GameService) Instance(id int) (*Instance, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	inst, ok := s.instances[id]
	return inst, ok
}

// RoomIDs - ID всех комнат по возрастанию
func (s *GameService) RoomIDs() []int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids := make([]int, 0, len(s.instances))
	for id := range s.instances {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

// ProcessCommand принимает команду от внешнего мира (WebSocket)
func (s *GameService) ProcessCommand(roomID int, externalCmd api.ClientCommand) error {
	actionType := domain.ParseAction(externalCmd.Action)
	if actionType == domain.ActionUnknown {
		return fmt.Errorf("unknown action: %s", externalCmd.Action)
	}

	inst, ok := s.Instance(roomID)
	if !ok {
		return fmt.Errorf("%w: %d", ErrUnknownRoom, roomID)
	}

	return inst.Enqueue(domain.InternalCommand{
		Action:  actionType,
		Token:   externalCmd.Token,
		Payload: externalCmd.Payload,
	})
}

// SaveReplays пишет записи всех комнат, в которых были команды.
// Вызывать после Wait: ленты меняются только циклами комнат.
func (s *GameService) SaveReplays() error {
	if !s.cfg.RecordReplays {
		return nil
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	var errs []error
	for _, inst := range s.instances {
		if len(inst.Replay.Actions) == 0 {
			continue
		}
		path, err := s.Replays.Save(inst.Replay)
		if err != nil {
			errs = append(errs, fmt.Errorf("room %d: %w", inst.ID, err))
			continue
		}
		s.log.WithFields(logrus.Fields{
			"instance": inst.ID,
			"actions":  len(inst.Replay.Actions),
			"path":     path,
		}).Info("Replay saved")
	}
	return errors.Join(errs...)
}

// PlayReplay загружает запись, собирает ее комнату заново и прогоняет команды.
// Комната остается в сервисе, ее итоговый снимок доступен через /debug.
func (s *GameService) PlayReplay(path string) (*Instance, PlaybackResult, error) {
	session, err := s.Replays.Load(path)
	if err != nil {
		return nil, PlaybackResult{}, err
	}

	inst, err := s.CreateRoom(session.LevelName)
	if err != nil {
		return nil, PlaybackResult{}, fmt.Errorf("replay %s: %w", path, err)
	}

	res := inst.Playback(session)
	return inst, res, nil
}
