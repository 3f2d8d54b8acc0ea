package systems

import (
	"errors"
	"math"

	"stealth-server/internal/domain"
	"stealth-server/pkg/logger"

	"github.com/sirupsen/logrus"
	"github.com/zyedidia/generic/mapset"
)

// Room - то, что камере нужно от комнаты.
type Room interface {
	WalkableQuery
	OcclusionQuery
	PlayerPosition() domain.GridPoint
}

// CameraState - состояние камеры
type CameraState uint8

const (
	CameraInactive CameraState = iota
	CameraActive
)

func (s CameraState) String() string {
	if s == CameraActive {
		return "ACTIVE"
	}
	return "INACTIVE"
}

// CameraOption настраивает камеру при создании
type CameraOption func(*Camera)

// StartInactive создает камеру уже отключенной (щиток перерезан в сохранении).
func StartInactive() CameraOption {
	return func(c *Camera) {
		c.state = CameraInactive
	}
}

// Camera - камера наблюдения и ее конус обзора.
//
// Геометрия (основание лучей и веер) кешируется и пересчитывается только
// после SetPosition, SetTarget или SetSpread. Препятствия проверяются
// каждый кадр в Update: сдвинутый ящик сразу меняет конус.
type Camera struct {
	ID string

	position domain.GridPoint
	target   domain.GridPoint
	spread   float32
	wireBox  domain.GridPoint

	state   CameraState
	rayBase domain.GridPoint
	facing  domain.Facing
	fan     Fan
	dirty   bool

	watched    mapset.Set[domain.GridPoint]
	playerSeen bool

	listeners []func(domain.DetectionEvent)
	log       *logrus.Entry
}

// NewCamera создает камеру по сохраненной записи.
func NewCamera(rec domain.CameraRecord, opts ...CameraOption) *Camera {
	c := &Camera{
		ID:       rec.ID,
		position: rec.Position,
		target:   rec.Target,
		spread:   domain.ClampSpread(rec.Spread),
		wireBox:  rec.WireBox,
		state:    CameraActive,
		dirty:    true,
		watched:  mapset.New[domain.GridPoint](),
		log: logger.Log.WithFields(logrus.Fields{
			"component": "camera",
			"camera_id": rec.ID,
		}),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Record возвращает запись для сохранения
func (c *Camera) Record() domain.CameraRecord {
	return domain.CameraRecord{
		ID:       c.ID,
		Position: c.position,
		Target:   c.target,
		Spread:   float64(c.spread),
		WireBox:  c.wireBox,
	}
}

func (c *Camera) Position() domain.GridPoint { return c.position }
func (c *Camera) Target() domain.GridPoint   { return c.target }
func (c *Camera) Spread() float32            { return c.spread }
func (c *Camera) WireBox() domain.GridPoint  { return c.wireBox }
func (c *Camera) State() CameraState         { return c.state }
func (c *Camera) Active() bool               { return c.state == CameraActive }

// RayBase - клетка, из которой выходят лучи. Валидна после первого Update.
func (c *Camera) RayBase() domain.GridPoint { return c.rayBase }
func (c *Camera) Facing() domain.Facing     { return c.facing }

// Fan - текущий веер (для отладки)
func (c *Camera) Fan() Fan { return c.fan }

func (c *Camera) SetPosition(p domain.GridPoint) {
	if p != c.position {
		c.position = p
		c.dirty = true
	}
}

func (c *Camera) SetTarget(p domain.GridPoint) {
	if p != c.target {
		c.target = p
		c.dirty = true
	}
}

// SetSpread задает полуугол; значение приводится к [0, Pi).
func (c *Camera) SetSpread(s float64) {
	clamped := domain.ClampSpread(s)
	if math.IsNaN(s) || s < 0 || s >= domain.MaxSpread {
		c.log.WithFields(logrus.Fields{"requested": s, "clamped": clamped}).Warn("Camera spread clamped.")
	}
	if clamped != c.spread {
		c.spread = clamped
		c.dirty = true
	}
}

// OnPlayerDetected подписывает обработчик на обнаружение игрока.
func (c *Camera) OnPlayerDetected(fn func(domain.DetectionEvent)) {
	c.listeners = append(c.listeners, fn)
}

// WatchedTiles - копия видимых клеток в стабильном порядке.
func (c *Camera) WatchedTiles() []domain.GridPoint {
	out := make([]domain.GridPoint, 0, c.watched.Size())
	c.watched.Each(func(p domain.GridPoint) {
		out = append(out, p)
	})
	domain.SortPoints(out)
	return out
}

// Watches - видит ли камера клетку
func (c *Camera) Watches(p domain.GridPoint) bool {
	return c.watched.Has(p)
}

// Deactivate выключает камеру: видимые клетки снимаются с учета в реестре.
// Возвращает false, если камера уже выключена.
func (c *Camera) Deactivate(registry *WatcherRegistry) bool {
	if c.state == CameraInactive {
		return false
	}
	empty := mapset.New[domain.GridPoint]()
	registry.Apply(c.watched, empty)
	c.watched = empty
	c.playerSeen = false
	c.state = CameraInactive

	c.log.Info("Camera deactivated.")
	return true
}

// Activate включает камеру обратно и сразу пересчитывает конус.
// Возвращает false, если камера уже включена.
func (c *Camera) Activate(room Room, registry *WatcherRegistry) bool {
	if c.state == CameraActive {
		return false
	}
	c.state = CameraActive
	c.dirty = true
	c.refresh(room, registry)

	c.log.Info("Camera activated.")
	return true
}

// Update - кадр камеры: обновить конус, проверить игрока.
// Возвращает true, если именно в этом кадре игрок был замечен.
func (c *Camera) Update(room Room, registry *WatcherRegistry, tick int) bool {
	if c.state != CameraActive {
		return false
	}
	c.refresh(room, registry)

	player := room.PlayerPosition()
	seen := c.watched.Has(player)
	detected := seen && !c.playerSeen
	c.playerSeen = seen

	if detected {
		ev := domain.DetectionEvent{
			CameraID: c.ID,
			Camera:   c.position,
			Player:   player,
			Tick:     tick,
		}
		c.log.WithFields(logrus.Fields{"player": player, "tick": tick}).Info("Player detected.")
		for _, fn := range c.listeners {
			fn(ev)
		}
	}
	return detected
}

// SeesPlayer - игрок в конусе на последнем кадре
func (c *Camera) SeesPlayer() bool {
	return c.playerSeen
}

func (c *Camera) refresh(room Room, registry *WatcherRegistry) {
	if c.dirty {
		c.rebuildGeometry(room)
	}
	next := WalkFan(c.fan, room)
	registry.Apply(c.watched, next)
	c.watched = next
}

func (c *Camera) rebuildGeometry(room Room) {
	aim := c.target.Sub(c.position)
	target := c.target

	degenerate := aim.IsZero()
	if degenerate {
		aim = domain.FacingDown.Offset()
	}

	base, facing, err := ResolveRayBase(c.position, aim, room)
	if errors.Is(err, domain.ErrNoWalkableNeighbor) {
		c.log.WithFields(logrus.Fields{
			"position": c.position,
			"ray_base": base,
		}).WithError(err).Warn("Camera has no floor next to it, room is misconfigured.")
	}

	// Лучи идут от основания: цель на основании дает такой же нулевой центральный луч
	if degenerate || target == base {
		aimErr := &domain.DegenerateAimError{CameraID: c.ID, Position: c.position, Target: c.target}
		c.log.WithError(aimErr).Warn("Degenerate aim, using default facing.")
		target = base.Add(scale(facing.Offset(), domain.DefaultAimLength))
	}

	c.rayBase = base
	c.facing = facing
	c.fan = BuildFan(base, target, float64(c.spread))
	c.dirty = false

	c.log.WithFields(logrus.Fields{
		"ray_base": base,
		"facing":   facing,
		"rays":     len(c.fan.Rays),
	}).Debug("Camera geometry rebuilt.")
}

func scale(p domain.GridPoint, k int) domain.GridPoint {
	return domain.GridPoint{X: p.X * k, Y: p.Y * k}
}
