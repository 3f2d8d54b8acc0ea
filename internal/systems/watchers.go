package systems

import (
	"stealth-server/internal/domain"
	"stealth-server/pkg/logger"

	"github.com/zyedidia/generic/mapset"
)

// WatcherRegistry считает, сколько активных камер смотрит на каждую клетку.
// Меняется только из кадра комнаты, блокировок нет.
type WatcherRegistry struct {
	counts map[domain.GridPoint]int
}

func NewWatcherRegistry() *WatcherRegistry {
	return &WatcherRegistry{counts: make(map[domain.GridPoint]int)}
}

func (r *WatcherRegistry) AddWatcher(p domain.GridPoint) {
	r.counts[p]++
}

// RemoveWatcher уменьшает счетчик. Уход в минус - ошибка учета, ее логируем.
func (r *WatcherRegistry) RemoveWatcher(p domain.GridPoint) {
	n, ok := r.counts[p]
	if !ok {
		logger.For("watcher_registry").WithField("tile", p).Warn("RemoveWatcher on unwatched tile ignored.")
		return
	}
	if n <= 1 {
		delete(r.counts, p)
		return
	}
	r.counts[p] = n - 1
}

func (r *WatcherRegistry) IsWatched(p domain.GridPoint) bool {
	return r.counts[p] > 0
}

func (r *WatcherRegistry) Count(p domain.GridPoint) int {
	return r.counts[p]
}

// Len - число клеток, на которые смотрит хотя бы одна камера
func (r *WatcherRegistry) Len() int {
	return len(r.counts)
}

// Apply переводит вклад одной камеры из old в next: снимает то, что пропало,
// добавляет то, что появилось. Общие клетки не трогаются.
func (r *WatcherRegistry) Apply(old, next mapset.Set[domain.GridPoint]) {
	old.Each(func(p domain.GridPoint) {
		if !next.Has(p) {
			r.RemoveWatcher(p)
		}
	})
	next.Each(func(p domain.GridPoint) {
		if !old.Has(p) {
			r.AddWatcher(p)
		}
	})
}

// Tiles - снимок наблюдаемых клеток в стабильном порядке
func (r *WatcherRegistry) Tiles() []domain.GridPoint {
	out := make([]domain.GridPoint, 0, len(r.counts))
	for p := range r.counts {
		out = append(out, p)
	}
	domain.SortPoints(out)
	return out
}

// Counts - копия счетчиков (для отладки и рендера)
func (r *WatcherRegistry) Counts() map[domain.GridPoint]int {
	out := make(map[domain.GridPoint]int, len(r.counts))
	for p, n := range r.counts {
		out[p] = n
	}
	return out
}
