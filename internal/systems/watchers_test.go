package systems

import (
	"testing"

	"github.com/zyedidia/generic/mapset"
	"stealth-server/internal/domain"
)

func TestWatcherRegistry_RefCounting(t *testing.T) {
	r := NewWatcherRegistry()
	p := domain.Pt(2, 3)

	r.AddWatcher(p)
	r.AddWatcher(p)
	if r.Count(p) != 2 || !r.IsWatched(p) {
		t.Fatalf("expected 2 watchers, got %d", r.Count(p))
	}

	r.RemoveWatcher(p)
	if !r.IsWatched(p) {
		t.Error("tile should still be watched by the second camera")
	}
	r.RemoveWatcher(p)
	if r.IsWatched(p) || r.Len() != 0 {
		t.Error("tile should be unwatched")
	}

	// Лишнее снятие не уводит счетчик в минус
	r.RemoveWatcher(p)
	if r.Count(p) != 0 {
		t.Errorf("count went negative: %d", r.Count(p))
	}
}

func TestWatcherRegistry_Apply(t *testing.T) {
	r := NewWatcherRegistry()
	old := mapset.Of(domain.Pt(0, 0), domain.Pt(1, 0), domain.Pt(2, 0))
	next := mapset.Of(domain.Pt(1, 0), domain.Pt(2, 0), domain.Pt(3, 0))

	r.Apply(mapset.New[domain.GridPoint](), old)
	r.AddWatcher(domain.Pt(1, 0)) // другая камера

	r.Apply(old, next)

	tests := []struct {
		p    domain.GridPoint
		want int
	}{
		{domain.Pt(0, 0), 0},
		{domain.Pt(1, 0), 2},
		{domain.Pt(2, 0), 1},
		{domain.Pt(3, 0), 1},
	}
	for _, tt := range tests {
		if got := r.Count(tt.p); got != tt.want {
			t.Errorf("Count(%v) = %d, want %d", tt.p, got, tt.want)
		}
	}

	want := []domain.GridPoint{domain.Pt(1, 0), domain.Pt(2, 0), domain.Pt(3, 0)}
	if got := r.Tiles(); !pointsEqual(got, want) {
		t.Errorf("Tiles() = %v, want %v", got, want)
	}
}
