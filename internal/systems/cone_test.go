package systems

import (
	"math"
	"testing"

	"github.com/zyedidia/generic/mapset"
	"stealth-server/internal/domain"
)

func setToSlice(s mapset.Set[domain.GridPoint]) []domain.GridPoint {
	out := make([]domain.GridPoint, 0, s.Size())
	s.Each(func(p domain.GridPoint) {
		out = append(out, p)
	})
	domain.SortPoints(out)
	return out
}

func TestRotateVector(t *testing.T) {
	tests := []struct {
		v     domain.GridPoint
		angle float64
		want  domain.GridPoint
	}{
		{domain.Pt(0, -6), 0, domain.Pt(0, -6)},
		{domain.Pt(5, 0), math.Pi / 2, domain.Pt(0, 5)},
		{domain.Pt(0, -6), 0.6, domain.Pt(3, -5)},
		{domain.Pt(0, -6), -0.6, domain.Pt(-3, -5)},
	}
	for _, tt := range tests {
		if got := RotateVector(tt.v, tt.angle); got != tt.want {
			t.Errorf("RotateVector(%v, %v) = %v, want %v", tt.v, tt.angle, got, tt.want)
		}
	}
}

func TestBuildCone_ZeroSpread(t *testing.T) {
	room := openRoom(10, 10)

	got := setToSlice(BuildCone(domain.Pt(5, 4), domain.Pt(5, 0), 0, room))
	want := []domain.GridPoint{domain.Pt(5, 0), domain.Pt(5, 1), domain.Pt(5, 2), domain.Pt(5, 3)}
	if !pointsEqual(got, want) {
		t.Errorf("BuildCone = %v, want %v", got, want)
	}
}

func TestBuildCone_DegenerateCenter(t *testing.T) {
	room := openRoom(5, 5)
	if got := BuildCone(domain.Pt(2, 2), domain.Pt(2, 2), 0.5, room); got.Size() != 0 {
		t.Errorf("zero-length cone should be empty, got %v", setToSlice(got))
	}
}

func TestBuildCone_Spread(t *testing.T) {
	room := openRoom(20, 20)
	base := domain.Pt(10, 15)
	target := domain.Pt(10, 9)

	fan := BuildFan(base, target, 0.5)
	watched := WalkFan(fan, room)

	if watched.Has(base) {
		t.Error("cone must not contain its ray base")
	}
	for _, p := range []domain.GridPoint{target, fan.EdgeA, fan.EdgeB} {
		if !watched.Has(p) {
			t.Errorf("open room cone should reach %v", p)
		}
	}
	if fan.EdgeA != domain.Pt(7, 10) || fan.EdgeB != domain.Pt(13, 10) {
		t.Errorf("edges = %v %v, want (7,10) (13,10)", fan.EdgeA, fan.EdgeB)
	}
	// Ничего позади основания
	watched.Each(func(p domain.GridPoint) {
		if p.Y >= base.Y {
			t.Errorf("tile %v is behind the camera", p)
		}
	})
}

// Крайние лучи конуса зеркальны относительно центрального
func TestBuildCone_EdgeSymmetry(t *testing.T) {
	base := domain.Pt(10, 15)
	for _, spread := range []float64{0.2, 0.45, 0.6, 1.0, 1.4} {
		for _, length := range []int{3, 6, 9} {
			fan := BuildFan(base, base.Shift(0, -length), spread)

			a := CheckRay(base, fan.EdgeA.Sub(base))
			b := CheckRay(base, fan.EdgeB.Sub(base))
			if len(a) != len(b) {
				t.Fatalf("spread %v len %d: edge rays differ in length %d vs %d", spread, length, len(a), len(b))
			}
			for i := range a {
				da, db := a[i].Sub(base), b[i].Sub(base)
				if da.X != -db.X || da.Y != db.Y {
					t.Fatalf("spread %v len %d: %v and %v are not mirrored", spread, length, a[i], b[i])
				}
			}
		}
	}
}

// Ни одна клетка после первой стены на луче не видна этим лучом
func TestWalkRay_StopsAtOccluder(t *testing.T) {
	room := roomWithWalls(10, 10, domain.Pt(5, 2))
	ray := CheckRay(domain.Pt(5, 4), domain.Pt(0, -4))

	visible := WalkRay(ray, room)
	want := []domain.GridPoint{domain.Pt(5, 3)}
	if !pointsEqual(visible, want) {
		t.Errorf("WalkRay = %v, want %v", visible, want)
	}

	// Для каждого луча веера: видимая часть - строгий префикс до первой стены
	room = roomWithWalls(20, 20, domain.Pt(9, 11), domain.Pt(12, 10), domain.Pt(10, 12))
	fan := BuildFan(domain.Pt(10, 15), domain.Pt(10, 8), 0.7)
	for _, ray := range fan.Rays {
		vis := WalkRay(ray, room)
		for _, p := range vis {
			if room.IsOccludingVision(p) {
				t.Fatalf("occluding tile %v reported visible", p)
			}
		}
		if len(vis) < len(ray) && !room.IsOccludingVision(ray[len(vis)]) {
			t.Fatalf("ray stopped at %v without an occluder", ray[len(vis)])
		}
	}
}

func TestBuildCone_BoxOccludes(t *testing.T) {
	room := openRoom(10, 10)
	_ = room.PlaceBox(domain.Pt(5, 2))

	got := setToSlice(BuildCone(domain.Pt(5, 4), domain.Pt(5, 0), 0, room))
	if !pointsEqual(got, []domain.GridPoint{domain.Pt(5, 3)}) {
		t.Errorf("box should stop the ray, got %v", got)
	}

	room.RemoveBox(domain.Pt(5, 2))
	if got := BuildCone(domain.Pt(5, 4), domain.Pt(5, 0), 0, room); got.Size() != 4 {
		t.Errorf("ray should pass once the box is gone, got %v", setToSlice(got))
	}
}

func TestBuildCone_Idempotent(t *testing.T) {
	room := roomWithWalls(16, 16, domain.Pt(6, 6), domain.Pt(9, 4), domain.Pt(3, 8))
	base, target := domain.Pt(7, 12), domain.Pt(4, 2)

	first := setToSlice(BuildCone(base, target, 0.8, room))
	second := setToSlice(BuildCone(base, target, 0.8, room))
	if !pointsEqual(first, second) {
		t.Errorf("BuildCone is not idempotent:\n%v\n%v", first, second)
	}
}

// Конус у края комнаты не выходит за сетку
func TestBuildCone_StaysInBounds(t *testing.T) {
	room := openRoom(6, 6)
	watched := BuildCone(domain.Pt(0, 5), domain.Pt(9, -4), 1.2, room)
	watched.Each(func(p domain.GridPoint) {
		if !room.InBounds(p) {
			t.Errorf("cone leaked outside the room at %v", p)
		}
	})
	if watched.Size() == 0 {
		t.Error("cone should see something inside the room")
	}
}
