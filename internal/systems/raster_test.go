package systems

import (
	"testing"

	"stealth-server/internal/domain"
)

func TestRasterize(t *testing.T) {
	pt := domain.Pt
	tests := []struct {
		name   string
		p1, p2 domain.GridPoint
		want   []domain.GridPoint
	}{
		{"zero length", pt(3, 3), pt(3, 3), []domain.GridPoint{pt(3, 3)}},
		{"horizontal", pt(0, 0), pt(3, 0), []domain.GridPoint{pt(0, 0), pt(1, 0), pt(2, 0), pt(3, 0)}},
		{"vertical up", pt(2, 3), pt(2, 0), []domain.GridPoint{pt(2, 3), pt(2, 2), pt(2, 1), pt(2, 0)}},
		{"shallow", pt(0, 0), pt(4, 2), []domain.GridPoint{pt(0, 0), pt(1, 1), pt(2, 1), pt(3, 2), pt(4, 2)}},
		{"diagonal", pt(0, 0), pt(-2, -2), []domain.GridPoint{pt(0, 0), pt(-1, -1), pt(-2, -2)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Rasterize(tt.p1, tt.p2); !pointsEqual(got, tt.want) {
				t.Errorf("Rasterize(%v, %v) = %v, want %v", tt.p1, tt.p2, got, tt.want)
			}
		})
	}
}

// Для всех октантов: концы на месте, шаги 8-связные, длина = max(|dx|,|dy|)+1
func TestRasterize_AllOctants(t *testing.T) {
	origin := domain.Pt(0, 0)
	for x := -7; x <= 7; x++ {
		for y := -7; y <= 7; y++ {
			end := domain.Pt(x, y)
			line := Rasterize(origin, end)

			if line[0] != origin || line[len(line)-1] != end {
				t.Fatalf("Rasterize(%v, %v): endpoints %v..%v", origin, end, line[0], line[len(line)-1])
			}
			if want := max(abs(x), abs(y)) + 1; len(line) != want {
				t.Fatalf("Rasterize(%v, %v): len %d, want %d", origin, end, len(line), want)
			}
			for i := 1; i < len(line); i++ {
				d := line[i].Sub(line[i-1])
				if abs(d.X) > 1 || abs(d.Y) > 1 || d.IsZero() {
					t.Fatalf("Rasterize(%v, %v): gap between %v and %v", origin, end, line[i-1], line[i])
				}
			}
		}
	}
}

func TestCheckRay(t *testing.T) {
	pt := domain.Pt
	tests := []struct {
		name string
		base domain.GridPoint
		vec  domain.GridPoint
		want []domain.GridPoint
	}{
		{"zero vector", pt(1, 1), pt(0, 0), nil},
		{"straight up", pt(5, 4), pt(0, -4), []domain.GridPoint{pt(5, 3), pt(5, 2), pt(5, 1), pt(5, 0)}},
		{"shallow, ties to even", pt(0, 0), pt(4, 2), []domain.GridPoint{pt(1, 0), pt(2, 1), pt(3, 2), pt(4, 2)}},
		{"negative dominant axis", pt(0, 0), pt(-4, 2), []domain.GridPoint{pt(-1, 0), pt(-2, 1), pt(-3, 2), pt(-4, 2)}},
		{"45 degrees uses x", pt(0, 0), pt(3, 3), []domain.GridPoint{pt(1, 1), pt(2, 2), pt(3, 3)}},
		{"steep upward", pt(0, 0), pt(1, -5), []domain.GridPoint{pt(0, -1), pt(0, -2), pt(1, -3), pt(1, -4), pt(1, -5)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CheckRay(tt.base, tt.vec); !pointsEqual(got, tt.want) {
				t.Errorf("CheckRay(%v, %v) = %v, want %v", tt.base, tt.vec, got, tt.want)
			}
		})
	}
}

func TestCheckRay_EndsAtTarget(t *testing.T) {
	base := domain.Pt(10, 10)
	for x := -9; x <= 9; x++ {
		for y := -9; y <= 9; y++ {
			vec := domain.Pt(x, y)
			ray := CheckRay(base, vec)
			if vec.IsZero() {
				if len(ray) != 0 {
					t.Fatalf("zero vector produced %v", ray)
				}
				continue
			}
			if ray[len(ray)-1] != base.Add(vec) {
				t.Fatalf("CheckRay(%v, %v) ends at %v", base, vec, ray[len(ray)-1])
			}
			if len(ray) != max(abs(x), abs(y)) {
				t.Fatalf("CheckRay(%v, %v) has %d tiles", base, vec, len(ray))
			}
			for _, p := range ray {
				if p == base {
					t.Fatalf("CheckRay(%v, %v) contains its base", base, vec)
				}
			}
		}
	}
}
