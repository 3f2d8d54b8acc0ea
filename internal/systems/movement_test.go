package systems

import (
	"errors"
	"testing"

	"stealth-server/internal/domain"
)

func TestCalculateMove(t *testing.T) {
	pt := domain.Pt
	tests := []struct {
		name      string
		setup     func(b *domain.Board)
		dx, dy    int
		wantMoved bool
		wantPush  bool
	}{
		{"free step", func(b *domain.Board) {}, 1, 0, true, false},
		{"wall", func(b *domain.Board) { b.SetWall(pt(2, 1), true) }, 1, 0, false, false},
		{"out of bounds", func(b *domain.Board) { b.Player = pt(0, 1) }, -1, 0, false, false},
		{"push box", func(b *domain.Board) { _ = b.PlaceBox(pt(2, 1)) }, 1, 0, true, true},
		{"box against wall", func(b *domain.Board) {
			_ = b.PlaceBox(pt(2, 1))
			b.SetWall(pt(3, 1), true)
		}, 1, 0, false, false},
		{"cannot push while carrying", func(b *domain.Board) {
			_ = b.PlaceBox(pt(2, 1))
			b.HeldBox = true
		}, 1, 0, false, false},
		{"wire box blocks", func(b *domain.Board) { b.WireBoxes[pt(1, 0)] = "c1" }, 0, -1, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := openRoom(5, 3)
			b.Player = pt(1, 1)
			tt.setup(b)

			res := CalculateMove(b, tt.dx, tt.dy)
			if res.HasMoved != tt.wantMoved || res.PushedBox != tt.wantPush {
				t.Fatalf("CalculateMove = %+v, want moved=%v push=%v", res, tt.wantMoved, tt.wantPush)
			}
			if err := ApplyMove(b, res); err != nil {
				t.Fatalf("ApplyMove: %v", err)
			}
			if tt.wantPush && !b.HasBox(res.BoxTo) {
				t.Errorf("box should be at %v", res.BoxTo)
			}
		})
	}
}

func TestInteract(t *testing.T) {
	b := openRoom(5, 5)
	b.Player = domain.Pt(2, 2)
	b.WireBoxes[domain.Pt(2, 1)] = "cam_1"
	_ = b.PlaceBox(domain.Pt(3, 2))

	res, err := Interact(b, domain.FacingUp)
	if err != nil || res.Kind != InteractCutWire || res.CameraID != "cam_1" {
		t.Fatalf("cut wire: %+v, %v", res, err)
	}
	if _, ok := b.WireBoxAt(domain.Pt(2, 1)); !ok {
		t.Fatal("Interact must leave the wire box to the caller")
	}
	if id, ok := b.CutWireBox(domain.Pt(2, 1)); !ok || id != "cam_1" {
		t.Fatalf("CutWireBox = %q, %v", id, ok)
	}
	if _, ok := b.WireBoxAt(domain.Pt(2, 1)); ok {
		t.Error("wire box should be gone")
	}

	res, err = Interact(b, domain.FacingRight)
	if err != nil || res.Kind != InteractLiftBox || !b.HeldBox {
		t.Fatalf("lift box: %+v, %v", res, err)
	}
	if b.IsOccludingVision(domain.Pt(3, 2)) {
		t.Error("carried box must not occlude")
	}

	res, err = Interact(b, domain.FacingDown)
	if err != nil || res.Kind != InteractDropBox || b.HeldBox || !b.HasBox(domain.Pt(2, 3)) {
		t.Fatalf("drop box: %+v, %v", res, err)
	}

	if _, err := Interact(b, domain.FacingLeft); !errors.Is(err, domain.ErrNothingToReach) {
		t.Errorf("expected ErrNothingToReach, got %v", err)
	}
}
