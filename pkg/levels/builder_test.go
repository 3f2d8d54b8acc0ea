package levels

import (
	"errors"
	"testing"

	"stealth-server/internal/domain"
)

func TestBuildAllTemplates(t *testing.T) {
	for _, name := range Names() {
		t.Run(name, func(t *testing.T) {
			b, err := Build(name)
			if err != nil {
				t.Fatalf("Build(%q): %v", name, err)
			}

			if !b.IsWalkable(b.Player) {
				t.Errorf("player %s is not on the floor", b.Player)
			}
			if !b.IsWalkable(b.Checkpoint) {
				t.Errorf("checkpoint %s is not on the floor", b.Checkpoint)
			}

			for _, rec := range b.Cameras {
				if !b.IsWall(rec.Position) {
					t.Errorf("camera %s at %s is not mounted on a wall", rec.ID, rec.Position)
				}
				if rec.Spread < 0 || rec.Spread >= domain.MaxSpread {
					t.Errorf("camera %s spread %v out of range", rec.ID, rec.Spread)
				}
				if rec.HasWireBox() {
					if id, ok := b.WireBoxAt(rec.WireBox); !ok || id != rec.ID {
						t.Errorf("camera %s wire box %s not registered", rec.ID, rec.WireBox)
					}
				}
			}
		})
	}
}

func TestBuildGallery(t *testing.T) {
	b, err := Build("gallery")
	if err != nil {
		t.Fatal(err)
	}
	if b.Width != 16 || b.Height != 10 {
		t.Errorf("size %dx%d", b.Width, b.Height)
	}
	if len(b.Cameras) != 2 {
		t.Fatalf("cameras = %d", len(b.Cameras))
	}
	if b.Cameras[0].ID != "cam_1" || b.Cameras[0].Position != domain.Pt(7, 0) {
		t.Errorf("first camera = %+v", b.Cameras[0])
	}
	if b.Player != domain.Pt(1, 8) || b.Checkpoint != b.Player {
		t.Errorf("player %s checkpoint %s", b.Player, b.Checkpoint)
	}
	if b.Boxes.Size() != 2 {
		t.Errorf("boxes = %v", b.BoxList())
	}
}

func TestBuilderOverrides(t *testing.T) {
	b, err := NewRoom(Corridor).
		WithSpread("cam_1", 0.5).
		WithTarget("cam_1", domain.Pt(1, 3)).
		Build()
	if err != nil {
		t.Fatal(err)
	}
	rec, ok := b.Camera("cam_1")
	if !ok {
		t.Fatal("cam_1 missing")
	}
	if rec.Spread != 0.5 || rec.Target != domain.Pt(1, 3) {
		t.Errorf("overrides not applied: %+v", rec)
	}
}

func TestBuildErrors(t *testing.T) {
	tests := []struct {
		name string
		tmpl RoomTemplate
	}{
		{"empty", RoomTemplate{Name: "empty"}},
		{"ragged rows", RoomTemplate{Name: "ragged", Rows: []string{"###", "#S", "###"}}},
		{"unknown glyph", RoomTemplate{Name: "glyph", Rows: []string{"#?S#"}}},
		{"no spawn", RoomTemplate{Name: "nospawn", Rows: []string{"#..#"}}},
		{"two players", RoomTemplate{Name: "two", Rows: []string{"#@@#"}}},
		{"camera not described", RoomTemplate{Name: "cam", Rows: []string{"#C#", "#S#"}}},
		{"dangling wire box", RoomTemplate{Name: "wire", Rows: []string{"#W.S#"}}},
		{
			"wire box missing on map",
			RoomTemplate{
				Name:    "nowire",
				Rows:    []string{"#C#", "#S.", "###"},
				Cameras: []CameraTemplate{{Target: domain.Pt(1, 2), Spread: 0.1, WireBox: domain.Pt(2, 1)}},
			},
		},
		{
			"shared wire box",
			RoomTemplate{
				Name: "shared",
				Rows: []string{"#C#C#", "#W.S#"},
				Cameras: []CameraTemplate{
					{Target: domain.Pt(1, 1), WireBox: domain.Pt(1, 1)},
					{Target: domain.Pt(3, 1), WireBox: domain.Pt(1, 1)},
				},
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewRoom(tt.tmpl).Build(); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestBuildUnknownTemplate(t *testing.T) {
	if _, err := Build("nope"); !errors.Is(err, ErrUnknownTemplate) {
		t.Errorf("err = %v, want ErrUnknownTemplate", err)
	}
}
