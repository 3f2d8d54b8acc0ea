package storage

import (
	"bytes"
	"errors"
	"path/filepath"
	"testing"

	"stealth-server/internal/domain"
)

func sampleBoard() *domain.Board {
	b := domain.NewBoard(6, 5)
	for x := 0; x < 6; x++ {
		b.SetWall(domain.Pt(x, 0), true)
		b.SetWall(domain.Pt(x, 4), true)
	}
	b.Player = domain.Pt(1, 3)
	b.Checkpoint = domain.Pt(1, 3)
	_ = b.PlaceBox(domain.Pt(3, 2))
	b.Cameras = []domain.CameraRecord{
		{ID: "cam_1", Position: domain.Pt(2, 0), Target: domain.Pt(2, 3), Spread: 0.4, WireBox: domain.Pt(4, 3)},
		{ID: "cam_2", Position: domain.Pt(5, 4), Target: domain.Pt(1, 1), Spread: 0.25, WireBox: domain.Pt(1, 1)},
		{ID: "cam_3", Position: domain.Pt(0, 4), Target: domain.Pt(3, 1), Spread: 0, WireBox: domain.NoWireBox},
	}
	b.WireBoxes[domain.Pt(4, 3)] = "cam_1"
	// щиток cam_2 уже перерезан
	return b
}

func TestLevelRoundTrip(t *testing.T) {
	src := sampleBoard()

	var buf bytes.Buffer
	if err := WriteLevel(&buf, src); err != nil {
		t.Fatalf("WriteLevel: %v", err)
	}
	got, err := ReadLevel(&buf)
	if err != nil {
		t.Fatalf("ReadLevel: %v", err)
	}

	if got.Width != src.Width || got.Height != src.Height {
		t.Fatalf("size %dx%d, want %dx%d", got.Width, got.Height, src.Width, src.Height)
	}
	for y := 0; y < src.Height; y++ {
		for x := 0; x < src.Width; x++ {
			p := domain.Pt(x, y)
			if got.IsWall(p) != src.IsWall(p) {
				t.Errorf("wall mismatch at %s", p)
			}
		}
	}
	if got.Player != src.Player || got.Checkpoint != src.Checkpoint {
		t.Errorf("player %s checkpoint %s", got.Player, got.Checkpoint)
	}
	if !got.HasBox(domain.Pt(3, 2)) || got.Boxes.Size() != 1 {
		t.Errorf("boxes = %v", got.BoxList())
	}
	if len(got.Cameras) != 3 {
		t.Fatalf("cameras = %d, want 3", len(got.Cameras))
	}
	for i, rec := range got.Cameras {
		if rec != src.Cameras[i] {
			t.Errorf("camera %d = %+v, want %+v", i, rec, src.Cameras[i])
		}
	}
	if id, ok := got.WireBoxAt(domain.Pt(4, 3)); !ok || id != "cam_1" {
		t.Errorf("wire box cam_1 lost: %q %v", id, ok)
	}
	if _, ok := got.WireBoxAt(domain.Pt(1, 1)); ok {
		t.Error("cut wire box of cam_2 came back")
	}
	if len(got.WireBoxes) != 1 {
		t.Errorf("wire boxes = %v", got.WireBoxes)
	}
}

func TestLevelSpreadKeepsFloat64(t *testing.T) {
	src := sampleBoard()
	src.Cameras[0].Spread = 0.1234567890123

	var buf bytes.Buffer
	if err := WriteLevel(&buf, src); err != nil {
		t.Fatal(err)
	}
	got, err := ReadLevel(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if got.Cameras[0].Spread != 0.1234567890123 {
		t.Errorf("spread = %v", got.Cameras[0].Spread)
	}
}

func TestLevelFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "room.svlv")
	if err := SaveLevel(path, sampleBoard()); err != nil {
		t.Fatalf("SaveLevel: %v", err)
	}
	b, err := LoadLevel(path)
	if err != nil {
		t.Fatalf("LoadLevel: %v", err)
	}
	if len(b.Cameras) != 3 {
		t.Errorf("cameras = %d", len(b.Cameras))
	}
}

func TestReadLevelRejectsGarbage(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{"empty", nil},
		{"wrong magic", []byte("SVRP\x01\x00\x00\x00\x02\x00\x02\x00")},
		{"truncated", []byte("SVLV\x01\x00")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ReadLevel(bytes.NewReader(tt.data)); err == nil {
				t.Error("expected error")
			}
		})
	}

	if _, err := ReadLevel(bytes.NewReader([]byte("XXXX0000000000000000000000000000000000000000"))); !errors.Is(err, ErrBadMagic) {
		t.Errorf("err = %v, want ErrBadMagic", err)
	}
}

func TestReadLevelTruncatedCameras(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteLevel(&buf, sampleBoard()); err != nil {
		t.Fatal(err)
	}
	data := buf.Bytes()[:buf.Len()-3]
	if _, err := ReadLevel(bytes.NewReader(data)); err == nil {
		t.Error("expected error on truncated camera id")
	}
}
