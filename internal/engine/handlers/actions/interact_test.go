package actions

import (
	"errors"
	"fmt"
	"testing"

	"stealth-server/internal/domain"
	"stealth-server/internal/engine/handlers"
	"stealth-server/pkg/api"
)

// stubCameras выключает только камеры из known
type stubCameras struct {
	known    map[string]bool
	disabled []string
}

func (s *stubCameras) DisableCamera(id string) error {
	if !s.known[id] {
		return fmt.Errorf("%w: %s", domain.ErrUnknownCamera, id)
	}
	s.disabled = append(s.disabled, id)
	return nil
}

func wiredBoard(cameraID string) *domain.Board {
	b := domain.NewBoard(5, 5)
	b.Player = domain.Pt(2, 2)
	b.WireBoxes[domain.Pt(2, 1)] = cameraID
	return b
}

func TestHandleInteract_CutWire(t *testing.T) {
	cams := &stubCameras{known: map[string]bool{"cam_1": true}}
	ctx := handlers.Context{Board: wiredBoard("cam_1"), Cameras: cams}

	res, err := HandleInteract(ctx, api.FacingPayload{Direction: "UP"})
	if err != nil {
		t.Fatalf("HandleInteract: %v", err)
	}
	if res.Event != domain.EventCameraDisabled || len(cams.disabled) != 1 {
		t.Errorf("result = %+v, disabled = %v", res, cams.disabled)
	}
	if _, ok := ctx.Board.WireBoxAt(domain.Pt(2, 1)); ok {
		t.Error("wire box should be removed after the camera is off")
	}
}

func TestHandleInteract_UnknownCameraKeepsWireBox(t *testing.T) {
	cams := &stubCameras{known: map[string]bool{}}
	ctx := handlers.Context{Board: wiredBoard("cam_ghost"), Cameras: cams}

	_, err := HandleInteract(ctx, api.FacingPayload{Direction: "UP"})
	if !errors.Is(err, domain.ErrUnknownCamera) {
		t.Fatalf("err = %v, want ErrUnknownCamera", err)
	}
	if id, ok := ctx.Board.WireBoxAt(domain.Pt(2, 1)); !ok || id != "cam_ghost" {
		t.Error("wire box must stay when the camera could not be disabled")
	}
}
