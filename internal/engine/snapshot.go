package engine

import (
	"sort"

	"stealth-server/internal/domain"
	"stealth-server/pkg/api"
)

func toPoint(p domain.GridPoint) api.Point {
	return api.Point{X: p.X, Y: p.Y}
}

func toPoints(ps []domain.GridPoint) []api.Point {
	out := make([]api.Point, len(ps))
	for k, p := range ps {
		out[k] = toPoint(p)
	}
	return out
}

// buildSnapshot создает "снимок" комнаты для клиентов.
// Все срезы создаются заново, снимок не делит память с комнатой.
func (i *Instance) buildSnapshot() api.ServerResponse {
	b := i.Board

	resp := api.ServerResponse{
		Type:       "UPDATE",
		Tick:       i.CurrentTick,
		RoomID:     i.ID,
		LevelName:  i.LevelName,
		Grid:       &api.GridMeta{Width: b.Width, Height: b.Height},
		Detections: i.Detections,
		Logs:       i.Logs,
	}

	// 1. Стены
	for y := 0; y < b.Height; y++ {
		for x := 0; x < b.Width; x++ {
			if b.IsWall(domain.Pt(x, y)) {
				resp.Walls = append(resp.Walls, api.Point{X: x, Y: y})
			}
		}
	}

	// 2. Игрок и предметы
	resp.Player = &api.PlayerView{
		Pos:      toPoint(b.Player),
		HoldsBox: b.HeldBox,
		Watched:  i.Watchers.IsWatched(b.Player),
	}
	cp := toPoint(b.Checkpoint)
	resp.Checkpoint = &cp
	resp.Boxes = toPoints(b.BoxList())

	wires := make([]domain.GridPoint, 0, len(b.WireBoxes))
	for p := range b.WireBoxes {
		wires = append(wires, p)
	}
	domain.SortPoints(wires)
	for _, p := range wires {
		resp.WireBoxes = append(resp.WireBoxes, api.WireBoxView{Pos: toPoint(p), CameraID: b.WireBoxes[p]})
	}

	// 3. Камеры
	for _, cam := range i.Cameras {
		view := api.CameraView{
			ID:       cam.ID,
			Pos:      toPoint(cam.Position()),
			RayBase:  toPoint(cam.RayBase()),
			Target:   toPoint(cam.Target()),
			Facing:   cam.Facing().String(),
			Spread:   cam.Spread(),
			Active:   cam.Active(),
			Watched:  toPoints(cam.WatchedTiles()),
			Detected: cam.SeesPlayer(),
		}
		if wb := cam.WireBox(); wb != domain.NoWireBox {
			p := toPoint(wb)
			view.WireBox = &p
		}
		resp.Cameras = append(resp.Cameras, view)
	}
	sort.Slice(resp.Cameras, func(a, c int) bool {
		return resp.Cameras[a].ID < resp.Cameras[c].ID
	})

	// 4. Реестр наблюдателей
	for _, p := range i.Watchers.Tiles() {
		resp.Watched = append(resp.Watched, api.WatchedTileView{X: p.X, Y: p.Y, Count: i.Watchers.Count(p)})
	}

	return resp
}
