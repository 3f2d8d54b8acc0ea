package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"stealth-server/internal/engine"
)

// DebugHandler предоставляет доступ к внутреннему состоянию движка.
// Все ответы строятся из опубликованных снимков комнат.
type DebugHandler struct {
	Service *engine.GameService
}

func NewDebugHandler(s *engine.GameService) *DebugHandler {
	return &DebugHandler{Service: s}
}

// RegisterRoutes регистрирует debug-эндпоинты
func (h *DebugHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/debug/rooms", h.handleListRooms)
	mux.HandleFunc("/debug/cameras", h.handleCameras)
	mux.HandleFunc("/debug/watchers", h.handleWatchers)
}

// /debug/rooms - список комнат
func (h *DebugHandler) handleListRooms(w http.ResponseWriter, r *http.Request) {
	type RoomSummary struct {
		RoomID      int    `json:"room_id"`
		Level       string `json:"level"`
		Tick        int    `json:"tick"`
		Width       int    `json:"width"`
		Height      int    `json:"height"`
		Cameras     int    `json:"cameras"`
		Active      int    `json:"active_cameras"`
		Watched     int    `json:"watched_tiles"`
		Detections  int    `json:"detections"`
		Subscribers int    `json:"subscribers"`
	}

	summary := []RoomSummary{}
	for _, id := range h.Service.RoomIDs() {
		inst, ok := h.Service.Instance(id)
		if !ok {
			continue
		}
		snap := inst.Snapshot()

		active := 0
		for _, c := range snap.Cameras {
			if c.Active {
				active++
			}
		}
		rs := RoomSummary{
			RoomID:      id,
			Level:       snap.LevelName,
			Tick:        snap.Tick,
			Cameras:     len(snap.Cameras),
			Active:      active,
			Watched:     len(snap.Watched),
			Detections:  snap.Detections,
			Subscribers: h.Service.Hub.RoomSubscriberCount(id),
		}
		if snap.Grid != nil {
			rs.Width, rs.Height = snap.Grid.Width, snap.Grid.Height
		}
		summary = append(summary, rs)
	}

	writeJSON(w, summary)
}

// /debug/cameras?room=0 - камеры комнаты с их конусами
func (h *DebugHandler) handleCameras(w http.ResponseWriter, r *http.Request) {
	inst, ok := h.lookup(w, r)
	if !ok {
		return
	}
	writeJSON(w, inst.Snapshot().Cameras)
}

// /debug/watchers?room=0 - реестр наблюдаемых клеток
func (h *DebugHandler) handleWatchers(w http.ResponseWriter, r *http.Request) {
	inst, ok := h.lookup(w, r)
	if !ok {
		return
	}
	writeJSON(w, inst.Snapshot().Watched)
}

func (h *DebugHandler) lookup(w http.ResponseWriter, r *http.Request) (*engine.Instance, bool) {
	roomID, err := roomParam(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return nil, false
	}
	inst, ok := h.Service.Instance(roomID)
	if !ok {
		http.Error(w, "Room not found", http.StatusNotFound)
		return nil, false
	}
	return inst, true
}

// roomParam читает ?room=N; по умолчанию комната 0
func roomParam(r *http.Request) (int, error) {
	s := r.URL.Query().Get("room")
	if s == "" {
		return 0, nil
	}
	id, err := strconv.Atoi(s)
	if err != nil || id < 0 {
		return 0, fmt.Errorf("bad room id %q", s)
	}
	return id, nil
}

func writeJSON(w http.ResponseWriter, data interface{}) {
	// Разрешаем запросы с любого источника (нужно для локального debug-клиента)
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

	w.Header().Set("Content-Type", "application/json")

	// Если data == nil, возвращаем пустой массив [], а не null
	if data == nil {
		_, _ = w.Write([]byte("[]"))
		return
	}

	_ = json.NewEncoder(w).Encode(data)
}
