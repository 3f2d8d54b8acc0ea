package domain

import (
	"math"
	"sort"
)

// NoWireBox - сентинел "у камеры нет щитка".
var NoWireBox = GridPoint{X: -1, Y: -1}

// CameraRecord - сохраняемое описание камеры.
// Spread хранится как float64, хотя в рантайме полуугол float32.
type CameraRecord struct {
	ID       string    `json:"id"`
	Position GridPoint `json:"position"`
	Target   GridPoint `json:"target"`
	Spread   float64   `json:"spread"`
	WireBox  GridPoint `json:"wireBox"`
}

// HasWireBox true, если у камеры есть щиток
func (r CameraRecord) HasWireBox() bool {
	return r.WireBox != NoWireBox
}

// ClampSpread приводит полуугол к [0, Pi). NaN и отрицательные -> 0.
func ClampSpread(s float64) float32 {
	if math.IsNaN(s) || s < 0 {
		return 0
	}
	f := float32(s)
	if float64(f) >= MaxSpread {
		// float32(Pi) округляется вверх, берем ближайшее меньшее
		return math.Nextafter32(float32(math.Pi), 0)
	}
	return f
}

// SortPoints сортирует точки строка-за-строкой.
func SortPoints(points []GridPoint) {
	sort.Slice(points, func(i, j int) bool {
		return points[i].Less(points[j])
	})
}
