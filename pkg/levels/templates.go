package levels

import (
	"sort"

	"stealth-server/internal/domain"
)

// CameraTemplate - параметры камеры, которых нет в ASCII-карте.
// Камеры сопоставляются с символами 'C' по порядку (строка за строкой).
type CameraTemplate struct {
	Target  domain.GridPoint
	Spread  float64
	WireBox domain.GridPoint // domain.NoWireBox, если щитка нет
}

// RoomTemplate определяет встроенную комнату
type RoomTemplate struct {
	Name        string
	Description string
	Rows        []string
	Cameras     []CameraTemplate
}

// --- КОМНАТЫ ---

var Gallery = RoomTemplate{
	Name:        "gallery",
	Description: "Зал с двумя камерами под потолком. Щитки в углах.",
	Rows: []string{
		"#######C####C###",
		"#W.............#",
		"#....B.........#",
		"#..............#",
		"#.........B....#",
		"#..............#",
		"#.............W#",
		"#..............#",
		"#S.............#",
		"################",
	},
	Cameras: []CameraTemplate{
		{Target: domain.Pt(4, 8), Spread: 0.25, WireBox: domain.Pt(1, 1)},
		{Target: domain.Pt(13, 8), Spread: 0.3, WireBox: domain.Pt(14, 6)},
	},
}

var Corridor = RoomTemplate{
	Name:        "corridor",
	Description: "Коридор перекрыт конусом камеры. Щиток стоит перед ним.",
	Rows: []string{
		"############",
		"#S.........#",
		"#..B.......C",
		"#....W.....#",
		"############",
	},
	Cameras: []CameraTemplate{
		// Конус от (10,2) доходит до столбца x=6
		{Target: domain.Pt(6, 2), Spread: 0.2, WireBox: domain.Pt(5, 3)},
	},
}

var Vault = RoomTemplate{
	Name:        "vault",
	Description: "Хранилище. Верхнюю камеру не отключить, только заслонить.",
	Rows: []string{
		"####C#####",
		"#........#",
		"#..BB....#",
		"#........C",
		"#........#",
		"#W.......#",
		"#S.......#",
		"##########",
	},
	Cameras: []CameraTemplate{
		{Target: domain.Pt(4, 6), Spread: 0.45, WireBox: domain.NoWireBox},
		{Target: domain.Pt(1, 3), Spread: 0.3, WireBox: domain.Pt(1, 5)},
	},
}

// Templates - реестр встроенных комнат по имени
var Templates = map[string]RoomTemplate{
	Gallery.Name:  Gallery,
	Corridor.Name: Corridor,
	Vault.Name:    Vault,
}

// Names возвращает имена встроенных комнат по алфавиту
func Names() []string {
	names := make([]string, 0, len(Templates))
	for name := range Templates {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
