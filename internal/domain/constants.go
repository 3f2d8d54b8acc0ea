package domain

import "math"

// Параметры камер
const (
	// DefaultAimLength - длина центрального луча, если прицел вырожден.
	DefaultAimLength = 5

	// MaxSpread - верхняя граница полуугла (не включительно).
	MaxSpread = math.Pi
)

// Символы шаблонов комнат
const (
	GlyphWall       = '#'
	GlyphFloor      = '.'
	GlyphBox        = 'B'
	GlyphWireBox    = 'W'
	GlyphPlayer     = '@'
	GlyphCamera     = 'C'
	GlyphCheckpoint = 'S'
)
