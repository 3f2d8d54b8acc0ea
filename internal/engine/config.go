package engine

import (
	"os"
	"strconv"
	"time"

	"stealth-server/pkg/logger"
)

// Config хранит параметры запуска движка
type Config struct {
	// TickRate - длительность кадра комнаты
	TickRate time.Duration

	// Template - встроенная комната (если LevelPath пуст)
	Template string
	// LevelPath - файл уровня SVLV
	LevelPath string

	// ReplayDir - куда сохранять записи прохождений
	ReplayDir     string
	RecordReplays bool

	// CommandBuffer - размер очереди команд комнаты
	CommandBuffer int
}

// NewConfig создает конфиг по умолчанию
func NewConfig() Config {
	return Config{
		TickRate:      100 * time.Millisecond,
		Template:      "gallery",
		ReplayDir:     "replays",
		RecordReplays: true,
		CommandBuffer: 100,
	}
}

// FromEnv переопределяет поля из переменных окружения SV_TICK_MS и SV_REPLAY_DIR.
func (c Config) FromEnv() Config {
	if v := os.Getenv("SV_TICK_MS"); v != "" {
		ms, err := strconv.Atoi(v)
		if err != nil || ms <= 0 {
			logger.Log.WithField("value", v).Warn("Invalid SV_TICK_MS, keeping default.")
		} else {
			c.TickRate = time.Duration(ms) * time.Millisecond
		}
	}
	if v := os.Getenv("SV_REPLAY_DIR"); v != "" {
		c.ReplayDir = v
	}
	return c
}
