package engine

import (
	"fmt"
	"time"

	"stealth-server/pkg/api"
	"stealth-server/pkg/logger"

	"github.com/sirupsen/logrus"
)

// AddLog добавляет запись в журнал комнаты. Журнал уходит клиентам
// со следующим снимком и очищается.
func (i *Instance) AddLog(text, logType string) {
	i.logSeq++
	i.Logs = append(i.Logs, api.LogEntry{
		ID:        fmt.Sprintf("%d_%d_%d", i.ID, i.CurrentTick, i.logSeq),
		Text:      text,
		Type:      logType,
		Timestamp: time.Now().UnixMilli(),
	})
	logger.Log.WithFields(logrus.Fields{
		"instance":  i.ID,
		"component": "room_log",
		"log_type":  logType,
		"tick":      i.CurrentTick,
	}).Info(text)
}
