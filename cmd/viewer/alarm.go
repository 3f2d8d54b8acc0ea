package main

import (
	"time"

	"stealth-server/pkg/logger"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"
)

const (
	alarmFreq     = 880
	alarmDuration = 250 * time.Millisecond
)

// alarm проигрывает короткий сигнал при обнаружении игрока.
// Без звуковой карты просто молчит.
type alarm struct {
	sampleRate beep.SampleRate
	ready      bool
}

func newAlarm(muted bool) *alarm {
	a := &alarm{sampleRate: beep.SampleRate(44100)}
	if muted {
		return a
	}
	if err := speaker.Init(a.sampleRate, a.sampleRate.N(time.Second/10)); err != nil {
		logger.Log.WithError(err).Warn("Audio unavailable, alarm muted")
		return a
	}
	a.ready = true
	return a
}

func (a *alarm) play() {
	if !a.ready {
		return
	}
	sine, err := generators.SineTone(a.sampleRate, alarmFreq)
	if err != nil {
		logger.Log.WithError(err).Warn("Alarm tone failed")
		return
	}
	speaker.Play(beep.Take(a.sampleRate.N(alarmDuration), sine))
}

func (a *alarm) close() {
	if a.ready {
		speaker.Close()
	}
}
