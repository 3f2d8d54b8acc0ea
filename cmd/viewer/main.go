package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"stealth-server/internal/engine"
	"stealth-server/pkg/levels"
	"stealth-server/pkg/logger"

	"github.com/gdamore/tcell/v2"
)

const viewerID = "viewer"

func main() {
	logger.Init()

	cfg := engine.NewConfig().FromEnv()
	flag.StringVar(&cfg.Template, "template", cfg.Template, "built-in room template")
	flag.StringVar(&cfg.LevelPath, "level", "", "path to a .svlv level file")
	flag.BoolVar(&cfg.RecordReplays, "record", cfg.RecordReplays, "save a replay on exit")
	logPath := flag.String("log", "viewer.log", "log file")
	muted := flag.Bool("mute", false, "disable the detection alarm")
	flag.Parse()

	if err := run(cfg, *logPath, *muted); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(cfg engine.Config, logPath string, muted bool) error {
	logFile, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("open log: %w", err)
	}
	defer logFile.Close()
	logger.Redirect(logFile)

	if cfg.LevelPath == "" {
		if _, ok := levels.Templates[cfg.Template]; !ok {
			return fmt.Errorf("unknown template %q, available: %v", cfg.Template, levels.Names())
		}
	}

	gameService := engine.NewService(cfg)
	inst, err := gameService.CreateRoom(gameService.DefaultLevel())
	if err != nil {
		return err
	}
	frames := gameService.Hub.Register(viewerID, inst.ID)
	defer gameService.Hub.Unregister(viewerID)

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("screen init: %w", err)
	}
	defer screen.Fini()

	al := newAlarm(muted)
	defer al.close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	gameService.Start(ctx)

	keys := make(chan *tcell.EventKey, 16)
	go pollKeys(screen, keys)

	v := &view{screen: screen}
	v.update(inst.Snapshot())
	v.draw()

	in := &input{}
	detections := 0

loop:
	for {
		select {
		case <-ctx.Done():
			break loop

		case frame, ok := <-frames:
			if !ok {
				break loop
			}
			v.update(frame)
			if frame.Detections > detections {
				al.play()
			}
			detections = frame.Detections
			v.draw()

		case ev := <-keys:
			if ev == nil {
				v.draw()
				continue
			}
			act, cmd := in.handle(ev)
			switch act {
			case keyQuit:
				break loop
			case keyInteractMode:
				v.prompt = "взаимодействие: выберите сторону"
			case keyCommand:
				v.prompt = ""
				cmd.Token = viewerID
				if err := gameService.ProcessCommand(inst.ID, cmd); err != nil {
					v.prompt = err.Error()
				}
			default:
				v.prompt = ""
			}
			v.draw()
		}
	}

	stop()
	gameService.Wait()
	if err := gameService.SaveReplays(); err != nil {
		logger.Log.WithError(err).Error("Failed to save replays")
	}
	return nil
}

// pollKeys пересылает нажатия в главный цикл. nil означает "перерисовать".
func pollKeys(screen tcell.Screen, keys chan<- *tcell.EventKey) {
	for {
		switch ev := screen.PollEvent().(type) {
		case nil:
			return
		case *tcell.EventKey:
			keys <- ev
		case *tcell.EventResize:
			screen.Sync()
			keys <- nil
		}
	}
}
