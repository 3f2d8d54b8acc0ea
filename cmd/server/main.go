package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"stealth-server/internal/agent"
	"stealth-server/internal/engine"
	"stealth-server/internal/infrastructure/storage"
	"stealth-server/internal/server"
	"stealth-server/internal/version"
	"stealth-server/pkg/levels"
	"stealth-server/pkg/logger"

	"github.com/sirupsen/logrus"
)

func init() {
	logger.Init()
}

func main() {
	// 1. Парсинг конфигурации
	cfg := engine.NewConfig().FromEnv()

	var replayPath, exportPath, botRoute string
	flag.StringVar(&cfg.LevelPath, "level", "", "Path to .svlv level file (overrides -template)")
	flag.StringVar(&cfg.Template, "template", cfg.Template, "Built-in room template")
	flag.StringVar(&replayPath, "replay", "", "Path to .svrp replay file to simulate")
	flag.StringVar(&exportPath, "export", "", "Write the selected room to a .svlv file and exit")
	flag.StringVar(&botRoute, "bot", "", "Route for a headless bot in the room, e.g. \"UUULLd\"")
	flag.BoolVar(&cfg.RecordReplays, "record", cfg.RecordReplays, "Record replays of live rooms")
	flag.Parse()

	logger.Log.Info("Starting stealth server...")
	logger.Log.Info(version.String())

	gameService := engine.NewService(cfg)

	// РЕЖИМ ЭКСПОРТА
	if exportPath != "" {
		board, err := engine.LoadBoard(gameService.DefaultLevel())
		if err != nil {
			logger.Log.WithError(err).Fatal("Failed to build room")
		}
		if err := storage.SaveLevel(exportPath, board); err != nil {
			logger.Log.WithError(err).Fatal("Failed to export room")
		}
		logger.Log.WithField("path", exportPath).Info("Room exported")
		return
	}

	// РЕЖИМ РЕПЛЕЯ
	if replayPath != "" {
		logger.Log.Info("Mode: Replay Simulation")

		inst, res, err := gameService.PlayReplay(replayPath)
		if err != nil {
			logger.Log.WithError(err).Fatal("Failed to play replay")
		}
		logger.Log.WithFields(logrus.Fields{
			"level":      inst.LevelName,
			"ticks":      res.Ticks,
			"actions":    res.Actions,
			"detections": res.Detections,
			"player":     res.Player,
		}).Info("Replay simulated")
		return // Выходим после симуляции
	}

	port := os.Getenv("SV_PORT")
	if port == "" {
		port = "8080"
	}

	if cfg.LevelPath == "" {
		if _, ok := levels.Templates[cfg.Template]; !ok {
			logger.Log.WithFields(logrus.Fields{
				"template":  cfg.Template,
				"available": levels.Names(),
			}).Fatal("Unknown room template")
		}
	}

	// 2. Комната и ее цикл
	inst, err := gameService.CreateRoom(gameService.DefaultLevel())
	if err != nil {
		logger.Log.WithError(err).Fatal("Failed to create room")
	}

	var bot *agent.Bot
	if botRoute != "" {
		steps, err := agent.ParseRoute(botRoute)
		if err != nil {
			logger.Log.WithError(err).Fatal("Invalid bot route")
		}
		bot = agent.NewBot(gameService, inst.ID, steps)
	}

	// Graceful Shutdown
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	gameService.Start(ctx)

	if bot != nil {
		go func() {
			if err := bot.Run(ctx); err != nil && ctx.Err() == nil {
				logger.Log.WithError(err).Warn("Bot stopped")
			}
		}()
	}

	// 3. Запуск сервера
	srv := server.New(gameService, port)
	go func() {
		if err := srv.Run(ctx); err != nil {
			logger.Log.WithError(err).Fatal("Server start error")
		}
	}()

	<-ctx.Done()
	logger.Log.Info("Shutting down...")

	gameService.Wait()
	if err := gameService.SaveReplays(); err != nil {
		logger.Log.WithError(err).Error("Failed to save replays")
	}

	logger.Log.Info("Done.")
}
