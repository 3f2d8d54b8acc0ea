package server

import (
	"net/http"
	"time"

	"stealth-server/internal/engine"
	"stealth-server/pkg/api"
	"stealth-server/pkg/logger"
	"stealth-server/pkg/utils"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

// Настройки WebSocket
const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 4096,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// Client - посредник между Websocket и GameService
type Client struct {
	Game   *engine.GameService
	Conn   *websocket.Conn
	Send   chan api.ServerResponse
	ID     string
	RoomID int
	log    *logrus.Entry
}

// NewClient регистрирует клиента в Hub сразу, до запуска пампов:
// первый кадр не потеряется.
func NewClient(game *engine.GameService, conn *websocket.Conn, roomID int) *Client {
	id := utils.GenerateID("client_")
	c := &Client{
		Game:   game,
		Conn:   conn,
		Send:   make(chan api.ServerResponse, 256),
		ID:     id,
		RoomID: roomID,
		log: logger.Log.WithFields(logrus.Fields{
			"client_id": id,
			"room":      roomID,
		}),
	}

	updates := game.Hub.Register(id, roomID)

	// Пересылка обновлений из Hub в writePump
	go func() {
		for msg := range updates {
			c.Send <- msg
		}
		close(c.Send)
	}()

	// Текущее состояние комнаты, не дожидаясь следующего кадра
	if inst, ok := game.Instance(roomID); ok {
		game.Hub.SendTo(id, inst.Snapshot())
	}
	return c
}

// readPump читает команды от клиента
func (c *Client) readPump() {
	defer func() {
		c.Game.Hub.Unregister(c.ID)
		if err := c.Conn.Close(); err != nil {
			c.log.WithError(err).Debug("failed to close websocket connection")
		}
		c.log.Info("Client disconnected")
	}()

	c.Conn.SetReadLimit(maxMessageSize)
	if err := c.Conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
		c.log.WithError(err).Warn("failed to set read deadline")
	}
	c.Conn.SetPongHandler(func(string) error {
		if err := c.Conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
			c.log.WithError(err).Warn("failed to set pong read deadline")
		}
		return nil
	})

	c.log.Info("Client connected")

	// Приветствие в журнал комнаты
	c.process(api.ClientCommand{Action: "INIT"})

	for {
		var cmd api.ClientCommand
		err := c.Conn.ReadJSON(&cmd)
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.log.WithError(err).Error("WS error")
			}
			break
		}
		c.process(cmd)
	}
}

func (c *Client) process(cmd api.ClientCommand) {
	// Клиент не может действовать от чужого имени
	cmd.Token = c.ID
	if err := c.Game.ProcessCommand(c.RoomID, cmd); err != nil {
		c.log.WithError(err).WithField("action", cmd.Action).Warn("Command refused")
		c.Game.Hub.SendTo(c.ID, api.ServerResponse{
			Type:   "ERROR",
			RoomID: c.RoomID,
			Logs: []api.LogEntry{{
				ID:        c.ID + "_err_" + time.Now().Format("150405.000"),
				Text:      err.Error(),
				Type:      "ERROR",
				Timestamp: time.Now().UnixMilli(),
			}},
		})
	}
}

// writePump отправляет данные клиенту + Ping
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		if err := c.Conn.Close(); err != nil {
			c.log.WithError(err).Debug("failed to close websocket connection in writePump")
		}
	}()

	for {
		select {
		case message, ok := <-c.Send:
			if err := c.Conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				c.log.WithError(err).Warn("failed to set write deadline")
			}
			if !ok {
				if err := c.Conn.WriteMessage(websocket.CloseMessage, []byte{}); err != nil {
					c.log.WithError(err).Debug("write close message failed")
				}
				return
			}
			if err := c.Conn.WriteJSON(message); err != nil {
				c.log.WithError(err).Debug("write json message failed")
				return
			}

		case <-ticker.C:
			if err := c.Conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				c.log.WithError(err).Warn("failed to set ping write deadline")
			}
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				c.log.WithError(err).Debug("ping failed")
				return
			}
		}
	}
}
