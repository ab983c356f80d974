package sockets

import (
	"encoding/json"
	"errors"
	"os"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"github.com/gomodule/redigo/redis"
	"github.com/sirupsen/logrus"

	"tycoon-backend/app/game"
	"tycoon-backend/app/models"
	"tycoon-backend/platform/cache"
)

const defaultDisconnectGrace = 5 * time.Second

// Server routes websocket frames into the room directory.
type Server struct {
	directory *game.Directory
	registry  *Registry
	pool      *redis.Pool
	grace     time.Duration
}

func NewServer(directory *game.Directory, pool *redis.Pool) *Server {
	grace := defaultDisconnectGrace
	if v := os.Getenv("DISCONNECT_GRACE"); v != "" {
		if secs, err := strconv.Atoi(v); err == nil && secs >= 0 {
			grace = time.Duration(secs) * time.Second
		}
	}
	return &Server{
		directory: directory,
		registry:  NewRegistry(),
		pool:      pool,
		grace:     grace,
	}
}

// RegisterRoutes mounts the websocket endpoint on the fiber app.
func (s *Server) RegisterRoutes(app *fiber.App) {
	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})
	app.Get("/ws", websocket.New(s.handle))
}

func (s *Server) handle(conn *websocket.Conn) {
	client := newClient(conn)
	s.registry.Add(client)
	go client.writePump()

	client.Send(models.Event{
		Type:    models.EventConnected,
		Payload: models.ConnectedPayload{Message: "connected"},
	})
	logrus.WithField("connections", s.registry.Count()).Debug("connection opened")

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			break
		}
		var env models.Envelope
		if err := json.Unmarshal(data, &env); err != nil {
			logrus.WithError(err).Warn("malformed frame")
			s.sendError(client, &game.Error{Kind: game.KindValidation, Message: "Malformed message"})
			continue
		}
		s.dispatch(client, env)
	}

	s.registry.Remove(client)
	client.shutdown()
	s.handleDisconnect(client)
	logrus.WithField("connections", s.registry.Count()).Debug("connection closed")
}

// handleDisconnect treats a dropped transport like a leave. Mid-game the
// roster removal waits out a grace period so the room mutates on a bounded
// delay rather than on every transport hiccup; the dead subscription itself
// is already gone.
func (s *Server) handleDisconnect(client *Client) {
	room, playerId := client.room, client.playerId
	if room == nil {
		return
	}
	_, _, started := room.Info()
	if started && s.grace > 0 {
		time.AfterFunc(s.grace, func() { room.RemovePlayer(playerId) })
		return
	}
	room.RemovePlayer(playerId)
}

func (s *Server) dispatch(client *Client, env models.Envelope) {
	var err error
	switch env.Type {
	case models.MsgCreateRoom:
		err = s.createRoom(client, env.Payload)
	case models.MsgJoinRoom:
		err = s.joinRoom(client, env.Payload)
	case models.MsgLeaveRoom:
		err = s.leaveRoom(client)
	case models.MsgStartGame:
		err = s.withRoom(client, func(room *game.Room, playerId string) error {
			return room.Start(playerId)
		})
	case models.MsgRollDice:
		err = s.withRoom(client, func(room *game.Room, playerId string) error {
			return room.Roll(playerId)
		})
	case models.MsgBuyProperty:
		var dto models.TileDto
		if err = unmarshal(env.Payload, &dto); err == nil {
			err = s.withRoom(client, func(room *game.Room, playerId string) error {
				return room.Buy(playerId, dto.TileId)
			})
		}
	case models.MsgBuild:
		var dto models.TileDto
		if err = unmarshal(env.Payload, &dto); err == nil {
			err = s.withRoom(client, func(room *game.Room, playerId string) error {
				return room.Build(playerId, dto.TileId)
			})
		}
	case models.MsgEndTurn:
		err = s.withRoom(client, func(room *game.Room, playerId string) error {
			return room.EndTurn(playerId)
		})
	case models.MsgChat:
		err = s.chat(client, env.Payload)
	default:
		err = &game.Error{Kind: game.KindValidation, Message: "Unknown message type"}
	}
	if err != nil {
		s.sendError(client, err)
	}
}

func (s *Server) createRoom(client *Client, payload json.RawMessage) error {
	if client.room != nil {
		return &game.Error{Kind: game.KindState, Message: "Already in a room"}
	}
	var dto models.CreateRoomDto
	if err := unmarshal(payload, &dto); err != nil {
		return err
	}
	room, host, err := s.directory.CreateRoom(dto.PlayerName, dto.MaxPlayers, client)
	if err != nil {
		return err
	}
	client.room = room
	client.playerId = host.Id
	client.Send(models.Event{
		Type:    models.EventRoomCreated,
		Payload: models.RoomCreatedPayload{RoomId: room.Code, PlayerId: host.Id, IsHost: true},
	})
	return nil
}

func (s *Server) joinRoom(client *Client, payload json.RawMessage) error {
	if client.room != nil {
		return &game.Error{Kind: game.KindState, Message: "Already in a room"}
	}
	var dto models.JoinRoomDto
	if err := unmarshal(payload, &dto); err != nil {
		return err
	}
	room, player, err := s.directory.JoinRoom(dto.RoomId, dto.PlayerName, client)
	if err != nil {
		return err
	}
	client.room = room
	client.playerId = player.Id
	client.Send(models.Event{
		Type: models.EventRoomJoined,
		Payload: models.RoomJoinedPayload{
			RoomId:   room.Code,
			PlayerId: player.Id,
			IsHost:   false,
			Players:  room.Roster(),
		},
	})
	return nil
}

func (s *Server) leaveRoom(client *Client) error {
	room, playerId := client.room, client.playerId
	if room == nil {
		return &game.Error{Kind: game.KindState, Message: "You are not in a room"}
	}
	client.room = nil
	client.playerId = ""
	room.RemovePlayer(playerId)
	return nil
}

func (s *Server) chat(client *Client, payload json.RawMessage) error {
	room, playerId := client.room, client.playerId
	if room == nil {
		return &game.Error{Kind: game.KindState, Message: "You are not in a room"}
	}
	var dto models.ChatDto
	if err := unmarshal(payload, &dto); err != nil {
		return err
	}
	msg, err := room.Chat(playerId, dto.Message)
	if err != nil {
		return err
	}
	if data, merr := json.Marshal(msg); merr == nil {
		if cerr := cache.PushChat(s.pool, room.Code, data); cerr != nil {
			logrus.WithError(cerr).WithField("room", room.Code).Warn("chat history write failed")
		}
	}
	return nil
}

func (s *Server) withRoom(client *Client, fn func(room *game.Room, playerId string) error) error {
	if client.room == nil {
		return &game.Error{Kind: game.KindState, Message: "You are not in a room"}
	}
	return fn(client.room, client.playerId)
}

// sendError reports a rejection to the offending connection only. Anything
// that is not a *game.Error is a programming defect and stays vague on the
// wire.
func (s *Server) sendError(client *Client, err error) {
	var gameErr *game.Error
	if !errors.As(err, &gameErr) {
		logrus.WithError(err).Error("internal error")
		gameErr = &game.Error{Kind: game.KindState, Message: "Internal server error"}
	}
	client.Send(models.Event{
		Type:    models.EventError,
		Payload: models.ErrorPayload{Message: gameErr.Message},
	})
}

func unmarshal(payload json.RawMessage, dst interface{}) error {
	if len(payload) == 0 {
		return &game.Error{Kind: game.KindValidation, Message: "Missing payload"}
	}
	if err := json.Unmarshal(payload, dst); err != nil {
		return &game.Error{Kind: game.KindValidation, Message: "Malformed payload"}
	}
	return nil
}
