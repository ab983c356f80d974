package controllers

import (
	"encoding/json"

	"github.com/gofiber/fiber/v2"
	"github.com/gomodule/redigo/redis"

	"tycoon-backend/app/game"
	"tycoon-backend/platform/cache"
)

// LobbyController serves read-only views of the live room directory.
type LobbyController struct {
	Directory *game.Directory
	Pool      *redis.Pool
}

// GetAllAvailRooms lists rooms that are still joinable.
func (l *LobbyController) GetAllAvailRooms(c *fiber.Ctx) error {
	return c.JSON(l.Directory.OpenRooms())
}

// GetChatHistory returns a room's recent chat messages, oldest first.
func (l *LobbyController) GetChatHistory(c *fiber.Ctx) error {
	code := c.Params("code")
	if _, ok := l.Directory.Get(code); !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "Room not found"})
	}
	raw, err := cache.ChatHistory(l.Pool, code)
	if err != nil {
		return c.SendStatus(fiber.StatusInternalServerError)
	}
	messages := make([]json.RawMessage, 0, len(raw))
	for _, m := range raw {
		messages = append(messages, json.RawMessage(m))
	}
	return c.JSON(messages)
}
