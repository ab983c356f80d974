package routes

import (
	"github.com/gofiber/fiber/v2"

	"tycoon-backend/app/controllers"
)

func GameRoutes(a *fiber.App, lobby *controllers.LobbyController) {
	route := a.Group("/game")

	route.Get("/all", lobby.GetAllAvailRooms)
	route.Get("/:code/chat", lobby.GetChatHistory)
}
