package main

import (
	"os"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	jwtware "github.com/gofiber/jwt/v2"
	"github.com/sirupsen/logrus"

	"tycoon-backend/app/controllers"
	"tycoon-backend/app/game"
	"tycoon-backend/pkg/routes"
	"tycoon-backend/platform/board"
	"tycoon-backend/platform/cache"
	"tycoon-backend/platform/logging"
	"tycoon-backend/platform/sockets"
)

func main() {
	logging.Init()

	directory := game.NewDirectory(board.Load())

	pool := cache.CreateRedisPool()
	if pool != nil {
		defer pool.Close()
	}
	directory.OnDestroy(func(code string) {
		if err := cache.DropChat(pool, code); err != nil {
			logrus.WithError(err).WithField("room", code).Warn("chat history cleanup failed")
		}
	})

	app := fiber.New()
	app.Use(cors.New())

	routes.AuthRoutes(app)
	routes.GameRoutes(app, &controllers.LobbyController{Directory: directory, Pool: pool})
	sockets.NewServer(directory, pool).RegisterRoutes(app)

	app.Use(jwtware.New(jwtware.Config{
		SigningKey: controllers.JWTSecret(),
	}))
	app.Get("/user/cur", controllers.Cur)

	port := os.Getenv("PORT")
	if port == "" {
		port = "4101"
	}
	logrus.Fatal(app.Listen(":" + port))
}
