package routes

import (
	controllers "github.com/Harshavardhanreddy02/Harvesting-Hub-sub000/controllers/user"
	"github.com/Harshavardhanreddy02/Harvesting-Hub-sub000/middlewares"

	"github.com/gofiber/fiber/v2"
)

func UserRoutes(app *fiber.App, h *controllers.Handler) {
	app.Post("/api/user/register", h.Register)
	app.Post("/api/user/login", h.Login)
	app.Get("/api/user/profile", middlewares.AuthMiddleware, h.GetProfile)
	app.Post("/api/user/profile", middlewares.AuthMiddleware, h.UpdateProfile)
}
