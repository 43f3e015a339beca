package routes

import (
	controllers "github.com/Harshavardhanreddy02/Harvesting-Hub-sub000/controllers/tools"
	"github.com/Harshavardhanreddy02/Harvesting-Hub-sub000/middlewares"

	"github.com/gofiber/fiber/v2"
)

func ToolsRoutes(app *fiber.App, h *controllers.Handler) {
	app.Get("/api/tool/list", h.GetAllTools)
	app.Get("/api/tool/details", h.FetchToolDetails)

	app.Post("/api/tool/add", middlewares.AuthMiddleware, middlewares.RequireFarmer, h.AddTool)
	app.Put("/api/tool/update", middlewares.AuthMiddleware, middlewares.RequireFarmer, h.UpdateTool)
	app.Delete("/api/tool/delete", middlewares.AuthMiddleware, middlewares.RequireFarmer, h.DeleteTool)
}
