package routes

import (
	"github.com/dcabrera/music_academy/handlers"
	"github.com/dcabrera/music_academy/middleware"
	"github.com/gofiber/fiber/v2"
)

func AuthRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	auth := api.Group("/auth")
	auth.Post("/login", handlers.LoginUser)
	auth.Post("/forgot-password", handlers.ForgotPassword)
	auth.Post("/reset-password", handlers.ResetPassword)

	auth.Get("/me", middleware.Protected(), handlers.GetProfile)
	auth.Post("/register", middleware.Protected(), middleware.AdminRequired(), handlers.RegisterStaff)
}
