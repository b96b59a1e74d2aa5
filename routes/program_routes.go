package routes

import (
	"github.com/dcabrera/music_academy/handlers"
	"github.com/dcabrera/music_academy/middleware"
	"github.com/gofiber/fiber/v2"
)

func ProgramRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	programs := api.Group("/programs", middleware.Protected())
	programs.Get("", handlers.ListPrograms)

	adminOnly := programs.Group("", middleware.AdminRequired())
	adminOnly.Post("", handlers.CreateProgram)
	adminOnly.Put("/:programId", handlers.UpdateProgram)

	staff := api.Group("", middleware.Protected(), middleware.StaffRequired())
	staff.Post("/programs/:programId/enrollments", handlers.EnrollInProgram)
	staff.Get("/enrollments", handlers.ListProgramEnrollments)
	staff.Post("/enrollments/:enrollmentId/withdraw", handlers.WithdrawFromProgram)
}
