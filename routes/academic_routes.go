package routes

import (
	"github.com/dcabrera/music_academy/handlers"
	"github.com/dcabrera/music_academy/middleware"
	"github.com/gofiber/fiber/v2"
)

func AcademicRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	attendance := api.Group("/schedules/:scheduleId/attendance", middleware.Protected(), middleware.ProfessorRequired())
	attendance.Post("", handlers.RecordAttendance)
	attendance.Get("", handlers.GetScheduleAttendance)

	evaluations := api.Group("/evaluations", middleware.Protected(), middleware.ProfessorRequired())
	evaluations.Post("", handlers.CreateEvaluation)
	evaluations.Put("/:evaluationId", handlers.UpdateEvaluation)
}
