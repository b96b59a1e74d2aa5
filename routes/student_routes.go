package routes

import (
	"github.com/dcabrera/music_academy/handlers"
	"github.com/dcabrera/music_academy/middleware"
	"github.com/gofiber/fiber/v2"
)

func StudentRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	students := api.Group("/students", middleware.Protected(), middleware.StaffRequired())
	students.Post("", handlers.CreateStudent)
	students.Get("", handlers.ListStudents)
	students.Get("/:studentId", handlers.GetStudent)
	students.Put("/:studentId", handlers.UpdateStudent)
	students.Delete("/:studentId", handlers.DeactivateStudent)

	students.Get("/:studentId/attendance", handlers.GetStudentAttendance)
	students.Get("/:studentId/evaluations", handlers.ListStudentEvaluations)
}
