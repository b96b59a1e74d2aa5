package routes

import (
	"github.com/dcabrera/music_academy/handlers"
	"github.com/dcabrera/music_academy/middleware"
	"github.com/gofiber/fiber/v2"
)

func ScheduleRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	schedules := api.Group("/schedules", middleware.Protected())
	schedules.Get("", handlers.ListSchedules)
	schedules.Get("/:scheduleId", handlers.GetSchedule)

	staffOnly := schedules.Group("", middleware.StaffRequired())
	staffOnly.Post("", handlers.CreateSchedule)
	staffOnly.Put("/:scheduleId", handlers.UpdateSchedule)
	staffOnly.Post("/:scheduleId/enrollments", handlers.EnrollInSchedule)
	staffOnly.Delete("/enrollments/:enrollmentId", handlers.DropFromSchedule)

	api.Get("/professors/:professorId/timetable", middleware.Protected(), handlers.GetProfessorTimetable)
}
