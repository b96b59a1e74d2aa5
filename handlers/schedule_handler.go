package handlers

import (
	"github.com/dcabrera/music_academy/database"
	"github.com/dcabrera/music_academy/ledger"
	"github.com/dcabrera/music_academy/models"
	"github.com/dcabrera/music_academy/services"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/lib/pq"
)

type ScheduleRequest struct {
	ProgramID   string   `json:"program_id" validate:"required,uuid"`
	ProfessorID *string  `json:"professor_id,omitempty" validate:"omitempty,uuid"`
	DaysOfWeek  []string `json:"days_of_week" validate:"required,min=1,dive,oneof=monday tuesday wednesday thursday friday saturday sunday"`
	StartTime   string   `json:"start_time" validate:"required"`
	EndTime     string   `json:"end_time" validate:"required"`
	Classroom   *string  `json:"classroom,omitempty"`
	MaxStudents int      `json:"max_students" validate:"required,min=1"`
}

func buildSchedule(req ScheduleRequest) models.Schedule {
	return models.Schedule{
		DaysOfWeek:  pq.StringArray(req.DaysOfWeek),
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
		Classroom:   req.Classroom,
		MaxStudents: req.MaxStudents,
		ProfessorID: parseOptionalUUID(req.ProfessorID),
	}
}

func CreateSchedule(c *fiber.Ctx) error {
	var req ScheduleRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	programID, _ := uuid.Parse(req.ProgramID)
	var program models.Program
	if err := database.DB.First(&program, "id = ?", programID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Program not found"})
	}

	schedule := buildSchedule(req)
	schedule.ProgramID = programID
	schedule.Status = models.ScheduleActive

	if err := ledger.ValidateNoOverlap(database.DB, &schedule, nil); err != nil {
		return ledgerError(c, err)
	}

	if err := database.DB.Create(&schedule).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create schedule"})
	}

	go services.RecordAudit(actorID(c), "create", "schedule", schedule.ID, "")

	return c.Status(fiber.StatusCreated).JSON(schedule)
}

func ListSchedules(c *fiber.Ctx) error {
	query := database.DB.Model(&models.Schedule{}).Preload("Program").Preload("Professor")
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	if professorID := c.Query("professor_id"); professorID != "" {
		query = query.Where("professor_id = ?", professorID)
	}
	if programID := c.Query("program_id"); programID != "" {
		query = query.Where("program_id = ?", programID)
	}

	var schedules []models.Schedule
	if err := query.Order("start_time asc").Find(&schedules).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Database error"})
	}
	return c.JSON(schedules)
}

func GetSchedule(c *fiber.Ctx) error {
	var schedule models.Schedule
	if err := database.DB.Preload("Program").Preload("Professor").First(&schedule, "id = ?", c.Params("scheduleId")).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Schedule not found"})
	}

	available, err := ledger.HasAvailableSlots(database.DB, &schedule)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Database error"})
	}

	var enrollments []models.ScheduleEnrollment
	database.DB.Preload("Student").
		Where("schedule_id = ? AND status = ?", schedule.ID, models.ScheduleEnrolled).
		Find(&enrollments)

	return c.JSON(fiber.Map{
		"schedule":        schedule,
		"enrollments":     enrollments,
		"available_slots": schedule.MaxStudents - len(enrollments),
		"has_space":       available,
	})
}

type UpdateScheduleRequest struct {
	ScheduleRequest
	Status string `json:"status" validate:"required,oneof=active inactive completed"`
}

func UpdateSchedule(c *fiber.Ctx) error {
	scheduleID, err := uuid.Parse(c.Params("scheduleId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid schedule ID format"})
	}

	var schedule models.Schedule
	if err := database.DB.First(&schedule, "id = ?", scheduleID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Schedule not found"})
	}

	var req UpdateScheduleRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	programID, _ := uuid.Parse(req.ProgramID)
	updated := buildSchedule(req.ScheduleRequest)
	updated.ProgramID = programID
	updated.Status = req.Status

	// The schedule being edited is excluded from its own conflict check.
	if err := ledger.ValidateNoOverlap(database.DB, &updated, &scheduleID); err != nil {
		return ledgerError(c, err)
	}

	schedule.ProgramID = updated.ProgramID
	schedule.ProfessorID = updated.ProfessorID
	schedule.DaysOfWeek = updated.DaysOfWeek
	schedule.StartTime = updated.StartTime
	schedule.EndTime = updated.EndTime
	schedule.Classroom = updated.Classroom
	schedule.MaxStudents = updated.MaxStudents
	schedule.Status = updated.Status

	if err := database.DB.Save(&schedule).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update schedule"})
	}

	go services.RecordAudit(actorID(c), "update", "schedule", schedule.ID, "")

	return c.JSON(schedule)
}

type EnrollRequest struct {
	StudentID string `json:"student_id" validate:"required,uuid"`
}

func EnrollInSchedule(c *fiber.Ctx) error {
	scheduleID, err := uuid.Parse(c.Params("scheduleId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid schedule ID format"})
	}

	var req EnrollRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	studentID, _ := uuid.Parse(req.StudentID)

	var student models.Student
	if err := database.DB.First(&student, "id = ?", studentID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Student not found"})
	}

	enrollment, err := ledger.EnrollStudent(database.DB, scheduleID, studentID)
	if err != nil {
		return ledgerError(c, err)
	}

	go services.RecordAudit(actorID(c), "enroll", "schedule", scheduleID, student.FullName)

	return c.Status(fiber.StatusCreated).JSON(enrollment)
}

func DropFromSchedule(c *fiber.Ctx) error {
	enrollmentID, err := uuid.Parse(c.Params("enrollmentId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid enrollment ID format"})
	}

	enrollment, err := ledger.DropEnrollment(database.DB, enrollmentID)
	if err != nil {
		return ledgerError(c, err)
	}

	go services.RecordAudit(actorID(c), "drop", "schedule", enrollment.ScheduleID, "")

	return c.JSON(enrollment)
}

// GetProfessorTimetable lists the weekly slots still blocking a
// professor's time (everything except completed schedules).
func GetProfessorTimetable(c *fiber.Ctx) error {
	professorID := c.Params("professorId")

	var schedules []models.Schedule
	err := database.DB.
		Preload("Program").
		Where("professor_id = ? AND status <> ?", professorID, models.ScheduleCompleted).
		Order("start_time asc").
		Find(&schedules).Error
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Database error"})
	}
	return c.JSON(schedules)
}
