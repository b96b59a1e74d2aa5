package handlers

import (
	"time"

	"github.com/dcabrera/music_academy/database"
	"github.com/dcabrera/music_academy/models"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AttendanceEntry struct {
	StudentID string  `json:"student_id" validate:"required,uuid"`
	Status    string  `json:"status" validate:"required,oneof=present absent late excused"`
	Notes     *string `json:"notes,omitempty"`
}

type RecordAttendanceRequest struct {
	Date    string            `json:"date" validate:"required,datetime=2006-01-02"`
	Entries []AttendanceEntry `json:"entries" validate:"required,min=1,dive"`
}

// RecordAttendance upserts the roll call for one schedule and date:
// re-submitting the same date replaces the previous entries instead of
// duplicating them.
func RecordAttendance(c *fiber.Ctx) error {
	scheduleID, err := uuid.Parse(c.Params("scheduleId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid schedule ID format"})
	}

	var req RecordAttendanceRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	var schedule models.Schedule
	if err := database.DB.First(&schedule, "id = ?", scheduleID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Schedule not found"})
	}

	date, _ := time.Parse("2006-01-02", req.Date)
	recordedBy := actorID(c)

	var records []models.Attendance
	err = database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("schedule_id = ? AND date = ?", scheduleID, date).
			Delete(&models.Attendance{}).Error; err != nil {
			return err
		}
		for _, entry := range req.Entries {
			studentID, _ := uuid.Parse(entry.StudentID)
			records = append(records, models.Attendance{
				ScheduleID: scheduleID,
				StudentID:  studentID,
				Date:       date,
				Status:     entry.Status,
				Notes:      entry.Notes,
				RecordedBy: recordedBy,
			})
		}
		return tx.Create(&records).Error
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to record attendance"})
	}

	return c.Status(fiber.StatusCreated).JSON(records)
}

func GetScheduleAttendance(c *fiber.Ctx) error {
	query := database.DB.Model(&models.Attendance{}).Preload("Student").
		Where("schedule_id = ?", c.Params("scheduleId"))
	if date := c.Query("date"); date != "" {
		query = query.Where("date = ?", date)
	}

	var records []models.Attendance
	if err := query.Order("date desc").Find(&records).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Database error"})
	}
	return c.JSON(records)
}

// GetStudentAttendance returns a student's history plus a per-status
// summary for the requested range.
func GetStudentAttendance(c *fiber.Ctx) error {
	query := database.DB.Model(&models.Attendance{}).Preload("Schedule").
		Where("student_id = ?", c.Params("studentId"))
	if from := c.Query("from"); from != "" {
		query = query.Where("date >= ?", from)
	}
	if to := c.Query("to"); to != "" {
		query = query.Where("date < ?", to)
	}

	var records []models.Attendance
	if err := query.Order("date desc").Find(&records).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Database error"})
	}

	summary := map[string]int{}
	for _, r := range records {
		summary[r.Status]++
	}

	return c.JSON(fiber.Map{
		"records": records,
		"summary": summary,
	})
}
