package handlers

import (
	"time"

	"github.com/dcabrera/music_academy/database"
	"github.com/dcabrera/music_academy/models"
	"github.com/dcabrera/music_academy/services"
	"github.com/gofiber/fiber/v2"
)

type StudentRequest struct {
	FullName  string  `json:"full_name" validate:"required,min=3"`
	Email     *string `json:"email,omitempty" validate:"omitempty,email"`
	Phone     *string `json:"phone,omitempty"`
	BirthDate *string `json:"birth_date,omitempty" validate:"omitempty,datetime=2006-01-02"`

	GuardianName  *string `json:"guardian_name,omitempty"`
	GuardianPhone *string `json:"guardian_phone,omitempty"`
	GuardianEmail *string `json:"guardian_email,omitempty" validate:"omitempty,email"`

	ProfilePictureURL *string `json:"profile_picture_url,omitempty" validate:"omitempty,url"`
	Notes             *string `json:"notes,omitempty"`
}

func CreateStudent(c *fiber.Ctx) error {
	var req StudentRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	student := models.Student{
		FullName:      req.FullName,
		Email:         req.Email,
		Phone:         req.Phone,
		GuardianName:  req.GuardianName,
		GuardianPhone: req.GuardianPhone,
		GuardianEmail: req.GuardianEmail,
		Status:        "active",

		ProfilePictureURL: req.ProfilePictureURL,
		Notes:             req.Notes,
	}
	if req.BirthDate != nil {
		birthDate, _ := time.Parse("2006-01-02", *req.BirthDate)
		student.BirthDate = &birthDate
	}

	if err := database.DB.Create(&student).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create student"})
	}

	go services.RecordAudit(actorID(c), "create", "student", student.ID, student.FullName)

	return c.Status(fiber.StatusCreated).JSON(student)
}

func ListStudents(c *fiber.Ctx) error {
	limit, offset := pageWindow(c.Query("page", "1"), c.Query("page_size", "25"), 25)

	query := database.DB.Model(&models.Student{})
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	if search := c.Query("search"); search != "" {
		query = query.Where("full_name ILIKE ?", "%"+search+"%")
	}

	var students []models.Student
	if err := query.Order("full_name asc").Limit(limit).Offset(offset).Find(&students).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Database error"})
	}
	return c.JSON(students)
}

func GetStudent(c *fiber.Ctx) error {
	var student models.Student
	if err := database.DB.First(&student, "id = ?", c.Params("studentId")).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Student not found"})
	}
	return c.JSON(student)
}

func UpdateStudent(c *fiber.Ctx) error {
	var student models.Student
	if err := database.DB.First(&student, "id = ?", c.Params("studentId")).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Student not found"})
	}

	var req StudentRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	student.FullName = req.FullName
	student.Email = req.Email
	student.Phone = req.Phone
	student.GuardianName = req.GuardianName
	student.GuardianPhone = req.GuardianPhone
	student.GuardianEmail = req.GuardianEmail
	student.ProfilePictureURL = req.ProfilePictureURL
	student.Notes = req.Notes
	if req.BirthDate != nil {
		birthDate, _ := time.Parse("2006-01-02", *req.BirthDate)
		student.BirthDate = &birthDate
	}

	if err := database.DB.Save(&student).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update student"})
	}

	go services.RecordAudit(actorID(c), "update", "student", student.ID, student.FullName)

	return c.JSON(student)
}

// DeactivateStudent soft-disables a student; records are never hard
// deleted once payments or enrollments reference them.
func DeactivateStudent(c *fiber.Ctx) error {
	var student models.Student
	if err := database.DB.First(&student, "id = ?", c.Params("studentId")).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Student not found"})
	}

	student.Status = "inactive"
	if err := database.DB.Save(&student).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update student"})
	}

	go services.RecordAudit(actorID(c), "deactivate", "student", student.ID, "")

	return c.JSON(fiber.Map{"message": "Student deactivated"})
}
